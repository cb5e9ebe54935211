package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/3mfound/admin-gateway/src/auth"
	"github.com/3mfound/admin-gateway/src/backend"
	"github.com/3mfound/admin-gateway/src/config"
	"github.com/3mfound/admin-gateway/src/handlers"
	"github.com/3mfound/admin-gateway/src/middleware"
	"github.com/3mfound/admin-gateway/src/proxy"
	"github.com/3mfound/admin-gateway/src/session"
	"github.com/3mfound/admin-gateway/src/storage"
	"github.com/3mfound/admin-gateway/src/templates"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using system environment variables")
	} else {
		log.Info().Msg("loaded .env file")
	}
}

func main() {
	if os.Getenv("LOG_PRETTY") == "true" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	for _, name := range []string{"BASE_URL", "AZURE_TENANT_ID", "AZURE_CLIENT_ID", "AZURE_REDIRECT_URI"} {
		if os.Getenv(name) == "" {
			log.Fatal().Str("var", name).Msg("required environment variable not set")
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	log.Info().Msg("config loaded")

	rds, err := storage.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer rds.Close()
	log.Info().Str("address", cfg.Redis.Address).Msg("redis connected")

	sessionStore := session.NewStore(rds.Client(), &cfg.Session)
	pendingStore := session.NewPendingStore(rds.Client())

	backendClient := backend.NewClient(&cfg.Backend)
	log.Info().Str("base_url", cfg.Backend.BaseURL).Msg("backend client ready")

	oauthConfig := auth.NewOAuthConfig(&cfg.OAuth)
	authHandler := auth.NewHandler(oauthConfig, sessionStore, pendingStore, backendClient)
	pageHandler := handlers.NewPageHandler(backendClient)
	proxyHandler := proxy.NewHandler(backendClient)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())
	r.Use(middleware.EdgeGuard())

	r.SetHTMLTemplate(templates.Load())
	r.Static("/static", "./static")

	r.GET("/health", pageHandler.HealthCheck)
	r.GET("/login", pageHandler.Login)

	authRoutes := r.Group("/auth")
	{
		authRoutes.GET("/login", authHandler.Login)
		authRoutes.GET("/callback", authHandler.Callback)
		authRoutes.POST("/pending", authHandler.Pending)
	}

	r.POST("/logout", authHandler.Logout)

	protected := r.Group("")
	protected.Use(middleware.RequireSession(sessionStore))
	{
		protected.GET("/", pageHandler.Overview)
		protected.GET("/workers", pageHandler.Workers)
		protected.GET("/task-management", pageHandler.Tasks)
		protected.GET("/file-manager", pageHandler.Files)
		protected.GET("/feedback", pageHandler.Feedback)
		protected.GET("/ai-agent", pageHandler.Chat)
	}

	// The proxy layer performs no session check of its own: these endpoints
	// are reached only from pages that already passed both guards.
	api := r.Group("/api")
	{
		api.GET("/dashboard", proxyHandler.Dashboard)
		api.GET("/file", proxyHandler.Files)
		api.GET("/feedback", proxyHandler.Feedback)
		api.GET("/categories", proxyHandler.Categories)
		api.POST("/message", proxyHandler.Message)
		api.POST("/workers/add", proxyHandler.AddWorker)
		api.DELETE("/workers/delete", proxyHandler.DeleteWorker)
		api.GET("/me", middleware.RequireSession(sessionStore), authHandler.Me)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	log.Info().Str("port", cfg.Server.Port).Msg("admin gateway running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

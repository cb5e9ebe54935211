package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/3mfound/admin-gateway/src/middleware"
	"github.com/3mfound/admin-gateway/src/models"
	"github.com/3mfound/admin-gateway/src/session"
)

type Handler struct {
	oauthConfig *oauth2.Config
	store       *session.Store
	pending     *session.PendingStore
	exchanger   models.TokenExchanger
}

func NewHandler(
	oauthConfig *oauth2.Config,
	store *session.Store,
	pending *session.PendingStore,
	exchanger models.TokenExchanger,
) *Handler {
	return &Handler{
		oauthConfig: oauthConfig,
		store:       store,
		pending:     pending,
		exchanger:   exchanger,
	}
}

// Login sends the browser to the Microsoft authorize endpoint. The identity
// platform expects response_mode=query so the code comes back as a query
// parameter on the callback.
func (h *Handler) Login(c *gin.Context) {
	url := h.oauthConfig.AuthCodeURL("", oauth2.SetAuthURLParam("response_mode", "query"))
	c.Redirect(http.StatusFound, url)
}

// Callback completes the authorization-code flow. The code is exchanged at
// most once: a request that already carries a live session skips the
// exchange entirely.
func (h *Handler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.HTML(http.StatusOK, "callback.tmpl", gin.H{"NoCode": true})
		return
	}

	ctx := c.Request.Context()

	if token, err := c.Cookie(session.CookieName); err == nil && token != "" {
		sess, err := h.store.Get(ctx, token)
		if err == nil && sess != nil {
			c.Redirect(http.StatusFound, middleware.LandingPath)
			return
		}
	}

	var email string
	pending, err := h.pending.Take(ctx, c)
	if err != nil {
		log.Error().Err(err).Msg("failed to read pending signup")
	}
	if pending != nil {
		email = pending.Email
		if pending.Code != "" {
			code = pending.Code
		}
	}

	token, user, err := h.exchanger.ExchangeToken(ctx, code, email)
	if err != nil {
		// No session installed, no redirect: the user stays on the callback
		// page and retries the login flow by hand.
		log.Error().Err(err).Msg("token exchange failed")
		c.HTML(http.StatusOK, "callback.tmpl", gin.H{"Failed": true})
		return
	}

	if err := h.store.Set(ctx, c, token, user); err != nil {
		log.Error().Err(err).Msg("failed to install session")
		c.HTML(http.StatusOK, "callback.tmpl", gin.H{"Failed": true})
		return
	}

	c.Redirect(http.StatusFound, middleware.LandingPath)
}

// Logout clears both sides of the session and sends the browser back to the
// login page.
func (h *Handler) Logout(c *gin.Context) {
	token, _ := c.Cookie(session.CookieName)

	if err := h.store.Clear(c.Request.Context(), c, token); err != nil {
		log.Error().Err(err).Msg("failed to clear session")
	}

	c.Redirect(http.StatusFound, middleware.LoginPath)
}

// Me returns the profile attached by the store guard.
func (h *Handler) Me(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type pendingRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code"`
}

// Pending stashes a partial-registration record before the user is sent to
// the identity provider; the callback picks it up to complete signup.
func (h *Handler) Pending(c *gin.Context) {
	var req pendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	rec := session.Pending{Email: req.Email, Code: req.Code}
	if err := h.pending.Stash(c.Request.Context(), c, rec); err != nil {
		log.Error().Err(err).Msg("failed to stash pending signup")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save signup data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signup data saved"})
}

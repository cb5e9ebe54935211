package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/3mfound/admin-gateway/src/config"
	"github.com/3mfound/admin-gateway/src/models"
)

// CookieName is the cookie mirrored from the durable store so the edge guard
// can run without Redis access.
const CookieName = "sessionToken"

type Session struct {
	Token     string          `json:"token"`
	User      models.UserInfo `json:"user"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store keeps the bearer token and profile in Redis and mirrors the token
// into the sessionToken cookie. Both sides are written by the same call so
// no call site can update one without the other.
type Store struct {
	client *redis.Client
	cfg    *config.SessionConfig
}

func NewStore(client *redis.Client, cfg *config.SessionConfig) *Store {
	return &Store{
		client: client,
		cfg:    cfg,
	}
}

// Get returns the session for the given token, or nil when absent. Absence
// is not an error.
func (s *Store) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}

	key := fmt.Sprintf("session:%s", token)

	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// Set installs the session: the Redis entry first, the cookie only once the
// durable write succeeded.
func (s *Store) Set(ctx context.Context, c *gin.Context, token string, user models.UserInfo) error {
	session := Session{
		Token:     token,
		User:      user,
		CreatedAt: time.Now(),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	key := fmt.Sprintf("session:%s", token)
	if err := s.client.Set(ctx, key, data, s.cfg.TTL).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	s.writeCookie(c, token, int(s.cfg.TTL.Seconds()))
	return nil
}

// Clear removes the Redis entry and expires the cookie. Calling it twice is
// a no-op, not an error.
func (s *Store) Clear(ctx context.Context, c *gin.Context, token string) error {
	if token != "" {
		key := fmt.Sprintf("session:%s", token)
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}

	s.writeCookie(c, "", -1)
	return nil
}

// ExpireCookie drops only the cookie side. Used by the store guard when the
// durable entry is already gone, so the edge guard stops seeing a session
// that no longer exists.
func (s *Store) ExpireCookie(c *gin.Context) {
	s.writeCookie(c, "", -1)
}

func (s *Store) writeCookie(c *gin.Context, value string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if s.cfg.CookieSameSite == "strict" {
		sameSite = http.SameSiteStrictMode
	} else if s.cfg.CookieSameSite == "none" {
		sameSite = http.SameSiteNoneMode
	}

	c.SetSameSite(sameSite)

	cookieDomain := s.cfg.CookieDomain
	if cookieDomain == "localhost" {
		cookieDomain = ""
	}

	c.SetCookie(
		CookieName,
		value,
		maxAge,
		"/",
		cookieDomain,
		s.cfg.CookieSecure,
		true,
	)
}

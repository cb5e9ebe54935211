package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PendingCookieName references a partial-registration record stashed before
// the user is sent to the identity provider. The OAuth callback consumes it
// to pass the signup email along with the authorization code.
const PendingCookieName = "pendingUser"

const pendingTTL = 10 * time.Minute

type Pending struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type PendingStore struct {
	client *redis.Client
}

func NewPendingStore(client *redis.Client) *PendingStore {
	return &PendingStore{client: client}
}

// Stash saves the record under a fresh opaque id and points the browser at
// it via the pendingUser cookie.
func (p *PendingStore) Stash(ctx context.Context, c *gin.Context, rec Pending) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal pending signup: %w", err)
	}

	id := uuid.NewString()
	key := fmt.Sprintf("pending:%s", id)
	if err := p.client.Set(ctx, key, data, pendingTTL).Err(); err != nil {
		return fmt.Errorf("failed to save pending signup: %w", err)
	}

	c.SetCookie(PendingCookieName, id, int(pendingTTL.Seconds()), "/", "", false, true)
	return nil
}

// Take returns the stashed record and removes it, or nil when nothing was
// stashed.
func (p *PendingStore) Take(ctx context.Context, c *gin.Context) (*Pending, error) {
	id, err := c.Cookie(PendingCookieName)
	if err != nil || id == "" {
		return nil, nil
	}

	key := fmt.Sprintf("pending:%s", id)
	data, err := p.client.GetDel(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending signup: %w", err)
	}

	c.SetCookie(PendingCookieName, "", -1, "/", "", false, true)

	var rec Pending
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending signup: %w", err)
	}

	return &rec, nil
}

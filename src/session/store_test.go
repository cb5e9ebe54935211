package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3mfound/admin-gateway/src/config"
	"github.com/3mfound/admin-gateway/src/models"
)

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := &config.SessionConfig{
		TTL:            time.Hour,
		CookieSameSite: "lax",
	}

	return NewStore(client, cfg), mr
}

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

func testUser(t *testing.T) models.UserInfo {
	var u models.UserInfo
	err := json.Unmarshal([]byte(`{"first_name":"Ann","name":"Ann Smith","email":"a@x.com","team":"ops"}`), &u)
	require.NoError(t, err)
	return u
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == CookieName {
			return cookie
		}
	}
	return nil
}

func TestStore_SetAndGet(t *testing.T) {
	store, mr := setupTestStore(t)
	c, w := testContext(t)
	ctx := context.Background()

	err := store.Set(ctx, c, "tok1", testUser(t))
	assert.NoError(t, err)

	sess, err := store.Get(ctx, "tok1")
	assert.NoError(t, err)
	assert.NotNil(t, sess)
	assert.Equal(t, "tok1", sess.Token)
	assert.Equal(t, "Ann", sess.User.FirstName)
	assert.Equal(t, "a@x.com", sess.User.Email)

	// both sides written by the one call
	assert.True(t, mr.Exists("session:tok1"))
	cookie := sessionCookie(w)
	assert.NotNil(t, cookie)
	assert.Equal(t, "tok1", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
}

func TestStore_PreservesUnknownProfileFields(t *testing.T) {
	store, _ := setupTestStore(t)
	c, _ := testContext(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, c, "tok1", testUser(t)))

	sess, err := store.Get(ctx, "tok1")
	require.NoError(t, err)
	require.NotNil(t, sess)

	data, err := json.Marshal(sess.User)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"team":"ops"`)
}

func TestStore_GetAbsent(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	sess, err := store.Get(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, sess)

	sess, err = store.Get(ctx, "")
	assert.NoError(t, err)
	assert.Nil(t, sess)
}

func TestStore_Clear(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	c, _ := testContext(t)
	require.NoError(t, store.Set(ctx, c, "tok1", testUser(t)))

	c2, w2 := testContext(t)
	err := store.Clear(ctx, c2, "tok1")
	assert.NoError(t, err)

	assert.False(t, mr.Exists("session:tok1"))
	sess, err := store.Get(ctx, "tok1")
	assert.NoError(t, err)
	assert.Nil(t, sess)

	cookie := sessionCookie(w2)
	assert.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	c, _ := testContext(t)
	require.NoError(t, store.Set(ctx, c, "tok1", testUser(t)))

	c2, _ := testContext(t)
	require.NoError(t, store.Clear(ctx, c2, "tok1"))

	c3, w3 := testContext(t)
	err := store.Clear(ctx, c3, "tok1")
	assert.NoError(t, err)

	assert.False(t, mr.Exists("session:tok1"))
	cookie := sessionCookie(w3)
	assert.NotNil(t, cookie)
	assert.Negative(t, cookie.MaxAge)
}

func TestStore_SessionExpires(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	c, _ := testContext(t)
	require.NoError(t, store.Set(ctx, c, "tok1", testUser(t)))

	mr.FastForward(2 * time.Hour)

	sess, err := store.Get(ctx, "tok1")
	assert.NoError(t, err)
	assert.Nil(t, sess)
}

func TestPendingStore_StashAndTake(t *testing.T) {
	_, mr := setupTestStore(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	pending := NewPendingStore(client)
	ctx := context.Background()

	c, w := testContext(t)
	err := pending.Stash(ctx, c, Pending{Email: "a@x.com", Code: "SIGNUP1"})
	require.NoError(t, err)

	var id string
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == PendingCookieName {
			id = cookie.Value
		}
	}
	require.NotEmpty(t, id)

	c2, _ := testContext(t)
	c2.Request.AddCookie(&http.Cookie{Name: PendingCookieName, Value: id})

	rec, err := pending.Take(ctx, c2)
	assert.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "a@x.com", rec.Email)
	assert.Equal(t, "SIGNUP1", rec.Code)

	// consumed on first take
	c3, _ := testContext(t)
	c3.Request.AddCookie(&http.Cookie{Name: PendingCookieName, Value: id})
	rec, err = pending.Take(ctx, c3)
	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestPendingStore_TakeWithoutStash(t *testing.T) {
	_, mr := setupTestStore(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	pending := NewPendingStore(client)

	c, _ := testContext(t)
	rec, err := pending.Take(context.Background(), c)
	assert.NoError(t, err)
	assert.Nil(t, rec)
}

package proxy

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3mfound/admin-gateway/src/backend"
	"github.com/3mfound/admin-gateway/src/config"
)

func setupProxyRouter(backendURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	client := backend.NewClient(&config.BackendConfig{
		BaseURL: backendURL,
		Timeout: 5 * time.Second,
	})
	handler := NewHandler(client)

	r := gin.New()
	r.GET("/api/dashboard", handler.Dashboard)
	r.GET("/api/file", handler.Files)
	r.GET("/api/feedback", handler.Feedback)
	r.POST("/api/message", handler.Message)
	r.POST("/api/workers/add", handler.AddWorker)
	r.DELETE("/api/workers/delete", handler.DeleteWorker)
	return r
}

func TestProxy_RelaysBackendJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dashboard", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"workerStats":{"totalWorker":12}}`))
	}))
	defer srv.Close()

	r := setupProxyRouter(srv.URL)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/dashboard", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"workerStats":{"totalWorker":12}}`, w.Body.String())
}

func TestProxy_TranslatesMessageMethod(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/message", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"content":"hi"}`, string(body))

		w.Write([]byte(`{"content":"hello","received":true}`))
	}))
	defer srv.Close()

	r := setupProxyRouter(srv.URL)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/message", strings.NewReader(`{"content":"hi"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"content":"hello","received":true}`, w.Body.String())
}

func TestProxy_ForwardsWorkerMutations(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	r := setupProxyRouter(srv.URL)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/workers/add", strings.NewReader(`{"email":"a@x.com"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/users/add", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/workers/delete", strings.NewReader(`{"id":"w1"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/users/delete", gotPath)
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestProxy_CollapsesBackendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend exploded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	r := setupProxyRouter(srv.URL)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/file", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to fetch files", resp["error"])
}

func TestProxy_CollapsesUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	r := setupProxyRouter(srv.URL)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/feedback", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to fetch feedback", resp["error"])
}

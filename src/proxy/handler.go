package proxy

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/3mfound/admin-gateway/src/backend"
)

// Handler relays same-origin API calls to the platform backend verbatim.
// No auth check happens here: these endpoints are reached only from pages
// that already passed both guards. Any failure, transport or backend-side,
// collapses to one generic 500.
type Handler struct {
	client *backend.Client
}

func NewHandler(client *backend.Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) Dashboard(c *gin.Context) {
	h.forward(c, http.MethodGet, "/dashboard", "Failed to fetch dashboard")
}

func (h *Handler) Files(c *gin.Context) {
	h.forward(c, http.MethodGet, "/file", "Failed to fetch files")
}

func (h *Handler) Feedback(c *gin.Context) {
	h.forward(c, http.MethodGet, "/feedback/list", "Failed to fetch feedback")
}

func (h *Handler) Categories(c *gin.Context) {
	h.forward(c, http.MethodGet, "/categories", "Failed to fetch categories")
}

// Message translates the dashboard's POST into the backend's PUT.
func (h *Handler) Message(c *gin.Context) {
	h.forward(c, http.MethodPut, "/message", "Failed to send message")
}

func (h *Handler) AddWorker(c *gin.Context) {
	h.forward(c, http.MethodPost, "/users/add", "Failed to add user")
}

func (h *Handler) DeleteWorker(c *gin.Context) {
	h.forward(c, http.MethodDelete, "/users/delete", "Failed to delete user")
}

func (h *Handler) forward(c *gin.Context, method, path, failMsg string) {
	resp, err := h.client.Forward(c.Request.Context(), method, path, c.Request.Body, c.Request.Header)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("proxy request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error().Int("status", resp.StatusCode).Str("path", path).Msg("backend returned error status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg})
		return
	}

	c.DataFromReader(resp.StatusCode, resp.ContentLength, "application/json", resp.Body, nil)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/3mfound/admin-gateway/src/middleware"
	"github.com/3mfound/admin-gateway/src/models"
	"github.com/3mfound/admin-gateway/src/session"
)

// PageHandler renders the server-side dashboard pages. Every page is a thin
// fetch-and-render wrapper over the platform backend.
type PageHandler struct {
	api models.PlatformAPI
}

func NewPageHandler(api models.PlatformAPI) *PageHandler {
	return &PageHandler{api: api}
}

func (h *PageHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *PageHandler) Login(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", nil)
}

func (h *PageHandler) Overview(c *gin.Context) {
	data, err := h.api.Dashboard(c.Request.Context())
	if err != nil {
		renderError(c, err, "Failed to load dashboard")
		return
	}

	c.HTML(http.StatusOK, "dashboard.tmpl", gin.H{
		"User": currentUser(c),
		"Data": data,
	})
}

func (h *PageHandler) Workers(c *gin.Context) {
	workers, err := h.api.Workers(c.Request.Context())
	if err != nil {
		renderError(c, err, "Failed to load workers")
		return
	}

	c.HTML(http.StatusOK, "workers.tmpl", gin.H{"Workers": workers})
}

func (h *PageHandler) Tasks(c *gin.Context) {
	tasks, err := h.api.Tasks(c.Request.Context())
	if err != nil {
		renderError(c, err, "Failed to load tasks")
		return
	}

	c.HTML(http.StatusOK, "tasks.tmpl", gin.H{"Groups": groupTasks(tasks)})
}

func (h *PageHandler) Files(c *gin.Context) {
	files, err := h.api.Files(c.Request.Context())
	if err != nil {
		renderError(c, err, "Failed to load files")
		return
	}

	c.HTML(http.StatusOK, "files.tmpl", gin.H{"Files": files})
}

func (h *PageHandler) Feedback(c *gin.Context) {
	ctx := c.Request.Context()

	categories, err := h.api.Categories(ctx)
	if err != nil {
		renderError(c, err, "Failed to load categories")
		return
	}

	entries, err := h.api.FeedbackList(ctx)
	if err != nil {
		renderError(c, err, "Failed to load feedback")
		return
	}

	selected := c.Query("category")
	if selected == "" && len(categories) > 0 {
		selected = categories[0].ID
	}

	c.HTML(http.StatusOK, "feedback.tmpl", gin.H{
		"Categories": categories,
		"Entries":    filterFeedback(entries, selected),
	})
}

func (h *PageHandler) Chat(c *gin.Context) {
	sess := currentSession(c)
	if sess == nil {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		c.Abort()
		return
	}

	messages, err := h.api.ChatHistory(c.Request.Context(), sess.Token)
	if err != nil {
		renderError(c, err, "Failed to load chat history")
		return
	}

	c.HTML(http.StatusOK, "chat.tmpl", gin.H{
		"User":     currentUser(c),
		"Messages": messages,
	})
}

type taskGroup struct {
	Title string
	Tasks []models.Task
}

func groupTasks(tasks []models.Task) []taskGroup {
	byType := make(map[string][]models.Task)
	for _, t := range tasks {
		byType[t.Type] = append(byType[t.Type], t)
	}

	return []taskGroup{
		{Title: "Urgent tasks", Tasks: byType["urgent"]},
		{Title: "Normal tasks", Tasks: byType["normal"]},
		{Title: "Onboarding tasks", Tasks: byType["onboarding"]},
	}
}

func filterFeedback(entries []models.FeedbackEntry, categoryID string) []models.FeedbackEntry {
	if categoryID == "" {
		return entries
	}

	var filtered []models.FeedbackEntry
	for _, e := range entries {
		for _, cat := range e.CategoryID {
			if cat.ID == categoryID {
				filtered = append(filtered, e)
				break
			}
		}
	}
	return filtered
}

func currentUser(c *gin.Context) models.UserInfo {
	if v, exists := c.Get("user"); exists {
		if u, ok := v.(models.UserInfo); ok {
			return u
		}
	}
	return models.UserInfo{}
}

func currentSession(c *gin.Context) *session.Session {
	if v, exists := c.Get("session"); exists {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}

func renderError(c *gin.Context, err error, message string) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("page data fetch failed")
	c.HTML(http.StatusBadGateway, "error.tmpl", gin.H{"Message": message})
}

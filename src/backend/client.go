package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/3mfound/admin-gateway/src/config"
	"github.com/3mfound/admin-gateway/src/models"
)

// ErrNoSessionToken marks a token-exchange response that carried no token
// under either accepted field name.
var ErrNoSessionToken = errors.New("no session token in backend response")

// Client talks to the platform backend that owns all business data. It is
// the only component in the gateway performing outbound calls.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg *config.BackendConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

type tokenRequest struct {
	IsWeb bool   `json:"isWeb"`
	Code  string `json:"code"`
	Email string `json:"email,omitempty"`
}

type tokenResponse struct {
	SessionToken      string          `json:"session_token"`
	SessionTokenAlias string          `json:"sessionToken"`
	User              models.UserInfo `json:"user"`
}

// ExchangeToken posts the authorization code to the backend and returns the
// issued bearer token plus profile. The backend spells the token field
// either session_token or sessionToken depending on the deployment.
func (c *Client) ExchangeToken(ctx context.Context, code, email string) (string, models.UserInfo, error) {
	body, err := json.Marshal(tokenRequest{IsWeb: true, Code: code, Email: email})
	if err != nil {
		return "", models.UserInfo{}, fmt.Errorf("failed to marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/token", bytes.NewReader(body))
	if err != nil {
		return "", models.UserInfo{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", models.UserInfo{}, fmt.Errorf("failed to exchange code: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", models.UserInfo{}, fmt.Errorf("token exchange failed: status %d, body: %s", resp.StatusCode, string(raw))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", models.UserInfo{}, fmt.Errorf("failed to decode token response: %w", err)
	}

	token := tr.SessionToken
	if token == "" {
		token = tr.SessionTokenAlias
	}
	if token == "" {
		return "", models.UserInfo{}, ErrNoSessionToken
	}

	return token, tr.User, nil
}

func (c *Client) Dashboard(ctx context.Context) (*models.DashboardData, error) {
	var data models.DashboardData
	if err := c.getJSON(ctx, "/dashboard", &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) Workers(ctx context.Context) ([]models.Worker, error) {
	var workers []models.Worker
	if err := c.getJSON(ctx, "/users/list", &workers); err != nil {
		return nil, err
	}
	return workers, nil
}

func (c *Client) Tasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.getJSON(ctx, "/tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) Files(ctx context.Context) ([]models.FileRecord, error) {
	var files []models.FileRecord
	if err := c.getJSON(ctx, "/file", &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (c *Client) FeedbackList(ctx context.Context) ([]models.FeedbackEntry, error) {
	var entries []models.FeedbackEntry
	if err := c.getJSON(ctx, "/feedback/list", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) Categories(ctx context.Context) ([]models.FeedbackCategory, error) {
	var categories []models.FeedbackCategory
	if err := c.getJSON(ctx, "/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ChatHistory fetches the AI-assistant conversation. The backend expects the
// raw bearer token in the Authorization header, without a scheme prefix.
func (c *Client) ChatHistory(ctx context.Context, token string) ([]models.ChatMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/chat", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chat history: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch chat history: status %d", resp.StatusCode)
	}

	var messages []models.ChatMessage
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		return nil, fmt.Errorf("failed to decode chat history: %w", err)
	}

	return messages, nil
}

// Forward relays a request to the backend verbatim. The caller owns status
// handling and must close the response body.
func (c *Client) Forward(ctx context.Context, method, path string, body io.Reader, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if auth := header.Get("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}

	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch %s: status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	return nil
}

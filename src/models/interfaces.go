package models

import (
	"context"
)

// PlatformAPI is the slice of the backend client the page handlers depend on.
type PlatformAPI interface {
	Dashboard(ctx context.Context) (*DashboardData, error)
	Workers(ctx context.Context) ([]Worker, error)
	Tasks(ctx context.Context) ([]Task, error)
	Files(ctx context.Context) ([]FileRecord, error)
	FeedbackList(ctx context.Context) ([]FeedbackEntry, error)
	Categories(ctx context.Context) ([]FeedbackCategory, error)
	ChatHistory(ctx context.Context, token string) ([]ChatMessage, error)
}

// TokenExchanger completes the authorization-code flow against the backend.
type TokenExchanger interface {
	ExchangeToken(ctx context.Context, code, email string) (string, UserInfo, error)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/3mfound/admin-gateway/src/models"
)

// MockPlatformAPI implements models.PlatformAPI
type MockPlatformAPI struct {
	mock.Mock
}

func (m *MockPlatformAPI) Dashboard(ctx context.Context) (*models.DashboardData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardData), args.Error(1)
}

func (m *MockPlatformAPI) Workers(ctx context.Context) ([]models.Worker, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Worker), args.Error(1)
}

func (m *MockPlatformAPI) Tasks(ctx context.Context) ([]models.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockPlatformAPI) Files(ctx context.Context) ([]models.FileRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FileRecord), args.Error(1)
}

func (m *MockPlatformAPI) FeedbackList(ctx context.Context) ([]models.FeedbackEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FeedbackEntry), args.Error(1)
}

func (m *MockPlatformAPI) Categories(ctx context.Context) ([]models.FeedbackCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FeedbackCategory), args.Error(1)
}

func (m *MockPlatformAPI) ChatHistory(ctx context.Context, token string) ([]models.ChatMessage, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

// MockTokenExchanger implements models.TokenExchanger
type MockTokenExchanger struct {
	mock.Mock
}

func (m *MockTokenExchanger) ExchangeToken(ctx context.Context, code, email string) (string, models.UserInfo, error) {
	args := m.Called(ctx, code, email)
	return args.String(0), args.Get(1).(models.UserInfo), args.Error(2)
}

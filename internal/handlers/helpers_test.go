package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"PassVault/internal/config"
	"PassVault/internal/handlers"
	"PassVault/internal/middleware"
	"PassVault/internal/model"
	"PassVault/internal/repo"
	"PassVault/internal/service"
	"PassVault/internal/watch"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// Minimal mocks
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockResetRepo struct{ mock.Mock }

func (m *mockResetRepo) Create(ctx context.Context, token *model.ResetToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockResetRepo) GetByID(ctx context.Context, id string) (*model.ResetToken, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*model.ResetToken); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResetRepo) MarkUsed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repo.ResetTokenRepository = (*mockResetRepo)(nil)

type mockRecordRepo struct{ mock.Mock }

func (m *mockRecordRepo) Create(ctx context.Context, rec *model.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockRecordRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Record, error) {
	args := m.Called(ctx, ownerID)
	if v, ok := args.Get(0).([]model.Record); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRecordRepo) Delete(ctx context.Context, ownerID int64, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

var _ repo.RecordRepository = (*mockRecordRepo)(nil)

// --- Helpers ---
func newTestRouter(t *testing.T, ur repo.UserRepository, rr repo.RecordRepository) http.Handler {
	t.Helper()
	cfg := &config.Config{AuthSecret: "test-secret"}
	logger := zap.NewNop().Sugar()

	// nil-mailer: письма в тестах только логируются
	userSvc := service.NewUserService(ur, &mockResetRepo{}, nil, logger)
	vaultSvc := service.NewVaultService(rr, watch.NewHub(), logger)

	h := handlers.NewHandler(userSvc, vaultSvc, logger, cfg)
	return h.Router
}

func addAuthCookie(t *testing.T, req *http.Request, userID int64, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, secret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

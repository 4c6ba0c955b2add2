package web

import (
	"context"

	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock of ports.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in domain.RegistrationInput, origin string) error {
	args := m.Called(ctx, in, origin)
	return args.Error(0)
}

func (m *MockAuthService) ConfirmRegistration(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockAuthService) ResendConfirmation(ctx context.Context, email, origin string) error {
	args := m.Called(ctx, email, origin)
	return args.Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, creds domain.Credentials, userAgent, ip string) (domain.TokenPair, error) {
	args := m.Called(ctx, creds, userAgent, ip)
	return args.Get(0).(domain.TokenPair), args.Error(1)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, claims domain.Claims, ip string) (domain.TokenPair, error) {
	args := m.Called(ctx, claims, ip)
	return args.Get(0).(domain.TokenPair), args.Error(1)
}

func (m *MockAuthService) RecoverPassword(ctx context.Context, email, origin string) error {
	args := m.Called(ctx, email, origin)
	return args.Error(0)
}

func (m *MockAuthService) NewPassword(ctx context.Context, in domain.NewPasswordInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockAuthService) Logout(ctx context.Context, claims domain.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

func (m *MockAuthService) Me(ctx context.Context, userID int64) (domain.Me, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Me), args.Error(1)
}

func (m *MockAuthService) VerifyAccess(ctx context.Context, token string) (domain.Claims, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Claims), args.Error(1)
}

func (m *MockAuthService) VerifyRefresh(ctx context.Context, token string) (domain.Claims, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Claims), args.Error(1)
}

// MockSessionService is a mock of ports.SessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) List(ctx context.Context, userID int64) ([]domain.SessionView, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.SessionView), args.Error(1)
}

func (m *MockSessionService) TerminateOthers(ctx context.Context, userID int64, currentDeviceID string) error {
	args := m.Called(ctx, userID, currentDeviceID)
	return args.Error(0)
}

func (m *MockSessionService) Terminate(ctx context.Context, userID int64, deviceID string) error {
	args := m.Called(ctx, userID, deviceID)
	return args.Error(0)
}

// MockProfileService is a mock of ports.ProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Get(ctx context.Context, userID int64) (domain.ProfileView, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.ProfileView), args.Error(1)
}

func (m *MockProfileService) Update(ctx context.Context, userID int64, in domain.UpdateProfileInput, avatar *domain.Upload) error {
	args := m.Called(ctx, userID, in, avatar)
	return args.Error(0)
}

func (m *MockProfileService) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockPostService is a mock of ports.PostService
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) Create(ctx context.Context, userID int64, in domain.CreatePostInput, photo *domain.Upload) (domain.PostView, error) {
	args := m.Called(ctx, userID, in, photo)
	return args.Get(0).(domain.PostView), args.Error(1)
}

func (m *MockPostService) FindByID(ctx context.Context, id int64) (domain.PostView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.PostView), args.Error(1)
}

func (m *MockPostService) Update(ctx context.Context, userID, id int64, in domain.UpdatePostInput, photo *domain.Upload) error {
	args := m.Called(ctx, userID, id, in, photo)
	return args.Error(0)
}

func (m *MockPostService) Delete(ctx context.Context, userID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockPostService) ListByUser(ctx context.Context, userID int64, p domain.Paginator) (domain.PostsPage, error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).(domain.PostsPage), args.Error(1)
}

// MockAuditService is a mock of ports.AuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Log(ctx context.Context, userID int64, action domain.AuditAction, target string) {
	m.Called(ctx, userID, action, target)
}

func (m *MockAuditService) GetLogs(ctx context.Context, userID int64, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

// MockMaintenanceService is a mock of ports.MaintenanceService
type MockMaintenanceService struct {
	mock.Mock
}

func (m *MockMaintenanceService) DeleteAllData(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMaintenanceService) PurgeExpired(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var (
	_ ports.AuthService        = (*MockAuthService)(nil)
	_ ports.SessionService     = (*MockSessionService)(nil)
	_ ports.ProfileService     = (*MockProfileService)(nil)
	_ ports.PostService        = (*MockPostService)(nil)
	_ ports.AuditService       = (*MockAuditService)(nil)
	_ ports.MaintenanceService = (*MockMaintenanceService)(nil)
)

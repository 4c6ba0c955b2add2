package auth

import (
	"context"
	"errors"
	"time"

	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository implements ports.UserRepository for testing.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.user(m.Called(ctx, username))
}

func (m *MockUserRepository) GetByConfirmationCode(ctx context.Context, code string) (*domain.User, error) {
	return m.user(m.Called(ctx, code))
}

func (m *MockUserRepository) GetByRecoveryCode(ctx context.Context, code string) (*domain.User, error) {
	return m.user(m.Called(ctx, code))
}

func (m *MockUserRepository) DeleteUnconfirmedBefore(ctx context.Context, t time.Time) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) user(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockSessionRepository implements ports.SessionRepository for testing.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, s *domain.DeviceSession) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSessionRepository) Update(ctx context.Context, s *domain.DeviceSession) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSessionRepository) GetByDeviceID(ctx context.Context, deviceID string) (*domain.DeviceSession, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeviceSession), args.Error(1)
}

func (m *MockSessionRepository) ListByUser(ctx context.Context, userID int64) ([]domain.DeviceSession, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.DeviceSession), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, userID int64, deviceID string) error {
	return m.Called(ctx, userID, deviceID).Error(0)
}

func (m *MockSessionRepository) DeleteAllExcept(ctx context.Context, userID int64, deviceID string) error {
	return m.Called(ctx, userID, deviceID).Error(0)
}

func (m *MockSessionRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenIssuer implements ports.TokenIssuer for testing.
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) IssueAccess(userID int64) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenIssuer) IssueRefresh(userID int64, deviceID string) (string, domain.Claims, error) {
	args := m.Called(userID, deviceID)
	return args.String(0), args.Get(1).(domain.Claims), args.Error(2)
}

func (m *MockTokenIssuer) ParseAccess(token string) (domain.Claims, error) {
	args := m.Called(token)
	return args.Get(0).(domain.Claims), args.Error(1)
}

func (m *MockTokenIssuer) ParseRefresh(token string) (domain.Claims, error) {
	args := m.Called(token)
	return args.Get(0).(domain.Claims), args.Error(1)
}

// MockMailer implements ports.Mailer for testing.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendConfirmation(ctx context.Context, to, link string) error {
	return m.Called(ctx, to, link).Error(0)
}

func (m *MockMailer) SendPasswordRecovery(ctx context.Context, to, link string) error {
	return m.Called(ctx, to, link).Error(0)
}

// MockAuditService records audit calls.
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

// plainHasher prefixes passwords instead of hashing them.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

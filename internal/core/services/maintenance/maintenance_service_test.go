package maintenance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDataRepository struct{ mock.Mock }

func (m *MockDataRepository) DeleteAllData(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error { return nil }
func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error { return nil }
func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return nil, domain.NotFound("user")
}
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.NotFound("user")
}
func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return nil, domain.NotFound("user")
}
func (m *MockUserRepository) GetByConfirmationCode(ctx context.Context, code string) (*domain.User, error) {
	return nil, domain.NotFound("user")
}
func (m *MockUserRepository) GetByRecoveryCode(ctx context.Context, code string) (*domain.User, error) {
	return nil, domain.NotFound("user")
}
func (m *MockUserRepository) DeleteUnconfirmedBefore(ctx context.Context, t time.Time) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Create(ctx context.Context, s *domain.DeviceSession) error { return nil }
func (m *MockSessionRepository) Update(ctx context.Context, s *domain.DeviceSession) error { return nil }
func (m *MockSessionRepository) GetByDeviceID(ctx context.Context, deviceID string) (*domain.DeviceSession, error) {
	return nil, domain.NotFound("device")
}
func (m *MockSessionRepository) ListByUser(ctx context.Context, userID int64) ([]domain.DeviceSession, error) {
	return nil, nil
}
func (m *MockSessionRepository) Delete(ctx context.Context, userID int64, deviceID string) error {
	return nil
}
func (m *MockSessionRepository) DeleteAllExcept(ctx context.Context, userID int64, deviceID string) error {
	return nil
}
func (m *MockSessionRepository) DeleteAllForUser(ctx context.Context, userID int64) error { return nil }
func (m *MockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockFileStorage struct{ mock.Mock }

func (m *MockFileStorage) Save(ctx context.Context, userID int64, kind domain.UploadKind, upload *domain.Upload) (string, error) {
	return "", nil
}
func (m *MockFileStorage) Delete(ctx context.Context, link string) error { return nil }
func (m *MockFileStorage) DeleteAll(ctx context.Context, userID int64, kind domain.UploadKind) error {
	return nil
}
func (m *MockFileStorage) Purge(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type fixture struct {
	svc      *Service
	data     *MockDataRepository
	users    *MockUserRepository
	sessions *MockSessionRepository
	files    *MockFileStorage
}

func newFixture() *fixture {
	f := &fixture{
		data:     new(MockDataRepository),
		users:    new(MockUserRepository),
		sessions: new(MockSessionRepository),
		files:    new(MockFileStorage),
	}
	logger, _ := test.NewNullLogger()
	f.svc = NewService(f.data, f.users, f.sessions, f.files, logger)
	return f
}

func TestService_DeleteAllData(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.data.On("DeleteAllData", ctx).Return(nil)
	f.files.On("Purge", ctx).Return(nil)

	require.NoError(t, f.svc.DeleteAllData(ctx))
	f.data.AssertExpectations(t)
	f.files.AssertExpectations(t)
}

func TestService_DeleteAllData_StopsOnDBError(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.data.On("DeleteAllData", ctx).Return(errors.New("locked"))

	assert.Error(t, f.svc.DeleteAllData(ctx))
	f.files.AssertNotCalled(t, "Purge", mock.Anything)
}

func TestService_PurgeExpired(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	before := testutil.ToFloat64(telemetry.JanitorPurged.WithLabelValues("sessions"))
	f.sessions.On("DeleteExpired", ctx, now).Return(int64(3), nil)
	f.users.On("DeleteUnconfirmedBefore", ctx, now).Return(int64(1), nil)

	require.NoError(t, f.svc.PurgeExpired(ctx))
	assert.Equal(t, before+3, testutil.ToFloat64(telemetry.JanitorPurged.WithLabelValues("sessions")))
}

func TestJanitor_InvalidSpec(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := NewJanitor(newFixture().svc, "not a schedule", logger)
	assert.Error(t, err)

	j, err := NewJanitor(newFixture().svc, "@every 10m", logger)
	require.NoError(t, err)
	j.Start()
	j.Stop(context.Background())
}

package storage

import (
	"context"
	"time"

	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"gorm.io/gorm"
)

// SessionRepo implements ports.SessionRepository.
type SessionRepo struct {
	db *gorm.DB
}

// Ensure interface compliance
var _ ports.SessionRepository = (*SessionRepo)(nil)

func (r *SessionRepo) Create(ctx context.Context, s *domain.DeviceSession) error {
	model := sessionToModel(s)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	s.ID = model.ID
	return nil
}

func (r *SessionRepo) Update(ctx context.Context, s *domain.DeviceSession) error {
	model := sessionToModel(s)
	return r.db.WithContext(ctx).Save(&model).Error
}

func (r *SessionRepo) GetByDeviceID(ctx context.Context, deviceID string) (*domain.DeviceSession, error) {
	var model SessionModel
	if err := r.db.WithContext(ctx).Where("device_id = ?", deviceID).First(&model).Error; err != nil {
		return nil, notFound(err, "device")
	}
	return sessionToDomain(model), nil
}

// ListByUser returns the user's sessions, most recently active first.
func (r *SessionRepo) ListByUser(ctx context.Context, userID int64) ([]domain.DeviceSession, error) {
	var models []SessionModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_active_at desc").
		Find(&models).Error; err != nil {
		return nil, err
	}

	sessions := make([]domain.DeviceSession, len(models))
	for i, m := range models {
		sessions[i] = *sessionToDomain(m)
	}
	return sessions, nil
}

// Delete removes one device session. Deleting a missing row is not an error.
func (r *SessionRepo) Delete(ctx context.Context, userID int64, deviceID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND device_id = ?", userID, deviceID).
		Delete(&SessionModel{}).Error
}

func (r *SessionRepo) DeleteAllExcept(ctx context.Context, userID int64, deviceID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND device_id <> ?", userID, deviceID).
		Delete(&SessionModel{}).Error
}

func (r *SessionRepo) DeleteAllForUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&SessionModel{}).Error
}

// DeleteExpired removes sessions whose refresh token expired before now.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now.UTC()).Delete(&SessionModel{})
	return res.RowsAffected, res.Error
}

package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"github.com/lcalzada-xor/snapgram/internal/telemetry"
	"github.com/sirupsen/logrus"
)

var _ ports.MaintenanceService = (*Service)(nil)

// Service wipes test data and purges stale accounts and sessions.
type Service struct {
	data     ports.DataRepository
	users    ports.UserRepository
	sessions ports.SessionRepository
	files    ports.FileStorage
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewService(data ports.DataRepository, users ports.UserRepository, sessions ports.SessionRepository, files ports.FileStorage, log logrus.FieldLogger) *Service {
	return &Service{data: data, users: users, sessions: sessions, files: files, log: log, now: time.Now}
}

// DeleteAllData wipes every table, then the uploaded content.
func (s *Service) DeleteAllData(ctx context.Context) error {
	if err := s.data.DeleteAllData(ctx); err != nil {
		return fmt.Errorf("delete all data: %w", err)
	}
	if err := s.files.Purge(ctx); err != nil {
		return fmt.Errorf("purge content: %w", err)
	}
	s.log.Warn("all data deleted")
	return nil
}

// PurgeExpired removes sessions past their refresh expiry and accounts that
// were never confirmed before their code expired.
func (s *Service) PurgeExpired(ctx context.Context) error {
	now := s.now().UTC()

	sessions, err := s.sessions.DeleteExpired(ctx, now)
	if err != nil {
		return fmt.Errorf("purge sessions: %w", err)
	}
	users, err := s.users.DeleteUnconfirmedBefore(ctx, now)
	if err != nil {
		return fmt.Errorf("purge users: %w", err)
	}

	telemetry.JanitorPurged.WithLabelValues("sessions").Add(float64(sessions))
	telemetry.JanitorPurged.WithLabelValues("users").Add(float64(users))
	if sessions+users > 0 {
		s.log.WithFields(logrus.Fields{
			"sessions": sessions,
			"users":    users,
		}).Info("purged expired records")
	}
	return nil
}

package sessions

import (
	"context"
	"errors"

	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
)

var _ ports.SessionService = (*Service)(nil)

// Service manages the devices a user is logged in from.
type Service struct {
	repo  ports.SessionRepository
	audit ports.AuditService
}

func NewService(repo ports.SessionRepository, audit ports.AuditService) *Service {
	return &Service{repo: repo, audit: audit}
}

// List returns the device sessions of userID.
func (s *Service) List(ctx context.Context, userID int64) ([]domain.SessionView, error) {
	sessions, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.SessionView, len(sessions))
	for i := range sessions {
		views[i] = sessions[i].View()
	}
	return views, nil
}

// TerminateOthers logs the user out of every device but the current one.
func (s *Service) TerminateOthers(ctx context.Context, userID int64, currentDeviceID string) error {
	if err := s.repo.DeleteAllExcept(ctx, userID, currentDeviceID); err != nil {
		return err
	}
	s.audit.Log(ctx, userID, domain.ActionSessionTerminated, "all-except:"+currentDeviceID)
	return nil
}

// Terminate logs out a single device of the user.
func (s *Service) Terminate(ctx context.Context, userID int64, deviceID string) error {
	session, err := s.repo.GetByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("device")
		}
		return err
	}
	if session.UserID != userID {
		return domain.Forbidden("device belongs to another user")
	}

	if err := s.repo.Delete(ctx, userID, deviceID); err != nil {
		return err
	}
	s.audit.Log(ctx, userID, domain.ActionSessionTerminated, deviceID)
	return nil
}

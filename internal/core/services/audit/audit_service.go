package audit

import (
	"context"

	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// DefaultLimit caps GetLogs when the caller passes no positive limit.
const DefaultLimit = 50

var _ ports.AuditService = (*AuditService)(nil)

// AuditService records security relevant account actions.
type AuditService struct {
	repo ports.AuditRepository
	log  logrus.FieldLogger
}

func NewAuditService(repo ports.AuditRepository, log logrus.FieldLogger) *AuditService {
	return &AuditService{repo: repo, log: log}
}

// Log records an action. Audit failures never fail the caller's operation,
// they are only logged.
func (s *AuditService) Log(ctx context.Context, userID int64, action domain.AuditAction, target string) {
	entry, err := domain.NewAuditLog(userID, action, target, domain.ClientIP(ctx))
	if err != nil {
		s.log.WithError(err).WithField("action", action).Warn("audit entry rejected")
		return
	}

	if err := s.repo.SaveAuditLog(ctx, *entry); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"action":  action,
		}).Error("failed to save audit entry")
	}
}

// GetLogs returns the newest entries for userID, at most DefaultLimit.
func (s *AuditService) GetLogs(ctx context.Context, userID int64, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}
	return s.repo.ListAuditLogs(ctx, userID, limit)
}

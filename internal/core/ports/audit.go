package ports

import (
	"context"

	"github.com/lcalzada-xor/snapgram/internal/core/domain"
)

// AuditService handles the high-level business requirement for action tracking.
type AuditService interface {
	// Log records a security-sensitive action of userID.
	Log(ctx context.Context, userID int64, action domain.AuditAction, target string)

	// GetLogs retrieves the latest audit records of a user.
	GetLogs(ctx context.Context, userID int64, limit int) ([]domain.AuditLog, error)
}

// AuditRepository handles the low-level persistence of audit data.
type AuditRepository interface {
	// SaveAuditLog persists a single audit entry.
	SaveAuditLog(ctx context.Context, log domain.AuditLog) error

	// ListAuditLogs retrieves audit entries of a user with a result limit.
	ListAuditLogs(ctx context.Context, userID int64, limit int) ([]domain.AuditLog, error)
}

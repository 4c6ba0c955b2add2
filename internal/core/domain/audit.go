package domain

import (
	"errors"
	"strconv"
	"time"
)

// AuditAction represents a type-safe action identifier for the audit log.
type AuditAction string

// Account and content audit actions
const (
	ActionRegistration      AuditAction = "REGISTRATION"
	ActionConfirmation      AuditAction = "CONFIRMATION"
	ActionLogin             AuditAction = "LOGIN"
	ActionLogout            AuditAction = "LOGOUT"
	ActionTokenRefresh      AuditAction = "TOKEN_REFRESH"
	ActionPasswordRecovery  AuditAction = "PASSWORD_RECOVERY"
	ActionPasswordChanged   AuditAction = "PASSWORD_CHANGED"
	ActionSessionTerminated AuditAction = "SESSION_TERMINATED"
	ActionProfileUpdated    AuditAction = "PROFILE_UPDATED"
	ActionProfileDeleted    AuditAction = "PROFILE_DELETED"
	ActionPostCreated       AuditAction = "POST_CREATED"
	ActionPostUpdated       AuditAction = "POST_UPDATED"
	ActionPostDeleted       AuditAction = "POST_DELETED"
)

// Domain Errors
var (
	ErrInvalidAction = errors.New("invalid audit action")
	ErrMissingUser   = errors.New("user identification is required for auditing")
)

// AuditLog represents a record of a security-sensitive account action.
type AuditLog struct {
	ID        uint        `json:"id"`
	UserID    int64       `json:"userId"`
	Action    AuditAction `json:"action"`
	Target    string      `json:"target"` // The resource affected (device id, post id, email)
	IPAddress string      `json:"ip"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewAuditLog is the designated factory for creating valid AuditLog entities.
func NewAuditLog(userID int64, action AuditAction, target, ip string) (*AuditLog, error) {
	if userID <= 0 {
		return nil, ErrMissingUser
	}
	if !isValidAction(action) {
		return nil, ErrInvalidAction
	}

	return &AuditLog{
		UserID:    userID,
		Action:    action,
		Target:    target,
		IPAddress: ip,
		Timestamp: time.Now().UTC(),
	}, nil
}

// TargetID formats a numeric resource id as an audit target.
func TargetID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func isValidAction(action AuditAction) bool {
	switch action {
	case ActionRegistration, ActionConfirmation, ActionLogin, ActionLogout,
		ActionTokenRefresh, ActionPasswordRecovery, ActionPasswordChanged,
		ActionSessionTerminated, ActionProfileUpdated, ActionProfileDeleted,
		ActionPostCreated, ActionPostUpdated, ActionPostDeleted:
		return true
	}
	return false
}

package domain

import (
	"time"
)

// User represents a registered account.
// This is a pure domain entity, decoupled from infrastructure (DB tags).
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose hash in JSON
	CreatedAt    time.Time `json:"createdAt"`

	IsConfirmed           bool      `json:"-"`
	ConfirmationCode      string    `json:"-"`
	ConfirmationExpiresAt time.Time `json:"-"`

	RecoveryCode      string    `json:"-"`
	RecoveryExpiresAt time.Time `json:"-"`
}

// NewUser creates an unconfirmed user awaiting email confirmation.
func NewUser(username, email, passwordHash, confirmationCode string, confirmationTTL time.Duration, now time.Time) *User {
	now = now.UTC()
	return &User{
		Username:              username,
		Email:                 email,
		PasswordHash:          passwordHash,
		CreatedAt:             now,
		ConfirmationCode:      confirmationCode,
		ConfirmationExpiresAt: now.Add(confirmationTTL),
	}
}

// CanBeConfirmed reports whether code confirms this user at time now.
func (u *User) CanBeConfirmed(code string, now time.Time) bool {
	if u.IsConfirmed || u.ConfirmationCode == "" || u.ConfirmationCode != code {
		return false
	}
	return now.Before(u.ConfirmationExpiresAt)
}

// Confirm marks the email as confirmed.
func (u *User) Confirm() {
	u.IsConfirmed = true
	u.ConfirmationCode = ""
	u.ConfirmationExpiresAt = time.Time{}
}

// RotateConfirmation replaces the pending confirmation code.
func (u *User) RotateConfirmation(code string, ttl time.Duration, now time.Time) {
	u.ConfirmationCode = code
	u.ConfirmationExpiresAt = now.UTC().Add(ttl)
}

// StartRecovery stores a password recovery code.
func (u *User) StartRecovery(code string, ttl time.Duration, now time.Time) {
	u.RecoveryCode = code
	u.RecoveryExpiresAt = now.UTC().Add(ttl)
}

// CanRecover reports whether code is a live recovery code at time now.
func (u *User) CanRecover(code string, now time.Time) bool {
	if u.RecoveryCode == "" || u.RecoveryCode != code {
		return false
	}
	return now.Before(u.RecoveryExpiresAt)
}

// ChangePassword stores a new hash and burns the recovery code.
func (u *User) ChangePassword(hash string) {
	u.PasswordHash = hash
	u.RecoveryCode = ""
	u.RecoveryExpiresAt = time.Time{}
}

// --- DTOs / Request Objects ---

// RegistrationInput is the registration request body.
type RegistrationInput struct {
	Username string `json:"username" validate:"required,min=6,max=30,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=20"`
}

// Credentials represents the login request body.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// NewPasswordInput is the body of the new-password request.
type NewPasswordInput struct {
	NewPassword  string `json:"newPassword" validate:"required,min=6,max=20"`
	RecoveryCode string `json:"recoveryCode" validate:"required"`
}

// Me is the view of the authenticated user.
type Me struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	UserID   int64  `json:"userId"`
}

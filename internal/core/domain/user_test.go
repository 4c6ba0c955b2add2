package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var clock = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestUser_Confirmation(t *testing.T) {
	u := NewUser("john_doe", "john@example.com", "hash", "code-1", time.Hour, clock)

	assert.Equal(t, clock, u.CreatedAt)
	assert.Equal(t, clock.Add(time.Hour), u.ConfirmationExpiresAt)
	assert.False(t, u.IsConfirmed)
	assert.False(t, u.CanBeConfirmed("other", clock))
	assert.True(t, u.CanBeConfirmed("code-1", clock.Add(time.Hour-time.Second)))
	assert.False(t, u.CanBeConfirmed("code-1", clock.Add(time.Hour)), "expires exactly at the deadline")

	u.Confirm()
	assert.True(t, u.IsConfirmed)
	assert.Empty(t, u.ConfirmationCode)
	assert.False(t, u.CanBeConfirmed("code-1", clock), "already confirmed")
}

func TestUser_RotateConfirmation(t *testing.T) {
	u := NewUser("john_doe", "john@example.com", "hash", "code-1", time.Hour, clock)
	later := clock.Add(50 * time.Minute)
	u.RotateConfirmation("code-2", time.Hour, later)

	assert.False(t, u.CanBeConfirmed("code-1", later))
	assert.True(t, u.CanBeConfirmed("code-2", clock.Add(90*time.Minute)), "deadline moves with the new code")
	assert.False(t, u.CanBeConfirmed("code-2", later.Add(time.Hour)))
}

func TestUser_Recovery(t *testing.T) {
	u := NewUser("john_doe", "john@example.com", "old", "", time.Hour, clock)
	assert.False(t, u.CanRecover("", clock), "no recovery started")

	u.StartRecovery("rec-1", time.Minute, clock)
	assert.Equal(t, clock.Add(time.Minute), u.RecoveryExpiresAt)
	assert.True(t, u.CanRecover("rec-1", clock.Add(59*time.Second)))
	assert.False(t, u.CanRecover("rec-1", clock.Add(time.Minute)))

	u.ChangePassword("new")
	assert.Equal(t, "new", u.PasswordHash)
	assert.False(t, u.CanRecover("rec-1", clock), "code is single use")
}

package ports

import (
	"context"
	"time"

	"github.com/lcalzada-xor/snapgram/internal/core/domain"
)

// AuthService defines the business logic for authentication.
type AuthService interface {
	// Register creates an unconfirmed user and mails the confirmation link.
	Register(ctx context.Context, in domain.RegistrationInput, origin string) error
	// ConfirmRegistration confirms the email behind a confirmation code.
	ConfirmRegistration(ctx context.Context, code string) error
	// ResendConfirmation issues a fresh confirmation code.
	ResendConfirmation(ctx context.Context, email, origin string) error
	// Login validates credentials and opens a session for a new device.
	Login(ctx context.Context, creds domain.Credentials, userAgent, ip string) (domain.TokenPair, error)
	// RefreshTokens rotates the token pair of an existing device session.
	RefreshTokens(ctx context.Context, claims domain.Claims, ip string) (domain.TokenPair, error)
	// RecoverPassword mails a recovery code.
	RecoverPassword(ctx context.Context, email, origin string) error
	// NewPassword sets a password from a recovery code.
	NewPassword(ctx context.Context, in domain.NewPasswordInput) error
	// Logout closes the device session of the refresh token.
	Logout(ctx context.Context, claims domain.Claims) error
	// Me returns the authenticated user's view.
	Me(ctx context.Context, userID int64) (domain.Me, error)
	// VerifyAccess checks a bearer access token.
	VerifyAccess(ctx context.Context, token string) (domain.Claims, error)
	// VerifyRefresh checks a refresh token against its device session.
	VerifyRefresh(ctx context.Context, token string) (domain.Claims, error)
}

// UserRepository defines the persistence layer for users.
type UserRepository interface {
	// Create inserts a user and sets its ID.
	Create(ctx context.Context, user *domain.User) error
	// Update saves every field of an existing user.
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByConfirmationCode(ctx context.Context, code string) (*domain.User, error)
	GetByRecoveryCode(ctx context.Context, code string) (*domain.User, error)
	// DeleteUnconfirmedBefore removes users whose confirmation expired before t.
	DeleteUnconfirmedBefore(ctx context.Context, t time.Time) (int64, error)
}

// TokenIssuer signs and verifies JWTs.
type TokenIssuer interface {
	IssueAccess(userID int64) (string, error)
	IssueRefresh(userID int64, deviceID string) (string, domain.Claims, error)
	ParseAccess(token string) (domain.Claims, error)
	ParseRefresh(token string) (domain.Claims, error)
}

// PasswordHasher hashes and compares passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

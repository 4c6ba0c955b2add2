package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"github.com/lcalzada-xor/snapgram/internal/telemetry"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = domain.Unauthorized("invalid credentials")
	ErrInvalidSession     = domain.Unauthorized("invalid session")
	ErrInvalidToken       = domain.Unauthorized("invalid token")
)

// Config holds the lifetimes of the emailed codes.
type Config struct {
	ConfirmationTTL time.Duration
	RecoveryTTL     time.Duration
}

// Deps groups the collaborators of AuthService.
type Deps struct {
	Users    ports.UserRepository
	Sessions ports.SessionRepository
	Tokens   ports.TokenIssuer
	Hasher   ports.PasswordHasher
	Mailer   ports.Mailer
	Audit    ports.AuditService
	Log      logrus.FieldLogger
}

// AuthService implements ports.AuthService.
// It coordinates credentials validation and device session management.
type AuthService struct {
	Deps
	cfg   Config
	now   func() time.Time
	newID func() string
}

var _ ports.AuthService = (*AuthService)(nil)

// NewAuthService creates a new authentication service instance.
func NewAuthService(deps Deps, cfg Config) *AuthService {
	return &AuthService{
		Deps:  deps,
		cfg:   cfg,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Register creates an unconfirmed account and mails the confirmation link.
func (s *AuthService) Register(ctx context.Context, in domain.RegistrationInput, origin string) error {
	if err := s.ensureFree(ctx, in.Email, in.Username); err != nil {
		return err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return err
	}

	user := domain.NewUser(in.Username, in.Email, hash, s.newID(), s.cfg.ConfirmationTTL, s.now())
	if err := s.Users.Create(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	s.Audit.Log(ctx, user.ID, domain.ActionRegistration, user.Email)
	telemetry.AuthEvents.WithLabelValues("registration").Inc()

	s.sendConfirmation(ctx, user, origin)
	return nil
}

// ConfirmRegistration confirms the account holding code.
func (s *AuthService) ConfirmRegistration(ctx context.Context, code string) error {
	user, err := s.Users.GetByConfirmationCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewFieldError("code", "invalid code")
		}
		return err
	}
	if !user.CanBeConfirmed(code, s.now()) {
		return domain.NewFieldError("code", "invalid code")
	}

	user.Confirm()
	if err := s.Users.Update(ctx, user); err != nil {
		return fmt.Errorf("confirm user: %w", err)
	}

	s.Audit.Log(ctx, user.ID, domain.ActionConfirmation, user.Email)
	return nil
}

// ResendConfirmation rotates the confirmation code of an unconfirmed account.
func (s *AuthService) ResendConfirmation(ctx context.Context, email, origin string) error {
	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewFieldError("email", "invalid email")
		}
		return err
	}
	if user.IsConfirmed {
		return domain.NewFieldError("email", "email already confirmed")
	}

	user.RotateConfirmation(s.newID(), s.cfg.ConfirmationTTL, s.now())
	if err := s.Users.Update(ctx, user); err != nil {
		return fmt.Errorf("rotate confirmation: %w", err)
	}

	s.sendConfirmation(ctx, user, origin)
	return nil
}

// Login validates credentials and opens a session on a new device.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials, userAgent, ip string) (domain.TokenPair, error) {
	user, err := s.Users.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			telemetry.AuthEvents.WithLabelValues("login_failed").Inc()
			return domain.TokenPair{}, ErrInvalidCredentials // Generic error to avoid enumeration
		}
		return domain.TokenPair{}, err
	}

	if !user.IsConfirmed || s.Hasher.Compare(user.PasswordHash, creds.Password) != nil {
		telemetry.AuthEvents.WithLabelValues("login_failed").Inc()
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	deviceID := s.newID()
	pair, err := s.issuePair(user.ID, deviceID)
	if err != nil {
		return domain.TokenPair{}, err
	}

	session := domain.NewDeviceSession(user.ID, deviceID, ip, userAgent, pair.Refresh)
	if err := s.Sessions.Create(ctx, session); err != nil {
		return domain.TokenPair{}, fmt.Errorf("create session: %w", err)
	}

	s.Audit.Log(ctx, user.ID, domain.ActionLogin, deviceID)
	telemetry.AuthEvents.WithLabelValues("login").Inc()
	return pair, nil
}

// RefreshTokens issues a new pair for the device in claims and moves the
// session to the new refresh token.
func (s *AuthService) RefreshTokens(ctx context.Context, claims domain.Claims, ip string) (domain.TokenPair, error) {
	session, err := s.currentSession(ctx, claims)
	if err != nil {
		return domain.TokenPair{}, err
	}

	pair, err := s.issuePair(claims.UserID, claims.DeviceID)
	if err != nil {
		return domain.TokenPair{}, err
	}

	session.Rotate(ip, pair.Refresh)
	if err := s.Sessions.Update(ctx, session); err != nil {
		return domain.TokenPair{}, fmt.Errorf("rotate session: %w", err)
	}

	s.Audit.Log(ctx, claims.UserID, domain.ActionTokenRefresh, claims.DeviceID)
	telemetry.AuthEvents.WithLabelValues("refresh").Inc()
	return pair, nil
}

// RecoverPassword mails a recovery link to a registered email.
func (s *AuthService) RecoverPassword(ctx context.Context, email, origin string) error {
	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewFieldError("email", "invalid email")
		}
		return err
	}

	user.StartRecovery(s.newID(), s.cfg.RecoveryTTL, s.now())
	if err := s.Users.Update(ctx, user); err != nil {
		return fmt.Errorf("start recovery: %w", err)
	}

	link := origin + "/auth/new-password?recoveryCode=" + user.RecoveryCode
	if err := s.Mailer.SendPasswordRecovery(ctx, user.Email, link); err != nil {
		s.Log.WithError(err).WithField("user_id", user.ID).Error("failed to send recovery email")
	}

	s.Audit.Log(ctx, user.ID, domain.ActionPasswordRecovery, user.Email)
	return nil
}

// NewPassword sets a new password from a recovery code and logs the user out
// of every device.
func (s *AuthService) NewPassword(ctx context.Context, in domain.NewPasswordInput) error {
	user, err := s.Users.GetByRecoveryCode(ctx, in.RecoveryCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewFieldError("recoveryCode", "invalid recoveryCode")
		}
		return err
	}
	if !user.CanRecover(in.RecoveryCode, s.now()) {
		return domain.NewFieldError("recoveryCode", "invalid recoveryCode")
	}

	hash, err := s.Hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	user.ChangePassword(hash)
	if err := s.Users.Update(ctx, user); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if err := s.Sessions.DeleteAllForUser(ctx, user.ID); err != nil {
		return fmt.Errorf("drop sessions: %w", err)
	}

	s.Audit.Log(ctx, user.ID, domain.ActionPasswordChanged, user.Email)
	return nil
}

// Logout closes the device session the refresh token belongs to.
func (s *AuthService) Logout(ctx context.Context, claims domain.Claims) error {
	if _, err := s.currentSession(ctx, claims); err != nil {
		return err
	}
	if err := s.Sessions.Delete(ctx, claims.UserID, claims.DeviceID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.Audit.Log(ctx, claims.UserID, domain.ActionLogout, claims.DeviceID)
	telemetry.AuthEvents.WithLabelValues("logout").Inc()
	return nil
}

// Me returns the public identity of the access token holder.
func (s *AuthService) Me(ctx context.Context, userID int64) (domain.Me, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Me{}, ErrInvalidSession
		}
		return domain.Me{}, err
	}
	return domain.Me{Email: user.Email, Username: user.Username, UserID: user.ID}, nil
}

// VerifyAccess checks a bearer access token.
func (s *AuthService) VerifyAccess(ctx context.Context, token string) (domain.Claims, error) {
	claims, err := s.Tokens.ParseAccess(token)
	if err != nil {
		return domain.Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// VerifyRefresh checks a refresh token against the stored device session.
// A token that was already rotated away is rejected.
func (s *AuthService) VerifyRefresh(ctx context.Context, token string) (domain.Claims, error) {
	claims, err := s.Tokens.ParseRefresh(token)
	if err != nil {
		return domain.Claims{}, ErrInvalidToken
	}
	if _, err := s.currentSession(ctx, claims); err != nil {
		return domain.Claims{}, err
	}
	return claims, nil
}

// Private helpers

func (s *AuthService) ensureFree(ctx context.Context, email, username string) error {
	var fields domain.FieldErrors

	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		fields = append(fields, domain.FieldError{Field: "email", Message: "email already exists"})
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	if _, err := s.Users.GetByUsername(ctx, username); err == nil {
		fields = append(fields, domain.FieldError{Field: "username", Message: "username already exists"})
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	if len(fields) > 0 {
		return fields
	}
	return nil
}

func (s *AuthService) currentSession(ctx context.Context, claims domain.Claims) (*domain.DeviceSession, error) {
	session, err := s.Sessions.GetByDeviceID(ctx, claims.DeviceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	if !session.Matches(claims) {
		return nil, ErrInvalidSession
	}
	return session, nil
}

func (s *AuthService) issuePair(userID int64, deviceID string) (domain.TokenPair, error) {
	access, err := s.Tokens.IssueAccess(userID)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, claims, err := s.Tokens.IssueRefresh(userID, deviceID)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh, Refresh: claims}, nil
}

func (s *AuthService) sendConfirmation(ctx context.Context, user *domain.User, origin string) {
	link := origin + "/auth/registration-confirmation?code=" + user.ConfirmationCode
	if err := s.Mailer.SendConfirmation(ctx, user.Email, link); err != nil {
		s.Log.WithError(err).WithField("user_id", user.ID).Error("failed to send confirmation email")
	}
}

package ports

import (
	"context"
	"time"

	"github.com/lcalzada-xor/snapgram/internal/core/domain"
)

// SessionService manages the devices a user is logged in from.
type SessionService interface {
	List(ctx context.Context, userID int64) ([]domain.SessionView, error)
	TerminateOthers(ctx context.Context, userID int64, currentDeviceID string) error
	Terminate(ctx context.Context, userID int64, deviceID string) error
}

// SessionRepository persists device sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *domain.DeviceSession) error
	Update(ctx context.Context, s *domain.DeviceSession) error
	GetByDeviceID(ctx context.Context, deviceID string) (*domain.DeviceSession, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.DeviceSession, error)
	Delete(ctx context.Context, userID int64, deviceID string) error
	DeleteAllExcept(ctx context.Context, userID int64, deviceID string) error
	DeleteAllForUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// ProfileService handles the current user's profile.
type ProfileService interface {
	Get(ctx context.Context, userID int64) (domain.ProfileView, error)
	Update(ctx context.Context, userID int64, in domain.UpdateProfileInput, avatar *domain.Upload) error
	Delete(ctx context.Context, userID int64) error
}

// ProfileRepository persists profiles.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	// Save creates or updates the profile of p.UserID.
	Save(ctx context.Context, p *domain.Profile) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// PostService handles user posts.
type PostService interface {
	Create(ctx context.Context, userID int64, in domain.CreatePostInput, photo *domain.Upload) (domain.PostView, error)
	FindByID(ctx context.Context, id int64) (domain.PostView, error)
	Update(ctx context.Context, userID, id int64, in domain.UpdatePostInput, photo *domain.Upload) error
	Delete(ctx context.Context, userID, id int64) error
	ListByUser(ctx context.Context, userID int64, p domain.Paginator) (domain.PostsPage, error)
}

// PostRepository persists posts.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) error
	Update(ctx context.Context, p *domain.Post) error
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64, p domain.Paginator) ([]domain.Post, int64, error)
}

// FileStorage stores uploaded content and returns public links.
type FileStorage interface {
	// Save validates and writes an upload, returning its public link.
	Save(ctx context.Context, userID int64, kind domain.UploadKind, upload *domain.Upload) (string, error)
	// Delete removes the file behind a link. Unknown links are ignored.
	Delete(ctx context.Context, link string) error
	// DeleteAll removes every file of a kind for a user.
	DeleteAll(ctx context.Context, userID int64, kind domain.UploadKind) error
	// Purge removes all stored content.
	Purge(ctx context.Context) error
}

// Mailer sends account emails.
type Mailer interface {
	SendConfirmation(ctx context.Context, to, link string) error
	SendPasswordRecovery(ctx context.Context, to, link string) error
}

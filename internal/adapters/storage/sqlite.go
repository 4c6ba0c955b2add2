package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// SQLiteAdapter implements the repository ports using GORM and SQLite.
type SQLiteAdapter struct {
	db *gorm.DB
}

// UserModel is the GORM model for users.
type UserModel struct {
	ID                    int64  `gorm:"primaryKey;autoIncrement"`
	Username              string `gorm:"uniqueIndex;not null"`
	Email                 string `gorm:"uniqueIndex;not null"`
	PasswordHash          string `gorm:"not null"`
	CreatedAt             time.Time
	IsConfirmed           bool   `gorm:"index"`
	ConfirmationCode      string `gorm:"index"`
	ConfirmationExpiresAt time.Time
	RecoveryCode          string `gorm:"index"`
	RecoveryExpiresAt     time.Time
}

// SessionModel stores one row per logged in device.
type SessionModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	UserID       int64  `gorm:"index;not null"`
	DeviceID     string `gorm:"uniqueIndex;not null"`
	IP           string
	Title        string
	IssuedAt     time.Time
	ExpiresAt    time.Time `gorm:"index"`
	LastActiveAt time.Time
}

// ProfileModel is the GORM model for profiles, keyed by owner.
type ProfileModel struct {
	UserID      int64 `gorm:"primaryKey;autoIncrement:false"`
	Name        string
	SurName     string
	DateOfBirth *time.Time
	City        string
	AboutMe     string
	PhotoLink   string
	UpdatedAt   time.Time
}

// PostModel is the GORM model for posts.
type PostModel struct {
	ID          int64 `gorm:"primaryKey;autoIncrement"`
	UserID      int64 `gorm:"index;not null"`
	Description string
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time

	Photos []PostPhotoModel `gorm:"foreignKey:PostID"`
}

// PostPhotoModel stores the photo links of a post in upload order.
type PostPhotoModel struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	PostID   int64  `gorm:"index;not null"`
	Link     string `gorm:"not null"`
	Position int
}

// AuditLogModel is the GORM model for audit entries.
type AuditLogModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    int64  `gorm:"index"`
	Action    string `gorm:"index"`
	Target    string
	IPAddress string
	Timestamp time.Time `gorm:"index"`
}

// NewSQLiteAdapter initializes the database and migrates schema.
func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, fmt.Errorf("failed to install tracing plugin: %w", err)
	}

	// SQLite serializes writers, one connection avoids "database is locked"
	// and keeps :memory: databases on a single handle.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &SQLiteAdapter{db: db}, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&UserModel{}, &SessionModel{}, &ProfileModel{}, &PostModel{}, &PostPhotoModel{}, &AuditLogModel{}); err != nil {
		return err
	}

	// Create Indices for Performance
	db.Exec("CREATE INDEX IF NOT EXISTS idx_posts_user_created ON post_models(user_id, created_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_photos_post_position ON post_photo_models(post_id, position)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_unconfirmed ON user_models(is_confirmed, confirmation_expires_at)")

	return nil
}

// DeleteAllData wipes every table in one transaction.
func (a *SQLiteAdapter) DeleteAllData(ctx context.Context) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&SessionModel{}, &PostPhotoModel{}, &PostModel{}, &ProfileModel{}, &AuditLogModel{}, &UserModel{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Ping checks the database handle.
func (a *SQLiteAdapter) Ping(ctx context.Context) error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (a *SQLiteAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Users returns the user repository.
func (a *SQLiteAdapter) Users() *UserRepo { return &UserRepo{db: a.db} }

// Sessions returns the device session repository.
func (a *SQLiteAdapter) Sessions() *SessionRepo { return &SessionRepo{db: a.db} }

// Profiles returns the profile repository.
func (a *SQLiteAdapter) Profiles() *ProfileRepo { return &ProfileRepo{db: a.db} }

// Posts returns the post repository.
func (a *SQLiteAdapter) Posts() *PostRepo { return &PostRepo{db: a.db} }

// notFound maps gorm.ErrRecordNotFound to a domain not found error.
func notFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFound(resource)
	}
	return err
}

// Ensure interface compliance
var _ ports.DataRepository = (*SQLiteAdapter)(nil)

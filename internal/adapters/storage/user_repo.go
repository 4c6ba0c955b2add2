package storage

import (
	"context"
	"errors"
	"time"

	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"gorm.io/gorm"
)

// UserRepo implements ports.UserRepository.
type UserRepo struct {
	db *gorm.DB
}

// Ensure interface compliance
var _ ports.UserRepository = (*UserRepo)(nil)

// Create inserts a user and sets its ID.
func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	model := userToModel(user)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.conflicts(ctx, user)
		}
		return err
	}
	user.ID = model.ID
	return nil
}

// conflicts names the unique columns already held by another row. The
// translated driver error does not say which index was violated.
func (r *UserRepo) conflicts(ctx context.Context, user *domain.User) error {
	var fields domain.FieldErrors
	for _, c := range []struct{ field, value string }{
		{"email", user.Email},
		{"username", user.Username},
	} {
		var n int64
		if err := r.db.WithContext(ctx).Model(&UserModel{}).Where(c.field+" = ?", c.value).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			fields = append(fields, domain.FieldError{Field: c.field, Message: c.field + " already exists"})
		}
	}
	if len(fields) == 0 {
		return domain.NewFieldError("email", "email already exists")
	}
	return fields
}

// Update saves every field of an existing user.
func (r *UserRepo) Update(ctx context.Context, user *domain.User) error {
	model := userToModel(user)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewFieldError("username", "username already taken")
		}
		return err
	}
	return nil
}

// GetByID retrieves a user by their ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByEmail retrieves a user by their email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

// GetByUsername retrieves a user by their username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.first(ctx, "username = ?", username)
}

// GetByConfirmationCode retrieves the user waiting on a confirmation code.
func (r *UserRepo) GetByConfirmationCode(ctx context.Context, code string) (*domain.User, error) {
	if code == "" {
		return nil, domain.NotFound("user")
	}
	return r.first(ctx, "confirmation_code = ?", code)
}

// GetByRecoveryCode retrieves the user holding a recovery code.
func (r *UserRepo) GetByRecoveryCode(ctx context.Context, code string) (*domain.User, error) {
	if code == "" {
		return nil, domain.NotFound("user")
	}
	return r.first(ctx, "recovery_code = ?", code)
}

// DeleteUnconfirmedBefore removes users whose confirmation window closed before t.
func (r *UserRepo) DeleteUnconfirmedBefore(ctx context.Context, t time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("is_confirmed = ? AND confirmation_expires_at < ?", false, t.UTC()).
		Delete(&UserModel{})
	return res.RowsAffected, res.Error
}

func (r *UserRepo) first(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return userToDomain(model), nil
}

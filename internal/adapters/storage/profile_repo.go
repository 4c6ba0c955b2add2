package storage

import (
	"context"

	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"gorm.io/gorm"
)

// ProfileRepo implements ports.ProfileRepository.
type ProfileRepo struct {
	db *gorm.DB
}

// Ensure interface compliance
var _ ports.ProfileRepository = (*ProfileRepo)(nil)

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	var model ProfileModel
	if err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err, "profile")
	}
	return profileToDomain(model), nil
}

// Save upserts on the primary key (user_id).
func (r *ProfileRepo) Save(ctx context.Context, p *domain.Profile) error {
	model := profileToModel(p)
	return r.db.WithContext(ctx).Save(&model).Error
}

func (r *ProfileRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&ProfileModel{}).Error
}

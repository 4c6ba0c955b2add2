package storage

import (
	"context"

	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"gorm.io/gorm"
)

// PostRepo implements ports.PostRepository.
type PostRepo struct {
	db *gorm.DB
}

// Ensure interface compliance
var _ ports.PostRepository = (*PostRepo)(nil)

// Create inserts the post with its photos in a single transaction.
func (r *PostRepo) Create(ctx context.Context, p *domain.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := postToModel(p)
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		if len(p.Photos) > 0 {
			photos := photoModels(model.ID, p.Photos)
			if err := tx.Create(&photos).Error; err != nil {
				return err
			}
		}
		p.ID = model.ID
		return nil
	})
}

// Update saves the post and replaces its photo list.
func (r *PostRepo) Update(ctx context.Context, p *domain.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := postToModel(p)
		if err := tx.Save(&model).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", p.ID).Delete(&PostPhotoModel{}).Error; err != nil {
			return err
		}
		if len(p.Photos) == 0 {
			return nil
		}
		photos := photoModels(p.ID, p.Photos)
		return tx.Create(&photos).Error
	})
}

func (r *PostRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	var model PostModel
	if err := r.db.WithContext(ctx).
		Preload("Photos", orderByPosition).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "post")
	}
	return postToDomain(model), nil
}

func (r *PostRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&PostPhotoModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&PostModel{}).Error
	})
}

// ListByUser returns one page of the user's posts, newest first, and the
// total number of posts.
func (r *PostRepo) ListByUser(ctx context.Context, userID int64, p domain.Paginator) ([]domain.Post, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&PostModel{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []PostModel
	if err := r.db.WithContext(ctx).
		Preload("Photos", orderByPosition).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Offset(p.Offset()).
		Limit(p.PageSize).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]domain.Post, len(models))
	for i, m := range models {
		posts[i] = *postToDomain(m)
	}
	return posts, total, nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}

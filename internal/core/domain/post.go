package domain

import (
	"strings"
	"time"
)

// Post is a user publication with optional photos.
type Post struct {
	ID          int64
	UserID      int64
	Description string
	Photos      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPost creates a post owned by userID.
func NewPost(userID int64, description string, photos []string) *Post {
	now := time.Now().UTC()
	return &Post{
		UserID:      userID,
		Description: strings.TrimSpace(description),
		Photos:      photos,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsOwnedBy reports whether userID owns the post.
func (p *Post) IsOwnedBy(userID int64) bool {
	return p.UserID == userID
}

// CreatePostInput is the multipart form of post creation.
type CreatePostInput struct {
	Description string `validate:"max=500"`
}

// UpdatePostInput is the multipart form of a post update.
type UpdatePostInput struct {
	Description string `validate:"max=500"`
}

// PostView is the public shape of a post.
type PostView struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	PostPhotos  []string  `json:"postPhotos"`
	CreatedAt   time.Time `json:"createdAt"`
}

// View converts the post to its public shape.
func (p *Post) View() PostView {
	photos := p.Photos
	if photos == nil {
		photos = []string{}
	}
	return PostView{
		ID:          p.ID,
		Description: p.Description,
		PostPhotos:  photos,
		CreatedAt:   p.CreatedAt,
	}
}

// PostsPage is a page of a user's posts.
type PostsPage struct {
	PagesCount int        `json:"pagesCount"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalCount int64      `json:"totalCount"`
	Posts      []PostView `json:"posts"`
}

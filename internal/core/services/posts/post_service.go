package posts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"github.com/sirupsen/logrus"
)

var _ ports.PostService = (*Service)(nil)

// Service handles user posts and their photos.
type Service struct {
	repo  ports.PostRepository
	files ports.FileStorage
	audit ports.AuditService
	log   logrus.FieldLogger
}

func NewService(repo ports.PostRepository, files ports.FileStorage, audit ports.AuditService, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, files: files, audit: audit, log: log}
}

// Create stores a post for userID with an optional photo.
func (s *Service) Create(ctx context.Context, userID int64, in domain.CreatePostInput, photo *domain.Upload) (domain.PostView, error) {
	var photos []string
	if photo != nil {
		link, err := s.files.Save(ctx, userID, domain.UploadPostPhoto, photo)
		if err != nil {
			return domain.PostView{}, err
		}
		photos = append(photos, link)
	}

	post := domain.NewPost(userID, in.Description, photos)
	if err := s.repo.Create(ctx, post); err != nil {
		s.discard(ctx, photos)
		return domain.PostView{}, fmt.Errorf("create post: %w", err)
	}

	s.audit.Log(ctx, userID, domain.ActionPostCreated, domain.TargetID(post.ID))
	return post.View(), nil
}

// FindByID returns any user's post. Missing posts are ErrNotFound.
func (s *Service) FindByID(ctx context.Context, id int64) (domain.PostView, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.PostView{}, err
	}
	return post.View(), nil
}

// Update replaces the description. A new photo replaces all previous photos.
func (s *Service) Update(ctx context.Context, userID, id int64, in domain.UpdatePostInput, photo *domain.Upload) error {
	post, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}

	var stale []string
	if photo != nil {
		link, err := s.files.Save(ctx, userID, domain.UploadPostPhoto, photo)
		if err != nil {
			return err
		}
		stale = post.Photos
		post.Photos = []string{link}
	}

	post.Description = strings.TrimSpace(in.Description)
	post.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, post); err != nil {
		if photo != nil {
			s.discard(ctx, post.Photos)
		}
		return fmt.Errorf("update post: %w", err)
	}

	s.discard(ctx, stale)
	s.audit.Log(ctx, userID, domain.ActionPostUpdated, domain.TargetID(id))
	return nil
}

// Delete removes a post owned by userID together with its photos.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	post, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	s.discard(ctx, post.Photos)
	s.audit.Log(ctx, userID, domain.ActionPostDeleted, domain.TargetID(id))
	return nil
}

// ListByUser returns one page of the user's posts, newest first.
func (s *Service) ListByUser(ctx context.Context, userID int64, p domain.Paginator) (domain.PostsPage, error) {
	posts, total, err := s.repo.ListByUser(ctx, userID, p)
	if err != nil {
		return domain.PostsPage{}, err
	}

	views := make([]domain.PostView, len(posts))
	for i := range posts {
		views[i] = posts[i].View()
	}
	return domain.PostsPage{
		PagesCount: p.PagesCount(total),
		Page:       p.PageNumber,
		PageSize:   p.PageSize,
		TotalCount: total,
		Posts:      views,
	}, nil
}

func (s *Service) owned(ctx context.Context, userID, id int64) (*domain.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.IsOwnedBy(userID) {
		return nil, domain.Forbidden("post belongs to another user")
	}
	return post, nil
}

func (s *Service) discard(ctx context.Context, links []string) {
	for _, link := range links {
		if err := s.files.Delete(ctx, link); err != nil {
			s.log.WithError(err).WithField("link", link).Warn("failed to delete post photo")
		}
	}
}

package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"github.com/sirupsen/logrus"
)

var _ ports.ProfileService = (*Service)(nil)

// Service handles the current user's profile and avatar.
type Service struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	files    ports.FileStorage
	audit    ports.AuditService
	log      logrus.FieldLogger
}

// NewService wires the profile use cases.
func NewService(users ports.UserRepository, profiles ports.ProfileRepository, files ports.FileStorage, audit ports.AuditService, log logrus.FieldLogger) *Service {
	return &Service{users: users, profiles: profiles, files: files, audit: audit, log: log}
}

// Get returns the profile merged with the account's username.
func (s *Service) Get(ctx context.Context, userID int64) (domain.ProfileView, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return domain.ProfileView{}, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.ProfileView{}, err
	}
	return domain.NewProfileView(profile, user), nil
}

// Update creates or replaces the profile. A new avatar replaces the old file.
func (s *Service) Update(ctx context.Context, userID int64, in domain.UpdateProfileInput, avatar *domain.Upload) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	renamed := in.Username != user.Username
	if renamed {
		other, err := s.users.GetByUsername(ctx, in.Username)
		switch {
		case err == nil && other.ID != userID:
			return domain.NewFieldError("username", "username already taken")
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return err
		}
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		profile = &domain.Profile{UserID: userID}
	} else if err != nil {
		return err
	}

	// Nothing else is written until the rename has passed the unique index.
	previous := user.Username
	if renamed {
		user.Username = in.Username
		if err := s.users.Update(ctx, user); err != nil {
			return err
		}
	}

	var newLink *string
	oldLink := profile.PhotoLink
	if avatar != nil {
		link, err := s.files.Save(ctx, userID, domain.UploadAvatar, avatar)
		if err != nil {
			s.restoreName(ctx, user, renamed, previous)
			return err
		}
		newLink = &link
	}

	profile.Apply(in, newLink)
	if err := s.profiles.Save(ctx, profile); err != nil {
		s.discard(ctx, newLink)
		s.restoreName(ctx, user, renamed, previous)
		return fmt.Errorf("save profile: %w", err)
	}

	if newLink != nil && oldLink != "" {
		s.discard(ctx, &oldLink)
	}

	s.audit.Log(ctx, userID, domain.ActionProfileUpdated, domain.TargetID(userID))
	return nil
}

// Delete removes the profile row and every avatar file.
func (s *Service) Delete(ctx context.Context, userID int64) error {
	if err := s.files.DeleteAll(ctx, userID, domain.UploadAvatar); err != nil {
		return fmt.Errorf("delete avatars: %w", err)
	}
	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	s.audit.Log(ctx, userID, domain.ActionProfileDeleted, domain.TargetID(userID))
	return nil
}

func (s *Service) restoreName(ctx context.Context, user *domain.User, renamed bool, previous string) {
	if !renamed {
		return
	}
	user.Username = previous
	if err := s.users.Update(ctx, user); err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Warn("could not restore username")
	}
}

func (s *Service) discard(ctx context.Context, link *string) {
	if link == nil {
		return
	}
	if err := s.files.Delete(ctx, *link); err != nil {
		s.log.WithError(err).WithField("link", *link).Warn("failed to delete avatar")
	}
}

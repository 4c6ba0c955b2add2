package storage

import (
	"github.com/lcalzada-xor/snapgram/internal/core/domain"
)

func userToDomain(m UserModel) *domain.User {
	return &domain.User{
		ID:                    m.ID,
		Username:              m.Username,
		Email:                 m.Email,
		PasswordHash:          m.PasswordHash,
		CreatedAt:             m.CreatedAt,
		IsConfirmed:           m.IsConfirmed,
		ConfirmationCode:      m.ConfirmationCode,
		ConfirmationExpiresAt: m.ConfirmationExpiresAt,
		RecoveryCode:          m.RecoveryCode,
		RecoveryExpiresAt:     m.RecoveryExpiresAt,
	}
}

func userToModel(u *domain.User) UserModel {
	return UserModel{
		ID:                    u.ID,
		Username:              u.Username,
		Email:                 u.Email,
		PasswordHash:          u.PasswordHash,
		CreatedAt:             u.CreatedAt,
		IsConfirmed:           u.IsConfirmed,
		ConfirmationCode:      u.ConfirmationCode,
		ConfirmationExpiresAt: u.ConfirmationExpiresAt,
		RecoveryCode:          u.RecoveryCode,
		RecoveryExpiresAt:     u.RecoveryExpiresAt,
	}
}

func sessionToDomain(m SessionModel) *domain.DeviceSession {
	return &domain.DeviceSession{
		ID:           m.ID,
		UserID:       m.UserID,
		DeviceID:     m.DeviceID,
		IP:           m.IP,
		Title:        m.Title,
		IssuedAt:     m.IssuedAt,
		ExpiresAt:    m.ExpiresAt,
		LastActiveAt: m.LastActiveAt,
	}
}

func sessionToModel(s *domain.DeviceSession) SessionModel {
	return SessionModel{
		ID:           s.ID,
		UserID:       s.UserID,
		DeviceID:     s.DeviceID,
		IP:           s.IP,
		Title:        s.Title,
		IssuedAt:     s.IssuedAt.UTC(),
		ExpiresAt:    s.ExpiresAt.UTC(),
		LastActiveAt: s.LastActiveAt.UTC(),
	}
}

func profileToDomain(m ProfileModel) *domain.Profile {
	return &domain.Profile{
		UserID:      m.UserID,
		Name:        m.Name,
		SurName:     m.SurName,
		DateOfBirth: m.DateOfBirth,
		City:        m.City,
		AboutMe:     m.AboutMe,
		PhotoLink:   m.PhotoLink,
		UpdatedAt:   m.UpdatedAt,
	}
}

func profileToModel(p *domain.Profile) ProfileModel {
	return ProfileModel{
		UserID:      p.UserID,
		Name:        p.Name,
		SurName:     p.SurName,
		DateOfBirth: p.DateOfBirth,
		City:        p.City,
		AboutMe:     p.AboutMe,
		PhotoLink:   p.PhotoLink,
		UpdatedAt:   p.UpdatedAt,
	}
}

func postToDomain(m PostModel) *domain.Post {
	photos := make([]string, len(m.Photos))
	for i, ph := range m.Photos {
		photos[i] = ph.Link
	}
	return &domain.Post{
		ID:          m.ID,
		UserID:      m.UserID,
		Description: m.Description,
		Photos:      photos,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// postToModel converts a post without its photos. Photos are written
// separately so updates can replace them.
func postToModel(p *domain.Post) PostModel {
	return PostModel{
		ID:          p.ID,
		UserID:      p.UserID,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func photoModels(postID int64, links []string) []PostPhotoModel {
	models := make([]PostPhotoModel, len(links))
	for i, link := range links {
		models[i] = PostPhotoModel{PostID: postID, Link: link, Position: i}
	}
	return models
}

func auditToDomain(m AuditLogModel) domain.AuditLog {
	return domain.AuditLog{
		ID:        m.ID,
		UserID:    m.UserID,
		Action:    domain.AuditAction(m.Action),
		Target:    m.Target,
		IPAddress: m.IPAddress,
		Timestamp: m.Timestamp,
	}
}

func auditToModel(l domain.AuditLog) AuditLogModel {
	return AuditLogModel{
		ID:        l.ID,
		UserID:    l.UserID,
		Action:    string(l.Action),
		Target:    l.Target,
		IPAddress: l.IPAddress,
		Timestamp: l.Timestamp,
	}
}

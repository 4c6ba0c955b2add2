package domain

import (
	"strings"
	"time"
)

// Profile holds the public details a user shows on their page.
type Profile struct {
	UserID      int64
	Name        string
	SurName     string
	DateOfBirth *time.Time
	City        string
	AboutMe     string
	PhotoLink   string
	UpdatedAt   time.Time
}

// UpdateProfileInput is the multipart form of the profile update.
type UpdateProfileInput struct {
	Username string `validate:"required,min=6,max=30,username"`
	Name     string `validate:"omitempty,max=40"`
	SurName  string `validate:"omitempty,max=40"`
	Birthday string `validate:"omitempty,birthday"`
	City     string `validate:"omitempty,max=60"`
	AboutMe  string `validate:"omitempty,max=200"`
}

// Apply copies the editable fields onto the profile. A nil photo link keeps
// the current one.
func (p *Profile) Apply(in UpdateProfileInput, photoLink *string) {
	p.Name = strings.TrimSpace(in.Name)
	p.SurName = strings.TrimSpace(in.SurName)
	p.City = strings.TrimSpace(in.City)
	p.AboutMe = strings.TrimSpace(in.AboutMe)
	p.DateOfBirth = nil
	if t, ok := ParseBirthday(in.Birthday); ok {
		p.DateOfBirth = &t
	}
	if photoLink != nil {
		p.PhotoLink = *photoLink
	}
	p.UpdatedAt = time.Now().UTC()
}

// ParseBirthday accepts YYYY-MM-DD or RFC3339.
func ParseBirthday(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// ProfileView is the response body of GET /user/profile.
type ProfileView struct {
	UserID      int64   `json:"userId"`
	Username    string  `json:"username"`
	Name        string  `json:"name"`
	SurName     string  `json:"surName"`
	DateOfBirth *string `json:"dateOfBirth"`
	City        string  `json:"city"`
	AboutMe     string  `json:"aboutMe"`
	PhotoLink   string  `json:"photoLink"`
}

// NewProfileView joins a profile with its owner.
func NewProfileView(p *Profile, u *User) ProfileView {
	v := ProfileView{
		UserID:    p.UserID,
		Name:      p.Name,
		SurName:   p.SurName,
		City:      p.City,
		AboutMe:   p.AboutMe,
		PhotoLink: p.PhotoLink,
	}
	if u != nil {
		v.Username = u.Username
	}
	if p.DateOfBirth != nil {
		d := p.DateOfBirth.Format(time.DateOnly)
		v.DateOfBirth = &d
	}
	return v
}

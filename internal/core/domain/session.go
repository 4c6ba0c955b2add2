package domain

import "time"

// DeviceSession is the login state of one user on one device. The refresh
// token issued for the device is only valid while its issue time equals
// IssuedAt.
type DeviceSession struct {
	ID           int64
	UserID       int64
	DeviceID     string
	IP           string
	Title        string
	IssuedAt     time.Time
	ExpiresAt    time.Time
	LastActiveAt time.Time
}

// NewDeviceSession builds the session row for a freshly issued refresh token.
// The device counts as active at the token's issue time.
func NewDeviceSession(userID int64, deviceID, ip, title string, claims Claims) *DeviceSession {
	return &DeviceSession{
		UserID:       userID,
		DeviceID:     deviceID,
		IP:           ip,
		Title:        title,
		IssuedAt:     claims.IssuedAt,
		ExpiresAt:    claims.ExpiresAt,
		LastActiveAt: claims.IssuedAt,
	}
}

// Matches reports whether the refresh claims belong to the current token of
// this session.
func (s *DeviceSession) Matches(c Claims) bool {
	return s.UserID == c.UserID && s.DeviceID == c.DeviceID && s.IssuedAt.Equal(c.IssuedAt)
}

// Rotate records a newly issued refresh token.
func (s *DeviceSession) Rotate(ip string, c Claims) {
	s.IP = ip
	s.IssuedAt = c.IssuedAt
	s.ExpiresAt = c.ExpiresAt
	s.LastActiveAt = c.IssuedAt
}

// SessionView is the public shape of a device session.
type SessionView struct {
	IP             string    `json:"ip"`
	Title          string    `json:"title"`
	LastActiveDate time.Time `json:"lastActiveDate"`
	DeviceID       string    `json:"deviceId"`
}

// View converts the session to its public shape.
func (s *DeviceSession) View() SessionView {
	return SessionView{
		IP:             s.IP,
		Title:          s.Title,
		LastActiveDate: s.LastActiveAt,
		DeviceID:       s.DeviceID,
	}
}

// Claims are the verified contents of an access or refresh token.
// DeviceID is empty for access tokens.
type Claims struct {
	UserID    int64
	DeviceID  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair is the result of a login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	Refresh      Claims
}

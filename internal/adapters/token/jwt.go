package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
)

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

var (
	ErrMissingSecret = errors.New("missing JWT secret")
	ErrInvalidToken  = errors.New("invalid JWT token")
)

// claims is the JWT payload. DeviceID is only set on refresh tokens.
type claims struct {
	DeviceID string `json:"deviceId,omitempty"`
	jwt.RegisteredClaims
}

// JWTIssuer signs access and refresh tokens with HS256 under separate secrets.
type JWTIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// New creates a JWTIssuer.
func New(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*JWTIssuer, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, ErrMissingSecret
	}
	return &JWTIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}, nil
}

// IssueAccess signs a short lived token carrying only the user id.
func (j *JWTIssuer) IssueAccess(userID int64) (string, error) {
	token, _, err := j.sign(userID, "", j.accessTTL, j.accessSecret)
	return token, err
}

// IssueRefresh signs a refresh token bound to a device. The returned claims
// are what the session row must store.
func (j *JWTIssuer) IssueRefresh(userID int64, deviceID string) (string, domain.Claims, error) {
	if deviceID == "" {
		return "", domain.Claims{}, fmt.Errorf("refresh token requires a device id")
	}
	return j.sign(userID, deviceID, j.refreshTTL, j.refreshSecret)
}

func (j *JWTIssuer) ParseAccess(token string) (domain.Claims, error) {
	return j.parse(token, j.accessSecret)
}

func (j *JWTIssuer) ParseRefresh(token string) (domain.Claims, error) {
	c, err := j.parse(token, j.refreshSecret)
	if err != nil {
		return domain.Claims{}, err
	}
	if c.DeviceID == "" {
		return domain.Claims{}, ErrInvalidToken
	}
	return c, nil
}

func (j *JWTIssuer) sign(userID int64, deviceID string, ttl time.Duration, secret []byte) (string, domain.Claims, error) {
	// JWT dates have second precision, truncate so the stored session
	// compares equal to what comes back from the token.
	now := j.now().UTC().Truncate(time.Second)
	c := claims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
	if err != nil {
		return "", domain.Claims{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, domain.Claims{
		UserID:    userID,
		DeviceID:  deviceID,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

func (j *JWTIssuer) parse(tokenString string, secret []byte) (domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return domain.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid || c.IssuedAt == nil || c.ExpiresAt == nil {
		return domain.Claims{}, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return domain.Claims{}, ErrInvalidToken
	}
	return domain.Claims{
		UserID:    userID,
		DeviceID:  c.DeviceID,
		IssuedAt:  c.IssuedAt.Time.UTC(),
		ExpiresAt: c.ExpiresAt.Time.UTC(),
	}, nil
}

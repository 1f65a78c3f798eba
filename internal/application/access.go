package application

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/connectcc/auditions/internal/domain"
)

// Role names carried in token claims and checked by the HTTP middleware.
// Admin and panel are distinct capabilities: holding one grants nothing on
// routes gated by the other.
const (
	RoleAdmin = "admin"
	RolePanel = "panel"
)

// AccessService exchanges a role's shared secret for a signed token and
// verifies tokens on every request. Roles are never trusted from the
// client; the role a request acts under always comes out of a token this
// service signed.
type AccessService struct {
	signingKey []byte
	tokenTTL   time.Duration
	secrets    map[string]string
	now        func() time.Time
}

// NewAccessService builds an AccessService from the auth configuration.
func NewAccessService(cfg AuthConfig) *AccessService {
	return &AccessService{
		signingKey: []byte(cfg.JWTSecret),
		tokenTTL:   cfg.TokenTTL(),
		secrets: map[string]string{
			RoleAdmin: cfg.AdminSecret,
			RolePanel: cfg.PanelSecret,
		},
		now: time.Now,
	}
}

// Login checks a role's shared secret and returns a signed token carrying
// the role claim. Unknown roles return domain.ErrInvalidRole; a secret
// mismatch returns domain.ErrBadCredentials.
func (s *AccessService) Login(role, secret string) (string, error) {
	want, ok := s.secrets[role]
	if !ok {
		return "", domain.ErrInvalidRole
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(want)) != 1 {
		return "", domain.ErrBadCredentials
	}

	now := s.now()
	claims := jwt.MapClaims{
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token and returns the role it carries.
// Expired, malformed or foreign-signed tokens all fail verification.
func (s *AccessService) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token: unexpected claims type")
	}
	role, _ := claims["role"].(string)
	if _, known := s.secrets[role]; !known {
		return "", domain.ErrInvalidRole
	}
	return role, nil
}

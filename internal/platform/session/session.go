// Package session issues and verifies signed session cookies.
// Sessions are stateless JWTs signed with an HMAC secret; the only claim
// the application cares about is the user ID in the subject.
package session

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jsamuelsen/quotewall/internal/domain"
)

// Config holds session cookie settings.
type Config struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager issues and verifies session tokens.
type Manager struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewManager creates a session manager from config.
func NewManager(cfg Config) *Manager {
	return &Manager{
		secret:     []byte(cfg.Secret),
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     cfg.Secure,
	}
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// TTLSeconds returns the cookie max-age in seconds.
func (m *Manager) TTLSeconds() int {
	return int(m.ttl.Seconds())
}

// Secure reports whether the cookie should be marked Secure.
func (m *Manager) Secure() bool {
	return m.secure
}

// Issue creates a signed session token for the user.
func (m *Manager) Issue(userID domain.UserID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a session token and returns the user ID.
// Returns domain.ErrUnauthenticated for any invalid, expired, or
// tampered token.
func (m *Manager) Verify(tokenString string) (domain.UserID, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return m.secret, nil
		},
	)
	if err != nil || !token.Valid {
		return 0, domain.NewUnauthenticatedError("invalid session")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return 0, domain.NewUnauthenticatedError("invalid session")
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, domain.NewUnauthenticatedError("invalid session")
	}

	return domain.UserID(id), nil
}

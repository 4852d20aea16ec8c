// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jsamuelsen/quotewall/internal/domain"
	"github.com/jsamuelsen/quotewall/internal/ports"
)

// AuthService orchestrates account registration and login.
// It depends on port interfaces, not concrete implementations,
// following the Dependency Inversion Principle.
type AuthService struct {
	users  ports.UserRepository
	logger *slog.Logger
}

// AuthServiceConfig contains configuration for the auth service.
type AuthServiceConfig struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

// NewAuthService creates a new auth service with the provided dependencies.
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		users:  cfg.Users,
		logger: cfg.Logger,
	}
}

// Register creates a new account. The password is bcrypt-hashed; the
// clear text is never stored or logged.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" {
		return nil, domain.NewValidationError("username", "cannot be empty")
	}

	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("email", "must be a valid email address")
	}

	if password == "" {
		return nil, domain.NewValidationError("password", "cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	err = s.users.Create(ctx, user)
	if err != nil {
		s.logger.WarnContext(ctx, "registration failed",
			slog.String("username", username),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.Uint64("user_id", uint64(user.ID)),
		slog.String("username", username),
	)

	return user, nil
}

// Me returns the account for an authenticated user ID.
func (s *AuthService) Me(ctx context.Context, id domain.UserID) (*domain.User, error) {
	if id == 0 {
		return nil, domain.NewUnauthenticatedError("login required")
	}

	return s.users.GetByID(ctx, id)
}

// Login verifies credentials against the stored hash and records the
// login time. The login may be a username or an email address. A wrong
// password and an unknown user produce the same error so callers cannot
// probe for registered accounts.
func (s *AuthService) Login(ctx context.Context, login, password string) (*domain.User, error) {
	login = strings.TrimSpace(login)

	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthenticatedError("invalid credentials")
		}

		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		s.logger.WarnContext(ctx, "login rejected",
			slog.Uint64("user_id", uint64(user.ID)),
		)
		return nil, domain.NewUnauthenticatedError("invalid credentials")
	}

	if err := s.users.TouchLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the timestamp is best effort.
		s.logger.WarnContext(ctx, "failed to record login time",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.Any("error", err),
		)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.Uint64("user_id", uint64(user.ID)),
	)

	return user, nil
}

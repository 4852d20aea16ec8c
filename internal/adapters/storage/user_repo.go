package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jsamuelsen/quotewall/internal/domain"
)

// UserRepo implements ports.UserRepository on GORM.
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a user repository.
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create stores a new user and fills in its ID.
func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	rec := userRecord{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Active:       true,
	}

	err := r.db.WithContext(ctx).Create(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("user", "username or email already taken")
		}

		return fmt.Errorf("creating user: %w", err)
	}

	user.ID = domain.UserID(rec.ID)
	user.CreatedAt = rec.CreatedAt
	user.Active = rec.Active

	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var rec userRecord

	err := r.db.WithContext(ctx).First(&rec, uint(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user", strconv.FormatUint(uint64(id), 10))
		}

		return nil, fmt.Errorf("fetching user %d: %w", id, err)
	}

	return rec.toDomain(), nil
}

// GetByLogin retrieves a user by username or email address.
func (r *UserRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	var rec userRecord

	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, strings.ToLower(login)).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user", login)
		}

		return nil, fmt.Errorf("fetching user %q: %w", login, err)
	}

	return rec.toDomain(), nil
}

// TouchLogin records a successful login time for the user.
func (r *UserRepo) TouchLogin(ctx context.Context, id domain.UserID) error {
	now := time.Now()

	err := r.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("id = ?", uint(id)).
		Update("last_login_at", &now).Error
	if err != nil {
		return fmt.Errorf("recording login for user %d: %w", id, err)
	}

	return nil
}

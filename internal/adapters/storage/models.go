package storage

import (
	"time"

	"github.com/jsamuelsen/quotewall/internal/domain"
)

// userRecord is the persistence shape of a user account.
type userRecord struct {
	ID           uint   `gorm:"primarykey"`
	Username     string `gorm:"size:64;not null;uniqueIndex"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:255;not null"`
	Active       bool   `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           domain.UserID(r.ID),
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		LastLoginAt:  r.LastLoginAt,
		Active:       r.Active,
	}
}

// quoteRecord is the persistence shape of a quote.
type quoteRecord struct {
	ID          uint      `gorm:"primarykey"`
	OwnerID     uint      `gorm:"not null;index"`
	Content     string    `gorm:"type:text;not null"`
	Author      string    `gorm:"size:255"`
	Source      string    `gorm:"size:255"`
	Explanation string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

func (quoteRecord) TableName() string { return "quotes" }

func (r *quoteRecord) toDomain() domain.Quote {
	return domain.Quote{
		ID:          domain.QuoteID(r.ID),
		OwnerID:     domain.UserID(r.OwnerID),
		Content:     r.Content,
		Author:      r.Author,
		Source:      r.Source,
		Explanation: r.Explanation,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// reactionRecord is one (user, quote, kind) relation row. The composite
// unique index is what makes toggling race-safe: a concurrent duplicate
// insert hits the index instead of creating a second row.
type reactionRecord struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_user_quote_kind,priority:1"`
	QuoteID   uint   `gorm:"not null;uniqueIndex:idx_user_quote_kind,priority:2"`
	Kind      string `gorm:"size:16;not null;uniqueIndex:idx_user_quote_kind,priority:3"`
	CreatedAt time.Time
}

func (reactionRecord) TableName() string { return "user_quote_reactions" }

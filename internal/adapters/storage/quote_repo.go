package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/jsamuelsen/quotewall/internal/domain"
)

// QuoteRepo implements ports.QuoteRepository on GORM.
type QuoteRepo struct {
	db *gorm.DB
}

// NewQuoteRepo creates a quote repository.
func NewQuoteRepo(db *gorm.DB) *QuoteRepo {
	return &QuoteRepo{db: db}
}

// Create stores a new quote and fills in its ID and timestamps.
func (r *QuoteRepo) Create(ctx context.Context, quote *domain.Quote) error {
	rec := quoteRecord{
		OwnerID:     uint(quote.OwnerID),
		Content:     quote.Content,
		Author:      quote.Author,
		Source:      quote.Source,
		Explanation: quote.Explanation,
	}

	err := r.db.WithContext(ctx).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("creating quote: %w", err)
	}

	quote.ID = domain.QuoteID(rec.ID)
	quote.CreatedAt = rec.CreatedAt
	quote.UpdatedAt = rec.UpdatedAt

	return nil
}

// GetByID retrieves a quote by ID.
func (r *QuoteRepo) GetByID(ctx context.Context, id domain.QuoteID) (*domain.Quote, error) {
	var rec quoteRecord

	err := r.db.WithContext(ctx).First(&rec, uint(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("quote", strconv.FormatUint(uint64(id), 10))
		}

		return nil, fmt.Errorf("fetching quote %d: %w", id, err)
	}

	q := rec.toDomain()

	return &q, nil
}

// Update persists changes to an existing quote.
func (r *QuoteRepo) Update(ctx context.Context, quote *domain.Quote) error {
	result := r.db.WithContext(ctx).
		Model(&quoteRecord{}).
		Where("id = ?", uint(quote.ID)).
		Updates(map[string]any{
			"content":     quote.Content,
			"author":      quote.Author,
			"source":      quote.Source,
			"explanation": quote.Explanation,
		})
	if result.Error != nil {
		return fmt.Errorf("updating quote %d: %w", quote.ID, result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("quote", strconv.FormatUint(uint64(quote.ID), 10))
	}

	return nil
}

// Delete removes a quote and all reactions pointing at it, atomically.
func (r *QuoteRepo) Delete(ctx context.Context, id domain.QuoteID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("quote_id = ?", uint(id)).Delete(&reactionRecord{}).Error
		if err != nil {
			return fmt.Errorf("deleting reactions for quote %d: %w", id, err)
		}

		result := tx.Delete(&quoteRecord{}, uint(id))
		if result.Error != nil {
			return fmt.Errorf("deleting quote %d: %w", id, result.Error)
		}

		if result.RowsAffected == 0 {
			return domain.NewNotFoundError("quote", strconv.FormatUint(uint64(id), 10))
		}

		return nil
	})
}

// ListByOwner returns a page of quotes created by the given user, newest first.
func (r *QuoteRepo) ListByOwner(ctx context.Context, owner domain.UserID, page, pageSize int) (*domain.Page, error) {
	query := r.db.WithContext(ctx).
		Model(&quoteRecord{}).
		Where("owner_id = ?", uint(owner))

	return r.paginate(query, page, pageSize)
}

// ListByReaction returns a page of quotes the user has reacted to with the
// given kind, newest first.
func (r *QuoteRepo) ListByReaction(ctx context.Context, user domain.UserID, kind domain.ReactionKind, page, pageSize int) (*domain.Page, error) {
	query := r.db.WithContext(ctx).
		Model(&quoteRecord{}).
		Joins("JOIN user_quote_reactions ON user_quote_reactions.quote_id = quotes.id").
		Where("user_quote_reactions.user_id = ? AND user_quote_reactions.kind = ?", uint(user), string(kind))

	return r.paginate(query, page, pageSize)
}

// Search returns a page of quotes matching the query, newest first.
// The free-text query is a case-insensitive substring match over content
// and explanation; author and source are prefix filters.
func (r *QuoteRepo) Search(ctx context.Context, sq domain.SearchQuery) (*domain.Page, error) {
	query := r.db.WithContext(ctx).Model(&quoteRecord{})

	if q := strings.TrimSpace(sq.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(content) LIKE ? OR LOWER(explanation) LIKE ?", pattern, pattern)
	}

	if a := strings.TrimSpace(sq.Author); a != "" {
		query = query.Where("LOWER(author) LIKE ?", strings.ToLower(a)+"%")
	}

	if s := strings.TrimSpace(sq.Source); s != "" {
		query = query.Where("LOWER(source) LIKE ?", strings.ToLower(s)+"%")
	}

	return r.paginate(query, sq.Page, sq.PageSize)
}

// paginate counts the filtered set and fetches one page ordered newest
// first. A page past the end yields an empty page, not an error.
func (r *QuoteRepo) paginate(query *gorm.DB, page, pageSize int) (*domain.Page, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting quotes: %w", err)
	}

	var recs []quoteRecord

	err := query.
		Order("quotes.created_at DESC, quotes.id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	quotes := make([]domain.Quote, 0, len(recs))
	for i := range recs {
		quotes = append(quotes, recs[i].toDomain())
	}

	return &domain.Page{
		Quotes:   quotes,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

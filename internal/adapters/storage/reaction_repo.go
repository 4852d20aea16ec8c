package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jsamuelsen/quotewall/internal/domain"
)

// ReactionRepo implements ports.ReactionRepository on GORM.
type ReactionRepo struct {
	db *gorm.DB
}

// NewReactionRepo creates a reaction repository.
func NewReactionRepo(db *gorm.DB) *ReactionRepo {
	return &ReactionRepo{db: db}
}

// Toggle flips the reaction for (user, quote, kind) and reports the new
// state. The insert rides on the composite unique index: ON CONFLICT DO
// NOTHING either wins the row (reaction now set) or collides with an
// existing one, in which case that row is removed. This is a single
// upsert-or-delete, not a read-modify-write, so two concurrent toggles
// land in a state consistent with the number of toggles applied.
func (r *ReactionRepo) Toggle(ctx context.Context, user domain.UserID, quote domain.QuoteID, kind domain.ReactionKind) (bool, error) {
	rec := reactionRecord{
		UserID:  uint(user),
		QuoteID: uint(quote),
		Kind:    string(kind),
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rec)
	if result.Error != nil {
		return false, fmt.Errorf("inserting reaction: %w", result.Error)
	}

	if result.RowsAffected == 1 {
		return true, nil
	}

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND quote_id = ? AND kind = ?", uint(user), uint(quote), string(kind)).
		Delete(&reactionRecord{}).Error
	if err != nil {
		return false, fmt.Errorf("removing reaction: %w", err)
	}

	return false, nil
}

// States reports which reaction kinds the user currently has on the quote.
func (r *ReactionRepo) States(ctx context.Context, user domain.UserID, quote domain.QuoteID) (map[domain.ReactionKind]bool, error) {
	var kinds []string

	err := r.db.WithContext(ctx).
		Model(&reactionRecord{}).
		Where("user_id = ? AND quote_id = ?", uint(user), uint(quote)).
		Pluck("kind", &kinds).Error
	if err != nil {
		return nil, fmt.Errorf("fetching reaction states: %w", err)
	}

	states := map[domain.ReactionKind]bool{
		domain.ReactionLike:    false,
		domain.ReactionCollect: false,
	}
	for _, k := range kinds {
		states[domain.ReactionKind(k)] = true
	}

	return states, nil
}

// Count returns the number of reactions of the given kind on the quote.
func (r *ReactionRepo) Count(ctx context.Context, quote domain.QuoteID, kind domain.ReactionKind) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&reactionRecord{}).
		Where("quote_id = ? AND kind = ?", uint(quote), string(kind)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting reactions: %w", err)
	}

	return count, nil
}

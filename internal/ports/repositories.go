// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrConflict, etc.)
//   - Methods represent business operations, not CRUD operations
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/jsamuelsen/quotewall/internal/domain"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// Create stores a new user and fills in its ID.
	// Returns domain.ErrConflict if the username or email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns domain.ErrNotFound if the user does not exist.
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)

	// GetByLogin retrieves a user by username or email address.
	// Returns domain.ErrNotFound if no user matches.
	GetByLogin(ctx context.Context, login string) (*domain.User, error)

	// TouchLogin records a successful login time for the user.
	TouchLogin(ctx context.Context, id domain.UserID) error
}

// QuoteRepository persists quotes.
type QuoteRepository interface {
	// Create stores a new quote and fills in its ID and timestamps.
	Create(ctx context.Context, quote *domain.Quote) error

	// GetByID retrieves a quote by ID.
	// Returns domain.ErrNotFound if the quote does not exist.
	GetByID(ctx context.Context, id domain.QuoteID) (*domain.Quote, error)

	// Update persists changes to an existing quote.
	// Returns domain.ErrNotFound if the quote does not exist.
	Update(ctx context.Context, quote *domain.Quote) error

	// Delete removes a quote and all reactions pointing at it.
	// Returns domain.ErrNotFound if the quote does not exist.
	Delete(ctx context.Context, id domain.QuoteID) error

	// ListByOwner returns a page of quotes created by the given user,
	// newest first.
	ListByOwner(ctx context.Context, owner domain.UserID, page, pageSize int) (*domain.Page, error)

	// ListByReaction returns a page of quotes the user has reacted to with
	// the given kind, newest first.
	ListByReaction(ctx context.Context, user domain.UserID, kind domain.ReactionKind, page, pageSize int) (*domain.Page, error)

	// Search returns a page of quotes matching the query, newest first.
	// An empty query browses all quotes.
	Search(ctx context.Context, query domain.SearchQuery) (*domain.Page, error)
}

// ReactionRepository persists per-user quote reactions (likes and collects).
type ReactionRepository interface {
	// Toggle flips the reaction for (user, quote, kind) and reports the
	// resulting state: true if the reaction now exists, false if it was
	// removed. The flip is atomic; concurrent toggles never produce
	// duplicate rows.
	Toggle(ctx context.Context, user domain.UserID, quote domain.QuoteID, kind domain.ReactionKind) (bool, error)

	// States reports which reaction kinds the user currently has on the
	// quote. Used to render toggle state alongside a quote.
	States(ctx context.Context, user domain.UserID, quote domain.QuoteID) (map[domain.ReactionKind]bool, error)

	// Count returns the number of reactions of the given kind on the quote.
	Count(ctx context.Context, quote domain.QuoteID, kind domain.ReactionKind) (int64, error)
}

package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/quotewall/internal/domain"
	"github.com/jsamuelsen/quotewall/internal/platform/share"
	"github.com/jsamuelsen/quotewall/internal/ports"
)

// QuoteService orchestrates quote authoring, browsing, and reactions.
// It depends on port interfaces, not concrete implementations,
// following the Dependency Inversion Principle.
type QuoteService struct {
	quotes    ports.QuoteRepository
	reactions ports.ReactionRepository
	share     *share.Builder
	pageSize  int
	maxSize   int
	logger    *slog.Logger
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Quotes          ports.QuoteRepository
	Reactions       ports.ReactionRepository
	Share           *share.Builder
	DefaultPageSize int
	MaxPageSize     int
	Logger          *slog.Logger
}

// NewQuoteService creates a new quote service with the provided dependencies.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	return &QuoteService{
		quotes:    cfg.Quotes,
		reactions: cfg.Reactions,
		share:     cfg.Share,
		pageSize:  cfg.DefaultPageSize,
		maxSize:   cfg.MaxPageSize,
		logger:    cfg.Logger,
	}
}

// Create validates and stores a new quote owned by the actor.
// The created quote is immediately visible to search and browse.
func (s *QuoteService) Create(ctx context.Context, owner domain.UserID, input domain.QuoteInput) (*domain.Quote, error) {
	if owner == 0 {
		return nil, domain.NewUnauthenticatedError("login required")
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, domain.NewValidationError("content", "cannot be empty")
	}

	quote := &domain.Quote{
		OwnerID:     owner,
		Content:     content,
		Author:      strings.TrimSpace(input.Author),
		Source:      strings.TrimSpace(input.Source),
		Explanation: strings.TrimSpace(input.Explanation),
	}

	err := s.quotes.Create(ctx, quote)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create quote", slog.Any("error", err))
		return nil, err
	}

	s.logger.InfoContext(ctx, "quote created",
		slog.Uint64("quote_id", uint64(quote.ID)),
		slog.Uint64("owner_id", uint64(owner)),
	)

	return quote, nil
}

// Update applies a partial update to a quote. Only the owner may update;
// nil fields are left untouched.
func (s *QuoteService) Update(ctx context.Context, actor domain.UserID, id domain.QuoteID, update domain.QuoteUpdate) (*domain.Quote, error) {
	quote, err := s.ownedQuote(ctx, actor, id, "update quote")
	if err != nil {
		return nil, err
	}

	if update.Content != nil {
		content := strings.TrimSpace(*update.Content)
		if content == "" {
			return nil, domain.NewValidationError("content", "cannot be empty")
		}
		quote.Content = content
	}

	if update.Author != nil {
		quote.Author = strings.TrimSpace(*update.Author)
	}

	if update.Source != nil {
		quote.Source = strings.TrimSpace(*update.Source)
	}

	if update.Explanation != nil {
		quote.Explanation = strings.TrimSpace(*update.Explanation)
	}

	err = s.quotes.Update(ctx, quote)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update quote",
			slog.Uint64("quote_id", uint64(id)),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "quote updated", slog.Uint64("quote_id", uint64(id)))

	return quote, nil
}

// Delete removes a quote and all reactions pointing at it. Only the
// owner may delete.
func (s *QuoteService) Delete(ctx context.Context, actor domain.UserID, id domain.QuoteID) error {
	_, err := s.ownedQuote(ctx, actor, id, "delete quote")
	if err != nil {
		return err
	}

	err = s.quotes.Delete(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete quote",
			slog.Uint64("quote_id", uint64(id)),
			slog.Any("error", err),
		)
		return err
	}

	s.logger.InfoContext(ctx, "quote deleted", slog.Uint64("quote_id", uint64(id)))

	return nil
}

// Get retrieves a quote with reaction counts and, when viewer is
// non-zero, the viewer's own reaction state.
func (s *QuoteService) Get(ctx context.Context, viewer domain.UserID, id domain.QuoteID) (*domain.QuoteDetail, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &domain.QuoteDetail{Quote: *quote}

	detail.LikeCount, err = s.reactions.Count(ctx, id, domain.ReactionLike)
	if err != nil {
		return nil, err
	}

	detail.CollectCount, err = s.reactions.Count(ctx, id, domain.ReactionCollect)
	if err != nil {
		return nil, err
	}

	if viewer != 0 {
		states, err := s.reactions.States(ctx, viewer, id)
		if err != nil {
			return nil, err
		}

		detail.Liked = states[domain.ReactionLike]
		detail.Collected = states[domain.ReactionCollect]
	}

	return detail, nil
}

// Search returns a page of quotes matching the query, newest first.
// Page size is clamped to configured bounds; a page past the end of the
// result set yields an empty page.
func (s *QuoteService) Search(ctx context.Context, query domain.SearchQuery) (*domain.Page, error) {
	query.Page, query.PageSize = s.clampPaging(query.Page, query.PageSize)

	page, err := s.quotes.Search(ctx, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "search failed", slog.Any("error", err))
		return nil, err
	}

	return page, nil
}

// ListByOwner returns a page of the user's own quotes, newest first.
func (s *QuoteService) ListByOwner(ctx context.Context, owner domain.UserID, page, pageSize int) (*domain.Page, error) {
	if owner == 0 {
		return nil, domain.NewUnauthenticatedError("login required")
	}

	page, pageSize = s.clampPaging(page, pageSize)

	return s.quotes.ListByOwner(ctx, owner, page, pageSize)
}

// ListReacted returns a page of quotes the user has liked or collected,
// newest first.
func (s *QuoteService) ListReacted(ctx context.Context, user domain.UserID, kind domain.ReactionKind, page, pageSize int) (*domain.Page, error) {
	if user == 0 {
		return nil, domain.NewUnauthenticatedError("login required")
	}

	if !kind.Valid() {
		return nil, domain.NewValidationError("kind", "unknown reaction kind")
	}

	page, pageSize = s.clampPaging(page, pageSize)

	return s.quotes.ListByReaction(ctx, user, kind, page, pageSize)
}

// ToggleLike flips the actor's like on the quote and returns the new state.
func (s *QuoteService) ToggleLike(ctx context.Context, actor domain.UserID, id domain.QuoteID) (bool, error) {
	return s.toggle(ctx, actor, id, domain.ReactionLike)
}

// ToggleCollect flips the actor's collection membership on the quote and
// returns the new state.
func (s *QuoteService) ToggleCollect(ctx context.Context, actor domain.UserID, id domain.QuoteID) (bool, error) {
	return s.toggle(ctx, actor, id, domain.ReactionCollect)
}

// ShareView builds the public share rendering of a quote: the quote, its
// stable URL, and a QR code resolving to that URL.
func (s *QuoteService) ShareView(ctx context.Context, id domain.QuoteID) (*domain.ShareView, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	qr, err := s.share.QRDataURI(id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to build share QR code",
			slog.Uint64("quote_id", uint64(id)),
			slog.Any("error", err),
		)
		return nil, err
	}

	return &domain.ShareView{
		Quote:     *quote,
		URL:       s.share.URL(id),
		QRDataURI: qr,
	}, nil
}

// toggle verifies the actor and quote, then flips the reaction row.
func (s *QuoteService) toggle(ctx context.Context, actor domain.UserID, id domain.QuoteID, kind domain.ReactionKind) (bool, error) {
	if actor == 0 {
		return false, domain.NewUnauthenticatedError("login required")
	}

	if _, err := s.quotes.GetByID(ctx, id); err != nil {
		return false, err
	}

	state, err := s.reactions.Toggle(ctx, actor, id, kind)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to toggle reaction",
			slog.Uint64("quote_id", uint64(id)),
			slog.String("kind", string(kind)),
			slog.Any("error", err),
		)
		return false, err
	}

	s.logger.InfoContext(ctx, "reaction toggled",
		slog.Uint64("quote_id", uint64(id)),
		slog.String("kind", string(kind)),
		slog.Bool("state", state),
	)

	return state, nil
}

// ownedQuote fetches a quote and verifies the actor owns it.
func (s *QuoteService) ownedQuote(ctx context.Context, actor domain.UserID, id domain.QuoteID, operation string) (*domain.Quote, error) {
	if actor == 0 {
		return nil, domain.NewUnauthenticatedError("login required")
	}

	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if quote.OwnerID != actor {
		return nil, domain.NewForbiddenError(operation, "not the owner")
	}

	return quote, nil
}

// clampPaging normalizes page and page size to configured bounds.
func (s *QuoteService) clampPaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 {
		pageSize = s.pageSize
	}

	if pageSize > s.maxSize {
		pageSize = s.maxSize
	}

	return page, pageSize
}

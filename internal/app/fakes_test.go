package app

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jsamuelsen/quotewall/internal/domain"
	"github.com/jsamuelsen/quotewall/internal/ports"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func timeNow() time.Time {
	return time.Now()
}

// fakeUserRepo is an in-memory ports.UserRepository.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID domain.UserID
	users  map[domain.UserID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[domain.UserID]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return domain.NewConflictError("user", "username or email already taken")
		}
	}

	f.nextID++
	user.ID = f.nextID
	user.Active = true
	clone := *user
	f.users[user.ID] = &clone

	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}

	return nil, domain.NewNotFoundError("user", strconv.FormatUint(uint64(id), 10))
}

func (f *fakeUserRepo) GetByLogin(_ context.Context, login string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Username == login || u.Email == strings.ToLower(login) {
			clone := *u
			return &clone, nil
		}
	}

	return nil, domain.NewNotFoundError("user", login)
}

func (f *fakeUserRepo) TouchLogin(ctx context.Context, id domain.UserID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return domain.NewNotFoundError("user", strconv.FormatUint(uint64(id), 10))
	}

	now := timeNow()
	u.LastLoginAt = &now

	return nil
}

// fakeQuoteRepo is an in-memory ports.QuoteRepository backed by a
// reaction store for the join-style listing.
type fakeQuoteRepo struct {
	mu        sync.Mutex
	nextID    domain.QuoteID
	quotes    map[domain.QuoteID]*domain.Quote
	reactions *fakeReactionRepo
}

func newFakeQuoteRepo(reactions *fakeReactionRepo) *fakeQuoteRepo {
	return &fakeQuoteRepo{
		quotes:    make(map[domain.QuoteID]*domain.Quote),
		reactions: reactions,
	}
}

func (f *fakeQuoteRepo) Create(_ context.Context, quote *domain.Quote) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	quote.ID = f.nextID
	quote.CreatedAt = timeNow()
	quote.UpdatedAt = quote.CreatedAt
	clone := *quote
	f.quotes[quote.ID] = &clone

	return nil
}

func (f *fakeQuoteRepo) GetByID(_ context.Context, id domain.QuoteID) (*domain.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if q, ok := f.quotes[id]; ok {
		clone := *q
		return &clone, nil
	}

	return nil, domain.NewNotFoundError("quote", strconv.FormatUint(uint64(id), 10))
}

func (f *fakeQuoteRepo) Update(_ context.Context, quote *domain.Quote) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.quotes[quote.ID]; !ok {
		return domain.NewNotFoundError("quote", strconv.FormatUint(uint64(quote.ID), 10))
	}

	clone := *quote
	f.quotes[quote.ID] = &clone

	return nil
}

func (f *fakeQuoteRepo) Delete(_ context.Context, id domain.QuoteID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.quotes[id]; !ok {
		return domain.NewNotFoundError("quote", strconv.FormatUint(uint64(id), 10))
	}

	delete(f.quotes, id)
	f.reactions.removeQuote(id)

	return nil
}

func (f *fakeQuoteRepo) ListByOwner(_ context.Context, owner domain.UserID, page, pageSize int) (*domain.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []domain.Quote
	for _, q := range f.quotes {
		if q.OwnerID == owner {
			matched = append(matched, *q)
		}
	}

	return paged(matched, page, pageSize), nil
}

func (f *fakeQuoteRepo) ListByReaction(_ context.Context, user domain.UserID, kind domain.ReactionKind, page, pageSize int) (*domain.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []domain.Quote
	for _, q := range f.quotes {
		if f.reactions.has(user, q.ID, kind) {
			matched = append(matched, *q)
		}
	}

	return paged(matched, page, pageSize), nil
}

func (f *fakeQuoteRepo) Search(_ context.Context, sq domain.SearchQuery) (*domain.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []domain.Quote
	for _, q := range f.quotes {
		if matchesQuery(q, sq) {
			matched = append(matched, *q)
		}
	}

	return paged(matched, sq.Page, sq.PageSize), nil
}

func matchesQuery(q *domain.Quote, sq domain.SearchQuery) bool {
	if term := strings.ToLower(strings.TrimSpace(sq.Query)); term != "" {
		if !strings.Contains(strings.ToLower(q.Content), term) &&
			!strings.Contains(strings.ToLower(q.Explanation), term) {
			return false
		}
	}

	if a := strings.ToLower(strings.TrimSpace(sq.Author)); a != "" {
		if !strings.HasPrefix(strings.ToLower(q.Author), a) {
			return false
		}
	}

	if s := strings.ToLower(strings.TrimSpace(sq.Source)); s != "" {
		if !strings.HasPrefix(strings.ToLower(q.Source), s) {
			return false
		}
	}

	return true
}

func paged(quotes []domain.Quote, page, pageSize int) *domain.Page {
	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].ID > quotes[j].ID
	})

	total := int64(len(quotes))
	start := (page - 1) * pageSize
	if start > len(quotes) {
		start = len(quotes)
	}

	end := start + pageSize
	if end > len(quotes) {
		end = len(quotes)
	}

	return &domain.Page{
		Quotes:   quotes[start:end],
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}

// fakeReactionRepo is an in-memory ports.ReactionRepository.
type fakeReactionRepo struct {
	mu   sync.Mutex
	rows map[reactionKey]bool
}

type reactionKey struct {
	user  domain.UserID
	quote domain.QuoteID
	kind  domain.ReactionKind
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{rows: make(map[reactionKey]bool)}
}

func (f *fakeReactionRepo) Toggle(_ context.Context, user domain.UserID, quote domain.QuoteID, kind domain.ReactionKind) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := reactionKey{user, quote, kind}
	if f.rows[key] {
		delete(f.rows, key)
		return false, nil
	}

	f.rows[key] = true

	return true, nil
}

func (f *fakeReactionRepo) States(_ context.Context, user domain.UserID, quote domain.QuoteID) (map[domain.ReactionKind]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return map[domain.ReactionKind]bool{
		domain.ReactionLike:    f.rows[reactionKey{user, quote, domain.ReactionLike}],
		domain.ReactionCollect: f.rows[reactionKey{user, quote, domain.ReactionCollect}],
	}, nil
}

func (f *fakeReactionRepo) Count(_ context.Context, quote domain.QuoteID, kind domain.ReactionKind) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for key := range f.rows {
		if key.quote == quote && key.kind == kind {
			count++
		}
	}

	return count, nil
}

func (f *fakeReactionRepo) has(user domain.UserID, quote domain.QuoteID, kind domain.ReactionKind) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.rows[reactionKey{user, quote, kind}]
}

func (f *fakeReactionRepo) removeQuote(quote domain.QuoteID) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for key := range f.rows {
		if key.quote == quote {
			delete(f.rows, key)
		}
	}
}

// fakeProvider is a canned ports.ExplanationProvider.
type fakeProvider struct {
	mu     sync.Mutex
	calls  int
	result string
	err    error
	gotReq ports.ExplanationRequest
}

func (f *fakeProvider) Explain(_ context.Context, req ports.ExplanationRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.gotReq = req

	return f.result, f.err
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}

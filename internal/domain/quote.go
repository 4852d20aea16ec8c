package domain

import "time"

// QuoteID identifies a quote.
type QuoteID uint

// Quote represents a quotation published by a user.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	// ID is the unique identifier for this quote.
	ID QuoteID

	// OwnerID is the user who created the quote. Only the owner may
	// mutate or delete it.
	OwnerID UserID

	// Content is the text of the quote.
	Content string

	// Author is who said or wrote the quote.
	Author string

	// Source is where the quote comes from (book, film, speech).
	Source string

	// Explanation is optional commentary, authored or AI-generated.
	Explanation string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// QuoteInput carries the writable fields of a quote for create and update.
type QuoteInput struct {
	Content     string
	Author      string
	Source      string
	Explanation string
}

// QuoteUpdate carries a partial update: nil fields are left untouched,
// non-nil fields replace the stored value.
type QuoteUpdate struct {
	Content     *string
	Author      *string
	Source      *string
	Explanation *string
}

// ReactionKind distinguishes the two per-user quote relations.
type ReactionKind string

const (
	// ReactionLike marks a quote as liked by a user.
	ReactionLike ReactionKind = "like"

	// ReactionCollect saves a quote to a user's personal list.
	ReactionCollect ReactionKind = "collect"
)

// Valid reports whether the kind is one of the known reaction kinds.
func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionCollect
}

// SearchQuery holds the filters and paging for a quote search.
// A zero Query matches everything; Author and Source are prefix filters.
type SearchQuery struct {
	Query    string
	Author   string
	Source   string
	Page     int
	PageSize int
}

// Page is one page of search results, newest first.
type Page struct {
	Quotes   []Quote
	Total    int64
	Page     int
	PageSize int
}

// QuoteDetail is a quote enriched with reaction counts and, when a viewer
// is known, the viewer's own reaction state.
type QuoteDetail struct {
	Quote        Quote
	LikeCount    int64
	CollectCount int64
	Liked        bool
	Collected    bool
}

// ShareView is the unauthenticated rendering of a single quote for
// distribution: the quote itself, a stable URL, and a scannable code
// that resolves to the same URL.
type ShareView struct {
	Quote Quote

	// URL is the stable shareable link for the quote.
	URL string

	// QRDataURI is a PNG data URI encoding URL.
	QRDataURI string
}

// Package sources defines the source adapter contract and the registry
// of configured news sites. Each adapter knows how to list one index
// page and extract one article; all crawl policy lives in the
// orchestrator, written once against the Source interface.
package sources

import (
	"context"

	"github.com/jonesrussell/newsharvest/internal/domain"
)

// PaginationMode selects how the orchestrator advances through a source.
type PaginationMode string

const (
	// ModeIndexOffset resumes from the oldest unfetched item using the
	// source-reported total and a persisted ingested-count cursor.
	ModeIndexOffset PaginationMode = "index-offset"
	// ModeRecentPages re-scans a fixed number of newest pages each run
	// and relies on the dedup check to skip stored items.
	ModeRecentPages PaginationMode = "recent-pages"
)

// ItemRef is one entry of an index page: enough to decide whether the
// item is worth extracting, and how to fetch its detail page.
type ItemRef struct {
	// ExternalID is the source-native identifier, empty for
	// page-scraped sources.
	ExternalID string
	// SourceURL is the canonical absolute URL, the dedup key.
	SourceURL string
	// Title as listed on the index, empty when the index carries none.
	Title string
	// Summary as listed on the index.
	Summary string
	// ImageURL as listed on the index.
	ImageURL string
	// Language of the item when the index reports it.
	Language string
	// CreatedAt publish time in epoch seconds when the index reports it.
	CreatedAt int64
}

// Page is one finite, non-restartable index listing.
type Page struct {
	// Items in source order, newest first for offset-style APIs.
	Items []ItemRef
	// Total is the source-reported total item count, or -1 when the
	// source does not report one.
	Total int
}

// Source is implemented once per site/language variant.
type Source interface {
	// Name uniquely identifies the adapter, e.g. "theedge-zh".
	Name() string
	// Exchange is the coarse market grouping stored with each article.
	Exchange() string
	// Pagination returns the advance strategy the orchestrator applies.
	Pagination() PaginationMode
	// PageSize is the fixed item count of one index page.
	PageSize() int
	// ListIndex fetches one index page. For ModeIndexOffset, pos is an
	// item offset; for ModeRecentPages it is a zero-based page number.
	ListIndex(ctx context.Context, pos int) (*Page, error)
	// Qualifies reports whether an item should be extracted and stored.
	// Unqualified items still consume index-offset batch quota.
	Qualifies(item ItemRef) bool
	// ExtractDetail fetches and parses the detail page, returning the
	// article minus persistence-assigned fields.
	ExtractDetail(ctx context.Context, item ItemRef) (*domain.Article, error)
	// AssetID keys the article image in the shared asset directory.
	// Language variants of one article return the same id.
	AssetID(item ItemRef) string
}

// Package theedge implements source adapters for The Edge Malaysia.
// Both language variants list articles through the site's JSON
// loadMoreCategories API and scrape detail pages for the body.
package theedge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonesrussell/newsharvest/internal/domain"
	"github.com/jonesrussell/newsharvest/internal/fetch"
	"github.com/jonesrussell/newsharvest/internal/logger"
	"github.com/jonesrussell/newsharvest/internal/sources"
)

const (
	defaultBaseURL = "https://theedgemalaysia.com"
	pageSize       = 10

	exchangeMalaysia = "ml"

	categoryChinese = "news"
	categoryEnglish = "malaysia"
)

// Adapter is a The Edge Malaysia source variant.
type Adapter struct {
	client         *fetch.Client
	logger         logger.Interface
	baseURL        string
	name           string
	category       string
	mode           sources.PaginationMode
	acceptLanguage string
	chineseOnly    bool
}

// Option customizes an adapter.
type Option func(*Adapter)

// WithBaseURL overrides the site base URL.
func WithBaseURL(baseURL string) Option {
	return func(a *Adapter) {
		a.baseURL = baseURL
	}
}

// NewChinese creates the Chinese-edition adapter. The site's list API
// reports a growing total, so this variant paginates by offset from a
// persisted ingested-count cursor. English items share the feed and are
// filtered by title script.
func NewChinese(client *fetch.Client, log logger.Interface, opts ...Option) *Adapter {
	a := &Adapter{
		client:      client,
		baseURL:     defaultBaseURL,
		name:        "theedge-zh",
		category:    categoryChinese,
		mode:        sources.ModeIndexOffset,
		chineseOnly: true,
	}
	a.logger = log.WithSource(a.name)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewEnglish creates the English-edition adapter, which re-scans the
// newest pages each run and relies on dedup alone.
func NewEnglish(client *fetch.Client, log logger.Interface, opts ...Option) *Adapter {
	a := &Adapter{
		client:         client,
		baseURL:        defaultBaseURL,
		name:           "theedge-en",
		category:       categoryEnglish,
		mode:           sources.ModeRecentPages,
		acceptLanguage: "en",
	}
	a.logger = log.WithSource(a.name)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name implements sources.Source.
func (a *Adapter) Name() string { return a.name }

// Exchange implements sources.Source.
func (a *Adapter) Exchange() string { return exchangeMalaysia }

// Pagination implements sources.Source.
func (a *Adapter) Pagination() sources.PaginationMode { return a.mode }

// PageSize implements sources.Source.
func (a *Adapter) PageSize() int { return pageSize }

// indexResponse mirrors the loadMoreCategories API payload.
type indexResponse struct {
	Total   json.Number `json:"total"`
	Results []indexItem `json:"results"`
}

type indexItem struct {
	NID      json.Number `json:"nid"`
	Title    string      `json:"title"`
	Summary  string      `json:"summary"`
	Img      string      `json:"img"`
	Language string      `json:"language"`
	Created  int64       `json:"created"`
}

// ListIndex fetches one page of the list API. For the index-offset
// variant pos is the item offset; for the recent-scan variant it is a
// zero-based page number mapped onto offsets of pageSize.
func (a *Adapter) ListIndex(ctx context.Context, pos int) (*sources.Page, error) {
	offset := pos
	if a.mode == sources.ModeRecentPages {
		offset = pos * pageSize
	}

	url := fmt.Sprintf("%s/api/loadMoreCategories?offset=%d&categories=%s", a.baseURL, offset, a.category)
	body, err := a.client.Get(ctx, url, a.headers())
	if err != nil {
		return nil, fmt.Errorf("list index: %w", err)
	}

	var resp indexResponse
	if unmarshalErr := json.Unmarshal(body, &resp); unmarshalErr != nil {
		return nil, fmt.Errorf("decode index response: %w", unmarshalErr)
	}

	page := &sources.Page{Total: -1}
	if total, totalErr := resp.Total.Int64(); totalErr == nil {
		page.Total = int(total)
	}

	for _, item := range resp.Results {
		nid := item.NID.String()
		page.Items = append(page.Items, sources.ItemRef{
			ExternalID: nid,
			SourceURL:  fmt.Sprintf("%s/node/%s", a.baseURL, nid),
			Title:      item.Title,
			Summary:    item.Summary,
			ImageURL:   item.Img,
			Language:   item.Language,
			// The list API reports milliseconds; everything downstream
			// works in epoch seconds.
			CreatedAt: item.Created / 1000,
		})
	}

	return page, nil
}

// Qualifies implements sources.Source. The Chinese feed interleaves
// English items; those are skipped but still consume batch quota.
func (a *Adapter) Qualifies(item sources.ItemRef) bool {
	if !a.chineseOnly {
		return true
	}
	return isChineseTitle(item.Title)
}

// AssetID implements sources.Source. Variants share node ids, so the
// image downloaded for one language serves the other.
func (a *Adapter) AssetID(item sources.ItemRef) string {
	return item.ExternalID
}

// headers returns the anti-bot request headers for this variant.
func (a *Adapter) headers() http.Header {
	h := http.Header{}
	h.Set("Referer", a.baseURL+"/")
	if a.acceptLanguage != "" {
		h.Set("Accept-Language", a.acceptLanguage)
	}
	return h
}

// ExtractDetail fetches the node page and extracts the cleaned body.
// Title, summary, image and timestamp come from the index listing.
func (a *Adapter) ExtractDetail(ctx context.Context, item sources.ItemRef) (*domain.Article, error) {
	body, err := a.extractBody(ctx, item.SourceURL)
	if err != nil {
		return nil, err
	}

	return &domain.Article{
		ExternalID: item.ExternalID,
		Title:      item.Title,
		Subtitle:   item.Summary,
		Content:    body,
		Exchange:   exchangeMalaysia,
		Language:   item.Language,
		SourceURL:  item.SourceURL,
		CreatedAt:  item.CreatedAt,
		ImageURL:   item.ImageURL,
	}, nil
}

// isChineseTitle reports whether the title carries any CJK characters.
func isChineseTitle(title string) bool {
	for _, r := range title {
		if r >= 0x4e00 && r <= 0x9fa5 {
			return true
		}
	}
	return false
}

// Package domain provides domain models used across the application.
package domain

import (
	"strings"
	"time"
)

// Article represents a single normalized news article.
//
// SourceURL is the canonical absolute URL of the article on its origin
// site and is the deduplication key: no two stored articles share it.
type Article struct {
	// Internal identifier assigned by the store
	ID int64 `db:"id" json:"id"`
	// Source-native identifier, empty for page-scraped sources
	ExternalID string `db:"external_id" json:"nid,omitempty"`
	// Title of the article
	Title string `db:"title" json:"title"`
	// Short summary or standfirst
	Subtitle string `db:"sub_title" json:"abstract"`
	// Relative path of the stored image under the public asset root,
	// empty when the article has no image
	ImagePath string `db:"img" json:"img"`
	// Cleaned HTML body
	Content string `db:"content" json:"content"`
	// Coarse market grouping, e.g. "ml" or "id"
	Exchange string `db:"exchange" json:"exchange"`
	// Language code as reported by the source
	Language string `db:"lang" json:"lang"`
	// Canonical source URL, unique per article
	SourceURL string `db:"source_url" json:"source_url"`
	// Publish timestamp in epoch seconds
	CreatedAt int64 `db:"created" json:"created"`
	// Record insertion timestamp
	InsertedAt time.Time `db:"inserted_at" json:"inserted_at,omitempty"`

	// ImageURL is the source-side image location. It is resolved into
	// ImagePath before the article is persisted and never stored itself.
	ImageURL string `db:"-" json:"-"`
}

// NormalizeText prepares a scraped text field for persistence by
// replacing single quotes with double quotes and trimming whitespace.
// The stored representation matches what earlier ingests produced, so
// dedup comparisons against old rows stay stable.
func NormalizeText(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "'", `"`))
}

// Normalize applies NormalizeText to every free-text field.
func (a *Article) Normalize() {
	a.Title = NormalizeText(a.Title)
	a.Subtitle = NormalizeText(a.Subtitle)
	a.Content = NormalizeText(a.Content)
}

// HasImage reports whether the source article carries an image.
func (a *Article) HasImage() bool {
	return a.ImageURL != ""
}

// Package moneycontrol implements source adapters for moneycontrol.com
// in its English, Hindi, and Gujarati editions. The site exposes plain
// HTML index pages, so all three variants re-scan the newest pages each
// run and rely on dedup to skip stored articles.
package moneycontrol

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/newsharvest/internal/fetch"
	"github.com/jonesrussell/newsharvest/internal/logger"
	"github.com/jonesrussell/newsharvest/internal/sources"
)

const exchangeIndia = "id"

// Language editions.
const (
	LangEnglish  = "en"
	LangHindi    = "hindi"
	LangGujarati = "gujarati"
)

// defaultBaseURLs maps editions to their hosts.
var defaultBaseURLs = map[string]string{
	LangEnglish:  "https://www.moneycontrol.com",
	LangHindi:    "https://hindi.moneycontrol.com",
	LangGujarati: "https://gujarati.moneycontrol.com",
}

// excludedPaths matches live blogs, daily digests, videos and cricket
// items, none of which are regular articles.
var excludedPaths = regexp.MustCompile(`news-live|moneycontrol-daily|news/videos|news/cricket`)

// Adapter is one moneycontrol.com language edition.
type Adapter struct {
	client  *fetch.Client
	logger  logger.Interface
	lang    string
	baseURL string
}

// Option customizes an adapter.
type Option func(*Adapter)

// WithBaseURL overrides the edition host.
func WithBaseURL(baseURL string) Option {
	return func(a *Adapter) {
		a.baseURL = baseURL
	}
}

// New creates the adapter for one language edition.
func New(client *fetch.Client, log logger.Interface, lang string, opts ...Option) (*Adapter, error) {
	baseURL, ok := defaultBaseURLs[lang]
	if !ok {
		return nil, fmt.Errorf("unknown moneycontrol edition: %q", lang)
	}

	a := &Adapter{
		client:  client,
		lang:    lang,
		baseURL: baseURL,
	}
	a.logger = log.WithSource(a.Name())
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Name implements sources.Source.
func (a *Adapter) Name() string { return "moneycontrol-" + a.lang }

// Exchange implements sources.Source.
func (a *Adapter) Exchange() string { return exchangeIndia }

// Pagination implements sources.Source.
func (a *Adapter) Pagination() sources.PaginationMode { return sources.ModeRecentPages }

// PageSize implements sources.Source. The site does not report a total,
// so no offset arithmetic ever uses this.
func (a *Adapter) PageSize() int { return 0 }

// Qualifies implements sources.Source. Non-article paths are already
// dropped during listing.
func (a *Adapter) Qualifies(sources.ItemRef) bool { return true }

// AssetID implements sources.Source: "idx_" plus the numeric slug of the
// article URL, shared across editions publishing the same story id.
func (a *Adapter) AssetID(item sources.ItemRef) string {
	parts := strings.FieldsFunc(item.SourceURL, func(r rune) bool {
		return r == '.' || r == '-'
	})
	if len(parts) < 2 {
		return ""
	}
	return "idx_" + parts[len(parts)-2]
}

// ListIndex scrapes one index page; pos is a zero-based page number
// (the site's pages start at one).
func (a *Adapter) ListIndex(ctx context.Context, pos int) (*sources.Page, error) {
	path := fmt.Sprintf("/news/latest-news/page-%d", pos+1)
	if a.lang == LangEnglish {
		path = fmt.Sprintf("/news/news-all/page-%d", pos+1)
	}

	html, err := a.client.GetText(ctx, a.baseURL+path, a.headers())
	if err != nil {
		return nil, fmt.Errorf("list index: %w", err)
	}

	doc, parseErr := goquery.NewDocumentFromReader(strings.NewReader(html))
	if parseErr != nil {
		return nil, fmt.Errorf("parse index page: %w", parseErr)
	}

	var links []string
	if a.lang == LangEnglish {
		links = a.englishIndexLinks(doc)
	} else {
		links = a.regionalIndexLinks(doc)
	}

	page := &sources.Page{Total: -1}
	for _, link := range links {
		if excludedPaths.MatchString(link) {
			continue
		}
		page.Items = append(page.Items, sources.ItemRef{
			SourceURL: a.absoluteURL(link),
			Language:  a.lang,
		})
	}

	return page, nil
}

// englishIndexLinks extracts hrefs from the English edition's listing.
func (a *Adapter) englishIndexLinks(doc *goquery.Document) []string {
	var links []string
	doc.Find("ul#cagetory h2").Each(func(_ int, h2 *goquery.Selection) {
		if href, ok := h2.Find("a").First().Attr("href"); ok {
			links = append(links, href)
		}
	})
	return links
}

// regionalIndexLinks extracts hrefs from the Hindi/Gujarati listings:
// an optional top/featured item, then the category cards. A page
// without the featured slot is normal, not an error.
func (a *Adapter) regionalIndexLinks(doc *goquery.Document) []string {
	var links []string

	if href, ok := doc.Find("h2.topNews_h2").First().Find("a").First().Attr("href"); ok {
		links = append(links, href)
	}

	doc.Find("div[class*='Category_cat-inn']").Each(func(_ int, card *goquery.Selection) {
		if href, ok := card.Find("a").First().Attr("href"); ok {
			links = append(links, href)
		}
	})

	return links
}

// absoluteURL resolves an index href to a canonical article URL. The
// English edition lists absolute URLs; the regional editions list paths.
func (a *Adapter) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return a.baseURL + href
}

// headers returns the anti-bot request headers for this edition.
func (a *Adapter) headers() http.Header {
	h := http.Header{}
	h.Set("Referer", a.baseURL)
	return h
}

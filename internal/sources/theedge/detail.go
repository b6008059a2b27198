package theedge

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/newsharvest/internal/content"
)

// Detail page selectors. The content container's class name carries a
// build hash suffix, so it is matched by prefix.
const (
	selContainer    = "div[class*='news-detail_newsTextDataWrap']"
	selAd           = "div.inPageAd"
	selInnerWrap    = "div.newsTextDataWrapInner"
	altVersionToken = "version"
)

// extractBody fetches a node page and returns the cleaned article body.
// A missing content container is a per-item parse failure, not a run
// failure.
func (a *Adapter) extractBody(ctx context.Context, sourceURL string) (string, error) {
	html, err := a.client.GetText(ctx, sourceURL, a.headers())
	if err != nil {
		return "", fmt.Errorf("fetch detail page: %w", err)
	}

	doc, parseErr := goquery.NewDocumentFromReader(strings.NewReader(html))
	if parseErr != nil {
		return "", fmt.Errorf("parse detail page: %w", parseErr)
	}

	container := doc.Find(selContainer).First()
	if container.Length() == 0 {
		return "", fmt.Errorf("detail page %s: content container not found", sourceURL)
	}

	container.Find(selAd).Remove()
	removeAltVersionNotice(container)

	body := content.FirstChildHTML(container)
	if body == "" {
		return "", fmt.Errorf("detail page %s: empty content body", sourceURL)
	}

	return content.Sanitize(body), nil
}

// removeAltVersionNotice drops the trailing "read the
// English/Chinese version" notice: its em caption, the link, and the
// wrapping inner container they sit in.
func removeAltVersionNotice(container *goquery.Selection) {
	em := container.Find("em").First()
	if em.Length() == 0 || !strings.Contains(em.Text(), altVersionToken) {
		return
	}

	em.Remove()
	container.Find("a").First().Remove()
	container.Find(selInnerWrap).Last().Remove()
}

package moneycontrol

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/newsharvest/internal/content"
	"github.com/jonesrussell/newsharvest/internal/domain"
	"github.com/jonesrussell/newsharvest/internal/sources"
)

// publishedLayout matches the site's wall-clock timestamps,
// e.g. "Nov 14, 2023 03:29 PM".
const publishedLayout = "Jan 2, 2006 3:04 PM"

// The site publishes in Indian local time.
var indiaTime = time.FixedZone("IST", 5*3600+30*60)

// ExtractDetail fetches and parses an article page. Everything comes
// from the detail page here; the index only carries URLs.
func (a *Adapter) ExtractDetail(ctx context.Context, item sources.ItemRef) (*domain.Article, error) {
	html, err := a.client.GetText(ctx, item.SourceURL, a.headers())
	if err != nil {
		return nil, fmt.Errorf("fetch detail page: %w", err)
	}

	doc, parseErr := goquery.NewDocumentFromReader(strings.NewReader(html))
	if parseErr != nil {
		return nil, fmt.Errorf("parse detail page: %w", parseErr)
	}

	var body, published string
	var wrapper *goquery.Selection
	if a.lang == LangEnglish {
		wrapper, body, published, err = extractEnglish(doc)
	} else {
		wrapper, body, published, err = extractRegional(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("detail page %s: %w", item.SourceURL, err)
	}

	publishedAt, timeErr := time.ParseInLocation(publishedLayout, strings.TrimSpace(published), indiaTime)
	if timeErr != nil {
		return nil, fmt.Errorf("detail page %s: parse publish time %q: %w", item.SourceURL, published, timeErr)
	}

	article := &domain.Article{
		Title:     strings.TrimSpace(wrapper.Find("h1").First().Text()),
		Subtitle:  strings.TrimSpace(wrapper.Find("h2").First().Text()),
		Content:   content.Sanitize(body),
		Exchange:  exchangeIndia,
		Language:  a.lang,
		SourceURL: item.SourceURL,
		CreatedAt: publishedAt.Unix(),
	}

	if imgURL, ok := doc.Find("meta[property='og:image']").Attr("content"); ok {
		article.ImageURL = strings.TrimSpace(imgURL)
	}

	if article.Title == "" {
		return nil, fmt.Errorf("detail page %s: empty title", item.SourceURL)
	}
	if article.Content == "" {
		return nil, fmt.Errorf("detail page %s: empty content body", item.SourceURL)
	}

	return article, nil
}

// extractEnglish pulls the body and publish time out of the English
// edition layout: the article text sits in #contentdata with ads and
// related-story blocks as inner divs.
func extractEnglish(doc *goquery.Document) (wrapper *goquery.Selection, body, published string, err error) {
	wrapper = doc.Find("div.page_left_wrapper").First()
	if wrapper.Length() == 0 {
		return nil, "", "", fmt.Errorf("left wrapper not found")
	}

	container := wrapper.Find("div#contentdata").First()
	if container.Length() == 0 {
		return nil, "", "", fmt.Errorf("content container not found")
	}

	container.Find("div").Remove()
	body = content.OuterHTML(container)

	tagLine := wrapper.Find("div.tags_last_line").First().Text()
	parts := strings.Split(tagLine, ": ")
	published = parts[len(parts)-1]

	return wrapper, body, published, nil
}

// extractRegional pulls the body and publish time out of the
// Hindi/Gujarati layout: a hashed Article_body container holding one
// inner element, with an aside ad and a promo-link block to drop.
func extractRegional(doc *goquery.Document) (wrapper *goquery.Selection, body, published string, err error) {
	wrapper = doc.Find("div.lft-side").First()
	if wrapper.Length() == 0 {
		return nil, "", "", fmt.Errorf("left wrapper not found")
	}

	container := wrapper.Find("div[class*='Article_body']").First()
	if container.Length() == 0 {
		return nil, "", "", fmt.Errorf("content container not found")
	}

	container.Find("aside").Remove()
	if promo := container.Find("a").First(); promo.Length() > 0 {
		promo.Parent().Parent().Remove()
	}
	body = content.FirstChildHTML(container)

	published = wrapper.Find("div[class*='Tag_author_rgt']").First().
		Find("p").Last().Text()

	return wrapper, body, published, nil
}

// Package content provides shared HTML cleaning for source adapters.
package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// policy keeps ordinary article markup and drops script, style, iframe
// and event-handler residue the site-specific cleaners did not reach.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class", "id").Globally()
	p.AllowElements("figure", "figcaption", "picture", "source", "span", "section")
	p.AllowAttrs("srcset", "media", "sizes").OnElements("source", "img")
	return p
}

// Sanitize strips script/embed residue from a cleaned article body.
func Sanitize(html string) string {
	return strings.TrimSpace(policy.Sanitize(html))
}

// OuterHTML renders a selection back to HTML, ignoring render errors on
// empty selections.
func OuterHTML(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	html, err := goquery.OuterHtml(sel)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(html)
}

// FirstChildHTML renders the first child element of a container. Site
// layouts wrap the article body in one inner element; callers want that
// element without the outer chrome.
func FirstChildHTML(container *goquery.Selection) string {
	return OuterHTML(container.Children().First())
}

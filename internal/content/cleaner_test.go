package content_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsharvest/internal/content"
)

func TestSanitize_StripsScripts(t *testing.T) {
	t.Parallel()

	body := `<div class="article"><p>keep me</p><script>alert("x")</script></div>`
	cleaned := content.Sanitize(body)

	require.Contains(t, cleaned, "keep me")
	require.Contains(t, cleaned, `class="article"`)
	require.NotContains(t, cleaned, "script")
	require.NotContains(t, cleaned, "alert")
}

func TestSanitize_StripsEventHandlers(t *testing.T) {
	t.Parallel()

	cleaned := content.Sanitize(`<p onclick="evil()">text</p>`)

	require.Contains(t, cleaned, "text")
	require.NotContains(t, cleaned, "onclick")
}

func TestSanitize_KeepsFigures(t *testing.T) {
	t.Parallel()

	body := `<figure><img src="https://example.com/a.jpg" alt="pic"/><figcaption>cap</figcaption></figure>`
	cleaned := content.Sanitize(body)

	require.Contains(t, cleaned, "<figure>")
	require.Contains(t, cleaned, "cap")
}

func TestFirstChildHTML(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div class="wrap"><div class="inner"><p>body</p></div><div class="other"></div></div>`))
	require.NoError(t, err)

	html := content.FirstChildHTML(doc.Find("div.wrap"))
	require.Contains(t, html, `class="inner"`)
	require.Contains(t, html, "body")
	require.NotContains(t, html, "other")
}

func TestOuterHTML_EmptySelection(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<p>x</p>"))
	require.NoError(t, err)

	require.Empty(t, content.OuterHTML(doc.Find("article")))
	require.Empty(t, content.OuterHTML(nil))
}

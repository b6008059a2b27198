package theedge_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsharvest/internal/fetch"
	"github.com/jonesrussell/newsharvest/internal/logger"
	"github.com/jonesrussell/newsharvest/internal/sources"
	"github.com/jonesrussell/newsharvest/internal/sources/theedge"
)

const indexJSON = `{
	"total": "57",
	"results": [
		{
			"nid": 66981,
			"title": "马股持续下跌",
			"summary": "综合报道",
			"img": "https://assets.theedgemalaysia.com/66981.jpg",
			"language": "mandarin",
			"created": 1700000000000
		},
		{
			"nid": 66982,
			"title": "Market closes lower",
			"summary": "Wire report",
			"img": "",
			"language": "english",
			"created": 1700000060000
		}
	]
}`

const detailHTML = `<html><body>
<div class="news-detail_newsTextDataWrap__abc123">
	<div class="newsTextDataWrapInner">
		<p>大马股市今日收低。</p>
		<div class="inPageAd"><script>ads()</script>ad block</div>
		<p>分析员认为走势疲弱。</p>
	</div>
	<div class="newsTextDataWrapInner">
		<em>Read the English version here</em>
		<a href="/node/66982">English version</a>
	</div>
</div>
</body></html>`

const detailNoContainerHTML = `<html><body><div class="unrelated">nothing</div></body></html>`

func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/loadMoreCategories", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, indexJSON)
	})
	mux.HandleFunc("/node/66981", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, detailHTML)
	})
	mux.HandleFunc("/node/99999", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, detailNoContainerHTML)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newAdapter(t *testing.T, server *httptest.Server, chinese bool) *theedge.Adapter {
	t.Helper()

	client, err := fetch.New(fetch.Config{UserAgent: "newsharvest-test"}, logger.NewNoOp())
	require.NoError(t, err)

	if chinese {
		return theedge.NewChinese(client, logger.NewNoOp(), theedge.WithBaseURL(server.URL))
	}
	return theedge.NewEnglish(client, logger.NewNoOp(), theedge.WithBaseURL(server.URL))
}

func TestAdapter_ListIndex(t *testing.T) {
	t.Parallel()

	server := newFixtureServer(t)
	adapter := newAdapter(t, server, true)

	page, err := adapter.ListIndex(context.Background(), 0)
	require.NoError(t, err)

	require.Equal(t, 57, page.Total)
	require.Len(t, page.Items, 2)

	first := page.Items[0]
	require.Equal(t, "66981", first.ExternalID)
	require.Equal(t, server.URL+"/node/66981", first.SourceURL)
	require.Equal(t, "马股持续下跌", first.Title)
	require.Equal(t, "mandarin", first.Language)
	// Milliseconds from the API are normalized to seconds.
	require.Equal(t, int64(1700000000), first.CreatedAt)
}

func TestAdapter_ListIndex_OffsetQuery(t *testing.T) {
	t.Parallel()

	var gotOffsets []string
	var gotCategories []string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/loadMoreCategories", func(w http.ResponseWriter, r *http.Request) {
		gotOffsets = append(gotOffsets, r.URL.Query().Get("offset"))
		gotCategories = append(gotCategories, r.URL.Query().Get("categories"))
		_, _ = fmt.Fprint(w, `{"total":"0","results":[]}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	// Index-offset variant passes the raw item offset through.
	zh := newAdapter(t, server, true)
	_, err := zh.ListIndex(context.Background(), 37)
	require.NoError(t, err)

	// Recent-scan variant maps page numbers onto offsets of ten.
	en := newAdapter(t, server, false)
	_, err = en.ListIndex(context.Background(), 2)
	require.NoError(t, err)

	require.Equal(t, []string{"37", "20"}, gotOffsets)
	require.Equal(t, []string{"news", "malaysia"}, gotCategories)
}

func TestAdapter_Qualifies(t *testing.T) {
	t.Parallel()

	server := newFixtureServer(t)
	zh := newAdapter(t, server, true)
	en := newAdapter(t, server, false)

	chinese := sources.ItemRef{Title: "马股持续下跌"}
	english := sources.ItemRef{Title: "Market closes lower"}

	require.True(t, zh.Qualifies(chinese))
	require.False(t, zh.Qualifies(english))
	require.True(t, en.Qualifies(chinese))
	require.True(t, en.Qualifies(english))
}

func TestAdapter_ExtractDetail(t *testing.T) {
	t.Parallel()

	server := newFixtureServer(t)
	adapter := newAdapter(t, server, true)

	item := sources.ItemRef{
		ExternalID: "66981",
		SourceURL:  server.URL + "/node/66981",
		Title:      "马股持续下跌",
		Summary:    "综合报道",
		ImageURL:   "https://assets.theedgemalaysia.com/66981.jpg",
		Language:   "mandarin",
		CreatedAt:  1700000000,
	}

	article, err := adapter.ExtractDetail(context.Background(), item)
	require.NoError(t, err)

	require.Equal(t, "66981", article.ExternalID)
	require.Equal(t, "马股持续下跌", article.Title)
	require.Equal(t, "ml", article.Exchange)
	require.Equal(t, "mandarin", article.Language)
	require.Equal(t, int64(1700000000), article.CreatedAt)
	require.Equal(t, item.SourceURL, article.SourceURL)
	require.Equal(t, item.ImageURL, article.ImageURL)

	require.Contains(t, article.Content, "大马股市今日收低")
	require.Contains(t, article.Content, "分析员认为走势疲弱")
	// The ad block, its script, and the alternate-language notice are gone.
	require.NotContains(t, article.Content, "ad block")
	require.NotContains(t, article.Content, "script")
	require.NotContains(t, article.Content, "English version")
}

func TestAdapter_ExtractDetail_MissingContainer(t *testing.T) {
	t.Parallel()

	server := newFixtureServer(t)
	adapter := newAdapter(t, server, true)

	item := sources.ItemRef{ExternalID: "99999", SourceURL: server.URL + "/node/99999"}

	_, err := adapter.ExtractDetail(context.Background(), item)
	require.Error(t, err)
	require.False(t, fetch.IsTerminal(err))
	require.Contains(t, err.Error(), "content container not found")
}

func TestAdapter_Metadata(t *testing.T) {
	t.Parallel()

	server := newFixtureServer(t)
	zh := newAdapter(t, server, true)
	en := newAdapter(t, server, false)

	require.Equal(t, "theedge-zh", zh.Name())
	require.Equal(t, "theedge-en", en.Name())
	require.Equal(t, sources.ModeIndexOffset, zh.Pagination())
	require.Equal(t, sources.ModeRecentPages, en.Pagination())
	require.Equal(t, 10, zh.PageSize())
	require.Equal(t, "66981", zh.AssetID(sources.ItemRef{ExternalID: "66981"}))
}

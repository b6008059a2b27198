package moneycontrol_test

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
	"github.com/jonesrussell/newsharvest/internal/sources/moneycontrol"
)

const englishIndexHTML = `<html><body>
<ul id="cagetory">
	<li><h2><a href="%[1]s/news/business/markets/market-close-12345678.html">Market closes lower</a></h2></li>
	<li><h2><a href="%[1]s/news/news-live-blog-555.html">Live blog</a></h2></li>
	<li><h2><a href="%[1]s/news/business/moneycontrol-daily-roundup-777.html">Daily roundup</a></h2></li>
	<li><h2><a href="%[1]s/news/business/earnings-beat-23456789.html">Earnings beat</a></h2></li>
</ul>
</body></html>`

const hindiIndexHTML = `<html><body>
<h2 class="topNews_h2"><a href="/news/top-story-34567890.html">टॉप स्टोरी</a></h2>
<div class="Category_cat-inn__x1"><a href="/news/market-story-45678901.html">बाज़ार</a><p>intro</p></div>
<div class="Category_cat-inn__x1"><a href="/news/cricket/match-report-999.html">क्रिकेट</a></div>
</body></html>`

const hindiIndexNoTopHTML = `<html><body>
<div class="Category_cat-inn__x1"><a href="/news/market-story-45678901.html">बाज़ार</a></div>
</body></html>`

const englishDetailHTML = `<html><head>
<meta property="og:image" content="https://images.moneycontrol.com/12345678.jpg"/>
</head><body>
<div class="page_left_wrapper">
	<h1>Market closes lower</h1>
	<h2>Benchmarks slip for a third day</h2>
	<div id="contentdata">
		<p>Stocks fell on Tuesday.</p>
		<div class="related">related stories widget</div>
		<p>Losses were broad based.</p>
		<script>track()</script>
	</div>
	<div class="tags_last_line">first published: Nov 14, 2023 03:29 PM</div>
</div>
</body></html>`

const hindiDetailHTML = `<html><head>
<meta property="og:image" content="https://images.moneycontrol.com/45678901.jpg"/>
</head><body>
<div class="lft-side">
	<h1>बाज़ार में गिरावट</h1>
	<h2>लगातार तीसरे दिन गिरावट</h2>
	<div class="Article_body__y2">
		<div class="inner">
			<p>मंगलवार को शेयर गिरे।</p>
			<aside>विज्ञापन</aside>
			<div class="promo"><div><a href="/more">और पढ़ें</a></div></div>
			<p>गिरावट व्यापक रही।</p>
		</div>
	</div>
	<div class="Tag_author_rgt__z3">
		<p>Hindi Desk</p>
		<p>Nov 14, 2023 03:29 PM</p>
	</div>
</div>
</body></html>`

// publishedEpoch is Nov 14, 2023 03:29 PM IST in epoch seconds.
const publishedEpoch = int64(1699955940)

func newAdapter(t *testing.T, lang string, server *httptest.Server) *moneycontrol.Adapter {
	t.Helper()

	client, err := fetch.New(fetch.Config{UserAgent: "newsharvest-test"}, logger.NewNoOp())
	require.NoError(t, err)

	adapter, err := moneycontrol.New(client, logger.NewNoOp(), lang,
		moneycontrol.WithBaseURL(server.URL))
	require.NoError(t, err)
	return adapter
}

func TestAdapter_ListIndex_English(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = fmt.Fprintf(w, englishIndexHTML, "https://www.moneycontrol.com")
	}))
	t.Cleanup(server.Close)

	page, err := newAdapter(t, moneycontrol.LangEnglish, server).ListIndex(context.Background(), 0)
	require.NoError(t, err)

	require.Equal(t, "/news/news-all/page-1", gotPath)
	require.Equal(t, -1, page.Total)

	// Live blogs and daily digests are excluded.
	require.Len(t, page.Items, 2)
	require.Equal(t,
		"https://www.moneycontrol.com/news/business/markets/market-close-12345678.html",
		page.Items[0].SourceURL)
	require.Equal(t,
		"https://www.moneycontrol.com/news/business/earnings-beat-23456789.html",
		page.Items[1].SourceURL)
	require.Equal(t, "en", page.Items[0].Language)
}

func TestAdapter_ListIndex_Hindi(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = fmt.Fprint(w, hindiIndexHTML)
	}))
	t.Cleanup(server.Close)

	adapter := newAdapter(t, moneycontrol.LangHindi, server)
	page, err := adapter.ListIndex(context.Background(), 1)
	require.NoError(t, err)

	require.Equal(t, "/news/latest-news/page-2", gotPath)

	// Featured item first, then the category card; cricket is excluded.
	require.Len(t, page.Items, 2)
	require.Equal(t, server.URL+"/news/top-story-34567890.html", page.Items[0].SourceURL)
	require.Equal(t, server.URL+"/news/market-story-45678901.html", page.Items[1].SourceURL)
}

func TestAdapter_ListIndex_MissingTopNewsTolerated(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, hindiIndexNoTopHTML)
	}))
	t.Cleanup(server.Close)

	page, err := newAdapter(t, moneycontrol.LangHindi, server).ListIndex(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
}

func TestAdapter_ExtractDetail_English(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, englishDetailHTML)
	}))
	t.Cleanup(server.Close)

	item := sources.ItemRef{SourceURL: server.URL + "/news/business/markets/market-close-12345678.html"}
	article, err := newAdapter(t, moneycontrol.LangEnglish, server).
		ExtractDetail(context.Background(), item)
	require.NoError(t, err)

	require.Equal(t, "Market closes lower", article.Title)
	require.Equal(t, "Benchmarks slip for a third day", article.Subtitle)
	require.Equal(t, "id", article.Exchange)
	require.Equal(t, "en", article.Language)
	require.Equal(t, publishedEpoch, article.CreatedAt)
	require.Equal(t, "https://images.moneycontrol.com/12345678.jpg", article.ImageURL)

	require.Contains(t, article.Content, "Stocks fell on Tuesday.")
	require.Contains(t, article.Content, "Losses were broad based.")
	// Inner divs (ads, related stories) and scripts are stripped.
	require.NotContains(t, article.Content, "related stories widget")
	require.NotContains(t, article.Content, "track()")
}

func TestAdapter_ExtractDetail_Hindi(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, hindiDetailHTML)
	}))
	t.Cleanup(server.Close)

	item := sources.ItemRef{SourceURL: server.URL + "/news/market-story-45678901.html"}
	article, err := newAdapter(t, moneycontrol.LangHindi, server).
		ExtractDetail(context.Background(), item)
	require.NoError(t, err)

	require.Equal(t, "बाज़ार में गिरावट", article.Title)
	require.Equal(t, "लगातार तीसरे दिन गिरावट", article.Subtitle)
	require.Equal(t, "hindi", article.Language)
	require.Equal(t, publishedEpoch, article.CreatedAt)

	require.Contains(t, article.Content, "मंगलवार को शेयर गिरे।")
	require.Contains(t, article.Content, "गिरावट व्यापक रही।")
	require.NotContains(t, article.Content, "विज्ञापन")
	require.NotContains(t, article.Content, "और पढ़ें")
}

func TestAdapter_ExtractDetail_MissingContainer(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "<html><body><p>video page</p></body></html>")
	}))
	t.Cleanup(server.Close)

	item := sources.ItemRef{SourceURL: server.URL + "/news/video-88.html"}
	_, err := newAdapter(t, moneycontrol.LangEnglish, server).
		ExtractDetail(context.Background(), item)
	require.Error(t, err)
	require.False(t, fetch.IsTerminal(err))
}

func TestAdapter_AssetID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	t.Cleanup(server.Close)
	adapter := newAdapter(t, moneycontrol.LangEnglish, server)

	item := sources.ItemRef{
		SourceURL: "https://www.moneycontrol.com/news/business/markets/market-close-12345678.html",
	}
	require.Equal(t, "idx_12345678", adapter.AssetID(item))

	// Hindi edition of the same story id shares the asset.
	hindiItem := sources.ItemRef{
		SourceURL: "https://hindi.moneycontrol.com/news/market-story-12345678.html",
	}
	require.Equal(t, "idx_12345678", adapter.AssetID(hindiItem))
}

func TestNew_UnknownEdition(t *testing.T) {
	t.Parallel()

	client, err := fetch.New(fetch.Config{}, logger.NewNoOp())
	require.NoError(t, err)

	_, err = moneycontrol.New(client, logger.NewNoOp(), "tamil")
	require.Error(t, err)
}

func TestAdapter_Metadata(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	t.Cleanup(server.Close)

	adapter := newAdapter(t, moneycontrol.LangGujarati, server)
	require.Equal(t, "moneycontrol-gujarati", adapter.Name())
	require.Equal(t, sources.ModeRecentPages, adapter.Pagination())
	require.True(t, adapter.Qualifies(sources.ItemRef{}))
}

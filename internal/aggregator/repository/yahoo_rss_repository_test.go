package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang-stock-news-digest/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Yahoo! Finance: MSFT News</title>
  <link>https://finance.yahoo.com</link>
  <description>Latest news</description>
  <item>
    <title>Microsoft expands cloud</title>
    <link>https://example.com/msft-1</link>
    <pubDate>Mon, 13 Oct 2025 14:00:00 +0000</pubDate>
  </item>
  <item>
    <title>Microsoft earnings preview</title>
    <link>https://example.com/msft-2</link>
  </item>
  <item>
    <title>Third story</title>
    <link>https://example.com/msft-3</link>
  </item>
</channel>
</rss>`

func TestYahooRSSRepository_GetNews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rss", r.URL.Path)
		assert.Equal(t, "MSFT", r.URL.Query().Get("s"))
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MarketData.NewsCount = 2
	repo := NewYahooRSSRepository(cfg, logger.NewNop())

	items, err := repo.GetNews(context.Background(), "MSFT")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "https://example.com/msft-1", items[0].Link)
	assert.Equal(t, "Microsoft expands cloud", items[0].Title)
	assert.False(t, items[0].PublishedAt.IsZero())
	assert.Equal(t, "https://example.com/msft-2", items[1].Link)
}

func TestYahooRSSRepository_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	repo := NewYahooRSSRepository(testConfig(srv.URL), logger.NewNop())
	_, err := repo.GetNews(context.Background(), "MSFT")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestYahooRSSRepository_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	repo := NewYahooRSSRepository(testConfig(srv.URL), logger.NewNop())
	_, err := repo.GetNews(context.Background(), "MSFT")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
}

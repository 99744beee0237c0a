package repository

import (
	"time"

	"golang-stock-news-digest/internal/aggregator/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Aggregator: config.Aggregator{
			ArticleCacheTTL: time.Minute,
			ArticleTimeout:  5 * time.Second,
		},
		Gemini: config.Gemini{
			APIKey: "test-key",
			Model:  "gemini-2.0-flash",
		},
		MarketData: config.MarketData{
			Provider:  "yahoo",
			BaseURL:   baseURL,
			RSSURL:    baseURL + "/rss",
			NewsCount: 10,
			Timeout:   5 * time.Second,
		},
	}
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"golang-stock-news-digest/internal/aggregator/config"
	"golang-stock-news-digest/internal/aggregator/dto"
	"golang-stock-news-digest/pkg/common"
	"golang-stock-news-digest/pkg/logger"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"
)

type yahooRSSRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	parser         *gofeed.Parser
	requestLimiter *rate.Limiter
}

// NewYahooRSSRepository creates a MarketNewsRepository backed by the Yahoo Finance headline RSS feed.
func NewYahooRSSRepository(cfg *config.Config, log *logger.Logger) MarketNewsRepository {
	fp := gofeed.NewParser()
	fp.Client = &http.Client{Timeout: cfg.MarketData.Timeout}
	fp.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	return &yahooRSSRepository{
		cfg:            cfg,
		log:            log,
		parser:         fp,
		requestLimiter: newRequestLimiter(cfg.MarketData.MaxRequestPerMinute),
	}
}

func (r *yahooRSSRepository) Name() string {
	return common.ProviderYahooRSS
}

func (r *yahooRSSRepository) GetNews(ctx context.Context, ticker string) ([]dto.NewsItem, error) {
	params := url.Values{}
	params.Set("s", ticker)
	params.Set("region", "US")
	params.Set("lang", "en-US")
	feedURL := fmt.Sprintf("%s?%s", r.cfg.MarketData.RSSURL, params.Encode())

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests {
			r.log.WarnContext(ctx, "Yahoo RSS rate limit hit", logger.StringField("ticker", ticker))
			return nil, fmt.Errorf("yahoo rss returned %d: %w", httpErr.StatusCode, ErrRateLimited)
		}
		r.log.ErrorContext(ctx, "Failed to parse RSS feed", logger.ErrorField(err), logger.StringField("url", feedURL))
		return nil, fmt.Errorf("failed to parse rss feed: %w", err)
	}

	items := make([]dto.NewsItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it.Link == "" {
			continue
		}
		item := dto.NewsItem{
			Title: it.Title,
			Link:  it.Link,
		}
		if it.PublishedParsed != nil {
			item.PublishedAt = it.PublishedParsed.UTC()
		}
		if len(it.Authors) > 0 && it.Authors[0] != nil {
			item.Publisher = it.Authors[0].Name
		}
		items = append(items, item)
		if r.cfg.MarketData.NewsCount > 0 && len(items) >= r.cfg.MarketData.NewsCount {
			break
		}
	}

	return items, nil
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang-stock-news-digest/internal/aggregator/config"
	"golang-stock-news-digest/internal/aggregator/dto"
	"golang-stock-news-digest/pkg/common"
	"golang-stock-news-digest/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type yahooFinanceRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewYahooFinanceRepository creates a MarketNewsRepository backed by the Yahoo Finance search API.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) MarketNewsRepository {
	return &yahooFinanceRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.MarketData.Timeout,
		},
		requestLimiter: newRequestLimiter(cfg.MarketData.MaxRequestPerMinute),
	}
}

func (r *yahooFinanceRepository) Name() string {
	return common.ProviderYahoo
}

// GetNews returns the news items Yahoo Finance lists for ticker, in provider order.
func (r *yahooFinanceRepository) GetNews(ctx context.Context, ticker string) ([]dto.NewsItem, error) {
	params := url.Values{}
	params.Set("q", ticker)
	params.Set("quotesCount", "0")
	params.Set("newsCount", strconv.Itoa(r.cfg.MarketData.NewsCount))
	endpoint := fmt.Sprintf("%s/v1/finance/search?%s", r.cfg.MarketData.BaseURL, params.Encode())

	body, err := r.sendRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var resp dto.YahooSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode yahoo finance response: %w", err)
	}

	items := make([]dto.NewsItem, 0, len(resp.News))
	for _, n := range resp.News {
		if n.Link == "" {
			continue
		}
		item := dto.NewsItem{
			Title:     n.Title,
			Link:      n.Link,
			Publisher: n.Publisher,
		}
		if n.ProviderPublishTime > 0 {
			item.PublishedAt = time.Unix(n.ProviderPublishTime, 0).UTC()
		}
		items = append(items, item)
	}

	r.log.DebugContext(ctx, "Yahoo Finance news fetched", logger.StringField("ticker", ticker), logger.IntField("count", len(items)))
	return items, nil
}

func (r *yahooFinanceRepository) sendRequest(ctx context.Context, endpoint string) ([]byte, error) {
	fields := []zap.Field{
		zap.String("url", endpoint),
		zap.Int("max_request_per_minute", r.cfg.MarketData.MaxRequestPerMinute),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	setBrowserHeaders(req)
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to send request to Yahoo Finance", fields...)
		return nil, fmt.Errorf("failed to send request to yahoo finance: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		r.log.WarnContext(ctx, "Yahoo Finance rate limit hit", fields...)
		return nil, fmt.Errorf("yahoo finance returned %d: %w", resp.StatusCode, ErrRateLimited)
	}

	if resp.StatusCode != http.StatusOK {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.ErrorContext(ctx, "Received non-OK response from Yahoo Finance", fields...)
		return nil, fmt.Errorf("received non-OK response from yahoo finance: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// newRequestLimiter spaces requests evenly across a minute. Zero or negative means unlimited.
func newRequestLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
}

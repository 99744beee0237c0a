package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang-stock-news-digest/internal/aggregator/config"
	"golang-stock-news-digest/internal/aggregator/dto"
	"golang-stock-news-digest/pkg/common"
	"golang-stock-news-digest/pkg/logger"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

// alpacaNewsClient is the part of marketdata.Client we use.
type alpacaNewsClient interface {
	GetNews(req marketdata.GetNewsRequest) ([]marketdata.News, error)
}

type alpacaNewsRepository struct {
	cfg    *config.Config
	log    *logger.Logger
	client alpacaNewsClient
}

// NewAlpacaNewsRepository creates a MarketNewsRepository backed by the Alpaca news API.
func NewAlpacaNewsRepository(cfg *config.Config, log *logger.Logger) (MarketNewsRepository, error) {
	if cfg.Alpaca.APIKey == "" {
		return nil, fmt.Errorf("alpaca provider requires alpaca.api_key")
	}
	client := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    cfg.Alpaca.APIKey,
		APISecret: cfg.Alpaca.APISecret,
		BaseURL:   cfg.Alpaca.DataURL,
	})
	return newAlpacaNewsRepository(cfg, log, client), nil
}

func newAlpacaNewsRepository(cfg *config.Config, log *logger.Logger, client alpacaNewsClient) *alpacaNewsRepository {
	return &alpacaNewsRepository{cfg: cfg, log: log, client: client}
}

func (r *alpacaNewsRepository) Name() string {
	return common.ProviderAlpaca
}

func (r *alpacaNewsRepository) GetNews(ctx context.Context, ticker string) ([]dto.NewsItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	news, err := r.client.GetNews(marketdata.GetNewsRequest{
		Symbols:    []string{ticker},
		TotalLimit: r.cfg.MarketData.NewsCount,
		Sort:       marketdata.SortDesc,
	})
	if err != nil {
		var apiErr *alpaca.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			r.log.WarnContext(ctx, "Alpaca rate limit hit", logger.StringField("ticker", ticker))
			return nil, fmt.Errorf("alpaca returned %d: %w", apiErr.StatusCode, ErrRateLimited)
		}
		return nil, fmt.Errorf("failed to get alpaca news: %w", err)
	}

	items := make([]dto.NewsItem, 0, len(news))
	for _, n := range news {
		if n.URL == "" {
			continue
		}
		items = append(items, dto.NewsItem{
			Title:       n.Headline,
			Link:        n.URL,
			Publisher:   n.Source,
			PublishedAt: n.CreatedAt,
		})
	}
	return items, nil
}

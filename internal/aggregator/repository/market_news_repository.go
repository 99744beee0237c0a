package repository

import (
	"context"
	"errors"
	"fmt"

	"golang-stock-news-digest/internal/aggregator/config"
	"golang-stock-news-digest/internal/aggregator/dto"
	"golang-stock-news-digest/pkg/common"
	"golang-stock-news-digest/pkg/logger"
)

// ErrRateLimited is returned (wrapped) when the provider asks the client to slow down.
var ErrRateLimited = errors.New("rate limited by market data provider")

// MarketNewsRepository fetches news metadata for a single ticker.
type MarketNewsRepository interface {
	GetNews(ctx context.Context, ticker string) ([]dto.NewsItem, error)
	Name() string
}

// NewMarketNewsRepository builds the provider selected by market_data.provider.
func NewMarketNewsRepository(cfg *config.Config, log *logger.Logger) (MarketNewsRepository, error) {
	switch cfg.MarketData.Provider {
	case common.ProviderYahoo, "":
		return NewYahooFinanceRepository(cfg, log), nil
	case common.ProviderYahooRSS:
		return NewYahooRSSRepository(cfg, log), nil
	case common.ProviderAlpaca:
		return NewAlpacaNewsRepository(cfg, log)
	default:
		return nil, fmt.Errorf("unknown market data provider: %s", cfg.MarketData.Provider)
	}
}

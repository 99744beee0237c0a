package config

import (
	"time"

	"golang-stock-news-digest/pkg/common"
	"golang-stock-news-digest/pkg/config"
)

// Aggregator holds the knobs of the news aggregation pipeline.
type Aggregator struct {
	MaxTickers       int           `mapstructure:"max_tickers"`
	DefaultTickers   []string      `mapstructure:"default_tickers"`
	MaxFetchAttempts int           `mapstructure:"max_fetch_attempts"`
	BackoffBase      time.Duration `mapstructure:"backoff_base"`
	PacingInterval   time.Duration `mapstructure:"pacing_interval"`
	MinArticleLength int           `mapstructure:"min_article_length"`
	MaxArticleChars  int           `mapstructure:"max_article_chars"`
	ArticleCacheTTL  time.Duration `mapstructure:"article_cache_ttl"`
	ArticleTimeout   time.Duration `mapstructure:"article_timeout"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// MarketData selects and configures the news metadata provider.
type MarketData struct {
	Provider            string        `mapstructure:"provider"`
	BaseURL             string        `mapstructure:"base_url"`
	RSSURL              string        `mapstructure:"rss_url"`
	NewsCount           int           `mapstructure:"news_count"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	Timeout             time.Duration `mapstructure:"timeout"`
}

// Alpaca holds credentials for the Alpaca market data API.
type Alpaca struct {
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	DataURL   string `mapstructure:"data_url"`
}

// TopTraded configures the top traded assets collaborator.
type TopTraded struct {
	Key   string `mapstructure:"key"`
	Limit int    `mapstructure:"limit"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Digest configures the scheduled Telegram digest.
type Digest struct {
	Enabled bool          `mapstructure:"enabled"`
	Cron    string        `mapstructure:"cron"`
	Tickers []string      `mapstructure:"tickers"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Config holds the full configuration for the news service.
type Config struct {
	App        config.App    `mapstructure:"app"`
	Logger     config.Logger `mapstructure:"logger"`
	Redis      config.Redis  `mapstructure:"redis"`
	API        config.API    `mapstructure:"api"`
	Aggregator Aggregator    `mapstructure:"aggregator"`
	Gemini     Gemini        `mapstructure:"gemini"`
	MarketData MarketData    `mapstructure:"market_data"`
	Alpaca     Alpaca        `mapstructure:"alpaca"`
	TopTraded  TopTraded     `mapstructure:"top_traded"`
	Telegram   Telegram      `mapstructure:"telegram"`
	Digest     Digest        `mapstructure:"digest"`
}

// Defaults returns the values used when neither the file nor the environment sets a key.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"app.name":    "news-service",
		"app.env":     "development",
		"app.version": "1.0.0",

		"logger.level":    "info",
		"logger.encoding": "json",

		"redis.host":      "localhost",
		"redis.port":      6379,
		"redis.password":  "",
		"redis.db":        0,
		"redis.pool_size": 10,

		"api.host": "0.0.0.0",
		"api.port": 8080,

		"aggregator.max_tickers":        5,
		"aggregator.default_tickers":    []string{"AAPL", "MSFT", "GOOG", "AMZN", "TSLA"},
		"aggregator.max_fetch_attempts": 3,
		"aggregator.backoff_base":       time.Second,
		"aggregator.pacing_interval":    5 * time.Second,
		"aggregator.min_article_length": 500,
		"aggregator.max_article_chars":  4000,
		"aggregator.article_cache_ttl":  10 * time.Minute,
		"aggregator.article_timeout":    20 * time.Second,

		"gemini.api_key":                "",
		"gemini.model":                  "gemini-2.0-flash",
		"gemini.max_request_per_minute": 15,

		"market_data.provider":               common.ProviderYahoo,
		"market_data.base_url":               "https://query1.finance.yahoo.com",
		"market_data.rss_url":                "https://feeds.finance.yahoo.com/rss/2.0/headline",
		"market_data.news_count":             10,
		"market_data.max_request_per_minute": 60,
		"market_data.timeout":                10 * time.Second,

		"alpaca.api_key":    "",
		"alpaca.api_secret": "",
		"alpaca.data_url":   "",

		"top_traded.key":   common.RedisKeyTopTraded,
		"top_traded.limit": 5,

		"telegram.bot_token": "",
		"telegram.chat_id":   0,

		"digest.enabled": false,
		"digest.cron":    "0 8 * * 1-5",
		"digest.tickers": []string{},
		"digest.timeout": 10 * time.Minute,
	}
}

// Load loads the news service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, Defaults()); err != nil {
		return nil, err
	}
	return &cfg, nil
}

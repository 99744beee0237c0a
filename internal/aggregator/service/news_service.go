package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang-stock-news-digest/internal/aggregator/config"
	"golang-stock-news-digest/internal/aggregator/dto"
	"golang-stock-news-digest/internal/aggregator/repository"
	"golang-stock-news-digest/pkg/common"
	"golang-stock-news-digest/pkg/logger"
	"golang-stock-news-digest/pkg/metrics"
	"golang-stock-news-digest/pkg/utils"
)

const (
	msgFetchFailed         = "Failed to fetch news: %s"
	msgFetchRetriesExhaust = "Failed to fetch news after retries"
	msgNoQualifyingArticle = "No qualifying article found"
)

// NewsService aggregates per-ticker news summaries.
type NewsService interface {
	// GetTickerNews resolves tickers from tickersParam (comma separated, may be empty),
	// then fetches, extracts and summarizes one article per ticker. A returned error
	// means the whole request failed; per-ticker failures are reported inside Data.
	GetTickerNews(ctx context.Context, tickersParam string) (*dto.NewsResponse, error)
}

type newsService struct {
	cfg            *config.Config
	log            *logger.Logger
	marketNewsRepo repository.MarketNewsRepository
	articleRepo    repository.ArticleRepository
	aiRepo         repository.AIRepository
	topTradedRepo  repository.TopTradedRepository
	sleeper        utils.Sleeper
	metrics        *metrics.Metrics
}

// NewNewsService creates a new NewsService.
func NewNewsService(
	cfg *config.Config,
	log *logger.Logger,
	marketNewsRepo repository.MarketNewsRepository,
	articleRepo repository.ArticleRepository,
	aiRepo repository.AIRepository,
	topTradedRepo repository.TopTradedRepository,
	sleeper utils.Sleeper,
	m *metrics.Metrics,
) NewsService {
	if sleeper == nil {
		sleeper = utils.RealSleeper{}
	}
	if m == nil {
		m = metrics.NewNop()
	}
	return &newsService{
		cfg:            cfg,
		log:            log,
		marketNewsRepo: marketNewsRepo,
		articleRepo:    articleRepo,
		aiRepo:         aiRepo,
		topTradedRepo:  topTradedRepo,
		sleeper:        sleeper,
		metrics:        m,
	}
}

func (s *newsService) GetTickerNews(ctx context.Context, tickersParam string) (*dto.NewsResponse, error) {
	list := s.resolveTickers(ctx, tickersParam)

	s.log.InfoContext(ctx, "Aggregating ticker news",
		logger.StringsField("tickers", list.Tickers),
		logger.StringField("source", list.Source),
	)

	data := make(map[string]dto.ArticleResult, len(list.Tickers))
	for _, ticker := range list.Tickers {
		result, err := s.processTicker(ctx, ticker)
		if err != nil {
			return nil, err
		}
		data[ticker] = result

		outcome := "success"
		if result.Failed() {
			outcome = "error"
		}
		s.metrics.TickerResults.WithLabelValues(outcome).Inc()

		if err := s.sleeper.Sleep(ctx, s.cfg.Aggregator.PacingInterval); err != nil {
			return nil, fmt.Errorf("failed to pace after ticker %s: %w", ticker, err)
		}
	}

	return &dto.NewsResponse{
		Status:  common.StatusSuccess,
		Source:  list.Source,
		Tickers: list.Tickers,
		Data:    data,
	}, nil
}

// resolveTickers picks the request tickers, the top traded assets, or the default list, capped at max_tickers.
func (s *newsService) resolveTickers(ctx context.Context, tickersParam string) dto.TickerList {
	list := dto.TickerList{Tickers: parseTickers(tickersParam), Source: common.SourceUserSpecified}

	if len(list.Tickers) == 0 {
		list = s.topTradedTickers(ctx)
	}

	if limit := s.cfg.Aggregator.MaxTickers; limit > 0 && len(list.Tickers) > limit {
		list.Tickers = list.Tickers[:limit]
	}
	return list
}

func (s *newsService) topTradedTickers(ctx context.Context) dto.TickerList {
	defaults := append([]string(nil), s.cfg.Aggregator.DefaultTickers...)

	if s.topTradedRepo == nil {
		s.log.ErrorContext(ctx, "Error fetching top assets", logger.StringField("reason", "top traded repository not configured"))
		return dto.TickerList{Tickers: defaults, Source: common.SourceDefaultAfterError}
	}

	assets, err := s.topTradedRepo.GetTopTraded(ctx, s.cfg.TopTraded.Limit)
	if err != nil {
		s.log.ErrorContext(ctx, "Error fetching top assets", logger.ErrorField(err))
		return dto.TickerList{Tickers: defaults, Source: common.SourceDefaultAfterError}
	}

	tickers := make([]string, 0, len(assets))
	for _, a := range assets {
		tickers = append(tickers, a.AssetName)
	}
	if len(tickers) == 0 {
		return dto.TickerList{Tickers: defaults, Source: common.SourceDefault}
	}
	return dto.TickerList{Tickers: tickers, Source: common.SourceTopTraded}
}

// parseTickers splits a comma separated list into upper-case symbols, dropping blanks and repeats.
func parseTickers(param string) []string {
	var tickers []string
	for _, t := range strings.Split(param, ",") {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || utils.ContainsString(tickers, t) {
			continue
		}
		tickers = append(tickers, t)
	}
	return tickers
}

func (s *newsService) processTicker(ctx context.Context, ticker string) (dto.ArticleResult, error) {
	items, failure, err := s.fetchNews(ctx, ticker)
	if err != nil {
		return dto.ArticleResult{}, err
	}
	if failure != "" {
		return dto.NewErrorResult(failure), nil
	}
	return s.summarizeFirstQualifying(ctx, ticker, items), nil
}

// fetchNews calls the provider with exponential backoff on rate limits. It returns either the
// items, a per-ticker failure message, or an error that must abort the request.
func (s *newsService) fetchNews(ctx context.Context, ticker string) ([]dto.NewsItem, string, error) {
	provider := s.marketNewsRepo.Name()
	var errMsg string

	for attempt := 0; attempt < s.cfg.Aggregator.MaxFetchAttempts; attempt++ {
		items, err := s.marketNewsRepo.GetNews(ctx, ticker)
		if err == nil {
			s.metrics.FetchAttempts.WithLabelValues(provider, "success").Inc()
			return items, "", nil
		}

		if errors.Is(err, repository.ErrRateLimited) {
			s.metrics.FetchAttempts.WithLabelValues(provider, "rate_limited").Inc()
			wait := s.backoff(attempt)
			s.log.WarnContext(ctx, "Rate limit hit, retrying",
				logger.StringField("ticker", ticker),
				logger.IntField("attempt", attempt+1),
				logger.DurationField("wait", wait),
			)
			if err := s.sleeper.Sleep(ctx, wait); err != nil {
				return nil, "", fmt.Errorf("failed to back off for ticker %s: %w", ticker, err)
			}
			continue
		}

		s.metrics.FetchAttempts.WithLabelValues(provider, "error").Inc()
		s.log.ErrorContext(ctx, "Error fetching news", logger.StringField("ticker", ticker), logger.ErrorField(err))
		errMsg = err.Error()
		break
	}

	if errMsg != "" {
		return nil, fmt.Sprintf(msgFetchFailed, errMsg), nil
	}
	return nil, msgFetchRetriesExhaust, nil
}

// backoff returns base * 2^attempt.
func (s *newsService) backoff(attempt int) time.Duration {
	return s.cfg.Aggregator.BackoffBase * time.Duration(1<<uint(attempt))
}

// summarizeFirstQualifying walks items in provider order and summarizes the first article
// whose trimmed text reaches min_article_length characters.
func (s *newsService) summarizeFirstQualifying(ctx context.Context, ticker string, items []dto.NewsItem) dto.ArticleResult {
	for _, item := range items {
		if item.Link == "" {
			continue
		}

		article, err := s.articleRepo.Extract(ctx, item.Link)
		if err != nil {
			s.metrics.Extractions.WithLabelValues("error").Inc()
			s.log.WarnContext(ctx, "Error processing article",
				logger.StringField("ticker", ticker),
				logger.StringField("url", item.Link),
				logger.ErrorField(err),
			)
			continue
		}

		text := strings.TrimSpace(article.Text)
		if utils.RuneLen(text) < s.cfg.Aggregator.MinArticleLength {
			s.metrics.Extractions.WithLabelValues("too_short").Inc()
			s.log.DebugContext(ctx, "Skipping short article",
				logger.StringField("ticker", ticker),
				logger.StringField("url", item.Link),
				logger.IntField("length", utils.RuneLen(text)),
			)
			continue
		}
		s.metrics.Extractions.WithLabelValues("qualified").Inc()

		summary := s.aiRepo.SummarizeArticle(ctx, utils.TruncateRunes(text, s.cfg.Aggregator.MaxArticleChars))
		s.metrics.Summaries.WithLabelValues(summaryOutcome(summary)).Inc()

		title := article.Title
		if title == "" {
			title = item.Title
		}
		return dto.NewSummaryResult(title, summary)
	}

	s.log.InfoContext(ctx, "No qualifying article", logger.StringField("ticker", ticker), logger.IntField("items", len(items)))
	return dto.NewErrorResult(msgNoQualifyingArticle)
}

func summaryOutcome(summary string) string {
	switch {
	case summary == repository.MissingAPIKeySummary:
		return "missing_api_key"
	case strings.HasPrefix(summary, repository.SummaryErrorPrefix):
		return "error"
	default:
		return "success"
	}
}

package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang-stock-news-digest/internal/aggregator/config"
	"golang-stock-news-digest/internal/aggregator/dto"
	"golang-stock-news-digest/internal/aggregator/service"
	"golang-stock-news-digest/pkg/logger"
	"golang-stock-news-digest/pkg/telegram"
	"golang-stock-news-digest/pkg/utils"

	"github.com/robfig/cron/v3"
)

// sendInterval keeps the bot well under Telegram's per-chat limit.
const sendInterval = 100 * time.Millisecond

// DigestScheduler runs the news pipeline on a cron schedule and posts the result to Telegram.
type DigestScheduler struct {
	cfg         *config.Config
	newsService service.NewsService
	notifier    telegram.Notifier
	logger      *logger.Logger
	sleeper     utils.Sleeper
	cron        *cron.Cron
	now         func() time.Time
}

// NewDigestScheduler creates a new DigestScheduler.
func NewDigestScheduler(cfg *config.Config, newsService service.NewsService, notifier telegram.Notifier, log *logger.Logger, sleeper utils.Sleeper) *DigestScheduler {
	if sleeper == nil {
		sleeper = utils.RealSleeper{}
	}
	return &DigestScheduler{
		cfg:         cfg,
		newsService: newsService,
		notifier:    notifier,
		logger:      log,
		sleeper:     sleeper,
		cron:        cron.New(),
		now:         time.Now,
	}
}

// Start registers the digest job and starts the cron runner. Jobs stop receiving new
// runs when ctx is cancelled or Stop is called.
func (d *DigestScheduler) Start(ctx context.Context) error {
	_, err := d.cron.AddFunc(d.cfg.Digest.Cron, func() {
		if err := d.RunOnce(ctx); err != nil {
			d.logger.Error("Digest run failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to parse digest cron expression %q: %w", d.cfg.Digest.Cron, err)
	}

	d.cron.Start()
	d.logger.Info("Digest scheduler started", logger.StringField("cron", d.cfg.Digest.Cron), logger.StringsField("tickers", d.cfg.Digest.Tickers))
	return nil
}

// Stop waits for a running digest to finish.
func (d *DigestScheduler) Stop() {
	<-d.cron.Stop().Done()
	d.logger.Info("Digest scheduler stopped")
}

// RunOnce aggregates news for the configured tickers and sends the digest.
func (d *DigestScheduler) RunOnce(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	runCtx := ctx
	if d.cfg.Digest.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, d.cfg.Digest.Timeout)
		defer cancel()
	}

	d.logger.Info("Running news digest")

	resp, err := d.newsService.GetTickerNews(runCtx, strings.Join(d.cfg.Digest.Tickers, ","))
	if err != nil {
		alert := telegram.FormatErrorAlertMessage(d.now(), "News digest failed", err.Error())
		if sendErr := d.notifier.SendMessage(alert); sendErr != nil {
			d.logger.Error("Failed to send Telegram notification", logger.ErrorField(sendErr))
		}
		return fmt.Errorf("failed to aggregate news: %w", err)
	}

	entries := make([]dto.DigestEntry, 0, len(resp.Tickers))
	for _, ticker := range resp.Tickers {
		result, ok := resp.Data[ticker]
		if !ok {
			continue
		}
		entries = append(entries, dto.DigestEntry{
			Ticker:  ticker,
			Title:   result.Title,
			Summary: result.Summary,
			Error:   result.Error,
		})
	}

	messages := telegram.FormatNewsDigestForTelegram(d.now(), resp.Source, entries)
	for i, message := range messages {
		if i > 0 {
			if err := d.sleeper.Sleep(ctx, sendInterval); err != nil {
				return err
			}
		}
		if err := d.notifier.SendMessage(message); err != nil {
			d.logger.Error("Failed to send Telegram notification", logger.ErrorField(err))
		}
	}

	d.logger.Info("News digest sent", logger.IntField("tickers", len(entries)), logger.IntField("messages", len(messages)))
	return nil
}

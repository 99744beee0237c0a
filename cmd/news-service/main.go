package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-stock-news-digest/internal/aggregator/config"
	delivery "golang-stock-news-digest/internal/aggregator/delivery/http"
	"golang-stock-news-digest/internal/aggregator/delivery/scheduler"
	_ "golang-stock-news-digest/internal/aggregator/docs"
	"golang-stock-news-digest/internal/aggregator/repository"
	"golang-stock-news-digest/internal/aggregator/service"
	"golang-stock-news-digest/pkg/logger"
	"golang-stock-news-digest/pkg/metrics"
	"golang-stock-news-digest/pkg/redis"
	"golang-stock-news-digest/pkg/telegram"
	"golang-stock-news-digest/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the news service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting News Service", logger.Field("name", cfg.App.Name))

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	topTradedRepo := repository.NewTopTradedRepository(redisClient.Client, cfg.TopTraded.Key)
	articleRepo := repository.NewArticleRepository(cfg, appLogger)
	marketNewsRepo, err := repository.NewMarketNewsRepository(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize market news repository", logger.ErrorField(err))
	}

	// A missing key is not fatal: every summary degrades to the missing key message.
	var genAiClient *genai.Client
	if cfg.Gemini.APIKey != "" {
		genAiClient, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
	} else {
		appLogger.Warn("GEMINI_API_KEY is not set, summaries are disabled")
	}
	aiRepo := repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)

	// Initialize services
	appMetrics := metrics.New(prometheus.DefaultRegisterer)
	newsSvc := service.NewNewsService(cfg, appLogger, marketNewsRepo, articleRepo, aiRepo, topTradedRepo, utils.RealSleeper{}, appMetrics)

	// Start digest scheduler
	var digest *scheduler.DigestScheduler
	if cfg.Digest.Enabled {
		telegramNotifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
		digest = scheduler.NewDigestScheduler(cfg, newsSvc, telegramNotifier, appLogger, utils.RealSleeper{})
		if err := digest.Start(ctx); err != nil {
			appLogger.Fatal("Failed to start digest scheduler", logger.ErrorField(err))
		}
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	newsHandler := delivery.NewNewsHandler(newsSvc, appLogger, appMetrics)
	newsHandler.RegisterRoutes(apiV1.Group("/news"))

	tradeHandler := delivery.NewTradeHandler(topTradedRepo, appLogger, cfg.TopTraded.Limit)
	tradeHandler.RegisterRoutes(apiV1.Group("/trades"))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	utils.GoSafe(func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	})

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	if digest != nil {
		digest.Stop()
	}

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Ticker News Digest API
// @version 1.0
// @description Summarized market news per ticker.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "news-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-news.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing news-service CLI: %s\n", err)
		os.Exit(1)
	}
}

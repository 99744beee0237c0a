package repository

import (
	"context"
	"fmt"
	"strings"

	"golang-stock-news-digest/internal/aggregator/config"
	"golang-stock-news-digest/pkg/logger"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// MissingAPIKeySummary is returned as the summary when no Gemini key is configured.
const MissingAPIKeySummary = "API key not found. Please set the GEMINI_API_KEY environment variable."

// SummaryErrorPrefix starts the summary text when the Gemini call fails.
const SummaryErrorPrefix = "Unable to generate summary: "

// AIRepository turns article text into a short summary.
type AIRepository interface {
	// SummarizeArticle never fails: problems are reported inside the returned text.
	SummarizeArticle(ctx context.Context, text string) string
}

// contentGenerator is satisfied by *genai.Models.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// geminiAIRepository is an implementation of AIRepository that uses the Google Gemini API.
type geminiAIRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	generator      contentGenerator
}

// NewGeminiAIRepository creates a new instance of geminiAIRepository. genAiClient may be nil
// when no API key is configured.
func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) AIRepository {
	var generator contentGenerator
	if genAiClient != nil {
		generator = genAiClient.Models
	}
	return newGeminiAIRepository(cfg, log, generator)
}

func newGeminiAIRepository(cfg *config.Config, log *logger.Logger, generator contentGenerator) *geminiAIRepository {
	return &geminiAIRepository{
		cfg:            cfg,
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.Gemini.MaxRequestPerMinute),
		generator:      generator,
	}
}

// SummarizeArticle asks Gemini for a summary of text.
func (r *geminiAIRepository) SummarizeArticle(ctx context.Context, text string) string {
	if r.cfg.Gemini.APIKey == "" || r.generator == nil {
		r.logger.WarnContext(ctx, "Gemini API key is not configured")
		return MissingAPIKeySummary
	}

	summary, err := r.executeGeminiAIRequest(ctx, BuildSummarizeArticlePrompt(text))
	if err != nil {
		r.logger.ErrorContext(ctx, "Error generating summary", logger.ErrorField(err))
		return SummaryErrorPrefix + err.Error()
	}
	return summary
}

func (r *geminiAIRepository) executeGeminiAIRequest(ctx context.Context, prompt string) (string, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}

	r.logger.DebugContext(ctx, "Request Gemini API", logger.StringField("model", r.cfg.Gemini.Model), logger.IntField("prompt_length", len(prompt)))

	resp, err := r.generator.GenerateContent(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", fmt.Errorf("empty response from Gemini API")
	}

	return strings.TrimSpace(resp.Text()), nil
}

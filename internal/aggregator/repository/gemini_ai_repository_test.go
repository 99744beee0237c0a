package repository

import (
	"context"
	"errors"
	"testing"

	"golang-stock-news-digest/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	text     string
	err      error
	model    string
	contents []*genai.Content
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: genai.NewContentFromText(f.text, "model")},
		},
	}, nil
}

func TestGeminiAIRepository_MissingAPIKey(t *testing.T) {
	cfg := testConfig("")
	cfg.Gemini.APIKey = ""
	gen := &fakeGenerator{text: "unused"}
	repo := newGeminiAIRepository(cfg, logger.NewNop(), gen)

	summary := repo.SummarizeArticle(context.Background(), "article text")
	assert.Equal(t, "API key not found. Please set the GEMINI_API_KEY environment variable.", summary)
	assert.Empty(t, gen.model, "no request without a key")
}

func TestGeminiAIRepository_NilClient(t *testing.T) {
	repo := NewGeminiAIRepository(testConfig(""), logger.NewNop(), nil)
	assert.Equal(t, MissingAPIKeySummary, repo.SummarizeArticle(context.Background(), "text"))
}

func TestGeminiAIRepository_Summarize(t *testing.T) {
	gen := &fakeGenerator{text: "  Apple beat estimates on iPhone demand.  "}
	repo := newGeminiAIRepository(testConfig(""), logger.NewNop(), gen)

	summary := repo.SummarizeArticle(context.Background(), "Apple reported revenue")
	assert.Equal(t, "Apple beat estimates on iPhone demand.", summary)

	assert.Equal(t, "gemini-2.0-flash", gen.model)
	require.Len(t, gen.contents, 1)
	require.Len(t, gen.contents[0].Parts, 1)
	assert.Equal(t, BuildSummarizeArticlePrompt("Apple reported revenue"), gen.contents[0].Parts[0].Text)
	assert.Contains(t, gen.contents[0].Parts[0].Text, "You are a finance expert")
}

func TestGeminiAIRepository_Error(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	repo := newGeminiAIRepository(testConfig(""), logger.NewNop(), gen)

	summary := repo.SummarizeArticle(context.Background(), "text")
	assert.Equal(t, "Unable to generate summary: quota exceeded", summary)
}

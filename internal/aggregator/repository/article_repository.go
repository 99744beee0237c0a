package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang-stock-news-digest/internal/aggregator/config"
	"golang-stock-news-digest/internal/aggregator/dto"
	"golang-stock-news-digest/pkg/logger"
	"golang-stock-news-digest/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/patrickmn/go-cache"
)

// maxPageBytes caps how much of a page is read before parsing.
const maxPageBytes = 5 << 20

// ArticleRepository downloads a news page and extracts its title and plain text.
type ArticleRepository interface {
	Extract(ctx context.Context, link string) (*dto.Article, error)
}

type articleRepository struct {
	log           *logger.Logger
	client        *http.Client
	inmemoryCache *cache.Cache
}

// NewArticleRepository creates a new instance of ArticleRepository.
func NewArticleRepository(cfg *config.Config, log *logger.Logger) ArticleRepository {
	ttl := cfg.Aggregator.ArticleCacheTTL
	return &articleRepository{
		log: log,
		client: &http.Client{
			Timeout: cfg.Aggregator.ArticleTimeout,
		},
		inmemoryCache: cache.New(ttl, 2*ttl),
	}
}

func (r *articleRepository) Extract(ctx context.Context, link string) (*dto.Article, error) {
	if cached, ok := r.inmemoryCache.Get(link); ok {
		article := cached.(dto.Article)
		return &article, nil
	}

	body, err := r.download(ctx, link)
	if err != nil {
		return nil, err
	}

	article, err := parseArticle(link, body)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to parse news content", logger.ErrorField(err), logger.StringField("url", link))
		return nil, err
	}

	r.inmemoryCache.SetDefault(link, *article)
	return article, nil
}

func (r *articleRepository) download(ctx context.Context, link string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for news item: %w", err)
	}
	setBrowserHeaders(req)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch news content, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// parseArticle runs readability over the page and flattens the main content to text.
func parseArticle(link string, page []byte) (*dto.Article, error) {
	pageDoc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse news page: %w", err)
	}

	doc, err := readability.NewDocument(string(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse news content: %w", err)
	}

	contentDoc, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Content()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse news content: %w", err)
	}

	// Block elements are joined without separators by Text(); pad them first.
	contentDoc.Find("p, br, li, h1, h2, h3, h4, h5, h6, div").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})

	return &dto.Article{
		URL:   link,
		Title: extractTitle(pageDoc),
		Text:  utils.SafeText(contentDoc.Text()),
	}, nil
}

func extractTitle(doc *goquery.Document) string {
	if title, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(title) != "" {
		return utils.SafeText(title)
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return utils.SafeText(title)
	}
	return utils.SafeText(doc.Find("h1").First().Text())
}

package repository

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"golang-stock-news-digest/pkg/logger"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAlpacaClient struct {
	news []marketdata.News
	err  error
	req  marketdata.GetNewsRequest
}

func (f *fakeAlpacaClient) GetNews(req marketdata.GetNewsRequest) ([]marketdata.News, error) {
	f.req = req
	return f.news, f.err
}

func TestAlpacaNewsRepository_GetNews(t *testing.T) {
	created := time.Date(2025, 10, 13, 12, 0, 0, 0, time.UTC)
	client := &fakeAlpacaClient{news: []marketdata.News{
		{Headline: "Tesla deliveries", URL: "https://example.com/tsla", Source: "benzinga", CreatedAt: created},
		{Headline: "No url"},
	}}
	repo := newAlpacaNewsRepository(testConfig(""), logger.NewNop(), client)

	items, err := repo.GetNews(context.Background(), "TSLA")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tesla deliveries", items[0].Title)
	assert.Equal(t, "https://example.com/tsla", items[0].Link)
	assert.Equal(t, "benzinga", items[0].Publisher)
	assert.Equal(t, created, items[0].PublishedAt)

	assert.Equal(t, []string{"TSLA"}, client.req.Symbols)
	assert.Equal(t, 10, client.req.TotalLimit)
	assert.Equal(t, "alpaca", repo.Name())
}

func TestAlpacaNewsRepository_RateLimited(t *testing.T) {
	client := &fakeAlpacaClient{err: &alpaca.APIError{StatusCode: http.StatusTooManyRequests, Message: "too many requests"}}
	repo := newAlpacaNewsRepository(testConfig(""), logger.NewNop(), client)

	_, err := repo.GetNews(context.Background(), "TSLA")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestAlpacaNewsRepository_GenericError(t *testing.T) {
	client := &fakeAlpacaClient{err: errors.New("connection reset")}
	repo := newAlpacaNewsRepository(testConfig(""), logger.NewNop(), client)

	_, err := repo.GetNews(context.Background(), "TSLA")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
	assert.Contains(t, err.Error(), "connection reset")
}

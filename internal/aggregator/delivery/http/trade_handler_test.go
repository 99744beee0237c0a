package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang-stock-news-digest/internal/aggregator/dto"
	"golang-stock-news-digest/internal/aggregator/repository"
	"golang-stock-news-digest/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTradeServer(t *testing.T) *echo.Echo {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	e := echo.New()
	repo := repository.NewTopTradedRepository(client, "trades:top_traded")
	NewTradeHandler(repo, logger.NewNop(), 5).RegisterRoutes(e.Group("/api/v1/trades"))
	return e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTradeHandler_RecordAndTop(t *testing.T) {
	e := newTradeServer(t)

	assert.Equal(t, http.StatusNoContent, doRequest(e, http.MethodPost, "/api/v1/trades", `{"asset_name":"nvda","quantity":12}`).Code)
	assert.Equal(t, http.StatusNoContent, doRequest(e, http.MethodPost, "/api/v1/trades", `{"asset_name":"AAPL","quantity":3}`).Code)

	rec := doRequest(e, http.MethodGet, "/api/v1/trades/top?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var assets []dto.TopTradedAsset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assets))
	require.Len(t, assets, 1)
	assert.Equal(t, "NVDA", assets[0].AssetName)
	assert.Equal(t, float64(12), assets[0].Volume)
}

func TestTradeHandler_InvalidTrade(t *testing.T) {
	e := newTradeServer(t)

	assert.Equal(t, http.StatusBadRequest, doRequest(e, http.MethodPost, "/api/v1/trades", `{"asset_name":"","quantity":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(e, http.MethodPost, "/api/v1/trades", `{"asset_name":"AAPL","quantity":-1}`).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(e, http.MethodPost, "/api/v1/trades", `{not json`).Code)
}

func TestTradeHandler_InvalidLimit(t *testing.T) {
	e := newTradeServer(t)

	assert.Equal(t, http.StatusBadRequest, doRequest(e, http.MethodGet, "/api/v1/trades/top?limit=abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(e, http.MethodGet, "/api/v1/trades/top?limit=0", "").Code)
}

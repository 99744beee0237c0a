package http

import (
	"fmt"
	"net/http"
	"time"

	"golang-stock-news-digest/internal/aggregator/dto"
	"golang-stock-news-digest/internal/aggregator/service"
	"golang-stock-news-digest/pkg/common"
	"golang-stock-news-digest/pkg/logger"
	"golang-stock-news-digest/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// NewsHandler handles HTTP requests for ticker news.
type NewsHandler struct {
	newsService service.NewsService
	logger      *logger.Logger
	metrics     *metrics.Metrics
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(newsService service.NewsService, logger *logger.Logger, m *metrics.Metrics) *NewsHandler {
	return &NewsHandler{newsService: newsService, logger: logger, metrics: m}
}

// RegisterRoutes registers the news routes to the Echo group.
func (h *NewsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetNews)
}

// GetNews godoc
// @Summary Get summarized news per ticker
// @Description Resolves up to five tickers (query, top traded, or default list), fetches recent news for each and returns one AI summary per ticker
// @Tags news
// @Produce  json
// @Param   tickers  query    string  false  "Comma separated ticker symbols, e.g. AAPL,MSFT"
// @Success 200 {object} dto.NewsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /news [get]
func (h *NewsHandler) GetNews(c echo.Context) (err error) {
	start := time.Now()
	ctx := logger.WithRequestID(c.Request().Context(), c.Response().Header().Get(echo.HeaderXRequestID))

	defer func() {
		if r := recover(); r != nil {
			h.logger.ErrorContext(ctx, "Error in ticker news API", logger.Field("panic", r), logger.StackField("stacktrace"))
			err = h.respondError(c, start, fmt.Sprintf("%v", r))
		}
	}()

	resp, svcErr := h.newsService.GetTickerNews(ctx, c.QueryParam("tickers"))
	if svcErr != nil {
		h.logger.ErrorContext(ctx, "Error in ticker news API", logger.ErrorField(svcErr), logger.StackField("stacktrace"))
		return h.respondError(c, start, svcErr.Error())
	}

	h.observe(start, common.StatusSuccess)
	return c.JSON(http.StatusOK, resp)
}

func (h *NewsHandler) respondError(c echo.Context, start time.Time, message string) error {
	h.observe(start, common.StatusError)
	return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Status:  common.StatusError,
		Message: message,
	})
}

func (h *NewsHandler) observe(start time.Time, status string) {
	if h.metrics == nil {
		return
	}
	h.metrics.RequestDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
}

package http

import (
	"errors"
	"net/http"
	"strconv"

	"golang-stock-news-digest/internal/aggregator/dto"
	"golang-stock-news-digest/internal/aggregator/repository"
	"golang-stock-news-digest/pkg/logger"

	"github.com/labstack/echo/v4"
)

// TradeHandler exposes the top traded assets ranking.
type TradeHandler struct {
	topTradedRepo repository.TopTradedRepository
	logger        *logger.Logger
	defaultLimit  int
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(topTradedRepo repository.TopTradedRepository, logger *logger.Logger, defaultLimit int) *TradeHandler {
	return &TradeHandler{topTradedRepo: topTradedRepo, logger: logger, defaultLimit: defaultLimit}
}

// RegisterRoutes registers the trade routes to the Echo group.
func (h *TradeHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.RecordTrade)
	g.GET("/top", h.GetTopTraded)
}

// GetTopTraded godoc
// @Summary Get top traded assets
// @Description Assets ranked by recorded traded volume, highest first
// @Tags trades
// @Produce  json
// @Param   limit  query    int  false  "Maximum number of assets"
// @Success 200 {array} dto.TopTradedAsset
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /trades/top [get]
func (h *TradeHandler) GetTopTraded(c echo.Context) error {
	limit := h.defaultLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "Invalid limit"})
		}
		limit = parsed
	}

	assets, err := h.topTradedRepo.GetTopTraded(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("Failed to get top traded assets", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": "Failed to get top traded assets"})
	}
	return c.JSON(http.StatusOK, assets)
}

// RecordTrade godoc
// @Summary Record a trade
// @Description Adds the traded quantity to the asset's volume
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   trade  body    dto.RecordTradeRequest   true    "Trade to record"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /trades [post]
func (h *TradeHandler) RecordTrade(c echo.Context) error {
	var req dto.RecordTradeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "Invalid request payload"})
	}

	if err := h.topTradedRepo.RecordTrade(c.Request().Context(), req.AssetName, req.Quantity); err != nil {
		if errors.Is(err, repository.ErrInvalidTrade) {
			return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": err.Error()})
		}
		h.logger.Error("Failed to record trade", logger.ErrorField(err), logger.StringField("asset_name", req.AssetName))
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": "Failed to record trade"})
	}

	return c.NoContent(http.StatusNoContent)
}

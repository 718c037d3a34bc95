package api

import (
	"context"
	"time"

	"CryptoIntel/internal/domain/models"
	epmetrics "CryptoIntel/internal/service/metrics"
	xhttp "CryptoIntel/pkg/http"
	xlogger "CryptoIntel/pkg/logger"

	"github.com/labstack/echo/v4"
)

type NewsService interface {
	Latest(ctx context.Context, category string, limit int) (*models.NewsFeed, error)
}

type NewsEchoHandler struct {
	logger       *xlogger.Logger
	news         NewsService
	defaultLimit int
}

// NewNewsEchoHandler serves GET /news. defaultLimit applies when the request has no limit.
func NewNewsEchoHandler(logger *xlogger.Logger, news NewsService, defaultLimit int) *NewsEchoHandler {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &NewsEchoHandler{logger: logger, news: news, defaultLimit: defaultLimit}
}

func (h *NewsEchoHandler) Mount(g *echo.Group) {
	g.GET("/news", h.Latest)
}

func (h *NewsEchoHandler) Latest(c echo.Context) error {
	start := time.Now()
	req := &models.NewsRequest{Limit: h.defaultLimit}
	if err := xhttp.ReadAndValidateRequest(c, req); err != nil {
		return fail(c, h.logger, codeNews, err)
	}
	res, err := h.news.Latest(c.Request().Context(), req.Category, req.Limit)
	epmetrics.Observe("news", start, err)
	if err != nil {
		return fail(c, h.logger, codeNews, err)
	}
	return xhttp.SuccessResponse(c, res)
}

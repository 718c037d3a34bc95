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

type AnalyticsService interface {
	Report(ctx context.Context, token, indicator string) (*models.AnalyticsReport, error)
}

type RiskService interface {
	Calculate(action string, in models.RiskInput) (any, error)
}

type AnalyticsEchoHandler struct {
	logger    *xlogger.Logger
	analytics AnalyticsService
	risk      RiskService
}

func NewAnalyticsEchoHandler(logger *xlogger.Logger, analytics AnalyticsService, risk RiskService) *AnalyticsEchoHandler {
	return &AnalyticsEchoHandler{logger: logger, analytics: analytics, risk: risk}
}

func (h *AnalyticsEchoHandler) Mount(g *echo.Group) {
	g.GET("/analytics", h.Analytics)
	g.GET("/risk", h.Risk)
	g.POST("/risk", h.Risk)
}

func (h *AnalyticsEchoHandler) Analytics(c echo.Context) error {
	start := time.Now()
	req := &models.AnalyticsRequest{}
	if err := xhttp.ReadAndValidateRequest(c, req); err != nil {
		return fail(c, h.logger, codeAnalytics, err)
	}
	res, err := h.analytics.Report(c.Request().Context(), req.Token, req.Indicator)
	epmetrics.Observe("analytics", start, err)
	if err != nil {
		return fail(c, h.logger, codeAnalytics, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Risk reads the action from the query and, on POST, the inputs from the JSON body.
func (h *AnalyticsEchoHandler) Risk(c echo.Context) error {
	start := time.Now()
	in := models.RiskInput{}
	if c.Request().Method == echo.POST {
		if err := xhttp.ReadAndValidateRequest(c, &in); err != nil {
			return fail(c, h.logger, codeRisk, err)
		}
	}
	res, err := h.risk.Calculate(xhttp.QueryString(c, "action", string(models.RiskPositionSizing)), in)
	epmetrics.Observe("risk", start, err)
	if err != nil {
		return fail(c, h.logger, codeRisk, err)
	}
	return xhttp.SuccessResponse(c, res)
}

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

type PortfolioService interface {
	List(ctx context.Context, userID string) ([]models.PositionValuation, error)
	Create(ctx context.Context, userID string, req *models.CreatePositionRequest) ([]models.Position, error)
	Update(ctx context.Context, userID string, req *models.UpdatePositionRequest) ([]models.Position, error)
	Delete(ctx context.Context, userID, positionID string) error
}

type positionsBody struct {
	Positions []models.PositionValuation `json:"positions"`
}

type PortfolioEchoHandler struct {
	logger    *xlogger.Logger
	portfolio PortfolioService
	identity  Identity
}

func NewPortfolioEchoHandler(logger *xlogger.Logger, portfolio PortfolioService, identity Identity) *PortfolioEchoHandler {
	return &PortfolioEchoHandler{logger: logger, portfolio: portfolio, identity: identity}
}

func (h *PortfolioEchoHandler) Mount(g *echo.Group) {
	g.GET("/portfolio", h.List)
	g.POST("/portfolio", h.Create)
	g.PUT("/portfolio", h.Update)
	g.DELETE("/portfolio", h.Delete)
}

func (h *PortfolioEchoHandler) List(c echo.Context) error {
	start := time.Now()
	userID, err := h.identity.UserID(c)
	if err != nil {
		return fail(c, h.logger, codePortfolio, err)
	}
	res, err := h.portfolio.List(c.Request().Context(), userID)
	epmetrics.Observe("portfolio", start, err)
	if err != nil {
		return fail(c, h.logger, codePortfolio, err)
	}
	return xhttp.RawResponse(c, positionsBody{Positions: res})
}

func (h *PortfolioEchoHandler) Create(c echo.Context) error {
	start := time.Now()
	userID, err := h.identity.UserID(c)
	if err != nil {
		return fail(c, h.logger, codePortfolio, err)
	}
	req := &models.CreatePositionRequest{}
	if err := xhttp.ReadAndValidateRequest(c, req); err != nil {
		return fail(c, h.logger, codePortfolio, err)
	}
	res, err := h.portfolio.Create(c.Request().Context(), userID, req)
	epmetrics.Observe("portfolio", start, err)
	if err != nil {
		return fail(c, h.logger, codePortfolio, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PortfolioEchoHandler) Update(c echo.Context) error {
	start := time.Now()
	userID, err := h.identity.UserID(c)
	if err != nil {
		return fail(c, h.logger, codePortfolio, err)
	}
	req := &models.UpdatePositionRequest{}
	if err := xhttp.ReadAndValidateRequest(c, req); err != nil {
		return fail(c, h.logger, codePortfolio, err)
	}
	res, err := h.portfolio.Update(c.Request().Context(), userID, req)
	epmetrics.Observe("portfolio", start, err)
	if err != nil {
		return fail(c, h.logger, codePortfolio, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PortfolioEchoHandler) Delete(c echo.Context) error {
	start := time.Now()
	userID, err := h.identity.UserID(c)
	if err != nil {
		return fail(c, h.logger, codePortfolio, err)
	}
	req := &models.DeletePositionRequest{}
	if err := xhttp.ReadAndValidateRequest(c, req); err != nil {
		return fail(c, h.logger, codePortfolio, err)
	}
	err = h.portfolio.Delete(c.Request().Context(), userID, req.PositionID)
	epmetrics.Observe("portfolio", start, err)
	if err != nil {
		return fail(c, h.logger, codePortfolio, err)
	}
	return xhttp.DeletedResponse(c)
}

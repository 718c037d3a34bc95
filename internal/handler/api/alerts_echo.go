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

type AlertsService interface {
	List(ctx context.Context, userID string) ([]models.AlertStatus, error)
	Create(ctx context.Context, userID string, req *models.CreateAlertRequest) ([]models.Alert, error)
	Update(ctx context.Context, userID string, req *models.UpdateAlertRequest) ([]models.Alert, error)
	Delete(ctx context.Context, userID, alertID string) error
	History(ctx context.Context, userID string, limit int) ([]models.AlertTriggeredEvent, error)
}

type alertsBody struct {
	Alerts []models.AlertStatus `json:"alerts"`
}

// AlertsEchoHandler serves CRUD on the caller's price alerts plus the triggered history.
type AlertsEchoHandler struct {
	logger   *xlogger.Logger
	alerts   AlertsService
	identity Identity
}

func NewAlertsEchoHandler(logger *xlogger.Logger, alerts AlertsService, identity Identity) *AlertsEchoHandler {
	return &AlertsEchoHandler{logger: logger, alerts: alerts, identity: identity}
}

func (h *AlertsEchoHandler) Mount(g *echo.Group) {
	g.GET("/alerts", h.List)
	g.POST("/alerts", h.Create)
	g.PUT("/alerts", h.Update)
	g.DELETE("/alerts", h.Delete)
	g.GET("/alerts/history", h.History)
}

func (h *AlertsEchoHandler) List(c echo.Context) error {
	start := time.Now()
	userID, err := h.identity.UserID(c)
	if err != nil {
		return fail(c, h.logger, codeAlerts, err)
	}
	res, err := h.alerts.List(c.Request().Context(), userID)
	epmetrics.Observe("alerts", start, err)
	if err != nil {
		return fail(c, h.logger, codeAlerts, err)
	}
	return xhttp.RawResponse(c, alertsBody{Alerts: res})
}

func (h *AlertsEchoHandler) Create(c echo.Context) error {
	start := time.Now()
	userID, err := h.identity.UserID(c)
	if err != nil {
		return fail(c, h.logger, codeAlerts, err)
	}
	req := &models.CreateAlertRequest{}
	if err := xhttp.ReadAndValidateRequest(c, req); err != nil {
		return fail(c, h.logger, codeAlerts, err)
	}
	res, err := h.alerts.Create(c.Request().Context(), userID, req)
	epmetrics.Observe("alerts", start, err)
	if err != nil {
		return fail(c, h.logger, codeAlerts, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AlertsEchoHandler) Update(c echo.Context) error {
	start := time.Now()
	userID, err := h.identity.UserID(c)
	if err != nil {
		return fail(c, h.logger, codeAlerts, err)
	}
	req := &models.UpdateAlertRequest{}
	if err := xhttp.ReadAndValidateRequest(c, req); err != nil {
		return fail(c, h.logger, codeAlerts, err)
	}
	res, err := h.alerts.Update(c.Request().Context(), userID, req)
	epmetrics.Observe("alerts", start, err)
	if err != nil {
		return fail(c, h.logger, codeAlerts, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AlertsEchoHandler) Delete(c echo.Context) error {
	start := time.Now()
	userID, err := h.identity.UserID(c)
	if err != nil {
		return fail(c, h.logger, codeAlerts, err)
	}
	req := &models.DeleteAlertRequest{}
	if err := xhttp.ReadAndValidateRequest(c, req); err != nil {
		return fail(c, h.logger, codeAlerts, err)
	}
	err = h.alerts.Delete(c.Request().Context(), userID, req.AlertID)
	epmetrics.Observe("alerts", start, err)
	if err != nil {
		return fail(c, h.logger, codeAlerts, err)
	}
	return xhttp.DeletedResponse(c)
}

func (h *AlertsEchoHandler) History(c echo.Context) error {
	start := time.Now()
	userID, err := h.identity.UserID(c)
	if err != nil {
		return fail(c, h.logger, codeAlerts, err)
	}
	req := &models.AlertHistoryRequest{}
	if err := xhttp.ReadAndValidateRequest(c, req); err != nil {
		return fail(c, h.logger, codeAlerts, err)
	}
	res, err := h.alerts.History(c.Request().Context(), userID, req.Limit)
	epmetrics.Observe("alerts_history", start, err)
	if err != nil {
		return fail(c, h.logger, codeAlerts, err)
	}
	return xhttp.SuccessResponse(c, res)
}

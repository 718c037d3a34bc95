package api

import (
	"CryptoIntel/internal/domain/models"
	xhttp "CryptoIntel/pkg/http"
	xlogger "CryptoIntel/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	codeProbability = "PROBABILITY_CALCULATION_FAILED"
	codePulse       = "PULSE_DETECTION_FAILED"
	codeIntel       = "INTEL_GENERATION_FAILED"
	codeSentiment   = "SENTIMENT_ANALYSIS_FAILED"
	codeWaifu       = "WAIFU_RESPONSE_FAILED"
	codeNews        = "NEWS_FETCH_FAILED"
	codeAlerts      = "ALERT_OPERATION_FAILED"
	codePortfolio   = "PORTFOLIO_OPERATION_FAILED"
	codeAnalytics   = "ANALYTICS_FAILED"
	codeRisk        = "RISK_CALCULATION_FAILED"
)

const headerUserID = "X-User-ID"

// fail logs err and writes it as a 500 carrying the operation code.
func fail(c echo.Context, l *xlogger.Logger, code string, err error) error {
	l.Error("request failed",
		xlogger.String("code", code),
		xlogger.String("path", c.Path()),
		xlogger.Error(err),
	)
	return xhttp.ErrorResponse(c, xhttp.OperationError(code, err))
}

// Identity resolves the caller of the alert and portfolio endpoints:
// the X-User-ID header, then the user_id query parameter, then the configured default.
type Identity struct {
	DefaultUserID string
}

func (i Identity) UserID(c echo.Context) (string, error) {
	id := c.Request().Header.Get(headerUserID)
	if id == "" {
		id = c.QueryParam("user_id")
	}
	if id == "" {
		id = i.DefaultUserID
	}
	if id == "" {
		return "", models.MissingParameter("User id required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", models.InvalidInput("user_id must be a valid UUID")
	}
	return id, nil
}

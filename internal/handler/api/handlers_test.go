package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"CryptoIntel/internal/domain/models"
	xhttp "CryptoIntel/pkg/http"
	xlogger "CryptoIntel/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUser = "6f1c1c7e-0d5b-4a3e-9a53-2f4f7c2d9a10"

var errTokenRequired = models.MissingParameter("Token parameter required")

type stubPipeline struct {
	token, mode string
	err         error
}

func (s *stubPipeline) Calculate(_ context.Context, token string) (*models.ProbabilityResult, error) {
	s.token = token
	if token == "" {
		return nil, errTokenRequired
	}
	return &models.ProbabilityResult{Token: token}, s.err
}

func (s *stubPipeline) Detect(_ context.Context, token string) (*models.PulseResult, error) {
	s.token = token
	return &models.PulseResult{}, s.err
}

func (s *stubPipeline) Generate(_ context.Context, token string) (*models.IntelReport, error) {
	s.token = token
	return &models.IntelReport{Token: token}, s.err
}

func (s *stubPipeline) Analyze(_ context.Context, token string) (*models.SentimentResult, error) {
	s.token = token
	if s.err != nil {
		return nil, s.err
	}
	return &models.SentimentResult{Token: token}, nil
}

func (s *stubPipeline) Respond(_ context.Context, token, mode string) (*models.PersonaResponse, error) {
	s.token, s.mode = token, mode
	if s.err != nil {
		return nil, s.err
	}
	return &models.PersonaResponse{Mode: mode, Message: "hi"}, nil
}

func newPipeline(s *stubPipeline) *PipelineEchoHandler {
	return NewPipelineEchoHandler(xlogger.Nop(), s, s, s, s, s)
}

func call(t *testing.T, method, target, body string, h echo.HandlerFunc, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code, body.Error.Message
}

func TestProbabilityMissingToken(t *testing.T) {
	h := newPipeline(&stubPipeline{})
	rec := call(t, http.MethodGet, "/probability", "", h.Probability, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	code, msg := decodeError(t, rec)
	assert.Equal(t, "PROBABILITY_CALCULATION_FAILED", code)
	assert.Equal(t, "Token parameter required", msg)
}

func TestProbabilityOK(t *testing.T) {
	s := &stubPipeline{}
	rec := call(t, http.MethodGet, "/probability?token=bitcoin", "", newPipeline(s).Probability, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bitcoin", s.token)
	var body struct {
		Data models.ProbabilityResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "bitcoin", body.Data.Token)
}

func TestPipelineErrorCodes(t *testing.T) {
	s := &stubPipeline{err: models.UpstreamUnavailable("Failed to fetch from CoinGecko", errors.New("dial"))}
	h := newPipeline(s)

	cases := []struct {
		path string
		fn   echo.HandlerFunc
		code string
	}{
		{"/pulse?token=x", h.Pulse, "PULSE_DETECTION_FAILED"},
		{"/intel?token=x", h.Intel, "INTEL_GENERATION_FAILED"},
		{"/sentiment?token=x", h.Sentiment, "SENTIMENT_ANALYSIS_FAILED"},
		{"/waifu?token=x", h.Waifu, "WAIFU_RESPONSE_FAILED"},
	}
	for _, tc := range cases {
		rec := call(t, http.MethodGet, tc.path, "", tc.fn, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, tc.path)
		code, msg := decodeError(t, rec)
		assert.Equal(t, tc.code, code)
		assert.Equal(t, "Failed to fetch from CoinGecko", msg)
	}
}

func TestWaifuPassesMode(t *testing.T) {
	s := &stubPipeline{}
	rec := call(t, http.MethodGet, "/waifu?token=eth&mode=semangat", "", newPipeline(s).Waifu, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "semangat", s.mode)
	assert.Contains(t, rec.Body.String(), `"mode":"semangat"`)
}

type stubAlerts struct {
	userID  string
	created *models.CreateAlertRequest
	updated *models.UpdateAlertRequest
	deleted string
	limit   int
	err     error
}

func (s *stubAlerts) List(_ context.Context, userID string) ([]models.AlertStatus, error) {
	s.userID = userID
	return []models.AlertStatus{{Alert: models.Alert{ID: "a1"}, CurrentValue: 5, Triggered: true}}, s.err
}

func (s *stubAlerts) Create(_ context.Context, userID string, req *models.CreateAlertRequest) ([]models.Alert, error) {
	s.userID, s.created = userID, req
	return []models.Alert{{ID: "a1"}}, s.err
}

func (s *stubAlerts) Update(_ context.Context, userID string, req *models.UpdateAlertRequest) ([]models.Alert, error) {
	s.userID, s.updated = userID, req
	return []models.Alert{{ID: req.AlertID}}, s.err
}

func (s *stubAlerts) Delete(_ context.Context, userID, alertID string) error {
	s.userID, s.deleted = userID, alertID
	return s.err
}

func (s *stubAlerts) History(_ context.Context, userID string, limit int) ([]models.AlertTriggeredEvent, error) {
	s.userID, s.limit = userID, limit
	return []models.AlertTriggeredEvent{}, s.err
}

func TestAlertsListUsesHeaderIdentity(t *testing.T) {
	s := &stubAlerts{}
	h := NewAlertsEchoHandler(xlogger.Nop(), s, Identity{DefaultUserID: "00000000-0000-0000-0000-000000000001"})
	rec := call(t, http.MethodGet, "/alerts", "", h.List, map[string]string{headerUserID: testUser})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testUser, s.userID)
	var body map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body["alerts"], 1)
	assert.Equal(t, "a1", body["alerts"][0]["id"])
	assert.Equal(t, true, body["alerts"][0]["triggered"])
}

func TestAlertsIdentityFallbacks(t *testing.T) {
	s := &stubAlerts{}
	h := NewAlertsEchoHandler(xlogger.Nop(), s, Identity{DefaultUserID: testUser})

	call(t, http.MethodGet, "/alerts", "", h.List, nil)
	assert.Equal(t, testUser, s.userID)

	other := "11111111-2222-3333-4444-555555555555"
	call(t, http.MethodGet, "/alerts?user_id="+other, "", h.List, nil)
	assert.Equal(t, other, s.userID)

	rec := call(t, http.MethodGet, "/alerts?user_id=nope", "", h.List, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	code, msg := decodeError(t, rec)
	assert.Equal(t, "ALERT_OPERATION_FAILED", code)
	assert.Equal(t, "user_id must be a valid UUID", msg)
}

func TestAlertsCreateAppliesDefaultsAndFlexibleThreshold(t *testing.T) {
	s := &stubAlerts{}
	h := NewAlertsEchoHandler(xlogger.Nop(), s, Identity{DefaultUserID: testUser})
	rec := call(t, http.MethodPost, "/alerts", `{"token_symbol":"BTC","threshold_value":"65000.5"}`, h.Create, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, s.created)
	assert.Equal(t, "price", s.created.AlertType)
	assert.Equal(t, "above", s.created.Direction)
	assert.Equal(t, 65000.5, s.created.ThresholdValue.Float64())
	assert.Contains(t, rec.Body.String(), `{"data":[{"id":"a1",`)
}

func TestAlertsCreateValidation(t *testing.T) {
	h := NewAlertsEchoHandler(xlogger.Nop(), &stubAlerts{}, Identity{DefaultUserID: testUser})

	rec := call(t, http.MethodPost, "/alerts", `{"threshold_value":1}`, h.Create, nil)
	_, msg := decodeError(t, rec)
	assert.Equal(t, "token_symbol is required", msg)

	rec = call(t, http.MethodPost, "/alerts", `{"token_symbol":"BTC","direction":"sideways"}`, h.Create, nil)
	_, msg = decodeError(t, rec)
	assert.Equal(t, "direction must be one of: above, below", msg)
}

func TestAlertsUpdateAndDelete(t *testing.T) {
	s := &stubAlerts{}
	h := NewAlertsEchoHandler(xlogger.Nop(), s, Identity{DefaultUserID: testUser})

	rec := call(t, http.MethodPut, "/alerts", `{"alert_id":"a9","is_active":false}`, h.Update, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, s.updated.IsActive)
	assert.False(t, *s.updated.IsActive)
	assert.Nil(t, s.updated.ThresholdValue)

	rec = call(t, http.MethodDelete, "/alerts?alert_id=a7", "", h.Delete, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a7", s.deleted)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = call(t, http.MethodDelete, "/alerts", `{"alert_id":"a8"}`, h.Delete, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a8", s.deleted)
}

func TestAlertsStoreMissing(t *testing.T) {
	s := &stubAlerts{err: models.ConfigurationMissing("Alert store is not configured")}
	h := NewAlertsEchoHandler(xlogger.Nop(), s, Identity{DefaultUserID: testUser})
	rec := call(t, http.MethodGet, "/alerts/history", "", h.History, nil)

	assert.Equal(t, 50, s.limit)
	code, msg := decodeError(t, rec)
	assert.Equal(t, "ALERT_OPERATION_FAILED", code)
	assert.Equal(t, "Alert store is not configured", msg)
}

type stubPortfolio struct {
	created *models.CreatePositionRequest
	deleted string
}

func (s *stubPortfolio) List(context.Context, string) ([]models.PositionValuation, error) {
	return []models.PositionValuation{}, nil
}

func (s *stubPortfolio) Create(_ context.Context, _ string, req *models.CreatePositionRequest) ([]models.Position, error) {
	s.created = req
	return []models.Position{}, nil
}

func (s *stubPortfolio) Update(context.Context, string, *models.UpdatePositionRequest) ([]models.Position, error) {
	return nil, errors.New("Database update failed: Bad Request")
}

func (s *stubPortfolio) Delete(_ context.Context, _ string, positionID string) error {
	s.deleted = positionID
	return nil
}

func TestPortfolioHandler(t *testing.T) {
	s := &stubPortfolio{}
	h := NewPortfolioEchoHandler(xlogger.Nop(), s, Identity{DefaultUserID: testUser})

	rec := call(t, http.MethodGet, "/portfolio", "", h.List, nil)
	assert.JSONEq(t, `{"positions":[]}`, rec.Body.String())

	rec = call(t, http.MethodPost, "/portfolio", `{"token_symbol":"eth","amount":"2","avg_price":1500}`, h.Create, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2.0, s.created.Amount.Float64())
	assert.Nil(t, s.created.TokenAddress)

	rec = call(t, http.MethodPut, "/portfolio", `{"position_id":"p1","amount":1,"avg_price":1}`, h.Update, nil)
	code, msg := decodeError(t, rec)
	assert.Equal(t, "PORTFOLIO_OPERATION_FAILED", code)
	assert.Equal(t, "Database update failed: Bad Request", msg)

	rec = call(t, http.MethodDelete, "/portfolio?position_id=p2", "", h.Delete, nil)
	assert.Equal(t, "p2", s.deleted)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

type stubNews struct {
	category string
	limit    int
}

func (s *stubNews) Latest(_ context.Context, category string, limit int) (*models.NewsFeed, error) {
	s.category, s.limit = category, limit
	return &models.NewsFeed{Category: category, News: []models.NewsItem{}}, nil
}

func TestNewsDefaults(t *testing.T) {
	s := &stubNews{}
	h := NewNewsEchoHandler(xlogger.Nop(), s, 10)

	rec := call(t, http.MethodGet, "/news", "", h.Latest, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "general", s.category)
	assert.Equal(t, 10, s.limit)

	call(t, http.MethodGet, "/news?category=defi&limit=3", "", h.Latest, nil)
	assert.Equal(t, "defi", s.category)
	assert.Equal(t, 3, s.limit)

	rec = call(t, http.MethodGet, "/news?limit=500", "", h.Latest, nil)
	code, _ := decodeError(t, rec)
	assert.Equal(t, "NEWS_FETCH_FAILED", code)
}

func TestNewsConfiguredLimitAndExplicitZero(t *testing.T) {
	s := &stubNews{}
	h := NewNewsEchoHandler(xlogger.Nop(), s, 4)

	call(t, http.MethodGet, "/news", "", h.Latest, nil)
	assert.Equal(t, 4, s.limit)

	rec := call(t, http.MethodGet, "/news?limit=0", "", h.Latest, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, s.limit)

	// a later request is not affected by the previous explicit zero
	call(t, http.MethodGet, "/news?category=defi", "", h.Latest, nil)
	assert.Equal(t, 4, s.limit)
	assert.Equal(t, "defi", s.category)
}

type stubAnalytics struct {
	token, indicator, action string
	in                       models.RiskInput
}

func (s *stubAnalytics) Report(_ context.Context, token, indicator string) (*models.AnalyticsReport, error) {
	s.token, s.indicator = token, indicator
	return &models.AnalyticsReport{Token: token}, nil
}

func (s *stubAnalytics) Calculate(action string, in models.RiskInput) (any, error) {
	s.action, s.in = action, in
	if action == "nope" {
		return nil, models.InvalidInput("Invalid action")
	}
	return map[string]string{"ok": "yes"}, nil
}

func TestAnalyticsAndRisk(t *testing.T) {
	s := &stubAnalytics{}
	h := NewAnalyticsEchoHandler(xlogger.Nop(), s, s)

	call(t, http.MethodGet, "/analytics?token=bitcoin", "", h.Analytics, nil)
	assert.Equal(t, "bitcoin", s.token)
	assert.Equal(t, "all", s.indicator)

	rec := call(t, http.MethodPost, "/risk?action=risk-reward", `{"entryPrice":100,"stopLoss":90,"takeProfit":125}`, h.Risk, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "risk-reward", s.action)
	assert.Equal(t, 125.0, s.in.TakeProfit)
	assert.JSONEq(t, `{"data":{"ok":"yes"}}`, rec.Body.String())

	rec = call(t, http.MethodGet, "/risk?action=nope", "", h.Risk, nil)
	code, msg := decodeError(t, rec)
	assert.Equal(t, "RISK_CALCULATION_FAILED", code)
	assert.Equal(t, "Invalid action", msg)

	call(t, http.MethodGet, "/risk", "", h.Risk, nil)
	assert.Equal(t, "position-sizing", s.action)
}

func TestRouterMountsUnderBasePath(t *testing.T) {
	s := &stubPipeline{}
	router := NewRouter("/functions/v1/", newPipeline(s), NewNewsEchoHandler(xlogger.Nop(), &stubNews{}, 10))
	srv := xhttp.NewServer(router, xhttp.WithMetricsPath(""))

	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/functions/v1/intel?token=sol", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sol", s.token)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/functions/v1/intel", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))

	rec = httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, rec.Body.String())
}

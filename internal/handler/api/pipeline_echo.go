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

type ProbabilityService interface {
	Calculate(ctx context.Context, token string) (*models.ProbabilityResult, error)
}

type PulseService interface {
	Detect(ctx context.Context, token string) (*models.PulseResult, error)
}

type IntelService interface {
	Generate(ctx context.Context, token string) (*models.IntelReport, error)
}

type SentimentService interface {
	Analyze(ctx context.Context, token string) (*models.SentimentResult, error)
}

type WaifuService interface {
	Respond(ctx context.Context, token, mode string) (*models.PersonaResponse, error)
}

// PipelineEchoHandler serves the five market intelligence endpoints.
type PipelineEchoHandler struct {
	logger      *xlogger.Logger
	probability ProbabilityService
	pulse       PulseService
	intel       IntelService
	sentiment   SentimentService
	waifu       WaifuService
}

func NewPipelineEchoHandler(
	logger *xlogger.Logger,
	probability ProbabilityService,
	pulse PulseService,
	intel IntelService,
	sentiment SentimentService,
	waifu WaifuService,
) *PipelineEchoHandler {
	return &PipelineEchoHandler{
		logger:      logger,
		probability: probability,
		pulse:       pulse,
		intel:       intel,
		sentiment:   sentiment,
		waifu:       waifu,
	}
}

func (h *PipelineEchoHandler) Mount(g *echo.Group) {
	g.GET("/probability", h.Probability)
	g.GET("/pulse", h.Pulse)
	g.GET("/intel", h.Intel)
	g.GET("/sentiment", h.Sentiment)
	g.GET("/waifu", h.Waifu)
}

func (h *PipelineEchoHandler) Probability(c echo.Context) error {
	start := time.Now()
	res, err := h.probability.Calculate(c.Request().Context(), c.QueryParam("token"))
	epmetrics.Observe("probability", start, err)
	if err != nil {
		return fail(c, h.logger, codeProbability, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PipelineEchoHandler) Pulse(c echo.Context) error {
	start := time.Now()
	res, err := h.pulse.Detect(c.Request().Context(), c.QueryParam("token"))
	epmetrics.Observe("pulse", start, err)
	if err != nil {
		return fail(c, h.logger, codePulse, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PipelineEchoHandler) Intel(c echo.Context) error {
	start := time.Now()
	res, err := h.intel.Generate(c.Request().Context(), c.QueryParam("token"))
	epmetrics.Observe("intel", start, err)
	if err != nil {
		return fail(c, h.logger, codeIntel, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PipelineEchoHandler) Sentiment(c echo.Context) error {
	start := time.Now()
	res, err := h.sentiment.Analyze(c.Request().Context(), c.QueryParam("token"))
	epmetrics.Observe("sentiment", start, err)
	if err != nil {
		return fail(c, h.logger, codeSentiment, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PipelineEchoHandler) Waifu(c echo.Context) error {
	start := time.Now()
	res, err := h.waifu.Respond(c.Request().Context(), c.QueryParam("token"), c.QueryParam("mode"))
	epmetrics.Observe("waifu", start, err)
	if err != nil {
		return fail(c, h.logger, codeWaifu, err)
	}
	return xhttp.SuccessResponse(c, res)
}

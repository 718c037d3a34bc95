package usecase

import (
	"context"
	"errors"
	"testing"

	"CryptoIntel/internal/domain/models"
	"CryptoIntel/internal/services/analytics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsReport(t *testing.T) {
	uc := NewAnalyticsUseCase(&fakeQuotes{prices: map[string]float64{"bitcoin": 100}}, analytics.NewTechnicalAnalyzer(), nil)
	uc.now = clock

	rep, err := uc.Report(context.Background(), "bitcoin", "")
	require.NoError(t, err)
	assert.Len(t, rep.Indicators, 5)
	assert.Equal(t, 102.0, rep.PriceData.High24h)
	assert.Equal(t, fixedNow, rep.Timestamp)

	rep, err = uc.Report(context.Background(), "bitcoin", "macd")
	require.NoError(t, err)
	assert.Len(t, rep.Indicators, 1)
	assert.Contains(t, rep.Indicators, "macd")
}

func TestAnalyticsQuoteFailure(t *testing.T) {
	uc := NewAnalyticsUseCase(&fakeQuotes{err: errors.New("timeout")}, analytics.NewTechnicalAnalyzer(), nil)
	_, err := uc.Report(context.Background(), "bitcoin", "all")
	require.Error(t, err)
	assert.Equal(t, "Unable to fetch price data", err.Error())

	_, err = uc.Report(context.Background(), "", "all")
	assert.True(t, errors.Is(err, models.ErrMissingParameter))
}

func TestRiskDefaultsToPositionSizing(t *testing.T) {
	uc := NewRiskUseCase(analytics.NewRiskCalculator())
	out, err := uc.Calculate("", models.RiskInput{EntryPrice: 100, StopLoss: 95})
	require.NoError(t, err)
	sizing, ok := out.(*models.PositionSizing)
	require.True(t, ok)
	assert.Equal(t, "40.0000", sizing.RecommendedPositionSize)

	_, err = uc.Calculate("bogus", models.RiskInput{})
	assert.EqualError(t, err, "Invalid action")
}

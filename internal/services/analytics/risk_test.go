package analytics

import (
	"encoding/json"
	"errors"
	"testing"

	"CryptoIntel/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionSizing(t *testing.T) {
	out, err := PositionSize(models.RiskInput{EntryPrice: 100, StopLoss: 95})
	require.NoError(t, err)

	assert.Equal(t, 10000.0, out.AccountSize)
	assert.Equal(t, 2.0, out.RiskPercentage)
	assert.Equal(t, "200.00", out.RiskAmount)
	assert.Equal(t, "5.00", out.PriceRisk)
	assert.Equal(t, "40.0000", out.RecommendedPositionSize)
	assert.Equal(t, "4000.00", out.MaxInvestment)
	assert.Equal(t, "Position size of 40.0000 units (max investment: $4000.00) to risk 2% of account", out.Recommendation)

	_, err = PositionSize(models.RiskInput{EntryPrice: 100})
	require.Error(t, err)
	assert.Equal(t, "Entry price and stop loss are required", err.Error())
}

func TestPositionSizingZeroDistanceStaysFinite(t *testing.T) {
	out, err := PositionSize(models.RiskInput{EntryPrice: 100, StopLoss: 100})
	require.NoError(t, err)
	assert.Equal(t, "0.0000", out.RecommendedPositionSize)
	_, err = json.Marshal(out)
	require.NoError(t, err)
}

func TestRiskReward(t *testing.T) {
	out, err := RiskReward(models.RiskInput{EntryPrice: 100, StopLoss: 90, TakeProfit: 125})
	require.NoError(t, err)
	assert.Equal(t, "2.50", out.Ratio)
	assert.Equal(t, 2.5, out.RiskRewardRatio)
	assert.Equal(t, 1.0, out.PositionSize)
	assert.Equal(t, 10.0, out.PotentialLoss)
	assert.Equal(t, 25.0, out.PotentialProfit)
	assert.Equal(t, "10.00", out.RiskPercent)
	assert.True(t, out.IsGoodTrade)
	assert.Equal(t, "Good", out.Assessment)

	out, err = RiskReward(models.RiskInput{EntryPrice: 100, StopLoss: 90, TakeProfit: 116})
	require.NoError(t, err)
	assert.Equal(t, "Acceptable", out.Assessment)

	out, err = RiskReward(models.RiskInput{EntryPrice: 100, StopLoss: 90, TakeProfit: 105})
	require.NoError(t, err)
	assert.Equal(t, "Poor", out.Assessment)
	assert.False(t, out.IsGoodTrade)

	_, err = RiskReward(models.RiskInput{EntryPrice: 100, StopLoss: 90})
	assert.EqualError(t, err, "Entry price, stop loss, and take profit are required")
}

func TestPortfolioRisk(t *testing.T) {
	empty := PortfolioRisk(models.RiskInput{})
	b, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalPositions":0,"riskScore":0,"assessment":"No positions","recommendations":[]}`, string(b))

	out := PortfolioRisk(models.RiskInput{Positions: []models.RiskPosition{
		{Token: "a", Value: 1000, Volatility: 0.9},
		{Token: "b", Value: 1000},
		{Token: "c", Value: 500, Volatility: 0.1},
		{Token: "d", Value: 100, Volatility: 0.2},
	}}).(*models.PortfolioRisk)

	// risk 900 + 500 + 50 + 20 = 1470 over 2600
	assert.Equal(t, 4, out.TotalPositions)
	assert.Equal(t, "2600.00", out.TotalValue)
	assert.Equal(t, "1470.00", out.TotalRisk)
	assert.Equal(t, "56.54", out.RiskScore)
	assert.Equal(t, "Moderate Risk", out.Assessment)
	assert.Equal(t, []string{"Moderate risk level. Monitor positions closely and set stop losses."}, out.Recommendations)
	require.Len(t, out.TopRiskyPositions, 3)
	assert.Equal(t, "a", out.TopRiskyPositions[0].Token)
	assert.Equal(t, "b", out.TopRiskyPositions[1].Token)
	assert.Equal(t, 0.5, out.TopRiskyPositions[1].Volatility)
}

func TestDiversification(t *testing.T) {
	empty, err := json.Marshal(Diversification(models.RiskInput{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"diversificationScore":0,"assessment":"No positions to analyze"}`, string(empty))

	out := Diversification(models.RiskInput{Positions: []models.RiskPosition{
		{Token: "a", Value: 50},
		{Token: "b", Value: 25},
		{Token: "c", Value: 25},
	}}).(*models.Diversification)

	// hhi = 2500 + 625 + 625
	assert.Equal(t, "3750.00", out.ConcentrationIndex)
	assert.Equal(t, "62.50", out.DiversificationScore)
	assert.Equal(t, "Moderately Diversified", out.Assessment)
	require.Len(t, out.HighConcentrationAssets, 1)
	assert.Equal(t, "a", out.HighConcentrationAssets[0].Token)
	assert.Equal(t, "50.00", out.Concentrations[0].Percentage)
	assert.Equal(t, "Reduce concentration in top holdings", out.Recommendations[0])
}

func TestStopLoss(t *testing.T) {
	out, err := StopLoss(models.RiskInput{EntryPrice: 200})
	require.NoError(t, err)
	assert.Equal(t, "moderate", out.RiskTolerance)
	assert.Equal(t, "medium", out.Volatility)
	assert.Equal(t, 5.0, out.StopLossPercent)
	assert.Equal(t, "190.00", out.StopLossPrice)
	assert.Equal(t, 10.0, out.TakeProfitPercent)
	assert.Equal(t, "220.00", out.TakeProfitPrice)
	assert.Equal(t, "Set stop loss at $190.00 (5% below entry) and take profit at $220.00 (10% above entry)", out.Recommendation)

	out, err = StopLoss(models.RiskInput{EntryPrice: 100, RiskTolerance: "aggressive", Volatility: "high"})
	require.NoError(t, err)
	assert.Equal(t, 12.0, out.StopLossPercent)

	_, err = StopLoss(models.RiskInput{EntryPrice: 100, RiskTolerance: "yolo"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	_, err = StopLoss(models.RiskInput{})
	assert.EqualError(t, err, "Entry price is required")
}

func TestCalculateUnknownAction(t *testing.T) {
	_, err := NewRiskCalculator().Calculate("nope", models.RiskInput{})
	assert.EqualError(t, err, "Invalid action")
}

package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"CryptoIntel/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func snapWithChange(pct float64) *models.PriceSnapshot {
	return &models.PriceSnapshot{
		Token:        "bitcoin",
		Route:        models.RouteCatalog,
		Current:      100 * (1 + pct/100),
		PreviousAt5m: 100,
	}
}

func TestProbabilityCalibration(t *testing.T) {
	est := NewProbabilityEstimatorWith(5, 10)

	tests := []struct {
		name   string
		pct    float64
		up     float64
		upPct  int
		downPc int
	}{
		{"flat", 0, 0.5, 50, 50},
		{"plus five saturates", 5, 1, 100, 0},
		{"beyond plus five", 12, 1, 100, 0},
		{"minus five saturates", -5, 0, 0, 100},
		{"beyond minus five", -30, 0, 0, 100},
		{"plus two", 2, 0.7, 70, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := est.Estimate(snapWithChange(tt.pct), fixedNow)
			assert.InDelta(t, tt.up, res.Probability.Up, 1e-9)
			assert.InDelta(t, 1.0, res.Probability.Up+res.Probability.Down, 1e-12)
			assert.Equal(t, tt.upPct, res.Probability.UpPercent)
			assert.Equal(t, tt.downPc, res.Probability.DownPercent)
			assert.GreaterOrEqual(t, res.Probability.Up, 0.0)
			assert.LessOrEqual(t, res.Probability.Up, 1.0)
		})
	}
}

func TestProbabilityZeroBaselineIsNeutral(t *testing.T) {
	res := NewProbabilityEstimatorWith(5, 10).Estimate(&models.PriceSnapshot{Token: "x", Current: 0, PreviousAt5m: 0}, fixedNow)
	assert.Equal(t, 0.0, res.Change5m)
	assert.Equal(t, 0.5, res.Probability.Up)

	_, err := json.Marshal(res)
	require.NoError(t, err)
}

func TestProbabilityResultJSONShape(t *testing.T) {
	snap := snapWithChange(1)
	snap.Metadata = models.PriceMetadata{CoingeckoID: "bitcoin", Volume24h: 10, PriceChange24h: models.Float64Ptr(2)}
	res := NewProbabilityEstimatorWith(5, 10).Estimate(snap, fixedNow)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))

	for _, k := range []string{"token", "priceNow", "price5mAgo", "change5m", "probability", "metadata", "timestamp"} {
		assert.Contains(t, m, k)
	}
	meta := m["metadata"].(map[string]any)
	assert.Equal(t, "bitcoin", meta["coingeckoId"])
	assert.NotContains(t, meta, "tokenAddress")
	assert.NotContains(t, meta, "liquidity")
}

package analytics

import (
	"encoding/json"
	"testing"

	"CryptoIntel/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dexSnap(vol, liq, m5, h1 float64) *models.PriceSnapshot {
	return &models.PriceSnapshot{
		Token:     "0xabc",
		Route:     models.RouteDex,
		Volume24h: vol,
		Liquidity: liq,
		Change5m:  m5,
		Change1h:  h1,
	}
}

func TestPulseDexRules(t *testing.T) {
	d := NewPulseDetector()

	tests := []struct {
		name     string
		snap     *models.PriceSnapshot
		types    []models.AnomalyType
		severity models.Severity
	}{
		{"quiet", dexSnap(100, 100, 0.5, 1), nil, models.SeverityNormal},
		{"volume spike only", dexSnap(300, 100, 0, 0), []models.AnomalyType{models.AnomalyVolumeSpike}, models.SeverityMinor},
		{"ratio exactly two is not a spike", dexSnap(200, 100, 0, 0), nil, models.SeverityNormal},
		{"zero liquidity", dexSnap(1e9, 0, 0, 0), nil, models.SeverityNormal},
		{"5m spike minor", dexSnap(0, 1, -2, 0), []models.AnomalyType{models.AnomalyPriceSpike5m}, models.SeverityMinor},
		{"5m medium", dexSnap(0, 1, 6, 0), []models.AnomalyType{models.AnomalyPriceSpike5m}, models.SeverityMedium},
		{"1h medium", dexSnap(0, 1, 0, -10), []models.AnomalyType{models.AnomalyHighVolatility}, models.SeverityMedium},
		{"major via 1h", dexSnap(300, 100, 2, 25), []models.AnomalyType{models.AnomalyVolumeSpike, models.AnomalyPriceSpike5m, models.AnomalyHighVolatility}, models.SeverityMajor},
		{"major via 5m", dexSnap(0, 1, -10, 0), []models.AnomalyType{models.AnomalyPriceSpike5m}, models.SeverityMajor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := d.Detect(tt.snap, fixedNow)
			require.NotNil(t, res.Anomalies)
			got := make([]models.AnomalyType, 0, len(res.Anomalies))
			for _, a := range res.Anomalies {
				got = append(got, a.Type)
			}
			if tt.types == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.types, got)
			}
			assert.Equal(t, tt.severity, res.Severity)
			assert.Equal(t, len(res.Anomalies) > 0, res.HasAnomaly)
		})
	}
}

func TestPulseDescriptions(t *testing.T) {
	res := NewPulseDetector().Detect(dexSnap(350, 100, -2.5, 3.456), fixedNow)
	require.Len(t, res.Anomalies, 3)
	assert.Equal(t, "Volume 3.50x liquidity", res.Anomalies[0].Description)
	assert.Equal(t, "Perubahan harga 5m: 2.50%", res.Anomalies[1].Description)
	assert.Equal(t, 2.5, res.Anomalies[1].Value)
	assert.Equal(t, "Volatilitas tinggi 1h: 3.46%", res.Anomalies[2].Description)
}

func TestPulseCatalogRules(t *testing.T) {
	d := NewPulseDetector()
	snap := func(ch float64) *models.PriceSnapshot {
		return &models.PriceSnapshot{Token: "bitcoin", Route: models.RouteCatalog, Change24h: ch, Volume24h: 7}
	}

	res := d.Detect(snap(4.99), fixedNow)
	assert.False(t, res.HasAnomaly)
	assert.Equal(t, models.SeverityNormal, res.Severity)

	res = d.Detect(snap(-6), fixedNow)
	require.Len(t, res.Anomalies, 1)
	assert.Equal(t, models.AnomalyPriceSpike24h, res.Anomalies[0].Type)
	assert.Equal(t, 6.0, res.Anomalies[0].Value)
	assert.Equal(t, "Perubahan harga 24h: 6.00%", res.Anomalies[0].Description)
	assert.Equal(t, models.SeverityMedium, res.Severity)

	res = d.Detect(snap(15), fixedNow)
	assert.Equal(t, models.SeverityMajor, res.Severity)
	require.NotNil(t, res.Metadata.PriceChange24h)
	assert.Equal(t, 15.0, *res.Metadata.PriceChange24h)
	assert.Equal(t, "bitcoin", res.Metadata.CoingeckoID)
}

func TestPulseEmptyAnomaliesSerializeAsArray(t *testing.T) {
	res := NewPulseDetector().Detect(dexSnap(0, 0, 0, 0), fixedNow)
	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"anomalies":[]`)
	assert.Contains(t, string(b), `"volumeH24":0`)
	assert.NotContains(t, string(b), "coingeckoId")
}

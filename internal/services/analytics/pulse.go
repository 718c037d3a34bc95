package analytics

import (
	"fmt"
	"math"
	"time"

	"CryptoIntel/internal/domain/models"
	domsvc "CryptoIntel/internal/domain/service"
	xutil "CryptoIntel/pkg/util"
)

const (
	volumeSpikeRatio = 2.0
	priceSpike5mPct  = 2.0
	highVolatility1h = 3.0
	priceSpike24hPct = 5.0
	major24hPct      = 15.0
	major5mPct       = 10.0
	major1hPct       = 20.0
	medium5mPct      = 5.0
	medium1hPct      = 10.0
)

// PulseDetector flags unusual activity from a single snapshot using fixed thresholds.
type PulseDetector struct{}

func NewPulseDetector() *PulseDetector { return &PulseDetector{} }

func (d *PulseDetector) Detect(snap *models.PriceSnapshot, now time.Time) models.PulseResult {
	res := models.PulseResult{
		Anomalies: make([]models.Anomaly, 0),
		Severity:  models.SeverityNormal,
		Timestamp: now,
	}
	if snap.IsDex() {
		d.detectDex(snap, &res)
	} else {
		d.detectCatalog(snap, &res)
	}
	res.HasAnomaly = len(res.Anomalies) > 0
	return res
}

func (d *PulseDetector) detectDex(snap *models.PriceSnapshot, res *models.PulseResult) {
	ratio := xutil.SafeDiv(snap.Volume24h, snap.Liquidity)
	m5 := math.Abs(snap.Change5m)
	h1 := math.Abs(snap.Change1h)

	if ratio > volumeSpikeRatio {
		res.Anomalies = append(res.Anomalies, models.Anomaly{
			Type:        models.AnomalyVolumeSpike,
			Value:       ratio,
			Description: fmt.Sprintf("Volume %sx liquidity", xutil.Fixed(ratio, 2)),
		})
	}
	if m5 >= priceSpike5mPct {
		res.Anomalies = append(res.Anomalies, models.Anomaly{
			Type:        models.AnomalyPriceSpike5m,
			Value:       m5,
			Description: fmt.Sprintf("Perubahan harga 5m: %s%%", xutil.Fixed(m5, 2)),
		})
	}
	if h1 >= highVolatility1h {
		res.Anomalies = append(res.Anomalies, models.Anomaly{
			Type:        models.AnomalyHighVolatility,
			Value:       h1,
			Description: fmt.Sprintf("Volatilitas tinggi 1h: %s%%", xutil.Fixed(h1, 2)),
		})
	}

	switch {
	case m5 >= major5mPct || h1 >= major1hPct:
		res.Severity = models.SeverityMajor
	case m5 >= medium5mPct || h1 >= medium1hPct:
		res.Severity = models.SeverityMedium
	case len(res.Anomalies) > 0:
		res.Severity = models.SeverityMinor
	}

	change := models.PriceChange{M5: snap.Change5m, H1: snap.Change1h, H24: snap.Change24h}
	res.Metadata = models.PulseMetadata{
		TokenAddress: snap.Token,
		VolumeH24:    models.Float64Ptr(snap.Volume24h),
		Liquidity:    models.Float64Ptr(snap.Liquidity),
		PriceChange:  &change,
	}
}

func (d *PulseDetector) detectCatalog(snap *models.PriceSnapshot, res *models.PulseResult) {
	ch := math.Abs(snap.Change24h)
	if ch >= priceSpike24hPct {
		res.Anomalies = append(res.Anomalies, models.Anomaly{
			Type:        models.AnomalyPriceSpike24h,
			Value:       ch,
			Description: fmt.Sprintf("Perubahan harga 24h: %s%%", xutil.Fixed(ch, 2)),
		})
		res.Severity = models.SeverityMedium
		if ch >= major24hPct {
			res.Severity = models.SeverityMajor
		}
	}
	res.Metadata = models.PulseMetadata{
		CoingeckoID:    snap.Token,
		Volume24h:      models.Float64Ptr(snap.Volume24h),
		PriceChange24h: models.Float64Ptr(snap.Change24h),
	}
}

var _ domsvc.PulseDetector = (*PulseDetector)(nil)

package analytics

import (
	"fmt"
	"math"
	"sort"

	"CryptoIntel/internal/domain/models"
	domsvc "CryptoIntel/internal/domain/service"
	xutil "CryptoIntel/pkg/util"
)

const (
	defaultAccountSize    = 10000
	defaultRiskPercentage = 2
	defaultPositionSize   = 1
	defaultVolatility     = 0.5
	defaultRiskTolerance  = "moderate"
	defaultVolatilityBand = "medium"
)

// stopLossMatrix holds stop distances in percent by risk tolerance and volatility band.
var stopLossMatrix = map[string]map[string]float64{
	"conservative": {"low": 2, "medium": 3, "high": 5},
	"moderate":     {"low": 3, "medium": 5, "high": 8},
	"aggressive":   {"low": 5, "medium": 8, "high": 12},
}

// RiskCalculator implements the position and portfolio risk tools.
type RiskCalculator struct{}

func NewRiskCalculator() *RiskCalculator { return &RiskCalculator{} }

func (r *RiskCalculator) Calculate(action models.RiskAction, in models.RiskInput) (any, error) {
	switch action {
	case models.RiskPositionSizing:
		return PositionSize(in)
	case models.RiskRewardAction:
		return RiskReward(in)
	case models.RiskPortfolio:
		return PortfolioRisk(in), nil
	case models.RiskDiversification:
		return Diversification(in), nil
	case models.RiskStopLoss:
		return StopLoss(in)
	default:
		return nil, models.InvalidInput("Invalid action")
	}
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func PositionSize(in models.RiskInput) (*models.PositionSizing, error) {
	account := orDefault(in.AccountSize, defaultAccountSize)
	riskPct := orDefault(in.RiskPercentage, defaultRiskPercentage)
	if in.EntryPrice == 0 || in.StopLoss == 0 {
		return nil, models.InvalidInput("Entry price and stop loss are required")
	}

	riskAmount := account * (riskPct / 100)
	priceRisk := math.Abs(in.EntryPrice - in.StopLoss)
	size := xutil.SafeDiv(riskAmount, priceRisk)
	maxInvestment := xutil.Fixed(size*in.EntryPrice, 2)

	return &models.PositionSizing{
		AccountSize:             account,
		RiskPercentage:          riskPct,
		RiskAmount:              xutil.Fixed(riskAmount, 2),
		EntryPrice:              in.EntryPrice,
		StopLoss:                in.StopLoss,
		PriceRisk:               xutil.Fixed(priceRisk, 2),
		RecommendedPositionSize: xutil.Fixed(size, 4),
		MaxInvestment:           maxInvestment,
		Recommendation: fmt.Sprintf("Position size of %s units (max investment: $%s) to risk %s%% of account",
			xutil.Fixed(size, 4), maxInvestment, xutil.Plain(riskPct)),
	}, nil
}

func RiskReward(in models.RiskInput) (*models.RiskReward, error) {
	size := orDefault(in.PositionSize, defaultPositionSize)
	if in.EntryPrice == 0 || in.StopLoss == 0 || in.TakeProfit == 0 {
		return nil, models.InvalidInput("Entry price, stop loss, and take profit are required")
	}

	risk := math.Abs(in.EntryPrice - in.StopLoss)
	reward := math.Abs(in.TakeProfit - in.EntryPrice)
	ratio := xutil.SafeDiv(reward, risk)
	lossPct := xutil.SafeDiv(risk, in.EntryPrice) * 100
	profitPct := xutil.SafeDiv(reward, in.EntryPrice) * 100

	out := &models.RiskReward{
		EntryPrice:       in.EntryPrice,
		StopLoss:         in.StopLoss,
		TakeProfit:       in.TakeProfit,
		PositionSize:     size,
		Risk:             xutil.Fixed(risk, 2),
		Reward:           xutil.Fixed(reward, 2),
		Ratio:            xutil.Fixed(ratio, 2),
		RiskRewardRatio:  ratio,
		RiskPercent:      xutil.Fixed(lossPct, 2),
		RewardPercent:    xutil.Fixed(profitPct, 2),
		PotentialLoss:    risk * size,
		PotentialProfit:  reward * size,
		LossPercentage:   lossPct,
		ProfitPercentage: profitPct,
		IsGoodTrade:      ratio >= 2,
	}
	switch {
	case ratio >= 2:
		out.Assessment = "Good"
		out.Recommendation = "Excellent risk/reward ratio. Trade aligns with risk management principles."
	case ratio >= 1.5:
		out.Assessment = "Acceptable"
		out.Recommendation = "Acceptable ratio. Consider if other factors support the trade."
	default:
		out.Assessment = "Poor"
		out.Recommendation = "Poor ratio. Consider adjusting targets or avoiding this trade."
	}
	return out, nil
}

func PortfolioRisk(in models.RiskInput) any {
	if len(in.Positions) == 0 {
		return &models.EmptyPortfolioRisk{Assessment: "No positions", Recommendations: []string{}}
	}

	var totalValue, totalRisk float64
	risks := make([]models.PositionRisk, 0, len(in.Positions))
	for _, p := range in.Positions {
		vol := orDefault(p.Volatility, defaultVolatility)
		risk := p.Value * vol
		totalValue += p.Value
		totalRisk += risk
		risks = append(risks, models.PositionRisk{Token: p.Token, Risk: risk, Volatility: vol})
	}

	score := math.Min(xutil.SafeDiv(totalRisk, totalValue)*100, 100)

	recs := make([]string, 0, 2)
	if score > 70 {
		recs = append(recs, "Portfolio has high risk exposure. Consider diversifying into stable assets.")
	}
	if score > 50 {
		recs = append(recs, "Moderate risk level. Monitor positions closely and set stop losses.")
	}
	if score < 30 {
		recs = append(recs, "Low risk portfolio. Consider allocating small portion to high-growth opportunities.")
	}

	assessment := "Low Risk"
	switch {
	case score > 70:
		assessment = "High Risk"
	case score > 40:
		assessment = "Moderate Risk"
	}

	sort.SliceStable(risks, func(i, j int) bool { return risks[i].Risk > risks[j].Risk })
	if len(risks) > 3 {
		risks = risks[:3]
	}

	return &models.PortfolioRisk{
		TotalPositions:    len(in.Positions),
		TotalValue:        xutil.Fixed(totalValue, 2),
		TotalRisk:         xutil.Fixed(totalRisk, 2),
		RiskScore:         xutil.Fixed(score, 2),
		Assessment:        assessment,
		Recommendations:   recs,
		TopRiskyPositions: risks,
	}
}

func Diversification(in models.RiskInput) any {
	if len(in.Positions) == 0 {
		return &models.EmptyDiversification{Assessment: "No positions to analyze"}
	}

	var total float64
	for _, p := range in.Positions {
		total += p.Value
	}

	concentrations := make([]models.Concentration, 0, len(in.Positions))
	high := make([]models.Concentration, 0)
	var hhi float64
	for _, p := range in.Positions {
		// Percentages are rounded to 2 decimals before they feed the index.
		pctText := xutil.Fixed(xutil.SafeDiv(p.Value, total)*100, 2)
		pct := xutil.ParseFloatDefault(pctText, 0)
		c := models.Concentration{Token: p.Token, Percentage: pctText}
		concentrations = append(concentrations, c)
		if pct > 30 {
			high = append(high, c)
		}
		hhi += pct * pct
	}
	score := math.Max(0, 100-hhi/100)

	assessment := "Poorly Diversified"
	switch {
	case score > 70:
		assessment = "Well Diversified"
	case score > 40:
		assessment = "Moderately Diversified"
	}
	recs := []string{"Diversification is adequate", "Continue monitoring portfolio balance"}
	if len(high) > 0 {
		recs = []string{"Reduce concentration in top holdings", "Consider allocating to more assets"}
	}

	return &models.Diversification{
		TotalPositions:          len(in.Positions),
		DiversificationScore:    xutil.Fixed(score, 2),
		ConcentrationIndex:      xutil.Fixed(hhi, 2),
		Assessment:              assessment,
		Concentrations:          concentrations,
		HighConcentrationAssets: high,
		Recommendations:         recs,
	}
}

func StopLoss(in models.RiskInput) (*models.StopLossPlan, error) {
	if in.EntryPrice == 0 {
		return nil, models.InvalidInput("Entry price is required")
	}
	tolerance := in.RiskTolerance
	if tolerance == "" {
		tolerance = defaultRiskTolerance
	}
	band := in.Volatility
	if band == "" {
		band = defaultVolatilityBand
	}
	pct, ok := stopLossMatrix[tolerance][band]
	if !ok {
		return nil, models.InvalidInput(fmt.Sprintf("Unsupported risk tolerance %q or volatility %q", tolerance, band))
	}

	stop := in.EntryPrice * (1 - pct/100)
	takePct := pct * 2
	take := in.EntryPrice * (1 + takePct/100)

	return &models.StopLossPlan{
		EntryPrice:        in.EntryPrice,
		RiskTolerance:     tolerance,
		Volatility:        band,
		StopLossPercent:   pct,
		StopLossPrice:     xutil.Fixed(stop, 2),
		TakeProfitPercent: takePct,
		TakeProfitPrice:   xutil.Fixed(take, 2),
		PotentialLoss:     xutil.Fixed(in.EntryPrice-stop, 2),
		PotentialGain:     xutil.Fixed(take-in.EntryPrice, 2),
		RiskRewardRatio:   2,
		Recommendation: fmt.Sprintf("Set stop loss at $%s (%s%% below entry) and take profit at $%s (%s%% above entry)",
			xutil.Fixed(stop, 2), xutil.Plain(pct), xutil.Fixed(take, 2), xutil.Plain(takePct)),
	}, nil
}

var _ domsvc.RiskCalculator = (*RiskCalculator)(nil)

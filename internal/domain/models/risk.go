package models

type RiskAction string

const (
	RiskPositionSizing  RiskAction = "position-sizing"
	RiskRewardAction    RiskAction = "risk-reward"
	RiskPortfolio       RiskAction = "portfolio-risk"
	RiskDiversification RiskAction = "diversification"
	RiskStopLoss        RiskAction = "stop-loss"
)

type RiskPosition struct {
	Token      string  `json:"token"`
	Value      float64 `json:"value"`
	Volatility float64 `json:"volatility"`
}

// RiskInput is the union of the inputs of every risk action. Zero values take the action defaults.
type RiskInput struct {
	AccountSize    float64        `json:"accountSize"`
	RiskPercentage float64        `json:"riskPercentage"`
	EntryPrice     float64        `json:"entryPrice"`
	StopLoss       float64        `json:"stopLoss"`
	TakeProfit     float64        `json:"takeProfit"`
	PositionSize   float64        `json:"positionSize"`
	Positions      []RiskPosition `json:"positions"`
	RiskTolerance  string         `json:"riskTolerance"`
	Volatility     string         `json:"volatility"`
}

type PositionSizing struct {
	AccountSize             float64 `json:"accountSize"`
	RiskPercentage          float64 `json:"riskPercentage"`
	RiskAmount              string  `json:"riskAmount"`
	EntryPrice              float64 `json:"entryPrice"`
	StopLoss                float64 `json:"stopLoss"`
	PriceRisk               string  `json:"priceRisk"`
	RecommendedPositionSize string  `json:"recommendedPositionSize"`
	MaxInvestment           string  `json:"maxInvestment"`
	Recommendation          string  `json:"recommendation"`
}

type RiskReward struct {
	EntryPrice       float64 `json:"entryPrice"`
	StopLoss         float64 `json:"stopLoss"`
	TakeProfit       float64 `json:"takeProfit"`
	PositionSize     float64 `json:"positionSize"`
	Risk             string  `json:"risk"`
	Reward           string  `json:"reward"`
	Ratio            string  `json:"ratio"`
	RiskRewardRatio  float64 `json:"risk_reward_ratio"`
	RiskPercent      string  `json:"riskPercent"`
	RewardPercent    string  `json:"rewardPercent"`
	PotentialLoss    float64 `json:"potential_loss"`
	PotentialProfit  float64 `json:"potential_profit"`
	LossPercentage   float64 `json:"loss_percentage"`
	ProfitPercentage float64 `json:"profit_percentage"`
	IsGoodTrade      bool    `json:"is_good_trade"`
	Assessment       string  `json:"assessment"`
	Recommendation   string  `json:"recommendation"`
}

type PositionRisk struct {
	Token      string  `json:"token"`
	Risk       float64 `json:"risk"`
	Volatility float64 `json:"volatility"`
}

type PortfolioRisk struct {
	TotalPositions    int            `json:"totalPositions"`
	TotalValue        string         `json:"totalValue"`
	TotalRisk         string         `json:"totalRisk"`
	RiskScore         string         `json:"riskScore"`
	Assessment        string         `json:"assessment"`
	Recommendations   []string       `json:"recommendations"`
	TopRiskyPositions []PositionRisk `json:"topRiskyPositions"`
}

// EmptyPortfolioRisk is returned for a portfolio without positions.
type EmptyPortfolioRisk struct {
	TotalPositions  int      `json:"totalPositions"`
	RiskScore       int      `json:"riskScore"`
	Assessment      string   `json:"assessment"`
	Recommendations []string `json:"recommendations"`
}

type Concentration struct {
	Token      string `json:"token"`
	Percentage string `json:"percentage"`
}

type Diversification struct {
	TotalPositions          int             `json:"totalPositions"`
	DiversificationScore    string          `json:"diversificationScore"`
	ConcentrationIndex      string          `json:"concentrationIndex"`
	Assessment              string          `json:"assessment"`
	Concentrations          []Concentration `json:"concentrations"`
	HighConcentrationAssets []Concentration `json:"highConcentrationAssets"`
	Recommendations         []string        `json:"recommendations"`
}

// EmptyDiversification is returned when there is nothing to analyze.
type EmptyDiversification struct {
	DiversificationScore int    `json:"diversificationScore"`
	Assessment           string `json:"assessment"`
}

type StopLossPlan struct {
	EntryPrice        float64 `json:"entryPrice"`
	RiskTolerance     string  `json:"riskTolerance"`
	Volatility        string  `json:"volatility"`
	StopLossPercent   float64 `json:"stopLossPercent"`
	StopLossPrice     string  `json:"stopLossPrice"`
	TakeProfitPercent float64 `json:"takeProfitPercent"`
	TakeProfitPrice   string  `json:"takeProfitPrice"`
	PotentialLoss     string  `json:"potentialLoss"`
	PotentialGain     string  `json:"potentialGain"`
	RiskRewardRatio   int     `json:"riskRewardRatio"`
	Recommendation    string  `json:"recommendation"`
}

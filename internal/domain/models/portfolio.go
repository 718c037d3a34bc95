package models

import "time"

// Position is a row of portfolio_positions.
type Position struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	TokenSymbol  string    `db:"token_symbol" json:"token_symbol"`
	TokenAddress *string   `db:"token_address" json:"token_address"`
	Amount       float64   `db:"amount" json:"amount"`
	AvgPrice     float64   `db:"avg_price" json:"avg_price"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// PositionValuation is a position valued at the current market price.
type PositionValuation struct {
	Position
	CurrentPrice         float64 `json:"current_price"`
	TotalValue           float64 `json:"total_value"`
	ProfitLoss           float64 `json:"profit_loss"`
	ProfitLossPercentage float64 `json:"profit_loss_percentage"`
}

type NewPosition struct {
	TokenSymbol  string
	TokenAddress *string
	Amount       float64
	AvgPrice     float64
}

type PositionUpdate struct {
	Amount   float64
	AvgPrice float64
}

package models

import "time"

type AlertType string

const (
	AlertTypePrice      AlertType = "price"
	AlertTypeVolume     AlertType = "volume"
	AlertTypePercentage AlertType = "percentage"
)

type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
)

// Alert is a row of price_alerts.
type Alert struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	TokenSymbol    string    `db:"token_symbol" json:"token_symbol"`
	AlertType      AlertType `db:"alert_type" json:"alert_type"`
	ThresholdValue float64   `db:"threshold_value" json:"threshold_value"`
	Direction      Direction `db:"direction" json:"direction"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Crossed reports whether value is on the triggering side of the threshold.
func (a *Alert) Crossed(value float64) bool {
	if a.Direction == DirectionAbove {
		return value >= a.ThresholdValue
	}
	return value <= a.ThresholdValue
}

// AlertStatus is an alert enriched with the latest observed value.
type AlertStatus struct {
	Alert
	CurrentValue float64 `json:"current_value"`
	Triggered    bool    `json:"triggered"`
}

type NewAlert struct {
	TokenSymbol    string
	AlertType      AlertType
	ThresholdValue float64
	Direction      Direction
}

// AlertPatch holds the optional fields of an alert update. Nil fields are left unchanged.
type AlertPatch struct {
	IsActive       *bool
	ThresholdValue *float64
	Direction      *Direction
}

// AlertTriggeredEvent is emitted when a listed active alert has crossed its threshold.
type AlertTriggeredEvent struct {
	EventID        string    `json:"event_id" db:"event_id"`
	AlertID        string    `json:"alert_id" db:"alert_id"`
	UserID         string    `json:"user_id" db:"user_id"`
	TokenSymbol    string    `json:"token_symbol" db:"token_symbol"`
	AlertType      string    `json:"alert_type" db:"alert_type"`
	Direction      string    `json:"direction" db:"direction"`
	ThresholdValue float64   `json:"threshold_value" db:"threshold_value"`
	CurrentValue   float64   `json:"current_value" db:"current_value"`
	TriggeredAt    time.Time `json:"triggered_at" db:"triggered_at"`
}

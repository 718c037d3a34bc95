package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Requests for the HTTP endpoints. Defined in domain for consistency and reuse.

// NewsRequest has no limit default; the handler seeds it from news.default_limit.
type NewsRequest struct {
	Category string `query:"category" json:"category" default:"general"`
	Limit    int    `query:"limit" json:"limit" validate:"gte=0,lte=100"`
}

type AnalyticsRequest struct {
	Token     string `query:"token" json:"token"`
	Indicator string `query:"indicator" json:"indicator" default:"all"`
}

type CreateAlertRequest struct {
	TokenSymbol    string    `json:"token_symbol" validate:"required"`
	AlertType      string    `json:"alert_type" default:"price" validate:"oneof=price volume percentage"`
	ThresholdValue FlexFloat `json:"threshold_value"`
	Direction      string    `json:"direction" default:"above" validate:"oneof=above below"`
}

type UpdateAlertRequest struct {
	AlertID        string     `json:"alert_id" validate:"required"`
	IsActive       *bool      `json:"is_active"`
	ThresholdValue *FlexFloat `json:"threshold_value"`
	Direction      *string    `json:"direction" validate:"omitempty,oneof=above below"`
}

type DeleteAlertRequest struct {
	AlertID string `query:"alert_id" json:"alert_id" validate:"required"`
}

type AlertHistoryRequest struct {
	Limit int `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=1000"`
}

type CreatePositionRequest struct {
	TokenSymbol  string    `json:"token_symbol" validate:"required"`
	TokenAddress *string   `json:"token_address"`
	Amount       FlexFloat `json:"amount"`
	AvgPrice     FlexFloat `json:"avg_price"`
}

type UpdatePositionRequest struct {
	PositionID string    `json:"position_id" validate:"required"`
	Amount     FlexFloat `json:"amount"`
	AvgPrice   FlexFloat `json:"avg_price"`
}

type DeletePositionRequest struct {
	PositionID string `query:"position_id" json:"position_id" validate:"required"`
}

// FlexFloat decodes a JSON number or a numeric string. Null and "" decode to 0.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) Float64() float64 { return float64(f) }

package usecase

import (
	"CryptoIntel/internal/domain/models"
	domsvc "CryptoIntel/internal/domain/service"
)

type RiskUseCase struct {
	calc domsvc.RiskCalculator
}

func NewRiskUseCase(calc domsvc.RiskCalculator) *RiskUseCase {
	return &RiskUseCase{calc: calc}
}

// Calculate runs action over in. An empty action means position sizing.
func (uc *RiskUseCase) Calculate(action string, in models.RiskInput) (any, error) {
	if action == "" {
		action = string(models.RiskPositionSizing)
	}
	return uc.calc.Calculate(models.RiskAction(action), in)
}

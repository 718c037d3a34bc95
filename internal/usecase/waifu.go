package usecase

import (
	"context"
	"time"

	"CryptoIntel/internal/domain/models"
	domsvc "CryptoIntel/internal/domain/service"
)

// WaifuUseCase renders the intel report through one of the persona voices.
type WaifuUseCase struct {
	intel   IntelGenerator
	persona domsvc.PersonaResponder
	now     func() time.Time
}

func NewWaifuUseCase(intel IntelGenerator, persona domsvc.PersonaResponder) *WaifuUseCase {
	return &WaifuUseCase{intel: intel, persona: persona, now: time.Now}
}

// Respond echoes mode back as given. An empty mode means genki.
func (uc *WaifuUseCase) Respond(ctx context.Context, token, mode string) (*models.PersonaResponse, error) {
	if token == "" {
		return nil, errTokenRequired
	}
	if mode == "" {
		mode = models.PersonaGenki
	}
	report, err := uc.intel.Generate(ctx, token)
	if err != nil {
		return nil, models.DependentCallFailed(err)
	}
	return &models.PersonaResponse{
		Mode:      mode,
		Message:   uc.persona.Render(mode, report),
		RawData:   report,
		Timestamp: uc.now(),
	}, nil
}

package upload

import (
	"context"

	"github.com/xivmarket/marketboard/internal/domain"
	"github.com/xivmarket/marketboard/internal/gamedata"
)

// worldValidator vetoes submissions for worlds absent from the
// reference catalog.
type worldValidator struct {
	gameData gamedata.Provider
}

// NewWorldValidator creates the world validation behavior.
func NewWorldValidator(gameData gamedata.Provider) Behavior {
	return &worldValidator{gameData: gameData}
}

func (v *worldValidator) Name() string {
	return "world-validator"
}

func (v *worldValidator) Kind() Kind {
	return KindValidator
}

func (v *worldValidator) ShouldExecute(params *Parameters) bool {
	return true
}

func (v *worldValidator) Execute(ctx context.Context, params *Parameters) error {
	if params.WorldID <= 0 {
		return &domain.ValidationError{Behavior: v.Name(), Message: "world ID is required"}
	}
	if !v.gameData.IsWorld(params.WorldID) {
		return &domain.ValidationError{Behavior: v.Name(), Message: "unknown world"}
	}
	return nil
}

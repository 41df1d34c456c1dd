package upload

import (
	"context"

	"github.com/xivmarket/marketboard/internal/domain"
	"github.com/xivmarket/marketboard/internal/gamedata"
)

// itemValidator vetoes submissions for items that cannot be traded, and
// sale or listing quantities above the item's stack size.
type itemValidator struct {
	gameData gamedata.Provider
}

// NewItemValidator creates the item validation behavior.
func NewItemValidator(gameData gamedata.Provider) Behavior {
	return &itemValidator{gameData: gameData}
}

func (v *itemValidator) Name() string {
	return "item-validator"
}

func (v *itemValidator) Kind() Kind {
	return KindValidator
}

func (v *itemValidator) ShouldExecute(params *Parameters) bool {
	return true
}

func (v *itemValidator) Execute(ctx context.Context, params *Parameters) error {
	if params.ItemID <= 0 {
		return &domain.ValidationError{Behavior: v.Name(), Message: "item ID is required"}
	}

	stackSize, ok := v.gameData.StackSize(params.ItemID)
	if !ok {
		return &domain.ValidationError{Behavior: v.Name(), Message: "item is not marketable"}
	}

	for _, sale := range params.Sales {
		if sale.Quantity != nil && *sale.Quantity > stackSize {
			return &domain.ValidationError{Behavior: v.Name(), Message: "sale quantity exceeds stack size"}
		}
	}
	for _, listing := range params.Listings {
		if listing.Quantity > stackSize {
			return &domain.ValidationError{Behavior: v.Name(), Message: "listing quantity exceeds stack size"}
		}
	}

	return nil
}

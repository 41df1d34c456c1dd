package upload

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/xivmarket/marketboard/internal/adapter"
	"github.com/xivmarket/marketboard/internal/domain"
	"github.com/xivmarket/marketboard/internal/messaging"
	"github.com/xivmarket/marketboard/internal/store"
)

// salesEffect appends the submitted sale batch to the durable store,
// refreshes the market item's upload timestamp and publishes a
// SalesAdd event.
type salesEffect struct {
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
}

// NewSalesEffect creates the sale batch append behavior.
func NewSalesEffect(s store.Store, publisher messaging.Publisher, clock adapter.Clock) Behavior {
	return &salesEffect{store: s, publisher: publisher, clock: clock}
}

func (e *salesEffect) Name() string {
	return "sales-effect"
}

func (e *salesEffect) Kind() Kind {
	return KindEffect
}

func (e *salesEffect) ShouldExecute(params *Parameters) bool {
	return len(params.Sales) > 0
}

func (e *salesEffect) Execute(ctx context.Context, params *Parameters) error {
	now := e.clock.Now()

	sales := make([]*domain.Sale, 0, len(params.Sales))
	for _, s := range params.Sales {
		sales = append(sales, &domain.Sale{
			ID:             uuid.New(),
			WorldID:        params.WorldID,
			ItemID:         params.ItemID,
			Hq:             s.Hq,
			PricePerUnit:   s.PricePerUnit,
			Quantity:       s.Quantity,
			BuyerName:      s.BuyerName,
			OnMannequin:    s.OnMannequin,
			UploaderIDHash: params.UploaderIDHash,
			SaleTime:       unixTime(s.TimestampSeconds),
		})
	}

	if err := e.store.InsertSales(ctx, sales); err != nil {
		return err
	}

	if err := e.store.UpdateMarketItem(ctx, &domain.MarketItem{
		WorldID:        params.WorldID,
		ItemID:         params.ItemID,
		LastUploadTime: now,
	}); err != nil {
		return err
	}

	event := &domain.UploadEvent{
		Kind:    domain.EventSalesAdd,
		WorldID: params.WorldID,
		ItemID:  params.ItemID,
		Sales:   sales,
	}
	if err := e.publisher.PublishEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to publish sales event: %w", err)
	}

	return nil
}

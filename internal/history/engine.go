package history

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xivmarket/marketboard/internal/adapter"
	"github.com/xivmarket/marketboard/internal/domain"
	"github.com/xivmarket/marketboard/internal/gamedata"
	"github.com/xivmarket/marketboard/internal/logger"
	"github.com/xivmarket/marketboard/internal/store"
)

// DefaultMaxEntries is the sale window retrieved per world when the
// caller does not ask for a specific count.
const DefaultMaxEntries = 1000

// Engine merges per-world sale histories into ranked, windowed views.
// It only reads storage, never mutates it.
type Engine struct {
	store    store.Store
	gameData gamedata.Provider
	clock    adapter.Clock
}

// NewEngine creates a new aggregation engine
func NewEngine(s store.Store, gameData gamedata.Provider, clock adapter.Clock) *Engine {
	return &Engine{store: s, gameData: gameData, clock: clock}
}

// History retrieves one world's history for an item. A world that has
// never received an upload yields nil, not an error.
func (e *Engine) History(ctx context.Context, worldID, itemID int32, count int) (*domain.History, error) {
	item, err := e.store.RetrieveMarketItem(ctx, worldID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	sales, err := e.store.RetrieveSalesBySaleTime(ctx, worldID, itemID, count)
	if err != nil {
		return nil, err
	}

	return &domain.History{
		WorldID:                        worldID,
		ItemID:                         itemID,
		LastUploadTimeUnixMilliseconds: item.LastUploadTime.UnixMilli(),
		Sales:                          sales,
	}, nil
}

// GetHistoryView merges the scope's worlds into one ranked view.
// Worlds absent from the reference catalog are skipped. Caller
// cancellation stops the merge promptly and the fold produced so far
// is returned as a degraded result.
func (e *Engine) GetHistoryView(ctx context.Context, scope *gamedata.Scope, itemID int32, maxEntries int, statsWindow time.Duration, entriesWindowSeconds int64) (*View, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	now := e.clock.Now()
	acc := newAccumulator(now.Unix(), entriesWindowSeconds, !scope.IsWorld())

	for _, worldID := range scope.WorldIDs {
		if ctx.Err() != nil {
			logger.WarnCtx(ctx, "history merge canceled, returning partial view",
				zap.Int32("item_id", itemID), zap.Int32("world_id", worldID))
			break
		}

		worldName, ok := e.gameData.AvailableWorlds()[worldID]
		if !ok {
			continue
		}

		h, err := e.History(ctx, worldID, itemID, maxEntries)
		if err != nil {
			return nil, err
		}

		acc.add(h, worldName)
	}

	entries := acc.finish(maxEntries)
	nq, hq := partitionByQuality(entries)

	view := &View{
		ItemID:               itemID,
		LastUploadTime:       acc.lastUploadTime,
		Entries:              entries,
		StackSizeHistogram:   stackSizeHistogram(entries),
		StackSizeHistogramNq: stackSizeHistogram(nq),
		StackSizeHistogramHq: stackSizeHistogram(hq),
		SaleVelocity:         saleVelocityPerDay(entries, now, statsWindow),
		SaleVelocityNq:       saleVelocityPerDay(nq, now, statsWindow),
		SaleVelocityHq:       saleVelocityPerDay(hq, now, statsWindow),
	}

	switch scope.Kind {
	case gamedata.ScopeWorld:
		view.WorldID = scope.WorldID
		view.WorldName = scope.WorldName
	case gamedata.ScopeDataCenter:
		view.DcName = scope.DcName
	case gamedata.ScopeRegion:
		view.RegionName = scope.RegionName
	}

	return view, nil
}

// TradeVolume sums units and gil traded across the scope's worlds
// within a closed time range.
func (e *Engine) TradeVolume(ctx context.Context, scope *gamedata.Scope, itemID int32, from, to time.Time) (*domain.TradeVolume, error) {
	total := &domain.TradeVolume{}
	for _, worldID := range scope.WorldIDs {
		if !e.gameData.IsWorld(worldID) {
			continue
		}
		volume, err := e.store.RetrieveTradeVolume(ctx, worldID, itemID, from, to)
		if err != nil {
			return nil, err
		}
		total.Units += volume.Units
		total.Gil += volume.Gil
	}
	return total, nil
}

package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xivmarket/marketboard/internal/adapter"
	"github.com/xivmarket/marketboard/internal/cache"
	"github.com/xivmarket/marketboard/internal/domain"
	"github.com/xivmarket/marketboard/internal/logger"
	"github.com/xivmarket/marketboard/internal/messaging"
	"github.com/xivmarket/marketboard/internal/store"
)

// listingsSnapshotTTL bounds how long a stale snapshot can linger for
// a pair nobody uploads to anymore.
const listingsSnapshotTTL = 24 * time.Hour

// listingsEffect replaces the cached listings snapshot for the pair,
// diffs it against the previous snapshot and publishes the resulting
// ListingsAdd/ListingsRemove deltas plus an ItemUpdate event.
type listingsEffect struct {
	store     store.Store
	cache     cache.Cache
	publisher messaging.Publisher
	clock     adapter.Clock
}

// NewListingsEffect creates the listings snapshot behavior.
func NewListingsEffect(s store.Store, c cache.Cache, publisher messaging.Publisher, clock adapter.Clock) Behavior {
	return &listingsEffect{store: s, cache: c, publisher: publisher, clock: clock}
}

func (e *listingsEffect) Name() string {
	return "listings-effect"
}

func (e *listingsEffect) Kind() Kind {
	return KindEffect
}

func (e *listingsEffect) ShouldExecute(params *Parameters) bool {
	return params.Listings != nil
}

func (e *listingsEffect) Execute(ctx context.Context, params *Parameters) error {
	key := fmt.Sprintf("listings:%d:%d", params.WorldID, params.ItemID)

	var previous []*domain.Listing
	if data, err := e.cache.Get(ctx, key); err == nil {
		if err := json.Unmarshal(data, &previous); err != nil {
			logger.WarnCtx(ctx, "failed to decode listings snapshot", zap.String("key", key), zap.Error(err))
			previous = nil
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.WarnCtx(ctx, "failed to read listings snapshot", zap.String("key", key), zap.Error(err))
	}

	current := make([]*domain.Listing, 0, len(params.Listings))
	for _, l := range params.Listings {
		current = append(current, &domain.Listing{
			ListingID:    l.ListingID,
			Hq:           l.Hq,
			PricePerUnit: l.PricePerUnit,
			Quantity:     l.Quantity,
			RetainerName: l.RetainerName,
		})
	}

	data, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("failed to encode listings snapshot: %w", err)
	}
	if err := e.cache.Set(ctx, key, data, listingsSnapshotTTL); err != nil {
		return fmt.Errorf("failed to store listings snapshot: %w", err)
	}

	if err := e.store.UpdateMarketItem(ctx, &domain.MarketItem{
		WorldID:        params.WorldID,
		ItemID:         params.ItemID,
		LastUploadTime: e.clock.Now(),
	}); err != nil {
		return err
	}

	added, removed := diffListings(previous, current)

	if len(added) > 0 {
		if err := e.publish(ctx, domain.EventListingsAdd, params, added); err != nil {
			return err
		}
	}
	if len(removed) > 0 {
		if err := e.publish(ctx, domain.EventListingsRemove, params, removed); err != nil {
			return err
		}
	}

	return e.publish(ctx, domain.EventItemUpdate, params, nil)
}

func (e *listingsEffect) publish(ctx context.Context, kind domain.EventKind, params *Parameters, listings []*domain.Listing) error {
	event := &domain.UploadEvent{
		Kind:     kind,
		WorldID:  params.WorldID,
		ItemID:   params.ItemID,
		Listings: listings,
	}
	if err := e.publisher.PublishEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", kind, err)
	}
	return nil
}

// diffListings splits the new snapshot against the old one by listing ID.
func diffListings(previous, current []*domain.Listing) (added, removed []*domain.Listing) {
	prevByID := make(map[string]*domain.Listing, len(previous))
	for _, l := range previous {
		prevByID[l.ListingID] = l
	}

	currentIDs := make(map[string]struct{}, len(current))
	for _, l := range current {
		currentIDs[l.ListingID] = struct{}{}
		if _, ok := prevByID[l.ListingID]; !ok {
			added = append(added, l)
		}
	}

	for _, l := range previous {
		if _, ok := currentIDs[l.ListingID]; !ok {
			removed = append(removed, l)
		}
	}

	return added, removed
}

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
	"github.com/xivmarket/marketboard/internal/logger"
)

const (
	// recencyListSize caps the per-world most-recently-updated list.
	recencyListSize = 200
	recencyTTL      = 24 * time.Hour
	uploadCountTTL  = 48 * time.Hour
)

// RecentlyUpdatedKey is the cache key of a world's most-recently-updated items.
func RecentlyUpdatedKey(worldID int32) string {
	return fmt.Sprintf("recently-updated:%d", worldID)
}

// UploadCountKey is the cache key of the upload counter for a given day.
func UploadCountKey(day time.Time) string {
	return fmt.Sprintf("upload-count:%s", day.UTC().Format("2006-01-02"))
}

// recencyEffect bumps the world's most-recently-updated item list and
// the daily upload counter. Both live only in the cache tier and are
// statistics, never correctness state.
type recencyEffect struct {
	cache cache.Cache
	clock adapter.Clock
}

// NewRecencyEffect creates the upload statistics behavior.
func NewRecencyEffect(c cache.Cache, clock adapter.Clock) Behavior {
	return &recencyEffect{cache: c, clock: clock}
}

func (e *recencyEffect) Name() string {
	return "recency-effect"
}

func (e *recencyEffect) Kind() Kind {
	return KindEffect
}

func (e *recencyEffect) ShouldExecute(params *Parameters) bool {
	return params.WorldID > 0 && params.ItemID > 0
}

func (e *recencyEffect) Execute(ctx context.Context, params *Parameters) error {
	if err := e.bumpRecentlyUpdated(ctx, params.WorldID, params.ItemID); err != nil {
		return err
	}

	if _, err := e.cache.Increment(ctx, UploadCountKey(e.clock.Now()), uploadCountTTL); err != nil {
		return fmt.Errorf("failed to bump upload counter: %w", err)
	}

	return nil
}

func (e *recencyEffect) bumpRecentlyUpdated(ctx context.Context, worldID, itemID int32) error {
	key := RecentlyUpdatedKey(worldID)

	var items []int32
	if data, err := e.cache.Get(ctx, key); err == nil {
		if err := json.Unmarshal(data, &items); err != nil {
			logger.WarnCtx(ctx, "failed to decode recently-updated list", zap.String("key", key), zap.Error(err))
			items = nil
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.WarnCtx(ctx, "failed to read recently-updated list", zap.String("key", key), zap.Error(err))
	}

	updated := make([]int32, 0, len(items)+1)
	updated = append(updated, itemID)
	for _, id := range items {
		if id == itemID {
			continue
		}
		updated = append(updated, id)
		if len(updated) == recencyListSize {
			break
		}
	}

	data, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("failed to encode recently-updated list: %w", err)
	}
	if err := e.cache.Set(ctx, key, data, recencyTTL); err != nil {
		return fmt.Errorf("failed to store recently-updated list: %w", err)
	}

	return nil
}

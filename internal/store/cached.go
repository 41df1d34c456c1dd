package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xivmarket/marketboard/internal/cache"
	"github.com/xivmarket/marketboard/internal/domain"
	"github.com/xivmarket/marketboard/internal/logger"
)

// maxCachedSales is the largest recent-sale window kept in the cache.
// Requests for more rows bypass the cache and hit the database.
const maxCachedSales = 1000

type cachedStore struct {
	inner Store
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedStore wraps a store with a read-through cache for market
// items and recent sales. Cache faults are logged and absorbed; every
// read falls back to the inner store.
func NewCachedStore(inner Store, c cache.Cache, ttl time.Duration) Store {
	return &cachedStore{inner: inner, cache: c, ttl: ttl}
}

func salesKey(worldID, itemID int32) string {
	return fmt.Sprintf("sales:%d:%d", worldID, itemID)
}

func marketItemKey(worldID, itemID int32) string {
	return fmt.Sprintf("market-item:%d:%d", worldID, itemID)
}

// InsertSales persists the batch and drops the affected sale windows
// from the cache.
func (s *cachedStore) InsertSales(ctx context.Context, sales []*domain.Sale) error {
	if err := s.inner.InsertSales(ctx, sales); err != nil {
		return err
	}

	touched := make(map[string]struct{})
	for _, sale := range sales {
		touched[salesKey(sale.WorldID, sale.ItemID)] = struct{}{}
	}
	for key := range touched {
		if err := s.cache.Delete(ctx, key); err != nil {
			logger.WarnCtx(ctx, "failed to invalidate cached sales", zap.String("key", key), zap.Error(err))
		}
	}

	return nil
}

// RetrieveSalesBySaleTime serves small windows from the cache, slicing
// a cached superset when one is present.
func (s *cachedStore) RetrieveSalesBySaleTime(ctx context.Context, worldID, itemID int32, count int) ([]*domain.Sale, error) {
	if count <= 0 || count > maxCachedSales {
		return s.inner.RetrieveSalesBySaleTime(ctx, worldID, itemID, count)
	}

	key := salesKey(worldID, itemID)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var cached []*domain.Sale
		if err := json.Unmarshal(data, &cached); err == nil {
			if len(cached) > count {
				cached = cached[:count]
			}
			return cached, nil
		}
		logger.WarnCtx(ctx, "failed to decode cached sales", zap.String("key", key), zap.Error(err))
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.WarnCtx(ctx, "failed to read cached sales", zap.String("key", key), zap.Error(err))
	}

	// Fetch the full cacheable window so any smaller request can be
	// answered from the same entry.
	full, err := s.inner.RetrieveSalesBySaleTime(ctx, worldID, itemID, maxCachedSales)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(full); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			logger.WarnCtx(ctx, "failed to cache sales", zap.String("key", key), zap.Error(err))
		}
	}

	if len(full) > count {
		full = full[:count]
	}
	return full, nil
}

func (s *cachedStore) RetrieveTradeVolume(ctx context.Context, worldID, itemID int32, from, to time.Time) (*domain.TradeVolume, error) {
	return s.inner.RetrieveTradeVolume(ctx, worldID, itemID, from, to)
}

// RetrieveMarketItem reads through the cache.
func (s *cachedStore) RetrieveMarketItem(ctx context.Context, worldID, itemID int32) (*domain.MarketItem, error) {
	key := marketItemKey(worldID, itemID)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var item domain.MarketItem
		if err := json.Unmarshal(data, &item); err == nil {
			return &item, nil
		}
		logger.WarnCtx(ctx, "failed to decode cached market item", zap.String("key", key), zap.Error(err))
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.WarnCtx(ctx, "failed to read cached market item", zap.String("key", key), zap.Error(err))
	}

	item, err := s.inner.RetrieveMarketItem(ctx, worldID, itemID)
	if err != nil || item == nil {
		return item, err
	}

	s.cacheMarketItem(ctx, item)
	return item, nil
}

// InsertMarketItem writes through to the cache.
func (s *cachedStore) InsertMarketItem(ctx context.Context, item *domain.MarketItem) error {
	if err := s.inner.InsertMarketItem(ctx, item); err != nil {
		return err
	}
	s.cacheMarketItem(ctx, item)
	return nil
}

// UpdateMarketItem writes through to the cache.
func (s *cachedStore) UpdateMarketItem(ctx context.Context, item *domain.MarketItem) error {
	if err := s.inner.UpdateMarketItem(ctx, item); err != nil {
		return err
	}
	s.cacheMarketItem(ctx, item)
	return nil
}

func (s *cachedStore) cacheMarketItem(ctx context.Context, item *domain.MarketItem) {
	key := marketItemKey(item.WorldID, item.ItemID)
	data, err := json.Marshal(item)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		logger.WarnCtx(ctx, "failed to cache market item", zap.String("key", key), zap.Error(err))
	}
}

func (s *cachedStore) RetrieveTrustedSource(ctx context.Context, apiKeySHA512 string) (*domain.TrustedSource, error) {
	return s.inner.RetrieveTrustedSource(ctx, apiKeySHA512)
}

func (s *cachedStore) InsertTrustedSource(ctx context.Context, source *domain.TrustedSource) error {
	return s.inner.InsertTrustedSource(ctx, source)
}

func (s *cachedStore) IncrementTrustedSourceUploads(ctx context.Context, apiKeySHA512 string) error {
	return s.inner.IncrementTrustedSourceUploads(ctx, apiKeySHA512)
}

func (s *cachedStore) RetrieveFlaggedUploader(ctx context.Context, uploaderIDSHA256 string) (*domain.FlaggedUploader, error) {
	return s.inner.RetrieveFlaggedUploader(ctx, uploaderIDSHA256)
}

func (s *cachedStore) InsertFlaggedUploader(ctx context.Context, flagged *domain.FlaggedUploader) error {
	return s.inner.InsertFlaggedUploader(ctx, flagged)
}

package store

import (
	"context"
	"time"

	"github.com/xivmarket/marketboard/internal/domain"
)

// Store defines the interface for durable market data operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// InsertSales persists a batch of sales in a single transaction
	InsertSales(ctx context.Context, sales []*domain.Sale) error
	// RetrieveSalesBySaleTime retrieves up to count sales for a world and item, most recent first
	RetrieveSalesBySaleTime(ctx context.Context, worldID, itemID int32, count int) ([]*domain.Sale, error)
	// RetrieveTradeVolume sums units and gil traded for a world and item within a time range
	RetrieveTradeVolume(ctx context.Context, worldID, itemID int32, from, to time.Time) (*domain.TradeVolume, error)

	// RetrieveMarketItem retrieves the last upload record for a world and item, nil if absent
	RetrieveMarketItem(ctx context.Context, worldID, itemID int32) (*domain.MarketItem, error)
	// InsertMarketItem creates or refreshes the last upload record for a world and item
	InsertMarketItem(ctx context.Context, item *domain.MarketItem) error
	// UpdateMarketItem refreshes the last upload record, creating it if absent
	UpdateMarketItem(ctx context.Context, item *domain.MarketItem) error

	// RetrieveTrustedSource retrieves a trusted source by its API key hash, nil if unknown
	RetrieveTrustedSource(ctx context.Context, apiKeySHA512 string) (*domain.TrustedSource, error)
	// InsertTrustedSource registers or updates a trusted source
	InsertTrustedSource(ctx context.Context, source *domain.TrustedSource) error
	// IncrementTrustedSourceUploads adds to a trusted source's accepted upload counter
	IncrementTrustedSourceUploads(ctx context.Context, apiKeySHA512 string) error

	// RetrieveFlaggedUploader retrieves a flagged uploader by hash, nil if not flagged
	RetrieveFlaggedUploader(ctx context.Context, uploaderIDSHA256 string) (*domain.FlaggedUploader, error)
	// InsertFlaggedUploader flags an uploader
	InsertFlaggedUploader(ctx context.Context, flagged *domain.FlaggedUploader) error
}

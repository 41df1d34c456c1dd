package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xivmarket/marketboard/internal/domain"
	"github.com/xivmarket/marketboard/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// If any of the pool settings are 0, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// InsertSales persists a batch of sales in a single transaction
func (s *pgStore) InsertSales(ctx context.Context, sales []*domain.Sale) error {
	if len(sales) == 0 {
		return nil
	}

	rows := make([]schema.Sale, 0, len(sales))
	for _, sale := range sales {
		if !sale.Valid() {
			return fmt.Errorf("invalid sale for world %d item %d", sale.WorldID, sale.ItemID)
		}

		id := sale.ID
		if id == uuid.Nil {
			id = uuid.New()
		}

		rows = append(rows, schema.Sale{
			ID:             id,
			WorldID:        sale.WorldID,
			ItemID:         sale.ItemID,
			Hq:             sale.Hq,
			PricePerUnit:   sale.PricePerUnit,
			Quantity:       *sale.Quantity,
			BuyerName:      *sale.BuyerName,
			OnMannequin:    *sale.OnMannequin,
			SaleTime:       sale.SaleTime,
			UploaderIDHash: sale.UploaderIDHash,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-uploads of the same sale are expected, skip duplicates.
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("failed to insert sales: %w", err)
	}

	return nil
}

// RetrieveSalesBySaleTime retrieves up to count sales for a world and item, most recent first
func (s *pgStore) RetrieveSalesBySaleTime(ctx context.Context, worldID, itemID int32, count int) ([]*domain.Sale, error) {
	query := s.db.WithContext(ctx).
		Where("world_id = ? AND item_id = ?", worldID, itemID).
		Order("sale_time DESC")
	if count > 0 {
		query = query.Limit(count)
	}

	var rows []schema.Sale
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve sales: %w", err)
	}

	sales := make([]*domain.Sale, len(rows))
	for i := range rows {
		sales[i] = saleFromSchema(&rows[i])
	}

	return sales, nil
}

// RetrieveTradeVolume sums units and gil traded for a world and item within a time range
func (s *pgStore) RetrieveTradeVolume(ctx context.Context, worldID, itemID int32, from, to time.Time) (*domain.TradeVolume, error) {
	var result struct {
		Units int64
		Gil   int64
	}

	err := s.db.WithContext(ctx).
		Model(&schema.Sale{}).
		Select("COALESCE(SUM(quantity), 0) AS units, COALESCE(SUM(quantity::bigint * price_per_unit), 0) AS gil").
		Where("world_id = ? AND item_id = ? AND sale_time >= ? AND sale_time <= ?", worldID, itemID, from, to).
		Scan(&result).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve trade volume: %w", err)
	}

	return &domain.TradeVolume{Units: result.Units, Gil: result.Gil}, nil
}

// RetrieveMarketItem retrieves the last upload record for a world and item
func (s *pgStore) RetrieveMarketItem(ctx context.Context, worldID, itemID int32) (*domain.MarketItem, error) {
	var row schema.MarketItem
	err := s.db.WithContext(ctx).
		Where("world_id = ? AND item_id = ?", worldID, itemID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve market item: %w", err)
	}

	return &domain.MarketItem{
		WorldID:        row.WorldID,
		ItemID:         row.ItemID,
		LastUploadTime: row.LastUploadTime,
	}, nil
}

// InsertMarketItem creates or refreshes the last upload record for a world and item
func (s *pgStore) InsertMarketItem(ctx context.Context, item *domain.MarketItem) error {
	return s.upsertMarketItem(ctx, item)
}

// UpdateMarketItem refreshes the last upload record, creating it if absent
func (s *pgStore) UpdateMarketItem(ctx context.Context, item *domain.MarketItem) error {
	return s.upsertMarketItem(ctx, item)
}

func (s *pgStore) upsertMarketItem(ctx context.Context, item *domain.MarketItem) error {
	row := schema.MarketItem{
		WorldID:        item.WorldID,
		ItemID:         item.ItemID,
		LastUploadTime: item.LastUploadTime,
		UpdatedAt:      time.Now(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "world_id"}, {Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_upload_time", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert market item: %w", err)
	}

	return nil
}

// RetrieveTrustedSource retrieves a trusted source by its API key hash
func (s *pgStore) RetrieveTrustedSource(ctx context.Context, apiKeySHA512 string) (*domain.TrustedSource, error) {
	var row schema.TrustedSource
	err := s.db.WithContext(ctx).
		Where("api_key_sha512 = ?", apiKeySHA512).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve trusted source: %w", err)
	}

	return &domain.TrustedSource{
		APIKeySHA512: row.APIKeySHA512,
		Name:         row.Name,
		CanUpload:    row.CanUpload,
		UploadCount:  row.UploadCount,
	}, nil
}

// InsertTrustedSource registers or updates a trusted source
func (s *pgStore) InsertTrustedSource(ctx context.Context, source *domain.TrustedSource) error {
	row := schema.TrustedSource{
		APIKeySHA512: source.APIKeySHA512,
		Name:         source.Name,
		CanUpload:    source.CanUpload,
		UploadCount:  source.UploadCount,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "api_key_sha512"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "can_upload"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to insert trusted source: %w", err)
	}

	return nil
}

// IncrementTrustedSourceUploads adds to a trusted source's accepted upload counter
func (s *pgStore) IncrementTrustedSourceUploads(ctx context.Context, apiKeySHA512 string) error {
	err := s.db.WithContext(ctx).
		Model(&schema.TrustedSource{}).
		Where("api_key_sha512 = ?", apiKeySHA512).
		Update("upload_count", gorm.Expr("upload_count + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to increment trusted source uploads: %w", err)
	}

	return nil
}

// RetrieveFlaggedUploader retrieves a flagged uploader by hash
func (s *pgStore) RetrieveFlaggedUploader(ctx context.Context, uploaderIDSHA256 string) (*domain.FlaggedUploader, error) {
	var row schema.FlaggedUploader
	err := s.db.WithContext(ctx).
		Where("uploader_id_sha256 = ?", uploaderIDSHA256).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve flagged uploader: %w", err)
	}

	return &domain.FlaggedUploader{UploaderIDSHA256: row.UploaderIDSHA256}, nil
}

// InsertFlaggedUploader flags an uploader
func (s *pgStore) InsertFlaggedUploader(ctx context.Context, flagged *domain.FlaggedUploader) error {
	row := schema.FlaggedUploader{UploaderIDSHA256: flagged.UploaderIDSHA256}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uploader_id_sha256"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to insert flagged uploader: %w", err)
	}

	return nil
}

func saleFromSchema(row *schema.Sale) *domain.Sale {
	quantity := row.Quantity
	buyerName := row.BuyerName
	onMannequin := row.OnMannequin

	return &domain.Sale{
		ID:             row.ID,
		WorldID:        row.WorldID,
		ItemID:         row.ItemID,
		Hq:             row.Hq,
		PricePerUnit:   row.PricePerUnit,
		Quantity:       &quantity,
		BuyerName:      &buyerName,
		OnMannequin:    &onMannequin,
		SaleTime:       row.SaleTime,
		UploaderIDHash: row.UploaderIDHash,
	}
}

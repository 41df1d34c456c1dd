package schema

import (
	"time"
)

// MarketItem represents the market_items table - the last upload
// timestamp for each (world, item) pair
type MarketItem struct {
	// WorldID is the world this entry tracks
	WorldID int32 `gorm:"column:world_id;primaryKey;autoIncrement:false"`
	// ItemID is the item this entry tracks
	ItemID int32 `gorm:"column:item_id;primaryKey;autoIncrement:false"`
	// LastUploadTime is when data for this pair was last uploaded
	LastUploadTime time.Time `gorm:"column:last_upload_time;not null;type:timestamptz"`
	// UpdatedAt is the timestamp when this row was last written
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the MarketItem model
func (MarketItem) TableName() string {
	return "market_items"
}

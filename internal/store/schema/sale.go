package schema

import (
	"time"

	"github.com/google/uuid"
)

// Sale represents the sales table - one completed market-board transaction
type Sale struct {
	// ID is the sale primary key
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// WorldID is the world the sale happened on
	WorldID int32 `gorm:"column:world_id;not null;index:idx_sales_world_item_time,priority:1"`
	// ItemID is the item that was sold
	ItemID int32 `gorm:"column:item_id;not null;index:idx_sales_world_item_time,priority:2"`
	// Hq reports whether the sold item was high quality
	Hq bool `gorm:"column:hq;not null"`
	// PricePerUnit is the unit price in gil
	PricePerUnit int32 `gorm:"column:price_per_unit;not null"`
	// Quantity is the number of units sold
	Quantity int32 `gorm:"column:quantity;not null"`
	// BuyerName is the character name of the buyer
	BuyerName string `gorm:"column:buyer_name;not null;type:text"`
	// OnMannequin reports whether the sale came from a mannequin
	OnMannequin bool `gorm:"column:on_mannequin;not null"`
	// SaleTime is when the sale happened in game
	SaleTime time.Time `gorm:"column:sale_time;not null;type:timestamptz;index:idx_sales_world_item_time,priority:3,sort:desc"`
	// UploaderIDHash is the SHA-256 hash of the uploader identifier
	UploaderIDHash string `gorm:"column:uploader_id_hash;not null;type:text"`
	// CreatedAt is the timestamp when this row was inserted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

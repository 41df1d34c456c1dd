package schema

import (
	"time"
)

// TrustedSource represents the trusted_sources table - client
// applications allowed to upload market data
type TrustedSource struct {
	// APIKeySHA512 is the SHA-512 hash of the source's API key
	APIKeySHA512 string `gorm:"column:api_key_sha512;primaryKey;type:text"`
	// Name is the human-readable name of the source application
	Name string `gorm:"column:name;not null;type:text"`
	// CanUpload reports whether the source may submit uploads
	CanUpload bool `gorm:"column:can_upload;not null;default:true"`
	// UploadCount is the number of uploads accepted from this source
	UploadCount int64 `gorm:"column:upload_count;not null;default:0"`
	// CreatedAt is the timestamp when this source was registered
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the TrustedSource model
func (TrustedSource) TableName() string {
	return "trusted_sources"
}

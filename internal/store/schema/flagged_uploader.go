package schema

import (
	"time"
)

// FlaggedUploader represents the flagged_uploaders table - uploaders
// whose submissions are silently discarded
type FlaggedUploader struct {
	// UploaderIDSHA256 is the SHA-256 hash of the flagged uploader identifier
	UploaderIDSHA256 string `gorm:"column:uploader_id_sha256;primaryKey;type:text"`
	// CreatedAt is the timestamp when the uploader was flagged
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the FlaggedUploader model
func (FlaggedUploader) TableName() string {
	return "flagged_uploaders"
}

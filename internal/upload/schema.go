package upload

import (
	"time"
)

// unixTime converts an upload timestamp in Unix seconds to UTC.
func unixTime(seconds int64) time.Time {
	return time.Unix(seconds, 0).UTC()
}

// SaleUpload is one sale record inside an upload submission.
type SaleUpload struct {
	Hq           bool    `json:"hq"`
	PricePerUnit int32   `json:"pricePerUnit"`
	Quantity     *int32  `json:"quantity"`
	BuyerName    *string `json:"buyerName"`
	OnMannequin  *bool   `json:"onMannequin"`
	// TimestampSeconds is the sale time in Unix seconds.
	TimestampSeconds int64 `json:"timestamp"`
}

// ListingUpload is one active listing inside an upload submission.
type ListingUpload struct {
	ListingID    string `json:"listingID"`
	Hq           bool   `json:"hq"`
	PricePerUnit int32  `json:"pricePerUnit"`
	Quantity     int32  `json:"quantity"`
	RetainerName string `json:"retainerName"`
}

// Parameters is the structured body of an upload submission. Fields
// are pointers where absence and zero must be distinguished.
type Parameters struct {
	WorldID    int32            `json:"worldID"`
	ItemID     int32            `json:"itemID"`
	UploaderID string           `json:"uploaderID"`
	Sales      []*SaleUpload    `json:"entries,omitempty"`
	Listings   []*ListingUpload `json:"listings,omitempty"`

	// UploaderIDHash is populated by the pipeline after the raw
	// uploader ID has been hashed. The raw ID is never persisted.
	UploaderIDHash string `json:"-"`
}

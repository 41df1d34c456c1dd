package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sale represents a completed market-board transaction. Sales are
// immutable once written; Quantity, BuyerName and OnMannequin must be
// non-nil at write time (absence is a caller error, never a stored state).
type Sale struct {
	ID             uuid.UUID `json:"id"`
	WorldID        int32     `json:"worldID"`
	ItemID         int32     `json:"itemID"`
	Hq             bool      `json:"hq"`
	PricePerUnit   int32     `json:"pricePerUnit"`
	Quantity       *int32    `json:"quantity"`
	BuyerName      *string   `json:"buyerName"`
	OnMannequin    *bool     `json:"onMannequin"`
	UploaderIDHash string    `json:"-"`
	SaleTime       time.Time `json:"saleTime"`
}

// Valid reports whether the sale carries every field the sale store
// requires for insertion.
func (s *Sale) Valid() bool {
	if s.Quantity == nil || s.BuyerName == nil || s.OnMannequin == nil {
		return false
	}
	if *s.Quantity <= 0 || s.PricePerUnit <= 0 {
		return false
	}
	return s.WorldID > 0 && s.ItemID > 0 && !s.SaleTime.IsZero()
}

// MarketItem tracks the last upload time for one (world, item) pair.
// One row per pair; last-write-wins on LastUploadTime.
type MarketItem struct {
	WorldID        int32     `json:"worldID"`
	ItemID         int32     `json:"itemID"`
	LastUploadTime time.Time `json:"lastUploadTime"`
}

// History is the derived read-only aggregate of a MarketItem and a
// bounded window of its sales. It is recomputed per query, never stored.
type History struct {
	WorldID                        int32   `json:"worldID"`
	ItemID                         int32   `json:"itemID"`
	LastUploadTimeUnixMilliseconds int64   `json:"lastUploadTime"`
	Sales                          []*Sale `json:"entries"`
}

// TradeVolume holds the summed quantity and summed gil over a closed
// sale-time range.
type TradeVolume struct {
	Units int64 `json:"units"`
	Gil   int64 `json:"gil"`
}

// TrustedSource identifies an upload application by the SHA-512 of its
// API key. Immutable after provisioning.
type TrustedSource struct {
	APIKeySHA512 string `json:"-"`
	Name         string `json:"name"`
	CanUpload    bool   `json:"canUpload"`
	UploadCount  int64  `json:"uploadCount"`
}

// FlaggedUploader marks an uploader (by SHA-256 of its ID) whose
// submissions are silently dropped. Presence alone signals suppression.
type FlaggedUploader struct {
	UploaderIDSHA256 string `json:"-"`
}

// Listing is an active sale offer. Listings are only persisted as the
// latest snapshot per (world, item) and referenced by dispatch events.
type Listing struct {
	ListingID    string `json:"listingID"`
	Hq           bool   `json:"hq"`
	PricePerUnit int32  `json:"pricePerUnit"`
	Quantity     int32  `json:"quantity"`
	RetainerName string `json:"retainerName"`
}

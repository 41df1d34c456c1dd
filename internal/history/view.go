package history

// SaleEntry is one sale row of a history view. World attribution is
// only present when the view spans more than one world.
type SaleEntry struct {
	Hq           bool   `json:"hq"`
	PricePerUnit int32  `json:"pricePerUnit"`
	Quantity     int32  `json:"quantity"`
	BuyerName    string `json:"buyerName"`
	OnMannequin  bool   `json:"onMannequin"`
	// Timestamp is the sale time in Unix seconds.
	Timestamp int64  `json:"timestamp"`
	WorldID   int32  `json:"worldID,omitempty"`
	WorldName string `json:"worldName,omitempty"`
}

// View is the merged, ranked history of one item over a query scope.
// Derived per query, never stored.
type View struct {
	ItemID     int32  `json:"itemID"`
	WorldID    int32  `json:"worldID,omitempty"`
	WorldName  string `json:"worldName,omitempty"`
	DcName     string `json:"dcName,omitempty"`
	RegionName string `json:"regionName,omitempty"`

	// LastUploadTime is the newest upload time across the merged
	// worlds, in Unix milliseconds.
	LastUploadTime int64       `json:"lastUploadTime"`
	Entries        []SaleEntry `json:"entries"`

	StackSizeHistogram   map[int32]int `json:"stackSizeHistogram"`
	StackSizeHistogramNq map[int32]int `json:"stackSizeHistogramNQ"`
	StackSizeHistogramHq map[int32]int `json:"stackSizeHistogramHQ"`

	// Sale velocities are regular sales per day extrapolated from the
	// statistics window.
	SaleVelocity   float64 `json:"regularSaleVelocity"`
	SaleVelocityNq float64 `json:"nqSaleVelocity"`
	SaleVelocityHq float64 `json:"hqSaleVelocity"`
}

package domain

// EventKind discriminates the UploadEvent variants.
type EventKind string

const (
	EventItemUpdate     EventKind = "item/update"
	EventListingsAdd    EventKind = "listings/add"
	EventListingsRemove EventKind = "listings/remove"
	EventSalesAdd       EventKind = "sales/add"
)

// IsValidEventKind checks if an event kind is one of the known variants.
func IsValidEventKind(kind EventKind) bool {
	switch kind {
	case EventItemUpdate, EventListingsAdd, EventListingsRemove, EventSalesAdd:
		return true
	}
	return false
}

// UploadEvent is the normalized committed-change event published to the
// event bus by the ingestion pipeline's effect behaviors. It exists only
// on the bus; dispatch relays it to subscribed clients as-is.
type UploadEvent struct {
	Kind     EventKind  `json:"event"`
	WorldID  int32      `json:"world"`
	ItemID   int32      `json:"item"`
	Sales    []*Sale    `json:"sales,omitempty"`
	Listings []*Listing `json:"listings,omitempty"`
}

// Valid reports whether the event can be relayed to subscribers.
func (e *UploadEvent) Valid() bool {
	if !IsValidEventKind(e.Kind) {
		return false
	}
	if e.WorldID <= 0 || e.ItemID <= 0 {
		return false
	}
	switch e.Kind {
	case EventSalesAdd:
		return len(e.Sales) > 0
	case EventListingsAdd, EventListingsRemove:
		return len(e.Listings) > 0
	}
	return true
}

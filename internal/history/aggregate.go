package history

import (
	"sort"

	"github.com/xivmarket/marketboard/internal/domain"
)

// accumulator is the online fold over per-world histories. It tracks
// the best upload timestamp seen so far and the sales collected so
// far, so merging can start before every world has been retrieved.
type accumulator struct {
	lastUploadTime int64
	entries        []SaleEntry

	now int64
	// entriesWindow is the lookback in seconds; negative means unbounded.
	entriesWindow int64
	annotateWorld bool
}

func newAccumulator(nowUnix int64, entriesWindowSeconds int64, annotateWorld bool) *accumulator {
	return &accumulator{
		now:           nowUnix,
		entriesWindow: entriesWindowSeconds,
		annotateWorld: annotateWorld,
	}
}

// add folds one world's history into the accumulator.
func (a *accumulator) add(h *domain.History, worldName string) {
	if h == nil {
		return
	}

	if h.LastUploadTimeUnixMilliseconds > a.lastUploadTime {
		a.lastUploadTime = h.LastUploadTimeUnixMilliseconds
	}

	for _, sale := range h.Sales {
		if sale.Quantity == nil || *sale.Quantity <= 0 {
			continue
		}
		saleTime := sale.SaleTime.Unix()
		if a.entriesWindow >= 0 && a.now-saleTime >= a.entriesWindow {
			continue
		}

		entry := SaleEntry{
			Hq:           sale.Hq,
			PricePerUnit: sale.PricePerUnit,
			Quantity:     *sale.Quantity,
			Timestamp:    saleTime,
		}
		if sale.BuyerName != nil {
			entry.BuyerName = *sale.BuyerName
		}
		if sale.OnMannequin != nil {
			entry.OnMannequin = *sale.OnMannequin
		}
		if a.annotateWorld {
			entry.WorldID = h.WorldID
			entry.WorldName = worldName
		}

		a.entries = append(a.entries, entry)
	}
}

// finish ranks the collected sales newest first and truncates to
// maxEntries when positive.
func (a *accumulator) finish(maxEntries int) []SaleEntry {
	sort.SliceStable(a.entries, func(i, j int) bool {
		return a.entries[i].Timestamp > a.entries[j].Timestamp
	})
	if maxEntries > 0 && len(a.entries) > maxEntries {
		a.entries = a.entries[:maxEntries]
	}
	return a.entries
}

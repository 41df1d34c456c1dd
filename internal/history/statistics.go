package history

import (
	"time"
)

const millisecondsPerDay = 86400000.0

// stackSizeHistogram counts sales by quantity.
func stackSizeHistogram(entries []SaleEntry) map[int32]int {
	histogram := make(map[int32]int)
	for _, entry := range entries {
		histogram[entry.Quantity]++
	}
	return histogram
}

// saleVelocityPerDay extrapolates sales per day from the sales that
// fall inside the statistics window. A non-positive window yields zero.
func saleVelocityPerDay(entries []SaleEntry, now time.Time, statsWindow time.Duration) float64 {
	if statsWindow <= 0 {
		return 0
	}

	nowMs := now.UnixMilli()
	windowMs := statsWindow.Milliseconds()

	count := 0
	for _, entry := range entries {
		if nowMs-entry.Timestamp*1000 < windowMs {
			count++
		}
	}

	return float64(count) / (float64(windowMs) / millisecondsPerDay)
}

// partitionByQuality splits entries into normal and high quality.
func partitionByQuality(entries []SaleEntry) (nq, hq []SaleEntry) {
	for _, entry := range entries {
		if entry.Hq {
			hq = append(hq, entry)
		} else {
			nq = append(nq, entry)
		}
	}
	return nq, hq
}

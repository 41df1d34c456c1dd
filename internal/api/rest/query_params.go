package rest

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// defaultStatsWindow is the lookback for sale velocity when the
	// caller does not pass statsWithin, in milliseconds (7 days).
	defaultStatsWindowMs = 7 * 24 * 60 * 60 * 1000
)

// HistoryQuery holds the parsed query parameters of a history request.
type HistoryQuery struct {
	// Entries caps the returned sale list.
	Entries int
	// StatsWindow is the velocity lookback.
	StatsWindow time.Duration
	// EntriesWindowSeconds filters which sales are considered at all;
	// negative means unbounded.
	EntriesWindowSeconds int64
}

// ParseHistoryQuery parses entries, statsWithin (milliseconds) and
// entriesWithin (seconds) query parameters.
func ParseHistoryQuery(c *gin.Context) (*HistoryQuery, error) {
	q := &HistoryQuery{
		StatsWindow:          defaultStatsWindowMs * time.Millisecond,
		EntriesWindowSeconds: -1,
	}

	if raw := c.Query("entries"); raw != "" {
		entries, err := strconv.Atoi(raw)
		if err != nil || entries < 0 {
			return nil, fmt.Errorf("invalid entries parameter: %q", raw)
		}
		q.Entries = entries
	}

	if raw := c.Query("statsWithin"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("invalid statsWithin parameter: %q", raw)
		}
		q.StatsWindow = time.Duration(ms) * time.Millisecond
	}

	if raw := c.Query("entriesWithin"); raw != "" {
		seconds, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid entriesWithin parameter: %q", raw)
		}
		q.EntriesWindowSeconds = seconds
	}

	return q, nil
}

// parseItemID parses the itemId path parameter.
func parseItemID(c *gin.Context) (int32, error) {
	raw := c.Param("itemId")
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item ID: %q", raw)
	}
	return int32(id), nil
}

// parseUnixMsQuery parses a Unix-millisecond query parameter with a fallback.
func parseUnixMsQuery(c *gin.Context, name string, fallback time.Time) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms < 0 {
		return time.Time{}, fmt.Errorf("invalid %s parameter: %q", name, raw)
	}
	return time.UnixMilli(ms).UTC(), nil
}

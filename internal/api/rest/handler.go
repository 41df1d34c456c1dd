package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xivmarket/marketboard/internal/adapter"
	"github.com/xivmarket/marketboard/internal/cache"
	"github.com/xivmarket/marketboard/internal/domain"
	"github.com/xivmarket/marketboard/internal/gamedata"
	"github.com/xivmarket/marketboard/internal/history"
	"github.com/xivmarket/marketboard/internal/upload"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// Upload submits market data on behalf of a trusted source
	// POST /upload/:apiKey
	Upload(c *gin.Context)

	// GetHistory returns the merged sale history for a scope and item
	// GET /api/v1/history/:worldDcRegion/:itemId?entries=<n>&statsWithin=<ms>&entriesWithin=<s>
	GetHistory(c *gin.Context)

	// GetTradeVolume returns summed units and gil over a time range
	// GET /api/v1/extra/stats/trade-volume?world=<scope>&item=<id>&from=<unixMs>&to=<unixMs>
	GetTradeVolume(c *gin.Context)

	// GetMostRecentlyUpdated returns a world's most recently updated items
	// GET /api/v1/extra/stats/most-recently-updated?world=<scope>
	GetMostRecentlyUpdated(c *gin.Context)

	// GetUploadCounts returns today's accepted upload count
	// GET /api/v1/extra/stats/upload-history
	GetUploadCounts(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	pipeline *upload.Pipeline
	engine   *history.Engine
	gameData gamedata.Provider
	cache    cache.Cache
	clock    adapter.Clock
}

// NewHandler creates a new REST API handler
func NewHandler(pipeline *upload.Pipeline, engine *history.Engine, gameData gamedata.Provider, c cache.Cache, clock adapter.Clock) Handler {
	return &handler{
		pipeline: pipeline,
		engine:   engine,
		gameData: gameData,
		cache:    c,
		clock:    clock,
	}
}

// Upload submits market data on behalf of a trusted source
func (h *handler) Upload(c *gin.Context) {
	apiKey := c.Param("apiKey")
	if apiKey == "" {
		respondForbidden(c, "API key is required")
		return
	}

	var params upload.Parameters
	if err := c.ShouldBindJSON(&params); err != nil {
		respondBadRequest(c, "Invalid upload body", err.Error())
		return
	}

	err := h.pipeline.Submit(c.Request.Context(), apiKey, &params)
	switch {
	case err == nil:
		// Success also covers silently suppressed uploads.
		c.String(http.StatusOK, "Success")
	case errors.Is(err, domain.ErrForbidden):
		respondForbidden(c, "Upload not authorized")
	case errors.Is(err, domain.ErrInvalidUploaderID):
		respondBadRequest(c, "Uploader ID is required")
	default:
		var validation *domain.ValidationError
		if errors.As(err, &validation) {
			respondValidationError(c, validation.Message)
			return
		}
		respondInternalError(c, err, "Failed to process upload",
			zap.Int32("world_id", params.WorldID),
			zap.Int32("item_id", params.ItemID))
	}
}

// GetHistory returns the merged sale history for a scope and item
func (h *handler) GetHistory(c *gin.Context) {
	scope, err := gamedata.ResolveScope(h.gameData, c.Param("worldDcRegion"))
	if err != nil {
		respondNotFound(c, "Unknown world, data center or region")
		return
	}

	itemID, err := parseItemID(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if !h.gameData.IsMarketable(itemID) {
		respondNotFound(c, "Item is not marketable")
		return
	}

	query, err := ParseHistoryQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	view, err := h.engine.GetHistoryView(c.Request.Context(), scope, itemID,
		query.Entries, query.StatsWindow, query.EntriesWindowSeconds)
	if err != nil {
		respondInternalError(c, err, "Failed to build history view",
			zap.Int32("item_id", itemID))
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetTradeVolume returns summed units and gil over a time range
func (h *handler) GetTradeVolume(c *gin.Context) {
	scope, err := gamedata.ResolveScope(h.gameData, c.Query("world"))
	if err != nil {
		respondNotFound(c, "Unknown world, data center or region")
		return
	}

	itemRaw := c.Query("item")
	itemID64, err := strconv.ParseInt(itemRaw, 10, 32)
	if err != nil || itemID64 <= 0 {
		respondBadRequest(c, "Invalid item parameter")
		return
	}
	itemID := int32(itemID64)

	now := h.clock.Now()
	from, err := parseUnixMsQuery(c, "from", now.AddDate(0, 0, -7))
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	to, err := parseUnixMsQuery(c, "to", now)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	volume, err := h.engine.TradeVolume(c.Request.Context(), scope, itemID, from, to)
	if err != nil {
		respondInternalError(c, err, "Failed to compute trade volume",
			zap.Int32("item_id", itemID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"itemID": itemID,
		"from":   from.UnixMilli(),
		"to":     to.UnixMilli(),
		"units":  volume.Units,
		"gil":    volume.Gil,
	})
}

// GetMostRecentlyUpdated returns a world's most recently updated items
func (h *handler) GetMostRecentlyUpdated(c *gin.Context) {
	scope, err := gamedata.ResolveScope(h.gameData, c.Query("world"))
	if err != nil || !scope.IsWorld() {
		respondNotFound(c, "Unknown world")
		return
	}

	var items []int32
	data, err := h.cache.Get(c.Request.Context(), upload.RecentlyUpdatedKey(scope.WorldID))
	if err == nil {
		if err := json.Unmarshal(data, &items); err != nil {
			respondInternalError(c, err, "Failed to decode recently-updated list")
			return
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		respondInternalError(c, err, "Failed to read recently-updated list")
		return
	}

	if items == nil {
		items = []int32{}
	}
	c.JSON(http.StatusOK, gin.H{
		"worldID":   scope.WorldID,
		"worldName": scope.WorldName,
		"items":     items,
	})
}

// GetUploadCounts returns today's accepted upload count
func (h *handler) GetUploadCounts(c *gin.Context) {
	var count int64
	data, err := h.cache.Get(c.Request.Context(), upload.UploadCountKey(h.clock.Now()))
	if err == nil {
		count, err = strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			respondInternalError(c, err, "Failed to decode upload counter")
			return
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		respondInternalError(c, err, "Failed to read upload counter")
		return
	}

	c.JSON(http.StatusOK, gin.H{"today": count})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

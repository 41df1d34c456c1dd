package gamedata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// World is one independent game server instance with its own market.
type World struct {
	ID   int32
	Name string
}

// DataCenter groups worlds under a named region.
type DataCenter struct {
	Name     string
	Region   string
	WorldIDs []int32
}

// Provider resolves world IDs and names, data-center and region
// membership, and item marketability. It is loaded once at startup and
// read-only afterwards, so no locking is needed.
//
//go:generate mockgen -source=provider.go -destination=../mocks/gamedata.go -package=mocks -mock_names=Provider=MockGameDataProvider
type Provider interface {
	// AvailableWorlds maps world IDs to world names
	AvailableWorlds() map[int32]string
	// AvailableWorldsReversed maps world names to world IDs
	AvailableWorldsReversed() map[string]int32
	// IsWorld reports whether a world ID is in the catalog
	IsWorld(worldID int32) bool
	// IsMarketable reports whether an item is eligible for player trade
	IsMarketable(itemID int32) bool
	// StackSize returns the maximum stack size for a marketable item
	StackSize(itemID int32) (int32, bool)
	// DataCenters lists all data centers with their member worlds
	DataCenters() []DataCenter
}

// Config holds the CSV file locations for the reference catalog
type Config struct {
	WorldsPath      string
	ItemsPath       string
	DataCentersPath string
}

// regionNames maps the numeric region column to region names.
var regionNames = map[int]string{
	1: "Japan",
	2: "North-America",
	3: "Europe",
	4: "Oceania",
}

type csvProvider struct {
	worlds         map[int32]string
	worldsReversed map[string]int32
	stackSizes     map[int32]int32
	dataCenters    []DataCenter
}

// NewCSVProvider loads the reference catalog from CSV files in the
// ffxiv-datamining layout (World.csv, Item.csv, WorldDCGroupType.csv).
func NewCSVProvider(cfg Config) (Provider, error) {
	worlds, err := loadWorlds(cfg.WorldsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load worlds: %w", err)
	}

	stackSizes, err := loadMarketableItems(cfg.ItemsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load marketable items: %w", err)
	}

	dataCenters, err := loadDataCenters(cfg.DataCentersPath, worlds)
	if err != nil {
		return nil, fmt.Errorf("failed to load data centers: %w", err)
	}

	p := &csvProvider{
		worlds:         make(map[int32]string, len(worlds)),
		worldsReversed: make(map[string]int32, len(worlds)),
		stackSizes:     stackSizes,
		dataCenters:    dataCenters,
	}
	for _, w := range worlds {
		p.worlds[w.id] = w.name
		p.worldsReversed[strings.ToLower(w.name)] = w.id
	}

	return p, nil
}

func (p *csvProvider) AvailableWorlds() map[int32]string {
	return p.worlds
}

func (p *csvProvider) AvailableWorldsReversed() map[string]int32 {
	return p.worldsReversed
}

func (p *csvProvider) IsWorld(worldID int32) bool {
	_, ok := p.worlds[worldID]
	return ok
}

func (p *csvProvider) IsMarketable(itemID int32) bool {
	_, ok := p.stackSizes[itemID]
	return ok
}

func (p *csvProvider) StackSize(itemID int32) (int32, bool) {
	size, ok := p.stackSizes[itemID]
	return size, ok
}

func (p *csvProvider) DataCenters() []DataCenter {
	return p.dataCenters
}

// csvWorld is one row of World.csv
type csvWorld struct {
	id         int32
	name       string
	dataCenter int
	isPublic   bool
}

// valid filters out non-public worlds, worlds with no data center, and
// the retired test world 25.
func (w csvWorld) valid() bool {
	return w.dataCenter > 0 && w.isPublic && w.id != 25
}

func loadWorlds(path string) ([]csvWorld, error) {
	rows, err := readCSV(path, 3)
	if err != nil {
		return nil, err
	}

	var worlds []csvWorld
	for _, row := range rows {
		if len(row) < 7 {
			continue
		}
		id, err := strconv.ParseInt(row[0], 10, 32)
		if err != nil {
			continue
		}
		dc, _ := strconv.Atoi(row[5])
		w := csvWorld{
			id:         int32(id),
			name:       row[2],
			dataCenter: dc,
			isPublic:   strings.EqualFold(row[6], "true"),
		}
		if w.valid() {
			worlds = append(worlds, w)
		}
	}

	return worlds, nil
}

// loadMarketableItems returns stack sizes keyed by item ID for every
// item with a search category (i.e. every marketable item).
func loadMarketableItems(path string) (map[int32]int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	// Row 1 is the column-index row, row 2 holds column names.
	if _, err := r.Read(); err != nil {
		return nil, err
	}
	header, err := r.Read()
	if err != nil {
		return nil, err
	}

	searchCategoryCol := -1
	stackSizeCol := -1
	for i, name := range header {
		switch name {
		case "ItemSearchCategory":
			searchCategoryCol = i
		case "StackSize":
			stackSizeCol = i
		}
	}
	if searchCategoryCol < 0 || stackSizeCol < 0 {
		return nil, fmt.Errorf("item csv %q is missing required columns", path)
	}

	// Skip the type row.
	if _, err := r.Read(); err != nil && err != io.EOF {
		return nil, err
	}

	stackSizes := make(map[int32]int32)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) <= searchCategoryCol || len(row) <= stackSizeCol {
			continue
		}
		id, err := strconv.ParseInt(row[0], 10, 32)
		if err != nil {
			continue
		}
		category, _ := strconv.Atoi(row[searchCategoryCol])
		if category < 1 {
			continue
		}
		size, _ := strconv.ParseInt(row[stackSizeCol], 10, 32)
		stackSizes[int32(id)] = int32(size)
	}

	return stackSizes, nil
}

func loadDataCenters(path string, worlds []csvWorld) ([]DataCenter, error) {
	rows, err := readCSV(path, 3)
	if err != nil {
		return nil, err
	}

	var dataCenters []DataCenter
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		id, err := strconv.Atoi(row[0])
		if err != nil || id <= 0 || id >= 99 {
			continue
		}
		region, _ := strconv.Atoi(row[2])

		var worldIDs []int32
		for _, w := range worlds {
			if w.dataCenter == id {
				worldIDs = append(worldIDs, w.id)
			}
		}
		if len(worldIDs) == 0 {
			continue
		}

		dataCenters = append(dataCenters, DataCenter{
			Name:     row[1],
			Region:   regionNames[region],
			WorldIDs: worldIDs,
		})
	}

	return dataCenters, nil
}

// readCSV reads all rows of a CSV file after skipping header rows.
func readCSV(path string, skip int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	for i := 0; i < skip; i++ {
		if _, err := r.Read(); err != nil {
			if err == io.EOF {
				return nil, nil
			}
			return nil, err
		}
	}

	return r.ReadAll()
}

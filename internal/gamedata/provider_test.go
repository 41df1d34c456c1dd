package gamedata_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xivmarket/marketboard/internal/gamedata"
)

const worldsCSV = `key,0,1,2,3,4,5
#,Name,Name,DataCenter,DataCenter,UserType,IsPublic
int32,str,str,byte,byte,byte,bool
25,"test","Test",0,0,4,True
74,"coeurl","Coeurl",0,0,4,True
75,"malboro","Malboro",0,0,4,True
80,"cactuar","Cactuar",0,0,5,True
90,"closed","Closed",0,0,4,False
`

const itemsCSV = `key,0,9,20
#,Singular,ItemSearchCategory,StackSize
int32,str,int32,uint32
5057,"copper ore",47,999
5058,"untradable thing",0,1
5059,"iron ore",47,999
`

const dataCentersCSV = `key,0,1
#,Name,Region
int32,str,byte
0,"",0
4,"Crystal",2
5,"Aether",2
6,"Light",3
`

func writeTestCatalog(t *testing.T) gamedata.Config {
	dir := t.TempDir()

	worldsPath := filepath.Join(dir, "World.csv")
	itemsPath := filepath.Join(dir, "Item.csv")
	dcPath := filepath.Join(dir, "WorldDCGroupType.csv")

	require.NoError(t, os.WriteFile(worldsPath, []byte(worldsCSV), 0o600))
	require.NoError(t, os.WriteFile(itemsPath, []byte(itemsCSV), 0o600))
	require.NoError(t, os.WriteFile(dcPath, []byte(dataCentersCSV), 0o600))

	return gamedata.Config{
		WorldsPath:      worldsPath,
		ItemsPath:       itemsPath,
		DataCentersPath: dcPath,
	}
}

func TestCSVProvider_Worlds(t *testing.T) {
	p, err := gamedata.NewCSVProvider(writeTestCatalog(t))
	require.NoError(t, err)

	worlds := p.AvailableWorlds()
	assert.Equal(t, "Coeurl", worlds[74])
	assert.Equal(t, "Cactuar", worlds[80])

	// Non-public worlds and the retired test world stay out
	assert.NotContains(t, worlds, int32(90))
	assert.NotContains(t, worlds, int32(25))

	assert.True(t, p.IsWorld(74))
	assert.False(t, p.IsWorld(90))
	assert.False(t, p.IsWorld(9999))

	// Reverse lookup is lowercased
	assert.Equal(t, int32(74), p.AvailableWorldsReversed()["coeurl"])
}

func TestCSVProvider_MarketableItems(t *testing.T) {
	p, err := gamedata.NewCSVProvider(writeTestCatalog(t))
	require.NoError(t, err)

	assert.True(t, p.IsMarketable(5057))
	// No search category means not marketable
	assert.False(t, p.IsMarketable(5058))
	assert.False(t, p.IsMarketable(1))

	size, ok := p.StackSize(5057)
	require.True(t, ok)
	assert.Equal(t, int32(999), size)

	_, ok = p.StackSize(5058)
	assert.False(t, ok)
}

func TestCSVProvider_DataCenters(t *testing.T) {
	p, err := gamedata.NewCSVProvider(writeTestCatalog(t))
	require.NoError(t, err)

	dcs := p.DataCenters()
	require.Len(t, dcs, 2) // Light has no member worlds and is dropped

	byName := make(map[string]gamedata.DataCenter)
	for _, dc := range dcs {
		byName[dc.Name] = dc
	}

	crystal, ok := byName["Crystal"]
	require.True(t, ok)
	assert.Equal(t, "North-America", crystal.Region)
	assert.ElementsMatch(t, []int32{74, 75}, crystal.WorldIDs)

	aether, ok := byName["Aether"]
	require.True(t, ok)
	assert.ElementsMatch(t, []int32{80}, aether.WorldIDs)
}

func TestCSVProvider_MissingFile(t *testing.T) {
	cfg := writeTestCatalog(t)
	cfg.WorldsPath = filepath.Join(t.TempDir(), "missing.csv")

	_, err := gamedata.NewCSVProvider(cfg)
	assert.Error(t, err)
}

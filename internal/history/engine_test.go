package history_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xivmarket/marketboard/internal/domain"
	"github.com/xivmarket/marketboard/internal/gamedata"
	"github.com/xivmarket/marketboard/internal/history"
	"github.com/xivmarket/marketboard/internal/logger"
	"github.com/xivmarket/marketboard/internal/mocks"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testEngineMocks contains all the mocks needed for testing the engine
type testEngineMocks struct {
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	gameData *mocks.MockGameDataProvider
	clock    *mocks.MockClock
	engine   *history.Engine
}

func setupTestEngine(t *testing.T) *testEngineMocks {
	ctrl := gomock.NewController(t)

	tm := &testEngineMocks{
		ctrl:     ctrl,
		store:    mocks.NewMockStore(ctrl),
		gameData: mocks.NewMockGameDataProvider(ctrl),
		clock:    mocks.NewMockClock(ctrl),
	}
	tm.engine = history.NewEngine(tm.store, tm.gameData, tm.clock)

	return tm
}

func tearDownTestEngine(tm *testEngineMocks) {
	tm.ctrl.Finish()
}

func sale(worldID int32, hq bool, quantity int32, saleTime int64) *domain.Sale {
	buyer := "Buyer"
	mannequin := false
	return &domain.Sale{
		WorldID:      worldID,
		ItemID:       5057,
		Hq:           hq,
		PricePerUnit: 100,
		Quantity:     &quantity,
		BuyerName:    &buyer,
		OnMannequin:  &mannequin,
		SaleTime:     time.Unix(saleTime, 0).UTC(),
	}
}

func worldScope(worldID int32, name string) *gamedata.Scope {
	return &gamedata.Scope{
		Kind:      gamedata.ScopeWorld,
		WorldID:   worldID,
		WorldName: name,
		WorldIDs:  []int32{worldID},
	}
}

func TestEngine_History_AbsentMarketItem(t *testing.T) {
	tm := setupTestEngine(t)
	defer tearDownTestEngine(tm)

	tm.store.EXPECT().
		RetrieveMarketItem(gomock.Any(), int32(74), int32(5057)).
		Return(nil, nil)

	h, err := tm.engine.History(context.Background(), 74, 5057, 10)

	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestEngine_GetHistoryView_RoundTrip(t *testing.T) {
	tm := setupTestEngine(t)
	defer tearDownTestEngine(tm)

	now := time.Unix(10000, 0).UTC()
	lastUpload := time.Unix(9000, 0).UTC()

	tm.clock.EXPECT().Now().Return(now)
	tm.gameData.EXPECT().AvailableWorlds().Return(map[int32]string{74: "Coeurl"}).AnyTimes()
	tm.store.EXPECT().
		RetrieveMarketItem(gomock.Any(), int32(74), int32(5057)).
		Return(&domain.MarketItem{WorldID: 74, ItemID: 5057, LastUploadTime: lastUpload}, nil)
	tm.store.EXPECT().
		RetrieveSalesBySaleTime(gomock.Any(), int32(74), int32(5057), 10).
		Return([]*domain.Sale{
			sale(74, true, 3, 200),
			sale(74, false, 5, 100),
		}, nil)

	view, err := tm.engine.GetHistoryView(context.Background(), worldScope(74, "Coeurl"), 5057, 10, 7*24*time.Hour, -1)

	require.NoError(t, err)
	assert.Equal(t, int32(5057), view.ItemID)
	assert.Equal(t, int32(74), view.WorldID)
	assert.Equal(t, "Coeurl", view.WorldName)
	assert.Equal(t, lastUpload.UnixMilli(), view.LastUploadTime)

	require.Len(t, view.Entries, 2)
	// Newest first
	assert.Equal(t, int64(200), view.Entries[0].Timestamp)
	assert.Equal(t, int64(100), view.Entries[1].Timestamp)
	// Single-world views carry no world attribution
	assert.Zero(t, view.Entries[0].WorldID)
	assert.Empty(t, view.Entries[0].WorldName)

	assert.Equal(t, map[int32]int{3: 1, 5: 1}, view.StackSizeHistogram)
	assert.Equal(t, map[int32]int{5: 1}, view.StackSizeHistogramNq)
	assert.Equal(t, map[int32]int{3: 1}, view.StackSizeHistogramHq)
}

func TestEngine_GetHistoryView_EntriesWindow(t *testing.T) {
	tm := setupTestEngine(t)
	defer tearDownTestEngine(tm)

	now := time.Unix(10000, 0).UTC()

	tm.clock.EXPECT().Now().Return(now)
	tm.gameData.EXPECT().AvailableWorlds().Return(map[int32]string{74: "Coeurl"}).AnyTimes()
	tm.store.EXPECT().
		RetrieveMarketItem(gomock.Any(), int32(74), int32(5057)).
		Return(&domain.MarketItem{WorldID: 74, ItemID: 5057, LastUploadTime: now}, nil)
	tm.store.EXPECT().
		RetrieveSalesBySaleTime(gomock.Any(), int32(74), int32(5057), 10).
		Return([]*domain.Sale{
			sale(74, false, 1, 9000),
			sale(74, false, 1, 5000),
		}, nil)

	// A 3600s lookback from t=10000 keeps t=9000 and drops t=5000
	view, err := tm.engine.GetHistoryView(context.Background(), worldScope(74, "Coeurl"), 5057, 10, 7*24*time.Hour, 3600)

	require.NoError(t, err)
	require.Len(t, view.Entries, 1)
	assert.Equal(t, int64(9000), view.Entries[0].Timestamp)
}

func TestEngine_GetHistoryView_MultiWorldAnnotatesAndRanks(t *testing.T) {
	tm := setupTestEngine(t)
	defer tearDownTestEngine(tm)

	now := time.Unix(10000, 0).UTC()
	scope := &gamedata.Scope{
		Kind:     gamedata.ScopeDataCenter,
		DcName:   "Crystal",
		WorldIDs: []int32{74, 75},
	}

	tm.clock.EXPECT().Now().Return(now)
	tm.gameData.EXPECT().
		AvailableWorlds().
		Return(map[int32]string{74: "Coeurl", 75: "Malboro"}).
		AnyTimes()

	tm.store.EXPECT().
		RetrieveMarketItem(gomock.Any(), int32(74), int32(5057)).
		Return(&domain.MarketItem{WorldID: 74, ItemID: 5057, LastUploadTime: time.Unix(8000, 0)}, nil)
	tm.store.EXPECT().
		RetrieveSalesBySaleTime(gomock.Any(), int32(74), int32(5057), 10).
		Return([]*domain.Sale{sale(74, false, 1, 100)}, nil)

	tm.store.EXPECT().
		RetrieveMarketItem(gomock.Any(), int32(75), int32(5057)).
		Return(&domain.MarketItem{WorldID: 75, ItemID: 5057, LastUploadTime: time.Unix(9000, 0)}, nil)
	tm.store.EXPECT().
		RetrieveSalesBySaleTime(gomock.Any(), int32(75), int32(5057), 10).
		Return([]*domain.Sale{sale(75, false, 1, 300)}, nil)

	view, err := tm.engine.GetHistoryView(context.Background(), scope, 5057, 10, 7*24*time.Hour, -1)

	require.NoError(t, err)
	assert.Equal(t, "Crystal", view.DcName)
	assert.Zero(t, view.WorldID)
	// Newest upload time across the merged worlds wins
	assert.Equal(t, time.Unix(9000, 0).UnixMilli(), view.LastUploadTime)

	require.Len(t, view.Entries, 2)
	assert.Equal(t, "Malboro", view.Entries[0].WorldName)
	assert.Equal(t, int32(75), view.Entries[0].WorldID)
	assert.Equal(t, "Coeurl", view.Entries[1].WorldName)
}

func TestEngine_GetHistoryView_SkipsUncataloguedWorlds(t *testing.T) {
	tm := setupTestEngine(t)
	defer tearDownTestEngine(tm)

	now := time.Unix(10000, 0).UTC()
	scope := &gamedata.Scope{
		Kind:     gamedata.ScopeDataCenter,
		DcName:   "Crystal",
		WorldIDs: []int32{74, 9999},
	}

	tm.clock.EXPECT().Now().Return(now)
	tm.gameData.EXPECT().AvailableWorlds().Return(map[int32]string{74: "Coeurl"}).AnyTimes()
	tm.store.EXPECT().
		RetrieveMarketItem(gomock.Any(), int32(74), int32(5057)).
		Return(&domain.MarketItem{WorldID: 74, ItemID: 5057, LastUploadTime: now}, nil)
	tm.store.EXPECT().
		RetrieveSalesBySaleTime(gomock.Any(), int32(74), int32(5057), 10).
		Return([]*domain.Sale{sale(74, false, 1, 100)}, nil)

	view, err := tm.engine.GetHistoryView(context.Background(), scope, 5057, 10, 7*24*time.Hour, -1)

	require.NoError(t, err)
	assert.Len(t, view.Entries, 1)
}

func TestEngine_GetHistoryView_NoUploadsYieldsEmptyView(t *testing.T) {
	tm := setupTestEngine(t)
	defer tearDownTestEngine(tm)

	now := time.Unix(10000, 0).UTC()

	tm.clock.EXPECT().Now().Return(now)
	tm.gameData.EXPECT().AvailableWorlds().Return(map[int32]string{74: "Coeurl"}).AnyTimes()
	tm.store.EXPECT().
		RetrieveMarketItem(gomock.Any(), int32(74), int32(5057)).
		Return(nil, nil)

	view, err := tm.engine.GetHistoryView(context.Background(), worldScope(74, "Coeurl"), 5057, 10, 7*24*time.Hour, -1)

	require.NoError(t, err)
	assert.Empty(t, view.Entries)
	assert.Zero(t, view.LastUploadTime)
	assert.Empty(t, view.StackSizeHistogram)
	assert.Zero(t, view.SaleVelocity)
}

func TestEngine_GetHistoryView_TruncatesToMaxEntries(t *testing.T) {
	tm := setupTestEngine(t)
	defer tearDownTestEngine(tm)

	now := time.Unix(10000, 0).UTC()

	tm.clock.EXPECT().Now().Return(now)
	tm.gameData.EXPECT().AvailableWorlds().Return(map[int32]string{74: "Coeurl"}).AnyTimes()
	tm.store.EXPECT().
		RetrieveMarketItem(gomock.Any(), int32(74), int32(5057)).
		Return(&domain.MarketItem{WorldID: 74, ItemID: 5057, LastUploadTime: now}, nil)
	tm.store.EXPECT().
		RetrieveSalesBySaleTime(gomock.Any(), int32(74), int32(5057), 2).
		Return([]*domain.Sale{
			sale(74, false, 1, 300),
			sale(74, false, 1, 200),
		}, nil)

	view, err := tm.engine.GetHistoryView(context.Background(), worldScope(74, "Coeurl"), 5057, 2, 7*24*time.Hour, -1)

	require.NoError(t, err)
	assert.Len(t, view.Entries, 2)
}

func TestEngine_TradeVolume_SumsAcrossScope(t *testing.T) {
	tm := setupTestEngine(t)
	defer tearDownTestEngine(tm)

	from := time.Unix(0, 0)
	to := time.Unix(10000, 0)
	scope := &gamedata.Scope{
		Kind:     gamedata.ScopeDataCenter,
		DcName:   "Crystal",
		WorldIDs: []int32{74, 75},
	}

	tm.gameData.EXPECT().IsWorld(int32(74)).Return(true)
	tm.gameData.EXPECT().IsWorld(int32(75)).Return(true)
	tm.store.EXPECT().
		RetrieveTradeVolume(gomock.Any(), int32(74), int32(5057), from, to).
		Return(&domain.TradeVolume{Units: 10, Gil: 1000}, nil)
	tm.store.EXPECT().
		RetrieveTradeVolume(gomock.Any(), int32(75), int32(5057), from, to).
		Return(&domain.TradeVolume{Units: 5, Gil: 700}, nil)

	volume, err := tm.engine.TradeVolume(context.Background(), scope, 5057, from, to)

	require.NoError(t, err)
	assert.Equal(t, int64(15), volume.Units)
	assert.Equal(t, int64(1700), volume.Gil)
}

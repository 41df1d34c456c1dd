package dispatch_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xivmarket/marketboard/internal/dispatch"
	"github.com/xivmarket/marketboard/internal/domain"
	"github.com/xivmarket/marketboard/internal/logger"
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

func salesEvent(worldID, itemID int32) *domain.UploadEvent {
	quantity := int32(1)
	buyer := "Buyer"
	mannequin := false
	return &domain.UploadEvent{
		Kind:    domain.EventSalesAdd,
		WorldID: worldID,
		ItemID:  itemID,
		Sales: []*domain.Sale{
			{
				WorldID:      worldID,
				ItemID:       itemID,
				PricePerUnit: 100,
				Quantity:     &quantity,
				BuyerName:    &buyer,
				OnMannequin:  &mannequin,
			},
		},
	}
}

// drain returns every payload currently queued on the subscription.
func drain(sub *dispatch.Subscription) [][]byte {
	var payloads [][]byte
	for {
		select {
		case payload, ok := <-sub.C():
			if !ok {
				return payloads
			}
			payloads = append(payloads, payload)
		default:
			return payloads
		}
	}
}

func TestHub_FilteredDelivery(t *testing.T) {
	hub := dispatch.NewHub()

	matched := hub.Subscribe(dispatch.Filter{Kind: domain.EventSalesAdd, WorldID: 1, ItemID: 2})
	otherWorld := hub.Subscribe(dispatch.Filter{Kind: domain.EventSalesAdd, WorldID: 9})
	defer hub.Unsubscribe(matched.ID)
	defer hub.Unsubscribe(otherWorld.ID)

	hub.Broadcast(salesEvent(1, 2), []byte(`{"event":"sales/add"}`))

	got := drain(matched)
	require.Len(t, got, 1)
	assert.Equal(t, `{"event":"sales/add"}`, string(got[0]))

	assert.Empty(t, drain(otherWorld))
}

func TestHub_ZeroFilterMatchesEverything(t *testing.T) {
	hub := dispatch.NewHub()

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub.ID)

	hub.Broadcast(salesEvent(1, 2), []byte("a"))
	hub.Broadcast(&domain.UploadEvent{Kind: domain.EventItemUpdate, WorldID: 5, ItemID: 6}, []byte("b"))

	assert.Len(t, drain(sub), 2)
}

func TestHub_FilterManagement(t *testing.T) {
	hub := dispatch.NewHub()

	sub := hub.Subscribe(dispatch.Filter{WorldID: 1})
	defer hub.Unsubscribe(sub.ID)

	hub.Broadcast(salesEvent(2, 5), []byte("a"))
	assert.Empty(t, drain(sub))

	sub.AddFilter(dispatch.Filter{WorldID: 2})
	hub.Broadcast(salesEvent(2, 5), []byte("b"))
	assert.Len(t, drain(sub), 1)

	sub.RemoveFilter(dispatch.Filter{WorldID: 2})
	hub.Broadcast(salesEvent(2, 5), []byte("c"))
	assert.Empty(t, drain(sub))
}

func TestHub_SlowSubscriberDropsWithoutBlocking(t *testing.T) {
	hub := dispatch.NewHub()

	slow := hub.Subscribe()
	fast := hub.Subscribe()
	defer hub.Unsubscribe(slow.ID)
	defer hub.Unsubscribe(fast.ID)

	// Fill the slow subscriber's queue, then keep broadcasting.
	for i := 0; i < 100; i++ {
		hub.Broadcast(salesEvent(1, 2), []byte("x"))
		drain(fast)
	}

	// The fast subscriber saw everything after each drain; the slow one
	// capped out at its queue depth and the hub never blocked.
	assert.Len(t, drain(slow), 64)
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	hub := dispatch.NewHub()

	sub := hub.Subscribe()
	require.Equal(t, 1, hub.Len())

	hub.Unsubscribe(sub.ID)
	assert.Equal(t, 0, hub.Len())

	_, ok := <-sub.C()
	assert.False(t, ok)

	// Broadcasting after teardown must not panic on the closed channel
	hub.Broadcast(salesEvent(1, 2), []byte("x"))
}

func TestFilter_Matches(t *testing.T) {
	event := salesEvent(1, 2)

	assert.True(t, dispatch.Filter{}.Matches(event))
	assert.True(t, dispatch.Filter{Kind: domain.EventSalesAdd}.Matches(event))
	assert.True(t, dispatch.Filter{WorldID: 1, ItemID: 2}.Matches(event))
	assert.False(t, dispatch.Filter{Kind: domain.EventItemUpdate}.Matches(event))
	assert.False(t, dispatch.Filter{WorldID: 3}.Matches(event))
	assert.False(t, dispatch.Filter{ItemID: 3}.Matches(event))
}

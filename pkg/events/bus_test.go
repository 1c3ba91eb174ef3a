package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.On(FavoriteAdded, func(payload any) { order = append(order, "first") })
	bus.On(FavoriteAdded, func(payload any) { order = append(order, "second") })

	bus.Emit(FavoriteAdded, nil)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestEmitPassesPayload(t *testing.T) {
	bus := NewBus()

	var got any
	bus.On(ErrorOccurred, func(payload any) { got = payload })

	bus.Emit(ErrorOccurred, "boom")
	assert.Equal(t, "boom", got)
}

func TestOffStopsDelivery(t *testing.T) {
	bus := NewBus()

	calls := 0
	off := bus.On(UserLoggedIn, func(payload any) { calls++ })

	bus.Emit(UserLoggedIn, nil)
	off()
	bus.Emit(UserLoggedIn, nil)

	assert.Equal(t, 1, calls)
	assert.Zero(t, bus.ListenerCount(UserLoggedIn))
}

func TestOffIsIdempotent(t *testing.T) {
	bus := NewBus()

	off := bus.On(UserLoggedIn, func(payload any) {})
	bus.On(UserLoggedIn, func(payload any) {})

	off()
	off()
	assert.Equal(t, 1, bus.ListenerCount(UserLoggedIn))
}

func TestOnceFiresExactlyOnce(t *testing.T) {
	bus := NewBus()

	calls := 0
	bus.Once(FavoriteRemoved, func(payload any) { calls++ })

	bus.Emit(FavoriteRemoved, nil)
	bus.Emit(FavoriteRemoved, nil)

	assert.Equal(t, 1, calls)
	assert.Zero(t, bus.ListenerCount(FavoriteRemoved))
}

func TestEventsAreIsolatedByType(t *testing.T) {
	bus := NewBus()

	calls := 0
	bus.On(FavoriteAdded, func(payload any) { calls++ })

	bus.Emit(FavoriteRemoved, nil)
	assert.Zero(t, calls)
}

func TestClearRemovesEverything(t *testing.T) {
	bus := NewBus()

	calls := 0
	bus.On(FavoriteAdded, func(payload any) { calls++ })
	bus.On(UserLoggedOut, func(payload any) { calls++ })

	bus.Clear()
	bus.Emit(FavoriteAdded, nil)
	bus.Emit(UserLoggedOut, nil)

	assert.Zero(t, calls)
	assert.Zero(t, bus.ListenerCount(FavoriteAdded))
}

func TestConcurrentSubscribeAndEmit(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			off := bus.On(FavoriteAdded, func(payload any) {})
			bus.Emit(FavoriteAdded, nil)
			off()
		}()
	}
	wg.Wait()

	assert.Zero(t, bus.ListenerCount(FavoriteAdded))
}

package events_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"eduspace/infras/otel/mocks"
	"eduspace/internal/events"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishFansOutToAllSubscribers(t *testing.T) {
	bus := events.NewBus(mocks.NewOtel())

	var mu sync.Mutex
	received := map[string]events.Event{}
	done := make(chan struct{}, 2)

	for _, name := range []string{"first", "second"} {
		bus.Subscribe(name, func(_ context.Context, event events.Event) {
			mu.Lock()
			received[name] = event
			mu.Unlock()
			done <- struct{}{}
		})
	}

	bus.Publish(context.Background(), events.Event{
		Type:    events.TypeBookingDeleted,
		Payload: events.BookingDeletedPayload{ID: "b-1"},
	})

	for range 2 {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for subscribers")
		}
	}

	mu.Lock()
	defer mu.Unlock()

	assert.Len(t, received, 2)
	assert.Equal(t, events.TypeBookingDeleted, received["first"].Type)
	assert.Equal(t, events.TypeBookingDeleted, received["second"].Type)
}

func TestBus_SubscriberPanicDoesNotAffectOthers(t *testing.T) {
	bus := events.NewBus(mocks.NewOtel())

	done := make(chan struct{}, 1)

	bus.Subscribe("panicky", func(_ context.Context, _ events.Event) {
		panic("boom")
	})
	bus.Subscribe("healthy", func(_ context.Context, _ events.Event) {
		done <- struct{}{}
	})

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), events.Event{Type: events.TypeBookingCreated})
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("healthy subscriber never ran")
	}
}

func TestBus_NoReplayForLateSubscribers(t *testing.T) {
	bus := events.NewBus(mocks.NewOtel())

	bus.Publish(context.Background(), events.Event{Type: events.TypeBookingCreated})

	called := make(chan struct{}, 1)
	bus.Subscribe("late", func(_ context.Context, _ events.Event) {
		called <- struct{}{}
	})

	select {
	case <-called:
		t.Fatal("late subscriber must not see earlier events")
	case <-time.After(100 * time.Millisecond):
	}
}

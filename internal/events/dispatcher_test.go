package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventOrderCreated, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{
		ID:      "evt-1",
		Type:    EventOrderCreated,
		OrderID: "order-1",
	})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "order-1", received[0].OrderID)
}

func TestDispatcher_TypeIsolation(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	calls := 0
	dispatcher.Subscribe(EventUserRegistered, func(_ context.Context, _ Event) error {
		calls++
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventOrderCreated}))
	assert.Zero(t, calls)
}

func TestDispatcher_FailingHandlerDoesNotFailPublish(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	second := 0
	dispatcher.Subscribe(EventOrderStatusChanged, func(_ context.Context, _ Event) error {
		return errors.New("listener broke")
	})
	dispatcher.Subscribe(EventOrderStatusChanged, func(_ context.Context, _ Event) error {
		second++
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventOrderStatusChanged})
	require.NoError(t, err)
	assert.Equal(t, 1, second, "later handlers still run after one fails")
}

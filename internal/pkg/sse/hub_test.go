package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesSubscriber(t *testing.T) {
	// Setup
	hub := NewHub()
	ch, cleanup := hub.Subscribe("evt-1")
	defer cleanup()

	// Act
	hub.Publish("evt-1", Event{EventID: "evt-1", Name: "stats.updated", Data: "payload"})

	// Assert
	select {
	case ev := <-ch:
		assert.Equal(t, "stats.updated", ev.Name)
		assert.Equal(t, "payload", ev.Data)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestHub_PublishIsScopedToEventID(t *testing.T) {
	// Setup
	hub := NewHub()
	ch, cleanup := hub.Subscribe("evt-1")
	defer cleanup()

	// Act
	hub.Publish("evt-2", Event{EventID: "evt-2", Name: "stats.updated"})

	// Assert
	assert.Empty(t, ch)
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	// Setup
	hub := NewHub()
	_, cleanup := hub.Subscribe("evt-1")
	require.Equal(t, 1, hub.SubscriberCount("evt-1"))

	// Act
	cleanup()

	// Assert
	assert.Equal(t, 0, hub.SubscriberCount("evt-1"))
	assert.Equal(t, 0, hub.TotalSubscribers())
}

func TestHub_PublishNeverBlocksOnFullChannel(t *testing.T) {
	// Setup
	hub := NewHub()
	_, cleanup := hub.Subscribe("evt-1")
	defer cleanup()

	// Act: overflow the buffer; the slow subscriber is skipped, not waited on.
	for i := 0; i < 64; i++ {
		hub.Publish("evt-1", Event{EventID: "evt-1", Name: "stats.updated"})
	}

	// Assert
	assert.Equal(t, 1, hub.SubscriberCount("evt-1"))
}

func TestHub_MultipleSubscribersEachReceive(t *testing.T) {
	// Setup
	hub := NewHub()
	ch1, cleanup1 := hub.Subscribe("evt-1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("evt-1")
	defer cleanup2()

	// Act
	hub.Publish("evt-1", Event{EventID: "evt-1", Name: "staff.updated"})

	// Assert
	assert.Len(t, ch1, 1)
	assert.Len(t, ch2, 1)
}

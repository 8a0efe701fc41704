package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(ch <-chan Update, max int, timeout time.Duration) []Update {
	var out []Update
	deadline := time.After(timeout)
	for len(out) < max {
		select {
		case u, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, u)
		case <-deadline:
			return out
		}
	}
	return out
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	b := NewBroker()
	id := NewTaskID()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := b.Subscribe(ctx, id)

	b.Publish(id, StateRunning, "working")
	b.Publish(id, StateCompleted, "done")

	updates := collect(ch, 2, time.Second)
	require.Len(t, updates, 2)
	assert.Equal(t, StateRunning, updates[0].State)
	assert.Equal(t, StateCompleted, updates[1].State)
}

func TestSubscribeDeliversLastKnownState(t *testing.T) {
	b := NewBroker()
	id := NewTaskID()

	b.Publish(id, StateRunning, "already started")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := b.Subscribe(ctx, id)

	updates := collect(ch, 1, time.Second)
	require.Len(t, updates, 1)
	assert.Equal(t, "already started", updates[0].Message)
}

func TestChannelClosesOnTerminalState(t *testing.T) {
	b := NewBroker()
	id := NewTaskID()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := b.Subscribe(ctx, id)

	b.Publish(id, StateFailed, "boom")

	updates := collect(ch, 5, time.Second)
	require.Len(t, updates, 1)

	_, open := <-ch
	assert.False(t, open, "channel must close after a terminal state")
}

func TestCancellationClosesChannel(t *testing.T) {
	b := NewBroker()
	id := NewTaskID()

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx, id)
	cancel()

	_, open := <-ch
	assert.False(t, open, "cancelling the subscriber context must close the channel")
}

func TestSlowSubscriberDoesNotBlockPublisher(t *testing.T) {
	b := NewBroker()
	id := NewTaskID()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_ = b.Subscribe(ctx, id) // nobody reads

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.Publish(id, StateRunning, "tick")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}
}

package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State of a long-running analysis task.
const (
	StatePending   = "pending"
	StateRunning   = "running"
	StateCompleted = "completed"
	StateFailed    = "failed"
)

// Update is one status change of a task.
type Update struct {
	TaskID  string    `json:"task_id"`
	State   string    `json:"state"`
	Message string    `json:"message,omitempty"`
	At      time.Time `json:"at"`
}

type subscriber struct {
	ch chan Update
}

// Broker fans task-status updates out to subscribers. Subscriptions are tied
// to the subscriber's context: cancel the context and the channel closes.
// Replaces interval polling with explicit pub/sub.
type Broker struct {
	mu   sync.Mutex
	subs map[string][]*subscriber
	last map[string]Update
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string][]*subscriber),
		last: make(map[string]Update),
	}
}

// NewTaskID mints an opaque task identifier.
func NewTaskID() string {
	return uuid.NewString()
}

// Publish records the task's latest state and delivers it to all current
// subscribers. Slow subscribers drop intermediate updates rather than block
// the publisher.
func (b *Broker) Publish(taskID, state, message string) {
	u := Update{TaskID: taskID, State: state, Message: message, At: time.Now()}

	b.mu.Lock()
	b.last[taskID] = u
	subs := b.subs[taskID]
	b.mu.Unlock()

	for _, s := range subs {
		select {
		case s.ch <- u:
		default:
		}
	}
}

// Subscribe returns a channel of updates for the task. The last known state,
// if any, is delivered first. The channel closes when ctx is cancelled or
// when the task reaches a terminal state.
func (b *Broker) Subscribe(ctx context.Context, taskID string) <-chan Update {
	sub := &subscriber{ch: make(chan Update, 8)}

	b.mu.Lock()
	if last, ok := b.last[taskID]; ok {
		sub.ch <- last
	}
	b.subs[taskID] = append(b.subs[taskID], sub)
	b.mu.Unlock()

	out := make(chan Update)
	go func() {
		defer close(out)
		defer b.unsubscribe(taskID, sub)
		for {
			select {
			case <-ctx.Done():
				return
			case u := <-sub.ch:
				select {
				case out <- u:
				case <-ctx.Done():
					return
				}
				if u.State == StateCompleted || u.State == StateFailed {
					return
				}
			}
		}
	}()
	return out
}

func (b *Broker) unsubscribe(taskID string, target *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[taskID]
	for i, s := range subs {
		if s == target {
			b.subs[taskID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[taskID]) == 0 {
		delete(b.subs, taskID)
	}
}

// Forget drops the retained state of a finished task.
func (b *Broker) Forget(taskID string) {
	b.mu.Lock()
	delete(b.last, taskID)
	b.mu.Unlock()
}

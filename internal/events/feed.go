package events

import (
	"sync"
)

// Feed provides pub/sub behavior for values of type T. Subscribers are either
// channels (Subscribe) or callbacks (SubscribeFunc); both receive every value
// passed to Publish.
type Feed[T any] struct {
	mu           sync.RWMutex
	channels     map[uint64]chan<- T
	callbacks    map[uint64]func(T)
	nextID       uint64
	replayLast   bool
	last         *T
	hasPublished bool
}

// NewFeed creates a Feed.
// replayLast: if true, the most recent published value is delivered to each new
// subscriber at subscription time (once Publish has been called at least once).
func NewFeed[T any](replayLast bool) *Feed[T] {
	return &Feed[T]{
		channels:   make(map[uint64]chan<- T),
		callbacks:  make(map[uint64]func(T)),
		replayLast: replayLast,
	}
}

// Subscribe registers a channel to receive published values.
// Returns an unsubscribe function; calling it more than once is safe.
// Sends are non-blocking: a full channel misses that value.
func (f *Feed[T]) Subscribe(ch chan<- T) func() {
	if ch == nil {
		panic("channel cannot be nil")
	}

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.channels[id] = ch
	replay, value := f.replayValueLocked()
	f.mu.Unlock()

	if replay {
		select {
		case ch <- value:
		default:
		}
	}

	return func() {
		f.mu.Lock()
		delete(f.channels, id)
		f.mu.Unlock()
	}
}

// SubscribeFunc registers a callback to be invoked with published values.
// Returns an unsubscribe function; calling it more than once is safe.
func (f *Feed[T]) SubscribeFunc(fn func(T)) func() {
	if fn == nil {
		panic("callback cannot be nil")
	}

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.callbacks[id] = fn
	replay, value := f.replayValueLocked()
	f.mu.Unlock()

	if replay {
		fn(value)
	}

	return func() {
		f.mu.Lock()
		delete(f.callbacks, id)
		f.mu.Unlock()
	}
}

// replayValueLocked reports whether a replay is due and the value to replay.
// Must be called with mu held.
func (f *Feed[T]) replayValueLocked() (bool, T) {
	var zero T
	if !f.replayLast || !f.hasPublished || f.last == nil {
		return false, zero
	}
	return true, *f.last
}

// Publish delivers value to every subscriber. Channel sends are non-blocking;
// callbacks run on the publishing goroutine, outside the feed's lock.
func (f *Feed[T]) Publish(value T) {
	f.mu.Lock()
	if f.replayLast {
		if f.last == nil {
			f.last = new(T)
		}
		*f.last = value
		f.hasPublished = true
	}
	channels := make([]chan<- T, 0, len(f.channels))
	for _, ch := range f.channels {
		channels = append(channels, ch)
	}
	callbacks := make([]func(T), 0, len(f.callbacks))
	for _, fn := range f.callbacks {
		callbacks = append(callbacks, fn)
	}
	f.mu.Unlock()

	for _, ch := range channels {
		select {
		case ch <- value:
		default:
		}
	}
	for _, fn := range callbacks {
		fn(value)
	}
}

// SubscriberCount returns the current number of subscribers of both kinds
func (f *Feed[T]) SubscriberCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.channels) + len(f.callbacks)
}

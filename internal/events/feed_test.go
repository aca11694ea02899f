package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_SubscribeFunc_Basic(t *testing.T) {
	feed := NewFeed[string](false)
	require.NotNil(t, feed)
	assert.Equal(t, 0, feed.SubscriberCount())

	var mu sync.Mutex
	received := make([]string, 0)
	unsubscribe := feed.SubscribeFunc(func(v string) {
		mu.Lock()
		received = append(received, v)
		mu.Unlock()
	})
	assert.Equal(t, 1, feed.SubscriberCount())

	feed.Publish("one")
	feed.Publish("two")

	mu.Lock()
	assert.Equal(t, []string{"one", "two"}, received)
	mu.Unlock()

	unsubscribe()
	assert.Equal(t, 0, feed.SubscriberCount())

	feed.Publish("three")
	mu.Lock()
	assert.Len(t, received, 2)
	mu.Unlock()
}

func TestFeed_Subscribe_Channel(t *testing.T) {
	feed := NewFeed[int](false)

	ch := make(chan int, 4)
	unsubscribe := feed.Subscribe(ch)
	defer unsubscribe()

	feed.Publish(7)
	feed.Publish(8)

	assert.Equal(t, 7, <-ch)
	assert.Equal(t, 8, <-ch)
}

func TestFeed_Subscribe_FullChannelSkipped(t *testing.T) {
	feed := NewFeed[int](false)

	ch := make(chan int, 1)
	unsubscribe := feed.Subscribe(ch)
	defer unsubscribe()

	feed.Publish(1)
	feed.Publish(2) // channel full, dropped

	assert.Equal(t, 1, <-ch)
	select {
	case v := <-ch:
		t.Fatalf("unexpected extra value %d", v)
	default:
	}
}

func TestFeed_ReplayLast(t *testing.T) {
	feed := NewFeed[string](true)

	// Before any publish, nothing is replayed
	var mu sync.Mutex
	early := make([]string, 0)
	unsubEarly := feed.SubscribeFunc(func(v string) {
		mu.Lock()
		early = append(early, v)
		mu.Unlock()
	})
	mu.Lock()
	assert.Empty(t, early)
	mu.Unlock()

	feed.Publish("first")

	// A late callback subscriber gets the last value immediately
	late := make([]string, 0)
	unsubLate := feed.SubscribeFunc(func(v string) {
		mu.Lock()
		late = append(late, v)
		mu.Unlock()
	})
	mu.Lock()
	assert.Equal(t, []string{"first"}, late)
	mu.Unlock()

	// So does a late channel subscriber
	ch := make(chan string, 1)
	unsubCh := feed.Subscribe(ch)
	assert.Equal(t, "first", <-ch)

	unsubEarly()
	unsubLate()
	unsubCh()
}

func TestFeed_NoReplayWhenDisabled(t *testing.T) {
	feed := NewFeed[string](false)
	feed.Publish("first")

	var mu sync.Mutex
	received := make([]string, 0)
	unsubscribe := feed.SubscribeFunc(func(v string) {
		mu.Lock()
		received = append(received, v)
		mu.Unlock()
	})
	defer unsubscribe()

	mu.Lock()
	assert.Empty(t, received)
	mu.Unlock()
}

func TestFeed_UnsubscribeDuringPublish(t *testing.T) {
	feed := NewFeed[string](false)

	var mu sync.Mutex
	received := make([]string, 0)
	var unsubscribe func()
	unsubscribe = feed.SubscribeFunc(func(v string) {
		mu.Lock()
		received = append(received, v)
		mu.Unlock()
		if v == "stop" {
			unsubscribe()
		}
	})

	feed.Publish("one")
	feed.Publish("stop")
	feed.Publish("two")

	mu.Lock()
	assert.Equal(t, []string{"one", "stop"}, received)
	mu.Unlock()
	assert.Equal(t, 0, feed.SubscriberCount())
}

func TestFeed_ConcurrentPublish(t *testing.T) {
	feed := NewFeed[int](false)

	var mu sync.Mutex
	received := 0
	unsubs := make([]func(), 0, 10)
	for i := 0; i < 10; i++ {
		unsubs = append(unsubs, feed.SubscribeFunc(func(int) {
			mu.Lock()
			received++
			mu.Unlock()
		}))
	}

	var wg sync.WaitGroup
	wg.Add(5)
	for i := 0; i < 5; i++ {
		go func(v int) {
			defer wg.Done()
			feed.Publish(v)
		}(i)
	}
	wg.Wait()

	mu.Lock()
	assert.Equal(t, 50, received)
	mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
		unsub() // double unsubscribe is safe
	}
	assert.Equal(t, 0, feed.SubscriberCount())
}

func TestFeed_NilSubscriberPanics(t *testing.T) {
	feed := NewFeed[string](false)
	assert.Panics(t, func() { feed.Subscribe(nil) })
	assert.Panics(t, func() { feed.SubscribeFunc(nil) })
}

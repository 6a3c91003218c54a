package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch <-chan []int) []int {
	t.Helper()
	select {
	case snapshot := <-ch:
		return snapshot
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func TestHub_PublishDeliversToAllSubscribers(t *testing.T) {
	h := NewHub[int]()

	ch1, cancel1 := h.Subscribe(nil)
	defer cancel1()
	ch2, cancel2 := h.Subscribe(nil)
	defer cancel2()

	h.Publish([]int{1, 2, 3})

	assert.Equal(t, []int{1, 2, 3}, recv(t, ch1))
	assert.Equal(t, []int{1, 2, 3}, recv(t, ch2))
}

func TestHub_SubscriberGetsCurrentSnapshotImmediately(t *testing.T) {
	h := NewHub[int]()
	h.Publish([]int{7})

	ch, cancel := h.Subscribe(nil)
	defer cancel()

	assert.Equal(t, []int{7}, recv(t, ch))
}

func TestHub_NoSnapshotBeforeFirstPublish(t *testing.T) {
	h := NewHub[int]()

	ch, cancel := h.Subscribe(nil)
	defer cancel()

	select {
	case <-ch:
		t.Fatal("expected no delivery before the first publish")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestHub_FilterAppliedPerSubscriber(t *testing.T) {
	h := NewHub[int]()

	even, cancelEven := h.Subscribe(func(v int) bool { return v%2 == 0 })
	defer cancelEven()
	all, cancelAll := h.Subscribe(nil)
	defer cancelAll()

	h.Publish([]int{1, 2, 3, 4})

	assert.Equal(t, []int{2, 4}, recv(t, even))
	assert.Equal(t, []int{1, 2, 3, 4}, recv(t, all))
}

func TestHub_SlowConsumerSeesOnlyLatest(t *testing.T) {
	h := NewHub[int]()

	ch, cancel := h.Subscribe(nil)
	defer cancel()

	// Nobody reads between publishes: the stale snapshot is replaced
	h.Publish([]int{1})
	h.Publish([]int{2})
	h.Publish([]int{3})

	assert.Equal(t, []int{3}, recv(t, ch))

	select {
	case snapshot := <-ch:
		t.Fatalf("expected no backlog, got %v", snapshot)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestHub_CancelClosesChannelAndStopsDelivery(t *testing.T) {
	h := NewHub[int]()

	ch, cancel := h.Subscribe(nil)
	require.Equal(t, 1, h.Subscribers())

	cancel()
	assert.Equal(t, 0, h.Subscribers())

	_, open := <-ch
	assert.False(t, open)

	// Cancelling twice is safe
	cancel()

	h.Publish([]int{9})
}

func TestHub_PublishEmptySnapshot(t *testing.T) {
	h := NewHub[int]()

	ch, cancel := h.Subscribe(nil)
	defer cancel()

	h.Publish([]int{})

	assert.Empty(t, recv(t, ch))
}

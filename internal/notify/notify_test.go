package notify

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// recordingSink captures delivered snapshots and can be told to fail.
type recordingSink struct {
	mu        sync.Mutex
	delivered []OrderSnapshot
	kinds     []string
	fail      bool
}

func (s *recordingSink) Deliver(kind string, snap OrderSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("sink unavailable")
	}
	s.kinds = append(s.kinds, kind)
	s.delivered = append(s.delivered, snap)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.delivered)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestNotifierDeliversSnapshotToSink(t *testing.T) {
	sink := &recordingSink{}
	n := New(sink)
	defer n.Close()

	n.NotifyOrderCreated(OrderSnapshot{OrderID: 9, Reference: "VC-test", ItemName: "Santorini Escape"})

	waitFor(t, func() bool { return sink.count() == 1 })

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.kinds[0] != KindNewBooking {
		t.Errorf("delivered kind = %q, want %q", sink.kinds[0], KindNewBooking)
	}
	if sink.delivered[0].OrderID != 9 {
		t.Errorf("delivered order id = %d, want 9", sink.delivered[0].OrderID)
	}
}

func TestNotifierSwallowsSinkFailure(t *testing.T) {
	// A failing sink must not panic or block the producer; the failure
	// is logged and dropped.
	sink := &recordingSink{fail: true}
	n := New(sink)
	defer n.Close()

	n.NotifyOrderCreated(OrderSnapshot{OrderID: 1})
	n.NotifyOrderCreated(OrderSnapshot{OrderID: 2})

	// Give the worker a moment to chew through the queue.
	time.Sleep(50 * time.Millisecond)
	if sink.count() != 0 {
		t.Errorf("failing sink recorded %d deliveries, want 0", sink.count())
	}
}

func TestNotifyOrderCreatedNeverBlocks(t *testing.T) {
	// Sink that blocks forever simulates a hung collaborator.
	blocked := make(chan struct{})
	n := New(sinkFunc(func(kind string, snap OrderSnapshot) error {
		<-blocked
		return nil
	}))
	defer close(blocked)

	done := make(chan struct{})
	go func() {
		// More notifications than the queue holds; the overflow is
		// dropped rather than blocking the caller.
		for i := 0; i < 200; i++ {
			n.NotifyOrderCreated(OrderSnapshot{OrderID: int64(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("NotifyOrderCreated blocked the caller")
	}
}

func TestNotifyAfterCloseIsDropped(t *testing.T) {
	// A straggler notification arriving after shutdown is dropped, never
	// a panic on the closed queue. Closing twice is equally harmless.
	sink := &recordingSink{}
	n := New(sink)
	n.Close()
	n.Close()

	n.NotifyOrderCreated(OrderSnapshot{OrderID: 3})

	time.Sleep(20 * time.Millisecond)
	if sink.count() != 0 {
		t.Errorf("closed notifier delivered %d notifications, want 0", sink.count())
	}
}

type sinkFunc func(kind string, snap OrderSnapshot) error

func (f sinkFunc) Deliver(kind string, snap OrderSnapshot) error { return f(kind, snap) }

package services

import (
	"testing"
	"time"
)

func TestBroadcastNeverBlocks(t *testing.T) {
	hub := NewEventHub()
	// No Run goroutine is draining, so this exercises the drop path.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Broadcast("notification", map[string]int{"i": i})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked with no consumer")
	}
}

func TestBroadcastSetsKindAndTimestamp(t *testing.T) {
	hub := NewEventHub()
	before := time.Now().UTC()
	hub.Broadcast("metrics", "payload")
	event := <-hub.ch
	if event.Kind != "metrics" {
		t.Fatalf("kind = %q", event.Kind)
	}
	if event.Payload != "payload" {
		t.Fatalf("payload = %v", event.Payload)
	}
	if event.OccurredAt.Before(before) {
		t.Fatalf("occurredAt %v before broadcast", event.OccurredAt)
	}
}

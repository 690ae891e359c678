package engine

import (
	"testing"
)

const (
	testEventSpawn EventType = iota
	testEventDespawn
	testEventUnrouted
)

func TestEventQueueFIFO(t *testing.T) {
	q := NewEventQueue(8)
	for i := 0; i < 3; i++ {
		q.Push(Event{Type: testEventSpawn, Payload: i})
	}

	events := q.Consume()
	if len(events) != 3 {
		t.Fatalf("Consume returned %d events, want 3", len(events))
	}
	for i, ev := range events {
		if ev.Payload.(int) != i {
			t.Errorf("Position %d: payload %v, want %d", i, ev.Payload, i)
		}
	}
	if q.Len() != 0 {
		t.Errorf("Queue not drained: len %d", q.Len())
	}
	if q.Consume() != nil {
		t.Error("Consume on empty queue returned non-nil")
	}
}

func TestEventQueueOverflowDropsOldest(t *testing.T) {
	q := NewEventQueue(4)
	for i := 0; i < 6; i++ {
		q.Push(Event{Type: testEventSpawn, Payload: i})
	}

	events := q.Consume()
	if len(events) != 4 {
		t.Fatalf("Queue held %d events, want capacity 4", len(events))
	}
	// The two oldest (0, 1) were evicted
	if events[0].Payload.(int) != 2 || events[3].Payload.(int) != 5 {
		t.Errorf("Overflow kept wrong events: %v..%v", events[0].Payload, events[3].Payload)
	}
	if q.Dropped() != 2 {
		t.Errorf("Dropped: got %d, want 2", q.Dropped())
	}
}

type recordingHandler struct {
	name  string
	types []EventType
	log   *[]string
}

func (h *recordingHandler) HandleEvent(w *World, ev Event) {
	*h.log = append(*h.log, h.name)
}

func (h *recordingHandler) EventTypes() []EventType { return h.types }

func TestRouterDispatchOrder(t *testing.T) {
	q := NewEventQueue(8)
	r := NewRouter(q)
	var log []string

	r.Register(&recordingHandler{name: "first", types: []EventType{testEventSpawn}, log: &log})
	r.Register(&recordingHandler{name: "second", types: []EventType{testEventSpawn}, log: &log})
	r.Register(&recordingHandler{name: "despawn-only", types: []EventType{testEventDespawn}, log: &log})

	if r.HandlerCount(testEventSpawn) != 2 {
		t.Fatalf("HandlerCount: got %d, want 2", r.HandlerCount(testEventSpawn))
	}

	q.Push(Event{Type: testEventSpawn})
	q.Push(Event{Type: testEventDespawn})
	q.Push(Event{Type: testEventUnrouted}) // no handlers, silently ignored

	r.DispatchAll(NewWorld())

	want := []string{"first", "second", "despawn-only"}
	if len(log) != len(want) {
		t.Fatalf("Dispatched to %d handlers, want %d (%v)", len(log), len(want), log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("Position %d: got %q, want %q", i, log[i], want[i])
		}
	}
}

package events

import "testing"

// recordingHandler captures routed events for one type set
type recordingHandler struct {
	types []Type
	got   []Event
	tag   string
	order *[]string
}

func (h *recordingHandler) HandleEvent(ev Event) {
	h.got = append(h.got, ev)
	if h.order != nil {
		*h.order = append(*h.order, h.tag)
	}
}

func (h *recordingHandler) EventTypes() []Type { return h.types }

// TestRouterDispatchesByType verifies events reach only matching handlers
func TestRouterDispatchesByType(t *testing.T) {
	q := NewQueue()
	r := NewRouter(q)

	actions := &recordingHandler{types: []Type{TypeAction}}
	announces := &recordingHandler{types: []Type{TypeAnnounce}}
	r.Register(actions)
	r.Register(announces)

	q.Push(Event{Type: TypeAction, Code: 1})
	q.Push(Event{Type: TypeAnnounce, Text: "hello"})
	q.Push(Event{Type: TypeAction, Code: 2})
	r.DispatchAll()

	if len(actions.got) != 2 {
		t.Errorf("Expected 2 action events, got %d", len(actions.got))
	}
	if len(announces.got) != 1 || announces.got[0].Text != "hello" {
		t.Errorf("Expected 1 announce event with text, got %v", announces.got)
	}
}

// TestRouterInvokesInRegistrationOrder verifies handler ordering per type
func TestRouterInvokesInRegistrationOrder(t *testing.T) {
	q := NewQueue()
	r := NewRouter(q)

	var order []string
	first := &recordingHandler{types: []Type{TypeAction}, tag: "first", order: &order}
	second := &recordingHandler{types: []Type{TypeAction}, tag: "second", order: &order}
	r.Register(first)
	r.Register(second)

	q.Push(Event{Type: TypeAction})
	r.DispatchAll()

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("Expected handlers in registration order, got %v", order)
	}
}

// TestRouterHasHandlers verifies registration visibility
func TestRouterHasHandlers(t *testing.T) {
	r := NewRouter(NewQueue())
	if r.HasHandlers(TypeAction) {
		t.Error("Expected no handlers before registration")
	}
	r.Register(&recordingHandler{types: []Type{TypeAction}})
	if !r.HasHandlers(TypeAction) {
		t.Error("Expected handler registered for TypeAction")
	}
}

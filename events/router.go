package events

// Handler processes specific event types
// Subsystems implement this interface to receive routed events
type Handler interface {
	// HandleEvent processes a single event
	// Called synchronously on the update tick
	HandleEvent(event Event)

	// EventTypes returns the event types this handler processes
	// The router uses this for registration
	EventTypes() []Type
}

// Router dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch on the update tick
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
type Router struct {
	handlers map[Type][]Handler
	queue    *Queue
}

// NewRouter creates a router attached to the given queue
func NewRouter(queue *Queue) *Router {
	return &Router{
		handlers: make(map[Type][]Handler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *Router) Register(handler Handler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll consumes all pending events and routes them to handlers
// Events are processed in FIFO order
func (r *Router) DispatchAll() {
	for _, ev := range r.queue.Consume() {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
}

// HasHandlers reports whether any handler is registered for the type
func (r *Router) HasHandlers(t Type) bool {
	return len(r.handlers[t]) > 0
}

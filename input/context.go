// Package input resolves key events to navigation actions through a
// declarative, context-sensitive binding table.
package input

// Context identifies which input layer is authoritative
//
// Exactly one context is authoritative at a time, decided by a fixed
// priority order: status-navigation > battle > field. Context is derived
// from explicit state passed through the dispatch call, never from global
// flags
type Context uint8

const (
	ContextField Context = iota
	ContextBattle
	ContextStatusNav
	ContextCount
)

var contextNames = [ContextCount]string{"field", "battle", "status"}

func (c Context) String() string {
	if c >= ContextCount {
		return "unknown"
	}
	return contextNames[c]
}

// ContextByName resolves a context from its lowercase name
func ContextByName(name string) (Context, bool) {
	for i, n := range contextNames {
		if n == name {
			return Context(i), true
		}
	}
	return ContextField, false
}

// State holds the mutually exclusive activity flags a dispatch call carries
type State struct {
	InBattle    bool
	InStatusNav bool
}

// Resolve returns the authoritative context for this state
func (s State) Resolve() Context {
	switch {
	case s.InStatusNav:
		return ContextStatusNav
	case s.InBattle:
		return ContextBattle
	default:
		return ContextField
	}
}

package input

import "github.com/gdamore/tcell/v2"

// Dispatcher resolves key events to actions through the binding table
// Stateless beyond the table; the State argument carries all context
type Dispatcher struct {
	table *Table
}

// NewDispatcher creates a dispatcher over the given table
func NewDispatcher(table *Table) *Dispatcher {
	return &Dispatcher{table: table}
}

// Dispatch resolves a key event in the context derived from state
func (d *Dispatcher) Dispatch(ev *tcell.EventKey, state State) Action {
	return d.table.Lookup(Normalize(ev), state.Resolve())
}

// Normalize converts a tcell key event to a canonical chord
//
// Dedicated Ctrl key codes (KeyCtrlA..KeyCtrlZ) already encode the modifier,
// so ModCtrl is dropped for them; uppercase runes already encode shift, so
// ModShift is dropped for rune keys. Without this, bindings would need to
// anticipate terminal-dependent modifier reporting
func Normalize(ev *tcell.EventKey) Chord {
	c := Chord{Key: ev.Key(), Mods: ev.Modifiers()}

	if c.Key == tcell.KeyRune {
		c.Rune = ev.Rune()
		c.Mods &^= tcell.ModShift
		return c
	}

	if c.Key >= tcell.KeyCtrlA && c.Key <= tcell.KeyCtrlZ {
		c.Mods &^= tcell.ModCtrl
	}
	return c
}

package input

import "github.com/gdamore/tcell/v2"

// Chord is a physical key plus its modifier combination
//
// Rune keys use Key == tcell.KeyRune with the rune set; special keys carry a
// zero rune. Mods are normalized by the dispatcher (dedicated Ctrl key codes
// drop ModCtrl, uppercase runes drop ModShift) so table entries stay
// unambiguous
type Chord struct {
	Key  tcell.Key
	Rune rune
	Mods tcell.ModMask
}

// R builds a bare rune chord
func R(r rune) Chord {
	return Chord{Key: tcell.KeyRune, Rune: r}
}

// K builds a bare special-key chord
func K(k tcell.Key) Chord {
	return Chord{Key: k}
}

// WithMods returns the chord with a modifier combination attached
func (c Chord) WithMods(mods tcell.ModMask) Chord {
	c.Mods = mods
	return c
}

// bare strips the modifier combination
func (c Chord) bare() Chord {
	c.Mods = 0
	return c
}

// Table maps chords to actions per context, with a shared global layer
//
// Resolution order for a chord in context ctx:
//  1. exact modifier match in ctx
//  2. exact modifier match in the global layer
//  3. bare key in ctx
//  4. bare key in the global layer
//
// The most specific modifier match always wins over a bare key binding
type Table struct {
	Global    map[Chord]Action
	ByContext [ContextCount]map[Chord]Action
}

// NewTable returns an empty table with initialized maps
func NewTable() *Table {
	t := &Table{Global: make(map[Chord]Action)}
	for i := range t.ByContext {
		t.ByContext[i] = make(map[Chord]Action)
	}
	return t
}

// DefaultTable returns the default key bindings
func DefaultTable() *Table {
	t := NewTable()

	t.Global = map[Chord]Action{
		K(tcell.KeyTab):     ActionNextEntity,
		K(tcell.KeyBacktab): ActionPrevEntity,
		R('n'):              ActionNextEntity,
		R('p'):              ActionPrevEntity,
		R('c'):              ActionNextCategory,
		R('C'):              ActionPrevCategory,
		R('r'):              ActionRepeat,
		R('R'):              ActionRescan,
		R('g'):              ActionToggleReachability,
		R('t'):              ActionToggleTransitions,
		R('w'):              ActionWhereAmI,
		R('m'):              ActionToggleAudio,
		R('q'):              ActionQuit,
		K(tcell.KeyCtrlC):   ActionQuit,
	}

	t.ByContext[ContextField] = map[Chord]Action{
		K(tcell.KeyUp):    ActionMoveNorth,
		K(tcell.KeyDown):  ActionMoveSouth,
		K(tcell.KeyLeft):  ActionMoveWest,
		K(tcell.KeyRight): ActionMoveEast,
		R('h'):            ActionMoveWest,
		R('j'):            ActionMoveSouth,
		R('k'):            ActionMoveNorth,
		R('l'):            ActionMoveEast,
	}

	// In battle the arrows cycle targets instead of moving
	t.ByContext[ContextBattle] = map[Chord]Action{
		K(tcell.KeyUp):   ActionPrevEntity,
		K(tcell.KeyDown): ActionNextEntity,
	}

	t.ByContext[ContextStatusNav] = map[Chord]Action{
		K(tcell.KeyUp):    ActionPrevEntity,
		K(tcell.KeyDown):  ActionNextEntity,
		K(tcell.KeyLeft):  ActionPrevCategory,
		K(tcell.KeyRight): ActionNextCategory,
	}

	return t
}

// Lookup resolves a normalized chord in the given context
func (t *Table) Lookup(c Chord, ctx Context) Action {
	layer := t.ByContext[ctx]

	if a, ok := layer[c]; ok {
		return a
	}
	if a, ok := t.Global[c]; ok {
		return a
	}
	if c.Mods != 0 {
		if a, ok := layer[c.bare()]; ok {
			return a
		}
		if a, ok := t.Global[c.bare()]; ok {
			return a
		}
	}
	return ActionNone
}

// Clone returns a deep copy with independent maps
func (t *Table) Clone() *Table {
	out := &Table{Global: cloneChordMap(t.Global)}
	for i := range t.ByContext {
		out.ByContext[i] = cloneChordMap(t.ByContext[i])
	}
	return out
}

// Merge returns a new table with base values overridden by the override's
// non-empty maps. Override entries mapping to ActionNone delete the binding
func Merge(base, override *Table) *Table {
	result := base.Clone()
	mergeChordMap(result.Global, override.Global)
	for i := range result.ByContext {
		mergeChordMap(result.ByContext[i], override.ByContext[i])
	}
	return result
}

func cloneChordMap(m map[Chord]Action) map[Chord]Action {
	c := make(map[Chord]Action, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func mergeChordMap(base, override map[Chord]Action) {
	for k, v := range override {
		if v == ActionNone {
			delete(base, k)
		} else {
			base[k] = v
		}
	}
}

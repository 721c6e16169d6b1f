package input

// Action is a resolved navigation command
type Action int

const (
	ActionNone Action = iota

	// Cycling
	ActionNextEntity
	ActionPrevEntity
	ActionNextCategory
	ActionPrevCategory

	// Announcements
	ActionRepeat
	ActionWhereAmI

	// Filters
	ActionToggleReachability
	ActionToggleTransitions

	// Scanning
	ActionRescan

	// Player movement (demo field context)
	ActionMoveNorth
	ActionMoveSouth
	ActionMoveWest
	ActionMoveEast

	// System
	ActionToggleAudio
	ActionQuit
)

// actionRegistry maps canonical action names to actions
// Used by the keymap config loader to resolve TOML action strings
var actionRegistry = map[string]Action{
	// Unbind sentinel
	"none": ActionNone,

	"next_entity":   ActionNextEntity,
	"prev_entity":   ActionPrevEntity,
	"next_category": ActionNextCategory,
	"prev_category": ActionPrevCategory,

	"repeat":     ActionRepeat,
	"where_am_i": ActionWhereAmI,

	"toggle_reachability": ActionToggleReachability,
	"toggle_transitions":  ActionToggleTransitions,

	"rescan": ActionRescan,

	"move_north": ActionMoveNorth,
	"move_south": ActionMoveSouth,
	"move_west":  ActionMoveWest,
	"move_east":  ActionMoveEast,

	"toggle_audio": ActionToggleAudio,
	"quit":         ActionQuit,
}

// ActionByName resolves an action from its canonical name
func ActionByName(name string) (Action, bool) {
	a, ok := actionRegistry[name]
	return a, ok
}

var actionNames = func() map[Action]string {
	m := make(map[Action]string, len(actionRegistry))
	for name, a := range actionRegistry {
		m[a] = name
	}
	return m
}()

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "unknown"
}

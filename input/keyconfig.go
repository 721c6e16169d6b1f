package input

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
)

// Named special keys accepted in keymap config
var keyNames = map[string]tcell.Key{
	"tab":       tcell.KeyTab,
	"backtab":   tcell.KeyBacktab,
	"enter":     tcell.KeyEnter,
	"escape":    tcell.KeyEscape,
	"esc":       tcell.KeyEscape,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"insert":    tcell.KeyInsert,
	"delete":    tcell.KeyDelete,
	"backspace": tcell.KeyBackspace2,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space": ' ',
	"plus":  '+',
}

// TOML section names → context mapping; "global" feeds the shared layer
var sectionDefs = []struct {
	name   string
	ctx    Context
	global bool
}{
	{"global", 0, true},
	{"field", ContextField, false},
	{"battle", ContextBattle, false},
	{"status", ContextStatusNav, false},
}

// LoadKeyConfig parses TOML keymap data into a sparse override Table
// Only sections/chords present in the TOML are populated
// Returns an error on unknown action names, invalid chords, or parse failure
func LoadKeyConfig(data []byte) (*Table, error) {
	var raw map[string]map[string]string
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}

	t := NewTable()
	for _, def := range sectionDefs {
		section, ok := raw[def.name]
		if !ok {
			continue
		}

		for chordStr, actionName := range section {
			chord, err := ParseChord(chordStr)
			if err != nil {
				return nil, fmt.Errorf("[%s] key %q: %w", def.name, chordStr, err)
			}

			action, ok := ActionByName(strings.ToLower(strings.TrimSpace(actionName)))
			if !ok {
				return nil, fmt.Errorf("[%s] key %q: unknown action: %q", def.name, chordStr, actionName)
			}

			if def.global {
				t.Global[chord] = action
			} else {
				t.ByContext[def.ctx][chord] = action
			}
		}
	}

	return t, nil
}

// ParseChord converts a "mod+mod+key" string to a normalized chord
//
// Modifiers: ctrl, alt, shift, meta. Keys: named specials, single
// characters, and rune aliases. "ctrl+x" for a letter resolves to the
// dedicated Ctrl key code, matching Normalize
func ParseChord(s string) (Chord, error) {
	parts := strings.Split(strings.TrimSpace(s), "+")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return Chord{}, fmt.Errorf("empty chord")
	}

	var mods tcell.ModMask
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(p) {
		case "ctrl":
			mods |= tcell.ModCtrl
		case "alt":
			mods |= tcell.ModAlt
		case "shift":
			mods |= tcell.ModShift
		case "meta":
			mods |= tcell.ModMeta
		default:
			return Chord{}, fmt.Errorf("unknown modifier: %q", p)
		}
	}

	keyStr := parts[len(parts)-1]
	lower := strings.ToLower(keyStr)

	// ctrl+letter becomes the dedicated key code, per Normalize
	if mods&tcell.ModCtrl != 0 && len(lower) == 1 && lower[0] >= 'a' && lower[0] <= 'z' {
		return Chord{
			Key:  tcell.KeyCtrlA + tcell.Key(lower[0]-'a'),
			Mods: mods &^ tcell.ModCtrl,
		}, nil
	}

	if k, ok := keyNames[lower]; ok {
		return Chord{Key: k, Mods: mods}, nil
	}

	if r, ok := runeAliases[lower]; ok {
		return Chord{Key: tcell.KeyRune, Rune: r, Mods: mods &^ tcell.ModShift}, nil
	}

	runes := []rune(keyStr)
	if len(runes) == 1 {
		return Chord{Key: tcell.KeyRune, Rune: runes[0], Mods: mods &^ tcell.ModShift}, nil
	}

	return Chord{}, fmt.Errorf("invalid key: %q (expected single character, alias, or named key)", keyStr)
}

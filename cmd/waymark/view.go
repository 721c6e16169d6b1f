package main

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"waymark/entity"
	"waymark/input"
	"waymark/scanner"
)

var categoryGlyphs = map[entity.Category]rune{
	entity.CategoryNone:    '.',
	entity.CategoryItem:    '!',
	entity.CategoryChest:   '$',
	entity.CategoryNPC:     'n',
	entity.CategoryEnemy:   'e',
	entity.CategoryDoor:    '+',
	entity.CategoryStairs:  '>',
	entity.CategoryGateway: 'O',
}

// view renders the simulated world, the filtered list and the announcement
// line. It doubles as the announce.Sink: spoken text lands on the bottom row
type view struct {
	mu     sync.Mutex
	screen tcell.Screen
	spoken string
	state  input.State
	paused bool
}

func newView(screen tcell.Screen) *view {
	return &view{screen: screen}
}

// Speak implements announce.Sink
func (v *view) Speak(text string) {
	v.mu.Lock()
	v.spoken = text
	v.mu.Unlock()
}

// SetState records the input-context flags shown in the status line
// Called from the input goroutine; Render picks it up on the next frame
func (v *view) SetState(state input.State) {
	v.mu.Lock()
	v.state = state
	v.mu.Unlock()
}

// SetPaused records the suppression marker for the status line
func (v *view) SetPaused(paused bool) {
	v.mu.Lock()
	v.paused = paused
	v.mu.Unlock()
}

// Render draws one frame from the scanner's current state
// Called from the tick goroutine after each step
func (v *view) Render(scan *scanner.Scanner) {
	v.mu.Lock()
	defer v.mu.Unlock()

	state, paused := v.state, v.paused

	s := v.screen
	s.Clear()

	snap := scan.Snapshot()
	sel := scan.Selector()
	selected, hasSel := sel.Current()

	// World pane
	mapTop := 2
	if snap.Grid != nil {
		for y := 0; y < snap.Grid.Height; y++ {
			for x := 0; x < snap.Grid.Width; x++ {
				if !snap.Grid.Walkable(x, y) {
					s.SetContent(x, mapTop+y, '#', nil, tcell.StyleDefault.Foreground(tcell.ColorGray))
				}
			}
		}
	}
	for _, e := range sel.List() {
		glyph := categoryGlyphs[e.Category]
		style := tcell.StyleDefault
		if hasSel && e.ID == selected.ID {
			style = style.Foreground(tcell.ColorYellow).Bold(true)
		}
		s.SetContent(int(e.Pos.X), mapTop+int(e.Pos.Y), glyph, nil, style)
	}
	if snap.PlayerOK {
		s.SetContent(int(snap.Player.X), mapTop+int(snap.Player.Y), '@',
			nil, tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true))
	}

	// Status line
	status := fmt.Sprintf(" %s | context: %s | %d entities", snap.MapID, state.Resolve(), sel.Len())
	if sel.SelectionLost() {
		status += " | selection lost"
	}
	if paused {
		status += " | PAUSED"
	}
	drawText(s, 0, 0, status, tcell.StyleDefault.Reverse(true))

	// List pane to the right of the map
	listX := simWidth + 2
	drawText(s, listX, mapTop-1, "nearby:", tcell.StyleDefault.Bold(true))
	for i, e := range sel.List() {
		style := tcell.StyleDefault
		prefix := "  "
		if i == sel.Index() && hasSel {
			style = style.Foreground(tcell.ColorYellow)
			prefix = "> "
		}
		dist := e.Pos.DistanceTo(snap.Player)
		drawText(s, listX, mapTop+i, fmt.Sprintf("%s%s (%s) %.0f", prefix, e.Name, e.Category, dist), style)
	}

	// Announcement line
	_, h := s.Size()
	drawText(s, 0, h-1, " "+v.spoken, tcell.StyleDefault.Foreground(tcell.ColorAqua))

	s.Show()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}

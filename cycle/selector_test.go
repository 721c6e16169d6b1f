package cycle

import (
	"testing"

	"waymark/core"
	"waymark/entity"
)

// testEnt builds a live entity whose ID is stable across list reorders
func testEnt(name string, x, y float64) entity.Entity {
	return entity.New(entity.CategoryItem, name, core.Point{X: x, Y: y}, 1, 0.5, entity.NewRef())
}

// TestRebuildSelectsHeadInitially verifies the first rebuild selects index 0
func TestRebuildSelectsHeadInitially(t *testing.T) {
	s := NewSelector()
	a := testEnt("a", 1, 0)
	b := testEnt("b", 2, 0)

	outcome := s.Rebuild([]entity.Entity{a, b})
	if outcome != OutcomeMoved {
		t.Errorf("Expected OutcomeMoved on first rebuild, got %v", outcome)
	}

	cur, ok := s.Current()
	if !ok || cur.ID != a.ID {
		t.Errorf("Expected head entity selected, got %v ok=%v", cur.Name, ok)
	}
	if s.Index() != 0 {
		t.Errorf("Expected cursor at 0, got %d", s.Index())
	}
}

// TestCursorRelocatesAfterReorder verifies the worked reorder scenario:
// entities at distances 10, 5, 20 order as [B A C]; after the player moves,
// the selected entity re-sorts to the tail and the cursor follows it
func TestCursorRelocatesAfterReorder(t *testing.T) {
	s := NewSelector()

	// Positions put A at distance 10, B at 5, C at 20 from origin
	a := testEnt("a", 10, 0)
	b := testEnt("b", 5, 0)
	c := testEnt("c", 20, 0)

	if outcome := s.Rebuild([]entity.Entity{b, a, c}); outcome != OutcomeMoved {
		t.Fatalf("Expected OutcomeMoved on first rebuild, got %v", outcome)
	}

	// Cycle forward once: selection lands on A at index 1
	cur, outcome, ok := s.Next()
	if !ok || outcome != OutcomeMoved || cur.ID != a.ID {
		t.Fatalf("Expected Next to select a, got %v outcome=%v ok=%v", cur.Name, outcome, ok)
	}

	// Player movement changed distances: A now sorts last
	outcome = s.Rebuild([]entity.Entity{b, c, a})
	if outcome != OutcomeRelocated {
		t.Errorf("Expected OutcomeRelocated, got %v", outcome)
	}
	if s.Index() != 2 {
		t.Errorf("Expected cursor relocated to index 2, got %d", s.Index())
	}
	cur, ok = s.Current()
	if !ok || cur.ID != a.ID {
		t.Errorf("Expected a still selected after relocation, got %v", cur.Name)
	}
	if s.SelectionLost() {
		t.Error("Expected no selection loss on successful relocation")
	}
}

// TestRebuildSameIndexIsUnchanged verifies a rebuild that keeps the selected
// entity at its index reports no change
func TestRebuildSameIndexIsUnchanged(t *testing.T) {
	s := NewSelector()
	a := testEnt("a", 1, 0)
	b := testEnt("b", 2, 0)

	s.Rebuild([]entity.Entity{a, b})
	if outcome := s.Rebuild([]entity.Entity{a, b}); outcome != OutcomeUnchanged {
		t.Errorf("Expected OutcomeUnchanged, got %v", outcome)
	}
}

// TestNextPreviousAreInverse verifies Previous undoes Next at every position
func TestNextPreviousAreInverse(t *testing.T) {
	s := NewSelector()
	list := []entity.Entity{
		testEnt("a", 1, 0), testEnt("b", 2, 0), testEnt("c", 3, 0), testEnt("d", 4, 0),
	}
	s.Rebuild(list)

	for i := 0; i < len(list)*2; i++ {
		before := s.Index()
		s.Next()
		s.Previous()
		if s.Index() != before {
			t.Fatalf("Expected Previous to undo Next at index %d, got %d", before, s.Index())
		}
		s.Next()
	}
}

// TestWraparound verifies cycling past either end wraps
func TestWraparound(t *testing.T) {
	s := NewSelector()
	a := testEnt("a", 1, 0)
	b := testEnt("b", 2, 0)
	c := testEnt("c", 3, 0)
	s.Rebuild([]entity.Entity{a, b, c})

	// Head is selected; Previous wraps to the tail
	cur, _, _ := s.Previous()
	if cur.ID != c.ID {
		t.Errorf("Expected Previous from head to wrap to c, got %v", cur.Name)
	}

	// And Next from the tail wraps back to the head
	cur, _, _ = s.Next()
	if cur.ID != a.ID {
		t.Errorf("Expected Next from tail to wrap to a, got %v", cur.Name)
	}
}

// TestSelectionLostLatchesOnce verifies a vanished selection reports Lost on
// exactly one rebuild, resets to head, and clears on the next selection
func TestSelectionLostLatchesOnce(t *testing.T) {
	s := NewSelector()
	a := testEnt("a", 1, 0)
	b := testEnt("b", 2, 0)
	c := testEnt("c", 3, 0)

	s.Rebuild([]entity.Entity{a, b, c})
	s.Next() // select b

	// b vanishes
	outcome := s.Rebuild([]entity.Entity{a, c})
	if outcome != OutcomeLost {
		t.Errorf("Expected OutcomeLost, got %v", outcome)
	}
	if s.Index() != 0 {
		t.Errorf("Expected cursor reset to 0 on loss, got %d", s.Index())
	}
	if !s.SelectionLost() {
		t.Error("Expected selection-lost flag latched")
	}

	// Identical rebuild: the auto-selected head resolves, no repeat loss
	outcome = s.Rebuild([]entity.Entity{a, c})
	if outcome != OutcomeUnchanged {
		t.Errorf("Expected OutcomeUnchanged on repeat rebuild, got %v", outcome)
	}
	if s.SelectionLost() {
		t.Error("Expected selection-lost flag cleared by successful relocation")
	}
}

// TestCursorMovementClearsLostFlag verifies explicit cycling ends the
// lost state
func TestCursorMovementClearsLostFlag(t *testing.T) {
	s := NewSelector()
	a := testEnt("a", 1, 0)
	b := testEnt("b", 2, 0)

	s.Rebuild([]entity.Entity{a, b})
	s.Next() // select b
	s.Rebuild([]entity.Entity{a})

	if !s.SelectionLost() {
		t.Fatal("Expected selection lost after b vanished")
	}
	s.Next()
	if s.SelectionLost() {
		t.Error("Expected Next to clear the lost flag")
	}
}

// TestEmptyList verifies empty-list behavior for rebuilds and cycling
func TestEmptyList(t *testing.T) {
	s := NewSelector()

	if outcome := s.Rebuild(nil); outcome != OutcomeEmpty {
		t.Errorf("Expected OutcomeEmpty on empty rebuild, got %v", outcome)
	}
	if _, _, ok := s.Next(); ok {
		t.Error("Expected Next on empty list to report ok=false")
	}
	if _, ok := s.Current(); ok {
		t.Error("Expected Current on empty list to report ok=false")
	}
}

// TestEmptyAfterSelectionIsLostOnce verifies going from a selection to an
// empty list reports Lost once, then Empty
func TestEmptyAfterSelectionIsLostOnce(t *testing.T) {
	s := NewSelector()
	s.Rebuild([]entity.Entity{testEnt("a", 1, 0)})

	if outcome := s.Rebuild(nil); outcome != OutcomeLost {
		t.Errorf("Expected OutcomeLost when selection empties, got %v", outcome)
	}
	if outcome := s.Rebuild(nil); outcome != OutcomeEmpty {
		t.Errorf("Expected OutcomeEmpty on repeat empty rebuild, got %v", outcome)
	}
}

// TestRepopulateAfterEmptyClearsLostFlag verifies a fresh selection made when
// entities return after an empty list also clears the latched lost flag
func TestRepopulateAfterEmptyClearsLostFlag(t *testing.T) {
	s := NewSelector()
	s.Rebuild([]entity.Entity{testEnt("a", 1, 0)})

	if outcome := s.Rebuild(nil); outcome != OutcomeLost {
		t.Fatalf("Expected OutcomeLost when selection empties, got %v", outcome)
	}
	if !s.SelectionLost() {
		t.Fatal("Expected selection-lost flag latched while empty")
	}

	// Entities reappear: the head selection is a successful selection
	if outcome := s.Rebuild([]entity.Entity{testEnt("b", 2, 0)}); outcome != OutcomeMoved {
		t.Errorf("Expected OutcomeMoved on repopulated rebuild, got %v", outcome)
	}
	if s.SelectionLost() {
		t.Error("Expected selection-lost flag cleared by the fresh selection")
	}
}

// TestResetClearsEverything verifies Reset drops list, cursor and latch
func TestResetClearsEverything(t *testing.T) {
	s := NewSelector()
	s.Rebuild([]entity.Entity{testEnt("a", 1, 0), testEnt("b", 2, 0)})
	s.Next()
	s.Rebuild(nil) // latch the lost flag

	s.Reset()

	if s.Len() != 0 || s.Index() != 0 || s.SelectionLost() {
		t.Errorf("Expected clean state after Reset, got len=%d idx=%d lost=%v",
			s.Len(), s.Index(), s.SelectionLost())
	}
	// Reset also forgets the selected ID: next rebuild is a fresh selection
	if outcome := s.Rebuild([]entity.Entity{testEnt("a", 1, 0)}); outcome != OutcomeMoved {
		t.Errorf("Expected OutcomeMoved after Reset, got %v", outcome)
	}
}

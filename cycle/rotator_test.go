package cycle

import (
	"testing"

	"waymark/entity"
)

// TestRotatorCyclesForwardAndBack verifies rotation order and wraparound
func TestRotatorCyclesForwardAndBack(t *testing.T) {
	r := NewRotator([]entity.Category{
		entity.CategoryNone, entity.CategoryItem, entity.CategoryEnemy,
	})

	if r.Current() != entity.CategoryNone {
		t.Errorf("Expected initial category none, got %v", r.Current())
	}
	if c := r.Next(); c != entity.CategoryItem {
		t.Errorf("Expected item after first Next, got %v", c)
	}
	if c := r.Next(); c != entity.CategoryEnemy {
		t.Errorf("Expected enemy after second Next, got %v", c)
	}
	if c := r.Next(); c != entity.CategoryNone {
		t.Errorf("Expected wrap to none, got %v", c)
	}
	if c := r.Previous(); c != entity.CategoryEnemy {
		t.Errorf("Expected Previous to wrap to enemy, got %v", c)
	}
}

// TestRotatorEmptyOrderFallsBack verifies an empty order degrades to "all"
func TestRotatorEmptyOrderFallsBack(t *testing.T) {
	r := NewRotator(nil)
	if r.Current() != entity.CategoryNone {
		t.Errorf("Expected none for empty order, got %v", r.Current())
	}
	if c := r.Next(); c != entity.CategoryNone {
		t.Errorf("Expected none to persist through rotation, got %v", c)
	}
}

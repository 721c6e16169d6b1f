package cycle

import "waymark/entity"

// Rotator cycles through an ordered list of category tags
//
// Category cycling is a coarser operation than entity cycling: rotating the
// active category re-applies the category filter, which triggers a full
// rebuild and an expected selection loss
type Rotator struct {
	order []entity.Category
	idx   int
}

// NewRotator builds a rotator over the given category order
// Index 0 is the "all categories" position when CategoryNone leads the order
func NewRotator(order []entity.Category) *Rotator {
	if len(order) == 0 {
		order = []entity.Category{entity.CategoryNone}
	}
	return &Rotator{order: order}
}

// Current returns the active category tag
func (r *Rotator) Current() entity.Category {
	return r.order[r.idx]
}

// Next rotates forward and returns the new active category
func (r *Rotator) Next() entity.Category {
	r.idx = (r.idx + 1) % len(r.order)
	return r.order[r.idx]
}

// Previous rotates backward and returns the new active category
func (r *Rotator) Previous() entity.Category {
	r.idx = (r.idx - 1 + len(r.order)) % len(r.order)
	return r.order[r.idx]
}

// Reset returns to the first position
func (r *Rotator) Reset() {
	r.idx = 0
}

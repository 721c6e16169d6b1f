package entity

import "sync/atomic"

// Ref is a liveness handle for the live object backing an Entity
//
// The world source owns the handle and invalidates it when the underlying
// object is destroyed. Entities from successive scans of the same live object
// share one Ref, so invalidation reaches every generation at once
type Ref struct {
	dead atomic.Bool
}

// NewRef returns a live handle
func NewRef() *Ref {
	return &Ref{}
}

// Alive reports whether the underlying object still exists
func (r *Ref) Alive() bool {
	return !r.dead.Load()
}

// Invalidate marks the underlying object destroyed
// Idempotent; safe to call from the source at any time
func (r *Ref) Invalidate() {
	r.dead.Store(true)
}

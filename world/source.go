package world

import "waymark/entity"

// Source is the world-scanner collaborator boundary
//
// A source produces the ordered set of currently-discovered entities together
// with the matching state snapshot. The scanner pulls from it during a rescan
// and never calls it outside one
type Source interface {
	// Scan returns the discovered entities and the snapshot they belong to
	// Both must be consistent: every entity's Epoch matches the snapshot's
	Scan() ([]entity.Entity, Snapshot)
}

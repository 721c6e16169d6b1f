package entity

import (
	"waymark/core"
)

// Category tags a discovered entity with its navigation class
type Category uint8

const (
	CategoryNone Category = iota
	CategoryItem
	CategoryChest
	CategoryNPC
	CategoryEnemy
	CategoryDoor
	CategoryStairs
	CategoryGateway
	CategoryCount
)

var categoryNames = [CategoryCount]string{
	"none",
	"item",
	"chest",
	"npc",
	"enemy",
	"door",
	"stairs",
	"gateway",
}

func (c Category) String() string {
	if c >= CategoryCount {
		return "unknown"
	}
	return categoryNames[c]
}

// CategoryByName resolves a category from its lowercase name
func CategoryByName(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return CategoryNone, false
}

// TransitionCategories are the categories that move the player between layers
var TransitionCategories = map[Category]bool{
	CategoryDoor:    true,
	CategoryStairs:  true,
	CategoryGateway: true,
}

// Entity is a discovered in-world object of interest
//
// Instances are immutable after creation: a rescan produces new instances
// rather than mutating old ones. The Ref back-reference is weak; the
// underlying live object may die at any time, after which Alive reports false
type Entity struct {
	ID       ID
	Category Category
	Name     string
	Pos      core.Point
	Epoch    uint64

	ref *Ref
}

// New creates an entity with a stable identifier derived from
// category, name and quantized position
func New(cat Category, name string, pos core.Point, epoch uint64, step float64, ref *Ref) Entity {
	return Entity{
		ID:       DeriveID(cat, name, pos, step),
		Category: cat,
		Name:     name,
		Pos:      pos,
		Epoch:    epoch,
		ref:      ref,
	}
}

// Alive reports whether the underlying live object still exists
// Entities created without a ref are treated as dead
func (e Entity) Alive() bool {
	return e.ref != nil && e.ref.Alive()
}

// Ref returns the weak back-reference, nil if none was attached
func (e Entity) Ref() *Ref {
	return e.ref
}

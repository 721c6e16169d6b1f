package entity

import (
	"hash/fnv"
	"math"

	"waymark/core"
)

// ID is a stable identifier for a logical entity
//
// Derived from category + name + quantized position, never from array index,
// so the same logical entity keeps its ID across rescans and re-sorts within
// one epoch. Zero is reserved for "no entity"
type ID uint64

const IDNone ID = 0

// DefaultQuantizeStep is coarse enough to survive positional jitter between
// scans, fine enough to separate adjacent pickups
const DefaultQuantizeStep = 0.5

// DeriveID hashes category, name and quantized position into a stable ID
func DeriveID(cat Category, name string, pos core.Point, step float64) ID {
	if step <= 0 {
		step = DefaultQuantizeStep
	}

	h := fnv.New64a()
	h.Write([]byte{byte(cat)})
	h.Write([]byte(name))

	qx := int64(math.Floor(pos.X / step))
	qy := int64(math.Floor(pos.Y / step))
	var buf [16]byte
	putInt64(buf[0:8], qx)
	putInt64(buf[8:16], qy)
	h.Write(buf[:])

	id := ID(h.Sum64())
	if id == IDNone {
		id = 1
	}
	return id
}

func putInt64(b []byte, v int64) {
	u := uint64(v)
	for i := 0; i < 8; i++ {
		b[i] = byte(u >> (8 * i))
	}
}

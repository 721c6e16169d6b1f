package events

import "time"

// Type identifies a navigation event
type Type int

const (
	TypeNone Type = iota

	// TypeRescanRequested asks the scanner for a fresh pull from the source
	// Producer: ticker (periodic), input actions, map watcher
	// Consumer: scanner | Fields: Cause
	TypeRescanRequested

	// TypeMapChanged signals an epoch change (map load)
	// Producer: world source watcher
	// Consumer: scanner (reset working set and selection) | Fields: Text=map id
	TypeMapChanged

	// TypeAction carries a resolved input action from the input goroutine
	// onto the update tick
	// Producer: input dispatcher | Consumer: ticker | Fields: Code
	TypeAction

	// TypeAnnounce carries free-form announcement text
	// Producer: any | Consumer: announcer | Fields: Text
	TypeAnnounce
)

// Cause ranks what triggered a rescan; higher values supersede lower ones
// when coalescing within a tick
type Cause uint8

const (
	CauseNone Cause = iota
	CausePeriodic
	CauseInput
	CauseMapChange
)

func (c Cause) String() string {
	switch c {
	case CausePeriodic:
		return "periodic"
	case CauseInput:
		return "input"
	case CauseMapChange:
		return "map-change"
	}
	return "none"
}

// Event is a fixed-size value passed through the queue
// Small inline fields instead of payload pointers keep pushes allocation-free
type Event struct {
	Type  Type
	When  time.Time
	Cause Cause
	Code  int // action code for TypeAction
	Text  string
}

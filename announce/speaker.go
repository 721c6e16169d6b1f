// Package announce converts selection results into spoken text and audio
// cues. It is the output boundary of the navigation core: the scanner hands
// it the selected entity (or "none"), nothing flows back.
package announce

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/Moonlight-Companies/gologger/logger"

	"waymark/core"
	"waymark/cycle"
	"waymark/entity"
	"waymark/status"
	"waymark/world"
)

// Sink receives final announcement text
// The demo front end renders it; a real deployment forwards it to a
// text-to-speech backend
type Sink interface {
	Speak(text string)
}

// Speaker formats selections, deduplicates by last value, and forwards text
// to the sink plus earcons to the cue player
type Speaker struct {
	sink    Sink
	cues    *CuePlayer // nil disables audio
	phrases Phrases
	log     *logger.Logger

	last string

	statSpoken *atomic.Int64
	statMuted  *atomic.Int64
}

// NewSpeaker creates a speaker
// cues may be nil; phrases may be nil for the identity mapping
func NewSpeaker(sink Sink, cues *CuePlayer, phrases Phrases, log *logger.Logger, reg *status.Registry) *Speaker {
	return &Speaker{
		sink:       sink,
		cues:       cues,
		phrases:    phrases,
		log:        log,
		statSpoken: reg.Ints.Get("announce.spoken"),
		statMuted:  reg.Ints.Get("announce.deduplicated"),
	}
}

// Say forwards text unless it repeats the previous announcement
func (s *Speaker) Say(text string) {
	if text == "" {
		return
	}
	if text == s.last {
		s.statMuted.Add(1)
		return
	}
	s.last = text
	s.statSpoken.Add(1)
	if s.log != nil {
		s.log.Debugln("announce:", text)
	}
	s.sink.Speak(text)
}

// Reset clears the dedup state so the next announcement always speaks
// Used after explicit "repeat" requests
func (s *Speaker) Reset() {
	s.last = ""
}

// Cue plays an earcon if audio is wired
func (s *Speaker) Cue(kind CueKind) {
	if s.cues != nil {
		s.cues.Play(kind)
	}
}

// AnnounceSelection speaks the outcome of a cursor move or rebuild
func (s *Speaker) AnnounceSelection(e entity.Entity, outcome cycle.Outcome, snap world.Snapshot, index, total int) {
	switch outcome {
	case cycle.OutcomeEmpty:
		s.Cue(CueEmpty)
		s.Say(s.phrases.Lookup("no entities"))
	case cycle.OutcomeLost:
		s.Cue(CueLost)
		if total == 0 {
			s.Say(fmt.Sprintf("%s. %s", s.phrases.Lookup("selection lost"), s.phrases.Lookup("no entities")))
			return
		}
		s.Say(fmt.Sprintf("%s. %s", s.phrases.Lookup("selection lost"), s.Describe(e, snap, index, total)))
	case cycle.OutcomeMoved, cycle.OutcomeRelocated:
		s.Cue(CueSelect)
		s.Say(s.Describe(e, snap, index, total))
	case cycle.OutcomeUnchanged:
		// Same entity, same place: nothing to say
	}
}

// AnnounceCategory speaks the active category after a rotation
func (s *Speaker) AnnounceCategory(c entity.Category) {
	s.Cue(CueSelect)
	if c == entity.CategoryNone {
		s.Say(s.phrases.Lookup("all categories"))
		return
	}
	s.Say(s.phrases.Lookup(c.String()))
}

// Describe formats an entity as spoken text: name, category, distance and
// compass direction from the player
func (s *Speaker) Describe(e entity.Entity, snap world.Snapshot, index, total int) string {
	name := s.phrases.Lookup(e.Name)
	cat := s.phrases.Lookup(e.Category.String())

	if !snap.PlayerOK {
		return fmt.Sprintf("%s, %s, %d of %d", name, cat, index+1, total)
	}

	dist := e.Pos.DistanceTo(snap.Player)
	dir := compass(snap.Player, e.Pos)
	return fmt.Sprintf("%s, %s, %.0f %s, %d of %d",
		name, cat, dist, s.phrases.Lookup(dir), index+1, total)
}

// compassNames in sector order starting east, counterclockwise-positive angle
var compassNames = [8]string{
	"east", "northeast", "north", "northwest",
	"west", "southwest", "south", "southeast",
}

// compass returns the eight-way direction label from one point to another
// Screen convention: +Y is south
func compass(from, to core.Point) string {
	angle := math.Atan2(from.Y-to.Y, to.X-from.X) // +Y down, flip for north-up
	sector := int(math.Round(angle/(math.Pi/4))) & 7
	return compassNames[sector]
}

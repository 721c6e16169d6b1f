package announce

// Deferred schedules continuations that run one tick after scheduling
//
// This replaces blocking waits in announcement flows: schedule "resume after
// the next frame boundary" and let the tick loop drain due entries. Each
// continuation carries a liveness guard; if the guard fails by the time the
// continuation is due, it silently aborts. Single-threaded, owned by the tick
type Deferred struct {
	due     []continuation
	pending []continuation
}

type continuation struct {
	alive func() bool
	fn    func()
}

// NewDeferred creates an empty scheduler
func NewDeferred() *Deferred {
	return &Deferred{}
}

// Schedule queues fn to run on the tick after the current one
// alive is re-checked at run time; nil means always alive
func (d *Deferred) Schedule(alive func() bool, fn func()) {
	d.pending = append(d.pending, continuation{alive: alive, fn: fn})
}

// RunDue executes continuations scheduled before this tick and promotes
// the pending batch for the next one
func (d *Deferred) RunDue() {
	run := d.due
	d.due = d.pending
	// Continuations may schedule more work; a fresh pending slice keeps the
	// batch being drained stable
	d.pending = nil

	for _, c := range run {
		if c.alive != nil && !c.alive() {
			continue
		}
		c.fn()
	}
}

// Len returns the number of queued continuations (due plus pending)
func (d *Deferred) Len() int {
	return len(d.due) + len(d.pending)
}

// Package scroll implements the infinite-scroll trigger: a small state
// machine that requests the next page when the user approaches the end of
// the rendered list, with a guard against double fetches.
package scroll

// Phase is the trigger's state
type Phase int

const (
	// PhaseIdle: not watching. Entered on creation, on disconnect, and
	// terminally once no more pages exist.
	PhaseIdle Phase = iota
	// PhaseObserving: watching the list end for proximity.
	PhaseObserving
	// PhaseFetching: a page request is in flight; no second fetch may
	// start until it completes.
	PhaseFetching
)

// String returns a human-readable representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseObserving:
		return "observing"
	case PhaseFetching:
		return "fetching"
	default:
		return "unknown"
	}
}

// DefaultThreshold is how many items before the list end the trigger
// fires, the equivalent of the web client's early-fire root margin.
const DefaultThreshold = 2

// Trigger drives next-page fetches from list position. It is owned and
// driven by a single UI surface; no internal locking.
type Trigger struct {
	phase     Phase
	threshold int
}

// NewTrigger creates a trigger that fires within threshold items of the
// list end (<= 0 uses DefaultThreshold).
func NewTrigger(threshold int) *Trigger {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Trigger{phase: PhaseIdle, threshold: threshold}
}

// Phase returns the current state
func (t *Trigger) Phase() Phase { return t.phase }

// Observe arms the trigger when more pages may exist (mount, or a new
// filter generation). With no more pages it stays Idle.
func (t *Trigger) Observe(hasMore bool) {
	if t.phase == PhaseFetching {
		return
	}
	if hasMore {
		t.phase = PhaseObserving
	} else {
		t.phase = PhaseIdle
	}
}

// ShouldFetch reports whether a next-page fetch must start now, given the
// cursor position and the rendered item count. A true return transitions
// the trigger to Fetching, so a fetch already in flight can never be
// started twice.
func (t *Trigger) ShouldFetch(position, rendered int, hasMore bool) bool {
	if t.phase != PhaseObserving || !hasMore {
		return false
	}
	if rendered == 0 || position < rendered-1-t.threshold {
		return false
	}
	t.phase = PhaseFetching
	return true
}

// Complete settles an in-flight fetch (success or failure). The trigger
// returns to Observing while more pages may exist, otherwise Idle is
// terminal for this list.
func (t *Trigger) Complete(hasMore bool) {
	if t.phase != PhaseFetching {
		return
	}
	if hasMore {
		t.phase = PhaseObserving
	} else {
		t.phase = PhaseIdle
	}
}

// Disconnect stops observation. Called on unmount or filter change so the
// trigger cannot fire into a torn-down or now-irrelevant list.
func (t *Trigger) Disconnect() {
	t.phase = PhaseIdle
}

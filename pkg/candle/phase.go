package candle

// Phase is the sequencer state of a session.
type Phase string

const (
	PhaseNotStarted     Phase = "not_started"     // Setup: duration and overrides are editable
	PhaseAwaitingTruths Phase = "awaiting_truths" // Truth prompt is open for the active candle
	PhaseBurning        Phase = "burning"         // Active candle is melting
	PhasePaused         Phase = "paused"          // Active candle is melting but its clock is frozen
	PhaseFinished       Phase = "finished"        // All ten candles are out
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// CanTransitionTo checks if a transition from current phase to target phase is valid
func (p Phase) CanTransitionTo(target Phase) bool {
	validTransitions := map[Phase][]Phase{
		PhaseNotStarted:     {PhaseAwaitingTruths, PhaseBurning},
		PhaseAwaitingTruths: {PhaseBurning},
		PhaseBurning:        {PhaseAwaitingTruths, PhaseBurning, PhasePaused, PhaseFinished},
		PhasePaused:         {PhaseBurning, PhaseAwaitingTruths, PhaseFinished},
		PhaseFinished:       {},
	}

	allowed, ok := validTransitions[p]
	if !ok {
		return false
	}

	for _, phase := range allowed {
		if phase == target {
			return true
		}
	}
	return false
}

// Started reports whether the session has left setup.
func (p Phase) Started() bool {
	return p != PhaseNotStarted
}

// Melting reports whether a candle is consuming time in this phase, paused or not.
func (p Phase) Melting() bool {
	return p == PhaseBurning || p == PhasePaused
}

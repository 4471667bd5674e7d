package candle

import "fmt"

// EventType names one observable step of the sequencer
type EventType string

const (
	EventStarted        EventType = "session.started"
	EventTruthsRecorded EventType = "truths.recorded"
	EventTruthsSkipped  EventType = "truths.skipped"
	EventCandleOut      EventType = "candle.out"
	EventPromptOpened   EventType = "prompt.opened"
	EventCandleBurning  EventType = "candle.burning"
	EventPaused         EventType = "candle.paused"
	EventResumed        EventType = "candle.resumed"
	EventFinished       EventType = "session.finished"
)

// Event is one step between two sessions.
type Event struct {
	Type   EventType `json:"type"`
	Candle int       `json:"candle"`
	Cause  Cause     `json:"cause,omitempty"`
	Truths int       `json:"truths,omitempty"`
}

// Scene is the label number of the event's candle ("Scene 10" for candle 9).
func (e Event) Scene() int {
	return e.Candle + 1
}

func (e Event) String() string {
	switch e.Type {
	case EventStarted:
		return "The candles are lit."
	case EventTruthsRecorded:
		return fmt.Sprintf("Scene %d: %d truths recorded.", e.Scene(), e.Truths)
	case EventTruthsSkipped:
		return fmt.Sprintf("Scene %d: truths skipped.", e.Scene())
	case EventCandleOut:
		if e.Cause == CauseSnuffed {
			return fmt.Sprintf("Candle %d was snuffed.", e.Scene())
		}
		return fmt.Sprintf("Candle %d burned out.", e.Scene())
	case EventPromptOpened:
		if e.Candle == 0 {
			return fmt.Sprintf("Scene %d: write the last truth.", e.Scene())
		}
		return fmt.Sprintf("Scene %d: write %d truths.", e.Scene(), e.Candle+1)
	case EventCandleBurning:
		return fmt.Sprintf("Candle %d is burning.", e.Scene())
	case EventPaused:
		return fmt.Sprintf("Candle %d paused.", e.Scene())
	case EventResumed:
		return fmt.Sprintf("Candle %d resumed.", e.Scene())
	case EventFinished:
		return "All candles are out."
	default:
		return string(e.Type)
	}
}

// Diff describes the steps that lead from prev to next, in the order they
// happened. Ticks that do not put a candle out produce no events.
func Diff(prev, next Session) []Event {
	var events []Event

	if !prev.phase.Started() && next.phase.Started() {
		events = append(events, Event{Type: EventStarted, Candle: prev.active})
	}

	for ord := 0; ord < CandleCount; ord++ {
		if prev.slots[ord].Written || !next.slots[ord].Written || !next.phase.Started() {
			continue
		}
		candle := CandleCount - 1 - ord
		if n := len(next.slots[ord].Truths); n > 0 {
			events = append(events, Event{Type: EventTruthsRecorded, Candle: candle, Truths: n})
		} else {
			events = append(events, Event{Type: EventTruthsSkipped, Candle: candle})
		}
	}

	for candle := CandleCount - 1; candle >= 0; candle-- {
		if prev.causes[candle] == CauseNone && next.causes[candle] != CauseNone {
			events = append(events, Event{Type: EventCandleOut, Candle: candle, Cause: next.causes[candle]})
		}
	}

	changed := prev.phase != next.phase || prev.active != next.active
	if !changed {
		return events
	}

	switch next.phase {
	case PhaseAwaitingTruths:
		events = append(events, Event{Type: EventPromptOpened, Candle: next.active})
	case PhaseBurning:
		if prev.phase == PhasePaused && prev.active == next.active {
			events = append(events, Event{Type: EventResumed, Candle: next.active})
		} else {
			events = append(events, Event{Type: EventCandleBurning, Candle: next.active})
		}
	case PhasePaused:
		events = append(events, Event{Type: EventPaused, Candle: next.active})
	case PhaseFinished:
		events = append(events, Event{Type: EventFinished, Candle: Extinguished})
	}
	return events
}

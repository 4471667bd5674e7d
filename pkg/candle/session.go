package candle

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// CandleCount is the number of candles lit at the start of a session.
	CandleCount = 10
	// Extinguished is the active index once every candle is out.
	Extinguished = -1
	// DefaultMinutes is the burn time of a candle unless configured otherwise.
	DefaultMinutes = 1
	// MaxMinutes is the longest burn time a candle accepts.
	MaxMinutes = 999
)

// Cause records how a candle went out.
type Cause string

const (
	CauseNone      Cause = ""           // Still standing
	CauseBurnedOut Cause = "burned_out" // Countdown reached zero
	CauseSnuffed   Cause = "snuffed"    // Put out by hand
)

// Slot holds the truths written before one scene.
type Slot struct {
	Truths  []string `json:"truths"`
	Written bool     `json:"written"` // Set on submit or skip, never cleared
}

// Settings are the session options that can only change before the start.
type Settings struct {
	DurationMinutes int      `json:"duration_minutes"`
	First           Override `json:"first"`
	Last            Override `json:"last"`
}

// Session is the candle sequencer: the ten candles, which one is active, and
// the truths recorded for each scene.
//
// Session is an immutable value. Every transition returns the next Session
// and leaves the receiver untouched; on error the receiver is returned as is.
// Candles are addressed by index 9..0 ("candles remaining"), scenes by
// ordinal 0..9 where ordinal = 9 - index.
type Session struct {
	id        uuid.UUID
	settings  Settings
	phase     Phase
	active    int
	slots     [CandleCount]Slot
	causes    [CandleCount]Cause
	countdown Countdown
}

// NewSession returns a session in setup with all ten candles standing.
func NewSession(settings Settings) Session {
	if settings.DurationMinutes < 1 {
		settings.DurationMinutes = DefaultMinutes
	}
	settings.DurationMinutes = ClampMinutes(settings.DurationMinutes)
	s := Session{
		id:       uuid.New(),
		settings: settings,
		phase:    PhaseNotStarted,
		active:   CandleCount - 1,
	}
	s.countdown = NewCountdown(s.active, settings.DurationMinutes)
	return s
}

func (s Session) ID() uuid.UUID { return s.id }
func (s Session) Settings() Settings { return s.settings }
func (s Session) Phase() Phase { return s.phase }
func (s Session) ActiveIndex() int { return s.active }
func (s Session) Countdown() Countdown { return s.countdown }
func (s Session) Paused() bool { return s.phase == PhasePaused }
func (s Session) Melting() bool { return s.phase.Melting() }
func (s Session) PromptOpen() bool { return s.phase == PhaseAwaitingTruths }
func (s Session) Token() (Token, bool) { return s.countdown.Token() }
func (s Session) Cause(candle int) Cause {
	if candle < 0 || candle >= CandleCount {
		return CauseNone
	}
	return s.causes[candle]
}

// Remaining returns the seconds left on a candle: zero once it is out, the
// live countdown for the active candle, the full duration otherwise.
func (s Session) Remaining(candle int) int {
	switch {
	case candle < 0 || candle >= CandleCount:
		return 0
	case s.causes[candle] != CauseNone:
		return 0
	case candle == s.countdown.Candle():
		return s.countdown.Remaining()
	default:
		return s.settings.DurationMinutes * 60
	}
}

// Ordinal converts a candle index to the ordinal of the scene it lights.
func Ordinal(candle int) int {
	return CandleCount - 1 - candle
}

// IsActive reports whether candle is the one the session is on. Exactly one
// candle is active between start and finish, none otherwise.
func (s Session) IsActive(candle int) bool {
	if s.phase == PhaseNotStarted || s.phase == PhaseFinished {
		return false
	}
	return candle == s.active
}

// Slot returns a copy of the truths slot for a scene ordinal.
func (s Session) Slot(ordinal int) (Slot, error) {
	if ordinal < 0 || ordinal >= CandleCount {
		return Slot{}, fmt.Errorf("%w: %d", ErrSceneRange, ordinal)
	}
	slot := s.slots[ordinal]
	slot.Truths = append([]string(nil), slot.Truths...)
	return slot, nil
}

// Prompt returns the open truth prompt, if any.
func (s Session) Prompt() (Prompt, bool) {
	if s.phase != PhaseAwaitingTruths {
		return Prompt{}, false
	}
	return NewPrompt(s.active, s.settings.First, s.settings.Last), true
}

// SetDuration changes the burn time of every candle, clamped to
// 1..MaxMinutes.
func (s Session) SetDuration(minutes int) (Session, error) {
	if s.phase.Started() {
		return s, ErrAlreadyStarted
	}
	minutes = ClampMinutes(minutes)
	s.settings.DurationMinutes = minutes
	s.countdown = s.countdown.WithDuration(minutes)
	return s, nil
}

// SetFirstOverride configures the fixed first truth of every prompt.
func (s Session) SetFirstOverride(o Override) (Session, error) {
	if s.phase.Started() {
		return s, ErrAlreadyStarted
	}
	s.settings.First = o
	return s, nil
}

// SetLastOverride configures the fixed last truth of every prompt.
func (s Session) SetLastOverride(o Override) (Session, error) {
	if s.phase.Started() {
		return s, ErrAlreadyStarted
	}
	s.settings.Last = o
	return s, nil
}

// Prefill records truths for a scene before the start. A prefilled scene does
// not prompt when its candle comes up.
func (s Session) Prefill(ordinal int, truths []string) (Session, error) {
	if s.phase.Started() {
		return s, ErrAlreadyStarted
	}
	if len(truths) == 0 {
		return s, fmt.Errorf("prefill: %w", ErrTruthCount)
	}
	for i, t := range truths {
		if strings.TrimSpace(t) == "" {
			return s, fmt.Errorf("prefill: %w: position %d", ErrBlankTruth, i+1)
		}
	}
	return s.record(ordinal, truths)
}

// Start lights the candles. The first candle asks for truths unless its
// scene already has some.
func (s Session) Start() (Session, error) {
	if s.phase.Started() {
		return s, ErrAlreadyStarted
	}
	return s.enter(s.active), nil
}

// SubmitTruths stores the prompt entries for the active scene and lights the
// candle. Overrides replace their positions regardless of what was typed.
func (s Session) SubmitTruths(entries []string) (Session, error) {
	p, ok := s.Prompt()
	if !ok {
		return s, fmt.Errorf("submit truths: %w", ErrInvalidPhase)
	}
	truths, err := p.Complete(entries)
	if err != nil {
		return s, err
	}
	next, err := s.record(Ordinal(s.active), truths)
	if err != nil {
		return s, err
	}
	return next.burn(), nil
}

// SkipTruths closes the prompt without recording anything and lights the
// candle. The scene keeps an empty truth list.
func (s Session) SkipTruths() (Session, error) {
	if s.phase != PhaseAwaitingTruths {
		return s, fmt.Errorf("skip truths: %w", ErrInvalidPhase)
	}
	next, err := s.record(Ordinal(s.active), nil)
	if err != nil {
		return s, err
	}
	return next.burn(), nil
}

// Pause freezes the active candle's clock.
func (s Session) Pause() (Session, error) {
	if s.phase != PhaseBurning {
		return s, fmt.Errorf("pause: %w", ErrInvalidPhase)
	}
	s.countdown = s.countdown.Stop()
	s.phase = PhasePaused
	return s, nil
}

// Resume restarts the active candle's clock where it stopped.
func (s Session) Resume() (Session, error) {
	if s.phase != PhasePaused {
		return s, fmt.Errorf("resume: %w", ErrInvalidPhase)
	}
	s.countdown, _, _ = s.countdown.Start()
	s.phase = PhaseBurning
	return s, nil
}

// Tick applies one scheduled second to the active candle. A tick issued
// under a closed schedule returns ErrStaleTick and changes nothing.
func (s Session) Tick(tok Token) (Session, error) {
	if s.phase != PhaseBurning {
		return s, ErrStaleTick
	}
	cd, out, err := s.countdown.Tick(tok)
	if err != nil {
		return s, err
	}
	s.countdown = cd
	if out {
		return s.extinguish(CauseBurnedOut), nil
	}
	return s, nil
}

// Snuff puts the active candle out by hand. It is accepted while the candle
// is melting, paused or not.
func (s Session) Snuff() (Session, error) {
	if !s.phase.Melting() {
		return s, ErrNotActive
	}
	cd, out := s.countdown.Snuff()
	if !out {
		return s, ErrNotActive
	}
	s.countdown = cd
	return s.extinguish(CauseSnuffed), nil
}

// enter makes candle the active one: it either opens the prompt or burns.
func (s Session) enter(candle int) Session {
	s.active = candle
	s.countdown = NewCountdown(candle, s.settings.DurationMinutes)
	if len(s.slots[Ordinal(candle)].Truths) == 0 {
		s.phase = PhaseAwaitingTruths
		return s
	}
	return s.burn()
}

// burn starts a fresh countdown on the active candle.
func (s Session) burn() Session {
	s.countdown = NewCountdown(s.active, s.settings.DurationMinutes).Activate()
	s.countdown, _, _ = s.countdown.Start()
	s.phase = PhaseBurning
	return s
}

func (s Session) extinguish(cause Cause) Session {
	s.causes[s.active] = cause
	if s.active == 0 {
		s.active = Extinguished
		s.phase = PhaseFinished
		return s
	}
	return s.enter(s.active - 1)
}

func (s Session) record(ordinal int, truths []string) (Session, error) {
	if ordinal < 0 || ordinal >= CandleCount {
		return s, fmt.Errorf("%w: %d", ErrSceneRange, ordinal)
	}
	if s.slots[ordinal].Written {
		return s, fmt.Errorf("scene %d: %w", CandleCount-ordinal, ErrTruthsWritten)
	}
	s.slots[ordinal] = Slot{
		Truths:  append([]string(nil), truths...),
		Written: true,
	}
	return s, nil
}

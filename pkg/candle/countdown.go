package candle

import (
	"fmt"
	"time"
)

// TickInterval is the real-time period between two countdown ticks.
const TickInterval = time.Second

// Token identifies one running schedule of a countdown. Every scheduled tick
// carries the token it was issued under; a tick whose token no longer matches
// the countdown is stale and must be dropped.
type Token struct {
	Candle int
	Gen    uint64
}

// Countdown is the remaining time of one candle. It is a value: every method
// returns an updated copy and never mutates the receiver.
//
// A countdown is attached to one candle for its whole life. It becomes active
// when its candle starts melting, runs while its schedule is open, and is
// snuffed exactly once, after which it is inert.
type Countdown struct {
	candle    int
	total     int // seconds
	remaining int // seconds
	active    bool
	running   bool
	snuffed   bool
	gen       uint64
}

// NewCountdown returns an idle countdown of minutes for the given candle.
// minutes is clamped to 1..MaxMinutes.
func NewCountdown(candle, minutes int) Countdown {
	total := ClampMinutes(minutes) * 60
	return Countdown{
		candle:    candle,
		total:     total,
		remaining: total,
	}
}

func (c Countdown) Candle() int { return c.candle }
func (c Countdown) Total() int { return c.total }
func (c Countdown) Remaining() int { return c.remaining }
func (c Countdown) Active() bool { return c.active }
func (c Countdown) Running() bool { return c.running }
func (c Countdown) Snuffed() bool { return c.snuffed }

// Fraction returns the share of the candle still unburnt, in [0, 1].
func (c Countdown) Fraction() float64 {
	if c.total <= 0 {
		return 0
	}
	return float64(c.remaining) / float64(c.total)
}

// Token returns the token of the open schedule, if any.
func (c Countdown) Token() (Token, bool) {
	if !c.running {
		return Token{}, false
	}
	return Token{Candle: c.candle, Gen: c.gen}, true
}

// String renders the remaining time as M:SS.
func (c Countdown) String() string {
	return FormatSeconds(c.remaining)
}

// ClampMinutes bounds a burn time to 1..MaxMinutes.
func ClampMinutes(minutes int) int {
	return min(max(minutes, 1), MaxMinutes)
}

// FormatSeconds renders a second count as M:SS.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// WithDuration resets an idle countdown to a new length. Active or snuffed
// countdowns are returned unchanged.
func (c Countdown) WithDuration(minutes int) Countdown {
	if c.active || c.snuffed {
		return c
	}
	c.total = ClampMinutes(minutes) * 60
	c.remaining = c.total
	return c
}

// Activate attaches the countdown to its melting candle. A snuffed countdown
// never comes back.
func (c Countdown) Activate() Countdown {
	if c.snuffed {
		return c
	}
	c.active = true
	return c
}

// Start opens a new schedule and returns the token its ticks must carry.
// Starting an inactive, snuffed or already running countdown is a no-op.
func (c Countdown) Start() (Countdown, Token, bool) {
	if !c.active || c.snuffed || c.running {
		return c, Token{}, false
	}
	c.gen++
	c.running = true
	return c, Token{Candle: c.candle, Gen: c.gen}, true
}

// Stop closes the open schedule. Ticks already in flight become stale.
func (c Countdown) Stop() Countdown {
	if !c.running {
		return c
	}
	c.gen++
	c.running = false
	return c
}

// Tick consumes one second. It reports true when this tick burned the candle
// out; the countdown is then snuffed and its schedule closed.
func (c Countdown) Tick(tok Token) (Countdown, bool, error) {
	if !c.running || tok.Candle != c.candle || tok.Gen != c.gen {
		return c, false, ErrStaleTick
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 {
		return c.snuff(), true, nil
	}
	return c, false, nil
}

// Snuff ends an active countdown by hand. It reports true only for the call
// that actually put the candle out.
func (c Countdown) Snuff() (Countdown, bool) {
	if !c.active || c.snuffed {
		return c, false
	}
	c.remaining = 0
	return c.snuff(), true
}

func (c Countdown) snuff() Countdown {
	c.snuffed = true
	c.active = false
	if c.running {
		c.running = false
		c.gen++
	}
	return c
}

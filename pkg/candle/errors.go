package candle

import "errors"

var (
	// ErrAlreadyStarted is returned by setup operations once the candles are lit.
	ErrAlreadyStarted = errors.New("session already started")
	// ErrInvalidPhase is returned when an action is not allowed in the current phase.
	ErrInvalidPhase = errors.New("action not allowed in current phase")
	// ErrTruthCount is returned when a submission has the wrong number of entries.
	ErrTruthCount = errors.New("wrong number of truths")
	// ErrBlankTruth is returned when a required truth is blank after trimming.
	ErrBlankTruth = errors.New("truth is blank")
	// ErrTruthsWritten is returned when a scene's truths were already recorded.
	ErrTruthsWritten = errors.New("truths already recorded for scene")
	// ErrStaleTick is returned for a tick whose schedule has been closed.
	ErrStaleTick = errors.New("stale tick")
	// ErrNotActive is returned when snuffing a candle that is not melting.
	ErrNotActive = errors.New("candle is not active")
	// ErrSceneRange is returned for a scene ordinal outside 0..9.
	ErrSceneRange = errors.New("scene out of range")
)

package candle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	s0 := NewSession(Settings{})
	s1, err := s0.Start()
	require.NoError(t, err)
	assert.Equal(t, []Event{
		{Type: EventStarted, Candle: 9},
		{Type: EventPromptOpened, Candle: 9},
	}, Diff(s0, s1))

	s2, err := s1.SubmitTruths(distinctTruths(9, 10))
	require.NoError(t, err)
	assert.Equal(t, []Event{
		{Type: EventTruthsRecorded, Candle: 9, Truths: 10},
		{Type: EventCandleBurning, Candle: 9},
	}, Diff(s1, s2))

	tok, _ := s2.Token()
	s3, err := s2.Tick(tok)
	require.NoError(t, err)
	assert.Empty(t, Diff(s2, s3))

	s4, _ := s3.Pause()
	assert.Equal(t, []Event{{Type: EventPaused, Candle: 9}}, Diff(s3, s4))
	s5, _ := s4.Resume()
	assert.Equal(t, []Event{{Type: EventResumed, Candle: 9}}, Diff(s4, s5))

	s6, _ := s5.Snuff()
	assert.Equal(t, []Event{
		{Type: EventCandleOut, Candle: 9, Cause: CauseSnuffed},
		{Type: EventPromptOpened, Candle: 8},
	}, Diff(s5, s6))

	s7, _ := s6.SkipTruths()
	assert.Equal(t, []Event{
		{Type: EventTruthsSkipped, Candle: 8},
		{Type: EventCandleBurning, Candle: 8},
	}, Diff(s6, s7))
}

func TestDiff_BurnOutAndFinish(t *testing.T) {
	s := NewSession(Settings{})
	for c := 9; c >= 1; c-- {
		s, _ = s.Prefill(Ordinal(c), []string{"prefilled"})
	}
	s, _ = s.Start()
	for s.ActiveIndex() > 0 {
		s, _ = s.Snuff()
	}
	s, _ = s.SkipTruths()

	var events []Event
	for s.Phase() == PhaseBurning {
		tok, _ := s.Token()
		next, err := s.Tick(tok)
		require.NoError(t, err)
		events = append(events, Diff(s, next)...)
		s = next
	}
	assert.Equal(t, []Event{
		{Type: EventCandleOut, Candle: 0, Cause: CauseBurnedOut},
		{Type: EventFinished, Candle: Extinguished},
	}, events)
}

func TestEvent_String(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{Event{Type: EventStarted, Candle: 9}, "The candles are lit."},
		{Event{Type: EventTruthsRecorded, Candle: 9, Truths: 10}, "Scene 10: 10 truths recorded."},
		{Event{Type: EventTruthsSkipped, Candle: 3}, "Scene 4: truths skipped."},
		{Event{Type: EventCandleOut, Candle: 6, Cause: CauseSnuffed}, "Candle 7 was snuffed."},
		{Event{Type: EventCandleOut, Candle: 6, Cause: CauseBurnedOut}, "Candle 7 burned out."},
		{Event{Type: EventPromptOpened, Candle: 0}, "Scene 1: write the last truth."},
		{Event{Type: EventPromptOpened, Candle: 4}, "Scene 5: write 5 truths."},
		{Event{Type: EventFinished, Candle: Extinguished}, "All candles are out."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.event.String())
	}
}

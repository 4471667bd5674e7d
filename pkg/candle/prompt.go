package candle

import (
	"fmt"
	"strings"
)

// Override forces one position of every truth prompt to a fixed text.
type Override struct {
	Enabled bool   `json:"enabled"`
	Text    string `json:"text"`
}

// Applies reports whether the override replaces its prompt position. An
// enabled override with blank text does not apply.
func (o Override) Applies() bool {
	return o.Enabled && strings.TrimSpace(o.Text) != ""
}

// Prompt describes the truth collection for one candle: how many truths are
// asked for and which positions are fixed by overrides.
type Prompt struct {
	Candle int
	Size   int
	First  Override
	Last   Override
}

// NewPrompt returns the prompt for a candle. It asks for one truth per candle
// still standing, the current one included.
func NewPrompt(candle int, first, last Override) Prompt {
	return Prompt{
		Candle: candle,
		Size:   candle + 1,
		First:  first,
		Last:   last,
	}
}

// Scene is the label number of the scene this prompt precedes.
func (p Prompt) Scene() int {
	return p.Candle + 1
}

// Fixed returns the override text for position i, if one applies. On a
// one-truth prompt both overrides target the same slot and the last one wins.
func (p Prompt) Fixed(i int) (string, bool) {
	if i == p.Size-1 && p.Last.Applies() {
		return p.Last.Text, true
	}
	if i == 0 && p.First.Applies() {
		return p.First.Text, true
	}
	return "", false
}

// Complete applies the overrides to entries and validates the result. The
// returned slice is a fresh copy; entries is left untouched.
func (p Prompt) Complete(entries []string) ([]string, error) {
	if len(entries) != p.Size {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrTruthCount, len(entries), p.Size)
	}

	truths := make([]string, p.Size)
	copy(truths, entries)
	if p.First.Applies() {
		truths[0] = p.First.Text
	}
	if p.Last.Applies() {
		truths[p.Size-1] = p.Last.Text
	}

	for i, t := range truths {
		if strings.TrimSpace(t) == "" {
			return nil, fmt.Errorf("%w: position %d", ErrBlankTruth, i+1)
		}
	}
	return truths, nil
}

package candle

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// ExportWidth is the wrap column of the plain-text archive.
const ExportWidth = 72

// Scene is one read-only entry of the truths archive.
type Scene struct {
	Ordinal int      `json:"ordinal"`
	Number  int      `json:"number"` // 10 for the first scene, 1 for the last
	Truths  []string `json:"truths"`
	Written bool     `json:"written"`
}

// Label returns the archive tab title, e.g. "Scene 10".
func (sc Scene) Label() string {
	return fmt.Sprintf("Scene %d", sc.Number)
}

// Archive lists every scene from "Scene 10" down to "Scene 1".
func (s Session) Archive() []Scene {
	scenes := make([]Scene, CandleCount)
	for ord := range scenes {
		slot := s.slots[ord]
		scenes[ord] = Scene{
			Ordinal: ord,
			Number:  CandleCount - ord,
			Truths:  append([]string(nil), slot.Truths...),
			Written: slot.Written,
		}
	}
	return scenes
}

// RenderTruths lists a scene's truths as numbered lines wrapped to width.
func RenderTruths(sc Scene, width int) string {
	if len(sc.Truths) == 0 {
		if sc.Written {
			return "(skipped)"
		}
		return "(not yet written)"
	}

	var b strings.Builder
	for i, t := range sc.Truths {
		prefix := fmt.Sprintf("%d. ", i+1)
		wrapped := wordwrap.String(t, max(width-len(prefix), 10))
		lines := strings.Split(wrapped, "\n")
		b.WriteString(prefix + lines[0] + "\n")
		for _, line := range lines[1:] {
			b.WriteString(strings.Repeat(" ", len(prefix)) + line + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Export renders the whole archive as plain text.
func (s Session) Export() string {
	var b strings.Builder
	b.WriteString("Ten Candles - Truths\n")
	b.WriteString(fmt.Sprintf("Session %s\n", s.id))
	for _, sc := range s.Archive() {
		b.WriteString("\n" + sc.Label() + "\n")
		b.WriteString(strings.Repeat("-", len(sc.Label())) + "\n")
		b.WriteString(RenderTruths(sc, ExportWidth) + "\n")
	}
	return b.String()
}

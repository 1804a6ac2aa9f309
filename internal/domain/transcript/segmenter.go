// Package transcript groups word-level transcription output into paragraphs.
package transcript

import (
	"strings"

	"github.com/forPelevin/smartcut/internal/types"
)

// DefaultSilenceThreshold is the minimum pause, in seconds, treated as a
// paragraph break.
const DefaultSilenceThreshold = 3.0

// FindParagraphs splits an ordered word sequence into paragraphs at pauses of
// at least threshold seconds. Every returned paragraph has ActionKeep; ids are
// a running counter from zero. Empty input yields nil.
func FindParagraphs(words []types.Word, threshold float64) []types.Paragraph {
	if len(words) == 0 {
		return nil
	}

	var paragraphs []types.Paragraph
	var pending []types.Word

	flush := func() {
		if len(pending) == 0 {
			return
		}
		texts := make([]string, len(pending))
		for i, w := range pending {
			texts[i] = w.Word
		}
		paragraphs = append(paragraphs, types.Paragraph{
			ID:     len(paragraphs),
			Start:  pending[0].Start,
			End:    pending[len(pending)-1].End,
			Text:   strings.Join(texts, " "),
			Action: types.ActionKeep,
		})
		pending = pending[:0]
	}

	for i, w := range words {
		pending = append(pending, w)
		if i < len(words)-1 && words[i+1].Start-w.End >= threshold {
			flush()
		}
	}
	flush()

	return paragraphs
}

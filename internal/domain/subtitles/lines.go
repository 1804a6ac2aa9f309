package subtitles

import (
	"strings"

	"github.com/forPelevin/smartcut/internal/types"
)

// Caption line budgets.
const (
	DefaultMaxWords = 8
	DefaultMaxChars = 45
)

// GroupWordsIntoLines batches timeline words into caption lines. A pending
// line is flushed before appending a word once it already holds maxWords
// words, or when appending the word would push the joined text past maxChars.
func GroupWordsIntoLines(words []types.TimelineWord, maxWords, maxChars int) []types.SubtitleLine {
	if len(words) == 0 {
		return nil
	}
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	var lines []types.SubtitleLine
	var pending []types.TimelineWord
	var text string

	flush := func() {
		if len(pending) == 0 {
			return
		}
		lines = append(lines, types.SubtitleLine{
			Start: pending[0].Start,
			End:   pending[len(pending)-1].End,
			Text:  text,
		})
		pending = pending[:0]
		text = ""
	}

	for _, w := range words {
		wordText := strings.TrimSpace(w.Word)
		joined := strings.TrimSpace(text + " " + wordText)

		if len(pending) > 0 && (len(pending) >= maxWords || len(joined) > maxChars) {
			flush()
			joined = wordText
		}
		pending = append(pending, w)
		text = joined
	}
	flush()

	return lines
}

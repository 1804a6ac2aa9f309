// Package subtitles re-times transcript words onto the compressed post-cut
// clock and groups them into caption lines.
package subtitles

import (
	"github.com/forPelevin/smartcut/internal/domain/timespan"
	"github.com/forPelevin/smartcut/internal/types"
)

// MapWordsToTimeline maps original-clock words onto the compressed clock
// defined by keepSegments. Segments are processed strictly in the order
// given; callers must pre-sort by start. A word belongs to a segment when
// seg.start <= word.start < seg.end; word ends are clamped to the segment.
// Words outside every keep segment are dropped.
func MapWordsToTimeline(words []types.Word, keepSegments []types.CutSegment) []types.TimelineWord {
	var out []types.TimelineWord
	var offset float64

	for _, seg := range keepSegments {
		for _, w := range words {
			if w.Start < seg.Start || w.Start >= seg.End {
				continue
			}
			relStart := w.Start - seg.Start
			relEnd := timespan.ClampEnd(w.End, seg.End) - seg.Start
			out = append(out, types.TimelineWord{
				Word:  w.Word,
				Start: offset + relStart,
				End:   offset + relEnd,
			})
		}
		offset += seg.Span()
	}

	return out
}

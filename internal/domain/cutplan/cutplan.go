// Package cutplan turns labeled paragraphs into an ordered keep/remove plan
// over the original recording's clock.
package cutplan

import (
	"sort"
	"strings"

	"github.com/forPelevin/smartcut/internal/types"
)

// Reasons attached to remove segments.
const (
	ReasonLongSilence = "long_silence"
)

// Build walks paragraphs in ascending start order and emits the cut plan.
//
// A gap of at least threshold seconds before a paragraph becomes a
// long_silence remove segment. Kept paragraphs become keep segments annotated
// with their first and last word; removed paragraphs become remove segments
// carrying the paragraph's reason. prevEnd advances past removed paragraphs
// too, so their spans are never re-flagged as silence gaps.
func Build(paragraphs []types.Paragraph, originalDuration, threshold float64) types.CutPlan {
	sorted := make([]types.Paragraph, len(paragraphs))
	copy(sorted, paragraphs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var (
		keep    []types.CutSegment
		remove  []types.CutSegment
		prevEnd float64
		stats   types.CutStats
	)

	for _, p := range sorted {
		if p.Start-prevEnd >= threshold {
			remove = append(remove, types.CutSegment{
				Start:  prevEnd,
				End:    p.Start,
				Reason: ReasonLongSilence,
			})
			stats.SilencesRemoved++
		}

		if p.Action == types.ActionKeep {
			first, last := boundaryWords(p.Text)
			keep = append(keep, types.CutSegment{
				Start:     p.Start,
				End:       p.End,
				StartWord: first,
				EndWord:   last,
			})
		} else {
			remove = append(remove, types.CutSegment{
				Start:  p.Start,
				End:    p.End,
				Reason: p.Reason,
			})
			stats.DuplicatesRemoved++
		}
		prevEnd = p.End
	}

	for _, s := range keep {
		stats.KeptDuration += s.Span()
	}
	for _, s := range remove {
		stats.RemovedDuration += s.Span()
	}
	stats.OriginalDuration = originalDuration

	return types.CutPlan{
		KeepSegments:   keep,
		RemoveSegments: remove,
		Stats:          stats,
	}
}

func boundaryWords(text string) (first, last string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], fields[len(fields)-1]
}

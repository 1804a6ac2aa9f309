package subtitles

import (
	"math"
	"testing"

	"github.com/forPelevin/smartcut/internal/types"
)

func TestMapWordsToTimeline_CompressesGaps(t *testing.T) {
	t.Parallel()

	words := []types.Word{
		{Word: "hi", Start: 0, End: 0.5},
		{Word: "there", Start: 0.6, End: 1.0},
		{Word: "world", Start: 5.0, End: 5.4},
	}
	keep := []types.CutSegment{
		{Start: 0, End: 1.0},
		{Start: 5.0, End: 5.4},
	}

	got := MapWordsToTimeline(words, keep)
	if len(got) != 3 {
		t.Fatalf("got %d words, want 3", len(got))
	}

	// "world" starts right after the first segment's 1.0s of material.
	last := got[2]
	if math.Abs(last.Start-1.0) > 1e-9 || math.Abs(last.End-1.4) > 1e-9 {
		t.Fatalf("unexpected remapped word: %+v", last)
	}
}

func TestMapWordsToTimeline_DropsWordsOutsideKeep(t *testing.T) {
	t.Parallel()

	words := []types.Word{
		{Word: "kept", Start: 1.0, End: 1.5},
		{Word: "cut", Start: 3.0, End: 3.5},
	}
	keep := []types.CutSegment{{Start: 0.5, End: 2.0}}

	got := MapWordsToTimeline(words, keep)
	if len(got) != 1 || got[0].Word != "kept" {
		t.Fatalf("expected only the kept word, got %+v", got)
	}
}

func TestMapWordsToTimeline_ClampsWordEndToSegment(t *testing.T) {
	t.Parallel()

	words := []types.Word{{Word: "trailing", Start: 1.8, End: 2.6}}
	keep := []types.CutSegment{{Start: 0, End: 2.0}}

	got := MapWordsToTimeline(words, keep)
	if len(got) != 1 {
		t.Fatalf("got %d words, want 1", len(got))
	}
	if math.Abs(got[0].End-2.0) > 1e-9 {
		t.Fatalf("word end %v not clamped to segment end", got[0].End)
	}
}

// The compressed end of the last emitted word never exceeds the total kept
// duration.
func TestMapWordsToTimeline_DurationBound(t *testing.T) {
	t.Parallel()

	words := []types.Word{
		{Word: "a", Start: 0.2, End: 0.9},
		{Word: "b", Start: 4.1, End: 4.8},
		{Word: "c", Start: 9.5, End: 11.0},
	}
	keep := []types.CutSegment{
		{Start: 0, End: 1},
		{Start: 4, End: 5},
		{Start: 9, End: 10},
	}

	got := MapWordsToTimeline(words, keep)

	var keptTotal float64
	for _, seg := range keep {
		keptTotal += seg.Span()
	}
	for _, w := range got {
		if w.End > keptTotal+1e-9 {
			t.Fatalf("word %+v ends past total kept duration %v", w, keptTotal)
		}
	}
}

func TestMapWordsToTimeline_Empty(t *testing.T) {
	t.Parallel()

	if got := MapWordsToTimeline(nil, []types.CutSegment{{Start: 0, End: 1}}); got != nil {
		t.Fatalf("expected nil for empty words, got %+v", got)
	}
	if got := MapWordsToTimeline([]types.Word{{Word: "a", Start: 0, End: 1}}, nil); got != nil {
		t.Fatalf("expected nil for empty segments, got %+v", got)
	}
}

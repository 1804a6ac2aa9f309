// Package resolver applies the oracle's duplicate-take decisions to
// paragraphs. Duplicate detection is best-effort: an oracle failure degrades
// to "no duplicates found" and never blocks the pipeline.
package resolver

import (
	"context"

	"github.com/forPelevin/smartcut/internal/ports"
	"github.com/forPelevin/smartcut/internal/types"
)

// Outcome carries the resolved paragraphs plus degradation state, so callers
// can decide whether to surface a degraded run to the user.
type Outcome struct {
	Paragraphs []types.Paragraph
	Degraded   bool
	Reason     string
}

// Resolve sends paragraph texts to the oracle and applies its grouping
// decisions. Ids listed in a group's remove set become ActionRemove with
// reason "duplicate_take: <group reason>" and GroupID pointing at the
// survivor; group members not removed become the survivor (ActionKeep,
// reason "best_take", GroupID = own id). Paragraphs outside every group are
// untouched.
//
// The oracle's convention that the survivor is the chronologically last group
// member is trusted as-is, not verified against timestamps.
func Resolve(ctx context.Context, paragraphs []types.Paragraph, oracle ports.Oracle) Outcome {
	if len(paragraphs) == 0 {
		return Outcome{Paragraphs: paragraphs}
	}

	req := make([]types.ParagraphText, len(paragraphs))
	for i, p := range paragraphs {
		req[i] = types.ParagraphText{ID: p.ID, Text: p.Text}
	}

	groups, err := oracle.DetectDuplicates(ctx, req)
	if err != nil {
		return Outcome{Paragraphs: paragraphs, Degraded: true, Reason: err.Error()}
	}

	removed := make(map[int]types.DuplicateGroup)
	member := make(map[int]types.DuplicateGroup)
	for _, g := range groups {
		for _, id := range g.Remove {
			removed[id] = g
		}
		for _, id := range g.BlockIDs {
			member[id] = g
		}
	}

	out := make([]types.Paragraph, len(paragraphs))
	for i, p := range paragraphs {
		if g, ok := removed[p.ID]; ok {
			keep := g.Keep
			p.Action = types.ActionRemove
			p.Reason = "duplicate_take: " + g.Reason
			p.GroupID = &keep
		} else if _, ok := member[p.ID]; ok {
			self := p.ID
			p.Action = types.ActionKeep
			p.Reason = "best_take"
			p.GroupID = &self
		}
		out[i] = p
	}

	return Outcome{Paragraphs: out}
}

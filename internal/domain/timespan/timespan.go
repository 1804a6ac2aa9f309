// Package timespan provides pure helpers over [start,end) intervals measured
// in float seconds. Everything here is allocation-light and side-effect free.
package timespan

import "sort"

// Span is a half-open interval [Start, End) in seconds.
type Span struct {
	Start float64
	End   float64
}

// Dur returns the span length, never negative.
func (s Span) Dur() float64 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Gap returns the silence between a and the following span b. Negative when
// they touch or overlap.
func Gap(a, b Span) float64 { return b.Start - a.End }

// Overlaps reports whether the two half-open spans intersect.
func Overlaps(a, b Span) bool { return a.Start < b.End && b.Start < a.End }

// ClampEnd limits v to at most end.
func ClampEnd(v, end float64) float64 {
	if v > end {
		return end
	}
	return v
}

// SortedByStart returns a copy of spans ordered ascending by start.
func SortedByStart(spans []Span) []Span {
	out := make([]Span, len(spans))
	copy(out, spans)
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// NonOverlapping reports whether spans are ordered ascending by start and
// pairwise disjoint.
func NonOverlapping(spans []Span) bool {
	for i := 1; i < len(spans); i++ {
		if spans[i].Start < spans[i-1].Start {
			return false
		}
		if Overlaps(spans[i-1], spans[i]) {
			return false
		}
	}
	return true
}

// Sum returns the total duration of all spans.
func Sum(spans []Span) float64 {
	var total float64
	for _, s := range spans {
		total += s.Dur()
	}
	return total
}

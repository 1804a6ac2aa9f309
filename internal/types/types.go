package types

// Word is a single transcribed word with original-clock timestamps in seconds.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment is a transcription segment (usually a sentence or phrase).
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// Transcript is a complete transcription result.
type Transcript struct {
	Language string    `json:"language"`
	Duration float64   `json:"duration"`
	Segments []Segment `json:"segments"`
}

// AllWords returns the flat word list across all segments, in order.
func (t Transcript) AllWords() []Word {
	var out []Word
	for _, s := range t.Segments {
		out = append(out, s.Words...)
	}
	return out
}

// Paragraph actions.
const (
	ActionKeep   = "keep"
	ActionRemove = "remove"
)

// Paragraph is a run of words with no internal pause above the silence
// threshold. Created by the segmenter with ActionKeep; the duplicate resolver
// may flip the action.
type Paragraph struct {
	ID      int     `json:"id"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Action  string  `json:"action"`
	Reason  string  `json:"reason"`
	GroupID *int    `json:"group_id,omitempty"`
}

// ParagraphText is the id/text pair sent out for duplicate detection.
type ParagraphText struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// DuplicateGroup is an advisory grouping decision from the oracle. Keep is
// expected to be the chronologically last member of its group by convention;
// the convention is not enforced here.
type DuplicateGroup struct {
	BlockIDs []int  `json:"block_ids"`
	Keep     int    `json:"keep"`
	Remove   []int  `json:"remove"`
	Reason   string `json:"reason"`
}

// CutSegment is a span of the original recording, in seconds.
type CutSegment struct {
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	StartWord string  `json:"start_word,omitempty"`
	EndWord   string  `json:"end_word,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// Span returns the segment duration in seconds.
func (s CutSegment) Span() float64 { return s.End - s.Start }

// CutStats aggregates counts and durations for a cut plan.
type CutStats struct {
	OriginalDuration  float64 `json:"original_duration"`
	KeptDuration      float64 `json:"kept_duration"`
	RemovedDuration   float64 `json:"removed_duration"`
	DuplicatesRemoved int     `json:"duplicates_removed"`
	SilencesRemoved   int     `json:"silences_removed"`
}

// CutPlan holds the ordered keep/remove segment lists over the original
// recording's clock, plus aggregate statistics. Immutable once built.
type CutPlan struct {
	KeepSegments   []CutSegment `json:"keep_segments"`
	RemoveSegments []CutSegment `json:"remove_segments"`
	Stats          CutStats     `json:"stats"`
}

// TimelineWord is a word re-timed onto the compressed (post-cut) clock.
type TimelineWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Subtitle positions.
const (
	PositionTop    = "top"
	PositionBottom = "bottom"
)

// SubtitleLine is one caption on the compressed clock.
type SubtitleLine struct {
	Start       float64  `json:"start"`
	End         float64  `json:"end"`
	Text        string   `json:"text"`
	AccentWords []string `json:"accent_words,omitempty"`
	Position    string   `json:"position,omitempty"`
}

// MediaInfo describes a probed media file.
type MediaInfo struct {
	Duration        float64 `json:"duration"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	FPS             float64 `json:"fps"`
	AudioSampleRate int     `json:"audio_sample_rate"`
	Format          string  `json:"format"`
}

// LoudnessInfo is a first-pass loudnorm measurement.
type LoudnessInfo struct {
	InputI       float64 `json:"input_i"`
	InputTP      float64 `json:"input_tp"`
	InputLRA     float64 `json:"input_lra"`
	InputThresh  float64 `json:"input_thresh"`
	TargetOffset float64 `json:"target_offset"`
}

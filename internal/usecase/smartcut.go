package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forPelevin/smartcut/internal/domain/subtitles"
	"github.com/forPelevin/smartcut/internal/draft"
	"github.com/forPelevin/smartcut/internal/types"
)

type SmartCutInput struct {
	InputPath        string
	Language         string
	SilenceThreshold float64
	DetectDuplicates bool

	// Format selects what gets produced: FormatDraft, FormatVideo or
	// FormatBoth.
	Format string

	ProjectName      string
	DraftsDir        string
	AddSubtitles     bool
	SubtitleStyle    string
	SubtitleMaxWords int
	SubtitleMaxChars int

	// VideoOutputPath overrides the "<stem>_cut.<ext>" default.
	VideoOutputPath string

	Logf func(format string, args ...any)
}

type SmartCutResult struct {
	Transcript     types.Transcript
	Paragraphs     []types.Paragraph
	Plan           types.CutPlan
	Degraded       bool
	DegradedReason string

	DraftPath string
	VideoPath string
	SRTPath   string
}

// SmartCut is the full pipeline: transcribe, analyze, then export a draft
// project and/or a cut video file.
func (u Usecase) SmartCut(ctx context.Context, in SmartCutInput) (SmartCutResult, error) {
	logf := orNopLogf(in.Logf)

	input, err := absInput(in.InputPath)
	if err != nil {
		return SmartCutResult{}, err
	}

	logf("transcribing %s", filepath.Base(input))
	tr, err := u.transcribeFile(ctx, input, in.Language)
	if err != nil {
		return SmartCutResult{}, err
	}
	logf("transcript: %.1fs, %d segments, language %s", tr.Duration, len(tr.Segments), tr.Language)

	a := u.analyzeTranscript(ctx, tr, in.SilenceThreshold, in.DetectDuplicates)
	if a.Degraded {
		logf("duplicate detection degraded: %s", a.DegradedReason)
	}
	logf("cut plan: %d keep, %d remove, %.1fs saved",
		len(a.Plan.KeepSegments), len(a.Plan.RemoveSegments), a.Plan.Stats.RemovedDuration)

	res := SmartCutResult{
		Transcript:     tr,
		Paragraphs:     a.Paragraphs,
		Plan:           a.Plan,
		Degraded:       a.Degraded,
		DegradedReason: a.DegradedReason,
	}

	var lines []types.SubtitleLine
	if in.AddSubtitles {
		withAccents := in.SubtitleStyle == StyleDynamic
		lines = u.subtitleLines(ctx, tr, a.Plan.KeepSegments, in.SubtitleMaxWords, in.SubtitleMaxChars, withAccents, logf)
		if len(lines) > 0 {
			srtPath := replaceExt(input, ".srt")
			if err := os.WriteFile(srtPath, []byte(subtitles.RenderSRT(lines)), 0o644); err != nil {
				return SmartCutResult{}, fmt.Errorf("write srt: %w", err)
			}
			res.SRTPath = srtPath
			logf("subtitles: %d lines, %s", len(lines), srtPath)
		}
	}

	if in.Format == FormatDraft || in.Format == FormatBoth {
		name := in.ProjectName
		if name == "" {
			name = defaultProjectName(input)
		}
		draftPath, err := u.exportDraft(ctx, input, name, a.Plan.KeepSegments, lines, in.SubtitleStyle, in.DraftsDir)
		if err != nil {
			return SmartCutResult{}, err
		}
		res.DraftPath = draftPath
		logf("draft project %q: %s", name, draftPath)
	}

	if in.Format == FormatVideo || in.Format == FormatBoth {
		videoPath, err := u.exportVideo(ctx, input, a.Plan.KeepSegments, in.VideoOutputPath)
		if err != nil {
			return SmartCutResult{}, err
		}
		res.VideoPath = videoPath
		logf("video: %s", videoPath)
	}

	return res, nil
}

type AnalyzeInput struct {
	InputPath        string
	Language         string
	SilenceThreshold float64
	DetectDuplicates bool
	Logf             func(format string, args ...any)
}

type AnalyzeResult struct {
	Transcript     types.Transcript
	Paragraphs     []types.Paragraph
	Plan           types.CutPlan
	Degraded       bool
	DegradedReason string
}

// Analyze transcribes the input and builds a cut plan without producing any
// output files.
func (u Usecase) Analyze(ctx context.Context, in AnalyzeInput) (AnalyzeResult, error) {
	logf := orNopLogf(in.Logf)

	input, err := absInput(in.InputPath)
	if err != nil {
		return AnalyzeResult{}, err
	}

	logf("transcribing %s", filepath.Base(input))
	tr, err := u.transcribeFile(ctx, input, in.Language)
	if err != nil {
		return AnalyzeResult{}, err
	}

	a := u.analyzeTranscript(ctx, tr, in.SilenceThreshold, in.DetectDuplicates)
	if a.Degraded {
		logf("duplicate detection degraded: %s", a.DegradedReason)
	}
	return AnalyzeResult{
		Transcript:     tr,
		Paragraphs:     a.Paragraphs,
		Plan:           a.Plan,
		Degraded:       a.Degraded,
		DegradedReason: a.DegradedReason,
	}, nil
}

type SubtitlesInput struct {
	InputPath string
	Language  string
	Style     string
	MaxWords  int
	MaxChars  int

	// OutputPath overrides the "<stem>.srt" default next to the input.
	OutputPath string

	Logf func(format string, args ...any)
}

type SubtitlesResult struct {
	SRTPath         string
	Lines           []types.SubtitleLine
	AccentWordCount int
}

// Subtitles transcribes the input and writes an SRT file over the uncut
// timeline.
func (u Usecase) Subtitles(ctx context.Context, in SubtitlesInput) (SubtitlesResult, error) {
	logf := orNopLogf(in.Logf)

	input, err := absInput(in.InputPath)
	if err != nil {
		return SubtitlesResult{}, err
	}

	logf("transcribing %s", filepath.Base(input))
	tr, err := u.transcribeFile(ctx, input, in.Language)
	if err != nil {
		return SubtitlesResult{}, err
	}

	withAccents := in.Style == StyleDynamic
	lines := u.subtitleLines(ctx, tr, fullTimeline(tr), in.MaxWords, in.MaxChars, withAccents, logf)
	if len(lines) == 0 {
		return SubtitlesResult{}, errors.New("no words to build subtitles from")
	}

	outPath := in.OutputPath
	if outPath == "" {
		outPath = replaceExt(input, ".srt")
	}
	if err := os.WriteFile(outPath, []byte(subtitles.RenderSRT(lines)), 0o644); err != nil {
		return SubtitlesResult{}, fmt.Errorf("write srt: %w", err)
	}

	accentCount := 0
	for _, l := range lines {
		accentCount += len(l.AccentWords)
	}
	return SubtitlesResult{SRTPath: outPath, Lines: lines, AccentWordCount: accentCount}, nil
}

// exportDraft builds a fresh draft project with one back-to-back video
// segment per keep span, plus one text material and segment per caption.
func (u Usecase) exportDraft(ctx context.Context, inputPath, name string, keep []types.CutSegment, lines []types.SubtitleLine, style, draftsDir string) (string, error) {
	if len(keep) == 0 {
		return "", errors.New("cut plan has no segments to keep")
	}

	info, err := u.d.Video.ProbeMedia(ctx, inputPath)
	if err != nil {
		return "", err
	}

	if draftsDir == "" {
		draftsDir = draft.DefaultDraftsDir()
	}
	if err := os.MkdirAll(draftsDir, 0o755); err != nil {
		return "", err
	}

	d := draft.NewDraft(name, info.Width, info.Height)
	materialID := d.AddVideoMaterial(inputPath, info.Duration, info.Width, info.Height)

	offset := 0.0
	for _, seg := range keep {
		d.AddVideoSegment(materialID, offset, seg.Start, seg.Span())
		offset += seg.Span()
	}

	toggle := false
	for _, line := range lines {
		ts := subtitleTextStyle(style)
		switch {
		case line.Position == types.PositionTop:
			ts.PositionY = 0.2
		case line.Position == types.PositionBottom:
			ts.PositionY = 0.8
		case style == StyleDynamic:
			if toggle {
				ts.PositionY = 0.2
			}
			toggle = !toggle
		}
		mid := d.AddTextMaterial(line.Text, ts)
		d.AddTextSegment(mid, line.Start, line.End-line.Start)
	}

	return d.Save(draftsDir)
}

// exportVideo cuts every keep span out of the input and concatenates them
// into one file, preserving the container format.
func (u Usecase) exportVideo(ctx context.Context, inputPath string, keep []types.CutSegment, outPath string) (string, error) {
	if len(keep) == 0 {
		return "", errors.New("cut plan has no segments to keep")
	}
	if outPath == "" {
		outPath = siblingPath(inputPath, "_cut")
	}

	tmp, err := os.MkdirTemp("", "smartcut-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmp)

	ext := filepath.Ext(inputPath)
	parts := make([]string, 0, len(keep))
	for i, seg := range keep {
		part := filepath.Join(tmp, fmt.Sprintf("segment_%04d%s", i, ext))
		if err := u.d.Video.CutSegment(ctx, inputPath, part, seg.Start, seg.End); err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	if err := u.d.Video.ConcatSegments(ctx, parts, outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

// subtitleTextStyle maps a style name onto caption defaults: simple keeps
// the black background box, dynamic drops it.
func subtitleTextStyle(style string) draft.TextStyle {
	ts := draft.DefaultTextStyle()
	if style != StyleSimple {
		ts.BackgroundColor = ""
		ts.BackgroundAlpha = 0
	}
	return ts
}

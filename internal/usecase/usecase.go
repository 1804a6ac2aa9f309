// Package usecase holds the orchestrators behind every CLI command. Each
// operation takes an Input struct, talks to the outside world only through
// the ports in Deps, and returns a Result struct.
package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/forPelevin/smartcut/internal/domain/cutplan"
	"github.com/forPelevin/smartcut/internal/domain/subtitles"
	"github.com/forPelevin/smartcut/internal/domain/transcript"
	"github.com/forPelevin/smartcut/internal/ports"
	"github.com/forPelevin/smartcut/internal/resolver"
	"github.com/forPelevin/smartcut/internal/types"
)

type Deps struct {
	Video ports.VideoTool
	ASR   ports.ASR

	// Oracle is optional; without it duplicate detection and accent words
	// are skipped.
	Oracle ports.Oracle

	// Enhancer is optional; only Enhance needs it.
	Enhancer ports.Enhancer
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

// Output formats for SmartCut.
const (
	FormatDraft = "capcut"
	FormatVideo = "video"
	FormatBoth  = "both"
)

// Subtitle styles.
const (
	StyleDynamic = "dynamic"
	StyleSimple  = "simple"
)

// Audio extraction sample rates: speech recognition wants compact mono,
// enhancement wants full quality.
const (
	asrSampleRate     = 16000
	enhanceSampleRate = 44100
)

// transcribeFile extracts a mono WAV into a temp dir and sends it off for
// transcription.
func (u Usecase) transcribeFile(ctx context.Context, inputPath, language string) (types.Transcript, error) {
	tmp, err := os.MkdirTemp("", "smartcut-*")
	if err != nil {
		return types.Transcript{}, err
	}
	defer os.RemoveAll(tmp)

	wav := filepath.Join(tmp, "audio.wav")
	if err := u.d.Video.ExtractAudio(ctx, inputPath, wav, asrSampleRate); err != nil {
		return types.Transcript{}, err
	}
	return u.d.ASR.Transcribe(ctx, wav, language)
}

type analysis struct {
	Paragraphs     []types.Paragraph
	Plan           types.CutPlan
	Degraded       bool
	DegradedReason string
}

// analyzeTranscript runs the pure pipeline: paragraphs, optional duplicate
// resolution, cut plan. It never fails; a failing oracle only degrades the
// result.
func (u Usecase) analyzeTranscript(ctx context.Context, tr types.Transcript, threshold float64, detectDuplicates bool) analysis {
	a := analysis{Paragraphs: transcript.FindParagraphs(tr.AllWords(), threshold)}
	if detectDuplicates && u.d.Oracle != nil {
		out := resolver.Resolve(ctx, a.Paragraphs, u.d.Oracle)
		a.Paragraphs = out.Paragraphs
		a.Degraded = out.Degraded
		a.DegradedReason = out.Reason
	}
	a.Plan = cutplan.Build(a.Paragraphs, tr.Duration, threshold)
	return a
}

// subtitleLines re-times the transcript words onto the post-cut timeline and
// groups them into caption lines. Accent lookup failures skip the line and
// keep going.
func (u Usecase) subtitleLines(ctx context.Context, tr types.Transcript, keep []types.CutSegment, maxWords, maxChars int, withAccents bool, logf func(string, ...any)) []types.SubtitleLine {
	words := subtitles.MapWordsToTimeline(tr.AllWords(), keep)
	lines := subtitles.GroupWordsIntoLines(words, maxWords, maxChars)
	if withAccents && u.d.Oracle != nil {
		for i := range lines {
			accents, err := u.d.Oracle.AccentWords(ctx, lines[i].Text)
			if err != nil {
				logf("accent words for line %d: %v", i+1, err)
				continue
			}
			lines[i].AccentWords = accents
		}
	}
	return lines
}

// fullTimeline is the keep list that leaves the recording uncut.
func fullTimeline(tr types.Transcript) []types.CutSegment {
	return []types.CutSegment{{Start: 0, End: tr.Duration}}
}

func defaultProjectName(inputPath string) string {
	return pathStem(inputPath) + " — SmartCut"
}

func pathStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// siblingPath builds "<stem><suffix><ext>" next to the input file.
func siblingPath(inputPath, suffix string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + suffix + ext
}

func replaceExt(path, newExt string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + newExt
}

func orNopLogf(logf func(string, ...any)) func(string, ...any) {
	if logf == nil {
		return func(string, ...any) {}
	}
	return logf
}

func absInput(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", err
	}
	return abs, nil
}

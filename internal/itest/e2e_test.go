//go:build integration

package itest

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/forPelevin/smartcut/internal/config"
	"github.com/forPelevin/smartcut/internal/draft"
	"github.com/forPelevin/smartcut/internal/pipeline"
	"github.com/forPelevin/smartcut/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/smartcut/internal/usecase"
)

func TestE2E_SmartCut(t *testing.T) {
	if os.Getenv("OPENAI_API_KEY") == "" {
		t.Fatalf("OPENAI_API_KEY is required for itest")
	}

	tmp := t.TempDir()
	in := filepath.Join(tmp, "input.mp4")
	wav := filepath.Join(tmp, "speech.wav")
	text := "Here is the key idea. Step one: do this. Step two: measure results. This is important."
	makeSpeechVideo(t, wav, in, text, 15)

	draftsDir := filepath.Join(tmp, "drafts")

	s := config.Default()
	s.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	uc, err := pipeline.New(pipeline.Config{Settings: s, Logf: t.Logf})
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	res, err := uc.SmartCut(ctx, usecase.SmartCutInput{
		InputPath:        in,
		SilenceThreshold: s.SilenceThreshold,
		DetectDuplicates: false,
		Format:           usecase.FormatBoth,
		DraftsDir:        draftsDir,
		AddSubtitles:     true,
		SubtitleStyle:    usecase.StyleSimple,
		SubtitleMaxWords: s.SubtitleMaxWords,
		SubtitleMaxChars: s.SubtitleMaxChars,
	})
	if err != nil {
		t.Fatalf("smart cut: %v", err)
	}

	if res.VideoPath == "" {
		t.Fatalf("no video produced")
	}
	outDur, err := probeDurationSeconds(res.VideoPath)
	if err != nil {
		t.Fatalf("probe output: %v", err)
	}
	if outDur <= 0 {
		t.Fatalf("output duration = %v", outDur)
	}

	if res.DraftPath == "" {
		t.Fatalf("no draft produced")
	}
	p, err := draft.OpenProject(res.DraftPath)
	if err != nil {
		t.Fatalf("open draft: %v", err)
	}
	if len(p.VideoSegments()) == 0 {
		t.Fatalf("draft has no video segments")
	}
	if math.Abs(p.Duration()-res.Plan.Stats.KeptDuration) > 0.01 {
		t.Errorf("draft duration %v != kept duration %v", p.Duration(), res.Plan.Stats.KeptDuration)
	}

	if res.SRTPath == "" {
		t.Fatalf("no srt produced")
	}
	if _, err := os.Stat(res.SRTPath); err != nil {
		t.Fatalf("srt missing: %v", err)
	}
}

func TestFFmpegAdapter_CutConcatProbe(t *testing.T) {
	a := ffmpeg.New("", "")
	if !a.Installed() {
		t.Skip("ffmpeg not installed")
	}

	tmp := t.TempDir()
	in := filepath.Join(tmp, "in.mp4")
	makeTestVideo(t, in, 10)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	info, err := a.ProbeMedia(ctx, in)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if math.Abs(info.Duration-10) > 0.5 {
		t.Errorf("duration = %v, want ~10", info.Duration)
	}
	if info.Width != 640 || info.Height != 360 {
		t.Errorf("canvas = %dx%d, want 640x360", info.Width, info.Height)
	}

	seg1 := filepath.Join(tmp, "seg1.mp4")
	seg2 := filepath.Join(tmp, "seg2.mp4")
	if err := a.CutSegment(ctx, in, seg1, 0, 2); err != nil {
		t.Fatalf("cut 1: %v", err)
	}
	if err := a.CutSegment(ctx, in, seg2, 5, 7); err != nil {
		t.Fatalf("cut 2: %v", err)
	}

	out := filepath.Join(tmp, "out.mp4")
	if err := a.ConcatSegments(ctx, []string{seg1, seg2}, out); err != nil {
		t.Fatalf("concat: %v", err)
	}
	// Stream copy cuts land on keyframes, so allow generous slack.
	outDur, err := probeDurationSeconds(out)
	if err != nil {
		t.Fatalf("probe out: %v", err)
	}
	if math.Abs(outDur-4) > 1.5 {
		t.Errorf("concat duration = %v, want ~4", outDur)
	}

	loud, err := a.MeasureLoudness(ctx, in)
	if err != nil {
		t.Fatalf("measure loudness: %v", err)
	}
	if loud.InputI == 0 {
		t.Errorf("expected a non-zero loudness measurement")
	}
}

package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forPelevin/smartcut/internal/draft"
	"github.com/forPelevin/smartcut/internal/types"
)

// testTranscript has two takes separated by a four second pause, so the
// default threshold yields two paragraphs and one removable silence.
func testTranscript() types.Transcript {
	return types.Transcript{
		Language: "en",
		Duration: 6,
		Segments: []types.Segment{
			{
				ID: 0, Start: 0, End: 1, Text: "hello world",
				Words: []types.Word{
					{Word: "hello", Start: 0, End: 0.5},
					{Word: "world", Start: 0.5, End: 1},
				},
			},
			{
				ID: 1, Start: 5, End: 6, Text: "take two",
				Words: []types.Word{
					{Word: "take", Start: 5, End: 5.5},
					{Word: "two", Start: 5.5, End: 6},
				},
			},
		},
	}
}

func writeInput(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("fake video"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestSmartCut_DraftAndVideo(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	input := writeInput(t, tmp, "in.mp4")
	draftsDir := filepath.Join(tmp, "drafts")

	video := &fakeVideoTool{probe: types.MediaInfo{Duration: 6, Width: 1920, Height: 1080}}
	uc := New(Deps{
		Video:  video,
		ASR:    &fakeASR{tr: testTranscript()},
		Oracle: &fakeOracle{accents: []string{"hello"}},
	})

	res, err := uc.SmartCut(context.Background(), SmartCutInput{
		InputPath:        input,
		SilenceThreshold: 3,
		DetectDuplicates: true,
		Format:           FormatBoth,
		DraftsDir:        draftsDir,
		AddSubtitles:     true,
		SubtitleStyle:    StyleDynamic,
		SubtitleMaxWords: 8,
		SubtitleMaxChars: 45,
	})
	if err != nil {
		t.Fatalf("smart cut: %v", err)
	}

	if got := len(res.Plan.KeepSegments); got != 2 {
		t.Fatalf("keep segments = %d, want 2", got)
	}
	if res.Plan.Stats.SilencesRemoved != 1 {
		t.Errorf("silences removed = %d, want 1", res.Plan.Stats.SilencesRemoved)
	}
	if res.Plan.Stats.KeptDuration != 2 {
		t.Errorf("kept duration = %v, want 2", res.Plan.Stats.KeptDuration)
	}

	// SRT lands next to the input.
	wantSRT := filepath.Join(tmp, "in.srt")
	if res.SRTPath != wantSRT {
		t.Errorf("srt path = %q, want %q", res.SRTPath, wantSRT)
	}
	b, err := os.ReadFile(wantSRT)
	if err != nil {
		t.Fatalf("read srt: %v", err)
	}
	if !strings.Contains(string(b), "hello world") {
		t.Errorf("srt missing caption text:\n%s", b)
	}

	// Draft project: two keep spans, captions on the text track.
	if res.DraftPath == "" {
		t.Fatalf("expected a draft path")
	}
	p, err := draft.OpenProject(res.DraftPath)
	if err != nil {
		t.Fatalf("open draft: %v", err)
	}
	if got := len(p.VideoSegments()); got != 2 {
		t.Errorf("draft video segments = %d, want 2", got)
	}
	if got := len(p.TextSegments()); got == 0 {
		t.Errorf("draft has no text segments")
	}
	if p.Duration() != 2 {
		t.Errorf("draft duration = %v, want 2", p.Duration())
	}

	// Video export: one cut per keep span, one concat.
	if res.VideoPath != filepath.Join(tmp, "in_cut.mp4") {
		t.Errorf("video path = %q", res.VideoPath)
	}
	if len(video.cuts) != 2 || video.concats != 1 {
		t.Errorf("cuts = %d, concats = %d", len(video.cuts), video.concats)
	}
	if _, err := os.Stat(res.VideoPath); err != nil {
		t.Errorf("video file missing: %v", err)
	}
}

func TestSmartCut_DuplicateRemoved(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	input := writeInput(t, tmp, "in.mov")

	oracle := &fakeOracle{groups: []types.DuplicateGroup{
		{BlockIDs: []int{0, 1}, Keep: 1, Remove: []int{0}, Reason: "retake"},
	}}
	uc := New(Deps{
		Video:  &fakeVideoTool{probe: types.MediaInfo{Duration: 6, Width: 1080, Height: 1920}},
		ASR:    &fakeASR{tr: testTranscript()},
		Oracle: oracle,
	})

	res, err := uc.SmartCut(context.Background(), SmartCutInput{
		InputPath:        input,
		SilenceThreshold: 3,
		DetectDuplicates: true,
		Format:           FormatDraft,
		DraftsDir:        filepath.Join(tmp, "drafts"),
	})
	if err != nil {
		t.Fatalf("smart cut: %v", err)
	}
	if res.Plan.Stats.DuplicatesRemoved != 1 {
		t.Errorf("duplicates removed = %d, want 1", res.Plan.Stats.DuplicatesRemoved)
	}
	if got := len(res.Plan.KeepSegments); got != 1 {
		t.Fatalf("keep segments = %d, want 1", got)
	}
	if seg := res.Plan.KeepSegments[0]; seg.Start != 5 || seg.End != 6 {
		t.Errorf("kept segment = [%v,%v), want [5,6)", seg.Start, seg.End)
	}
}

func TestSmartCut_OracleFailureDegrades(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	input := writeInput(t, tmp, "in.mp4")

	uc := New(Deps{
		Video:  &fakeVideoTool{probe: types.MediaInfo{Duration: 6, Width: 1920, Height: 1080}},
		ASR:    &fakeASR{tr: testTranscript()},
		Oracle: &fakeOracle{dupErr: errors.New("boom")},
	})

	res, err := uc.SmartCut(context.Background(), SmartCutInput{
		InputPath:        input,
		SilenceThreshold: 3,
		DetectDuplicates: true,
		Format:           FormatVideo,
	})
	if err != nil {
		t.Fatalf("smart cut should degrade, not fail: %v", err)
	}
	if !res.Degraded {
		t.Fatalf("expected degraded result")
	}
	if res.Plan.Stats.DuplicatesRemoved != 0 {
		t.Errorf("degraded run removed duplicates: %d", res.Plan.Stats.DuplicatesRemoved)
	}
}

func TestSubtitles(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	input := writeInput(t, tmp, "talk.mp4")

	oracle := &fakeOracle{accents: []string{"world"}}
	uc := New(Deps{
		Video:  &fakeVideoTool{},
		ASR:    &fakeASR{tr: testTranscript()},
		Oracle: oracle,
	})

	res, err := uc.Subtitles(context.Background(), SubtitlesInput{
		InputPath: input,
		Style:     StyleDynamic,
		MaxWords:  8,
		MaxChars:  45,
	})
	if err != nil {
		t.Fatalf("subtitles: %v", err)
	}
	if res.SRTPath != filepath.Join(tmp, "talk.srt") {
		t.Errorf("srt path = %q", res.SRTPath)
	}
	if _, err := os.Stat(res.SRTPath); err != nil {
		t.Fatalf("srt missing: %v", err)
	}
	// Uncut timeline keeps the original word clock.
	if len(res.Lines) == 0 || res.Lines[0].Start != 0 {
		t.Fatalf("unexpected lines: %+v", res.Lines)
	}
	if res.AccentWordCount == 0 {
		t.Errorf("expected accent words for dynamic style")
	}
	if oracle.accentCalls != len(res.Lines) {
		t.Errorf("accent calls = %d, want %d", oracle.accentCalls, len(res.Lines))
	}
}

func TestSubtitles_SimpleSkipsAccents(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	input := writeInput(t, tmp, "talk.mp4")

	oracle := &fakeOracle{accents: []string{"world"}}
	uc := New(Deps{
		Video:  &fakeVideoTool{},
		ASR:    &fakeASR{tr: testTranscript()},
		Oracle: oracle,
	})

	if _, err := uc.Subtitles(context.Background(), SubtitlesInput{
		InputPath: input,
		Style:     StyleSimple,
		MaxWords:  8,
		MaxChars:  45,
	}); err != nil {
		t.Fatalf("subtitles: %v", err)
	}
	if oracle.accentCalls != 0 {
		t.Errorf("simple style called the oracle %d times", oracle.accentCalls)
	}
}

func buildTestProject(t *testing.T, draftsDir, videoFile string) string {
	t.Helper()
	d := draft.NewDraft("My Talk", 1920, 1080)
	mid := d.AddVideoMaterial(videoFile, 6, 1920, 1080)
	d.AddVideoSegment(mid, 0, 0, 6)
	dir, err := d.Save(draftsDir)
	if err != nil {
		t.Fatalf("save project: %v", err)
	}
	return dir
}

func TestProjectCut(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	draftsDir := filepath.Join(tmp, "drafts")
	videoFile := writeInput(t, tmp, "source.mp4")
	projDir := buildTestProject(t, draftsDir, videoFile)

	uc := New(Deps{
		Video:  &fakeVideoTool{probe: types.MediaInfo{Duration: 6, Width: 1920, Height: 1080}},
		ASR:    &fakeASR{tr: testTranscript()},
		Oracle: &fakeOracle{},
	})

	res, err := uc.ProjectCut(context.Background(), ProjectCutInput{
		Project:          ProjectRef{Path: projDir},
		SilenceThreshold: 3,
		DetectDuplicates: true,
		AddSubtitles:     true,
		SubtitleMaxWords: 8,
		SubtitleMaxChars: 45,
	})
	if err != nil {
		t.Fatalf("project cut: %v", err)
	}

	if res.VideosProcessed != 1 {
		t.Errorf("videos processed = %d, want 1", res.VideosProcessed)
	}
	if res.Stats.SilencesRemoved != 1 {
		t.Errorf("silences removed = %d, want 1", res.Stats.SilencesRemoved)
	}
	if res.ForkName != "My Talk — SmartCut" {
		t.Errorf("fork name = %q", res.ForkName)
	}
	if res.ForkPath == projDir {
		t.Fatalf("fork path equals source path")
	}

	fork, err := draft.OpenProject(res.ForkPath)
	if err != nil {
		t.Fatalf("open fork: %v", err)
	}
	if got := len(fork.VideoSegments()); got != 2 {
		t.Errorf("fork video segments = %d, want 2", got)
	}
	if res.SubtitlesAdded == 0 || len(fork.TextSegments()) == 0 {
		t.Errorf("expected subtitles in fork, added = %d", res.SubtitlesAdded)
	}

	// The source project keeps its single original segment.
	src, err := draft.OpenProject(projDir)
	if err != nil {
		t.Fatalf("open source: %v", err)
	}
	if got := len(src.VideoSegments()); got != 1 {
		t.Errorf("source video segments = %d, want 1", got)
	}
	if got := len(src.TextSegments()); got != 0 {
		t.Errorf("source text segments = %d, want 0", got)
	}
}

func TestProjectCut_NoVideos(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	d := draft.NewDraft("Empty", 1920, 1080)
	projDir, err := d.Save(filepath.Join(tmp, "drafts"))
	if err != nil {
		t.Fatalf("save project: %v", err)
	}

	uc := New(Deps{Video: &fakeVideoTool{}, ASR: &fakeASR{}})
	_, err = uc.ProjectCut(context.Background(), ProjectCutInput{
		Project:          ProjectRef{Path: projDir},
		SilenceThreshold: 3,
	})
	if err == nil || !strings.Contains(err.Error(), "no video materials") {
		t.Fatalf("expected no-video-materials error, got %v", err)
	}
}

func TestProjectSubtitles_FromSRT(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	draftsDir := filepath.Join(tmp, "drafts")
	videoFile := writeInput(t, tmp, "source.mp4")
	projDir := buildTestProject(t, draftsDir, videoFile)

	srtPath := filepath.Join(tmp, "subs.srt")
	srt := "1\n00:00:00,000 --> 00:00:01,500\nfirst cue\n\n2\n00:00:02,000 --> 00:00:03,000\nsecond cue\n"
	if err := os.WriteFile(srtPath, []byte(srt), 0o644); err != nil {
		t.Fatalf("write srt: %v", err)
	}

	asr := &fakeASR{tr: testTranscript()}
	uc := New(Deps{Video: &fakeVideoTool{}, ASR: asr})

	res, err := uc.ProjectSubtitles(context.Background(), ProjectSubtitlesInput{
		Project: ProjectRef{Path: projDir},
		SRTPath: srtPath,
		Style:   StyleSimple,
	})
	if err != nil {
		t.Fatalf("project subtitles: %v", err)
	}
	if res.SubtitlesAdded != 2 {
		t.Errorf("subtitles added = %d, want 2", res.SubtitlesAdded)
	}
	if asr.calls != 0 {
		t.Errorf("SRT import should not transcribe, got %d calls", asr.calls)
	}

	fork, err := draft.OpenProject(res.ForkPath)
	if err != nil {
		t.Fatalf("open fork: %v", err)
	}
	segs := fork.TextSegments()
	if len(segs) != 2 {
		t.Fatalf("fork text segments = %d, want 2", len(segs))
	}
	if segs[0].Text != "first cue" {
		t.Errorf("first caption = %q", segs[0].Text)
	}
}

func TestEnhance(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	input := writeInput(t, tmp, "in.mov")

	video := &fakeVideoTool{}
	enh := &fakeEnhancer{id: "prod-1"}
	uc := New(Deps{Video: video, ASR: &fakeASR{}, Enhancer: enh})

	res, err := uc.Enhance(context.Background(), EnhanceInput{
		InputPath:  input,
		PresetUUID: "preset-9",
	})
	if err != nil {
		t.Fatalf("enhance: %v", err)
	}
	if res.OutputPath != filepath.Join(tmp, "in_enhanced.mov") {
		t.Errorf("output path = %q", res.OutputPath)
	}
	if res.ProductionID != "prod-1" {
		t.Errorf("production id = %q", res.ProductionID)
	}
	if enh.preset != "preset-9" {
		t.Errorf("preset = %q", enh.preset)
	}
	if !enh.polled || !enh.downloaded {
		t.Errorf("polled = %v, downloaded = %v", enh.polled, enh.downloaded)
	}
	if video.muxCalls != 1 {
		t.Errorf("mux calls = %d, want 1", video.muxCalls)
	}
	if got := video.extracts; len(got) != 1 || got[0] != enhanceSampleRate {
		t.Errorf("extract sample rates = %v", got)
	}
}

func TestEnhance_NoEnhancer(t *testing.T) {
	t.Parallel()

	uc := New(Deps{Video: &fakeVideoTool{}, ASR: &fakeASR{}})
	_, err := uc.Enhance(context.Background(), EnhanceInput{InputPath: "whatever.mov"})
	if err == nil || !strings.Contains(err.Error(), "AUPHONIC_API_KEY") {
		t.Fatalf("expected missing-key error, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	input := writeInput(t, tmp, "in.mp4")

	video := &fakeVideoTool{loudness: types.LoudnessInfo{InputI: -24.2}}
	uc := New(Deps{Video: video, ASR: &fakeASR{}})

	res, err := uc.Normalize(context.Background(), NormalizeInput{
		InputPath:  input,
		TargetLUFS: -16,
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if res.OutputPath != filepath.Join(tmp, "in_normalized.mp4") {
		t.Errorf("output path = %q", res.OutputPath)
	}
	if video.normTarget != -16 {
		t.Errorf("target = %v, want -16", video.normTarget)
	}
	if res.Measured.InputI != -24.2 {
		t.Errorf("measured = %v", res.Measured.InputI)
	}
}

// fakes

type fakeVideoTool struct {
	probe    types.MediaInfo
	loudness types.LoudnessInfo

	cuts       []types.CutSegment
	concats    int
	extracts   []int
	muxCalls   int
	normTarget float64
}

func (f *fakeVideoTool) ProbeMedia(_ context.Context, _ string) (types.MediaInfo, error) {
	return f.probe, nil
}

func (f *fakeVideoTool) ExtractAudio(_ context.Context, _, outWav string, sampleRate int) error {
	f.extracts = append(f.extracts, sampleRate)
	return os.WriteFile(outWav, []byte("wav"), 0o644)
}

func (f *fakeVideoTool) CutSegment(_ context.Context, _, outPath string, start, end float64) error {
	f.cuts = append(f.cuts, types.CutSegment{Start: start, End: end})
	return os.WriteFile(outPath, []byte("seg"), 0o644)
}

func (f *fakeVideoTool) ConcatSegments(_ context.Context, _ []string, outPath string) error {
	f.concats++
	return os.WriteFile(outPath, []byte("video"), 0o644)
}

func (f *fakeVideoTool) MeasureLoudness(_ context.Context, _ string) (types.LoudnessInfo, error) {
	return f.loudness, nil
}

func (f *fakeVideoTool) NormalizeLoudness(_ context.Context, _, outPath string, targetLUFS float64) (types.LoudnessInfo, error) {
	f.normTarget = targetLUFS
	return f.loudness, os.WriteFile(outPath, []byte("norm"), 0o644)
}

func (f *fakeVideoTool) MuxAudio(_ context.Context, _, _, outPath string) error {
	f.muxCalls++
	return os.WriteFile(outPath, []byte("mux"), 0o644)
}

type fakeASR struct {
	tr       types.Transcript
	calls    int
	language string
}

func (f *fakeASR) Transcribe(_ context.Context, _, language string) (types.Transcript, error) {
	f.calls++
	f.language = language
	return f.tr, nil
}

type fakeOracle struct {
	groups  []types.DuplicateGroup
	accents []string
	dupErr  error
	accErr  error

	dupCalls    int
	accentCalls int
}

func (f *fakeOracle) DetectDuplicates(_ context.Context, _ []types.ParagraphText) ([]types.DuplicateGroup, error) {
	f.dupCalls++
	return f.groups, f.dupErr
}

func (f *fakeOracle) AccentWords(_ context.Context, _ string) ([]string, error) {
	f.accentCalls++
	return f.accents, f.accErr
}

type fakeEnhancer struct {
	id     string
	preset string

	polled     bool
	downloaded bool
}

func (f *fakeEnhancer) CreateProduction(_ context.Context, _, presetUUID, _ string) (string, error) {
	f.preset = presetUUID
	return f.id, nil
}

func (f *fakeEnhancer) PollUntilDone(_ context.Context, _ string) error {
	f.polled = true
	return nil
}

func (f *fakeEnhancer) DownloadResult(_ context.Context, _, outPath string) error {
	f.downloaded = true
	return os.WriteFile(outPath, []byte("enhanced"), 0o644)
}

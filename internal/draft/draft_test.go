package draft

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forPelevin/smartcut/internal/types"
)

func buildSampleDraft(t *testing.T) (*Draft, string) {
	t.Helper()

	d := NewDraft("My Cut", 1920, 1080)
	matID := d.AddVideoMaterial("/videos/take1.mp4", 120.0, 1920, 1080)
	d.AddVideoSegment(matID, 0, 10.0, 5.0)
	d.AddVideoSegment(matID, 5.0, 40.0, 3.5)

	textID := d.AddTextMaterial("hello world", DefaultTextStyle())
	d.AddTextSegment(textID, 0, 2.0)

	dir, err := d.Save(t.TempDir())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	return d, dir
}

func TestDraftDuration(t *testing.T) {
	d := NewDraft("d", 1080, 1920)
	matID := d.AddVideoMaterial("/v.mp4", 60, 1080, 1920)
	d.AddVideoSegment(matID, 0, 0, 4.0)

	textID := d.AddTextMaterial("tail", DefaultTextStyle())
	d.AddTextSegment(textID, 3.0, 2.5)

	if got := d.Duration(); got != 5.5 {
		t.Fatalf("duration = %v, want 5.5", got)
	}
}

func TestDraftSaveRoundTrip(t *testing.T) {
	d, dir := buildSampleDraft(t)

	if filepath.Base(dir) != d.ID {
		t.Fatalf("folder %q not named by project id %q", dir, d.ID)
	}
	if _, err := os.Stat(filepath.Join(dir, MetaFileName)); err != nil {
		t.Fatalf("meta document missing: %v", err)
	}

	p, err := OpenProject(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if p.ID() != d.ID {
		t.Errorf("id = %q, want %q", p.ID(), d.ID)
	}
	if p.Name() != "My Cut" {
		t.Errorf("name = %q, want My Cut", p.Name())
	}
	if p.Duration() != 8.5 {
		t.Errorf("duration = %v, want 8.5", p.Duration())
	}

	segs := p.VideoSegments()
	if len(segs) != 2 {
		t.Fatalf("got %d video segments, want 2", len(segs))
	}
	if segs[0].SourcePath != "/videos/take1.mp4" {
		t.Errorf("source path = %q", segs[0].SourcePath)
	}
	if segs[1].SourceStart != 40.0 || segs[1].TimelineStart != 5.0 {
		t.Errorf("second segment timing = %+v", segs[1])
	}

	texts := p.TextSegments()
	if len(texts) != 1 {
		t.Fatalf("got %d text segments, want 1", len(texts))
	}
	if texts[0].Text != "hello world" {
		t.Errorf("text = %q, want hello world", texts[0].Text)
	}
	if texts[0].TimelineEnd != 2.0 {
		t.Errorf("text end = %v, want 2.0", texts[0].TimelineEnd)
	}
}

func TestDraftWithoutTextHasSingleTrack(t *testing.T) {
	d := NewDraft("plain", 1080, 1920)
	matID := d.AddVideoMaterial("/v.mp4", 10, 1080, 1920)
	d.AddVideoSegment(matID, 0, 0, 10)

	content := d.buildContent(0)
	if len(content.Tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(content.Tracks))
	}
	if content.Tracks[0].Type != TrackKindVideo {
		t.Fatalf("track type = %q", content.Tracks[0].Type)
	}
}

func TestTextContentBlobDecodes(t *testing.T) {
	doc := newTextMaterialDoc(TextMaterial{
		ID:    NewObjectID(),
		Text:  "héllo",
		Style: DefaultTextStyle(),
	})

	var blob textContentDoc
	if err := json.Unmarshal([]byte(doc.Content), &blob); err != nil {
		t.Fatalf("content blob does not parse: %v", err)
	}
	if blob.Text != "héllo" {
		t.Errorf("blob text = %q", blob.Text)
	}
	if len(blob.Styles) != 1 || blob.Styles[0].Range[1] != 5 {
		t.Errorf("blob styles = %+v", blob.Styles)
	}
}

func TestProjectApplyCutPlan(t *testing.T) {
	_, dir := buildSampleDraft(t)
	p, err := OpenProject(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	plan := types.CutPlan{
		KeepSegments: []types.CutSegment{
			{Start: 10.0, End: 12.0, Reason: "keep"},
			{Start: 30.0, End: 30.5, Reason: "keep"},
		},
	}
	if err := p.ApplyCutPlan(plan, "/videos/take1.mp4"); err != nil {
		t.Fatalf("apply: %v", err)
	}

	segs := p.VideoSegments()
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if segs[0].TimelineStart != 0 || segs[0].SourceStart != 10.0 {
		t.Errorf("first segment = %+v", segs[0])
	}
	if segs[1].TimelineStart != 2.0 || segs[1].SourceStart != 30.0 {
		t.Errorf("second segment not back to back: %+v", segs[1])
	}
	if p.Duration() != 2.5 {
		t.Errorf("duration = %v, want 2.5", p.Duration())
	}

	// Template fields from the old first segment survive.
	raw := mapChildSlice(p.findTrack(TrackKindVideo), "segments")
	if got := mapString(raw[0], "template_scene"); got != "default" {
		t.Errorf("template_scene = %q, want default", got)
	}
}

func TestProjectApplyCutPlanUnknownMaterial(t *testing.T) {
	_, dir := buildSampleDraft(t)
	p, err := OpenProject(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	plan := types.CutPlan{KeepSegments: []types.CutSegment{{Start: 0, End: 1}}}
	err = p.ApplyCutPlan(plan, "/videos/other.mp4")
	if err == nil || !strings.Contains(err.Error(), "no video material") {
		t.Fatalf("expected material error, got %v", err)
	}
}

func TestProjectAddTextTrackAlternatesPosition(t *testing.T) {
	_, dir := buildSampleDraft(t)
	p, err := OpenProject(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	before := len(p.TextSegments())

	lines := []types.SubtitleLine{
		{Start: 0, End: 1, Text: "one"},
		{Start: 1, End: 2, Text: "two"},
		{Start: 2, End: 3, Text: "three", Position: types.PositionBottom},
	}
	p.AddTextTrack(lines, DefaultTextStyle())

	texts := p.TextSegments()
	if len(texts) != before+3 {
		t.Fatalf("got %d text segments, want %d", len(texts), before+3)
	}

	segs := mapChildSlice(p.findTrack(TrackKindText), "segments")
	added := segs[len(segs)-3:]
	wantY := []float64{0.8 - 0.5, 0.2 - 0.5, 0.8 - 0.5}
	for i, seg := range added {
		y := mapFloat(mapChild(mapChild(seg, "clip"), "transform"), "y")
		if math.Abs(y-wantY[i]) > 1e-9 {
			t.Errorf("segment %d transform.y = %v, want %v", i, y, wantY[i])
		}
	}
}

func TestProjectFork(t *testing.T) {
	_, dir := buildSampleDraft(t)
	original, err := os.ReadFile(filepath.Join(dir, ContentFileName))
	if err != nil {
		t.Fatalf("read original: %v", err)
	}

	p, err := OpenProject(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	forked, err := p.Fork("My Cut v2")
	if err != nil {
		t.Fatalf("fork: %v", err)
	}

	if forked.ID() == p.ID() {
		t.Error("fork kept the source id")
	}
	if forked.Name() != "My Cut v2" {
		t.Errorf("fork name = %q", forked.Name())
	}
	if forked.Dir == p.Dir {
		t.Error("fork reused the source dir")
	}
	if len(forked.VideoSegments()) != len(p.VideoSegments()) {
		t.Error("fork lost segments")
	}

	after, err := os.ReadFile(filepath.Join(dir, ContentFileName))
	if err != nil {
		t.Fatalf("read source after fork: %v", err)
	}
	if string(original) != string(after) {
		t.Error("fork mutated the source project")
	}
}

func TestProjectKeepsMicrosecondFieldsExact(t *testing.T) {
	_, dir := buildSampleDraft(t)

	// Not representable as float64: a lossy decode would come back off by one.
	const big = int64(1<<53 + 1)

	p, err := OpenProject(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	p.content["duration"] = big
	if err := p.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	back, err := OpenProject(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := mapInt64(back.content, "duration"); got != big {
		t.Fatalf("duration round-tripped to %d, want %d", got, big)
	}
}

func TestOpenProjectPrefersInfoFile(t *testing.T) {
	_, dir := buildSampleDraft(t)

	// Rename to the name the editor itself writes.
	if err := os.Rename(filepath.Join(dir, ContentFileName), filepath.Join(dir, InfoFileName)); err != nil {
		t.Fatalf("rename: %v", err)
	}

	p, err := OpenProject(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if p.Name() != "My Cut" {
		t.Errorf("name = %q", p.Name())
	}
	if err := p.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, InfoFileName)); err != nil {
		t.Errorf("save did not go back to the loaded file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ContentFileName)); err == nil {
		t.Error("save recreated the fallback file")
	}
}

func TestOpenProjectMissingContent(t *testing.T) {
	if _, err := OpenProject(t.TempDir()); err == nil {
		t.Fatal("expected error for empty dir")
	}
}

package draft

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"time"

	"github.com/forPelevin/smartcut/internal/types"
)

// Project is an existing draft directory opened for inspection or mutation.
//
// The documents are kept as raw maps so that fields this package does not
// model survive a load-edit-save cycle untouched. Mutations only replace the
// keys they own.
type Project struct {
	Dir string

	contentPath string
	metaPath    string
	content     map[string]any
	meta        map[string]any
}

// ProjectVideoMaterial is a source file referenced by an opened project.
type ProjectVideoMaterial struct {
	ID       string
	Path     string
	Duration float64
	Width    int
	Height   int
}

// ProjectVideoSegment is a placed video slice with times in seconds.
type ProjectVideoSegment struct {
	ID            string
	MaterialID    string
	SourcePath    string
	TimelineStart float64
	TimelineEnd   float64
	SourceStart   float64
	SourceEnd     float64
	Duration      float64
}

// ProjectTextSegment is a placed caption with times in seconds.
type ProjectTextSegment struct {
	ID            string
	MaterialID    string
	Text          string
	TimelineStart float64
	TimelineEnd   float64
}

// OpenProject loads the project documents from dir. The content document is
// read from draft_info.json, falling back to draft_content.json for drafts
// this package created itself; saves go back to the same file.
func OpenProject(dir string) (*Project, error) {
	p := &Project{
		Dir:      dir,
		metaPath: filepath.Join(dir, MetaFileName),
	}

	for _, name := range []string{InfoFileName, ContentFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			p.contentPath = path
			break
		}
	}
	if p.contentPath == "" {
		return nil, fmt.Errorf("no content document in %s", dir)
	}

	if err := readJSONMap(p.contentPath, &p.content); err != nil {
		return nil, err
	}
	p.meta = map[string]any{}
	if _, err := os.Stat(p.metaPath); err == nil {
		if err := readJSONMap(p.metaPath, &p.meta); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ID returns the project id, falling back to the directory name.
func (p *Project) ID() string {
	if id := mapString(p.content, "id"); id != "" {
		return id
	}
	return filepath.Base(p.Dir)
}

// Name prefers the meta document's name over the content document's.
func (p *Project) Name() string {
	if name := mapString(p.meta, "draft_name"); name != "" {
		return name
	}
	if name := mapString(p.content, "name"); name != "" {
		return name
	}
	return "Untitled"
}

// SetName renames the project in both documents.
func (p *Project) SetName(name string) {
	p.content["name"] = name
	p.meta["draft_name"] = name
}

// Duration is the project timeline length in seconds.
func (p *Project) Duration() float64 {
	return ToSeconds(mapInt64(p.content, "duration"))
}

// CanvasSize returns the configured canvas, defaulting to 1080x1920.
func (p *Project) CanvasSize() (width, height int) {
	canvas := mapChild(p.content, "canvas_config")
	width = int(mapFloat(canvas, "width"))
	height = int(mapFloat(canvas, "height"))
	if width == 0 {
		width = 1080
	}
	if height == 0 {
		height = 1920
	}
	return width, height
}

// VideoMaterials lists the source files registered in the project.
func (p *Project) VideoMaterials() []ProjectVideoMaterial {
	var out []ProjectVideoMaterial
	for _, raw := range mapChildSlice(mapChild(p.content, "materials"), "videos") {
		out = append(out, ProjectVideoMaterial{
			ID:       mapString(raw, "id"),
			Path:     mapString(raw, "path"),
			Duration: ToSeconds(mapInt64(raw, "duration")),
			Width:    int(mapFloat(raw, "width")),
			Height:   int(mapFloat(raw, "height")),
		})
	}
	return out
}

// VideoSegments lists the video track contents joined with their source
// paths. A segment whose material is missing gets an empty path.
func (p *Project) VideoSegments() []ProjectVideoSegment {
	paths := make(map[string]string)
	for _, m := range p.VideoMaterials() {
		paths[m.ID] = m.Path
	}

	var out []ProjectVideoSegment
	for _, track := range mapChildSlice(p.content, "tracks") {
		if mapString(track, "type") != TrackKindVideo {
			continue
		}
		for _, seg := range mapChildSlice(track, "segments") {
			materialID := mapString(seg, "material_id")
			target := mapChild(seg, "target_timerange")
			source := mapChild(seg, "source_timerange")

			start := ToSeconds(mapInt64(target, "start"))
			dur := ToSeconds(mapInt64(target, "duration"))
			srcStart := ToSeconds(mapInt64(source, "start"))

			out = append(out, ProjectVideoSegment{
				ID:            mapString(seg, "id"),
				MaterialID:    materialID,
				SourcePath:    paths[materialID],
				TimelineStart: start,
				TimelineEnd:   start + dur,
				SourceStart:   srcStart,
				SourceEnd:     srcStart + ToSeconds(mapInt64(source, "duration")),
				Duration:      dur,
			})
		}
	}
	return out
}

// TextSegments lists captions across all text tracks, with the display text
// decoded from the material's embedded content blob.
func (p *Project) TextSegments() []ProjectTextSegment {
	texts := make(map[string]map[string]any)
	for _, m := range mapChildSlice(mapChild(p.content, "materials"), "texts") {
		texts[mapString(m, "id")] = m
	}

	var out []ProjectTextSegment
	for _, track := range mapChildSlice(p.content, "tracks") {
		if mapString(track, "type") != TrackKindText {
			continue
		}
		for _, seg := range mapChildSlice(track, "segments") {
			materialID := mapString(seg, "material_id")

			var text string
			if m, ok := texts[materialID]; ok {
				var blob textContentDoc
				if err := json.Unmarshal([]byte(mapString(m, "content")), &blob); err == nil {
					text = blob.Text
				}
			}

			target := mapChild(seg, "target_timerange")
			start := ToSeconds(mapInt64(target, "start"))

			out = append(out, ProjectTextSegment{
				ID:            mapString(seg, "id"),
				MaterialID:    materialID,
				Text:          text,
				TimelineStart: start,
				TimelineEnd:   start + ToSeconds(mapInt64(target, "duration")),
			})
		}
	}
	return out
}

// SourceVideoPaths returns the unique non-empty material paths.
func (p *Project) SourceVideoPaths() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range p.VideoMaterials() {
		if m.Path == "" || seen[m.Path] {
			continue
		}
		seen[m.Path] = true
		out = append(out, m.Path)
	}
	return out
}

// AddTextTrack appends one caption per line to the project's text track,
// creating the track if none exists. With the default style, captions
// alternate between the lower and upper third unless a line carries an
// explicit position.
func (p *Project) AddTextTrack(lines []types.SubtitleLine, style TextStyle) {
	if len(lines) == 0 {
		return
	}

	materials := mapChild(p.content, "materials")
	if materials == nil {
		materials = map[string]any{}
		p.content["materials"] = materials
	}
	rawTexts, _ := materials["texts"].([]any)

	var newSegments []any
	toggle := false
	for _, line := range lines {
		positionY := style.PositionY
		switch {
		case line.Position == types.PositionTop:
			positionY = 0.2
		case line.Position == types.PositionBottom:
			positionY = 0.8
		case style.PositionY == DefaultTextStyle().PositionY:
			if toggle {
				positionY = 0.2
			}
			toggle = !toggle
		}

		material := TextMaterial{ID: NewObjectID(), Text: line.Text, Style: style}
		rawTexts = append(rawTexts, toRawMap(newTextMaterialDoc(material)))

		seg := TextSegment{
			ID:            NewObjectID(),
			MaterialID:    material.ID,
			TimelineStart: line.Start,
			Duration:      line.End - line.Start,
		}
		newSegments = append(newSegments, toRawMap(newTextSegmentDoc(seg, positionY)))
	}
	materials["texts"] = rawTexts

	track := p.findTrack(TrackKindText)
	if track == nil {
		track = toRawMap(newTrackDoc(TrackKindText, nil))
		rawTracks, _ := p.content["tracks"].([]any)
		p.content["tracks"] = append(rawTracks, track)
	}
	segs, _ := track["segments"].([]any)
	track["segments"] = append(segs, newSegments...)

	p.updateDuration()
}

// ApplyCutPlan replaces the video track's segments with one segment per keep
// span, placed back to back from timeline zero. Existing segment fields
// beyond the timing and ids are carried over from the first old segment so
// that its adjustments survive.
func (p *Project) ApplyCutPlan(plan types.CutPlan, videoPath string) error {
	if len(plan.KeepSegments) == 0 {
		return nil
	}

	track := p.findTrack(TrackKindVideo)
	if track == nil {
		return fmt.Errorf("project %s has no video track", p.ID())
	}

	materialID := ""
	for _, m := range p.VideoMaterials() {
		if m.Path == videoPath {
			materialID = m.ID
			break
		}
	}
	if materialID == "" {
		return fmt.Errorf("no video material with path %s", videoPath)
	}

	var template map[string]any
	if old, _ := track["segments"].([]any); len(old) > 0 {
		template, _ = old[0].(map[string]any)
	}

	newSegments := make([]any, 0, len(plan.KeepSegments))
	var offsetUS int64
	for _, seg := range plan.KeepSegments {
		startUS := ToMicros(seg.Start)
		durUS := ToMicros(seg.End) - startUS

		var doc map[string]any
		if template != nil {
			doc = maps.Clone(template)
		} else {
			doc = toRawMap(newVideoSegmentDoc(VideoSegment{}))
		}
		doc["id"] = NewObjectID()
		doc["material_id"] = materialID
		doc["target_timerange"] = map[string]any{"start": offsetUS, "duration": durUS}
		doc["source_timerange"] = map[string]any{"start": startUS, "duration": durUS}

		newSegments = append(newSegments, doc)
		offsetUS += durUS
	}

	track["segments"] = newSegments
	p.updateDuration()
	return nil
}

// Fork duplicates the project directory under a fresh id, renames the copy
// and returns it opened. The source project is never written to.
func (p *Project) Fork(newName string) (*Project, error) {
	newID := NewObjectID()
	newDir := filepath.Join(filepath.Dir(p.Dir), newID)

	if err := os.CopyFS(newDir, os.DirFS(p.Dir)); err != nil {
		return nil, fmt.Errorf("copy project dir: %w", err)
	}

	forked, err := OpenProject(newDir)
	if err != nil {
		return nil, err
	}
	forked.content["id"] = newID
	forked.meta["draft_id"] = newID

	absDir, err := filepath.Abs(newDir)
	if err != nil {
		absDir = newDir
	}
	forked.meta["draft_root_path"] = absDir
	forked.SetName(newName)

	if err := forked.Save(); err != nil {
		return nil, err
	}
	return forked, nil
}

// Save writes both documents back, stamping the modification times.
func (p *Project) Save() error {
	now := time.Now().Unix()
	p.content["update_time"] = now
	p.meta["tm_draft_modified"] = now

	if err := writeJSONFile(p.contentPath, p.content); err != nil {
		return err
	}
	return writeJSONFile(p.metaPath, p.meta)
}

func (p *Project) findTrack(kind string) map[string]any {
	for _, track := range mapChildSlice(p.content, "tracks") {
		if mapString(track, "type") == kind {
			return track
		}
	}
	return nil
}

func (p *Project) updateDuration() {
	var maxEnd int64
	for _, track := range mapChildSlice(p.content, "tracks") {
		for _, seg := range mapChildSlice(track, "segments") {
			target := mapChild(seg, "target_timerange")
			if end := mapInt64(target, "start") + mapInt64(target, "duration"); end > maxEnd {
				maxEnd = end
			}
		}
	}
	p.content["duration"] = maxEnd
	p.meta["tm_duration"] = maxEnd
}

func readJSONMap(path string, dst *map[string]any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	// UseNumber keeps microsecond fields exact; a float64 round trip would
	// clip them past 2^53.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// toRawMap converts a typed schema document into the generic form the
// project documents are held in.
func toRawMap(v any) map[string]any {
	data, _ := json.Marshal(v)
	var out map[string]any
	_ = json.Unmarshal(data, &out)
	return out
}

func mapChild(m map[string]any, key string) map[string]any {
	child, _ := m[key].(map[string]any)
	return child
}

func mapChildSlice(m map[string]any, key string) []map[string]any {
	raw, _ := m[key].([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if child, ok := item.(map[string]any); ok {
			out = append(out, child)
		}
	}
	return out
}

func mapString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func mapFloat(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	}
	return 0
}

func mapInt64(m map[string]any, key string) int64 {
	switch v := m[key].(type) {
	case json.Number:
		n, _ := v.Int64()
		return n
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

// Package draft builds and mutates CapCut draft projects on disk.
//
// A project is a directory named by an uppercase UUID holding two JSON
// documents: the content document (tracks, segments, materials) and the meta
// document (name, paths, timestamps). All persisted times are integer
// microseconds; the package API works in float64 seconds and converts at the
// boundary.
package draft

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// VideoMaterial references a source media file.
type VideoMaterial struct {
	ID       string
	Path     string
	Duration float64
	Width    int
	Height   int
}

// VideoSegment places a slice of a video material on the timeline.
type VideoSegment struct {
	ID            string
	MaterialID    string
	TimelineStart float64
	SourceStart   float64
	Duration      float64
}

// TextMaterial is a styled piece of text.
type TextMaterial struct {
	ID    string
	Text  string
	Style TextStyle
}

// TextSegment places a text material on the timeline.
type TextSegment struct {
	ID            string
	MaterialID    string
	TimelineStart float64
	Duration      float64
}

// Draft accumulates materials and segments for a new project.
type Draft struct {
	ID           string
	Name         string
	CanvasWidth  int
	CanvasHeight int

	videoMaterials []VideoMaterial
	textMaterials  []TextMaterial
	videoSegments  []VideoSegment
	textSegments   []TextSegment
}

// NewDraft creates an empty draft with a fresh project id.
func NewDraft(name string, canvasWidth, canvasHeight int) *Draft {
	return &Draft{
		ID:           NewObjectID(),
		Name:         name,
		CanvasWidth:  canvasWidth,
		CanvasHeight: canvasHeight,
	}
}

// AddVideoMaterial registers a source video file and returns its material id.
func (d *Draft) AddVideoMaterial(path string, duration float64, width, height int) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	m := VideoMaterial{
		ID:       NewObjectID(),
		Path:     abs,
		Duration: duration,
		Width:    width,
		Height:   height,
	}
	d.videoMaterials = append(d.videoMaterials, m)
	return m.ID
}

// AddVideoSegment places a slice of material on the timeline and returns the
// segment id.
func (d *Draft) AddVideoSegment(materialID string, timelineStart, sourceStart, duration float64) string {
	s := VideoSegment{
		ID:            NewObjectID(),
		MaterialID:    materialID,
		TimelineStart: timelineStart,
		SourceStart:   sourceStart,
		Duration:      duration,
	}
	d.videoSegments = append(d.videoSegments, s)
	return s.ID
}

// AddTextMaterial registers a styled text and returns its material id.
func (d *Draft) AddTextMaterial(text string, style TextStyle) string {
	m := TextMaterial{
		ID:    NewObjectID(),
		Text:  text,
		Style: style,
	}
	d.textMaterials = append(d.textMaterials, m)
	return m.ID
}

// AddTextSegment places a text material on the timeline and returns the
// segment id.
func (d *Draft) AddTextSegment(materialID string, timelineStart, duration float64) string {
	s := TextSegment{
		ID:            NewObjectID(),
		MaterialID:    materialID,
		TimelineStart: timelineStart,
		Duration:      duration,
	}
	d.textSegments = append(d.textSegments, s)
	return s.ID
}

// Duration is the end of the last segment across all tracks, in seconds.
func (d *Draft) Duration() float64 {
	var maxEnd int64
	for _, s := range d.videoSegments {
		if end := ToMicros(s.TimelineStart) + ToMicros(s.Duration); end > maxEnd {
			maxEnd = end
		}
	}
	for _, s := range d.textSegments {
		if end := ToMicros(s.TimelineStart) + ToMicros(s.Duration); end > maxEnd {
			maxEnd = end
		}
	}
	return ToSeconds(maxEnd)
}

func (d *Draft) positionY(materialID string) float64 {
	for _, m := range d.textMaterials {
		if m.ID == materialID {
			return m.Style.PositionY
		}
	}
	return DefaultTextStyle().PositionY
}

func (d *Draft) buildContent(now int64) contentDoc {
	videos := make([]videoMaterialDoc, 0, len(d.videoMaterials))
	for _, m := range d.videoMaterials {
		videos = append(videos, newVideoMaterialDoc(m, now))
	}
	texts := make([]textMaterialDoc, 0, len(d.textMaterials))
	for _, m := range d.textMaterials {
		texts = append(texts, newTextMaterialDoc(m))
	}

	videoSegs := make([]segmentDoc, 0, len(d.videoSegments))
	for _, s := range d.videoSegments {
		videoSegs = append(videoSegs, newVideoSegmentDoc(s))
	}
	// The video track is always present; a text track only when it has
	// segments.
	tracks := []trackDoc{newTrackDoc(TrackKindVideo, videoSegs)}
	if len(d.textSegments) > 0 {
		textSegs := make([]segmentDoc, 0, len(d.textSegments))
		for _, s := range d.textSegments {
			textSegs = append(textSegs, newTextSegmentDoc(s, d.positionY(s.MaterialID)))
		}
		tracks = append(tracks, newTrackDoc(TrackKindText, textSegs))
	}

	return contentDoc{
		CanvasConfig: canvasConfigDoc{
			Height: d.CanvasHeight,
			Ratio:  "original",
			Width:  d.CanvasWidth,
		},
		Config:               newProjectConfigDoc(),
		CreateTime:           now,
		Duration:             ToMicros(d.Duration()),
		FPS:                  30.0,
		ID:                   d.ID,
		KeyframeGraphList:    []any{},
		Keyframes:            newKeyframesDoc(),
		LastModifiedPlatform: newPlatformDoc(),
		Materials:            newMaterialsDoc(videos, texts),
		Name:                 d.Name,
		NewVersion:           "113.0.0",
		Platform:             newPlatformDoc(),
		Relationships:        []any{},
		Source:               "default",
		Tracks:               tracks,
		UpdateTime:           now,
		Version:              360000,
	}
}

func (d *Draft) buildMeta(rootPath string, now int64) metaDoc {
	return metaDoc{
		DraftCloudMaterials: []any{},
		DraftID:             d.ID,
		DraftName:           d.Name,
		DraftRootPath:       rootPath,
		TmDraftCreate:       now,
		TmDraftModified:     now,
		TmDuration:          ToMicros(d.Duration()),
	}
}

// Save writes the project into outputDir under a folder named by the
// project id, and returns the folder path.
func (d *Draft) Save(outputDir string) (string, error) {
	folder := filepath.Join(outputDir, d.ID)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("create project folder: %w", err)
	}

	now := time.Now().Unix()

	absFolder, err := filepath.Abs(folder)
	if err != nil {
		absFolder = folder
	}

	if err := writeJSONFile(filepath.Join(folder, ContentFileName), d.buildContent(now)); err != nil {
		return "", err
	}
	if err := writeJSONFile(filepath.Join(folder, MetaFileName), d.buildMeta(absFolder, now)); err != nil {
		return "", err
	}
	return folder, nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

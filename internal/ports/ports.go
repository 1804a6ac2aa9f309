package ports

import (
	"context"

	"github.com/forPelevin/smartcut/internal/types"
)

// VideoTool wraps the external media command-line tool. The core only
// consumes its numeric outputs and asks for segment cut/concat operations on
// file paths.
type VideoTool interface {
	ProbeMedia(ctx context.Context, path string) (types.MediaInfo, error)
	ExtractAudio(ctx context.Context, inPath, outWav string, sampleRate int) error
	CutSegment(ctx context.Context, inPath, outPath string, start, end float64) error
	ConcatSegments(ctx context.Context, segmentPaths []string, outPath string) error
	MeasureLoudness(ctx context.Context, path string) (types.LoudnessInfo, error)
	NormalizeLoudness(ctx context.Context, inPath, outPath string, targetLUFS float64) (types.LoudnessInfo, error)
	MuxAudio(ctx context.Context, videoPath, audioPath, outPath string) error
}

// ASR wraps the external speech-to-text service.
type ASR interface {
	Transcribe(ctx context.Context, audioPath, language string) (types.Transcript, error)
}

// Oracle is the external language-model collaborator. Its answers are
// advisory and untrusted; callers degrade to doing without them when a call
// fails rather than aborting.
type Oracle interface {
	DetectDuplicates(ctx context.Context, paragraphs []types.ParagraphText) ([]types.DuplicateGroup, error)
	AccentWords(ctx context.Context, text string) ([]string, error)
}

// Enhancer wraps the external job-based audio enhancement service.
type Enhancer interface {
	CreateProduction(ctx context.Context, audioPath, presetUUID, title string) (string, error)
	PollUntilDone(ctx context.Context, productionID string) error
	DownloadResult(ctx context.Context, productionID, outPath string) error
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/forPelevin/smartcut/internal/domain/subtitles"
	"github.com/forPelevin/smartcut/internal/draft"
	"github.com/forPelevin/smartcut/internal/types"
)

// ProjectRef identifies an existing draft project by path, id, or name
// search within the drafts directory.
type ProjectRef struct {
	Path      string
	ID        string
	Name      string
	DraftsDir string
}

func (r ProjectRef) resolve() (string, error) {
	if r.Path != "" {
		return r.Path, nil
	}

	dir := r.DraftsDir
	if dir == "" {
		dir = draft.DefaultDraftsDir()
	}

	switch {
	case r.ID != "":
		p, err := draft.FindProjectByID(dir, r.ID)
		if err != nil {
			return "", err
		}
		if p == "" {
			return "", fmt.Errorf("project with id %q not found in %s", r.ID, dir)
		}
		return p, nil
	case r.Name != "":
		p, err := draft.FindProjectByName(dir, r.Name, false)
		if err != nil {
			return "", err
		}
		if p == "" {
			return "", fmt.Errorf("project %q not found in %s", r.Name, dir)
		}
		return p, nil
	}
	return "", errors.New("project path, id or name is required")
}

type ProjectCutInput struct {
	Project          ProjectRef
	Language         string
	SilenceThreshold float64
	DetectDuplicates bool
	AddSubtitles     bool
	SubtitleMaxWords int
	SubtitleMaxChars int
	Logf             func(format string, args ...any)
}

type ProjectCutResult struct {
	SourcePath string
	ForkPath   string
	ForkName   string

	Stats           types.CutStats
	VideosProcessed int
	SubtitlesAdded  int
	Degraded        bool
	DegradedReason  string
}

// ProjectCut applies the cut pipeline to every source video of an existing
// project. The original is never touched; all edits land in a fork.
func (u Usecase) ProjectCut(ctx context.Context, in ProjectCutInput) (ProjectCutResult, error) {
	logf := orNopLogf(in.Logf)

	dir, err := in.Project.resolve()
	if err != nil {
		return ProjectCutResult{}, err
	}
	src, err := draft.OpenProject(dir)
	if err != nil {
		return ProjectCutResult{}, err
	}

	forkName := src.Name() + " — SmartCut"
	fork, err := src.Fork(forkName)
	if err != nil {
		return ProjectCutResult{}, err
	}
	logf("fork %q: %s", forkName, fork.Dir)

	videos := fork.SourceVideoPaths()
	if len(videos) == 0 {
		return ProjectCutResult{}, errors.New("project has no video materials")
	}

	res := ProjectCutResult{SourcePath: dir, ForkPath: fork.Dir, ForkName: forkName}
	var allLines []types.SubtitleLine

	for _, videoPath := range videos {
		if _, err := os.Stat(videoPath); err != nil {
			logf("skipping missing source %s", videoPath)
			continue
		}

		logf("transcribing %s", videoPath)
		tr, err := u.transcribeFile(ctx, videoPath, in.Language)
		if err != nil {
			return ProjectCutResult{}, err
		}

		a := u.analyzeTranscript(ctx, tr, in.SilenceThreshold, in.DetectDuplicates)
		if a.Degraded {
			res.Degraded = true
			res.DegradedReason = a.DegradedReason
			logf("duplicate detection degraded: %s", a.DegradedReason)
		}

		if err := fork.ApplyCutPlan(a.Plan, videoPath); err != nil {
			return ProjectCutResult{}, err
		}

		res.Stats.OriginalDuration += a.Plan.Stats.OriginalDuration
		res.Stats.KeptDuration += a.Plan.Stats.KeptDuration
		res.Stats.RemovedDuration += a.Plan.Stats.RemovedDuration
		res.Stats.DuplicatesRemoved += a.Plan.Stats.DuplicatesRemoved
		res.Stats.SilencesRemoved += a.Plan.Stats.SilencesRemoved
		res.VideosProcessed++

		if in.AddSubtitles {
			lines := u.subtitleLines(ctx, tr, a.Plan.KeepSegments, in.SubtitleMaxWords, in.SubtitleMaxChars, true, logf)
			allLines = append(allLines, lines...)
		}
	}

	if res.VideosProcessed == 0 {
		return ProjectCutResult{}, errors.New("none of the project's source videos exist on disk")
	}

	if len(allLines) > 0 {
		fork.AddTextTrack(allLines, subtitleTextStyle(StyleDynamic))
		res.SubtitlesAdded = len(allLines)
	}

	if err := fork.Save(); err != nil {
		return ProjectCutResult{}, err
	}
	return res, nil
}

type ProjectSubtitlesInput struct {
	Project  ProjectRef
	Language string
	Style    string
	MaxWords int
	MaxChars int

	// SRTPath imports captions from a file instead of transcribing the
	// project's first source video.
	SRTPath string

	Logf func(format string, args ...any)
}

type ProjectSubtitlesResult struct {
	SourcePath     string
	ForkPath       string
	ForkName       string
	SubtitlesAdded int
}

// ProjectSubtitles adds a caption track to a fork of an existing project,
// either from an SRT file or from a fresh transcription.
func (u Usecase) ProjectSubtitles(ctx context.Context, in ProjectSubtitlesInput) (ProjectSubtitlesResult, error) {
	logf := orNopLogf(in.Logf)

	dir, err := in.Project.resolve()
	if err != nil {
		return ProjectSubtitlesResult{}, err
	}
	src, err := draft.OpenProject(dir)
	if err != nil {
		return ProjectSubtitlesResult{}, err
	}

	forkName := src.Name() + " — SmartCut"
	fork, err := src.Fork(forkName)
	if err != nil {
		return ProjectSubtitlesResult{}, err
	}
	logf("fork %q: %s", forkName, fork.Dir)

	var lines []types.SubtitleLine
	if in.SRTPath != "" {
		b, err := os.ReadFile(in.SRTPath)
		if err != nil {
			return ProjectSubtitlesResult{}, fmt.Errorf("read srt: %w", err)
		}
		lines = subtitles.ParseSRT(string(b))
	} else {
		videos := fork.SourceVideoPaths()
		if len(videos) == 0 {
			return ProjectSubtitlesResult{}, errors.New("project has no video materials")
		}
		logf("transcribing %s", videos[0])
		tr, err := u.transcribeFile(ctx, videos[0], in.Language)
		if err != nil {
			return ProjectSubtitlesResult{}, err
		}
		withAccents := in.Style == StyleDynamic
		lines = u.subtitleLines(ctx, tr, fullTimeline(tr), in.MaxWords, in.MaxChars, withAccents, logf)
	}

	if len(lines) == 0 {
		return ProjectSubtitlesResult{}, errors.New("no subtitles to add")
	}

	fork.AddTextTrack(lines, subtitleTextStyle(in.Style))
	if err := fork.Save(); err != nil {
		return ProjectSubtitlesResult{}, err
	}

	return ProjectSubtitlesResult{
		SourcePath:     dir,
		ForkPath:       fork.Dir,
		ForkName:       forkName,
		SubtitlesAdded: len(lines),
	}, nil
}

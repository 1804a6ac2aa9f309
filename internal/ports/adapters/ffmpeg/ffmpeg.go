// Package ffmpeg shells out to ffmpeg/ffprobe for probing, cutting and
// loudness work.
package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/forPelevin/smartcut/internal/types"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

// Installed reports whether both binaries resolve on PATH.
func (a *Adapter) Installed() bool {
	_, errF := exec.LookPath(a.ffmpeg)
	_, errP := exec.LookPath(a.ffprobe)
	return errF == nil && errP == nil
}

type probeOutput struct {
	Format struct {
		Duration   string `json:"duration"`
		FormatName string `json:"format_name"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		RFrameRate string `json:"r_frame_rate"`
		SampleRate string `json:"sample_rate"`
	} `json:"streams"`
}

func (a *Adapter) ProbeMedia(ctx context.Context, path string) (types.MediaInfo, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	b, err := cmd.Output()
	if err != nil {
		return types.MediaInfo{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var raw probeOutput
	if err := json.Unmarshal(b, &raw); err != nil {
		return types.MediaInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	info := types.MediaInfo{
		Width:           1920,
		Height:          1080,
		FPS:             30.0,
		AudioSampleRate: 44100,
	}
	if raw.Format.Duration != "" {
		info.Duration, err = strconv.ParseFloat(raw.Format.Duration, 64)
		if err != nil {
			return types.MediaInfo{}, fmt.Errorf("parse duration %q: %w", raw.Format.Duration, err)
		}
	}
	info.Format, _, _ = strings.Cut(raw.Format.FormatName, ",")

	for _, s := range raw.Streams {
		switch s.CodecType {
		case "video":
			if s.Width > 0 {
				info.Width = s.Width
			}
			if s.Height > 0 {
				info.Height = s.Height
			}
			if fps, ok := parseFrameRate(s.RFrameRate); ok {
				info.FPS = fps
			}
		case "audio":
			if rate, err := strconv.Atoi(s.SampleRate); err == nil && rate > 0 {
				info.AudioSampleRate = rate
			}
		}
	}
	return info, nil
}

func (a *Adapter) ExtractAudio(ctx context.Context, inPath, outWav string, sampleRate int) error {
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", inPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(sampleRate),
		"-ac", "1",
		outWav,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w\n%s", err, string(b))
	}
	return nil
}

// CutSegment cuts [start, end) with stream copy, seeking before the input.
func (a *Adapter) CutSegment(ctx context.Context, inPath, outPath string, start, end float64) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-ss", fmtSeconds(start),
		"-i", inPath,
		"-t", fmtSeconds(end-start),
		"-c", "copy",
		outPath,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg cut segment: %w\n%s", err, string(b))
	}
	return nil
}

// ConcatSegments joins segments with the concat demuxer (stream copy). A
// single segment is copied as-is.
func (a *Adapter) ConcatSegments(ctx context.Context, segmentPaths []string, outPath string) error {
	if len(segmentPaths) == 0 {
		return fmt.Errorf("no segments to concatenate")
	}
	if len(segmentPaths) == 1 {
		return copyFile(segmentPaths[0], outPath)
	}

	list, err := writeConcatList(segmentPaths)
	if err != nil {
		return err
	}
	defer os.Remove(list)

	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", list,
		"-c", "copy",
		outPath,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg concat: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) MeasureLoudness(ctx context.Context, path string) (types.LoudnessInfo, error) {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-i", path,
		"-af", "loudnorm=print_format=json",
		"-f", "null",
		"-",
	)
	// loudnorm prints its report on stderr.
	b, _ := cmd.CombinedOutput()
	return parseLoudnessReport(string(b))
}

// NormalizeLoudness runs the two-pass loudnorm flow: measure, then apply
// linear normalization with the measured values. The video stream is copied.
func (a *Adapter) NormalizeLoudness(ctx context.Context, inPath, outPath string, targetLUFS float64) (types.LoudnessInfo, error) {
	loudness, err := a.MeasureLoudness(ctx, inPath)
	if err != nil {
		return types.LoudnessInfo{}, err
	}

	filter := fmt.Sprintf(
		"loudnorm=I=%s:TP=-1.5:LRA=11:measured_I=%s:measured_TP=%s:measured_LRA=%s:measured_thresh=%s:offset=%s:linear=true",
		fmtFloat(targetLUFS),
		fmtFloat(loudness.InputI),
		fmtFloat(loudness.InputTP),
		fmtFloat(loudness.InputLRA),
		fmtFloat(loudness.InputThresh),
		fmtFloat(loudness.TargetOffset),
	)
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", inPath,
		"-af", filter,
		"-c:v", "copy",
		outPath,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return types.LoudnessInfo{}, fmt.Errorf("ffmpeg loudnorm: %w\n%s", err, string(b))
	}
	return loudness, nil
}

// MuxAudio replaces the video's audio track with audioPath.
func (a *Adapter) MuxAudio(ctx context.Context, videoPath, audioPath, outPath string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", "copy",
		"-c:a", "aac",
		"-map", "0:v:0",
		"-map", "1:a:0",
		outPath,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg mux audio: %w\n%s", err, string(b))
	}
	return nil
}

func parseLoudnessReport(output string) (types.LoudnessInfo, error) {
	start := strings.LastIndex(output, "{")
	end := strings.LastIndex(output, "}")
	if start < 0 || end <= start {
		return types.LoudnessInfo{}, fmt.Errorf("no loudness report in ffmpeg output")
	}

	var raw struct {
		InputI       string `json:"input_i"`
		InputTP      string `json:"input_tp"`
		InputLRA     string `json:"input_lra"`
		InputThresh  string `json:"input_thresh"`
		TargetOffset string `json:"target_offset"`
	}
	if err := json.Unmarshal([]byte(output[start:end+1]), &raw); err != nil {
		return types.LoudnessInfo{}, fmt.Errorf("parse loudness report: %w", err)
	}

	return types.LoudnessInfo{
		InputI:       parseOr(raw.InputI, -24),
		InputTP:      parseOr(raw.InputTP, 0),
		InputLRA:     parseOr(raw.InputLRA, 0),
		InputThresh:  parseOr(raw.InputThresh, -34),
		TargetOffset: parseOr(raw.TargetOffset, 0),
	}, nil
}

func parseOr(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fallback
	}
	return v
}

func parseFrameRate(s string) (float64, bool) {
	num, den, found := strings.Cut(s, "/")
	if !found {
		v, err := strconv.ParseFloat(s, 64)
		return v, err == nil
	}
	n, errN := strconv.ParseFloat(num, 64)
	d, errD := strconv.ParseFloat(den, 64)
	if errN != nil || errD != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

func writeConcatList(paths []string) (string, error) {
	f, err := os.CreateTemp("", "concat-*.txt")
	if err != nil {
		return "", fmt.Errorf("create concat list: %w", err)
	}
	defer f.Close()

	for _, p := range paths {
		escaped := strings.ReplaceAll(p, "'", `'\''`)
		if _, err := fmt.Fprintf(f, "file '%s'\n", escaped); err != nil {
			os.Remove(f.Name())
			return "", fmt.Errorf("write concat list: %w", err)
		}
	}
	return f.Name(), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	return out.Close()
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

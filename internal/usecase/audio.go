package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forPelevin/smartcut/internal/types"
)

type EnhanceInput struct {
	InputPath  string
	PresetUUID string

	// OutputPath overrides the "<stem>_enhanced.<ext>" default.
	OutputPath string

	Logf func(format string, args ...any)
}

type EnhanceResult struct {
	OutputPath   string
	ProductionID string
}

// Enhance runs the audio through the external enhancement service and muxes
// the processed track back into the video.
func (u Usecase) Enhance(ctx context.Context, in EnhanceInput) (EnhanceResult, error) {
	if u.d.Enhancer == nil {
		return EnhanceResult{}, errors.New("audio enhancement requires AUPHONIC_API_KEY")
	}
	logf := orNopLogf(in.Logf)

	input, err := absInput(in.InputPath)
	if err != nil {
		return EnhanceResult{}, err
	}

	outPath := in.OutputPath
	if outPath == "" {
		outPath = siblingPath(input, "_enhanced")
	}

	tmp, err := os.MkdirTemp("", "smartcut-*")
	if err != nil {
		return EnhanceResult{}, err
	}
	defer os.RemoveAll(tmp)

	audio := filepath.Join(tmp, "audio.wav")
	if err := u.d.Video.ExtractAudio(ctx, input, audio, enhanceSampleRate); err != nil {
		return EnhanceResult{}, err
	}

	title := "SmartCut: " + filepath.Base(input)
	id, err := u.d.Enhancer.CreateProduction(ctx, audio, in.PresetUUID, title)
	if err != nil {
		return EnhanceResult{}, err
	}
	logf("production %s created, waiting for processing", id)

	if err := u.d.Enhancer.PollUntilDone(ctx, id); err != nil {
		return EnhanceResult{}, err
	}

	enhanced := filepath.Join(tmp, "enhanced.wav")
	if err := u.d.Enhancer.DownloadResult(ctx, id, enhanced); err != nil {
		return EnhanceResult{}, err
	}

	if err := u.d.Video.MuxAudio(ctx, input, enhanced, outPath); err != nil {
		return EnhanceResult{}, err
	}
	logf("enhanced audio muxed into %s", outPath)

	return EnhanceResult{OutputPath: outPath, ProductionID: id}, nil
}

type NormalizeInput struct {
	InputPath  string
	TargetLUFS float64

	// OutputPath overrides the "<stem>_normalized.<ext>" default.
	OutputPath string

	Logf func(format string, args ...any)
}

type NormalizeResult struct {
	OutputPath string
	Measured   types.LoudnessInfo
}

// Normalize runs two-pass loudness normalization towards the target LUFS.
func (u Usecase) Normalize(ctx context.Context, in NormalizeInput) (NormalizeResult, error) {
	logf := orNopLogf(in.Logf)

	input, err := absInput(in.InputPath)
	if err != nil {
		return NormalizeResult{}, err
	}

	outPath := in.OutputPath
	if outPath == "" {
		outPath = siblingPath(input, "_normalized")
	}

	measured, err := u.d.Video.NormalizeLoudness(ctx, input, outPath, in.TargetLUFS)
	if err != nil {
		return NormalizeResult{}, fmt.Errorf("normalize loudness: %w", err)
	}
	logf("measured %.1f LUFS, normalized to %.1f LUFS: %s", measured.InputI, in.TargetLUFS, outPath)

	return NormalizeResult{OutputPath: outPath, Measured: measured}, nil
}

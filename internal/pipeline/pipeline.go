// Package pipeline wires the concrete adapters into a ready-to-run usecase.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/forPelevin/smartcut/internal/config"
	"github.com/forPelevin/smartcut/internal/ports"
	"github.com/forPelevin/smartcut/internal/ports/adapters/auphonic"
	"github.com/forPelevin/smartcut/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/smartcut/internal/ports/adapters/openai"
	"github.com/forPelevin/smartcut/internal/ports/adapters/whisperapi"
	"github.com/forPelevin/smartcut/internal/usecase"
)

type Config struct {
	Settings config.Settings
	Logf     func(format string, args ...any)
}

func (c Config) Validate() error {
	if err := c.Settings.Validate(); err != nil {
		return err
	}
	if c.Settings.OpenAIAPIKey == "" {
		return errors.New("OPENAI_API_KEY is required (set it in .env)")
	}
	return nil
}

// New validates the config and builds the usecase with live adapters behind
// every port.
func New(cfg Config) (usecase.Usecase, error) {
	if err := cfg.Validate(); err != nil {
		return usecase.Usecase{}, fmt.Errorf("config: %w", err)
	}

	s := cfg.Settings

	video := ffmpeg.New(s.FFmpegPath, s.FFprobePath)
	if !video.Installed() {
		return usecase.Usecase{}, errors.New("ffmpeg is not installed or not in PATH")
	}

	deps := usecase.Deps{
		Video:  video,
		ASR:    whisperapi.New(s.OpenAIAPIKey, s.WhisperModel, s.OpenAIBaseURL),
		Oracle: openai.New(s.OpenAIAPIKey, s.OracleModel, s.OpenAIBaseURL),
	}
	if s.AuphonicAPIKey != "" {
		deps.Enhancer = auphonic.New(s.AuphonicAPIKey, s.AuphonicBaseURL)
	}

	return usecase.New(deps), nil
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.ASR = (*whisperapi.Adapter)(nil)
var _ ports.Oracle = (*openai.Adapter)(nil)
var _ ports.Enhancer = (*auphonic.Adapter)(nil)

// Package config holds the settings every command runs with. Values come
// from defaults, then an optional YAML file, then environment variables;
// later sources win.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvOpenAIAPIKey       = "OPENAI_API_KEY"
	EnvAuphonicAPIKey     = "AUPHONIC_API_KEY"
	EnvAuphonicPresetUUID = "AUPHONIC_PRESET_UUID"
	EnvDraftsDir          = "CAPCUT_DRAFTS_DIR"
)

// Tuning defaults.
const (
	DefaultSilenceThreshold = 3.0
	DefaultSubtitleMaxWords = 8
	DefaultSubtitleMaxChars = 45
	DefaultTargetLUFS       = -16.0
	DefaultWhisperModel     = "whisper-1"
	DefaultOracleModel      = "gpt-4o-mini"
)

type Settings struct {
	// Secrets, environment-only.
	OpenAIAPIKey   string `yaml:"-"`
	AuphonicAPIKey string `yaml:"-"`

	AuphonicPresetUUID string `yaml:"auphonic_preset_uuid"`

	// DraftsDir overrides NLE drafts directory auto-detection.
	DraftsDir string `yaml:"drafts_dir"`

	SilenceThreshold float64 `yaml:"silence_threshold"`
	SubtitleMaxWords int     `yaml:"subtitle_max_words"`
	SubtitleMaxChars int     `yaml:"subtitle_max_chars"`
	TargetLUFS       float64 `yaml:"target_lufs"`

	WhisperModel string `yaml:"whisper_model"`
	OracleModel  string `yaml:"oracle_model"`

	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`

	// Base URLs are overridable for testing against stubs.
	OpenAIBaseURL   string `yaml:"openai_base_url"`
	AuphonicBaseURL string `yaml:"auphonic_base_url"`
}

// Default returns settings with every tunable at its built-in value and no
// secrets.
func Default() Settings {
	return Settings{
		SilenceThreshold: DefaultSilenceThreshold,
		SubtitleMaxWords: DefaultSubtitleMaxWords,
		SubtitleMaxChars: DefaultSubtitleMaxChars,
		TargetLUFS:       DefaultTargetLUFS,
		WhisperModel:     DefaultWhisperModel,
		OracleModel:      DefaultOracleModel,
		FFmpegPath:       "ffmpeg",
		FFprobePath:      "ffprobe",
	}
}

// Load builds settings from defaults, the optional YAML file at path (empty
// path skips the file), and finally the environment.
func Load(path string) (Settings, error) {
	s := Default()
	if path != "" {
		if err := s.applyFile(path); err != nil {
			return Settings{}, err
		}
	}
	s.applyEnv()
	return s, nil
}

func (s *Settings) applyFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, s); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (s *Settings) applyEnv() {
	if v := os.Getenv(EnvOpenAIAPIKey); v != "" {
		s.OpenAIAPIKey = v
	}
	if v := os.Getenv(EnvAuphonicAPIKey); v != "" {
		s.AuphonicAPIKey = v
	}
	if v := os.Getenv(EnvAuphonicPresetUUID); v != "" {
		s.AuphonicPresetUUID = v
	}
	if v := os.Getenv(EnvDraftsDir); v != "" {
		s.DraftsDir = v
	}
}

// Validate checks the settings every command depends on. Commands with extra
// requirements (API keys) check those themselves.
func (s Settings) Validate() error {
	if s.SilenceThreshold <= 0 {
		return fmt.Errorf("silence threshold must be > 0")
	}
	if s.SubtitleMaxWords <= 0 {
		return fmt.Errorf("subtitle max words must be > 0")
	}
	if s.SubtitleMaxChars <= 0 {
		return fmt.Errorf("subtitle max chars must be > 0")
	}
	if s.FFmpegPath == "" || s.FFprobePath == "" {
		return fmt.Errorf("ffmpeg and ffprobe paths must not be empty")
	}
	return nil
}

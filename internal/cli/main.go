// Package cli builds the smartcut command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/forPelevin/smartcut/internal/config"
	"github.com/forPelevin/smartcut/internal/pipeline"
	"github.com/forPelevin/smartcut/internal/usecase"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "smartcut",
		Short:        "Transcript-driven rough cuts and CapCut draft export",
		SilenceUsage: true,
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.PersistentFlags().String("config", "", "Path to YAML config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "Verbose progress logging")

	root.AddCommand(
		newCutCmd(),
		newAnalyzeCmd(),
		newSubtitlesCmd(),
		newExportCmd(),
		newEnhanceCmd(),
		newNormalizeCmd(),
		newProjectsCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadSettings reads the YAML file named by --config (if any) and the
// environment. Commands that only read local files use this directly and
// skip API key validation.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	return config.Load(cfgPath)
}

// buildUsecase wires live adapters for commands that transcribe or call out.
func buildUsecase(cmd *cobra.Command) (usecase.Usecase, config.Settings, func(string, ...any), error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return usecase.Usecase{}, config.Settings{}, nil, err
	}

	logf := func(string, ...any) {}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}

	uc, err := pipeline.New(pipeline.Config{Settings: s, Logf: logf})
	if err != nil {
		return usecase.Usecase{}, config.Settings{}, nil, err
	}
	return uc, s, logf, nil
}

func runCtx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 3*time.Hour)
}

// floatFlag prefers an explicitly set flag over the settings value, so YAML
// config still applies when the flag is left at its default.
func floatFlag(cmd *cobra.Command, name string, fallback float64) float64 {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetFloat64(name)
		return v
	}
	return fallback
}

func formatClock(sec float64) string {
	total := int(sec)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func validStyle(style string) error {
	if style != usecase.StyleDynamic && style != usecase.StyleSimple {
		return fmt.Errorf("unknown subtitle style %q (want dynamic or simple)", style)
	}
	return nil
}

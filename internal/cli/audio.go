package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forPelevin/smartcut/internal/config"
	"github.com/forPelevin/smartcut/internal/usecase"
)

func newEnhanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enhance <input>",
		Short: "Enhance the audio track through Auphonic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnhance(cmd, args[0])
		},
	}
	cmd.Flags().String("preset", "", "Auphonic preset UUID, AUPHONIC_PRESET_UUID when empty")
	cmd.Flags().String("output", "", "Output path, \"<stem>_enhanced\" next to the input when empty")
	return cmd
}

func runEnhance(cmd *cobra.Command, input string) error {
	uc, s, logf, err := buildUsecase(cmd)
	if err != nil {
		return err
	}

	preset, _ := cmd.Flags().GetString("preset")
	if preset == "" {
		preset = s.AuphonicPresetUUID
	}
	output, _ := cmd.Flags().GetString("output")

	ctx, cancel := runCtx(cmd)
	defer cancel()

	res, err := uc.Enhance(ctx, usecase.EnhanceInput{
		InputPath:  input,
		PresetUUID: preset,
		OutputPath: output,
		Logf:       logf,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Enhanced audio saved to %s (production %s)\n",
		res.OutputPath, res.ProductionID)
	return nil
}

func newNormalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize <input>",
		Short: "Normalize loudness with a two-pass loudnorm filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, args[0])
		},
	}
	cmd.Flags().Float64("target", config.DefaultTargetLUFS, "Target loudness in LUFS")
	cmd.Flags().String("output", "", "Output path, \"<stem>_normalized\" next to the input when empty")
	return cmd
}

func runNormalize(cmd *cobra.Command, input string) error {
	uc, s, logf, err := buildUsecase(cmd)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")

	ctx, cancel := runCtx(cmd)
	defer cancel()

	res, err := uc.Normalize(ctx, usecase.NormalizeInput{
		InputPath:  input,
		TargetLUFS: floatFlag(cmd, "target", s.TargetLUFS),
		OutputPath: output,
		Logf:       logf,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Normalized %.1f LUFS -> %.1f LUFS: %s\n",
		res.Measured.InputI, floatFlag(cmd, "target", s.TargetLUFS), res.OutputPath)
	return nil
}

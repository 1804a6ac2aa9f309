package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forPelevin/smartcut/internal/config"
	"github.com/forPelevin/smartcut/internal/usecase"
)

func newCutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cut <input>",
		Short: "Transcribe, cut pauses and duplicate takes, export the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCut(cmd, args[0])
		},
	}
	cmd.Flags().String("language", "", "Language code, auto-detect when empty")
	cmd.Flags().Float64("threshold", config.DefaultSilenceThreshold, "Minimum pause to cut, seconds")
	cmd.Flags().Bool("no-duplicates", false, "Skip duplicate take detection")
	cmd.Flags().String("format", usecase.FormatDraft, "Output: capcut, video or both")
	cmd.Flags().String("name", "", "Draft project name, derived from the input when empty")
	cmd.Flags().Bool("no-subtitles", false, "Skip subtitle generation")
	cmd.Flags().String("style", usecase.StyleDynamic, "Subtitle style: dynamic or simple")
	cmd.Flags().String("output", "", "Cut video output path")
	return cmd
}

func runCut(cmd *cobra.Command, input string) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case usecase.FormatDraft, usecase.FormatVideo, usecase.FormatBoth:
	default:
		return fmt.Errorf("unknown format %q (want capcut, video or both)", format)
	}
	style, _ := cmd.Flags().GetString("style")
	if err := validStyle(style); err != nil {
		return err
	}

	uc, s, logf, err := buildUsecase(cmd)
	if err != nil {
		return err
	}

	language, _ := cmd.Flags().GetString("language")
	noDuplicates, _ := cmd.Flags().GetBool("no-duplicates")
	noSubtitles, _ := cmd.Flags().GetBool("no-subtitles")
	name, _ := cmd.Flags().GetString("name")
	output, _ := cmd.Flags().GetString("output")

	ctx, cancel := runCtx(cmd)
	defer cancel()

	res, err := uc.SmartCut(ctx, usecase.SmartCutInput{
		InputPath:        input,
		Language:         language,
		SilenceThreshold: floatFlag(cmd, "threshold", s.SilenceThreshold),
		DetectDuplicates: !noDuplicates,
		Format:           format,
		ProjectName:      name,
		DraftsDir:        s.DraftsDir,
		AddSubtitles:     !noSubtitles,
		SubtitleStyle:    style,
		SubtitleMaxWords: s.SubtitleMaxWords,
		SubtitleMaxChars: s.SubtitleMaxChars,
		VideoOutputPath:  output,
		Logf:             logf,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	st := res.Plan.Stats
	fmt.Fprintf(out, "Original duration:  %s\n", formatClock(st.OriginalDuration))
	fmt.Fprintf(out, "Final duration:     %s\n", formatClock(st.KeptDuration))
	fmt.Fprintf(out, "Time saved:         %s\n", formatClock(st.RemovedDuration))
	fmt.Fprintf(out, "Duplicates removed: %d\n", st.DuplicatesRemoved)
	fmt.Fprintf(out, "Silences removed:   %d\n", st.SilencesRemoved)
	if res.Degraded {
		fmt.Fprintf(out, "Note: duplicate detection unavailable (%s)\n", res.DegradedReason)
	}
	if res.DraftPath != "" {
		fmt.Fprintf(out, "Draft project: %s\n", res.DraftPath)
		fmt.Fprintln(out, "Open CapCut and find it in your drafts; a restart may be needed.")
	}
	if res.VideoPath != "" {
		fmt.Fprintf(out, "Video: %s\n", res.VideoPath)
	}
	if res.SRTPath != "" {
		fmt.Fprintf(out, "Subtitles: %s\n", res.SRTPath)
	}
	return nil
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <input>",
		Short: "Build a cut plan without writing any output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0])
		},
	}
	cmd.Flags().String("language", "", "Language code, auto-detect when empty")
	cmd.Flags().Float64("threshold", config.DefaultSilenceThreshold, "Minimum pause to cut, seconds")
	cmd.Flags().Bool("no-duplicates", false, "Skip duplicate take detection")
	return cmd
}

func runAnalyze(cmd *cobra.Command, input string) error {
	uc, s, logf, err := buildUsecase(cmd)
	if err != nil {
		return err
	}

	language, _ := cmd.Flags().GetString("language")
	noDuplicates, _ := cmd.Flags().GetBool("no-duplicates")

	ctx, cancel := runCtx(cmd)
	defer cancel()

	res, err := uc.Analyze(ctx, usecase.AnalyzeInput{
		InputPath:        input,
		Language:         language,
		SilenceThreshold: floatFlag(cmd, "threshold", s.SilenceThreshold),
		DetectDuplicates: !noDuplicates,
		Logf:             logf,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Language: %s, duration %s, %d paragraphs\n",
		res.Transcript.Language, formatClock(res.Transcript.Duration), len(res.Paragraphs))
	if res.Degraded {
		fmt.Fprintf(out, "Note: duplicate detection unavailable (%s)\n", res.DegradedReason)
	}

	for _, seg := range res.Plan.RemoveSegments {
		fmt.Fprintf(out, "  remove %7.2f - %7.2f  %s\n", seg.Start, seg.End, seg.Reason)
	}
	st := res.Plan.Stats
	fmt.Fprintf(out, "Keep %d segments (%s of %s), %d duplicates and %d silences removed\n",
		len(res.Plan.KeepSegments), formatClock(st.KeptDuration), formatClock(st.OriginalDuration),
		st.DuplicatesRemoved, st.SilencesRemoved)
	return nil
}

func newSubtitlesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtitles <input>",
		Short: "Transcribe and write an SRT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubtitles(cmd, args[0])
		},
	}
	cmd.Flags().String("language", "", "Language code, auto-detect when empty")
	cmd.Flags().String("style", usecase.StyleDynamic, "Subtitle style: dynamic or simple")
	cmd.Flags().String("output", "", "SRT output path, next to the input when empty")
	return cmd
}

func runSubtitles(cmd *cobra.Command, input string) error {
	style, _ := cmd.Flags().GetString("style")
	if err := validStyle(style); err != nil {
		return err
	}

	uc, s, logf, err := buildUsecase(cmd)
	if err != nil {
		return err
	}

	language, _ := cmd.Flags().GetString("language")
	output, _ := cmd.Flags().GetString("output")

	ctx, cancel := runCtx(cmd)
	defer cancel()

	res, err := uc.Subtitles(ctx, usecase.SubtitlesInput{
		InputPath:  input,
		Language:   language,
		Style:      style,
		MaxWords:   s.SubtitleMaxWords,
		MaxChars:   s.SubtitleMaxChars,
		OutputPath: output,
		Logf:       logf,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d lines (%d accent words): %s\n",
		len(res.Lines), res.AccentWordCount, res.SRTPath)
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <input>",
		Short: "Cut the video file itself, without a draft project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0])
		},
	}
	cmd.Flags().String("language", "", "Language code, auto-detect when empty")
	cmd.Flags().Float64("threshold", config.DefaultSilenceThreshold, "Minimum pause to cut, seconds")
	cmd.Flags().Bool("no-duplicates", false, "Skip duplicate take detection")
	cmd.Flags().String("output", "", "Output path, \"<stem>_cut\" next to the input when empty")
	return cmd
}

func runExport(cmd *cobra.Command, input string) error {
	uc, s, logf, err := buildUsecase(cmd)
	if err != nil {
		return err
	}

	language, _ := cmd.Flags().GetString("language")
	noDuplicates, _ := cmd.Flags().GetBool("no-duplicates")
	output, _ := cmd.Flags().GetString("output")

	ctx, cancel := runCtx(cmd)
	defer cancel()

	res, err := uc.SmartCut(ctx, usecase.SmartCutInput{
		InputPath:        input,
		Language:         language,
		SilenceThreshold: floatFlag(cmd, "threshold", s.SilenceThreshold),
		DetectDuplicates: !noDuplicates,
		Format:           usecase.FormatVideo,
		VideoOutputPath:  output,
		Logf:             logf,
	})
	if err != nil {
		return err
	}

	st := res.Plan.Stats
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s, saved %s)\n",
		res.VideoPath, formatClock(st.KeptDuration), formatClock(st.RemovedDuration))
	return nil
}

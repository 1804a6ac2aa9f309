package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/forPelevin/smartcut/internal/config"
	"github.com/forPelevin/smartcut/internal/draft"
	"github.com/forPelevin/smartcut/internal/usecase"
)

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Inspect and edit existing CapCut draft projects",
	}
	cmd.PersistentFlags().String("drafts-dir", "", "CapCut drafts directory, auto-detected when empty")
	cmd.AddCommand(
		newProjectsListCmd(),
		newProjectsShowCmd(),
		newProjectsCutCmd(),
		newProjectsSubsCmd(),
	)
	return cmd
}

// resolveDraftsDir prefers the flag, then config, then OS auto-detection.
func resolveDraftsDir(cmd *cobra.Command, s config.Settings) string {
	if v, _ := cmd.Flags().GetString("drafts-dir"); v != "" {
		return v
	}
	if s.DraftsDir != "" {
		return s.DraftsDir
	}
	return draft.DefaultDraftsDir()
}

// projectRef treats an argument that names an existing directory as a path
// and anything else as a name to search for.
func projectRef(arg, draftsDir string) usecase.ProjectRef {
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		return usecase.ProjectRef{Path: arg}
	}
	return usecase.ProjectRef{Name: arg, DraftsDir: draftsDir}
}

func newProjectsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List draft projects, newest first",
		Args:  cobra.NoArgs,
		RunE:  runProjectsList,
	}
	cmd.Flags().Bool("all", false, "Include incomplete projects without a content file")
	return cmd
}

func runProjectsList(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	dir := resolveDraftsDir(cmd, s)

	all, _ := cmd.Flags().GetBool("all")
	projects, err := draft.ListProjects(dir, !all)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(projects) == 0 {
		fmt.Fprintf(out, "No projects found in %s\n", dir)
		return nil
	}
	for _, p := range projects {
		fmt.Fprintf(out, "%-40s %6s  %d videos  %s\n",
			p.Name, p.FormattedDuration(), p.VideoCount,
			time.Unix(p.ModifiedTime, 0).Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(out, "%d projects in %s\n", len(projects), dir)
	return nil
}

func newProjectsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name-or-path>",
		Short: "Print a project's materials and segments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectsShow(cmd, args[0])
		},
	}
}

func runProjectsShow(cmd *cobra.Command, arg string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	dir := arg
	if info, err := os.Stat(arg); err != nil || !info.IsDir() {
		dir, err = draft.FindProjectByName(resolveDraftsDir(cmd, s), arg, false)
		if err != nil {
			return err
		}
		if dir == "" {
			return fmt.Errorf("project %q not found", arg)
		}
	}

	p, err := draft.OpenProject(dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w, h := p.CanvasSize()
	fmt.Fprintf(out, "%s (%s)\n", p.Name(), p.ID())
	fmt.Fprintf(out, "  path:     %s\n", p.Dir)
	fmt.Fprintf(out, "  duration: %s, canvas %dx%d\n", formatClock(p.Duration()), w, h)

	for _, m := range p.VideoMaterials() {
		fmt.Fprintf(out, "  material %s  %s\n", m.ID, m.Path)
	}
	for _, seg := range p.VideoSegments() {
		fmt.Fprintf(out, "  video %7.2f - %7.2f  source %7.2f  %s\n",
			seg.TimelineStart, seg.TimelineStart+seg.Duration, seg.SourceStart, seg.SourcePath)
	}
	for _, seg := range p.TextSegments() {
		fmt.Fprintf(out, "  text  %7.2f - %7.2f  %q\n",
			seg.TimelineStart, seg.TimelineEnd, seg.Text)
	}
	return nil
}

func newProjectsCutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cut <name-or-path>",
		Short: "Apply the cut pipeline to a fork of an existing project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectsCut(cmd, args[0])
		},
	}
	cmd.Flags().String("language", "", "Language code, auto-detect when empty")
	cmd.Flags().Float64("threshold", config.DefaultSilenceThreshold, "Minimum pause to cut, seconds")
	cmd.Flags().Bool("no-duplicates", false, "Skip duplicate take detection")
	cmd.Flags().Bool("subtitles", false, "Also add a caption track")
	return cmd
}

func runProjectsCut(cmd *cobra.Command, arg string) error {
	uc, s, logf, err := buildUsecase(cmd)
	if err != nil {
		return err
	}

	language, _ := cmd.Flags().GetString("language")
	noDuplicates, _ := cmd.Flags().GetBool("no-duplicates")
	addSubtitles, _ := cmd.Flags().GetBool("subtitles")

	ctx, cancel := runCtx(cmd)
	defer cancel()

	res, err := uc.ProjectCut(ctx, usecase.ProjectCutInput{
		Project:          projectRef(arg, resolveDraftsDir(cmd, s)),
		Language:         language,
		SilenceThreshold: floatFlag(cmd, "threshold", s.SilenceThreshold),
		DetectDuplicates: !noDuplicates,
		AddSubtitles:     addSubtitles,
		SubtitleMaxWords: s.SubtitleMaxWords,
		SubtitleMaxChars: s.SubtitleMaxChars,
		Logf:             logf,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Cut applied to fork %q: %s\n", res.ForkName, res.ForkPath)
	fmt.Fprintf(out, "  %d videos, %s -> %s, %d duplicates and %d silences removed\n",
		res.VideosProcessed, formatClock(res.Stats.OriginalDuration),
		formatClock(res.Stats.KeptDuration), res.Stats.DuplicatesRemoved, res.Stats.SilencesRemoved)
	if res.SubtitlesAdded > 0 {
		fmt.Fprintf(out, "  %d subtitles added\n", res.SubtitlesAdded)
	}
	if res.Degraded {
		fmt.Fprintf(out, "Note: duplicate detection unavailable (%s)\n", res.DegradedReason)
	}
	fmt.Fprintln(out, "The original project is unchanged.")
	return nil
}

func newProjectsSubsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subs <name-or-path>",
		Short: "Add a caption track to a fork of an existing project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectsSubs(cmd, args[0])
		},
	}
	cmd.Flags().String("srt", "", "Import captions from an SRT file instead of transcribing")
	cmd.Flags().String("style", usecase.StyleDynamic, "Subtitle style: dynamic or simple")
	cmd.Flags().String("language", "", "Language code, auto-detect when empty")
	return cmd
}

func runProjectsSubs(cmd *cobra.Command, arg string) error {
	style, _ := cmd.Flags().GetString("style")
	if err := validStyle(style); err != nil {
		return err
	}

	uc, s, logf, err := buildUsecase(cmd)
	if err != nil {
		return err
	}

	srtPath, _ := cmd.Flags().GetString("srt")
	language, _ := cmd.Flags().GetString("language")

	ctx, cancel := runCtx(cmd)
	defer cancel()

	res, err := uc.ProjectSubtitles(ctx, usecase.ProjectSubtitlesInput{
		Project:  projectRef(arg, resolveDraftsDir(cmd, s)),
		Language: language,
		Style:    style,
		MaxWords: s.SubtitleMaxWords,
		MaxChars: s.SubtitleMaxChars,
		SRTPath:  srtPath,
		Logf:     logf,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %d subtitles to fork %q: %s\nThe original project is unchanged.\n",
		res.SubtitlesAdded, res.ForkName, res.ForkPath)
	return nil
}

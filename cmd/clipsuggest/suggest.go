package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/clipsuggest/internal/clips"
	"github.com/dgallion1/clipsuggest/internal/timedtext"
	"github.com/spf13/cobra"
)

func suggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <timedtext.xml>",
		Short: "Suggest clips from a local timedtext caption file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := clips.DefaultOptions()
			opts.TopK, _ = cmd.Flags().GetInt("top")
			opts.MinLen, _ = cmd.Flags().GetFloat64("min")
			opts.MaxLen, _ = cmd.Flags().GetFloat64("max")
			reportPath, _ := cmd.Flags().GetString("report")
			return runSuggest(cmd, args[0], opts, reportPath)
		},
	}

	cmd.Flags().Int("top", 3, "Maximum number of clips")
	cmd.Flags().Float64("min", 20, "Minimum clip length in seconds")
	cmd.Flags().Float64("max", 60, "Maximum clip length in seconds")
	cmd.Flags().String("report", "", "Also write an HTML report to this path")
	return cmd
}

func runSuggest(cmd *cobra.Command, path string, opts clips.Options, reportPath string) error {
	if opts.MinLen <= 0 || opts.MaxLen < opts.MinLen || opts.TopK <= 0 {
		return fmt.Errorf("invalid window settings: min=%v max=%v top=%d", opts.MinLen, opts.MaxLen, opts.TopK)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	segments := timedtext.Parse(string(raw))
	if len(segments) == 0 {
		return fmt.Errorf("no caption segments found in %s", path)
	}

	suggestions := clips.Suggest(segments, opts, clips.DefaultScoring())
	if len(suggestions) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "parsed %d segments, but no window closed on punctuation or pauses\n", len(segments))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderClipTable(suggestions))

	if reportPath != "" {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		html, err := clips.RenderReport(name, suggestions)
		if err != nil {
			return err
		}
		if err := os.WriteFile(reportPath, html, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "report written: %s\n", reportPath)
	}
	return nil
}

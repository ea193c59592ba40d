package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	flickd "github.com/nayakiniki/Flickd"
	"github.com/nayakiniki/Flickd/internal/config"
	"github.com/nayakiniki/Flickd/internal/formatter"
	"github.com/nayakiniki/Flickd/internal/utils"
	"github.com/nayakiniki/Flickd/pkg/tagger"
)

type tagOptions struct {
	configPath string
	output     string
	delay      time.Duration
	seed       uint64
}

func newTagCmd() *cobra.Command {
	opts := &tagOptions{}

	cmd := &cobra.Command{
		Use:   "tag FILE...",
		Short: "Tag local image files",
		Long: `Run the tagging engine over local images without starting the service.
Directories are expanded to the image files they contain.

Examples:
  # Tag a single image
  flickd tag look.jpg

  # Tag a folder with reproducible output as JSON
  flickd tag ./catalog --seed 42 --delay 0 -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTag(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to a JSON configuration file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().DurationVar(&opts.delay, "delay", tagger.DefaultDelay, "Simulated processing delay per image")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Seed for object selection (0 = random)")

	return cmd
}

func runTag(cmd *cobra.Command, opts *tagOptions, args []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	paths, err := utils.ExpandImagePaths(args)
	if err != nil {
		return fmt.Errorf("failed to expand paths: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no image files found")
	}

	taggerOpts := cfg.TaggerOptions()
	if cmd.Flags().Changed("delay") {
		taggerOpts.Delay = opts.delay
	}
	if cmd.Flags().Changed("seed") && opts.seed != 0 {
		taggerOpts.Sampler = tagger.NewSeededSampler(opts.seed)
	}
	// Engine logs would interleave with the report.
	taggerOpts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := flickd.NewWithConfig(cfg.AnalyzerOptions(), taggerOpts)

	human := opts.output == "human" || opts.output == ""

	var s *spinner.Spinner
	if human {
		s = spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	}

	reports := make([]formatter.Report, 0, len(paths))
	for i, path := range paths {
		report := formatter.Report{File: path}
		if info, err := os.Stat(path); err == nil {
			report.Size = utils.FormatFileSize(info.Size())
		}

		if s != nil {
			s.Suffix = fmt.Sprintf(" Tagging %s (%d/%d)...", path, i+1, len(paths))
			s.Start()
		}
		result, err := engine.AnalyzeFile(cmd.Context(), path)
		if s != nil {
			s.Stop()
		}

		if err != nil {
			report.Error = err.Error()
			if human {
				printError(fmt.Sprintf("%s: %v", path, err))
			}
		} else {
			report.Result = result
			if human {
				printSuccess(fmt.Sprintf("Tagged %s (%d tags)", path, len(result.Tags)))
			}
		}
		reports = append(reports, report)
	}

	return formatter.DisplayResults(cmd.OutOrStdout(), reports, opts.output)
}

func printSuccess(msg string) {
	green := color.New(color.FgGreen)
	green.Printf("✓ %s\n", msg)
}

func printError(msg string) {
	red := color.New(color.FgRed)
	red.Printf("✗ %s\n", msg)
}

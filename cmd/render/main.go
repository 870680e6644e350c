// Command render runs a single dashboard pass and writes the result to
// stdout as JSON or as the HTML page the service serves. With --png-dir the
// charts are also drawn as PNG files.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/reservoir-dashboard/internal/adapter/chartimg"
	httpadapter "github.com/couchcryptid/reservoir-dashboard/internal/adapter/http"
	"github.com/couchcryptid/reservoir-dashboard/internal/adapter/source"
	"github.com/couchcryptid/reservoir-dashboard/internal/config"
	"github.com/couchcryptid/reservoir-dashboard/internal/observability"
	"github.com/couchcryptid/reservoir-dashboard/internal/pipeline"
)

const defaultSource = "data/mock/data1.json"

// options holds the flags. Column bindings come from the same FIELD_*
// variables the service reads.
type options struct {
	format    string
	pngDir    string
	top       int
	threshold float64
	sheet     string
	timeout   time.Duration
	verbose   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "render [source]",
		Short: "Render the reservoir dashboard once",
		Long: `render loads a reservoir dataset (URL, JSON file or .xlsx workbook),
computes the dashboard and writes it to stdout.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			location := defaultSource
			if len(args) == 1 {
				location = args[0]
			}
			return run(cmd, location, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "Output format: json or html")
	cmd.Flags().StringVar(&opts.pngDir, "png-dir", "", "Directory to write chart PNGs into")
	cmd.Flags().IntVar(&opts.top, "top", 10, "Number of dams in the top storage chart")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", 90, "Storage percent counted as near full")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "Worksheet name for .xlsx sources")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Source load timeout (0 waits indefinitely)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log pass details to stderr")

	return cmd
}

func run(cmd *cobra.Command, location string, opts *options) error {
	if opts.format != "json" && opts.format != "html" {
		return fmt.Errorf("invalid format: %s (must be json or html)", opts.format)
	}
	if opts.top <= 0 {
		return fmt.Errorf("invalid --top: %d (must be positive)", opts.top)
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	loader, err := source.New(location, source.Options{Timeout: opts.timeout, Sheet: opts.sheet}, logger)
	if err != nil {
		return err
	}

	var renderers []pipeline.Renderer
	if opts.pngDir != "" {
		renderers = append(renderers, chartimg.NewRenderer(opts.pngDir, logger))
	}

	p := pipeline.New(loader, pipeline.Settings{
		Source:    location,
		Schema:    config.LoadSchema(),
		TopN:      opts.top,
		Threshold: opts.threshold,
	}, logger, observability.NewUnregisteredMetrics(), renderers...)

	d, passErr := p.Run(cmd.Context())

	out := cmd.OutOrStdout()
	if opts.format == "html" {
		if err := httpadapter.WritePage(out, d, passErr); err != nil {
			return fmt.Errorf("write page: %w", err)
		}
		return passErr
	}

	if passErr != nil {
		return passErr
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unitpile/unitpile/pkg/errors"
	"github.com/unitpile/unitpile/pkg/grid"
	"github.com/unitpile/unitpile/pkg/pile"
	"github.com/unitpile/unitpile/pkg/pipeline"
	"github.com/unitpile/unitpile/pkg/store"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	count      int    // number of anonymous units to render
	color      string // fill color for anonymous units
	input      string // units file rendered instead of a bare count
	output     string // output file path (or base path for multiple formats)
	formats    string // comma-separated output formats
	noBadge    bool   // suppress the "+N" overflow badge
	background string // background fill color
	noCache    bool   // disable caching
}

// unitsFile is the JSON shape accepted by --input: habits plus the units
// logged against them. The same document a habit export produces.
type unitsFile struct {
	Habits []pile.Habit `json:"habits"`
	Units  []pile.Unit  `json:"units"`
}

// renderCommand creates the render command for generating pile artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderOpts
	opts := c.newOptions()

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a pile as SVG, PNG, or JSON",
		Long: `Render a pile as SVG, PNG, or JSON.

Renders either a bare count of same-colored units (--count) or a units file
exported by 'habit export' (--input). Multiple formats can be requested at
once with --format svg,png; each format gets its own output file.

PNG output requires librsvg (rsvg-convert) on the PATH.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(flags.formats)
			opts.HideBadge = flags.noBadge
			opts.Background = flags.background
			return c.runRender(cmd.Context(), flags, opts)
		},
	}

	cmd.Flags().IntVarP(&flags.count, "count", "n", 0, "number of units to render")
	cmd.Flags().StringVar(&flags.color, "color", "", "unit color for --count (hex, default palette green)")
	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "units file to render instead of --count")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), json, png (comma-separated)")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: flat (default), rounded")
	cmd.Flags().IntVar(&opts.MaxVisible, "max-visible", opts.MaxVisible, "cap on placed units")
	cmd.Flags().BoolVar(&flags.noBadge, "no-badge", false, "hide the overflow badge")
	cmd.Flags().StringVar(&flags.background, "background", "", "background fill color")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender builds the item list, executes the pipeline, and writes each
// requested format to its own file.
func (c *CLI) runRender(ctx context.Context, flags renderOpts, opts pipeline.Options) error {
	items, base, err := c.renderItems(flags)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d units...", len(items)))
	spinner.Start()

	result, err := runner.Execute(ctx, items, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	multi := len(opts.Formats) > 1
	for _, format := range opts.Formats {
		path := outputPath(flags.output, base, format, multi)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}

	prog.done(fmt.Sprintf("Rendered %d units", result.Stats.VisibleCount))
	printLayoutStats(result.Layout.Columns, result.Layout.Rows, result.Layout.CellSize, result.Layout.Gap, result.CacheInfo.RenderHit)
	if result.Overflow > 0 {
		printDetail("%d units hidden (%s)", result.Overflow, grid.OverflowBadge(result.Overflow))
	}

	return nil
}

// renderItems resolves the item list and default output base from flags.
func (c *CLI) renderItems(flags renderOpts) ([]grid.Item, string, error) {
	if flags.input != "" && flags.count > 0 {
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "use either --count or --input, not both")
	}

	if flags.input != "" {
		data, err := os.ReadFile(flags.input)
		if err != nil {
			return nil, "", fmt.Errorf("read units file %s: %w", flags.input, err)
		}
		var f unitsFile
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "parse units file %s", flags.input)
		}
		items := pile.Items(f.Units, store.HabitIndex(f.Habits))
		return items, "pile", nil
	}

	if err := errors.ValidateCount(flags.count); err != nil {
		return nil, "", err
	}
	if flags.count == 0 {
		return nil, "", errors.New(errors.ErrCodeInvalidCount, "--count or --input is required")
	}
	if err := errors.ValidateColor(flags.color); err != nil {
		return nil, "", err
	}
	return pile.CountItems(flags.count, flags.color), "pile", nil
}

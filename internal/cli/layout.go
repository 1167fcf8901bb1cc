package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unitpile/unitpile/pkg/errors"
	"github.com/unitpile/unitpile/pkg/grid"
	"github.com/unitpile/unitpile/pkg/pipeline"
)

// layoutCommand creates the layout command for solving grid geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		count   int
		output  string
		noCache bool
	)
	opts := c.newOptions()

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Solve the grid layout for a unit count",
		Long: `Solve the grid layout for a unit count.

The layout command picks the largest cell size whose grid holds the given
number of units inside the frame, preferring wider gaps between cells. The
result is printed as JSON and can be piped into other tools or written to a
file with --output.

Results are cached locally for faster subsequent runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), count, opts, output, noCache)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of units to lay out (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().IntVar(&opts.MaxVisible, "max-visible", opts.MaxVisible, "cap on placed units")
	_ = cmd.MarkFlagRequired("count")

	return cmd
}

// runLayout solves the layout and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, count int, opts pipeline.Options, output string, noCache bool) error {
	if err := errors.ValidateCount(count); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	visible := opts.VisibleCount(count)
	l, cacheHit, err := runner.SolveWithCacheInfo(ctx, visible, opts)
	if err != nil {
		return fmt.Errorf("solve layout: %w", err)
	}

	overflow := count - visible
	doc := struct {
		Layout   grid.Layout `json:"layout"`
		Count    int         `json:"count"`
		Visible  int         `json:"visible"`
		Overflow int         `json:"overflow"`
		Badge    string      `json:"badge,omitempty"`
	}{l, count, visible, overflow, grid.OverflowBadge(overflow)}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout solved")
	printFile(output)
	printLayoutStats(l.Columns, l.Rows, l.CellSize, l.Gap, cacheHit)
	if overflow > 0 {
		printDetail("%d units hidden (%s)", overflow, grid.OverflowBadge(overflow))
	}

	return nil
}

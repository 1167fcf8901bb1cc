package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unitpile/unitpile/pkg/pile"
)

// habitCommand creates the habit management command.
func (c *CLI) habitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage habits and log units against them",
		Long: `Manage habits and log units against them.

Habits live in the store selected by the config file: the in-memory store
(default, per-process) or MongoDB for persistent tracking. Configure mongo in
~/.config/unitpile/config.toml to keep habits across invocations.`,
	}

	cmd.AddCommand(c.habitAddCommand())
	cmd.AddCommand(c.habitListCommand())
	cmd.AddCommand(c.habitLogCommand())
	cmd.AddCommand(c.habitRemoveCommand())
	cmd.AddCommand(c.habitExportCommand())

	return cmd
}

// habitAddCommand creates the "habit add" subcommand.
func (c *CLI) habitAddCommand() *cobra.Command {
	var (
		color string
		bad   bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close(ctx)

			existing, err := st.ListHabits(ctx)
			if err != nil {
				return err
			}

			h, err := pile.NewHabit(args[0], color, bad, len(existing))
			if err != nil {
				return err
			}
			if err := st.CreateHabit(ctx, h); err != nil {
				return err
			}

			printSuccess("Added habit %q", h.Name)
			printKeyValue("id", h.ID)
			printKeyValue("color", h.Color)
			printNewline()
			printNextStep("Log a unit", "unitpile habit log "+h.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "cell color (hex, default palette rotation)")
	cmd.Flags().BoolVar(&bad, "bad", false, "mark as a habit to reduce (warning color)")

	return cmd
}

// habitListCommand creates the "habit list" subcommand.
func (c *CLI) habitListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List habits and their unit counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close(ctx)

			habits, err := st.ListHabits(ctx)
			if err != nil {
				return err
			}
			if len(habits) == 0 {
				printInfo("No habits yet")
				printNextStep("Create one", "unitpile habit add <name>")
				return nil
			}

			for _, h := range habits {
				count, err := st.CountUnits(ctx, h.ID)
				if err != nil {
					return err
				}
				label := h.Name
				if h.Bad {
					label += " " + StyleWarning.Render("(bad)")
				}
				fmt.Println(StyleValue.Render(label) +
					StyleDim.Render(" · ") + StyleNumber.Render(strconv.FormatInt(count, 10)+" units") +
					StyleDim.Render(" · "+h.ID))
			}
			return nil
		},
	}
}

// habitLogCommand creates the "habit log" subcommand.
func (c *CLI) habitLogCommand() *cobra.Command {
	var (
		count       int
		highlighted bool
	)

	cmd := &cobra.Command{
		Use:   "log <habit-id>",
		Short: "Log units of progress against a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}

			st, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close(ctx)

			h, err := st.GetHabit(ctx, args[0])
			if err != nil {
				return err
			}

			for i := 0; i < count; i++ {
				u := pile.NewUnit(h.ID)
				u.Highlighted = highlighted
				if err := st.AppendUnit(ctx, u); err != nil {
					return err
				}
			}

			total, err := st.CountUnits(ctx, h.ID)
			if err != nil {
				return err
			}
			printSuccess("Logged %d unit(s) against %q", count, h.Name)
			printDetail("%d total", total)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of units to log")
	cmd.Flags().BoolVar(&highlighted, "highlight", false, "highlight these units in renders")

	return cmd
}

// habitRemoveCommand creates the "habit rm" subcommand.
func (c *CLI) habitRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <habit-id>",
		Short: "Delete a habit and all of its units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close(ctx)

			if err := st.DeleteHabit(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted habit %s", args[0])
			return nil
		},
	}
}

// habitExportCommand creates the "habit export" subcommand. The output file
// is the units document accepted by 'render --input'.
func (c *CLI) habitExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export habits and units as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close(ctx)

			habits, err := st.ListHabits(ctx)
			if err != nil {
				return err
			}
			units, err := st.ListUnits(ctx, "", 0)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(unitsFile{Habits: habits, Units: units}, "", "  ")
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
			printSuccess("Exported %d habits, %d units", len(habits), len(units))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/unitpile/unitpile/pkg/buildinfo"
	"github.com/unitpile/unitpile/pkg/cache"
	"github.com/unitpile/unitpile/pkg/pipeline"
	"github.com/unitpile/unitpile/pkg/store"
	"github.com/unitpile/unitpile/pkg/store/memory"
	"github.com/unitpile/unitpile/pkg/store/mongostore"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "unitpile"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and loaded config.
func New(w io.Writer, level log.Level) *CLI {
	cfg, err := loadConfig()
	c := &CLI{
		Logger: newLogger(w, level),
		Config: cfg,
	}
	if err != nil {
		c.Logger.Warn("ignoring malformed config file", "err", err)
	}
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "unitpile",
		Short:        "Unitpile renders habit progress as piles of units",
		Long:         `Unitpile visualizes habit-tracking progress as a dense grid of unit cells: every logged unit becomes one square, packed into the largest uniform grid that fits the frame.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(log.DebugLevel)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.habitCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner & Store Factories
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache == cacheNone {
		return cache.NewNullCache(), nil
	}
	if c.Config.Cache == cacheRedis {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStore creates the habit store selected by config.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if c.Config.Store == storeMongo {
		s, err := mongostore.New(ctx, mongostore.Config{
			URI:      c.Config.Mongo.URI,
			Database: c.Config.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		return store.Instrument(s), nil
	}
	return store.Instrument(memory.New()), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/unitpile/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// newOptions builds pipeline options from config defaults.
func (c *CLI) newOptions() pipeline.Options {
	opts := pipeline.Options{
		Width:  c.Config.Width,
		Height: c.Config.Height,
		Style:  c.Config.Style,
		Logger: c.Logger,
	}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// outputPath derives the output file path for a rendered artifact.
// If output is empty, base and format build "<base>.<format>"; when several
// formats are rendered, the format extension always wins over the one the
// user supplied.
func outputPath(output, base, format string, multi bool) string {
	if output == "" {
		return base + "." + format
	}
	if multi {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			output = strings.TrimSuffix(output, ext)
		}
		return output + "." + format
	}
	return output
}

// Package commands implements the CLI commands for ruleranger.
package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ruleranger/cmd"
	"github.com/thoreinstein/ruleranger/internal/config"
	"github.com/thoreinstein/ruleranger/internal/engine"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/logging"
)

// ErrSilent marks errors whose message was already shown to the user.
var ErrSilent = errors.New("silent exit")

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// colorMode holds the value of the --color flag.
var colorMode string

// configFile holds the value of the --config flag.
var configFile string

// metricsFile holds the value of the --metrics-file flag.
var metricsFile string

// cfg is the loaded configuration; configLoadErr holds any load error.
var (
	cfg           *config.Config
	configLoadErr error
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file (default: .ruleranger.yaml in this or a parent directory)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "",
		"write Prometheus metrics to this textfile after each run")

	rootCmd.Version, _, _ = cmd.BuildInfo()
	rootCmd.SetVersionTemplate("ruleranger version {{.Version}}\n")

	// Errors are printed by main so exit codes and suggestions stay together.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "ruleranger",
	Short: "Validate and fix game content against project rules",
	Long: `ruleranger checks content assets against a catalog of project rules
(naming conventions, blueprint hygiene, particle system compile status,
material limits and more) and can fix the violations it knows how to fix.

Assets are descriptor files (YAML, TOML or JSON) below the configured
content root. Rules, severities, excluded folders and the triggers each
rule runs on are set in .ruleranger.yaml.`,
	Example: `  # Create a project configuration
  ruleranger init

  # Report violations for every asset
  ruleranger scan

  # Fix what can be fixed
  ruleranger fix

  # Validate assets whenever their descriptors change
  ruleranger watch

  See Also: ruleranger rules, ruleranger doctor`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("conflicting flags"), "cannot use --quiet and --verbose together")
	}

	mode, err := logging.ParseColorMode(colorMode)
	if err != nil {
		return errors.NewUserError(err, "")
	}
	color.NoColor = !logging.ColorEnabled(cmd.OutOrStdout(), mode)

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("RULERANGER_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	logCfg := logging.Config{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
		Color:  mode,
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		logCfg.File = f
	}

	logger := logging.New(logCfg)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// loadedConfig returns the configuration or a config error for commands
// that cannot run without one.
func loadedConfig() (*config.Config, error) {
	if configLoadErr != nil {
		return nil, errors.NewConfigError(configLoadErr)
	}
	if cfg == nil {
		return nil, errors.NewConfigError(errors.New("configuration not loaded"))
	}
	return cfg, nil
}

// openEngine loads the content directory and assembles the engine.
func openEngine(cmd *cobra.Command, opts ...engine.Option) (*engine.Engine, error) {
	c, err := loadedConfig()
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	opts = append([]engine.Option{
		engine.WithLogger(logging.FromContext(ctx)),
		engine.WithMetricsFile(metricsFile),
	}, opts...)

	e, err := engine.Open(ctx, c, opts...)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidConfig) {
			return nil, errors.NewConfigError(err)
		}
		return nil, errors.NewSystemError(err, "Run: ruleranger doctor")
	}
	return e, nil
}

// Execute runs the root command. Interrupts cancel the command context, so
// running sessions stop between rules and watch returns.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spektr-org/vizcore/internal/config"
	"github.com/spektr-org/vizcore/internal/logging"
)

// ============================================================================
// VIZCORE CLI — Number formatting and query contexts from the shell
// ============================================================================

const version = "0.3.0"

// app carries state shared by all subcommands for one invocation.
type app struct {
	configPath string
	logLevel   string
	logFile    string

	cfg     *config.Config
	cleanup func() error
}

func main() {
	a := &app{}
	err := newRootCmd(a).Execute()
	_ = a.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "vizcore",
		Short:         "vizcore — dashboard number formatting and query contexts",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `vizcore exposes the dashboard's smart number formatter and query
context builder on the command line.

Examples:
  vizcore format 0.25 1024 0.0000025
  vizcore format --csv sprint.csv --column "Story Points" --signed
  vizcore query --form form.json --alias series=metrics --validate
  vizcore query --form form.json --jq '.queries[0].metrics'
  vizcore schema`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Write logs to a rotating file instead of stderr")

	root.AddCommand(
		newFormatCmd(a),
		newFormatsCmd(a),
		newQueryCmd(a),
		newSchemaCmd(),
	)
	return root
}

// init loads configuration (file → env → flags) and installs the logger.
func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFile != "" {
		cfg.Log.File = a.logFile
	}

	cleanup, err := logging.Setup(cfg.Logging())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg = cfg
	a.cleanup = cleanup

	slog.Debug("vizcore starting", "version", version, "locale", cfg.Locale, "log_level", cfg.Log.Level)
	return nil
}

// close releases the log file, if one was opened. Safe to call more than once.
func (a *app) close() error {
	if a.cleanup == nil {
		return nil
	}
	err := a.cleanup()
	a.cleanup = nil
	return err
}

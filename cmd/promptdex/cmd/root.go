// Package cmd provides the CLI commands for promptdex.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/promptdex/internal/config"
	dexerrors "github.com/Aman-CERP/promptdex/internal/errors"
	"github.com/Aman-CERP/promptdex/internal/logging"
	"github.com/Aman-CERP/promptdex/internal/profiling"
	"github.com/Aman-CERP/promptdex/pkg/version"
)

// annotationStdio marks commands whose stdout carries a protocol stream.
const annotationStdio = "promptdex/stdio"

// rootOptions holds the global flags and the state built from them
// before a subcommand runs.
type rootOptions struct {
	root       string
	configPath string
	logFile    string
	debug      bool
	profile    profiling.Options

	cfg            *config.Config
	logger         *slog.Logger
	loggingCleanup func()
	profiler       *profiling.Session
}

// NewRootCmd creates the root command for promptdex CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "promptdex",
		Short: "Browse and serve a directory of system prompts",
		Long: `promptdex indexes a directory tree of .txt and .md prompt files and
serves the catalog over HTTP, MCP and the command line.

Every request rescans the tree, so edits show up immediately. Enable the
cache (and optionally --watch) for large libraries.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("promptdex version {{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&opts.root, "root", "r", "", "Prompt catalog root (overrides scan.root)")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Project config file (default: ./.promptdex.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", logging.DefaultLogPath(), "Log file path")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.profile.CPUPath, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&opts.profile.HeapPath, "profile-mem", "", "Write memory profile to file")
	cmd.PersistentFlags().StringVar(&opts.profile.TracePath, "profile-trace", "", "Write execution trace to file")

	cmd.PersistentPreRunE = opts.setup
	cmd.PersistentPostRunE = func(*cobra.Command, []string) error { return opts.teardown() }

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newShowCmd(opts))
	cmd.AddCommand(newCategoriesCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newDoctorCmd(opts))
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setup loads configuration, then starts logging and profiling.
// Commands that do not touch the catalog skip the config load.
func (o *rootOptions) setup(cmd *cobra.Command, _ []string) error {
	if o.profile.Enabled() {
		session, err := profiling.Start(o.profile)
		if err != nil {
			return err
		}
		o.profiler = session
	}

	level := "info"
	if needsConfig(cmd) {
		cfg, err := o.loadConfig()
		if err != nil {
			return err
		}
		o.cfg = cfg
		level = cfg.Server.LogLevel
	}
	if o.debug {
		level = "debug"
	}

	logCfg := logging.Config{Level: level, FilePath: o.logFile}
	if cmd.Annotations[annotationStdio] == "" {
		logCfg.Stderr = cmd.ErrOrStderr()
	}
	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	slog.SetDefault(logger)
	o.logger = logger
	o.loggingCleanup = cleanup

	logger.Debug("command started",
		slog.String("command", cmd.CommandPath()),
		slog.String("version", version.Version),
		slog.String("log_file", o.logFile))
	return nil
}

func (o *rootOptions) teardown() error {
	var err error
	if o.profiler != nil {
		err = o.profiler.Stop()
		o.profiler = nil
	}
	if o.loggingCleanup != nil {
		o.loggingCleanup()
		o.loggingCleanup = nil
	}
	return err
}

// loadConfig applies the --config and --root flags on top of config.Load.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.LoadFile(wd, o.configPath)
	if err != nil {
		return nil, err
	}
	if o.root != "" {
		cfg.Scan.Root = o.root
	}
	return cfg, nil
}

// needsConfig reports whether cmd reads the merged configuration.
func needsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "version", "logs", "help", "completion":
			return false
		case "config":
			// config init must work even when the current config is invalid
			return cmd.Name() == "show"
		}
	}
	return true
}

// Execute runs the root command and prints failures in CLI form.
func Execute() error {
	cmd := NewRootCmd()
	err := cmd.Execute()
	if err != nil {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), dexerrors.FormatForCLI(err))
	}
	return err
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"navfacade/internal/config"
	"navfacade/internal/engine"
	"navfacade/internal/logging"
	"navfacade/internal/navigation"
	"navfacade/internal/script"
	"navfacade/internal/trace"
)

// Version is set via -ldflags.
var Version = "dev"

type rootFlags struct {
	configFile string
	logLevel   string
	logFormat  string
	logFile    string
}

func newRootCommand() *cobra.Command {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:   "navdemo",
		Short: "Play navigation scripts through the navigation facade",
		Long: `navdemo drives the navigation facade from a YAML script.

  navdemo run flow.yaml    Render the screen tree in the terminal
  navdemo plan flow.yaml   Print the engine calls the script makes`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "log format (console or json)")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "write logs to this file")

	cmd.AddCommand(newRunCommand(&flags))
	cmd.AddCommand(newPlanCommand(&flags))
	return cmd
}

// loadConfig reads the config file and applies flags set on the command line.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return config.Config{}, err
	}
	pf := cmd.Flags()
	if pf.Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if pf.Changed("log-format") {
		cfg.Log.Format = flags.logFormat
	}
	if pf.Changed("log-file") {
		cfg.Log.File = flags.logFile
	}
	return cfg, nil
}

// session holds what both commands build around an engine.
type session struct {
	logger   *zap.Logger
	provider *trace.Provider
	nav      *navigation.Navigator
	runner   *script.Runner
}

// newSession decorates eng with tracing and logging and prepares a runner.
// defaultLogPath is used when the config names no log file; empty discards logs.
func newSession(ctx context.Context, cfg config.Config, eng engine.Engine, defaultLogPath string) (*session, error) {
	logPath := cfg.Log.File
	if logPath == "" {
		logPath = defaultLogPath
	}
	logger := zap.NewNop()
	if logPath != "" {
		var err error
		logger, err = logging.New(cfg.Log.Level, cfg.Log.Format, logPath)
		if err != nil {
			return nil, err
		}
	}

	provider, err := trace.NewProvider(ctx, cfg.Trace.Exporter())
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}

	decorated := logging.Wrap(trace.Wrap(eng, provider.Tracer()), logger)
	nav := navigation.New(decorated)
	nav.Events().Subscribe(func(ev engine.Event) {
		logger.Debug("navigation event",
			zap.String("type", string(ev.Type)),
			zap.String("componentId", ev.ComponentID),
			zap.String("componentName", ev.ComponentName),
			zap.String("commandName", ev.CommandName),
		)
	})

	runner := script.NewRunner(nav, logger)
	runner.Delay = cfg.Script.StepDelay
	return &session{logger: logger, provider: provider, nav: nav, runner: runner}, nil
}

func (s *session) Close(ctx context.Context) {
	if err := s.provider.Shutdown(ctx); err != nil {
		s.logger.Warn("trace shutdown failed", zap.Error(err))
	}
	_ = s.logger.Sync()
}

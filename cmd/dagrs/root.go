package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taskgraph/dagrs/internal/config"
	"github.com/taskgraph/dagrs/internal/logger"
)

var (
	cfgFile string
	debug   bool
	logFile string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dagrs",
		Short: "Run and validate dagrs task-graph documents",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: none, env/flags only)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file (default: XDG state dir)")

	root.AddCommand(newRunCmd(), newValidateCmd())
	return root
}

// buildLogger constructs the CLI's Logger, fanning output out to a log file
// (--log-file, or the XDG state-dir default resolved by
// config.DefaultStateDir) in addition to stderr, mirroring the teacher's
// cmd/logger.go wiring a file handle into logger.WithLogFile. The returned
// closer flushes and closes that file; callers must defer it.
func buildLogger(cfg *config.Config) (logger.Logger, func(), error) {
	opts := []logger.Option{logger.WithFormat(cfg.LogFormat)}
	if cfg.Debug || debug {
		opts = append(opts, logger.WithDebug())
	}

	path := logFile
	if path == "" {
		p, err := config.DefaultStateDir()
		if err != nil {
			return nil, nil, fmt.Errorf("resolving default log file location: %w", err)
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory for %q: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %q: %w", path, err)
	}
	opts = append(opts, logger.WithLogFile(f))

	return logger.New(opts...), func() { f.Close() }, nil
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

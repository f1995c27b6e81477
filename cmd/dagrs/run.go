package main

import (
	"context"
	"fmt"
	"os"

	goyaml "github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/taskgraph/dagrs/internal/dag"
	"github.com/taskgraph/dagrs/internal/logger"
	"github.com/taskgraph/dagrs/internal/value"
)

func newRunCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "run <file.yaml>",
		Short: "Parse a declarative dagrs document and run it to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if envFile != "" {
				cfg.EnvFile = envFile
			}
			log, closeLog, err := buildLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			env, err := loadEnvFile(cfg.EnvFile)
			if err != nil {
				return fmt.Errorf("loading env file %s: %w", cfg.EnvFile, err)
			}

			d, err := dag.WithYAML(args[0], env)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			ctx := logger.WithContext(context.Background(), log)
			out, err := d.Start(ctx)
			if err != nil {
				log.Error("run failed", "file", args[0], "error", err)
				return err
			}

			if s, ok := value.AsSingle[string](out); ok {
				fmt.Println(s)
			}
			log.Info("run completed", "file", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "YAML file seeding the DAG's environment")
	return cmd
}

// loadEnvFile reads a flat "key: value" YAML document into a map suitable
// for dag.WithYAML. An empty path is not an error; it just seeds nothing.
func loadEnvFile(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var env map[string]any
	if err := goyaml.Unmarshal(content, &env); err != nil {
		return nil, err
	}
	return env, nil
}

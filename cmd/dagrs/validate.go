package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskgraph/dagrs/internal/dag"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.yaml>",
		Short: "Parse and validate a declarative dagrs document without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dag.WithYAML(args[0], nil)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}
			if err := d.Init(); err != nil {
				return fmt.Errorf("validating %s: %w", args[0], err)
			}
			fmt.Printf("%s: valid\n", args[0])
			return nil
		},
	}
}

// Command dagrs is a thin CLI harness around the engine: it never encodes
// scheduling logic itself, only assembles an Engine and a parsed Dag and
// calls the programmatic API.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

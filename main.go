package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "cupidwave",
		Short:        "CupidWave dating API",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newCreateTablesCmd(), newScoreCmd(), newTokenCmd())
	return root
}

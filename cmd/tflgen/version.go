package main

import (
	"runtime"

	"github.com/spf13/cobra"
)

// Set via -ldflags at release time.
var (
	version = "v0.0.1-dev"
	commit  string
)

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("tflgen %s\n", version)
			if commit != "" {
				cmd.Printf("Commit: %s\n", commit)
			}
			cmd.Printf("Go Version: %s\n", runtime.Version())
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/tflgen/tflite"
)

func opsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the operation names accepted in graph descriptions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, op := range tflite.SupportedOps() {
				fmt.Fprintln(cmd.OutOrStdout(), op)
			}
		},
	}
}

package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/born-ml/tflgen/internal/tflite/schema"
)

func inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect MODEL.tflite",
		Short: "Print the tensor, operator and buffer tables of a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			//nolint:gosec // G304: reading the user-supplied model is the point.
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "failed to read model")
			}
			model, err := schema.ReadModel(data)
			if err != nil {
				return errors.Wrapf(err, "model %s", args[0])
			}
			digest := sha256.Sum256(data)
			return printModel(cmd.OutOrStdout(), model, hex.EncodeToString(digest[:]))
		},
	}
}

func printModel(out io.Writer, model *schema.ModelT, digest string) error {
	fmt.Fprintf(out, "Description: %s\n", model.Description)
	fmt.Fprintf(out, "Version: %d\n", model.Version)
	fmt.Fprintf(out, "SHA-256: %s\n", digest)

	for i, subgraph := range model.Subgraphs {
		fmt.Fprintf(out, "\nSubgraph %d: inputs %v, outputs %v\n", i, subgraph.Inputs, subgraph.Outputs)

		fmt.Fprintln(out, "\nTensors:")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "INDEX\tNAME\tTYPE\tSHAPE\tBUFFER")
		for j, tensor := range subgraph.Tensors {
			fmt.Fprintf(w, "%d\t%s\t%s\t%v\t%d\n", j, tensor.Name, tensor.Type, tensor.Shape, tensor.Buffer)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintln(out, "\nOperators:")
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "INDEX\tOPERATOR\tINPUTS\tOUTPUTS\tOPTIONS")
		for j, op := range subgraph.Operators {
			code := "?"
			if int(op.OpcodeIndex) < len(model.OperatorCodes) {
				code = model.OperatorCodes[op.OpcodeIndex].BuiltinCode.String()
			}
			fmt.Fprintf(w, "%d\t%s\t%v\t%v\t%s\n", j, code, op.Inputs, op.Outputs, formatOptions(op.BuiltinOptions))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "\nBuffers:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tBYTES")
	for i, buffer := range model.Buffers {
		fmt.Fprintf(w, "%d\t%d\n", i, len(buffer.Data))
	}
	return w.Flush()
}

func formatOptions(options schema.BuiltinOptionsT) string {
	if options == nil {
		return "-"
	}
	return strings.TrimPrefix(fmt.Sprintf("%+v", options), "&")
}

package main

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/born-ml/tflgen/internal/parallel"
	"github.com/born-ml/tflgen/tflite"
)

type compileOptions struct {
	weights     string
	output      string
	description string
	jobs        int
}

func compileCommand(root *rootOptions) *cobra.Command {
	opts := compileOptions{jobs: parallel.DefaultConfig().Workers}
	cmd := &cobra.Command{
		Use:   "compile GRAPH.yaml...",
		Short: "Compile graph descriptions into .tflite models",
		Long: `Compile reads YAML graph descriptions, resolves constants from inline
values or the --weights SafeTensors file, and writes one TFLite flatbuffer
per description. Each output defaults to the description path with a
.tflite extension. Several descriptions are compiled concurrently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if opts.output != "" && len(args) > 1 {
				return errors.New("--output requires a single graph description")
			}
			return compileAll(root.logger, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.weights, "weights", "w", "", "SafeTensors file holding named constants")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output .tflite path")
	cmd.Flags().StringVar(&opts.description, "description", "", "Model description (default "+tflite.DefaultDescription+")")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "Graphs compiled concurrently")

	return cmd
}

func compileAll(logger *zap.Logger, graphPaths []string, opts compileOptions) error {
	errs := parallel.For(len(graphPaths), func(i int) error {
		return compileOne(logger, graphPaths[i], opts)
	}, parallel.Config{Workers: opts.jobs})

	failed, first := parallel.Failures(errs)
	if failed == 0 {
		return nil
	}
	for i, err := range errs {
		if err != nil && err != first {
			logger.Error("compile failed", zap.String("path", graphPaths[i]), zap.Error(err))
		}
	}
	if failed > 1 {
		return errors.Wrapf(first, "%d of %d graphs failed", failed, len(graphPaths))
	}
	return first
}

func compileOne(logger *zap.Logger, graphPath string, opts compileOptions) error {
	info, err := tflite.LoadGraph(graphPath, opts.weights)
	if err != nil {
		return err
	}
	logger.Debug("loaded graph",
		zap.String("path", graphPath),
		zap.Int("operands", len(info.Operands)),
		zap.Int("operations", len(info.Operations)),
	)

	compileOpts := []tflite.Option{tflite.WithLogger(logger.With(zap.String("graph", graphPath)))}
	if opts.description != "" {
		compileOpts = append(compileOpts, tflite.WithDescription(opts.description))
	}
	model, err := tflite.Compile(info, compileOpts...)
	if err != nil {
		return errors.Wrapf(err, "compile %s", graphPath)
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(graphPath, filepath.Ext(graphPath)) + ".tflite"
	}
	//nolint:gosec // G306: models are not secret.
	if err := os.WriteFile(output, model, 0o644); err != nil {
		return errors.Wrap(err, "failed to write model")
	}

	digest := sha256.Sum256(model)
	logger.Info("wrote model",
		zap.String("path", output),
		zap.Int("bytes", len(model)),
		zap.String("sha256", hex.EncodeToString(digest[:])),
	)
	return nil
}

package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tflgen/tflite"
)

const reluDescription = `
operands:
  - {name: x, kind: input, dtype: float32, shape: [1, 4]}
  - {name: y, kind: output, dtype: float32, shape: [1, 4]}
operations:
  - {op: clamp, inputs: [x], outputs: [y], params: {minValue: 0, maxValue: 6}}
`

// execute runs the CLI with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeGraph(t *testing.T, description string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(description), 0o600))
	return path
}

// TestCompile_WritesModel verifies compile writes next to the description and
// logs the digest.
func TestCompile_WritesModel(t *testing.T) {
	graphPath := writeGraph(t, reluDescription)

	_, stderr, err := execute(t, "compile", graphPath, "--log-format", "json")
	require.NoError(t, err)

	modelPath := filepath.Join(filepath.Dir(graphPath), "graph.tflite")
	model, err := os.ReadFile(modelPath)
	require.NoError(t, err)

	digest := sha256.Sum256(model)
	assert.Contains(t, stderr, `"msg":"wrote model"`)
	assert.Contains(t, stderr, hex.EncodeToString(digest[:]))
}

// TestCompile_Many verifies several descriptions compile concurrently and a
// failure does not stop the others.
func TestCompile_Many(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a", "b", "c"} {
		path := filepath.Join(dir, name+".yaml")
		require.NoError(t, os.WriteFile(path, []byte(reluDescription), 0o600))
		paths = append(paths, path)
	}
	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("operands: [\n"), 0o600))

	_, _, err := execute(t, append([]string{"compile", "-j", "2"}, append(paths, broken)...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")

	for _, name := range []string{"a", "b", "c"} {
		assert.FileExists(t, filepath.Join(dir, name+".tflite"))
	}

	_, _, err = execute(t, "compile", paths[0], paths[1], "-o", filepath.Join(dir, "out.tflite"))
	assert.ErrorContains(t, err, "--output requires a single graph description")
}

// TestInspect_PrintsTables verifies inspect decodes a compiled model.
func TestInspect_PrintsTables(t *testing.T) {
	graphPath := writeGraph(t, reluDescription)
	modelPath := filepath.Join(t.TempDir(), "relu6.tflite")

	_, _, err := execute(t, "compile", graphPath, "-o", modelPath, "--description", "relu6 test")
	require.NoError(t, err)

	stdout, _, err := execute(t, "inspect", modelPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Description: relu6 test")
	assert.Contains(t, stdout, "Version: 3")
	assert.Contains(t, stdout, "RELU6")
	assert.Contains(t, stdout, "FLOAT32")
	assert.Contains(t, stdout, "Subgraph 0: inputs [0], outputs [1]")
}

// TestInspect_RejectsNonModel verifies non-TFLite files are reported.
func TestInspect_RejectsNonModel(t *testing.T) {
	path := writeGraph(t, reluDescription)
	_, _, err := execute(t, "inspect", path)
	require.Error(t, err)
}

// TestCompile_LoweringError verifies typed errors reach the caller.
func TestCompile_LoweringError(t *testing.T) {
	graphPath := writeGraph(t, `
operands:
  - {name: x, kind: input, dtype: float32, shape: [4]}
  - {name: y, kind: output, dtype: float32, shape: [4]}
operations:
  - {op: elu, inputs: [x], outputs: [y], params: {alpha: 2}}
`)
	_, _, err := execute(t, "compile", graphPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tflite.ErrUnsupportedParameter))
}

// TestRoot_LogFlags verifies invalid logging flags are rejected.
func TestRoot_LogFlags(t *testing.T) {
	_, _, err := execute(t, "version", "--log-format", "xml")
	assert.ErrorContains(t, err, "--log-format")

	_, _, err = execute(t, "version", "--log-level", "loud")
	assert.ErrorContains(t, err, "--log-level")
}

// TestVersion verifies build information is printed.
func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "tflgen "+version)
}

// TestOps verifies supported operations are listed one per line.
func TestOps(t *testing.T) {
	stdout, _, err := execute(t, "ops")
	require.NoError(t, err)
	assert.Contains(t, stdout, "conv2d\n")
	assert.Contains(t, stdout, "layerNormalization\n")
}

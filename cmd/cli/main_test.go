package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/nodecanvas/internal/cli"
	"github.com/specialistvlad/nodecanvas/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	invalidHCL := `
		node_template "a" {
			slot "out" {
		// Missing closing braces here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(invalidHCL), 0600), "failed to set up test file")
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(context.Background(), out, []string{filePath})

	// --- Assert ---
	var exitErr *cli.ExitError
	require.ErrorAs(t, runErr, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, exitErr.Message, "failed to parse")
}

func TestRun_Check(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{"canvas.hcl": testutil.PipelineHCL})
	out := &bytes.Buffer{}

	err := run(context.Background(), out, []string{"-check", "-log-level", "error", dir})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "nodes: 2\nconnections: 1\nvalid: false\n")
	assert.Contains(t, out.String(), `slot "next"`)
}

func TestRun_CheckFailsOnSkippedNodes(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{"canvas.hcl": `
node_template "a" { max_instances = 1 }
node "one" { template = "a" }
node "two" { template = "a" }
`})
	out := &bytes.Buffer{}

	err := run(context.Background(), out, []string{"-check", dir})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, out.String(), "nodes: 1\n")
}

func TestRun_ServesUntilCancelled(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{"canvas.hcl": testutil.PipelineHCL})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, run(ctx, &bytes.Buffer{}, []string{dir}))
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	err := run(context.Background(), out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// Providing an unknown flag will cause cli.Parse to return an error.
	err := run(context.Background(), &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

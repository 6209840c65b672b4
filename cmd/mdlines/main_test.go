package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestLanguagesCommand(t *testing.T) {
	out := execute(t, "languages", "py")
	assert.Equal(t, "py\tpython\npy3\tpython\npython\tpython\n", out)
}

func TestProbeCommand(t *testing.T) {
	out := execute(t, "probe", "<h1>Title</h1>")
	assert.Equal(t, "font-size: 32px\nfont-weight: 700\n", out)
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(in, []byte("# Notes\n\n**bold**\n"), 0o644))
	out := filepath.Join(dir, "notes.html")
	execute(t, "export", in, "-o", out, "--standalone=false")
	html, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<strong>bold</strong>")
}

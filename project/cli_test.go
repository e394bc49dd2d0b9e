package project

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, p *Project, args ...string) (string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "someline.yaml")
	content := "resolution: 1\npreview:\n  resolution: 1\n  width: 64\n  height: 48\n"
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o644))

	cmd := p.Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestExpandPattern(t *testing.T) {
	for in, want := range map[string]string{
		"":    "",
		"U1":  "*U1*",
		"U*":  "U*",
		"?1":  "?1",
		"[A]": "[A]",
	} {
		assert.Equal(t, want, expandPattern(in), in)
	}
}

func TestCLIExportList(t *testing.T) {
	out, err := execute(t, exportProject(t), "export", "--list", "dir")
	require.NoError(t, err)
	want := strings.Join(exportProject(t).ExportPaths("dir"), "\n") + "\n"
	assert.Equal(t, want, out)

	out, err = execute(t, exportProject(t), "export", "--list")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, filepath.Join("export", "small", "a.step")), out)
}

func TestCLIExport(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, exportProject(t), "export", dir)
	require.NoError(t, err)
	for _, path := range exportProject(t).ExportPaths(dir) {
		assert.FileExists(t, path)
	}
}

func TestCLIRunNoMatch(t *testing.T) {
	_, err := execute(t, exportProject(t), "run", "zzz")
	require.Error(t, err)
	assert.Equal(t, "no match found for: *zzz*", err.Error())

	// The root command runs too.
	_, err = execute(t, exportProject(t), "zzz")
	require.Error(t, err)
	assert.Equal(t, "no match found for: *zzz*", err.Error())
}

func TestCLIRun(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "preview.png")
	svg := filepath.Join(dir, "layout.svg")
	_, err := execute(t, exportProject(t), "run", "--pack", "--output", png, "--layout", svg)
	require.NoError(t, err)
	assert.FileExists(t, png)
	assert.FileExists(t, svg)

	_, err = execute(t, exportProject(t), "a", "-o", png)
	require.NoError(t, err)
}

func TestCLIBadConfig(t *testing.T) {
	cmd := exportProject(t).Command()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "export", "--list"})
	cmd.SetOut(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}

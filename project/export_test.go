package project

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/someline/someline/matter"
	"github.com/someline/someline/render"
	"github.com/someline/someline/sdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
	"gonum.org/v1/gonum/spatial/r3"
)

func exportProject(t *testing.T) *Project {
	t.Helper()
	p := New("small", WithDefaultColor(orange), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, p.Add("a", cuboid(r3.Vec{}, r3.Vec{X: 10, Y: 8, Z: 4})))
	require.NoError(t, p.Add("skip", cuboid(r3.Vec{}, r3.Vec{X: 3, Y: 3, Z: 3}), NoExport()))
	require.NoError(t, p.Add("b", cuboid(r3.Vec{X: 2}, r3.Vec{X: 6, Y: 6, Z: 6})))
	return p
}

func TestExportPaths(t *testing.T) {
	p := exportProject(t)
	want := []string{
		filepath.Join("out", "a.step"),
		filepath.Join("out", "a.stl"),
		filepath.Join("out", "b.step"),
		filepath.Join("out", "b.stl"),
	}
	if diff := cmp.Diff(want, p.ExportPaths("out")); diff != "" {
		t.Errorf("ExportPaths mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, filepath.Join("export", "small", "a.step"), p.ExportPaths("")[0])
}

func TestExport(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := exportProject(t)
	export := func(dir string, ts time.Time) []string {
		paths, err := p.Export(context.Background(), ExportOptions{
			Dir:        dir,
			Resolution: 1,
			Material:   matter.PLA,
			Workers:    2,
			Time:       ts,
		})
		require.NoError(t, err)
		return paths
	}
	dir1 := filepath.Join(t.TempDir(), "one")
	dir2 := filepath.Join(t.TempDir(), "two")
	paths1 := export(dir1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	paths2 := export(dir2, time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC))
	require.Equal(t, p.ExportPaths(dir1), paths1)
	require.Len(t, paths1, 4)

	for i := range paths1 {
		b1, err := os.ReadFile(paths1[i])
		require.NoError(t, err)
		b2, err := os.ReadFile(paths2[i])
		require.NoError(t, err)
		assert.True(t, bytes.Equal(b1, b2), "%s differs between exports", filepath.Base(paths1[i]))
	}

	step, err := os.ReadFile(filepath.Join(dir1, "a.step"))
	require.NoError(t, err)
	assert.Contains(t, string(step), "'0000-00-00T00:00:00'")
	assert.Contains(t, string(step), "PRODUCT('a','a',")

	fp, err := os.Open(filepath.Join(dir1, "b.stl"))
	require.NoError(t, err)
	defer fp.Close()
	model, err := render.ReadSTL(fp)
	require.NoError(t, err)
	require.NotEmpty(t, model)
	// PLA parts are printed slightly oversize.
	bb := render.Bounds(model)
	assert.Greater(t, bb.Max.X, 8.0)
	assert.NoFileExists(t, filepath.Join(dir1, "skip.stl"))
}

func TestExportErrors(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := exportProject(t)
	_, err := p.Export(context.Background(), ExportOptions{Dir: t.TempDir()})
	assert.Error(t, err, "zero resolution")

	boom := errors.New("boom")
	require.NoError(t, p.Add("bad", func() (sdf.SDF3, error) { return nil, boom }))
	_, err = p.Export(context.Background(), ExportOptions{Dir: t.TempDir(), Resolution: 1})
	assert.True(t, errors.Is(err, boom), "got %v", err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Export(ctx, ExportOptions{Dir: t.TempDir(), Resolution: 1})
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestExportEmptyPart(t *testing.T) {
	defer goleak.VerifyNone(t)
	unit := r3.Vec{X: 1, Y: 1, Z: 1}
	p := New("void", WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, p.Add("void", func() (sdf.SDF3, error) {
		a, err := cuboid(r3.Vec{}, unit)()
		if err != nil {
			return nil, err
		}
		b, err := cuboid(r3.Vec{X: 5, Y: 5, Z: 5}, unit)()
		if err != nil {
			return nil, err
		}
		return sdf.Intersect3D(a, b), nil
	}))
	_, err := p.Export(context.Background(), ExportOptions{Dir: t.TempDir(), Resolution: 1})
	assert.ErrorIs(t, err, ErrEmptyPart)

	plate, err := p.Assembly("", false)
	require.NoError(t, err)
	_, err = plate.Render(1)
	assert.ErrorIs(t, err, ErrEmptyPart)
}

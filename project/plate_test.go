package project

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func gridProject(t *testing.T) *Project {
	t.Helper()
	p := New("grid", WithGrid(24.4, 45.2), WithDefaultColor(orange))
	require.NoError(t, p.Add("U1", cuboid(r3.Vec{}, r3.Vec{X: 24.4, Y: 41.2, Z: 10}), AtGrid(0, 0)))
	require.NoError(t, p.Add("U2", cuboid(r3.Vec{}, r3.Vec{X: 48.8, Y: 41.2, Z: 10}), AtGrid(0, 1)))
	require.NoError(t, p.Add("A1", cuboid(r3.Vec{X: 5, Z: 2}, r3.Vec{X: 36.6, Y: 41.2, Z: 10}), AtGrid(6, 5)))
	return p
}

func TestSelect(t *testing.T) {
	p := gridProject(t)
	for pattern, want := range map[string][]string{
		"":      {"U1", "U2", "A1"},
		"U*":    {"U1", "U2"},
		"*1*":   {"U1", "A1"},
		"?2":    {"U2"},
		"[AU]1": {"U1", "A1"},
		"X*":    nil,
	} {
		models, err := p.Select(pattern)
		require.NoError(t, err)
		var got []string
		for _, m := range models {
			got = append(got, m.Name)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Select(%q) mismatch (-want +got):\n%s", pattern, diff)
		}
	}
	_, err := p.Select("[")
	assert.Error(t, err)
}

func TestAssemblyNoMatch(t *testing.T) {
	_, err := gridProject(t).Assembly("*zzz*", false)
	assert.True(t, errors.Is(err, ErrNoMatch))
	assert.Contains(t, err.Error(), "*zzz*")
}

func TestAssemblySingle(t *testing.T) {
	plate, err := gridProject(t).Assembly("A1", false)
	require.NoError(t, err)
	require.Len(t, plate.Placements, 1)
	assert.Equal(t, r3.Vec{}, plate.Placements[0].Offset)
	assert.Equal(t, r3.Vec{X: 5, Z: 2}, plate.Bounds().Min)
}

func TestAssemblyGrid(t *testing.T) {
	plate, err := gridProject(t).Assembly("", false)
	require.NoError(t, err)
	want := []r3.Vec{
		{},
		{Y: -45.2},
		{X: 6 * 24.4, Y: -5 * 45.2},
	}
	require.Len(t, plate.Placements, len(want))
	for i, pl := range plate.Placements {
		assert.InDelta(t, want[i].X, pl.Offset.X, 1e-9, pl.Model.Name)
		assert.InDelta(t, want[i].Y, pl.Offset.Y, 1e-9, pl.Model.Name)
		assert.Zero(t, pl.Offset.Z, pl.Model.Name)
	}
	s := plate.Shape()
	assert.Less(t, s.Evaluate(r3.Vec{X: 10, Y: -45.2 + 10, Z: 5}), 0.0, "U2 is in its cell")
}

func TestAssemblyPack(t *testing.T) {
	p := gridProject(t)
	require.NoError(t, p.Add("loose", cuboid(r3.Vec{Z: -3}, r3.Vec{X: 10, Y: 10, Z: 5})))
	for name, force := range map[string]bool{"missing cell": false, "forced": true} {
		t.Run(name, func(t *testing.T) {
			plate, err := p.Assembly("", force)
			require.NoError(t, err)
			require.Len(t, plate.Placements, 4)
			for i, a := range plate.Placements {
				assert.InDelta(t, 0, a.Bounds.Min.Z, 1e-9, "%s on the plate", a.Model.Name)
				for _, b := range plate.Placements[i+1:] {
					apart := a.Bounds.Max.X+p.Padding <= b.Bounds.Min.X+1e-9 ||
						b.Bounds.Max.X+p.Padding <= a.Bounds.Min.X+1e-9 ||
						a.Bounds.Max.Y+p.Padding <= b.Bounds.Min.Y+1e-9 ||
						b.Bounds.Max.Y+p.Padding <= a.Bounds.Min.Y+1e-9
					assert.True(t, apart, "%s and %s overlap", a.Model.Name, b.Model.Name)
				}
			}
		})
	}
}

func TestPlateFootprintsAndRender(t *testing.T) {
	p := New("small", WithDefaultColor(orange))
	require.NoError(t, p.Add("a", cuboid(r3.Vec{}, r3.Vec{X: 10, Y: 8, Z: 4})))
	require.NoError(t, p.Add("b", cuboid(r3.Vec{}, r3.Vec{X: 6, Y: 6, Z: 6})))
	plate, err := p.Assembly("", false)
	require.NoError(t, err)

	fp := plate.Footprints()
	require.Len(t, fp, 2)
	assert.Equal(t, "a", fp[0].Name)
	assert.InDelta(t, 10, fp[0].Box.Max.X-fp[0].Box.Min.X, 1e-9)

	parts, err := plate.Render(1)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	for _, part := range parts {
		assert.NotEmpty(t, part.Model, part.Name)
		assert.Equal(t, orange, part.Color)
	}
}

func TestMeshCells(t *testing.T) {
	box := r3.Box{Max: r3.Vec{X: 24.4, Y: 41.2, Z: 33.7}}
	assert.Equal(t, 83, meshCells(box, 0.5))
	assert.Equal(t, 2, meshCells(box, 100))
}

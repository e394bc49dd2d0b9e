package project

import (
	"errors"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/someline/someline/form3"
	"github.com/someline/someline/sdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

var orange = color.RGBA{R: 0xff, G: 0x6a, B: 0x13, A: 0xff}

// cuboid builds a box of the given size with its minimum corner at min.
func cuboid(min, size r3.Vec) BuildFunc {
	return func() (sdf.SDF3, error) {
		return form3.Cuboid(min, size)
	}
}

func TestProjectAdd(t *testing.T) {
	p := New("test", WithDefaultColor(orange))
	require.NoError(t, p.Add("U1", cuboid(r3.Vec{}, r3.Vec{X: 10, Y: 10, Z: 5})))
	require.NoError(t, p.Add("U2", cuboid(r3.Vec{}, r3.Vec{X: 20, Y: 10, Z: 5}), WithColor(color.Black), AtGrid(1, 2)))
	require.NoError(t, p.Add("cap", cuboid(r3.Vec{}, r3.Vec{X: 5, Y: 5, Z: 5}), NoExport()))

	err := p.Add("U1", cuboid(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}))
	assert.True(t, errors.Is(err, ErrDuplicateName), "got %v", err)
	assert.Error(t, p.Add("nil", nil))

	if diff := cmp.Diff([]string{"U1", "U2", "cap"}, p.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	u1, err := p.Get("U1")
	require.NoError(t, err)
	assert.Equal(t, color.Color(orange), u1.Color)
	assert.Nil(t, u1.Grid)
	assert.True(t, u1.Export)

	u2, err := p.Get("U2")
	require.NoError(t, err)
	assert.Equal(t, color.Color(color.Black), u2.Color)
	assert.Equal(t, &GridPos{X: 1, Y: 2}, u2.Grid)

	c, err := p.Get("cap")
	require.NoError(t, err)
	assert.False(t, c.Export)

	_, err = p.Get("U9")
	assert.True(t, errors.Is(err, ErrUnknownModel))

	models := p.Models()
	require.Len(t, models, 3)
	models[0] = nil
	assert.NotNil(t, p.Models()[0], "Models returns a copy")
}

func TestModelPartBuildsOnce(t *testing.T) {
	p := New("test")
	calls := 0
	require.NoError(t, p.Add("U1", func() (sdf.SDF3, error) {
		calls++
		return form3.Cuboid(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1})
	}))
	m, err := p.Get("U1")
	require.NoError(t, err)
	a, err := m.Part()
	require.NoError(t, err)
	b, err := m.Part()
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, calls)
}

func TestModelPartError(t *testing.T) {
	p := New("test")
	boom := errors.New("boom")
	require.NoError(t, p.Add("bad", func() (sdf.SDF3, error) { return nil, boom }))
	require.NoError(t, p.Add("empty", func() (sdf.SDF3, error) { return nil, nil }))

	m, _ := p.Get("bad")
	_, err := m.Part()
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "model bad")

	m, _ = p.Get("empty")
	_, err = m.Part()
	assert.Error(t, err)
}

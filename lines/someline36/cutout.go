package someline36

import (
	"fmt"

	"github.com/someline/someline/bins"
	"github.com/someline/someline/form2"
	"github.com/someline/someline/form2/must2"
	"github.com/someline/someline/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// notch left in the front of bins next to the lid hinges
	notchDepth   = 10.0
	notchHalf    = 20.0
	hingeClear   = 15.0
	cornerRound  = 7.0
	notchRound   = 2.5
	cornerFacets = 16
	notchFacets  = 8
)

// MakeCutout returns a bin with a notch in the middle of its front wall
// that clears the lid hinges of the first row.
func MakeCutout(units int) (sdf.SDF3, error) {
	if units < 2 {
		return nil, fmt.Errorf("cutout bin needs at least two units, got %d", units)
	}
	length := UnitToLength(units)
	mid := length / 2
	p := form2.NewPolygon()
	corner(p, 0, 0)
	corner(p, 0, Width)
	corner(p, length, Width)
	corner(p, length, 0)
	notch(p, mid+notchHalf, 0)
	notch(p, mid+notchHalf, notchDepth)
	notch(p, mid-notchHalf, notchDepth)
	notch(p, mid-notchHalf, 0)
	p.Close()

	handleLength := length
	if units > 3 {
		handleLength = longHandle
	}
	b, err := newOutlineBox(p, length, handleLength)
	if err != nil {
		return nil, err
	}
	pad, pocket, err := wallCutout()
	if err != nil {
		return nil, err
	}
	var pads, pockets []sdf.SDF3
	for _, at := range bins.Row(r3.Vec{X: OuterRow}, InnerRow, units-1) {
		back := r3.Vec{X: at.X, Y: Width}
		pads = append(pads, bins.Move(bins.Rotate180(pad), back))
		pockets = append(pockets, bins.Move(bins.Rotate180(pocket), back))
		// no front cutouts next to the notch
		if at.X < mid-hingeClear || at.X > mid+hingeClear {
			pads = append(pads, bins.Move(pad, at))
			pockets = append(pockets, bins.Move(pocket, at))
		}
	}
	b.Add(pads...).Cut(pockets...)
	return hingeSlots(b.Finish(), length, false)
}

// MakeHalfCutout returns a bin half a row longer than its units with a
// notch at its right front corner. Lid hinge slots are only cut at the
// left end. A flipped bin is mirrored to extend from x=0 towards -X.
func MakeHalfCutout(units int, flip bool) (sdf.SDF3, error) {
	if units < 1 {
		return nil, fmt.Errorf("bin needs at least one unit, got %d", units)
	}
	length := UnitToLength(units) + InnerRow/2
	p := form2.NewPolygon()
	corner(p, 0, 0)
	corner(p, 0, Width)
	corner(p, length, Width)
	corner(p, length, notchDepth)
	notch(p, length-notchHalf, notchDepth)
	notch(p, length-notchHalf, 0)
	p.Close()

	b, err := newOutlineBox(p, length, length)
	if err != nil {
		return nil, err
	}
	pad, pocket, err := wallCutout()
	if err != nil {
		return nil, err
	}
	back := bins.Row(r3.Vec{X: OuterRow, Y: Width}, InnerRow, units)
	front := bins.Row(r3.Vec{X: OuterRow}, InnerRow, units-1)
	b.Add(bins.Place(bins.Rotate180(pad), back)).Cut(bins.Place(bins.Rotate180(pocket), back))
	if len(front) > 0 {
		b.Add(bins.Place(pad, front)).Cut(bins.Place(pocket, front))
	}
	s, err := hingeSlots(b.Finish(), length, true)
	if err != nil {
		return nil, err
	}
	if flip {
		s = bins.FlipX(s)
	}
	return s, nil
}

func corner(p *must2.PolygonBuilder, x, y float64) {
	p.Add(x, y).Smooth(cornerRound, cornerFacets)
}

func notch(p *must2.PolygonBuilder, x, y float64) {
	p.Add(x, y).Smooth(notchRound, notchFacets)
}

// newOutlineBox starts a lofted bin with the outline drawn by p and a
// handle on its back wall.
func newOutlineBox(p *must2.PolygonBuilder, length, handleLength float64) (*bins.Builder, error) {
	outline, err := form2.BuildPolygon(p)
	if err != nil {
		return nil, fmt.Errorf("outline: %w", err)
	}
	b, err := bins.NewLoftBox(bins.LoftParams{
		Length:  length,
		Width:   Width,
		Height:  Height,
		Wall:    Wall,
		Outline: outline,
	})
	if err != nil {
		return nil, err
	}
	h, err := handle(handleLength)
	if err != nil {
		return nil, err
	}
	return b.Add(h), nil
}

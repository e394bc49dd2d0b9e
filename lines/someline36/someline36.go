// Package someline36 models the inserts of the Someline 36 product line:
// tall lofted bins with lid hinge slots, including the half and cutout
// bins that leave room for the lid hinges of the first row.
package someline36

import (
	"fmt"
	"image/color"

	"github.com/someline/someline/bins"
	"github.com/someline/someline/project"
	"github.com/someline/someline/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	Width  = 41.2
	Height = 33.7

	InnerRow = 24.4
	OuterRow = 24.4

	Wall = 1.6

	// lid pin slots
	pinDY     = 3.8
	pinLength = 5.25
	pinTopW   = 3.0
	pinBotW   = 2.0
	pinDepth  = 5.0

	handleThickness = 1.2
	longHandle      = 50.0
)

// Color of printed parts.
var Color = color.RGBA{R: 0xff, G: 0x6a, B: 0x13, A: 0xff}

// UnitToLength returns the length of a bin spanning u rows.
func UnitToLength(u int) float64 {
	if u < 3 {
		return float64(u) * OuterRow
	}
	return 2*OuterRow + float64(u-2)*InnerRow
}

func wallCutout() (pad, pocket sdf.SDF3, err error) {
	return bins.WallCutout(9, 6, 3, 24.1, bins.DefaultCutoutWall)
}

// handle returns the handle of a bin placed on top of its back wall.
func handle(length float64) (sdf.SDF3, error) {
	h, err := bins.Handle(length, handleThickness)
	if err != nil {
		return nil, err
	}
	return bins.Move(h, r3.Vec{Y: Width, Z: Height}), nil
}

// hingeSlots cuts the lid pin slots into both long walls at the left end
// of a bin and, unless half is set, at the right end too.
func hingeSlots(s sdf.SDF3, length float64, half bool) (sdf.SDF3, error) {
	slot, err := bins.HingeCutout(bins.Hinge{
		TopWidth:    pinTopW,
		BottomWidth: pinBotW,
		Depth:       pinDepth,
		Length:      pinLength,
	})
	if err != nil {
		return nil, err
	}
	at := []r3.Vec{{Y: pinDY, Z: Height}, {Y: Width - pinDY, Z: Height}}
	if !half {
		x := length - pinLength
		at = append(at, r3.Vec{X: x, Y: pinDY, Z: Height}, r3.Vec{X: x, Y: Width - pinDY, Z: Height})
	}
	return sdf.Difference3D(s, bins.Place(slot, at)), nil
}

// Make returns a bin of the given number of units with finger cutouts in
// both long walls between units. Single unit bins get extra pockets at
// their corners to clear the rounded separators of the case.
func Make(units int) (sdf.SDF3, error) {
	if units < 1 {
		return nil, fmt.Errorf("bin needs at least one unit, got %d", units)
	}
	length := UnitToLength(units)
	b, err := bins.NewLoftBox(bins.LoftParams{Length: length, Width: Width, Height: Height, Wall: Wall})
	if err != nil {
		return nil, err
	}
	handleLength := length
	if units >= 3 {
		handleLength = longHandle
	}
	h, err := handle(handleLength)
	if err != nil {
		return nil, err
	}
	b.Add(h)
	if units > 1 {
		pad, pocket, err := wallCutout()
		if err != nil {
			return nil, err
		}
		at := bins.Row(r3.Vec{X: OuterRow}, InnerRow, units-1)
		b.Add(bins.Place(bins.Mirror(pad, Width), at))
		b.Cut(bins.Place(bins.Mirror(pocket, Width), at))
	}
	s, err := hingeSlots(b.Finish(), length, false)
	if err != nil || units > 1 {
		return s, err
	}

	pocket, err := bins.WallCutoutPocket(8, 5, 3, 24.1)
	if err != nil {
		return nil, err
	}
	corners := sdf.Union3D(
		bins.Place(pocket, []r3.Vec{{}, {X: length}}),
		bins.Place(bins.Rotate180(pocket), []r3.Vec{{Y: Width}, {X: length, Y: Width}}),
	)
	return sdf.Difference3D(s, corners), nil
}

// Project returns the models of the product line laid out as they sit in
// the case.
func Project(opts ...project.Option) *project.Project {
	opts = append([]project.Option{
		project.WithDefaultColor(Color),
		project.WithGrid(InnerRow, Width+4),
	}, opts...)
	p := project.New("someline-36", opts...)
	add := func(name string, fn project.BuildFunc, x, y int) {
		if err := p.Add(name, fn, project.AtGrid(x, y)); err != nil {
			panic(err)
		}
	}
	for u := 1; u <= 6; u++ {
		add(fmt.Sprintf("U%d", u), func() (sdf.SDF3, error) { return Make(u) }, 0, u)
	}
	for u := 7; u <= 10; u++ {
		add(fmt.Sprintf("U%d", u), func() (sdf.SDF3, error) { return Make(u) }, 6, u-6)
	}
	add("A1", func() (sdf.SDF3, error) { return MakeHalfCutout(1, false) }, 6, 5)
	add("A2", func() (sdf.SDF3, error) { return MakeHalfCutout(2, false) }, 8, 5)
	add("B1", func() (sdf.SDF3, error) { return MakeHalfCutout(1, true) }, 13, 5)
	add("B2", func() (sdf.SDF3, error) { return MakeHalfCutout(2, true) }, 16, 5)
	add("C3", func() (sdf.SDF3, error) { return MakeCutout(3) }, 7, 6)
	add("C5", func() (sdf.SDF3, error) { return MakeCutout(5) }, 11, 6)
	return p
}

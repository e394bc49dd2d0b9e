// Package someline15 models the inserts of the Someline 15 product line:
// low bins 30 mm wide and a lid clip.
package someline15

import (
	"fmt"
	"image/color"

	"github.com/someline/someline/bins"
	"github.com/someline/someline/project"
	"github.com/someline/someline/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	Width  = 30.0
	Height = 19.2

	InnerRow = 34.25
	OuterRow = 33.25

	shortHandle = 28.0
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

// Make returns a bin of the given number of units. Bins longer than one
// unit have a short handle and finger cutouts in both long walls between
// units.
func Make(units int, width float64) (sdf.SDF3, error) {
	if units < 1 {
		return nil, fmt.Errorf("bin needs at least one unit, got %d", units)
	}
	length := UnitToLength(units)
	b, err := bins.NewBox(bins.BoxParams{Length: length, Width: width, Height: Height})
	if err != nil {
		return nil, err
	}
	handleLength := length
	if units >= 2 {
		handleLength = shortHandle
	}
	handle, err := bins.Handle(handleLength, bins.DefaultHandleThickness)
	if err != nil {
		return nil, err
	}
	s := b.Add(bins.Move(handle, r3.Vec{Y: width, Z: Height})).Finish()
	if units == 1 {
		return s, nil
	}

	pad, pocket, err := bins.WallCutout(5, 4, 2.2, 12.5, bins.DefaultCutoutWall)
	if err != nil {
		return nil, err
	}
	at := bins.Row(r3.Vec{X: OuterRow}, InnerRow, units-1)
	s = sdf.Union3D(s, bins.Place(bins.Mirror(pad, width), at))
	return sdf.Difference3D(s, bins.Place(bins.Mirror(pocket, width), at)), nil
}

// Project returns the models of the product line.
func Project(opts ...project.Option) *project.Project {
	p := project.New("someline-15", append([]project.Option{project.WithDefaultColor(Color)}, opts...)...)
	add := func(name string, fn project.BuildFunc) {
		if err := p.Add(name, fn); err != nil {
			panic(err)
		}
	}
	add("U0", func() (sdf.SDF3, error) { return Make(1, 25) })
	for u := 1; u <= 5; u++ {
		add(fmt.Sprintf("U%d", u), func() (sdf.SDF3, error) { return Make(u, Width) })
	}
	add("cap", MakeCap)
	return p
}

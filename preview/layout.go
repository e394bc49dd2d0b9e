package preview

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Footprint is the outline of a placed part seen from above.
type Footprint struct {
	Name  string
	Color color.Color
	Box   r2.Box
}

// layoutWidth is the width of layout diagrams. Their height follows the
// aspect ratio of the plate.
const layoutWidth = 8 * vg.Inch

// Layout plots footprints with their names and saves the diagram to path.
// The format is picked by the extension of path (.png, .svg, .pdf ...).
func Layout(path, title string, footprints []Footprint) error {
	if len(footprints) == 0 {
		return errors.New("no footprints to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (mm)"
	p.Y.Label.Text = "y (mm)"
	p.Add(plotter.NewGrid())

	bb := footprints[0].Box
	labels := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(footprints)),
		Labels: make([]string, len(footprints)),
	}
	for i, f := range footprints {
		b := f.Box
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: b.Min.X, Y: b.Min.Y},
			{X: b.Max.X, Y: b.Min.Y},
			{X: b.Max.X, Y: b.Max.Y},
			{X: b.Min.X, Y: b.Max.Y},
		})
		if err != nil {
			return fmt.Errorf("footprint %s: %w", f.Name, err)
		}
		if f.Color != nil {
			poly.Color = fade(f.Color)
		}
		p.Add(poly)
		c := r2.Scale(0.5, r2.Add(b.Min, b.Max))
		labels.XYs[i] = plotter.XY{X: c.X, Y: c.Y}
		labels.Labels[i] = f.Name
		bb = r2.Box{
			Min: r2.Vec{X: min(bb.Min.X, b.Min.X), Y: min(bb.Min.Y, b.Min.Y)},
			Max: r2.Vec{X: max(bb.Max.X, b.Max.X), Y: max(bb.Max.Y, b.Max.Y)},
		}
	}
	l, err := plotter.NewLabels(labels)
	if err != nil {
		return fmt.Errorf("layout labels: %w", err)
	}
	p.Add(l)

	size := r2.Sub(bb.Max, bb.Min)
	if size.X <= 0 || size.Y <= 0 {
		return errors.New("footprints have no area")
	}
	height := layoutWidth * vg.Length(size.Y/size.X)
	if height < 2*vg.Inch {
		height = 2 * vg.Inch
	}
	return p.Save(layoutWidth, height, path)
}

// fade lightens c so labels stay readable on top of it.
func fade(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	mix := func(v uint32) uint8 { return uint8((v>>8)/2 + 0x80) }
	return color.RGBA{R: mix(r), G: mix(g), B: mix(b), A: 0xff}
}

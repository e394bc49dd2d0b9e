package project

import (
	"fmt"
	"math"
	"path"

	"github.com/someline/someline/internal/d3"
	"github.com/someline/someline/preview"
	"github.com/someline/someline/render"
	"github.com/someline/someline/sdf"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Placement is a model moved to its place on a plate.
type Placement struct {
	Model  *Model
	Offset r3.Vec
	// Bounds of the part after it is moved.
	Bounds r3.Box
	part   sdf.SDF3
}

// Part returns the moved solid of the model.
func (pl Placement) Part() sdf.SDF3 {
	return sdf.Transform3D(pl.part, sdf.Translate3D(pl.Offset))
}

// Plate is a set of models arranged side by side.
type Plate struct {
	Name       string
	Placements []Placement
}

// Select returns the models whose names match a shell pattern, all of them
// if pattern is empty.
func (p *Project) Select(pattern string) ([]*Model, error) {
	if pattern == "" {
		return p.Models(), nil
	}
	var models []*Model
	for _, m := range p.models {
		ok, err := path.Match(pattern, m.Name)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if ok {
			models = append(models, m)
		}
	}
	return models, nil
}

// Assembly arranges the models matching pattern on a plate. A single model
// keeps its own position. Several models go to their grid cells when the
// project has a grid and every model has a cell. Otherwise, or if
// forcePack is set, they are packed in rows and dropped onto z=0.
func (p *Project) Assembly(pattern string, forcePack bool) (*Plate, error) {
	models, err := p.Select(pattern)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, pattern)
	}
	parts := make([]sdf.SDF3, len(models))
	boxes := make([]r3.Box, len(models))
	for i, m := range models {
		if parts[i], err = m.Part(); err != nil {
			return nil, err
		}
		boxes[i] = parts[i].Bounds()
	}

	offsets := make([]r3.Vec, len(models))
	switch {
	case len(models) == 1:
	case p.Grid != nil && !forcePack && allOnGrid(models):
		for i, m := range models {
			offsets[i] = r3.Vec{X: float64(m.Grid.X) * p.Grid.X, Y: -float64(m.Grid.Y) * p.Grid.Y}
		}
	default:
		offsets = pack(boxes, p.Padding)
	}

	plate := &Plate{Name: p.Name, Placements: make([]Placement, len(models))}
	for i, m := range models {
		plate.Placements[i] = Placement{
			Model:  m,
			Offset: offsets[i],
			Bounds: r3.Box(d3.Box(boxes[i]).Translate(offsets[i])),
			part:   parts[i],
		}
	}
	return plate, nil
}

func allOnGrid(models []*Model) bool {
	for _, m := range models {
		if m.Grid == nil {
			return false
		}
	}
	return true
}

// pack places boxes left to right in rows about as wide as the square of
// their total area, leaving padding between them. It returns the offset
// that moves each box to its place with its bottom on z=0.
func pack(boxes []r3.Box, padding float64) []r3.Vec {
	var area, widest float64
	for _, b := range boxes {
		s := r3.Sub(b.Max, b.Min)
		area += (s.X + padding) * (s.Y + padding)
		widest = math.Max(widest, s.X)
	}
	rowWidth := math.Max(math.Sqrt(area), widest)

	offsets := make([]r3.Vec, len(boxes))
	var x, y, depth float64
	for i, b := range boxes {
		s := r3.Sub(b.Max, b.Min)
		if x > 0 && x+s.X > rowWidth {
			x, y, depth = 0, y+depth+padding, 0
		}
		offsets[i] = r3.Vec{X: x - b.Min.X, Y: y - b.Min.Y, Z: -b.Min.Z}
		x += s.X + padding
		depth = math.Max(depth, s.Y)
	}
	return offsets
}

// Shape returns the union of all placed parts.
func (pl *Plate) Shape() sdf.SDF3 {
	parts := make([]sdf.SDF3, len(pl.Placements))
	for i, p := range pl.Placements {
		parts[i] = p.Part()
	}
	return sdf.Union3D(parts...)
}

// Bounds returns the box holding every placed part.
func (pl *Plate) Bounds() r3.Box {
	if len(pl.Placements) == 0 {
		return r3.Box{}
	}
	bb := d3.Box(pl.Placements[0].Bounds)
	for _, p := range pl.Placements[1:] {
		bb = bb.Extend(d3.Box(p.Bounds))
	}
	return r3.Box(bb)
}

// Footprints returns the outline of every placed part seen from above.
func (pl *Plate) Footprints() []preview.Footprint {
	fp := make([]preview.Footprint, len(pl.Placements))
	for i, p := range pl.Placements {
		fp[i] = preview.Footprint{
			Name:  p.Model.Name,
			Color: p.Model.Color,
			Box: r2.Box{
				Min: r2.Vec{X: p.Bounds.Min.X, Y: p.Bounds.Min.Y},
				Max: r2.Vec{X: p.Bounds.Max.X, Y: p.Bounds.Max.Y},
			},
		}
	}
	return fp
}

// Render meshes every placed part with cells of about resolution mm.
func (pl *Plate) Render(resolution float64) ([]preview.Part, error) {
	parts := make([]preview.Part, len(pl.Placements))
	for i, p := range pl.Placements {
		model, err := renderPart(p.Part(), resolution)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", p.Model.Name, err)
		}
		parts[i] = preview.Part{Name: p.Model.Name, Color: p.Model.Color, Model: model}
	}
	return parts, nil
}

// renderPart meshes s with cells of about resolution mm. Solids without
// volume give ErrEmptyPart.
func renderPart(s sdf.SDF3, resolution float64) ([]render.Triangle3, error) {
	bb := s.Bounds()
	size := r3.Sub(bb.Max, bb.Min)
	if !(size.X > 0 && size.Y > 0 && size.Z > 0) {
		return nil, ErrEmptyPart
	}
	return render.RenderAll(render.NewOctreeRenderer(s, meshCells(bb, resolution)))
}

// meshCells returns the number of cells along the longest side of bb for
// cells of about resolution mm. The renderer needs at least two.
func meshCells(bb r3.Box, resolution float64) int {
	n := int(math.Ceil(d3.Max(r3.Sub(bb.Max, bb.Min)) / resolution))
	if n < 2 {
		return 2
	}
	return n
}

// Package bins builds the solids shared by every product line: straight and
// lofted bin bodies, handles, wall cutouts and lid hinge slots.
//
// All parts use millimetres. A bin occupies [0,Length]x[0,Width]x[0,Height]
// with the front wall at y=0 and the back wall at y=Width.
package bins

import (
	"errors"
	"fmt"

	"github.com/someline/someline/form2"
	"github.com/someline/someline/form3"
	"github.com/someline/someline/sdf"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// DefaultWall is the wall thickness of bins when none is given.
	DefaultWall = 1.2
	// DefaultFloor is the floor thickness of lofted bins.
	DefaultFloor = 1.2
	// DefaultLoft is how far the outline of a lofted bin is inset at the bottom.
	DefaultLoft = 0.5

	boxFloor      = 1.0 // floor of straight bins
	outerRound    = 7.0 // outer vertical edges
	cavityRound   = 4.0 // cavity floor edges
	bottomChamfer = 1.0
	rimMargin     = 0.4 // wall left on top of the chamfered rim
)

// BoxParams defines a straight walled bin.
type BoxParams struct {
	Length, Width, Height float64
	// Wall thickness, DefaultWall if zero.
	Wall float64
	// Cavity is the outline of the inside of the bin. If nil the cavity is a
	// rectangle inset by Wall with corners rounded to match the outside.
	Cavity sdf.SDF2
}

// LoftParams defines a bin whose walls lean outward from bottom to top.
type LoftParams struct {
	Length, Width, Height float64
	// Wall thickness, DefaultWall if zero.
	Wall float64
	// Floor thickness, DefaultFloor if zero.
	Floor float64
	// Loft is the inset of the bottom outline, DefaultLoft if zero.
	Loft float64
	// Outline is the top outline of the bin. If nil it is a Length by Width
	// rectangle with its corners rounded.
	Outline sdf.SDF2
}

// Builder holds a bin body between the creation of its cavity and the
// finishing of its edges. Parts added or cut in between are trimmed to
// the outside of the bin when it is finished.
type Builder struct {
	body sdf.SDF3
	trim sdf.SDF3
	ops  []op
}

type op struct {
	s   sdf.SDF3
	cut bool
}

// Add unions parts with the bin body.
func (b *Builder) Add(parts ...sdf.SDF3) *Builder {
	for _, s := range parts {
		b.ops = append(b.ops, op{s: s})
	}
	return b
}

// Cut subtracts parts from the bin body.
func (b *Builder) Cut(parts ...sdf.SDF3) *Builder {
	for _, s := range parts {
		b.ops = append(b.ops, op{s: s, cut: true})
	}
	return b
}

// Finish applies the added and cut parts in order, then rounds and chamfers
// the outside of the bin.
func (b *Builder) Finish() sdf.SDF3 {
	s := b.body
	for i := 0; i < len(b.ops); {
		// consecutive parts of the same kind are combined into a single union.
		j := i + 1
		for j < len(b.ops) && b.ops[j].cut == b.ops[i].cut {
			j++
		}
		group := make([]sdf.SDF3, 0, j-i)
		for _, o := range b.ops[i:j] {
			group = append(group, o.s)
		}
		if b.ops[i].cut {
			s = sdf.Difference3D(s, sdf.Union3D(group...))
		} else {
			s = sdf.Union3D(append([]sdf.SDF3{s}, group...)...)
		}
		i = j
	}
	return sdf.Intersect3D(s, b.trim)
}

// NewBox starts a straight walled bin. The floor is 1 mm thick and the
// cavity floor edges are rounded. Finishing rounds the outer vertical edges,
// chamfers the front and back bottom edges by 1 mm and chamfers the inner
// top edge of the front wall down to 0.4 mm of wall.
func NewBox(p BoxParams) (*Builder, error) {
	if p.Wall == 0 {
		p.Wall = DefaultWall
	}
	if err := checkSize(p.Length, p.Width, p.Height, p.Wall); err != nil {
		return nil, err
	}
	if p.Height <= boxFloor {
		return nil, fmt.Errorf("box height %g must exceed the %g mm floor", p.Height, boxFloor)
	}
	outline, err := form2.Rect(r2.Vec{}, r2.Vec{X: p.Length, Y: p.Width}, outerRound)
	if err != nil {
		return nil, fmt.Errorf("box outline: %w", err)
	}
	cavity := p.Cavity
	if cavity == nil {
		cavity, err = form2.Rect(
			r2.Vec{X: p.Wall, Y: p.Wall},
			r2.Vec{X: p.Length - 2*p.Wall, Y: p.Width - 2*p.Wall},
			outerRound-p.Wall,
		)
		if err != nil {
			return nil, fmt.Errorf("box cavity: %w", err)
		}
	}
	outside := lift(sdf.Extrude3D(outline, p.Height), 0, p.Height)

	// The cavity runs past the rim so only its floor edges are rounded.
	top := p.Height + 2*cavityRound
	inside := []sdf.SDF3{
		lift(sdf.ExtrudeRounded3D(sdf.Offset2D(cavity, -cavityRound), top-boxFloor, cavityRound), boxFloor, top),
	}
	if rim := p.Wall - rimMargin; rim > 0 {
		front := cavity.Bounds().Min.Y
		wedge, err := frontRimChamfer(front, p.Height, rim, outerRound, p.Length-outerRound)
		if err != nil {
			return nil, err
		}
		inside = append(inside, wedge)
	}
	return &Builder{
		body: sdf.Difference3D(outside, sdf.Union3D(inside...)),
		trim: chamferBottom(outside, 0, p.Width),
	}, nil
}

// NewLoftBox starts a bin lofted from its outline inset by Loft at the
// bottom to the full outline at the top. Walls are Wall thick measured
// horizontally and the cavity floor edges are rounded. Finishing trims all
// parts to the lofted outside, chamfers the front and back bottom edges by
// 1 mm and chamfers the inner top edge of the left wall down to 0.4 mm of
// wall.
func NewLoftBox(p LoftParams) (*Builder, error) {
	if p.Wall == 0 {
		p.Wall = DefaultWall
	}
	if p.Floor == 0 {
		p.Floor = DefaultFloor
	}
	if p.Loft == 0 {
		p.Loft = DefaultLoft
	}
	if err := checkSize(p.Length, p.Width, p.Height, p.Wall); err != nil {
		return nil, err
	}
	if p.Floor < 0 || p.Loft < 0 {
		return nil, errors.New("loft box floor and loft must not be negative")
	}
	if p.Height <= p.Floor {
		return nil, fmt.Errorf("loft box height %g must exceed the %g mm floor", p.Height, p.Floor)
	}
	outline := p.Outline
	if outline == nil {
		var err error
		outline, err = form2.Rect(r2.Vec{}, r2.Vec{X: p.Length, Y: p.Width}, outerRound)
		if err != nil {
			return nil, fmt.Errorf("loft box outline: %w", err)
		}
	}
	// at returns the outline at height z offset by d.
	at := func(z, d float64) sdf.SDF2 {
		return sdf.Offset2D(outline, d-p.Loft*(1-z/p.Height))
	}
	outside := lift(sdf.Loft3D(at(0, 0), at(p.Height, 0), p.Height, 0), 0, p.Height)

	// The rounded loft blends between its outlines over [z0+r, z1-r].
	z0, z1 := p.Floor, p.Height+2*cavityRound
	cavity := sdf.Loft3D(
		at(z0+cavityRound, -p.Wall-cavityRound),
		at(z1-cavityRound, -p.Wall-cavityRound),
		z1-z0, cavityRound,
	)
	inside := []sdf.SDF3{lift(cavity, z0, z1)}
	bb := outline.Bounds()
	if rim := p.Wall - rimMargin; rim > 0 {
		wedge, err := leftRimChamfer(bb.Min.X+p.Wall, p.Height, rim, bb.Min.Y+outerRound, bb.Max.Y-outerRound)
		if err != nil {
			return nil, err
		}
		inside = append(inside, wedge)
	}
	return &Builder{
		body: sdf.Difference3D(outside, sdf.Union3D(inside...)),
		trim: chamferBottom(outside, bb.Min.Y+p.Loft, bb.Max.Y-p.Loft),
	}, nil
}

// chamferBottom cuts the bottom edges at y=front and y=back of s by
// bottomChamfer. The side edges are left sharp.
func chamferBottom(s sdf.SDF3, front, back float64) sdf.SDF3 {
	s = sdf.Cut3D(s, r3.Vec{Y: front + bottomChamfer}, r3.Vec{Y: 1, Z: 1})
	return sdf.Cut3D(s, r3.Vec{Y: back - bottomChamfer}, r3.Vec{Y: -1, Z: 1})
}

// frontRimChamfer returns the wedge that chamfers by size the edge where
// the inner face y=face of a front wall meets its top z=top, from x0 to x1.
// The wedge reaches into the cavity and above the rim.
func frontRimChamfer(face, top, size, x0, x1 float64) (sdf.SDF3, error) {
	if x1 <= x0 {
		return nil, fmt.Errorf("no straight front wall to chamfer between x=%g and x=%g", x0, x1)
	}
	block, err := form3.Cuboid(
		r3.Vec{X: x0, Y: face - size - 1, Z: top - size - 1},
		r3.Vec{X: x1 - x0, Y: size + 2, Z: size + 2},
	)
	if err != nil {
		return nil, err
	}
	return sdf.Cut3D(block, r3.Vec{Y: face - size, Z: top}, r3.Vec{Y: 1, Z: 1}), nil
}

// leftRimChamfer is frontRimChamfer for a left wall with its inner face at
// x=face, from y0 to y1.
func leftRimChamfer(face, top, size, y0, y1 float64) (sdf.SDF3, error) {
	if y1 <= y0 {
		return nil, fmt.Errorf("no straight left wall to chamfer between y=%g and y=%g", y0, y1)
	}
	block, err := form3.Cuboid(
		r3.Vec{X: face - size - 1, Y: y0, Z: top - size - 1},
		r3.Vec{X: size + 2, Y: y1 - y0, Z: size + 2},
	)
	if err != nil {
		return nil, err
	}
	return sdf.Cut3D(block, r3.Vec{X: face - size, Z: top}, r3.Vec{X: 1, Z: 1}), nil
}

func checkSize(length, width, height, wall float64) error {
	switch {
	case length <= 0 || width <= 0 || height <= 0:
		return fmt.Errorf("bin size must be positive, got %gx%gx%g", length, width, height)
	case wall <= 0:
		return fmt.Errorf("wall thickness must be positive, got %g", wall)
	case 2*wall >= length || 2*wall >= width:
		return fmt.Errorf("walls of %g mm leave no room in a %gx%g bin", wall, length, width)
	}
	return nil
}

// lift moves a solid centered on the XY plane to span z0 to z1.
func lift(s sdf.SDF3, z0, z1 float64) sdf.SDF3 {
	return sdf.Transform3D(s, sdf.Translate3D(r3.Vec{Z: (z0 + z1) / 2}))
}

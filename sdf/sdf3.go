package sdf

import (
	"fmt"
	"math"

	"github.com/someline/someline/internal/d2"
	"github.com/someline/someline/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// SDF3 is a signed distance function over space.
type SDF3 interface {
	// Evaluate returns the distance from p to the surface, negative inside.
	Evaluate(p r3.Vec) float64
	// Bounds returns a box containing the whole solid.
	Bounds() r3.Box
}

type extrude3 struct {
	sdf    SDF2
	height float64
	bb     r3.Box
}

// Extrude3D extrudes an outline to a prism of the given height centered
// on the XY plane.
func Extrude3D(sdf SDF2, height float64) SDF3 {
	switch {
	case sdf == nil:
		panic("nil SDF2 argument")
	case height <= 0:
		return empty3{}
	}
	half := height / 2
	return &extrude3{sdf: sdf, height: half, bb: prismBounds(sdf.Bounds(), -half, half)}
}

func (s *extrude3) Evaluate(p r3.Vec) float64 {
	return math.Max(s.sdf.Evaluate(r2.Vec{X: p.X, Y: p.Y}), math.Abs(p.Z)-s.height)
}

func (s *extrude3) Bounds() r3.Box { return s.bb }

// prismBounds lifts a 2d box to span z0 to z1.
func prismBounds(bb r2.Box, z0, z1 float64) r3.Box {
	return r3.Box{Min: d3.FromR2(bb.Min, z0), Max: d3.FromR2(bb.Max, z1)}
}

type extrudeRounded struct {
	sdf    SDF2
	height float64
	round  float64
	bb     r3.Box
}

// ExtrudeRounded3D extrudes an SDF2 to an SDF3 with rounded edges.
// The height of the extrusion is adjusted for the rounding so the
// result spans the full height. The SDF2 is not modified, so its outline
// grows by round.
func ExtrudeRounded3D(sdf SDF2, height, round float64) SDF3 {
	switch {
	case round == 0:
		return Extrude3D(sdf, height)
	case sdf == nil:
		panic("nil SDF2 argument")
	case height <= 0 || round < 0 || height < 2*round:
		return empty3{}
	}
	core := height/2 - round
	bb := d2.Box(sdf.Bounds()).Enlarge(d2.Elem(2 * round))
	return &extrudeRounded{
		sdf:    sdf,
		height: core,
		round:  round,
		bb:     prismBounds(r2.Box(bb), -height/2, height/2),
	}
}

func (s *extrudeRounded) Evaluate(p r3.Vec) float64 {
	a := s.sdf.Evaluate(r2.Vec{X: p.X, Y: p.Y})
	return roundedExtent(a, math.Abs(p.Z)-s.height) - s.round
}

func (s *extrudeRounded) Bounds() r3.Box { return s.bb }

// roundedExtent joins an outline distance a and a height distance b with
// a round edge where both are positive.
func roundedExtent(a, b float64) float64 {
	if a > 0 && b > 0 {
		return math.Hypot(a, b)
	}
	return math.Max(a, b)
}

// chamferedExtrude3 is a straight extrusion with 45 degree end treatments.
type chamferedExtrude3 struct {
	sdf         SDF2
	height      float64
	bottom, top float64
	bb          r3.Box
}

// ChamferedExtrude3D extrudes an SDF2 centered on the XY plane. A positive
// bottom or top value chamfers the outline edge at that end by a 45 degree
// face of that size. A negative value flares the outline outward by the
// magnitude instead, which leaves a countersink when the result is subtracted.
func ChamferedExtrude3D(sdf SDF2, height, bottom, top float64) SDF3 {
	switch {
	case sdf == nil:
		panic("nil SDF2 argument")
	case height <= 0:
		return empty3{}
	case math.Abs(bottom) > height || math.Abs(top) > height:
		panic("chamfer larger than extrusion height")
	}
	grow := math.Max(0, math.Max(-bottom, -top))
	bb := d2.Box(sdf.Bounds()).Enlarge(d2.Elem(2 * grow))
	return &chamferedExtrude3{
		sdf:    sdf,
		height: height / 2,
		bottom: bottom,
		top:    top,
		bb:     prismBounds(r2.Box(bb), -height/2, height/2),
	}
}

func (s *chamferedExtrude3) Evaluate(p r3.Vec) float64 {
	a := s.sdf.Evaluate(r2.Vec{X: p.X, Y: p.Y})
	d := math.Max(a, math.Abs(p.Z)-s.height)
	// distance of p above the bottom face and below the top face.
	up := p.Z + s.height
	down := s.height - p.Z
	d = endTreatment(d, a, up, down, s.bottom)
	return endTreatment(d, a, down, up, s.top)
}

// endTreatment applies a chamfer (c > 0) or flare (c < 0) to the end of an
// extrusion that lies at distance h from p. h2 is the distance to the opposite end.
func endTreatment(d, a, h, h2, c float64) float64 {
	switch {
	case c > 0:
		return math.Max(d, (a+c-h)*sqrtHalf)
	case c < 0:
		flare := math.Max((a+c+h)*sqrtHalf, math.Max(-h, -h2))
		return math.Min(d, flare)
	}
	return d
}

func (s *chamferedExtrude3) Bounds() r3.Box { return s.bb }

// taper3 is a 45 degree frustum over a 2d outline.
type taper3 struct {
	sdf    SDF2
	height float64
	bb     r3.Box
}

// Taper3D returns the solid between z=0 and z=height whose section at
// height z is sdf grown by z. Intersecting a part with an offset taper
// chamfers its bottom edges. A taper placed at the top of a cavity
// countersinks its rim.
func Taper3D(sdf SDF2, height float64) SDF3 {
	switch {
	case sdf == nil:
		panic("nil SDF2 argument")
	case height <= 0:
		return empty3{}
	}
	bb := d2.Box(sdf.Bounds()).Enlarge(d2.Elem(2 * height))
	return &taper3{sdf: sdf, height: height, bb: prismBounds(r2.Box(bb), 0, height)}
}

func (s *taper3) Evaluate(p r3.Vec) float64 {
	a := s.sdf.Evaluate(r2.Vec{X: p.X, Y: p.Y})
	return math.Max((a-p.Z)*sqrtHalf, math.Max(-p.Z, p.Z-s.height))
}

func (s *taper3) Bounds() r3.Box { return s.bb }

type loft3 struct {
	sdf0, sdf1 SDF2
	height     float64
	round      float64
	bb         r3.Box
}

// Loft3D blends linearly from outline sdf0 at the bottom to sdf1 at the
// top of a solid of the given height centered on the XY plane. Edges are
// rounded by round.
func Loft3D(sdf0, sdf1 SDF2, height, round float64) SDF3 {
	switch {
	case sdf0 == nil || sdf1 == nil:
		panic("nil sdf argument")
	case height <= 0 || round < 0 || height < 2*round:
		return empty3{}
	}
	bb := d2.Box(sdf0.Bounds()).Extend(d2.Box(sdf1.Bounds())).Enlarge(d2.Elem(2 * round))
	return &loft3{
		sdf0:   sdf0,
		sdf1:   sdf1,
		height: height/2 - round,
		round:  round,
		bb:     prismBounds(r2.Box(bb), -height/2, height/2),
	}
}

func (s *loft3) Evaluate(p r3.Vec) float64 {
	q := r2.Vec{X: p.X, Y: p.Y}
	k := Clamp(0.5*p.Z/s.height+0.5, 0, 1)
	a := Mix(s.sdf0.Evaluate(q), s.sdf1.Evaluate(q), k)
	return roundedExtent(a, math.Abs(p.Z)-s.height) - s.round
}

func (s *loft3) Bounds() r3.Box { return s.bb }

type transform3 struct {
	sdf     SDF3
	inverse M44
	bb      r3.Box
}

// Transform3D moves an SDF3 by an affine matrix. Distances are only
// preserved by rigid transforms.
func Transform3D(sdf SDF3, m M44) SDF3 {
	if sdf == nil {
		panic("nil SDF3 argument")
	}
	return &transform3{sdf: sdf, inverse: m.Inverse(), bb: m.MulBox(sdf.Bounds())}
}

func (s *transform3) Evaluate(p r3.Vec) float64 { return s.sdf.Evaluate(s.inverse.MulPosition(p)) }
func (s *transform3) Bounds() r3.Box            { return s.bb }

type scaleUniform3 struct {
	sdf SDF3
	k   float64
	bb  r3.Box
}

// ScaleUniform3D scales an SDF3 by k about the origin keeping distances
// exact.
func ScaleUniform3D(sdf SDF3, k float64) SDF3 {
	switch {
	case sdf == nil:
		panic("nil SDF3 argument")
	case k <= 0:
		panic("scale factor must be positive")
	}
	return &scaleUniform3{sdf: sdf, k: k, bb: Scale3D(d3.Elem(k)).MulBox(sdf.Bounds())}
}

func (s *scaleUniform3) Evaluate(p r3.Vec) float64 { return s.sdf.Evaluate(r3.Scale(1/s.k, p)) * s.k }
func (s *scaleUniform3) Bounds() r3.Box            { return s.bb }

type union3 struct {
	sdf []SDF3
	bbs []d3.Box
	bb  r3.Box
}

// Union3D returns the union of one or more SDF3s. Empty solids are
// dropped. It panics on an empty argument list or a nil argument.
func Union3D(sdf ...SDF3) SDF3 {
	if len(sdf) == 0 {
		panic("union requires at least 1 sdf")
	}
	s := &union3{}
	for i, x := range sdf {
		if x == nil {
			panic(fmt.Sprintf("nil argument %d to Union3D", i))
		}
		// an empty child would always look nearest when pruning
		if _, empty := x.(empty3); !empty {
			s.sdf = append(s.sdf, x)
			s.bbs = append(s.bbs, d3.Box(x.Bounds()))
		}
	}
	switch len(s.sdf) {
	case 0:
		return empty3From(sdf[0])
	case 1:
		return s.sdf[0]
	}
	bb := s.bbs[0]
	for _, b := range s.bbs[1:] {
		bb = bb.Extend(b)
	}
	s.bb = r3.Box(bb)
	return s
}

// Evaluate skips children whose bounding box is farther than the far side
// of the nearest box.
func (s *union3) Evaluate(p r3.Vec) float64 {
	var buf [8]r2.Vec
	ranges := buf[:0]
	nearest := 0
	for i, b := range s.bbs {
		lo, hi := b.MinMaxDist2(p)
		ranges = append(ranges, r2.Vec{X: lo, Y: hi})
		if lo < ranges[nearest].X {
			nearest = i
		}
	}
	d := math.Inf(1)
	for i, x := range s.sdf {
		if i == nearest || d2.Overlap(ranges[nearest], ranges[i]) {
			d = math.Min(d, x.Evaluate(p))
		}
	}
	return d
}

func (s *union3) Bounds() r3.Box { return s.bb }

type diff3 struct {
	s0, s1 SDF3
	bb1    d3.Box
}

// Difference3D returns s0 with s1 removed.
func Difference3D(s0, s1 SDF3) SDF3 {
	if s0 == nil || s1 == nil {
		panic("nil argument to Difference3D")
	}
	return &diff3{s0: s0, s1: s1, bb1: d3.Box(s1.Bounds())}
}

func (s *diff3) Evaluate(p r3.Vec) float64 {
	d0 := s.s0.Evaluate(p)
	// outside the box of s1 its distance is at least the box distance
	if lo, _ := s.bb1.MinMaxDist2(p); lo > 0 {
		return math.Max(d0, -math.Sqrt(lo))
	}
	return math.Max(d0, -s.s1.Evaluate(p))
}

func (s *diff3) Bounds() r3.Box { return s.s0.Bounds() }

type intersection3 struct {
	s0, s1 SDF3
	bb1    d3.Box
	bb     r3.Box
}

// Intersect3D returns the solid common to s0 and s1.
func Intersect3D(s0, s1 SDF3) SDF3 {
	if s0 == nil || s1 == nil {
		panic("nil argument to Intersect3D")
	}
	bb1 := d3.Box(s1.Bounds())
	return &intersection3{s0: s0, s1: s1, bb1: bb1, bb: r3.Box(d3.Box(s0.Bounds()).Intersect(bb1))}
}

func (s *intersection3) Evaluate(p r3.Vec) float64 {
	if lo, _ := s.bb1.MinMaxDist2(p); lo > 0 {
		return math.Max(s.s0.Evaluate(p), math.Sqrt(lo))
	}
	return math.Max(s.s0.Evaluate(p), s.s1.Evaluate(p))
}

func (s *intersection3) Bounds() r3.Box { return s.bb }

type cut3 struct {
	sdf  SDF3
	a, n r3.Vec
}

// Cut3D keeps the part of an SDF3 on the side of the plane through a that
// normal n points to.
func Cut3D(sdf SDF3, a, n r3.Vec) SDF3 {
	if sdf == nil {
		panic("nil SDF3 argument")
	}
	return &cut3{sdf: sdf, a: a, n: r3.Unit(n)}
}

func (s *cut3) Evaluate(p r3.Vec) float64 {
	return math.Max(-r3.Dot(r3.Sub(p, s.a), s.n), s.sdf.Evaluate(p))
}

func (s *cut3) Bounds() r3.Box { return s.sdf.Bounds() }

// Multi3D returns the union of copies of s moved to each position.
func Multi3D(s SDF3, positions d3.Set) SDF3 {
	if s == nil {
		panic("nil sdf argument")
	}
	if len(positions) == 0 {
		return empty3From(s)
	}
	copies := make([]SDF3, len(positions))
	for i, p := range positions {
		copies[i] = Transform3D(s, Translate3D(p))
	}
	return Union3D(copies...)
}

func empty3From(s SDF3) empty3 {
	return empty3{center: d3.Box(s.Bounds()).Center()}
}

// empty3 contains no points.
type empty3 struct {
	center r3.Vec
}

func (e empty3) Evaluate(r3.Vec) float64 { return math.MaxFloat64 }
func (e empty3) Bounds() r3.Box          { return r3.Box{Min: e.center, Max: e.center} }

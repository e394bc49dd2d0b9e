package sdf

import (
	"math"

	"github.com/someline/someline/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// SDF2 is a signed distance function over the plane.
type SDF2 interface {
	// Evaluate returns the distance from p to the outline, negative inside.
	Evaluate(p r2.Vec) float64
	// Bounds returns a box containing the whole shape.
	Bounds() r2.Box
}

type transform2 struct {
	sdf  SDF2
	mInv M33
	bb   r2.Box
}

// Transform2D moves an SDF2 by an affine matrix. Distances are only
// preserved by rigid transforms.
func Transform2D(sdf SDF2, m M33) SDF2 {
	if sdf == nil {
		panic("nil SDF2 argument")
	}
	return &transform2{sdf: sdf, mInv: m.Inverse(), bb: m.MulBox(sdf.Bounds())}
}

func (s *transform2) Evaluate(p r2.Vec) float64 { return s.sdf.Evaluate(s.mInv.MulPosition(p)) }
func (s *transform2) Bounds() r2.Box            { return s.bb }

type union2 struct {
	sdf []SDF2
	bbs []d2.Box
	bb  r2.Box
}

// Union2D returns the union of one or more SDF2s.
func Union2D(sdf ...SDF2) SDF2 {
	if len(sdf) == 0 {
		panic("union requires at least 1 sdf")
	}
	s := &union2{sdf: sdf, bbs: make([]d2.Box, len(sdf))}
	for i, x := range sdf {
		if x == nil {
			panic("nil argument to Union2D")
		}
		s.bbs[i] = d2.Box(x.Bounds())
	}
	bb := s.bbs[0]
	for _, b := range s.bbs[1:] {
		bb = bb.Extend(b)
	}
	s.bb = r2.Box(bb)
	return s
}

// Evaluate skips children whose bounding box is farther than the far side
// of the nearest box.
func (s *union2) Evaluate(p r2.Vec) float64 {
	ranges := make([]r2.Vec, len(s.bbs))
	nearest := 0
	for i, b := range s.bbs {
		ranges[i] = b.MinMaxDist2(p)
		if ranges[i].X < ranges[nearest].X {
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

func (s *union2) Bounds() r2.Box { return s.bb }

type offset2 struct {
	sdf    SDF2
	offset float64
	bb     r2.Box
}

// Offset2D grows an SDF2 outline by offset. A negative offset shrinks it.
func Offset2D(sdf SDF2, offset float64) SDF2 {
	if sdf == nil {
		panic("nil SDF2 argument")
	}
	bb := d2.Box(sdf.Bounds())
	return &offset2{
		sdf:    sdf,
		offset: offset,
		bb:     r2.Box(d2.NewBox2(bb.Center(), r2.Add(bb.Size(), d2.Elem(2*offset)))),
	}
}

func (s *offset2) Evaluate(p r2.Vec) float64 { return s.sdf.Evaluate(p) - s.offset }
func (s *offset2) Bounds() r2.Box            { return s.bb }

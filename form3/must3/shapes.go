// Package must3 has 3d primitive constructors that panic on bad arguments.
package must3

import (
	"math"

	"github.com/someline/someline/internal/d3"
	"github.com/someline/someline/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// box is centered on the origin. half is the half size less the edge
// radius.
type box struct {
	half  r3.Vec
	round float64
}

// Box returns a box centered on the origin with edges rounded by round.
func Box(size r3.Vec, round float64) sdf.SDF3 {
	switch {
	case size.X <= 0 || size.Y <= 0 || size.Z <= 0:
		panic("size <= 0")
	case round < 0:
		panic("round < 0")
	case 2*round > math.Min(size.X, math.Min(size.Y, size.Z)):
		panic("round larger than half the box side")
	}
	return box{half: r3.Sub(r3.Scale(0.5, size), d3.Elem(round)), round: round}
}

func (b box) Evaluate(p r3.Vec) float64 {
	d := r3.Sub(r3.Vec{X: math.Abs(p.X), Y: math.Abs(p.Y), Z: math.Abs(p.Z)}, b.half)
	return r3.Norm(d3.MaxElem(d, r3.Vec{})) + math.Min(d3.Max(d), 0) - b.round
}

func (b box) Bounds() r3.Box {
	h := r3.Add(b.half, d3.Elem(b.round))
	return r3.Box{Min: r3.Scale(-1, h), Max: h}
}

type sphere struct {
	radius float64
}

// Sphere returns a sphere centered on the origin.
func Sphere(radius float64) sdf.SDF3 {
	if radius <= 0 {
		panic("radius <= 0")
	}
	return sphere{radius: radius}
}

func (s sphere) Evaluate(p r3.Vec) float64 { return r3.Norm(p) - s.radius }

func (s sphere) Bounds() r3.Box {
	r := d3.Elem(s.radius)
	return r3.Box{Min: r3.Scale(-1, r), Max: r}
}

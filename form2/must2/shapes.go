// Package must2 has 2d shape constructors that panic on bad arguments.
package must2

import (
	"math"

	"github.com/someline/someline/internal/d2"
	"github.com/someline/someline/sdf"
	"gonum.org/v1/gonum/spatial/r2"
)

type circle struct {
	radius float64
}

// Circle returns a circle centered on the origin.
func Circle(radius float64) sdf.SDF2 {
	if radius <= 0 {
		panic("radius <= 0")
	}
	return circle{radius: radius}
}

func (c circle) Evaluate(p r2.Vec) float64 { return r2.Norm(p) - c.radius }

func (c circle) Bounds() r2.Box {
	r := d2.Elem(c.radius)
	return r2.Box{Min: r2.Scale(-1, r), Max: r}
}

// box is a rectangle around the origin. half is the half size less the
// corner radius.
type box struct {
	half  r2.Vec
	round float64
}

// Box returns a rectangle centered on the origin with corners rounded by
// round.
func Box(size r2.Vec, round float64) sdf.SDF2 {
	switch {
	case size.X <= 0 || size.Y <= 0:
		panic("size <= 0")
	case round < 0:
		panic("round < 0")
	case 2*round > math.Min(size.X, size.Y):
		panic("round larger than half the box side")
	}
	return box{half: r2.Sub(r2.Scale(0.5, size), d2.Elem(round)), round: round}
}

func (b box) Evaluate(p r2.Vec) float64 {
	d := r2.Sub(d2.AbsElem(p), b.half)
	outside := d2.MaxElem(d, r2.Vec{})
	return r2.Norm(outside) + math.Min(math.Max(d.X, d.Y), 0) - b.round
}

func (b box) Bounds() r2.Box {
	h := r2.Add(b.half, d2.Elem(b.round))
	return r2.Box{Min: r2.Scale(-1, h), Max: h}
}

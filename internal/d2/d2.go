// Package d2 has the 2d vector and box helpers gonum's r2 lacks.
package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Box is a 2d bounding box.
type Box r2.Box

// NewBox2 creates a box with a given center and size. Negative sizes
// collapse to zero.
func NewBox2(center, size r2.Vec) Box {
	half := r2.Scale(0.5, MaxElem(size, r2.Vec{}))
	return Box{Min: r2.Sub(center, half), Max: r2.Add(center, half)}
}

// Extend returns the box enclosing a and b.
func (a Box) Extend(b Box) Box {
	return Box{Min: MinElem(a.Min, b.Min), Max: MaxElem(a.Max, b.Max)}
}

func (a Box) Size() r2.Vec   { return r2.Sub(a.Max, a.Min) }
func (a Box) Center() r2.Vec { return r2.Scale(0.5, r2.Add(a.Min, a.Max)) }

// Enlarge grows the box by v, half on each side.
func (a Box) Enlarge(v r2.Vec) Box {
	v = r2.Scale(0.5, v)
	return Box{Min: r2.Sub(a.Min, v), Max: r2.Add(a.Max, v)}
}

// Intersect returns the overlap of two boxes. Disjoint boxes give an
// empty box at the midpoint of the gap.
func (a Box) Intersect(b Box) Box {
	lo, hi := MaxElem(a.Min, b.Min), MinElem(a.Max, b.Max)
	lo.X, hi.X = collapse(lo.X, hi.X)
	lo.Y, hi.Y = collapse(lo.Y, hi.Y)
	return Box{Min: lo, Max: hi}
}

func collapse(lo, hi float64) (float64, float64) {
	if lo > hi {
		mid := (lo + hi) / 2
		return mid, mid
	}
	return lo, hi
}

// MinMaxDist2 returns the squared distances from p to the nearest and the
// farthest point of the box as X and Y. Points inside have X=0.
func (a Box) MinMaxDist2(p r2.Vec) r2.Vec {
	lx, hx := axisDist2(p.X, a.Min.X, a.Max.X)
	ly, hy := axisDist2(p.Y, a.Min.Y, a.Max.Y)
	return r2.Vec{X: lx + ly, Y: hx + hy}
}

// axisDist2 is the squared distance from x to the nearest and farthest
// point of [lo, hi].
func axisDist2(x, lo, hi float64) (near, far float64) {
	var d float64
	switch {
	case x < lo:
		d = lo - x
	case x > hi:
		d = x - hi
	}
	f := math.Max(math.Abs(x-lo), math.Abs(x-hi))
	return d * d, f * f
}

// Overlap reports whether the 1d ranges [a.X, a.Y] and [b.X, b.Y] overlap.
func Overlap(a, b r2.Vec) bool {
	return a.Y >= b.X && b.Y >= a.X
}

// Elem returns a vector with both components set to v.
func Elem(v float64) r2.Vec { return r2.Vec{X: v, Y: v} }

func EqualWithin(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func MinElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

func MaxElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

func AbsElem(a r2.Vec) r2.Vec {
	return r2.Vec{X: math.Abs(a.X), Y: math.Abs(a.Y)}
}

// PolarToXY converts polar to cartesian coordinates.
func PolarToXY(r, theta float64) r2.Vec {
	s, c := math.Sincos(theta)
	return r2.Vec{X: r * c, Y: r * s}
}

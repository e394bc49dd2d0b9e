// Package d3 has the 3d vector and box helpers gonum's r3 lacks.
package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Box is a 3d bounding box.
type Box r3.Box

// CenteredBox creates a box with a given center and size. Negative sizes
// collapse to zero.
func CenteredBox(center, size r3.Vec) Box {
	half := r3.Scale(0.5, MaxElem(size, r3.Vec{}))
	return Box{Min: r3.Sub(center, half), Max: r3.Add(center, half)}
}

// Extend returns the box enclosing a and b.
func (a Box) Extend(b Box) Box {
	return Box{Min: MinElem(a.Min, b.Min), Max: MaxElem(a.Max, b.Max)}
}

func (a Box) Translate(v r3.Vec) Box { return Box{Min: r3.Add(a.Min, v), Max: r3.Add(a.Max, v)} }
func (a Box) Size() r3.Vec           { return r3.Sub(a.Max, a.Min) }
func (a Box) Center() r3.Vec         { return r3.Scale(0.5, r3.Add(a.Min, a.Max)) }

// ScaleAboutCenter scales the box by k keeping its center.
func (a Box) ScaleAboutCenter(k float64) Box {
	return CenteredBox(a.Center(), r3.Scale(k, a.Size()))
}

// Intersect returns the overlap of two boxes. Disjoint boxes give an
// empty box at the midpoint of the gap.
func (a Box) Intersect(b Box) Box {
	lo, hi := MaxElem(a.Min, b.Min), MinElem(a.Max, b.Max)
	mid := r3.Scale(0.5, r3.Add(lo, hi))
	if lo.X > hi.X {
		lo.X, hi.X = mid.X, mid.X
	}
	if lo.Y > hi.Y {
		lo.Y, hi.Y = mid.Y, mid.Y
	}
	if lo.Z > hi.Z {
		lo.Z, hi.Z = mid.Z, mid.Z
	}
	return Box{Min: lo, Max: hi}
}

// MinMaxDist2 returns the squared distances from p to the nearest and the
// farthest point of the box. Points inside are at distance 0.
func (a Box) MinMaxDist2(p r3.Vec) (min, max float64) {
	// per axis gap to the box and reach to its far face
	gap := MaxElem(MaxElem(r3.Sub(a.Min, p), r3.Sub(p, a.Max)), r3.Vec{})
	reach := MaxElem(absElem(r3.Sub(p, a.Min)), absElem(r3.Sub(p, a.Max)))
	return r3.Norm2(gap), r3.Norm2(reach)
}

// Set is a list of positions.
type Set []r3.Vec

// Elem returns a vector with all components set to v.
func Elem(v float64) r3.Vec { return r3.Vec{X: v, Y: v, Z: v} }

// FromR2 lifts a 2d vector to height z.
func FromR2(v r2.Vec, z float64) r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: z} }

func EqualWithin(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func MinElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

func MaxElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

// Max returns the largest component of a.
func Max(a r3.Vec) float64 {
	return math.Max(a.Z, math.Max(a.X, a.Y))
}

func absElem(a r3.Vec) r3.Vec {
	return r3.Vec{X: math.Abs(a.X), Y: math.Abs(a.Y), Z: math.Abs(a.Z)}
}

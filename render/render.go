package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer streams the triangles of a rendered model. ReadTriangles fills dst
// and returns the number of triangles written. It returns io.EOF once the
// model has been fully read.
type Renderer interface {
	ReadTriangles(dst []Triangle3) (int, error)
}

// Triangle3 is a 3D triangle. Vertices are ordered counter-clockwise
// when seen from outside the model.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the normal vector to the plane defined by the 3D triangle.
// Collinear vertices give the zero vector.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	n := r3.Cross(e1, e2)
	if l := r3.Norm(n); l > 0 {
		return r3.Scale(1/l, n)
	}
	return r3.Vec{}
}

// Bounds returns the bounding box of a triangle set.
func Bounds(model []Triangle3) r3.Box {
	if len(model) == 0 {
		return r3.Box{}
	}
	bb := r3.Box{Min: model[0].V[0], Max: model[0].V[0]}
	for _, t := range model {
		for _, v := range t.V {
			bb.Min = r3.Vec{X: math.Min(bb.Min.X, v.X), Y: math.Min(bb.Min.Y, v.Y), Z: math.Min(bb.Min.Z, v.Z)}
			bb.Max = r3.Vec{X: math.Max(bb.Max.X, v.X), Y: math.Max(bb.Max.Y, v.Y), Z: math.Max(bb.Max.Z, v.Z)}
		}
	}
	return bb
}

package render

import (
	"github.com/fogleman/simplify"
	"gonum.org/v1/gonum/spatial/r3"
)

// Simplify reduces the triangle count of model to about factor times the
// original count with quadric error decimation. A factor outside (0, 1)
// returns model unchanged.
func Simplify(model []Triangle3, factor float64) []Triangle3 {
	if factor <= 0 || factor >= 1 || len(model) == 0 {
		return model
	}
	tris := make([]*simplify.Triangle, len(model))
	for i, t := range model {
		tris[i] = simplify.NewTriangle(toSimplify(t.V[0]), toSimplify(t.V[1]), toSimplify(t.V[2]))
	}
	out := simplify.NewMesh(tris).Simplify(factor)
	result := make([]Triangle3, 0, len(out.Triangles))
	for _, t := range out.Triangles {
		tri := Triangle3{V: [3]r3.Vec{fromSimplify(t.V1), fromSimplify(t.V2), fromSimplify(t.V3)}}
		if tri.Normal() != (r3.Vec{}) {
			result = append(result, tri)
		}
	}
	return result
}

func toSimplify(v r3.Vec) simplify.Vector {
	return simplify.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

func fromSimplify(v simplify.Vector) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

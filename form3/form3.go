// Package form3 builds 3d primitives and reports bad arguments as errors.
package form3

import (
	"github.com/someline/someline/form3/must3"
	"github.com/someline/someline/internal/shape"
	"github.com/someline/someline/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// Box returns a box centered on the origin with edges rounded by round.
func Box(size r3.Vec, round float64) (sdf.SDF3, error) {
	return shape.Guard("box", func() sdf.SDF3 { return must3.Box(size, round) })
}

// Cuboid returns a box with its minimum corner at min.
func Cuboid(min, size r3.Vec) (sdf.SDF3, error) {
	b, err := Box(size, 0)
	if err != nil {
		return nil, err
	}
	center := r3.Add(min, r3.Scale(0.5, size))
	return sdf.Transform3D(b, sdf.Translate3D(center)), nil
}

// Sphere returns a sphere centered on the origin.
func Sphere(radius float64) (sdf.SDF3, error) {
	return shape.Guard("sphere", func() sdf.SDF3 { return must3.Sphere(radius) })
}

// Package form2 builds 2d outlines and reports bad arguments as errors.
// The must2 package has the same shapes panicking instead.
package form2

import (
	"github.com/someline/someline/form2/must2"
	"github.com/someline/someline/internal/shape"
	"github.com/someline/someline/sdf"
	"gonum.org/v1/gonum/spatial/r2"
)

// Circle returns a circle centered on the origin.
func Circle(radius float64) (sdf.SDF2, error) {
	return shape.Guard("circle", func() sdf.SDF2 { return must2.Circle(radius) })
}

// Box returns a rectangle centered on the origin with corners rounded by
// round.
func Box(size r2.Vec, round float64) (sdf.SDF2, error) {
	return shape.Guard("box", func() sdf.SDF2 { return must2.Box(size, round) })
}

// Rect returns a rounded rectangle with its minimum corner at min.
func Rect(min, size r2.Vec, round float64) (sdf.SDF2, error) {
	b, err := Box(size, round)
	if err != nil {
		return nil, err
	}
	center := r2.Add(min, r2.Scale(0.5, size))
	return sdf.Transform2D(b, sdf.Translate2D(center)), nil
}

// Polygon returns the closed outline through vertex.
func Polygon(vertex []r2.Vec) (sdf.SDF2, error) {
	return shape.Guard("polygon", func() sdf.SDF2 { return must2.Polygon(vertex) })
}

// NewPolygon returns an empty polygon builder.
func NewPolygon() *must2.PolygonBuilder {
	return must2.NewPolygon()
}

// BuildPolygon expands the rounded and chamfered corners of p and returns
// the outline.
func BuildPolygon(p *must2.PolygonBuilder) (sdf.SDF2, error) {
	return shape.Guard("polygon", func() sdf.SDF2 { return must2.Polygon(p.Vertices()) })
}

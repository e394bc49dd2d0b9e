package sdf

import (
	"math"

	"github.com/someline/someline/internal/d2"
	"github.com/someline/someline/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// M44 is a 4x4 matrix used for affine transformations of 3d space.
// Elements are stored in row-major order.
type M44 struct {
	x00, x01, x02, x03 float64
	x10, x11, x12, x13 float64
	x20, x21, x22, x23 float64
	x30, x31, x32, x33 float64
}

// M33 is a 3x3 matrix used for affine transformations of 2d space.
type M33 struct {
	x00, x01, x02 float64
	x10, x11, x12 float64
	x20, x21, x22 float64
}

// Identity3D returns the 4x4 identity matrix.
func Identity3D() M44 {
	return M44{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Identity2D returns the 3x3 identity matrix.
func Identity2D() M33 {
	return M33{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Translate3D returns a 4x4 translation matrix.
func Translate3D(v r3.Vec) M44 {
	return M44{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	}
}

// Translate2D returns a 3x3 translation matrix.
func Translate2D(v r2.Vec) M33 {
	return M33{
		1, 0, v.X,
		0, 1, v.Y,
		0, 0, 1,
	}
}

// Scale3D returns a 4x4 scaling matrix.
// Scaling does not preserve distance. See: ScaleUniform3D()
func Scale3D(v r3.Vec) M44 {
	return M44{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// Scale2D returns a 3x3 scaling matrix.
// Scaling does not preserve distance. See: ScaleUniform2D().
func Scale2D(v r2.Vec) M33 {
	return M33{
		v.X, 0, 0,
		0, v.Y, 0,
		0, 0, 1,
	}
}

// Rotate3D returns an orthographic 4x4 rotation matrix (right hand rule).
func Rotate3D(v r3.Vec, a float64) M44 {
	v = r3.Unit(v)
	s := math.Sin(a)
	c := math.Cos(a)
	m := 1 - c
	return M44{
		m*v.X*v.X + c, m*v.X*v.Y - v.Z*s, m*v.Z*v.X + v.Y*s, 0,
		m*v.X*v.Y + v.Z*s, m*v.Y*v.Y + c, m*v.Y*v.Z - v.X*s, 0,
		m*v.Z*v.X - v.Y*s, m*v.Y*v.Z + v.X*s, m*v.Z*v.Z + c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a 4x4 matrix with rotation about the Z axis.
func RotateZ(a float64) M44 {
	return Rotate3D(r3.Vec{Z: 1}, a)
}

// Rotate returns an orthographic 3x3 rotation matrix (right hand rule).
func Rotate(a float64) M33 {
	s := math.Sin(a)
	c := math.Cos(a)
	return M33{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// MirrorXY returns a 4x4 matrix with mirroring across the XY plane.
func MirrorXY() M44 {
	return M44{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, -1, 0,
		0, 0, 0, 1,
	}
}

// MirrorXZ returns a 4x4 matrix with mirroring across the XZ plane.
func MirrorXZ() M44 {
	return M44{
		1, 0, 0, 0,
		0, -1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// MirrorYZ returns a 4x4 matrix with mirroring across the YZ plane.
func MirrorYZ() M44 {
	return M44{
		-1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// PlaneYZ maps local coordinates of a sketch drawn on the YZ plane to world
// coordinates. Local X and Y map to world Y and Z, and local Z (the sketch
// normal, the extrusion direction) maps to world X.
func PlaneYZ() M44 {
	return M44{
		0, 0, 1, 0,
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	}
}

// PlaneXZ maps local coordinates of a sketch drawn on the XZ plane to world
// coordinates. Local X maps to world X, local Y to world Z and the sketch
// normal to world -Y.
func PlaneXZ() M44 {
	return M44{
		1, 0, 0, 0,
		0, 0, -1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	}
}

// Equals tests the equality of 4x4 matrices.
func (a M44) Equals(b M44, tol float64) bool {
	return (math.Abs(a.x00-b.x00) < tol &&
		math.Abs(a.x01-b.x01) < tol &&
		math.Abs(a.x02-b.x02) < tol &&
		math.Abs(a.x03-b.x03) < tol &&
		math.Abs(a.x10-b.x10) < tol &&
		math.Abs(a.x11-b.x11) < tol &&
		math.Abs(a.x12-b.x12) < tol &&
		math.Abs(a.x13-b.x13) < tol &&
		math.Abs(a.x20-b.x20) < tol &&
		math.Abs(a.x21-b.x21) < tol &&
		math.Abs(a.x22-b.x22) < tol &&
		math.Abs(a.x23-b.x23) < tol &&
		math.Abs(a.x30-b.x30) < tol &&
		math.Abs(a.x31-b.x31) < tol &&
		math.Abs(a.x32-b.x32) < tol &&
		math.Abs(a.x33-b.x33) < tol)
}

// MulPosition multiplies a r3.Vec position with a rotate/translate matrix.
func (a M44) MulPosition(b r3.Vec) r3.Vec {
	return r3.Vec{
		X: a.x00*b.X + a.x01*b.Y + a.x02*b.Z + a.x03,
		Y: a.x10*b.X + a.x11*b.Y + a.x12*b.Z + a.x13,
		Z: a.x20*b.X + a.x21*b.Y + a.x22*b.Z + a.x23,
	}
}

// MulPosition multiplies a r2.Vec position with a rotate/translate matrix.
func (a M33) MulPosition(b r2.Vec) r2.Vec {
	return r2.Vec{
		X: a.x00*b.X + a.x01*b.Y + a.x02,
		Y: a.x10*b.X + a.x11*b.Y + a.x12,
	}
}

// MulBox rotates/translates a 3d bounding box and resizes for axis-alignment.
func (a M44) MulBox(box r3.Box) r3.Box {
	r := r3.Vec{X: a.x00, Y: a.x10, Z: a.x20}
	u := r3.Vec{X: a.x01, Y: a.x11, Z: a.x21}
	b := r3.Vec{X: a.x02, Y: a.x12, Z: a.x22}
	t := r3.Vec{X: a.x03, Y: a.x13, Z: a.x23}
	xa := r3.Scale(box.Min.X, r)
	xb := r3.Scale(box.Max.X, r)
	ya := r3.Scale(box.Min.Y, u)
	yb := r3.Scale(box.Max.Y, u)
	za := r3.Scale(box.Min.Z, b)
	zb := r3.Scale(box.Max.Z, b)
	xa, xb = d3.MinElem(xa, xb), d3.MaxElem(xa, xb)
	ya, yb = d3.MinElem(ya, yb), d3.MaxElem(ya, yb)
	za, zb = d3.MinElem(za, zb), d3.MaxElem(za, zb)
	min := r3.Add(r3.Add(xa, ya), r3.Add(za, t))
	max := r3.Add(r3.Add(xb, yb), r3.Add(zb, t))
	return r3.Box{Min: min, Max: max}
}

// MulBox rotates/translates a 2d bounding box and resizes for axis-alignment.
func (a M33) MulBox(box r2.Box) r2.Box {
	r := r2.Vec{X: a.x00, Y: a.x10}
	u := r2.Vec{X: a.x01, Y: a.x11}
	t := r2.Vec{X: a.x02, Y: a.x12}
	xa := r2.Scale(box.Min.X, r)
	xb := r2.Scale(box.Max.X, r)
	ya := r2.Scale(box.Min.Y, u)
	yb := r2.Scale(box.Max.Y, u)
	xa, xb = d2.MinElem(xa, xb), d2.MaxElem(xa, xb)
	ya, yb = d2.MinElem(ya, yb), d2.MaxElem(ya, yb)
	min := r2.Add(r2.Add(xa, ya), t)
	max := r2.Add(r2.Add(xb, yb), t)
	return r2.Box{Min: min, Max: max}
}

// Mul multiplies 4x4 matrices.
func (a M44) Mul(b M44) M44 {
	m := M44{}
	m.x00 = a.x00*b.x00 + a.x01*b.x10 + a.x02*b.x20 + a.x03*b.x30
	m.x10 = a.x10*b.x00 + a.x11*b.x10 + a.x12*b.x20 + a.x13*b.x30
	m.x20 = a.x20*b.x00 + a.x21*b.x10 + a.x22*b.x20 + a.x23*b.x30
	m.x30 = a.x30*b.x00 + a.x31*b.x10 + a.x32*b.x20 + a.x33*b.x30
	m.x01 = a.x00*b.x01 + a.x01*b.x11 + a.x02*b.x21 + a.x03*b.x31
	m.x11 = a.x10*b.x01 + a.x11*b.x11 + a.x12*b.x21 + a.x13*b.x31
	m.x21 = a.x20*b.x01 + a.x21*b.x11 + a.x22*b.x21 + a.x23*b.x31
	m.x31 = a.x30*b.x01 + a.x31*b.x11 + a.x32*b.x21 + a.x33*b.x31
	m.x02 = a.x00*b.x02 + a.x01*b.x12 + a.x02*b.x22 + a.x03*b.x32
	m.x12 = a.x10*b.x02 + a.x11*b.x12 + a.x12*b.x22 + a.x13*b.x32
	m.x22 = a.x20*b.x02 + a.x21*b.x12 + a.x22*b.x22 + a.x23*b.x32
	m.x32 = a.x30*b.x02 + a.x31*b.x12 + a.x32*b.x22 + a.x33*b.x32
	m.x03 = a.x00*b.x03 + a.x01*b.x13 + a.x02*b.x23 + a.x03*b.x33
	m.x13 = a.x10*b.x03 + a.x11*b.x13 + a.x12*b.x23 + a.x13*b.x33
	m.x23 = a.x20*b.x03 + a.x21*b.x13 + a.x22*b.x23 + a.x23*b.x33
	m.x33 = a.x30*b.x03 + a.x31*b.x13 + a.x32*b.x23 + a.x33*b.x33
	return m
}

// Mul multiplies 3x3 matrices.
func (a M33) Mul(b M33) M33 {
	m := M33{}
	m.x00 = a.x00*b.x00 + a.x01*b.x10 + a.x02*b.x20
	m.x10 = a.x10*b.x00 + a.x11*b.x10 + a.x12*b.x20
	m.x20 = a.x20*b.x00 + a.x21*b.x10 + a.x22*b.x20
	m.x01 = a.x00*b.x01 + a.x01*b.x11 + a.x02*b.x21
	m.x11 = a.x10*b.x01 + a.x11*b.x11 + a.x12*b.x21
	m.x21 = a.x20*b.x01 + a.x21*b.x11 + a.x22*b.x21
	m.x02 = a.x00*b.x02 + a.x01*b.x12 + a.x02*b.x22
	m.x12 = a.x10*b.x02 + a.x11*b.x12 + a.x12*b.x22
	m.x22 = a.x20*b.x02 + a.x21*b.x12 + a.x22*b.x22
	return m
}

// Determinant returns the determinant of a 4x4 matrix.
func (a M44) Determinant() float64 {
	return (a.x00*a.x11*a.x22*a.x33 - a.x00*a.x11*a.x23*a.x32 +
		a.x00*a.x12*a.x23*a.x31 - a.x00*a.x12*a.x21*a.x33 +
		a.x00*a.x13*a.x21*a.x32 - a.x00*a.x13*a.x22*a.x31 -
		a.x01*a.x12*a.x23*a.x30 + a.x01*a.x12*a.x20*a.x33 -
		a.x01*a.x13*a.x20*a.x32 + a.x01*a.x13*a.x22*a.x30 -
		a.x01*a.x10*a.x22*a.x33 + a.x01*a.x10*a.x23*a.x32 +
		a.x02*a.x13*a.x20*a.x31 - a.x02*a.x13*a.x21*a.x30 +
		a.x02*a.x10*a.x21*a.x33 - a.x02*a.x10*a.x23*a.x31 +
		a.x02*a.x11*a.x23*a.x30 - a.x02*a.x11*a.x20*a.x33 -
		a.x03*a.x10*a.x21*a.x32 + a.x03*a.x10*a.x22*a.x31 -
		a.x03*a.x11*a.x22*a.x30 + a.x03*a.x11*a.x20*a.x32 -
		a.x03*a.x12*a.x20*a.x31 + a.x03*a.x12*a.x21*a.x30)
}

// Determinant returns the determinant of a 3x3 matrix.
func (a M33) Determinant() float64 {
	return (a.x00*(a.x11*a.x22-a.x12*a.x21) -
		a.x01*(a.x10*a.x22-a.x12*a.x20) +
		a.x02*(a.x10*a.x21-a.x11*a.x20))
}

// Inverse returns the inverse of a 4x4 matrix.
func (a M44) Inverse() M44 {
	m := M44{}
	d := 1 / a.Determinant()
	m.x00 = (a.x12*a.x23*a.x31 - a.x13*a.x22*a.x31 + a.x13*a.x21*a.x32 - a.x11*a.x23*a.x32 - a.x12*a.x21*a.x33 + a.x11*a.x22*a.x33) * d
	m.x01 = (a.x03*a.x22*a.x31 - a.x02*a.x23*a.x31 - a.x03*a.x21*a.x32 + a.x01*a.x23*a.x32 + a.x02*a.x21*a.x33 - a.x01*a.x22*a.x33) * d
	m.x02 = (a.x02*a.x13*a.x31 - a.x03*a.x12*a.x31 + a.x03*a.x11*a.x32 - a.x01*a.x13*a.x32 - a.x02*a.x11*a.x33 + a.x01*a.x12*a.x33) * d
	m.x03 = (a.x03*a.x12*a.x21 - a.x02*a.x13*a.x21 - a.x03*a.x11*a.x22 + a.x01*a.x13*a.x22 + a.x02*a.x11*a.x23 - a.x01*a.x12*a.x23) * d
	m.x10 = (a.x13*a.x22*a.x30 - a.x12*a.x23*a.x30 - a.x13*a.x20*a.x32 + a.x10*a.x23*a.x32 + a.x12*a.x20*a.x33 - a.x10*a.x22*a.x33) * d
	m.x11 = (a.x02*a.x23*a.x30 - a.x03*a.x22*a.x30 + a.x03*a.x20*a.x32 - a.x00*a.x23*a.x32 - a.x02*a.x20*a.x33 + a.x00*a.x22*a.x33) * d
	m.x12 = (a.x03*a.x12*a.x30 - a.x02*a.x13*a.x30 - a.x03*a.x10*a.x32 + a.x00*a.x13*a.x32 + a.x02*a.x10*a.x33 - a.x00*a.x12*a.x33) * d
	m.x13 = (a.x02*a.x13*a.x20 - a.x03*a.x12*a.x20 + a.x03*a.x10*a.x22 - a.x00*a.x13*a.x22 - a.x02*a.x10*a.x23 + a.x00*a.x12*a.x23) * d
	m.x20 = (a.x11*a.x23*a.x30 - a.x13*a.x21*a.x30 + a.x13*a.x20*a.x31 - a.x10*a.x23*a.x31 - a.x11*a.x20*a.x33 + a.x10*a.x21*a.x33) * d
	m.x21 = (a.x03*a.x21*a.x30 - a.x01*a.x23*a.x30 - a.x03*a.x20*a.x31 + a.x00*a.x23*a.x31 + a.x01*a.x20*a.x33 - a.x00*a.x21*a.x33) * d
	m.x22 = (a.x01*a.x13*a.x30 - a.x03*a.x11*a.x30 + a.x03*a.x10*a.x31 - a.x00*a.x13*a.x31 - a.x01*a.x10*a.x33 + a.x00*a.x11*a.x33) * d
	m.x23 = (a.x03*a.x11*a.x20 - a.x01*a.x13*a.x20 - a.x03*a.x10*a.x21 + a.x00*a.x13*a.x21 + a.x01*a.x10*a.x23 - a.x00*a.x11*a.x23) * d
	m.x30 = (a.x12*a.x21*a.x30 - a.x11*a.x22*a.x30 - a.x12*a.x20*a.x31 + a.x10*a.x22*a.x31 + a.x11*a.x20*a.x32 - a.x10*a.x21*a.x32) * d
	m.x31 = (a.x01*a.x22*a.x30 - a.x02*a.x21*a.x30 + a.x02*a.x20*a.x31 - a.x00*a.x22*a.x31 - a.x01*a.x20*a.x32 + a.x00*a.x21*a.x32) * d
	m.x32 = (a.x02*a.x11*a.x30 - a.x01*a.x12*a.x30 - a.x02*a.x10*a.x31 + a.x00*a.x12*a.x31 + a.x01*a.x10*a.x32 - a.x00*a.x11*a.x32) * d
	m.x33 = (a.x01*a.x12*a.x20 - a.x02*a.x11*a.x20 + a.x02*a.x10*a.x21 - a.x00*a.x12*a.x21 - a.x01*a.x10*a.x22 + a.x00*a.x11*a.x22) * d
	return m
}

// Inverse returns the inverse of a 3x3 matrix.
func (a M33) Inverse() M33 {
	m := M33{}
	d := 1 / a.Determinant()
	m.x00 = (a.x11*a.x22 - a.x12*a.x21) * d
	m.x01 = (a.x21*a.x02 - a.x01*a.x22) * d
	m.x02 = (a.x01*a.x12 - a.x11*a.x02) * d
	m.x10 = (a.x12*a.x20 - a.x22*a.x10) * d
	m.x11 = (a.x22*a.x00 - a.x20*a.x02) * d
	m.x12 = (a.x02*a.x10 - a.x12*a.x00) * d
	m.x20 = (a.x10*a.x21 - a.x20*a.x11) * d
	m.x21 = (a.x20*a.x01 - a.x00*a.x21) * d
	m.x22 = (a.x00*a.x11 - a.x01*a.x10) * d
	return m
}

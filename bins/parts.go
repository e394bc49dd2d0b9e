package bins

import (
	"fmt"
	"math"

	"github.com/someline/someline/form2"
	"github.com/someline/someline/internal/d3"
	"github.com/someline/someline/sdf"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// DefaultHandleThickness is the lip thickness of a handle.
	DefaultHandleThickness = 0.8
	// DefaultCutoutWall is the pad thickness around a wall cutout.
	DefaultCutoutWall = 0.8

	handleDepth  = 7.0 // reach of the handle into the bin
	handleDrop   = 9.0 // height of the handle below its lip
	padLift      = 1.0 // pads stop short of the floor
	pocketMargin = 0.001
	filletFacets = 8
)

// Handle returns a grip lip hanging from the top of a back wall. The
// profile has a flat top of the given thickness that reaches 7 mm into the
// bin and a sloped underside meeting the wall 9 mm further down. The handle
// runs from x=0 to x=length with its top back edge on the X axis.
func Handle(length, thickness float64) (sdf.SDF3, error) {
	if length <= 0 || thickness <= 0 {
		return nil, fmt.Errorf("invalid handle %gx%g", length, thickness)
	}
	profile, err := form2.Polygon([]r2.Vec{
		{X: 0, Y: 0},
		{X: 0, Y: -handleDrop - thickness},
		{X: -handleDepth, Y: -thickness},
		{X: -handleDepth, Y: 0},
	})
	if err != nil {
		return nil, fmt.Errorf("handle profile: %w", err)
	}
	return OnPlaneYZ(profile, length), nil
}

// WallCutoutPocket returns a slot through a front wall. Its section is a
// trapezoid outer wide at y=0 narrowing to inner at y=depth. The slot
// rises height+depth from z=0 and its top back edge is chamfered so the
// slot ends in a 45 degree ramp.
func WallCutoutPocket(outer, inner, depth, height float64) (sdf.SDF3, error) {
	section, err := pocketSection(outer, inner, depth, height)
	if err != nil {
		return nil, err
	}
	top := height + depth
	s := lift(sdf.Extrude3D(section, top), 0, top)
	return sdf.Cut3D(s, r3.Vec{Y: pocketMargin, Z: top}, r3.Vec{Y: -1, Z: -1}), nil
}

// WallCutout returns the pocket of WallCutoutPocket and a pad that wraps it
// with wall thickness material. The pad is open at the front and stops 1 mm
// above the floor. Add the pad to a bin before cutting the pocket.
func WallCutout(outer, inner, depth, height, wall float64) (pad, pocket sdf.SDF3, err error) {
	if wall <= 0 {
		return nil, nil, fmt.Errorf("cutout wall must be positive, got %g", wall)
	}
	pocket, err = WallCutoutPocket(outer, inner, depth, height)
	if err != nil {
		return nil, nil, err
	}
	section, _ := pocketSection(outer, inner, depth, height)
	top := height + depth + wall
	if top <= padLift {
		return nil, nil, fmt.Errorf("cutout of height %g is too short for a pad", height)
	}
	pad = lift(sdf.Extrude3D(sdf.Offset2D(section, wall), top-padLift), padLift, top)
	// the chamfer face of the pocket moved out by wall
	ramp := r3.Vec{Y: pocketMargin + wall*math.Sqrt2, Z: height + depth}
	pad = sdf.Cut3D(pad, ramp, r3.Vec{Y: -1, Z: -1})
	pad = sdf.Cut3D(pad, r3.Vec{}, r3.Vec{Y: 1})
	return pad, pocket, nil
}

func pocketSection(outer, inner, depth, height float64) (sdf.SDF2, error) {
	if inner <= 0 || outer < inner || depth <= pocketMargin || height <= 0 {
		return nil, fmt.Errorf("invalid wall cutout outer=%g inner=%g depth=%g height=%g", outer, inner, depth, height)
	}
	return form2.Polygon([]r2.Vec{
		{X: -outer / 2, Y: 0},
		{X: -inner / 2, Y: depth},
		{X: inner / 2, Y: depth},
		{X: outer / 2, Y: 0},
	})
}

// Hinge is a slot for a lid pin cut down from the top of a wall.
type Hinge struct {
	TopWidth    float64 // width at the rim
	BottomWidth float64 // width at the bottom of the slot
	Depth       float64
	Length      float64 // along X
}

// HingeCutout returns the slot centered on y=0 running from x=0 to
// x=Length with its top at z=0. The bottom corners are rounded to a third
// of the bottom width.
func HingeCutout(h Hinge) (sdf.SDF3, error) {
	if h.TopWidth <= 0 || h.BottomWidth <= 0 || h.Depth <= 0 || h.Length <= 0 {
		return nil, fmt.Errorf("invalid hinge %+v", h)
	}
	r := h.BottomWidth / 3
	p := form2.NewPolygon()
	p.Add(-h.BottomWidth/2, -h.Depth).Smooth(r, filletFacets)
	p.Add(-h.TopWidth/2, 0)
	p.Add(h.TopWidth/2, 0)
	p.Add(h.BottomWidth/2, -h.Depth).Smooth(r, filletFacets)
	p.Close()
	profile, err := form2.BuildPolygon(p)
	if err != nil {
		return nil, fmt.Errorf("hinge profile: %w", err)
	}
	return OnPlaneYZ(profile, h.Length), nil
}

// OnPlaneYZ extrudes a profile drawn on the YZ plane along +X.
func OnPlaneYZ(profile sdf.SDF2, length float64) sdf.SDF3 {
	m := sdf.PlaneYZ().Mul(sdf.Translate3D(r3.Vec{Z: length / 2}))
	return sdf.Transform3D(sdf.Extrude3D(profile, length), m)
}

// OnPlaneXZ extrudes a profile drawn on the XZ plane symmetrically along Y.
func OnPlaneXZ(profile sdf.SDF2, width float64) sdf.SDF3 {
	return sdf.Transform3D(sdf.Extrude3D(profile, width), sdf.PlaneXZ())
}

// Move translates s by v.
func Move(s sdf.SDF3, v r3.Vec) sdf.SDF3 {
	return sdf.Transform3D(s, sdf.Translate3D(v))
}

// Mirror returns s together with its mirror image across the plane
// y=width/2, the middle of a bin of that width.
func Mirror(s sdf.SDF3, width float64) sdf.SDF3 {
	m := sdf.Translate3D(r3.Vec{Y: width}).Mul(sdf.MirrorXZ())
	return sdf.Union3D(s, sdf.Transform3D(s, m))
}

// FlipX mirrors s across the YZ plane.
func FlipX(s sdf.SDF3) sdf.SDF3 {
	return sdf.Transform3D(s, sdf.MirrorYZ())
}

// Rotate180 turns s half a turn about the Z axis.
func Rotate180(s sdf.SDF3) sdf.SDF3 {
	return sdf.Transform3D(s, sdf.RotateZ(math.Pi))
}

// Row returns n positions spaced step apart along X starting at start.
func Row(start r3.Vec, step float64, n int) []r3.Vec {
	if n <= 0 {
		return nil
	}
	at := make([]r3.Vec, n)
	for i := range at {
		at[i] = r3.Add(start, r3.Vec{X: float64(i) * step})
	}
	return at
}

// Place returns s copied to every position.
func Place(s sdf.SDF3, at []r3.Vec) sdf.SDF3 {
	return sdf.Multi3D(s, d3.Set(at))
}

package someline15

import (
	"github.com/someline/someline/bins"
	"github.com/someline/someline/form2"
	"github.com/someline/someline/sdf"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	capLength = 21.6
	capWidth  = 18.5
	capHeight = 5.2

	pinRadius = 2.3 / 2
	pinZ      = 2.5
	pinX      = 2.2
	capWall   = 1.2

	through = 200.0 // extrusion length of cuts through the whole cap
	facets  = 8
)

// MakeCap returns the clip that holds a lid on a bin. It is a block with
// rounded front corners, a slot for the hinge pin, a hollow underside with
// grooves and a snap hook.
func MakeCap() (sdf.SDF3, error) {
	outline := form2.NewPolygon()
	outline.Add(0, -capWidth/2)
	outline.Add(capLength, -capWidth/2).Smooth(1.5, facets)
	outline.Add(capLength, capWidth/2).Smooth(1.5, facets)
	outline.Add(0, capWidth/2)
	outline.Close()
	top, err := form2.BuildPolygon(outline)
	if err != nil {
		return nil, err
	}
	body := bins.Move(sdf.Extrude3D(top, capHeight), r3.Vec{Z: capHeight / 2})
	// Only the back and front bottom edges are chamfered, by 1 and 0.6 mm.
	body = sdf.Cut3D(body, r3.Vec{X: 1}, r3.Vec{X: 1, Z: 1})
	body = sdf.Cut3D(body, r3.Vec{X: capLength - 0.6}, r3.Vec{X: -1, Z: 1})

	slab := form2.NewPolygon()
	slab.Add(1, 4.2).Chamfer(0.5)
	slab.Add(1+capLength, 4.2).Chamfer(0.5)
	slab.Add(1+capLength, 7.2).Chamfer(0.5)
	slab.Add(1, 7.2).Chamfer(0.5)
	slab.Close()
	slabCut, err := form2.BuildPolygon(slab)
	if err != nil {
		return nil, err
	}

	pin, err := form2.Circle(pinRadius)
	if err != nil {
		return nil, err
	}
	slot, err := form2.Rect(r2.Vec{X: pinX - 1.7/2, Y: pinZ}, r2.Vec{X: 1.7, Y: 3}, 0)
	if err != nil {
		return nil, err
	}
	keyhole := sdf.Union2D(sdf.Transform2D(pin, sdf.Translate2D(r2.Vec{X: pinX, Y: pinZ})), slot)

	hollow := form2.NewPolygon()
	hollowWidth := capWidth - 2*capWall
	hollow.Add(pinX, -hollowWidth/2)
	hollow.Add(capLength-capWall, -hollowWidth/2).Smooth(0.2, facets)
	hollow.Add(capLength-capWall, hollowWidth/2).Smooth(0.2, facets)
	hollow.Add(pinX, hollowWidth/2)
	hollow.Close()
	hollowSection, err := form2.BuildPolygon(hollow)
	if err != nil {
		return nil, err
	}
	floor := pinZ - pinRadius
	underside := bins.Move(sdf.Extrude3D(hollowSection, 10), r3.Vec{Z: floor + 5})

	groove, err := form2.Polygon([]r2.Vec{{X: 0, Y: 0}, {X: 0.4, Y: 0.6}, {X: 1.4, Y: 0.6}, {X: 1.8, Y: 0}})
	if err != nil {
		return nil, err
	}
	grooves := bins.Place(bins.OnPlaneXZ(groove, 20), bins.Row(r3.Vec{X: 9}, 3, 3))

	hook := form2.NewPolygon()
	hook.Add(0, 0)
	hook.Add(0, 0.48)
	hook.Add(0.8, 0.85)
	hook.Add(0.8, 1.85)
	hook.Add(0, 2.22)
	hook.Add(0, 2.9).Chamfer(0.2)
	hook.Add(3, 2.9)
	hook.Add(5, 0)
	hook.Close()
	hookSection, err := form2.BuildPolygon(hook)
	if err != nil {
		return nil, err
	}
	clip := bins.Move(bins.OnPlaneXZ(hookSection, 8), r3.Vec{X: 12.2, Z: floor})

	cuts := sdf.Union3D(
		bins.OnPlaneXZ(slabCut, through),
		bins.OnPlaneXZ(keyhole, through),
		underside,
		grooves,
	)
	return sdf.Union3D(sdf.Difference3D(body, cuts), clip), nil
}

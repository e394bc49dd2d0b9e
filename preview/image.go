// Package preview draws placed parts as shaded images and as 2D layout
// diagrams.
package preview

import (
	"errors"
	"image"
	"image/color"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/someline/someline/internal/d3"
	"github.com/someline/someline/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// Part is a rendered model ready to be drawn.
type Part struct {
	Name  string
	Color color.Color
	Model []render.Triangle3
}

// View places the camera relative to the drawn parts, which are fit in a
// bi-unit cube centered at the origin.
type View struct {
	// what position (point) to look at
	LookAt r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	Eye       r3.Vec
	Near, Far float64
	// vertical field of view in degrees
	FOV float64
}

// IsoView looks at the parts from the front left corner above them.
var IsoView = View{
	Up:   r3.Vec{Z: 1},
	Eye:  r3.Vec{X: -1.6, Y: -2.4, Z: 2},
	Near: 1,
	Far:  10,
	FOV:  30,
}

// Options configures Render.
type Options struct {
	Width, Height int
	// Supersample renders at a multiple of the image size and scales the
	// result down for antialiasing. Values below 1 are treated as 1.
	Supersample int
	// Simplify is the fraction of triangles kept, see render.Simplify.
	Simplify float64
	View     View
	// Background color, #FFF8E3 if nil.
	Background color.Color
}

var (
	defaultColor      = fauxgl.HexColor("#468966") // object color
	defaultBackground = fauxgl.HexColor("#FFF8E3")
)

// Render draws parts with a Phong shader. Parts keep their relative
// positions and are scaled together to fill the view.
func Render(parts []Part, opts Options) (image.Image, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.New("preview size must be positive")
	}
	var all []render.Triangle3
	for _, p := range parts {
		all = append(all, p.Model...)
	}
	if len(all) == 0 {
		return nil, errors.New("nothing to preview")
	}
	scale := opts.Supersample
	if scale < 1 {
		scale = 1
	}
	view := opts.View
	if view == (View{}) {
		view = IsoView
	}
	bg := defaultBackground
	if opts.Background != nil {
		bg = fauxgl.MakeColor(opts.Background)
	}

	// fit all parts in a bi-unit cube centered at the origin
	bb := d3.Box(render.Bounds(all))
	center := bb.Center()
	k := 2 / d3.Max(bb.Size())

	var (
		eye    = toFauxgl(view.Eye)    // camera position
		lookat = toFauxgl(view.LookAt) // view center position
		up     = toFauxgl(view.Up)     // up vector
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)
	context := fauxgl.NewContext(opts.Width*scale, opts.Height*scale)
	context.ClearColorBufferWith(bg)
	aspect := float64(opts.Width) / float64(opts.Height)
	matrix := fauxgl.LookAt(eye, lookat, up).Perspective(view.FOV, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	context.Shader = shader
	for _, p := range parts {
		model := p.Model
		if opts.Simplify > 0 && opts.Simplify < 1 {
			model = render.Simplify(model, opts.Simplify)
		}
		if len(model) == 0 {
			continue
		}
		shader.ObjectColor = defaultColor
		if p.Color != nil {
			shader.ObjectColor = fauxgl.MakeColor(p.Color)
		}
		context.DrawMesh(toMesh(model, center, k))
	}
	// downsample image for antialiasing
	img := context.Image()
	if scale > 1 {
		img = resize.Resize(uint(opts.Width), uint(opts.Height), img, resize.Bilinear)
	}
	return img, nil
}

// RenderPNG renders parts and saves the image to path.
func RenderPNG(path string, parts []Part, opts Options) error {
	img, err := Render(parts, opts)
	if err != nil {
		return err
	}
	return fauxgl.SavePNG(path, img)
}

func toMesh(model []render.Triangle3, center r3.Vec, k float64) *fauxgl.Mesh {
	tris := make([]*fauxgl.Triangle, len(model))
	for i, t := range model {
		var v [3]fauxgl.Vector
		for j := range v {
			v[j] = toFauxgl(r3.Scale(k, r3.Sub(t.V[j], center)))
		}
		tris[i] = fauxgl.NewTriangleForPoints(v[0], v[1], v[2])
	}
	return fauxgl.NewTriangleMesh(tris)
}

func toFauxgl(v r3.Vec) fauxgl.Vector {
	return fauxgl.V(v.X, v.Y, v.Z)
}

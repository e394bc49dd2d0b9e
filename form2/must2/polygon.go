package must2

import (
	"math"

	"github.com/someline/someline/internal/d2"
	"github.com/someline/someline/sdf"
	"gonum.org/v1/gonum/spatial/r2"
)

// tolerance is the distance under which two vertices are the same point.
const tolerance = 1e-9

type segment struct {
	a, b   r2.Vec
	dir    r2.Vec // unit vector from a to b
	length float64
}

type polygon struct {
	segs []segment
	bb   r2.Box
}

// Polygon returns the closed outline through vertex. The last vertex is
// joined to the first unless they coincide.
func Polygon(vertex []r2.Vec) sdf.SDF2 {
	n := len(vertex)
	if n > 1 && d2.EqualWithin(vertex[0], vertex[n-1], tolerance) {
		n--
	}
	if n < 3 {
		panic("polygon needs at least 3 vertices")
	}
	s := &polygon{segs: make([]segment, n)}
	lo, hi := vertex[0], vertex[0]
	for i := range s.segs {
		a, b := vertex[i], vertex[(i+1)%n]
		l := r2.Norm(r2.Sub(b, a))
		if l == 0 {
			panic("polygon has repeated vertices")
		}
		s.segs[i] = segment{a: a, b: b, dir: r2.Scale(1/l, r2.Sub(b, a)), length: l}
		lo, hi = d2.MinElem(lo, a), d2.MaxElem(hi, a)
	}
	s.bb = r2.Box{Min: lo, Max: hi}
	return s
}

// Evaluate returns the distance to the nearest segment, negative when the
// winding number around p is not zero.
func (s *polygon) Evaluate(p r2.Vec) float64 {
	dd := math.Inf(1)
	winding := 0
	for _, sg := range s.segs {
		pa := r2.Sub(p, sg.a)
		t := sdf.Clamp(r2.Dot(pa, sg.dir), 0, sg.length)
		dd = math.Min(dd, r2.Norm2(r2.Sub(pa, r2.Scale(t, sg.dir))))

		left := r2.Cross(sg.dir, pa)
		switch {
		case sg.a.Y <= p.Y && sg.b.Y > p.Y && left > 0:
			winding++
		case sg.a.Y > p.Y && sg.b.Y <= p.Y && left < 0:
			winding--
		}
	}
	if winding != 0 {
		return -math.Sqrt(dd)
	}
	return math.Sqrt(dd)
}

func (s *polygon) Bounds() r2.Box { return s.bb }

type cornerKind int

const (
	sharp cornerKind = iota
	fillet
	chamfer
)

// Vertex is a polygon corner. Smooth and Chamfer change how the outline
// turns at it.
type Vertex struct {
	pos    r2.Vec
	kind   cornerKind
	size   float64 // fillet radius or chamfer setback
	facets int
}

// Smooth rounds the corner with an arc of the given radius made of facets
// segments.
func (v *Vertex) Smooth(radius float64, facets int) *Vertex {
	if radius > 0 && facets > 0 {
		v.kind, v.size, v.facets = fillet, radius, facets
	}
	return v
}

// Chamfer cuts the corner off with a straight edge starting size away from
// the vertex along both adjacent edges.
func (v *Vertex) Chamfer(size float64) *Vertex {
	if size > 0 {
		v.kind, v.size = chamfer, size
	}
	return v
}

// corner returns the points replacing the vertex between prev and next.
func (v *Vertex) corner(prev, next r2.Vec) []r2.Vec {
	u0 := r2.Sub(prev, v.pos)
	u1 := r2.Sub(next, v.pos)
	l0, l1 := r2.Norm(u0), r2.Norm(u1)
	u0, u1 = r2.Scale(1/l0, u0), r2.Scale(1/l1, u1)
	theta := math.Acos(sdf.Clamp(r2.Dot(u0, u1), -1, 1))
	setback := v.size
	if v.kind == fillet {
		setback = v.size / math.Tan(theta/2)
	}
	if setback > l0 || setback > l1 {
		panic("corner radius or chamfer larger than adjacent edge")
	}
	start := r2.Add(v.pos, r2.Scale(setback, u0))
	if v.kind == chamfer {
		return []r2.Vec{start, r2.Add(v.pos, r2.Scale(setback, u1))}
	}
	center := r2.Add(v.pos, r2.Scale(v.size/math.Sin(theta/2), r2.Unit(r2.Add(u0, u1))))
	turn := sdf.Rotate(sdf.Sign(r2.Cross(u1, u0)) * (math.Pi - theta) / float64(v.facets))
	arm := r2.Sub(start, center)
	pts := make([]r2.Vec, v.facets+1)
	for i := range pts {
		pts[i] = r2.Add(center, arm)
		arm = turn.MulPosition(arm)
	}
	return pts
}

// PolygonBuilder collects the vertices of an outline.
type PolygonBuilder struct {
	closed bool
	verts  []*Vertex
}

// NewPolygon returns an empty polygon builder.
func NewPolygon() *PolygonBuilder {
	return &PolygonBuilder{}
}

// Add appends a vertex.
func (p *PolygonBuilder) Add(x, y float64) *Vertex {
	v := &Vertex{pos: r2.Vec{X: x, Y: y}}
	p.verts = append(p.verts, v)
	return v
}

// Close joins the last vertex to the first so both ends can be rounded.
func (p *PolygonBuilder) Close() {
	p.closed = true
}

// Vertices returns the outline with rounded and chamfered corners expanded.
// The ends of an open outline stay sharp.
func (p *PolygonBuilder) Vertices() []r2.Vec {
	n := len(p.verts)
	if n == 0 {
		panic("polygon has no vertices")
	}
	var out []r2.Vec
	for i, v := range p.verts {
		end := !p.closed && (i == 0 || i == n-1)
		if v.kind == sharp || end {
			out = append(out, v.pos)
			continue
		}
		prev := p.verts[(i+n-1)%n].pos
		next := p.verts[(i+1)%n].pos
		out = append(out, v.corner(prev, next)...)
	}
	return out
}

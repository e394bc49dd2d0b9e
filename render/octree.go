package render

import (
	"io"
	"math"

	"github.com/someline/someline/internal/d3"
	"github.com/someline/someline/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// gridIndex addresses a sample point of the octree grid.
type gridIndex [3]int

func (g gridIndex) add(dx, dy, dz int) gridIndex {
	return gridIndex{g[0] + dx, g[1] + dy, g[2] + dz}
}

func (g gridIndex) vec() r3.Vec {
	return r3.Vec{X: float64(g[0]), Y: float64(g[1]), Z: float64(g[2])}
}

func less(a, b gridIndex) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// octant is a cube of the octree. It spans 1<<level grid steps from its
// lowest corner.
type octant struct {
	corner gridIndex
	level  uint
}

// octree renders an SDF3 by splitting its bounding box into octants, skipping
// those the surface cannot cross, and polygonizing the smallest ones.
type octree struct {
	samples  *sampler
	pending  []octant
	overflow triangle3Buffer
}

// NewOctreeRenderer returns a renderer for s with meshCells cells along
// the longest side of its bounding box.
func NewOctreeRenderer(s sdf.SDF3, meshCells int) Renderer {
	if meshCells < 2 {
		panic("meshCells must be 2 or larger")
	}
	// grow the box so its faces are off the surface
	bb := d3.Box(s.Bounds()).ScaleAboutCenter(1.01)
	longest := d3.Max(bb.Size())
	if longest <= 0 {
		panic("cannot render SDF3 with empty bounding box")
	}
	// a leaf cell is two grid steps wide
	step := 0.5 * longest / float64(meshCells)
	levels := uint(math.Ceil(math.Log2(longest/step))) + 1
	return &octree{
		samples: newSampler(s, bb.Min, step, levels),
		pending: []octant{{level: levels - 1}},
	}
}

// ReadTriangles renders octants until dst is full or the model is done.
func (oc *octree) ReadTriangles(dst []Triangle3) (int, error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	n := oc.overflow.Read(dst)
	for n < len(dst) && len(oc.pending) > 0 {
		last := len(oc.pending) - 1
		o := oc.pending[last]
		oc.pending = oc.pending[:last]
		if o.level > 1 {
			oc.split(o)
			continue
		}
		cell := oc.leaf(o)
		if len(dst)-n >= marchingMaxTriangles {
			n += cell.triangles(dst[n:])
			continue
		}
		var tmp [marchingMaxTriangles]Triangle3
		oc.overflow.Write(tmp[:cell.triangles(tmp[:])])
		n += oc.overflow.Read(dst[n:])
	}
	if len(oc.pending) == 0 && oc.overflow.Len() == 0 {
		return n, io.EOF
	}
	return n, nil
}

// split queues the children of o the surface may cross.
func (oc *octree) split(o octant) {
	level := o.level - 1
	s := 1 << level
	for k := 7; k >= 0; k-- {
		child := octant{corner: o.corner.add(s*(k&1), s*(k>>1&1), s*(k>>2&1)), level: level}
		if !oc.samples.empty(child) {
			oc.pending = append(oc.pending, child)
		}
	}
}

// leaf samples the corners of a level 1 octant.
func (oc *octree) leaf(o octant) *leafCell {
	var cell leafCell
	for k := range cell.idx {
		g := o.corner.add(2*(k&1), 2*(k>>1&1), 2*(k>>2&1))
		cell.idx[k] = g
		cell.pos[k], cell.val[k] = oc.samples.at(g)
	}
	return &cell
}

// sampler evaluates the SDF3 on the grid and remembers the values shared by
// neighbouring octants.
type sampler struct {
	s      sdf.SDF3
	origin r3.Vec
	step   float64
	// halfDiag[l] is half the diagonal of an octant of level l.
	halfDiag []float64
	cache    map[gridIndex]float64
}

func newSampler(s sdf.SDF3, origin r3.Vec, step float64, levels uint) *sampler {
	if levels >= 64 {
		panic("too many octree levels")
	}
	sm := &sampler{
		s:        s,
		origin:   origin,
		step:     step,
		halfDiag: make([]float64, levels),
		cache:    make(map[gridIndex]float64),
	}
	for l := range sm.halfDiag {
		side := float64(int(1)<<l) * step
		sm.halfDiag[l] = 0.5 * math.Sqrt(3) * side
	}
	return sm
}

// at returns the position of g and the distance there.
func (sm *sampler) at(g gridIndex) (r3.Vec, float64) {
	p := r3.Add(sm.origin, r3.Scale(sm.step, g.vec()))
	d, ok := sm.cache[g]
	if !ok {
		d = sm.s.Evaluate(p)
		sm.cache[g] = d
	}
	return p, d
}

// empty reports whether the surface stays clear of o, judged by the
// distance at its center.
func (sm *sampler) empty(o octant) bool {
	h := 1 << (o.level - 1)
	_, d := sm.at(o.corner.add(h, h, h))
	return math.Abs(d) >= sm.halfDiag[o.level]
}

package render

import (
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ kdtree.Interface  = weldVertices{}
	_ kdtree.Comparable = weldVertex{}
)

// Mesh is an indexed triangle mesh with shared vertices.
type Mesh struct {
	Vertices []r3.Vec
	Faces    [][3]int
}

// NewMesh welds the vertices of model that lie within tol of each other and
// returns the indexed mesh. Faces that collapse after welding are dropped.
func NewMesh(model []Triangle3, tol float64) *Mesh {
	verts := make(weldVertices, 0, 3*len(model))
	for i, t := range model {
		for j, v := range t.V {
			verts = append(verts, weldVertex{Vec: v, id: 3*i + j})
		}
	}
	remap := make([]int, len(verts))
	for i := range remap {
		remap[i] = -1
	}
	mesh := &Mesh{}
	if len(verts) == 0 {
		return mesh
	}
	// kdtree.New reorders verts. Welded vertices are numbered in first-seen order.
	byID := make([]weldVertex, len(verts))
	copy(byID, verts)
	tree := kdtree.New(verts, false)
	tol2 := tol * tol
	for _, v := range byID {
		if remap[v.id] >= 0 {
			continue
		}
		idx := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, v.Vec)
		remap[v.id] = idx
		keep := kdtree.NewDistKeeper(tol2)
		tree.NearestSet(keep, v)
		for _, c := range keep.Heap {
			if c.Comparable == nil {
				continue
			}
			if near := c.Comparable.(weldVertex); remap[near.id] < 0 {
				remap[near.id] = idx
			}
		}
	}
	mesh.Faces = make([][3]int, 0, len(model))
	for i := range model {
		f := [3]int{remap[3*i], remap[3*i+1], remap[3*i+2]}
		if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			continue
		}
		mesh.Faces = append(mesh.Faces, f)
	}
	return mesh
}

// Closed reports whether the mesh is a closed, consistently oriented
// manifold: every directed edge is matched by exactly one reversed edge.
func (m *Mesh) Closed() bool {
	if len(m.Faces) == 0 {
		return false
	}
	edges := make(map[[2]int]int, 3*len(m.Faces))
	for _, f := range m.Faces {
		for i := range f {
			edges[[2]int{f[i], f[(i+1)%3]}]++
		}
	}
	for e, n := range edges {
		if n != 1 || edges[[2]int{e[1], e[0]}] != 1 {
			return false
		}
	}
	return true
}

// Triangles returns the faces of the mesh as triangles.
func (m *Mesh) Triangles() []Triangle3 {
	model := make([]Triangle3, len(m.Faces))
	for i, f := range m.Faces {
		model[i] = Triangle3{V: [3]r3.Vec{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}}
	}
	return model
}

type weldVertex struct {
	r3.Vec
	id int // position in the triangle soup, 3*triangle + corner
}

type weldVertices []weldVertex

func (k weldVertices) Index(i int) kdtree.Comparable { return k[i] }

// Len returns the length of the list.
func (k weldVertices) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k weldVertices) Pivot(d kdtree.Dim) int {
	p := weldPlane{dim: d, vertices: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k weldVertices) Slice(start, end int) kdtree.Interface {
	return k[start:end]
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
func (a weldVertex) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return component(a.Vec, d) - component(b.(weldVertex).Vec, d)
}

// Dims returns the number of dimensions described in the Comparable.
func (a weldVertex) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between the receiver and
// the parameter.
func (a weldVertex) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.Vec, b.(weldVertex).Vec))
}

func component(v r3.Vec, d kdtree.Dim) float64 {
	switch d {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

type weldPlane struct {
	dim      kdtree.Dim
	vertices weldVertices
}

func (p weldPlane) Less(i, j int) bool {
	return component(p.vertices[i].Vec, p.dim) < component(p.vertices[j].Vec, p.dim)
}
func (p weldPlane) Swap(i, j int) {
	p.vertices[i], p.vertices[j] = p.vertices[j], p.vertices[i]
}
func (p weldPlane) Len() int {
	return len(p.vertices)
}
func (p weldPlane) Slice(start, end int) kdtree.SortSlicer {
	p.vertices = p.vertices[start:end]
	return p
}

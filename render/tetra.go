package render

import "gonum.org/v1/gonum/spatial/r3"

// marchingMaxTriangles is the most triangles a leaf cell can produce:
// two for each of its six tetrahedra.
const marchingMaxTriangles = 12

// kuhnTetrahedra splits a cube into six tetrahedra sharing the 0-7 diagonal.
// Corner k of the cube sits at bit 0 of k along x, bit 1 along y, bit 2 along z.
// Neighbouring cubes split their shared faces along the same diagonal so the
// resulting surface has no cracks.
var kuhnTetrahedra = [6][4]int{
	{0, 1, 3, 7},
	{0, 1, 5, 7},
	{0, 2, 3, 7},
	{0, 2, 6, 7},
	{0, 4, 5, 7},
	{0, 4, 6, 7},
}

// leafCell holds the sampled corners of a leaf cube.
type leafCell struct {
	idx [8]gridIndex
	pos [8]r3.Vec
	val [8]float64
}

// triangles polygonizes the cell's tetrahedra into dst, which must have room
// for marchingMaxTriangles triangles. Inside is where the distance is negative.
func (c *leafCell) triangles(dst []Triangle3) (n int) {
	for _, tet := range kuhnTetrahedra {
		var in, out [4]int
		var nin, nout int
		for _, k := range tet {
			if c.val[k] < 0 {
				in[nin] = k
				nin++
			} else {
				out[nout] = k
				nout++
			}
		}
		inC := c.centroid(in[:nin])
		outC := c.centroid(out[:nout])
		switch nin {
		case 1:
			a := in[0]
			n += emit(dst[n:], c.edge(a, out[0]), c.edge(a, out[1]), c.edge(a, out[2]), inC, outC)
		case 3:
			b := out[0]
			n += emit(dst[n:], c.edge(in[0], b), c.edge(in[1], b), c.edge(in[2], b), inC, outC)
		case 2:
			ac := c.edge(in[0], out[0])
			ad := c.edge(in[0], out[1])
			bd := c.edge(in[1], out[1])
			bc := c.edge(in[1], out[0])
			n += emit(dst[n:], ac, ad, bd, inC, outC)
			n += emit(dst[n:], ac, bd, bc, inC, outC)
		}
	}
	return n
}

// edge returns the zero crossing on the edge between corners i and j. The
// corners are ordered by grid index first so that cells sharing an edge
// compute bit-identical vertices.
func (c *leafCell) edge(i, j int) r3.Vec {
	if less(c.idx[j], c.idx[i]) {
		i, j = j, i
	}
	v0, v1 := c.val[i], c.val[j]
	t := v0 / (v0 - v1)
	return r3.Add(c.pos[i], r3.Scale(t, r3.Sub(c.pos[j], c.pos[i])))
}

func (c *leafCell) centroid(corners []int) r3.Vec {
	var sum r3.Vec
	for _, k := range corners {
		sum = r3.Add(sum, c.pos[k])
	}
	return r3.Scale(1/float64(len(corners)), sum)
}

// emit writes triangle (a, b, c) wound so its normal points from the inside
// corners toward the outside corners. Triangles with coincident vertices are
// dropped. It returns the number of triangles written.
func emit(dst []Triangle3, a, b, c, inC, outC r3.Vec) int {
	if a == b || b == c || c == a {
		return 0
	}
	n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	if r3.Dot(n, r3.Sub(outC, inC)) < 0 {
		b, c = c, b
	}
	dst[0] = Triangle3{V: [3]r3.Vec{a, b, c}}
	return 1
}

package render

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/someline/someline/form3/must3"
	"github.com/someline/someline/internal/d3"
	"github.com/someline/someline/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestLeafCellMaxTriangles(t *testing.T) {
	var dst [marchingMaxTriangles]Triangle3
	for pattern := 0; pattern < 256; pattern++ {
		cell := unitCell(func(k int, _ r3.Vec) float64 {
			if pattern&(1<<k) != 0 {
				return -0.5
			}
			return 0.5
		})
		n := cell.triangles(dst[:])
		if n > marchingMaxTriangles {
			t.Fatalf("pattern %08b: got %d triangles", pattern, n)
		}
		if (pattern == 0 || pattern == 255) && n != 0 {
			t.Errorf("pattern %08b: uniform cell produced %d triangles", pattern, n)
		}
	}
}

func TestLeafCellOrientation(t *testing.T) {
	// A plane with normal (1,2,3) crossing the cell. Every triangle must lie on
	// the plane and face along its normal.
	grad := r3.Unit(r3.Vec{X: 1, Y: 2, Z: 3})
	const offset = 0.6
	cell := unitCell(func(_ int, p r3.Vec) float64 {
		return r3.Dot(p, grad) - offset
	})
	var dst [marchingMaxTriangles]Triangle3
	n := cell.triangles(dst[:])
	if n == 0 {
		t.Fatal("no triangles generated for a crossing plane")
	}
	for _, tri := range dst[:n] {
		if dot := r3.Dot(tri.Normal(), grad); dot < 1-1e-9 {
			t.Errorf("triangle normal %v not aligned with plane normal (dot=%g)", tri.Normal(), dot)
		}
		for _, v := range tri.V {
			if d := r3.Dot(v, grad) - offset; d > 1e-12 || d < -1e-12 {
				t.Errorf("vertex %v off the plane by %g", v, d)
			}
		}
	}
}

func unitCell(f func(k int, p r3.Vec) float64) *leafCell {
	var cell leafCell
	for k := range cell.idx {
		cell.idx[k] = gridIndex{k & 1, k >> 1 & 1, k >> 2 & 1}
		cell.pos[k] = cell.idx[k].vec()
		cell.val[k] = f(k, cell.pos[k])
	}
	return &cell
}

func TestOctreeClosedMesh(t *testing.T) {
	for _, test := range []struct {
		name  string
		s     sdf.SDF3
		cells int
	}{
		{name: "sphere", s: must3.Sphere(3.3), cells: 24},
		{name: "rounded box", s: must3.Box(r3.Vec{X: 4, Y: 3, Z: 2.2}, 0.4), cells: 30},
		{name: "difference", s: sdf.Difference3D(must3.Box(r3.Vec{X: 4, Y: 4, Z: 4}, 0), must3.Sphere(2.6)), cells: 32},
	} {
		t.Run(test.name, func(t *testing.T) {
			model, err := RenderAll(NewOctreeRenderer(test.s, test.cells))
			if err != nil {
				t.Fatal(err)
			}
			if len(model) == 0 {
				t.Fatal("no triangles rendered")
			}
			mesh := NewMesh(model, 1e-9)
			if !mesh.Closed() {
				t.Error("rendered mesh is not closed")
			}
			// Vertices lie close to the surface.
			res := d3.Max(d3.Box(test.s.Bounds()).Size()) / float64(test.cells)
			for _, v := range mesh.Vertices {
				if d := test.s.Evaluate(v); d > res || d < -res {
					t.Fatalf("vertex %v is %g away from the surface", v, d)
				}
			}
		})
	}
}

func TestOctreeSmallBuffer(t *testing.T) {
	s := must3.Sphere(2)
	want, err := RenderAll(NewOctreeRenderer(s, 16))
	if err != nil {
		t.Fatal(err)
	}
	oct := NewOctreeRenderer(s, 16)
	buf := make([]Triangle3, 5)
	var got []Triangle3
	for {
		n, err := oct.ReadTriangles(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("got %d triangles with a small buffer, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("triangle %d differs: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestSTLWriteReadback(t *testing.T) {
	const (
		cells = 40
		tol   = 1e-5
	)
	s0 := sdf.Union3D(
		must3.Box(r3.Vec{X: 10, Y: 6, Z: 4}, 1),
		sdf.Transform3D(must3.Sphere(3), sdf.Translate3D(r3.Vec{X: 5, Z: 2})),
	)
	size := r3.Norm(d3.Box(s0.Bounds()).Size())
	rtol := tol * size
	input, err := RenderAll(NewOctreeRenderer(s0, cells))
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err = WriteSTL(&b, input); err != nil {
		t.Fatal(err)
	}
	output, err := readBinarySTL(&b)
	if err != nil && !errors.Is(err, ErrNormalMismatch) {
		t.Fatal(err)
	}
	if len(output) != len(input) {
		t.Fatalf("wrote %d triangles, read %d", len(input), len(output))
	}
	mismatches := 0
	for iface, expect := range input {
		got := output[iface]
		for i := range expect.V {
			if !d3.EqualWithin(got.V[i], expect.V[i], rtol) {
				mismatches++
				t.Errorf("%dth triangle equality out of tolerance. got vertex %0.5g, want %0.5g", iface, got.V[i], expect.V[i])
			}
		}
		if mismatches > 10 {
			t.Fatal("too many mismatches")
		}
	}
}

func TestReadSTLErrors(t *testing.T) {
	if _, err := ReadSTL(bytes.NewReader(make([]byte, 40))); err == nil {
		t.Error("expected error on truncated header")
	}
	if _, err := ReadSTL(bytes.NewReader(make([]byte, stlHeaderSize))); err == nil {
		t.Error("expected error on zero triangle count")
	}
	if err := WriteSTL(io.Discard, nil); err == nil {
		t.Error("expected error writing an empty model")
	}
}

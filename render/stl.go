package render

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

// Binary STL layout: an 80 byte comment, a little endian uint32 facet count
// and 50 bytes per facet.
const (
	stlCommentSize  = 80
	stlHeaderSize   = stlCommentSize + 4
	stlFacetSize    = 50
	maxNormalErrors = 10_000
)

// ErrNormalMismatch is returned when a stored STL normal disagrees with the
// normal computed from the facet's vertices. Thin facets of fine meshes
// trigger it so the model may still be usable.
var ErrNormalMismatch = errors.New("stored facet normal does not match its vertices")

// CreateSTL streams the triangles of a Renderer into a binary STL file.
// The facet count is patched into the header once rendering is done.
func CreateSTL(path string, r Renderer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriterSize(f, stlFacetSize*readChunk)
	if _, err = w.Write(make([]byte, stlHeaderSize)); err != nil {
		return err
	}
	var (
		count  uint32
		record [stlFacetSize]byte
		chunk  = make([]Triangle3, readChunk)
	)
	for {
		n, rerr := r.ReadTriangles(chunk)
		for _, t := range chunk[:n] {
			fc := facetOf(t)
			if fc.collapsed() {
				continue
			}
			fc.encode(record[:])
			if _, err = w.Write(record[:]); err != nil {
				return fmt.Errorf("writing STL facets: %w", err)
			}
			count++
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return fmt.Errorf("rendering %s: %w", path, rerr)
		}
	}
	if err = w.Flush(); err != nil {
		return err
	}
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], count)
	if _, err = f.WriteAt(n[:], stlCommentSize); err != nil {
		return err
	}
	return f.Close()
}

// WriteSTL writes model to w in binary STL format. Triangles that collapse
// once rounded to single precision are skipped.
func WriteSTL(w io.Writer, model []Triangle3) error {
	if len(model) == 0 {
		return errors.New("no triangles to write")
	}
	facets := make([]facet, 0, len(model))
	for _, t := range model {
		if fc := facetOf(t); !fc.collapsed() {
			facets = append(facets, fc)
		}
	}
	buf := make([]byte, stlHeaderSize+stlFacetSize*len(facets))
	binary.LittleEndian.PutUint32(buf[stlCommentSize:], uint32(len(facets)))
	for i, fc := range facets {
		fc.encode(buf[stlHeaderSize+i*stlFacetSize:])
	}
	_, err := w.Write(buf)
	return err
}

// ReadSTL reads a binary STL stream and validates every facet. An error
// wrapping ErrNormalMismatch comes with the full model and may be ignored.
func ReadSTL(r io.Reader) ([]Triangle3, error) {
	return readBinarySTL(r)
}

func readBinarySTL(r io.Reader) ([]Triangle3, error) {
	var header [stlHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("reading STL header: %w", err)
	}
	count := int(binary.LittleEndian.Uint32(header[stlCommentSize:]))
	if count == 0 {
		return nil, errors.New("STL header declares no facets")
	}
	var (
		record     [stlFacetSize]byte
		model      = make([]Triangle3, 0, count)
		mismatches int
		result     error
	)
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(r, record[:]); err != nil {
			return nil, fmt.Errorf("STL facet %d/%d: %w", i+1, count, err)
		}
		fc := decodeFacet(record[:])
		switch err := fc.check(); {
		case errors.Is(err, ErrNormalMismatch):
			mismatches++
			if mismatches > maxNormalErrors {
				return model, fmt.Errorf("%d facet normal mismatches", mismatches)
			}
			result = err
		case err != nil:
			return nil, fmt.Errorf("STL facet %d/%d: %w", i+1, count, err)
		}
		model = append(model, fc.triangle())
	}
	return model, result
}

// facet is one STL record: the normal followed by three vertices.
type facet [4][3]float32

func facetOf(t Triangle3) facet {
	return facet{toF32(t.Normal()), toF32(t.V[0]), toF32(t.V[1]), toF32(t.V[2])}
}

func decodeFacet(b []byte) facet {
	_ = b[stlFacetSize-1]
	var fc facet
	for i := range fc {
		for j := range fc[i] {
			fc[i][j] = math.Float32frombits(binary.LittleEndian.Uint32(b[12*i+4*j:]))
		}
	}
	return fc
}

// encode writes the record into b. The trailing attribute count is zero.
func (fc facet) encode(b []byte) {
	_ = b[stlFacetSize-1]
	for i := range fc {
		for j := range fc[i] {
			binary.LittleEndian.PutUint32(b[12*i+4*j:], math.Float32bits(fc[i][j]))
		}
	}
	b[48], b[49] = 0, 0
}

func (fc facet) collapsed() bool {
	return fc[1] == fc[2] || fc[2] == fc[3] || fc[3] == fc[1]
}

func (fc facet) check() error {
	const (
		vertexTol = 1e-12
		normalTol = 5e-2
	)
	for i, v := range fc {
		if !finiteF32(v) {
			if i == 0 {
				return errors.New("non-finite facet normal")
			}
			return errors.New("non-finite facet vertex")
		}
	}
	if nearF32(fc[1], fc[2], vertexTol) || nearF32(fc[2], fc[3], vertexTol) || nearF32(fc[3], fc[1], vertexTol) {
		return errors.New("degenerate facet")
	}
	// Scaled up to keep tiny facets out of the float32 noise.
	a, b, c := r3.Scale(10, fromF32(fc[1])), r3.Scale(10, fromF32(fc[2])), r3.Scale(10, fromF32(fc[3]))
	n := toF32(r3.Unit(r3.Cross(r3.Sub(b, a), r3.Sub(c, a))))
	flipped := [3]float32{-n[0], -n[1], -n[2]}
	if !nearF32(n, fc[0], normalTol) && !nearF32(flipped, fc[0], normalTol) {
		return ErrNormalMismatch
	}
	return nil
}

func (fc facet) triangle() Triangle3 {
	return Triangle3{V: [3]r3.Vec{fromF32(fc[1]), fromF32(fc[2]), fromF32(fc[3])}}
}

func toF32(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func fromF32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func finiteF32(f [3]float32) bool {
	for _, x := range f {
		if math32.IsNaN(x) || math32.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func nearF32(a, b [3]float32, tol float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

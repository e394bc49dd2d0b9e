package render

import (
	"errors"
	"io"
)

const readChunk = 1 << 10

// RenderAll drains r into a single triangle slice. Reaching io.EOF is not
// an error.
func RenderAll(r Renderer) ([]Triangle3, error) {
	model := make([]Triangle3, 0, 4*readChunk)
	chunk := make([]Triangle3, readChunk)
	for {
		n, err := r.ReadTriangles(chunk)
		model = append(model, chunk[:n]...)
		switch {
		case errors.Is(err, io.EOF):
			return model, nil
		case err != nil:
			return model, err
		}
	}
}

// SliceRenderer replays a rendered model through the Renderer interface.
type SliceRenderer struct {
	pending triangle3Buffer
}

// NewSliceRenderer returns a Renderer reading from model.
func NewSliceRenderer(model []Triangle3) *SliceRenderer {
	return &SliceRenderer{pending: triangle3Buffer{buf: model}}
}

// ReadTriangles implements Renderer.
func (s *SliceRenderer) ReadTriangles(dst []Triangle3) (int, error) {
	if s.pending.Len() == 0 {
		return 0, io.EOF
	}
	return s.pending.Read(dst), nil
}

// triangle3Buffer is a FIFO of triangles.
type triangle3Buffer struct {
	buf []Triangle3
}

func (b *triangle3Buffer) Read(dst []Triangle3) int {
	n := copy(dst, b.buf)
	b.buf = b.buf[n:]
	return n
}

func (b *triangle3Buffer) Write(t []Triangle3) int {
	b.buf = append(b.buf, t...)
	return len(t)
}

func (b *triangle3Buffer) Len() int { return len(b.buf) }

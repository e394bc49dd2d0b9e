package project

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/someline/someline/sdf"
)

// BuildFunc builds the solid of a model.
type BuildFunc func() (sdf.SDF3, error)

// GridPos is the cell of a model in the layout grid of its project.
type GridPos struct {
	X, Y int
}

// Model is a named part of a project. Its solid is built on first use and
// kept for later calls.
type Model struct {
	Name  string
	Color color.Color
	// Grid is the layout position of the model, nil if it has none.
	Grid *GridPos
	// Export marks models written by Project.Export.
	Export bool

	build BuildFunc
	once  sync.Once
	part  sdf.SDF3
	err   error
}

// ModelOption customizes a model added to a project.
type ModelOption func(*Model)

// WithColor overrides the default color of the project.
func WithColor(c color.Color) ModelOption {
	return func(m *Model) { m.Color = c }
}

// AtGrid places the model in a cell of the layout grid.
func AtGrid(x, y int) ModelOption {
	return func(m *Model) { m.Grid = &GridPos{X: x, Y: y} }
}

// NoExport keeps the model out of exports. It can still be previewed.
func NoExport() ModelOption {
	return func(m *Model) { m.Export = false }
}

// Part returns the solid of the model, building it on the first call.
func (m *Model) Part() (sdf.SDF3, error) {
	m.once.Do(func() {
		m.part, m.err = m.build()
		if m.err == nil && m.part == nil {
			m.err = fmt.Errorf("model %s built no part", m.Name)
		}
		if m.err != nil {
			m.err = fmt.Errorf("model %s: %w", m.Name, m.err)
		}
	})
	return m.part, m.err
}

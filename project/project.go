// Package project keeps the named models of a product line and lays them
// out for previews and exports.
package project

import (
	"errors"
	"fmt"
	"image/color"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultPadding is the gap left between packed parts in mm.
const DefaultPadding = 4

var (
	// ErrDuplicateName is returned when a model name is already taken.
	ErrDuplicateName = errors.New("model name already taken")
	// ErrUnknownModel is returned by Get for names not in the project.
	ErrUnknownModel = errors.New("unknown model")
	// ErrNoMatch is returned when a pattern selects no models.
	ErrNoMatch = errors.New("no match found for")
	// ErrEmptyPart is returned when a model's solid has no volume to mesh.
	ErrEmptyPart = errors.New("part is empty")
)

// Project is an ordered set of uniquely named models.
type Project struct {
	Name string
	// Color is given to models added without one.
	Color color.Color
	// Grid is the cell size of the layout grid, nil if models are packed.
	Grid *r2.Vec
	// Padding between packed parts.
	Padding float64

	log    *zap.Logger
	models []*Model
	byName map[string]*Model
}

// Option customizes a new project.
type Option func(*Project)

// WithDefaultColor sets the color of models added without one.
func WithDefaultColor(c color.Color) Option {
	return func(p *Project) { p.Color = c }
}

// WithGrid lays models out on a grid with cells dx by dy mm.
func WithGrid(dx, dy float64) Option {
	return func(p *Project) { p.Grid = &r2.Vec{X: dx, Y: dy} }
}

// WithPadding sets the gap between packed parts.
func WithPadding(padding float64) Option {
	return func(p *Project) { p.Padding = padding }
}

// WithLogger sets the logger used by exports.
func WithLogger(log *zap.Logger) Option {
	return func(p *Project) { p.log = log }
}

// New returns an empty project.
func New(name string, opts ...Option) *Project {
	p := &Project{
		Name:    name,
		Padding: DefaultPadding,
		log:     zap.NewNop(),
		byName:  make(map[string]*Model),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Add registers a model built by fn. Models are exported unless NoExport
// is given.
func (p *Project) Add(name string, fn BuildFunc, opts ...ModelOption) error {
	if _, ok := p.byName[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	if fn == nil {
		return fmt.Errorf("model %s has no build function", name)
	}
	m := &Model{Name: name, Color: p.Color, Export: true, build: fn}
	for _, opt := range opts {
		opt(m)
	}
	p.models = append(p.models, m)
	p.byName[name] = m
	return nil
}

// Names returns the model names in the order they were added.
func (p *Project) Names() []string {
	names := make([]string, len(p.models))
	for i, m := range p.models {
		names[i] = m.Name
	}
	return names
}

// Get returns the model with the given name.
func (p *Project) Get(name string) (*Model, error) {
	m, ok := p.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	return m, nil
}

// Models returns the models in the order they were added.
func (p *Project) Models() []*Model {
	return append([]*Model(nil), p.models...)
}

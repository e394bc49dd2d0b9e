package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/someline/someline/matter"
	"github.com/someline/someline/render"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ExportOptions configures Project.Export.
type ExportOptions struct {
	// Dir receives the files, export/<project> if empty.
	Dir string
	// Resolution is the mesh cell size in mm.
	Resolution float64
	// Material scales parts before they are meshed.
	Material matter.ViscousMaterial
	// Workers bounds the models exported at once, one if zero.
	Workers int
	// Time is written to STEP files before their timestamp is stripped.
	Time time.Time
}

// ExportDir returns the directory Export writes to when none is given.
func (p *Project) ExportDir() string {
	return filepath.Join("export", p.Name)
}

// ExportPaths returns the files Export writes to dir: a STEP and an STL
// file per exported model.
func (p *Project) ExportPaths(dir string) []string {
	if dir == "" {
		dir = p.ExportDir()
	}
	var paths []string
	for _, m := range p.models {
		if m.Export {
			step, stl := exportPaths(dir, m)
			paths = append(paths, step, stl)
		}
	}
	return paths
}

func exportPaths(dir string, m *Model) (step, stl string) {
	return filepath.Join(dir, m.Name+".step"), filepath.Join(dir, m.Name+".stl")
}

// Export writes every exported model as STEP and STL. STEP timestamps are
// zeroed so exports of unchanged models are identical. It returns the
// written files in model order.
func (p *Project) Export(ctx context.Context, opts ExportOptions) ([]string, error) {
	if opts.Dir == "" {
		opts.Dir = p.ExportDir()
	}
	if opts.Resolution <= 0 {
		return nil, fmt.Errorf("export resolution must be positive, got %g", opts.Resolution)
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, err
	}

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for _, m := range p.models {
		if !m.Export {
			continue
		}
		m := m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return p.exportModel(m, opts)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	paths := p.ExportPaths(opts.Dir)
	p.log.Info("export done",
		zap.String("project", p.Name),
		zap.Int("files", len(paths)),
		zap.Duration("elapsed", time.Since(start)))
	return paths, nil
}

func (p *Project) exportModel(m *Model, opts ExportOptions) error {
	part, err := m.Part()
	if err != nil {
		return err
	}
	part = opts.Material.Scale(part)
	start := time.Now()
	model, err := renderPart(part, opts.Resolution)
	if err != nil {
		return fmt.Errorf("render %s: %w", m.Name, err)
	}
	mesh := render.NewMesh(model, opts.Resolution*1e-6)
	p.log.Debug("rendered",
		zap.String("model", m.Name),
		zap.Int("triangles", len(mesh.Faces)),
		zap.Bool("closed", mesh.Closed()),
		zap.Duration("elapsed", time.Since(start)))

	step, stl := exportPaths(opts.Dir, m)
	err = render.CreateSTEP(step, mesh, render.StepOptions{Name: m.Name, Color: m.Color, Time: opts.Time})
	if err != nil {
		return err
	}
	if err = render.StripStepTimestamp(step); err != nil {
		return err
	}
	p.log.Info("exported", zap.String("file", step))
	if err = render.CreateSTL(stl, render.NewSliceRenderer(mesh.Triangles())); err != nil {
		return fmt.Errorf("writing %s: %w", stl, err)
	}
	p.log.Info("exported", zap.String("file", stl))
	return nil
}

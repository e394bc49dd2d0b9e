package project

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/someline/someline/internal/config"
	"github.com/someline/someline/matter"
	"github.com/someline/someline/preview"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const previewSupersample = 2

type cli struct {
	p          *Project
	verbose    bool
	configPath string
	cfg        *config.Config
}

// Command returns the command line interface of the project. Without a
// subcommand it behaves like "run".
func (p *Project) Command() *cobra.Command {
	c := &cli{p: p}
	root := &cobra.Command{
		Use:           p.Name,
		Short:         fmt.Sprintf("Preview and export the %s models", p.Name),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize logger
			zc := zap.NewProductionConfig()
			if c.verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			log, err := zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			p.log = log.Named(p.Name)
			c.cfg, err = config.LoadWithDefaults(c.configPath)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = p.log.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log debug output")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "settings file (default "+config.DefaultPath+")")

	run := c.runCommand()
	root.Args = run.Args
	root.RunE = run.RunE
	root.Flags().AddFlagSet(run.Flags())
	root.AddCommand(run, c.exportCommand())
	return root
}

func (c *cli) runCommand() *cobra.Command {
	var (
		pack   bool
		output string
		layout string
	)
	cmd := &cobra.Command{
		Use:   "run [pattern]",
		Short: "Render a preview of the models matching pattern",
		Long: `Renders the models whose names match pattern into a preview image.
A pattern without *, ? or [ matches every name containing it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pattern string
			if len(args) > 0 {
				pattern = expandPattern(args[0])
			}
			plate, err := c.p.Assembly(pattern, pack)
			if errors.Is(err, ErrNoMatch) {
				return fmt.Errorf("no match found for: %s", pattern)
			} else if err != nil {
				return err
			}
			parts, err := plate.Render(c.cfg.Preview.Resolution)
			if err != nil {
				return err
			}
			err = preview.RenderPNG(output, parts, preview.Options{
				Width:       c.cfg.Preview.Width,
				Height:      c.cfg.Preview.Height,
				Supersample: previewSupersample,
				Simplify:    c.cfg.Preview.Simplify,
			})
			if err != nil {
				return err
			}
			c.p.log.Info("preview", zap.String("file", output), zap.Int("models", len(parts)))
			if layout == "" {
				return nil
			}
			if err := preview.Layout(layout, c.p.Name, plate.Footprints()); err != nil {
				return err
			}
			c.p.log.Info("layout", zap.String("file", layout))
			return nil
		},
	}
	cmd.Flags().BoolVar(&pack, "pack", false, "pack models even if the project has a grid")
	cmd.Flags().StringVarP(&output, "output", "o", "preview.png", "preview image")
	cmd.Flags().StringVar(&layout, "layout", "", "also plot the layout to this file (.png, .svg or .pdf)")
	return cmd
}

func (c *cli) exportCommand() *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "export [directory]",
		Short: "Export all models as STEP and STL",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.cfg.Output
			if len(args) > 0 {
				dir = args[0]
			}
			if dir == "" {
				dir = c.p.ExportDir()
			}
			if list {
				for _, path := range c.p.ExportPaths(dir) {
					fmt.Fprintln(cmd.OutOrStdout(), path)
				}
				return nil
			}
			material, err := matter.Lookup(c.cfg.Material)
			if err != nil {
				return err
			}
			_, err = c.p.Export(cmd.Context(), ExportOptions{
				Dir:        dir,
				Resolution: c.cfg.Resolution,
				Material:   material,
				Workers:    c.cfg.Workers,
			})
			return err
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "only print the files that would be written")
	return cmd
}

// expandPattern turns a plain name into a pattern matching names that
// contain it.
func expandPattern(pattern string) string {
	if pattern == "" || strings.ContainsAny(pattern, "*?[") {
		return pattern
	}
	return "*" + pattern + "*"
}

// Main runs the command line interface and exits on error.
func (p *Project) Main() {
	if err := p.Command().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Package certgen generates personalized certificates.
//
// It ties the layout, resource, render and batch packages together behind
// three calls, one per mode of the command line tool:
//
// - Generate: one certificate from a set of field values
// - RunBatch: one certificate per row of a CSV source
// - Calibrate: a calibration sheet for tuning field anchors
//
// Every call takes a Config by value. Resources (template, font, CSV source)
// are resolved through the bundled assets first and then the file system,
// unless the Config carries its own resolver.
package certgen

import (
	"fmt"
	"path/filepath"

	"github.com/gardar/certgen/assets"
	"github.com/gardar/certgen/pkg/batch"
	"github.com/gardar/certgen/pkg/layout"
	"github.com/gardar/certgen/pkg/logging"
	"github.com/gardar/certgen/pkg/render"
	"github.com/gardar/certgen/pkg/resource"
)

// CalibrationFileName is the file written by Calibrate.
const CalibrationFileName = "calibrate.pdf"

// DefaultResolver looks in the bundled assets, then on the file system.
func DefaultResolver() *resource.Resolver {
	return resource.New(
		resource.FS{FS: assets.Templates()},
		resource.Bytes(assets.Fonts()),
		resource.Dir{},
	)
}

// snapshot copies c so the call does not share the field table with the caller.
func (c Config) snapshot() (Config, error) {
	c.Fields = c.Fields.Clone()
	if c.Resolver == nil {
		c.Resolver = DefaultResolver()
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

func (c Config) renderOptions() render.Options {
	return render.Options{
		Page:         c.Page(),
		Fields:       c.Fields,
		Resolver:     c.Resolver,
		Template:     c.Template,
		Font:         c.Font,
		CreationDate: c.CreationDate,
	}
}

func (c Config) outputDir(dir string) string {
	if dir != "" {
		return dir
	}
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return DefaultOutputDir
}

// Generate renders one certificate into outDir and returns its path.
// Fields missing from values get their default; fields present with an empty
// value are drawn empty.
func Generate(cfg Config, values map[string]string, outDir string) (string, error) {
	c, err := cfg.snapshot()
	if err != nil {
		return "", err
	}

	resolved := make(map[string]string, len(c.Fields))
	for _, f := range c.Fields {
		v, ok := values[f.Key]
		if !ok {
			v = c.Defaults.Resolve(f.Default)
		}
		resolved[f.Key] = v
	}

	out := filepath.Join(c.outputDir(outDir), batch.OutputFileName(resolved[layout.KeyName]))
	if err := render.Render(render.Request{Values: resolved, Output: out}, c.renderOptions()); err != nil {
		return "", err
	}
	logging.Logger().Info("saved", "path", out)
	return out, nil
}

// Calibrate writes a calibration sheet into outDir and returns its path.
func Calibrate(cfg Config, outDir string) (string, error) {
	c, err := cfg.snapshot()
	if err != nil {
		return "", err
	}

	out := filepath.Join(c.outputDir(outDir), CalibrationFileName)
	if err := render.Calibrate(out, c.renderOptions()); err != nil {
		return "", err
	}
	logging.Logger().Info("calibration sheet saved", "path", out)
	return out, nil
}

// RunBatch generates a certificate per row of the CSV identified by source.
// The source is looked up on the file system first, then in the configured
// resources.
func RunBatch(cfg Config, source, outDir string) (batch.Result, error) {
	c, err := cfg.snapshot()
	if err != nil {
		return batch.Result{}, err
	}

	rc, err := batch.Open(resource.New(resource.Dir{}, c.Resolver), source)
	if err != nil {
		return batch.Result{}, fmt.Errorf("failed to open source: %w", err)
	}
	defer rc.Close()

	opts := c.renderOptions()
	return batch.Run(rc, c.outputDir(outDir), batch.Options{
		Fields:   c.Fields,
		Policy:   c.RowPolicy,
		Defaults: c.Defaults,
		Generate: func(req render.Request) error {
			return render.Render(req, opts)
		},
	})
}

// Package render composites certificates onto PDF pages.
//
// A certificate is a single landscape page: a background template image (or a
// plain border when no template can be found) with the variable text fields
// drawn on top at their configured anchors. Centered fields are positioned
// using the glyph advances of the loaded font.
//
// The package also draws calibration sheets: a 50pt grid with a crosshair and
// coordinate label on every anchor, used to tune anchors against a template.
//
// Main Functions:
//
// - Render: draws one certificate and writes it to a file
// - Calibrate: draws a calibration sheet and writes it to a file
// - Compose, DrawCalibration: the drawing steps, usable on any Surface
package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/gardar/certgen/pkg/layout"
	"github.com/gardar/certgen/pkg/logging"
	"github.com/gardar/certgen/pkg/resource"
)

var (
	// ErrMissingFont means the font resource could not be found.
	ErrMissingFont = fmt.Errorf("missing font: %w", resource.ErrNotFound)
	// ErrOutputUnwritable means the document could not be written.
	ErrOutputUnwritable = errors.New("output path unwritable")
	// ErrUnsupportedFont means the font is not a TrueType (glyf) font.
	ErrUnsupportedFont = errors.New("unsupported font: only TrueType outlines can be embedded")
)

// Options carries everything a render call reads. It is passed by value and
// not retained.
type Options struct {
	Page         layout.PageGeometry
	Fields       layout.Fields
	Resolver     *resource.Resolver
	Template     string    // Template resource identifier
	Font         string    // Font resource identifier
	CreationDate time.Time // Fixed document date; zero means now
}

// Request is one certificate to produce.
type Request struct {
	Values map[string]string // Field values keyed by field key
	Output string            // Destination file
}

// Render draws the certificate described by req and writes it to req.Output.
// A missing template falls back to a border; a missing font is fatal.
func Render(req Request, opts Options) error {
	if req.Output == "" {
		return fmt.Errorf("no output path given")
	}

	s, err := newDocument(opts)
	if err != nil {
		return err
	}

	template, found, err := opts.Resolver.ReadAll(opts.Template)
	if err != nil {
		return fmt.Errorf("failed to load template: %w", err)
	}
	if !found {
		logging.Logger().Warn("template not found, drawing fallback border", "template", opts.Template)
	}

	err = s.write(req.Output, func() error {
		return Compose(s, opts.Page, opts.Fields, template, req.Values)
	})
	if err != nil {
		return err
	}
	logging.Logger().Debug("certificate written", "path", req.Output)
	return nil
}

// Calibrate draws a calibration sheet for opts.Fields and writes it to output.
func Calibrate(output string, opts Options) error {
	s, err := newDocument(opts)
	if err != nil {
		return err
	}
	err = s.write(output, func() error {
		DrawCalibration(s, opts.Page, opts.Fields)
		return nil
	})
	if err != nil {
		return err
	}
	logging.Logger().Debug("calibration sheet written", "path", output)
	return nil
}

// newDocument creates the page and loads the font.
func newDocument(opts Options) (*pdfSurface, error) {
	if opts.Resolver == nil {
		return nil, fmt.Errorf("no resource resolver configured")
	}
	if opts.Page.Width <= 0 || opts.Page.Height <= 0 {
		return nil, fmt.Errorf("invalid page size %.2fx%.2f", opts.Page.Width, opts.Page.Height)
	}

	font, found, err := opts.Resolver.ReadAll(opts.Font)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrMissingFont, opts.Font)
	}

	s := newPDFSurface(opts.Page, opts.CreationDate)
	if err := s.loadFont(font); err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Font, err)
	}
	return s, nil
}

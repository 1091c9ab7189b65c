// Package batch produces one certificate per row of a CSV source.
//
// The header row names the columns; names are matched case-insensitively after
// trimming and may appear in any order. Extra columns are ignored. Every field
// must have a column or the run fails before the first row is processed.
//
// Rows are processed in order. The first failure stops the run; certificates
// already written are kept.
package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/gardar/certgen/pkg/layout"
	"github.com/gardar/certgen/pkg/logging"
	"github.com/gardar/certgen/pkg/render"
	"github.com/gardar/certgen/pkg/resource"
)

var (
	ErrSourceEmpty     = errors.New("empty source")
	ErrMissingColumn   = errors.New("missing required column")
	ErrRowFieldMissing = errors.New("missing row value")
)

// Policy decides what happens to a blank or missing cell.
type Policy int

const (
	// SubstituteDefaults fills the cell from the field's default.
	SubstituteDefaults Policy = iota
	// RejectRow fails the row, which stops the run.
	RejectRow
)

// ParsePolicy accepts "defaults" and "reject".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "defaults", "default":
		return SubstituteDefaults, nil
	case "reject":
		return RejectRow, nil
	default:
		return 0, fmt.Errorf("unknown row policy %q", s)
	}
}

func (p Policy) String() string {
	if p == RejectRow {
		return "reject"
	}
	return "defaults"
}

// Options configures a run.
type Options struct {
	Fields    layout.Fields
	Policy    Policy
	Defaults  layout.Defaulter
	NameField string // Field naming the output file; layout.KeyName when empty

	// Generate produces one certificate.
	Generate func(req render.Request) error
}

// Result lists the files written, in row order.
type Result struct {
	Written []string
}

// Open resolves a source identifier to a readable handle.
func Open(r *resource.Resolver, id string) (io.ReadCloser, error) {
	rc, ok, err := r.Resolve(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", resource.ErrNotFound, id)
	}
	return rc, nil
}

// Run reads src and generates a certificate per data row into outDir.
func Run(src io.Reader, outDir string, opts Options) (Result, error) {
	var result Result

	if opts.Generate == nil {
		return result, fmt.Errorf("no generator configured")
	}
	if err := opts.Fields.Validate(); err != nil {
		return result, err
	}
	nameField := opts.NameField
	if nameField == "" {
		nameField = layout.KeyName
	}

	// A UTF-8 or UTF-16 byte order mark must not end up in the first header.
	decoded := transform.NewReader(src, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return result, ErrSourceEmpty
	}
	if err != nil {
		return result, fmt.Errorf("failed to read header: %w", err)
	}

	mapping, err := NewColumnMapping(header, opts.Fields)
	if err != nil {
		return result, err
	}

	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("failed to read row %d: %w", row, err)
		}

		values, err := mapping.Extract(record, row, opts.Fields, opts.Policy, opts.Defaults)
		if err != nil {
			return result, err
		}

		out := filepath.Join(outDir, OutputFileName(values[nameField]))
		if err := opts.Generate(render.Request{Values: values, Output: out}); err != nil {
			return result, fmt.Errorf("row %d: %w", row, err)
		}
		result.Written = append(result.Written, out)
		logging.Logger().Info("saved", "row", row, "path", out)
	}

	return result, nil
}

package batch

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gardar/certgen/pkg/layout"
)

// ColumnMapping locates the columns of a header row.
type ColumnMapping struct {
	// Header maps a normalized header name to its zero-based column index.
	Header map[string]int

	// fields maps the column of each field given at construction to its index.
	fields map[string]int
}

// MissingColumnError reports a field whose column is not in the header.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("source missing column: %s", e.Column)
}

func (e *MissingColumnError) Unwrap() error {
	return ErrMissingColumn
}

// RowFieldError reports a row without a usable value for a field.
type RowFieldError struct {
	Row   int // 1-based data row number
	Field string
}

func (e *RowFieldError) Error() string {
	return fmt.Sprintf("row %d: missing value for %s", e.Row, e.Field)
}

func (e *RowFieldError) Unwrap() error {
	return ErrRowFieldMissing
}

// normalizer lower-cases and trims header names.
type normalizer struct {
	caser cases.Caser
}

func newNormalizer() normalizer {
	return normalizer{caser: cases.Lower(language.Und)}
}

func (n normalizer) normalize(s string) string {
	return n.caser.String(strings.TrimSpace(s))
}

// NewColumnMapping indexes a header row and checks that every field has a
// column. When a name repeats, the last column wins.
func NewColumnMapping(header []string, fields layout.Fields) (ColumnMapping, error) {
	n := newNormalizer()
	m := ColumnMapping{
		Header: make(map[string]int, len(header)),
		fields: make(map[string]int, len(fields)),
	}
	for i, h := range header {
		m.Header[n.normalize(h)] = i
	}
	for _, f := range fields {
		col := columnOf(f)
		i, ok := m.Header[n.normalize(col)]
		if !ok {
			return ColumnMapping{}, &MissingColumnError{Column: col}
		}
		m.fields[col] = i
	}
	return m, nil
}

// Index returns the column of field f. Fields not given to NewColumnMapping
// are looked up in the header.
func (m ColumnMapping) Index(f layout.Field) (int, bool) {
	col := columnOf(f)
	if i, ok := m.fields[col]; ok {
		return i, true
	}
	i, ok := m.Header[newNormalizer().normalize(col)]
	return i, ok
}

// Extract pulls the value of every field out of a row. Absent, out of range
// and blank cells are defaulted or rejected according to policy.
func (m ColumnMapping) Extract(record []string, row int, fields layout.Fields, policy Policy, defaults layout.Defaulter) (map[string]string, error) {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		idx, ok := m.Index(f)
		if !ok {
			idx = -1
		}
		if v, ok := cell(record, idx); ok {
			values[f.Key] = v
			continue
		}
		if policy == RejectRow {
			return nil, &RowFieldError{Row: row, Field: f.Key}
		}
		values[f.Key] = defaults.Resolve(f.Default)
	}
	return values, nil
}

func columnOf(f layout.Field) string {
	if f.Column != "" {
		return f.Column
	}
	return f.Key
}

func cell(record []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(record) {
		return "", false
	}
	v := strings.TrimSpace(record[idx])
	return v, v != ""
}

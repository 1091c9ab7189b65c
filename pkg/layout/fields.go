package layout

import "fmt"

// Field keys of the canonical certificate.
const (
	KeyName   = "name"
	KeyCourse = "course"
	KeyDate   = "date"
	KeyCertID = "certId"
)

// Anchor places one text field on the page.
type Anchor struct {
	X      float64 // Left edge, or center when Center is set
	Y      float64 // Baseline
	Size   float64 // Font size in points
	Center bool    // Center the text horizontally on X
}

// Field is one variable text field of a certificate.
type Field struct {
	Key     string  // Identifier used by requests and config
	Column  string  // CSV header naming the field (matched case-insensitively)
	Label   string  // Label printed on the calibration sheet
	Prefix  string  // Literal drawn in front of the value
	Anchor  Anchor  // Placement
	Default Default // Value used when none is supplied
}

// Fields is the ordered field table.
type Fields []Field

// DefaultFields returns the canonical four-field table for the given page.
func DefaultFields(page PageGeometry) Fields {
	return Fields{
		{
			Key:     KeyName,
			Column:  "name",
			Label:   "NAME",
			Anchor:  Anchor{X: page.CenterX(), Y: 250, Size: 36, Center: true},
			Default: Literal("Student Name"),
		},
		{
			Key:     KeyCourse,
			Column:  "course",
			Label:   "COURSE",
			Anchor:  Anchor{X: page.CenterX(), Y: 160, Size: 22, Center: true},
			Default: Literal("Course Title"),
		},
		{
			Key:     KeyDate,
			Column:  "date",
			Label:   "DATE",
			Anchor:  Anchor{X: 250, Y: 100, Size: 16},
			Default: Default{Kind: DefaultToday},
		},
		{
			Key:     KeyCertID,
			Column:  "certId",
			Label:   "ID",
			Prefix:  "ID: ",
			Anchor:  Anchor{X: 40, Y: 40, Size: 12},
			Default: Default{Kind: DefaultUUID},
		},
	}
}

// Clone returns a copy that shares nothing with f.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	copy(out, f)
	return out
}

// Lookup finds a field by key.
func (f Fields) Lookup(key string) (Field, bool) {
	for _, field := range f {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

// Keys returns the field keys in drawing order.
func (f Fields) Keys() []string {
	keys := make([]string, len(f))
	for i, field := range f {
		keys[i] = field.Key
	}
	return keys
}

// WithAnchor returns a copy of f with the anchor of key replaced.
func (f Fields) WithAnchor(key string, anchor Anchor) (Fields, error) {
	out := f.Clone()
	for i := range out {
		if out[i].Key == key {
			out[i].Anchor = anchor
			return out, nil
		}
	}
	return nil, fmt.Errorf("unknown field %q", key)
}

// Validate checks that keys are present and unique.
func (f Fields) Validate() error {
	if len(f) == 0 {
		return fmt.Errorf("no fields defined")
	}
	seen := make(map[string]bool, len(f))
	for i, field := range f {
		if field.Key == "" {
			return fmt.Errorf("field %d has no key", i+1)
		}
		if seen[field.Key] {
			return fmt.Errorf("duplicate field %q", field.Key)
		}
		seen[field.Key] = true
	}
	return nil
}

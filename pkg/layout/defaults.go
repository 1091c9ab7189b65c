package layout

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultKind selects how a missing field value is produced.
type DefaultKind string

const (
	DefaultLiteral DefaultKind = "literal"  // Fixed text
	DefaultToday   DefaultKind = "today"    // Current date as YYYY-MM-DD
	DefaultUUID    DefaultKind = "uuid"     // Fresh random UUID
	DefaultShortID DefaultKind = "short-id" // CERT- followed by 8 hex digits
)

// DateFormat is the layout of generated dates.
const DateFormat = "2006-01-02"

// Default is the value policy of a field.
type Default struct {
	Kind  DefaultKind
	Value string // Used by DefaultLiteral
}

// Literal returns a fixed-text default.
func Literal(s string) Default {
	return Default{Kind: DefaultLiteral, Value: s}
}

// ParseDefaultKind accepts the names used in config files.
func ParseDefaultKind(s string) (DefaultKind, error) {
	switch k := DefaultKind(strings.ToLower(strings.TrimSpace(s))); k {
	case DefaultLiteral, DefaultToday, DefaultUUID, DefaultShortID:
		return k, nil
	case "":
		return DefaultLiteral, nil
	default:
		return "", fmt.Errorf("unknown default kind %q", s)
	}
}

// Defaulter produces default values. The zero value uses the wall clock
// and random UUIDs.
type Defaulter struct {
	Now   func() time.Time
	NewID func() string
}

// Resolve produces the value for d.
func (g Defaulter) Resolve(d Default) string {
	switch d.Kind {
	case DefaultToday:
		return g.now().Format(DateFormat)
	case DefaultUUID:
		return g.newID()
	case DefaultShortID:
		id := strings.ReplaceAll(g.newID(), "-", "")
		if len(id) > 8 {
			id = id[:8]
		}
		return "CERT-" + strings.ToUpper(id)
	default:
		return d.Value
	}
}

func (g Defaulter) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

func (g Defaulter) newID() string {
	if g.NewID == nil {
		return uuid.New().String()
	}
	return g.NewID()
}

package render

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/gardar/certgen/pkg/layout"
	"github.com/gardar/certgen/pkg/metrics"
)

const (
	borderInset     = 20
	borderLineWidth = 2
)

// Compose draws a certificate on s: the template stretched over the whole
// page, or a border when template is nil, then every field in table order.
// A field without a value is drawn as empty text.
func Compose(s Surface, page layout.PageGeometry, fields layout.Fields, template []byte, values map[string]string) error {
	if template != nil {
		if err := s.DrawImage(template, 0, 0, page.Width, page.Height); err != nil {
			return fmt.Errorf("failed to draw template: %w", err)
		}
	} else {
		drawBorder(s, page)
	}

	for _, field := range fields {
		drawField(s, field, values[field.Key])
	}
	return nil
}

func drawBorder(s Surface, page layout.PageGeometry) {
	s.StrokeRect(borderInset, borderInset,
		page.Width-2*borderInset, page.Height-2*borderInset, borderLineWidth)
}

func drawField(s Surface, field layout.Field, value string) {
	text := field.Prefix + norm.NFC.String(value)
	a := field.Anchor
	x := a.X
	if a.Center {
		x = metrics.CenteredX(a.X, s.AdvanceWidth(text, a.Size))
	}
	s.DrawText(x, a.Y, a.Size, text)
}

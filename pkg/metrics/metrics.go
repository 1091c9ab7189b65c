// Package metrics measures text for horizontal placement.
//
// Glyph advances come from the loaded font in a 1000 units-per-em space and
// are scaled to the requested size. The measurements are only used to center
// text on an anchor; nothing is wrapped or truncated.
package metrics

// UnitsPerEm is the glyph space the measurer reports in.
const UnitsPerEm = 1000

// GlyphMeasurer sums glyph advances of a string in the current font.
// *fpdf.Fpdf satisfies it once a font has been selected.
type GlyphMeasurer interface {
	GetStringSymbolWidth(s string) int
}

// AdvanceWidth returns the width of text drawn at size points.
func AdvanceWidth(m GlyphMeasurer, text string, size float64) float64 {
	if text == "" {
		return 0
	}
	return float64(m.GetStringSymbolWidth(text)) * size / UnitsPerEm
}

// CenteredX returns the left edge of a run of the given width centered on x.
func CenteredX(x, width float64) float64 {
	return x - width/2
}

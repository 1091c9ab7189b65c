// Package layout describes where things go on a certificate page.
//
// The coordinate model is the PDF one: units are points (1" = 72pt), the origin
// is the bottom-left corner of the page and Y grows upwards. A page is always
// landscape; its geometry is derived from a portrait paper size with the axes
// swapped.
//
// Key Types:
//
// - PaperSize: a named portrait sheet size
// - PageGeometry: the landscape page every certificate is drawn on
// - Anchor: position, font size and centering of one text field
// - Field: a named field definition (anchor, CSV column, default policy)
// - Fields: the ordered field table; drawing order is table order
package layout

// PaperSize is a portrait sheet size in points.
type PaperSize struct {
	Name   string
	Width  float64 // in `pt`
	Height float64 // in `pt`
}

var (
	A4     = PaperSize{Name: "A4", Width: 595.28, Height: 841.89} // 210mm x 297mm
	Letter = PaperSize{Name: "Letter", Width: 612, Height: 792}   // 8.5" x 11"
)

// PaperSizes lists the sizes that can be selected by name.
var PaperSizes = map[string]PaperSize{
	"a4":     A4,
	"letter": Letter,
}

// PageGeometry is the landscape page size in points.
type PageGeometry struct {
	Width  float64
	Height float64
}

// Landscape turns a portrait paper size on its side.
func Landscape(size PaperSize) PageGeometry {
	return PageGeometry{Width: size.Height, Height: size.Width}
}

// CenterX returns the horizontal center of the page.
func (g PageGeometry) CenterX() float64 {
	return g.Width / 2
}

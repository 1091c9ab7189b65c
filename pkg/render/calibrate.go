package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gardar/certgen/pkg/layout"
)

// Calibration sheet geometry.
const (
	GridStep        = 50
	GridLineWidth   = 0.2
	MarkerArm       = 5
	MarkerLineWidth = 1
	LabelOffset     = 8
	LabelSize       = 12
)

// DrawCalibration draws a coordinate grid and a labelled crosshair on every
// field anchor. No template is drawn.
func DrawCalibration(s Surface, page layout.PageGeometry, fields layout.Fields) {
	for x := 0.0; x <= page.Width; x += GridStep {
		s.StrokeLine(x, 0, x, page.Height, GridLineWidth)
	}
	for y := 0.0; y <= page.Height; y += GridStep {
		s.StrokeLine(0, y, page.Width, y, GridLineWidth)
	}

	for _, field := range fields {
		x, y := field.Anchor.X, field.Anchor.Y
		s.StrokeLine(x-MarkerArm, y-MarkerArm, x+MarkerArm, y+MarkerArm, MarkerLineWidth)
		s.StrokeLine(x-MarkerArm, y+MarkerArm, x+MarkerArm, y-MarkerArm, MarkerLineWidth)
		s.DrawText(x+LabelOffset, y+LabelOffset, LabelSize, CalibrationLabel(field))
	}
}

// CalibrationLabel names a field and its rounded anchor, e.g. "NAME @ (421,250)".
func CalibrationLabel(field layout.Field) string {
	label := field.Label
	if label == "" {
		label = strings.ToUpper(field.Key)
	}
	return fmt.Sprintf("%s @ (%d,%d)", label,
		int(math.Round(field.Anchor.X)), int(math.Round(field.Anchor.Y)))
}

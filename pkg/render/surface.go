package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/gardar/certgen/pkg/layout"
	"github.com/gardar/certgen/pkg/metrics"
)

// Surface is a single page that can be drawn on.
// Coordinates are in points with the origin at the bottom-left corner.
type Surface interface {
	DrawImage(data []byte, x, y, w, h float64) error
	StrokeRect(x, y, w, h, lineWidth float64)
	StrokeLine(x1, y1, x2, y2, lineWidth float64)
	DrawText(x, y, size float64, text string)
	AdvanceWidth(text string, size float64) float64
}

const fontFamily = "certgen"

// maxBMP is the highest code point fpdf keeps glyph widths for.
const maxBMP = 0xFFFF

// pdfSurface draws on a one-page fpdf document.
type pdfSurface struct {
	pdf    *fpdf.Fpdf
	page   layout.PageGeometry
	images int
}

func newPDFSurface(page layout.PageGeometry, created time.Time) *pdfSurface {
	pdf := fpdf.New("L", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	if !created.IsZero() {
		pdf.SetCreationDate(created)
		pdf.SetModificationDate(created)
	}
	pdf.AddPageFormat("L", fpdf.SizeType{Wd: page.Width, Ht: page.Height})
	return &pdfSurface{pdf: pdf, page: page}
}

// loadFont registers a TrueType font and selects it. Every glyph drawn on
// the page is embedded when the document is written.
func (s *pdfSurface) loadFont(data []byte) (err error) {
	if !isTrueType(data) {
		return ErrUnsupportedFont
	}
	defer recoverPDF(&err, "failed to load font")

	s.pdf.AddUTF8FontFromBytes(fontFamily, "", data)
	s.pdf.SetFont(fontFamily, "", 12)
	if s.pdf.Err() {
		return fmt.Errorf("failed to load font: %w", s.pdf.Error())
	}
	return nil
}

// top converts a bottom-left based y to fpdf's top-left based y.
func (s *pdfSurface) top(y float64) float64 {
	return s.page.Height - y
}

func (s *pdfSurface) DrawImage(data []byte, x, y, w, h float64) error {
	if isPDF(data) {
		return s.drawPDFPage(data, x, y, w, h)
	}

	imageType, err := detectImageType(data)
	if err != nil {
		return err
	}

	s.images++
	name := fmt.Sprintf("img%d", s.images)
	opts := fpdf.ImageOptions{ReadDpi: false, ImageType: imageType}
	s.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	s.pdf.ImageOptions(name, x, s.top(y+h), w, h, false, opts, 0, "")
	if s.pdf.Err() {
		return fmt.Errorf("failed to draw %s image: %w", imageType, s.pdf.Error())
	}
	return nil
}

// drawPDFPage places the first page of a PDF as a template.
func (s *pdfSurface) drawPDFPage(data []byte, x, y, w, h float64) (err error) {
	// gofpdi panics on malformed input
	defer recoverPDF(&err, "failed to import PDF template")

	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(data))
	tpl := importer.ImportPageFromStream(s.pdf, &rs, 1, "/MediaBox")
	importer.UseImportedTemplate(s.pdf, tpl, x, s.top(y+h), w, h)
	if s.pdf.Err() {
		return fmt.Errorf("failed to import PDF template: %w", s.pdf.Error())
	}
	return nil
}

func (s *pdfSurface) StrokeRect(x, y, w, h, lineWidth float64) {
	s.pdf.SetLineWidth(lineWidth)
	s.pdf.Rect(x, s.top(y+h), w, h, "D")
}

func (s *pdfSurface) StrokeLine(x1, y1, x2, y2, lineWidth float64) {
	s.pdf.SetLineWidth(lineWidth)
	s.pdf.Line(x1, s.top(y1), x2, s.top(y2))
}

func (s *pdfSurface) DrawText(x, y, size float64, text string) {
	s.pdf.SetFontSize(size)
	s.pdf.Text(x, s.top(y), drawableText(text))
}

func (s *pdfSurface) AdvanceWidth(text string, size float64) float64 {
	s.pdf.SetFontSize(size)
	return metrics.AdvanceWidth(s.pdf, drawableText(text), size)
}

// drawableText keeps text within what fpdf can map: valid UTF-8 in the Basic
// Multilingual Plane. Anything else becomes U+FFFD.
func drawableText(text string) string {
	text = strings.ToValidUTF8(text, string(unicode.ReplacementChar))
	return strings.Map(func(r rune) rune {
		if r > maxBMP {
			return unicode.ReplacementChar
		}
		return r
	}, text)
}

// save writes the document, creating parent directories. The PDF is
// serialized in memory first so a failure leaves no file behind.
func (s *pdfSurface) save(path string) error {
	if s.pdf.Err() {
		return fmt.Errorf("failed to build PDF: %w", s.pdf.Error())
	}
	var buf bytes.Buffer
	if err := s.pdf.Output(&buf); err != nil {
		return fmt.Errorf("failed to build PDF: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputUnwritable, path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputUnwritable, path, err)
	}
	return nil
}

// write runs draw on s and saves the page to path. A panic inside fpdf is
// returned as an error.
func (s *pdfSurface) write(path string, draw func() error) (err error) {
	defer recoverPDF(&err, "failed to build PDF")

	if err := draw(); err != nil {
		return err
	}
	return s.save(path)
}

// recoverPDF turns a panic into an error stored in *err.
func recoverPDF(err *error, msg string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: %v", msg, r)
	}
}

func isPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

// isTrueType reports whether data starts with a TrueType outline signature.
// OpenType fonts with CFF outlines ("OTTO") are not supported by fpdf.
func isTrueType(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0x00, 0x01, 0x00, 0x00}) ||
		bytes.HasPrefix(data, []byte("true"))
}

// detectImageType tries to figure out whether the data is PNG, JPEG, etc.
func detectImageType(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image config: %w", err)
	}
	return strings.ToUpper(format), nil
}

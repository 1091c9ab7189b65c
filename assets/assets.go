// Package assets bundles the resources certgen ships with: a default
// certificate template and a Unicode-capable font.
package assets

import (
	"embed"
	"io/fs"

	"golang.org/x/image/font/gofont/goregular"
)

// Identifiers of the bundled resources.
const (
	TemplateID = "/templates/certificate-template.png"
	FontID     = "/fonts/go-regular.ttf"
)

//go:embed templates/*.png
var templates embed.FS

// Templates returns the embedded template images, rooted so that
// "templates/certificate-template.png" resolves.
func Templates() fs.FS {
	return templates
}

// Fonts maps font identifiers to TrueType data.
func Fonts() map[string][]byte {
	return map[string][]byte{
		FontID: goregular.TTF,
	}
}

package certgen

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gardar/certgen/assets"
	"github.com/gardar/certgen/pkg/batch"
	"github.com/gardar/certgen/pkg/layout"
	"github.com/gardar/certgen/pkg/resource"
)

// DefaultOutputDir is used when no output directory is configured.
const DefaultOutputDir = "out"

// Config holds everything a generation call reads. It is copied at the start
// of each call, so a caller may change its own Config between calls.
type Config struct {
	Paper        layout.PaperSize   // Portrait paper size, drawn landscape
	Fields       layout.Fields      // Field table in drawing order
	Template     string             // Template image or PDF identifier
	Font         string             // TrueType font identifier
	OutputDir    string             // Used when a call gives no directory
	RowPolicy    batch.Policy       // Blank cell handling in batch runs
	CreationDate time.Time          // Fixed document date; zero means now
	Defaults     layout.Defaulter   // Clock and identifier source for defaults
	Resolver     *resource.Resolver // nil = bundled assets, then the file system
}

// DefaultConfig returns the canonical A4 certificate using the bundled
// template and font.
func DefaultConfig() Config {
	return Config{
		Paper:     layout.A4,
		Fields:    layout.DefaultFields(layout.Landscape(layout.A4)),
		Template:  assets.TemplateID,
		Font:      assets.FontID,
		OutputDir: DefaultOutputDir,
		RowPolicy: batch.SubstituteDefaults,
	}
}

// Page returns the landscape page geometry.
func (c Config) Page() layout.PageGeometry {
	return layout.Landscape(c.Paper)
}

// WithAnchor returns a copy of c with one field moved.
func (c Config) WithAnchor(key string, anchor layout.Anchor) (Config, error) {
	fields, err := c.Fields.WithAnchor(key, anchor)
	if err != nil {
		return c, err
	}
	c.Fields = fields
	return c, nil
}

// Validate checks the settings every call needs.
func (c Config) Validate() error {
	if c.Paper.Width <= 0 || c.Paper.Height <= 0 {
		return fmt.Errorf("invalid paper size %q", c.Paper.Name)
	}
	if c.Font == "" {
		return fmt.Errorf("no font configured")
	}
	return c.Fields.Validate()
}

type yamlConfig struct {
	Paper     string                `yaml:"paper"`
	Template  *string               `yaml:"template"`
	Font      string                `yaml:"font"`
	OutputDir string                `yaml:"output_dir"`
	RowPolicy string                `yaml:"row_policy"`
	Fields    []yamlField           `yaml:"fields"`
	Anchors   map[string]yamlAnchor `yaml:"anchors"`
}

type yamlField struct {
	Key     string      `yaml:"key"`
	Column  string      `yaml:"column"`
	Label   string      `yaml:"label"`
	Prefix  string      `yaml:"prefix"`
	X       coord       `yaml:"x"`
	Y       float64     `yaml:"y"`
	Size    float64     `yaml:"size"`
	Center  bool        `yaml:"center"`
	Default yamlDefault `yaml:"default"`
}

type yamlDefault struct {
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
}

type yamlAnchor struct {
	X      *coord   `yaml:"x"`
	Y      *float64 `yaml:"y"`
	Size   *float64 `yaml:"size"`
	Center *bool    `yaml:"center"`
}

// coord is a horizontal position: a number, or "center" for the page center.
type coord struct {
	value    float64
	onCenter bool
}

func (c *coord) UnmarshalYAML(node *yaml.Node) error {
	if strings.EqualFold(strings.TrimSpace(node.Value), "center") {
		c.onCenter = true
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(node.Value), 64)
	if err != nil {
		return fmt.Errorf("line %d: x must be a number or \"center\", got %q", node.Line, node.Value)
	}
	c.value = v
	return nil
}

func (c coord) resolve(page layout.PageGeometry) float64 {
	if c.onCenter {
		return page.CenterX()
	}
	return c.value
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig applies YAML settings to DefaultConfig.
//
//	paper: a4
//	template: /templates/certificate-template.png
//	font: fonts/NotoSerif-Regular.ttf
//	row_policy: reject
//	anchors:
//	  name: {y: 270, size: 40}
//	  date: {x: center}
func ParseConfig(data []byte) (Config, error) {
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if yc.Paper != "" {
		size, ok := layout.PaperSizes[strings.ToLower(yc.Paper)]
		if !ok {
			return Config{}, fmt.Errorf("unknown paper size %q", yc.Paper)
		}
		cfg.Paper = size
	}
	page := cfg.Page()
	cfg.Fields = layout.DefaultFields(page)

	if yc.Template != nil {
		cfg.Template = *yc.Template
	}
	if yc.Font != "" {
		cfg.Font = yc.Font
	}
	if yc.OutputDir != "" {
		cfg.OutputDir = yc.OutputDir
	}
	policy, err := batch.ParsePolicy(yc.RowPolicy)
	if err != nil {
		return Config{}, err
	}
	cfg.RowPolicy = policy

	if len(yc.Fields) > 0 {
		fields := make(layout.Fields, 0, len(yc.Fields))
		for _, f := range yc.Fields {
			kind, err := layout.ParseDefaultKind(f.Default.Kind)
			if err != nil {
				return Config{}, fmt.Errorf("field %q: %w", f.Key, err)
			}
			fields = append(fields, layout.Field{
				Key:     f.Key,
				Column:  f.Column,
				Label:   f.Label,
				Prefix:  f.Prefix,
				Anchor:  layout.Anchor{X: f.X.resolve(page), Y: f.Y, Size: f.Size, Center: f.Center},
				Default: layout.Default{Kind: kind, Value: f.Default.Value},
			})
		}
		cfg.Fields = fields
	}

	for key, a := range yc.Anchors {
		field, ok := cfg.Fields.Lookup(key)
		if !ok {
			return Config{}, fmt.Errorf("anchor for unknown field %q", key)
		}
		anchor := field.Anchor
		if a.X != nil {
			anchor.X = a.X.resolve(page)
		}
		if a.Y != nil {
			anchor.Y = *a.Y
		}
		if a.Size != nil {
			anchor.Size = *a.Size
		}
		if a.Center != nil {
			anchor.Center = *a.Center
		}
		if cfg, err = cfg.WithAnchor(key, anchor); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

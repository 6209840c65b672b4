/*
Package config holds the configuration of preview rendering.

Configuration is read from YAML files of the form

    indent-step: 16
    empty-height: 24px
    highlight-style: github
    stylesheets:
      - preview.css
    textarea:
      width: 640px
      font-family: "Inter, sans-serif"
      font-size: 16px
      line-height: 24px
      padding: 4px 8px

Values not given in a file keep their defaults. Lengths are CSS lengths.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/npillmayer/mdlines/core"
	"github.com/npillmayer/mdlines/core/dimen"
	"github.com/npillmayer/schuko/tracing"
	"sigs.k8s.io/yaml"
)

// tracer traces with key 'mdlines.core'.
func tracer() tracing.Trace {
	return tracing.Select("mdlines.core")
}

// Config is the configuration of preview rendering.
type Config struct {
	IndentStep     int            `json:"indent-step" validate:"gte=0,lte=256"`
	EmptyHeight    string         `json:"empty-height" validate:"required,length"`
	HighlightStyle string         `json:"highlight-style" validate:"required"`
	StyleSheets    []string       `json:"stylesheets,omitempty" validate:"dive,required"`
	Textarea       TextareaConfig `json:"textarea"`

	dir string // directory of the config file, for relative paths
}

// TextareaConfig describes the geometry and font of editing textareas.
type TextareaConfig struct {
	Width      string `json:"width" validate:"omitempty,length"`
	FontFamily string `json:"font-family" validate:"required"`
	FontSize   string `json:"font-size" validate:"required,length"`
	LineHeight string `json:"line-height" validate:"omitempty,length"`
	Padding    string `json:"padding" validate:"omitempty,padding"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		IndentStep:     16,
		EmptyHeight:    "24px",
		HighlightStyle: "github",
		Textarea: TextareaConfig{
			FontFamily: "sans-serif",
			FontSize:   "16px",
			LineHeight: "24px",
			Padding:    "0",
		},
	}
}

// Load reads a YAML configuration file on top of the defaults and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read configuration %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	c.dir = filepath.Dir(path)
	tracer().Debugf("configuration loaded from %s", path)
	return c, nil
}

// Parse reads YAML configuration data on top of the defaults and validates
// the result.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse configuration")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("length", func(fl validator.FieldLevel) bool {
		_, pcnt, err := dimen.ParseDimen(fl.Field().String())
		return err == nil && !pcnt
	})
	_ = validate.RegisterValidation("padding", func(fl validator.FieldLevel) bool {
		_, err := parsePadding(fl.Field().String())
		return err == nil
	})
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return core.WrapError(err, core.EINVALID, "invalid configuration")
	}
	return nil
}

// YAML returns the configuration as YAML.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cannot marshal configuration")
	}
	return out, nil
}

// --- Typed values ----------------------------------------------------------

// EmptyHeightDimen returns the height of empty textareas.
func (c *Config) EmptyHeightDimen() dimen.Dimen {
	return length(c.EmptyHeight)
}

// WidthDimen returns the textarea width, 0 for unbounded.
func (t TextareaConfig) WidthDimen() dimen.Dimen {
	return length(t.Width)
}

// FontSizeDimen returns the textarea font size.
func (t TextareaConfig) FontSizeDimen() dimen.Dimen {
	return length(t.FontSize)
}

// LineHeightDimen returns the textarea line height, 0 for the font's
// natural line height.
func (t TextareaConfig) LineHeightDimen() dimen.Dimen {
	return length(t.LineHeight)
}

// PaddingDimens returns the textarea padding as top, right, bottom, left.
func (t TextareaConfig) PaddingDimens() [4]dimen.Dimen {
	p, _ := parsePadding(t.Padding)
	return p
}

func length(s string) dimen.Dimen {
	if s == "" {
		return 0
	}
	d, _, err := dimen.ParseDimen(s)
	if err != nil {
		tracer().Errorf("illegal length %q in configuration", s)
		return 0
	}
	return d
}

// parsePadding parses a CSS padding shorthand of 1 to 4 lengths.
func parsePadding(s string) ([4]dimen.Dimen, error) {
	var p [4]dimen.Dimen
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return p, nil
	}
	if len(fields) > 4 {
		return p, core.Error(core.EINVALID, "padding %q has more than 4 values", s)
	}
	v := make([]dimen.Dimen, len(fields))
	for i, f := range fields {
		d, pcnt, err := dimen.ParseDimen(f)
		if err != nil || pcnt {
			return p, core.Error(core.EINVALID, "illegal padding value %q", f)
		}
		v[i] = d
	}
	switch len(v) {
	case 1:
		p = [4]dimen.Dimen{v[0], v[0], v[0], v[0]}
	case 2:
		p = [4]dimen.Dimen{v[0], v[1], v[0], v[1]}
	case 3:
		p = [4]dimen.Dimen{v[0], v[1], v[2], v[1]}
	case 4:
		p = [4]dimen.Dimen{v[0], v[1], v[2], v[3]}
	}
	return p, nil
}

// ReadStyleSheets reads the configured style sheets. Relative paths are
// resolved against the directory of the configuration file.
func (c *Config) ReadStyleSheets() ([]string, error) {
	sheets := make([]string, 0, len(c.StyleSheets))
	for _, path := range c.StyleSheets {
		if !filepath.IsAbs(path) && c.dir != "" {
			path = filepath.Join(c.dir, path)
		}
		css, err := os.ReadFile(path)
		if err != nil {
			return nil, core.WrapError(err, core.EMISSING, "cannot read style sheet %s", path)
		}
		sheets = append(sheets, string(css))
	}
	return sheets, nil
}

package loaders

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/oxide/engine/core"
)

// Palette is a set of named colors read from a TOML file:
//
//	name = "menu"
//
//	[colors]
//	background = "#1e1e2e"
//	accent = "#f38ba8cc"
type Palette struct {
	Name   string
	Colors map[string]color.NRGBA
}

type paletteFile struct {
	Name   string            `toml:"name"`
	Colors map[string]string `toml:"colors"`
}

func (p *Palette) Kind() string {
	return "palette"
}

func (p *Palette) Load(path string, data []byte) error {
	var file paletteFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("%w: %w", core.ErrMalformedAsset, err)
	}

	colors := make(map[string]color.NRGBA, len(file.Colors))
	for name, hex := range file.Colors {
		c, err := ParseHexColor(hex)
		if err != nil {
			return fmt.Errorf("%w: color %q: %w", core.ErrMalformedAsset, name, err)
		}
		colors[name] = c
	}

	p.Name = file.Name
	p.Colors = colors
	return nil
}

// Color returns the named color, or fallback when the palette lacks it.
func (p *Palette) Color(name string, fallback color.Color) color.Color {
	if c, ok := p.Colors[name]; ok {
		return c
	}
	return fallback
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

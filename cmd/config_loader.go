package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/nmosnav/internal/formatter"
)

// paletteConfig is the on-disk shape of --config-file:
//
//	colors:
//	  key: "#61afef"
//	  value: "#98c379"
//
// Every color is optional; missing ones keep the built-in default.
type paletteConfig struct {
	Colors colorsBlock `yaml:"colors"`
}

type colorsBlock struct {
	Key     string `yaml:"key"`
	Value   string `yaml:"value"`
	Brace   string `yaml:"brace"`
	Bracket string `yaml:"bracket"`
	Header  string `yaml:"header"`
	Cursor  string `yaml:"cursor"`
	Notice  string `yaml:"notice"`
}

// loadPalette reads the palette from cfgPath. An empty path means no config
// file and yields the defaults; nothing is read from well-known locations.
func loadPalette(cfgPath string) (formatter.Palette, error) {
	if cfgPath == "" {
		return formatter.DefaultPalette(), nil
	}
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return formatter.Palette{}, fmt.Errorf("read config: %w", err)
	}
	return parsePalette(data)
}

func parsePalette(data []byte) (formatter.Palette, error) {
	var cfg paletteConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return formatter.Palette{}, fmt.Errorf("decode config: %w", err)
	}

	var p formatter.Palette
	fields := []struct {
		name string
		raw  string
		dst  *color.Color
	}{
		{"key", cfg.Colors.Key, &p.Key},
		{"value", cfg.Colors.Value, &p.Value},
		{"brace", cfg.Colors.Brace, &p.Brace},
		{"bracket", cfg.Colors.Bracket, &p.Bracket},
		{"header", cfg.Colors.Header, &p.Header},
		{"cursor", cfg.Colors.Cursor, &p.Cursor},
		{"notice", cfg.Colors.Notice, &p.Notice},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		c, err := parseHexColor(f.raw)
		if err != nil {
			return formatter.Palette{}, fmt.Errorf("colors.%s: %w", f.name, err)
		}
		*f.dst = c
	}
	return formatter.NewStyler(p, false).Palette(), nil
}

// parseHexColor accepts "#rrggbb" only; terminals get the exact 24-bit value.
func parseHexColor(s string) (color.Color, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok || len(hex) != 6 {
		return nil, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

package config

import (
	"fmt"
	"strings"

	"github.com/srcmake/srcmake/pkg/types"
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"

	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the fully merged srcmake configuration.
type Config struct {
	Generate Generate `koanf:"generate" json:"generate" yaml:"generate"`
	Paths    Paths    `koanf:"paths" json:"paths" yaml:"paths"`
	History  History  `koanf:"history" json:"history" yaml:"history"`
	Output   Output   `koanf:"output" json:"output" yaml:"output"`
}

// Generate controls file generation.
type Generate struct {
	Author             string `koanf:"author" json:"author" yaml:"author"`
	Overwrite          string `koanf:"overwrite" json:"overwrite" yaml:"overwrite"`
	Strict             bool   `koanf:"strict" json:"strict" yaml:"strict"`
	CollapseBlankLines bool   `koanf:"collapse_blank_lines" json:"collapse_blank_lines" yaml:"collapse_blank_lines"`
	TrimDoubleSpaces   bool   `koanf:"trim_double_spaces" json:"trim_double_spaces" yaml:"trim_double_spaces"`
}

// Paths lists extra template and language roots.
type Paths struct {
	Templates []string `koanf:"templates" json:"templates" yaml:"templates"`
	Languages []string `koanf:"languages" json:"languages" yaml:"languages"`
}

// History controls the generation ledger.
type History struct {
	Enabled bool   `koanf:"enabled" json:"enabled" yaml:"enabled"`
	Path    string `koanf:"path" json:"path" yaml:"path"`
}

// Output controls terminal rendering.
type Output struct {
	Color  string `koanf:"color" json:"color" yaml:"color"`
	Format string `koanf:"format" json:"format" yaml:"format"`
}

// OverwritePolicy returns the parsed generate.overwrite value.
func (c *Config) OverwritePolicy() (types.OverwritePolicy, error) {
	return types.ParseOverwritePolicy(c.Generate.Overwrite)
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if _, err := c.OverwritePolicy(); err != nil {
		return err
	}
	switch strings.ToLower(c.Output.Color) {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid output.color %q (want auto, always or never)", c.Output.Color)
	}
	if _, err := ParseFormat(c.Output.Format); err != nil {
		return err
	}
	return nil
}

// ParseFormat normalizes an output format name.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("invalid output format %q (want text, json or yaml)", s)
}

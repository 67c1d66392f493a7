// Package output renders command results as styled text, JSON or YAML.
//
// Commands build one of the view types in this package and hand it to a
// Renderer obtained from New. Text rendering goes through the styles
// registry, so color follows whatever profile styles.SetColor selected.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/srcmake/srcmake/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Texter is implemented by views that know their human readable form.
type Texter interface {
	Text() string
}

// Renderer writes a view to its output.
type Renderer interface {
	Render(v interface{}) error
}

// New returns the renderer for format: "text", "json" or "yaml".
func New(format string, w io.Writer) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return &TextRenderer{w: w}, nil
	case "json":
		return &JSONRenderer{w: w}, nil
	case "yaml":
		return &YAMLRenderer{w: w}, nil
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unknown output format %q (want text, json or yaml)", format)
}

// TextRenderer prints views for people.
type TextRenderer struct {
	w io.Writer
}

// Render writes v.Text() when v is a Texter and its default formatting
// otherwise. A trailing newline is added when missing.
func (r *TextRenderer) Render(v interface{}) error {
	var text string
	if t, ok := v.(Texter); ok {
		text = t.Text()
	} else {
		text = fmt.Sprint(v)
	}
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(r.w, text)
	return err
}

// JSONRenderer writes indented JSON documents.
type JSONRenderer struct {
	w io.Writer
}

// Render encodes v as JSON.
func (r *JSONRenderer) Render(v interface{}) error {
	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// YAMLRenderer writes YAML documents.
type YAMLRenderer struct {
	w io.Writer
}

// Render encodes v as YAML.
func (r *YAMLRenderer) Render(v interface{}) error {
	encoder := yaml.NewEncoder(r.w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

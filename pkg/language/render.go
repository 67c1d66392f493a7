package language

import (
	"strings"
	"text/template"
	"unicode"

	"github.com/srcmake/srcmake/pkg/errors"
	"github.com/srcmake/srcmake/pkg/macro"
)

var funcs = template.FuncMap{
	"upper":      strings.ToUpper,
	"lower":      strings.ToLower,
	"trim":       strings.TrimSpace,
	"snake":      snake,
	"hasPrefix":  func(prefix, s string) bool { return strings.HasPrefix(s, prefix) },
	"trimPrefix": func(prefix, s string) string { return strings.TrimPrefix(s, prefix) },
	"replace":    func(old, new, s string) string { return strings.ReplaceAll(s, old, new) },
}

// Resolve computes the language macros for one file. Defaults are evaluated
// against base; argument values are evaluated against base plus the
// defaults, with .VALUE bound to the argument value.
func (l *Language) Resolve(base macro.Map, applied []Applied) (macro.Map, error) {
	out := make(macro.Map, len(l.Macros))
	data := templateData(base)

	for _, name := range macro.Map(l.Macros).Names() {
		value, err := render(l.Name, name, l.Macros[name], data)
		if err != nil {
			return nil, err
		}
		out[name] = value
	}

	for k, v := range out {
		data[k] = v
	}

	for _, a := range applied {
		values := a.Values
		if !a.Argument.Value {
			values = []string{""}
		}
		for _, name := range macro.Map(a.Argument.Set).Names() {
			parts := make([]string, 0, len(values))
			for _, v := range values {
				data["VALUE"] = v
				rendered, err := render(l.Name, name, a.Argument.Set[name], data)
				if err != nil {
					return nil, err
				}
				parts = append(parts, rendered)
			}
			out[name] = strings.Join(parts, "\n")
		}
	}
	return out, nil
}

// OutputExtension returns the extension of the file generated from a
// template with extension ext, given the final macro values.
func (l *Language) OutputExtension(ext string, values macro.Map) string {
	name, ok := l.OutputExt[ext]
	if !ok {
		return ext
	}
	if v := strings.TrimSpace(values[name]); v != "" {
		return v
	}
	return ext
}

func templateData(base macro.Map) map[string]interface{} {
	data := make(map[string]interface{}, len(base)+1)
	for k, v := range base {
		data[k] = v
	}
	data["VALUE"] = ""
	return data
}

func render(lang, name, text string, data map[string]interface{}) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}
	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRender, "language %s macro %s", lang, name).
			WithDetail("macro", name)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRender, "language %s macro %s", lang, name).
			WithDetail("macro", name)
	}
	return b.String(), nil
}

// snake converts CamelCase and dashed names to snake_case.
func snake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '-' || r == ' ' || r == '.':
			b.WriteRune('_')
		case unicode.IsUpper(r):
			if i > 0 && wordBoundary(runes[i-1], runes[i+1:]) {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// wordBoundary reports whether an upper case rune preceded by prev starts a
// new word. "HTTPServer" splits before the S.
func wordBoundary(prev rune, rest []rune) bool {
	switch {
	case unicode.IsLower(prev), unicode.IsDigit(prev):
		return true
	case unicode.IsUpper(prev):
		return len(rest) > 0 && unicode.IsLower(rest[0])
	}
	return false
}

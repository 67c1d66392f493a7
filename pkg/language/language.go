package language

import (
	"bytes"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/srcmake/srcmake/pkg/errors"
	"github.com/srcmake/srcmake/pkg/macro"
	"github.com/srcmake/srcmake/pkg/names"
)

// Argument is a language argument given after "--" on the command line.
type Argument struct {
	Flags []string `toml:"flags" json:"flags" yaml:"flags"`
	// Value makes the flag consume the next argument, available as .VALUE.
	Value bool `toml:"value" json:"value" yaml:"value"`
	// Repeat allows the flag more than once. Each occurrence renders Set and
	// the results are joined with newlines.
	Repeat bool              `toml:"repeat" json:"repeat" yaml:"repeat"`
	Info   string            `toml:"info" json:"info" yaml:"info"`
	Set    map[string]string `toml:"set" json:"set" yaml:"set"`
}

// Matches reports whether flag is one of the argument's flags.
func (a *Argument) Matches(flag string) bool {
	for _, f := range a.Flags {
		if strings.EqualFold(f, flag) {
			return true
		}
	}
	return false
}

// MacroHelp documents a language macro.
type MacroHelp struct {
	Name string `toml:"name" json:"name" yaml:"name"`
	Info string `toml:"info" json:"info" yaml:"info"`
}

// Language is a parsed language definition.
type Language struct {
	Name        string              `toml:"name" json:"name" yaml:"name"`
	Aliases     []string            `toml:"aliases" json:"aliases" yaml:"aliases"`
	TemplateDir string              `toml:"template_dir" json:"template_dir" yaml:"template_dir"`
	Description string              `toml:"description" json:"description,omitempty" yaml:"description,omitempty"`
	Filetypes   map[string][]string `toml:"filetypes" json:"filetypes,omitempty" yaml:"filetypes,omitempty"`
	// OutputExt maps a template extension to the macro holding the
	// extension of the generated file.
	OutputExt map[string]string `toml:"output_ext" json:"output_ext,omitempty" yaml:"output_ext,omitempty"`
	Macros    map[string]string `toml:"macros" json:"macros,omitempty" yaml:"macros,omitempty"`
	Arguments []Argument        `toml:"arguments" json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Help      []MacroHelp       `toml:"help" json:"help,omitempty" yaml:"help,omitempty"`

	// Source is the root the definition was loaded from.
	Source string `toml:"-" json:"source" yaml:"source"`
}

// Parse decodes and validates a language definition.
func Parse(data []byte, source string) (*Language, error) {
	var lang Language
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&lang); err != nil {
		return nil, errors.Wrapf(err, errors.ErrLanguageInvalid, "failed to parse language definition %s", source).
			WithDetail("source", source)
	}
	lang.Source = source
	if err := lang.Validate(); err != nil {
		return nil, err
	}
	return &lang, nil
}

// Validate checks the definition for structural problems.
func (l *Language) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return errors.Newf(errors.ErrLanguageInvalid, format, args...).WithDetail("source", l.Source)
	}

	if strings.TrimSpace(l.Name) == "" {
		return invalid("language definition %s has no name", l.Source)
	}
	if l.TemplateDir == "" || !names.IsValidFilePath(l.TemplateDir) {
		return invalid("language %s has an invalid template_dir %q", l.Name, l.TemplateDir)
	}
	if len(l.Aliases) == 0 {
		return invalid("language %s has no aliases", l.Name)
	}
	for _, alias := range l.Aliases {
		if strings.TrimSpace(alias) == "" || strings.HasPrefix(alias, "-") {
			return invalid("language %s has an invalid alias %q", l.Name, alias)
		}
	}
	for name, files := range l.Filetypes {
		if len(files) == 0 {
			return invalid("language %s filetype %s lists no templates", l.Name, name)
		}
	}
	for ext, name := range l.OutputExt {
		if !macro.IsIdentifier(name) {
			return invalid("language %s output_ext %s names an invalid macro %q", l.Name, ext, name)
		}
	}
	for name := range l.Macros {
		if !macro.IsIdentifier(name) {
			return invalid("language %s has an invalid macro name %q", l.Name, name)
		}
	}
	for i, arg := range l.Arguments {
		if len(arg.Flags) == 0 {
			return invalid("language %s argument %d has no flags", l.Name, i+1)
		}
		for _, flag := range arg.Flags {
			if !strings.HasPrefix(flag, "-") || strings.TrimLeft(flag, "-") == "" {
				return invalid("language %s has a malformed flag %q", l.Name, flag)
			}
		}
		for name := range arg.Set {
			if !macro.IsIdentifier(name) {
				return invalid("language %s flag %s sets an invalid macro name %q", l.Name, arg.Flags[0], name)
			}
		}
	}
	return nil
}

// HasAlias reports whether alias selects this language, ignoring case.
func (l *Language) HasAlias(alias string) bool {
	for _, a := range l.Aliases {
		if strings.EqualFold(a, alias) {
			return true
		}
	}
	return false
}

// MacroNames returns every macro the language can set, sorted.
func (l *Language) MacroNames() []string {
	set := make(macro.Map)
	for name := range l.Macros {
		set[name] = ""
	}
	for _, arg := range l.Arguments {
		for name := range arg.Set {
			set[name] = ""
		}
	}
	return set.Names()
}

// FiletypeNames returns the declared filetype groups, sorted.
func (l *Language) FiletypeNames() []string {
	out := make([]string, 0, len(l.Filetypes))
	for name := range l.Filetypes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

package language

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/srcmake/srcmake/pkg/errors"
	"github.com/srcmake/srcmake/pkg/macro"
	"github.com/srcmake/srcmake/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadBuiltin(t *testing.T) *Registry {
	t.Helper()
	r, err := Load(context.Background(), []types.Root{BuiltinRoot()})
	require.NoError(t, err)
	require.Empty(t, r.Skipped)
	return r
}

func cpp(t *testing.T) *Language {
	t.Helper()
	l, err := loadBuiltin(t).Lookup("cpp")
	require.NoError(t, err)
	return l
}

func TestBuiltinLanguages(t *testing.T) {
	r := loadBuiltin(t)

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "C#", all[0].Name)
	assert.Equal(t, "C++", all[1].Name)

	for _, alias := range []string{"cpp", "C++", "CPlusPlus", "cxx"} {
		l, err := r.Lookup(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, "Cpp", l.TemplateDir)
	}
	for _, alias := range []string{"cs", "c#", "CSharp"} {
		l, err := r.Lookup(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, "CSharp", l.TemplateDir)
		assert.Equal(t, "builtin/csharp.toml", l.Source)
	}

	_, err := r.Lookup("cobol")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLanguageNotFound))

	_, err = r.Lookup("")
	assert.True(t, errors.IsErrorCode(err, errors.ErrLanguageNotFound))
}

func TestLoadPrecedenceAndSkipping(t *testing.T) {
	user := fstest.MapFS{
		"cpp.toml": {Data: []byte(`
name = "C++"
aliases = ["cpp"]
template_dir = "MyCpp"
`)},
		"broken.toml": {Data: []byte(`name = `)},
		"nodir.toml":  {Data: []byte("name = \"Go\"\naliases = [\"go\"]\n")},
		"notes.txt":   {Data: []byte("ignored")},
	}

	r, err := Load(context.Background(), []types.Root{{Name: "user", FS: user}, BuiltinRoot()})
	require.NoError(t, err)
	assert.Len(t, r.Skipped, 2)

	l, err := r.Lookup("cpp")
	require.NoError(t, err)
	assert.Equal(t, "MyCpp", l.TemplateDir, "first root wins")
	assert.Equal(t, "user/cpp.toml", l.Source)

	_, err = r.Lookup("go")
	assert.Error(t, err)

	_, err = r.Lookup("cs")
	assert.NoError(t, err, "built-ins still load")
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, []types.Root{BuiltinRoot()})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled))
}

func TestParseValidation(t *testing.T) {
	tests := map[string]string{
		"unknown field":   "name = \"X\"\naliases = [\"x\"]\ntemplate_dir = \"X\"\nscript = \"x.lua\"\n",
		"no name":         "aliases = [\"x\"]\ntemplate_dir = \"X\"\n",
		"no aliases":      "name = \"X\"\ntemplate_dir = \"X\"\n",
		"bad alias":       "name = \"X\"\naliases = [\"-x\"]\ntemplate_dir = \"X\"\n",
		"bad dir":         "name = \"X\"\naliases = [\"x\"]\ntemplate_dir = \"a|b\"\n",
		"bad macro":       "name = \"X\"\naliases = [\"x\"]\ntemplate_dir = \"X\"\n[macros]\n\"NOT-OK\" = \"\"\n",
		"empty filetype":  "name = \"X\"\naliases = [\"x\"]\ntemplate_dir = \"X\"\n[filetypes]\nclass = []\n",
		"bad output ext":  "name = \"X\"\naliases = [\"x\"]\ntemplate_dir = \"X\"\n[output_ext]\nh = \"1X\"\n",
		"no flags":        "name = \"X\"\naliases = [\"x\"]\ntemplate_dir = \"X\"\n[[arguments]]\ninfo = \"x\"\n",
		"malformed flag":  "name = \"X\"\naliases = [\"x\"]\ntemplate_dir = \"X\"\n[[arguments]]\nflags = [\"ns\"]\n",
		"bad set target":  "name = \"X\"\naliases = [\"x\"]\ntemplate_dir = \"X\"\n[[arguments]]\nflags = [\"--ns\"]\n[arguments.set]\n\"a b\" = \"x\"\n",
		"dash only flag":  "name = \"X\"\naliases = [\"x\"]\ntemplate_dir = \"X\"\n[[arguments]]\nflags = [\"--\"]\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc), "test.toml")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrLanguageInvalid), err.Error())
		})
	}
}

func TestParseArgs(t *testing.T) {
	l := cpp(t)

	applied, err := l.ParseArgs([]string{"--virtual", "--ns", "engine", "--include", "<memory>", "--INC=mutex", "--ns", "core"})
	require.NoError(t, err)
	require.Len(t, applied, 3)

	assert.Equal(t, "--virtual", applied[0].Argument.Flags[0])
	assert.Nil(t, applied[0].Values)
	assert.Equal(t, []string{"core"}, applied[1].Values, "non repeatable keeps the last value")
	assert.Equal(t, []string{"<memory>", "mutex"}, applied[2].Values)

	_, err = l.ParseArgs([]string{"--bogus"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = l.ParseArgs([]string{"--ns"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = l.ParseArgs([]string{"--virtual=yes"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	none, err := l.ParseArgs(nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMacrosDefaults(t *testing.T) {
	l := cpp(t)
	base := macro.Map{"NAME": "Logger", "FILE_EXT": "hpp"}

	m, err := l.Resolve(base, nil)
	require.NoError(t, err)
	assert.Equal(t, macro.Map{
		"HEADER_EXT":      "hpp",
		"HEADER_GUARD":    "LOGGER_HPP",
		"INCLUDES":        "",
		"NAMESPACE_BEGIN": "",
		"NAMESPACE_END":   "",
		"VIRTUAL":         "",
	}, m)
}

func TestMacrosArguments(t *testing.T) {
	l := cpp(t)
	base := macro.Map{"NAME": "Logger", "FILE_EXT": "hpp"}

	applied, err := l.ParseArgs([]string{"--ns", "engine", "--include", "<memory>", "--include", "config.h", "--virtual", "--guard", "engine_logger_h", "--hext", ".h"})
	require.NoError(t, err)

	m, err := l.Resolve(base, applied)
	require.NoError(t, err)
	assert.Equal(t, "namespace engine\n{", m["NAMESPACE_BEGIN"])
	assert.Equal(t, "}", m["NAMESPACE_END"])
	assert.Equal(t, "#include <memory>\n#include \"config.h\"", m["INCLUDES"])
	assert.Equal(t, "virtual", m["VIRTUAL"])
	assert.Equal(t, "ENGINE_LOGGER_H", m["HEADER_GUARD"])
	assert.Equal(t, "h", m["HEADER_EXT"])

	assert.Equal(t, "h", l.OutputExtension("hpp", m))
	assert.Equal(t, "cpp", l.OutputExtension("cpp", m))
	assert.Equal(t, "hpp", l.OutputExtension("hpp", macro.Map{"HEADER_EXT": " "}))
}

func TestMacrosRenderErrors(t *testing.T) {
	l := &Language{Name: "X", Macros: map[string]string{"BAD": "{{ .MISSING }}"}}
	_, err := l.Resolve(macro.Map{}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRender))

	l = &Language{Name: "X", Macros: map[string]string{"BAD": "{{ .NAME "}}
	_, err = l.Resolve(macro.Map{"NAME": "x"}, nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRender))
}

func TestCSharpMacros(t *testing.T) {
	l, err := loadBuiltin(t).Lookup("cs")
	require.NoError(t, err)

	applied, err := l.ParseArgs([]string{"--using", "System", "--using", "System.Threading", "--unsealed", "--internal"})
	require.NoError(t, err)

	m, err := l.Resolve(macro.Map{"NAME": "Logger"}, applied)
	require.NoError(t, err)
	assert.Equal(t, "using System;\nusing System.Threading;", m["USINGS"])
	assert.Equal(t, "", m["CLASS_MODIFIER"])
	assert.Equal(t, "internal", m["ACCESS"])
	assert.Equal(t, []string{"ACCESS", "CLASS_MODIFIER", "NAMESPACE_BEGIN", "NAMESPACE_END", "USINGS"}, l.MacroNames())
}

func TestSnake(t *testing.T) {
	tests := map[string]string{
		"MyLogger":   "my_logger",
		"myLogger":   "my_logger",
		"HTTPServer": "http_server",
		"my-logger":  "my_logger",
		"Vec3D":      "vec3_d",
		"already_ok": "already_ok",
	}
	for in, want := range tests {
		assert.Equal(t, want, snake(in), in)
	}
}

func TestHelpers(t *testing.T) {
	l := cpp(t)
	assert.True(t, l.HasAlias("CPP"))
	assert.False(t, l.HasAlias("c"))
	assert.Equal(t, []string{"singleton03", "singleton03header", "singleton03source"}, l.FiletypeNames())
	assert.Contains(t, l.MacroNames(), "HEADER_GUARD")
}

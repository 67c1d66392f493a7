package language

import (
	"embed"
	"io/fs"

	"github.com/srcmake/srcmake/pkg/types"
)

//go:embed builtin/*.toml
var builtinFS embed.FS

// BuiltinRoot returns the embedded language definitions as a lookup root.
func BuiltinRoot() types.Root {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	return types.Root{Name: "builtin", FS: sub}
}

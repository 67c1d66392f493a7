package templates

import (
	"embed"
	"io/fs"

	"github.com/srcmake/srcmake/pkg/types"
)

// BuiltinName is the root name of the embedded templates.
const BuiltinName = "builtin"

//go:embed builtin
var builtinFS embed.FS

// Builtin returns the embedded template tree.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	return sub
}

// BuiltinRoot wraps Builtin as a lookup root.
func BuiltinRoot() types.Root {
	return types.Root{Name: BuiltinName, FS: Builtin()}
}

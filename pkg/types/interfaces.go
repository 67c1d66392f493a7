package types

import (
	"io/fs"
)

// FS is the filesystem interface required for srcmake operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
}

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// Root is a named, read-only tree that templates or language definitions
// are looked up in. Name identifies the root in listings and errors: a
// directory path, or "builtin" for the embedded set.
type Root struct {
	Name string
	FS   fs.FS
}

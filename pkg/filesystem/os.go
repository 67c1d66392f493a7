package filesystem

import (
	"bytes"
	"io/fs"
	"os"

	"github.com/natefinch/atomic"
	"github.com/srcmake/srcmake/pkg/types"
)

// osFS implements types.FS using the OS filesystem
type osFS struct{}

// NewOS creates a new OS filesystem implementation
func NewOS() types.FS {
	return &osFS{}
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile writes through a temporary file and renames it into place, so a
// reader never observes a half written source file.
func (o *osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := atomic.WriteFile(name, bytes.NewReader(data)); err != nil {
		return err
	}
	return os.Chmod(name, perm)
}

func (o *osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (o *osFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (o *osFS) Remove(name string) error {
	return os.Remove(name)
}

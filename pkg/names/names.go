// Package names validates and derives the names srcmake works with: the
// file path given on the command line and the identifier generated code uses.
//
// Paths are handled with forward slashes only. Backslashes are converted
// first so that a name typed on Windows produces the same output everywhere.
package names

import (
	"strings"
)

// invalidFileRunes may not appear in a single path segment.
const invalidFileRunes = `<>:"/\|?*$'&`

// UnifySeparators converts every backslash in path to a forward slash.
func UnifySeparators(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

// IsValidFileName reports whether name can be used as a single file name.
func IsValidFileName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r < 32 || strings.ContainsRune(invalidFileRunes, r) {
			return false
		}
	}
	return true
}

// IsValidFilePath reports whether every segment of path is a valid file
// name. Leading slashes, a "//?/" long path prefix and a drive letter are
// accepted. A bare root such as "/" or "C:" is valid.
func IsValidFilePath(path string) bool {
	if path == "" {
		return false
	}

	p := UnifySeparators(path)
	p = strings.TrimPrefix(p, "//?/")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return true
	}

	if i := strings.IndexByte(p, ':'); i >= 0 {
		if i != 1 || !isLetter(p[0]) {
			return false
		}
		p = strings.TrimPrefix(p[2:], "/")
		if p == "" {
			return true
		}
	}

	for _, segment := range strings.Split(p, "/") {
		if !IsValidFileName(segment) {
			return false
		}
	}
	return true
}

// IsValidIdentifier reports whether s is a letter or underscore followed by
// letters, digits or underscores.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !identByte(s[i], i == 0) {
			return false
		}
	}
	return true
}

// AsIdentifier replaces every byte of s that is not allowed in an identifier
// with repl. Multi-byte runes are replaced by a single repl. An empty s
// yields repl.
func AsIdentifier(s string, repl rune) string {
	if s == "" {
		return string(repl)
	}
	var b strings.Builder
	b.Grow(len(s))
	first := true
	for _, r := range s {
		if r < 0x80 && identByte(byte(r), first) {
			b.WriteRune(r)
		} else {
			b.WriteRune(repl)
		}
		first = false
	}
	return b.String()
}

// PathToIdentifier derives the identifier used for NAME from a path given on
// the command line: "engine/my-logger.h" becomes "my_logger".
func PathToIdentifier(path string) string {
	if IsValidIdentifier(path) {
		return path
	}
	return AsIdentifier(FileName(path, false), '_')
}

// FileName returns the last segment of path. When withExt is false the
// extension is removed as well.
func FileName(path string, withExt bool) string {
	p := UnifySeparators(path)
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		p = p[i+1:]
	}
	if !withExt {
		if i := strings.LastIndexByte(p, '.'); i >= 0 {
			p = p[:i]
		}
	}
	return p
}

// Dir returns everything before the last separator of path, or "" when path
// has none.
func Dir(path string) string {
	p := UnifySeparators(path)
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return ""
}

// Ext returns the extension of path without the leading dot.
func Ext(path string) string {
	name := FileName(path, true)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return ""
}

// SetExt replaces the extension of path. A path without an extension is
// returned unchanged.
func SetExt(path, ext string) string {
	name := FileName(path, true)
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return path
	}
	return path[:len(path)-len(name)+i+1] + ext
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func identByte(c byte, first bool) bool {
	switch {
	case c == '_', isLetter(c):
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}

// Package filesystem provides filesystem implementations for srcmake.
//
// This package contains implementations of the types.FS interface: the OS
// filesystem, which replaces files atomically, and an afero-backed
// filesystem used by tests.
package filesystem

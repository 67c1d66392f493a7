// Package types defines the core types and interfaces shared across srcmake.
// This includes the filesystem abstraction used for writing generated files,
// the overwrite policy, and the per-file generation status.
package types

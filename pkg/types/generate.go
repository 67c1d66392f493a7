package types

import (
	"fmt"
	"strings"
)

// OverwritePolicy decides what happens when a generated file already exists.
type OverwritePolicy string

const (
	// OverwriteAsk prompts before replacing an existing file.
	OverwriteAsk OverwritePolicy = "ask"
	// OverwriteAlways replaces existing files without prompting.
	OverwriteAlways OverwritePolicy = "always"
	// OverwriteNever keeps existing files without prompting.
	OverwriteNever OverwritePolicy = "never"
)

// ParseOverwritePolicy converts a user supplied string into a policy.
// An empty string selects OverwriteAsk.
func ParseOverwritePolicy(s string) (OverwritePolicy, error) {
	switch OverwritePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", OverwriteAsk:
		return OverwriteAsk, nil
	case OverwriteAlways:
		return OverwriteAlways, nil
	case OverwriteNever:
		return OverwriteNever, nil
	}
	return "", fmt.Errorf("invalid overwrite policy %q (want ask, always or never)", s)
}

// FileStatus is the outcome of generating a single file.
type FileStatus string

const (
	FileCreated     FileStatus = "created"
	FileOverwritten FileStatus = "overwritten"
	FileSkipped     FileStatus = "skipped"
	FilePlanned     FileStatus = "planned"
)

// Written reports whether the file was written to disk.
func (s FileStatus) Written() bool {
	return s == FileCreated || s == FileOverwritten
}

// Package envpath adds the srcmake install directory to the system PATH.
//
// On Linux a script is written to /etc/profile.d; on macOS the directory is
// listed in /etc/paths. Both locations usually need root.
package envpath

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/srcmake/srcmake/pkg/errors"
	"github.com/srcmake/srcmake/pkg/logging"
	"github.com/srcmake/srcmake/pkg/paths"
	"github.com/srcmake/srcmake/pkg/types"
)

const (
	LinuxTarget  = "/etc/profile.d/500_srcmake_to_path.sh"
	DarwinTarget = "/etc/paths"
)

// Outcome reports what Add or Remove did.
type Outcome string

const (
	Added          Outcome = "added"
	AlreadyPresent Outcome = "already_present"
	Removed        Outcome = "removed"
	NotPresent     Outcome = "not_present"
)

// Manager edits the PATH configuration of one platform.
type Manager struct {
	FS types.FS
	// GOOS selects the platform behaviour.
	GOOS string
	// Target is the file that is written or edited.
	Target string
	// Dir is the directory added to PATH.
	Dir string
	// PathEnv is the current PATH value.
	PathEnv string
}

// New returns a manager for the running platform and executable.
func New(fsys types.FS) *Manager {
	return &Manager{
		FS:      fsys,
		GOOS:    runtime.GOOS,
		Target:  DefaultTarget(runtime.GOOS),
		Dir:     paths.ExecutableDir(),
		PathEnv: os.Getenv("PATH"),
	}
}

// DefaultTarget returns the file edited on goos, or "" when unsupported.
func DefaultTarget(goos string) string {
	switch goos {
	case "linux":
		return LinuxTarget
	case "darwin":
		return DarwinTarget
	}
	return ""
}

// Add makes Dir part of the system PATH.
func (m *Manager) Add() (Outcome, error) {
	if err := m.check(); err != nil {
		return "", err
	}
	logger := logging.GetLogger("envpath")

	if m.inPathEnv() {
		logger.Info().Str("dir", m.Dir).Msg("Directory already in PATH")
		return AlreadyPresent, nil
	}

	var content string
	switch m.GOOS {
	case "linux":
		content = "export PATH=\"$PATH:" + m.Dir + "\"\n"
	case "darwin":
		existing, err := m.readTarget()
		if err != nil {
			return "", err
		}
		if m.containsLine(existing) {
			return AlreadyPresent, nil
		}
		if existing != "" && !strings.HasSuffix(existing, "\n") {
			existing += "\n"
		}
		content = existing + m.Dir + "\n"
	}

	if err := m.FS.MkdirAll(filepath.Dir(m.Target), 0755); err != nil {
		return "", m.wrap(err, "failed to create directory for %s")
	}
	if err := m.FS.WriteFile(m.Target, []byte(content), 0644); err != nil {
		return "", m.wrap(err, "failed to write %s")
	}
	logger.Info().Str("dir", m.Dir).Str("target", m.Target).Msg("Added to PATH")
	return Added, nil
}

// Remove undoes Add.
func (m *Manager) Remove() (Outcome, error) {
	if err := m.check(); err != nil {
		return "", err
	}
	logger := logging.GetLogger("envpath")

	switch m.GOOS {
	case "linux":
		if _, err := m.FS.Stat(m.Target); err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return NotPresent, nil
			}
			return "", m.wrap(err, "cannot access %s")
		}
		if err := m.FS.Remove(m.Target); err != nil {
			return "", m.wrap(err, "failed to remove %s")
		}
	case "darwin":
		existing, err := m.readTarget()
		if err != nil {
			return "", err
		}
		lines := strings.Split(existing, "\n")
		kept := lines[:0]
		for _, line := range lines {
			if !m.sameDir(strings.TrimSpace(line)) {
				kept = append(kept, line)
			}
		}
		if len(kept) == len(lines) {
			return NotPresent, nil
		}
		if err := m.FS.WriteFile(m.Target, []byte(strings.Join(kept, "\n")), 0644); err != nil {
			return "", m.wrap(err, "failed to write %s")
		}
	}
	logger.Info().Str("dir", m.Dir).Str("target", m.Target).Msg("Removed from PATH")
	return Removed, nil
}

func (m *Manager) check() error {
	if m.Target == "" || DefaultTarget(m.GOOS) == "" {
		return errors.Newf(errors.ErrNotImplemented, "PATH integration is not implemented on %s", m.GOOS)
	}
	if m.Dir == "" {
		return errors.New(errors.ErrInternal, "cannot locate the srcmake executable")
	}
	return nil
}

func (m *Manager) readTarget() (string, error) {
	data, err := m.FS.ReadFile(m.Target)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", m.wrap(err, "failed to read %s")
	}
	return string(data), nil
}

func (m *Manager) inPathEnv() bool {
	for _, entry := range filepath.SplitList(m.PathEnv) {
		if entry != "" && m.sameDir(entry) {
			return true
		}
	}
	return false
}

func (m *Manager) containsLine(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		if m.sameDir(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}

// sameDir compares against Dir. macOS file systems are case-insensitive by
// default.
func (m *Manager) sameDir(dir string) bool {
	if dir == "" {
		return false
	}
	a, b := filepath.Clean(dir), filepath.Clean(m.Dir)
	if m.GOOS == "darwin" {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func (m *Manager) wrap(err error, format string) error {
	code := errors.ErrFileWrite
	if stderrors.Is(err, fs.ErrPermission) {
		code = errors.ErrPermission
	}
	return errors.Wrapf(err, code, format, m.Target).WithDetail("hint", "try again with administrative privileges")
}

package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/srcmake/srcmake/pkg/errors"
)

const (
	// AppDirName is the directory name used below every XDG base directory.
	AppDirName = "srcmake"

	// ProjectDirName holds project level templates and languages.
	ProjectDirName = ".srcmake"

	// ProjectConfigFile is the project level configuration file.
	ProjectConfigFile = ".srcmake.toml"

	// ConfigFileName is the user level configuration file.
	ConfigFileName = "config.toml"

	TemplatesDirName = "templates"
	LanguagesDirName = "languages"

	HistoryFileName = "history.db"
	LogFileName     = "srcmake.log"
)

// Paths holds the resolved directories for one invocation.
type Paths struct {
	workDir   string
	execDir   string
	configDir string
	dataDir   string
	stateDir  string
}

// New resolves all directories relative to workDir. An empty workDir selects
// the current working directory.
func New(workDir string) (*Paths, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to get working directory")
		}
		workDir = wd
	}

	abs, err := filepath.Abs(ExpandHome(workDir))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", workDir)
	}

	return &Paths{
		workDir:   abs,
		execDir:   ExecutableDir(),
		configDir: filepath.Join(baseDir("XDG_CONFIG_HOME", xdg.ConfigHome), AppDirName),
		dataDir:   filepath.Join(baseDir("XDG_DATA_HOME", xdg.DataHome), AppDirName),
		stateDir:  filepath.Join(baseDir("XDG_STATE_HOME", xdg.StateHome), AppDirName),
	}, nil
}

func (p *Paths) WorkDir() string   { return p.workDir }
func (p *Paths) ExecDir() string   { return p.execDir }
func (p *Paths) ConfigDir() string { return p.configDir }
func (p *Paths) DataDir() string   { return p.dataDir }
func (p *Paths) StateDir() string  { return p.stateDir }

// UserConfigFile is $XDG_CONFIG_HOME/srcmake/config.toml.
func (p *Paths) UserConfigFile() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// ProjectConfigFile is .srcmake.toml in the working directory.
func (p *Paths) ProjectConfigFile() string {
	return filepath.Join(p.workDir, ProjectConfigFile)
}

// HistoryFile is the default location of the generation ledger.
func (p *Paths) HistoryFile() string {
	return filepath.Join(p.dataDir, HistoryFileName)
}

// LogFile is the default location of the log file.
func (p *Paths) LogFile() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// TemplateRoots returns the on-disk template roots in lookup order. The
// built-in templates are not included; they always come last.
func (p *Paths) TemplateRoots(extra []string) []string {
	return p.roots(TemplatesDirName, extra)
}

// LanguageRoots returns the on-disk language roots in lookup order.
func (p *Paths) LanguageRoots(extra []string) []string {
	return p.roots(LanguagesDirName, extra)
}

func (p *Paths) roots(name string, extra []string) []string {
	roots := []string{filepath.Join(p.workDir, ProjectDirName, name)}
	for _, dir := range extra {
		if dir == "" {
			continue
		}
		dir = ExpandHome(dir)
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(p.workDir, dir)
		}
		roots = append(roots, dir)
	}
	roots = append(roots, filepath.Join(p.configDir, name))
	if p.execDir != "" {
		roots = append(roots, filepath.Join(p.execDir, name))
	}
	return dedupe(roots)
}

// ExecutableDir returns the directory holding the running binary, with
// symlinks resolved. It returns "" when the executable cannot be located.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func baseDir(envVar, fallback string) string {
	if dir := os.Getenv(envVar); dir != "" {
		return ExpandHome(dir)
	}
	return fallback
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		clean := filepath.Clean(s)
		if seen[clean] {
			continue
		}
		seen[clean] = true
		out = append(out, clean)
	}
	return out
}

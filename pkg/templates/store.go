package templates

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/srcmake/srcmake/pkg/errors"
	"github.com/srcmake/srcmake/pkg/logging"
	"github.com/srcmake/srcmake/pkg/names"
	"github.com/srcmake/srcmake/pkg/types"
)

// Entry is one template file as resolved by a Store.
type Entry struct {
	Dir    string `json:"dir" yaml:"dir"`
	File   string `json:"file" yaml:"file"`
	Source string `json:"source" yaml:"source"`
}

// Stem is the file name without its extension.
func (e Entry) Stem() string { return names.FileName(e.File, false) }

// Ext is the extension of the template, which becomes the extension of the
// generated file.
func (e Entry) Ext() string { return names.Ext(e.File) }

// Store searches template roots in order.
type Store struct {
	roots []types.Root
}

// NewStore creates a store over roots, searched in the given order.
func NewStore(roots ...types.Root) *Store {
	return &Store{roots: roots}
}

// DirRoots turns directories into lookup roots.
func DirRoots(dirs []string) []types.Root {
	roots := make([]types.Root, 0, len(dirs))
	for _, dir := range dirs {
		roots = append(roots, types.Root{Name: dir, FS: os.DirFS(dir)})
	}
	return roots
}

// NewDefaultStore searches dirs first and the built-in templates last.
func NewDefaultStore(dirs []string) *Store {
	return NewStore(append(DirRoots(dirs), BuiltinRoot())...)
}

// Roots returns the lookup roots in order.
func (s *Store) Roots() []types.Root {
	return s.roots
}

// List returns every template of a language directory, merged across roots
// and sorted by file name. A language without any template yields an empty
// list.
func (s *Store) List(dir string) ([]Entry, error) {
	logger := logging.GetLogger("templates")
	seen := make(map[string]bool)
	var entries []Entry

	for _, root := range s.roots {
		items, err := fs.ReadDir(root.FS, dir)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrTemplateRead, "failed to read %s in %s", dir, root.Name).
				WithDetail("root", root.Name)
		}
		for _, item := range items {
			name := item.Name()
			if item.IsDir() || strings.HasPrefix(name, ".") || seen[name] {
				continue
			}
			seen[name] = true
			entries = append(entries, Entry{Dir: dir, File: name, Source: root.Name})
		}
		logger.Trace().Str("root", root.Name).Str("dir", dir).Int("count", len(items)).Msg("Scanned template root")
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].File < entries[j].File })
	return entries, nil
}

// Read returns the content of dir/file from the first root that has it,
// along with that root's name.
func (s *Store) Read(dir, file string) ([]byte, string, error) {
	p := path.Join(dir, file)
	for _, root := range s.roots {
		data, err := fs.ReadFile(root.FS, p)
		if err == nil {
			return data, root.Name, nil
		}
		if !stderrors.Is(err, fs.ErrNotExist) {
			return nil, "", errors.Wrapf(err, errors.ErrTemplateRead, "failed to read template %s from %s", p, root.Name)
		}
	}
	return nil, "", errors.Newf(errors.ErrTemplateNotFound, "template %s not found", p).
		WithDetail("template", p)
}

// Find selects the templates for a filetype. A filetype group names its
// files explicitly and in order. Without a group every template whose stem
// equals the filetype, ignoring case, is selected.
func (s *Store) Find(dir, filetype string, groups map[string][]string) ([]Entry, error) {
	if files, ok := lookupGroup(groups, filetype); ok {
		entries := make([]Entry, 0, len(files))
		for _, file := range files {
			entry, err := s.resolve(dir, file)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrTemplateNotFound, "filetype %s", filetype)
			}
			entries = append(entries, entry)
		}
		return entries, nil
	}

	all, err := s.List(dir)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, entry := range all {
		if strings.EqualFold(entry.Stem(), filetype) {
			entries = append(entries, entry)
		}
	}
	if len(entries) == 0 {
		return nil, errors.Newf(errors.ErrTemplateNotFound, "no %s template for filetype %s", dir, filetype).
			WithDetail("dir", dir).
			WithDetail("filetype", filetype)
	}
	return entries, nil
}

// Filetypes returns every filetype usable with dir: the group names plus the
// lower-cased stem of each template, sorted and without duplicates.
func (s *Store) Filetypes(dir string, groups map[string][]string) ([]string, error) {
	all, err := s.List(dir)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool)
	for name := range groups {
		set[strings.ToLower(name)] = true
	}
	for _, entry := range all {
		set[strings.ToLower(entry.Stem())] = true
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) resolve(dir, file string) (Entry, error) {
	p := path.Join(dir, file)
	for _, root := range s.roots {
		if _, err := fs.Stat(root.FS, p); err == nil {
			return Entry{Dir: dir, File: file, Source: root.Name}, nil
		}
	}
	return Entry{}, errors.Newf(errors.ErrTemplateNotFound, "template %s not found", p).
		WithDetail("template", p)
}

func lookupGroup(groups map[string][]string, filetype string) ([]string, bool) {
	if files, ok := groups[filetype]; ok {
		return files, true
	}
	for name, files := range groups {
		if strings.EqualFold(name, filetype) {
			return files, true
		}
	}
	return nil, false
}

package language

import (
	"context"
	stderrors "errors"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/srcmake/srcmake/pkg/errors"
	"github.com/srcmake/srcmake/pkg/logging"
	"github.com/srcmake/srcmake/pkg/types"
	"golang.org/x/sync/errgroup"
)

// Registry holds the loaded languages.
type Registry struct {
	languages []*Language
	// Skipped lists definitions that failed to load.
	Skipped []error
}

// NewRegistry builds a registry from already parsed languages. The first
// language of a given name wins.
func NewRegistry(langs ...*Language) *Registry {
	r := &Registry{}
	seen := make(map[string]bool)
	for _, l := range langs {
		key := strings.ToLower(l.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		r.languages = append(r.languages, l)
	}
	return r
}

type loadJob struct {
	root types.Root
	file string
}

// Load reads every *.toml definition of every root concurrently. Roots are
// searched in order; within a root, files are taken in name order.
func Load(ctx context.Context, roots []types.Root) (*Registry, error) {
	logger := logging.GetLogger("language")

	var jobs []loadJob
	for _, root := range roots {
		files, err := fs.Glob(root.FS, "*.toml")
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to list languages in %s", root.Name)
		}
		sort.Strings(files)
		for _, f := range files {
			jobs = append(jobs, loadJob{root: root, file: f})
		}
	}

	langs := make([]*Language, len(jobs))
	failures := make([]error, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(job.root.FS, job.file)
			if err != nil {
				if stderrors.Is(err, fs.ErrNotExist) {
					return nil
				}
				failures[i] = errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", job.file)
				return nil
			}
			lang, err := Parse(data, path.Join(job.root.Name, job.file))
			if err != nil {
				failures[i] = err
				return nil
			}
			langs[i] = lang
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCancelled, "loading languages cancelled")
	}

	var loaded []*Language
	var skipped []error
	for i := range jobs {
		if failures[i] != nil {
			logger.Warn().Err(failures[i]).Str("file", jobs[i].file).Str("root", jobs[i].root.Name).
				Msg("Skipping invalid language definition")
			skipped = append(skipped, failures[i])
			continue
		}
		if langs[i] != nil {
			loaded = append(loaded, langs[i])
		}
	}

	r := NewRegistry(loaded...)
	r.Skipped = skipped
	logger.Debug().Int("languages", len(r.languages)).Int("skipped", len(skipped)).Msg("Languages loaded")
	return r, nil
}

// Lookup finds a language by alias or name, ignoring case.
func (r *Registry) Lookup(alias string) (*Language, error) {
	alias = strings.TrimSpace(alias)
	if alias != "" {
		for _, l := range r.languages {
			if l.HasAlias(alias) {
				return l, nil
			}
		}
		for _, l := range r.languages {
			if strings.EqualFold(l.Name, alias) {
				return l, nil
			}
		}
	}
	return nil, errors.Newf(errors.ErrLanguageNotFound, "unknown language %q", alias).
		WithDetail("alias", alias)
}

// All returns every language sorted by name.
func (r *Registry) All() []*Language {
	out := make([]*Language, len(r.languages))
	copy(out, r.languages)
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

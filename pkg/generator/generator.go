// Package generator turns a language, a filetype and a name into source
// files.
//
// Templates are rendered concurrently and written one at a time in
// template order, so overwrite prompts appear in a predictable sequence and
// nothing is written when any template fails to render.
package generator

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/srcmake/srcmake/pkg/errors"
	"github.com/srcmake/srcmake/pkg/history"
	"github.com/srcmake/srcmake/pkg/language"
	"github.com/srcmake/srcmake/pkg/logging"
	"github.com/srcmake/srcmake/pkg/macro"
	"github.com/srcmake/srcmake/pkg/names"
	"github.com/srcmake/srcmake/pkg/templates"
	"github.com/srcmake/srcmake/pkg/types"
	"golang.org/x/sync/errgroup"
)

// Recorder stores generated files. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) (history.Entry, error)
}

// Request describes one generation.
type Request struct {
	Language  string
	Filetype  string
	Name      string
	Author    string
	OutputDir string
	Overwrite types.OverwritePolicy
	// LanguageArgs are the arguments given after "--".
	LanguageArgs []string
	// Set overrides macro values after the language has computed them.
	Set             macro.Map
	AllowUnresolved bool
	DryRun          bool
}

// File is one generated file.
type File struct {
	Template   templates.Entry  `json:"template" yaml:"template"`
	Path       string           `json:"path" yaml:"path"`
	Content    string           `json:"-" yaml:"-"`
	Status     types.FileStatus `json:"status" yaml:"status"`
	Unresolved []string         `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
}

// Result lists the files of a generation in template order.
type Result struct {
	Language string `json:"language" yaml:"language"`
	Files    []File `json:"files" yaml:"files"`
}

// Options configures a Generator.
type Options struct {
	Languages *language.Registry
	Templates *templates.Store
	FS        types.FS
	// Prompter answers overwrite questions. Without one, existing files are
	// kept when the policy is ask.
	Prompter types.Prompter
	// History is optional.
	History Recorder
	Macro   macro.Options
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Generator renders and writes templates.
type Generator struct {
	opts Options
}

// New creates a generator.
func New(opts Options) *Generator {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Generator{opts: opts}
}

// Generate renders every template of the requested filetype and writes the
// results according to the overwrite policy.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	logger := logging.GetLogger("generator")
	done := logging.LogOperationStart(logger, "generate")
	defer done()

	if !names.IsValidFilePath(req.Name) || names.FileName(req.Name, true) == "" {
		return nil, errors.Newf(errors.ErrInvalidName, "%q is not a valid file name", req.Name).
			WithDetail("name", req.Name)
	}

	if file, ident := names.FileName(req.Name, true), names.PathToIdentifier(req.Name); file != ident {
		logger.Warn().
			Str("file", file).
			Str("identifier", ident).
			Msg("File name differs from $NAME$; templates that build file names from $NAME$ will not match")
	}

	lang, err := g.opts.Languages.Lookup(req.Language)
	if err != nil {
		return nil, err
	}
	applied, err := lang.ParseArgs(req.LanguageArgs)
	if err != nil {
		return nil, err
	}
	entries, err := g.opts.Templates.Find(lang.TemplateDir, req.Filetype, lang.Filetypes)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("language", lang.Name).
		Str("filetype", req.Filetype).
		Str("name", req.Name).
		Int("templates", len(entries)).
		Msg("Resolved templates")

	files, err := g.render(ctx, req, lang, applied, entries)
	if err != nil {
		return nil, err
	}

	result := &Result{Language: lang.Name, Files: files}
	if req.DryRun {
		return result, nil
	}

	for i := range result.Files {
		if err := ctx.Err(); err != nil {
			return result, errors.Wrap(err, errors.ErrCancelled, "generation cancelled")
		}
		if err := g.write(req, &result.Files[i]); err != nil {
			return result, err
		}
	}

	g.record(ctx, req, lang, result)
	return result, nil
}

func (g *Generator) render(ctx context.Context, req Request, lang *language.Language, applied []language.Applied, entries []templates.Entry) ([]File, error) {
	now := g.opts.Clock()
	files := make([]File, len(entries))

	eg, egctx := errgroup.WithContext(ctx)
	for i, entry := range entries {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return errors.Wrap(err, errors.ErrCancelled, "generation cancelled")
			}
			file, err := g.renderOne(req, lang, applied, entry, now)
			if err != nil {
				return err
			}
			files[i] = file
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(files))
	for _, f := range files {
		if other, ok := seen[f.Path]; ok {
			return nil, errors.Newf(errors.ErrInvalidInput, "templates %s and %s both generate %s", other, f.Template.File, f.Path).
				WithDetail("path", f.Path)
		}
		seen[f.Path] = f.Template.File
	}
	return files, nil
}

func (g *Generator) renderOne(req Request, lang *language.Language, applied []language.Applied, entry templates.Entry, now time.Time) (File, error) {
	data, source, err := g.opts.Templates.Read(entry.Dir, entry.File)
	if err != nil {
		return File{}, err
	}
	entry.Source = source

	ext := entry.Ext()
	values, err := g.values(req, lang, applied, ext, now)
	if err != nil {
		return File{}, err
	}
	if out := lang.OutputExtension(ext, values); out != ext {
		ext = out
		if values, err = g.values(req, lang, applied, ext, now); err != nil {
			return File{}, err
		}
	}

	res := macro.Substitute(string(data), values, g.opts.Macro)
	if !res.Complete() && !req.AllowUnresolved {
		return File{}, errors.Newf(errors.ErrUnresolvedToken, "template %s/%s has unresolved tokens %v", entry.Dir, entry.File, res.Unresolved).
			WithDetail("template", entry.Dir+"/"+entry.File).
			WithDetail("tokens", res.Unresolved)
	}

	fileName := names.FileName(req.Name, true)
	if ext != "" {
		fileName += "." + ext
	}
	dir := filepath.Join(req.OutputDir, filepath.FromSlash(names.Dir(req.Name)))

	return File{
		Template:   entry,
		Path:       filepath.Join(dir, fileName),
		Content:    res.Text,
		Status:     types.FilePlanned,
		Unresolved: res.Unresolved,
	}, nil
}

// values builds the substitution map: universal macros, then language
// macros, then explicit overrides.
func (g *Generator) values(req Request, lang *language.Language, applied []language.Applied, ext string, now time.Time) (macro.Map, error) {
	base := UniversalMacros(req.Name, ext, req.Author, now)
	langMacros, err := lang.Resolve(base, applied)
	if err != nil {
		return nil, err
	}
	return base.Clone().Merge(langMacros).Merge(req.Set), nil
}

func (g *Generator) write(req Request, file *File) error {
	logger := logging.GetLogger("generator")

	status := types.FileCreated
	if _, err := g.opts.FS.Stat(file.Path); err == nil {
		overwrite, err := g.shouldOverwrite(req.Overwrite, file.Path)
		if err != nil {
			return err
		}
		if !overwrite {
			file.Status = types.FileSkipped
			logger.Info().Str("path", file.Path).Msg("Keeping existing file")
			return nil
		}
		status = types.FileOverwritten
	} else if !stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", file.Path)
	}

	if err := g.opts.FS.MkdirAll(filepath.Dir(file.Path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", file.Path)
	}
	if err := g.opts.FS.WriteFile(file.Path, []byte(file.Content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", file.Path)
	}

	file.Status = status
	logger.Info().Str("path", file.Path).Str("status", string(status)).Msg("Wrote file")
	return nil
}

func (g *Generator) shouldOverwrite(policy types.OverwritePolicy, path string) (bool, error) {
	switch policy {
	case types.OverwriteAlways:
		return true, nil
	case types.OverwriteNever:
		return false, nil
	}
	if g.opts.Prompter == nil {
		return false, nil
	}
	ok, err := g.opts.Prompter.Confirm(fmt.Sprintf("A file already exists at %s. Overwrite it?", path))
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCancelled, "overwrite prompt failed")
	}
	return ok, nil
}

// record stores written files in the history. Failures are logged only.
func (g *Generator) record(ctx context.Context, req Request, lang *language.Language, result *Result) {
	if g.opts.History == nil {
		return
	}
	logger := logging.GetLogger("generator")
	now := g.opts.Clock()

	for _, f := range result.Files {
		if !f.Status.Written() {
			continue
		}
		path := f.Path
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		_, err := g.opts.History.Record(ctx, history.Entry{
			Path:      path,
			Language:  lang.Name,
			Filetype:  req.Filetype,
			Name:      req.Name,
			Template:  f.Template.Dir + "/" + f.Template.File,
			Status:    string(f.Status),
			CreatedAt: now,
		})
		if err != nil {
			logger.Warn().Err(err).Str("path", f.Path).Msg("Failed to record history")
		}
	}
}

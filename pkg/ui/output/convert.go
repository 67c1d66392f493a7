package output

import (
	"github.com/srcmake/srcmake/pkg/envpath"
	"github.com/srcmake/srcmake/pkg/generator"
	"github.com/srcmake/srcmake/pkg/history"
	"github.com/srcmake/srcmake/pkg/language"
	"github.com/srcmake/srcmake/pkg/templates"
)

// NewGenerateView converts a generator result. Contents are included only
// for dry runs.
func NewGenerateView(req generator.Request, res *generator.Result) GenerateView {
	view := GenerateView{
		Language: res.Language,
		Filetype: req.Filetype,
		Name:     req.Name,
		DryRun:   req.DryRun,
		Files:    make([]FileView, 0, len(res.Files)),
	}
	for _, f := range res.Files {
		fv := FileView{
			Path:       f.Path,
			Template:   f.Template.Dir + "/" + f.Template.File,
			Source:     f.Template.Source,
			Status:     string(f.Status),
			Unresolved: f.Unresolved,
		}
		if req.DryRun {
			fv.Content = f.Content
		}
		view.Files = append(view.Files, fv)
	}
	return view
}

// NewLanguageView converts a language definition. Macros documented in the
// help table come first in their declared order, followed by the remaining
// macros sorted by name.
func NewLanguageView(lang *language.Language) LanguageView {
	view := LanguageView{
		Name:        lang.Name,
		Aliases:     lang.Aliases,
		Description: lang.Description,
		TemplateDir: lang.TemplateDir,
		Source:      lang.Source,
	}

	for _, name := range lang.FiletypeNames() {
		view.Filetypes = append(view.Filetypes, FiletypeView{Name: name, Files: lang.Filetypes[name]})
	}

	for _, arg := range lang.Arguments {
		view.Arguments = append(view.Arguments, ArgumentView{
			Flags:  arg.Flags,
			Value:  arg.Value,
			Repeat: arg.Repeat,
			Info:   arg.Info,
		})
	}

	seen := make(map[string]bool)
	for _, h := range lang.Help {
		seen[h.Name] = true
		view.Macros = append(view.Macros, MacroView{Name: h.Name, Default: lang.Macros[h.Name], Info: h.Info})
	}
	for _, name := range lang.MacroNames() {
		if !seen[name] {
			view.Macros = append(view.Macros, MacroView{Name: name, Default: lang.Macros[name]})
		}
	}
	return view
}

// NewLanguageListView converts a set of languages.
func NewLanguageListView(langs []*language.Language, detailed bool) LanguageListView {
	view := LanguageListView{Languages: make([]LanguageView, 0, len(langs)), Detailed: detailed}
	for _, lang := range langs {
		view.Languages = append(view.Languages, NewLanguageView(lang))
	}
	return view
}

// NewTemplateListView converts a template listing.
func NewTemplateListView(lang *language.Language, entries []templates.Entry, filetypes []string) TemplateListView {
	view := TemplateListView{
		Language:  lang.Name,
		Dir:       lang.TemplateDir,
		Templates: make([]TemplateView, 0, len(entries)),
		Filetypes: filetypes,
	}
	for _, e := range entries {
		view.Templates = append(view.Templates, TemplateView{File: e.File, Source: e.Source})
	}
	return view
}

// NewHistoryView converts ledger entries.
func NewHistoryView(entries []history.Entry) HistoryView {
	view := HistoryView{Entries: make([]HistoryEntryView, 0, len(entries))}
	for _, e := range entries {
		view.Entries = append(view.Entries, HistoryEntryView{
			ID:        e.ID,
			CreatedAt: e.CreatedAt,
			Path:      e.Path,
			Language:  e.Language,
			Filetype:  e.Filetype,
			Name:      e.Name,
			Template:  e.Template,
			Status:    e.Status,
		})
	}
	return view
}

// NewPathView converts a PATH change.
func NewPathView(action string, m *envpath.Manager, outcome envpath.Outcome) PathView {
	return PathView{Action: action, Outcome: string(outcome), Dir: m.Dir, Target: m.Target}
}

package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/srcmake/srcmake/pkg/ui/styles"
)

// FileView is one generated or planned file.
type FileView struct {
	Path       string   `json:"path" yaml:"path"`
	Template   string   `json:"template" yaml:"template"`
	Source     string   `json:"source" yaml:"source"`
	Status     string   `json:"status" yaml:"status"`
	Unresolved []string `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
	Content    string   `json:"content,omitempty" yaml:"content,omitempty"`
}

// GenerateView is the result of a generate run.
type GenerateView struct {
	Language string     `json:"language" yaml:"language"`
	Filetype string     `json:"filetype" yaml:"filetype"`
	Name     string     `json:"name" yaml:"name"`
	DryRun   bool       `json:"dry_run" yaml:"dry_run"`
	Files    []FileView `json:"files" yaml:"files"`
}

// Text implements Texter.
func (v GenerateView) Text() string {
	var b strings.Builder
	if v.DryRun {
		b.WriteString(styles.Render("DryRunBanner", "DRY RUN: nothing was written"))
		b.WriteString("\n")
	}

	written := 0
	for _, f := range v.Files {
		fmt.Fprintf(&b, "%s %s %s\n",
			statusLabel(f.Status),
			styles.Render("FilePath", f.Path),
			styles.Render("Muted", "("+f.Template+")"))
		if len(f.Unresolved) > 0 {
			fmt.Fprintf(&b, "  %s\n", styles.Render("Warning", "unresolved: "+strings.Join(f.Unresolved, ", ")))
		}
		if f.Status == "created" || f.Status == "overwritten" {
			written++
		}
	}

	if v.DryRun {
		for _, f := range v.Files {
			fmt.Fprintf(&b, "\n%s\n%s", styles.Render("SubHeader", "--- "+f.Path), f.Content)
			if !strings.HasSuffix(f.Content, "\n") {
				b.WriteString("\n")
			}
		}
		return b.String()
	}

	fmt.Fprintf(&b, "%s\n", styles.Render("Muted",
		fmt.Sprintf("%d of %d file(s) written for %s %s %s", written, len(v.Files), v.Language, v.Filetype, v.Name)))
	return b.String()
}

func statusLabel(status string) string {
	switch status {
	case "created":
		return styles.Render("StatusCreated", status)
	case "overwritten":
		return styles.Render("StatusOverwritten", status)
	case "skipped":
		return styles.Render("StatusSkipped", status)
	}
	return styles.Render("StatusPlanned", status)
}

// ArgumentView documents a language argument.
type ArgumentView struct {
	Flags  []string `json:"flags" yaml:"flags"`
	Value  bool     `json:"value" yaml:"value"`
	Repeat bool     `json:"repeat" yaml:"repeat"`
	Info   string   `json:"info,omitempty" yaml:"info,omitempty"`
}

// Usage is the flag list as typed on the command line.
func (a ArgumentView) Usage() string {
	usage := strings.Join(a.Flags, ", ")
	if a.Value {
		usage += " <value>"
	}
	if a.Repeat {
		usage += " ..."
	}
	return usage
}

// MacroView documents a language macro.
type MacroView struct {
	Name    string `json:"name" yaml:"name"`
	Default string `json:"default" yaml:"default"`
	Info    string `json:"info,omitempty" yaml:"info,omitempty"`
}

// FiletypeView is a named filetype group.
type FiletypeView struct {
	Name  string   `json:"name" yaml:"name"`
	Files []string `json:"files" yaml:"files"`
}

// LanguageView describes one language.
type LanguageView struct {
	Name        string         `json:"name" yaml:"name"`
	Aliases     []string       `json:"aliases" yaml:"aliases"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	TemplateDir string         `json:"template_dir" yaml:"template_dir"`
	Source      string         `json:"source" yaml:"source"`
	Filetypes   []FiletypeView `json:"filetypes,omitempty" yaml:"filetypes,omitempty"`
	Arguments   []ArgumentView `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Macros      []MacroView    `json:"macros,omitempty" yaml:"macros,omitempty"`
}

// Text implements Texter with the full help of the language.
func (v LanguageView) Text() string {
	var b strings.Builder
	b.WriteString(styles.Render("Language", v.Name))
	if v.Description != "" {
		b.WriteString(" - " + v.Description)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  aliases:   %s\n", strings.Join(v.Aliases, ", "))
	fmt.Fprintf(&b, "  templates: %s %s\n", v.TemplateDir, styles.Render("Muted", "("+v.Source+")"))

	if len(v.Filetypes) > 0 {
		b.WriteString(styles.Render("SubHeader", "Filetypes") + "\n")
		for _, ft := range v.Filetypes {
			fmt.Fprintf(&b, "  %s: %s\n", styles.Render("Bold", ft.Name), strings.Join(ft.Files, ", "))
		}
	}

	if len(v.Arguments) > 0 {
		b.WriteString(styles.Render("SubHeader", "Arguments (after --)") + "\n")
		width := 0
		for _, a := range v.Arguments {
			if n := len(a.Usage()); n > width {
				width = n
			}
		}
		for _, a := range v.Arguments {
			usage := a.Usage()
			fmt.Fprintf(&b, "  %s%s  %s\n", styles.Render("Flag", usage), strings.Repeat(" ", width-len(usage)), a.Info)
		}
	}

	if len(v.Macros) > 0 {
		b.WriteString(styles.Render("SubHeader", "Macros") + "\n")
		for _, m := range v.Macros {
			line := "  " + styles.Render("Macro", "$"+m.Name+"$")
			if m.Info != "" {
				line += "  " + m.Info
			}
			if m.Default != "" {
				line += "  " + styles.Render("Muted", fmt.Sprintf("[default: %q]", m.Default))
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// LanguageListView lists languages. With Detailed set the text form prints
// the full help of each language instead of one line per language.
type LanguageListView struct {
	Languages []LanguageView `json:"languages" yaml:"languages"`
	Detailed  bool           `json:"-" yaml:"-"`
}

// Text implements Texter.
func (v LanguageListView) Text() string {
	if len(v.Languages) == 0 {
		return styles.Render("NoContent", "No languages found.")
	}

	var b strings.Builder
	if v.Detailed {
		for i, lang := range v.Languages {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(lang.Text())
		}
		return b.String()
	}

	b.WriteString(styles.Render("Header", "Languages") + "\n")
	for _, lang := range v.Languages {
		filetypes := make([]string, 0, len(lang.Filetypes))
		for _, ft := range lang.Filetypes {
			filetypes = append(filetypes, ft.Name)
		}
		fmt.Fprintf(&b, "  %s  %s  %s\n",
			styles.Render("Language", lang.Name),
			styles.Render("Muted", strings.Join(lang.Aliases, ", ")),
			strings.Join(filetypes, ", "))
	}
	return b.String()
}

// TemplateView is one template file.
type TemplateView struct {
	File   string `json:"file" yaml:"file"`
	Source string `json:"source" yaml:"source"`
}

// TemplateListView lists the templates available to a language.
type TemplateListView struct {
	Language  string         `json:"language" yaml:"language"`
	Dir       string         `json:"dir" yaml:"dir"`
	Templates []TemplateView `json:"templates" yaml:"templates"`
	Filetypes []string       `json:"filetypes" yaml:"filetypes"`
}

// Text implements Texter.
func (v TemplateListView) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", styles.Render("Header", "Templates for "+v.Language), styles.Render("Muted", "("+v.Dir+")"))
	if len(v.Templates) == 0 {
		b.WriteString("  " + styles.Render("NoContent", "No templates found.") + "\n")
		return b.String()
	}
	for _, t := range v.Templates {
		fmt.Fprintf(&b, "  %s  %s\n", styles.Render("FilePath", t.File), styles.Render("Muted", t.Source))
	}
	b.WriteString(styles.Render("SubHeader", "Filetypes") + "\n")
	fmt.Fprintf(&b, "  %s\n", strings.Join(v.Filetypes, ", "))
	return b.String()
}

// HistoryEntryView is one ledger row.
type HistoryEntryView struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Path      string    `json:"path" yaml:"path"`
	Language  string    `json:"language" yaml:"language"`
	Filetype  string    `json:"filetype" yaml:"filetype"`
	Name      string    `json:"name" yaml:"name"`
	Template  string    `json:"template" yaml:"template"`
	Status    string    `json:"status" yaml:"status"`
}

// HistoryView lists recently generated files, newest first.
type HistoryView struct {
	Entries []HistoryEntryView `json:"entries" yaml:"entries"`
}

// Text implements Texter.
func (v HistoryView) Text() string {
	if len(v.Entries) == 0 {
		return styles.Render("NoContent", "No files generated yet.")
	}
	var b strings.Builder
	for _, e := range v.Entries {
		fmt.Fprintf(&b, "%s %s %s %s\n",
			styles.Render("Muted", e.CreatedAt.Local().Format("2006-01-02 15:04")),
			statusLabel(e.Status),
			styles.Render("FilePath", e.Path),
			styles.Render("Muted", fmt.Sprintf("(%s %s %s)", e.Language, e.Filetype, e.Name)))
	}
	return b.String()
}

// PathView reports a PATH change.
type PathView struct {
	Action  string `json:"action" yaml:"action"`
	Outcome string `json:"outcome" yaml:"outcome"`
	Dir     string `json:"dir" yaml:"dir"`
	Target  string `json:"target" yaml:"target"`
}

// Text implements Texter.
func (v PathView) Text() string {
	switch v.Outcome {
	case "added":
		return styles.Render("Success", fmt.Sprintf("Added %s to PATH via %s", v.Dir, v.Target)) +
			"\n" + styles.Render("Muted", "Open a new shell for the change to take effect.")
	case "already_present":
		return fmt.Sprintf("%s is already on PATH.", v.Dir)
	case "removed":
		return styles.Render("Success", fmt.Sprintf("Removed %s from PATH (%s)", v.Dir, v.Target))
	case "not_present":
		return fmt.Sprintf("%s was not configured in %s.", v.Dir, v.Target)
	}
	return fmt.Sprintf("%s: %s", v.Action, v.Outcome)
}

// VersionView is build information.
type VersionView struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

// Text implements Texter.
func (v VersionView) Text() string {
	return fmt.Sprintf("srcmake version %s\n  commit: %s\n  built:  %s", v.Version, v.Commit, v.Date)
}

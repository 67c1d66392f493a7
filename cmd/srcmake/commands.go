package srcmake

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"github.com/srcmake/srcmake/internal/version"
	"github.com/srcmake/srcmake/pkg/errors"
	"github.com/srcmake/srcmake/pkg/generator"
	"github.com/srcmake/srcmake/pkg/logging"
	"github.com/srcmake/srcmake/pkg/macro"
	"github.com/srcmake/srcmake/pkg/paths"
	"github.com/srcmake/srcmake/pkg/types"
	"github.com/srcmake/srcmake/pkg/ui/confirmations"
	"github.com/srcmake/srcmake/pkg/ui/output"
)

// generateFlags are shared by "generate" and the root shorthand.
type generateFlags struct {
	author          string
	overwrite       bool
	noOverwrite     bool
	set             []string
	outputDir       string
	dryRun          bool
	allowUnresolved bool
}

func (f *generateFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.author, "author", "a", "", MsgFlagAuthor)
	flags.BoolVarP(&f.overwrite, "overwrite", "o", false, MsgFlagOverwrite)
	flags.BoolVar(&f.noOverwrite, "no-overwrite", false, MsgFlagNoOverwrite)
	flags.StringArrayVar(&f.set, "set", nil, MsgFlagSet)
	flags.StringVarP(&f.outputDir, "output-dir", "C", "", MsgFlagOutputDir)
	flags.BoolVar(&f.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.BoolVar(&f.allowUnresolved, "allow-unresolved", false, MsgFlagAllowUnresolved)
}

func (a *app) newGenerateCmd() *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:               "generate <language> <filetype> <name> [flags] [-- language args]",
		Aliases:           []string{"gen"},
		Short:             MsgGenerateShort,
		Long:              MsgGenerateLong,
		Example:           MsgGenerateExample,
		GroupID:           "core",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: a.generateCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, f, args)
		},
	}
	f.register(cmd)
	return cmd
}

// splitArgs separates positional arguments from the language arguments
// given after "--".
func splitArgs(cmd *cobra.Command, args []string) (positional, languageArgs []string) {
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		return args[:dash], args[dash:]
	}
	return args, nil
}

func (a *app) runGenerate(cmd *cobra.Command, f *generateFlags, args []string) error {
	logger := logging.GetLogger("cmd.generate")

	positional, languageArgs := splitArgs(cmd, args)
	if len(positional) != 3 {
		return errors.Newf(errors.ErrInvalidInput, MsgErrPositional, len(positional))
	}

	req, err := a.generateRequest(f, positional, languageArgs)
	if err != nil {
		return err
	}
	renderer, err := a.renderer(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	registry, err := a.registry(ctx)
	if err != nil {
		return err
	}

	opts := generator.Options{
		Languages: registry,
		Templates: a.templateStore(),
		FS:        a.env.FS,
		Prompter:  confirmations.NewConsoleDialog(a.env.Stdin, cmd.ErrOrStderr()),
		Macro: macro.Options{
			CollapseBlankLines: a.cfg.Generate.CollapseBlankLines,
			TrimDoubleSpaces:   a.cfg.Generate.TrimDoubleSpaces,
		},
		Clock: a.env.Clock,
	}
	if !req.DryRun {
		if store := a.openHistory(ctx); store != nil {
			defer func() { _ = store.Close() }()
			opts.History = store
		}
	}

	logger.Info().
		Str("language", req.Language).
		Str("filetype", req.Filetype).
		Str("name", req.Name).
		Str("overwrite", string(req.Overwrite)).
		Bool("dryRun", req.DryRun).
		Msg("Generating")

	result, err := generator.New(opts).Generate(ctx, req)
	if err != nil {
		return err
	}
	return renderer.Render(output.NewGenerateView(req, result))
}

func (a *app) generateRequest(f *generateFlags, positional, languageArgs []string) (generator.Request, error) {
	req := generator.Request{
		Language:        positional[0],
		Filetype:        positional[1],
		Name:            positional[2],
		Author:          f.author,
		LanguageArgs:    languageArgs,
		AllowUnresolved: f.allowUnresolved || !a.cfg.Generate.Strict,
		DryRun:          f.dryRun,
	}
	if req.Author == "" {
		req.Author = a.cfg.Generate.Author
	}
	if req.Author == "" {
		req.Author = a.env.CurrentUser()
	}

	switch {
	case f.overwrite && f.noOverwrite:
		return req, errors.New(errors.ErrInvalidInput, MsgErrOverwriteConflict)
	case f.overwrite:
		req.Overwrite = types.OverwriteAlways
	case f.noOverwrite:
		req.Overwrite = types.OverwriteNever
	default:
		policy, err := a.cfg.OverwritePolicy()
		if err != nil {
			return req, errors.Wrap(err, errors.ErrConfigValid, "invalid generate.overwrite")
		}
		req.Overwrite = policy
	}

	set, err := parseSet(f.set)
	if err != nil {
		return req, err
	}
	req.Set = set

	dir := paths.ExpandHome(f.outputDir)
	if dir == "" {
		dir = a.paths.WorkDir()
	} else if !filepath.IsAbs(dir) {
		dir = filepath.Join(a.paths.WorkDir(), dir)
	}
	req.OutputDir = dir
	return req, nil
}

// parseSet converts repeated KEY=VALUE flags into a macro map. Later
// assignments of the same key win.
func parseSet(values []string) (macro.Map, error) {
	if len(values) == 0 {
		return nil, nil
	}
	set := make(macro.Map, len(values))
	for _, kv := range values {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrSetFormat, kv)
		}
		key = strings.TrimSpace(key)
		if !macro.IsIdentifier(key) {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrSetName, kv, key)
		}
		set[key] = value
	}
	return set, nil
}

func (a *app) newLanguagesCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:               "languages [language]",
		Aliases:           []string{"langs"},
		Short:             MsgLanguagesShort,
		Long:              MsgLanguagesLong,
		Example:           MsgLanguagesExample,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: a.languageCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			registry, err := a.registry(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 1 {
				lang, err := registry.Lookup(args[0])
				if err != nil {
					return err
				}
				return renderer.Render(output.NewLanguageView(lang))
			}
			return renderer.Render(output.NewLanguageListView(registry.All(), all))
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, MsgFlagAll)
	return cmd
}

func (a *app) newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "templates <language>",
		Short:             MsgTemplatesShort,
		Long:              MsgTemplatesLong,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.languageCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			registry, err := a.registry(cmd.Context())
			if err != nil {
				return err
			}
			lang, err := registry.Lookup(args[0])
			if err != nil {
				return err
			}

			store := a.templateStore()
			entries, err := store.List(lang.TemplateDir)
			if err != nil {
				return err
			}
			filetypes, err := store.Filetypes(lang.TemplateDir, lang.Filetypes)
			if err != nil {
				return err
			}
			return renderer.Render(output.NewTemplateListView(lang, entries, filetypes))
		},
	}
}

func (a *app) newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:     "history",
		Short:   MsgHistoryShort,
		Long:    MsgHistoryLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.History.Enabled {
				return errors.New(errors.ErrInvalidInput, MsgErrHistoryDisabled)
			}
			renderer, err := a.renderer(cmd)
			if err != nil {
				return err
			}

			store := a.openHistory(cmd.Context())
			if store == nil {
				return errors.Newf(errors.ErrHistoryOpen, "failed to open history at %s", a.historyPath())
			}
			defer func() { _ = store.Close() }()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return renderer.Render(output.NewHistoryView(entries))
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, MsgFlagLimit)
	return cmd
}

func (a *app) newPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "path",
		Short:   MsgPathShort,
		Long:    MsgPathLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add",
		Short: MsgPathAddShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			m := a.env.PathManager(a.env.FS)
			outcome, err := m.Add()
			if err != nil {
				return err
			}
			return renderer.Render(output.NewPathView("add", m, outcome))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove",
		Short: MsgPathRemoveShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			m := a.env.PathManager(a.env.FS)
			outcome, err := m.Remove()
			if err != nil {
				return err
			}
			return renderer.Render(output.NewPathView("remove", m, outcome))
		},
	})
	return cmd
}

func (a *app) newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if a.topics == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No help topics available.")
				return
			}
			a.topics.WriteList(cmd.OutOrStdout(), cmd.Root().Name())
		},
	}
}

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return renderer.Render(output.VersionView{
				Version: version.Version,
				Commit:  version.Commit,
				Date:    version.Date,
			})
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// GenerateManPages writes one man page per command into dir.
func GenerateManPages(root *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
	}
	header := &doc.GenManHeader{
		Title:   "SRCMAKE",
		Section: "1",
		Source:  "srcmake " + version.Version,
	}
	if err := doc.GenManTree(root, header, dir); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write man pages to %s", dir)
	}
	return nil
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man [dir]",
		Short:   MsgManShort,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return GenerateManPages(cmd.Root(), dir)
		},
	}
}

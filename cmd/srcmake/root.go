package srcmake

import (
	"context"
	"io"
	"os"
	"os/user"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/srcmake/srcmake/internal/version"
	"github.com/srcmake/srcmake/pkg/cobrax/topics"
	"github.com/srcmake/srcmake/pkg/config"
	"github.com/srcmake/srcmake/pkg/envpath"
	"github.com/srcmake/srcmake/pkg/errors"
	"github.com/srcmake/srcmake/pkg/filesystem"
	"github.com/srcmake/srcmake/pkg/history"
	"github.com/srcmake/srcmake/pkg/language"
	"github.com/srcmake/srcmake/pkg/logging"
	"github.com/srcmake/srcmake/pkg/paths"
	"github.com/srcmake/srcmake/pkg/templates"
	"github.com/srcmake/srcmake/pkg/types"
	"github.com/srcmake/srcmake/pkg/ui/output"
	"github.com/srcmake/srcmake/pkg/ui/styles"
)

// Env holds what the commands take from the outside world. Tests replace
// parts of it; NewRootCmd uses the real process environment.
type Env struct {
	WorkDir string
	Stdin   io.Reader
	FS      types.FS
	Clock   func() time.Time
	// PathManager builds the PATH editor used by "path add|remove".
	PathManager func(types.FS) *envpath.Manager
	// SkipEnv ignores SRCMAKE_* variables when loading configuration.
	SkipEnv bool
	// CurrentUser names the author when neither --author nor the
	// configuration sets one.
	CurrentUser func() string
}

func defaultEnv() Env {
	return Env{
		Stdin:       os.Stdin,
		FS:          filesystem.NewOS(),
		Clock:       time.Now,
		PathManager: envpath.New,
		CurrentUser: currentUser,
	}
}

// currentUser returns the full name of the account running srcmake, then
// its login, then $USER or $USERNAME.
func currentUser() string {
	if u, err := user.Current(); err == nil {
		if name := strings.TrimSpace(strings.SplitN(u.Name, ",", 2)[0]); name != "" {
			return name
		}
		if u.Username != "" {
			return u.Username
		}
	}
	for _, key := range []string{"USER", "USERNAME"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// app is the state shared by all commands of one invocation.
type app struct {
	env Env

	verbosity  int
	configFile string
	noColor    bool
	format     string

	paths  *paths.Paths
	cfg    *config.Config
	topics *topics.TopicManager
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithEnv(defaultEnv())
}

// NewRootCmdWithEnv creates the root command over env. Zero fields of env
// fall back to the process defaults.
func NewRootCmdWithEnv(env Env) *cobra.Command {
	initTemplateFormatting()

	defaults := defaultEnv()
	if env.Stdin == nil {
		env.Stdin = defaults.Stdin
	}
	if env.FS == nil {
		env.FS = defaults.FS
	}
	if env.Clock == nil {
		env.Clock = defaults.Clock
	}
	if env.PathManager == nil {
		env.PathManager = defaults.PathManager
	}
	if env.CurrentUser == nil {
		env.CurrentUser = defaults.CurrentUser
	}

	a := &app{env: env}
	gen := &generateFlags{}

	rootCmd := &cobra.Command{
		Use:     "srcmake <language> <filetype> <name> [flags] [-- language args]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgGenerateExample,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
			}
			return a.runGenerate(cmd, gen, args)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, MsgFlagNoColor)
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "", MsgFlagFormat)
	gen.register(rootCmd)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(a.newGenerateCmd())
	rootCmd.AddCommand(a.newLanguagesCmd())
	rootCmd.AddCommand(a.newTemplatesCmd())
	rootCmd.AddCommand(a.newHistoryCmd())
	rootCmd.AddCommand(a.newPathCmd())
	rootCmd.AddCommand(a.newTopicsCmd())
	rootCmd.AddCommand(a.newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	colorTopics := styles.ColorEnabled(config.ColorAuto, os.Stdout)
	tm, err := topics.InitializeWithOptions(rootCmd, TopicsFS(), topics.Options{
		Extensions: []string{".md", ".txt"},
		Renderer:   topics.NewGlamourRenderer(colorTopics),
	})
	if err == nil {
		a.topics = tm
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

// setup runs before every command: logging, paths, configuration and color.
func (a *app) setup(cmd *cobra.Command) error {
	p, err := paths.New(a.env.WorkDir)
	if err != nil {
		return err
	}
	a.paths = p

	logging.SetupLoggerWithOptions(logging.Options{
		Verbosity: a.verbosity,
		NoColor:   a.noColor,
		Console:   cmd.ErrOrStderr(),
		LogFile:   p.LogFile(),
	})

	cfg, err := config.Load(config.Options{
		UserFile:     p.UserConfigFile(),
		ProjectFile:  p.ProjectConfigFile(),
		ExplicitFile: a.configFile,
		SkipEnv:      a.env.SkipEnv,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg

	mode := cfg.Output.Color
	if a.noColor {
		mode = config.ColorNever
	}
	enabled := styles.ColorEnabled(mode, os.Stdout)
	styles.SetColor(enabled)
	colorHelp = enabled

	log.Debug().
		Str("workDir", p.WorkDir()).
		Str("configDir", p.ConfigDir()).
		Bool("color", enabled).
		Msg("Environment ready")
	return nil
}

// renderer returns the output renderer selected by --format or the
// configuration.
func (a *app) renderer(cmd *cobra.Command) (output.Renderer, error) {
	format := a.format
	if format == "" {
		format = a.cfg.Output.Format
	}
	return output.New(format, cmd.OutOrStdout())
}

// registry loads the language definitions visible from the working
// directory, builtin languages last.
func (a *app) registry(ctx context.Context) (*language.Registry, error) {
	roots := templates.DirRoots(a.paths.LanguageRoots(a.cfg.Paths.Languages))
	roots = append(roots, language.BuiltinRoot())
	return language.Load(ctx, roots)
}

func (a *app) templateStore() *templates.Store {
	return templates.NewDefaultStore(a.paths.TemplateRoots(a.cfg.Paths.Templates))
}

func (a *app) historyPath() string {
	if a.cfg.History.Path != "" {
		return paths.ExpandHome(a.cfg.History.Path)
	}
	return a.paths.HistoryFile()
}

// openHistory opens the ledger when it is enabled. Failures are logged and
// yield a nil store so generation still works.
func (a *app) openHistory(ctx context.Context) *history.Store {
	if !a.cfg.History.Enabled {
		return nil
	}
	store, err := history.Open(ctx, a.historyPath())
	if err != nil {
		logger := logging.GetLogger("cmd")
		logger.Warn().Err(err).Msg("History unavailable, not recording")
		return nil
	}
	return store
}

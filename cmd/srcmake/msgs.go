package srcmake

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Generate source files from templates"
	MsgGenerateShort   = "Generate files for a language and filetype"
	MsgLanguagesShort  = "List languages or show one language in detail"
	MsgTemplatesShort  = "List the templates available to a language"
	MsgHistoryShort    = "Show recently generated files"
	MsgPathShort       = "Add srcmake to, or remove it from, the system PATH"
	MsgPathAddShort    = "Add the srcmake directory to PATH"
	MsgPathRemoveShort = "Remove the srcmake directory from PATH"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."

	// Flag descriptions
	MsgFlagVerbose         = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig          = "Read configuration from this file as well (TOML or YAML)"
	MsgFlagNoColor         = "Disable colored output"
	MsgFlagFormat          = "Output format: text, json or yaml (default from output.format)"
	MsgFlagAuthor          = "Value of $AUTHOR$ (default from generate.author)"
	MsgFlagOverwrite       = "Replace existing files without asking"
	MsgFlagNoOverwrite     = "Never replace existing files"
	MsgFlagSet             = "Set a macro, KEY=VALUE (repeatable)"
	MsgFlagOutputDir       = "Write files below this directory"
	MsgFlagDryRun          = "Print the rendered files instead of writing them"
	MsgFlagAllowUnresolved = "Write files even when placeholders are left unresolved"
	MsgFlagAll             = "Show every language in detail"
	MsgFlagLimit           = "Number of entries to show (0 for all)"

	// Error messages
	MsgErrNoCommand         = "no command specified"
	MsgErrPositional        = "expected <language> <filetype> <name>, got %d argument(s)"
	MsgErrOverwriteConflict = "--overwrite and --no-overwrite cannot be combined"
	MsgErrSetFormat         = "invalid --set %q, expected KEY=VALUE"
	MsgErrSetName           = "invalid --set %q, %q is not a macro name"
	MsgErrHistoryDisabled   = "history is disabled (history.enabled = false)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/generate-long.txt
	msgGenerateLongRaw string
	MsgGenerateLong    = strings.TrimSpace(msgGenerateLongRaw)

	//go:embed msgs/generate-example.txt
	msgGenerateExampleRaw string
	MsgGenerateExample    = strings.TrimRight(msgGenerateExampleRaw, "\n")

	//go:embed msgs/languages-long.txt
	msgLanguagesLongRaw string
	MsgLanguagesLong    = strings.TrimSpace(msgLanguagesLongRaw)

	//go:embed msgs/languages-example.txt
	msgLanguagesExampleRaw string
	MsgLanguagesExample    = strings.TrimRight(msgLanguagesExampleRaw, "\n")

	//go:embed msgs/templates-long.txt
	msgTemplatesLongRaw string
	MsgTemplatesLong    = strings.TrimSpace(msgTemplatesLongRaw)

	//go:embed msgs/history-long.txt
	msgHistoryLongRaw string
	MsgHistoryLong    = strings.TrimSpace(msgHistoryLongRaw)

	//go:embed msgs/path-long.txt
	msgPathLongRaw string
	MsgPathLong    = strings.TrimSpace(msgPathLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)

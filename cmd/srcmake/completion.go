package srcmake

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/srcmake/srcmake/pkg/language"
)

// ready runs setup when a completion function is called before the regular
// pre-run hooks.
func (a *app) ready(cmd *cobra.Command) bool {
	if a.cfg != nil {
		return true
	}
	return a.setup(cmd) == nil
}

func (a *app) completionRegistry(cmd *cobra.Command) *language.Registry {
	if !a.ready(cmd) {
		return nil
	}
	registry, err := a.registry(cmd.Context())
	if err != nil {
		return nil
	}
	return registry
}

func filterPrefix(candidates []string, prefix string) []string {
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), strings.ToLower(prefix)) {
			out = append(out, c)
		}
	}
	return out
}

// languageCompletion completes the first argument with language aliases.
func (a *app) languageCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	registry := a.completionRegistry(cmd)
	if registry == nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var aliases []string
	for _, lang := range registry.All() {
		aliases = append(aliases, lang.Aliases...)
	}
	return filterPrefix(aliases, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// generateCompletion completes the language and then its filetypes.
func (a *app) generateCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return a.languageCompletion(cmd, args, toComplete)
	case 1:
		registry := a.completionRegistry(cmd)
		if registry == nil {
			return nil, cobra.ShellCompDirectiveError
		}
		lang, err := registry.Lookup(args[0])
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		filetypes, err := a.templateStore().Filetypes(lang.TemplateDir, lang.Filetypes)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return filterPrefix(filetypes, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveDefault
}

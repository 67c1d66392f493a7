// Package paths resolves the directories srcmake reads from and writes to.
//
// User level locations follow the XDG Base Directory specification through
// github.com/adrg/xdg, with the XDG_* environment variables consulted first
// so that tests and wrappers can redirect them at runtime:
//
//	config   $XDG_CONFIG_HOME/srcmake   config.toml, templates/, languages/
//	data     $XDG_DATA_HOME/srcmake     history.db
//	state    $XDG_STATE_HOME/srcmake    srcmake.log
//
// Project level overrides live in the working directory: .srcmake.toml and
// the .srcmake/templates and .srcmake/languages trees. Templates and
// languages placed next to the executable are still honoured, which is how
// portable installs ship extra languages.
package paths

// Package language loads srcmake language definitions.
//
// A language definition is a TOML document naming the language, the aliases
// accepted on the command line and the template directory it draws from.
// It declares default values for language specific macros and the
// arguments, given after "--", that change them. Values are Go text/template
// strings evaluated against the universal macros (NAME, FILE_EXT, ...), so a
// definition can derive HEADER_GUARD from NAME without any scripting.
//
// Definitions are searched in the same roots as templates. The first
// definition of a language name wins, and a file that fails to parse is
// logged and skipped so that one broken user file does not disable the
// built-in languages.
package language

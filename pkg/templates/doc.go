// Package templates locates srcmake template files.
//
// Templates are grouped in one directory per language ("Cpp", "CSharp").
// A Store searches an ordered list of roots with first-hit precedence per
// file, so a project can override a single built-in template by placing a
// file of the same name in .srcmake/templates/<Dir>/.
package templates

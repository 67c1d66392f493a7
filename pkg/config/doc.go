// Package config handles configuration management for srcmake.
// It layers the embedded defaults, the user and project TOML files, an
// explicit config file and SRCMAKE_* environment variables with koanf.
package config

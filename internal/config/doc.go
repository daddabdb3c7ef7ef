// Package config resolves CLI settings from built-in defaults, an optional
// TOML file and SPORTSINTEL_* environment variables, in that order. Flags are
// applied on top by the command.
package config

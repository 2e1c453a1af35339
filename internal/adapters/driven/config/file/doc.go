// Package file provides the TOML-backed configuration store and the
// resolution of domain.Config and domain.Account from it.
//
// Precedence, lowest first: built-in defaults, config.toml, environment.
package file

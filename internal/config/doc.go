// Package config loads, validates, and defaults Atelier's TOML configuration.
//
// Load resolves the config path (explicit flag, then the user config
// directory, then a project-local atelier.toml), decodes over Default(),
// expands home-relative paths, and validates every section. Other packages
// consume the resulting Config value rather than reading files themselves.
package config

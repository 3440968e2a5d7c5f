// Package configs manages the on-disk configuration store for the cellar
// CLI.
//
// Configuration is a TOML file under the OS user config directory
// (respecting XDG_CONFIG_HOME on Linux). It records the default
// repository path, so commands may omit --repository, and a generated
// installation UUID.
//
// Access goes through a process-wide lifecycle token acquired once at
// startup; the token scopes the store's validity the same way the crypto
// lifecycle scopes the encryption layer.
package configs

// Package config loads the service configuration.
//
// Settings are layered: Default, then an optional YAML, TOML or JSON file
// chosen by --config (or $DIGITALTWIN_CONFIG), then environment variables.
// Every variable is read with the DIGITALTWIN_ prefix, e.g.
// DIGITALTWIN_MONGODB_URI; the unprefixed name (MONGODB_URI) is accepted as a
// fallback.
package config

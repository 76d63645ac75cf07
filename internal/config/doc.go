// Package config loads, validates, and normalizes orderflow's TOML
// configuration. Load resolves the config path (explicit flag, then
// ~/.config/orderflow/config.toml, then ./orderflow.toml), merges the
// file over Default(), expands ~ in path fields, and validates the
// result. CreateSample writes the embedded sample for `config init`.
package config

// Package config loads, normalizes, and validates sindex configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the SINDEX_INDEX environment
// fallback for the index location. The Config type centralizes the index,
// scan, and logging settings the CLI needs.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical languages and log formats, and clear validation
// errors.
package config

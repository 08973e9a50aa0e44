// Package config loads, normalizes, and validates brunnhilde configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the BRUNNHILDE_OUTPUT_DIR
// environment override. The Config type names every external tool the run
// pipeline drives so the binaries can be swapped without code changes.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config

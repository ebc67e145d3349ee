// Package config provides configuration loading, merging, and validation
// facilities for go-cxf.
//
// Configuration is assembled from multiple sources. Higher sources win for
// non-zero fields:
//  1. Command-line flags
//  2. Environment variables (CXF_ prefix, optionally seeded from a .env file)
//  3. JSONC config file
//  4. Built-in defaults
//
// The main entry point is [GetStructuredConfig].
package config

// Package config provides configuration management for the mtstash CLI.
// Values are merged from defaults, an optional mtstash.yaml file, MTSTASH_
// environment variables, and command-line flags, in rising precedence.
package config

// Config holds all CLI configuration options.
type Config struct {
	// DataDir is where the moment-tensor database lives.
	DataDir string `koanf:"data_dir"`
	// Source is the default provenance tag for local-file ingestion.
	Source string `koanf:"source"`
	// CatalogURL overrides the canonical catalog endpoint.
	CatalogURL string `koanf:"catalog_url"`
	// PointerPath overrides the per-user config pointer file.
	PointerPath string `koanf:"pointer_path"`
	Verbose     bool   `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultSource = "user"
)

// Package config defines the format-agnostic pipeline model and the Loader
// interface that format-specific adapters implement.
//
// A config.Model is the single source of truth for package blueprint, which
// turns it into a connected station graph. Concrete loaders for HCL and YAML
// live in the hcl_adapter and yaml_adapter packages.
package config

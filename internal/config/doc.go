// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// Every field is optional: Default returns a complete configuration, and a
// loaded file only overrides what it sets.
package config

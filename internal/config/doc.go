// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// The legacy flat config.json keys (url, consumer_key, consumer_secret, interval)
// are still accepted at the top level; JSON is valid YAML.
package config

// Package config loads and validates the pipeline configuration.
//
// Configuration is layered: code defaults, an optional yaml file, then
// TRADE_-prefixed environment variables, with later layers winning.
// For example TRADE_PIPELINE_BASE_YEAR=2015 overrides both the default
// and any yaml value.
package config

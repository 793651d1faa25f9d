// Package config loads and validates the serving configuration. Values are
// layered through viper (defaults, optional YAML file, DUFS_* environment
// variables, CLI flags) and frozen into one Config record that every
// request handler shares; nothing mutates it after startup.
package config

// Package config provides the configuration of reviewlens: defaults, the
// optional .reviewlens YAML file, XDG paths and validation.
package config

// Package config defines the format-agnostic model of an exporter config
// file and the Loader interface that concrete formats implement. Values set
// in a File are defaults that command-line flags may override.
package config

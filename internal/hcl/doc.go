// Package hcl provides the concrete HCL implementation of config.Loader. It
// parses exporter config files with hashicorp/hcl and evaluates their
// expressions against an "env" object holding the process environment.
package hcl

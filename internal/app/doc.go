// Package app contains the exporter's core lifecycle. It defines the App
// struct and its validated Config, builds the Syncro client and the CSV
// column set, and runs one export, decoupled from the CLI entrypoint.
package app

// Package config defines the format-agnostic configuration model for a
// canvas, along with the Loader interface for reading it from various
// sources.
//
// The `config.Model` is the single source of truth for the `registry` (node
// templates) and `graph` (initial nodes) packages. Concrete implementations of
// the Loader interface, such as for HCL, are provided in separate packages.
package config

// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for file discovery, parsing, decoding into the
// schema structs and translation into the format-agnostic config model.
package hcl

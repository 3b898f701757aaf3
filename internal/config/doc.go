// Package config defines the run configuration, its YAML file form,
// and the precedence rules combining the two with built-in defaults.
//
// # Schema Overview
//
// The optional configuration file has the following structure:
//
//	input: ./src/entities
//	output: ./generated/shapes
//	prefix: true
//	verbose: true
//	watch: false
//	exclude:
//	  - "**/*.spec.ts"
//
// Unknown keys are rejected so typos fail loudly instead of silently
// falling back to defaults.
//
// # Precedence Order
//
// When the same setting appears in several places, the effective value
// is resolved using this priority:
//  1. Command-line flags (highest)
//  2. Configuration file values
//  3. Built-in defaults (lowest)
//
// # Output Layout
//
// The output path doubles as the layout switch: a path ending in the
// generated-file extension names a single aggregate file, any other
// path names a directory that receives one file per declaration.
package config

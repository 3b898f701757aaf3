// Package parse provides source discovery and entity extraction for
// TypeScript inputs.
//
// It uses tree-sitter with the TypeScript grammar to build a canonical
// in-memory model of entity classes, their decorated properties, and
// enum declarations.
//
// Key types:
//   - SourceUnit: one parsed file with its classes and enums
//   - ClassUnit / PropertyDecl: a class and its properties in order
//   - TypeText: structured form of a declared type
//     (named/collection/deferred/opaque)
//   - EnumUnit: an enum passed through to the output unchanged
package parse

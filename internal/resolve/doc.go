// Package resolve provides the symbol resolution and type-rewriting
// engine that turns parsed entity classes into shape definitions.
//
// Resolution pipeline:
//  1. Pass 1: walk every unit, build the class-name -> shape-name
//     symbol table and collect enums (targets may be declared after
//     their referrers, so pass 1 completes before any rewriting)
//  2. Pass 2: walk units in the same order; per class, classify each
//     property's relation kind, rewrite relation types against the
//     symbol table, and assemble the plain/full shape pair
//  3. Emit diagnostics (unresolved targets, skipped declarations,
//     per-class summaries)
//
// The engine is sequential by contract: output ordering follows unit
// and declaration order exactly.
package resolve

// Package document defines the nested value space for config documents.
//
// A Value is recursively either a scalar (Null, Bool, Int, Float, String),
// a Sequence, or a Mapping. Only mappings are traversable by route. The
// package contains type definitions and structural operations only; it
// imports nothing else from this module so it can remain the foundational
// layer with no circular dependencies.
//
// Mappings preserve insertion order. Order matters for serialization
// fidelity (a rewritten config file keeps its key order) but never for
// lookup or equality semantics.
package document

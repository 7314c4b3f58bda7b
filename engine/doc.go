// Package engine implements routed traversal and mutation of documents.
//
// Resolve walks a route through a document and returns the addressed value.
// Assoc returns a new document with a value installed at a route, and Dissoc
// returns a new document with a route removed. Both mutation operations deep
// copy their input first: the caller's document is never modified.
//
// The package is a pure, synchronous transform on in-memory documents. It
// performs no I/O, holds no state, and never blocks.
package engine

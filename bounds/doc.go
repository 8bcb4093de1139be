// Package bounds implements the leaf interpreter (spec component C3): it
// binds relation symbols to fresh scalar variables under per-relation
// lower/upper bounds, and realizes the canonical constant relations (UNIV,
// IDEN, NONE, INTS) as matrices over a fixed universe.
//
// A Bounds value is supplied by the caller (normally assembled from the
// front end's parsed declarations); an Interpreter is built from it once
// and is immutable afterward — every Interpret call is a pure read over
// state fixed at construction.
package bounds

// Package scalar implements the boolean/numeric circuit IR described in the
// system's scalar-IR component: a hash-consed set of gate kinds whose leaves
// are drawn from a user-selected semiring (plain Boolean, integer, or one of
// several fuzzy t-norm/t-conorm families on [0,1]).
//
// A Factory is the single allocator of Scalar nodes. Every constructor
// method performs constant folding and identity elimination before
// allocating a node, and constants and gates are interned: two calls that
// build the same constant, or the same gate over the same inputs, return
// the same *Scalar value. Variables and BinaryValue nodes are allocated
// fresh on every call. Scalars are
// immutable once built; callers never mutate a Scalar's fields directly.
//
// The package intentionally has no notion of "matrix" or "relation" — that
// lives one layer up, in package matrix, which stores Scalars as the cells
// of a sparse tensor.
package scalar

// Package matrix implements the numeric matrix algebra described in the
// system's sparse-numeric-matrix component: a multidimensional sparse
// tensor whose cells are scalar.Scalar circuit nodes, together with every
// relational, closure, and comparison operation the translator needs.
//
// A Matrix never stores a cell for an index whose value is ZERO; an absent
// index is defined to read as ZERO. Three backing representations
// (homogeneous, dense, tree) are chosen heuristically by the constructors
// for memory/time locality; the choice never changes observable semantics,
// only performance — every operation reads/writes through the Backing
// interface, never assuming a concrete representation beneath a Matrix it
// did not itself allocate.
//
// BinaryMatrix layers one additional invariant on top of Matrix: every cell
// is {0,1}-valued (ZERO or ONE in the owning factory). Only Drop, AlphaCut
// and AsBinary return a BinaryMatrix; every other operation returns a plain
// Matrix, including set operations whose operands are both BinaryMatrix
// values.
package matrix

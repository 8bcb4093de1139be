// Package translate walks a relast.Node tree and lowers it to the scalar/
// matrix IR that package smt serializes (spec §4.4). Translation is a
// single post-order traversal: relation-expression nodes become
// *matrix.Matrix values, formula nodes become boolean-kind *scalar.Scalar
// values, and numeric expressions are represented as single-cell matrices
// so every node shares one Value shape.
//
// Env tracks the declaration bindings and quantifier polarity visible at
// the current node (spec §3 "Environment (C4)"). Cache memoizes
// translations of shareable subtrees keyed by the node and its free
// variables' current bindings (spec §3 "Translation Cache (C4)").
package translate

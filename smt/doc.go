// Package smt lowers a translated circuit (package translate's output) to
// SMT-LIB v2.6, drives one of four external solver processes, and parses the
// resulting model back into primary-variable values (spec component C5).
//
// A ProblemTranslation bundles the root formula, the reflexive-closure side
// equations, and the owning scalar.Factory. Emit renders it to SMT-LIB text;
// Driver owns the solver subprocess lifecycle (one-shot or incremental) and
// Model carries the parsed result, keyed by primary-variable label exactly
// as scalar.Scalar.Label()/VarID() report it.
package smt

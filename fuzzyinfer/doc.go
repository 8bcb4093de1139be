// Package fuzzyinfer implements the Mamdani and Sugeno fuzzy-inference
// styles used by the heater and tip end-to-end scenarios: membership
// functions over plain float64 inputs, rule firing strength via a
// pluggable t-norm, and the Mamdani/Sugeno defuzzification methods
// (smallest-of-maximum, weighted average). It is independent of the
// scalar/matrix/smt circuit pipeline — these are numeric reference
// computations a scenario checks its solved instance against, not part of
// the SMT lowering itself.
package fuzzyinfer

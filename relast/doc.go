// Package relast defines the relational AST that package translate walks
// (spec §3/§4.4): the tree the external front end produces from a parsed
// relational formula, covering relation expressions, boolean formulas, and
// integer expressions over declared relation symbols.
//
// Node is a single tagged-variant type, mirroring package scalar's Scalar:
// one Kind field selects which group of the remaining fields is
// meaningful. relast itself performs no translation, caching, or
// validation beyond what its constructors can check locally — it is a
// plain, front-end-produced value tree.
package relast

// Package solve lifts a solved SMT model back into a weighted relational
// instance and drives the enumeration iterator (spec component C6).
package solve

package fuzzyinfer

import "errors"

var (
	// ErrUnknownVariable is returned when a rule references an input
	// variable not supplied to Mamdani/Sugeno.
	ErrUnknownVariable = errors.New("fuzzyinfer: unknown variable")
	// ErrUnknownTerm is returned when a rule references a term name not
	// declared on its variable.
	ErrUnknownTerm = errors.New("fuzzyinfer: unknown term")
	// ErrNoRulesFired is returned when every rule's firing strength is
	// zero, leaving nothing to defuzzify.
	ErrNoRulesFired = errors.New("fuzzyinfer: no rule fired")
)

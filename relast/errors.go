package relast

import "errors"

// ErrMissingVar reports a Decl with an empty variable name.
var ErrMissingVar = errors.New("relast: declaration variable name is empty")

// ErrNilOperand reports a constructor invoked with a required sub-node left
// nil.
var ErrNilOperand = errors.New("relast: required operand is nil")

// ErrEmptyInputs reports an n-ary And/Or built with no arms.
var ErrEmptyInputs = errors.New("relast: n-ary node has no inputs")

// ErrEmptyColumns reports a Project node built with no columns to keep.
var ErrEmptyColumns = errors.New("relast: project has no columns")

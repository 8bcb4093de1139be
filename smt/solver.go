package smt

import (
	"os"
	"os/exec"
)

// solverSpec captures one back end's command-line quirks (spec §4.5's
// table: "Solvers. Four back ends; each provides command(incremental),
// environment-variable fallbacks for the binary path, and per-solver
// quirks").
type solverSpec struct {
	kind               Kind
	defaultBinary      string
	envVar             string // <SOLVER>_DIR fallback
	supportsIncr       bool
	incrementalArgs    []string
	oneShotArgs        []string
}

var solverSpecs = map[Kind]solverSpec{
	Z3: {
		kind:            Z3,
		defaultBinary:   "z3",
		envVar:          "Z3_DIR",
		supportsIncr:    true,
		incrementalArgs: []string{"-in"},
		oneShotArgs:     nil,
	},
	MathSAT: {
		kind:            MathSAT,
		defaultBinary:   "mathsat",
		envVar:          "MATHSAT_DIR",
		supportsIncr:    false, // "none (re-fed per solve)"
		incrementalArgs: nil,
		oneShotArgs:     nil,
	},
	CVC4: {
		kind:            CVC4,
		defaultBinary:   "cvc4",
		envVar:          "CVC4_DIR",
		supportsIncr:    false, // "single call"
		incrementalArgs: nil,
		oneShotArgs:     []string{"--lang", "smtlib2.6"},
	},
	Yices: {
		kind:            Yices,
		defaultBinary:   "yices-smt2",
		envVar:          "YICES_DIR",
		supportsIncr:    true,
		incrementalArgs: []string{"--incremental", "--smt2-model-format"},
		oneShotArgs:     []string{"--smt2-model-format"},
	},
}

// resolveBinary implements spec §4.5's fallback chain: user option, then
// <SOLVER>_DIR env var, then the bare default binary name, which lookupPath
// searches for on PATH only.
func resolveBinary(spec solverSpec, userPath string) string {
	if userPath != "" {
		return userPath
	}
	if dir := os.Getenv(spec.envVar); dir != "" {
		return dir + string(os.PathSeparator) + spec.defaultBinary
	}
	return spec.defaultBinary
}

// commandArgs returns the argv (excluding argv[0]) for one invocation,
// choosing incremental or one-shot flags per spec's table.
func commandArgs(spec solverSpec, incremental bool) []string {
	if incremental && spec.supportsIncr {
		return spec.incrementalArgs
	}
	return spec.oneShotArgs
}

// lookupPath reports whether binary resolves to an executable, the
// Unreachable failure mode's precondition (spec §4.5 "SolverFailure::
// Unreachable (binary missing)").
func lookupPath(binary string) error {
	_, err := exec.LookPath(binary)
	return err
}

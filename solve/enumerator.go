package solve

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/relfind/wmf/bounds"
	"github.com/relfind/wmf/internal/lastsolve"
	"github.com/relfind/wmf/smt"
)

// Enumerator drives one translation's solve/next cycle and lifts every sat
// verdict into an Instance (spec component C6 "Iteration"). It owns no
// subprocess directly; that lives in the wrapped *smt.Driver, which it
// also registers with package lastsolve so later calls into this process
// can resume enumeration without re-translating.
type Enumerator struct {
	mu sync.Mutex

	opts    Options
	driver  *smt.Driver
	in      *bounds.Interpreter
	trivial bool

	lastInstance *Instance
}

// NewEnumerator builds an Enumerator over driver's solver session and in's
// primary-variable allocation. trivial bounds (spec §4.6 "If Bounds fixes
// R's lower bound equal to upper bound for every R") are detected once,
// up front, since Bounds never changes within a translation's lifecycle.
func NewEnumerator(driver *smt.Driver, in *bounds.Interpreter, opts ...Option) *Enumerator {
	return &Enumerator{opts: NewOptions(opts...), driver: driver, in: in, trivial: in.Bounds().IsTrivial()}
}

// IsTrivial reports whether every relation's membership was already fixed
// by Bounds, leaving only quantitative weight values (if any) undecided.
func (e *Enumerator) IsTrivial() bool { return e.trivial }

// LastInstance returns the most recently lifted Instance, or nil if the
// last verdict was not Sat.
func (e *Enumerator) LastInstance() *Instance { return e.lastInstance }

// Solve serializes and runs tr once, lifting the result on Sat (spec §4.6
// "Lift"). It also installs the driver as the process-wide LastSolve
// handle so a later call in this process can resume enumeration via Next.
func (e *Enumerator) Solve(ctx context.Context, tr *smt.ProblemTranslation, maxWeight int64) (smt.Verdict, *Instance, smt.Stats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	verdict, model, stats, err := e.driver.Solve(ctx, tr, maxWeight)
	if err != nil {
		return verdict, nil, stats, err
	}
	lastsolve.Set(&lastsolve.Handle{SessionID: sessionIDOf(tr), Interpreter: e.in, Driver: e.driver})
	if verdict != smt.Sat {
		e.lastInstance = nil
		return verdict, nil, stats, nil
	}
	inst, err := Lift(e.in, model)
	if err != nil {
		return verdict, nil, stats, err
	}
	e.lastInstance = inst
	e.opts.Logger.Debug().Int("relations", len(inst.Relations)).Msg("solve lift")
	return verdict, inst, stats, nil
}

// Next blocks the previously lifted model and re-solves (spec §4.6
// "next() mutates the solver by calling elimSolution(all primary
// variables) and re-solves"). The driver itself decides how to encode the
// blocking clause (incremental append or one-shot replay); the trivial
// case described in spec §4.6 ("generate a fresh relation symbol and
// assert inequality with the previously trivially-sat instance") reduces
// to the same mechanism here, since elimSolution over all primary
// variables already asserts a disjunction of inequalities against the
// prior model, fixed-membership or not.
func (e *Enumerator) Next(ctx context.Context) (smt.Verdict, *Instance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	verdict, model, err := e.driver.Next(ctx)
	if err != nil {
		e.lastInstance = nil
		return verdict, nil, err
	}
	if verdict != smt.Sat {
		e.lastInstance = nil
		return verdict, nil, nil
	}
	inst, err := Lift(e.in, model)
	if err != nil {
		return verdict, nil, err
	}
	e.lastInstance = inst
	return verdict, inst, nil
}

func sessionIDOf(tr *smt.ProblemTranslation) uuid.UUID { return tr.ID }

package smt

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// incrementalSession is the persistent subprocess state for a solver whose
// incremental mode keeps stdin/stdout open across round trips (spec §4.5
// "Incremental mode... the driver keeps stdin/stdout open").
type incrementalSession struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
	stderr *bytes.Buffer
}

// Driver is the single-writer owner of one solve's subprocess, pipes, and
// SMT source buffer (spec §9 "Solver-process lifecycle"). It is not safe
// for concurrent use from more than one goroutine at a time; mu only
// serializes Solve/Next/Close against each other within this process.
type Driver struct {
	opts DriverOptions
	spec solverSpec

	mu sync.Mutex

	tr        *ProblemTranslation
	program   *Program
	blocking  []string // accumulated blocking clauses, one-shot replay mode
	lastModel *Model

	session *incrementalSession
}

// NewDriver builds a Driver for the solver and options selected by opts.
func NewDriver(opts ...Option) *Driver {
	o := NewDriverOptions(opts...)
	return &Driver{opts: o, spec: solverSpecs[o.Solver]}
}

func (d *Driver) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.opts.Timeout)
}

func cancellationFault(ctx context.Context) error {
	if ctx.Err() == context.DeadlineExceeded {
		return faultTimeout()
	}
	return faultAborted()
}

// Solve serializes tr (spec §4.5 "Serialization") and runs the solver once,
// returning the verdict and, on Sat, the parsed model.
func (d *Driver) Solve(ctx context.Context, tr *ProblemTranslation, maxWeight int64) (Verdict, *Model, Stats, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	program, err := Emit(tr, maxWeight)
	if err != nil {
		return Unknown, nil, Stats{}, err
	}
	translationMillis := time.Since(start).Milliseconds()

	d.tr = tr
	d.program = program
	d.blocking = nil
	d.lastModel = nil
	if d.session != nil {
		d.session.stdin.Close()
		d.session.cmd.Wait()
		d.session = nil
	}

	binary := resolveBinary(d.spec, d.opts.BinaryPath)
	if err := lookupPath(binary); err != nil {
		return Unknown, nil, Stats{}, failUnreachable(fmt.Sprintf("%s: %v", binary, err))
	}

	solveStart := time.Now()
	var verdict Verdict
	var model *Model
	useIncremental := d.opts.Incremental && d.spec.supportsIncr
	if useIncremental {
		verdict, model, err = d.solveIncremental(ctx, binary, program.Text)
	} else {
		verdict, model, err = d.solveOneShot(ctx, binary, program.Text)
	}
	solvingMillis := time.Since(solveStart).Milliseconds()
	if err != nil {
		return Unknown, nil, Stats{}, err
	}
	if verdict == Sat {
		d.lastModel = model
	}

	stats := Stats{
		TranslationMillis: translationMillis,
		SolvingMillis:     solvingMillis,
		NumVars:           len(program.Declarations),
		NumAssertions:     program.NumAssertions,
	}
	d.opts.Logger.Debug().
		Str("solver", d.opts.Solver.String()).
		Int("assertions", program.NumAssertions).
		Int("vars", len(program.Declarations)).
		Int64("elapsed_ms", solvingMillis).
		Str("verdict", verdict.String()).
		Msg("smt solve")
	return verdict, model, stats, nil
}

// Next blocks the previous model's primary variables and re-solves (spec
// §4.6 "next() mutates the solver by calling elimSolution(all primary
// variables) and re-solves").
func (d *Driver) Next(ctx context.Context) (Verdict, *Model, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tr == nil || d.program == nil {
		return Unknown, nil, fmt.Errorf("smt: Next called before Solve")
	}
	if d.lastModel == nil {
		return Unknown, nil, fmt.Errorf("smt: Next called with no prior sat model")
	}
	block := ElimSolution(d.tr.Factory.Domain(), d.lastModel, d.program.Declarations)
	if block == "" {
		return Unknown, nil, fmt.Errorf("smt: no primary variables to block")
	}

	var verdict Verdict
	var model *Model
	var err error
	if d.session != nil {
		if _, werr := io.WriteString(d.session.stdin, block+"(check-sat)\n(get-model)\n"); werr != nil {
			return Unknown, nil, failUnreachable(werr.Error())
		}
		verdict, model, err = d.readVerdictAndModel(ctx)
	} else {
		d.blocking = append(d.blocking, block)
		binary := resolveBinary(d.spec, d.opts.BinaryPath)
		full := d.program.Text + strings.Join(d.blocking, "")
		verdict, model, err = d.solveOneShot(ctx, binary, full)
	}
	if err != nil {
		d.lastModel = nil
		return Unknown, nil, err
	}
	if verdict == Sat {
		d.lastModel = model
	} else {
		d.lastModel = nil
	}
	d.opts.Logger.Debug().Str("solver", d.opts.Solver.String()).Str("verdict", verdict.String()).Msg("smt next")
	return verdict, model, nil
}

// Close tears down any persistent incremental subprocess. Safe to call when
// none is running.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session == nil {
		return nil
	}
	d.session.stdin.Close()
	err := d.session.cmd.Wait()
	d.session = nil
	return err
}

func (d *Driver) solveOneShot(ctx context.Context, binary, body string) (Verdict, *Model, error) {
	ctx2, cancel := d.withTimeout(ctx)
	defer cancel()

	full := body + strings.Join(d.blocking, "") + "(check-sat)\n(get-model)\n"
	tmp, err := os.CreateTemp("", "wmf-*.smt2")
	if err != nil {
		return Unknown, nil, failUnreachable(err.Error())
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(full); err != nil {
		tmp.Close()
		return Unknown, nil, failUnreachable(err.Error())
	}
	tmp.Close()

	args := append(append([]string{}, commandArgs(d.spec, false)...), tmp.Name())
	cmd := exec.CommandContext(ctx2, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()

	if ctx2.Err() != nil {
		return Unknown, nil, cancellationFault(ctx2)
	}

	verdict, model, perr := parseRunOutput(stdout.String())
	if perr != nil {
		if runErr != nil {
			return Unknown, nil, failUnexpectedExit(runErr.Error(), stderr.String())
		}
		return Unknown, nil, failProtocol(perr.Error(), stderr.String())
	}
	return verdict, model, nil
}

func (d *Driver) solveIncremental(ctx context.Context, binary, body string) (Verdict, *Model, error) {
	args := commandArgs(d.spec, true)
	cmd := exec.Command(binary, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return Unknown, nil, failUnreachable(err.Error())
	}
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return Unknown, nil, failUnreachable(err.Error())
	}
	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf
	if err := cmd.Start(); err != nil {
		return Unknown, nil, failUnreachable(err.Error())
	}
	d.session = &incrementalSession{cmd: cmd, stdin: stdin, stdout: bufio.NewReader(stdoutPipe), stderr: &stderrBuf}

	if _, err := io.WriteString(stdin, body+"(check-sat)\n(get-model)\n"); err != nil {
		return Unknown, nil, failUnreachable(err.Error())
	}
	return d.readVerdictAndModel(ctx)
}

func (d *Driver) readVerdictAndModel(ctx context.Context) (Verdict, *Model, error) {
	line, err := d.readWithDeadline(ctx, func() (string, error) {
		return readCheckSatLine(d.session.stdout)
	})
	if err != nil {
		return Unknown, nil, err
	}
	switch line {
	case "unsat":
		return Unsat, nil, nil
	case "unknown":
		return Unknown, nil, nil
	case "sat":
		block, err := d.readWithDeadline(ctx, func() (string, error) {
			return readBalancedBlock(d.session.stdout)
		})
		if err != nil {
			return Unknown, nil, err
		}
		model, err := ParseModel(block)
		if err != nil {
			return Unknown, nil, err
		}
		return Sat, model, nil
	default:
		return Unknown, nil, failProtocol("unexpected check-sat response: "+line, d.session.stderr.String())
	}
}

type readResult struct {
	s   string
	err error
}

// readWithDeadline runs fn (a blocking read against the incremental
// session's stdout) respecting ctx/Timeout. On expiry it kills the
// subprocess, matching spec §5's "forcibly terminates the subprocess" and
// reports CancellationFault rather than leaving a half-read response.
func (d *Driver) readWithDeadline(ctx context.Context, fn func() (string, error)) (string, error) {
	ctx2, cancel := d.withTimeout(ctx)
	defer cancel()

	ch := make(chan readResult, 1)
	go func() {
		s, err := fn()
		ch <- readResult{s, err}
	}()
	select {
	case r := <-ch:
		return r.s, r.err
	case <-ctx2.Done():
		if d.session != nil && d.session.cmd.Process != nil {
			d.session.cmd.Process.Kill()
		}
		return "", cancellationFault(ctx2)
	}
}

func readCheckSatLine(r *bufio.Reader) (string, error) {
	for {
		line, err := r.ReadString('\n')
		line = strings.TrimSpace(line)
		switch line {
		case "sat", "unsat", "unknown":
			return line, nil
		}
		if err != nil {
			return "", failProtocol("no check-sat response", line)
		}
	}
}

// readBalancedBlock reads lines until the cumulative paren depth returns to
// zero after having gone positive, the shape of a get-model response (spec
// §6 "(model (define-fun ...)+)").
func readBalancedBlock(r *bufio.Reader) (string, error) {
	var b strings.Builder
	depth := 0
	started := false
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			b.WriteString(line)
			for _, c := range line {
				if c == '(' {
					depth++
					started = true
				}
				if c == ')' {
					depth--
				}
			}
		}
		if started && depth <= 0 {
			return b.String(), nil
		}
		if err != nil {
			if started {
				return b.String(), nil
			}
			return "", err
		}
	}
}

// parseRunOutput extracts the sat/unsat/unknown verdict and, on sat, the
// model from a one-shot solver invocation's full stdout text.
func parseRunOutput(stdout string) (Verdict, *Model, error) {
	var verdict Verdict
	found := false
	for _, line := range strings.Split(stdout, "\n") {
		switch strings.TrimSpace(line) {
		case "sat":
			verdict, found = Sat, true
		case "unsat":
			verdict, found = Unsat, true
		case "unknown":
			verdict, found = Unknown, true
		}
		if found {
			break
		}
	}
	if !found {
		return Unknown, nil, fmt.Errorf("no sat/unsat/unknown verdict in solver output")
	}
	if verdict != Sat {
		return verdict, nil, nil
	}
	model, err := ParseModel(stdout)
	if err != nil {
		return Unknown, nil, err
	}
	return Sat, model, nil
}

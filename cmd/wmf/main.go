// Command wmf loads a bounds file, translates a default "every declared
// relation is nonempty" goal against it, and drives an SMT-backed weighted
// model search (spec components C4-C6).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/relfind/wmf/bounds"
	"github.com/relfind/wmf/relast"
	"github.com/relfind/wmf/scalar"
	"github.com/relfind/wmf/smt"
	"github.com/relfind/wmf/solve"
	"github.com/relfind/wmf/translate"
)

type rootFlags struct {
	boundsFile  string
	domain      string
	tnorm       string
	solverKind  string
	binaryPath  string
	maxWeight   int64
	incremental bool
	timeout     time.Duration
	verbose     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "wmf",
		Short: "weighted model finder: enumerate weighted relational instances under bounds",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.boundsFile, "bounds-file", "", "YAML file describing the universe and relation bounds (required)")
	cmd.Flags().StringVar(&flags.domain, "domain", "integer", "weight domain: integer or fuzzy")
	cmd.Flags().StringVar(&flags.tnorm, "tnorm", "godel", "fuzzy t-norm: godel, lukasiewicz, product, drastic, einstein, add_min, max_product")
	cmd.Flags().StringVar(&flags.solverKind, "solver", "z3", "SMT back end: z3, mathsat, cvc4, yices")
	cmd.Flags().StringVar(&flags.binaryPath, "solver-path", "", "explicit solver binary path (overrides <SOLVER>_DIR and PATH)")
	cmd.Flags().Int64Var(&flags.maxWeight, "max-weight", 100, "saturating maximum for integer-domain weights")
	cmd.Flags().BoolVar(&flags.incremental, "incremental", false, "keep the solver subprocess alive across Next() calls")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "per-solve deadline (0 disables)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "emit structured solver/lift logs to stderr")
	cmd.MarkFlagRequired("bounds-file")

	return cmd
}

func runSolve(ctx context.Context, flags *rootFlags) error {
	logger := zerolog.Nop()
	if flags.verbose {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	b, err := loadBounds(flags.boundsFile)
	if err != nil {
		return fmt.Errorf("load bounds: %w", err)
	}

	domain, err := parseDomain(flags.domain)
	if err != nil {
		return err
	}
	tnorm, err := parseTNorm(flags.tnorm)
	if err != nil {
		return err
	}
	solverKind, err := parseSolverKind(flags.solverKind)
	if err != nil {
		return err
	}

	factory := scalar.NewFactory(
		scalar.WithDomain(domain),
		scalar.WithTNorm(tnorm),
		scalar.WithMaxWeight(flags.maxWeight),
	)

	interp, err := bounds.New(b, factory)
	if err != nil {
		return fmt.Errorf("interpret bounds: %w", err)
	}

	formula, err := buildGoalFormula(b)
	if err != nil {
		return fmt.Errorf("build goal: %w", err)
	}
	tr := translate.New(interp)
	goal, err := tr.Translate(formula)
	if err != nil {
		return fmt.Errorf("translate goal: %w", err)
	}
	if goal.Kind != translate.FormulaValue {
		return fmt.Errorf("goal did not translate to a formula")
	}

	translation := smt.NewProblemTranslation(factory, goal.Bool, tr.Equations())
	driver := smt.NewDriver(
		smt.WithSolver(solverKind),
		smt.WithBinaryPath(flags.binaryPath),
		smt.WithIncremental(flags.incremental),
		smt.WithTimeout(flags.timeout),
		smt.WithLogger(logger),
	)
	defer driver.Close()

	enum := solve.NewEnumerator(driver, interp, solve.WithLogger(logger))
	verdict, inst, stats, err := enum.Solve(ctx, translation, flags.maxWeight)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	fmt.Printf("verdict: %s (solving=%dms, vars=%d, assertions=%d)\n", verdict, stats.SolvingMillis, stats.NumVars, stats.NumAssertions)
	if verdict != smt.Sat {
		return nil
	}
	printInstance(inst)
	return nil
}

func printInstance(inst *solve.Instance) {
	for id, tuples := range inst.Relations {
		fmt.Printf("relation %s:\n", id)
		for _, idx := range inst.Tuples(id) {
			w := tuples[idx]
			fmt.Printf("  tuple[%d] = %s\n", idx, w.String())
		}
	}
}

// buildGoalFormula asserts that every declared relation has at least one
// tuple, the weakest nontrivial goal a bounds file alone can express.
func buildGoalFormula(b bounds.Bounds) (*relast.Node, error) {
	if len(b.Relations) == 0 {
		return relast.BoolConst(true), nil
	}
	arms := make([]*relast.Node, 0, len(b.Relations))
	for id := range b.Relations {
		assertion, err := relast.MultSome(relast.RelVar(id))
		if err != nil {
			return nil, err
		}
		arms = append(arms, assertion)
	}
	if len(arms) == 1 {
		return arms[0], nil
	}
	return relast.And(arms...)
}

func parseDomain(s string) (scalar.Domain, error) {
	switch s {
	case "integer", "":
		return scalar.Integer, nil
	case "fuzzy":
		return scalar.Fuzzy, nil
	default:
		return 0, fmt.Errorf("unknown domain %q", s)
	}
}

func parseTNorm(s string) (scalar.TNorm, error) {
	switch s {
	case "godel", "":
		return scalar.Godel, nil
	case "lukasiewicz":
		return scalar.Lukasiewicz, nil
	case "product":
		return scalar.Product, nil
	case "drastic":
		return scalar.Drastic, nil
	case "einstein":
		return scalar.Einstein, nil
	case "add_min":
		return scalar.AddMin, nil
	case "max_product":
		return scalar.MaxProduct, nil
	default:
		return 0, fmt.Errorf("unknown tnorm %q", s)
	}
}

func parseSolverKind(s string) (smt.Kind, error) {
	switch s {
	case "z3", "":
		return smt.Z3, nil
	case "mathsat":
		return smt.MathSAT, nil
	case "cvc4":
		return smt.CVC4, nil
	case "yices":
		return smt.Yices, nil
	default:
		return 0, fmt.Errorf("unknown solver %q", s)
	}
}

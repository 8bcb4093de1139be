package matrix

import (
	"math"

	"github.com/relfind/wmf/scalar"
)

// Dot computes the min–max product (AB)[i,k] = join_j meet(A[i,j],B[j,k])
// (spec §4.2). A must be r×m and B must be m×c.
func Dot(a, b *Matrix) (*Matrix, error) {
	return productWith(a, b, func(f *scalar.Factory, acc, term *scalar.Scalar) (*scalar.Scalar, error) {
		return f.TConormOp(acc, term)
	}, func(f *scalar.Factory, x, y *scalar.Scalar) (*scalar.Scalar, error) {
		return f.TNormOp(x, y)
	})
}

// MultiDot computes the standard matrix product using the factory's +/·
// (spec §4.2 "standard matrix multiplication with +/· of the factory").
func MultiDot(a, b *Matrix) (*Matrix, error) {
	return productWith(a, b, func(f *scalar.Factory, acc, term *scalar.Scalar) (*scalar.Scalar, error) {
		return f.Plus(acc, term)
	}, func(f *scalar.Factory, x, y *scalar.Scalar) (*scalar.Scalar, error) {
		return f.Times(x, y)
	})
}

func productWith(a, b *Matrix,
	accumulate func(f *scalar.Factory, acc, term *scalar.Scalar) (*scalar.Scalar, error),
	combine func(f *scalar.Factory, x, y *scalar.Scalar) (*scalar.Scalar, error),
) (*Matrix, error) {
	if err := requireNonNil(a, b); err != nil {
		return nil, err
	}
	if err := sameFactory(a, b); err != nil {
		return nil, err
	}
	if len(a.dims) != 2 || len(b.dims) != 2 || a.dims[1] != b.dims[0] {
		return nil, ErrDimensionMismatch
	}
	f := a.factory
	r, m, c := a.dims[0], a.dims[1], b.dims[1]
	out, err := New(Dims{r, c}, f)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		for k := 0; k < c; k++ {
			acc := f.Zero()
			for j := 0; j < m; j++ {
				av, err := a.AtCoords([]int{i, j})
				if err != nil {
					return nil, err
				}
				bv, err := b.AtCoords([]int{j, k})
				if err != nil {
					return nil, err
				}
				term, err := combine(f, av, bv)
				if err != nil {
					return nil, err
				}
				acc, err = accumulate(f, acc, term)
				if err != nil {
					return nil, err
				}
			}
			if err := out.SetCoords([]int{i, k}, acc); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Closure computes A⁺, the transitive closure of square matrix a, by
// iterated squaring under join/meet: closure_0 = A; closure_{r+1} =
// closure_r ∪ dot(closure_r, closure_r); iterated ⌈log2 n⌉ times, where n is
// the number of rows of a with any non-zero entry (spec §4.2).
func Closure(a *Matrix) (*Matrix, error) {
	if err := requireNonNil(a); err != nil {
		return nil, err
	}
	if len(a.dims) != 2 || a.dims[0] != a.dims[1] {
		return nil, ErrNotSquare
	}
	activeRows := countActiveRows(a)
	rounds := 0
	if activeRows > 1 {
		rounds = int(math.Ceil(math.Log2(float64(activeRows))))
	}
	cur := a
	for r := 0; r < rounds; r++ {
		sq, err := Dot(cur, cur)
		if err != nil {
			return nil, err
		}
		next, err := Union(cur, sq)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func countActiveRows(a *Matrix) int {
	n := a.dims[0]
	active := make([]bool, n)
	a.ForEach(func(idx int, v *scalar.Scalar) bool {
		row := Coords(a.dims, idx)[0]
		active[row] = true
		return true
	})
	count := 0
	for _, v := range active {
		if v {
			count++
		}
	}
	return count
}

// ReflexiveClosure implements spec §4.2/§9's fixed-point encoding: rather
// than building A* structurally, it allocates a fresh n×n matrix X of
// primary numeric variables and returns, alongside X, the list of boolean
// equality constraints `X[i,k] = (I ∪ A·X)[i,k]` that the translator must
// add to the problem's side obligations (spec §4.4 "Closure / reflexive
// closure: ... collect the emitted fixed-point equations into the
// translation's side obligations"). The SMT layer, not this package,
// finalizes the least fixed point by solving those equations together with
// the rest of the circuit.
func ReflexiveClosure(a *Matrix) (x *Matrix, equations []*scalar.Scalar, err error) {
	if err := requireNonNil(a); err != nil {
		return nil, nil, err
	}
	if len(a.dims) != 2 || a.dims[0] != a.dims[1] {
		return nil, nil, ErrNotSquare
	}
	n := a.dims[0]
	f := a.factory

	iden, err := identity(n, f)
	if err != nil {
		return nil, nil, err
	}

	x, err = New(Dims{n, n}, f)
	if err != nil {
		return nil, nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := f.NewNumVar(scalar.FreeVar, nil, nil)
			if err := x.SetCoords([]int{i, j}, v); err != nil {
				return nil, nil, err
			}
		}
	}

	ax, err := Dot(a, x)
	if err != nil {
		return nil, nil, err
	}
	rhs, err := Union(iden, ax)
	if err != nil {
		return nil, nil, err
	}

	equations = make([]*scalar.Scalar, 0, n*n)
	for i := 0; i < n*n; i++ {
		xCell, err := x.At(i)
		if err != nil {
			return nil, nil, err
		}
		rCell, err := rhs.At(i)
		if err != nil {
			return nil, nil, err
		}
		eq, err := f.Eq(xCell, rCell)
		if err != nil {
			return nil, nil, err
		}
		equations = append(equations, eq)
	}
	return x, equations, nil
}

func identity(n int, f *scalar.Factory) (*Matrix, error) {
	m, err := New(Dims{n, n}, f)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err := m.SetCoords([]int{i, i}, f.One()); err != nil {
			return nil, err
		}
	}
	return m, nil
}

package matrix_test

import (
	"testing"

	"github.com/relfind/wmf/matrix"
	"github.com/relfind/wmf/scalar"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDims_CapacityAndEqual(t *testing.T) {
	t.Parallel()
	d := matrix.Dims{3, 3}
	require.Equal(t, 9, d.Capacity())
	require.True(t, d.Equal(matrix.Dims{3, 3}))
	require.False(t, d.Equal(matrix.Dims{3, 4}))
}

func TestFlatIndexAndCoords_RoundTrip(t *testing.T) {
	t.Parallel()
	dims := matrix.Dims{2, 3}
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			flat, err := matrix.FlatIndex(dims, []int{i, j})
			require.NoError(t, err)
			require.Equal(t, []int{i, j}, matrix.Coords(dims, flat))
		}
	}
}

func TestMatrix_SetClearsOnZero(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	m, err := matrix.New(matrix.Dims{2, 2}, f)
	require.NoError(t, err)

	require.NoError(t, m.Set(0, f.One()))
	require.Equal(t, 1, m.NonZeroCount())

	require.NoError(t, m.Set(0, f.Zero()))
	require.Equal(t, 0, m.NonZeroCount())
}

func TestMatrix_AbsentCellReadsZero(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	m, err := matrix.New(matrix.Dims{2, 2}, f)
	require.NoError(t, err)
	v, err := m.At(3)
	require.NoError(t, err)
	require.Same(t, f.Zero(), v)
}

func TestMatrix_OutOfRangeErrors(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	m, err := matrix.New(matrix.Dims{2, 2}, f)
	require.NoError(t, err)
	_, err = m.At(99)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestNewHomogeneous_WidensOnSet(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	m, err := matrix.NewHomogeneous(matrix.Dims{3, 3}, f, f.One())
	require.NoError(t, err)
	require.Equal(t, 9, m.NonZeroCount())

	require.NoError(t, m.Set(0, f.Zero()))
	require.Equal(t, 8, m.NonZeroCount())
	v, err := m.At(1)
	require.NoError(t, err)
	require.Same(t, f.One(), v)
}

func TestFromCells_ChoosesBackingByFillRatio(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	cells := map[int]*scalar.Scalar{0: f.One(), 1: f.One()}
	m, err := matrix.FromCells(matrix.Dims{2, 2}, f, cells)
	require.NoError(t, err)
	require.Equal(t, 2, m.NonZeroCount())
}

func TestMatrix_CloneIsIndependent(t *testing.T) {
	t.Parallel()
	f := scalar.NewFactory()
	m, err := matrix.New(matrix.Dims{2, 2}, f)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, f.One()))

	clone := m.Clone()
	require.NoError(t, clone.Set(0, f.Zero()))

	v, err := m.At(0)
	require.NoError(t, err)
	require.Same(t, f.One(), v)
}

func TestMatrix_FactoryMismatchRejected(t *testing.T) {
	t.Parallel()
	f1 := scalar.NewFactory()
	f2 := scalar.NewFactory()
	a, err := matrix.New(matrix.Dims{2, 2}, f1)
	require.NoError(t, err)
	b, err := matrix.New(matrix.Dims{2, 2}, f2)
	require.NoError(t, err)
	_, err = matrix.Plus(a, b)
	require.ErrorIs(t, err, matrix.ErrFactoryMismatch)
}

func numAt(t *testing.T, m *matrix.Matrix, idx int) decimal.Decimal {
	t.Helper()
	v, err := m.At(idx)
	require.NoError(t, err)
	d, ok := v.IsNumConst()
	require.True(t, ok)
	return d
}

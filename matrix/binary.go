package matrix

import "github.com/relfind/wmf/scalar"

// BinaryMatrix is a Matrix with the additional invariant that every cell is
// {0,1}-valued (ZERO or ONE, per spec §3). Drop, AlphaCut and AsBinary
// produce BinaryMatrix values; relation leaves and every other operation
// return a plain *Matrix.
type BinaryMatrix struct {
	*Matrix
}

// AsBinary wraps m as a BinaryMatrix after verifying every present cell is
// ZERO or ONE in m's factory. Returns ErrNotBinary otherwise.
func AsBinary(m *Matrix) (*BinaryMatrix, error) {
	if err := requireNonNil(m); err != nil {
		return nil, err
	}
	var bad error
	m.ForEach(func(idx int, v *scalar.Scalar) bool {
		if !isBinaryCell(v) {
			bad = ErrNotBinary
			return false
		}
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return &BinaryMatrix{Matrix: m}, nil
}

func isBinaryCell(v *scalar.Scalar) bool {
	if c, ok := v.IsNumConst(); ok {
		return c.IsZero() || c.Equal(oneDecimal)
	}
	// boolean-kind cells (including BinaryValue's bool side) are always
	// {0,1}-representable.
	return v.IsBoolean()
}

// Drop lifts m to a BinaryMatrix whose cell is ONE wherever m's cell is
// non-zero, ZERO elsewhere (spec §4.2 "drop(A): lift to boolean matrix").
func Drop(m *Matrix) (*BinaryMatrix, error) {
	if err := requireNonNil(m); err != nil {
		return nil, err
	}
	out, err := New(m.dims, m.factory)
	if err != nil {
		return nil, err
	}
	var opErr error
	m.ForEach(func(idx int, v *scalar.Scalar) bool {
		neq, err := m.factory.Neq(v, m.factory.Zero())
		if err != nil {
			opErr = err
			return false
		}
		bv, err := m.factory.BinaryValueFromBool(neq)
		if err != nil {
			opErr = err
			return false
		}
		opErr = out.Set(idx, bv)
		return opErr == nil
	})
	if opErr != nil {
		return nil, opErr
	}
	return &BinaryMatrix{Matrix: out}, nil
}

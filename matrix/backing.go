package matrix

import "github.com/relfind/wmf/scalar"

// backing is the storage strategy beneath a Matrix. All three
// implementations below give identical read semantics (absent == ZERO);
// they differ only in which layout is cheapest for the access pattern that
// produced them. Callers of Matrix never see a concrete backing type.
//
// set is only ever invoked on treeBacking/denseBacking: Matrix.Set first
// widens a homogeneousBacking to a treeBacking (see Matrix.Set), since a
// single-cell write would otherwise destroy the "every cell is equal"
// invariant a homogeneous matrix exists to encode.
type backing interface {
	get(flat int) *scalar.Scalar
	set(flat int, v *scalar.Scalar)
	forEach(yield func(flat int, v *scalar.Scalar) bool)
	clone() backing
	nonZeroCount() int
}

// homogeneousBacking represents a matrix every one of whose cells holds the
// same scalar (e.g. the canonical UNIV constant matrix, or the
// broadcast result of a cardinality/sum reduction). It is O(1) in space
// regardless of capacity.
type homogeneousBacking struct {
	capacity int
	value    *scalar.Scalar
}

func (h *homogeneousBacking) get(flat int) *scalar.Scalar { return h.value }

func (h *homogeneousBacking) set(flat int, v *scalar.Scalar) {
	panic("matrix: homogeneousBacking is immutable; Matrix.Set must widen to treeBacking first")
}

func (h *homogeneousBacking) forEach(yield func(flat int, v *scalar.Scalar) bool) {
	for i := 0; i < h.capacity; i++ {
		if !yield(i, h.value) {
			return
		}
	}
}

func (h *homogeneousBacking) clone() backing {
	return &homogeneousBacking{capacity: h.capacity, value: h.value}
}

func (h *homogeneousBacking) nonZeroCount() int {
	if h.value == nil {
		return 0
	}
	if v, ok := h.value.IsNumConst(); ok && v.IsZero() {
		return 0
	}
	if v, ok := h.value.IsBoolConst(); ok && !v {
		return 0
	}
	return h.capacity
}

// treeBacking is the general-purpose sparse map representation: most
// matrices produced by the translator (relation leaves, comprehensions)
// use this, since their non-zero support is a small fraction of capacity.
type treeBacking struct {
	cells map[int]*scalar.Scalar
}

func newTreeBacking() *treeBacking { return &treeBacking{cells: make(map[int]*scalar.Scalar)} }

func (t *treeBacking) get(flat int) *scalar.Scalar {
	if v, ok := t.cells[flat]; ok {
		return v
	}
	return nil
}

func (t *treeBacking) set(flat int, v *scalar.Scalar) {
	if v == nil {
		delete(t.cells, flat)
		return
	}
	t.cells[flat] = v
}

func (t *treeBacking) forEach(yield func(flat int, v *scalar.Scalar) bool) {
	for idx, v := range t.cells {
		if !yield(idx, v) {
			return
		}
	}
}

func (t *treeBacking) clone() backing {
	cp := make(map[int]*scalar.Scalar, len(t.cells))
	for k, v := range t.cells {
		cp[k] = v
	}
	return &treeBacking{cells: cp}
}

func (t *treeBacking) nonZeroCount() int { return len(t.cells) }

// denseBacking stores a contiguous run of indices [0,capacity) in a flat
// slice; chosen by the constructors when the caller supplies a cell map
// whose non-zero support already spans a large fraction of the capacity
// (so the map overhead of treeBacking would exceed a flat slice's).
type denseBacking struct {
	cells []*scalar.Scalar // length == capacity; nil entry means absent (ZERO)
}

func newDenseBacking(capacity int) *denseBacking {
	return &denseBacking{cells: make([]*scalar.Scalar, capacity)}
}

func (d *denseBacking) get(flat int) *scalar.Scalar { return d.cells[flat] }

func (d *denseBacking) set(flat int, v *scalar.Scalar) { d.cells[flat] = v }

func (d *denseBacking) forEach(yield func(flat int, v *scalar.Scalar) bool) {
	for i, v := range d.cells {
		if v == nil {
			continue
		}
		if !yield(i, v) {
			return
		}
	}
}

func (d *denseBacking) clone() backing {
	cp := make([]*scalar.Scalar, len(d.cells))
	copy(cp, d.cells)
	return &denseBacking{cells: cp}
}

func (d *denseBacking) nonZeroCount() int {
	n := 0
	for _, v := range d.cells {
		if v != nil {
			n++
		}
	}
	return n
}

// denseFillThreshold is the fraction of capacity above which a cell map
// handed to FromCells is materialized as a denseBacking instead of a
// treeBacking.
const denseFillThreshold = 0.6

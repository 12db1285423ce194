package la

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestVectorOps(tst *testing.T) {
	chk.PrintTitle("VectorOps")
	a := Vector{1, 2, 3}
	b := Vector{4, 5, 6}
	chk.Scalar(tst, "dot", 1e-15, Dot(a, b), 32)
	chk.Scalar(tst, "norm", 1e-15, Norm(Vector{3, 4}), 5)
	y := Vector{1, 1, 1}
	Axpy(y, 2, a)
	chk.Array(tst, "axpy", 1e-15, y, []float64{3, 5, 7})
}

func TestCSRMatrix(tst *testing.T) {
	chk.PrintTitle("CSRMatrix")
	// 2x2 identity in CSR with 1-based starting index, as the original
	// CESDSOL::Native::CSRMatrix defaults to.
	m := NewCSRMatrix(2, 2, 2, 1)
	m.SetRowCount(0, 0)
	m.SetRowCount(1, 1)
	m.SetRowCount(2, 2)
	m.SetColumnIndex(0, 0)
	m.SetColumnIndex(1, 1)
	m.SetValue(0, 1)
	m.SetValue(1, 1)
	chk.IntAssert(m.NonZeroCount(), 2)
	chk.IntAssert(m.GetColumnIndex(0), 0)
	y := m.Apply(Vector{3, 4})
	chk.Array(tst, "identity apply", 1e-15, y, []float64{3, 4})
}

func TestTwoLevelArray(tst *testing.T) {
	chk.PrintTitle("TwoLevelArray")
	a := NewTwoLevelArray([2]int{2, 3}, [2]int{1, 1})
	chk.IntAssert(a.RowCount(), 3)
	row0 := a.Row(0)
	row0[0] = 5
	chk.Scalar(tst, "alias", 1e-15, a.Flatten()[0], 5)
}

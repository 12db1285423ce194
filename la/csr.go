package la

import "github.com/cpmech/gosl/chk"

// CSRMatrix is a compressed-sparse-row matrix whose column indices and row
// pointers are stored with a configurable starting index (0 or 1), exactly
// as CESDSOL::Native::CSRMatrix: the raw slices hold value+StartingIndex,
// and every accessor adds/subtracts StartingIndex at the boundary so the
// same storage can be handed to a 1-based Fortran/MKL-style sparse backend
// without a copy.
type CSRMatrix struct {
	values        []float64
	columnIndices []int
	rowCounts     []int

	rowCount      int
	columnCount   int
	StartingIndex int
}

// NewCSRMatrix allocates a CSR matrix of shape rowCount x columnCount with
// room for nonZeroCount values. Column indices and values are left zeroed;
// the caller fills them via SetColumnIndex/SetValue during structural
// analysis and numerical assembly (problem package).
func NewCSRMatrix(rowCount, columnCount, nonZeroCount, startingIndex int) *CSRMatrix {
	m := &CSRMatrix{
		values:        make([]float64, nonZeroCount),
		columnIndices: make([]int, nonZeroCount),
		rowCounts:     make([]int, rowCount+1),
		rowCount:      rowCount,
		columnCount:   columnCount,
		StartingIndex: startingIndex,
	}
	m.rowCounts[rowCount] = nonZeroCount + startingIndex
	return m
}

func (m *CSRMatrix) RowCount() int    { return m.rowCount }
func (m *CSRMatrix) ColumnCount() int { return m.columnCount }
func (m *CSRMatrix) ElementCount() int {
	return m.rowCount * m.columnCount
}

// NonZeroCount returns the number of stored entries.
func (m *CSRMatrix) NonZeroCount() int {
	return m.rowCounts[m.rowCount] - m.StartingIndex
}

func (m *CSRMatrix) Values() []float64     { return m.values }
func (m *CSRMatrix) ColumnIndices() []int  { return m.columnIndices }
func (m *CSRMatrix) RowCounts() []int      { return m.rowCounts }

func (m *CSRMatrix) SetValue(index int, value float64) { m.values[index] = value }
func (m *CSRMatrix) GetValue(index int) float64        { return m.values[index] }
func (m *CSRMatrix) AddValue(index int, value float64) { m.values[index] += value }

func (m *CSRMatrix) SetColumnIndex(index, value int) {
	m.columnIndices[index] = value + m.StartingIndex
}
func (m *CSRMatrix) GetColumnIndex(index int) int {
	return m.columnIndices[index] - m.StartingIndex
}

func (m *CSRMatrix) SetRowCount(index, value int) {
	m.rowCounts[index] = value + m.StartingIndex
}
func (m *CSRMatrix) GetRowCount(index int) int {
	return m.rowCounts[index] - m.StartingIndex
}
func (m *CSRMatrix) GetRowLength(index int) int {
	return m.rowCounts[index+1] - m.rowCounts[index]
}

// Nullify zeroes every stored value, keeping the structure (column
// indices/row pointers) intact — used to re-assemble a Jacobian whose
// sparsity pattern has already been analyzed once.
func (m *CSRMatrix) Nullify() {
	for i := range m.values {
		m.values[i] = 0
	}
}

// MultiplyVector computes y = A*x, overwriting every entry of y,
// mirroring the differentiation-matrix application used to recompute
// derivatives in the problem runtime.
func (m *CSRMatrix) MultiplyVector(x, y Vector) {
	chk.IntAssert(len(x), m.columnCount)
	chk.IntAssert(len(y), m.rowCount)
	for i := 0; i < m.rowCount; i++ {
		var sum float64
		for n := m.GetRowCount(i); n < m.GetRowCount(i+1); n++ {
			sum += m.GetValue(n) * x[m.GetColumnIndex(n)]
		}
		y[i] = sum
	}
}

// Apply returns A*x as a newly allocated vector.
func (m *CSRMatrix) Apply(x Vector) Vector {
	y := NewVector(m.rowCount)
	m.MultiplyVector(x, y)
	return y
}

// IdentityCSR builds an n x n identity matrix in CSR form.
func IdentityCSR(n int) *CSRMatrix {
	m := NewCSRMatrix(n, n, n, 0)
	for i := 0; i < n; i++ {
		m.SetRowCount(i, i)
		m.SetColumnIndex(i, i)
		m.SetValue(i, 1)
	}
	m.SetRowCount(n, n)
	return m
}

// MultiplyCSR computes the sparse matrix product a*b, used to compose
// per-dimension differentiation matrices into a multi-dimensional
// differential operator (§4.1: "per-dimension differentiation matrices
// composed for multi-dimensional operators").
func MultiplyCSR(a, b *CSRMatrix) *CSRMatrix {
	chk.IntAssert(a.ColumnCount(), b.RowCount())
	n := a.RowCount()
	p := b.ColumnCount()
	accum := make([]float64, p)
	touched := make([]int, 0, p)
	seen := make([]bool, p)

	rowNNZ := make([][]int, n)
	rowVals := make([][]float64, n)
	total := 0
	for i := 0; i < n; i++ {
		touched = touched[:0]
		for n1 := a.GetRowCount(i); n1 < a.GetRowCount(i+1); n1++ {
			k := a.GetColumnIndex(n1)
			av := a.GetValue(n1)
			for n2 := b.GetRowCount(k); n2 < b.GetRowCount(k+1); n2++ {
				j := b.GetColumnIndex(n2)
				if !seen[j] {
					seen[j] = true
					touched = append(touched, j)
				}
				accum[j] += av * b.GetValue(n2)
			}
		}
		cols := make([]int, len(touched))
		copy(cols, touched)
		vals := make([]float64, len(touched))
		for idx, j := range touched {
			vals[idx] = accum[j]
			accum[j] = 0
			seen[j] = false
		}
		rowNNZ[i] = cols
		rowVals[i] = vals
		total += len(cols)
	}

	result := NewCSRMatrix(n, p, total, a.StartingIndex)
	pos := 0
	for i := 0; i < n; i++ {
		result.SetRowCount(i, pos)
		for idx, j := range rowNNZ[i] {
			result.SetColumnIndex(pos, j)
			result.SetValue(pos, rowVals[i][idx])
			pos++
		}
	}
	result.SetRowCount(n, pos)
	return result
}

// ToDense expands the matrix into a row-major dense slice, used by the
// bundled dense linear-solver backend which factorizes small/medium
// systems with gonum/mat rather than reimplementing sparse LU.
func (m *CSRMatrix) ToDense() []float64 {
	dense := make([]float64, m.rowCount*m.columnCount)
	for i := 0; i < m.rowCount; i++ {
		for n := m.GetRowCount(i); n < m.GetRowCount(i+1); n++ {
			dense[i*m.columnCount+m.GetColumnIndex(n)] = m.GetValue(n)
		}
	}
	return dense
}

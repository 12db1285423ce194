package la

import "github.com/cpmech/gosl/chk"

// TwoLevelArray is a ragged array of float64 rows backed by one flat
// buffer, the Go counterpart of CESDSOL's MultiLevelArray<T,2>. Unlike the
// C++ original — which rebuilds nested "span" views on every move — a Go
// slice already aliases its backing array, so Row(i) is a genuine view:
// mutating it mutates the flat buffer in place, and Flatten gives the
// whole buffer back without a copy.
type TwoLevelArray struct {
	flat    []float64
	offsets []int // len(rows)+1
}

// NewTwoLevelArray builds a TwoLevelArray from a level structure: each
// entry is (repeatCount, rowLength), expanded into that many consecutive
// rows of that length — mirroring the C++ constructor taking
// Array<std::pair<size_t, size_t>> (repeat, length) group descriptors
// (e.g. {continuousEquationCount rows of gridSize} followed by
// {discreteEquationCount rows of 1}).
func NewTwoLevelArray(groups ...[2]int) *TwoLevelArray {
	rowCount := 0
	for _, g := range groups {
		rowCount += g[0]
	}
	offsets := make([]int, rowCount+1)
	row := 0
	total := 0
	for _, g := range groups {
		repeat, length := g[0], g[1]
		for i := 0; i < repeat; i++ {
			offsets[row] = total
			total += length
			row++
		}
	}
	offsets[rowCount] = total
	return &TwoLevelArray{flat: make([]float64, total), offsets: offsets}
}

// RowCount returns the number of rows.
func (a *TwoLevelArray) RowCount() int { return len(a.offsets) - 1 }

// Row returns a view of row i (a slice aliasing the flat buffer).
func (a *TwoLevelArray) Row(i int) Vector {
	return Vector(a.flat[a.offsets[i]:a.offsets[i+1]])
}

// Flatten returns a view of the whole backing buffer.
func (a *TwoLevelArray) Flatten() Vector { return Vector(a.flat) }

// ThreeLevelArray is a ragged array of rows-of-rows, the Go counterpart of
// MultiLevelArray<T,3>: level 0 selects a "field", level 1 selects an
// "operator" (e.g. a derivative order) within that field, and level 2 is
// the per-grid-point values for that (field, operator) pair.
type ThreeLevelArray struct {
	groups [][]Vector // groups[i][j] is the j-th row of the i-th field
}

// NewThreeLevelArray builds a ThreeLevelArray where group i has rowCounts[i]
// rows each of length rowLengths[i] — mirroring the nested
// Array<std::pair<size_t, LevelStructure<2>>> constructor used for
// `derivatives` (one group per continuous equation; each group has
// DerivativeOperatorCount(i) rows of gridSize).
func NewThreeLevelArray(rowCounts, rowLengths []int) *ThreeLevelArray {
	chk.IntAssert(len(rowCounts), len(rowLengths))
	t := &ThreeLevelArray{groups: make([][]Vector, len(rowCounts))}
	for i := range rowCounts {
		rows := make([]Vector, rowCounts[i])
		for j := range rows {
			rows[j] = NewVector(rowLengths[i])
		}
		t.groups[i] = rows
	}
	return t
}

func (t *ThreeLevelArray) GroupCount() int { return len(t.groups) }
func (t *ThreeLevelArray) RowCount(i int) int { return len(t.groups[i]) }
func (t *ThreeLevelArray) Row(i, j int) Vector { return t.groups[i][j] }
func (t *ThreeLevelArray) SetRow(i, j int, v Vector) { t.groups[i][j] = v }

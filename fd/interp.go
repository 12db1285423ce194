package fd

import (
	"sort"

	"github.com/cesdsol/cesdsol/grid"
	"github.com/cesdsol/cesdsol/la"
	"github.com/cpmech/gosl/chk"
)

// lowerBoundIndex returns the index of the first element >= x in a sorted
// slice (binary search), or len(points) if none.
func lowerBoundIndex(points []float64, x float64) int {
	return sort.Search(len(points), func(i int) bool { return points[i] >= x })
}

// dimensionInterpolationWeights builds the 1-D sparse interpolation weight
// row for evaluating a field at an arbitrary coordinate `point` along axis
// dimensionIndex, centered on the stencil nearest `point` — a direct
// transcription of GetInterpolationWeightsVector(grid, dimensionIndex,
// point, stencilSize).
func dimensionInterpolationWeights(g *grid.Grid, dimensionIndex int, point float64, stencilSize int) *la.SparseVector {
	dimensionSize := g.GetDimensionSize(dimensionIndex)
	if stencilSize > dimensionSize {
		chk.Panic("fd: stencil size %d on axis %d exceeds dimension size %d", stencilSize, dimensionIndex, dimensionSize)
	}
	dimensionGrid := g.Axes[dimensionIndex].Points
	centerIndex := lowerBoundIndex(dimensionGrid, point)
	if centerIndex > dimensionSize-1 {
		centerIndex = dimensionSize - 1
	}
	leftIndex := centerIndex - stencilSize/2
	if leftIndex < 0 {
		leftIndex = 0
	}
	if leftIndex+stencilSize >= dimensionSize {
		leftIndex = dimensionSize - stencilSize
		if leftIndex < 0 {
			leftIndex = 0
		}
	}
	rightIndex := leftIndex + stencilSize - 1
	if rightIndex > dimensionSize-1 {
		rightIndex = dimensionSize - 1
	}
	actualStencilSize := rightIndex - leftIndex + 1

	result := la.NewSparseVector(dimensionSize, actualStencilSize)
	for i := leftIndex; i <= rightIndex; i++ {
		result.SetIndex(i-leftIndex, i)
	}
	weights := make([]float64, actualStencilSize)
	fornbergWeights(dimensionGrid[leftIndex:leftIndex+actualStencilSize], weights, 0, point)
	for i, w := range weights {
		result.SetValue(i, w)
	}
	return result
}

// directProductSparseVector combines two sparse vectors over independent
// axes into one sparse vector over the product grid (row-major, a
// dimensionIndex-major ordering matching grid.GetSingleIndex), mirroring
// DirectProductAsVector.
func directProductSparseVector(a, b *la.SparseVector, bSize int) *la.SparseVector {
	result := la.NewSparseVector(a.ElementCount()*bSize, a.NonZeroCount()*b.NonZeroCount())
	pos := 0
	for i := 0; i < a.NonZeroCount(); i++ {
		for j := 0; j < b.NonZeroCount(); j++ {
			result.SetIndex(pos, a.GetIndex(i)*bSize+b.GetIndex(j))
			result.SetValue(pos, a.GetValue(i)*b.GetValue(j))
			pos++
		}
	}
	return result
}

// InterpolationWeights builds the sparse row of grid weights that
// interpolate a field value at an arbitrary (possibly off-grid) physical
// point, by taking the direct product of the per-axis interpolation
// weight vectors — mirroring the multi-dimensional
// GetInterpolationWeightsVector overload.
func InterpolationWeights(g *grid.Grid, point []float64, stencilSizes []int) *la.SparseVector {
	result := dimensionInterpolationWeights(g, 0, point[0], stencilSizes[0])
	for i := 1; i < g.Dimension(); i++ {
		next := dimensionInterpolationWeights(g, i, point[i], stencilSizes[i])
		result = directProductSparseVector(result, next, g.GetDimensionSize(i))
	}
	return result
}

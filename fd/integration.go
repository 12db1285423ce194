package fd

import (
	"github.com/cesdsol/cesdsol/grid"
	"github.com/cesdsol/cesdsol/la"
)

// dimensionIntegrationWeights builds the 1-D trapezoidal integration
// weight vector along axis dimensionIndex (midpoint rule: each interior
// weight is half the distance between its neighbours; periodic axes wrap
// the boundary weight through the period) — a direct transcription of
// GetIntegrationWeightsVector(grid, dimensionIndex).
func dimensionIntegrationWeights(g *grid.Grid, dimensionIndex int) la.Vector {
	dimensionSize := g.GetDimensionSize(dimensionIndex)
	d := g.Axes[dimensionIndex].Points
	result := la.NewVector(dimensionSize)
	for i := 1; i < dimensionSize-1; i++ {
		result[i] = 0.5 * (d[i+1] - d[i-1])
	}
	if g.IsPeriodic(dimensionIndex) {
		period := g.Axes[dimensionIndex].Period
		result[0] = 0.5 * (period + d[1] - d[dimensionSize-1])
		result[dimensionSize-1] = 0.5 * (d[0] + period - d[dimensionSize-2])
	} else {
		result[0] = 0.5 * (d[1] - d[0])
		result[dimensionSize-1] = 0.5 * (d[dimensionSize-1] - d[dimensionSize-2])
	}
	return result
}

// IntegrationWeights builds the per-point integration weight vector over
// the full grid (tensor product of the per-axis trapezoidal weights),
// mirroring the multi-dimensional GetIntegrationWeightsVector overload.
// Summing the result over all points gives the grid's total domain
// measure.
func IntegrationWeights(g *grid.Grid) la.Vector {
	dims := g.Dimension()
	weights := make([]la.Vector, dims)
	for i := 0; i < dims; i++ {
		weights[i] = dimensionIntegrationWeights(g, i)
	}
	result := la.NewVector(g.GetSize())
	for p := 0; p < g.GetSize(); p++ {
		multi := g.GetMultiIndex(p)
		w := 1.0
		for i, m := range multi {
			w *= weights[i][m]
		}
		result[p] = w
	}
	return result
}

package fd

import (
	"math"

	"github.com/cesdsol/cesdsol/grid"
	"github.com/cesdsol/cesdsol/la"
	"github.com/cpmech/gosl/chk"
)

// epsilon is used to prune near-zero Fornberg weights from the CSR
// structure, mirroring the original's
// `std::abs(tmpWeight) > std::numeric_limits<ScalarType>::epsilon()` guard.
const epsilon = 2.220446049250313e-16

// dimensionDifferentiationMatrix builds the 1-D CSR differentiation
// operator along axis dimensionIndex of g, for the given derivative order
// and stencil size — a direct transcription of
// StructuredFiniteDifferenceDiscretizationCalculator::GetDifferentiationMatrix
// (the per-dimension overload).
func dimensionDifferentiationMatrix(g *grid.Grid, dimensionIndex, derivativeOrder, stencilSize int) *la.CSRMatrix {
	dimensionSize := g.GetDimensionSize(dimensionIndex)
	if stencilSize > dimensionSize {
		chk.Panic("fd: stencil size %d on axis %d exceeds dimension size %d", stencilSize, dimensionIndex, dimensionSize)
	}
	isPeriodic := g.IsPeriodic(dimensionIndex)
	gridData := g.Axes[dimensionIndex].Points
	halfStencil := stencilSize / 2
	period := g.Axes[dimensionIndex].Period

	weights := make([][]float64, dimensionSize)
	for i := range weights {
		weights[i] = make([]float64, stencilSize)
	}

	if !isPeriodic {
		for i := 0; i < halfStencil; i++ {
			fornbergWeights(gridData[:stencilSize], weights[i], derivativeOrder, gridData[i])
		}
		for i := dimensionSize - halfStencil; i < dimensionSize; i++ {
			fornbergWeights(gridData[dimensionSize-stencilSize:], weights[i], derivativeOrder, gridData[i])
		}
	} else {
		tmp := make([]float64, stencilSize)
		for i := 0; i < halfStencil; i++ {
			for j := 0; j < halfStencil-i; j++ {
				tmp[j] = gridData[dimensionSize-halfStencil+i+j] - period
			}
			for j := halfStencil - i; j < stencilSize; j++ {
				tmp[j] = gridData[j-halfStencil+i]
			}
			fornbergWeights(append([]float64(nil), tmp...), weights[i], derivativeOrder, gridData[i])
		}
		for i := dimensionSize - halfStencil; i < dimensionSize; i++ {
			for j := 0; j < dimensionSize-i+halfStencil; j++ {
				tmp[j] = gridData[i-halfStencil+j]
			}
			for j := dimensionSize - i + halfStencil; j < stencilSize; j++ {
				tmp[j] = period + gridData[j-(dimensionSize-i+halfStencil)]
			}
			fornbergWeights(append([]float64(nil), tmp...), weights[i], derivativeOrder, gridData[i])
		}
	}
	for i := halfStencil; i < dimensionSize-halfStencil; i++ {
		fornbergWeights(gridData[i-halfStencil:i-halfStencil+stencilSize], weights[i], derivativeOrder, gridData[i])
	}

	nonzeroPerRow := make([]int, dimensionSize)
	nonzeroCount := 0
	for i, row := range weights {
		c := 0
		for _, w := range row {
			if math.Abs(w) > epsilon {
				c++
			}
		}
		nonzeroPerRow[i] = c
		nonzeroCount += c
	}
	nonzeroCount *= g.GetSize() / dimensionSize

	result := la.NewCSRMatrix(g.GetSize(), g.GetSize(), nonzeroCount, 0)

	setCount := 0
	multi := make([]int, g.Dimension())
	setElement := func(w float64, index int) {
		if math.Abs(w) > epsilon {
			result.SetValue(setCount, w)
			multi[dimensionIndex] = index
			result.SetColumnIndex(setCount, g.GetSingleIndex(multi))
			setCount++
		}
	}

	for i := 0; i < g.GetSize(); i++ {
		result.SetRowCount(i, setCount)
		m := g.GetMultiIndex(i)
		copy(multi, m)
		directionCoordinate := m[dimensionIndex]
		if !isPeriodic || (directionCoordinate < dimensionSize-halfStencil && directionCoordinate >= halfStencil) {
			left := directionCoordinate - halfStencil
			if directionCoordinate < halfStencil {
				left = 0
			} else if directionCoordinate >= dimensionSize-halfStencil {
				left = dimensionSize - stencilSize
			}
			for j := 0; j < stencilSize; j++ {
				setElement(weights[directionCoordinate][j], left+j)
			}
		} else if directionCoordinate >= dimensionSize-halfStencil {
			for j := dimensionSize - directionCoordinate + halfStencil; j < stencilSize; j++ {
				setElement(weights[directionCoordinate][j], j-(dimensionSize-directionCoordinate+halfStencil))
			}
			for j := 0; j < dimensionSize-directionCoordinate+halfStencil; j++ {
				setElement(weights[directionCoordinate][j], directionCoordinate-halfStencil+j)
			}
		} else {
			for j := halfStencil - directionCoordinate; j < stencilSize; j++ {
				setElement(weights[directionCoordinate][j], j-halfStencil+directionCoordinate)
			}
			for j := 0; j < halfStencil-directionCoordinate; j++ {
				setElement(weights[directionCoordinate][j], dimensionSize-halfStencil+directionCoordinate+j)
			}
		}
	}
	result.SetRowCount(g.GetSize(), setCount)
	return result
}

// DifferentiationMatrix composes the per-dimension 1-D differentiation
// matrices of a multi-dimensional operator (derivativeOrders[i] = order
// along axis i, 0 = "no derivative along this axis") into a single CSR
// matrix over the full grid, via repeated sparse matrix-matrix products —
// mirroring GetDifferentiationMatrix(grid, derivativeOrders, stencilSizes).
// If every order is 0, returns the identity (a "trivial" operator).
func DifferentiationMatrix(g *grid.Grid, derivativeOrders []int, stencilSizes []int) *la.CSRMatrix {
	var result *la.CSRMatrix
	started := false
	for i, order := range derivativeOrders {
		if order > 0 {
			m := dimensionDifferentiationMatrix(g, i, order, stencilSizes[i])
			if started {
				result = la.MultiplyCSR(result, m)
			} else {
				result = m
				started = true
			}
		}
	}
	if !started {
		return la.IdentityCSR(g.GetSize())
	}
	return result
}

// UniformStencils returns a per-axis stencil-size slice all set to size.
func UniformStencils(dimension, size int) []int {
	s := make([]int, dimension)
	for i := range s {
		s[i] = size
	}
	return s
}

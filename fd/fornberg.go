// Package fd implements the finite-difference discretization layer:
// Fornberg finite-difference weight generation, per-dimension
// differentiation matrices composed into multi-dimensional operators, and
// interpolation/integration weight vectors, with periodic-boundary
// handling.
package fd

// fornbergWeights fills weights[i] with the finite-difference weight of
// derivative order derivativeOrder at stencil node i (for a stencil
// evaluated at coordinate "center"), using Fornberg's recurrence. This is
// a direct transcription of
// StructuredFiniteDifferenceDiscretizationCalculator::GenerateFornbergWeights:
// a (derivativeOrder+1) x stencilSize scratch table is built incrementally
// as each new stencil node is absorbed.
func fornbergWeights(gridPts []float64, weights []float64, derivativeOrder int, center float64) {
	stencilSize := len(gridPts)
	tmp := make([][]float64, derivativeOrder+1)
	for k := range tmp {
		tmp[k] = make([]float64, stencilSize)
	}
	tmp[0][0] = 1
	previousDifferenceProduct := 1.0
	shift := gridPts[0] - center
	for i := 1; i < stencilSize; i++ {
		mn := derivativeOrder
		if i < mn {
			mn = i
		}
		differenceProduct := 1.0
		previousShift := shift
		shift = gridPts[i] - center
		for j := 0; j < i; j++ {
			difference := gridPts[i] - gridPts[j]
			differenceProduct *= difference
			if j == i-1 {
				multiplier := previousDifferenceProduct / differenceProduct
				for k := mn; k >= 1; k-- {
					tmp[k][i] = multiplier * (float64(k)*tmp[k-1][i-1] - previousShift*tmp[k][i-1])
				}
				tmp[0][i] = -multiplier * previousShift * tmp[0][i-1]
			}
			invDifference := 1 / difference
			for k := mn; k >= 1; k-- {
				tmp[k][j] = (shift*tmp[k][j] - float64(k)*tmp[k-1][j]) * invDifference
			}
			tmp[0][j] *= shift * invDifference
		}
		previousDifferenceProduct = differenceProduct
	}
	for i := 0; i < stencilSize; i++ {
		weights[i] = tmp[derivativeOrder][i]
	}
}

// FornbergWeights is the exported entry point: returns the
// derivativeOrder-th derivative weights of a stencil at the given grid
// points, evaluated at center (pass center = one of gridPts for a
// standard node-centered stencil, or an arbitrary point for
// interpolation, where derivativeOrder = 0).
func FornbergWeights(gridPts []float64, derivativeOrder int, center float64) []float64 {
	weights := make([]float64, len(gridPts))
	fornbergWeights(gridPts, weights, derivativeOrder, center)
	return weights
}

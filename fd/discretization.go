package fd

import (
	"github.com/cesdsol/cesdsol/grid"
	"github.com/cesdsol/cesdsol/la"
)

// Discretizer bundles a per-axis stencil-size configuration and exposes
// the three discretization operations a Problem needs: differentiation
// matrices, interpolation weight vectors, and the integration weight
// vector — the Go counterpart of StructuredFiniteDifferenceDiscretization.
type Discretizer struct {
	StencilSizes []int
}

// NewDiscretizer builds a discretizer using the same stencil size along
// every axis (the common case).
func NewDiscretizer(dimension, stencilSize int) *Discretizer {
	return &Discretizer{StencilSizes: UniformStencils(dimension, stencilSize)}
}

// NewDiscretizerVarying builds a discretizer with a distinct stencil size
// per axis.
func NewDiscretizerVarying(stencilSizes []int) *Discretizer {
	return &Discretizer{StencilSizes: stencilSizes}
}

// GetDifferentiationMatrix returns the CSR operator for the given
// per-axis derivative orders (0 = no derivative along that axis).
func (d *Discretizer) GetDifferentiationMatrix(g *grid.Grid, derivativeOrders []int) *la.CSRMatrix {
	return DifferentiationMatrix(g, derivativeOrders, d.StencilSizes)
}

// GetInterpolationWeightsVector returns the sparse weight row
// interpolating a field at an arbitrary physical point.
func (d *Discretizer) GetInterpolationWeightsVector(g *grid.Grid, point []float64) *la.SparseVector {
	return InterpolationWeights(g, point, d.StencilSizes)
}

// GetIntegrationWeightsVector returns the per-point integration weight
// vector for the whole grid.
func (d *Discretizer) GetIntegrationWeightsVector(g *grid.Grid) la.Vector {
	return IntegrationWeights(g)
}

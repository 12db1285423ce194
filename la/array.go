// Package la implements the low-level array and sparse-matrix data model:
// flat Array/Vector helpers, a sparse vector, a CSR matrix with configurable
// base index, and a multi-level "ragged" array used to lay out per-field,
// per-point, per-operator data without repeated allocation.
package la

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Vector is a flat slice of float64, mirroring gosl/la.Vector's role as the
// framework's basic numeric vector type.
type Vector []float64

// NewVector allocates a zeroed vector of length n.
func NewVector(n int) Vector {
	return make(Vector, n)
}

// Copy copies src into dst. Panics if the lengths differ.
func Copy(dst, src Vector) {
	chk.IntAssert(len(dst), len(src))
	copy(dst, src)
}

// Fill sets every entry of v to value.
func Fill(v Vector, value float64) {
	for i := range v {
		v[i] = value
	}
}

// Dot returns the Euclidean inner product of a and b.
func Dot(a, b Vector) float64 {
	chk.IntAssert(len(a), len(b))
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Norm returns the 2-norm of v.
func Norm(v Vector) float64 {
	return sqrt(Dot(v, v))
}

// NormInf returns the max-abs norm of v.
func NormInf(v Vector) float64 {
	var m float64
	for _, x := range v {
		if a := abs(x); a > m {
			m = a
		}
	}
	return m
}

// Axpy performs y += alpha*x (BLAS AXPY) in place.
func Axpy(y Vector, alpha float64, x Vector) {
	chk.IntAssert(len(y), len(x))
	for i := range y {
		y[i] += alpha * x[i]
	}
}

// Axpby performs y = alpha*x + beta*y.
func Axpby(y Vector, alpha float64, x Vector, beta float64) {
	chk.IntAssert(len(y), len(x))
	for i := range y {
		y[i] = alpha*x[i] + beta*y[i]
	}
}

func sqrt(x float64) float64 {
	if x < 0 {
		return 0
	}
	return math.Sqrt(x)
}

func abs(x float64) float64 {
	return math.Abs(x)
}

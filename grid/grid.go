// Package grid implements the structured direct-product grid: a Cartesian
// product of per-axis 1-D point sets, each axis optionally periodic, with
// boundary regions labelled for piecewise equation definitions.
package grid

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Axis is one dimension of a direct-product grid: a strictly increasing
// set of points, optionally periodic.
type Axis struct {
	Points   []float64
	Periodic bool
	Period   float64
}

// NewAxis builds a non-periodic axis from a sorted point slice.
func NewAxis(points []float64) Axis {
	chk.IntAssert(len(points) >= 2, true)
	assertMonotonic(points)
	return Axis{Points: points}
}

// NewPeriodicAxis builds a periodic axis with the given period (the
// distance from the last point back to the first).
func NewPeriodicAxis(points []float64, period float64) Axis {
	chk.IntAssert(len(points) >= 1, true)
	assertMonotonic(points)
	if period <= 0 {
		chk.Panic("grid: periodic axis period must be > 0, got %v", period)
	}
	return Axis{Points: points, Periodic: true, Period: period}
}

// assertMonotonic panics unless points is strictly increasing (construction-
// time failure for non-monotonic grids, §4.1).
func assertMonotonic(points []float64) {
	for i := 1; i < len(points); i++ {
		if points[i] <= points[i-1] {
			chk.Panic("grid: axis points must be strictly increasing, got %v at index %d followed by %v at index %d", points[i-1], i-1, points[i], i)
		}
	}
}

func (a Axis) Size() int { return len(a.Points) }

// Grid is a direct-product structured grid over Dimension = len(Axes)
// dimensions — the Go counterpart of DirectProductGrid<Dimension,...>,
// where the template dimension parameter becomes a runtime slice length,
// a deliberate deviation from the C++ compile-time Dimension (see
// Design Notes in SPEC_FULL.md).
type Grid struct {
	Axes        []Axis
	size        int
	regionCount int
	regionIndex []int // per-point region label, precomputed in MakePoints
}

// NewGrid builds a direct-product grid from a list of axes and precomputes
// every point's region label via MakePoints.
func NewGrid(axes []Axis) *Grid {
	chk.IntAssert(len(axes) >= 1, true)
	size := 1
	nonPeriodic := 0
	for _, a := range axes {
		chk.IntAssert(a.Size() >= 1, true)
		size *= a.Size()
		if !a.Periodic {
			nonPeriodic++
		}
	}
	g := &Grid{Axes: axes, size: size, regionCount: 1 + 2*nonPeriodic}
	g.makePoints()
	return g
}

// Dimension returns the number of axes.
func (g *Grid) Dimension() int { return len(g.Axes) }

// GetSize returns the total point count.
func (g *Grid) GetSize() int { return g.size }

// GetRegionCount returns 1 (interior) + 2 per non-periodic axis (its two
// boundary faces).
func (g *Grid) GetRegionCount() int { return g.regionCount }

// GetDimensionSize returns the point count along axis i.
func (g *Grid) GetDimensionSize(i int) int { return g.Axes[i].Size() }

// GetMultiIndex decomposes a flat point index into per-axis indices, using
// row-major (last axis fastest) ordering as the original's
// GetMultiIndexBySingleIndex does.
func (g *Grid) GetMultiIndex(index int) []int {
	point := make([]int, g.Dimension())
	current := index
	tmp := g.size
	for i := 0; i < g.Dimension(); i++ {
		tmp /= g.Axes[i].Size()
		point[i] = current / tmp
		current %= tmp
	}
	return point
}

// GetSingleIndex composes a flat point index from per-axis indices.
func (g *Grid) GetSingleIndex(multi []int) int {
	chk.IntAssert(len(multi), g.Dimension())
	result := 0
	for i := 0; i < g.Dimension(); i++ {
		result = result*g.Axes[i].Size() + multi[i]
	}
	return result
}

// GetCoordinates returns the physical coordinates of grid point index.
func (g *Grid) GetCoordinates(index int) []float64 {
	multi := g.GetMultiIndex(index)
	coords := make([]float64, g.Dimension())
	for i, m := range multi {
		coords[i] = g.Axes[i].Points[m]
	}
	return coords
}

// GetRegionIndex returns the precomputed boundary-region label of point
// index (0 = interior).
func (g *Grid) GetRegionIndex(index int) int { return g.regionIndex[index] }

// makePoints precomputes every point's region label. Scans axes in
// REVERSE order (last axis first); the first non-periodic axis found at a
// boundary (multi-index 0 or size-1) assigns the region and the scan
// stops — exactly DirectProductGrid::MakePoints. Interior points (or
// points on a boundary of a periodic axis only) keep region 0.
func (g *Grid) makePoints() {
	g.regionIndex = make([]int, g.size)
	for p := 0; p < g.size; p++ {
		multi := g.GetMultiIndex(p)
		region := 0
		for d := g.Dimension() - 1; d >= 0; d-- {
			if g.Axes[d].Periodic {
				continue
			}
			if multi[d] == 0 {
				region = 2*d + 1
				break
			} else if multi[d] == g.Axes[d].Size()-1 {
				region = 2*d + 2
				break
			}
		}
		g.regionIndex[p] = region
	}
}

// IsPeriodic reports whether axis i is periodic.
func (g *Grid) IsPeriodic(i int) bool { return g.Axes[i].Periodic }

// Spacing returns the mean point spacing along axis, (last-first)/(n-1),
// or 0 for a single-point axis.
func (g *Grid) Spacing(axis int) float64 {
	pts := g.Axes[axis].Points
	if len(pts) < 2 {
		return 0
	}
	return (pts[len(pts)-1] - pts[0]) / float64(len(pts)-1)
}

// NearestIndex returns the axis-i point index closest to x.
func (g *Grid) NearestIndex(axis int, x float64) int {
	pts := g.Axes[axis].Points
	best, bestDist := 0, math.Inf(1)
	for i, p := range pts {
		if d := math.Abs(p - x); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

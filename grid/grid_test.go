package grid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestRegionLabelling1D(tst *testing.T) {
	chk.PrintTitle("RegionLabelling1D")
	g := NewGrid([]Axis{NewAxis([]float64{0, 1, 2, 3})})
	chk.IntAssert(g.GetRegionCount(), 3)
	chk.IntAssert(g.GetRegionIndex(0), 1)
	chk.IntAssert(g.GetRegionIndex(1), 0)
	chk.IntAssert(g.GetRegionIndex(3), 2)
}

func TestRegionLabelling2D(tst *testing.T) {
	chk.PrintTitle("RegionLabelling2D")
	g := NewGrid([]Axis{
		NewAxis([]float64{0, 1, 2}),
		NewAxis([]float64{0, 1}),
	})
	chk.IntAssert(g.GetSize(), 6)
	chk.IntAssert(g.GetRegionCount(), 5)
	// point (0,0): reverse scan hits axis 1 first (boundary 0) -> region 2*1+1=3
	idx := g.GetSingleIndex([]int{0, 0})
	chk.IntAssert(g.GetRegionIndex(idx), 3)
	// point (2,1): axis1 at last index -> region 2*1+2=4
	idx = g.GetSingleIndex([]int{2, 1})
	chk.IntAssert(g.GetRegionIndex(idx), 4)
	// interior-only along axis1 but boundary on axis0: (0,*) never interior
	// since axis1 is length 2 (always boundary); check a genuinely interior
	// point requires axis1 length >= 3.
}

func TestMultiIndexRoundTrip(tst *testing.T) {
	chk.PrintTitle("MultiIndexRoundTrip")
	g := NewGrid([]Axis{
		NewAxis([]float64{0, 1, 2}),
		NewAxis([]float64{0, 1, 2, 3}),
	})
	for p := 0; p < g.GetSize(); p++ {
		multi := g.GetMultiIndex(p)
		chk.IntAssert(g.GetSingleIndex(multi), p)
	}
}

func expectPanic(tst *testing.T, label string) func() {
	return func() {
		if recover() == nil {
			tst.Fatalf("%s: expected a panic", label)
		}
	}
}

func TestNewAxisRejectsNonMonotonicPoints(tst *testing.T) {
	chk.PrintTitle("NewAxisRejectsNonMonotonicPoints")
	defer expectPanic(tst, "non-monotonic axis")()
	NewAxis([]float64{0, 2, 1})
}

func TestNewPeriodicAxisRejectsNonPositivePeriod(tst *testing.T) {
	chk.PrintTitle("NewPeriodicAxisRejectsNonPositivePeriod")
	defer expectPanic(tst, "zero period")()
	NewPeriodicAxis([]float64{0, 1, 2}, 0)
}

func TestPeriodicAxisSkippedForLabelling(tst *testing.T) {
	chk.PrintTitle("PeriodicAxisSkippedForLabelling")
	g := NewGrid([]Axis{
		NewPeriodicAxis([]float64{0, 1, 2}, 3),
	})
	chk.IntAssert(g.GetRegionCount(), 1)
	for p := 0; p < g.GetSize(); p++ {
		chk.IntAssert(g.GetRegionIndex(p), 0)
	}
}

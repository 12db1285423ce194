package linesearch

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// quadraticTarget is a Target whose merit is the sum of squares of its
// variables, so its minimum along any direction is analytically known.
type quadraticTarget struct {
	x       []float64
	updated bool
}

func (q *quadraticTarget) GetVariables() []float64 { return append([]float64(nil), q.x...) }
func (q *quadraticTarget) SetVariables(x []float64) {
	q.x = append([]float64(nil), x...)
}
func (q *quadraticTarget) SetVariablesUpdated() { q.updated = true }
func (q *quadraticTarget) GetMerit() float64 {
	var sum float64
	for _, v := range q.x {
		sum += v * v
	}
	return sum
}

func TestTrivialShiftsByDirection(tst *testing.T) {
	chk.PrintTitle("TrivialShiftsByDirection")
	t := &quadraticTarget{x: []float64{1, 1}}
	res := NewTrivial().Solve(t, []float64{-1, -1})
	if !res.Success {
		tst.Fatal("expected Trivial to report success")
	}
	chk.Array(tst, "shifted variables", 1e-15, t.x, []float64{0, 0})
	chk.Scalar(tst, "merit at shifted point", 1e-15, res.FinalMerit, 0)
	if !t.updated {
		tst.Fatal("expected SetVariablesUpdated to be called")
	}
}

func TestTrivialCustomShiftFactor(tst *testing.T) {
	chk.PrintTitle("TrivialCustomShiftFactor")
	t := &quadraticTarget{x: []float64{1}}
	res := Trivial{ShiftFactor: 0.5}.Solve(t, []float64{-2})
	chk.Array(tst, "half-shifted variable", 1e-15, t.x, []float64{0})
	chk.Scalar(tst, "merit", 1e-15, res.FinalMerit, 0)
}

func TestGoldenSectionFindsMinimumAlongDirection(tst *testing.T) {
	chk.PrintTitle("GoldenSectionFindsMinimumAlongDirection")
	// starting at x=2, direction -1: merit(alpha) = (2-alpha)^2, minimised
	// at alpha=1 within the default [0,1] bracket — exactly the right edge.
	t := &quadraticTarget{x: []float64{2}}
	g := NewGoldenSection()
	res := g.Solve(t, []float64{-1})
	if !res.Success {
		tst.Fatal("expected GoldenSection to report success")
	}
	chk.Scalar(tst, "final merit near (2-1)^2 = 1", 1e-6, res.FinalMerit, 1)
	chk.Scalar(tst, "solution near x=1", 1e-6, t.x[0], 1)
}

func TestGoldenSectionRespectsIterationLimit(tst *testing.T) {
	chk.PrintTitle("GoldenSectionRespectsIterationLimit")
	t := &quadraticTarget{x: []float64{2}}
	g := NewGoldenSection()
	g.ExitConditions = IterationCount
	g.IterationLimit = 3
	res := g.Solve(t, []float64{-1})
	if res.IterationCount > g.IterationLimit+1 {
		tst.Fatalf("expected iteration count bounded near limit, got %d", res.IterationCount)
	}
}

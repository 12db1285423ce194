package rk

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// exponentialDecay implements Target for dy/dt = -y, whose exact solution
// is y(t) = y(0)*exp(-t).
type exponentialDecay struct {
	y []float64
}

func (p *exponentialDecay) DOFCount() int             { return len(p.y) }
func (p *exponentialDecay) SetTime(t float64)         {}
func (p *exponentialDecay) GetVariables() []float64   { return append([]float64(nil), p.y...) }
func (p *exponentialDecay) SetVariables(y []float64)  { p.y = append([]float64(nil), y...) }
func (p *exponentialDecay) SetVariablesUpdated()      {}
func (p *exponentialDecay) GetEquations() []float64 {
	eq := make([]float64, len(p.y))
	for i, v := range p.y {
		eq[i] = -v
	}
	return eq
}

func TestRunIntegratesExponentialDecay(tst *testing.T) {
	chk.PrintTitle("RunIntegratesExponentialDecay")
	p := &exponentialDecay{y: []float64{1}}
	s := New(DefaultConfig(DormandPrince54()))
	out := s.Run(p, 0, 1)
	if out.Reason != ReachedEnd {
		tst.Fatalf("expected ReachedEnd, got %d", out.Reason)
	}
	chk.Scalar(tst, "final time", 1e-12, out.FinalTime, 1)
	chk.Scalar(tst, "final solution", 1e-6, p.y[0], math.Exp(-1))
}

func TestRunWithVerner87IntegratesExponentialDecay(tst *testing.T) {
	chk.PrintTitle("RunWithVerner87IntegratesExponentialDecay")
	p := &exponentialDecay{y: []float64{2}}
	s := New(DefaultConfig(Verner87()))
	out := s.Run(p, 0, 2)
	if out.Reason != ReachedEnd {
		tst.Fatalf("expected ReachedEnd, got %d", out.Reason)
	}
	chk.Scalar(tst, "final solution", 1e-6, p.y[0], 2*math.Exp(-2))
}

func TestRunRecordsDenseOutputSnapshots(tst *testing.T) {
	chk.PrintTitle("RunRecordsDenseOutputSnapshots")
	p := &exponentialDecay{y: []float64{1}}
	cfg := DefaultConfig(Verner87())
	cfg.DenseStep = 0.5
	s := New(cfg)
	s.Run(p, 0, 1)
	cache := s.Cache()
	if len(cache) == 0 {
		tst.Fatal("expected dense-output snapshots to be recorded")
	}
	for _, snap := range cache {
		chk.Scalar(tst, "snapshot matches analytic decay", 1e-5, snap.Y[0], math.Exp(-snap.Time))
	}
}

func TestRunWithManyDOFRespectsConfiguredTolerance(tst *testing.T) {
	chk.PrintTitle("RunWithManyDOFRespectsConfiguredTolerance")
	// a wide DOF count with widely varying magnitudes exercises the
	// per-DOF errorTemp scaling and the /DOFCount() normalisation in
	// errorNorm: a formula missing either would drift the accepted error
	// far from the configured tolerances well before n grows this large.
	const n = 200
	y0 := make([]float64, n)
	for i := range y0 {
		y0[i] = float64(i + 1)
	}
	p := &exponentialDecay{y: append([]float64(nil), y0...)}
	cfg := DefaultConfig(Verner87())
	cfg.AbsTol, cfg.RelTol = 1e-8, 1e-8
	s := New(cfg)
	out := s.Run(p, 0, 1)
	if out.Reason != ReachedEnd {
		tst.Fatalf("expected ReachedEnd, got %d", out.Reason)
	}
	for i, v := range p.y {
		chk.Scalar(tst, "component matches analytic decay", 1e-6, v, y0[i]*math.Exp(-1))
	}
}

func tableauSolutionRowSumsToOne(tab Tableau) float64 {
	var sum float64
	for _, b := range tab.A[tab.Steps] {
		sum += b
	}
	return sum
}

func TestTableauxSatisfyConsistencyCondition(tst *testing.T) {
	chk.PrintTitle("TableauxSatisfyConsistencyCondition")
	chk.Scalar(tst, "DormandPrince54 sum(b)=1", 1e-12, tableauSolutionRowSumsToOne(DormandPrince54()), 1)
	chk.Scalar(tst, "Verner87 sum(b)=1", 1e-12, tableauSolutionRowSumsToOne(Verner87()), 1)
}

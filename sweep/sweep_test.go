package sweep

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// recordingTarget is a Target that records every parameter it was asked to
// solve at, and reports success according to an injected predicate.
type recordingTarget struct {
	param      float64
	x          []float64
	solved     []float64
	shouldFail func(param float64) bool
}

func (t *recordingTarget) SetParameter(index int, v float64) { t.param = v }
func (t *recordingTarget) ParameterCount() int                { return 1 }
func (t *recordingTarget) GetVariables() []float64            { return append([]float64(nil), t.x...) }
func (t *recordingTarget) SetVariables(x []float64)           { t.x = append([]float64(nil), x...) }
func (t *recordingTarget) SetVariablesUpdated()                {}

func alwaysSucceeds(t *recordingTarget) bool {
	t.solved = append(t.solved, t.param)
	return true
}

func TestFixedSweepsToFinalValue(tst *testing.T) {
	chk.PrintTitle("FixedSweepsToFinalValue")
	target := &recordingTarget{x: []float64{1}}
	var events []Event
	solve := func(p Target) bool { return alwaysSucceeds(target) }
	f := NewFixed(solve, 0, 0, 1, 0.25)
	f.AddAction(SuccessfulSolution, func(Target) { events = append(events, SuccessfulSolution) })
	f.AddAction(FinishSweep, func(Target) { events = append(events, FinishSweep) })

	out := f.Sweep(target)
	if !out.Success {
		tst.Fatal("expected Fixed sweep to reach FinalValue")
	}
	chk.Scalar(tst, "final value", 1e-15, out.FinalValue, 1)
	chk.Array(tst, "visited parameters", 1e-12, target.solved, []float64{0, 0.25, 0.5, 0.75, 1})
	chk.IntAssert(len(events), 6) // 5 successes + 1 finish
	if events[len(events)-1] != FinishSweep {
		tst.Fatal("expected FinishSweep to fire last")
	}
}

func TestFixedSweepStopsOnFailure(tst *testing.T) {
	chk.PrintTitle("FixedSweepStopsOnFailure")
	target := &recordingTarget{x: []float64{1}}
	solve := func(p Target) bool {
		if target.param > 0.4 {
			return false
		}
		return alwaysSucceeds(target)
	}
	f := NewFixed(solve, 0, 0, 1, 0.25)
	out := f.Sweep(target)
	if out.Success {
		tst.Fatal("expected Fixed sweep to report failure")
	}
	chk.Array(tst, "visited parameters before failure", 1e-12, target.solved, []float64{0, 0.25})
}

func TestAdaptiveSweepsToFinalValue(tst *testing.T) {
	chk.PrintTitle("AdaptiveSweepsToFinalValue")
	target := &recordingTarget{x: []float64{1}}
	solve := func(p Target) bool { return alwaysSucceeds(target) }
	a := NewAdaptive(solve, 0, 0, 0.5, 0.1)
	out := a.Sweep(target)
	if !out.Success {
		tst.Fatal("expected Adaptive sweep to reach FinalValue")
	}
	chk.Scalar(tst, "final value", 1e-15, out.FinalValue, 0.5)
	if len(target.solved) == 0 {
		tst.Fatal("expected at least one successful solve")
	}
}

func TestAdaptiveSweepShrinksStepOnFailure(tst *testing.T) {
	chk.PrintTitle("AdaptiveSweepShrinksStepOnFailure")
	target := &recordingTarget{x: []float64{1}}
	solve := func(p Target) bool {
		if target.param > 0.05 {
			return false
		}
		return alwaysSucceeds(target)
	}
	a := NewAdaptive(solve, 0, 0, 0.5, 0.1)
	a.TryChangeBranch = false
	out := a.Sweep(target)
	if out.Success {
		tst.Fatal("expected Adaptive sweep to fail to reach FinalValue past the barrier")
	}
	if len(target.solved) == 0 {
		tst.Fatal("expected at least one successful solve before the barrier")
	}
}

func TestEventExecutorAddAndRemoveAction(tst *testing.T) {
	chk.PrintTitle("EventExecutorAddAndRemoveAction")
	e := newEventExecutor()
	var count int
	e.AddAction(StartSweep, func(Target) { count++ })
	e.apply(StartSweep, nil)
	chk.IntAssert(count, 1)
	e.RemoveAction(StartSweep)
	e.apply(StartSweep, nil)
	chk.IntAssert(count, 1)
}

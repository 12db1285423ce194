package rk

import "math"

// Target is the Problem I/O contract the integrator consumes (§4.8):
// dofCount, time, the variable vector, and equations() = f(t,y) after
// actualization.
type Target interface {
	DOFCount() int
	SetTime(t float64)
	GetVariables() []float64
	SetVariables(y []float64)
	SetVariablesUpdated()
	GetEquations() []float64
}

// ExitReason enumerates why an integration run stopped (§7's structured
// OutputInfo with a terminating-reason enum).
type ExitReason int

const (
	ReachedEnd ExitReason = iota
	StepUnderflow
	StepCountLimitReached
	SolutionNormOverflow
)

// Snapshot is one cached (time, solution) pair.
type Snapshot struct {
	Time  float64
	Y     []float64
}

// Config holds the integrator's tunables.
type Config struct {
	Tableau Tableau

	InitialStep float64
	MinStep     float64

	AbsTol, RelTol float64
	MaxError       float64
	StepScaleFactor,
	MinStepScale, MaxStepScale float64

	StepCountLimit  int
	MaxSolutionNorm float64

	DenseStep float64 // 0 disables dense-output snapshotting
}

// DefaultConfig mirrors the common CESDSOL RK defaults: absolute and
// relative tolerances 1e-8, max error 1, safety factor 0.9, scale clamp
// [0.2,5].
func DefaultConfig(tableau Tableau) Config {
	return Config{
		Tableau:         tableau,
		InitialStep:     1e-3,
		MinStep:         1e-12,
		AbsTol:          1e-8,
		RelTol:          1e-8,
		MaxError:        1,
		StepScaleFactor: 0.9,
		MinStepScale:    0.2,
		MaxStepScale:    5,
		StepCountLimit:  1_000_000,
		MaxSolutionNorm: math.Inf(1),
	}
}

// Solver drives a Target through time using the configured Butcher
// tableau, accumulating dense-output snapshots when enabled.
type Solver struct {
	cfg Config

	x0       float64
	denseIdx int
	cache    []Snapshot
}

// New builds a Solver with the given configuration.
func New(cfg Config) *Solver {
	return &Solver{cfg: cfg}
}

// Cache returns every dense-output snapshot recorded so far.
func (s *Solver) Cache() []Snapshot { return s.cache }

// OutputInfo reports how an integration run ended.
type OutputInfo struct {
	Reason    ExitReason
	StepCount int
	FinalTime float64
}

// computeStages evaluates k_0..k_s at (t,y,h) per the tableau, returning
// the stage derivatives and the trial solution y_{n+1} (tableau row s).
func (s *Solver) computeStages(problem Target, t, h float64, y []float64) (k [][]float64, yNext []float64) {
	tab := s.cfg.Tableau
	n := len(y)
	k = make([][]float64, tab.Steps+1)

	problem.SetTime(t)
	problem.SetVariables(y)
	problem.SetVariablesUpdated()
	k[0] = append([]float64(nil), problem.GetEquations()...)

	for i := 1; i <= tab.Steps; i++ {
		yTry := make([]float64, n)
		copy(yTry, y)
		for j := 0; j < i; j++ {
			a := tab.A[i][j]
			if a == 0 {
				continue
			}
			for idx := range yTry {
				yTry[idx] += h * a * k[j][idx]
			}
		}
		problem.SetTime(t + tab.C[i]*h)
		problem.SetVariables(yTry)
		problem.SetVariablesUpdated()
		k[i] = append([]float64(nil), problem.GetEquations()...)
	}

	yNext = make([]float64, n)
	copy(yNext, y)
	bRow := tab.A[tab.Steps]
	for j := 0; j < tab.Steps; j++ {
		b := bRow[j]
		if b == 0 {
			continue
		}
		for idx := range yNext {
			yNext[idx] += h * b * k[j][idx]
		}
	}
	return k, yNext
}

// errorNorm computes the weighted RMS error (§4.8): per-DOF tolerance
// scaling by errorTemp = absTol+relTol*max(|y_new|,|y_old|), summed in
// quadrature over the DOF, normalised by DOF count before the final sqrt
// (RungeKuttaSolver.h's adaptive-error block). tab.E[0] is already the
// precomputed main-minus-embedded row, so it is used directly with no
// further subtraction from the solution row.
func errorNorm(tab Tableau, k [][]float64, y, yNext []float64, absTol, relTol float64) float64 {
	n := len(y)
	eRow := tab.E[0]
	var sum float64
	for idx := 0; idx < n; idx++ {
		var diff float64
		for j := 0; j < len(eRow) && j < len(k); j++ {
			diff += eRow[j] * k[j][idx]
		}
		errorTemp := absTol + relTol*math.Max(math.Abs(yNext[idx]), math.Abs(y[idx]))
		e := diff / errorTemp
		sum += e * e
	}
	return math.Sqrt(sum / float64(n))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Run integrates problem from xStart to xEnd and returns how the run
// ended. When DenseStep > 0, a tableau with dense-output support records a
// snapshot at every multiple of DenseStep; a tableau without it records a
// snapshot at the end of every accepted step instead.
func (s *Solver) Run(problem Target, xStart, xEnd float64) OutputInfo {
	tab := s.cfg.Tableau
	s.x0 = xStart
	x := xStart
	h := s.cfg.InitialStep
	if xEnd < xStart {
		h = -h
	}
	stepCount := 0

	y := problem.GetVariables()

	for {
		if (h > 0 && x >= xEnd) || (h < 0 && x <= xEnd) {
			return OutputInfo{Reason: ReachedEnd, StepCount: stepCount, FinalTime: x}
		}
		// clamp the last step to land exactly on xEnd.
		if (h > 0 && x+h > xEnd) || (h < 0 && x+h < xEnd) {
			h = xEnd - x
		}

		k, yNext := s.computeStages(problem, x, h, y)

		accept := true
		var scale float64 = 1
		if tab.IsAdaptive {
			errNorm := errorNorm(tab, k, y, yNext, s.cfg.AbsTol, s.cfg.RelTol)
			accept = errNorm <= s.cfg.MaxError
			scale = s.cfg.StepScaleFactor * math.Pow(math.Max(errNorm, 1e-300), -1/float64(tab.LowOrder+1))
			scale = clamp(scale, s.cfg.MinStepScale, s.cfg.MaxStepScale)
		}

		if !accept {
			h *= scale
			if math.Abs(h) <= s.cfg.MinStep {
				return OutputInfo{Reason: StepUnderflow, StepCount: stepCount, FinalTime: x}
			}
			continue
		}

		xPrev, hPrev := x, h
		x = x + h
		if tab.IsAdaptive {
			h *= scale
		}

		if s.cfg.DenseStep > 0 {
			if tab.IsDenseOutputSupported {
				s.recordDenseOutput(problem, tab, k, xPrev, hPrev, x, y, yNext)
			} else {
				// tableau ships no interpolation polynomial: fall back to
				// recording the accepted step boundary itself rather than
				// silently dropping dense output.
				s.cache = append(s.cache, Snapshot{Time: x, Y: append([]float64(nil), yNext...)})
			}
		}

		y = yNext
		problem.SetTime(x)
		problem.SetVariables(y)
		problem.SetVariablesUpdated()

		stepCount++
		var norm float64
		for _, v := range y {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm >= s.cfg.MaxSolutionNorm {
			return OutputInfo{Reason: SolutionNormOverflow, StepCount: stepCount, FinalTime: x}
		}
		if stepCount >= s.cfg.StepCountLimit {
			return OutputInfo{Reason: StepCountLimitReached, StepCount: stepCount, FinalTime: x}
		}
		if tab.IsAdaptive && math.Abs(h) <= s.cfg.MinStep && (h > 0 && x < xEnd || h < 0 && x > xEnd) {
			return OutputInfo{Reason: StepUnderflow, StepCount: stepCount, FinalTime: x}
		}
	}
}

// recordDenseOutput evaluates the dense-output polynomial at every grid
// time missed between xPrev and x, snapshotting (t, y(t)) into the cache
// (§4.8 "Dense output").
func (s *Solver) recordDenseOutput(problem Target, tab Tableau, k [][]float64, xPrev, hPrev, xCurr float64, yPrev, yNext []float64) {
	extra := make([][]float64, tab.DenseOutputStepCount)
	n := len(yPrev)
	for i := 0; i < tab.DenseOutputStepCount; i++ {
		yTry := make([]float64, n)
		copy(yTry, yPrev)
		for j, a := range tab.DenseA[i] {
			if a == 0 {
				continue
			}
			for idx := range yTry {
				yTry[idx] += hPrev * a * k[j][idx]
			}
		}
		problem.SetTime(xPrev + tab.DenseC[i]*hPrev)
		problem.SetVariables(yTry)
		problem.SetVariablesUpdated()
		extra[i] = append([]float64(nil), problem.GetEquations()...)
	}
	stages := append(append([][]float64{}, k...), extra...)

	nextIdx := int(math.Floor((xCurr - s.x0) / s.cfg.DenseStep))
	for j := s.denseIdx + 1; j <= nextIdx; j++ {
		t := s.x0 + s.cfg.DenseStep*float64(j)
		theta := (t - xPrev) / hPrev
		y := make([]float64, n)
		copy(y, yPrev)
		for stageIdx, coeffs := range tab.DenseOutputCoefficients {
			if stageIdx >= len(stages) {
				break
			}
			p := horner(coeffs, theta)
			for idx := range y {
				y[idx] += hPrev * stages[stageIdx][idx] * p
			}
		}
		s.cache = append(s.cache, Snapshot{Time: t, Y: y})
	}
	s.denseIdx = nextIdx
}

func horner(coeffs []float64, theta float64) float64 {
	var result float64
	for i := len(coeffs) - 1; i >= 0; i-- {
		result = result*theta + coeffs[i]
	}
	return result
}

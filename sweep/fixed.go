package sweep

// Fixed drives a fixed-step parametric sweep (§4.9), the Go counterpart
// of FixedStepParametricSweeper.h.
type Fixed struct {
	eventExecutor

	ParameterIndex            int
	InitialValue, FinalValue  float64
	Step                      float64
	InterpolateInitialGuess   bool

	Solve SolverFunc
}

// NewFixed builds a Fixed sweeper with InterpolateInitialGuess true, the
// C++ default.
func NewFixed(solve SolverFunc, parameterIndex int, initial, final, step float64) *Fixed {
	return &Fixed{
		eventExecutor:           newEventExecutor(),
		ParameterIndex:          parameterIndex,
		InitialValue:            initial,
		FinalValue:              final,
		Step:                    step,
		InterpolateInitialGuess: true,
		Solve:                   solve,
	}
}

// OutputInfo reports whether the sweep reached FinalValue.
type OutputInfo struct {
	Success    bool
	FinalValue float64
}

func interpolateGuess(problem Target, previous, current []float64, currentStep, oldStep float64) {
	alpha := currentStep / oldStep
	x := problem.GetVariables()
	for i := range x {
		x[i] = (1+alpha)*current[i] - alpha*previous[i]
	}
	problem.SetVariables(x)
	problem.SetVariablesUpdated()
}

// Sweep drives the solver from InitialValue to FinalValue in steps of
// Step (sign chosen towards FinalValue), snapping the final step so the
// parameter lands exactly on FinalValue.
func (f *Fixed) Sweep(problem Target) OutputInfo {
	currentStep := f.Step
	if f.FinalValue < f.InitialValue {
		currentStep = -f.Step
	}

	f.apply(StartSweep, problem)
	parameter := f.InitialValue
	oldStep := currentStep

	var previousSolution []float64
	if f.InterpolateInitialGuess {
		previousSolution = append([]float64(nil), problem.GetVariables()...)
	}

	for {
		problem.SetParameter(f.ParameterIndex, parameter)
		f.apply(StartSolution, problem)
		if !f.Solve(problem) {
			f.apply(FailedSolution, problem)
			break
		}
		f.apply(SuccessfulSolution, problem)
		if parameter == f.FinalValue {
			break
		}
		isFinal := (f.FinalValue-parameter)*(f.FinalValue-parameter-currentStep) < 0
		oldStep = currentStep
		if isFinal {
			currentStep = f.FinalValue - parameter
		}
		parameter += currentStep

		if f.InterpolateInitialGuess {
			current := append([]float64(nil), problem.GetVariables()...)
			interpolateGuess(problem, previousSolution, current, currentStep, oldStep)
			previousSolution = current
		}
	}
	f.apply(FinishSweep, problem)
	return OutputInfo{Success: parameter == f.FinalValue, FinalValue: parameter}
}

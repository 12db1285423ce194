package sweep

import "math"

// Adaptive drives an adaptive parametric sweep (§4.9), the Go counterpart
// of AdaptiveParametricSweeper.h: step-shrink on failure, step-grow on
// success, and a branch-change state machine when the step underflows.
type Adaptive struct {
	eventExecutor

	ParameterIndex           int
	InitialValue, FinalValue float64
	InitialStep              float64
	MinStep, MaxStep         float64
	InterpolateInitialGuess  bool
	GrowthFactor             float64
	ShrinkFactor             float64

	TryChangeBranch       bool
	MaxChangeBranchTrials int
	LimitBranchCount      bool
	MaxBranchCount        int
	LimitSolutionCount    bool
	MaxSolutionCount      int

	Solve SolverFunc
}

// NewAdaptive builds an Adaptive sweeper with the C++ defaults: 1e-6 min
// step, 1e-1 max step, growth 1.1, shrink 1.5, branch-change enabled (5
// trials, 5 branches), solution-count limited to 1000.
func NewAdaptive(solve SolverFunc, parameterIndex int, initial, final, initialStep float64) *Adaptive {
	return &Adaptive{
		eventExecutor:           newEventExecutor(),
		ParameterIndex:          parameterIndex,
		InitialValue:            initial,
		FinalValue:              final,
		InitialStep:             initialStep,
		MinStep:                 1e-6,
		MaxStep:                 1e-1,
		InterpolateInitialGuess: true,
		GrowthFactor:            1.1,
		ShrinkFactor:            1.5,
		TryChangeBranch:         true,
		MaxChangeBranchTrials:   5,
		LimitBranchCount:        true,
		MaxBranchCount:          5,
		LimitSolutionCount:      true,
		MaxSolutionCount:        1000,
		Solve:                   solve,
	}
}

// Sweep drives the solver from InitialValue towards FinalValue,
// shrinking/growing the step on failure/success and attempting a branch
// change when the step underflows, until reaching FinalValue or exceeding
// one of the configured limits.
func (a *Adaptive) Sweep(problem Target) OutputInfo {
	a.apply(StartSweep, problem)

	currentStep, oldStep := a.InitialStep, a.InitialStep
	parameter, previousParameter := a.InitialValue, a.InitialValue
	var previousSolution, tmp []float64
	solutionIndex := 0
	branch := 0
	isChangingBranch := false
	changeBranchStep := 1.0
	changeBranchTrial := 0

	if a.InterpolateInitialGuess {
		previousSolution = append([]float64(nil), problem.GetVariables()...)
		tmp = append([]float64(nil), previousSolution...)
	}

	for {
		problem.SetParameter(a.ParameterIndex, parameter)
		a.apply(StartSolution, problem)
		ok := a.Solve(problem)

		if !ok {
			if isChangingBranch && changeBranchTrial > 0 && changeBranchTrial <= a.MaxChangeBranchTrials {
				a.apply(FailedBranchChangeAttempt, problem)
				changeBranchStep *= a.GrowthFactor
				changeBranchTrial++
				problem.SetVariables(previousSolution)
				previousSolution = tmp
				if a.InterpolateInitialGuess {
					x := problem.GetVariables()
					for i := range x {
						x[i] = (1+changeBranchStep)*x[i] - changeBranchStep*previousSolution[i]
					}
					problem.SetVariables(x)
					problem.SetVariablesUpdated()
				}
				oldStep = currentStep
				currentStep *= a.GrowthFactor
				parameter = previousParameter + currentStep
			} else {
				a.apply(FailedSolution, problem)
				currentStep /= a.ShrinkFactor

				if math.Abs(currentStep) < a.MinStep {
					if isChangingBranch || !a.TryChangeBranch {
						break
					}
					a.apply(StartBranchChange, problem)
					changeBranchTrial++
					isChangingBranch = true
					problem.SetVariables(previousSolution)
					previousSolution = tmp
					if a.InterpolateInitialGuess {
						x := problem.GetVariables()
						for i := range x {
							x[i] = (1+changeBranchStep)*x[i] - changeBranchStep*previousSolution[i]
						}
						problem.SetVariables(x)
						problem.SetVariablesUpdated()
					}
					oldStep = currentStep
					currentStep *= -1
					parameter = previousParameter + currentStep
				} else {
					problem.SetVariables(previousSolution)
					parameter = previousParameter
				}
			}
		} else {
			solutionIndex++
			if isChangingBranch {
				branch++
			}
			oldStep = currentStep
			sign := currentStep / math.Abs(currentStep)
			currentStep = sign * math.Min(math.Abs(currentStep*a.GrowthFactor), a.MaxStep)
			a.apply(SuccessfulSolution, problem)

			if a.LimitBranchCount && branch > a.MaxBranchCount {
				break
			}
			if a.LimitSolutionCount && solutionIndex > a.MaxSolutionCount {
				break
			}

			tmp = previousSolution
			previousSolution = append([]float64(nil), problem.GetVariables()...)

			if isChangingBranch {
				changeBranchStep = 1
				changeBranchTrial = 0
				isChangingBranch = false
			} else if a.InterpolateInitialGuess {
				x := problem.GetVariables()
				alpha := currentStep / oldStep
				beta := (oldStep + currentStep) / oldStep
				for i := range x {
					x[i] = -alpha*tmp[i] + beta*x[i]
				}
				problem.SetVariables(x)
				problem.SetVariablesUpdated()
			}
		}

		if parameter == a.FinalValue {
			break
		}

		if !isChangingBranch {
			previousParameter = parameter
			isFinal := (a.FinalValue-parameter)*(a.FinalValue-parameter-currentStep) < 0
			if isFinal {
				currentStep = a.FinalValue - parameter
			}
			parameter += currentStep
		}
	}

	a.apply(FinishSweep, problem)
	return OutputInfo{Success: parameter == a.FinalValue, FinalValue: parameter}
}

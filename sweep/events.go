// Package sweep implements the fixed-step and adaptive parametric
// sweepers (§4.9): both drive a stationary-style nonlinear solver while
// varying one chosen problem parameter, publishing events callers can
// subscribe to for persistence.
package sweep

// Event identifies a sweep lifecycle point a caller can subscribe to.
type Event int

const (
	StartSweep Event = iota
	StartSolution
	SuccessfulSolution
	FailedSolution
	FinishSweep
	StartBranchChange
	FailedBranchChangeAttempt
)

// Handler is invoked with the problem at the moment the event fires, so
// it may inspect (and persist) the current state.
type Handler func(problem Target)

// eventExecutor is the addAction/removeAction pair from §6's
// programmatic API surface, the Go counterpart of Utils/EventExecutor.h.
type eventExecutor struct {
	handlers map[Event][]Handler
}

func newEventExecutor() eventExecutor {
	return eventExecutor{handlers: make(map[Event][]Handler)}
}

// AddAction registers handler to run whenever event fires.
func (e *eventExecutor) AddAction(event Event, handler Handler) {
	e.handlers[event] = append(e.handlers[event], handler)
}

// RemoveAction removes every previously registered handler for event.
func (e *eventExecutor) RemoveAction(event Event) {
	delete(e.handlers, event)
}

func (e *eventExecutor) apply(event Event, problem Target) {
	for _, h := range e.handlers[event] {
		h(problem)
	}
}

// Target is the subset of the Problem runtime a sweeper drives: the
// parameter being varied plus the full DOF vector for initial-guess
// extrapolation.
type Target interface {
	SetParameter(index int, v float64)
	ParameterCount() int
	GetVariables() []float64
	SetVariables(x []float64)
	SetVariablesUpdated()
}

// SolverFunc adapts any nonlinear solver (e.g. *newton.Solver, whose
// Solve returns a richer OutputInfo) into the single success bool a
// sweeper needs — callers close over their solver's own Target-typed
// Solve, e.g.
// `func(p Target) bool { return newtonSolver.Solve(p.(newton.Target)).Success }`.
type SolverFunc func(problem Target) bool

// Package descriptor implements the problem descriptor: the declarative,
// callback-based description of a system of PDEs/DAEs over a structured
// grid (fields, derivative operators, piecewise continuous equations,
// discrete equations, parameter/variable-independent/-dependent
// expressions, reductions, and their Jacobian components).
package descriptor

// LocalsForPIE is the view exposed to a local parameter-independent
// expression: grid-point coordinates and the PIE values already computed
// at this point (indices 0..i-1 within the same evaluation pass).
type LocalsForPIE struct {
	Point     []float64
	PIEValues []float64
}

// GlobalsForPIE is the view exposed to a global parameter-independent
// expression: already-computed global PIEs (indices 0..i-1).
type GlobalsForPIE struct {
	GlobalPIEs []float64
}

// LocalsForVIE is the view exposed to a local variable-independent
// expression.
type LocalsForVIE struct {
	Point     []float64
	PIEValues []float64
	VIEValues []float64
}

// GlobalsForVIE is the view exposed to a global variable-independent
// expression. Time is populated for transient (RK-driven) problems;
// stationary problems leave it at zero.
type GlobalsForVIE struct {
	GlobalPIEs []float64
	Parameters []float64
	GlobalVIEs []float64
	Time       float64
}

// Locals is the full per-point view (LocalsForVDE in the spec's naming):
// coordinates, integration weight, field values, all derivative values,
// and every already-computed local expression.
type Locals struct {
	Point             []float64
	IntegrationWeight float64
	FieldValues       []float64   // one per continuous equation
	DerivativeValues  [][]float64 // [field][operator]
	PIEValues         []float64
	VIEValues         []float64
	VDEValues         []float64
}

// Globals is the full global view: every global expression, the discrete
// variables, and the reduction results.
type Globals struct {
	GlobalPIEs        []float64
	Parameters        []float64
	GlobalVIEs        []float64
	DiscreteVariables []float64
	GlobalVDEs        []float64
	Reductions        []float64
}

// JKey identifies a (field, operator) pair within a Jacobian-component
// map, e.g. the partial derivative of a VDE wrt a field's k-th declared
// derivative operator (k=0 meaning the field value itself).
type JKey struct {
	Field    int
	Operator int
}

// LocalsForJacobian extends Locals with the precomputed per-point partial
// derivatives of local VDEs and reduction integrands, so an equation's
// Jacobian-component callback can apply the chain rule without
// recomputing them (§4.5: "VDE and equation Jacobian callbacks receive
// views that expose the precomputed per-point VDE and reduction partial
// derivatives").
type LocalsForJacobian struct {
	Locals
	LVDEJacobian      map[int]map[JKey]float64 // [lvdeIndex][field,op]
	ReductionJacobian map[int]map[JKey]float64 // [reductionIndex][field,op]
}

// GlobalsForJacobian extends Globals with the precomputed partials of
// global VDEs wrt discrete variables.
type GlobalsForJacobian struct {
	Globals
	GVDEJacobian map[int]map[int]float64 // [gvdeIndex][discreteVarIndex]
}

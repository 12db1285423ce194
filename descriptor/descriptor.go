package descriptor

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Callback signatures for every evaluator phase (§4.4's PIE < VIE <
// derivatives < VDE < reductions < equations ordering).
type (
	ContinuousEquationFunc func(locals *Locals, globals *Globals) float64
	DiscreteEquationFunc   func(globals *Globals) float64

	LocalPIEFunc  func(locals *LocalsForPIE, globals *GlobalsForPIE) float64
	GlobalPIEFunc func(globals *GlobalsForPIE) float64
	LocalVIEFunc  func(locals *LocalsForVIE, globals *GlobalsForVIE) float64
	GlobalVIEFunc func(globals *GlobalsForVIE) float64
	LocalVDEFunc  func(locals *Locals, globals *Globals) float64
	GlobalVDEFunc func(globals *Globals) float64

	ReductionInternalFunc func(locals *Locals, globals *Globals) float64
	ReductionExternalFunc func(sum float64) float64

	JacobianComponentFunc         func(locals *LocalsForJacobian, globals *GlobalsForJacobian) float64
	GVDEJacobianFunc              func(globals *GlobalsForJacobian) float64
	ReductionExternalJacobianFunc func(sum float64) float64

	MeritFunc func(values []float64) float64
)

type jacKey struct {
	Equation int
	Field    int
	Operator int
	Region   int
}

// Descriptor is the declarative description of a problem: field/equation
// layout, the piecewise continuous equations, discrete equations, the
// expression pipeline (PIE/VIE/VDE/reductions), and their Jacobian
// components — the Go counterpart of BaseProblemDescriptor +
// StationaryProblemDescriptor merged into one type, since CESDSOL-Go
// targets the stationary/transient split at the Problem level (§4.3)
// rather than by descriptor subclassing.
type Descriptor struct {
	Name        string
	Dimension   int
	RegionCount int

	ContinuousEquationCount int
	DiscreteEquationCount   int
	ParameterCount          int

	// DerivativeOps[field] is the list of derivative operators declared
	// for that continuous equation's field; each operator is a per-axis
	// derivative-order slice (len == Dimension).
	DerivativeOps [][][]int

	ParameterNames []string
	VariableNames  []string

	continuousEqs map[[2]int]ContinuousEquationFunc // (equation, region)
	discreteEqs   []DiscreteEquationFunc

	localPIEs  []LocalPIEFunc
	globalPIEs []GlobalPIEFunc
	localVIEs  []LocalVIEFunc
	globalVIEs []GlobalVIEFunc
	localVDEs  []LocalVDEFunc
	globalVDEs []GlobalVDEFunc

	reductionInternal []ReductionInternalFunc
	reductionExternal []ReductionExternalFunc

	jacobianComponents map[jacKey]JacobianComponentFunc
	lvdeJacobian       map[int]map[JKey]JacobianComponentFunc
	gvdeJacobian       map[int]map[int]GVDEJacobianFunc
	reductionInternalJ map[int]map[JKey]JacobianComponentFunc
	reductionExternalJ []ReductionExternalJacobianFunc

	meritFunc MeritFunc
}

// New builds an empty descriptor with the given layout. derivativeOps
// gives, per continuous-equation field, its list of declared derivative
// operators.
func New(name string, dimension, regionCount int, derivativeOps [][][]int, parameterCount, discreteEquationCount int) *Descriptor {
	d := &Descriptor{
		Name:                    name,
		Dimension:               dimension,
		RegionCount:             regionCount,
		ContinuousEquationCount: len(derivativeOps),
		DiscreteEquationCount:   discreteEquationCount,
		ParameterCount:          parameterCount,
		DerivativeOps:           derivativeOps,
		ParameterNames:          make([]string, parameterCount),
		VariableNames:           make([]string, len(derivativeOps)+discreteEquationCount),
		continuousEqs:           make(map[[2]int]ContinuousEquationFunc),
		discreteEqs:             make([]DiscreteEquationFunc, discreteEquationCount),
		jacobianComponents:      make(map[jacKey]JacobianComponentFunc),
		lvdeJacobian:            make(map[int]map[JKey]JacobianComponentFunc),
		gvdeJacobian:            make(map[int]map[int]GVDEJacobianFunc),
		reductionInternalJ:      make(map[int]map[JKey]JacobianComponentFunc),
		meritFunc:               func(v []float64) float64 { return defaultMerit(v) },
	}
	return d
}

func defaultMerit(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	n := len(v)
	if n == 0 {
		return 0
	}
	return math.Sqrt(sum) / float64(n) // Norm2(fields)/fields.size()
}

func (d *Descriptor) EquationCount() int { return d.ContinuousEquationCount + d.DiscreteEquationCount }

func (d *Descriptor) DerivativeOperatorCount(field int) int { return len(d.DerivativeOps[field]) }
func (d *Descriptor) GetDerivativeOperator(field, op int) []int {
	return d.DerivativeOps[field][op]
}

func (d *Descriptor) LocalPIECount() int  { return len(d.localPIEs) }
func (d *Descriptor) GlobalPIECount() int { return len(d.globalPIEs) }
func (d *Descriptor) LocalVIECount() int  { return len(d.localVIEs) }
func (d *Descriptor) GlobalVIECount() int { return len(d.globalVIEs) }
func (d *Descriptor) LocalVDECount() int  { return len(d.localVDEs) }
func (d *Descriptor) GlobalVDECount() int { return len(d.globalVDEs) }
func (d *Descriptor) ReductionCount() int { return len(d.reductionInternal) }

// SetContinuousEquation registers the callback for equation e in region r.
func (d *Descriptor) SetContinuousEquation(e, r int, f ContinuousEquationFunc) {
	d.continuousEqs[[2]int{e, r}] = f
}

// SetDiscreteEquation registers the callback for discrete equation e.
func (d *Descriptor) SetDiscreteEquation(e int, f DiscreteEquationFunc) { d.discreteEqs[e] = f }

// AddLocalPIE / AddGlobalPIE / AddLocalVIE / AddGlobalVIE / AddLocalVDE /
// AddGlobalVDE append a new expression slot and return its index, the
// incremental counterpart of the C++ fixed-size-array SetXxx methods
// (Go's builder usage pattern adds expressions one at a time rather than
// pre-declaring counts).
func (d *Descriptor) AddLocalPIE(f LocalPIEFunc) int {
	d.localPIEs = append(d.localPIEs, f)
	return len(d.localPIEs) - 1
}
func (d *Descriptor) AddGlobalPIE(f GlobalPIEFunc) int {
	d.globalPIEs = append(d.globalPIEs, f)
	return len(d.globalPIEs) - 1
}
func (d *Descriptor) AddLocalVIE(f LocalVIEFunc) int {
	d.localVIEs = append(d.localVIEs, f)
	return len(d.localVIEs) - 1
}
func (d *Descriptor) AddGlobalVIE(f GlobalVIEFunc) int {
	d.globalVIEs = append(d.globalVIEs, f)
	return len(d.globalVIEs) - 1
}
func (d *Descriptor) AddLocalVDE(f LocalVDEFunc) int {
	d.localVDEs = append(d.localVDEs, f)
	return len(d.localVDEs) - 1
}
func (d *Descriptor) AddGlobalVDE(f GlobalVDEFunc) int {
	d.globalVDEs = append(d.globalVDEs, f)
	return len(d.globalVDEs) - 1
}

// AddReduction appends a reduction (internal per-point integrand, external
// post-sum transform) and returns its index.
func (d *Descriptor) AddReduction(internal ReductionInternalFunc, external ReductionExternalFunc) int {
	d.reductionInternal = append(d.reductionInternal, internal)
	d.reductionExternal = append(d.reductionExternal, external)
	return len(d.reductionInternal) - 1
}

// AddIntegral is a convenience AddReduction for a plain integral:
// internal(locals,globals) is automatically weighted by the integration
// weight and the external transform is the identity.
func (d *Descriptor) AddIntegral(integrand ReductionInternalFunc) int {
	return d.AddReduction(
		func(locals *Locals, globals *Globals) float64 {
			return locals.IntegrationWeight * integrand(locals, globals)
		},
		func(sum float64) float64 { return sum },
	)
}

func (d *Descriptor) SetMeritFunction(f MeritFunc) { d.meritFunc = f }
func (d *Descriptor) CalculateMerit(values []float64) float64 { return d.meritFunc(values) }

func (d *Descriptor) SetParameterName(i int, name string) { d.ParameterNames[i] = name }
func (d *Descriptor) SetVariableName(i int, name string)  { d.VariableNames[i] = name }

// HasContinuousEquation reports whether equation e has a callback
// registered for region r (not falling back to region 0 — that fallback
// is the runtime's job, §4.4).
func (d *Descriptor) HasContinuousEquation(e, r int) bool {
	_, ok := d.continuousEqs[[2]int{e, r}]
	return ok
}

func (d *Descriptor) CalculateContinuousEquation(e, r int, locals *Locals, globals *Globals) float64 {
	return d.continuousEqs[[2]int{e, r}](locals, globals)
}
func (d *Descriptor) CalculateDiscreteEquation(e int, globals *Globals) float64 {
	return d.discreteEqs[e](globals)
}
func (d *Descriptor) CalculateLocalPIE(i int, locals *LocalsForPIE, globals *GlobalsForPIE) float64 {
	return d.localPIEs[i](locals, globals)
}
func (d *Descriptor) CalculateGlobalPIE(i int, globals *GlobalsForPIE) float64 {
	return d.globalPIEs[i](globals)
}
func (d *Descriptor) CalculateLocalVIE(i int, locals *LocalsForVIE, globals *GlobalsForVIE) float64 {
	return d.localVIEs[i](locals, globals)
}
func (d *Descriptor) CalculateGlobalVIE(i int, globals *GlobalsForVIE) float64 {
	return d.globalVIEs[i](globals)
}
func (d *Descriptor) CalculateLocalVDE(i int, locals *Locals, globals *Globals) float64 {
	return d.localVDEs[i](locals, globals)
}
func (d *Descriptor) CalculateGlobalVDE(i int, globals *Globals) float64 {
	return d.globalVDEs[i](globals)
}
func (d *Descriptor) CalculateReductionPoint(i int, locals *Locals, globals *Globals) float64 {
	return d.reductionInternal[i](locals, globals)
}
func (d *Descriptor) CalculateReductionTotal(i int, sum float64) float64 {
	return d.reductionExternal[i](sum)
}

// --- Jacobian component registration & evaluation ---

func (d *Descriptor) SetJacobianComponent(e, field, op, region int, f JacobianComponentFunc) {
	d.jacobianComponents[jacKey{e, field, op, region}] = f
}
func (d *Descriptor) HasJacobianComponent(e, field, op, region int) bool {
	_, ok := d.jacobianComponents[jacKey{e, field, op, region}]
	return ok
}
func (d *Descriptor) CalculateJacobianComponent(e, field, op, region int, locals *LocalsForJacobian, globals *GlobalsForJacobian) float64 {
	return d.jacobianComponents[jacKey{e, field, op, region}](locals, globals)
}

func (d *Descriptor) SetLVDEJacobianComponent(expr, field, op int, f JacobianComponentFunc) {
	if d.lvdeJacobian[expr] == nil {
		d.lvdeJacobian[expr] = make(map[JKey]JacobianComponentFunc)
	}
	d.lvdeJacobian[expr][JKey{field, op}] = f
}
func (d *Descriptor) HasLVDEJacobianComponent(expr, field, op int) bool {
	m, ok := d.lvdeJacobian[expr]
	if !ok {
		return false
	}
	_, ok = m[JKey{field, op}]
	return ok
}
func (d *Descriptor) CalculateLVDEJacobianComponent(expr, field, op int, locals *LocalsForJacobian, globals *GlobalsForJacobian) float64 {
	return d.lvdeJacobian[expr][JKey{field, op}](locals, globals)
}

func (d *Descriptor) SetGVDEJacobianComponent(expr, variable int, f GVDEJacobianFunc) {
	if d.gvdeJacobian[expr] == nil {
		d.gvdeJacobian[expr] = make(map[int]GVDEJacobianFunc)
	}
	d.gvdeJacobian[expr][variable] = f
}
func (d *Descriptor) HasGVDEJacobianComponent(expr, variable int) bool {
	m, ok := d.gvdeJacobian[expr]
	if !ok {
		return false
	}
	_, ok = m[variable]
	return ok
}
func (d *Descriptor) CalculateGVDEJacobianComponent(expr, variable int, globals *GlobalsForJacobian) float64 {
	return d.gvdeJacobian[expr][variable](globals)
}

func (d *Descriptor) SetReductionExternalJacobian(i int, f ReductionExternalJacobianFunc) {
	for len(d.reductionExternalJ) <= i {
		d.reductionExternalJ = append(d.reductionExternalJ, nil)
	}
	d.reductionExternalJ[i] = f
}
func (d *Descriptor) SetReductionInternalJacobianComponent(i, field, op int, f JacobianComponentFunc) {
	if d.reductionInternalJ[i] == nil {
		d.reductionInternalJ[i] = make(map[JKey]JacobianComponentFunc)
	}
	d.reductionInternalJ[i][JKey{field, op}] = f
}
func (d *Descriptor) SetIntegrandJacobianComponent(i, field, op int, integrand JacobianComponentFunc) {
	d.SetReductionInternalJacobianComponent(i, field, op, func(locals *LocalsForJacobian, globals *GlobalsForJacobian) float64 {
		return locals.IntegrationWeight * integrand(locals, globals)
	})
}
func (d *Descriptor) HasReductionJacobianComponent(i, field, op int) bool {
	m, ok := d.reductionInternalJ[i]
	if !ok {
		return false
	}
	_, ok = m[JKey{field, op}]
	return ok
}
func (d *Descriptor) CalculateReductionInternalJacobianComponent(i, field, op int, locals *LocalsForJacobian, globals *GlobalsForJacobian) float64 {
	return d.reductionInternalJ[i][JKey{field, op}](locals, globals)
}
func (d *Descriptor) CalculateReductionExternalJacobianComponent(i int, globals *GlobalsForJacobian) float64 {
	if i >= len(d.reductionExternalJ) || d.reductionExternalJ[i] == nil {
		return 1
	}
	return d.reductionExternalJ[i](globals.Reductions[i])
}

// Validate reports whether the descriptor is ready to back a Problem: a
// callback for region 0 of every continuous equation, every discrete
// equation, and every declared expression/reduction must be set (§4.3).
func (d *Descriptor) Validate() bool {
	for e := 0; e < d.ContinuousEquationCount; e++ {
		if !d.HasContinuousEquation(e, 0) {
			return false
		}
	}
	for e := 0; e < d.DiscreteEquationCount; e++ {
		if d.discreteEqs[e] == nil {
			return false
		}
	}
	for i := range d.localPIEs {
		if d.localPIEs[i] == nil {
			return false
		}
	}
	for i := range d.globalPIEs {
		if d.globalPIEs[i] == nil {
			return false
		}
	}
	for i := range d.localVIEs {
		if d.localVIEs[i] == nil {
			return false
		}
	}
	for i := range d.globalVIEs {
		if d.globalVIEs[i] == nil {
			return false
		}
	}
	for i := range d.localVDEs {
		if d.localVDEs[i] == nil {
			return false
		}
	}
	for i := range d.globalVDEs {
		if d.globalVDEs[i] == nil {
			return false
		}
	}
	for i := range d.reductionInternal {
		if d.reductionInternal[i] == nil || d.reductionExternal[i] == nil {
			return false
		}
	}
	return true
}

// MustValidate panics (via chk.Panic) if the descriptor is incomplete —
// the programmer-error case the ambient-stack policy in SPEC_FULL.md
// assigns to chk.Panic rather than a returned error.
func (d *Descriptor) MustValidate() {
	if !d.Validate() {
		chk.Panic("descriptor %q is incomplete: a required callback is unset", d.Name)
	}
}

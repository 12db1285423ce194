// Package problem implements the Problem runtime: DOF layout, derivative
// operator deduplication, the PIE/VIE/derivatives/VDE/reductions/equations
// evaluation pipeline with dirty-flag actualization, and Jacobian assembly.
// It is the Go counterpart of Problem/BaseProblem.h generalized across
// CESDSOL's stationary/transient split (§4.4, §4.5).
package problem

import (
	"github.com/cesdsol/cesdsol/descriptor"
	"github.com/cesdsol/cesdsol/fd"
	"github.com/cesdsol/cesdsol/grid"
	"github.com/cesdsol/cesdsol/la"
	"github.com/cpmech/gosl/chk"
)

// opKey identifies a distinct derivative-operator tuple for deduplication
// across fields (§4.1 "Operator deduplication").
type opKey string

func keyOf(orders []int) opKey {
	b := make([]byte, 0, len(orders)*4)
	for _, o := range orders {
		b = append(b, byte(o), byte(o>>8), byte(o>>16), byte(o>>24))
	}
	return opKey(b)
}

// Problem is the runtime that actualizes a Descriptor over a Grid: it owns
// parameters, field/discrete variables, derivative values, every
// expression's cached values, reductions, equations and (lazily) the
// Jacobian.
type Problem struct {
	Grid        *grid.Grid
	Descriptor  *descriptor.Descriptor
	Discretizer *fd.Discretizer

	// Derivative operator deduplication (§4.1).
	opIDs      []opKey         // index -> key, one CSR matrix per distinct operator
	opIndex    map[opKey]int   // key -> index into opMatrices
	opMatrices []*la.CSRMatrix // distinct differentiation matrices

	// fieldOp[field][localOpIdx] = global op id. The public Jacobian
	// operator-index for localOpIdx l is l+1 (0 is reserved for the
	// field value).
	fieldOp [][]int

	G  int // grid size
	Nc int // continuous equation / field count
	Nd int // discrete equation / variable count
	Np int // parameter count

	parameters []float64
	fields      [][]float64 // [field][point]
	discrete    []float64

	derivatives [][][]float64 // [field][localOp][point]

	globalPIEs []float64
	localPIEs  [][]float64 // [point][index]

	globalVIEs []float64
	localVIEs  [][]float64

	globalVDEs []float64
	localVDEs  [][]float64

	reductions []float64

	equations []float64 // full DOF-length residual vector

	integrationWeights la.Vector

	variablesDirty  bool
	parametersDirty bool

	time float64 // transient problems only; zero for stationary

	jacobian         *jacobianAssembly // lazily built structural analysis
	jacobianM        *la.CSRMatrix
	discreteJacCols  [][]int
	jacPartialsCache *jacPartials
}

// New builds a Problem runtime over g using the descriptor's declared
// field/derivative/discrete layout and the given discretizer.
func New(g *grid.Grid, d *descriptor.Descriptor, disc *fd.Discretizer) *Problem {
	d.MustValidate()
	if g.GetRegionCount() != d.RegionCount {
		chk.Panic("grid region count %d does not match descriptor region count %d", g.GetRegionCount(), d.RegionCount)
	}
	for i, stencil := range disc.StencilSizes {
		if stencil > g.GetDimensionSize(i) {
			chk.Panic("stencil size %d on axis %d exceeds dimension size %d", stencil, i, g.GetDimensionSize(i))
		}
	}

	p := &Problem{
		Grid:        g,
		Descriptor:  d,
		Discretizer: disc,
		G:           g.GetSize(),
		Nc:          d.ContinuousEquationCount,
		Nd:          d.DiscreteEquationCount,
		Np:          d.ParameterCount,
		opIndex:     make(map[opKey]int),
	}

	p.parameters = make([]float64, p.Np)
	p.fields = make([][]float64, p.Nc)
	for f := range p.fields {
		p.fields[f] = make([]float64, p.G)
	}
	p.discrete = make([]float64, p.Nd)

	p.enumerateDerivativeOperators()
	p.constructDerivatives()

	p.globalPIEs = make([]float64, d.GlobalPIECount())
	p.localPIEs = make([][]float64, p.G)
	for i := range p.localPIEs {
		p.localPIEs[i] = make([]float64, d.LocalPIECount())
	}
	p.globalVIEs = make([]float64, d.GlobalVIECount())
	p.localVIEs = make([][]float64, p.G)
	for i := range p.localVIEs {
		p.localVIEs[i] = make([]float64, d.LocalVIECount())
	}
	p.globalVDEs = make([]float64, d.GlobalVDECount())
	p.localVDEs = make([][]float64, p.G)
	for i := range p.localVDEs {
		p.localVDEs[i] = make([]float64, d.LocalVDECount())
	}
	p.reductions = make([]float64, d.ReductionCount())
	p.equations = make([]float64, p.DOFCount())

	p.integrationWeights = disc.GetIntegrationWeightsVector(g)

	p.calculateParameterIndependentExpressions()

	p.variablesDirty = true
	p.parametersDirty = true

	return p
}

// DOFCount is the total degrees-of-freedom: Nc*G continuous-field unknowns
// plus Nd discrete unknowns.
func (p *Problem) DOFCount() int { return p.Nc*p.G + p.Nd }

func (p *Problem) enumerateDerivativeOperators() {
	p.fieldOp = make([][]int, p.Nc)
	for f := 0; f < p.Nc; f++ {
		n := p.Descriptor.DerivativeOperatorCount(f)
		p.fieldOp[f] = make([]int, n)
		for l := 0; l < n; l++ {
			orders := p.Descriptor.GetDerivativeOperator(f, l)
			k := keyOf(orders)
			id, ok := p.opIndex[k]
			if !ok {
				id = len(p.opIDs)
				p.opIDs = append(p.opIDs, k)
				p.opIndex[k] = id
			}
			p.fieldOp[f][l] = id
		}
	}
}


func (p *Problem) constructDerivatives() {
	p.opMatrices = make([]*la.CSRMatrix, len(p.opIDs))
	orderOf := make([][]int, len(p.opIDs))
	for f := 0; f < p.Nc; f++ {
		for l, id := range p.fieldOp[f] {
			if orderOf[id] == nil {
				orderOf[id] = p.Descriptor.GetDerivativeOperator(f, l)
			}
		}
	}
	for id, orders := range orderOf {
		p.opMatrices[id] = p.Discretizer.GetDifferentiationMatrix(p.Grid, orders)
	}
	p.derivatives = make([][][]float64, p.Nc)
	for f := 0; f < p.Nc; f++ {
		p.derivatives[f] = make([][]float64, len(p.fieldOp[f]))
		for l := range p.derivatives[f] {
			p.derivatives[f][l] = make([]float64, p.G)
		}
	}
}

func (p *Problem) calculateParameterIndependentExpressions() {
	gv := &descriptor.GlobalsForPIE{GlobalPIEs: p.globalPIEs}
	for i := 0; i < p.Descriptor.GlobalPIECount(); i++ {
		p.globalPIEs[i] = p.Descriptor.CalculateGlobalPIE(i, gv)
	}
	for pt := 0; pt < p.G; pt++ {
		coords := p.Grid.GetCoordinates(pt)
		lv := &descriptor.LocalsForPIE{Point: coords, PIEValues: p.localPIEs[pt]}
		for i := 0; i < p.Descriptor.LocalPIECount(); i++ {
			p.localPIEs[pt][i] = p.Descriptor.CalculateLocalPIE(i, lv, gv)
		}
	}
}

// GetTrueRegionIndex falls back to region 0 when the descriptor has no
// callback for (equation, region) — §4.4.
func (p *Problem) GetTrueRegionIndex(equation, region int) int {
	if p.Descriptor.HasContinuousEquation(equation, region) {
		return region
	}
	return 0
}

// --- Accessors ---

func (p *Problem) ParameterCount() int { return p.Np }
func (p *Problem) GetParameter(i int) float64 { return p.parameters[i] }
func (p *Problem) SetParameter(i int, v float64) {
	p.parameters[i] = v
	p.parametersDirty = true
}
func (p *Problem) SetParameters(v []float64) {
	copy(p.parameters, v)
	p.parametersDirty = true
}
func (p *Problem) GetParameters() []float64 { return p.parameters }

func (p *Problem) SetVariablesUpdated() { p.variablesDirty = true }

func (p *Problem) SetVariable(field, point int, v float64) {
	p.fields[field][point] = v
	p.variablesDirty = true
}

// SetVariables writes the full DOF vector in field-major / then-discrete
// layout (§4.5's column ordering).
func (p *Problem) SetVariables(x []float64) {
	off := 0
	for f := 0; f < p.Nc; f++ {
		copy(p.fields[f], x[off:off+p.G])
		off += p.G
	}
	copy(p.discrete, x[off:off+p.Nd])
	p.variablesDirty = true
}

func (p *Problem) GetVariable(field, point int) float64 { return p.fields[field][point] }

// GetVariables returns the full DOF vector in the same layout SetVariables
// accepts.
func (p *Problem) GetVariables() []float64 {
	out := make([]float64, p.DOFCount())
	off := 0
	for f := 0; f < p.Nc; f++ {
		copy(out[off:off+p.G], p.fields[f])
		off += p.G
	}
	copy(out[off:], p.discrete)
	return out
}

func (p *Problem) SetTime(t float64) {
	p.time = t
	p.parametersDirty = true
}
func (p *Problem) GetTime() float64 { return p.time }

// GetEquations actualizes and returns the residual vector.
func (p *Problem) GetEquations() []float64 {
	p.Actualize()
	return p.equations
}

// --- Actualization (§4.4) ---

// Actualize recomputes whatever is stale, in the mandated order:
// derivatives (if variables dirty), VIEs (if parameters dirty), then,
// if either was dirty, VDEs -> reductions -> equations.
func (p *Problem) Actualize() {
	recomputeDependents := p.variablesDirty || p.parametersDirty
	if p.variablesDirty {
		p.updateDerivatives()
	}
	if p.parametersDirty {
		p.updateVariableIndependentExpressions()
	}
	if recomputeDependents {
		p.updateVariableDependentExpressions()
		p.updateReductions()
		p.updateEquations()
	}
	p.variablesDirty = false
	p.parametersDirty = false
}

func (p *Problem) updateDerivatives() {
	for f := 0; f < p.Nc; f++ {
		for l, id := range p.fieldOp[f] {
			p.opMatrices[id].MultiplyVector(p.fields[f], p.derivatives[f][l])
		}
	}
}

func (p *Problem) updateVariableIndependentExpressions() {
	gv := &descriptor.GlobalsForVIE{
		GlobalPIEs: p.globalPIEs,
		Parameters: p.parameters,
		GlobalVIEs: p.globalVIEs,
		Time:       p.time,
	}
	for i := 0; i < p.Descriptor.GlobalVIECount(); i++ {
		p.globalVIEs[i] = p.Descriptor.CalculateGlobalVIE(i, gv)
	}
	for pt := 0; pt < p.G; pt++ {
		coords := p.Grid.GetCoordinates(pt)
		lv := &descriptor.LocalsForVIE{Point: coords, PIEValues: p.localPIEs[pt], VIEValues: p.localVIEs[pt]}
		for i := 0; i < p.Descriptor.LocalVIECount(); i++ {
			p.localVIEs[pt][i] = p.Descriptor.CalculateLocalVIE(i, lv, gv)
		}
	}
}

func (p *Problem) fillLocals(pt int) *descriptor.Locals {
	fieldValues := make([]float64, p.Nc)
	derivValues := make([][]float64, p.Nc)
	for f := 0; f < p.Nc; f++ {
		fieldValues[f] = p.fields[f][pt]
		derivValues[f] = make([]float64, len(p.fieldOp[f]))
		for l := range derivValues[f] {
			derivValues[f][l] = p.derivatives[f][l][pt]
		}
	}
	return &descriptor.Locals{
		Point:             p.Grid.GetCoordinates(pt),
		IntegrationWeight: p.integrationWeights[pt],
		FieldValues:       fieldValues,
		DerivativeValues:  derivValues,
		PIEValues:         p.localPIEs[pt],
		VIEValues:         p.localVIEs[pt],
		VDEValues:         p.localVDEs[pt],
	}
}

func (p *Problem) globals() *descriptor.Globals {
	return &descriptor.Globals{
		GlobalPIEs:        p.globalPIEs,
		Parameters:        p.parameters,
		GlobalVIEs:        p.globalVIEs,
		DiscreteVariables: p.discrete,
		GlobalVDEs:        p.globalVDEs,
		Reductions:        p.reductions,
	}
}

func (p *Problem) updateVariableDependentExpressions() {
	g := p.globals()
	for i := 0; i < p.Descriptor.GlobalVDECount(); i++ {
		p.globalVDEs[i] = p.Descriptor.CalculateGlobalVDE(i, g)
	}
	for pt := 0; pt < p.G; pt++ {
		locals := p.fillLocals(pt)
		for i := 0; i < p.Descriptor.LocalVDECount(); i++ {
			p.localVDEs[pt][i] = p.Descriptor.CalculateLocalVDE(i, locals, g)
		}
	}
}

func (p *Problem) updateReductions() {
	g := p.globals()
	sums := make([]float64, p.Descriptor.ReductionCount())
	for pt := 0; pt < p.G; pt++ {
		locals := p.fillLocals(pt)
		for i := range sums {
			sums[i] += p.Descriptor.CalculateReductionPoint(i, locals, g)
		}
	}
	for i := range sums {
		p.reductions[i] = p.Descriptor.CalculateReductionTotal(i, sums[i])
	}
}

func (p *Problem) updateEquations() {
	g := p.globals()
	for e := 0; e < p.Nc; e++ {
		for pt := 0; pt < p.G; pt++ {
			region := p.Grid.GetRegionIndex(pt)
			r := p.GetTrueRegionIndex(e, region)
			locals := p.fillLocals(pt)
			p.equations[e*p.G+pt] = p.Descriptor.CalculateContinuousEquation(e, r, locals, g)
		}
	}
	base := p.Nc * p.G
	for e := 0; e < p.Nd; e++ {
		p.equations[base+e] = p.Descriptor.CalculateDiscreteEquation(e, g)
	}
}

// GetMerit actualizes and returns the configured merit of the residual.
func (p *Problem) GetMerit() float64 {
	p.Actualize()
	return p.Descriptor.CalculateMerit(p.equations)
}

// CalculateSolutionNorm actualizes and returns the configured merit
// function applied to the current variable vector (the `s(x)` of §4.6),
// the same merit function GetMerit applies to the residual.
func (p *Problem) CalculateSolutionNorm() float64 {
	p.Actualize()
	return p.Descriptor.CalculateMerit(p.GetVariables())
}

package problem

import (
	"sort"

	"github.com/cesdsol/cesdsol/descriptor"
	"github.com/cesdsol/cesdsol/la"
)

// jacElement is one contribution of a continuous-equation row to a CSR
// slot: which (field, operator) it came from, the differentiation-matrix
// weight to multiply by, and, after structural analysis, the resolved CSR
// position to scatter into — the Go counterpart of JacobianElement in
// Problem/StationaryProblem.h.
type jacElement struct {
	csrPos   int
	field    int
	operator int
	weight   float64
}

// jacobianAssembly is the cached structural analysis: for every continuous
// row, the list of (field,operator,weight,csrPos) contributions (the
// discrete-row column lists are kept in Problem.discreteJacCols). Built
// once; reused by every updateJacobianValues call (§4.5 "Structural
// analysis (done once)").
type jacobianAssembly struct {
	rows [][]jacElement // length Nc*G continuous rows
}

// buildJacobianStructure performs the one-time structural analysis: for
// each continuous equation row it unions the stencil support of every
// declared (field, operator) dependency plus the direct field-value
// diagonal, sorts and dedups column indices, and allocates/fills the CSR
// skeleton. Discrete rows are dense over all declared dependent field
// columns plus discrete-discrete entries.
func (p *Problem) buildJacobianStructure() {
	n := p.DOFCount()
	rows := make([][]jacElement, p.Nc*p.G)

	type colWeight struct {
		col    int
		field  int
		op     int
		weight float64
	}

	nnzTotal := 0
	rowCols := make([][]colWeight, n)

	for e := 0; e < p.Nc; e++ {
		for pt := 0; pt < p.G; pt++ {
			row := e*p.G + pt
			region := p.Grid.GetRegionIndex(pt)
			r := p.GetTrueRegionIndex(e, region)
			var cols []colWeight
			for f := 0; f < p.Nc; f++ {
				// operator 0: direct field-value dependency.
				if p.Descriptor.HasJacobianComponent(e, f, 0, r) {
					cols = append(cols, colWeight{col: f*p.G + pt, field: f, op: 0, weight: 1})
				}
				for l, id := range p.fieldOp[f] {
					// operator-index convention: 0 is the field value
					// (handled above); 1..k are the field's k declared
					// derivative operators in declaration order.
					op := l + 1
					if !p.Descriptor.HasJacobianComponent(e, f, op, r) {
						continue
					}
					m := p.opMatrices[id]
					for n1 := m.GetRowCount(pt); n1 < m.GetRowCount(pt+1); n1++ {
						col := m.GetColumnIndex(n1)
						cols = append(cols, colWeight{col: f*p.G + col, field: f, op: op, weight: m.GetValue(n1)})
					}
				}
			}
			for v := 0; v < p.Nd; v++ {
				if p.Descriptor.HasJacobianComponent(e, p.Nc+v, 0, r) {
					cols = append(cols, colWeight{col: p.Nc*p.G + v, field: p.Nc + v, op: 0, weight: 1})
				}
			}
			sort.Slice(cols, func(i, j int) bool { return cols[i].col < cols[j].col })
			rowCols[row] = cols
			// dedupe consecutive equal columns, merging weight contributions
			// into separate jacElements (same column can carry several
			// (field,op) pairs when a field contributes via more than one
			// operator whose stencil overlaps, e.g. adjacent grid points).
			var uniqueCols int
			for i, c := range cols {
				if i == 0 || c.col != cols[i-1].col {
					uniqueCols++
				}
				rows[row] = append(rows[row], jacElement{field: c.field, operator: c.op, weight: c.weight})
			}
			nnzTotal += uniqueCols
		}
	}

	// discrete rows: dense over every field column with any jacobian
	// component registered in region 0, plus discrete-discrete entries.
	discreteColCounts := make([]int, p.Nd)
	discreteCols := make([][]int, p.Nd)
	for v := 0; v < p.Nd; v++ {
		eq := p.Nc + v
		var cols []int
		for f := 0; f < p.Nc; f++ {
			if p.Descriptor.HasJacobianComponent(eq, f, 0, 0) {
				for pt := 0; pt < p.G; pt++ {
					cols = append(cols, f*p.G+pt)
				}
			}
		}
		for w := 0; w < p.Nd; w++ {
			if p.Descriptor.HasJacobianComponent(eq, p.Nc+w, 0, 0) {
				cols = append(cols, p.Nc*p.G+w)
			}
		}
		discreteCols[v] = cols
		discreteColCounts[v] = len(cols)
		nnzTotal += len(cols)
	}

	mat := la.NewCSRMatrix(n, n, nnzTotal, 0)
	pos := 0
	for row := 0; row < p.Nc*p.G; row++ {
		mat.SetRowCount(row, pos)
		cols := rowCols[row]
		i := 0
		elemIdx := 0
		for i < len(cols) {
			j := i
			for j < len(cols) && cols[j].col == cols[i].col {
				j++
			}
			mat.SetColumnIndex(pos, cols[i].col)
			for k := i; k < j; k++ {
				e := &rows[row][elemIdx]
				e.csrPos = pos
				elemIdx++
			}
			pos++
			i = j
		}
	}
	for v := 0; v < p.Nd; v++ {
		row := p.Nc*p.G + v
		mat.SetRowCount(row, pos)
		for _, col := range discreteCols[v] {
			mat.SetColumnIndex(pos, col)
			pos++
		}
	}
	mat.SetRowCount(n, pos)

	p.jacobian = &jacobianAssembly{rows: rows}
	p.jacobianM = mat
	p.discreteJacCols = discreteCols
}

// GetJacobian actualizes the problem, builds the structural analysis on
// first use, and returns the freshly re-assembled Jacobian CSR matrix.
func (p *Problem) GetJacobian() *la.CSRMatrix {
	p.Actualize()
	if p.jacobian == nil {
		p.buildJacobianStructure()
	}
	p.updateExpressionJacobians()
	p.updateJacobianValues()
	return p.jacobianM
}

// jacPartials caches the per-point chain-rule partials (VDE and reduction
// Jacobians wrt each field/operator dependency) that equation Jacobian
// callbacks read through LocalsForJacobian/GlobalsForJacobian (§4.5:
// "Reduction Jacobians contribute indirectly via the chain rule").
type jacPartials struct {
	lvde       [][]map[descriptor.JKey]float64 // [point][lvdeIdx]
	reduction  [][]map[descriptor.JKey]float64 // [point][reductionIdx]
	gvde       map[int]map[int]float64         // [gvdeIdx][discreteVarIdx]
	reductionE []float64                       // external derivative at the stored reduction value
}

func (p *Problem) updateExpressionJacobians() {
	nLVDE := p.Descriptor.LocalVDECount()
	nGVDE := p.Descriptor.GlobalVDECount()
	nRed := p.Descriptor.ReductionCount()

	jp := &jacPartials{
		lvde:       make([][]map[descriptor.JKey]float64, p.G),
		reduction:  make([][]map[descriptor.JKey]float64, p.G),
		gvde:       make(map[int]map[int]float64, nGVDE),
		reductionE: make([]float64, nRed),
	}

	gJac := &descriptor.GlobalsForJacobian{Globals: *p.globals(), GVDEJacobian: map[int]map[int]float64{}}
	for i := 0; i < nGVDE; i++ {
		m := make(map[int]float64)
		for v := 0; v < p.Nd; v++ {
			if p.Descriptor.HasGVDEJacobianComponent(i, v) {
				m[v] = p.Descriptor.CalculateGVDEJacobianComponent(i, v, gJac)
			}
		}
		jp.gvde[i] = m
	}

	for pt := 0; pt < p.G; pt++ {
		locals := p.fillLocals(pt)
		ljac := &descriptor.LocalsForJacobian{Locals: *locals, LVDEJacobian: map[int]map[descriptor.JKey]float64{}, ReductionJacobian: map[int]map[descriptor.JKey]float64{}}

		lvdeMap := make([]map[descriptor.JKey]float64, nLVDE)
		for i := 0; i < nLVDE; i++ {
			m := make(map[descriptor.JKey]float64)
			for f := 0; f < p.Nc; f++ {
				if p.Descriptor.HasLVDEJacobianComponent(i, f, 0) {
					m[descriptor.JKey{Field: f, Operator: 0}] = p.Descriptor.CalculateLVDEJacobianComponent(i, f, 0, ljac, gJac)
				}
				for l := range p.fieldOp[f] {
					op := l + 1
					if p.Descriptor.HasLVDEJacobianComponent(i, f, op) {
						m[descriptor.JKey{Field: f, Operator: op}] = p.Descriptor.CalculateLVDEJacobianComponent(i, f, op, ljac, gJac)
					}
				}
			}
			lvdeMap[i] = m
		}
		jp.lvde[pt] = lvdeMap

		redMap := make([]map[descriptor.JKey]float64, nRed)
		for i := 0; i < nRed; i++ {
			m := make(map[descriptor.JKey]float64)
			for f := 0; f < p.Nc; f++ {
				if p.Descriptor.HasReductionJacobianComponent(i, f, 0) {
					m[descriptor.JKey{Field: f, Operator: 0}] = p.Descriptor.CalculateReductionInternalJacobianComponent(i, f, 0, ljac, gJac)
				}
				for l := range p.fieldOp[f] {
					op := l + 1
					if p.Descriptor.HasReductionJacobianComponent(i, f, op) {
						m[descriptor.JKey{Field: f, Operator: op}] = p.Descriptor.CalculateReductionInternalJacobianComponent(i, f, op, ljac, gJac)
					}
				}
			}
			redMap[i] = m
		}
		jp.reduction[pt] = redMap
	}

	for i := 0; i < nRed; i++ {
		jp.reductionE[i] = p.Descriptor.CalculateReductionExternalJacobianComponent(i, gJac)
	}

	p.jacPartialsCache = jp
}

func (p *Problem) updateJacobianValues() {
	p.jacobianM.Nullify()
	g := p.globals()
	gJac := &descriptor.GlobalsForJacobian{Globals: *g, GVDEJacobian: p.jacPartialsCache.gvde}

	for e := 0; e < p.Nc; e++ {
		for pt := 0; pt < p.G; pt++ {
			region := p.Grid.GetRegionIndex(pt)
			r := p.GetTrueRegionIndex(e, region)
			row := e*p.G + pt
			elems := p.jacobian.rows[row]
			if len(elems) == 0 {
				continue
			}
			locals := p.fillLocals(pt)
			ljac := &descriptor.LocalsForJacobian{
				Locals:            *locals,
				LVDEJacobian:      map[int]map[descriptor.JKey]float64{},
				ReductionJacobian: map[int]map[descriptor.JKey]float64{},
			}
			for i, m := range p.jacPartialsCache.lvde[pt] {
				ljac.LVDEJacobian[i] = m
			}
			for i, m := range p.jacPartialsCache.reduction[pt] {
				ljac.ReductionJacobian[i] = m
			}
			for _, el := range elems {
				field, op := el.field, el.operator
				if field >= p.Nc {
					if p.Descriptor.HasJacobianComponent(e, field, 0, r) {
						v := p.Descriptor.CalculateJacobianComponent(e, field, 0, r, ljac, gJac)
						p.jacobianM.AddValue(el.csrPos, v)
					}
					continue
				}
				if !p.Descriptor.HasJacobianComponent(e, field, op, r) {
					continue
				}
				v := p.Descriptor.CalculateJacobianComponent(e, field, op, r, ljac, gJac)
				p.jacobianM.AddValue(el.csrPos, el.weight*v)
			}
		}
	}

	emptyLocals := &descriptor.LocalsForJacobian{}
	for v := 0; v < p.Nd; v++ {
		eq := p.Nc + v
		row := p.Nc*p.G + v
		start := p.jacobianM.GetRowCount(row)
		cols := p.discreteJacCols[v]
		for idx, col := range cols {
			if col < p.Nc*p.G {
				field := col / p.G
				pt := col % p.G
				if p.Descriptor.HasJacobianComponent(eq, field, 0, 0) {
					locals := p.fillLocals(pt)
					ljac := &descriptor.LocalsForJacobian{Locals: *locals}
					val := p.Descriptor.CalculateJacobianComponent(eq, field, 0, 0, ljac, gJac)
					p.jacobianM.AddValue(start+idx, val)
				}
				continue
			}
			dep := p.Nc + (col - p.Nc*p.G)
			if p.Descriptor.HasJacobianComponent(eq, dep, 0, 0) {
				val := p.Descriptor.CalculateJacobianComponent(eq, dep, 0, 0, emptyLocals, gJac)
				p.jacobianM.AddValue(start+idx, val)
			}
		}
	}
}

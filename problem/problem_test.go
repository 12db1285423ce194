package problem

import (
	"math"
	"testing"

	"github.com/cesdsol/cesdsol/descriptor"
	"github.com/cesdsol/cesdsol/fd"
	"github.com/cesdsol/cesdsol/grid"
	"github.com/cpmech/gosl/chk"
)

func identityDescriptor() *descriptor.Descriptor {
	d := descriptor.New("Identity", 1, 3, [][][]int{{}}, 0, 0)
	eq := func(l *descriptor.Locals, g *descriptor.Globals) float64 { return l.FieldValues[0] }
	jac := func(l *descriptor.LocalsForJacobian, g *descriptor.GlobalsForJacobian) float64 { return 1 }
	for r := 0; r < 3; r++ {
		d.SetContinuousEquation(0, r, eq)
		d.SetJacobianComponent(0, 0, 0, r, jac)
	}
	d.MustValidate()
	return d
}

func TestActualizeEchoesFieldValuesAsEquations(tst *testing.T) {
	chk.PrintTitle("ActualizeEchoesFieldValuesAsEquations")
	g := grid.NewGrid([]grid.Axis{grid.NewAxis([]float64{0, 1, 2})})
	disc := fd.NewDiscretizer(1, 3)
	p := New(g, identityDescriptor(), disc)

	p.SetVariables([]float64{2, 3, 5})
	chk.Array(tst, "equations == field values", 1e-15, p.GetEquations(), []float64{2, 3, 5})
	chk.Scalar(tst, "merit is Norm2/size of equations", 1e-12, p.GetMerit(), math.Sqrt(4.0+9.0+25.0)/3.0)
}

func TestJacobianIdentityForValueOnlyEquation(tst *testing.T) {
	chk.PrintTitle("JacobianIdentityForValueOnlyEquation")
	g := grid.NewGrid([]grid.Axis{grid.NewAxis([]float64{0, 1, 2})})
	disc := fd.NewDiscretizer(1, 3)
	p := New(g, identityDescriptor(), disc)
	p.SetVariables([]float64{2, 3, 5})

	jac := p.GetJacobian()
	chk.Array(tst, "identity jacobian", 1e-15, jac.ToDense(), []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

func TestJacobianMatchesDifferentiationMatrixForDerivativeEquation(tst *testing.T) {
	chk.PrintTitle("JacobianMatchesDifferentiationMatrixForDerivativeEquation")
	g := grid.NewGrid([]grid.Axis{grid.NewAxis([]float64{0, 1, 2, 3, 4})})
	disc := fd.NewDiscretizer(1, 3)

	d := descriptor.New("Derivative", 1, 3, [][][]int{{{1}}}, 0, 0)
	eq := func(l *descriptor.Locals, g *descriptor.Globals) float64 { return l.DerivativeValues[0][0] }
	jac := func(l *descriptor.LocalsForJacobian, g *descriptor.GlobalsForJacobian) float64 { return 1 }
	for r := 0; r < 3; r++ {
		d.SetContinuousEquation(0, r, eq)
		// operator-index 1 is the field's first (and only) declared
		// derivative operator; operator-index 0 (the field value) is
		// deliberately left unregistered so this isolates the offset.
		d.SetJacobianComponent(0, 0, 1, r, jac)
	}
	d.MustValidate()

	p := New(g, d, disc)
	p.SetVariables([]float64{0, 1, 4, 9, 16})

	expected := disc.GetDifferentiationMatrix(g, []int{1})
	got := p.GetJacobian()
	chk.Array(tst, "jacobian == differentiation matrix", 1e-10, got.ToDense(), expected.ToDense())
}

func TestDOFCountAndParameterRoundtrip(tst *testing.T) {
	chk.PrintTitle("DOFCountAndParameterRoundtrip")
	g := grid.NewGrid([]grid.Axis{grid.NewAxis([]float64{0, 1, 2})})
	disc := fd.NewDiscretizer(1, 3)
	p := New(g, identityDescriptor(), disc)
	chk.IntAssert(p.DOFCount(), 3)
	chk.IntAssert(p.ParameterCount(), 0)

	d2 := descriptor.New("WithParam", 1, 3, [][][]int{{}}, 2, 0)
	d2.SetContinuousEquation(0, 0, func(l *descriptor.Locals, g *descriptor.Globals) float64 { return l.FieldValues[0] })
	d2.SetJacobianComponent(0, 0, 0, 0, func(l *descriptor.LocalsForJacobian, g *descriptor.GlobalsForJacobian) float64 { return 1 })
	d2.MustValidate()
	g2 := grid.NewGrid([]grid.Axis{grid.NewAxis([]float64{0, 1, 2})})
	p2 := New(g2, d2, disc)
	p2.SetParameters([]float64{1.5, -2})
	chk.Array(tst, "parameters", 1e-15, p2.GetParameters(), []float64{1.5, -2})
}

func TestNewRejectsStencilLargerThanDimension(tst *testing.T) {
	chk.PrintTitle("NewRejectsStencilLargerThanDimension")
	defer func() {
		if recover() == nil {
			tst.Fatal("expected a panic for a stencil larger than the axis")
		}
	}()
	g := grid.NewGrid([]grid.Axis{grid.NewAxis([]float64{0, 1, 2})})
	disc := fd.NewDiscretizer(1, 5)
	New(g, identityDescriptor(), disc)
}

package cp

import "fmt"

// All expression propagation in this file is the safe, saturating variant:
// bounds arithmetic goes through CapAdd/CapSub/CapProd so that values at the
// edge of int64 clamp instead of wrapping.

// affineExpr is a*e+b over a non-variable sub-expression; the variable
// counterpart is affineView.
type affineExpr struct {
	baseIntExpr
	e    IntExpr
	a, b int64
}

func newAffineExpr(s *Solver, e IntExpr, a, b int64) *affineExpr {
	shp := shapeScaled
	if a == 1 || a == -1 {
		shp = shapeShifted
	}
	if a == -1 && b == 0 {
		shp = shapeOpp
	}
	x := &affineExpr{e: e, a: a, b: b}
	x.init(s, x, shp, e)
	return x
}

func (x *affineExpr) Min() int64 {
	if x.a > 0 {
		return CapAdd(CapProd(x.a, x.e.Min()), x.b)
	}
	return CapAdd(CapProd(x.a, x.e.Max()), x.b)
}

func (x *affineExpr) Max() int64 {
	if x.a > 0 {
		return CapAdd(CapProd(x.a, x.e.Max()), x.b)
	}
	return CapAdd(CapProd(x.a, x.e.Min()), x.b)
}

func (x *affineExpr) SetMin(m int64) {
	if x.a > 0 {
		x.e.SetMin(PosIntDivUp(CapSub(m, x.b), x.a))
	} else {
		x.e.SetMax(PosIntDivDown(CapSub(x.b, m), -x.a))
	}
}

func (x *affineExpr) SetMax(m int64) {
	if x.a > 0 {
		x.e.SetMax(PosIntDivDown(CapSub(m, x.b), x.a))
	} else {
		x.e.SetMin(PosIntDivUp(CapSub(x.b, m), -x.a))
	}
}

func (x *affineExpr) String() string {
	switch {
	case x.a == 1:
		return fmt.Sprintf("(%s + %d)", x.e, x.b)
	case x.b == 0:
		return fmt.Sprintf("(%d * %s)", x.a, x.e)
	default:
		return fmt.Sprintf("(%d * %s + %d)", x.a, x.e, x.b)
	}
}

// makeAffine returns a*e+b, folding constants and nested affine layers.
func (s *Solver) makeAffine(e IntExpr, a, b int64) IntExpr {
	if a == 0 {
		return s.MakeIntConst(b)
	}
	if v, ok := e.(IntVar); ok {
		return makeAffineView(v, a, b)
	}
	if ae, ok := e.(*affineExpr); ok {
		return s.makeAffine(ae.e, CapProd(a, ae.a), CapAdd(CapProd(a, ae.b), b))
	}
	if a == 1 && b == 0 {
		return e
	}
	return newAffineExpr(s, e, a, b)
}

// MakeSumCst returns e + c.
func (s *Solver) MakeSumCst(e IntExpr, c int64) IntExpr {
	return s.makeAffine(e, 1, c)
}

// MakeOpposite returns -e.
func (s *Solver) MakeOpposite(e IntExpr) IntExpr {
	return s.makeAffine(e, -1, 0)
}

// MakeProdCst returns e * c.
func (s *Solver) MakeProdCst(e IntExpr, c int64) IntExpr {
	return s.makeAffine(e, c, 0)
}

// MakeDifferenceCst returns c - e.
func (s *Solver) MakeDifferenceCst(c int64, e IntExpr) IntExpr {
	return s.makeAffine(e, -1, c)
}

// plusIntExpr is left + right.
type plusIntExpr struct {
	baseIntExpr
	left, right IntExpr
}

func (e *plusIntExpr) Min() int64 {
	return CapAdd(e.left.Min(), e.right.Min())
}

func (e *plusIntExpr) Max() int64 {
	return CapAdd(e.left.Max(), e.right.Max())
}

func (e *plusIntExpr) SetMin(m int64) {
	e.left.SetMin(CapSub(m, e.right.Max()))
	e.right.SetMin(CapSub(m, e.left.Max()))
}

func (e *plusIntExpr) SetMax(m int64) {
	e.left.SetMax(CapSub(m, e.right.Min()))
	e.right.SetMax(CapSub(m, e.left.Min()))
}

func (e *plusIntExpr) String() string {
	return fmt.Sprintf("(%s + %s)", e.left, e.right)
}

// MakeSum returns left + right.
func (s *Solver) MakeSum(left, right IntExpr) IntExpr {
	if right.shape() == shapeConst {
		return s.MakeSumCst(left, right.Min())
	}
	if left.shape() == shapeConst {
		return s.MakeSumCst(right, left.Min())
	}
	e := &plusIntExpr{left: left, right: right}
	e.init(s, e, shapeSum, left, right)
	return e
}

// subIntExpr is left - right.
type subIntExpr struct {
	baseIntExpr
	left, right IntExpr
}

func (e *subIntExpr) Min() int64 {
	return CapSub(e.left.Min(), e.right.Max())
}

func (e *subIntExpr) Max() int64 {
	return CapSub(e.left.Max(), e.right.Min())
}

func (e *subIntExpr) SetMin(m int64) {
	e.left.SetMin(CapAdd(m, e.right.Min()))
	e.right.SetMax(CapSub(e.left.Max(), m))
}

func (e *subIntExpr) SetMax(m int64) {
	e.left.SetMax(CapAdd(m, e.right.Max()))
	e.right.SetMin(CapSub(e.left.Min(), m))
}

func (e *subIntExpr) String() string {
	return fmt.Sprintf("(%s - %s)", e.left, e.right)
}

// MakeDifference returns left - right.
func (s *Solver) MakeDifference(left, right IntExpr) IntExpr {
	if right.shape() == shapeConst {
		return s.MakeSumCst(left, CapOpp(right.Min()))
	}
	if left.shape() == shapeConst {
		return s.MakeDifferenceCst(left.Min(), right)
	}
	e := &subIntExpr{left: left, right: right}
	e.init(s, e, shapeGeneric, left, right)
	return e
}

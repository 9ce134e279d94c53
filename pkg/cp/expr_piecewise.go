package cp

import "fmt"

// convexPiecewiseExpr is the classic earliness/tardiness cost:
//
//	cost(x) = earlyCost * max(0, earlyDate - x) + lateCost * max(0, x - lateDate)
//
// with earlyDate <= lateDate and non-negative slopes. The cost is zero on
// [earlyDate, lateDate] and grows linearly outside it.
type convexPiecewiseExpr struct {
	baseIntExpr
	e         IntExpr
	earlyCost int64
	earlyDate int64
	lateDate  int64
	lateCost  int64
}

func (x *convexPiecewiseExpr) cost(v int64) int64 {
	switch {
	case v < x.earlyDate:
		return CapProd(x.earlyCost, x.earlyDate-v)
	case v > x.lateDate:
		return CapProd(x.lateCost, v-x.lateDate)
	default:
		return 0
	}
}

func (x *convexPiecewiseExpr) Min() int64 {
	emin, emax := x.e.Min(), x.e.Max()
	if emax < x.earlyDate {
		return x.cost(emax)
	}
	if emin > x.lateDate {
		return x.cost(emin)
	}
	return 0
}

func (x *convexPiecewiseExpr) Max() int64 {
	a, b := x.cost(x.e.Min()), x.cost(x.e.Max())
	if a > b {
		return a
	}
	return b
}

// SetMin cannot prune: the cost is not monotone in x, so a lower bound on
// the cost only splits the domain. Infeasibility still fails.
func (x *convexPiecewiseExpr) SetMin(m int64) {
	if m > x.Max() {
		x.s.Fail()
	}
}

func (x *convexPiecewiseExpr) SetMax(m int64) {
	if m < 0 {
		x.s.Fail()
	}
	if x.earlyCost > 0 {
		x.e.SetMin(CapSub(x.earlyDate, m/x.earlyCost))
	}
	if x.lateCost > 0 {
		x.e.SetMax(CapAdd(x.lateDate, m/x.lateCost))
	}
}

func (x *convexPiecewiseExpr) String() string {
	return fmt.Sprintf("piecewise(%s, ec=%d, ed=%d, ld=%d, lc=%d)",
		x.e, x.earlyCost, x.earlyDate, x.lateDate, x.lateCost)
}

// MakeConvexPiecewiseExpr returns the earliness/tardiness cost of e.
func (s *Solver) MakeConvexPiecewiseExpr(e IntExpr, earlyCost, earlyDate, lateDate, lateCost int64) IntExpr {
	if earlyCost < 0 || lateCost < 0 || earlyDate > lateDate {
		panic("cp: MakeConvexPiecewiseExpr with invalid parameters")
	}
	x := &convexPiecewiseExpr{
		e:         e,
		earlyCost: earlyCost,
		earlyDate: earlyDate,
		lateDate:  lateDate,
		lateCost:  lateCost,
	}
	x.init(s, x, shapeGeneric, e)
	return x
}

// semiContinuousExpr models a fixed activation charge plus a linear cost:
//
//	cost(x) = 0 if x <= 0, fixedCharge + step*x otherwise
//
// with fixedCharge >= 0 and step > 0.
type semiContinuousExpr struct {
	baseIntExpr
	e           IntExpr
	fixedCharge int64
	step        int64
}

func (x *semiContinuousExpr) cost(v int64) int64 {
	if v <= 0 {
		return 0
	}
	return CapAdd(x.fixedCharge, CapProd(x.step, v))
}

func (x *semiContinuousExpr) Min() int64 { return x.cost(x.e.Min()) }

func (x *semiContinuousExpr) Max() int64 { return x.cost(x.e.Max()) }

func (x *semiContinuousExpr) SetMin(m int64) {
	if m <= 0 {
		return
	}
	// a positive cost requires activation
	lo := PosIntDivUp(CapSub(m, x.fixedCharge), x.step)
	if lo < 1 {
		lo = 1
	}
	x.e.SetMin(lo)
}

func (x *semiContinuousExpr) SetMax(m int64) {
	switch {
	case m < 0:
		x.s.Fail()
	case m < x.cost(1):
		// cannot afford activation
		x.e.SetMax(0)
	default:
		x.e.SetMax(PosIntDivDown(CapSub(m, x.fixedCharge), x.step))
	}
}

func (x *semiContinuousExpr) String() string {
	return fmt.Sprintf("semicont(%s, fc=%d, step=%d)", x.e, x.fixedCharge, x.step)
}

// MakeSemiContinuousExpr returns the semi-continuous cost of e.
func (s *Solver) MakeSemiContinuousExpr(e IntExpr, fixedCharge, step int64) IntExpr {
	if fixedCharge < 0 || step <= 0 {
		panic("cp: MakeSemiContinuousExpr with invalid parameters")
	}
	x := &semiContinuousExpr{e: e, fixedCharge: fixedCharge, step: step}
	x.init(s, x, shapeGeneric, e)
	return x
}

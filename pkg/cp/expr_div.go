package cp

import "fmt"

// Integer division here is machine division: the quotient truncates toward
// zero. Propagation therefore rounds away from zero when pushing lower
// bounds onto the dividend and toward zero for upper bounds, which is the
// sound direction (no feasible dividend value is ever pruned).

// divPosCstExpr is e / c for a constant c > 0.
type divPosCstExpr struct {
	baseIntExpr
	e IntExpr
	c int64
}

func (x *divPosCstExpr) Min() int64 { return x.e.Min() / x.c }

func (x *divPosCstExpr) Max() int64 { return x.e.Max() / x.c }

func (x *divPosCstExpr) SetMin(m int64) {
	if m > 0 {
		x.e.SetMin(CapProd(m, x.c))
	} else {
		x.e.SetMin(CapAdd(CapProd(m, x.c), 1-x.c))
	}
}

func (x *divPosCstExpr) SetMax(m int64) {
	if m >= 0 {
		x.e.SetMax(CapAdd(CapProd(m, x.c), x.c-1))
	} else {
		x.e.SetMax(CapProd(m, x.c))
	}
}

func (x *divPosCstExpr) String() string {
	return fmt.Sprintf("(%s div %d)", x.e, x.c)
}

// MakeDivCst returns e / c. c must be non-zero; a zero divisor is a bug in
// the model, not a search failure.
func (s *Solver) MakeDivCst(e IntExpr, c int64) IntExpr {
	switch {
	case c == 0:
		panic("cp: MakeDivCst with zero divisor")
	case c < 0:
		// e/c == (-e)/(-c) under truncating division
		return s.MakeDivCst(s.MakeOpposite(e), -c)
	case c == 1:
		return e
	}
	x := &divPosCstExpr{e: e, c: c}
	x.init(s, x, shapeGeneric, e)
	return x
}

// divRangeBounds returns the quotient bounds of [nmin, nmax] / [dmin, dmax]
// for dmin >= 1.
func divRangeBounds(nmin, nmax, dmin, dmax int64) (int64, int64) {
	qmin := nmin / dmin
	if nmin >= 0 {
		qmin = nmin / dmax
	}
	qmax := nmax / dmax
	if nmax >= 0 {
		qmax = nmax / dmin
	}
	return qmin, qmax
}

// divPosSetMin enforces num/denom >= m for denom >= 1.
func divPosSetMin(num, denom IntExpr, m int64) {
	if m > 0 {
		num.SetMin(CapProd(m, denom.Min()))
		denom.SetMax(num.Max() / m)
	} else {
		dmax := denom.Max()
		num.SetMin(CapAdd(CapProd(m, dmax), 1-dmax))
	}
}

// divPosSetMax enforces num/denom <= m for denom >= 1.
func divPosSetMax(num, denom IntExpr, m int64) {
	if m >= 0 {
		num.SetMax(CapSub(CapProd(CapAdd(m, 1), denom.Max()), 1))
	} else {
		num.SetMax(CapProd(m, denom.Min()))
		denom.SetMax(num.Min() / m)
	}
}

// divPosIntExpr is num / denom with denom known strictly positive.
type divPosIntExpr struct {
	baseIntExpr
	num, denom IntExpr
}

func (x *divPosIntExpr) Min() int64 {
	qmin, _ := divRangeBounds(x.num.Min(), x.num.Max(), x.denom.Min(), x.denom.Max())
	return qmin
}

func (x *divPosIntExpr) Max() int64 {
	_, qmax := divRangeBounds(x.num.Min(), x.num.Max(), x.denom.Min(), x.denom.Max())
	return qmax
}

func (x *divPosIntExpr) SetMin(m int64) {
	if m > x.Min() {
		divPosSetMin(x.num, x.denom, m)
	}
}

func (x *divPosIntExpr) SetMax(m int64) {
	if m < x.Max() {
		divPosSetMax(x.num, x.denom, m)
	}
}

func (x *divPosIntExpr) String() string {
	return fmt.Sprintf("(%s div %s)", x.num, x.denom)
}

// divIntExpr is num / denom for a denominator whose sign is not yet known.
// Zero is removed from the denominator at construction; propagation onto
// the children waits until the denominator's sign is resolved, while Min
// and Max case-split on the positive and negative parts.
type divIntExpr struct {
	baseIntExpr
	num      IntExpr
	denom    IntVar
	oppNum   IntExpr
	oppDenom IntExpr
}

func (x *divIntExpr) bounds() (int64, int64) {
	nmin, nmax := x.num.Min(), x.num.Max()
	dmin, dmax := x.denom.Min(), x.denom.Max()
	first := true
	var qmin, qmax int64
	if dmax >= 1 {
		pl := dmin
		if pl < 1 {
			pl = 1
		}
		qmin, qmax = divRangeBounds(nmin, nmax, pl, dmax)
		first = false
	}
	if dmin <= -1 {
		nu := dmax
		if nu > -1 {
			nu = -1
		}
		// x/y == (-x)/(-y): negate both ranges
		l, u := divRangeBounds(CapOpp(nmax), CapOpp(nmin), -nu, -dmin)
		if first {
			qmin, qmax = l, u
		} else {
			if l < qmin {
				qmin = l
			}
			if u > qmax {
				qmax = u
			}
		}
	}
	return qmin, qmax
}

func (x *divIntExpr) Min() int64 {
	qmin, _ := x.bounds()
	return qmin
}

func (x *divIntExpr) Max() int64 {
	_, qmax := x.bounds()
	return qmax
}

func (x *divIntExpr) SetMin(m int64) {
	switch {
	case x.denom.Min() >= 1:
		divPosSetMin(x.num, x.denom, m)
	case x.denom.Max() <= -1:
		divPosSetMin(x.oppNum, x.oppDenom, m)
	}
}

func (x *divIntExpr) SetMax(m int64) {
	switch {
	case x.denom.Min() >= 1:
		divPosSetMax(x.num, x.denom, m)
	case x.denom.Max() <= -1:
		divPosSetMax(x.oppNum, x.oppDenom, m)
	}
}

func (x *divIntExpr) String() string {
	return fmt.Sprintf("(%s div %s)", x.num, x.denom)
}

// MakeDiv returns num / denom. A denominator that may be zero has zero
// removed from its domain up front.
func (s *Solver) MakeDiv(num, denom IntExpr) IntExpr {
	if denom.shape() == shapeConst {
		return s.MakeDivCst(num, denom.Min())
	}
	if denom.Min() > 0 {
		x := &divPosIntExpr{num: num, denom: denom}
		x.init(s, x, shapeGeneric, num, denom)
		return x
	}
	if denom.Max() < 0 {
		x := &divPosIntExpr{num: s.MakeOpposite(num), denom: s.MakeOpposite(denom)}
		x.init(s, x, shapeGeneric, num, denom)
		return x
	}
	dv := denom.Var()
	dv.RemoveValue(0)
	x := &divIntExpr{num: num, denom: dv}
	x.init(s, x, shapeGeneric, num, dv)
	x.oppNum = s.MakeOpposite(num)
	x.oppDenom = s.MakeOpposite(dv)
	return x
}

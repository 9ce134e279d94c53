package cp

import "fmt"

// Product propagation splits on the sign of each operand's current range:
// strictly non-negative, strictly non-positive, or straddling zero. The nine
// combinations reduce to three canonical cases through negation symmetry,
// using opposite views of the operands.

// setPosPosMin enforces left*right >= m for left, right >= 0.
func setPosPosMin(left, right IntExpr, m int64) {
	lmax, rmax := left.Max(), right.Max()
	if m > CapProd(lmax, rmax) {
		left.Solver().Fail()
	}
	if m > CapProd(left.Min(), right.Min()) && m > 0 {
		if rmax != 0 {
			left.SetMin(PosIntDivUp(m, rmax))
		}
		if lmax != 0 {
			right.SetMin(PosIntDivUp(m, lmax))
		}
	}
}

// setPosPosMax enforces left*right <= m for left, right >= 0.
func setPosPosMax(left, right IntExpr, m int64) {
	lmin, rmin := left.Min(), right.Min()
	if m < CapProd(lmin, rmin) {
		left.Solver().Fail()
	}
	if m < CapProd(left.Max(), right.Max()) {
		if rmin > 0 {
			left.SetMax(PosIntDivDown(m, rmin))
		}
		if lmin > 0 {
			right.SetMax(PosIntDivDown(m, lmin))
		}
	}
}

// setPosGenMin enforces left*right >= m for left >= 0 and right straddling
// zero. Only a strictly positive m prunes anything: with right free to be
// non-negative, any left admits a product >= 0.
func setPosGenMin(left, right IntExpr, m int64) {
	lmax, rmax := left.Max(), right.Max()
	if m > CapProd(lmax, rmax) {
		left.Solver().Fail()
	}
	if m > 0 {
		left.SetMin(PosIntDivUp(m, rmax))
		right.SetMin(PosIntDivUp(m, lmax))
	}
}

// setGenGenMin enforces left*right >= m when both operands straddle zero.
// A positive product must come from the positive*positive or the
// negative*negative corner; pruning happens once one corner is ruled out.
func setGenGenMin(left, right IntExpr, m int64) {
	lmin, lmax := left.Min(), left.Max()
	rmin, rmax := right.Min(), right.Max()
	negneg := CapProd(lmin, rmin)
	pospos := CapProd(lmax, rmax)
	if m > negneg && m > pospos {
		left.Solver().Fail()
	}
	if m > negneg {
		left.SetMin(PosIntDivUp(m, rmax))
		right.SetMin(PosIntDivUp(m, lmax))
	} else if m > pospos {
		left.SetMax(-PosIntDivUp(m, -rmin))
		right.SetMax(-PosIntDivUp(m, -lmin))
	}
}

// timesSetMin dispatches left*right >= m onto the canonical cases. oppLeft
// and oppRight are opposite views of left and right.
func timesSetMin(left, right, oppLeft, oppRight IntExpr, m int64) {
	switch {
	case left.Min() >= 0:
		switch {
		case right.Min() >= 0:
			setPosPosMin(left, right, m)
		case right.Max() <= 0:
			// left*right >= m  <=>  left*(-right) <= -m
			setPosPosMax(left, oppRight, CapOpp(m))
		default:
			setPosGenMin(left, right, m)
		}
	case left.Max() <= 0:
		switch {
		case right.Min() >= 0:
			setPosPosMax(oppLeft, right, CapOpp(m))
		case right.Max() <= 0:
			setPosPosMin(oppLeft, oppRight, m)
		default:
			setPosGenMin(oppRight, oppLeft, m)
		}
	default:
		switch {
		case right.Min() >= 0:
			setPosGenMin(right, left, m)
		case right.Max() <= 0:
			setPosGenMin(oppRight, oppLeft, m)
		default:
			setGenGenMin(left, right, m)
		}
	}
}

// timesIntExpr is left * right.
type timesIntExpr struct {
	baseIntExpr
	left, right IntExpr
	// opposite views used by the sign-case dispatch
	oppLeft, oppRight IntExpr
}

func (e *timesIntExpr) Min() int64 {
	return timesBounds(e.left, e.right, true)
}

func (e *timesIntExpr) Max() int64 {
	return timesBounds(e.left, e.right, false)
}

// timesBounds returns the min (or max) of the four corner products.
func timesBounds(left, right IntExpr, wantMin bool) int64 {
	lmin, lmax := left.Min(), left.Max()
	rmin, rmax := right.Min(), right.Max()
	best := CapProd(lmin, rmin)
	for _, p := range []int64{CapProd(lmin, rmax), CapProd(lmax, rmin), CapProd(lmax, rmax)} {
		if wantMin && p < best || !wantMin && p > best {
			best = p
		}
	}
	return best
}

func (e *timesIntExpr) SetMin(m int64) {
	timesSetMin(e.left, e.right, e.oppLeft, e.oppRight, m)
}

func (e *timesIntExpr) SetMax(m int64) {
	// left*right <= m  <=>  (-left)*right >= -m
	timesSetMin(e.oppLeft, e.right, e.left, e.oppRight, CapOpp(m))
}

func (e *timesIntExpr) String() string {
	return fmt.Sprintf("(%s * %s)", e.left, e.right)
}

// MakeProd returns left * right.
func (s *Solver) MakeProd(left, right IntExpr) IntExpr {
	if right.shape() == shapeConst {
		return s.MakeProdCst(left, right.Min())
	}
	if left.shape() == shapeConst {
		return s.MakeProdCst(right, left.Min())
	}
	e := &timesIntExpr{left: left, right: right}
	e.init(s, e, shapeProduct, left, right)
	e.oppLeft = s.MakeOpposite(left)
	e.oppRight = s.MakeOpposite(right)
	return e
}

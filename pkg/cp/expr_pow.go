package cp

import (
	"fmt"
	"math"
)

// intAbs is |e|.
type intAbs struct {
	baseIntExpr
	e IntExpr
}

func (x *intAbs) Min() int64 {
	emin, emax := x.e.Min(), x.e.Max()
	switch {
	case emin >= 0:
		return emin
	case emax <= 0:
		return CapOpp(emax)
	default:
		return 0
	}
}

func (x *intAbs) Max() int64 {
	emin, emax := x.e.Min(), x.e.Max()
	if a := CapOpp(emin); a > emax {
		return a
	}
	return emax
}

func (x *intAbs) SetMin(m int64) {
	if m <= 0 {
		return
	}
	emin, emax := x.e.Min(), x.e.Max()
	switch {
	case emin >= 0:
		x.e.SetMin(m)
	case emax <= 0:
		x.e.SetMax(-m)
	case x.e.IsVar():
		// carve the infeasible band around zero out of the domain
		x.e.Var().RemoveInterval(-m+1, m-1)
	}
}

func (x *intAbs) SetMax(m int64) {
	if m < 0 {
		x.s.Fail()
	}
	x.e.SetRange(CapOpp(m), m)
}

func (x *intAbs) String() string {
	return fmt.Sprintf("|%s|", x.e)
}

// MakeAbs returns |e|.
func (s *Solver) MakeAbs(e IntExpr) IntExpr {
	if e.Min() >= 0 {
		return e
	}
	if e.Max() <= 0 {
		return s.MakeOpposite(e)
	}
	x := &intAbs{e: e}
	x.init(s, x, shapeGeneric, e)
	return x
}

// powN returns x^n, saturating.
func powN(x int64, n int) int64 {
	p := int64(1)
	for i := 0; i < n; i++ {
		p = CapProd(p, x)
	}
	return p
}

// nthRootDown returns the largest r >= 0 with r^n <= v, for v >= 0. The
// float estimate is verified and adjusted so re-raising never overshoots.
func nthRootDown(v int64, n int) int64 {
	if v <= 0 {
		return 0
	}
	r := int64(math.Floor(math.Pow(float64(v), 1.0/float64(n))))
	// a saturated power reads as exactly MaxInt64, which is not a perfect
	// power, so it always means overshoot
	for r > 0 {
		if p := powN(r, n); p <= v && p < math.MaxInt64 {
			break
		}
		r--
	}
	for p := powN(r+1, n); p <= v && p < math.MaxInt64; p = powN(r+1, n) {
		r++
	}
	return r
}

// nthRootUp returns the smallest r >= 0 with r^n >= v, for v >= 0.
func nthRootUp(v int64, n int) int64 {
	if v <= 0 {
		return 0
	}
	r := int64(math.Ceil(math.Pow(float64(v), 1.0/float64(n))))
	for r > 0 && powN(r-1, n) >= v {
		r--
	}
	for powN(r, n) < v {
		r++
	}
	return r
}

// intEvenPower is e^n for even n >= 2: the square generalized.
type intEvenPower struct {
	baseIntExpr
	e IntExpr
	n int
}

func (x *intEvenPower) Min() int64 {
	emin, emax := x.e.Min(), x.e.Max()
	switch {
	case emin >= 0:
		return powN(emin, x.n)
	case emax <= 0:
		return powN(emax, x.n)
	default:
		return 0
	}
}

func (x *intEvenPower) Max() int64 {
	a, b := powN(x.e.Min(), x.n), powN(x.e.Max(), x.n)
	if a > b {
		return a
	}
	return b
}

func (x *intEvenPower) SetMin(m int64) {
	if m <= 0 || m <= x.Min() {
		return
	}
	r := nthRootUp(m, x.n)
	emin, emax := x.e.Min(), x.e.Max()
	switch {
	case emin >= 0:
		x.e.SetMin(r)
	case emax <= 0:
		x.e.SetMax(-r)
	case x.e.IsVar():
		x.e.Var().RemoveInterval(-r+1, r-1)
	}
}

func (x *intEvenPower) SetMax(m int64) {
	if m < 0 {
		x.s.Fail()
	}
	if m >= x.Max() {
		return
	}
	r := nthRootDown(m, x.n)
	x.e.SetRange(-r, r)
}

func (x *intEvenPower) String() string {
	return fmt.Sprintf("(%s ^ %d)", x.e, x.n)
}

// intOddPower is e^n for odd n >= 3; it is monotone and sign-preserving.
type intOddPower struct {
	baseIntExpr
	e IntExpr
	n int
}

func (x *intOddPower) Min() int64 { return powN(x.e.Min(), x.n) }

func (x *intOddPower) Max() int64 { return powN(x.e.Max(), x.n) }

func (x *intOddPower) SetMin(m int64) {
	if m <= x.Min() {
		return
	}
	if m >= 0 {
		x.e.SetMin(nthRootUp(m, x.n))
	} else {
		// smallest x with x^n >= m, m < 0: -(largest r with r^n <= -m)
		x.e.SetMin(-nthRootDown(CapOpp(m), x.n))
	}
}

func (x *intOddPower) SetMax(m int64) {
	if m >= x.Max() {
		return
	}
	if m >= 0 {
		x.e.SetMax(nthRootDown(m, x.n))
	} else {
		x.e.SetMax(-nthRootUp(CapOpp(m), x.n))
	}
}

func (x *intOddPower) String() string {
	return fmt.Sprintf("(%s ^ %d)", x.e, x.n)
}

// MakeSquare returns e^2.
func (s *Solver) MakeSquare(e IntExpr) IntExpr {
	return s.MakePower(e, 2)
}

// MakePower returns e^n for n >= 0.
func (s *Solver) MakePower(e IntExpr, n int) IntExpr {
	switch {
	case n < 0:
		panic("cp: MakePower with negative exponent")
	case n == 0:
		return s.MakeIntConst(1)
	case n == 1:
		return e
	case n%2 == 0:
		x := &intEvenPower{e: e, n: n}
		x.init(s, x, shapePower, e)
		return x
	default:
		x := &intOddPower{e: e, n: n}
		x.init(s, x, shapePower, e)
		return x
	}
}

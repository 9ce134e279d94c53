package cp

import "fmt"

// affineView presents a*x+b (a != 0) as a first-class variable. It owns no
// state: every call is translated and delegated to the underlying variable,
// so the whole PlusCst/SubCst/Opp/TimesCst family collapses into this one
// parameterized view. Nested views compose at construction time.
type affineView struct {
	x    IntVar
	a, b int64
}

var _ IntVar = (*affineView)(nil)

// makeAffineView returns a variable equal to a*x+b.
func makeAffineView(x IntVar, a, b int64) IntVar {
	if a == 0 {
		return x.Solver().MakeIntConst(b)
	}
	if c, ok := x.(*intConst); ok {
		return x.Solver().MakeIntConst(CapAdd(CapProd(a, c.value), b))
	}
	if inner, ok := x.(*affineView); ok {
		// a*(ia*x+ib)+b = (a*ia)*x + (a*ib+b)
		return makeAffineView(inner.x, CapProd(a, inner.a), CapAdd(CapProd(a, inner.b), b))
	}
	if a == 1 && b == 0 {
		return x
	}
	return &affineView{x: x, a: a, b: b}
}

func (v *affineView) Solver() *Solver { return v.x.Solver() }

func (v *affineView) Min() int64 {
	if v.a > 0 {
		return CapAdd(CapProd(v.a, v.x.Min()), v.b)
	}
	return CapAdd(CapProd(v.a, v.x.Max()), v.b)
}

func (v *affineView) Max() int64 {
	if v.a > 0 {
		return CapAdd(CapProd(v.a, v.x.Max()), v.b)
	}
	return CapAdd(CapProd(v.a, v.x.Min()), v.b)
}

func (v *affineView) OldMin() int64 {
	if v.a > 0 {
		return CapAdd(CapProd(v.a, v.x.OldMin()), v.b)
	}
	return CapAdd(CapProd(v.a, v.x.OldMax()), v.b)
}

func (v *affineView) OldMax() int64 {
	if v.a > 0 {
		return CapAdd(CapProd(v.a, v.x.OldMax()), v.b)
	}
	return CapAdd(CapProd(v.a, v.x.OldMin()), v.b)
}

func (v *affineView) SetMin(m int64) {
	if v.a > 0 {
		v.x.SetMin(PosIntDivUp(CapSub(m, v.b), v.a))
	} else {
		v.x.SetMax(PosIntDivDown(CapSub(v.b, m), -v.a))
	}
}

func (v *affineView) SetMax(m int64) {
	if v.a > 0 {
		v.x.SetMax(PosIntDivDown(CapSub(m, v.b), v.a))
	} else {
		v.x.SetMin(PosIntDivUp(CapSub(v.b, m), -v.a))
	}
}

func (v *affineView) SetRange(l, u int64) {
	if l > u {
		v.Solver().Fail()
	}
	s := v.Solver()
	s.queue.freeze()
	v.SetMin(l)
	v.SetMax(u)
	s.queue.unfreeze()
}

func (v *affineView) SetValue(val int64) {
	q, ok := v.preimage(val)
	if !ok {
		v.Solver().Fail()
	}
	v.x.SetValue(q)
}

// preimage returns the underlying value mapping to val, if any.
func (v *affineView) preimage(val int64) (int64, bool) {
	d := val - v.b
	if d%v.a != 0 {
		return 0, false
	}
	return d / v.a, true
}

func (v *affineView) Bound() bool { return v.x.Bound() }

func (v *affineView) Value() int64 {
	return CapAdd(CapProd(v.a, v.x.Value()), v.b)
}

func (v *affineView) Contains(val int64) bool {
	q, ok := v.preimage(val)
	return ok && v.x.Contains(q)
}

func (v *affineView) Size() uint64 { return v.x.Size() }

func (v *affineView) RemoveValue(val int64) {
	if q, ok := v.preimage(val); ok {
		v.x.RemoveValue(q)
	}
}

func (v *affineView) RemoveInterval(l, u int64) {
	var lo, hi int64
	if v.a > 0 {
		lo = PosIntDivUp(CapSub(l, v.b), v.a)
		hi = PosIntDivDown(CapSub(u, v.b), v.a)
	} else {
		lo = -PosIntDivDown(CapSub(u, v.b), -v.a)
		hi = -PosIntDivUp(CapSub(l, v.b), -v.a)
	}
	if lo > hi {
		return
	}
	v.x.RemoveInterval(lo, hi)
}

func (v *affineView) WhenBound(d *Demon) { v.x.WhenBound(d) }

func (v *affineView) WhenRange(d *Demon) { v.x.WhenRange(d) }

func (v *affineView) WhenDomain(d *Demon) { v.x.WhenDomain(d) }

func (v *affineView) IsVar() bool { return true }

func (v *affineView) Var() IntVar { return v }

func (v *affineView) shape() exprShape {
	if v.a == 1 || v.a == -1 {
		return shapeShifted
	}
	return shapeScaled
}

func (v *affineView) String() string {
	switch {
	case v.a == 1:
		return fmt.Sprintf("(%s + %d)", v.x, v.b)
	case v.b == 0:
		return fmt.Sprintf("(%d * %s)", v.a, v.x)
	default:
		return fmt.Sprintf("(%d * %s + %d)", v.a, v.x, v.b)
	}
}

func (v *affineView) MakeDomainIterator() IntVarIterator {
	it := &domainIterator{v: v}
	it.Init()
	return it
}

func (v *affineView) MakeHoleIterator() IntVarIterator {
	return &transformIterator{inner: v.x.MakeHoleIterator(), a: v.a, b: v.b}
}

func (v *affineView) IsEqual(c int64) IntVar {
	if q, ok := v.preimage(c); ok {
		return v.x.IsEqual(q)
	}
	return v.Solver().MakeIntConst(0)
}

func (v *affineView) IsGreaterOrEqual(c int64) IntVar {
	if v.a > 0 {
		return v.x.IsGreaterOrEqual(PosIntDivUp(CapSub(c, v.b), v.a))
	}
	return v.x.IsLessOrEqual(PosIntDivDown(CapSub(v.b, c), -v.a))
}

func (v *affineView) IsLessOrEqual(c int64) IntVar {
	if v.a > 0 {
		return v.x.IsLessOrEqual(PosIntDivDown(CapSub(c, v.b), v.a))
	}
	return v.x.IsGreaterOrEqual(PosIntDivUp(CapSub(v.b, c), -v.a))
}

// transformIterator maps an iterator through val -> a*val+b.
type transformIterator struct {
	inner IntVarIterator
	a, b  int64
}

func (it *transformIterator) Init() { it.inner.Init() }

func (it *transformIterator) Ok() bool { return it.inner.Ok() }

func (it *transformIterator) Value() int64 {
	return CapAdd(CapProd(it.a, it.inner.Value()), it.b)
}

func (it *transformIterator) Next() { it.inner.Next() }

package cp

import "fmt"

// minIntExpr is min(left, right).
type minIntExpr struct {
	baseIntExpr
	left, right IntExpr
}

func (e *minIntExpr) Min() int64 {
	l, r := e.left.Min(), e.right.Min()
	if l < r {
		return l
	}
	return r
}

func (e *minIntExpr) Max() int64 {
	l, r := e.left.Max(), e.right.Max()
	if l < r {
		return l
	}
	return r
}

func (e *minIntExpr) SetMin(m int64) {
	e.left.SetMin(m)
	e.right.SetMin(m)
}

func (e *minIntExpr) SetMax(m int64) {
	// At least one operand must stay <= m; prune only once the other
	// operand is known to exceed m.
	if e.left.Min() > m {
		e.right.SetMax(m)
	}
	if e.right.Min() > m {
		e.left.SetMax(m)
	}
}

func (e *minIntExpr) String() string {
	return fmt.Sprintf("min(%s, %s)", e.left, e.right)
}

// MakeMin returns min(left, right).
func (s *Solver) MakeMin(left, right IntExpr) IntExpr {
	if left.Max() <= right.Min() {
		return left
	}
	if right.Max() <= left.Min() {
		return right
	}
	e := &minIntExpr{left: left, right: right}
	e.init(s, e, shapeGeneric, left, right)
	return e
}

// MakeMinCst returns min(e, c).
func (s *Solver) MakeMinCst(e IntExpr, c int64) IntExpr {
	return s.MakeMin(e, e.Solver().MakeIntConst(c))
}

// maxIntExpr is max(left, right).
type maxIntExpr struct {
	baseIntExpr
	left, right IntExpr
}

func (e *maxIntExpr) Min() int64 {
	l, r := e.left.Min(), e.right.Min()
	if l > r {
		return l
	}
	return r
}

func (e *maxIntExpr) Max() int64 {
	l, r := e.left.Max(), e.right.Max()
	if l > r {
		return l
	}
	return r
}

func (e *maxIntExpr) SetMin(m int64) {
	if e.left.Max() < m {
		e.right.SetMin(m)
	}
	if e.right.Max() < m {
		e.left.SetMin(m)
	}
}

func (e *maxIntExpr) SetMax(m int64) {
	e.left.SetMax(m)
	e.right.SetMax(m)
}

func (e *maxIntExpr) String() string {
	return fmt.Sprintf("max(%s, %s)", e.left, e.right)
}

// MakeMax returns max(left, right).
func (s *Solver) MakeMax(left, right IntExpr) IntExpr {
	if left.Min() >= right.Max() {
		return left
	}
	if right.Min() >= left.Max() {
		return right
	}
	e := &maxIntExpr{left: left, right: right}
	e.init(s, e, shapeGeneric, left, right)
	return e
}

// MakeMaxCst returns max(e, c).
func (s *Solver) MakeMaxCst(e IntExpr, c int64) IntExpr {
	return s.MakeMax(e, e.Solver().MakeIntConst(c))
}

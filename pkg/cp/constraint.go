package cp

import "fmt"

// trueConstraint is trivially satisfied; it is what degenerate constraint
// factories (for example AllDifferent over fewer than two variables) return.
type trueConstraint struct{}

var _ Constraint = trueConstraint{}

func (trueConstraint) Post() {}

func (trueConstraint) InitialPropagate() {}

func (trueConstraint) String() string { return "true" }

// MakeTrueConstraint returns a constraint that never propagates.
func (s *Solver) MakeTrueConstraint() Constraint {
	return trueConstraint{}
}

// neqCt enforces left != right by removing the value of whichever side
// becomes bound from the other side's domain.
type neqCt struct {
	s           *Solver
	left, right IntVar
}

var _ Constraint = (*neqCt)(nil)

// MakeNonEquality returns the constraint left != right.
func (s *Solver) MakeNonEquality(left, right IntVar) Constraint {
	return &neqCt{s: s, left: left, right: right}
}

func (c *neqCt) Post() {
	d := NewDemon(c.String(), func(*Solver) { c.propagate() })
	c.left.WhenBound(d)
	c.right.WhenBound(d)
}

func (c *neqCt) InitialPropagate() {
	c.propagate()
}

func (c *neqCt) propagate() {
	if c.left.Bound() {
		c.right.RemoveValue(c.left.Value())
	}
	if c.right.Bound() {
		c.left.RemoveValue(c.right.Value())
	}
}

func (c *neqCt) String() string {
	return fmt.Sprintf("%s != %s", c.left, c.right)
}

// isEqualCt channels b <=> (v == value).
type isEqualCt struct {
	s     *Solver
	v     IntVar
	value int64
	b     IntVar
}

var _ Constraint = (*isEqualCt)(nil)

func makeIsEqualVar(s *Solver, v IntVar, value int64) IntVar {
	if !v.Contains(value) {
		return s.MakeIntConst(0)
	}
	if v.Bound() {
		return s.MakeIntConst(1)
	}
	b := s.MakeBoolVar(fmt.Sprintf("(%s == %d)", v, value))
	s.post(&isEqualCt{s: s, v: v, value: value, b: b})
	return b
}

func (c *isEqualCt) Post() {
	d := NewDemon(c.String(), func(*Solver) { c.propagate() })
	c.v.WhenDomain(d)
	c.b.WhenBound(d)
}

func (c *isEqualCt) InitialPropagate() {
	c.propagate()
}

func (c *isEqualCt) propagate() {
	switch {
	case c.b.Bound():
		if c.b.Value() == 1 {
			c.v.SetValue(c.value)
		} else {
			c.v.RemoveValue(c.value)
		}
	case !c.v.Contains(c.value):
		c.b.SetValue(0)
	case c.v.Bound():
		c.b.SetValue(1)
	}
}

func (c *isEqualCt) String() string {
	return fmt.Sprintf("%s <=> (%s == %d)", c.b, c.v, c.value)
}

// isGreaterOrEqualCt channels b <=> (v >= value).
type isGreaterOrEqualCt struct {
	s     *Solver
	v     IntVar
	value int64
	b     IntVar
}

var _ Constraint = (*isGreaterOrEqualCt)(nil)

func makeIsGreaterOrEqualVar(s *Solver, v IntVar, value int64) IntVar {
	if v.Min() >= value {
		return s.MakeIntConst(1)
	}
	if v.Max() < value {
		return s.MakeIntConst(0)
	}
	b := s.MakeBoolVar(fmt.Sprintf("(%s >= %d)", v, value))
	s.post(&isGreaterOrEqualCt{s: s, v: v, value: value, b: b})
	return b
}

func makeIsLessOrEqualVar(s *Solver, v IntVar, value int64) IntVar {
	if v.Max() <= value {
		return s.MakeIntConst(1)
	}
	if v.Min() > value {
		return s.MakeIntConst(0)
	}
	b := s.MakeBoolVar(fmt.Sprintf("(%s <= %d)", v, value))
	s.post(&isLessOrEqualCt{s: s, v: v, value: value, b: b})
	return b
}

func (c *isGreaterOrEqualCt) Post() {
	d := NewDemon(c.String(), func(*Solver) { c.propagate() })
	c.v.WhenRange(d)
	c.b.WhenBound(d)
}

func (c *isGreaterOrEqualCt) InitialPropagate() {
	c.propagate()
}

func (c *isGreaterOrEqualCt) propagate() {
	switch {
	case c.b.Bound():
		if c.b.Value() == 1 {
			c.v.SetMin(c.value)
		} else {
			c.v.SetMax(c.value - 1)
		}
	case c.v.Min() >= c.value:
		c.b.SetValue(1)
	case c.v.Max() < c.value:
		c.b.SetValue(0)
	}
}

func (c *isGreaterOrEqualCt) String() string {
	return fmt.Sprintf("%s <=> (%s >= %d)", c.b, c.v, c.value)
}

// isLessOrEqualCt channels b <=> (v <= value).
type isLessOrEqualCt struct {
	s     *Solver
	v     IntVar
	value int64
	b     IntVar
}

var _ Constraint = (*isLessOrEqualCt)(nil)

func (c *isLessOrEqualCt) Post() {
	d := NewDemon(c.String(), func(*Solver) { c.propagate() })
	c.v.WhenRange(d)
	c.b.WhenBound(d)
}

func (c *isLessOrEqualCt) InitialPropagate() {
	c.propagate()
}

func (c *isLessOrEqualCt) propagate() {
	switch {
	case c.b.Bound():
		if c.b.Value() == 1 {
			c.v.SetMax(c.value)
		} else {
			c.v.SetMin(c.value + 1)
		}
	case c.v.Max() <= c.value:
		c.b.SetValue(1)
	case c.v.Min() > c.value:
		c.b.SetValue(0)
	}
}

func (c *isLessOrEqualCt) String() string {
	return fmt.Sprintf("%s <=> (%s <= %d)", c.b, c.v, c.value)
}

package cp

import "fmt"

// exprShape tags the algebraic structure of an expression so that factories
// can recognize and simplify patterns (double negation, sums of constants,
// products) by inspecting the tag instead of the concrete type.
type exprShape int

const (
	shapeGeneric exprShape = iota
	shapeVar
	shapeConst
	shapeSum
	shapeShifted // expr + constant
	shapeOpp
	shapeProduct
	shapeScaled // expr * constant
	shapePower
)

// baseIntExpr carries the pieces every expression shares: the solver, the
// memoized cast variable, the shape tag and the sub-expressions WhenRange
// forwards to. Concrete expressions embed it and implement Min, Max,
// SetMin, SetMax and String.
type baseIntExpr struct {
	s    *Solver
	self IntExpr
	subs []IntExpr
	cast IntVar
	shp  exprShape
}

func (e *baseIntExpr) init(s *Solver, self IntExpr, shp exprShape, subs ...IntExpr) {
	e.s = s
	e.self = self
	e.shp = shp
	e.subs = subs
}

func (e *baseIntExpr) Solver() *Solver { return e.s }

func (e *baseIntExpr) shape() exprShape { return e.shp }

func (e *baseIntExpr) IsVar() bool { return false }

func (e *baseIntExpr) Bound() bool { return e.self.Min() == e.self.Max() }

func (e *baseIntExpr) SetValue(v int64) { e.self.SetRange(v, v) }

func (e *baseIntExpr) SetRange(l, u int64) {
	if l > u {
		e.s.Fail()
	}
	e.s.queue.freeze()
	e.self.SetMin(l)
	e.self.SetMax(u)
	e.s.queue.unfreeze()
}

func (e *baseIntExpr) WhenRange(d *Demon) {
	for _, sub := range e.subs {
		sub.WhenRange(d)
	}
}

// Var lazily manifests the canonical variable backing this expression. The
// cast is created once; a link constraint keeps expression and variable
// bounds equal from then on. The memoized cast is not reversible, so it may
// only be created at the root: a cast made inside a choice point would
// survive backtracking with stale bounds.
func (e *baseIntExpr) Var() IntVar {
	if e.cast == nil {
		if !e.s.atRoot() {
			panic(fmt.Sprintf("cp: Var called on %s inside a choice point", e.self))
		}
		v := e.s.MakeIntVar(e.self.Min(), e.self.Max(), fmt.Sprintf("cast(%s)", e.self))
		e.cast = v
		e.s.post(newLinkExprVar(e.s, e.self, v))
	}
	return e.cast
}

// linkExprVar is the cast constraint: it forces the bounds of an expression
// and its cast variable to agree whenever either side changes range.
type linkExprVar struct {
	s    *Solver
	expr IntExpr
	v    IntVar
}

var _ Constraint = (*linkExprVar)(nil)

func newLinkExprVar(s *Solver, expr IntExpr, v IntVar) *linkExprVar {
	return &linkExprVar{s: s, expr: expr, v: v}
}

func (c *linkExprVar) Post() {
	d := NewDemon(c.String(), func(*Solver) { c.propagate() })
	c.expr.WhenRange(d)
	c.v.WhenRange(d)
}

func (c *linkExprVar) InitialPropagate() {
	c.propagate()
}

func (c *linkExprVar) propagate() {
	c.v.SetRange(c.expr.Min(), c.expr.Max())
	c.expr.SetRange(c.v.Min(), c.v.Max())
}

func (c *linkExprVar) String() string {
	return fmt.Sprintf("link(%s == %s)", c.expr, c.v)
}

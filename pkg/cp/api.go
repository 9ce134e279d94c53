package cp

import (
	"errors"
	"math"
)

// ErrFailed is returned by Solver entry points (Apply, Add, SolveFirst, ...)
// when propagation proves the current state infeasible. It is always
// recoverable: the caller backtracks and tries something else.
var ErrFailed = errors.New("propagation failed: no feasible values remain")

// failSignal is the panic value used internally to unwind out of a failed
// propagation chain. It is recovered at the Solver entry points and converted
// to ErrFailed. Any other panic is a programmer error and escapes.
type failSignal struct{}

const (
	// MinValidValue and MaxValidValue bound the values an interval variable
	// may take. They leave headroom so that saturating arithmetic on
	// start/duration/end never wraps.
	MaxValidValue = math.MaxInt64 / 2
	MinValidValue = -MaxValidValue
)

// DemonPriority orders demon execution. Normal demons run inline during a
// variable's wake-up; delayed demons are queued and run once the variable
// queue drains, which lets expensive propagators batch several changes.
type DemonPriority int

const (
	Normal DemonPriority = iota
	Delayed
)

// Demon is a propagator callback attached to variable events. A demon wakes
// up when the variable it is registered on undergoes a bound, range or
// domain change, depending on which When* method registered it.
type Demon struct {
	name     string
	run      func(*Solver)
	priority DemonPriority
	enqueued bool
}

// NewDemon returns a normal-priority demon running fn.
func NewDemon(name string, fn func(*Solver)) *Demon {
	return &Demon{name: name, run: fn, priority: Normal}
}

// NewDelayedDemon returns a delayed demon running fn. Delayed demons are
// deduplicated: enqueueing one that is already pending is a no-op.
func NewDelayedDemon(name string, fn func(*Solver)) *Demon {
	return &Demon{name: name, run: fn, priority: Delayed}
}

func (d *Demon) String() string {
	return d.name
}

// Constraint implementations prune variable domains. Post registers the
// constraint's demons on the variables it watches; InitialPropagate performs
// the first round of pruning. Both may call Solver.Fail.
type Constraint interface {
	Post()
	InitialPropagate()
	String() string
}

// IntExpr is an integer expression with propagated bounds. Min and Max are
// pure functions of the children's current bounds; the Set* methods push the
// requested bound back onto the children through the inverse relation.
//
// All implementations live in this package; user propagators compose
// expressions rather than implementing new ones.
type IntExpr interface {
	Solver() *Solver
	// Min returns the smallest value the expression can currently take.
	Min() int64
	// Max returns the largest value the expression can currently take.
	Max() int64
	SetMin(m int64)
	SetMax(m int64)
	SetRange(l, u int64)
	SetValue(v int64)
	// Bound reports whether Min() == Max().
	Bound() bool
	// IsVar reports whether the expression is itself a variable.
	IsVar() bool
	// Var returns the canonical variable equal to this expression, creating
	// it (once) together with a link constraint if necessary.
	Var() IntVar
	// WhenRange attaches d to every range change of the expression, i.e. to
	// range changes of every variable the expression is built from.
	WhenRange(d *Demon)
	String() string

	shape() exprShape
}

// IntVar is an integer variable with a finite domain.
type IntVar interface {
	IntExpr

	// Value returns the value of a bound variable and panics otherwise.
	Value() int64
	RemoveValue(v int64)
	// RemoveInterval removes all values in [l, u]. When both endpoints are
	// interior this degenerates to per-value removal and costs O(u-l).
	RemoveInterval(l, u int64)
	Contains(v int64) bool
	Size() uint64
	// OldMin and OldMax return the bounds as of the start of the last
	// propagation batch, used by demons to detect what changed.
	OldMin() int64
	OldMax() int64

	// WhenBound attaches d to the variable becoming bound.
	WhenBound(d *Demon)
	// WhenDomain attaches d to any domain change, including hole removals.
	WhenDomain(d *Demon)

	// IsEqual returns a boolean variable b with b=1 <=> this == v,
	// memoized per (variable, v) pair.
	IsEqual(v int64) IntVar
	IsGreaterOrEqual(v int64) IntVar
	IsLessOrEqual(v int64) IntVar

	// MakeDomainIterator returns an iterator over the current domain.
	MakeDomainIterator() IntVarIterator
	// MakeHoleIterator returns an iterator over the values removed from the
	// domain's interior since the last propagation batch.
	MakeHoleIterator() IntVarIterator
}

// IntVarIterator enumerates int64 values. Init restarts the sequence.
type IntVarIterator interface {
	Init()
	Ok() bool
	Value() int64
	Next()
}

// PerformedState describes whether an optional interval variable is
// performed. The state machine is monotone: Maybe may transition to No or
// Yes; No and Yes are terminal.
type PerformedState int

const (
	NotPerformed PerformedState = iota
	Performed
	MaybePerformed
)

// IntervalVar represents an optional activity with a start, a duration, an
// end and a performed status. Getters on an unperformed interval panic:
// callers must check MayBePerformed first.
type IntervalVar interface {
	Solver() *Solver

	StartMin() int64
	StartMax() int64
	SetStartMin(m int64)
	SetStartMax(m int64)
	SetStartRange(l, u int64)

	DurationMin() int64
	DurationMax() int64
	SetDurationMin(m int64)
	SetDurationMax(m int64)
	SetDurationRange(l, u int64)

	EndMin() int64
	EndMax() int64
	SetEndMin(m int64)
	SetEndMax(m int64)
	SetEndRange(l, u int64)

	MustBePerformed() bool
	MayBePerformed() bool
	CannotBePerformed() bool
	SetPerformed(performed bool)

	WhenStartRange(d *Demon)
	WhenStartBound(d *Demon)
	WhenPerformedBound(d *Demon)
	// WhenAnything attaches d to every event of the interval.
	WhenAnything(d *Demon)

	String() string
}

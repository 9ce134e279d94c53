package cp

import "fmt"

// Solver owns one propagation session: the trail, the demon queue, cached
// constants and every variable/expression created through its Make*
// methods. It is single-threaded; nothing in this package is safe for
// concurrent use.
type Solver struct {
	name   string
	tracer Tracer

	trail trail
	queue queue
	stamp uint64

	// cleanups run (most recent first) when Fail unwinds, so that
	// in-process guards never leak across a failure.
	cleanups []func()

	constants   map[int64]IntVar
	constraints []Constraint
}

type Option func(s *Solver) error

func WithTracer(t Tracer) Option {
	return func(s *Solver) error {
		s.tracer = t
		return nil
	}
}

func WithName(name string) Option {
	return func(s *Solver) error {
		s.name = name
		return nil
	}
}

var defaults = []Option{
	func(s *Solver) error {
		if s.tracer == nil {
			s.tracer = DefaultTracer{}
		}
		return nil
	},
}

func NewSolver(options ...Option) (*Solver, error) {
	s := &Solver{
		stamp:     1,
		constants: make(map[int64]IntVar),
	}
	s.queue.s = s
	for _, option := range append(options, defaults...) {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Solver) String() string {
	return fmt.Sprintf("Solver(%s)", s.name)
}

// Fail aborts the current propagation chain. It runs all registered
// cleanups (clearing reentrancy guards), drops pending work, and unwinds by
// panicking with a private sentinel that the Solver entry points recover.
func (s *Solver) Fail() {
	s.tracer.OnFail()
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = s.cleanups[:0]
	s.queue.reset()
	panic(failSignal{})
}

func (s *Solver) addCleanup(fn func()) {
	s.cleanups = append(s.cleanups, fn)
}

func (s *Solver) popCleanup() {
	s.cleanups = s.cleanups[:len(s.cleanups)-1]
}

// atRoot reports whether no choice point is open. Non-reversible model
// construction (casts, demon registration) is only legal at the root.
func (s *Solver) atRoot() bool {
	return len(s.trail.marks) == 0
}

// PushState opens a new choice point. All reversible mutations performed
// until the matching PopState are undone by it.
func (s *Solver) PushState() {
	s.stamp++
	s.trail.pushMark()
}

// PopState backtracks to the matching PushState.
func (s *Solver) PopState() {
	s.trail.popMark()
	s.stamp++
}

// Apply runs fn against the model and propagates to fixpoint. Setter calls
// made by fn are batched: demons only start running once fn returns. Apply
// is transactional: when it returns ErrFailed every reversible mutation made
// by fn and the demons it woke has been rolled back.
func (s *Solver) Apply(fn func()) (err error) {
	s.PushState()
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(failSignal); !ok {
				panic(r)
			}
			s.PopState()
			err = ErrFailed
			return
		}
		s.trail.commitMark()
	}()
	s.queue.freeze()
	fn()
	s.queue.unfreeze()
	return nil
}

// Add posts a constraint and runs its initial propagation to fixpoint.
func (s *Solver) Add(c Constraint) error {
	return s.Apply(func() { s.post(c) })
}

// post registers a constraint without failure recovery. Used internally when
// constraints are created mid-propagation (cast links, status variables);
// a failure there unwinds to the enclosing entry point.
func (s *Solver) post(c Constraint) {
	s.constraints = append(s.constraints, c)
	c.Post()
	c.InitialPropagate()
}

// MakeIntConst returns the constant expression v. Small constants are
// cached on the solver and shared.
func (s *Solver) MakeIntConst(v int64) IntVar {
	if c, ok := s.constants[v]; ok {
		return c
	}
	c := &intConst{s: s, value: v}
	s.constants[v] = c
	return c
}

// MakeIntVar returns a new integer variable with domain [vmin, vmax].
func (s *Solver) MakeIntVar(vmin, vmax int64, name string) IntVar {
	if vmin > vmax {
		panic(fmt.Sprintf("cp: MakeIntVar %q with empty domain [%d, %d]", name, vmin, vmax))
	}
	if vmin == vmax {
		return s.MakeIntConst(vmin)
	}
	if vmin == 0 && vmax == 1 {
		return s.MakeBoolVar(name)
	}
	return newDomainIntVar(s, vmin, vmax, name)
}

// MakeBoolVar returns a new 0/1 variable.
func (s *Solver) MakeBoolVar(name string) IntVar {
	return &booleanVar{
		s:        s,
		name:     name,
		value:    revInt{value: unboundBooleanValue},
		oldValue: revInt{value: unboundBooleanValue},
	}
}

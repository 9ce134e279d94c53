package tasks

import (
	"fmt"
	"strings"

	"github.com/solverkit/cpengine/pkg/cp"
)

// precedence forces after to start once before has ended. It is written
// against the public constraint API: any package can add its own
// propagators this way.
type precedence struct {
	before, after cp.IntervalVar
}

var _ cp.Constraint = (*precedence)(nil)

func (p *precedence) Post() {
	d := cp.NewDemon("precedence", func(*cp.Solver) { p.propagate() })
	p.before.WhenStartRange(d)
	p.after.WhenStartRange(d)
	p.before.WhenPerformedBound(d)
	p.after.WhenPerformedBound(d)
}

func (p *precedence) InitialPropagate() {
	p.propagate()
}

func (p *precedence) propagate() {
	if p.before.MayBePerformed() && p.after.MayBePerformed() {
		p.after.SetStartMin(p.before.EndMin())
		p.before.SetEndMax(p.after.StartMax())
	}
}

func (p *precedence) String() string {
	return fmt.Sprintf("%s before %s", p.before, p.after)
}

// Schedule is a chain of tasks sharing one machine: each task starts
// after the previous one ends, and every task must finish by the horizon.
type Schedule struct {
	solver *cp.Solver
	tasks  []cp.IntervalVar
}

// NewSchedule builds a chain of tasks with the given durations over
// [0, horizon]. Tasks that cannot fit before the horizon resolve to
// unperformed during propagation instead of failing the model.
func NewSchedule(durations []int64, horizon int64) (*Schedule, error) {
	s, err := cp.NewSolver(cp.WithName("task chain"))
	if err != nil {
		return nil, err
	}

	tasks := make([]cp.IntervalVar, len(durations))
	for i, d := range durations {
		latest := horizon - d
		if latest < 0 {
			latest = 0
		}
		tasks[i] = s.MakeFixedDurationIntervalVar(0, latest, d, true, fmt.Sprintf("t%d", i))
	}
	for i := 1; i < len(tasks); i++ {
		if err := s.Add(&precedence{before: tasks[i-1], after: tasks[i]}); err != nil {
			return nil, err
		}
	}

	return &Schedule{solver: s, tasks: tasks}, nil
}

// Commit marks every task that still may be performed as performed,
// propagating the chain after each commitment. It returns cp.ErrFailed if
// the commitments are inconsistent.
func (sc *Schedule) Commit() error {
	for _, t := range sc.tasks {
		task := t
		if !task.MayBePerformed() {
			continue
		}
		if err := sc.solver.Apply(func() { task.SetPerformed(true) }); err != nil {
			return err
		}
	}
	return nil
}

// Render prints the start window of every task, one per line.
func (sc *Schedule) Render() string {
	var b strings.Builder
	for _, t := range sc.tasks {
		fmt.Fprintf(&b, "%s\n", t)
	}
	return b.String()
}

package cp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalBounds(t *testing.T) {
	s := newTestSolver(t)
	iv := s.MakeFixedDurationIntervalVar(2, 8, 3, false, "task")

	assert.Equal(t, int64(2), iv.StartMin())
	assert.Equal(t, int64(8), iv.StartMax())
	assert.Equal(t, int64(3), iv.DurationMin())
	assert.Equal(t, int64(3), iv.DurationMax())
	assert.Equal(t, int64(5), iv.EndMin())
	assert.Equal(t, int64(11), iv.EndMax())
	assert.True(t, iv.MustBePerformed())

	require.NoError(t, s.Apply(func() { iv.SetEndMax(9) }))
	assert.Equal(t, int64(6), iv.StartMax())

	require.NoError(t, s.Apply(func() { iv.SetStartMin(4) }))
	assert.Equal(t, int64(7), iv.EndMin())
}

func TestIntervalMandatoryInfeasibleFails(t *testing.T) {
	s := newTestSolver(t)
	iv := s.MakeFixedDurationIntervalVar(2, 8, 3, false, "task")

	assert.ErrorIs(t, s.Apply(func() { iv.SetStartMin(9) }), ErrFailed)
	assert.ErrorIs(t, s.Apply(func() { iv.SetPerformed(false) }), ErrFailed)
}

func TestIntervalOptionalResolvesToUnperformed(t *testing.T) {
	s := newTestSolver(t)
	iv := s.MakeFixedDurationIntervalVar(2, 8, 3, true, "task")

	assert.True(t, iv.MayBePerformed())
	assert.False(t, iv.MustBePerformed())

	// infeasible narrowing of an optional interval switches it off
	// instead of failing
	require.NoError(t, s.Apply(func() { iv.SetStartMin(9) }))
	assert.True(t, iv.CannotBePerformed())

	// getters on an unperformed interval are a caller bug
	assert.Panics(t, func() { iv.StartMin() })

	// setters are silent no-ops from here on
	require.NoError(t, s.Apply(func() { iv.SetStartMax(4) }))
	assert.ErrorIs(t, s.Apply(func() { iv.SetPerformed(true) }), ErrFailed)
}

func TestIntervalDurationNarrowing(t *testing.T) {
	s := newTestSolver(t)
	iv := s.MakeFixedDurationIntervalVar(0, 10, 4, true, "task")

	// compatible duration requests are no-ops
	require.NoError(t, s.Apply(func() { iv.SetDurationRange(0, 9) }))
	assert.True(t, iv.MayBePerformed())

	// demanding more than the fixed duration switches the task off
	require.NoError(t, s.Apply(func() { iv.SetDurationMin(5) }))
	assert.True(t, iv.CannotBePerformed())
}

func TestIntervalPerformedStateMachine(t *testing.T) {
	s := newTestSolver(t)
	iv := s.MakeFixedDurationIntervalVar(0, 10, 2, true, "task")

	var events int
	iv.WhenPerformedBound(NewDemon("performed", func(*Solver) { events++ }))

	require.NoError(t, s.Apply(func() { iv.SetPerformed(true) }))
	assert.True(t, iv.MustBePerformed())
	assert.Equal(t, 1, events)

	// terminal states absorb repeated requests
	require.NoError(t, s.Apply(func() { iv.SetPerformed(true) }))
	assert.Equal(t, 1, events)

	assert.ErrorIs(t, s.Apply(func() { iv.SetPerformed(false) }), ErrFailed)
}

func TestIntervalBacktracking(t *testing.T) {
	s := newTestSolver(t)
	iv := s.MakeFixedDurationIntervalVar(0, 10, 2, true, "task")

	s.PushState()
	require.NoError(t, s.Apply(func() {
		iv.SetStartMin(4)
		iv.SetPerformed(true)
	}))
	assert.Equal(t, int64(4), iv.StartMin())
	assert.True(t, iv.MustBePerformed())

	s.PopState()
	assert.Equal(t, int64(0), iv.StartMin())
	assert.False(t, iv.MustBePerformed())
	assert.True(t, iv.MayBePerformed())
}

func TestIntervalStartDemons(t *testing.T) {
	s := newTestSolver(t)
	iv := s.MakeFixedDurationIntervalVar(0, 10, 2, false, "task")

	var ranges, bounds, anything int
	iv.WhenStartRange(NewDemon("range", func(*Solver) { ranges++ }))
	iv.WhenStartBound(NewDemon("bound", func(*Solver) { bounds++ }))
	iv.WhenAnything(NewDemon("anything", func(*Solver) { anything++ }))

	require.NoError(t, s.Apply(func() { iv.SetStartMin(3) }))
	assert.Equal(t, 1, ranges)
	assert.Equal(t, 0, bounds)
	assert.Equal(t, 1, anything)

	require.NoError(t, s.Apply(func() { iv.SetStartRange(5, 5) }))
	assert.Equal(t, 2, ranges)
	assert.Equal(t, 1, bounds)
	assert.Equal(t, 2, anything)
}

func TestMirrorInterval(t *testing.T) {
	s := newTestSolver(t)
	iv := s.MakeFixedDurationIntervalVar(2, 8, 3, false, "task")
	m := s.MakeMirrorInterval(iv)

	assert.Equal(t, int64(-11), m.StartMin())
	assert.Equal(t, int64(-5), m.StartMax())
	assert.Equal(t, int64(-8), m.EndMin())
	assert.Equal(t, int64(-2), m.EndMax())
	assert.Equal(t, int64(3), m.DurationMin())

	// tightening through the mirror lands on the original
	require.NoError(t, s.Apply(func() { m.SetEndMax(-4) }))
	assert.Equal(t, int64(4), iv.StartMin())

	// mirroring twice returns the original
	assert.Same(t, iv, s.MakeMirrorInterval(m))
}

func TestAlwaysPerformedWrapper(t *testing.T) {
	s := newTestSolver(t)
	iv := s.MakeFixedDurationIntervalVar(2, 8, 3, true, "task")
	w := s.MakeAlwaysPerformedInterval(iv)

	assert.True(t, w.MustBePerformed())
	assert.Equal(t, int64(2), w.StartMin())

	// once the underlying task is off, the wrapper degenerates instead
	// of panicking
	require.NoError(t, s.Apply(func() { iv.SetPerformed(false) }))
	assert.True(t, w.MustBePerformed())
	assert.Equal(t, int64(MinValidValue), w.StartMin())
	assert.Equal(t, int64(MaxValidValue), w.StartMax())
	assert.Equal(t, int64(0), w.DurationMin())

	assert.Panics(t, func() { w.SetPerformed(false) })
}

func TestRelaxedIntervalViews(t *testing.T) {
	s := newTestSolver(t)
	iv := s.MakeFixedDurationIntervalVar(2, 8, 3, true, "task")

	rmax := s.MakeIntervalRelaxedMax(iv)
	rmin := s.MakeIntervalRelaxedMin(iv)

	// while optional, the relaxed side reports the sentinel bound
	assert.Equal(t, int64(MaxValidValue), rmax.StartMax())
	assert.Equal(t, int64(2), rmax.StartMin())
	assert.Equal(t, int64(MinValidValue), rmin.StartMin())
	assert.Equal(t, int64(8), rmin.StartMax())

	// mutating the relaxed side is a programmer error
	assert.Panics(t, func() { rmax.SetStartMax(5) })
	assert.Panics(t, func() { rmin.SetEndMin(5) })

	// once performed, both views report the true bounds
	require.NoError(t, s.Apply(func() { iv.SetPerformed(true) }))
	assert.Equal(t, int64(8), rmax.StartMax())
	assert.Equal(t, int64(2), rmin.StartMin())
}

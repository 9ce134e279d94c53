package cp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSolver(t *testing.T) *Solver {
	t.Helper()
	s, err := NewSolver(WithName(t.Name()))
	require.NoError(t, err)
	return s
}

func domainValues(v IntVar) []int64 {
	var vals []int64
	it := v.MakeDomainIterator()
	for it.Init(); it.Ok(); it.Next() {
		vals = append(vals, it.Value())
	}
	return vals
}

func TestIntVarBounds(t *testing.T) {
	s := newTestSolver(t)
	v := s.MakeIntVar(-3, 7, "v")

	assert.Equal(t, int64(-3), v.Min())
	assert.Equal(t, int64(7), v.Max())
	assert.Equal(t, uint64(11), v.Size())
	assert.False(t, v.Bound())

	require.NoError(t, s.Apply(func() { v.SetMin(0) }))
	require.NoError(t, s.Apply(func() { v.SetMax(4) }))
	assert.Equal(t, int64(0), v.Min())
	assert.Equal(t, int64(4), v.Max())
	assert.Equal(t, uint64(5), v.Size())

	// loosening requests are silent no-ops
	require.NoError(t, s.Apply(func() { v.SetMin(-100) }))
	require.NoError(t, s.Apply(func() { v.SetMax(100) }))
	assert.Equal(t, int64(0), v.Min())
	assert.Equal(t, int64(4), v.Max())
}

func TestIntVarInfeasibleTightening(t *testing.T) {
	s := newTestSolver(t)
	v := s.MakeIntVar(0, 5, "v")

	assert.ErrorIs(t, s.Apply(func() { v.SetMin(6) }), ErrFailed)
	assert.ErrorIs(t, s.Apply(func() { v.SetValue(-1) }), ErrFailed)
	// the failed attempts must not have moved the bounds
	assert.Equal(t, int64(0), v.Min())
	assert.Equal(t, int64(5), v.Max())
}

func TestIntVarHoles(t *testing.T) {
	s := newTestSolver(t)
	v := s.MakeIntVar(0, 6, "v")

	require.NoError(t, s.Apply(func() { v.RemoveValue(3) }))
	assert.False(t, v.Contains(3))
	assert.Equal(t, uint64(6), v.Size())
	assert.Equal(t, []int64{0, 1, 2, 4, 5, 6}, domainValues(v))

	// removing a bound value shifts the bound past any adjacent holes
	require.NoError(t, s.Apply(func() { v.RemoveValue(4) }))
	require.NoError(t, s.Apply(func() { v.SetMin(3) }))
	assert.Equal(t, int64(5), v.Min())

	// removing an absent value is a silent no-op
	require.NoError(t, s.Apply(func() { v.RemoveValue(100) }))
	assert.Equal(t, []int64{5, 6}, domainValues(v))
}

func TestIntVarRemoveInterval(t *testing.T) {
	s := newTestSolver(t)

	t.Run("prefix", func(t *testing.T) {
		v := s.MakeIntVar(0, 9, "prefix")
		require.NoError(t, s.Apply(func() { v.RemoveInterval(-5, 3) }))
		assert.Equal(t, int64(4), v.Min())
		assert.Equal(t, uint64(6), v.Size())
	})

	t.Run("suffix", func(t *testing.T) {
		v := s.MakeIntVar(0, 9, "suffix")
		require.NoError(t, s.Apply(func() { v.RemoveInterval(7, 20) }))
		assert.Equal(t, int64(6), v.Max())
	})

	t.Run("interior", func(t *testing.T) {
		v := s.MakeIntVar(0, 9, "interior")
		require.NoError(t, s.Apply(func() { v.RemoveInterval(3, 6) }))
		assert.Equal(t, []int64{0, 1, 2, 7, 8, 9}, domainValues(v))
	})

	t.Run("empty", func(t *testing.T) {
		v := s.MakeIntVar(0, 9, "empty")
		require.NoError(t, s.Apply(func() { v.RemoveInterval(6, 3) }))
		assert.Equal(t, uint64(10), v.Size())
	})
}

func TestIntVarValue(t *testing.T) {
	s := newTestSolver(t)
	v := s.MakeIntVar(2, 8, "v")

	assert.Panics(t, func() { v.Value() })
	require.NoError(t, s.Apply(func() { v.SetValue(5) }))
	assert.True(t, v.Bound())
	assert.Equal(t, int64(5), v.Value())
}

func TestIntVarBacktracking(t *testing.T) {
	s := newTestSolver(t)
	v := s.MakeIntVar(0, 9, "v")

	s.PushState()
	require.NoError(t, s.Apply(func() {
		v.SetMin(3)
		v.RemoveValue(5)
	}))
	assert.Equal(t, int64(3), v.Min())
	assert.False(t, v.Contains(5))

	s.PopState()
	assert.Equal(t, int64(0), v.Min())
	assert.True(t, v.Contains(5))
	assert.Equal(t, uint64(10), v.Size())
}

func TestIntVarDemonEvents(t *testing.T) {
	s := newTestSolver(t)
	v := s.MakeIntVar(0, 9, "v")

	var events []string
	v.WhenBound(NewDemon("bound", func(*Solver) { events = append(events, "bound") }))
	v.WhenRange(NewDemon("range", func(*Solver) { events = append(events, "range") }))
	v.WhenDomain(NewDemon("domain", func(*Solver) { events = append(events, "domain") }))

	require.NoError(t, s.Apply(func() { v.RemoveValue(4) }))
	assert.Equal(t, []string{"domain"}, events)

	events = nil
	require.NoError(t, s.Apply(func() { v.SetMin(2) }))
	assert.Equal(t, []string{"range", "domain"}, events)

	events = nil
	require.NoError(t, s.Apply(func() { v.SetValue(7) }))
	assert.Equal(t, []string{"bound", "range", "domain"}, events)
}

func TestIntVarOldBounds(t *testing.T) {
	s := newTestSolver(t)
	v := s.MakeIntVar(0, 9, "v")

	var oldMin, oldMax, curMin, curMax int64
	v.WhenRange(NewDemon("observe", func(*Solver) {
		oldMin, oldMax = v.OldMin(), v.OldMax()
		curMin, curMax = v.Min(), v.Max()
	}))

	require.NoError(t, s.Apply(func() { v.SetRange(2, 7) }))
	assert.Equal(t, int64(0), oldMin)
	assert.Equal(t, int64(9), oldMax)
	assert.Equal(t, int64(2), curMin)
	assert.Equal(t, int64(7), curMax)
}

func TestIntVarHoleIterator(t *testing.T) {
	s := newTestSolver(t)
	v := s.MakeIntVar(0, 9, "v")

	var holes []int64
	v.WhenDomain(NewDemon("holes", func(*Solver) {
		it := v.MakeHoleIterator()
		for it.Init(); it.Ok(); it.Next() {
			holes = append(holes, it.Value())
		}
	}))

	require.NoError(t, s.Apply(func() {
		v.RemoveValue(3)
		v.RemoveValue(6)
	}))
	assert.ElementsMatch(t, []int64{3, 6}, holes)
}

// A demon that tightens the variable it is woken for must not observe or
// corrupt a half-processed state: the engine buffers the request and
// replays it after the current batch.
func TestIntVarReentrantTightening(t *testing.T) {
	s := newTestSolver(t)
	v := s.MakeIntVar(0, 10, "v")

	v.WhenRange(NewDemon("odd-up", func(*Solver) {
		if v.Min()%2 == 1 {
			v.SetMin(v.Min() + 1)
		}
	}))

	require.NoError(t, s.Apply(func() { v.SetMin(1) }))
	assert.Equal(t, int64(2), v.Min())
}

func TestIntVarReentrantFailureRecovers(t *testing.T) {
	s := newTestSolver(t)
	v := s.MakeIntVar(0, 10, "v")

	v.WhenRange(NewDemon("cap", func(*Solver) {
		if v.Min() > 5 {
			s.Fail()
		}
	}))

	assert.ErrorIs(t, s.Apply(func() { v.SetMin(6) }), ErrFailed)
	// the guard must not leak: the variable processes normally afterwards
	require.NoError(t, s.Apply(func() { v.SetMin(3) }))
	assert.Equal(t, int64(3), v.Min())
}

func TestMakeIntVarDegenerateForms(t *testing.T) {
	s := newTestSolver(t)

	assert.Panics(t, func() { s.MakeIntVar(5, 2, "empty") })

	c := s.MakeIntVar(4, 4, "const")
	assert.True(t, c.Bound())
	assert.Equal(t, int64(4), c.Value())
	assert.Same(t, s.MakeIntConst(4), c)

	b := s.MakeIntVar(0, 1, "bool")
	assert.Equal(t, uint64(2), b.Size())
}

func TestIntConst(t *testing.T) {
	s := newTestSolver(t)
	c := s.MakeIntConst(3)

	assert.Equal(t, int64(3), c.Value())
	require.NoError(t, s.Apply(func() { c.SetMin(3) }))
	require.NoError(t, s.Apply(func() { c.RemoveValue(7) }))
	assert.ErrorIs(t, s.Apply(func() { c.SetMin(4) }), ErrFailed)
	assert.ErrorIs(t, s.Apply(func() { c.RemoveValue(3) }), ErrFailed)
}

func TestBoolVarChannelling(t *testing.T) {
	s := newTestSolver(t)
	v := s.MakeIntVar(0, 9, "v")

	b := v.IsEqual(4)
	assert.Same(t, b, v.IsEqual(4))

	require.NoError(t, s.Apply(func() { v.SetValue(4) }))
	assert.Equal(t, int64(1), b.Value())
}

func TestBoolVarOldBounds(t *testing.T) {
	s := newTestSolver(t)
	b := s.MakeBoolVar("b")

	var oldMin, oldMax, curMin, curMax int64
	b.WhenRange(NewDemon("observe", func(*Solver) {
		oldMin, oldMax = b.OldMin(), b.OldMax()
		curMin, curMax = b.Min(), b.Max()
	}))

	require.NoError(t, s.Apply(func() { b.SetValue(1) }))
	assert.Equal(t, int64(0), oldMin)
	assert.Equal(t, int64(1), oldMax)
	assert.Equal(t, int64(1), curMin)
	assert.Equal(t, int64(1), curMax)

	// after the batch the previous bounds catch up to the current ones
	assert.Equal(t, int64(1), b.OldMin())
	assert.Equal(t, int64(1), b.OldMax())
}

func TestBoolVarOldBoundsBacktracking(t *testing.T) {
	s := newTestSolver(t)
	b := s.MakeBoolVar("b")

	s.PushState()
	require.NoError(t, s.Apply(func() { b.SetValue(0) }))
	assert.Equal(t, int64(0), b.OldMax())
	s.PopState()

	assert.Equal(t, int64(0), b.OldMin())
	assert.Equal(t, int64(1), b.OldMax())
}

func TestBoolVarChannellingNegative(t *testing.T) {
	s := newTestSolver(t)
	v := s.MakeIntVar(0, 9, "v")
	b := v.IsGreaterOrEqual(5)

	require.NoError(t, s.Apply(func() { b.SetValue(1) }))
	assert.Equal(t, int64(5), v.Min())

	le := v.IsLessOrEqual(7)
	require.NoError(t, s.Apply(func() { le.SetValue(1) }))
	assert.Equal(t, int64(7), v.Max())
}

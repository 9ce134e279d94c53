package cp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solverkit/cpengine/internal/satverify"
)

func TestAllDifferentDegenerate(t *testing.T) {
	s := newTestSolver(t)

	assert.Equal(t, "true", s.MakeAllDifferent(nil, false).String())

	v := s.MakeIntVar(0, 5, "v")
	assert.Equal(t, "true", s.MakeAllDifferent([]IntVar{v}, true).String())

	w := s.MakeIntVar(0, 5, "w")
	two := s.MakeAllDifferent([]IntVar{v, w}, false)
	require.NoError(t, s.Add(two))
	require.NoError(t, s.Apply(func() { v.SetValue(3) }))
	assert.False(t, w.Contains(3))
}

func TestValueAllDifferentPropagation(t *testing.T) {
	s := newTestSolver(t)
	x := s.MakeIntVar(1, 3, "x")
	y := s.MakeIntVar(1, 3, "y")
	z := s.MakeIntVar(1, 3, "z")

	require.NoError(t, s.Add(s.MakeAllDifferent([]IntVar{x, y, z}, false)))

	require.NoError(t, s.Apply(func() { x.SetValue(2) }))
	assert.False(t, y.Contains(2))
	assert.False(t, z.Contains(2))

	// binding y to 1 leaves only 3 for z
	require.NoError(t, s.Apply(func() { y.SetValue(1) }))
	assert.Equal(t, int64(3), z.Value())
}

func TestValueAllDifferentDuplicateFails(t *testing.T) {
	s := newTestSolver(t)
	x := s.MakeIntVar(1, 3, "x")
	y := s.MakeIntVar(1, 3, "y")
	z := s.MakeIntVar(1, 3, "z")

	require.NoError(t, s.Apply(func() {
		x.SetValue(2)
		y.SetValue(2)
	}))
	assert.ErrorIs(t, s.Add(s.MakeAllDifferent([]IntVar{x, y, z}, false)), ErrFailed)
}

func TestBoundsAllDifferentHallInterval(t *testing.T) {
	s := newTestSolver(t)
	a := s.MakeIntVar(1, 2, "a")
	b := s.MakeIntVar(1, 2, "b")
	c := s.MakeIntVar(1, 3, "c")
	d := s.MakeIntVar(1, 4, "d")

	// {a, b} saturate [1,2], so c loses 1..2; then {a, b, c} saturate
	// [1,3] and d loses 1..3.
	require.NoError(t, s.Add(s.MakeAllDifferent([]IntVar{a, b, c, d}, true)))
	assert.Equal(t, int64(3), c.Min())
	assert.Equal(t, int64(4), d.Min())
}

func TestBoundsAllDifferentOverpacking(t *testing.T) {
	s := newTestSolver(t)
	a := s.MakeIntVar(1, 2, "a")
	b := s.MakeIntVar(1, 2, "b")
	c := s.MakeIntVar(1, 2, "c")
	d := s.MakeIntVar(1, 4, "d")

	// three variables over two values cannot all differ
	assert.ErrorIs(t, s.Add(s.MakeAllDifferent([]IntVar{a, b, c, d}, true)), ErrFailed)
}

func TestBoundsAllDifferentIncremental(t *testing.T) {
	s := newTestSolver(t)
	a := s.MakeIntVar(1, 4, "a")
	b := s.MakeIntVar(1, 4, "b")
	c := s.MakeIntVar(1, 4, "c")

	require.NoError(t, s.Add(s.MakeAllDifferent([]IntVar{a, b, c}, true)))
	assert.Equal(t, int64(1), a.Min())

	// shrinking a and b to [1,2] mid-search squeezes c out of it
	require.NoError(t, s.Apply(func() {
		a.SetMax(2)
		b.SetMax(2)
	}))
	assert.Equal(t, int64(3), c.Min())
}

// Both propagators must agree with an independent SAT encoding: the search
// must find exactly the models the encoding has, and propagation must never
// fail on a value that appears in some model.
func TestAllDifferentAgainstSAT(t *testing.T) {
	type tc struct {
		Name    string
		Domains []satverify.Domain
	}

	for _, tt := range []tc{
		{
			Name: "tight",
			Domains: []satverify.Domain{
				{Min: 1, Max: 2},
				{Min: 1, Max: 2},
				{Min: 1, Max: 3},
				{Min: 1, Max: 4},
			},
		},
		{
			Name: "square",
			Domains: []satverify.Domain{
				{Min: 1, Max: 4},
				{Min: 1, Max: 4},
				{Min: 1, Max: 4},
				{Min: 1, Max: 4},
			},
		},
		{
			Name: "holes",
			Domains: []satverify.Domain{
				{Min: 1, Max: 4, Removed: []int64{2}},
				{Min: 2, Max: 5, Removed: []int64{4}},
				{Min: 1, Max: 3},
				{Min: 3, Max: 5},
			},
		},
		{
			Name: "infeasible",
			Domains: []satverify.Domain{
				{Min: 1, Max: 2},
				{Min: 1, Max: 2},
				{Min: 1, Max: 2},
			},
		},
	} {
		for _, bounds := range []bool{false, true} {
			t.Run(fmt.Sprintf("%s/bounds=%v", tt.Name, bounds), func(t *testing.T) {
				models, err := satverify.AllDifferentModels(tt.Domains, 0)
				require.NoError(t, err)

				s := newTestSolver(t)
				vars := make([]IntVar, len(tt.Domains))
				for i, d := range tt.Domains {
					vars[i] = s.MakeIntVar(d.Min, d.Max, fmt.Sprintf("v%d", i))
					for _, r := range d.Removed {
						require.NoError(t, s.Apply(func() { vars[i].RemoveValue(r) }))
					}
				}

				err = s.Add(s.MakeAllDifferent(vars, bounds))
				if len(models) == 0 && err != nil {
					assert.ErrorIs(t, err, ErrFailed)
					return
				}
				require.NoError(t, err)

				var found [][]int64
				require.NoError(t, s.SolveAll(vars, func(values []int64) bool {
					found = append(found, append([]int64(nil), values...))
					return true
				}))
				assert.ElementsMatch(t, models, found)

				// no value appearing in a model may have been pruned
				feasible := satverify.FeasibleValues(models, len(vars))
				for i, vals := range feasible {
					for v := range vals {
						assert.True(t, vars[i].Contains(v), "pruned feasible value %d of v%d", v, i)
					}
				}
			})
		}
	}
}

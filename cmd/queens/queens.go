package queens

import (
	"fmt"

	"github.com/solverkit/cpengine/internal/satverify"
	"github.com/solverkit/cpengine/pkg/cp"
)

// Board is an n-queens model: one variable per column holding the row of
// the queen in that column.
type Board struct {
	solver *cp.Solver
	queens []cp.IntVar
}

// NewBoard builds the n-queens model. With bounds set the diagonal
// constraints use the range-consistent propagator instead of the value
// propagator.
func NewBoard(n int, bounds bool) (*Board, error) {
	s, err := cp.NewSolver(cp.WithName(fmt.Sprintf("%d-queens", n)))
	if err != nil {
		return nil, err
	}

	queens := make([]cp.IntVar, n)
	for i := range queens {
		queens[i] = s.MakeIntVar(0, int64(n-1), fmt.Sprintf("q%d", i))
	}

	// queens on distinct rows, and distinct on both diagonals
	up := make([]cp.IntVar, n)
	down := make([]cp.IntVar, n)
	for i, q := range queens {
		up[i] = s.MakeSumCst(q, int64(i)).Var()
		down[i] = s.MakeSumCst(q, int64(-i)).Var()
	}
	for _, group := range [][]cp.IntVar{queens, up, down} {
		if err := s.Add(s.MakeAllDifferent(group, bounds)); err != nil {
			return nil, err
		}
	}

	return &Board{solver: s, queens: queens}, nil
}

// SolveFirst returns the row of the queen in each column for the first
// solution found.
func (b *Board) SolveFirst() ([]int64, error) {
	return b.solver.SolveFirst(b.queens)
}

// CountSolutions exhausts the search space and returns the number of
// solutions.
func (b *Board) CountSolutions() (int, error) {
	count := 0
	err := b.solver.SolveAll(b.queens, func([]int64) bool {
		count++
		return true
	})
	return count, err
}

// Verify cross-checks a placement against an independent SAT encoding
// of the three alldifferent groups. It returns an error when any group
// admits no model with the queens fixed to the given rows.
func Verify(rows []int64) error {
	n := int64(len(rows))
	groups := []struct {
		name  string
		shift func(col int64) int64
	}{
		{"rows", func(int64) int64 { return 0 }},
		{"up diagonals", func(col int64) int64 { return col }},
		{"down diagonals", func(col int64) int64 { return -col }},
	}
	for _, group := range groups {
		domains := make([]satverify.Domain, n)
		for col := int64(0); col < n; col++ {
			v := rows[col] + group.shift(col)
			domains[col] = satverify.Domain{Min: v, Max: v}
		}
		models, err := satverify.AllDifferentModels(domains, 1)
		if err != nil {
			return err
		}
		if len(models) == 0 {
			return fmt.Errorf("placement conflicts on %s", group.name)
		}
	}
	return nil
}

// Render draws a solution as an ASCII board.
func Render(rows []int64) string {
	n := len(rows)
	out := ""
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if rows[col] == int64(row) {
				out += "Q"
			} else {
				out += "."
			}
			if col != n-1 {
				out += " "
			}
		}
		out += "\n"
	}
	return out
}

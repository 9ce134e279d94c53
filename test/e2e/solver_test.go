package e2e

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/solverkit/cpengine/pkg/cp"
)

// knownQueensCounts holds the number of n-queens solutions for small n.
var knownQueensCounts = map[int]int{
	4: 2,
	5: 10,
	6: 4,
	7: 40,
	8: 92,
}

func buildQueens(n int, bounds bool) (*cp.Solver, []cp.IntVar) {
	s, err := cp.NewSolver(cp.WithName(fmt.Sprintf("%d-queens", n)))
	Expect(err).To(BeNil())

	queens := make([]cp.IntVar, n)
	up := make([]cp.IntVar, n)
	down := make([]cp.IntVar, n)
	for i := range queens {
		queens[i] = s.MakeIntVar(0, int64(n-1), fmt.Sprintf("q%d", i))
		up[i] = s.MakeSumCst(queens[i], int64(i)).Var()
		down[i] = s.MakeSumCst(queens[i], int64(-i)).Var()
	}
	for _, group := range [][]cp.IntVar{queens, up, down} {
		Expect(s.Add(s.MakeAllDifferent(group, bounds))).To(Succeed())
	}
	return s, queens
}

func countSolutions(s *cp.Solver, vars []cp.IntVar) int {
	count := 0
	Expect(s.SolveAll(vars, func([]int64) bool {
		count++
		return true
	})).To(Succeed())
	return count
}

var _ = Describe("n-queens", func() {
	When("solved with the value-based alldifferent", func() {
		It("finds the known number of solutions", func() {
			for n, want := range knownQueensCounts {
				s, queens := buildQueens(n, false)
				Expect(countSolutions(s, queens)).To(Equal(want), "n=%d", n)
			}
		})
	})

	When("solved with the range-consistent alldifferent", func() {
		It("finds the known number of solutions", func() {
			for n, want := range knownQueensCounts {
				s, queens := buildQueens(n, true)
				Expect(countSolutions(s, queens)).To(Equal(want), "n=%d", n)
			}
		})

		It("returns valid placements", func() {
			s, queens := buildQueens(8, true)
			sol, err := s.SolveFirst(queens)
			Expect(err).To(BeNil())
			Expect(sol).To(HaveLen(8))
			for i := 0; i < 8; i++ {
				for j := i + 1; j < 8; j++ {
					Expect(sol[i]).ToNot(Equal(sol[j]))
					Expect(sol[i] - sol[j]).ToNot(Equal(int64(i - j)))
					Expect(sol[i] - sol[j]).ToNot(Equal(int64(j - i)))
				}
			}
		})
	})

	When("the board has no solution", func() {
		It("reports failure", func() {
			s, queens := buildQueens(3, true)
			_, err := s.SolveFirst(queens)
			Expect(err).To(MatchError(cp.ErrFailed))
		})
	})
})

var _ = Describe("optional task chain", func() {
	buildChain := func(durations []int64, horizon int64) (*cp.Solver, []cp.IntervalVar) {
		s, err := cp.NewSolver()
		Expect(err).To(BeNil())

		tasks := make([]cp.IntervalVar, len(durations))
		for i, d := range durations {
			latest := horizon - d
			if latest < 0 {
				latest = 0
			}
			tasks[i] = s.MakeFixedDurationIntervalVar(0, latest, d, true, fmt.Sprintf("t%d", i))
		}
		// chain tasks back to back with demons on the public event hooks
		for i := 1; i < len(tasks); i++ {
			before, after := tasks[i-1], tasks[i]
			link := cp.NewDemon(fmt.Sprintf("link%d", i), func(*cp.Solver) {
				if before.MayBePerformed() && after.MayBePerformed() {
					after.SetStartMin(before.EndMin())
				}
			})
			before.WhenStartRange(link)
			before.WhenPerformedBound(link)
		}
		return s, tasks
	}

	It("drops the tasks that do not fit the horizon", func() {
		s, tasks := buildChain([]int64{4, 4, 4}, 10)

		for _, task := range tasks {
			task := task
			if !task.MayBePerformed() {
				continue
			}
			Expect(s.Apply(func() { task.SetPerformed(true) })).To(Succeed())
			Expect(s.Apply(func() { task.SetStartMax(task.StartMin()) })).To(Succeed())
		}

		Expect(tasks[0].MustBePerformed()).To(BeTrue())
		Expect(tasks[1].MustBePerformed()).To(BeTrue())
		// the third task would end at 12, past the horizon of 10
		Expect(tasks[2].CannotBePerformed()).To(BeTrue())
	})

	It("keeps every task when the horizon is generous", func() {
		s, tasks := buildChain([]int64{4, 4, 4}, 12)

		for _, task := range tasks {
			task := task
			Expect(s.Apply(func() { task.SetPerformed(true) })).To(Succeed())
			Expect(s.Apply(func() { task.SetStartMax(task.StartMin()) })).To(Succeed())
		}

		Expect(tasks[2].MustBePerformed()).To(BeTrue())
		Expect(tasks[2].StartMin()).To(Equal(int64(8)))
	})
})

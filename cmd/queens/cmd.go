package queens

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solverkit/cpengine/pkg/cp"
)

func NewQueensCommand() *cobra.Command {
	var size int
	var all bool
	var bounds bool
	var verify bool

	cmd := &cobra.Command{
		Use:   "queens",
		Short: "Solves the n-queens placement problem",
		RunE: func(cmd *cobra.Command, args []string) error {
			return solve(size, all, bounds, verify)
		},
	}
	cmd.Flags().IntVar(&size, "size", 8, "board size")
	cmd.Flags().BoolVar(&all, "all", false, "count all solutions instead of printing the first")
	cmd.Flags().BoolVar(&bounds, "bounds", false, "use the range-consistent alldifferent propagator")
	cmd.Flags().BoolVar(&verify, "verify", false, "cross-check the solution with a SAT encoding")
	return cmd
}

func solve(size int, all, bounds, verify bool) error {
	if size < 1 {
		return fmt.Errorf("board size must be positive, got %d", size)
	}
	board, err := NewBoard(size, bounds)
	if err != nil {
		return err
	}

	if all {
		count, err := board.CountSolutions()
		if err != nil {
			return err
		}
		fmt.Printf("%d solutions\n", count)
		return nil
	}

	rows, err := board.SolveFirst()
	if errors.Is(err, cp.ErrFailed) {
		fmt.Println("no solution found")
		return nil
	}
	if err != nil {
		return err
	}
	if verify {
		if err := Verify(rows); err != nil {
			return err
		}
		fmt.Println("solution verified against SAT encoding")
	}
	fmt.Print(Render(rows))
	return nil
}

package tasks

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solverkit/cpengine/pkg/cp"
)

func NewTasksCommand() *cobra.Command {
	var horizon int64
	var durations string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Schedules a chain of tasks on one machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := parseDurations(durations)
			if err != nil {
				return err
			}
			return run(ds, horizon)
		},
	}
	cmd.Flags().Int64Var(&horizon, "horizon", 20, "latest allowed end time")
	cmd.Flags().StringVar(&durations, "durations", "4,3,5,2,6", "comma-separated task durations")
	return cmd
}

func parseDurations(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ds := make([]int64, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid duration %q", p)
		}
		ds = append(ds, d)
	}
	return ds, nil
}

func run(durations []int64, horizon int64) error {
	schedule, err := NewSchedule(durations, horizon)
	if err != nil {
		return err
	}
	if err := schedule.Commit(); err != nil {
		if errors.Is(err, cp.ErrFailed) {
			fmt.Println("no feasible schedule")
			return nil
		}
		return err
	}
	fmt.Print(schedule.Render())
	return nil
}

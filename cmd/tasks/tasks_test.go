package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDurations(t *testing.T) {
	type tc struct {
		Name    string
		In      string
		Want    []int64
		WantErr bool
	}

	for _, tt := range []tc{
		{Name: "plain", In: "4,3,5", Want: []int64{4, 3, 5}},
		{Name: "spaces", In: " 1, 2 ,3", Want: []int64{1, 2, 3}},
		{Name: "single", In: "7", Want: []int64{7}},
		{Name: "junk", In: "4,x,5", WantErr: true},
		{Name: "negative", In: "4,-1", WantErr: true},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			got, err := parseDurations(tt.In)
			if tt.WantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.Want, got)
		})
	}
}

func TestScheduleTightHorizon(t *testing.T) {
	// three four-unit tasks over a ten-unit horizon: only two fit
	schedule, err := NewSchedule([]int64{4, 4, 4}, 10)
	require.NoError(t, err)
	require.NoError(t, schedule.Commit())

	assert.True(t, schedule.tasks[0].MustBePerformed())
	assert.True(t, schedule.tasks[1].MustBePerformed())
	assert.True(t, schedule.tasks[2].CannotBePerformed())
}

func TestScheduleGenerousHorizon(t *testing.T) {
	schedule, err := NewSchedule([]int64{4, 4, 4}, 12)
	require.NoError(t, err)
	require.NoError(t, schedule.Commit())

	for _, task := range schedule.tasks {
		assert.True(t, task.MustBePerformed())
	}
	// the chain packs back to back from time zero
	assert.Equal(t, int64(8), schedule.tasks[2].StartMin())
}

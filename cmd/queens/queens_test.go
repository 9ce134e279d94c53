package queens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardCounts(t *testing.T) {
	type tc struct {
		Name   string
		Size   int
		Bounds bool
		Want   int
	}

	for _, tt := range []tc{
		{Name: "4 value", Size: 4, Want: 2},
		{Name: "4 bounds", Size: 4, Bounds: true, Want: 2},
		{Name: "5 value", Size: 5, Want: 10},
		{Name: "6 bounds", Size: 6, Bounds: true, Want: 4},
		{Name: "3 has none", Size: 3, Want: 0},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			board, err := NewBoard(tt.Size, tt.Bounds)
			require.NoError(t, err)
			count, err := board.CountSolutions()
			require.NoError(t, err)
			assert.Equal(t, tt.Want, count)
		})
	}
}

func TestBoardSolveFirst(t *testing.T) {
	board, err := NewBoard(8, true)
	require.NoError(t, err)

	rows, err := board.SolveFirst()
	require.NoError(t, err)
	require.Len(t, rows, 8)
	for i := 0; i < 8; i++ {
		for j := i + 1; j < 8; j++ {
			assert.NotEqual(t, rows[i], rows[j])
			assert.NotEqual(t, rows[i]+int64(i), rows[j]+int64(j))
			assert.NotEqual(t, rows[i]-int64(i), rows[j]-int64(j))
		}
	}
}

func TestVerify(t *testing.T) {
	board, err := NewBoard(6, false)
	require.NoError(t, err)
	rows, err := board.SolveFirst()
	require.NoError(t, err)
	assert.NoError(t, Verify(rows))

	assert.Error(t, Verify([]int64{0, 0, 2, 4}))
	assert.Error(t, Verify([]int64{0, 1, 3, 5}))
}

func TestRender(t *testing.T) {
	out := Render([]int64{1, 3, 0, 2})
	assert.Equal(t, ". . Q .\nQ . . .\n. . . Q\n. Q . .\n", out)
}

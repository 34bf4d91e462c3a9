package board

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layout(rows ...string) [][]bool {
	mines := make([][]bool, len(rows))
	for i, row := range rows {
		mines[i] = make([]bool, len(row))
		for j, c := range row {
			mines[i][j] = c == '*'
		}
	}
	return mines
}

func isOpen(t *testing.T, b *Board, x, y int) bool {
	t.Helper()
	open, err := b.IsOpen(x, y)
	require.NoError(t, err)
	return open
}

func TestNewValidatesParams(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	tests := []struct {
		name                string
		height, width, x, y int
		probability         float64
		r                   *rand.Rand
	}{
		{"zero height", 0, 3, 0, 0, 0.1, r},
		{"negative width", 3, -1, 0, 0, 0.1, r},
		{"probability above one", 3, 3, 0, 0, 1.5, r},
		{"negative probability", 3, 3, 0, 0, -0.1, r},
		{"start outside", 3, 3, 3, 0, 0.1, r},
		{"nil rand", 3, 3, 0, 0, 0.1, nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := New(test.height, test.width, test.probability, test.x, test.y, test.r)
			require.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestStartCellIsSafe(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		h, w := 1+r.IntN(12), 1+r.IntN(12)
		x, y := r.IntN(h), r.IntN(w)
		b, err := New(h, w, 0.9, x, y, r)
		require.NoError(t, err)

		mine, err := b.IsMine(x, y)
		require.NoError(t, err)
		assert.False(t, mine)
		assert.True(t, isOpen(t, b, x, y))
	}
}

func TestFullyMinedBoardIsWonImmediately(t *testing.T) {
	b, err := New(4, 4, 1, 2, 1, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	assert.True(t, b.IsWon())
	count, err := b.Count(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, count)
}

func TestSingleCellBoard(t *testing.T) {
	b, err := New(1, 1, 0, 0, 0, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	count, err := b.Count(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.True(t, isOpen(t, b, 0, 0))
	assert.True(t, b.IsWon())
}

func TestEmptyBoardCascadesEverywhere(t *testing.T) {
	b, err := New(3, 3, 0, 1, 1, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	for x := range 3 {
		for y := range 3 {
			assert.True(t, isOpen(t, b, x, y), "%d:%d", x, y)
		}
	}
	assert.Equal(t, 0, b.Remaining())
	assert.True(t, b.IsWon())
}

func TestTwoByTwoWithOneMine(t *testing.T) {
	b, err := FromLayout(layout(
		".*",
		"..",
	), 0, 0)
	require.NoError(t, err)

	count, err := b.Count(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.False(t, isOpen(t, b, 1, 0), "no cascade from a numbered cell")
	assert.Equal(t, 2, b.Remaining())

	require.NoError(t, b.Open(1, 1))
	assert.False(t, b.IsWon())
	require.NoError(t, b.Open(1, 0))
	assert.True(t, b.IsWon())

	err = b.Open(0, 1)
	require.ErrorIs(t, err, ErrMineHit)
	assert.Equal(t, KindMineHit, KindOf(err))
	assert.True(t, KindOf(err).Fatal())
}

func TestFromLayoutRejectsMinedStart(t *testing.T) {
	_, err := FromLayout(layout("*."), 0, 0)
	require.ErrorIs(t, err, ErrInvalidParams)

	_, err = FromLayout(layout("..", "."), 0, 0)
	require.ErrorIs(t, err, ErrInvalidParams)

	_, err = FromLayout(nil, 0, 0)
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestMineHitKeepsState(t *testing.T) {
	b, err := FromLayout(layout(
		"...",
		".*.",
		"...",
	), 0, 0)
	require.NoError(t, err)
	before := b.Remaining()

	err = b.Open(1, 1)
	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, ActionOpen, opErr.Action)
	assert.Equal(t, 1, opErr.X)
	assert.Equal(t, 1, opErr.Y)
	assert.Equal(t, KindMineHit, opErr.Kind)

	assert.Equal(t, before, b.Remaining())
	assert.False(t, isOpen(t, b, 1, 1))
}

func TestReopenIsDuplicate(t *testing.T) {
	b, err := FromLayout(layout(
		"....",
		"....",
		"...*",
	), 0, 0)
	require.NoError(t, err)
	before := b.View()
	remaining := b.Remaining()

	for x := range 3 {
		for y := range 4 {
			if !isOpen(t, b, x, y) {
				continue
			}
			err := b.Open(x, y)
			require.ErrorIs(t, err, ErrDuplicateOperation)
		}
	}
	assert.Equal(t, before, b.View())
	assert.Equal(t, remaining, b.Remaining())
}

func TestMarkUnmark(t *testing.T) {
	b, err := FromLayout(layout(
		"..*",
		"...",
	), 0, 1)
	require.NoError(t, err)
	before := b.View()

	require.NoError(t, b.Mark(1, 2))
	marked, err := b.IsMarked(1, 2)
	require.NoError(t, err)
	assert.True(t, marked)

	require.ErrorIs(t, b.Mark(1, 2), ErrDuplicateOperation)
	require.ErrorIs(t, b.Open(1, 2), ErrOperationFailure)

	require.NoError(t, b.Unmark(1, 2))
	assert.Equal(t, before, b.View())

	require.ErrorIs(t, b.Unmark(1, 2), ErrDuplicateOperation)
	require.ErrorIs(t, b.Unmark(0, 0), ErrDuplicateOperation)
}

func TestMarkOpenCellFails(t *testing.T) {
	b, err := FromLayout(layout(".*"), 0, 0)
	require.NoError(t, err)

	require.ErrorIs(t, b.Mark(0, 0), ErrOperationFailure)
	require.ErrorIs(t, b.Unmark(0, 0), ErrOperationFailure)
	marked, err := b.IsMarked(0, 0)
	require.NoError(t, err)
	assert.False(t, marked)
}

func TestOutOfRange(t *testing.T) {
	b, err := FromLayout(layout("..", ".."), 0, 0)
	require.NoError(t, err)

	positions := [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {5, 5}}
	for _, p := range positions {
		assert.False(t, b.IsValidPosition(p[0], p[1]))
		assert.ErrorIs(t, b.Open(p[0], p[1]), ErrOutOfRange)
		assert.ErrorIs(t, b.Mark(p[0], p[1]), ErrOutOfRange)
		assert.ErrorIs(t, b.Unmark(p[0], p[1]), ErrOutOfRange)
		_, err := b.IsOpen(p[0], p[1])
		assert.ErrorIs(t, err, ErrOutOfRange)
		_, err = b.IsMarked(p[0], p[1])
		assert.ErrorIs(t, err, ErrOutOfRange)
		_, err = b.IsMine(p[0], p[1])
		assert.ErrorIs(t, err, ErrOutOfRange)
		_, err = b.Count(p[0], p[1])
		assert.ErrorIs(t, err, ErrOutOfRange)
	}
}

func TestCascadeStopsAtMarks(t *testing.T) {
	b, err := FromLayout(layout(
		".....",
		"....*",
		".....",
	), 0, 4)
	require.NoError(t, err)
	assert.False(t, isOpen(t, b, 0, 0))

	require.NoError(t, b.Mark(1, 0))
	require.NoError(t, b.Open(0, 0))

	marked, err := b.IsMarked(1, 0)
	require.NoError(t, err)
	assert.True(t, marked)
	assert.False(t, isOpen(t, b, 1, 0))
	assert.True(t, isOpen(t, b, 2, 0))
	assert.False(t, isOpen(t, b, 2, 4), "only reachable through numbered cells")
	assert.Equal(t, 2, b.Remaining())

	require.NoError(t, b.Unmark(1, 0))
	require.NoError(t, b.Open(1, 0))
	assert.False(t, b.IsWon())
	require.NoError(t, b.Open(2, 4))
	assert.True(t, b.IsWon())
}

// region computes the cells a zero-cascade from x,y should open.
func region(b *Board, x, y int) map[[2]int]bool {
	seen := map[[2]int]bool{}
	var visit func(x, y int)
	visit = func(x, y int) {
		if !b.IsValidPosition(x, y) || seen[[2]int{x, y}] || b.cells[x][y].Mine {
			return
		}
		seen[[2]int{x, y}] = true
		if b.counts[x][y] != 0 {
			return
		}
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				visit(x+dx, y+dy)
			}
		}
	}
	visit(x, y)
	return seen
}

func TestCascadeOpensZeroRegionAndBorder(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for range 300 {
		h, w := 1+r.IntN(15), 1+r.IntN(15)
		x, y := r.IntN(h), r.IntN(w)
		b, err := New(h, w, 0.15, x, y, r)
		require.NoError(t, err)

		want := region(b, x, y)
		for i := range h {
			for j := range w {
				open := isOpen(t, b, i, j)
				assert.Equal(t, want[[2]int{i, j}], open, "%dx%d from %d:%d, cell %d:%d", h, w, x, y, i, j)
				if b.cells[i][j].Mine {
					assert.False(t, open)
				}
			}
		}
		assert.Equal(t, len(want), countSafe(b)-b.Remaining())
	}
}

func countSafe(b *Board) int {
	n := 0
	for _, row := range b.cells {
		for _, c := range row {
			if !c.Mine {
				n++
			}
		}
	}
	return n
}

func TestWonExactlyWhenAllSafeCellsOpen(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for range 100 {
		h, w := 1+r.IntN(10), 1+r.IntN(10)
		b, err := New(h, w, 0.2, r.IntN(h), r.IntN(w), r)
		require.NoError(t, err)

		for !b.IsWon() {
			x, y, ok := firstClosedSafe(b)
			require.True(t, ok, "board not won but no safe cell closed")
			require.NoError(t, b.Open(x, y))
		}

		_, _, ok := firstClosedSafe(b)
		assert.False(t, ok)
		assert.Equal(t, 0, b.Remaining())
	}
}

func firstClosedSafe(b *Board) (int, int, bool) {
	for i, row := range b.cells {
		for j, c := range row {
			if !c.Mine && !c.Open {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func TestLargeBoardDoesNotOverflow(t *testing.T) {
	b, err := New(1000, 1000, 0, 0, 0, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	assert.True(t, b.IsWon())
}

func TestCheckSize(t *testing.T) {
	const maxInt = int(^uint(0) >> 1)

	tests := []struct {
		name                    string
		height, width, maxCells int
		ok                      bool
	}{
		{"at limit", 1024, 1024, 1 << 20, true},
		{"one row over", 1025, 1024, 1 << 20, false},
		{"one column over", 1024, 1025, 1 << 20, false},
		{"product overflows", maxInt/2 + 1, 4, 1 << 20, false},
		{"huge", 100000, 100000, 1 << 20, false},
		{"no limit", 100000, 100000, 0, true},
		{"empty", 0, 10, 1 << 20, false},
		{"negative", 10, -1, 0, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := CheckSize(test.height, test.width, test.maxCells)
			if test.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestView(t *testing.T) {
	b, err := FromLayout(layout(
		"..*",
		"...",
	), 1, 1)
	require.NoError(t, err)
	require.NoError(t, b.Mark(0, 0))

	v := b.View()
	assert.Equal(t, 2, v.Height())
	assert.Equal(t, 3, v.Width())
	assert.Equal(t, CellView{State: Marked}, v[0][0])
	assert.Equal(t, CellView{State: Opened, Count: 1}, v[1][1])
	assert.Equal(t, CellView{State: Closed}, v[0][2])
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, KindOutOfRange, KindOf(opError(ActionOpen, 9, 9, KindOutOfRange)))
	assert.Equal(t, "open 9:9: position out of range", opError(ActionOpen, 9, 9, KindOutOfRange).Error())
	assert.False(t, KindDuplicateOperation.Fatal())
}

package board

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
)

var Log *slog.Logger = slog.Default()

// Board is a single minesweeper game. It is not safe for concurrent use.
type Board struct {
	cells     [][]Cell
	counts    [][]int /* mined neighbours, fixed after construction */
	remaining int     /* safe cells not yet opened */
}

// New places mines with the given per-cell probability, never at x,y, and
// opens x,y. Rows are indexed by x, columns by y.
func New(height, width int, probability float64, x, y int, r *rand.Rand) (*Board, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidParams, height, width)
	}
	if !(0 <= probability && probability <= 1) {
		return nil, fmt.Errorf("%w: probability %v", ErrInvalidParams, probability)
	}
	if !(0 <= x && x < height && 0 <= y && y < width) {
		return nil, fmt.Errorf("%w: start %d:%d outside %dx%d", ErrInvalidParams, x, y, height, width)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidParams)
	}

	mines := make([][]bool, height)
	for i := range height {
		mines[i] = make([]bool, width)
		for j := range width {
			if i == x && j == y {
				continue
			}
			mines[i][j] = r.Float64() < probability
		}
	}

	return FromLayout(mines, x, y)
}

// CheckSize rejects boards with more than maxCells cells. A maxCells of 0
// or less disables the limit.
func CheckSize(height, width, maxCells int) error {
	if height <= 0 || width <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidParams, height, width)
	}
	if maxCells > 0 && height > maxCells/width {
		return fmt.Errorf("%w: size %dx%d exceeds %d cells", ErrInvalidParams, height, width, maxCells)
	}
	return nil
}

// FromLayout builds a board from a fixed mine layout and opens x,y, which
// must not be a mine.
func FromLayout(mines [][]bool, x, y int) (*Board, error) {
	height := len(mines)
	if height == 0 || len(mines[0]) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidParams)
	}
	width := len(mines[0])

	b := &Board{
		cells:  make([][]Cell, height),
		counts: make([][]int, height),
	}
	for i := range height {
		if len(mines[i]) != width {
			return nil, fmt.Errorf("%w: ragged layout at row %d", ErrInvalidParams, i)
		}
		b.cells[i] = make([]Cell, width)
		b.counts[i] = make([]int, width)
		for j := range width {
			if mines[i][j] {
				b.cells[i][j].Mine = true
			} else {
				b.remaining++
			}
		}
	}

	if !b.IsValidPosition(x, y) {
		return nil, fmt.Errorf("%w: start %d:%d outside %dx%d", ErrInvalidParams, x, y, height, width)
	}
	if b.cells[x][y].Mine {
		return nil, fmt.Errorf("%w: mine in starting cell", ErrInvalidParams)
	}

	for i := range height {
		for j := range width {
			b.counts[i][j] = b.countMines(i, j)
		}
	}

	Log.Debug("board created",
		slog.Int("height", height),
		slog.Int("width", width),
		slog.Int("safe", b.remaining),
	)

	if err := b.Open(x, y); err != nil {
		return nil, fmt.Errorf("unable to open starting cell: %w", err)
	}
	return b, nil
}

func (b *Board) countMines(x, y int) int {
	n := 0
	for _, d := range offsets {
		xx, yy := x+d[0], y+d[1]
		if b.IsValidPosition(xx, yy) && b.cells[xx][yy].Mine {
			n++
		}
	}
	return n
}

func (b *Board) Height() int { return len(b.cells) }

func (b *Board) Width() int { return len(b.cells[0]) }

// Remaining is the number of safe cells still closed.
func (b *Board) Remaining() int { return b.remaining }

func (b *Board) IsValidPosition(x, y int) bool {
	return 0 <= x && x < len(b.cells) && 0 <= y && y < len(b.cells[0])
}

func (b *Board) IsWon() bool {
	return b.remaining == 0
}

func (b *Board) cell(x, y int) (*Cell, error) {
	if !b.IsValidPosition(x, y) {
		return nil, opError(ActionQuery, x, y, KindOutOfRange)
	}
	return &b.cells[x][y], nil
}

func (b *Board) IsOpen(x, y int) (bool, error) {
	c, err := b.cell(x, y)
	if err != nil {
		return false, err
	}
	return c.Open, nil
}

func (b *Board) IsMarked(x, y int) (bool, error) {
	c, err := b.cell(x, y)
	if err != nil {
		return false, err
	}
	return c.Marked, nil
}

func (b *Board) IsMine(x, y int) (bool, error) {
	c, err := b.cell(x, y)
	if err != nil {
		return false, err
	}
	return c.Mine, nil
}

// Count returns the number of mines around x,y.
func (b *Board) Count(x, y int) (int, error) {
	if !b.IsValidPosition(x, y) {
		return 0, opError(ActionQuery, x, y, KindOutOfRange)
	}
	return b.counts[x][y], nil
}

func (b *Board) Mark(x, y int) error {
	if !b.IsValidPosition(x, y) {
		return opError(ActionMark, x, y, KindOutOfRange)
	}
	c := &b.cells[x][y]
	switch {
	case c.Open:
		return opError(ActionMark, x, y, KindOperationFailure)
	case c.Marked:
		return opError(ActionMark, x, y, KindDuplicateOperation)
	}
	c.Marked = true
	return nil
}

func (b *Board) Unmark(x, y int) error {
	if !b.IsValidPosition(x, y) {
		return opError(ActionUnmark, x, y, KindOutOfRange)
	}
	c := &b.cells[x][y]
	switch {
	case c.Open:
		return opError(ActionUnmark, x, y, KindOperationFailure)
	case !c.Marked:
		return opError(ActionUnmark, x, y, KindDuplicateOperation)
	}
	c.Marked = false
	return nil
}

// open reveals a single cell. A mine is reported but stays closed.
func (b *Board) open(x, y int) Kind {
	c := &b.cells[x][y]
	switch {
	case c.Open:
		return KindDuplicateOperation
	case c.Marked:
		return KindOperationFailure
	case c.Mine:
		return KindMineHit
	}
	c.Open = true
	b.remaining--
	return KindNone
}

// Open reveals x,y. If it has no mined neighbours, every neighbour is opened
// as well, recursively; neighbours that cannot be opened are skipped.
func (b *Board) Open(x, y int) error {
	if !b.IsValidPosition(x, y) {
		return opError(ActionOpen, x, y, KindOutOfRange)
	}
	if k := b.open(x, y); k != KindNone {
		return opError(ActionOpen, x, y, k)
	}
	if b.counts[x][y] != 0 {
		return nil
	}

	/*
	 * Flood the zero region. Only cells that were closed a moment ago are
	 * pushed, so each cell enters the stack at most once.
	 */
	opened := 1
	stack := [][2]int{{x, y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range offsets {
			xx, yy := p[0]+d[0], p[1]+d[1]
			if !b.IsValidPosition(xx, yy) {
				continue
			}
			if b.open(xx, yy) != KindNone {
				continue
			}
			opened++
			if b.counts[xx][yy] == 0 {
				stack = append(stack, [2]int{xx, yy})
			}
		}
	}

	Log.Debug("cascade",
		slog.Int("x", x), slog.Int("y", y),
		slog.Int("opened", opened), slog.Int("remaining", b.remaining),
	)
	return nil
}

// View snapshots what the player can see.
func (b *Board) View() View {
	v := make(View, len(b.cells))
	for i, row := range b.cells {
		v[i] = make([]CellView, len(row))
		for j, c := range row {
			switch {
			case c.Open:
				v[i][j] = CellView{State: Opened, Count: b.counts[i][j]}
			case c.Marked:
				v[i][j] = CellView{State: Marked}
			default:
				v[i][j] = CellView{State: Closed}
			}
		}
	}
	return v
}

package board

type Cell struct {
	Open, Marked, Mine bool
}

type CellState int8

const (
	Closed CellState = iota
	Marked
	Opened
)

func (s CellState) String() string {
	switch s {
	case Closed:
		return "closed"
	case Marked:
		return "marked"
	case Opened:
		return "opened"
	default:
		return "!"
	}
}

// CellView is what a renderer may know about a cell. Count is only
// meaningful when State is [Opened].
type CellView struct {
	State CellState
	Count int
}

// View is a height x width snapshot of the player-visible board.
type View [][]CellView

func (v View) Height() int {
	return len(v)
}

func (v View) Width() int {
	if len(v) == 0 {
		return 0
	}
	return len(v[0])
}

// offsets of the 8 neighbours of a cell
var offsets = [8][2]int{
	{1, 0}, {1, 1}, {1, -1},
	{0, 1}, {0, -1},
	{-1, 1}, {-1, 0}, {-1, -1},
}

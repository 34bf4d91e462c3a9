package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/board"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrArgCount      = errors.New("invalid number of arguments")
	ErrBadCoordinate = errors.New("invalid coordinate")
)

// Command is a parsed player move with 0-indexed coordinates.
type Command struct {
	Action board.Action
	X, Y   int
}

func (c Command) String() string {
	return fmt.Sprintf("%s %d %d", c.Action, c.X+1, c.Y+1)
}

// Maps known action words to actions
var actions = map[string]board.Action{
	"o":      board.ActionOpen,
	"open":   board.ActionOpen,
	"m":      board.ActionMark,
	"mark":   board.ActionMark,
	"u":      board.ActionUnmark,
	"unmark": board.ActionUnmark,
}

var operations = map[board.Action]func(*board.Board, int, int) error{
	board.ActionOpen:   (*board.Board).Open,
	board.ActionMark:   (*board.Board).Mark,
	board.ActionUnmark: (*board.Board).Unmark,
}

func ParseAction(s string) (board.Action, error) {
	a, ok := actions[strings.ToLower(s)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
	return a, nil
}

// parseIndex converts a 1-indexed user coordinate.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", ErrBadCoordinate, s)
	}
	return n - 1, nil
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = parseIndex(twoStrings[0]); err != nil {
		return
	}
	y, err = parseIndex(twoStrings[1])
	return
}

// Parse reads "<action> <x> <y>" with 1-indexed coordinates.
func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, ErrArgCount
	}
	action, err := ParseAction(parts[0])
	if err != nil {
		return Command{}, err
	}
	if len(parts) != 3 {
		return Command{}, ErrArgCount
	}
	x, y, err := parseXY(parts[1:])
	if err != nil {
		return Command{}, err
	}
	return Command{Action: action, X: x, Y: y}, nil
}

// Start holds the board size and first click of a new game, 0-indexed.
type Start struct {
	Height, Width int
	X, Y          int
}

// ParseStart reads "<height> <width> <x> <y>".
func ParseStart(line string) (Start, error) {
	parts := strings.Fields(line)
	if len(parts) != 4 {
		return Start{}, ErrArgCount
	}
	var s Start
	h, w, err := parseXY(parts[:2])
	if err != nil {
		return Start{}, err
	}
	s.Height, s.Width = h+1, w+1
	if s.X, s.Y, err = parseXY(parts[2:]); err != nil {
		return Start{}, err
	}
	if s.X >= s.Height || s.Y >= s.Width {
		return Start{}, fmt.Errorf("%w: %d %d outside %dx%d",
			ErrBadCoordinate, s.X+1, s.Y+1, s.Height, s.Width)
	}
	return s, nil
}

// Apply runs c against b.
func Apply(b *board.Board, c Command) error {
	op, ok := operations[c.Action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, c.Action)
	}
	return op(b, c.X, c.Y)
}

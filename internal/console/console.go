package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/board"
	"github.com/vancomm/minesweeper/internal/command"
	"github.com/vancomm/minesweeper/internal/messages"
	"github.com/vancomm/minesweeper/internal/render"
)

type Result int

const (
	Aborted Result = iota // input ended before the game did
	Won
	Lost
)

func (r Result) String() string {
	switch r {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "aborted"
	}
}

type Options struct {
	Probability float64
	MaxCells    int
	// Pause is how long an error message stays on screen before the board
	// is redrawn.
	Pause time.Duration
}

// Game plays one round of minesweeper over text streams.
type Game struct {
	in      *bufio.Scanner
	out     io.Writer
	errOut  io.Writer
	printer *messages.Printer
	rnd     *rand.Rand
	log     *logrus.Logger
	opts    Options
}

func New(
	in io.Reader, out, errOut io.Writer,
	printer *messages.Printer,
	rnd *rand.Rand,
	log *logrus.Logger,
	opts Options,
) *Game {
	return &Game{
		in:      bufio.NewScanner(in),
		out:     out,
		errOut:  errOut,
		printer: printer,
		rnd:     rnd,
		log:     log,
		opts:    opts,
	}
}

func (g *Game) readLine() (string, bool) {
	if !g.in.Scan() {
		return "", false
	}
	return g.in.Text(), true
}

func (g *Game) fail(ctx context.Context, k messages.Key) error {
	fmt.Fprint(g.errOut, g.printer.Text(k))
	if g.opts.Pause <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(g.opts.Pause):
		return nil
	}
}

func (g *Game) refresh(b *board.Board) {
	render.Clear(g.out)
	render.Board(g.out, b.View())
}

func (g *Game) welcome(ctx context.Context) (*command.Start, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fmt.Fprint(g.out, g.printer.Text(messages.Welcome))
		line, ok := g.readLine()
		if !ok {
			return nil, nil
		}
		start, err := command.ParseStart(line)
		if err == nil {
			err = board.CheckSize(start.Height, start.Width, g.opts.MaxCells)
		}
		if err == nil {
			return &start, nil
		}
		g.log.WithError(err).WithField("input", line).Debug("invalid start")
		if err := g.fail(ctx, messages.StreamError); err != nil {
			return nil, err
		}
	}
}

// Run asks for the board size and first move, then plays until the board is
// won, a mine is hit or the input ends.
func (g *Game) Run(ctx context.Context) (Result, error) {
	start, err := g.welcome(ctx)
	if err != nil || start == nil {
		return Aborted, err
	}

	b, err := board.New(
		start.Height, start.Width, g.opts.Probability, start.X, start.Y, g.rnd,
	)
	if err != nil {
		return Aborted, fmt.Errorf("unable to create board: %w", err)
	}
	g.log.WithFields(logrus.Fields{
		"height":    start.Height,
		"width":     start.Width,
		"remaining": b.Remaining(),
	}).Info("game started")

	for !b.IsWon() {
		if err := ctx.Err(); err != nil {
			return Aborted, err
		}
		g.refresh(b)
		fmt.Fprint(g.out, g.printer.Text(messages.RequiresAction))

		line, ok := g.readLine()
		if !ok {
			g.log.Info("input closed")
			return Aborted, nil
		}

		c, err := command.Parse(line)
		if err == nil {
			err = command.Apply(b, c)
		}
		if err == nil {
			g.log.WithField("command", c.String()).Debug("applied")
			continue
		}

		kind := board.KindOf(err)
		g.log.WithError(err).WithField("kind", kind.String()).Debug("rejected")
		if kind.Fatal() {
			fmt.Fprint(g.errOut, g.printer.Outcome(err))
			g.log.WithField("command", c.String()).Info("mine hit")
			return Lost, nil
		}
		if err := g.fail(ctx, messages.KeyOf(err)); err != nil {
			return Aborted, err
		}
	}

	g.refresh(b)
	fmt.Fprint(g.out, g.printer.Text(messages.Congratulate))
	g.readLine()
	g.log.Info("game won")
	return Won, nil
}

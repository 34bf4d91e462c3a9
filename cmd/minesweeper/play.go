package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/console"
	"github.com/vancomm/minesweeper/internal/logging"
	"github.com/vancomm/minesweeper/internal/messages"
)

var (
	pause time.Duration
	seed  uint64
)

func init() {
	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		Long: `Play one game of minesweeper in the terminal.

Enter the board size and the first cell to open as "height width row column",
then moves as "o|m|u row column". Rows and columns start at 1.`,
		RunE: runPlay,
	}

	playCmd.Flags().DurationVar(&pause, "pause", time.Second, "How long error messages stay on screen")
	playCmd.Flags().Uint64Var(&seed, "seed", 0, "Mine placement seed (0 picks a random one)")

	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	v, err := loadConfig()
	if err != nil {
		return err
	}
	game, err := config.NewGame(v)
	if err != nil {
		return err
	}
	log, err := logging.NewConsole(config.NewLog(v), config.Development(v))
	if err != nil {
		return fmt.Errorf("unable to set up logging: %w", err)
	}

	if seed == 0 {
		seed = rand.Uint64()
	}
	log.WithFields(logrus.Fields{
		"seed":        seed,
		"probability": game.Probability,
		"language":    game.Language,
	}).Info("starting console game")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	g := console.New(
		os.Stdin, os.Stdout, os.Stderr,
		messages.NewPrinter(game.Language),
		rand.New(rand.NewPCG(seed, seed)),
		log,
		console.Options{Probability: game.Probability, MaxCells: game.MaxCells, Pause: pause},
	)
	result, err := g.Run(ctx)
	if err != nil {
		log.WithError(err).Error("console game failed")
		return err
	}
	log.WithField("result", result.String()).Info("console game finished")
	return nil
}

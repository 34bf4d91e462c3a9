package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper/internal/app"
	"github.com/vancomm/minesweeper/internal/board"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/logging"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve game sessions over HTTP and WebSocket",
		RunE:  runServe,
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	v, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(config.Development(v))
	board.Log = logger

	a, err := app.New(logger, v)
	if err != nil {
		logger.Error("failed to configure server", slog.Any("error", err))
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := a.Start(ctx); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		return err
	}
	return nil
}

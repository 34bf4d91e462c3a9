package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vancomm/minesweeper/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "minesweeper",
	Short: "Single-player minesweeper",
	Long: `Play minesweeper in the terminal or serve games over HTTP.

Settings come from MINES_* environment variables and an optional config file.

Examples:
  minesweeper play
  MINES_LANGUAGE=zh minesweeper play
  minesweeper serve --config minesweeper.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
}

func loadConfig() (*viper.Viper, error) {
	return config.Load(configPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

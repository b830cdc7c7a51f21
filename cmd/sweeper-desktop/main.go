package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/journal"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/render/canvas"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "config", "", "config file path")
}

func main() {
	flag.Parse()

	_ = config.LoadDotEnv()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("unable to load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := cfg.NewLogger()

	j, err := journal.New(cfg.Journal)
	if err != nil {
		logger.Error("unable to open journal", slog.Any("error", err))
		os.Exit(1)
	}

	params := cfg.Board.Params()
	game := canvas.New(logger, params, mines.NewRand(), j)

	ebiten.SetWindowSize(game.Size())
	ebiten.SetWindowTitle(canvas.Title(params))

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("no game started", slog.Any("error", err))
		os.Exit(1)
	}
}

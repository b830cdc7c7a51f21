package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/journal"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/render/term"
)

var (
	configPath string
	device     string
)

func init() {
	flag.StringVar(&configPath, "config", "", "config file path")
	flag.StringVar(&device, "tty", "", "terminal device to play on (default: this terminal)")
}

func main() {
	flag.Parse()

	_ = config.LoadDotEnv()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("unable to load config", slog.Any("error", err))
		os.Exit(1)
	}
	if device == "" {
		device = cfg.Surface
	}
	logger := cfg.NewLogger()

	screen, err := term.Open(device)
	if err != nil {
		logger.Error("no game started", slog.String("tty", device), slog.Any("error", err))
		os.Exit(1)
	}
	defer screen.Fini()

	j, err := journal.New(cfg.Journal)
	if err != nil {
		screen.Fini()
		logger.Error("unable to open journal", slog.Any("error", err))
		os.Exit(1)
	}

	board, err := mines.NewBoard(cfg.Board.Params(), nil, mines.WithObserver(j))
	if err != nil {
		screen.Fini()
		logger.Error("unable to create board", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Debug("layout\n" + board.ContentString())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = term.NewLoop(logger, screen, board).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("game loop stopped", slog.Any("error", err))
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/park285/chess-duel/internal/chessbuilder"
	appcfg "github.com/park285/chess-duel/internal/config"
	"github.com/park285/chess-duel/internal/obslog"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	cfg, err := appcfg.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := chessbuilder.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("init_failed", zap.Error(err))
	}
	defer func() { _ = deps.Close() }()

	if err := deps.Server.Run(ctx); err != nil {
		logger.Error("server_failed", zap.Error(err))
		os.Exit(1)
	}
}

package chessbuilder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/park285/chess-duel/internal/config"
	"github.com/park285/chess-duel/internal/lobby"
	"github.com/park285/chess-duel/internal/msgcat"
	"github.com/park285/chess-duel/internal/server"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Deps struct {
	Server   *server.Server
	Registry *lobby.Registry
	Catalog  *msgcat.Catalog
	Redis    *redis.Client
}

func New(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (*Deps, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	catalog, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	// Identifier directory (Redis optional)
	var dir lobby.Directory
	var rdb *redis.Client
	if strings.TrimSpace(cfg.RedisURL) != "" {
		dctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		rdb, err = lobby.DialRedis(dctx, cfg.RedisURL)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("init redis: %w", err)
		}
		dir = lobby.NewRedisDirectory(rdb, cfg.IdentifierTTL)
		logger.Info("identifier_directory", zap.String("backend", "redis"), zap.Duration("ttl", cfg.IdentifierTTL))
	} else {
		dir = lobby.NewMemoryDirectory()
		logger.Info("identifier_directory", zap.String("backend", "memory"))
	}

	registry := lobby.NewRegistry(lobby.IdentifierGenerator{}, dir, catalog)
	srv := server.New(server.Options{
		Addr:           cfg.Addr(),
		WriteTimeout:   cfg.WriteTimeout,
		PingInterval:   cfg.PingInterval,
		AllowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}, registry)

	return &Deps{Server: srv, Registry: registry, Catalog: catalog, Redis: rdb}, nil
}

func (d *Deps) Close() error {
	if d == nil || d.Redis == nil {
		return nil
	}
	return d.Redis.Close()
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/labyrinth/internal/ai"
	"github.com/udisondev/labyrinth/internal/config"
	"github.com/udisondev/labyrinth/internal/controller"
	"github.com/udisondev/labyrinth/internal/crypto"
	"github.com/udisondev/labyrinth/internal/db"
	"github.com/udisondev/labyrinth/internal/gameserver"
	"github.com/udisondev/labyrinth/internal/matchmaking"
	"github.com/udisondev/labyrinth/internal/world"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := config.Path()
	cfg, err := config.LoadLabyrinth(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel, _ := config.ParseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(cfg.AIDebug || logLevel == slog.LevelDebug)

	slog.Info("labyrinth starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"matchmaking_port", cfg.MatchmakingPort,
		"ports", fmt.Sprintf("%d+%d", cfg.Controller.PortRangeStart, cfg.Controller.PortRangeSize))

	var cipher *crypto.DatagramCipher
	if cfg.Session.CipherKey != "" {
		cipher, err = crypto.NewDatagramCipher([]byte(cfg.Session.CipherKey))
		if err != nil {
			return fmt.Errorf("creating datagram cipher: %w", err)
		}
		slog.Info("datagram encryption enabled")
	}

	var store controller.MatchStore
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")
		store = db.NewMatchRepository(database.Pool())
	}

	ctrl := controller.New(controller.Config{
		PlayersPerSession: cfg.Controller.PlayersPerSession,
		MaxSessions:       cfg.Controller.MaxSessions,
		Session:           sessionConfig(cfg.Session, cipher),
	},
		controller.NewPortPool(cfg.Controller.PortRangeStart, cfg.Controller.PortRangeSize),
		controller.UDPListener(cfg.BindAddress),
		store,
		slog.Default().With("component", "controller"),
	)

	front := matchmaking.New(matchmaking.Config{
		VersionMajor: cfg.GameVersionMajor,
		ReadBuffer:   cfg.Session.ReadBuffer,
		Cipher:       cipher,
		Logger:       slog.Default().With("component", "matchmaking"),
	}, ctrl)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctrl.Run(gctx); err != nil {
			return fmt.Errorf("controller: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		addr := net.JoinHostPort(cfg.BindAddress, strconv.Itoa(cfg.MatchmakingPort))
		if err := front.ListenAndServe(gctx, addr); err != nil {
			return fmt.Errorf("matchmaking: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// sessionConfig maps the YAML session section onto the session template.
func sessionConfig(c config.Session, cipher *crypto.DatagramCipher) gameserver.Config {
	sc := gameserver.DefaultConfig()
	sc.TickInterval = c.TickInterval
	sc.IdleTimeout = c.IdleTimeout
	sc.ReadBuffer = c.ReadBuffer
	sc.Cipher = cipher

	sc.World = world.DefaultConfig()
	sc.World.ChunkCount = c.ChunkCount
	sc.World.ChunkSize = c.ChunkSize
	sc.World.Monsters = c.Monsters
	sc.World.Swords = c.Swords
	sc.World.RespawnDelay = c.RespawnDelay
	sc.World.RespawnInvulnerability = c.RespawnInvulnerability
	sc.World.DuelInvulnerability = c.DuelInvulnerability

	sc.AI = ai.DefaultConfig()
	sc.AI.AggroRadius = c.AggroRadius
	return sc
}

package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/config"
	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/repository"
	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/repository/storage"
	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/terminal"
	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/usecase"
	"github.com/rocketscienceinc/dots-and-boxes-backend/transport/rest"
	"github.com/rocketscienceinc/dots-and-boxes-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the HTTP and WebSocket servers until a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signalContext(log)
	defer cancel()

	if conf.Redis.Host == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	resultRepo := repository.NewResultRepository(redisStorage.Connection, conf.Redis.ResultsTTL)
	leaderboardRepo := repository.NewLeaderboardRepository(redisStorage.Connection)
	tableManager := usecase.NewTableManager(logger, tableSettings(conf), resultRepo, leaderboardRepo)

	wsServer := websocket.New(logger, tableManager, conf.ReconnectTimeout)
	tableManager.SetNotifier(wsServer)

	restServer := rest.New(logger, tableManager, resultRepo, leaderboardRepo)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// RunTerminal - plays a hot-seat game on stdin/stdout. Finished games are not archived.
func RunTerminal(logger *slog.Logger, conf *config.Config, colors bool) error {
	ctx, cancel := signalContext(logger.With("component", "app"))
	defer cancel()

	tableManager := usecase.NewTableManager(logger, tableSettings(conf), nil, nil)

	session := terminal.NewSession(logger, tableManager, terminal.NewRenderer(colors), os.Stdin, os.Stdout)
	tableManager.SetNotifier(session)

	if err := session.Run(ctx); err != nil {
		return fmt.Errorf("terminal session failed: %w", err)
	}

	return nil
}

func signalContext(log *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}

		signal.Stop(sigs)
	}()

	return ctx, cancel
}

func tableSettings(conf *config.Config) usecase.Settings {
	return usecase.Settings{
		DefaultGridSize: conf.Game.DefaultGridSize,
		MinGridSize:     conf.Game.MinGridSize,
		MaxGridSize:     conf.Game.MaxGridSize,
		DefaultPlayers:  conf.Game.DefaultPlayers,
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	app "github.com/rocketscienceinc/dots-and-boxes-backend/internal"
	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/config"
)

// main - is the entry point of the application. It loads .env, parses the command line and runs the chosen command.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env file: %v\n", err)
	}

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "dots-and-boxes",
		Usage: "dots and boxes game server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the yaml config, empty reads the environment only",
				Value:   "config.yml",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP and WebSocket servers",
				Action: func(_ context.Context, cmd *cli.Command) error {
					conf := config.MustLoad(cmd.String("config"))

					return app.RunApp(initLogger(conf, os.Stdout), conf)
				},
			},
			{
				Name:  "play",
				Usage: "play a hot-seat game in the terminal",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-color",
						Usage: "disable colored output",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					conf := config.MustLoad(cmd.String("config"))

					// stdout belongs to the board
					return app.RunTerminal(initLogger(conf, os.Stderr), conf, !cmd.Bool("no-color"))
				},
			},
		},
	}
}

// initialize logger.
func initLogger(conf *config.Config, w io.Writer) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/apperror"
	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/entity"
)

const helpText = `commands:
  h-X-Y      draw the horizontal edge from dot (X,Y) to (X+1,Y)
  v-X-Y      draw the vertical edge from dot (X,Y) to (X,Y+1)
  new        restart with the current grid and players
  size N     choose the grid size for the next game
  add        add a player to the next game
  remove     remove the last player from the next game
  apply      start a new game with the chosen settings
  help       show this help
  quit       leave the game
`

var errQuit = errors.New("quit")

type tableUseCase interface {
	CreateTable(ctx context.Context) (*entity.Table, error)
	DeleteTable(ctx context.Context, id string) error

	SelectGridSize(ctx context.Context, id string, size int) (*entity.Table, error)
	AddPlayer(ctx context.Context, id string) (*entity.Table, error)
	RemovePlayer(ctx context.Context, id string) (*entity.Table, error)
	ApplySettings(ctx context.Context, id string) (*entity.Table, error)
	NewGame(ctx context.Context, id string) (*entity.Table, error)

	SelectEdge(ctx context.Context, id string, edgeID entity.EdgeID, playerID int) (*entity.Table, *entity.MoveResult, error)
}

// Session is a hot-seat game played through line commands.
type Session struct {
	logger   *slog.Logger
	tables   tableUseCase
	renderer *Renderer

	in  io.Reader
	out io.Writer
}

func NewSession(logger *slog.Logger, tables tableUseCase, renderer *Renderer, in io.Reader, out io.Writer) *Session {
	return &Session{
		logger:   logger.With("component", "terminal"),
		tables:   tables,
		renderer: renderer,
		in:       in,
		out:      out,
	}
}

// Notify prints table notifications above the board.
func (that *Session) Notify(_ context.Context, _ string, notification entity.Notification) {
	color := ""
	if notification.Kind == entity.NotificationPlayerLimit {
		color = "rose-500"
	}

	that.printf("* %s\n", that.renderer.Paint(color, notification.Message))
}

// Run plays until quit, end of input or ctx cancellation.
func (that *Session) Run(ctx context.Context) error {
	table, err := that.tables.CreateTable(ctx)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	defer func() {
		if err := that.tables.DeleteTable(context.WithoutCancel(ctx), table.ID); err != nil {
			that.logger.Warn("failed to delete table", "table", table.ID, "error", err)
		}
	}()

	if err = that.renderer.Render(that.out, table); err != nil {
		return err
	}

	scanner := bufio.NewScanner(that.in)

	for {
		that.printf("> ")

		if !scanner.Scan() {
			that.printf("\n")
			return scanner.Err()
		}

		if err = ctx.Err(); err != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		next, err := that.execute(ctx, table.ID, line)
		if errors.Is(err, errQuit) {
			return nil
		}

		if err != nil && !announced(err) {
			that.printf("%s\n", that.renderer.Paint("rose-500", err.Error()))
		}

		if next == nil {
			continue
		}

		if err = that.renderer.Render(that.out, next); err != nil {
			return err
		}
	}
}

// execute applies one command line. A nil table means nothing to redraw.
func (that *Session) execute(ctx context.Context, tableID, line string) (*entity.Table, error) {
	fields := strings.Fields(line)

	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		return nil, errQuit
	case "help", "?":
		that.printf("%s", helpText)
		return nil, nil
	case "new":
		return that.tables.NewGame(ctx, tableID)
	case "add":
		return that.tables.AddPlayer(ctx, tableID)
	case "remove":
		return that.tables.RemovePlayer(ctx, tableID)
	case "apply":
		return that.tables.ApplySettings(ctx, tableID)
	case "size":
		if len(fields) != 2 {
			return nil, errors.New("usage: size N")
		}

		size, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("invalid size %q", fields[1])
		}

		return that.tables.SelectGridSize(ctx, tableID, size)
	default:
		table, _, err := that.tables.SelectEdge(ctx, tableID, entity.EdgeID(strings.ToLower(fields[0])), 0)
		if err != nil {
			// a rejected move leaves the board as it was
			return nil, err
		}

		return table, nil
	}
}

// announced reports errors already shown through a player_limit notification.
func announced(err error) bool {
	return errors.Is(err, apperror.ErrRosterFull) || errors.Is(err, apperror.ErrRosterTooSmall)
}

func (that *Session) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/apperror"
	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/dotsboxes"
	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/entity"
)

type resultRepo interface {
	Save(ctx context.Context, result *entity.GameResult) error
}

type leaderboardRepo interface {
	RecordWin(ctx context.Context, names ...string) error
}

type notifier interface {
	Notify(ctx context.Context, tableID string, notification entity.Notification)
}

type Settings struct {
	DefaultGridSize int
	MinGridSize     int
	MaxGridSize     int
	DefaultPlayers  int
}

type table struct {
	mu    sync.Mutex
	state *entity.Table
	moves int
}

// effects are collected under the table lock and dispatched after it is released.
type effects struct {
	notifications []entity.Notification
	result        *entity.GameResult
}

func (that *effects) notify(kind, format string, args ...any) {
	that.notifications = append(that.notifications, entity.Notification{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

// TableManager hosts games. Every table is mutated by one call at a time.
type TableManager struct {
	logger   *slog.Logger
	settings Settings

	resultRepo      resultRepo
	leaderboardRepo leaderboardRepo

	mu       sync.RWMutex
	tables   map[string]*table
	notifier notifier
}

// NewTableManager - repositories may be nil, finished games are then only logged.
func NewTableManager(logger *slog.Logger, settings Settings, resultRepo resultRepo, leaderboardRepo leaderboardRepo) *TableManager {
	return &TableManager{
		logger:   logger.With("component", "table_manager"),
		settings: settings,

		resultRepo:      resultRepo,
		leaderboardRepo: leaderboardRepo,

		tables: make(map[string]*table),
	}
}

func (that *TableManager) SetNotifier(n notifier) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.notifier = n
}

func (that *TableManager) CreateTable(ctx context.Context) (*entity.Table, error) {
	roster, err := dotsboxes.DefaultRoster(that.settings.DefaultPlayers)
	if err != nil {
		return nil, fmt.Errorf("failed to create roster: %w", err)
	}

	size := that.clampGridSize(that.settings.DefaultGridSize)

	game, err := newGame(size, roster)
	if err != nil {
		return nil, err
	}

	t := &table{
		state: &entity.Table{
			ID:   uuid.NewString(),
			Game: game,
			Settings: entity.Settings{
				GridSize: size,
				Players:  roster,
			},
		},
	}

	that.mu.Lock()
	that.tables[t.state.ID] = t
	that.mu.Unlock()

	that.logger.Info("table created", "table", t.state.ID, "size", size, "players", len(roster))

	fx := &effects{}
	fx.notify(entity.NotificationGameStarted, entity.MessageGameStarted)
	that.dispatch(ctx, t.state.ID, fx)

	return t.state.Clone(), nil
}

func (that *TableManager) GetTable(_ context.Context, id string) (*entity.Table, error) {
	t, err := that.getTable(id)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state.Clone(), nil
}

func (that *TableManager) DeleteTable(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.tables[id]; !ok {
		return fmt.Errorf("%w: %s", apperror.ErrTableNotFound, id)
	}

	delete(that.tables, id)
	that.logger.Info("table deleted", "table", id)

	return nil
}

// SelectGridSize stores the size for the next ApplySettings, clamped to the configured range.
func (that *TableManager) SelectGridSize(ctx context.Context, id string, size int) (*entity.Table, error) {
	return that.withTable(ctx, id, func(t *table, _ *effects) error {
		t.state.Settings.GridSize = that.clampGridSize(size)
		return nil
	})
}

func (that *TableManager) AddPlayer(ctx context.Context, id string) (*entity.Table, error) {
	return that.withTable(ctx, id, func(t *table, fx *effects) error {
		roster, err := dotsboxes.AddPlayer(t.state.Settings.Players)
		if err != nil {
			fx.notify(entity.NotificationPlayerLimit, "Maximum %d players allowed!", entity.MaxPlayers)
			return fmt.Errorf("failed to add player: %w", err)
		}

		t.state.Settings.Players = roster
		fx.notify(entity.NotificationPlayerAdded, "Added %s", roster[len(roster)-1].Name)

		return nil
	})
}

func (that *TableManager) RemovePlayer(ctx context.Context, id string) (*entity.Table, error) {
	return that.withTable(ctx, id, func(t *table, fx *effects) error {
		removed := t.state.Settings.Players[len(t.state.Settings.Players)-1]

		roster, err := dotsboxes.RemovePlayer(t.state.Settings.Players)
		if err != nil {
			fx.notify(entity.NotificationPlayerLimit, "Minimum %d players required!", entity.MinPlayers)
			return fmt.Errorf("failed to remove player: %w", err)
		}

		t.state.Settings.Players = roster
		fx.notify(entity.NotificationPlayerRemoved, "Removed %s", removed.Name)

		return nil
	})
}

// ApplySettings starts a new game with the pending grid size and roster.
func (that *TableManager) ApplySettings(ctx context.Context, id string) (*entity.Table, error) {
	return that.withTable(ctx, id, func(t *table, fx *effects) error {
		return that.restart(t, fx, t.state.Settings.GridSize, t.state.Settings.Players)
	})
}

// NewGame restarts with the size and roster of the current game.
func (that *TableManager) NewGame(ctx context.Context, id string) (*entity.Table, error) {
	return that.withTable(ctx, id, func(t *table, fx *effects) error {
		return that.restart(t, fx, t.state.Game.Size, t.state.Game.Players)
	})
}

// SelectEdge draws the edge. A zero playerID stands for the player on turn.
func (that *TableManager) SelectEdge(ctx context.Context, id string, edgeID entity.EdgeID, playerID int) (*entity.Table, *entity.MoveResult, error) {
	var result *entity.MoveResult

	snapshot, err := that.withTable(ctx, id, func(t *table, fx *effects) error {
		game := t.state.Game
		if playerID == 0 {
			playerID = game.CurrentPlayer
		}

		var err error
		if result, err = dotsboxes.ApplyMove(game, edgeID, playerID); err != nil {
			return fmt.Errorf("failed to select edge: %w", err)
		}

		t.moves++

		if result.GameOver {
			fx.notify(entity.NotificationGameOver, "Game Over! %s", result.Outcome.Summary())
			fx.result = &entity.GameResult{
				ID:         game.ID,
				TableID:    t.state.ID,
				Size:       game.Size,
				Players:    append([]entity.Player(nil), game.Players...),
				Outcome:    result.Outcome.Clone(),
				Moves:      t.moves,
				FinishedAt: time.Now().UTC(),
			}
		}

		return nil
	})

	return snapshot, result, err
}

func (that *TableManager) restart(t *table, fx *effects, size int, roster []entity.Player) error {
	game, err := newGame(size, roster)
	if err != nil {
		return err
	}

	t.state.Game = game
	t.moves = 0
	fx.notify(entity.NotificationGameStarted, entity.MessageGameStarted)

	return nil
}

// withTable runs fn under the table lock and returns a snapshot, also when fn fails.
func (that *TableManager) withTable(ctx context.Context, id string, fn func(t *table, fx *effects) error) (*entity.Table, error) {
	t, err := that.getTable(id)
	if err != nil {
		return nil, err
	}

	fx := &effects{}

	t.mu.Lock()
	err = fn(t, fx)
	snapshot := t.state.Clone()
	t.mu.Unlock()

	that.dispatch(ctx, id, fx)

	return snapshot, err
}

func (that *TableManager) dispatch(ctx context.Context, id string, fx *effects) {
	log := that.logger.With("method", "dispatch", "table", id)

	that.mu.RLock()
	n := that.notifier
	that.mu.RUnlock()

	for _, notification := range fx.notifications {
		log.Info("notification", "kind", notification.Kind, "message", notification.Message)

		if n != nil {
			n.Notify(ctx, id, notification)
		}
	}

	if fx.result == nil {
		return
	}

	if that.resultRepo != nil {
		if err := that.resultRepo.Save(ctx, fx.result); err != nil {
			log.Error("failed to archive result", "game", fx.result.ID, "error", err)
		}
	}

	// wins are tallied per seat name
	if that.leaderboardRepo != nil && fx.result.Outcome.Kind == entity.OutcomeWinner {
		if err := that.leaderboardRepo.RecordWin(ctx, fx.result.Outcome.Winners[0].Name); err != nil {
			log.Error("failed to record win", "game", fx.result.ID, "error", err)
		}
	}
}

func (that *TableManager) getTable(id string) (*table, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	t, ok := that.tables[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrTableNotFound, id)
	}

	return t, nil
}

func (that *TableManager) clampGridSize(size int) int {
	return max(that.settings.MinGridSize, min(size, that.settings.MaxGridSize))
}

func newGame(size int, roster []entity.Player) (*entity.Game, error) {
	game, err := dotsboxes.NewGame(size, roster)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	game.ID = uuid.NewString()

	return game, nil
}

package entity

import "time"

const (
	NotificationGameStarted   = "game_started"
	NotificationPlayerAdded   = "player_added"
	NotificationPlayerRemoved = "player_removed"
	NotificationPlayerLimit   = "player_limit"
	NotificationGameOver      = "game_over"
)

const MessageGameStarted = "New game started!"

// Settings are applied to the next game started by ApplySettings.
type Settings struct {
	GridSize int      `json:"grid_size"`
	Players  []Player `json:"players"`
}

// Table hosts a single game together with its pending settings.
type Table struct {
	ID       string   `json:"id"`
	Game     *Game    `json:"game"`
	Settings Settings `json:"settings"`
}

func (that *Table) Clone() *Table {
	if that == nil {
		return nil
	}

	return &Table{
		ID:   that.ID,
		Game: that.Game.Clone(),
		Settings: Settings{
			GridSize: that.Settings.GridSize,
			Players:  append([]Player(nil), that.Settings.Players...),
		},
	}
}

// GameResult is the archived record of a finished game.
type GameResult struct {
	ID         string    `json:"id"`
	TableID    string    `json:"table_id"`
	Size       int       `json:"size"`
	Players    []Player  `json:"players"`
	Outcome    Outcome   `json:"outcome"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}

type Notification struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// LeaderboardEntry is the win count of a seat across all tables.
type LeaderboardEntry struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

package dotsboxes

import (
	"fmt"

	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/apperror"
	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/entity"
)

// DefaultRoster returns players 1..count with palette colors.
func DefaultRoster(count int) ([]entity.Player, error) {
	if count < entity.MinPlayers {
		return nil, fmt.Errorf("%w: %d", apperror.ErrRosterTooSmall, count)
	}

	if count > entity.MaxPlayers {
		return nil, fmt.Errorf("%w: %d", apperror.ErrRosterFull, count)
	}

	roster := make([]entity.Player, 0, count)
	for i := range count {
		roster = append(roster, newPlayer(i))
	}

	return roster, nil
}

// AddPlayer appends the next player. The input roster is not modified.
func AddPlayer(roster []entity.Player) ([]entity.Player, error) {
	if len(roster) >= entity.MaxPlayers {
		return nil, apperror.ErrRosterFull
	}

	next := make([]entity.Player, len(roster), len(roster)+1)
	copy(next, roster)

	return append(next, newPlayer(len(roster))), nil
}

// RemovePlayer drops the most recently added player. The input roster is not modified.
func RemovePlayer(roster []entity.Player) ([]entity.Player, error) {
	if len(roster) <= entity.MinPlayers {
		return nil, apperror.ErrRosterTooSmall
	}

	next := make([]entity.Player, len(roster)-1)
	copy(next, roster)

	return next, nil
}

func ResetScores(roster []entity.Player) []entity.Player {
	next := make([]entity.Player, len(roster))
	for i, player := range roster {
		player.Score = 0
		next[i] = player
	}

	return next
}

func newPlayer(index int) entity.Player {
	id := index + 1

	return entity.Player{
		ID:    id,
		Name:  entity.PlayerName(id),
		Color: entity.Palette[index%len(entity.Palette)],
	}
}

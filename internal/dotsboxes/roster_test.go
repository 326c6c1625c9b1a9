package dotsboxes

import (
	"testing"

	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/apperror"
	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRoster(t *testing.T) {
	t.Run("Two players", func(t *testing.T) {
		// When: the default roster is created
		roster, err := DefaultRoster(2)
		require.NoError(t, err)

		// Then: it matches the initial players
		expected := []entity.Player{
			{ID: 1, Name: "Player 1", Color: "primary"},
			{ID: 2, Name: "Player 2", Color: "secondary"},
		}
		assert.Equal(t, expected, roster)
	})

	t.Run("Out of range", func(t *testing.T) {
		_, err := DefaultRoster(1)
		require.ErrorIs(t, err, apperror.ErrRosterTooSmall)

		_, err = DefaultRoster(7)
		require.ErrorIs(t, err, apperror.ErrRosterFull)
	})
}

func TestAddPlayer(t *testing.T) {
	t.Run("Appends the next player with the next palette color", func(t *testing.T) {
		// Given: a roster of two
		roster, err := DefaultRoster(2)
		require.NoError(t, err)

		// When: a player is added
		next, err := AddPlayer(roster)
		require.NoError(t, err)

		// Then: player 3 gets the accent color and the input is untouched
		require.Len(t, next, 3)
		assert.Equal(t, entity.Player{ID: 3, Name: "Player 3", Color: "accent"}, next[2])
		assert.Len(t, roster, 2)
	})

	t.Run("Colors cycle through the palette", func(t *testing.T) {
		// Given: a full roster
		roster, err := DefaultRoster(entity.MaxPlayers)
		require.NoError(t, err)

		// Then: every player has a distinct color in creation order
		for i, player := range roster {
			assert.Equal(t, entity.Palette[i], player.Color)
		}
	})

	t.Run("Roster full", func(t *testing.T) {
		// Given: a roster with six players
		roster, err := DefaultRoster(6)
		require.NoError(t, err)

		// When: another player is added
		next, err := AddPlayer(roster)

		// Then: ErrRosterFull is returned
		require.ErrorIs(t, err, apperror.ErrRosterFull)
		assert.Nil(t, next)
		assert.Len(t, roster, 6)
	})
}

func TestRemovePlayer(t *testing.T) {
	t.Run("Removes the most recently added player", func(t *testing.T) {
		// Given: a roster of four
		roster, err := DefaultRoster(4)
		require.NoError(t, err)

		// When: a player is removed
		next, err := RemovePlayer(roster)
		require.NoError(t, err)

		// Then: player 4 is gone and the input is untouched
		require.Len(t, next, 3)
		assert.Equal(t, 3, next[2].ID)
		assert.Len(t, roster, 4)
	})

	t.Run("Roster too small", func(t *testing.T) {
		// Given: a roster of two
		roster, err := DefaultRoster(2)
		require.NoError(t, err)

		// When: a player is removed
		_, err = RemovePlayer(roster)

		// Then: ErrRosterTooSmall is returned
		require.ErrorIs(t, err, apperror.ErrRosterTooSmall)
	})

	t.Run("Re-adding reuses the identity", func(t *testing.T) {
		// Given: a roster of three reduced to two
		roster, err := DefaultRoster(3)
		require.NoError(t, err)
		roster, err = RemovePlayer(roster)
		require.NoError(t, err)

		// When: a player is added again
		roster, err = AddPlayer(roster)
		require.NoError(t, err)

		// Then: the new player is numbered by position
		assert.Equal(t, 3, roster[2].ID)
	})
}

func TestResetScores(t *testing.T) {
	// Given: a roster with scores
	roster := []entity.Player{
		{ID: 1, Name: "Player 1", Color: "primary", Score: 4},
		{ID: 2, Name: "Player 2", Color: "secondary", Score: 2},
	}

	// When: the scores are reset
	next := ResetScores(roster)

	// Then: only the scores change
	expected := []entity.Player{
		{ID: 1, Name: "Player 1", Color: "primary"},
		{ID: 2, Name: "Player 2", Color: "secondary"},
	}
	assert.Equal(t, expected, next)
	assert.Equal(t, 4, roster[0].Score)
}

package dotsboxes

import (
	"math/rand"
	"testing"

	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/apperror"
	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, size, players int) *entity.Game {
	t.Helper()

	roster, err := DefaultRoster(players)
	require.NoError(t, err)

	game, err := NewGame(size, roster)
	require.NoError(t, err)

	return game
}

// draw plays the edges in order, each one by whoever is on turn.
func draw(t *testing.T, game *entity.Game, edges ...entity.EdgeID) *entity.MoveResult {
	t.Helper()

	var result *entity.MoveResult
	for _, id := range edges {
		var err error
		result, err = ApplyMove(game, id, game.CurrentPlayer)
		require.NoError(t, err, "edge %s", id)
	}

	return result
}

func TestApplyMove(t *testing.T) {
	t.Run("Marks the edge and passes the turn", func(t *testing.T) {
		// Given: a new 3x3 game with two players
		game := newTestGame(t, 3, 2)

		// When: player 1 draws an edge that closes nothing
		result, err := ApplyMove(game, "h-0-0", 1)
		require.NoError(t, err)

		// Then: the edge is owned by player 1 and player 2 is on turn
		edge, ok := game.Edge("h-0-0")
		require.True(t, ok)
		assert.True(t, edge.Completed)
		assert.Equal(t, 1, edge.Owner)

		expected := &entity.MoveResult{
			Edge:           "h-0-0",
			CompletedEdges: 1,
			ClaimedCells:   []entity.CellID{},
			CurrentPlayer:  2,
		}
		assert.Equal(t, expected, result)
		assert.Equal(t, 2, game.CurrentPlayer)
	})

	t.Run("Turn wraps around the roster", func(t *testing.T) {
		// Given: a game with three players
		game := newTestGame(t, 4, 3)

		// When: three edges that close nothing are drawn
		draw(t, game, "h-0-0", "h-2-3", "v-3-1")

		// Then: the first player is on turn again
		assert.Equal(t, 1, game.CurrentPlayer)
	})

	t.Run("Closing a cell scores and keeps the turn", func(t *testing.T) {
		// Given: a 3x3 game where three edges of the top left cell are drawn
		game := newTestGame(t, 3, 2)
		draw(t, game, "h-0-0", "v-1-0", "h-0-1")
		require.Equal(t, 2, game.CurrentPlayer)

		// When: player 2 draws the fourth edge
		result, err := ApplyMove(game, "v-0-0", 2)
		require.NoError(t, err)

		// Then: player 2 owns the cell, scores 1 and moves again
		assert.Equal(t, []entity.CellID{"sq-0-0"}, result.ClaimedCells)
		assert.Equal(t, 2, result.CurrentPlayer)
		assert.Equal(t, 2, game.CurrentPlayer)
		assert.Equal(t, 2, game.Cells[0].Owner)
		assert.Equal(t, 0, game.Players[0].Score)
		assert.Equal(t, 1, game.Players[1].Score)
		assert.False(t, result.GameOver)
	})

	t.Run("Shared edge closes two cells at once", func(t *testing.T) {
		// Given: the two top cells each miss only their shared edge
		game := newTestGame(t, 3, 2)
		draw(t, game, "h-0-0", "h-0-1", "v-0-0", "h-1-0", "h-1-1", "v-2-0")
		require.Equal(t, 1, game.CurrentPlayer)

		// When: player 1 draws the shared edge
		result, err := ApplyMove(game, "v-1-0", 1)
		require.NoError(t, err)

		// Then: both cells go to player 1 in a single move
		assert.Equal(t, []entity.CellID{"sq-0-0", "sq-1-0"}, result.ClaimedCells)
		assert.Equal(t, 2, game.Players[0].Score)
		assert.Equal(t, 1, game.CurrentPlayer)
	})

	t.Run("Unknown edge leaves the game unchanged", func(t *testing.T) {
		// Given: a game with one move played
		game := newTestGame(t, 3, 2)
		draw(t, game, "h-0-0")
		before := game.Clone()

		// When: a move references an edge that does not exist
		result, err := ApplyMove(game, "h-7-7", game.CurrentPlayer)

		// Then: ErrUnknownEdge is returned and nothing changed
		require.ErrorIs(t, err, apperror.ErrUnknownEdge)
		assert.Nil(t, result)
		assert.Equal(t, before, game)
	})

	t.Run("Drawing a completed edge twice is rejected", func(t *testing.T) {
		// Given: a game where h-0-0 was drawn
		game := newTestGame(t, 3, 2)
		draw(t, game, "h-0-0")
		afterFirst := game.Clone()

		// When: the same edge is drawn again
		_, err := ApplyMove(game, "h-0-0", game.CurrentPlayer)

		// Then: ErrEdgeAlreadyCompleted is returned and the state is the one after the first move
		require.ErrorIs(t, err, apperror.ErrEdgeAlreadyCompleted)
		assert.Equal(t, afterFirst, game)
	})

	t.Run("Only the current player may move", func(t *testing.T) {
		// Given: a new game where player 1 is on turn
		game := newTestGame(t, 3, 2)
		before := game.Clone()

		// When: player 2 tries to move
		_, err := ApplyMove(game, "h-0-0", 2)

		// Then: ErrNotCurrentPlayer is returned and nothing changed
		require.ErrorIs(t, err, apperror.ErrNotCurrentPlayer)
		assert.Equal(t, before, game)
	})

	t.Run("Game over rejects further moves", func(t *testing.T) {
		// Given: a finished game
		game := newTestGame(t, 2, 2)
		result := draw(t, game, "h-0-0", "h-0-1", "v-0-0", "v-1-0")
		require.True(t, result.GameOver)
		before := game.Clone()

		// When: another move is attempted
		_, err := ApplyMove(game, "h-0-0", game.CurrentPlayer)

		// Then: ErrGameOver is returned before any other check
		require.ErrorIs(t, err, apperror.ErrGameOver)
		assert.Equal(t, before, game)
	})

	t.Run("Full board ends in a tie", func(t *testing.T) {
		// Given: a 3x3 game with two players
		game := newTestGame(t, 3, 2)

		// When: the board is filled so that each player closes two cells
		draw(t, game, "h-0-0", "h-0-1", "v-0-0", "h-1-0", "h-1-1", "v-2-0", "h-0-2")
		require.Equal(t, 2, game.CurrentPlayer)

		result := draw(t, game, "v-1-0", "v-0-1", "h-1-2", "v-2-1", "v-1-1")

		// Then: the game is over and both players are tied at 2
		require.True(t, result.GameOver)
		require.True(t, game.GameOver)
		require.NotNil(t, result.Outcome)
		assert.Equal(t, entity.OutcomeTie, result.Outcome.Kind)
		assert.Equal(t, 2, result.Outcome.MaxScore)
		assert.Equal(t, []int{1, 2}, []int{result.Outcome.Winners[0].ID, result.Outcome.Winners[1].ID})
		assert.Equal(t, game.Outcome, result.Outcome)
		assert.Equal(t, 12, result.CompletedEdges)
	})

	t.Run("Single winner on a one cell board", func(t *testing.T) {
		// Given: a 2x2 board with a single cell
		game := newTestGame(t, 2, 3)

		// When: all four edges are drawn
		result := draw(t, game, "h-0-0", "h-0-1", "v-0-0", "v-1-0")

		// Then: the player drawing the last edge wins and keeps the turn
		require.True(t, result.GameOver)
		assert.Equal(t, entity.OutcomeWinner, result.Outcome.Kind)
		assert.Equal(t, 1, result.Outcome.Winners[0].ID)
		assert.Equal(t, 1, result.CurrentPlayer)
		assert.Equal(t, "Player 1 wins with 1 points!", result.Outcome.Summary())
	})
}

func TestApplyMove_RandomPlayouts(t *testing.T) {
	rnd := rand.New(rand.NewSource(42)) //nolint: gosec // deterministic test data

	for size := MinBoardSize; size <= 8; size++ {
		for players := entity.MinPlayers; players <= entity.MaxPlayers; players++ {
			// Given: a new game
			game := newTestGame(t, size, players)

			order := rnd.Perm(len(game.Edges))
			for step, i := range order {
				mover := game.CurrentPlayer
				edgeID := game.Edges[i].ID

				// When: the next random edge is drawn
				result, err := ApplyMove(game, edgeID, mover)
				require.NoError(t, err)

				// Then: scores always equal the number of owned cells
				require.Equal(t, game.OwnedCells(), game.TotalScore())

				// Then: game over happens exactly when every edge is drawn
				last := step == len(order)-1
				require.Equal(t, last, game.GameOver)
				require.Equal(t, game.AllEdgesCompleted(), game.GameOver)

				// Then: the turn stays on a claim or after the last move, otherwise rotates
				switch {
				case last || len(result.ClaimedCells) > 0:
					require.Equal(t, mover, game.CurrentPlayer)
				default:
					require.Equal(t, nextPlayer(game.Players, mover), game.CurrentPlayer)
				}
			}

			require.NotNil(t, game.Outcome)
			assert.Equal(t, (size-1)*(size-1), game.TotalScore())
		}
	}
}

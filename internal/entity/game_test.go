package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGame() *Game {
	return &Game{
		ID:   "g1",
		Size: 2,
		Dots: []Dot{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		Edges: []Edge{
			{ID: HorizontalEdgeID(0, 0), Orientation: Horizontal, From: Dot{0, 0}, To: Dot{1, 0}, Completed: true, Owner: 1},
			{ID: HorizontalEdgeID(0, 1), Orientation: Horizontal, From: Dot{0, 1}, To: Dot{1, 1}},
			{ID: VerticalEdgeID(0, 0), Orientation: Vertical, From: Dot{0, 0}, To: Dot{0, 1}},
			{ID: VerticalEdgeID(1, 0), Orientation: Vertical, From: Dot{1, 0}, To: Dot{1, 1}},
		},
		Cells: []Cell{
			{ID: NewCellID(0, 0), Top: "h-0-0", Right: "v-1-0", Bottom: "h-0-1", Left: "v-0-0"},
		},
		Players: []Player{
			{ID: 1, Name: PlayerName(1), Color: Palette[0]},
			{ID: 2, Name: PlayerName(2), Color: Palette[1]},
		},
		CurrentPlayer: 2,
	}
}

func TestGame_Lookups(t *testing.T) {
	// Given: a game with one drawn edge
	game := testGame()

	// Then: lookups resolve edges and players
	assert.Equal(t, 0, game.EdgeIndex("h-0-0"))
	assert.Equal(t, -1, game.EdgeIndex("h-5-5"))

	edge, ok := game.Edge("h-0-0")
	require.True(t, ok)
	assert.Equal(t, 1, edge.Owner)

	_, ok = game.Edge("v-9-9")
	assert.False(t, ok)

	assert.Equal(t, 1, game.CompletedEdges())
	assert.False(t, game.AllEdgesCompleted())
	assert.Equal(t, 0, game.OwnedCells())
	assert.Equal(t, 1, game.PlayerIndex(2))
	assert.Equal(t, -1, game.PlayerIndex(9))

	current, ok := game.CurrentPlayerInfo()
	require.True(t, ok)
	assert.Equal(t, "Player 2", current.Name)
}

func TestGame_Clone(t *testing.T) {
	// Given: a finished game with an outcome
	game := testGame()
	game.Outcome = &Outcome{Kind: OutcomeWinner, Winners: []Player{game.Players[0]}, MaxScore: 1}

	// When: the game is cloned and the clone is modified
	clone := game.Clone()
	require.Equal(t, game, clone)

	clone.Edges[1].Completed = true
	clone.Players[0].Score = 10
	clone.Cells[0].Owner = 2
	clone.Outcome.Winners[0].Name = "changed"

	// Then: the source game is unaffected
	assert.False(t, game.Edges[1].Completed)
	assert.Equal(t, 0, game.Players[0].Score)
	assert.Equal(t, NoOwner, game.Cells[0].Owner)
	assert.Equal(t, "Player 1", game.Outcome.Winners[0].Name)
}

func TestCell_Edges(t *testing.T) {
	cell := Cell{Top: "h-1-2", Right: "v-2-2", Bottom: "h-1-3", Left: "v-1-2"}

	assert.Equal(t, [4]EdgeID{"h-1-2", "v-2-2", "h-1-3", "v-1-2"}, cell.Edges())
	assert.False(t, cell.IsOwned())
}

func TestTable_Clone(t *testing.T) {
	// Given: a table with pending settings
	table := &Table{
		ID:       "t1",
		Game:     testGame(),
		Settings: Settings{GridSize: 5, Players: testGame().Players},
	}

	// When: the clone's settings are changed
	clone := table.Clone()
	clone.Settings.Players[0].Name = "changed"
	clone.Game.CurrentPlayer = 1

	// Then: the table is unaffected
	assert.Equal(t, "Player 1", table.Settings.Players[0].Name)
	assert.Equal(t, 2, table.Game.CurrentPlayer)
}

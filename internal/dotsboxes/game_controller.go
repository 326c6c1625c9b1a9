package dotsboxes

import (
	"fmt"

	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/apperror"
	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/entity"
)

// ApplyMove draws the edge for the player. On error the game is left untouched.
func ApplyMove(gameInstance *entity.Game, edgeID entity.EdgeID, playerID int) (*entity.MoveResult, error) {
	edgeIndex, err := validateMove(gameInstance, edgeID, playerID)
	if err != nil {
		return nil, fmt.Errorf("invalid move: %w", err)
	}

	gameInstance.Edges[edgeIndex].Completed = true
	gameInstance.Edges[edgeIndex].Owner = playerID

	claimed := claimCells(gameInstance, playerID)
	updateGameStatus(gameInstance, len(claimed) > 0)

	result := &entity.MoveResult{
		Edge:           edgeID,
		CompletedEdges: gameInstance.CompletedEdges(),
		ClaimedCells:   claimed,
		CurrentPlayer:  gameInstance.CurrentPlayer,
		GameOver:       gameInstance.GameOver,
	}

	if gameInstance.Outcome != nil {
		outcome := gameInstance.Outcome.Clone()
		result.Outcome = &outcome
	}

	return result, nil
}

// validateMove - checks if the move is valid and returns the index of the edge.
func validateMove(gameInstance *entity.Game, edgeID entity.EdgeID, playerID int) (int, error) {
	if gameInstance.GameOver {
		return -1, apperror.ErrGameOver
	}

	edgeIndex := gameInstance.EdgeIndex(edgeID)
	if edgeIndex < 0 {
		return -1, fmt.Errorf("%w: %s", apperror.ErrUnknownEdge, edgeID)
	}

	if gameInstance.Edges[edgeIndex].Completed {
		return -1, fmt.Errorf("%w: %s", apperror.ErrEdgeAlreadyCompleted, edgeID)
	}

	if gameInstance.CurrentPlayer != playerID {
		return -1, apperror.ErrNotCurrentPlayer
	}

	return edgeIndex, nil
}

// claimCells awards every unowned cell whose four edges are drawn to the player.
func claimCells(gameInstance *entity.Game, playerID int) []entity.CellID {
	claimed := make([]entity.CellID, 0, 2)

	for i := range gameInstance.Cells {
		cell := &gameInstance.Cells[i]
		if cell.IsOwned() || !isClosed(gameInstance, *cell) {
			continue
		}

		cell.Owner = playerID
		claimed = append(claimed, cell.ID)
	}

	if len(claimed) > 0 {
		if p := gameInstance.PlayerIndex(playerID); p >= 0 {
			gameInstance.Players[p].Score += len(claimed)
		}
	}

	return claimed
}

func isClosed(gameInstance *entity.Game, cell entity.Cell) bool {
	for _, id := range cell.Edges() {
		edge, ok := gameInstance.Edge(id)
		if !ok || !edge.Completed {
			return false
		}
	}

	return true
}

// updateGameStatus - ends the game once every edge is drawn, otherwise passes the turn
// unless the mover closed a cell.
func updateGameStatus(gameInstance *entity.Game, claimed bool) {
	if gameInstance.AllEdgesCompleted() {
		outcome := ComputeOutcome(gameInstance.Players)
		gameInstance.GameOver = true
		gameInstance.Outcome = &outcome

		return
	}

	if !claimed {
		gameInstance.CurrentPlayer = nextPlayer(gameInstance.Players, gameInstance.CurrentPlayer)
	}
}

func nextPlayer(roster []entity.Player, current int) int {
	for i, player := range roster {
		if player.ID == current {
			return roster[(i+1)%len(roster)].ID
		}
	}

	return roster[0].ID
}

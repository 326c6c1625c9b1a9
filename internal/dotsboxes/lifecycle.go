package dotsboxes

import (
	"fmt"

	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/apperror"
	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/entity"
)

// NewGame starts a fresh game on a new board. Scores are reset and the first player moves.
func NewGame(size int, roster []entity.Player) (*entity.Game, error) {
	if len(roster) < entity.MinPlayers {
		return nil, apperror.ErrRosterTooSmall
	}

	if len(roster) > entity.MaxPlayers {
		return nil, apperror.ErrRosterFull
	}

	board, err := BuildBoard(size)
	if err != nil {
		return nil, fmt.Errorf("failed to build board: %w", err)
	}

	players := ResetScores(roster)

	return &entity.Game{
		Size:          board.Size,
		Dots:          board.Dots,
		Edges:         board.Edges,
		Cells:         board.Cells,
		Players:       players,
		CurrentPlayer: players[0].ID,
	}, nil
}

// ComputeOutcome determines the winners from the final scores.
func ComputeOutcome(roster []entity.Player) entity.Outcome {
	maxScore := 0
	for _, player := range roster {
		maxScore = max(maxScore, player.Score)
	}

	var winners []entity.Player
	for _, player := range roster {
		if player.Score == maxScore {
			winners = append(winners, player)
		}
	}

	outcome := entity.Outcome{
		Winners:  winners,
		MaxScore: maxScore,
	}

	switch {
	case maxScore == 0:
		outcome.Kind = entity.OutcomeNoScore
	case len(winners) == 1:
		outcome.Kind = entity.OutcomeWinner
	default:
		outcome.Kind = entity.OutcomeTie
	}

	return outcome
}

package apperror

import "errors"

var (
	ErrGameOver             = errors.New("game is already over")
	ErrUnknownEdge          = errors.New("edge does not exist")
	ErrEdgeAlreadyCompleted = errors.New("edge is already drawn")
	ErrNotCurrentPlayer     = errors.New("it's not your turn")
	ErrRosterFull           = errors.New("maximum 6 players allowed")
	ErrRosterTooSmall       = errors.New("minimum 2 players required")
	ErrInvalidBoardSize     = errors.New("invalid board size")
	ErrTableNotFound        = errors.New("table not found")
)

package apperror

import "errors"

var (
	ErrInvalidCoordinate = errors.New("coordinate is outside the board")
	ErrInvalidPlayer     = errors.New("mark is not a player")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrGameAlreadyOver   = errors.New("game is already over")
	ErrNotYourTurn       = errors.New("it's not your turn")
)

package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// GameController owns the authoritative board of a single game.
// It carries no locking; callers serialize access.
type GameController struct {
	board   entity.Board
	turn    entity.Mark
	outcome entity.Outcome
}

func NewGameController() *GameController {
	that := &GameController{}
	that.Reset()

	return that
}

// MakeTurn places player's mark at (row, col). A rejected move leaves the game untouched.
func (that *GameController) MakeTurn(row, col int, player entity.Mark) error {
	if that.outcome.IsFinished() {
		return apperror.ErrGameAlreadyOver
	}

	cell := entity.Coord{Row: row, Col: col}
	if err := that.validateMove(cell, player); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.board[row][col] = player
	that.updateGameStatus(player)

	return nil
}

// validateMove - checks if the move is valid.
func (that *GameController) validateMove(cell entity.Coord, player entity.Mark) error {
	if !cell.Valid() {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidCoordinate, cell.Row, cell.Col)
	}

	if !player.IsPlayer() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, player)
	}

	if that.turn != player {
		return apperror.ErrNotYourTurn
	}

	if !that.board.IsEmptyAt(cell) {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - recomputes the outcome after a move and passes the turn on.
func (that *GameController) updateGameStatus(player entity.Mark) {
	that.outcome = that.board.DetermineOutcome()
	if that.outcome.IsOngoing() {
		that.turn = player.Opponent()
	}
}

// Outcome returns a copy of the current outcome, winning line included.
func (that *GameController) Outcome() entity.Outcome {
	outcome := that.outcome
	if outcome.Line != nil {
		line := *outcome.Line
		outcome.Line = &line
	}

	return outcome
}

// Turn is the mark to move next, frozen once the game is over.
func (that *GameController) Turn() entity.Mark {
	return that.turn
}

func (that *GameController) IsFull() bool {
	return that.board.IsFull()
}

func (that *GameController) MoveCount() int {
	return that.board.MoveCount()
}

// Snapshot returns a copy of the board; changing it does not affect the game.
func (that *GameController) Snapshot() entity.Board {
	return that.board
}

func (that *GameController) Reset() {
	that.board = entity.Board{}
	that.turn = entity.PlayerX
	that.outcome = entity.Outcome{Status: entity.StatusOngoing}
}

package console

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errBadMove        = errors.New("usage: move <row> <col>")
)

const usage = `Commands:
  <row> <col>          place your mark, rows and columns count from 0
  move <row> <col>     same as above
  board                show the board
  reset                start a new game
  help                 show this help
  exit | quit          leave`

func (that *Server) handleMove(args []string) (string, error) {
	if len(args) != 2 {
		return "", errBadMove
	}

	row, ok := parseIndex(args[0])
	if !ok {
		return "", fmt.Errorf("%w: row %q", errBadMove, args[0])
	}

	col, ok := parseIndex(args[1])
	if !ok {
		return "", fmt.Errorf("%w: col %q", errBadMove, args[1])
	}

	state, err := that.game.MakeTurn(row, col)
	if err != nil {
		return Render(state), err
	}

	return Render(state), nil
}

func (that *Server) handleReset([]string) (string, error) {
	state, err := that.game.Reset()
	if err != nil {
		return Render(state), fmt.Errorf("failed to reset game: %w", err)
	}

	return Render(state), nil
}

func (that *Server) handleBoard([]string) (string, error) {
	return Render(that.game.State()), nil
}

func (that *Server) handleHelp([]string) (string, error) {
	return usage, nil
}

func (that *Server) handleQuit([]string) (string, error) {
	return "", errQuit
}

// parseIndex accepts any integer; range checks belong to the game.
func parseIndex(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	return n, true
}

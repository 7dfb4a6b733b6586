package console

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const (
	highlightOn  = "\033[1;32m"
	highlightOff = "\033[0m"
)

// Render draws the board, highlighting the winning line, followed by a status line.
func Render(state usecase.State) string {
	var b strings.Builder

	b.WriteString("    0   1   2\n")
	for row := 0; row < entity.Size; row++ {
		fmt.Fprintf(&b, "%d ", row)
		for col := 0; col < entity.Size; col++ {
			cell := entity.Coord{Row: row, Col: col}
			b.WriteString(" ")
			b.WriteString(renderCell(state.Board.At(cell), state.Outcome.Contains(cell)))
			b.WriteString(" ")
			if col < entity.Size-1 {
				b.WriteString("|")
			}
		}
		b.WriteString("\n")
		if row < entity.Size-1 {
			b.WriteString("  ---+---+---\n")
		}
	}

	b.WriteString(status(state))

	return b.String()
}

func renderCell(mark entity.Mark, winning bool) string {
	symbol := string(mark)
	if mark == entity.EmptyCell {
		symbol = "."
	}

	if winning {
		return highlightOn + symbol + highlightOff
	}

	return symbol
}

func status(state usecase.State) string {
	switch state.Outcome.Status {
	case entity.StatusWon:
		return fmt.Sprintf("Winner: %s", state.Outcome.Winner)
	case entity.StatusDraw:
		return "Draw"
	default:
		return fmt.Sprintf("Current player: %s", state.Turn)
	}
}

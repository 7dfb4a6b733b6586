package entity

import "github.com/samber/lo"

// Size is the side length of the board.
const Size = 3

const (
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

// Opponent returns the other player's mark. EmptyCell has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Coord addresses a cell by row and column, both 0-based.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func CoordFromIndex(index int) Coord {
	return Coord{Row: index / Size, Col: index % Size}
}

// Index returns the row-major cell index, 0 through 8.
func (that Coord) Index() int {
	return that.Row*Size + that.Col
}

func (that Coord) Valid() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

// Line is an ordered triple of cells that wins when uniformly occupied.
type Line [Size]Coord

// WinLines are scanned in this order: rows, columns, main diagonal, anti-diagonal.
var WinLines = [8]Line{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a 3×3 grid of marks. It is a value type: assigning or passing it copies every cell.
type Board [Size][Size]Mark

func (that Board) At(c Coord) Mark {
	return that[c.Row][c.Col]
}

// With returns a copy of the board with mark placed at c.
func (that Board) With(c Coord, mark Mark) Board {
	that[c.Row][c.Col] = mark
	return that
}

// Cells lists the board row-major.
func (that Board) Cells() []Mark {
	cells := make([]Mark, 0, Size*Size)
	for _, row := range that {
		cells = append(cells, row[:]...)
	}

	return cells
}

// EmptyCells returns the free cells in row-major order.
func (that Board) EmptyCells() []Coord {
	empty := make([]Coord, 0, Size*Size)
	for i, cell := range that.Cells() {
		if cell == EmptyCell {
			empty = append(empty, CoordFromIndex(i))
		}
	}

	return empty
}

func (that Board) IsEmptyAt(c Coord) bool {
	return that.At(c) == EmptyCell
}

func (that Board) MoveCount() int {
	return lo.CountBy(that.Cells(), func(cell Mark) bool {
		return cell != EmptyCell
	})
}

func (that Board) IsFull() bool {
	return that.MoveCount() == Size*Size
}

// WinningLine returns the first complete line in scan order and its mark.
func (that Board) WinningLine() (Mark, Line, bool) {
	for _, line := range WinLines {
		a, b, c := that.At(line[0]), that.At(line[1]), that.At(line[2])
		if a != EmptyCell && a == b && b == c {
			return a, line, true
		}
	}

	return EmptyCell, Line{}, false
}

// Winner returns the winning mark or EmptyCell.
func (that Board) Winner() Mark {
	winner, _, _ := that.WinningLine()
	return winner
}

// Outcome is derived from a board and never stored on its own. Line is set only for a win.
type Outcome struct {
	Status string `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
	Line   *Line  `json:"line,omitempty"`
}

func (that Board) DetermineOutcome() Outcome {
	if winner, line, ok := that.WinningLine(); ok {
		return Outcome{Status: StatusWon, Winner: winner, Line: &line}
	}

	// the game will continue until all the squares are full
	if !that.IsFull() {
		return Outcome{Status: StatusOngoing}
	}

	return Outcome{Status: StatusDraw}
}

func (that Outcome) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

func (that Outcome) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that Outcome) IsDraw() bool {
	return that.Status == StatusDraw
}

// Contains reports whether c is part of the winning line.
func (that Outcome) Contains(c Coord) bool {
	if that.Status != StatusWon || that.Line == nil {
		return false
	}

	return lo.Contains(that.Line[:], c)
}

package service

import (
	"errors"
	"math"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

const winScore = 10

var (
	center  = entity.Coord{Row: 1, Col: 1}
	corners = []entity.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 2}, {Row: 2, Col: 0}, {Row: 2, Col: 2}}
	edges   = []entity.Coord{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 2}, {Row: 2, Col: 1}}
)

// BotService picks moves for the automated opponent. BestMove never mutates shared state and
// is safe to call from several goroutines at once.
type BotService interface {
	BestMove(board entity.Board) (entity.Coord, error)
	Mark() entity.Mark
}

type botService struct {
	ai       entity.Mark
	opponent entity.Mark
}

func NewBotService(ai entity.Mark) BotService {
	return &botService{
		ai:       ai,
		opponent: ai.Opponent(),
	}
}

func (that *botService) Mark() entity.Mark {
	return that.ai
}

// BestMove tries, in order: the opening book, an immediate win, an immediate block and a full
// alpha-beta search. Candidates are always visited row-major, so equal boards give equal moves.
func (that *botService) BestMove(board entity.Board) (entity.Coord, error) {
	available := board.EmptyCells()
	if len(available) == 0 {
		return entity.Coord{}, ErrNoAvailableMoves
	}

	if move, ok := openingMove(board); ok {
		return move, nil
	}

	if move, ok := completingMove(board, available, that.ai); ok {
		return move, nil
	}

	if move, ok := completingMove(board, available, that.opponent); ok {
		return move, nil
	}

	if move, ok := that.searchMove(board, available); ok {
		return move, nil
	}

	return fallbackMove(board), nil
}

// openingMove: corner on an empty board; after a single mark, corner if it took the centre,
// otherwise the centre.
func openingMove(board entity.Board) (entity.Coord, bool) {
	switch board.MoveCount() {
	case 0:
		return corners[0], true
	case 1:
		if !board.IsEmptyAt(center) {
			return corners[0], true
		}
		return center, true
	default:
		return entity.Coord{}, false
	}
}

// completingMove returns the first free cell that wins the game for mark.
func completingMove(board entity.Board, available []entity.Coord, mark entity.Mark) (entity.Coord, bool) {
	for _, cell := range available {
		if board.With(cell, mark).Winner() == mark {
			return cell, true
		}
	}

	return entity.Coord{}, false
}

// searchMove scores every root candidate with an open window; only a strictly better score
// replaces the current best.
func (that *botService) searchMove(board entity.Board, available []entity.Coord) (entity.Coord, bool) {
	bestScore := math.MinInt
	var bestMove entity.Coord
	found := false

	for _, cell := range available {
		score := that.minimax(board.With(cell, that.ai), 0, false, math.MinInt, math.MaxInt)
		if score > bestScore {
			bestScore = score
			bestMove = cell
			found = true
		}
	}

	return bestMove, found
}

// minimax evaluates board with the AI maximizing. depth counts simulated moves after the root
// candidate; every child is a copy of its parent.
func (that *botService) minimax(board entity.Board, depth int, maximizing bool, alpha, beta int) int {
	switch board.Winner() {
	case that.ai:
		return winScore - depth
	case that.opponent:
		return depth - winScore
	}

	if board.IsFull() {
		return 0
	}

	if maximizing {
		best := math.MinInt
		for _, cell := range board.EmptyCells() {
			best = max(best, that.minimax(board.With(cell, that.ai), depth+1, false, alpha, beta))
			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.MaxInt
	for _, cell := range board.EmptyCells() {
		best = min(best, that.minimax(board.With(cell, that.opponent), depth+1, true, alpha, beta))
		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}

// fallbackMove prefers the centre, then corners, then edges.
func fallbackMove(board entity.Board) entity.Coord {
	candidates := make([]entity.Coord, 0, entity.Size*entity.Size)
	candidates = append(candidates, center)
	candidates = append(candidates, corners...)
	candidates = append(candidates, edges...)

	for _, cell := range candidates {
		if board.IsEmptyAt(cell) {
			return cell
		}
	}

	return center
}

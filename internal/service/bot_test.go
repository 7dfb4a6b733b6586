package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func TestBotService_OpeningBook(t *testing.T) {
	t.Run("Empty board takes the top-left corner", func(t *testing.T) {
		for _, mark := range []entity.Mark{x, o} {
			move, err := NewBotService(mark).BestMove(entity.Board{})

			require.NoError(t, err)
			assert.Equal(t, entity.Coord{Row: 0, Col: 0}, move)
		}
	})

	t.Run("Centre opening is answered with a corner", func(t *testing.T) {
		// Given: X took the centre
		board := entity.Board{}.With(entity.Coord{Row: 1, Col: 1}, x)

		// When: the bot replies
		move, err := NewBotService(o).BestMove(board)

		// Then: it takes the top-left corner
		require.NoError(t, err)
		assert.Equal(t, entity.Coord{Row: 0, Col: 0}, move)
	})

	t.Run("Any other opening is answered with the centre", func(t *testing.T) {
		for _, cell := range []entity.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 1, Col: 0}, {Row: 1, Col: 2}, {Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}} {
			board := entity.Board{}.With(cell, x)

			move, err := NewBotService(o).BestMove(board)

			require.NoError(t, err)
			assert.Equal(t, entity.Coord{Row: 1, Col: 1}, move, "opening %v", cell)
		}
	})
}

func TestBotService_ImmediateWin(t *testing.T) {
	// Given: O has two in the middle row and X threatens the top row
	board := entity.Board{
		{x, x, e},
		{o, o, e},
		{x, e, e},
	}

	// When: the bot plays O
	move, err := NewBotService(o).BestMove(board)

	// Then: it completes its own line rather than blocking
	require.NoError(t, err)
	assert.Equal(t, entity.Coord{Row: 1, Col: 2}, move)

	// Given: O can win at (0,2) and (2,2) while X threatens (2,2)
	board = entity.Board{
		{o, o, e},
		{x, o, x},
		{x, x, e},
	}
	move, err = NewBotService(o).BestMove(board)
	require.NoError(t, err)
	assert.Equal(t, entity.Coord{Row: 0, Col: 2}, move, "first winning cell in row-major order")
}

func TestBotService_Block(t *testing.T) {
	t.Run("Blocks the only threat", func(t *testing.T) {
		// Given: X threatens the left column and O has no win
		board := entity.Board{
			{x, e, e},
			{x, o, e},
			{e, e, e},
		}

		// When: the bot plays O
		move, err := NewBotService(o).BestMove(board)

		// Then: it blocks at the bottom-left
		require.NoError(t, err)
		assert.Equal(t, entity.Coord{Row: 2, Col: 0}, move)
	})

	t.Run("Blocks the first threat in row-major order", func(t *testing.T) {
		// Given: X has two threats, (0,2) and (2,0)
		board := entity.Board{
			{x, x, e},
			{x, o, e},
			{e, e, o},
		}

		move, err := NewBotService(o).BestMove(board)

		require.NoError(t, err)
		assert.Equal(t, entity.Coord{Row: 0, Col: 2}, move)
	})
}

func TestBotService_Search(t *testing.T) {
	t.Run("Answers the opposite-corner trap with an edge", func(t *testing.T) {
		// Given: X holds opposite corners and O the centre
		board := entity.Board{
			{x, e, e},
			{e, o, e},
			{e, e, x},
		}

		// When: the bot plays O
		move, err := NewBotService(o).BestMove(board)

		// Then: any corner loses to a fork, the first safe edge is (0,1)
		require.NoError(t, err)
		assert.Equal(t, entity.Coord{Row: 0, Col: 1}, move)
	})

	t.Run("Sets up a fork when one exists", func(t *testing.T) {
		// Given: X at a corner, O on an edge next to it
		board := entity.Board{
			{x, o, e},
			{e, e, e},
			{e, e, e},
		}

		// When: the bot plays X
		move, err := NewBotService(x).BestMove(board)
		require.NoError(t, err)

		// Then: the chosen move keeps a forced win
		next := board.With(move, x)
		assert.Equal(t, 1, -solve(next, o))
	})
}

func TestBotService_NoAvailableMoves(t *testing.T) {
	board := entity.Board{
		{x, o, x},
		{x, o, o},
		{o, x, x},
	}

	_, err := NewBotService(o).BestMove(board)

	require.ErrorIs(t, err, ErrNoAvailableMoves)
}

func TestBotService_DoesNotMutate(t *testing.T) {
	board := entity.Board{
		{x, e, e},
		{e, o, e},
		{e, e, x},
	}
	before := board

	_, err := NewBotService(o).BestMove(board)

	require.NoError(t, err)
	assert.Equal(t, before, board)
}

func TestFallbackMove(t *testing.T) {
	t.Run("Centre first", func(t *testing.T) {
		assert.Equal(t, entity.Coord{Row: 1, Col: 1}, fallbackMove(entity.Board{}))
	})

	t.Run("Then corners in order", func(t *testing.T) {
		board := entity.Board{
			{x, e, e},
			{e, o, e},
			{e, e, e},
		}
		assert.Equal(t, entity.Coord{Row: 0, Col: 2}, fallbackMove(board))
	})

	t.Run("Then edges in order", func(t *testing.T) {
		board := entity.Board{
			{x, x, o},
			{e, o, e},
			{o, e, x},
		}
		assert.Equal(t, entity.Coord{Row: 1, Col: 0}, fallbackMove(board))
	})
}

func TestBotService_SelfPlayIsDraw(t *testing.T) {
	// Given: one bot per side on a fresh game
	controller := tictactoe.NewGameController()
	bots := map[entity.Mark]BotService{x: NewBotService(x), o: NewBotService(o)}

	// When: the bots play the game out
	for controller.Outcome().IsOngoing() {
		move, err := bots[controller.Turn()].BestMove(controller.Snapshot())
		require.NoError(t, err)
		require.True(t, controller.Snapshot().IsEmptyAt(move))
		require.NoError(t, controller.MakeTurn(move.Row, move.Col, controller.Turn()))
	}

	// Then: perfect play ends in a draw
	assert.True(t, controller.Outcome().IsDraw())
}

func TestBotService_NeverLoses(t *testing.T) {
	for _, ai := range []entity.Mark{x, o} {
		bot := NewBotService(ai)
		var games int

		// Given: every line of play the opponent can choose
		var walk func(board entity.Board, turn entity.Mark)
		walk = func(board entity.Board, turn entity.Mark) {
			if board.DetermineOutcome().IsFinished() {
				games++
				// Then: the opponent never wins
				require.NotEqual(t, ai.Opponent(), board.Winner(), "lost as %s:\n%v", ai, board)
				return
			}

			if turn == ai {
				move, err := bot.BestMove(board)
				require.NoError(t, err)
				require.True(t, board.IsEmptyAt(move))
				walk(board.With(move, ai), turn.Opponent())
				return
			}

			for _, cell := range board.EmptyCells() {
				walk(board.With(cell, turn), turn.Opponent())
			}
		}

		// When: the bot answers each of them
		walk(entity.Board{}, x)
		assert.Positive(t, games)
	}
}

func TestBotService_OptimalOnReachablePositions(t *testing.T) {
	// Given: every reachable position that is still in progress
	seen := make(map[entity.Board]bool)
	var visit func(board entity.Board, turn entity.Mark)
	visit = func(board entity.Board, turn entity.Mark) {
		if seen[board] || board.DetermineOutcome().IsFinished() {
			return
		}
		seen[board] = true

		// When: the bot moves for the side on turn
		move, err := NewBotService(turn).BestMove(board)
		require.NoError(t, err)
		require.True(t, board.IsEmptyAt(move), "occupied %v on\n%v", move, board)

		// Then: the move keeps the best game-theoretic result available
		best := -1
		for _, cell := range board.EmptyCells() {
			best = max(best, -solve(board.With(cell, turn), turn.Opponent()))
		}
		got := -solve(board.With(move, turn), turn.Opponent())
		require.Equal(t, best, got, "suboptimal %v for %s on\n%v", move, turn, board)

		for _, cell := range board.EmptyCells() {
			visit(board.With(cell, turn), turn.Opponent())
		}
	}

	visit(entity.Board{}, x)
	assert.NotEmpty(t, seen)
}

func TestBotService_Concurrent(t *testing.T) {
	board := entity.Board{
		{x, e, e},
		{e, o, e},
		{e, e, x},
	}
	bot := NewBotService(o)
	want, err := bot.BestMove(board)
	require.NoError(t, err)

	var wg sync.WaitGroup
	moves := make([]entity.Coord, 16)
	for i := range moves {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			moves[i], _ = bot.BestMove(board)
		}(i)
	}
	wg.Wait()

	for _, move := range moves {
		assert.Equal(t, want, move)
	}
}

var solved = make(map[entity.Board]int)

// solve is a memoized negamax without pruning or heuristics. It returns the result for the side
// to move: 1 win, 0 draw, -1 loss. The memo is keyed by board alone since the board fixes whose
// turn it is.
func solve(board entity.Board, turn entity.Mark) int {
	if value, ok := solved[board]; ok {
		return value
	}

	value := 0
	switch {
	case board.Winner() != entity.EmptyCell:
		value = -1
	case board.IsFull():
		value = 0
	default:
		value = -1
		for _, cell := range board.EmptyCells() {
			value = max(value, -solve(board.With(cell, turn), turn.Opponent()))
		}
	}

	solved[board] = value
	return value
}

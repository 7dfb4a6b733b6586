package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// Tally counts the results of a self-play sweep.
type Tally struct {
	Games int `json:"games"`
	XWins int `json:"x_wins"`
	OWins int `json:"o_wins"`
	Draws int `json:"draws"`

	// FromEmpty is the result of the game the bots play from an empty board.
	FromEmpty entity.Outcome `json:"from_empty"`
}

func (that *Tally) add(outcome entity.Outcome) {
	that.Games++

	switch {
	case outcome.IsDraw():
		that.Draws++
	case outcome.Winner == entity.PlayerX:
		that.XWins++
	case outcome.Winner == entity.PlayerO:
		that.OWins++
	}
}

// SelfPlay forces every two-move opening and lets one bot per side finish each game.
// Games run concurrently, each on its own controller, at most parallelism at a time.
func SelfPlay(ctx context.Context, logger *slog.Logger, parallelism int) (Tally, error) {
	log := logger.With("component", "selfplay")

	bots := map[entity.Mark]service.BotService{
		entity.PlayerX: service.NewBotService(entity.PlayerX),
		entity.PlayerO: service.NewBotService(entity.PlayerO),
	}

	var (
		mu    sync.Mutex
		tally Tally
	)

	fromEmpty, err := playOut(ctx, tictactoe.NewGameController(), bots)
	if err != nil {
		return Tally{}, fmt.Errorf("failed to play from empty board: %w", err)
	}
	tally.FromEmpty = fromEmpty

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(parallelism, 1))

	for _, opening := range openings() {
		group.Go(func() error {
			controller := tictactoe.NewGameController()
			for _, move := range opening {
				if err := controller.MakeTurn(move.Row, move.Col, controller.Turn()); err != nil {
					return fmt.Errorf("failed to play opening %v: %w", opening, err)
				}
			}

			outcome, err := playOut(groupCtx, controller, bots)
			if err != nil {
				return fmt.Errorf("failed to play opening %v: %w", opening, err)
			}

			mu.Lock()
			tally.add(outcome)
			mu.Unlock()

			return nil
		})
	}

	if err = group.Wait(); err != nil {
		return Tally{}, err
	}

	log.Info("self-play finished",
		"games", tally.Games,
		"x_wins", tally.XWins,
		"o_wins", tally.OWins,
		"draws", tally.Draws,
		"from_empty", tally.FromEmpty.Status,
	)

	return tally, nil
}

// openings lists every pair of first moves, X then O, row-major.
func openings() [][2]entity.Coord {
	cells := entity.Board{}.EmptyCells()

	return lo.FlatMap(cells, func(first entity.Coord, _ int) [][2]entity.Coord {
		replies := lo.Without(cells, first)

		return lo.Map(replies, func(reply entity.Coord, _ int) [2]entity.Coord {
			return [2]entity.Coord{first, reply}
		})
	})
}

func playOut(ctx context.Context, controller *tictactoe.GameController, bots map[entity.Mark]service.BotService) (entity.Outcome, error) {
	for controller.Outcome().IsOngoing() {
		if err := ctx.Err(); err != nil {
			return entity.Outcome{}, err
		}

		turn := controller.Turn()
		move, err := bots[turn].BestMove(controller.Snapshot())
		if err != nil {
			return entity.Outcome{}, fmt.Errorf("bot %s failed to pick a move: %w", turn, err)
		}

		if err = controller.MakeTurn(move.Row, move.Col, turn); err != nil {
			return entity.Outcome{}, fmt.Errorf("bot %s failed to make turn: %w", turn, err)
		}
	}

	return controller.Outcome(), nil
}

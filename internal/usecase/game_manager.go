package usecase

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/feedback"
)

const (
	ModeBot   = "bot"
	ModeLocal = "local"
)

var (
	ErrUnknownMode = errors.New("unknown game mode")
	ErrBotOnTurn   = errors.New("it is the bot's turn")
)

type gameController interface {
	MakeTurn(row, col int, player entity.Mark) error
	Outcome() entity.Outcome
	Turn() entity.Mark
	Snapshot() entity.Board
	MoveCount() int
	Reset()
}

type botService interface {
	BestMove(board entity.Board) (entity.Coord, error)
	Mark() entity.Mark
}

// State is what the presentation layer renders after every call.
type State struct {
	SessionID string         `json:"session_id"`
	Board     entity.Board   `json:"board"`
	Turn      entity.Mark    `json:"turn"`
	Outcome   entity.Outcome `json:"outcome"`
	Mode      string         `json:"mode"`
}

// GameManager drives one game on behalf of the presentation layer. Like the controller it
// wraps, it is not safe for concurrent use.
type GameManager struct {
	logger *slog.Logger

	controller gameController
	bot        botService
	notifier   feedback.Notifier
	mode       string

	sessionID string
}

func NewGameManager(logger *slog.Logger, controller gameController, bot botService, notifier feedback.Notifier, mode string) (*GameManager, error) {
	if mode != ModeBot && mode != ModeLocal {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}

	if notifier == nil {
		notifier = feedback.Nop{}
	}

	that := &GameManager{
		logger:     logger.With("component", "game_manager"),
		controller: controller,
		bot:        bot,
		notifier:   notifier,
		mode:       mode,
	}

	if err := that.start(); err != nil {
		return nil, err
	}

	return that, nil
}

// MakeTurn plays the current turn's mark at (row, col) and, against the bot, lets it reply.
// A rejected move is returned as an error together with the unchanged state.
func (that *GameManager) MakeTurn(row, col int) (State, error) {
	log := that.logger.With("method", "MakeTurn", "session", that.sessionID)

	if that.isBotTurn() {
		return that.State(), ErrBotOnTurn
	}

	player := that.controller.Turn()
	if err := that.controller.MakeTurn(row, col, player); err != nil {
		log.Debug("move rejected", "row", row, "col", col, "player", player, "error", err)
		return that.State(), fmt.Errorf("failed make turn: %w", err)
	}

	log.Debug("move accepted", "cell", entity.Coord{Row: row, Col: col}.Index(), "player", player)
	feedback.Fire(that.logger, that.notifier)

	if err := that.botTurn(); err != nil {
		return that.State(), err
	}

	that.logOutcome()

	return that.State(), nil
}

// Reset starts a new game. If the bot plays X it opens immediately.
func (that *GameManager) Reset() (State, error) {
	if err := that.start(); err != nil {
		return that.State(), err
	}

	return that.State(), nil
}

func (that *GameManager) State() State {
	return State{
		SessionID: that.sessionID,
		Board:     that.controller.Snapshot(),
		Turn:      that.controller.Turn(),
		Outcome:   that.controller.Outcome(),
		Mode:      that.mode,
	}
}

// BotMark is the bot's mark, empty when two people share the board.
func (that *GameManager) BotMark() entity.Mark {
	if that.mode != ModeBot {
		return entity.EmptyCell
	}

	return that.bot.Mark()
}

func (that *GameManager) start() error {
	that.controller.Reset()
	that.sessionID = uuid.NewString()

	that.logger.Info("game started", "session", that.sessionID, "mode", that.mode, "bot", that.BotMark())

	return that.botTurn()
}

func (that *GameManager) isBotTurn() bool {
	return that.mode == ModeBot && that.controller.Outcome().IsOngoing() && that.controller.Turn() == that.bot.Mark()
}

func (that *GameManager) botTurn() error {
	if !that.isBotTurn() {
		return nil
	}

	log := that.logger.With("method", "botTurn", "session", that.sessionID)

	move, err := that.bot.BestMove(that.controller.Snapshot())
	if err != nil {
		return fmt.Errorf("bot failed to pick a move: %w", err)
	}

	if err = that.controller.MakeTurn(move.Row, move.Col, that.bot.Mark()); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Debug("bot moved", "cell", move.Index(), "moves", that.controller.MoveCount())
	feedback.Fire(that.logger, that.notifier)

	return nil
}

func (that *GameManager) logOutcome() {
	outcome := that.controller.Outcome()
	if !outcome.IsFinished() {
		return
	}

	that.logger.Info("game finished",
		"session", that.sessionID,
		"status", outcome.Status,
		"winner", outcome.Winner,
		"moves", that.controller.MoveCount(),
	)
}

package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/feedback"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/transport/console"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if conf.Mode == config.ModeSelfPlay {
		return runSelfPlay(ctx, logger, conf)
	}

	gameManager, err := usecase.NewGameManager(
		logger,
		tictactoe.NewGameController(),
		service.NewBotService(entity.Mark(conf.BotMark)),
		newNotifier(conf),
		gameMode(conf.Mode),
	)
	if err != nil {
		return fmt.Errorf("could not start game: %w", err)
	}

	log.Info("Starting console", "mode", conf.Mode, "bot", gameManager.BotMark())

	if err = console.New(logger, gameManager).Start(ctx, conf.HistoryFile); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	log.Info("Console closed, shutting down")

	return nil
}

func runSelfPlay(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	tally, err := usecase.SelfPlay(ctx, logger, conf.SelfPlayParallelism)
	if err != nil {
		return fmt.Errorf("self-play failed: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err = encoder.Encode(tally); err != nil {
		return fmt.Errorf("could not print tally: %w", err)
	}

	return nil
}

func newNotifier(conf *config.Config) feedback.Notifier {
	if conf.Feedback == config.FeedbackBell {
		return feedback.NewBell(os.Stdout)
	}

	return feedback.Nop{}
}

func gameMode(mode string) string {
	if mode == config.ModeLocal {
		return usecase.ModeLocal
	}

	return usecase.ModeBot
}

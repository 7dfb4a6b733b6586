package feedback

import (
	"fmt"
	"io"
	"log/slog"
)

// Notifier plays the ancillary effect that accompanies an accepted move, a sound or a vibration.
type Notifier interface {
	MoveEffect() error
}

// Fire runs the notifier's effect on its own goroutine. Errors and panics are logged and dropped,
// the caller is never blocked or failed by it.
func Fire(logger *slog.Logger, notifier Notifier) {
	if notifier == nil {
		return
	}

	log := logger.With("method", "feedback.Fire")

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Debug("move effect panicked", "panic", r)
			}
		}()

		if err := notifier.MoveEffect(); err != nil {
			log.Debug("move effect failed", "error", err)
		}
	}()
}

type bell struct {
	out io.Writer
}

// NewBell rings the terminal bell on every move.
func NewBell(out io.Writer) Notifier {
	return &bell{out: out}
}

func (that *bell) MoveEffect() error {
	if _, err := io.WriteString(that.out, "\a"); err != nil {
		return fmt.Errorf("failed to ring bell: %w", err)
	}

	return nil
}

// Nop is used when feedback is disabled.
type Nop struct{}

func (Nop) MoveEffect() error {
	return nil
}

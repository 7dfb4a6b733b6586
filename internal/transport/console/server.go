package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"

	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

var errQuit = errors.New("quit")

type gameManager interface {
	MakeTurn(row, col int) (usecase.State, error)
	Reset() (usecase.State, error)
	State() usecase.State
}

type handler func(args []string) (string, error)

// Server is the terminal front end: it reads commands, calls the game manager and renders the
// resulting state.
type Server struct {
	logger   *slog.Logger
	game     gameManager
	handlers map[string]handler
}

func New(logger *slog.Logger, game gameManager) *Server {
	server := &Server{
		logger:   logger.With("component", "console"),
		game:     game,
		handlers: make(map[string]handler),
	}

	server.handlers["move"] = server.handleMove
	server.handlers["reset"] = server.handleReset
	server.handlers["board"] = server.handleBoard
	server.handlers["help"] = server.handleHelp
	server.handlers["exit"] = server.handleQuit
	server.handlers["quit"] = server.handleQuit

	return server
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// Start - runs the readline loop until the user quits, input ends or ctx is canceled.
func (that *Server) Start(ctx context.Context, historyFile string) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[36mtictactoe>\033[0m ",
		HistoryFile:     historyFile,
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return fmt.Errorf("failed to start readline: %w", err)
	}
	defer l.Close()

	go func() {
		<-ctx.Done()
		l.Close()
	}()

	showMessage(Render(that.game.State()), l.Stdout())
	showMessage(usage, l.Stdout())

	for {
		line, err := l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to read line: %w", err)
		}

		response, err := that.Handle(line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			showMessage("Error: "+err.Error(), l.Stderr())
		}
		if response != "" {
			showMessage(response, l.Stdout())
		}
	}
}

// Handle executes one command line and returns what should be printed. A bare "<row> <col>"
// is a move.
func (that *Server) Handle(line string) (string, error) {
	log := that.logger.With("method", "Handle")

	fields, err := shellquote.Split(strings.TrimSpace(line))
	if err != nil {
		return "", fmt.Errorf("could not parse %q: %w", line, err)
	}

	if len(fields) == 0 {
		return "", nil
	}

	command, args := strings.ToLower(fields[0]), fields[1:]
	if _, ok := parseIndex(command); ok {
		command, args = "move", fields
	}

	handle, ok := that.handlers[command]
	if !ok {
		return "", fmt.Errorf("%w: %s", errUnknownCommand, command)
	}

	log.Debug("handling command", "command", command, "args", args)

	return handle(args)
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

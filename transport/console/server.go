package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/usecase"
)

type sessionManager interface {
	StartSession(ctx context.Context) (string, *usecase.Session, error)
	Restart(ctx context.Context, id string) (*usecase.Session, error)
	GetSession(ctx context.Context, id string) (*usecase.Session, error)
	SubmitMove(ctx context.Context, id string, pos entity.Position) (entity.MoveResult, error)
	CloseSession(ctx context.Context, id string)
}

// Server is the terminal host: it turns typed lines into engine calls and draws the board after each one.
type Server struct {
	logger  *slog.Logger
	manager sessionManager

	sessionID string
	session   *usecase.Session

	handlers map[string]func(ctx context.Context, args []string, out io.Writer) error
}

func New(logger *slog.Logger, manager sessionManager) *Server {
	server := &Server{
		logger:  logger.With("component", "console"),
		manager: manager,

		handlers: make(map[string]func(context.Context, []string, io.Writer) error),
	}

	server.handlers["play"] = server.handleStart
	server.handlers["start"] = server.handleStart
	server.handlers["restart"] = server.handleStart
	server.handlers["resume"] = server.handleResume
	server.handlers["board"] = server.handleBoard
	server.handlers["help"] = server.handleHelp

	return server
}

// Run reads commands until quit, end of input or cancellation.
func (that *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	log := that.logger.With("method", "Run")

	scanner := bufio.NewScanner(in)

	that.prompt(out)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("console stopped: %w", err)
		}

		fields := strings.Fields(strings.ToLower(scanner.Text()))
		if len(fields) == 0 {
			that.prompt(out)
			continue
		}

		if fields[0] == "quit" || fields[0] == "exit" {
			log.Info("player quit", "sessionID", that.sessionID)
			return nil
		}

		handler, ok := that.handlers[fields[0]]
		if !ok {
			handler = that.handleMove
		} else {
			fields = fields[1:]
		}

		if err := handler(ctx, fields, out); err != nil {
			return err
		}

		that.prompt(out)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

// prompt labels the next command: play before a game, restart while one is running.
func (that *Server) prompt(out io.Writer) {
	label := "play"
	if that.session != nil && that.session.IsActive() {
		label = "restart"
	}

	fmt.Fprintf(out, "[%s] > ", label)
}

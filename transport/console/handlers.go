package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-solo/internal/usecase"
)

const (
	messageGameStarts = "Game Starts!"
	messageNoGame     = "Type 'play' to start a game."
	messageOffBoard   = "That cell is not on the board."
	messageUsage      = "Moves: 'row col' (0-2 each) or a cell number 0-8. Commands: play, restart, resume <id>, board, quit."
)

func (that *Server) handleStart(ctx context.Context, _ []string, out io.Writer) error {
	log := that.logger.With("method", "handleStart")

	if that.sessionID == "" {
		id, session, err := that.manager.StartSession(ctx)
		if err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}

		that.sessionID = id
		that.session = session
	} else {
		session, err := that.manager.Restart(ctx, that.sessionID)
		if err != nil {
			return fmt.Errorf("failed to restart session: %w", err)
		}

		that.session = session
	}

	log.Debug("game started", "sessionID", that.sessionID)

	fmt.Fprintln(out, messageGameStarts)
	fmt.Fprintf(out, "session %s\n", that.sessionID)
	render(out, that.session)

	return nil
}

func (that *Server) handleResume(ctx context.Context, args []string, out io.Writer) error {
	log := that.logger.With("method", "handleResume")

	if len(args) != 1 {
		fmt.Fprintln(out, messageUsage)
		return nil
	}

	session, err := that.manager.GetSession(ctx, args[0])
	if errors.Is(err, apperror.ErrSessionNotFound) {
		fmt.Fprintf(out, "No saved game %s.\n", args[0])
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to resume session: %w", err)
	}

	log.Info("session resumed", "sessionID", args[0])

	that.sessionID = args[0]
	that.session = session

	render(out, session)
	announce(out, session.Outcome())

	return nil
}

func (that *Server) handleBoard(_ context.Context, _ []string, out io.Writer) error {
	if that.session == nil {
		fmt.Fprintln(out, messageNoGame)
		return nil
	}

	render(out, that.session)

	return nil
}

func (that *Server) handleHelp(_ context.Context, _ []string, out io.Writer) error {
	fmt.Fprintln(out, messageUsage)
	return nil
}

func (that *Server) handleMove(ctx context.Context, args []string, out io.Writer) error {
	pos, err := parsePosition(args)
	if err != nil {
		fmt.Fprintln(out, messageUsage)
		return nil //nolint: nilerr // bad input is reported to the player
	}

	if that.session == nil {
		fmt.Fprintln(out, messageNoGame)
		return nil
	}

	result, err := that.manager.SubmitMove(ctx, that.sessionID, pos)
	if errors.Is(err, apperror.ErrOutOfRange) {
		fmt.Fprintln(out, messageOffBoard)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to submit move: %w", err)
	}

	if !result.Applied() {
		return nil
	}

	if result.Opponent != nil {
		fmt.Fprintf(out, "Opponent plays %s\n", result.Opponent)
	}

	render(out, that.session)
	announce(out, result.Outcome)

	return nil
}

// parsePosition accepts "row col" or a flat cell number.
func parsePosition(args []string) (entity.Position, error) {
	numbers := make([]int, 0, len(args))

	for _, arg := range args {
		number, err := strconv.Atoi(arg)
		if err != nil {
			return entity.Position{}, fmt.Errorf("not a number %q: %w", arg, err)
		}

		numbers = append(numbers, number)
	}

	switch len(numbers) {
	case 1:
		pos, err := entity.PositionFromIndex(numbers[0])
		if err != nil {
			// keep out-of-range indexes so the engine reports them
			return entity.NewPosition(numbers[0]/entity.BoardSize, entity.BoardSize), nil
		}

		return pos, nil
	case 2:
		return entity.NewPosition(numbers[0], numbers[1]), nil
	}

	return entity.Position{}, fmt.Errorf("expected 1 or 2 numbers, got %d", len(numbers))
}

func announce(out io.Writer, outcome entity.Outcome) {
	if outcome.IsFinal() {
		fmt.Fprintln(out, outcome.Message())
	}
}

// render draws the grid and marks the completed line, if any, in upper case brackets.
func render(out io.Writer, session *usecase.Session) {
	cells := session.Cells()

	board, err := entity.NewBoardFromCells(cells)
	if err != nil {
		return
	}

	highlight := make(map[entity.Position]bool, 3)
	if line, _, ok := tictactoe.CompletedLine(board); ok {
		for _, pos := range line {
			highlight[pos] = true
		}
	}

	rows := make([]string, 0, entity.BoardSize)
	for row := range entity.BoardSize {
		marks := make([]string, 0, entity.BoardSize)
		for col := range entity.BoardSize {
			mark := " " + cells[row*entity.BoardSize+col].String() + " "
			if highlight[entity.NewPosition(row, col)] {
				mark = "[" + cells[row*entity.BoardSize+col].String() + "]"
			}
			marks = append(marks, mark)
		}
		rows = append(rows, strings.Join(marks, "|"))
	}

	fmt.Fprintln(out, strings.Join(rows, "\n---+---+---\n"))
}

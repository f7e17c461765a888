package usecase

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

// Opponent chooses the reply to the player's move.
type Opponent interface {
	PickCell(board *entity.Board) (entity.Position, error)
}

// Session runs one single-player game against the opponent. It is not safe for concurrent use:
// the caller must not submit a move before the previous call returns.
type Session struct {
	board    *entity.Board
	opponent Opponent

	started bool
	active  bool
}

func NewSession(opponent Opponent) *Session {
	return &Session{
		board:    entity.NewBoard(),
		opponent: opponent,
	}
}

// Start clears the board and accepts moves again. It may be called mid-game.
func (that *Session) Start() {
	that.board.Reset()
	that.started = true
	that.active = true
}

func (that *Session) Reset() {
	that.Start()
}

func (that *Session) IsActive() bool {
	return that.active
}

func (that *Session) State() entity.State {
	switch {
	case !that.started:
		return entity.StateNotStarted
	case that.active:
		return entity.StateInProgress
	default:
		return entity.StateEnded
	}
}

// Outcome is derived from the board on every call.
func (that *Session) Outcome() entity.Outcome {
	return tictactoe.Evaluate(that.board)
}

func (that *Session) IsOccupied(pos entity.Position) (bool, error) {
	occupied, err := that.board.IsOccupied(pos)
	if err != nil {
		return false, fmt.Errorf("failed to check cell: %w", err)
	}

	return occupied, nil
}

func (that *Session) Cells() [entity.CellCount]entity.Cell {
	return that.board.Cells()
}

// SubmitMove places the player's mark and, if the game goes on, the opponent's reply.
func (that *Session) SubmitMove(pos entity.Position) (entity.Outcome, error) {
	result, err := that.Play(pos)

	return result.Outcome, err
}

// SubmitIndex is SubmitMove addressed by a flat index 0..8.
func (that *Session) SubmitIndex(index int) (entity.Outcome, error) {
	pos, err := entity.PositionFromIndex(index)
	if err != nil {
		return that.Outcome(), fmt.Errorf("invalid move: %w", err)
	}

	return that.SubmitMove(pos)
}

// Play is SubmitMove reporting which cells changed. Moves on an occupied cell or an inactive
// session are ignored and return the current outcome.
func (that *Session) Play(pos entity.Position) (entity.MoveResult, error) {
	occupied, err := that.board.IsOccupied(pos)
	if err != nil {
		return entity.MoveResult{Outcome: that.Outcome()}, fmt.Errorf("invalid move: %w", err)
	}

	if !that.active || occupied {
		return entity.MoveResult{Outcome: that.Outcome()}, nil
	}

	if err = that.board.Place(pos, entity.PlayerMark); err != nil {
		return entity.MoveResult{Outcome: that.Outcome()}, fmt.Errorf("failed to place player mark: %w", err)
	}

	result := entity.MoveResult{
		Outcome: tictactoe.Evaluate(that.board),
		Player:  &pos,
	}

	if result.Outcome.IsFinal() {
		that.active = false
		return result, nil
	}

	reply, err := that.opponent.PickCell(that.board)
	if err != nil {
		return result, fmt.Errorf("opponent failed to pick a cell: %w", err)
	}

	if err = that.board.Place(reply, entity.OpponentMark); err != nil {
		return result, fmt.Errorf("failed to place opponent mark: %w", err)
	}

	result.Opponent = &reply
	result.Outcome = tictactoe.Evaluate(that.board)

	if result.Outcome.IsFinal() {
		that.active = false
	}

	return result, nil
}

func (that *Session) Snapshot(id string) *entity.Snapshot {
	return &entity.Snapshot{
		ID:      id,
		Board:   that.board.Cells(),
		Started: that.started,
		Active:  that.active,
		Outcome: that.Outcome(),
	}
}

// Restore loads a snapshot. A finished board is never restored as active.
func (that *Session) Restore(snapshot *entity.Snapshot) error {
	board, err := entity.NewBoardFromCells(snapshot.Board)
	if err != nil {
		return fmt.Errorf("failed to restore board: %w", err)
	}

	that.board = board
	that.started = snapshot.Started
	that.active = snapshot.Started && snapshot.Active && !tictactoe.Evaluate(board).IsFinal()

	return nil
}

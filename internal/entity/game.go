package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

// Outcome is the evaluated result of a board.
type Outcome uint8

const (
	OutcomeInProgress Outcome = iota
	OutcomeWin
	OutcomeLoss
	OutcomeDraw
)

func (that Outcome) String() string {
	switch that {
	case OutcomeInProgress:
		return "in_progress"
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	case OutcomeDraw:
		return "draw"
	}

	return fmt.Sprintf("Outcome(%d)", uint8(that))
}

// IsFinal reports whether the game is over.
func (that Outcome) IsFinal() bool {
	return that == OutcomeWin || that == OutcomeLoss || that == OutcomeDraw
}

// Message is the text shown to the player when the game ends.
func (that Outcome) Message() string {
	switch that {
	case OutcomeWin:
		return "You Won!"
	case OutcomeLoss:
		return "You Lost..."
	case OutcomeDraw:
		return "It's a Draw"
	case OutcomeInProgress:
		return ""
	}

	return ""
}

func (that Outcome) MarshalText() ([]byte, error) {
	if that > OutcomeDraw {
		return nil, fmt.Errorf("unknown outcome: %d", uint8(that))
	}

	return []byte(that.String()), nil
}

func (that *Outcome) UnmarshalText(text []byte) error {
	for outcome := OutcomeInProgress; outcome <= OutcomeDraw; outcome++ {
		if outcome.String() == string(text) {
			*that = outcome
			return nil
		}
	}

	return fmt.Errorf("unknown outcome: %q", text)
}

// State is the session lifecycle. Win, loss and draw all collapse to StateEnded.
type State uint8

const (
	StateNotStarted State = iota
	StateInProgress
	StateEnded
)

func (that State) String() string {
	switch that {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateEnded:
		return "ended"
	}

	return fmt.Sprintf("State(%d)", uint8(that))
}

// Snapshot is the serialisable view of a session.
type Snapshot struct {
	ID      string          `json:"id"`
	Board   [CellCount]Cell `json:"board"`
	Started bool            `json:"started"`
	Active  bool            `json:"active"`
	Outcome Outcome         `json:"outcome"`
}

// MoveResult reports the outcome of one submitted move and the cells it changed.
type MoveResult struct {
	Outcome  Outcome   `json:"outcome"`
	Player   *Position `json:"player,omitempty"`
	Opponent *Position `json:"opponent,omitempty"`
}

// Applied reports whether the move changed the board.
func (that MoveResult) Applied() bool {
	return that.Player != nil
}

// Validate checks that every cell holds a known mark.
func (that *Snapshot) Validate() error {
	for i, cell := range that.Board {
		if cell > OpponentMark {
			return fmt.Errorf("%w: cell %d", apperror.ErrInvalidMark, i)
		}
	}

	return nil
}

package tictactoe

import "github.com/rocketscienceinc/tictactoe-solo/internal/entity"

// WinLines are checked in this order: rows, columns, then the two diagonals.
var WinLines = [8]entity.Line{
	{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
	{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 1, Col: 1}, {Row: 0, Col: 2}},
}

// Evaluate returns the outcome of the first complete line, or Draw/InProgress when none is complete.
func Evaluate(board *entity.Board) entity.Outcome {
	if _, outcome, ok := CompletedLine(board); ok {
		return outcome
	}

	if board.HasEmptyCell() {
		return entity.OutcomeInProgress
	}

	return entity.OutcomeDraw
}

// CompletedLine finds the first line in WinLines filled with a single mark.
func CompletedLine(board *entity.Board) (entity.Line, entity.Outcome, bool) {
	for _, line := range WinLines {
		if outcome := lineResult(board.Line(line)); outcome != entity.OutcomeInProgress {
			return line, outcome, true
		}
	}

	return entity.Line{}, entity.OutcomeInProgress, false
}

func lineResult(cells [3]entity.Cell) entity.Outcome {
	a, b, c := cells[0], cells[1], cells[2]
	if a == entity.EmptyCell || a != b || b != c {
		return entity.OutcomeInProgress
	}

	switch a {
	case entity.PlayerMark:
		return entity.OutcomeWin
	case entity.OpponentMark:
		return entity.OutcomeLoss
	}

	return entity.OutcomeInProgress
}

package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

const (
	BoardSize = 3
	CellCount = BoardSize * BoardSize
)

// Cell is the content of one grid position.
type Cell uint8

const (
	EmptyCell Cell = iota
	PlayerMark
	OpponentMark
)

func (that Cell) String() string {
	switch that {
	case EmptyCell:
		return "."
	case PlayerMark:
		return "X"
	case OpponentMark:
		return "O"
	}

	return fmt.Sprintf("Cell(%d)", uint8(that))
}

// MarshalText stores marks the same way they are drawn, with "" for an empty cell.
func (that Cell) MarshalText() ([]byte, error) {
	switch that {
	case EmptyCell:
		return []byte{}, nil
	case PlayerMark, OpponentMark:
		return []byte(that.String()), nil
	}

	return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidMark, uint8(that))
}

func (that *Cell) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", ".":
		*that = EmptyCell
	case "X":
		*that = PlayerMark
	case "O":
		*that = OpponentMark
	default:
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, text)
	}

	return nil
}

// Position addresses a cell by row and column, both in [0, BoardSize).
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewPosition(row, col int) Position {
	return Position{Row: row, Col: col}
}

// PositionFromIndex maps a flat index 0..8 to its row and column.
func PositionFromIndex(index int) (Position, error) {
	if index < 0 || index >= CellCount {
		return Position{}, fmt.Errorf("%w: index %d", apperror.ErrOutOfRange, index)
	}

	return Position{Row: index / BoardSize, Col: index % BoardSize}, nil
}

func (that Position) Index() int {
	return that.Row*BoardSize + that.Col
}

func (that Position) Valid() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Position) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Line is a triple of positions that wins the game when filled with one mark.
type Line [3]Position

// Board is the 3x3 grid. A marked cell is only cleared by Reset.
type Board struct {
	cells [BoardSize][BoardSize]Cell
}

func NewBoard() *Board {
	return &Board{}
}

// NewBoardFromCells builds a board from a row-major slice of cells.
func NewBoardFromCells(cells [CellCount]Cell) (*Board, error) {
	board := NewBoard()

	for i, cell := range cells {
		if cell > OpponentMark {
			return nil, fmt.Errorf("%w: cell %d", apperror.ErrInvalidMark, i)
		}

		board.cells[i/BoardSize][i%BoardSize] = cell
	}

	return board, nil
}

func (that *Board) Reset() {
	that.cells = [BoardSize][BoardSize]Cell{}
}

func (that *Board) At(pos Position) (Cell, error) {
	if !pos.Valid() {
		return EmptyCell, fmt.Errorf("%w: %s", apperror.ErrOutOfRange, pos)
	}

	return that.cells[pos.Row][pos.Col], nil
}

func (that *Board) IsOccupied(pos Position) (bool, error) {
	cell, err := that.At(pos)
	if err != nil {
		return false, err
	}

	return cell != EmptyCell, nil
}

// Place marks an empty cell.
func (that *Board) Place(pos Position, mark Cell) error {
	if mark != PlayerMark && mark != OpponentMark {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidMark, mark)
	}

	occupied, err := that.IsOccupied(pos)
	if err != nil {
		return err
	}

	if occupied {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, pos)
	}

	that.cells[pos.Row][pos.Col] = mark

	return nil
}

func (that *Board) HasEmptyCell() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == EmptyCell {
				return true
			}
		}
	}

	return false
}

// Line projects the cells of a line. Positions off the grid read as EmptyCell.
func (that *Board) Line(line Line) [3]Cell {
	var cells [3]Cell

	for i, pos := range line {
		if pos.Valid() {
			cells[i] = that.cells[pos.Row][pos.Col]
		}
	}

	return cells
}

// Cells returns a row-major copy of the grid.
func (that *Board) Cells() [CellCount]Cell {
	var cells [CellCount]Cell

	for row := range that.cells {
		for col, cell := range that.cells[row] {
			cells[row*BoardSize+col] = cell
		}
	}

	return cells
}

func (that *Board) EmptyPositions() []Position {
	positions := make([]Position, 0, CellCount)

	for row := range that.cells {
		for col, cell := range that.cells[row] {
			if cell == EmptyCell {
				positions = append(positions, NewPosition(row, col))
			}
		}
	}

	return positions
}

package apperror

import "errors"

var (
	ErrOutOfRange      = errors.New("position is out of range")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidMark     = errors.New("invalid cell mark")
	ErrNoEmptyCell     = errors.New("no empty cell left")
	ErrSessionNotFound = errors.New("session not found")
)

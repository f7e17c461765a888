package service

import (
	"fmt"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

// Rand is the only source of nondeterminism in the engine. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// RandomOpponent picks a uniformly random empty cell.
type RandomOpponent struct {
	rand Rand
}

func NewRandomOpponent(rnd Rand) *RandomOpponent {
	return &RandomOpponent{
		rand: rnd,
	}
}

// NewSeededOpponent returns an opponent whose choices are reproducible for a given seed.
func NewSeededOpponent(seed uint64) *RandomOpponent {
	return NewRandomOpponent(rand.New(rand.NewPCG(seed, seed))) //nolint: gosec // game moves, not secrets
}

// PickCell draws random positions until it hits an empty one.
func (that *RandomOpponent) PickCell(board *entity.Board) (entity.Position, error) {
	if !board.HasEmptyCell() {
		return entity.Position{}, apperror.ErrNoEmptyCell
	}

	for {
		pos := entity.NewPosition(that.rand.IntN(entity.BoardSize), that.rand.IntN(entity.BoardSize))

		occupied, err := board.IsOccupied(pos)
		if err != nil {
			return entity.Position{}, fmt.Errorf("opponent drew invalid cell: %w", err)
		}

		if !occupied {
			return pos, nil
		}
	}
}

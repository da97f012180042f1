package player

import (
	"context"
	"errors"
	"math/rand"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// Random proposes a uniformly random empty cell. Handy as a cheap opponent
// and for exercising the engine without network calls.
type Random struct{}

func NewRandom() *Random {
	return &Random{}
}

func (that *Random) Propose(_ context.Context, game *entity.Game, _ string) (entity.Proposal, error) {
	available := make([]entity.Coordinate, 0, entity.BoardSize*entity.BoardSize)
	for rowIdx := 0; rowIdx < entity.BoardSize; rowIdx++ {
		for colIdx := 0; colIdx < entity.BoardSize; colIdx++ {
			if game.Board.At(rowIdx, colIdx) == entity.EmptyCell {
				available = append(available, entity.CoordinateAt(rowIdx, colIdx))
			}
		}
	}

	if len(available) == 0 {
		return entity.Proposal{}, ErrNoAvailableMoves
	}

	chosen := available[rand.Intn(len(available))] //nolint: gosec // it's ok

	return entity.Proposal{Column: chosen.Column, Row: chosen.Row}, nil
}

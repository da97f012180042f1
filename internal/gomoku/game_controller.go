package gomoku

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// MaxTurnAttempts bounds how many proposals a player gets within one turn
// before forfeiting. The counter resets at the start of every turn.
const MaxTurnAttempts = 4

// MoveSource produces raw move proposals for a player. Implementations may
// be model-backed, scripted or interactive; proposals are validated by the
// engine, never trusted.
type MoveSource interface {
	Propose(ctx context.Context, game *entity.Game, mark string) (entity.Proposal, error)
}

// ApplyMove validates and applies one stone placement, then evaluates the
// board for a terminal condition. Placement and evaluation are one atomic
// step: a game is never left with an unevaluated stone.
func ApplyMove(game *entity.Game, player string, coord entity.Coordinate) error {
	if err := game.ConfirmOngoingState(); err != nil {
		return err
	}

	if game.Turn != player {
		return apperror.ErrNotYourTurn
	}

	if err := game.Board.Place(coord, player); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	game.RecordMove(player, coord)

	if line := CheckWin(&game.Board, coord); line != nil {
		game.FinishWithWin(player, line)
		return nil
	}

	if game.Board.IsFull() {
		game.FinishWithDraw()
		return nil
	}

	game.Turn = entity.OpponentOf(player)
	game.TurnAttempts = 0

	return nil
}

// PlayTurn runs one full turn for the player on move: it requests proposals
// from the source until one is applied or the attempt budget is exhausted,
// in which case the player forfeits. Transport failures and malformed or
// illegal proposals all consume one attempt and are kept in the audit log.
func PlayTurn(ctx context.Context, game *entity.Game, source MoveSource) error {
	if err := game.ConfirmOngoingState(); err != nil {
		return err
	}

	player := game.Turn
	game.TurnAttempts = 0

	for game.TurnAttempts < MaxTurnAttempts {
		proposal, err := source.Propose(ctx, game, player)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("move request aborted: %w", ctx.Err())
			}

			game.RecordInvalidAttempt(player, "", err.Error())
			continue
		}

		if err = ApplyMove(game, player, proposal.Coordinate()); err != nil {
			game.RecordInvalidAttempt(player, proposal.String(), err.Error())
			continue
		}

		return nil
	}

	game.FinishWithForfeit(player)

	return nil
}

package gomoku

import (
	"context"
	"errors"
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSourceDown = errors.New("source down")

// script is an in-package scripted move source; it hands out proposals in
// order and fails once exhausted.
type script struct {
	proposals []entity.Proposal
	next      int
}

func (that *script) Propose(_ context.Context, _ *entity.Game, _ string) (entity.Proposal, error) {
	if that.next >= len(that.proposals) {
		return entity.Proposal{}, errSourceDown
	}

	proposal := that.proposals[that.next]
	that.next++

	return proposal, nil
}

func (that *script) remaining() int {
	return len(that.proposals) - that.next
}

type sourceFunc func(ctx context.Context, game *entity.Game, mark string) (entity.Proposal, error)

func (that sourceFunc) Propose(ctx context.Context, game *entity.Game, mark string) (entity.Proposal, error) {
	return that(ctx, game, mark)
}

func proposal(column string, row int) entity.Proposal {
	return entity.Proposal{Column: column, Row: row}
}

func TestApplyMove(t *testing.T) {
	t.Run("Applies a legal move and passes the turn", func(t *testing.T) {
		// Given: a fresh game with Black on move
		game := entity.NewGame("123")

		// When: black plays H8
		err := ApplyMove(game, entity.PlayerBlack, coord("H", 8))

		// Then: the stone is on the board, history grew and White is on move
		require.NoError(t, err)
		assert.Equal(t, 1, game.Board.StoneCount())
		require.Len(t, game.Moves, 1)
		assert.Equal(t, entity.PlayerWhite, game.Turn)
		assert.Equal(t, 0, game.TurnAttempts)
	})

	t.Run("Rejects a move out of turn", func(t *testing.T) {
		// Given: a fresh game with Black on move
		game := entity.NewGame("123")

		// When: white tries to move first
		err := ApplyMove(game, entity.PlayerWhite, coord("H", 8))

		// Then: it should return ErrNotYourTurn and change nothing
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, 0, game.Board.StoneCount())
	})

	t.Run("Rejects moves once the game is finished", func(t *testing.T) {
		// Given: a finished game
		game := entity.NewGame("123")
		game.FinishWithForfeit(entity.PlayerWhite)

		// When: anyone tries to move
		err := ApplyMove(game, entity.PlayerBlack, coord("H", 8))

		// Then: the terminal state is absorbing
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, 0, game.Board.StoneCount())
	})

	t.Run("Finishes with a win when the move completes five in a row", func(t *testing.T) {
		// Given: black one stone away from five in a row
		game := entity.NewGame("123")
		blackMoves := []entity.Coordinate{coord("H", 8), coord("H", 9), coord("H", 10), coord("H", 11)}
		whiteMoves := []entity.Coordinate{coord("A", 1), coord("A", 2), coord("A", 3), coord("A", 4)}
		for i := range blackMoves {
			require.NoError(t, ApplyMove(game, entity.PlayerBlack, blackMoves[i]))
			require.NoError(t, ApplyMove(game, entity.PlayerWhite, whiteMoves[i]))
		}

		// When: black completes the line
		require.NoError(t, ApplyMove(game, entity.PlayerBlack, coord("H", 12)))

		// Then: the game is won with the exact line recorded
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.ResultWin, game.Result)
		assert.Equal(t, entity.PlayerBlack, game.Winner)
		assert.Equal(t, []entity.Coordinate{
			coord("H", 8), coord("H", 9), coord("H", 10), coord("H", 11), coord("H", 12),
		}, game.WinningLine)
		assert.Equal(t, len(game.Moves), game.Board.StoneCount())
	})
}

func TestPlayTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies the first legal proposal", func(t *testing.T) {
		// Given: a source proposing a legal move
		game := entity.NewGame("123")
		source := &script{proposals: []entity.Proposal{proposal("H", 8)}}

		// When: playing the turn
		err := PlayTurn(ctx, game, source)

		// Then: the move is applied and no attempts are burned
		require.NoError(t, err)
		assert.Len(t, game.Moves, 1)
		assert.Empty(t, game.Invalid)
		assert.Equal(t, entity.PlayerWhite, game.Turn)
	})

	t.Run("Retries invalid proposals within the attempt budget", func(t *testing.T) {
		// Given: black already holds H8, and white proposes two bad moves first
		game := entity.NewGame("123")
		require.NoError(t, ApplyMove(game, entity.PlayerBlack, coord("H", 8)))

		source := &script{proposals: []entity.Proposal{
			proposal("Z", 20), // out of bounds
			proposal("H", 8),  // occupied
			proposal("H", 9),  // legal
		}}

		// When: playing the turn
		err := PlayTurn(ctx, game, source)

		// Then: the legal move lands and both failures are audited
		require.NoError(t, err)
		assert.Len(t, game.Moves, 2)
		require.Len(t, game.Invalid, 2)
		assert.Equal(t, "Z20", game.Invalid[0].Proposal)
		assert.Equal(t, "H8", game.Invalid[1].Proposal)
		assert.Equal(t, entity.PlayerBlack, game.Turn)
	})

	t.Run("Forfeits after four failed attempts and never asks a fifth time", func(t *testing.T) {
		// Given: black holds H8; white queues four invalid proposals plus a
		// legal one that must never be requested
		game := entity.NewGame("123")
		require.NoError(t, ApplyMove(game, entity.PlayerBlack, coord("H", 8)))

		source := &script{proposals: []entity.Proposal{
			proposal("Z", 20), // out of bounds
			proposal("H", 8),  // occupied
			proposal("", 0),   // malformed
			proposal("H", 8),  // occupied again
			proposal("H", 9),  // legal, but too late
		}}

		// When: playing white's turn
		err := PlayTurn(ctx, game, source)

		// Then: white forfeits, black wins, and the fifth proposal stays queued
		require.NoError(t, err)
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.ResultForfeit, game.Result)
		assert.Equal(t, entity.PlayerBlack, game.Winner)
		assert.Len(t, game.Invalid, MaxTurnAttempts)
		assert.Equal(t, 1, source.remaining())
	})

	t.Run("Transport failures consume attempts like malformed proposals", func(t *testing.T) {
		// Given: a source that always fails
		game := entity.NewGame("123")
		failing := sourceFunc(func(_ context.Context, _ *entity.Game, _ string) (entity.Proposal, error) {
			return entity.Proposal{}, errSourceDown
		})

		// When: playing the turn
		err := PlayTurn(ctx, game, failing)

		// Then: black forfeits after four attempts
		require.NoError(t, err)
		assert.Equal(t, entity.ResultForfeit, game.Result)
		assert.Equal(t, entity.PlayerWhite, game.Winner)
		assert.Len(t, game.Invalid, MaxTurnAttempts)
	})

	t.Run("Resets the attempt counter at the start of every turn", func(t *testing.T) {
		// Given: black burns three attempts before a legal move, then white
		// moves, then black burns three attempts again
		game := entity.NewGame("123")

		badThenGood := func(good entity.Proposal) *script {
			return &script{proposals: []entity.Proposal{
				proposal("Z", 20),
				proposal("Z", 20),
				proposal("Z", 20),
				good,
			}}
		}

		// When: three turns are played
		require.NoError(t, PlayTurn(ctx, game, badThenGood(proposal("H", 8))))
		require.NoError(t, PlayTurn(ctx, game, &script{proposals: []entity.Proposal{proposal("A", 1)}}))
		require.NoError(t, PlayTurn(ctx, game, badThenGood(proposal("H", 9))))

		// Then: no forfeit happened, all moves landed, all failures audited
		assert.True(t, game.IsOngoing())
		assert.Len(t, game.Moves, 3)
		assert.Len(t, game.Invalid, 6)
	})

	t.Run("Finishes with a draw when the final stone fills the board", func(t *testing.T) {
		// Given: a board one cell short of full, colored with no five-in-a-row
		game := entity.NewGame("123")
		for rowIdx := 0; rowIdx < entity.BoardSize; rowIdx++ {
			for colIdx := 0; colIdx < entity.BoardSize; colIdx++ {
				if rowIdx == entity.BoardSize-1 && colIdx == entity.BoardSize-1 {
					continue // O15 stays empty
				}

				mark := entity.PlayerBlack
				if (2*rowIdx+colIdx)%5 >= 3 {
					mark = entity.PlayerWhite
				}
				require.NoError(t, game.Board.Place(entity.CoordinateAt(rowIdx, colIdx), mark))
			}
		}

		// When: black fills the last cell
		err := PlayTurn(ctx, game, &script{proposals: []entity.Proposal{proposal("O", 15)}})

		// Then: the game ends in a draw with no winner
		require.NoError(t, err)
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.ResultDraw, game.Result)
		assert.Empty(t, game.Winner)
		assert.True(t, game.Board.IsFull())
	})

	t.Run("Aborts without forfeit when the context is canceled", func(t *testing.T) {
		// Given: a canceled context and a source that honors it
		game := entity.NewGame("123")
		canceledCtx, cancel := context.WithCancel(ctx)
		cancel()

		honoring := sourceFunc(func(reqCtx context.Context, _ *entity.Game, _ string) (entity.Proposal, error) {
			return entity.Proposal{}, reqCtx.Err()
		})

		// When: playing the turn
		err := PlayTurn(canceledCtx, game, honoring)

		// Then: the turn errors out and the game is left ongoing and untouched
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.True(t, game.IsOngoing())
		assert.Empty(t, game.Invalid)
		assert.Empty(t, game.Moves)
	})

	t.Run("Rejects playing a turn on a finished game", func(t *testing.T) {
		// Given: a finished game
		game := entity.NewGame("123")
		game.FinishWithDraw()

		// When: playing another turn
		err := PlayTurn(ctx, game, &script{proposals: []entity.Proposal{proposal("H", 8)}})

		// Then: it should return ErrGameFinished
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

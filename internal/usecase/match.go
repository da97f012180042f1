package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type recordRepo interface {
	Save(ctx context.Context, game *entity.Game) (string, error)
}

type archiveRepo interface {
	Save(ctx context.Context, game *entity.Game) error
}

// MatchRunner drives one match to its terminal state: it alternates turns
// between the two move sources, checkpoints live state after every turn and
// persists the finished record.
type MatchRunner struct {
	logger *slog.Logger

	gameRepo    gameRepo
	recordRepo  recordRepo
	archiveRepo archiveRepo

	sources map[string]gomoku.MoveSource
}

func NewMatchRunner(logger *slog.Logger, games gameRepo, records recordRepo, archive archiveRepo, black, white gomoku.MoveSource) *MatchRunner {
	return &MatchRunner{
		logger: logger,

		gameRepo:    games,
		recordRepo:  records,
		archiveRepo: archive,

		sources: map[string]gomoku.MoveSource{
			entity.PlayerBlack: black,
			entity.PlayerWhite: white,
		},
	}
}

// NewMatch creates a fresh game with the given players; Black moves first.
func NewMatch(players ...*entity.Player) *entity.Game {
	game := entity.NewGame(uuid.NewString())
	game.Players = players

	return game
}

// Run plays the game until Win, Draw or Forfeit. The context may abort the
// match between turns; a partially played game stays in the live store.
func (that *MatchRunner) Run(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	log := that.logger.With("component", "match", "game_id", game.ID)

	if err := game.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to store new game: %w", err)
	}

	for game.IsOngoing() {
		select {
		case <-ctx.Done():
			return game, fmt.Errorf("match aborted: %w", ctx.Err())
		default:
		}

		player := game.Turn
		movesBefore := len(game.Moves)
		invalidBefore := len(game.Invalid)

		if err := gomoku.PlayTurn(ctx, game, that.sources[player]); err != nil {
			return game, fmt.Errorf("failed to play turn: %w", err)
		}

		for _, attempt := range game.Invalid[invalidBefore:] {
			log.Warn("invalid proposal", "player", attempt.Player, "proposal", attempt.Proposal, "reason", attempt.Reason)
		}

		if len(game.Moves) > movesBefore {
			move := game.Moves[len(game.Moves)-1]
			log.Info("move applied", "player", move.Player, "move", move.Coordinate().String(), "move_number", move.Number)
		}

		if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
			return game, fmt.Errorf("failed to update game: %w", err)
		}
	}

	if err := that.finish(ctx, game, log); err != nil {
		return game, err
	}

	return game, nil
}

func (that *MatchRunner) finish(ctx context.Context, game *entity.Game, log *slog.Logger) error {
	log.Info("game finished",
		"result", game.Result,
		"winner", game.Winner,
		"total_moves", len(game.Moves),
	)

	path, err := that.recordRepo.Save(ctx, game)
	if err != nil {
		return fmt.Errorf("failed to save game record: %w", err)
	}
	log.Info("game record saved", "path", path)

	if that.archiveRepo != nil {
		if err = that.archiveRepo.Save(ctx, game); err != nil {
			return fmt.Errorf("failed to archive game: %w", err)
		}
	}

	if err = that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("could not delete finished game from live store", "error", err)
	}

	return nil
}

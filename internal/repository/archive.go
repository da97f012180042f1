package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/repository/storage/sqlite"
)

// ArchiveRepository keeps a queryable row per finished match in sqlite,
// with the full record attached as JSON.
type ArchiveRepository interface {
	Save(ctx context.Context, game *entity.Game) error
}

type dbArchive struct {
	storage *sqlite.Storage
}

func NewArchiveRepository(storage *sqlite.Storage) ArchiveRepository {
	return &dbArchive{
		storage: storage,
	}
}

func (that *dbArchive) Save(ctx context.Context, game *entity.Game) error {
	if !game.IsFinished() {
		return ErrGameNotFinished
	}

	recordJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game record: %w", err)
	}

	query := `INSERT INTO games (id, started_at, black_model, white_model, result, winner, total_moves, record)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = that.storage.Connection.ExecContext(ctx, query,
		game.ID,
		game.StartedAt.Format(time.RFC3339),
		modelName(game.PlayerByMark(entity.PlayerBlack)),
		modelName(game.PlayerByMark(entity.PlayerWhite)),
		game.Result,
		game.Winner,
		len(game.Moves),
		string(recordJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert game record: %w", err)
	}

	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

var ErrGameNotFinished = errors.New("game is not finished")

// RecordRepository writes one JSON file per finished match, for replay and
// analysis. Returns the path of the written file.
type RecordRepository interface {
	Save(ctx context.Context, game *entity.Game) (string, error)
}

type fileRecord struct {
	dir string
}

func NewRecordRepository(dir string) RecordRepository {
	return &fileRecord{
		dir: dir,
	}
}

func (that *fileRecord) Save(_ context.Context, game *entity.Game) (string, error) {
	if !game.IsFinished() {
		return "", ErrGameNotFinished
	}

	if err := os.MkdirAll(that.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create records dir: %w", err)
	}

	recordJSON, err := json.MarshalIndent(game, "", "  ")
	if err != nil {
		return "", fmt.Errorf("could not marshal game record: %w", err)
	}

	path := filepath.Join(that.dir, recordFilename(game))
	if err = os.WriteFile(path, recordJSON, 0o644); err != nil {
		return "", fmt.Errorf("failed to write game record: %w", err)
	}

	return path, nil
}

func recordFilename(game *entity.Game) string {
	timestamp := game.StartedAt.Format("20060102_150405")

	blackModel := modelName(game.PlayerByMark(entity.PlayerBlack))
	whiteModel := modelName(game.PlayerByMark(entity.PlayerWhite))

	return fmt.Sprintf("gomoku_game_%s_%s_vs_%s.json", timestamp, sanitize(blackModel), sanitize(whiteModel))
}

func modelName(player *entity.Player) string {
	if player == nil || player.Model == "" {
		return "unknown"
	}
	return player.Model
}

// sanitize replaces path separators so model names are safe in filenames.
func sanitize(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_")
	return replacer.Replace(name)
}

package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/gomoku-backend/internal/config"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/llm"
	"github.com/rocketscienceinc/gomoku-backend/internal/player"
	"github.com/rocketscienceinc/gomoku-backend/internal/repository"
	"github.com/rocketscienceinc/gomoku-backend/internal/repository/storage"
	"github.com/rocketscienceinc/gomoku-backend/internal/repository/storage/sqlite"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

var (
	ErrAddrNotFound      = errors.New("redis address string is empty")
	ErrUnknownMoveSource = errors.New("unknown move source")
)

// RunApp - runs one LLM vs LLM match and persists its record.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage)
	recordRepo := repository.NewRecordRepository(conf.RecordsDir)

	var archiveRepo repository.ArchiveRepository
	if conf.SQLiteStoragePath != "" {
		sqliteStorage, sqliteErr := sqlite.New(conf.SQLiteStoragePath)
		if sqliteErr != nil {
			return fmt.Errorf("could not open sqlite storage: %w", sqliteErr)
		}

		defer func() {
			if err = sqliteStorage.Close(); err != nil {
				log.Error("could not close sqlite storage", "error", err)
			}
		}()

		if err = sqliteStorage.Init(ctx); err != nil {
			return fmt.Errorf("could not init sqlite storage: %w", err)
		}

		archiveRepo = repository.NewArchiveRepository(sqliteStorage)
	}

	blackSource, blackPlayer, err := buildMoveSource(logger, conf, conf.Black, entity.PlayerBlack)
	if err != nil {
		return fmt.Errorf("could not build black move source: %w", err)
	}

	whiteSource, whitePlayer, err := buildMoveSource(logger, conf, conf.White, entity.PlayerWhite)
	if err != nil {
		return fmt.Errorf("could not build white move source: %w", err)
	}

	log.Info("Starting match",
		"black", blackPlayer.DisplayName,
		"white", whitePlayer.DisplayName,
	)

	runner := usecase.NewMatchRunner(logger, gameRepo, recordRepo, archiveRepo, blackSource, whiteSource)
	game := usecase.NewMatch(blackPlayer, whitePlayer)

	if _, err = runner.Run(ctx, game); err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	return nil
}

// buildMoveSource wires one player's move source from its config section.
// API keys stay inside the source; the engine never sees them.
func buildMoveSource(logger *slog.Logger, conf *config.Config, playerConf config.Player, mark string) (gomoku.MoveSource, *entity.Player, error) {
	switch playerConf.Source {
	case "llm", "":
		provider, err := conf.PlayerProvider(playerConf)
		if err != nil {
			return nil, nil, err
		}

		displayName := provider.Name + "/" + playerConf.Model
		client := llm.NewClient(provider.BaseURL, provider.APIKey, conf.RequestTimeout)

		return llm.NewPlayer(logger, client, playerConf.Model, displayName), &entity.Player{
			Mark:        mark,
			Provider:    provider.Name,
			Model:       playerConf.Model,
			DisplayName: displayName,
		}, nil
	case "random":
		return player.NewRandom(), &entity.Player{Mark: mark, DisplayName: "random"}, nil
	case "human":
		return player.NewHuman(os.Stdin, os.Stdout), &entity.Player{Mark: mark, DisplayName: "human"}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownMoveSource, playerConf.Source)
	}
}

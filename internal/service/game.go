package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/serverside-ltd/portal-api/internal/core"
	"github.com/serverside-ltd/portal-api/internal/domain/model"
)

// GameServiceOptions groups dependencies for GameService.
type GameServiceOptions struct {
	Games      core.GameRepository
	Thumbnails core.ThumbnailResolver
	Logger     *slog.Logger
	Now        func() time.Time
}

// GameService orchestrates game metadata upserts with thumbnail enrichment.
type GameService struct {
	games      core.GameRepository
	thumbnails core.ThumbnailResolver
	logger     *slog.Logger
	now        func() time.Time
}

// NewGameService constructs a new GameService.
func NewGameService(opts GameServiceOptions) *GameService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &GameService{
		games:      opts.Games,
		thumbnails: opts.Thumbnails,
		logger:     logger,
		now:        now,
	}
}

// Save validates and upserts a game record. The client-supplied ImageURL is
// ignored; the icon is looked up by place id, and when the lookup fails the
// lookup URL itself is stored so the record is never left without an image
// reference.
func (s *GameService) Save(ctx context.Context, req *model.SaveGameRequest) (*model.Game, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lookupURL := s.thumbnails.GameIconURL(req.ID)
	imageURL, err := s.thumbnails.Resolve(ctx, lookupURL)
	if err != nil {
		s.logger.Warn("game icon lookup failed, storing lookup URL",
			"place_id", req.ID, "error", err)
		imageURL = lookupURL
	}

	now := s.now()
	game := &model.Game{
		ID:                 strconv.FormatInt(req.ID, 10),
		Name:               req.Name,
		CreatorName:        req.CreatorName,
		Playing:            req.Playing,
		Visits:             req.Visits,
		MaxPlayers:         req.MaxPlayers,
		Updated:            req.FixedUpdated(now),
		Created:            req.FixedCreated(now),
		FavoritedCount:     req.FavoritedCount,
		UniverseAvatarType: req.UniverseAvatarType,
		ImageURL:           imageURL,
		Description:        req.Description,
		JobID:              req.JobID,
	}

	saved, err := s.games.Upsert(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}
	return saved, nil
}

// List returns all game records, most recently updated first.
func (s *GameService) List(ctx context.Context) ([]*model.Game, error) {
	return s.games.List(ctx)
}

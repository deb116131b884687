package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/serverside-ltd/portal-api/internal/core"
	"github.com/serverside-ltd/portal-api/internal/data"
	"github.com/serverside-ltd/portal-api/internal/domain/model"
)

// ErrThumbnailUnavailable is returned when a player thumbnail lookup URL
// cannot be resolved to an image URL. Unlike the game path, the player path
// rejects the request instead of storing the lookup URL.
var ErrThumbnailUnavailable = errors.New("thumbnail could not be resolved")

// PlayerServiceOptions groups dependencies for PlayerService.
type PlayerServiceOptions struct {
	Players    core.PlayerRepository
	Thumbnails core.ThumbnailResolver
	Now        func() time.Time
}

// PlayerService orchestrates the player registry: registration with
// thumbnail resolution and duplicate rejection, selector-based deletion, and
// owner-scoped listing.
type PlayerService struct {
	players    core.PlayerRepository
	thumbnails core.ThumbnailResolver
	now        func() time.Time
}

// NewPlayerService constructs a new PlayerService.
func NewPlayerService(opts PlayerServiceOptions) *PlayerService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &PlayerService{
		players:    opts.Players,
		thumbnails: opts.Thumbnails,
		now:        now,
	}
}

// Create registers a player. The thumbnail arrives as a lookup URL and is
// resolved before persisting; a name or resolved-thumbnail collision returns
// data.ErrPlayerExists. Owner is stored lowercased.
func (s *PlayerService) Create(ctx context.Context, req *model.CreatePlayerRequest) (*model.Player, error) {
	if req == nil {
		return nil, errors.New("request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	thumbnail, err := s.thumbnails.Resolve(ctx, req.Thumbnail)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrThumbnailUnavailable, err)
	}

	exists, err := s.players.ExistsByNameOrThumbnail(ctx, req.Name, thumbnail)
	if err != nil {
		return nil, fmt.Errorf("check existing player: %w", err)
	}
	if exists {
		return nil, data.ErrPlayerExists
	}

	player, err := s.players.Create(ctx, &model.Player{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Thumbnail:   thumbnail,
		Timestamp:   req.ParsedTimestamp(s.now()),
		Owner:       strings.ToLower(req.Owner),
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

// Delete removes players matching the selector and returns how many were
// removed. Selectors match stored values verbatim: stored thumbnails are
// already-resolved image URLs, so the thumbnail selector is never run
// through the resolver here.
func (s *PlayerService) Delete(ctx context.Context, req *model.DeletePlayersRequest) (int64, error) {
	if req == nil {
		return 0, errors.New("request is required")
	}
	if err := req.Validate(); err != nil {
		return 0, err
	}

	return s.players.DeleteBySelector(ctx, strings.TrimSpace(req.Name), strings.TrimSpace(req.Thumbnail))
}

// ListByOwner returns the players registered to an owner, matched
// case-insensitively.
func (s *PlayerService) ListByOwner(ctx context.Context, owner string) ([]*model.Player, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, errors.New("owner is required")
	}
	return s.players.ListByOwner(ctx, owner)
}

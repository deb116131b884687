package core

import (
	"context"

	"github.com/serverside-ltd/portal-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// GameRepository defines the interface for game metadata operations.
type GameRepository interface {
	Upsert(ctx context.Context, game *model.Game) (*model.Game, error)
	List(ctx context.Context) ([]*model.Game, error)
}

// PlayerRepository defines the interface for player registry operations.
type PlayerRepository interface {
	Create(ctx context.Context, player *model.Player) (*model.Player, error)
	ExistsByNameOrThumbnail(ctx context.Context, name, thumbnail string) (bool, error)
	DeleteBySelector(ctx context.Context, name, thumbnail string) (int64, error)
	ListByOwner(ctx context.Context, owner string) ([]*model.Player, error)
}

// ThumbnailResolver resolves platform thumbnail lookup URLs to image URLs.
type ThumbnailResolver interface {
	// GameIconURL builds the lookup URL for a place's game icon.
	GameIconURL(placeID int64) string
	// Resolve fetches the lookup URL and extracts the final image URL.
	Resolve(ctx context.Context, lookupURL string) (string, error)
}

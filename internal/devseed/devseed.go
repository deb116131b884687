// Package devseed loads sample records into the database for local
// development. It is only invoked in dev mode and is idempotent: existing
// records are left alone.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/serverside-ltd/portal-api/internal/data"
	"github.com/serverside-ltd/portal-api/internal/domain/model"
)

// Seed writes a sample game, a user, and a couple of players so a fresh
// database has something to render against.
func Seed(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if err := seedGame(ctx, db, logger); err != nil {
		return err
	}
	if err := seedUser(ctx, db, logger); err != nil {
		return err
	}
	return seedPlayers(ctx, db, logger)
}

func seedGame(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	games := data.NewGameRepo(db)
	now := time.Now().UTC()

	_, err := games.Upsert(ctx, &model.Game{
		ID:                 "189707",
		Name:               "Natural Disaster Survival",
		CreatorName:        "Stickmasterluke",
		Playing:            3120,
		Visits:             2231405016,
		MaxPlayers:         30,
		Updated:            now,
		Created:            now.AddDate(-18, 0, 0),
		FavoritedCount:     5018321,
		UniverseAvatarType: model.UniverseAvatarPlayerChoice,
		ImageURL:           "https://thumbnails.roblox.com/v1/places/gameicons?placeIds=189707&size=512x512&format=Png&isCircular=false",
		Description:        "Survive the disasters!",
		JobID:              "dev-seed",
	})
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "seeded sample game", "id", "189707")
	return nil
}

func seedUser(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	users := data.NewUserRepo(db)

	user, err := users.Upsert(ctx, &model.UpsertUserRequest{
		DiscordID:       "80351110224678912",
		DiscordUsername: "dev-user",
		Email:           "dev@example.com",
		Avatar:          "https://cdn.discordapp.com/embed/avatars/2.png",
		DiscordRole:     "Moderator",
	})
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "seeded sample user", "user_id", user.ID)
	return nil
}

func seedPlayers(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	players := data.NewPlayerRepo(db)
	now := time.Now().UTC()

	seeds := []*model.Player{
		{
			Name:        "builderman",
			DisplayName: "Builderman",
			Thumbnail:   "https://tr.rbxcdn.com/builderman/150/150/AvatarHeadshot/Png",
			Timestamp:   now,
			Owner:       "dev-user",
		},
		{
			Name:        "stickmasterluke",
			DisplayName: "Stickmasterluke",
			Thumbnail:   "https://tr.rbxcdn.com/stickmasterluke/150/150/AvatarHeadshot/Png",
			Timestamp:   now.Add(-time.Hour),
			Owner:       "dev-user",
		},
	}

	for _, p := range seeds {
		if _, err := players.Create(ctx, p); err != nil {
			if errors.Is(err, data.ErrPlayerExists) {
				continue
			}
			return err
		}
		logger.InfoContext(ctx, "seeded sample player", "name", p.Name)
	}
	return nil
}

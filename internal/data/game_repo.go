package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/serverside-ltd/portal-api/internal/data/pgxutil"
	"github.com/serverside-ltd/portal-api/internal/domain/model"
)

// GameRepo provides database operations for game metadata records.
type GameRepo struct {
	DB *sql.DB
}

// NewGameRepo creates a new GameRepo.
func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

const gameColumns = `id, name, creator_name, playing, visits, max_players, updated, created, favorited_count, universe_avatar_type, image_url, description, job_id`

const gameUpsertQuery = `
	INSERT INTO games (` + gameColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		creator_name = EXCLUDED.creator_name,
		playing = EXCLUDED.playing,
		visits = EXCLUDED.visits,
		max_players = EXCLUDED.max_players,
		updated = EXCLUDED.updated,
		created = EXCLUDED.created,
		favorited_count = EXCLUDED.favorited_count,
		universe_avatar_type = EXCLUDED.universe_avatar_type,
		image_url = EXCLUDED.image_url,
		description = EXCLUDED.description,
		job_id = EXCLUDED.job_id
	RETURNING ` + gameColumns

// Upsert writes the full game record, replacing any previous one with the
// same place id.
func (r *GameRepo) Upsert(ctx context.Context, game *model.Game) (*model.Game, error) {
	if game == nil {
		return nil, errors.New("game is required")
	}

	var out model.Game
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, gameUpsertQuery,
			game.ID, game.Name, game.CreatorName, game.Playing, game.Visits,
			game.MaxPlayers, game.Updated, game.Created, game.FavoritedCount,
			game.UniverseAvatarType, game.ImageURL, game.Description, game.JobID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Game])
		return err
	}); err != nil {
		return nil, fmt.Errorf("upsert game: %w", err)
	}
	return &out, nil
}

// List retrieves all game records, most recently updated first.
func (r *GameRepo) List(ctx context.Context) ([]*model.Game, error) {
	var rowsOut []model.Game
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+gameColumns+` FROM games ORDER BY updated DESC`)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Game])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	res := make([]*model.Game, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/serverside-ltd/portal-api/internal/data/pgxutil"
	"github.com/serverside-ltd/portal-api/internal/domain/model"
)

// PlayerRepo provides database operations for the player registry.
type PlayerRepo struct {
	DB *sql.DB
}

// NewPlayerRepo creates a new PlayerRepo.
func NewPlayerRepo(db *sql.DB) *PlayerRepo {
	return &PlayerRepo{DB: db}
}

const playerColumns = `id, name, display_name, thumbnail, "timestamp", owner`

// Create inserts a new player. Duplicate names or thumbnails map to
// ErrPlayerExists via the unique constraints.
func (r *PlayerRepo) Create(ctx context.Context, player *model.Player) (*model.Player, error) {
	if player == nil {
		return nil, errors.New("player is required")
	}

	var out model.Player
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO players (name, display_name, thumbnail, "timestamp", owner)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+playerColumns,
			player.Name, player.DisplayName, player.Thumbnail, player.Timestamp, player.Owner)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Player])
		return err
	}); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrPlayerExists
		}
		return nil, fmt.Errorf("create player: %w", err)
	}
	return &out, nil
}

// ExistsByNameOrThumbnail reports whether any player matches the name or
// the thumbnail.
func (r *PlayerRepo) ExistsByNameOrThumbnail(ctx context.Context, name, thumbnail string) (bool, error) {
	var exists bool
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM players WHERE name = $1 OR thumbnail = $2)`,
			name, thumbnail,
		).Scan(&exists)
	}); err != nil {
		return false, fmt.Errorf("check player exists: %w", err)
	}
	return exists, nil
}

// DeleteBySelector removes players matching the given name and/or
// thumbnail and returns how many were removed. An empty selector matches
// nothing.
func (r *PlayerRepo) DeleteBySelector(ctx context.Context, name, thumbnail string) (int64, error) {
	conds := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if strings.TrimSpace(name) != "" {
		args = append(args, name)
		conds = append(conds, fmt.Sprintf("name = $%d", len(args)))
	}
	if strings.TrimSpace(thumbnail) != "" {
		args = append(args, thumbnail)
		conds = append(conds, fmt.Sprintf("thumbnail = $%d", len(args)))
	}
	if len(conds) == 0 {
		return 0, errors.New("name or thumbnail is required")
	}

	var count int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM players WHERE `+strings.Join(conds, " AND "), args...)
		if err != nil {
			return err
		}
		count = ct.RowsAffected()
		return nil
	}); err != nil {
		return 0, fmt.Errorf("delete players: %w", err)
	}
	return count, nil
}

// ListByOwner retrieves players for an owner, matched case-insensitively.
func (r *PlayerRepo) ListByOwner(ctx context.Context, owner string) ([]*model.Player, error) {
	var rowsOut []model.Player
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+playerColumns+` FROM players WHERE lower(owner) = lower($1) ORDER BY "timestamp" DESC`,
			owner)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Player])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list players by owner: %w", err)
	}

	res := make([]*model.Player, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

package data

// Package data provides PostgreSQL repositories for the portal's persisted
// entities.

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/serverside-ltd/portal-api/internal/data/pgxutil"
	"github.com/serverside-ltd/portal-api/internal/domain/model"
	"github.com/serverside-ltd/portal-api/internal/ports"
)

// UserRepo is the relational UserStore backend. The session subject id for
// this backend is the generated row uuid.
type UserRepo struct {
	DB *sql.DB
}

var _ ports.UserStore = (*UserRepo)(nil)

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `id, discord_id, discord_username, email, avatar, discord_role, roblox_username, created_at, updated_at`

const userUpsertQuery = `
	INSERT INTO users (discord_id, discord_username, email, avatar, discord_role)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (discord_id) DO UPDATE SET
		discord_username = EXCLUDED.discord_username,
		email = EXCLUDED.email,
		avatar = EXCLUDED.avatar,
		discord_role = EXCLUDED.discord_role,
		updated_at = now()
	RETURNING ` + userColumns

// Upsert creates or refreshes a user record in a single atomic write.
// roblox_username is deliberately absent from the update set so it survives
// re-login untouched.
func (r *UserRepo) Upsert(ctx context.Context, req *model.UpsertUserRequest) (*model.User, error) {
	if req == nil {
		return nil, errors.New("upsert user request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userUpsertQuery,
			req.DiscordID, req.DiscordUsername, req.Email, req.Avatar, req.DiscordRole)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a user by its row uuid.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getByQuery(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		"get user by id", id)
}

// GetByDiscordID retrieves a user by the external Discord id.
func (r *UserRepo) GetByDiscordID(ctx context.Context, discordID string) (*model.User, error) {
	return r.getByQuery(ctx,
		`SELECT `+userColumns+` FROM users WHERE discord_id = $1`,
		"get user by discord id", discordID)
}

// SetRobloxUsername updates only the roblox username of an existing record.
func (r *UserRepo) SetRobloxUsername(ctx context.Context, id, username string) (*model.User, error) {
	return r.getByQuery(ctx, `
		UPDATE users SET roblox_username = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		"update roblox username", id, username)
}

func (r *UserRepo) getByQuery(ctx context.Context, q, errMsg string, args ...any) (*model.User, error) {
	var user model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &user, nil
}

package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/serverside-ltd/portal-api/internal/domain/model"
	"github.com/serverside-ltd/portal-api/internal/ports"
	"github.com/serverside-ltd/portal-api/internal/testutil"
)

func upsertReq(discordID string) *model.UpsertUserRequest {
	return &model.UpsertUserRequest{
		DiscordID:       discordID,
		DiscordUsername: "nelly",
		Email:           "nelly@example.com",
		Avatar:          "https://cdn.example.com/avatars/1/abc.png?size=512",
		DiscordRole:     "Moderator",
	}
}

func TestUserRepo_Upsert_CreatesThenUpdates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewUserRepo(db)
	ctx := context.Background()

	first, err := repo.Upsert(ctx, upsertReq("80351110224678912"))
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	assert.Equal(t, "nelly", first.DiscordUsername)
	assert.Empty(t, first.RobloxUsername)

	// Set the roblox username out of band; a second login must not clobber it.
	_, err = repo.SetRobloxUsername(ctx, first.ID, "nelly_rbx")
	require.NoError(t, err)

	second := upsertReq("80351110224678912")
	second.DiscordUsername = "nelly2"
	second.DiscordRole = "Admin"

	updated, err := repo.Upsert(ctx, second)
	require.NoError(t, err)

	// Same record, refreshed fields, preserved roblox username.
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, "nelly2", updated.DiscordUsername)
	assert.Equal(t, "Admin", updated.DiscordRole)
	assert.Equal(t, "nelly_rbx", updated.RobloxUsername)

	// Exactly one stored record for the discord id.
	var count int
	require.NoError(t, db.QueryRow(
		`SELECT count(*) FROM users WHERE discord_id = $1`, "80351110224678912",
	).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUserRepo_Upsert_Validation(t *testing.T) {
	repo := NewUserRepo(nil)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, nil)
	assert.Error(t, err)

	_, err = repo.Upsert(ctx, &model.UpsertUserRequest{})
	assert.Error(t, err)
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewUserRepo(db)

	_, err := repo.GetByID(context.Background(), "3f6e0a1c-0000-0000-0000-000000000009")
	assert.ErrorIs(t, err, ports.ErrUserNotFound)
}

func TestUserRepo_GetByDiscordID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewUserRepo(db)
	ctx := context.Background()

	created, err := repo.Upsert(ctx, upsertReq("155149108183695360"))
	require.NoError(t, err)

	got, err := repo.GetByDiscordID(ctx, "155149108183695360")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = repo.GetByDiscordID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrUserNotFound)
}

func TestUserRepo_SetRobloxUsername_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewUserRepo(db)

	_, err := repo.SetRobloxUsername(context.Background(),
		"3f6e0a1c-0000-0000-0000-000000000009", "someone")
	assert.ErrorIs(t, err, ports.ErrUserNotFound)
}

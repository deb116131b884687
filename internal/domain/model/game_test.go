package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSaveGameRequest() SaveGameRequest {
	return SaveGameRequest{
		ID:                 920587237,
		Name:               "Adopt Me!",
		CreatorName:        "Uplift Games",
		UniverseAvatarType: UniverseAvatarPlayerChoice,
		Updated:            "2026-08-01T10:00:00Z",
		Created:            "2020-01-15T00:00:00Z",
	}
}

func TestSaveGameRequest_Validate(t *testing.T) {
	req := validSaveGameRequest()
	require.NoError(t, req.Validate())

	missing := req
	missing.Name = "  "
	assert.Error(t, missing.Validate())

	noID := req
	noID.ID = 0
	assert.Error(t, noID.Validate())

	badAvatar := req
	badAvatar.UniverseAvatarType = "MorphToR20"
	assert.Error(t, badAvatar.Validate())
}

func TestUniverseAvatarType_Valid(t *testing.T) {
	assert.True(t, UniverseAvatarMorphToR15.Valid())
	assert.True(t, UniverseAvatarMorphToR6.Valid())
	assert.True(t, UniverseAvatarPlayerChoice.Valid())
	assert.False(t, UniverseAvatarType("").Valid())
	assert.False(t, UniverseAvatarType("playerchoice").Valid())
}

func TestSaveGameRequest_DateFixup(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	req := validSaveGameRequest()
	assert.Equal(t, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC), req.FixedUpdated(now))

	req.Updated = "last tuesday"
	assert.Equal(t, now, req.FixedUpdated(now))

	req.Created = ""
	assert.Equal(t, now, req.FixedCreated(now))

	// A bare date still counts as valid.
	req.Created = "2024-02-29"
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), req.FixedCreated(now))
}

func TestCreatePlayerRequest_Validate(t *testing.T) {
	req := CreatePlayerRequest{
		Name:        "builderman",
		DisplayName: "Builderman",
		Thumbnail:   "https://thumbnails.example.com/v1/users/avatar?userIds=156",
		Timestamp:   "2026-08-30T09:30:00Z",
		Owner:       "Telamon",
	}
	require.NoError(t, req.Validate())

	for _, clear := range []func(*CreatePlayerRequest){
		func(r *CreatePlayerRequest) { r.Name = "" },
		func(r *CreatePlayerRequest) { r.DisplayName = "" },
		func(r *CreatePlayerRequest) { r.Thumbnail = "" },
		func(r *CreatePlayerRequest) { r.Timestamp = "" },
		func(r *CreatePlayerRequest) { r.Owner = "" },
	} {
		broken := req
		clear(&broken)
		assert.Error(t, broken.Validate())
	}
}

func TestDeletePlayersRequest_Validate(t *testing.T) {
	assert.Error(t, (&DeletePlayersRequest{}).Validate())
	assert.NoError(t, (&DeletePlayersRequest{Name: "builderman"}).Validate())
	assert.NoError(t, (&DeletePlayersRequest{Thumbnail: "https://img.example.com/1.png"}).Validate())
}

func TestUser_Profile(t *testing.T) {
	u := User{
		ID:              "3f6e0a1c-0000-0000-0000-000000000001",
		DiscordID:       "80351110224678912",
		DiscordUsername: "nelly",
		Email:           "nelly@example.com",
		Avatar:          "https://cdn.example.com/avatars/80351110224678912/8342729096ea3675442027381ff50dfe.png?size=512",
		DiscordRole:     "Moderator",
		RobloxUsername:  "nelly_rbx",
	}

	p := u.Profile()
	assert.Equal(t, u.DiscordID, p.DiscordID)
	assert.Equal(t, u.DiscordUsername, p.DiscordUsername)
	assert.Equal(t, u.Avatar, p.Avatar)
	assert.Equal(t, u.DiscordRole, p.DiscordRole)
	assert.Equal(t, u.RobloxUsername, p.RobloxUsername)
}

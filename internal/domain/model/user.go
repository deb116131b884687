//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// User is the persisted account record, keyed by the Discord id. It is
// created on first successful login and refreshed on every subsequent one;
// RobloxUsername is only ever set through the explicit update endpoint.
type User struct {
	ID              string    `json:"id"               db:"id"`
	DiscordID       string    `json:"discordId"        db:"discord_id"`
	DiscordUsername string    `json:"discordUsername"  db:"discord_username"`
	Email           string    `json:"email"            db:"email"`
	Avatar          string    `json:"avatar"           db:"avatar"`
	DiscordRole     string    `json:"discordRole"      db:"discord_role"`
	RobloxUsername  string    `json:"robloxUsername"   db:"roblox_username"`
	CreatedAt       time.Time `json:"createdAt"        db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt"        db:"updated_at"`
}

// UserProfile is the subset of User exposed by the profile read endpoint.
type UserProfile struct {
	DiscordID       string `json:"discordId"`
	DiscordUsername string `json:"discordUsername"`
	Avatar          string `json:"avatar"`
	DiscordRole     string `json:"discordRole"`
	RobloxUsername  string `json:"robloxUsername"`
}

// Profile projects the public subset of a user record.
func (u *User) Profile() UserProfile {
	return UserProfile{
		DiscordID:       u.DiscordID,
		DiscordUsername: u.DiscordUsername,
		Avatar:          u.Avatar,
		DiscordRole:     u.DiscordRole,
		RobloxUsername:  u.RobloxUsername,
	}
}

// UpsertUserRequest carries the profile fields refreshed on every login.
type UpsertUserRequest struct {
	DiscordID       string
	DiscordUsername string
	Email           string
	Avatar          string
	DiscordRole     string
}

// Validate checks that the upsert request carries the required identity key.
func (r *UpsertUserRequest) Validate() error {
	if strings.TrimSpace(r.DiscordID) == "" {
		return errors.New("discord id is required")
	}
	return nil
}

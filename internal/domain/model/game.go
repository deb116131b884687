//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// UniverseAvatarType controls which avatar rig a game forces on players.
type UniverseAvatarType string

const (
	UniverseAvatarMorphToR15   UniverseAvatarType = "MorphToR15"
	UniverseAvatarMorphToR6    UniverseAvatarType = "MorphToR6"
	UniverseAvatarPlayerChoice UniverseAvatarType = "PlayerChoice"
)

// Valid reports whether the avatar type is one of the supported values.
func (t UniverseAvatarType) Valid() bool {
	switch t {
	case UniverseAvatarMorphToR15, UniverseAvatarMorphToR6, UniverseAvatarPlayerChoice:
		return true
	default:
		return false
	}
}

// Game is a hosted game's metadata record, keyed by the platform place id.
type Game struct {
	ID                 string             `json:"id"                 db:"id"`
	Name               string             `json:"name"               db:"name"`
	CreatorName        string             `json:"creatorName"        db:"creator_name"`
	Playing            int64              `json:"playing"            db:"playing"`
	Visits             int64              `json:"visits"             db:"visits"`
	MaxPlayers         int                `json:"maxPlayers"         db:"max_players"`
	Updated            time.Time          `json:"updated"            db:"updated"`
	Created            time.Time          `json:"created"            db:"created"`
	FavoritedCount     int64              `json:"favoritedCount"     db:"favorited_count"`
	UniverseAvatarType UniverseAvatarType `json:"universeAvatarType" db:"universe_avatar_type"`
	ImageURL           string             `json:"imageUrl"           db:"image_url"`
	Description        string             `json:"description"        db:"description"`
	JobID              string             `json:"jobId"              db:"job_id"`
}

// SaveGameRequest is the inbound payload for the game upsert endpoint.
// Timestamps arrive as strings because clients send a mix of RFC 3339 and
// garbage; FixedUpdated/FixedCreated substitute now for anything that does
// not start with a date.
type SaveGameRequest struct {
	ID                 int64              `json:"id"`
	Name               string             `json:"name"`
	CreatorName        string             `json:"creatorName"`
	Playing            int64              `json:"playing"`
	Visits             int64              `json:"visits"`
	MaxPlayers         int                `json:"maxPlayers"`
	Updated            string             `json:"updated"`
	Created            string             `json:"created"`
	FavoritedCount     int64              `json:"favoritedCount"`
	UniverseAvatarType UniverseAvatarType `json:"universeAvatarType"`
	ImageURL           string             `json:"imageUrl"`
	Description        string             `json:"description"`
	JobID              string             `json:"jobId"`
}

// datePrefixRe accepts timestamps that at least start with a YYYY-MM-DD date.
var datePrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// Validate checks required fields and the avatar type allow-list.
func (r *SaveGameRequest) Validate() error {
	if r.ID == 0 || strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.CreatorName) == "" {
		return errors.New("id, name and creatorName are required")
	}
	if !r.UniverseAvatarType.Valid() {
		return errors.New("invalid universe avatar type")
	}
	return nil
}

// FixedUpdated returns the updated timestamp, substituting now when the
// client value does not carry a leading date.
func (r *SaveGameRequest) FixedUpdated(now time.Time) time.Time {
	return fixDate(r.Updated, now)
}

// FixedCreated returns the created timestamp, substituting now when the
// client value does not carry a leading date.
func (r *SaveGameRequest) FixedCreated(now time.Time) time.Time {
	return fixDate(r.Created, now)
}

func fixDate(v string, now time.Time) time.Time {
	if !datePrefixRe.MatchString(v) {
		return now.UTC()
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t
	}
	// Leading date without a full RFC 3339 stamp still counts.
	if t, err := time.Parse("2006-01-02", v[:10]); err == nil {
		return t
	}
	return now.UTC()
}

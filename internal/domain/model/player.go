//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// Player is an entry in the player registry. Name and Thumbnail are both
// unique across the registry; Owner scoping is case-insensitive.
type Player struct {
	ID          string    `json:"id"          db:"id"`
	Name        string    `json:"name"        db:"name"`
	DisplayName string    `json:"displayName" db:"display_name"`
	Thumbnail   string    `json:"thumbnail"   db:"thumbnail"`
	Timestamp   time.Time `json:"timestamp"   db:"timestamp"`
	Owner       string    `json:"owner"       db:"owner"`
}

// CreatePlayerRequest is the inbound payload for registering a player.
// Thumbnail arrives as a lookup URL; the service resolves it to the final
// image URL before persisting.
type CreatePlayerRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Thumbnail   string `json:"thumbnail"`
	Timestamp   string `json:"timestamp"`
	Owner       string `json:"owner"`
}

// Validate checks that every field is present.
func (r *CreatePlayerRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" ||
		strings.TrimSpace(r.DisplayName) == "" ||
		strings.TrimSpace(r.Thumbnail) == "" ||
		strings.TrimSpace(r.Timestamp) == "" ||
		strings.TrimSpace(r.Owner) == "" {
		return errors.New("name, displayName, thumbnail, timestamp and owner are required")
	}
	return nil
}

// ParsedTimestamp parses the client timestamp, substituting now when it is
// not a valid RFC 3339 stamp.
func (r *CreatePlayerRequest) ParsedTimestamp(now time.Time) time.Time {
	if t, err := time.Parse(time.RFC3339, r.Timestamp); err == nil {
		return t
	}
	return now.UTC()
}

// DeletePlayersRequest selects players by name and/or resolved thumbnail.
type DeletePlayersRequest struct {
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail"`
}

// Validate requires at least one selector.
func (r *DeletePlayersRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" && strings.TrimSpace(r.Thumbnail) == "" {
		return errors.New("name or thumbnail is required")
	}
	return nil
}

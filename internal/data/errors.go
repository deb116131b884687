package data

import "errors"

// ErrPlayerExists is returned when a player with the same name or
// thumbnail already exists.
var ErrPlayerExists = errors.New("player already exists")

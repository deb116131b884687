package redisstore

// Package redisstore provides a document-style UserStore backend over
// Redis. Records are JSON documents keyed by the Discord id; with this
// backend the session subject id IS the Discord id.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serverside-ltd/portal-api/internal/domain/model"
	"github.com/serverside-ltd/portal-api/internal/ports"
)

// UserStore is a Redis-backed document store for user records.
type UserStore struct {
	client redis.UniversalClient
	prefix string
}

var _ ports.UserStore = (*UserStore)(nil)

// NewUserStore creates a Redis-backed user store.
func NewUserStore(client redis.UniversalClient) *UserStore {
	return &UserStore{client: client, prefix: "user:"}
}

// NewUserStoreWithPrefix creates a Redis user store with a custom key prefix.
func NewUserStoreWithPrefix(client redis.UniversalClient, prefix string) *UserStore {
	return &UserStore{client: client, prefix: prefix}
}

// Upsert creates the record on first login or refreshes the login-derived
// fields in place. RobloxUsername and CreatedAt survive re-login untouched.
func (s *UserStore) Upsert(ctx context.Context, req *model.UpsertUserRequest) (*model.User, error) {
	if req == nil {
		return nil, errors.New("upsert user request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user, err := s.getByKey(ctx, s.prefix+req.DiscordID)
	switch {
	case errors.Is(err, ports.ErrUserNotFound):
		user = &model.User{
			ID:        req.DiscordID,
			DiscordID: req.DiscordID,
			CreatedAt: now,
		}
	case err != nil:
		return nil, err
	}

	user.DiscordUsername = req.DiscordUsername
	user.Email = req.Email
	user.Avatar = req.Avatar
	user.DiscordRole = req.DiscordRole
	user.UpdatedAt = now

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID fetches a record; for this backend the id is the Discord id.
func (s *UserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, ports.ErrUserNotFound
	}
	return s.getByKey(ctx, s.prefix+id)
}

// SetRobloxUsername updates only the roblox username of an existing record.
func (s *UserStore) SetRobloxUsername(ctx context.Context, id, username string) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.RobloxUsername = username
	user.UpdatedAt = time.Now().UTC()
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserStore) getByKey(ctx context.Context, key string) (*model.User, error) {
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrUserNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var user model.User
	if unmarshalErr := json.Unmarshal([]byte(data), &user); unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal user: %w", unmarshalErr)
	}
	return &user, nil
}

func (s *UserStore) save(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	// User records are permanent; no TTL.
	if err := s.client.Set(ctx, s.prefix+user.DiscordID, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

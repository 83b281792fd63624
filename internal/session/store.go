package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/apexlabs/apex-protocol/internal/models"
)

const (
	snapshotKeyPrefix   = "apex:session:"
	credentialKeyPrefix = "apex:key:"
)

// Store persists session snapshots to Redis. Snapshots carry the idea list
// and a write timestamp; the credential lives under its own key so the
// snapshot blob never contains the secret.
type Store struct {
	rdb *redis.Client
}

func NewStore(addr, password string, db int) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return &Store{rdb: rdb}
}

// NewStoreFromClient wraps an existing client. Tests hand in miniredis.
func NewStoreFromClient(client *redis.Client) *Store {
	return &Store{rdb: client}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.rdb != nil {
		return s.rdb.Close()
	}
	return nil
}

// SaveSnapshot writes the session snapshot. Snapshots do not expire; the
// session key is stable for the lifetime of the client.
func (s *Store) SaveSnapshot(ctx context.Context, sessionID string, snap models.SessionSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := s.rdb.Set(ctx, snapshotKeyPrefix+sessionID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a session snapshot. Missing or corrupt data is not an
// error: it returns ok=false and the caller degrades to fallback loading.
func (s *Store) LoadSnapshot(ctx context.Context, sessionID string) (models.SessionSnapshot, bool, error) {
	var snap models.SessionSnapshot

	data, err := s.rdb.Get(ctx, snapshotKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return snap, false, nil
		}
		return snap, false, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		// Corrupt snapshot: treat as absent.
		return models.SessionSnapshot{}, false, nil
	}
	if snap.Ideas == nil {
		snap.Ideas = []models.Idea{}
	}
	return snap, true, nil
}

// SaveCredential stores the raw credential string under the session's key.
func (s *Store) SaveCredential(ctx context.Context, sessionID, key string) error {
	if err := s.rdb.Set(ctx, credentialKeyPrefix+sessionID, key, 0).Err(); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

// LoadCredential returns the stored credential, or "" when none is set.
func (s *Store) LoadCredential(ctx context.Context, sessionID string) (string, error) {
	key, err := s.rdb.Get(ctx, credentialKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load credential: %w", err)
	}
	return key, nil
}

// Delete removes both the snapshot and the credential for a session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, snapshotKeyPrefix+sessionID, credentialKeyPrefix+sessionID).Err()
}

package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexlabs/apex-protocol/internal/models"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStoreFromClient(client)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestStore_SnapshotRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	snap := models.SessionSnapshot{
		Ideas: []models.Idea{
			{ID: 7, Name: "Orbit", Tagline: "Space logistics", Valuation: "$550M", Blueprint: []string{"Phase 1"}},
		},
		Timestamp: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.SaveSnapshot(ctx, "default", snap))

	got, ok, err := store.LoadSnapshot(ctx, "default")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Ideas, 1)
	assert.Equal(t, 7, got.Ideas[0].ID)
	assert.Equal(t, "Orbit", got.Ideas[0].Name)
	assert.Equal(t, []string{"Phase 1"}, got.Ideas[0].Blueprint)
}

func TestStore_LoadSnapshotMissing(t *testing.T) {
	store, _ := newTestStore(t)

	snap, ok, err := store.LoadSnapshot(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, snap.Ideas)
}

func TestStore_LoadSnapshotCorrupt(t *testing.T) {
	store, mr := newTestStore(t)
	require.NoError(t, mr.Set("apex:session:default", "{not valid json"))

	snap, ok, err := store.LoadSnapshot(context.Background(), "default")
	require.NoError(t, err, "corrupt data degrades to absent, never errors")
	assert.False(t, ok)
	assert.Empty(t, snap.Ideas)
}

func TestStore_CredentialRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	key, err := store.LoadCredential(ctx, "default")
	require.NoError(t, err)
	assert.Empty(t, key)

	require.NoError(t, store.SaveCredential(ctx, "default", "secret-key"))

	key, err = store.LoadCredential(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "secret-key", key)
}

func TestStore_CredentialOutsideSnapshotBlob(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, "default", models.SessionSnapshot{Ideas: []models.Idea{{ID: 1}}}))
	require.NoError(t, store.SaveCredential(ctx, "default", "secret-key"))

	blob, err := mr.Get("apex:session:default")
	require.NoError(t, err)
	assert.NotContains(t, blob, "secret-key")
}

func TestStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, "default", models.SessionSnapshot{Ideas: []models.Idea{{ID: 1}}}))
	require.NoError(t, store.SaveCredential(ctx, "default", "secret-key"))
	require.NoError(t, store.Delete(ctx, "default"))

	_, ok, err := store.LoadSnapshot(ctx, "default")
	require.NoError(t, err)
	assert.False(t, ok)

	key, err := store.LoadCredential(ctx, "default")
	require.NoError(t, err)
	assert.Empty(t, key)
}

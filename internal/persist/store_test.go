package persist_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozcanmengullu/weather-dashboard/internal/persist"
	"github.com/ozcanmengullu/weather-dashboard/internal/session"
	"github.com/ozcanmengullu/weather-dashboard/internal/weather"
)

func newTestStore(t *testing.T) (*persist.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return persist.NewStore(client, "default"), mr
}

func sampleState() session.PersistedState {
	return session.PersistedState{
		History: []session.SearchHistoryItem{
			{ID: "Paris-FR-1700000000000", CityName: "Paris", Country: "FR", Timestamp: 1700000000000},
			{ID: "London-GB-1699999000000", CityName: "London", Country: "GB", Timestamp: 1699999000000},
		},
		Unit: weather.Imperial,
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleState()))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, weather.Imperial, got.Unit)
	require.Len(t, got.History, 2)
	assert.Equal(t, "Paris", got.History[0].CityName)
	assert.Equal(t, int64(1700000000000), got.History[0].Timestamp)
}

func TestStore_LoadMissingKeyIsZeroValue(t *testing.T) {
	s, _ := newTestStore(t)

	got, err := s.Load(context.Background())
	require.NoError(t, err, "a fresh session must not error")
	assert.Empty(t, got.History)
	assert.Empty(t, got.Unit)
}

func TestStore_SaveOverwritesWholeBlob(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleState()))
	require.NoError(t, s.Save(ctx, session.PersistedState{Unit: weather.Metric}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, weather.Metric, got.Unit)
	assert.Empty(t, got.History, "writes are full overwrites, never merges")
}

func TestStore_NoExpiry(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleState()))

	// Session state is durable: a long time passing must not evict it.
	mr.FastForward(365 * 24 * time.Hour)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, weather.Imperial, got.Unit)
}

func TestStore_SessionIDsAreIsolated(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	a := persist.NewStore(client, "alice")
	b := persist.NewStore(client, "bob")
	ctx := context.Background()

	require.NoError(t, a.Save(ctx, sampleState()))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.History)
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := persist.Connect(context.Background(), "not-a-url")
	require.Error(t, err)
}

func TestConnect_UnreachableServer(t *testing.T) {
	_, err := persist.Connect(context.Background(), "redis://localhost:19999")
	require.Error(t, err)
}

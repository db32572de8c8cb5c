package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"meetup-point-service/internal/adapters/repositories"
	"meetup-point-service/internal/domain"
	"meetup-point-service/internal/platform/db"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqliteGeocodeCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	conn, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, repositories.InitSchema(ctx, conn, db.DriverSQLite))

	c := NewSqliteGeocodeCache(conn)

	require.NoError(t, c.PutMany(ctx, map[string]domain.LatLng{
		"Times Square": {Lat: 40.758, Lng: -73.9855},
		"Fenway Park":  {Lat: 42.3467, Lng: -71.0972},
	}))

	got, err := c.GetMany(ctx, []string{"Times Square", " Times Square ", "Unknown", ""})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, domain.LatLng{Lat: 40.758, Lng: -73.9855}, got["Times Square"])

	require.NoError(t, c.PutMany(ctx, map[string]domain.LatLng{"Times Square": {Lat: 1, Lng: 2}}))
	got, err = c.GetMany(ctx, []string{"Times Square"})
	require.NoError(t, err)
	assert.Equal(t, domain.LatLng{Lat: 1, Lng: 2}, got["Times Square"])
}

func TestSqliteGeocodeCacheRejectsEmptyKey(t *testing.T) {
	ctx := context.Background()
	conn, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, repositories.InitSchema(ctx, conn, db.DriverSQLite))

	err = NewSqliteGeocodeCache(conn).PutMany(ctx, map[string]domain.LatLng{" ": {}})
	require.Error(t, err)
}

func TestRedisDurationCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(ctx, "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	c := NewRedisDurationCache(client, time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	want := [2]domain.TravelDuration{{Text: "10 mins", Seconds: 600}, {Text: "12 mins", Seconds: 720}}
	require.NoError(t, c.Put(ctx, "k", want))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisDurationCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set(durationKeyPrefix+"bad", "not json"))

	client, err := NewRedisClient(ctx, "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	_, ok, err := NewRedisDurationCache(client, time.Minute).Get(ctx, "bad")
	require.Error(t, err)
	assert.False(t, ok)
}

func TestDetailsCacheEvictsAndExpires(t *testing.T) {
	c := NewDetailsCache(2, 50*time.Millisecond)

	c.Put("a", &domain.Details{Website: "https://a.example"})
	c.Put("b", &domain.Details{})
	c.Put("c", &domain.Details{})
	c.Put("nil", nil)

	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry evicted")
	assert.Equal(t, 2, c.Len())

	require.Eventually(t, func() bool {
		_, ok := c.Get("c")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

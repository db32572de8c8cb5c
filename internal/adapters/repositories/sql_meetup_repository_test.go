package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"meetup-point-service/internal/domain"
	"meetup-point-service/internal/platform/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn, db.DriverSQLite))
	return conn
}

func sampleMeetup(id string, created time.Time) *domain.Meetup {
	return &domain.Meetup{
		ID:        id,
		SessionID: "s1",
		Request: domain.MeetupRequest{
			Origins: [2]string{"A", "B"},
			Keyword: "coffee",
			Radius:  domain.RadiusSmall,
			Travel:  domain.TravelOptions{Mode: domain.TravelModeDriving},
		},
		Midpoint:     domain.LatLng{Lat: 1, Lng: 2},
		RadiusMeters: 1000,
		Candidates: []domain.Candidate{
			{PlaceID: "p1", Name: "Beans", Durations: [2]domain.TravelDuration{{Text: "5 mins", Seconds: 300}, {Text: "6 mins", Seconds: 360}}},
		},
		Winner:    0,
		CreatedAt: created,
	}
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	conn := openTestDB(t)
	require.NoError(t, InitSchema(context.Background(), conn, db.DriverSQLite))
}

func TestInitSchemaRejectsUnknownDriver(t *testing.T) {
	conn := openTestDB(t)
	require.Error(t, InitSchema(context.Background(), conn, "mysql"))
}

func TestMeetupRepositoryRoundTrip(t *testing.T) {
	conn := openTestDB(t)
	repo := NewSQLMeetupRepository(conn, db.DriverSQLite)
	ctx := context.Background()

	m := sampleMeetup("m1", time.Unix(100, 0).UTC())
	require.NoError(t, repo.Save(ctx, m))

	got, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "coffee", got.Request.Keyword)
	assert.Equal(t, 0, got.Winner)
	require.Len(t, got.Candidates, 1)
	assert.Equal(t, 360, got.Candidates[0].Durations[1].Seconds)
	assert.True(t, got.CreatedAt.Equal(m.CreatedAt))
}

func TestMeetupRepositoryGetMissing(t *testing.T) {
	repo := NewSQLMeetupRepository(openTestDB(t), db.DriverSQLite)

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMeetupRepositoryListMostRecentFirst(t *testing.T) {
	repo := NewSQLMeetupRepository(openTestDB(t), db.DriverSQLite)
	ctx := context.Background()

	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, repo.Save(ctx, sampleMeetup(id, time.Unix(int64(i*10), 0))))
	}

	got, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID)
	assert.Equal(t, "mid", got[1].ID)
}

func TestSeedGeocodesFromJSON(t *testing.T) {
	conn := openTestDB(t)
	path := filepath.Join(t.TempDir(), "geocodes.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"address": "  Times   Square ", "lat": 40.758, "lng": -73.9855},
		{"address": "Fenway Park", "lat": 42.3467, "lng": -71.0972}
	]`), 0o600))

	n, err := SeedGeocodesFromJSON(context.Background(), conn, db.DriverSQLite, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var lat float64
	require.NoError(t, conn.QueryRow(`SELECT lat FROM geocode_cache WHERE address = ?`, "Times Square").Scan(&lat))
	assert.InDelta(t, 40.758, lat, 1e-9)
}

func TestSeedGeocodesRejectsEmptyAddress(t *testing.T) {
	conn := openTestDB(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"address": "  ", "lat": 1, "lng": 1}]`), 0o600))

	_, err := SeedGeocodesFromJSON(context.Background(), conn, db.DriverSQLite, path)
	require.Error(t, err)
}

func TestRebind(t *testing.T) {
	assert.Equal(t, "a = $1 AND b = $2", rebind(db.DriverPostgres, "a = ? AND b = ?"))
	assert.Equal(t, "a = ?", rebind(db.DriverSQLite, "a = ?"))
}

package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Connect("sqlite://" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.CreateTables())
	return db
}

func TestDriverFor(t *testing.T) {
	tests := []struct {
		url    string
		driver string
		dsn    string
		ok     bool
	}{
		{"postgres://u:p@localhost/notris", "postgres", "postgres://u:p@localhost/notris", true},
		{"postgresql://localhost/notris", "postgres", "postgresql://localhost/notris", true},
		{"sqlite://notris.db", "sqlite3", "notris.db", true},
		{"file:notris.db?cache=shared", "sqlite3", "file:notris.db?cache=shared", true},
		{"sqlite://", "", "", false},
		{"mysql://localhost/notris", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			driver, dsn, err := driverFor(tt.url)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.driver, driver)
			assert.Equal(t, tt.dsn, dsn)
		})
	}
}

func TestConnectRequiresURL(t *testing.T) {
	_, err := Connect("")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	pg := &DB{dbType: "postgres"}
	lite := &DB{dbType: "sqlite3"}
	query := "SELECT * FROM t WHERE a = ? AND b = ? LIMIT ?"

	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2 LIMIT $3", pg.rebind(query))
	assert.Equal(t, query, lite.rebind(query))
}

func TestCreateTablesIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, db.CreateTables())
}

func TestCreateAndGetUser(t *testing.T) {
	db := newTestDB(t)

	user, err := db.CreateUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	got, hash, err := db.GetUserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "hash", hash)
	assert.False(t, got.CreatedAt.IsZero())

	_, _, err = db.GetUserByUsername("nobody")
	assert.Error(t, err)
}

func TestCreateUserDuplicate(t *testing.T) {
	db := newTestDB(t)

	_, err := db.CreateUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)

	_, err = db.CreateUser("alice", "other@example.com", "hash")
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsUniqueViolation(nil))
}

func TestUpdateLastLogin(t *testing.T) {
	db := newTestDB(t)
	user, err := db.CreateUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)

	require.NoError(t, db.UpdateLastLogin(user.ID))

	got, _, err := db.GetUserByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	assert.WithinDuration(t, time.Now(), *got.LastLogin, time.Minute)
}

func TestLeaderboard(t *testing.T) {
	db := newTestDB(t)
	alice, err := db.CreateUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)
	bob, err := db.CreateUser("bob", "bob@example.com", "hash")
	require.NoError(t, err)

	require.NoError(t, db.SaveGameScore(alice.ID, "tetris", 100, nil))
	require.NoError(t, db.SaveGameScore(alice.ID, "tetris", 300, map[string]interface{}{"lines": 3}))
	require.NoError(t, db.SaveGameScore(bob.ID, "tetris", 200, nil))
	require.NoError(t, db.SaveGameScore(bob.ID, "other", 9999, nil))

	entries, err := db.GetLeaderboard("tetris", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, 300, entries[0].BestScore)
	assert.InDelta(t, 200.0, entries[0].AvgScore, 0.001)
	assert.Equal(t, 2, entries[0].GamesPlayed)
	assert.Equal(t, "tetris", entries[0].GameType)
	assert.WithinDuration(t, time.Now(), entries[0].LastPlayed, time.Minute)

	assert.Equal(t, "bob", entries[1].Username)
	assert.Equal(t, 200, entries[1].BestScore)

	limited, err := db.GetLeaderboard("tetris", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	empty, err := db.GetLeaderboard("nothing", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUserStats(t *testing.T) {
	db := newTestDB(t)
	alice, err := db.CreateUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)

	stats, err := db.GetUserStats(alice.ID, "tetris")
	require.NoError(t, err)
	assert.Equal(t, "alice", stats.Username)
	assert.Equal(t, 0, stats.GamesPlayed)
	assert.True(t, stats.LastPlayed.IsZero())

	require.NoError(t, db.SaveGameScore(alice.ID, "tetris", 40, nil))
	require.NoError(t, db.SaveGameScore(alice.ID, "tetris", 120, nil))

	stats, err = db.GetUserStats(alice.ID, "tetris")
	require.NoError(t, err)
	assert.Equal(t, 120, stats.BestScore)
	assert.InDelta(t, 80.0, stats.AvgScore, 0.001)
	assert.Equal(t, 2, stats.GamesPlayed)
	assert.False(t, stats.LastPlayed.IsZero())

	_, err = db.GetUserStats(9999, "tetris")
	assert.Error(t, err)
}

func TestRecentGames(t *testing.T) {
	db := newTestDB(t)
	alice, err := db.CreateUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)

	require.NoError(t, db.SaveGameScore(alice.ID, "tetris", 10, map[string]interface{}{"lines": 1, "level": 0}))
	require.NoError(t, db.SaveGameScore(alice.ID, "tetris", 20, nil))

	games, err := db.GetRecentGames("tetris", 10)
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, 20, games[0].Score)
	assert.Nil(t, games[0].Metadata)
	assert.Equal(t, 10, games[1].Score)
	assert.Equal(t, "alice", games[1].Username)
	assert.EqualValues(t, 1, games[1].Metadata["lines"])
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	assert.Equal(t, want, parseTimestamp(want))
	assert.True(t, want.Equal(parseTimestamp("2024-05-01 12:30:00")))
	assert.True(t, want.Equal(parseTimestamp("2024-05-01T12:30:00Z")))
	assert.True(t, want.Equal(parseTimestamp([]byte("2024-05-01 12:30:00+00:00"))))
	assert.True(t, parseTimestamp("garbage").IsZero())
	assert.True(t, parseTimestamp(nil).IsZero())
}

func TestSeedSampleData(t *testing.T) {
	db := newTestDB(t)

	seeded, err := db.SeedSampleData("tetris")
	require.NoError(t, err)
	assert.True(t, seeded)

	entries, err := db.GetLeaderboard("tetris", 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "gamemaster", entries[0].Username)
	assert.Equal(t, 27000, entries[0].BestScore)

	seeded, err = db.SeedSampleData("tetris")
	require.NoError(t, err)
	assert.False(t, seeded)
}

func TestServerVersion(t *testing.T) {
	db := newTestDB(t)
	version, err := db.ServerVersion()
	require.NoError(t, err)
	assert.Regexp(t, `^3\.\d+`, version)
	assert.Equal(t, "sqlite3", db.Type())
}

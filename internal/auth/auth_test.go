package auth

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/isaacjstriker/notris/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Connect("sqlite://" + filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.CreateTables())
	return db
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword("secret123", hash))
	assert.False(t, CheckPassword("secret124", hash))
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		username string
		valid    bool
	}{
		{"bob", true},
		{"player_1", true},
		{"ab", false},
		{strings.Repeat("a", 51), false},
		{"bad name", false},
		{"bad-name", false},
	}
	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("a.b@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("a@b"))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"ok", "secret123", true},
		{"too short", "abc1", false},
		{"too long", strings.Repeat("a1", 65), false},
		{"no digit", "abcdefgh", false},
		{"no letter", "12345678", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	db := newTestDB(t)

	user, err := Register(db, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	got, err := Authenticate(db, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = Authenticate(db, "alice", "wrong1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Authenticate(db, "nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejects(t *testing.T) {
	db := newTestDB(t)

	_, err := Register(db, "al", "alice@example.com", "secret123")
	assert.Error(t, err)
	_, err = Register(db, "alice", "nope", "secret123")
	assert.Error(t, err)
	_, err = Register(db, "alice", "alice@example.com", "short")
	assert.Error(t, err)

	_, err = Register(db, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	_, err = Register(db, "alice", "alice2@example.com", "secret123")
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
}

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")

	sm := NewSessionManagerAt(path)
	assert.False(t, sm.IsLoggedIn())
	assert.Equal(t, "Not logged in", sm.GetUserInfo())

	require.NoError(t, sm.SaveSession(7, "alice", "alice@example.com"))
	assert.True(t, sm.IsLoggedIn())

	reloaded := NewSessionManagerAt(path)
	require.True(t, reloaded.IsLoggedIn())
	assert.Equal(t, &Session{UserID: 7, Username: "alice", Email: "alice@example.com"}, reloaded.GetCurrentSession())
	assert.Contains(t, reloaded.GetUserInfo(), "alice")

	require.NoError(t, reloaded.ClearSession())
	assert.False(t, reloaded.IsLoggedIn())
	assert.False(t, NewSessionManagerAt(path).IsLoggedIn())

	assert.NoError(t, reloaded.ClearSession())
}

func TestCLIAuthUsesGivenSession(t *testing.T) {
	sm := NewSessionManagerAt(filepath.Join(t.TempDir(), "session"))
	cli := NewCLIAuth(newTestDB(t), sm)
	assert.Same(t, sm, cli.GetSession())
}

func TestFormatStats(t *testing.T) {
	empty := FormatStats(&database.LeaderboardEntry{Username: "alice", GameType: "tetris"})
	assert.Contains(t, empty, "has not played tetris")

	played := FormatStats(&database.LeaderboardEntry{
		Username:    "alice",
		GameType:    "tetris",
		BestScore:   1200,
		AvgScore:    640,
		GamesPlayed: 2,
		LastPlayed:  time.Now(),
	})
	assert.Contains(t, played, "Best score:   1200")
	assert.Contains(t, played, "Games played: 2")
}

package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/mattn/go-sqlite3"
)

type DB struct {
	conn   *sql.DB
	dbType string // "postgres" or "sqlite3"
}

type User struct {
	ID        int        `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
}

// GameScore is one finished game as stored in game_scores.
type GameScore struct {
	ID       int                    `json:"id"`
	Username string                 `json:"username"`
	GameType string                 `json:"game_type"`
	Score    int                    `json:"score"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	PlayedAt time.Time              `json:"played_at"`
}

// LeaderboardEntry represents a single entry in the leaderboard
type LeaderboardEntry struct {
	Username    string    `json:"username"`
	GameType    string    `json:"game_type"`
	BestScore   int       `json:"best_score"`
	AvgScore    float64   `json:"avg_score"`
	GamesPlayed int       `json:"games_played"`
	LastPlayed  time.Time `json:"last_played"`
}

// driverFor maps a database URL to a driver name and the DSN that driver expects.
func driverFor(dbURL string) (driverName, dsn string, err error) {
	switch {
	case strings.HasPrefix(dbURL, "postgres://"), strings.HasPrefix(dbURL, "postgresql://"):
		return "postgres", dbURL, nil
	case strings.HasPrefix(dbURL, "sqlite://"):
		path := strings.TrimPrefix(dbURL, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("sqlite URL is missing a file path")
		}
		return "sqlite3", path, nil
	case strings.HasPrefix(dbURL, "file:"):
		return "sqlite3", dbURL, nil
	}
	return "", "", fmt.Errorf("unsupported database type for URL %q", dbURL)
}

// Connect establishes a connection to the database named by dbURL.
func Connect(dbURL string) (*DB, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	driverName, dsn, err := driverFor(dbURL)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if driverName == "sqlite3" {
		// sqlite serializes writers; a single connection avoids "database is locked".
		conn.SetMaxOpenConns(1)
	}

	if err = conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("[INFO] Successfully connected to %s database.", driverName)
	return &DB{conn: conn, dbType: driverName}, nil
}

// Type reports the driver in use.
func (db *DB) Type() string {
	return db.dbType
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (db *DB) rebind(query string) string {
	if db.dbType != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CreateTables creates the necessary database tables
func (db *DB) CreateTables() error {
	var queries []string

	if db.dbType == "postgres" {
		queries = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id SERIAL PRIMARY KEY,
				username VARCHAR(50) UNIQUE NOT NULL,
				email VARCHAR(100) UNIQUE NOT NULL,
				password_hash VARCHAR(255) NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				last_login TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS game_scores (
				id SERIAL PRIMARY KEY,
				user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
				game_type VARCHAR(50) NOT NULL,
				score INTEGER NOT NULL,
				metadata JSONB,
				played_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS idx_game_scores_user_game ON game_scores(user_id, game_type)`,
			`CREATE INDEX IF NOT EXISTS idx_game_scores_type_score ON game_scores(game_type, score DESC)`,
		}
	} else {
		queries = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT UNIQUE NOT NULL,
				email TEXT UNIQUE NOT NULL,
				password_hash TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				last_login DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS game_scores (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER,
				game_type TEXT NOT NULL,
				score INTEGER NOT NULL,
				metadata TEXT,
				played_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
			)`,
			`CREATE INDEX IF NOT EXISTS idx_game_scores_user_game ON game_scores(user_id, game_type)`,
			`CREATE INDEX IF NOT EXISTS idx_game_scores_type_score ON game_scores(game_type, score DESC)`,
		}
	}

	for _, query := range queries {
		if _, err := db.conn.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// QueryRow wrapper for convenience
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(db.rebind(query), args...)
}

// insert runs an INSERT and returns the new row id on either dialect.
func (db *DB) insert(query string, args ...interface{}) (int, error) {
	if db.dbType == "postgres" {
		var id int
		if err := db.conn.QueryRow(db.rebind(query)+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	result, err := db.conn.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// IsUniqueViolation reports whether err came from a UNIQUE constraint.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

// CreateUser creates a new user in the database
func (db *DB) CreateUser(username, email, passwordHash string) (*User, error) {
	id, err := db.insert(
		`INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`,
		username, email, passwordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &User{
		ID:        id,
		Username:  username,
		Email:     email,
		CreatedAt: time.Now(),
	}, nil
}

// GetUserByUsername retrieves a user and their password hash by username
func (db *DB) GetUserByUsername(username string) (*User, string, error) {
	query := `
		SELECT id, username, email, password_hash, created_at, last_login
		FROM users WHERE username = ?
	`

	var user User
	var passwordHash string
	var createdAt, lastLogin interface{}
	err := db.QueryRow(query, username).Scan(
		&user.ID, &user.Username, &user.Email, &passwordHash,
		&createdAt, &lastLogin,
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	user.CreatedAt = parseTimestamp(createdAt)
	if lastLogin != nil {
		t := parseTimestamp(lastLogin)
		user.LastLogin = &t
	}

	return &user, passwordHash, nil
}

// UpdateLastLogin stamps the user's last_login with the current time.
func (db *DB) UpdateLastLogin(userID int) error {
	_, err := db.conn.Exec(db.rebind(`UPDATE users SET last_login = ? WHERE id = ?`), time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// SaveGameScore saves a game score to the database
func (db *DB) SaveGameScore(userID int, gameType string, score int, metadata map[string]interface{}) error {
	var metadataValue interface{}
	if metadata != nil {
		metadataJSON, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadataValue = string(metadataJSON) // TEXT on sqlite
		if db.dbType == "postgres" {
			metadataValue = metadataJSON // JSONB
		}
	}

	_, err := db.insert(
		`INSERT INTO game_scores (user_id, game_type, score, metadata, played_at) VALUES (?, ?, ?, ?, ?)`,
		userID, gameType, score, metadataValue, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save game score: %w", err)
	}

	return nil
}

// GetLeaderboard returns each player's best result for gameType, highest first.
func (db *DB) GetLeaderboard(gameType string, limit int) ([]LeaderboardEntry, error) {
	query := `
		SELECT
			u.username,
			MAX(gs.score) as best_score,
			AVG(CAST(gs.score AS REAL)) as avg_score,
			COUNT(gs.id) as games_played,
			MAX(gs.played_at) as last_played
		FROM users u
		JOIN game_scores gs ON u.id = gs.user_id
		WHERE gs.game_type = ?
		GROUP BY u.id, u.username
		ORDER BY best_score DESC, u.username ASC
		LIMIT ?
	`

	rows, err := db.conn.Query(db.rebind(query), gameType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []LeaderboardEntry{}
	for rows.Next() {
		var entry LeaderboardEntry
		var lastPlayed interface{}

		err := rows.Scan(
			&entry.Username,
			&entry.BestScore,
			&entry.AvgScore,
			&entry.GamesPlayed,
			&lastPlayed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}

		entry.LastPlayed = parseTimestamp(lastPlayed)
		entry.GameType = gameType
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	return entries, nil
}

// GetUserStats retrieves statistics for a specific user and game
func (db *DB) GetUserStats(userID int, gameType string) (*LeaderboardEntry, error) {
	query := `
		SELECT
			u.username,
			COALESCE(MAX(gs.score), 0) as best_score,
			COALESCE(AVG(CAST(gs.score AS REAL)), 0) as avg_score,
			COUNT(gs.id) as games_played,
			MAX(gs.played_at) as last_played
		FROM users u
		LEFT JOIN game_scores gs ON u.id = gs.user_id AND gs.game_type = ?
		WHERE u.id = ?
		GROUP BY u.id, u.username
	`

	entry := LeaderboardEntry{GameType: gameType}
	var lastPlayed interface{}

	err := db.QueryRow(query, gameType, userID).Scan(
		&entry.Username, &entry.BestScore,
		&entry.AvgScore, &entry.GamesPlayed, &lastPlayed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}

	if lastPlayed != nil {
		entry.LastPlayed = parseTimestamp(lastPlayed)
	}

	return &entry, nil
}

// GetRecentGames returns the latest games of gameType across all players, newest first.
func (db *DB) GetRecentGames(gameType string, limit int) ([]GameScore, error) {
	query := `
		SELECT gs.id, u.username, gs.game_type, gs.score, gs.metadata, gs.played_at
		FROM game_scores gs
		JOIN users u ON u.id = gs.user_id
		WHERE gs.game_type = ?
		ORDER BY gs.played_at DESC, gs.id DESC
		LIMIT ?
	`

	rows, err := db.conn.Query(db.rebind(query), gameType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent games: %w", err)
	}
	defer rows.Close()

	games := []GameScore{}
	for rows.Next() {
		var game GameScore
		var metadata, playedAt interface{}
		if err := rows.Scan(&game.ID, &game.Username, &game.GameType, &game.Score, &metadata, &playedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent game: %w", err)
		}

		game.Metadata = decodeMetadata(metadata)
		game.PlayedAt = parseTimestamp(playedAt)
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recent games: %w", err)
	}

	return games, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func decodeMetadata(v interface{}) map[string]interface{} {
	var raw []byte
	switch m := v.(type) {
	case []byte:
		raw = m
	case string:
		raw = []byte(m)
	default:
		return nil
	}

	var metadata map[string]interface{}
	if err := json.Unmarshal(raw, &metadata); err != nil {
		log.Printf("[WARN] Ignoring malformed score metadata: %v", err)
		return nil
	}
	return metadata
}

// parseTimestamp normalizes the timestamp shapes the two drivers return.
// Aggregates such as MAX(played_at) come back from sqlite as text.
func parseTimestamp(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case []byte:
		return parseTimestampString(string(t))
	case string:
		return parseTimestampString(t)
	}
	return time.Time{}
}

func parseTimestampString(s string) time.Time {
	s = strings.TrimSuffix(s, "Z")
	for _, format := range sqlite3.SQLiteTimestampFormats {
		if t, err := time.ParseInLocation(format, s, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ServerVersion reports the database engine version, as a connectivity check.
func (db *DB) ServerVersion() (string, error) {
	query := "SELECT sqlite_version()"
	if db.dbType == "postgres" {
		query = "SELECT version()"
	}

	var version string
	if err := db.conn.QueryRow(query).Scan(&version); err != nil {
		return "", fmt.Errorf("failed to query server version: %w", err)
	}
	return version, nil
}

package database

import (
	"fmt"
	"log"
)

type sampleGame struct {
	score, lines, level int
	duration            float64
}

var samplePlayers = []struct {
	username, email string
	games           []sampleGame
}{
	{"speedster", "speedster@example.com", []sampleGame{{8500, 25, 2, 120.5}, {12000, 35, 3, 180.2}}},
	{"linebreaker", "breaker@example.com", []sampleGame{{25000, 60, 6, 300.8}, {18500, 45, 4, 210.1}}},
	{"quickfingers", "quick@example.com", []sampleGame{{9000, 30, 3, 150.7}}},
	{"gamemaster", "master@example.com", []sampleGame{{27000, 70, 7, 360.9}, {22000, 55, 5, 250.4}}},
	{"rookie", "rookie@example.com", []sampleGame{{700, 4, 0, 45.0}}},
}

// SeedSampleData fills an empty database with demo players and scores for
// gameType. Password hashes are placeholders, so seeded accounts cannot log in.
// It returns false without writing anything when users already exist.
func (db *DB) SeedSampleData(gameType string) (bool, error) {
	var userCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&userCount); err != nil {
		return false, fmt.Errorf("failed to check existing users: %w", err)
	}
	if userCount > 0 {
		return false, nil
	}

	for _, player := range samplePlayers {
		user, err := db.CreateUser(player.username, player.email, "!seeded")
		if err != nil {
			return false, fmt.Errorf("failed to create sample user %s: %w", player.username, err)
		}

		for _, g := range player.games {
			metadata := map[string]interface{}{
				"lines":     g.lines,
				"level":     g.level,
				"game_time": g.duration,
			}
			if err := db.SaveGameScore(user.ID, gameType, g.score, metadata); err != nil {
				return false, fmt.Errorf("failed to create sample score for %s: %w", player.username, err)
			}
		}
		log.Printf("[DEBUG] Seeded %s with %d games", player.username, len(player.games))
	}

	return true, nil
}

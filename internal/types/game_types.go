package types

// GameResult is what a finished game reports back to the menu.
type GameResult struct {
	GameName string                 `json:"game_name"`
	Score    int                    `json:"score"`
	Duration float64                `json:"duration"` // seconds
	Metadata map[string]interface{} `json:"metadata"`
}

// Game is a playable entry in the registry. Play receives the database and
// the CLI auth manager untyped; games assert the concrete types they need.
type Game interface {
	GetName() string
	GetDescription() string
	GetDifficulty() int // 1-10
	IsAvailable() bool

	// Play blocks until the game ends. A negative Score means it never started.
	Play(db interface{}, authManager interface{}) *GameResult
}

package games

import (
	"sort"

	"github.com/isaacjstriker/notris/games/tetris"
	"github.com/isaacjstriker/notris/internal/types"
)

// GameRegistry manages all available games
type GameRegistry struct {
	games []types.Game
}

// NewGameRegistry creates a registry holding every game in Games.
func NewGameRegistry() *GameRegistry {
	gr := &GameRegistry{games: make([]types.Game, 0, len(Games))}
	for _, name := range GetGameList() {
		gr.RegisterGame(Games[name]())
	}
	return gr
}

// RegisterGame adds a game to the registry
func (gr *GameRegistry) RegisterGame(game types.Game) {
	gr.games = append(gr.games, game)
}

// GetAllGames returns all registered games that can currently be played
func (gr *GameRegistry) GetAllGames() []types.Game {
	available := make([]types.Game, 0)
	for _, game := range gr.games {
		if game.IsAvailable() {
			available = append(available, game)
		}
	}
	return available
}

// GetGameCount returns number of available games
func (gr *GameRegistry) GetGameCount() int {
	return len(gr.GetAllGames())
}

// Registry of available games
var Games = map[string]func() types.Game{
	tetris.GameType: func() types.Game { return tetris.NewTerminalGame() },
}

// GetGameList returns the registered game names in sorted order
func GetGameList() []string {
	var games []string
	for name := range Games {
		games = append(games, name)
	}
	sort.Strings(games)
	return games
}

// NewGame creates the named game, reporting false if it is unknown.
func NewGame(name string) (types.Game, bool) {
	ctor, ok := Games[name]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

package tetris

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/eiannone/keyboard"
	"github.com/isaacjstriker/notris/internal/auth"
	"github.com/isaacjstriker/notris/internal/database"
	"github.com/isaacjstriker/notris/internal/types"
)

const GameType = "tetris"

// TerminalGame drives a Tetris engine from the keyboard and draws it with
// ANSI escapes.
type TerminalGame struct {
	config    *Config
	game      *Tetris
	inputChan chan Action
	color     bool

	startedAt time.Time
	finished  bool // current game has been reported
	result    *types.GameResult
}

// NewTerminalGame creates a terminal session using tetris.lua settings.
func NewTerminalGame() *TerminalGame {
	return newTerminalGame(LoadConfig(configPath))
}

func newTerminalGame(cfg *Config) *TerminalGame {
	return &TerminalGame{
		config:    cfg,
		game:      NewTetrisWithSeed(cfg.Seed),
		inputChan: make(chan Action, 16),
		color:     supportsColor(),
	}
}

// Interface methods
func (g *TerminalGame) GetName() string {
	return "Tetris"
}

func (g *TerminalGame) GetDescription() string {
	return "Stack falling blocks and clear lines. Speeds up every 10 lines."
}

func (g *TerminalGame) GetDifficulty() int {
	return 3
}

func (g *TerminalGame) IsAvailable() bool {
	return true
}

// Play runs games until the player quits. After a game over the final board
// stays up and the reset key starts another game. The last game's result is
// returned.
func (g *TerminalGame) Play(db interface{}, authManager interface{}) *types.GameResult {
	if err := keyboard.Open(); err != nil {
		fmt.Printf("Failed to initialize keyboard: %v\n", err)
		return &types.GameResult{GameName: g.GetName(), Score: -1}
	}
	defer keyboard.Close()

	quit := make(chan struct{})
	go g.inputHandler(quit)

	g.startedAt = time.Now()
	g.finished = false
	g.result = nil

	ticker := time.NewTicker(time.Second / time.Duration(g.config.FrameRate))
	defer ticker.Stop()

	g.render()
	for range ticker.C {
		if g.step(db, authManager) {
			break
		}
	}
	close(quit)

	if !g.finished {
		g.finish(db, authManager)
	}
	return g.result
}

// step runs one frame and reports whether the player quit.
func (g *TerminalGame) step(db interface{}, authManager interface{}) bool {
	quitting, dirty := g.processInput()
	if quitting {
		return true
	}

	if g.finished && !g.game.IsGameOver() {
		// reset after game over
		g.finished = false
		g.startedAt = time.Now()
	}

	g.game.Tick()
	if g.game.DropTimer() == 0 && !g.game.IsGameOver() {
		dirty = true
	}
	if dirty {
		g.render()
	}

	if g.game.IsGameOver() && !g.finished {
		if !dirty {
			g.render()
		}
		g.finish(db, authManager)
	}
	return false
}

// finish reports the current game and saves it for a logged-in player.
func (g *TerminalGame) finish(db interface{}, authManager interface{}) {
	g.finished = true
	duration := time.Since(g.startedAt).Seconds()

	fmt.Printf("\nFinal Score: %d | Lines: %d | Level: %d\n", g.game.Score(), g.game.Lines(), g.game.Level())

	metadata := map[string]interface{}{
		"lines":     g.game.Lines(),
		"level":     g.game.Level(),
		"game_time": duration,
		"source":    "terminal",
	}
	g.saveScore(db, authManager, metadata)

	g.result = &types.GameResult{
		GameName: g.GetName(),
		Score:    g.game.Score(),
		Duration: duration,
		Metadata: metadata,
	}
}

// saveScore stores the result when a CLI user is logged in
func (g *TerminalGame) saveScore(db interface{}, authManager interface{}, metadata map[string]interface{}) {
	realAuth, ok := authManager.(*auth.CLIAuth)
	if !ok || !realAuth.GetSession().IsLoggedIn() {
		fmt.Println("Login to save your high scores!")
		return
	}
	session := realAuth.GetSession().GetCurrentSession()
	realDB, ok := db.(*database.DB)
	if !ok || session == nil {
		return
	}

	if err := realDB.SaveGameScore(session.UserID, GameType, g.game.Score(), metadata); err != nil {
		log.Printf("[WARN] Could not save score: %v", err)
		return
	}
	fmt.Println("Score saved to your profile!")
}

// inputHandler runs in a separate goroutine and forwards mapped key presses
func (g *TerminalGame) inputHandler(quit <-chan struct{}) {
	for {
		select {
		case <-quit:
			return
		default:
		}

		char, key, err := keyboard.GetKey()
		if err != nil {
			time.Sleep(10 * time.Millisecond) // Small delay to prevent busy waiting
			continue
		}

		action, ok := g.config.Keys[keyName(char, key)]
		if !ok {
			continue
		}
		select {
		case g.inputChan <- action:
		case <-quit:
			return
		}
	}
}

// processInput applies every action queued since the last frame
func (g *TerminalGame) processInput() (quitting, dirty bool) {
	for {
		select {
		case action := <-g.inputChan:
			if action == ActionQuit {
				return true, dirty
			}
			if g.game.Apply(action) {
				dirty = true
			}
		default:
			return false, dirty
		}
	}
}

// keyName turns a keyboard event into the name used by the key bindings
func keyName(char rune, key keyboard.Key) string {
	switch key {
	case keyboard.KeyArrowLeft:
		return "arrow_left"
	case keyboard.KeyArrowRight:
		return "arrow_right"
	case keyboard.KeyArrowUp:
		return "arrow_up"
	case keyboard.KeyArrowDown:
		return "arrow_down"
	case keyboard.KeySpace:
		return "space"
	case keyboard.KeyEsc:
		return "esc"
	case keyboard.KeyEnter:
		return "enter"
	}
	if char == ' ' {
		return "space"
	}
	return string(unicode.ToLower(char))
}

func (g *TerminalGame) render() {
	fmt.Print(g.frame())
}

// frame builds one full screen of output
func (g *TerminalGame) frame() string {
	var sb strings.Builder
	game := g.game

	sb.WriteString("\033[2J\033[H")
	fmt.Fprintf(&sb, "TETRIS | Score: %d | Lines: %d | Level: %d\n", game.Score(), game.Lines(), game.Level())
	sb.WriteString(strings.Repeat("═", BoardWidth*2+2) + "\n")

	display := make([][]string, BoardHeight)
	board := game.Board()
	for y := range display {
		display[y] = make([]string, BoardWidth)
		for x := range display[y] {
			display[y][x] = g.cell(board[y][x])
		}
	}

	if current, ok := game.CurrentPiece(); ok {
		if g.config.ShowGhost {
			game.GhostPiece().Cells(func(x, y int) {
				if inBounds(x, y) && board[y][x] == Empty {
					display[y][x] = "[]"
				}
			})
		}
		current.Cells(func(x, y int) {
			if inBounds(x, y) {
				display[y][x] = g.cell(current.Kind)
			}
		})
	}

	for _, row := range display {
		sb.WriteString("║")
		for _, cell := range row {
			sb.WriteString(cell)
		}
		sb.WriteString("║\n")
	}
	sb.WriteString("╚" + strings.Repeat("═", BoardWidth*2) + "╝\n")

	next := game.NextPiece()
	sb.WriteString("\nNext Piece:\n")
	for _, row := range next.Shape {
		sb.WriteString("  ")
		for _, filled := range row {
			if filled {
				sb.WriteString(g.cell(next.Kind))
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteString("\n")
	}

	if game.IsGameOver() {
		sb.WriteString("\n*** GAME OVER *** R=Play again, Q=Quit\n")
		return sb.String()
	}
	if game.IsPaused() {
		sb.WriteString("\n*** PAUSED ***\n")
	}
	sb.WriteString("\nControls: A/D=Move, S=Down, W=Rotate, Space=Drop, P=Pause, R=Reset, Q=Quit\n")
	return sb.String()
}

// ANSI backgrounds per kind; orange needs the 256-color palette
var ansiColors = map[Kind]string{
	KindI: "\033[46m  \033[0m",
	KindO: "\033[43m  \033[0m",
	KindT: "\033[45m  \033[0m",
	KindS: "\033[42m  \033[0m",
	KindZ: "\033[41m  \033[0m",
	KindJ: "\033[44m  \033[0m",
	KindL: "\033[48;5;208m  \033[0m",
}

func (g *TerminalGame) cell(k Kind) string {
	if k == Empty {
		if g.color {
			return "  "
		}
		return ".."
	}
	if g.color {
		return ansiColors[k]
	}
	return k.String() + k.String()
}

func supportsColor() bool {
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}

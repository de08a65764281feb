package tetris

const (
	initialDropInterval = 60 // 60 ticks at 60fps = 1 second
	minDropInterval     = 5
	linesPerLevel       = 10
)

// lineScores is the base award for clearing 1-4 rows at once.
var lineScores = [...]int{0, 40, 100, 300, 1200}

// Tetris is a single game instance. It is not safe for concurrent use: one
// driver owns it and calls commands and Tick serially.
type Tetris struct {
	board        Board
	currentPiece *Piece
	nextPiece    Piece
	source       PieceSource

	score    int
	lines    int
	level    int
	gameOver bool
	paused   bool

	dropTimer    int
	dropInterval int
}

// NewTetris creates a new game with a clock-seeded piece source.
func NewTetris() *Tetris {
	return NewTetrisWithSource(clockSource(0))
}

// NewTetrisWithSeed creates a new game whose pieces are drawn from a
// deterministic random sequence.
func NewTetrisWithSeed(seed int64) *Tetris {
	return NewTetrisWithSource(clockSource(seed))
}

// NewTetrisWithSource creates a new game drawing pieces from source.
func NewTetrisWithSource(source PieceSource) *Tetris {
	t := &Tetris{source: source}
	t.Reset()
	return t
}

// Reset starts a fresh game: empty board, zeroed counters, a newly drawn next
// piece and the first piece spawned. The piece source is kept.
func (t *Tetris) Reset() {
	*t = Tetris{
		source:       t.source,
		nextPiece:    NewPiece(t.source()),
		dropInterval: initialDropInterval,
	}
	t.spawnNextPiece()
}

// spawnNextPiece promotes the queued piece and draws a new one
func (t *Tetris) spawnNextPiece() {
	piece := NewPiece(t.nextPiece.Kind)
	t.nextPiece = NewPiece(t.source())

	if t.board.Fits(piece) {
		t.currentPiece = &piece
	} else {
		t.currentPiece = nil
		t.gameOver = true
	}
}

// active reports whether mutating commands are currently accepted.
func (t *Tetris) active() bool {
	return !t.paused && !t.gameOver && t.currentPiece != nil
}

// try commits candidate as the current piece if it fits.
func (t *Tetris) try(candidate Piece) bool {
	if !t.board.Fits(candidate) {
		return false
	}
	t.currentPiece = &candidate
	return true
}

// MoveLeft shifts the current piece one column left.
func (t *Tetris) MoveLeft() bool {
	if !t.active() {
		return false
	}
	return t.try(t.currentPiece.Moved(-1, 0))
}

// MoveRight shifts the current piece one column right.
func (t *Tetris) MoveRight() bool {
	if !t.active() {
		return false
	}
	return t.try(t.currentPiece.Moved(1, 0))
}

// SoftDrop moves the current piece down one row, scoring a point on success.
// A false result means the piece is resting on something.
func (t *Tetris) SoftDrop() bool {
	if !t.active() {
		return false
	}
	if !t.try(t.currentPiece.Moved(0, 1)) {
		return false
	}
	t.score++
	return true
}

// HardDrop drops the piece as far as it goes and returns the distance.
// The piece locks only when it moved at least one row; a piece already
// resting on the stack stays unlocked and 0 is returned.
func (t *Tetris) HardDrop() int {
	if !t.active() {
		return 0
	}

	distance := 0
	for t.SoftDrop() {
		distance++
	}

	if distance > 0 {
		t.lockPiece()
	}
	return distance
}

// Rotate turns the current piece clockwise in place. There are no wall
// kicks: a rotation that does not fit is rejected.
func (t *Tetris) Rotate() bool {
	if !t.active() {
		return false
	}
	return t.try(t.currentPiece.Rotate())
}

// Tick advances the game by one frame and applies gravity every
// dropInterval frames.
func (t *Tetris) Tick() {
	if t.paused || t.gameOver {
		return
	}

	t.dropTimer++
	if t.dropTimer >= t.dropInterval {
		t.dropTimer = 0
		if !t.SoftDrop() {
			t.lockPiece()
		}
	}
}

// TogglePause flips the pause flag. It works in every state.
func (t *Tetris) TogglePause() {
	t.paused = !t.paused
}

// GhostPiece returns where the current piece would land. Without a current
// piece it returns an I piece at the spawn origin.
func (t *Tetris) GhostPiece() Piece {
	if t.currentPiece == nil {
		return NewPiece(KindI)
	}

	ghost := t.currentPiece.Clone()
	for t.board.Fits(ghost.Moved(0, 1)) {
		ghost.Y++
	}
	return ghost
}

// lockPiece writes the current piece to the board, clears lines and spawns
// the next piece
func (t *Tetris) lockPiece() {
	if t.currentPiece == nil {
		return
	}

	t.board.Place(*t.currentPiece)
	t.currentPiece = nil

	t.clearLines()
	t.spawnNextPiece()
}

// clearLines removes completed lines and updates score, lines and level
func (t *Tetris) clearLines() {
	cleared := t.board.removeFullRows()
	if cleared == 0 {
		return
	}

	t.lines += cleared
	if cleared < len(lineScores) {
		t.score += lineScores[cleared] * (t.level + 1)
	}

	// Level progression: gravity only ever speeds up
	if newLevel := t.lines / linesPerLevel; newLevel > t.level {
		t.level = newLevel
		t.dropInterval = max(initialDropInterval-t.level*3, minDropInterval)
	}
}

// Board returns a copy of the locked cells.
func (t *Tetris) Board() Board {
	return t.board
}

// CurrentPiece returns a copy of the falling piece, if there is one.
func (t *Tetris) CurrentPiece() (Piece, bool) {
	if t.currentPiece == nil {
		return Piece{}, false
	}
	return t.currentPiece.Clone(), true
}

// NextPiece returns a copy of the queued piece.
func (t *Tetris) NextPiece() Piece {
	return t.nextPiece.Clone()
}

func (t *Tetris) Score() int        { return t.score }
func (t *Tetris) Lines() int        { return t.lines }
func (t *Tetris) Level() int        { return t.level }
func (t *Tetris) IsGameOver() bool  { return t.gameOver }
func (t *Tetris) IsPaused() bool    { return t.paused }
func (t *Tetris) DropTimer() int    { return t.dropTimer }
func (t *Tetris) DropInterval() int { return t.dropInterval }

package tetris

// GameState represents the data sent to the client for rendering.
type GameState struct {
	Board    [][]int `json:"board"`
	Current  *Piece  `json:"current,omitempty"`
	Ghost    *Piece  `json:"ghost,omitempty"`
	Next     Piece   `json:"next"`
	Score    int     `json:"score"`
	Lines    int     `json:"lines"`
	Level    int     `json:"level"`
	Paused   bool    `json:"paused"`
	GameOver bool    `json:"gameOver"`
}

// GetState returns a snapshot of the game for JSON serialization. The board
// holds locked cells only; the current and ghost pieces are sent separately.
func (t *Tetris) GetState() GameState {
	state := GameState{
		Board:    t.board.Rows(),
		Next:     t.NextPiece(),
		Score:    t.score,
		Lines:    t.lines,
		Level:    t.level,
		Paused:   t.paused,
		GameOver: t.gameOver,
	}

	if current, ok := t.CurrentPiece(); ok {
		ghost := t.GhostPiece()
		state.Current = &current
		state.Ghost = &ghost
	}

	return state
}

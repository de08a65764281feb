package tetris

// newTestGame returns a game whose pieces come from the given kinds in order.
func newTestGame(seq ...Kind) *Tetris {
	return NewTetrisWithSource(SequenceSource(seq...))
}

// fillRow fills row y with kind, leaving the listed columns empty.
func fillRow(b *Board, y int, kind Kind, except ...int) {
	for x := 0; x < BoardWidth; x++ {
		b[y][x] = kind
	}
	for _, x := range except {
		b[y][x] = Empty
	}
}

func rowEmpty(b Board, y int) bool {
	for x := 0; x < BoardWidth; x++ {
		if b[y][x] != Empty {
			return false
		}
	}
	return true
}

// place puts p as the current piece, bypassing spawn.
func (t *Tetris) place(p Piece) {
	t.currentPiece = &p
}

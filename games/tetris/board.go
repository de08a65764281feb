package tetris

const (
	BoardWidth  = 10
	BoardHeight = 20
)

// Board holds the locked cells. Rows are indexed top to bottom.
type Board [BoardHeight][BoardWidth]Kind

// inBounds checks if a coordinate lies on the board
func inBounds(x, y int) bool {
	return x >= 0 && x < BoardWidth && y >= 0 && y < BoardHeight
}

// Fits reports whether every occupied cell of p is on the board and free.
func (b Board) Fits(p Piece) bool {
	fits := true
	p.Cells(func(x, y int) {
		if !fits {
			return
		}
		if !inBounds(x, y) || b[y][x] != Empty {
			fits = false
		}
	})
	return fits
}

// Place writes the piece into the board. Cells outside the board are skipped.
func (b *Board) Place(p Piece) {
	p.Cells(func(x, y int) {
		if inBounds(x, y) {
			b[y][x] = p.Kind
		}
	})
}

// Cell returns the occupant of (x, y), or Empty when off the board.
func (b Board) Cell(x, y int) Kind {
	if !inBounds(x, y) {
		return Empty
	}
	return b[y][x]
}

// Occupied returns the number of filled cells.
func (b Board) Occupied() int {
	n := 0
	for y := range b {
		for x := range b[y] {
			if b[y][x] != Empty {
				n++
			}
		}
	}
	return n
}

func (b Board) rowFull(y int) bool {
	for x := 0; x < BoardWidth; x++ {
		if b[y][x] == Empty {
			return false
		}
	}
	return true
}

// fullRows returns the complete rows in ascending index order.
func (b Board) fullRows() []int {
	var rows []int
	for y := 0; y < BoardHeight; y++ {
		if b.rowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// removeFullRows clears every complete row and returns how many were removed.
// All rows are found before any shift, then each one is removed in ascending
// order against the board as already shifted by the previous removals.
func (b *Board) removeFullRows() int {
	rows := b.fullRows()
	for _, line := range rows {
		for y := line; y > 0; y-- {
			b[y] = b[y-1]
		}
		b[0] = [BoardWidth]Kind{}
	}
	return len(rows)
}

// Rows returns the board as row-major kind codes, 0 meaning empty.
func (b Board) Rows() [][]int {
	rows := make([][]int, BoardHeight)
	for y := range b {
		rows[y] = make([]int, BoardWidth)
		for x, k := range b[y] {
			rows[y][x] = int(k)
		}
	}
	return rows
}

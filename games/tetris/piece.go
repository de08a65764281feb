package tetris

// Spawn origin for every new piece.
const (
	SpawnX = 3
	SpawnY = 0
)

// Piece is the active, movable tetromino.
type Piece struct {
	Kind  Kind     `json:"kind"`
	Shape [][]bool `json:"shape"`
	X     int      `json:"x"`
	Y     int      `json:"y"`
}

// NewPiece creates a piece of the given kind at the spawn origin.
func NewPiece(kind Kind) Piece {
	return Piece{
		Kind:  kind,
		Shape: kind.Shape(),
		X:     SpawnX,
		Y:     SpawnY,
	}
}

// Moved returns a copy of the piece translated by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Rotate returns a copy of the piece turned 90 degrees clockwise around its
// origin. No rotation state is kept: each call works from the current shape.
func (p Piece) Rotate() Piece {
	p.Shape = rotateShape(p.Shape)
	return p
}

// Clone returns a deep copy, so the shape can be changed independently.
func (p Piece) Clone() Piece {
	p.Shape = copyShape(p.Shape)
	return p
}

// Cells calls fn with the board coordinates of every occupied cell.
func (p Piece) Cells(fn func(x, y int)) {
	for row := range p.Shape {
		for col, filled := range p.Shape[row] {
			if filled {
				fn(p.X+col, p.Y+row)
			}
		}
	}
}

// CellCount returns the number of occupied cells in the shape.
func (p Piece) CellCount() int {
	n := 0
	p.Cells(func(int, int) { n++ })
	return n
}

// Helper functions
func copyShape(original [][]bool) [][]bool {
	shape := make([][]bool, len(original))
	for i := range original {
		shape[i] = make([]bool, len(original[i]))
		copy(shape[i], original[i])
	}
	return shape
}

func rotateShape(shape [][]bool) [][]bool {
	rows := len(shape)
	if rows == 0 {
		panic("tetris: rotate of empty shape")
	}
	cols := len(shape[0])
	rotated := make([][]bool, cols)

	for i := range rotated {
		rotated[i] = make([]bool, rows)
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			rotated[c][rows-1-r] = shape[r][c]
		}
	}

	return rotated
}

package tetris

import "fmt"

// Kind identifies one of the seven tetrominoes. The zero value is Empty and
// marks a free board cell.
type Kind int

const (
	Empty Kind = iota
	KindI
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// kinds lists every playable kind in draw order.
var kinds = [...]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

// Canonical shapes, indexed by Kind.
var shapes = [...][][]bool{
	KindI: {
		{false, false, false, false},
		{true, true, true, true},
		{false, false, false, false},
		{false, false, false, false},
	},
	KindO: {
		{true, true},
		{true, true},
	},
	KindT: {
		{false, true, false},
		{true, true, true},
		{false, false, false},
	},
	KindS: {
		{false, true, true},
		{true, true, false},
		{false, false, false},
	},
	KindZ: {
		{true, true, false},
		{false, true, true},
		{false, false, false},
	},
	KindJ: {
		{true, false, false},
		{true, true, true},
		{false, false, false},
	},
	KindL: {
		{false, false, true},
		{true, true, true},
		{false, false, false},
	},
}

var colors = [...]string{
	KindI: "#00FFFF", // Cyan
	KindO: "#FFFF00", // Yellow
	KindT: "#800080", // Purple
	KindS: "#00FF00", // Green
	KindZ: "#FF0000", // Red
	KindJ: "#0000FF", // Blue
	KindL: "#FFA500", // Orange
}

var names = [...]string{
	Empty: ".",
	KindI: "I",
	KindO: "O",
	KindT: "T",
	KindS: "S",
	KindZ: "Z",
	KindJ: "J",
	KindL: "L",
}

// Kinds returns the seven playable kinds.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds[:])
	return out
}

// Valid reports whether k is one of the seven playable kinds.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindL
}

// Color returns the display color of the kind as a hex string.
func (k Kind) Color() string {
	if !k.Valid() {
		return ""
	}
	return colors[k]
}

// Shape returns a fresh copy of the canonical occupancy matrix.
func (k Kind) Shape() [][]bool {
	if !k.Valid() {
		panic(fmt.Sprintf("tetris: no shape for kind %d", int(k)))
	}
	return copyShape(shapes[k])
}

func (k Kind) String() string {
	if k < Empty || k > KindL {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return names[k]
}

// KindInfo describes a kind for presentation clients.
type KindInfo struct {
	Code  int    `json:"code"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Palette returns the static kind -> display color mapping. Codes match the
// values used in GameState.Board.
func Palette() []KindInfo {
	palette := make([]KindInfo, 0, len(kinds))
	for _, k := range kinds {
		palette = append(palette, KindInfo{Code: int(k), Name: k.String(), Color: k.Color()})
	}
	return palette
}

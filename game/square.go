package game

import "fmt"

// BoardSize is the board extent along both axes.
const BoardSize = 10

// RowsPerSide is the number of ranks filled with men for each side at setup.
const RowsPerSide = 4

// Square identifies one board square by file (column) and rank (row).
type Square struct {
	File int
	Rank int
}

// direction is a unit diagonal offset.
type direction struct {
	df int
	dr int
}

// the four diagonal directions
var diagonals = [4]direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// OnBoard reports whether the square falls within the board extent.
func (s Square) OnBoard() bool {
	return s.File >= 0 && s.File < BoardSize && s.Rank >= 0 && s.Rank < BoardSize
}

// Playable reports whether the square is a dark square. Pieces only ever
// occupy dark squares.
func (s Square) Playable() bool {
	return (s.File+s.Rank)%2 == 1
}

// step returns the square reached by moving n steps along d.
func (s Square) step(d direction, n int) Square {
	return Square{File: s.File + d.df*n, Rank: s.Rank + d.dr*n}
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.File, s.Rank)
}

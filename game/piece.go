package game

import "github.com/google/uuid"

// Side identifies one of the two players.
type Side int

const (
	White Side = iota
	Black
)

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

// forward is the rank polarity of the side's advance: White starts on the
// low ranks and advances toward increasing rank, Black the reverse.
func (s Side) forward() int {
	if s == White {
		return 1
	}
	return -1
}

// crowningRank is the opponent's back row, where a Man promotes.
func (s Side) crowningRank() int {
	if s == White {
		return BoardSize - 1
	}
	return 0
}

// Rank is a piece's movement class.
type Rank int

const (
	Man Rank = iota
	King
)

func (r Rank) String() string {
	if r == King {
		return "king"
	}
	return "man"
}

// Piece is a live piece on the board. The Board owns all Piece values;
// nothing outside this package mutates them directly. The ID is a stable
// handle that survives relocation and promotion, so callers never hold
// positional indices that drift when another piece is removed.
type Piece struct {
	ID    uuid.UUID
	Owner Side
	Rank  Rank
	Pos   Square
}

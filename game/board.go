package game

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Board is the authoritative piece registry: at most one piece per square,
// every piece on a playable square inside the board extent. A corrupted
// registry (two pieces on one square, a piece relocated off board) is an
// engine bug, not caller misuse, and panics.
type Board struct {
	bySquare map[Square]*Piece
	byID     map[uuid.UUID]*Piece
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{
		bySquare: make(map[Square]*Piece),
		byID:     make(map[uuid.UUID]*Piece),
	}
}

// SetupBoard returns a board with the opening position: each side's men on
// every dark square of its first RowsPerSide ranks, White on the low ranks
// and Black on the high ranks.
func SetupBoard() *Board {
	b := NewBoard()
	for rank := 0; rank < RowsPerSide; rank++ {
		for file := 0; file < BoardSize; file++ {
			sq := Square{File: file, Rank: rank}
			if !sq.Playable() {
				continue
			}
			if _, err := b.PlacePiece(sq, White); err != nil {
				panic(fmt.Sprintf("setup: %v", err))
			}
		}
	}
	for rank := BoardSize - RowsPerSide; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			sq := Square{File: file, Rank: rank}
			if !sq.Playable() {
				continue
			}
			if _, err := b.PlacePiece(sq, Black); err != nil {
				panic(fmt.Sprintf("setup: %v", err))
			}
		}
	}
	return b
}

// PieceAt returns the piece occupying sq, if any. Off-board and light
// squares are simply empty.
func (b *Board) PieceAt(sq Square) (*Piece, bool) {
	p, ok := b.bySquare[sq]
	return p, ok
}

// PieceByID resolves a stable piece handle, if the piece is still alive.
func (b *Board) PieceByID(id uuid.UUID) (*Piece, bool) {
	p, ok := b.byID[id]
	return p, ok
}

// PlacePiece creates a new man for owner on sq. Used only during setup and
// in tests that build positions by hand.
func (b *Board) PlacePiece(sq Square, owner Side) (*Piece, error) {
	if !sq.OnBoard() {
		return nil, fmt.Errorf("place %v: %w", sq, ErrOffBoard)
	}
	if !sq.Playable() {
		return nil, fmt.Errorf("place %v: %w", sq, ErrNotPlayable)
	}
	if _, occupied := b.bySquare[sq]; occupied {
		return nil, fmt.Errorf("place %v: %w", sq, ErrSquareOccupied)
	}
	p := &Piece{ID: uuid.New(), Owner: owner, Rank: Man, Pos: sq}
	b.bySquare[sq] = p
	b.byID[p.ID] = p
	return p, nil
}

// RemovePiece deletes p from the board. Removing a piece that is not
// registered returns ErrPieceNotFound; it is never a silent no-op.
func (b *Board) RemovePiece(p *Piece) error {
	registered, ok := b.byID[p.ID]
	if !ok || registered != p {
		return fmt.Errorf("remove %v: %w", p.Pos, ErrPieceNotFound)
	}
	delete(b.bySquare, p.Pos)
	delete(b.byID, p.ID)
	return nil
}

// MovePieceTo relocates p to sq. It performs no legality checking (that is
// the rules engine's job) but does assert registry invariants: the mover
// must be registered and the destination empty, playable and on board.
func (b *Board) MovePieceTo(p *Piece, sq Square) {
	if registered, ok := b.byID[p.ID]; !ok || registered != p {
		panic(fmt.Sprintf("board corrupted: moving unregistered piece at %v", p.Pos))
	}
	if !sq.OnBoard() || !sq.Playable() {
		panic(fmt.Sprintf("board corrupted: relocation to unplayable %v", sq))
	}
	if other, occupied := b.bySquare[sq]; occupied && other != p {
		panic(fmt.Sprintf("board corrupted: two pieces on %v", sq))
	}
	delete(b.bySquare, p.Pos)
	p.Pos = sq
	b.bySquare[sq] = p
}

// Promote upgrades p to a king. Promotion never reverses.
func (b *Board) Promote(p *Piece) {
	p.Rank = King
}

// Pieces returns side's live pieces in deterministic board order.
func (b *Board) Pieces(side Side) []*Piece {
	var out []*Piece
	for _, p := range b.byID {
		if p.Owner == side {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pos.Rank != out[j].Pos.Rank {
			return out[i].Pos.Rank < out[j].Pos.Rank
		}
		return out[i].Pos.File < out[j].Pos.File
	})
	return out
}

// Count returns the number of live pieces for side.
func (b *Board) Count(side Side) int {
	n := 0
	for _, p := range b.byID {
		if p.Owner == side {
			n++
		}
	}
	return n
}

// Copy returns a deep copy of the board. Piece IDs are preserved so handles
// taken from the original resolve on the copy too.
func (b *Board) Copy() *Board {
	nb := NewBoard()
	for _, p := range b.byID {
		pc := *p
		nb.bySquare[pc.Pos] = &pc
		nb.byID[pc.ID] = &pc
	}
	return nb
}

package game

// Move describes one legal ply for a single piece: either a simple diagonal
// move (no captures) or a complete capture sequence. Moves are transient
// values produced by the generator and consumed by the rules engine; they
// are never stored.
type Move struct {
	From     Square
	Path     []Square // landing squares in order; the last one is the final destination
	Captures []Square // squares of the captured pieces, in jump order; empty for a simple move
	Promotes bool     // the mover ends the sequence as a king having started as a man
}

// To returns the final destination of the move.
func (m Move) To() Square {
	return m.Path[len(m.Path)-1]
}

// FirstHop returns the first landing square. For a simple move this equals
// To; for a capture sequence it is where the piece lands after the first
// jump.
func (m Move) FirstHop() Square {
	return m.Path[0]
}

// IsCapture reports whether the move captures at least one piece.
func (m Move) IsCapture() bool {
	return len(m.Captures) > 0
}

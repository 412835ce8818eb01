package engine

import "draughts/game"

// Engine is the boundary the presentation layer (or an automated agent)
// calls. One logical turn completes fully before the next begins; none of
// these methods are safe for concurrent invocation.
type Engine interface {
	// InitializeBoard resets the board and turn state. The starting side
	// alternates between consecutive games.
	InitializeBoard()

	// SelectPiece marks the piece on sq as the pending mover. Selection is
	// presentation convenience; MovePiece revalidates everything.
	SelectPiece(sq game.Square) error
	DeselectPiece()
	SelectedPiece() (*game.Piece, bool)
	// IsSelectable reports whether the piece on sq may be selected now:
	// it belongs to the side to move, and if a capture chain is pending,
	// it is the bound piece.
	IsSelectable(sq game.Square) bool
	// SelectablePieces lists the squares of every currently selectable
	// piece that has at least one legal move.
	SelectablePieces() []game.Square

	// MovePiece plays one ply with the selected piece.
	MovePiece(dest game.Square) game.MoveResult
	// SkipTurn passes the turn; used when the side to move has no legal
	// move at all.
	SkipTurn()

	CheckWinner() (game.Side, bool)
	PieceCounts() game.PieceCounts
	CurrentSide() game.Side
	StatusMessage() string

	// State exposes the game state for read-only callers such as agents.
	State() *game.GameState
}

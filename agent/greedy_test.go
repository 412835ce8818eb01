package agent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"draughts/game"
)

// fakeEngine implements engine.Engine over a hand-built game state.
type fakeEngine struct {
	gs       *game.GameState
	selected *game.Piece
	skips    int
}

func newFakeEngine(gs *game.GameState) *fakeEngine {
	return &fakeEngine{gs: gs}
}

func (f *fakeEngine) InitializeBoard() {}

func (f *fakeEngine) SelectPiece(sq game.Square) error {
	p, ok := f.gs.Board.PieceAt(sq)
	if !ok {
		return game.ErrPieceNotFound
	}
	f.selected = p
	return nil
}

func (f *fakeEngine) DeselectPiece() { f.selected = nil }

func (f *fakeEngine) SelectedPiece() (*game.Piece, bool) {
	return f.selected, f.selected != nil
}

func (f *fakeEngine) IsSelectable(sq game.Square) bool {
	p, ok := f.gs.Board.PieceAt(sq)
	return ok && p.Owner == f.gs.SideToMove
}

func (f *fakeEngine) SelectablePieces() []game.Square {
	var squares []game.Square
	for _, p := range f.gs.Board.Pieces(f.gs.SideToMove) {
		if len(f.gs.LegalMoves(p)) > 0 {
			squares = append(squares, p.Pos)
		}
	}
	return squares
}

func (f *fakeEngine) MovePiece(dest game.Square) game.MoveResult {
	res := f.gs.MovePiece(f.selected, dest)
	if res.Success && !res.MustContinue {
		f.selected = nil
	}
	return res
}

func (f *fakeEngine) SkipTurn() {
	f.skips++
	f.gs.SkipTurn()
}

func (f *fakeEngine) CheckWinner() (game.Side, bool) { return f.gs.Winner() }
func (f *fakeEngine) PieceCounts() game.PieceCounts  { return f.gs.Counts() }
func (f *fakeEngine) CurrentSide() game.Side         { return f.gs.SideToMove }
func (f *fakeEngine) StatusMessage() string          { return "" }
func (f *fakeEngine) State() *game.GameState         { return f.gs }

func emptyState(t *testing.T, side game.Side) *game.GameState {
	t.Helper()
	return &game.GameState{
		Board:        game.NewBoard(),
		SideToMove:   side,
		StartingSide: side,
	}
}

func place(t *testing.T, b *game.Board, file, rank int, side game.Side) *game.Piece {
	t.Helper()
	p, err := b.PlacePiece(game.Square{File: file, Rank: rank}, side)
	require.NoError(t, err)
	return p
}

func TestScorePrefersCaptureCount(t *testing.T) {
	g := NewGreedy(game.White, WithSeed(7))

	king := &game.Piece{Owner: game.White, Rank: game.King}
	man := &game.Piece{Owner: game.White, Rank: game.Man}

	doubleCapture := game.PieceMove{Piece: man, Move: game.Move{
		Captures: []game.Square{{File: 1, Rank: 2}, {File: 3, Rank: 4}},
	}}
	sweetenedSingle := game.PieceMove{Piece: king, Move: game.Move{
		Captures: []game.Square{{File: 1, Rank: 2}},
		Promotes: true,
	}}

	// jitter must never flip a genuine capture-count advantage
	for i := 0; i < 100; i++ {
		require.Greater(t, g.score(doubleCapture), g.score(sweetenedSingle))
	}
}

func TestChooseMovePicksLongestChain(t *testing.T) {
	gs := emptyState(t, game.White)
	place(t, gs.Board, 8, 1, game.White) // single capture available
	place(t, gs.Board, 7, 2, game.Black)
	long := place(t, gs.Board, 5, 2, game.White) // double capture available
	place(t, gs.Board, 4, 3, game.Black)
	place(t, gs.Board, 4, 5, game.Black)

	g := NewGreedy(game.White, WithSeed(3))
	pm, ok := g.chooseMove(gs)
	require.True(t, ok)
	require.Same(t, long, pm.Piece, "the two-capture chain outscores the single capture")
	require.Len(t, pm.Move.Captures, 2)
}

func TestTakeTurnPlaysFullChain(t *testing.T) {
	gs := emptyState(t, game.White)
	place(t, gs.Board, 5, 2, game.White)
	place(t, gs.Board, 4, 3, game.Black)
	place(t, gs.Board, 4, 5, game.Black)

	eng := newFakeEngine(gs)
	NewGreedy(game.White, WithSeed(11)).TakeTurn(eng)

	require.Equal(t, 0, gs.Board.Count(game.Black), "both pieces fall in one turn")
	require.Equal(t, game.Black, gs.SideToMove, "control yields only after the chain ends")
	require.Zero(t, eng.skips)
}

func TestTakeTurnSkipsWhenBlocked(t *testing.T) {
	gs := emptyState(t, game.Black)
	// lone black man on its own crowning row, every jump landing occupied
	place(t, gs.Board, 5, 0, game.Black)
	place(t, gs.Board, 4, 1, game.White)
	place(t, gs.Board, 6, 1, game.White)
	place(t, gs.Board, 3, 2, game.White)
	place(t, gs.Board, 7, 2, game.White)

	eng := newFakeEngine(gs)
	NewGreedy(game.Black, WithSeed(5)).TakeTurn(eng)

	require.Equal(t, 1, eng.skips, "a blocked side skips its turn")
	require.Equal(t, game.White, gs.SideToMove)
}

func TestTakeTurnIgnoresOpponentTurn(t *testing.T) {
	gs := emptyState(t, game.White)
	place(t, gs.Board, 5, 4, game.White)
	place(t, gs.Board, 0, 7, game.Black)

	eng := newFakeEngine(gs)
	NewGreedy(game.Black, WithSeed(1)).TakeTurn(eng)

	require.Equal(t, game.White, gs.SideToMove, "an agent never moves out of turn")
	require.Zero(t, eng.skips)
}

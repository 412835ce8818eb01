package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// stateWith returns a game state over an empty board with side to move,
// for tests that build positions by hand.
func stateWith(side Side) *GameState {
	return &GameState{
		Board:        NewBoard(),
		SideToMove:   side,
		StartingSide: side,
	}
}

func TestNewGameState(t *testing.T) {
	gs := NewGameState(White)

	require.Equal(t, White, gs.SideToMove)
	require.Equal(t, White, gs.StartingSide)
	require.Equal(t, uuid.Nil, gs.MustContinueWith)
	require.Equal(t, PieceCounts{Black: 20, White: 20}, gs.Counts())
}

func TestMovePieceValidation(t *testing.T) {
	t.Run("nil selection", func(t *testing.T) {
		gs := NewGameState(White)
		res := gs.MovePiece(nil, Square{File: 0, Rank: 4})
		require.False(t, res.Success)
		require.Equal(t, ReasonNoSelection, res.Reason)
		require.NotEmpty(t, res.Message)
	})

	t.Run("wrong turn", func(t *testing.T) {
		gs := NewGameState(White)
		black, ok := gs.Board.PieceAt(Square{File: 0, Rank: 7})
		require.True(t, ok)
		res := gs.MovePiece(black, Square{File: 1, Rank: 6})
		require.False(t, res.Success)
		require.Equal(t, ReasonWrongTurn, res.Reason)
	})

	t.Run("unplayable destination", func(t *testing.T) {
		gs := stateWith(White)
		p := mustPlace(t, gs.Board, 5, 4, White)
		res := gs.MovePiece(p, Square{File: 5, Rank: 5})
		require.False(t, res.Success)
		require.Equal(t, ReasonNotPlayable, res.Reason)
	})

	t.Run("occupied destination", func(t *testing.T) {
		gs := stateWith(White)
		p := mustPlace(t, gs.Board, 5, 4, White)
		mustPlace(t, gs.Board, 4, 5, White)
		res := gs.MovePiece(p, Square{File: 4, Rank: 5})
		require.False(t, res.Success)
		require.Equal(t, ReasonOccupied, res.Reason)
	})

	t.Run("illegal geometry", func(t *testing.T) {
		gs := stateWith(White)
		p := mustPlace(t, gs.Board, 5, 4, White)
		res := gs.MovePiece(p, Square{File: 5, Rank: 6})
		require.False(t, res.Success)
		require.Equal(t, ReasonIllegalMove, res.Reason)
		res = gs.MovePiece(p, Square{File: 4, Rank: 3})
		require.Equal(t, ReasonIllegalMove, res.Reason, "a man cannot step backward")
	})

	t.Run("failure leaves no partial mutation", func(t *testing.T) {
		gs := stateWith(White)
		p := mustPlace(t, gs.Board, 5, 4, White)
		mustPlace(t, gs.Board, 4, 5, Black)

		before := gs.Counts()
		res := gs.MovePiece(p, Square{File: 6, Rank: 5})
		require.False(t, res.Success, "non-capture move while a capture exists")
		require.Equal(t, Square{File: 5, Rank: 4}, p.Pos)
		require.Equal(t, before, gs.Counts())
		require.Equal(t, White, gs.SideToMove)
	})
}

func TestForcedCapture(t *testing.T) {
	gs := stateWith(White)
	attacker := mustPlace(t, gs.Board, 5, 4, White)
	bystander := mustPlace(t, gs.Board, 1, 2, White)
	mustPlace(t, gs.Board, 4, 5, Black)

	t.Run("no non-capture move by any friendly piece is legal", func(t *testing.T) {
		res := gs.MovePiece(bystander, Square{File: 0, Rank: 3})
		require.False(t, res.Success)
		require.Equal(t, ReasonMustCapture, res.Reason)

		res = gs.MovePiece(attacker, Square{File: 6, Rank: 5})
		require.False(t, res.Success)
		require.Equal(t, ReasonMustCapture, res.Reason)

		require.Empty(t, gs.LegalMoves(bystander), "the bystander has no legal moves this turn")
	})

	t.Run("the capture itself is accepted", func(t *testing.T) {
		res := gs.MovePiece(attacker, Square{File: 3, Rank: 6})
		require.True(t, res.Success)
		require.Equal(t, []Square{{File: 4, Rank: 5}}, res.Captured)
		require.Equal(t, Square{File: 3, Rank: 6}, attacker.Pos)
		require.Equal(t, 0, gs.Board.Count(Black), "the jumped piece is removed")
		require.Equal(t, Black, gs.SideToMove, "turn passes after a completed capture")
	})
}

func TestMultiJump(t *testing.T) {
	gs := stateWith(White)
	jumper := mustPlace(t, gs.Board, 5, 2, White)
	other := mustPlace(t, gs.Board, 9, 0, White)
	mustPlace(t, gs.Board, 4, 3, Black)
	mustPlace(t, gs.Board, 4, 5, Black)

	res := gs.MovePiece(jumper, Square{File: 3, Rank: 4})
	require.True(t, res.Success)
	require.True(t, res.MustContinue)
	require.Equal(t, White, gs.SideToMove, "side to move is unchanged mid-chain")
	require.Equal(t, jumper.ID, gs.MustContinueWith)

	res = gs.MovePiece(other, Square{File: 8, Rank: 1})
	require.False(t, res.Success, "a different piece cannot move mid-chain")
	require.Equal(t, ReasonMustContinue, res.Reason)

	res = gs.MovePiece(jumper, Square{File: 5, Rank: 6})
	require.True(t, res.Success)
	require.False(t, res.MustContinue)
	require.Equal(t, uuid.Nil, gs.MustContinueWith)
	require.Equal(t, Black, gs.SideToMove)
	require.Equal(t, 0, gs.Board.Count(Black))
}

func TestPromotion(t *testing.T) {
	t.Run("on the crowning row via capture, with king rules immediately", func(t *testing.T) {
		gs := stateWith(White)
		p := mustPlace(t, gs.Board, 6, 7, White)
		mustPlace(t, gs.Board, 7, 8, Black)
		mustPlace(t, gs.Board, 5, 6, Black)

		res := gs.MovePiece(p, Square{File: 8, Rank: 9})
		require.True(t, res.Success)
		require.True(t, res.BecameKing)
		require.Equal(t, King, p.Rank)
		require.True(t, res.MustContinue,
			"the new king captures (5,6) at king range, so the chain continues")

		res = gs.MovePiece(p, Square{File: 3, Rank: 4})
		require.True(t, res.Success)
		require.Equal(t, []Square{{File: 5, Rank: 6}}, res.Captured)
		require.Equal(t, King, p.Rank, "promotion never reverses")
	})

	t.Run("on the crowning row via simple move", func(t *testing.T) {
		gs := stateWith(Black)
		p := mustPlace(t, gs.Board, 2, 1, Black)

		res := gs.MovePiece(p, Square{File: 1, Rank: 0})
		require.True(t, res.Success)
		require.True(t, res.BecameKing)
		require.Equal(t, King, p.Rank)
	})
}

func TestSkipTurn(t *testing.T) {
	gs := NewGameState(White)
	gs.MustContinueWith = uuid.New()

	gs.SkipTurn()
	require.Equal(t, Black, gs.SideToMove)
	require.Equal(t, uuid.Nil, gs.MustContinueWith)
}

func TestWinner(t *testing.T) {
	gs := stateWith(White)
	mustPlace(t, gs.Board, 5, 4, White)
	black := mustPlace(t, gs.Board, 0, 7, Black)

	_, over := gs.Winner()
	require.False(t, over, "both sides alive")

	require.NoError(t, gs.Board.RemovePiece(black))
	winner, over := gs.Winner()
	require.True(t, over)
	require.Equal(t, White, winner, "white wins with zero black pieces remaining")
}

func TestAllLegalMovesRespectsChainBinding(t *testing.T) {
	gs := stateWith(White)
	jumper := mustPlace(t, gs.Board, 5, 2, White)
	mustPlace(t, gs.Board, 9, 0, White)
	mustPlace(t, gs.Board, 4, 3, Black)
	mustPlace(t, gs.Board, 4, 5, Black)

	res := gs.MovePiece(jumper, Square{File: 3, Rank: 4})
	require.True(t, res.Success)
	require.True(t, res.MustContinue)

	for _, pm := range gs.AllLegalMoves() {
		require.Same(t, jumper, pm.Piece, "only the bound piece may move mid-chain")
		require.True(t, pm.Move.IsCapture())
	}
}

func TestHash(t *testing.T) {
	a := NewGameState(White)
	b := NewGameState(White)
	require.Equal(t, a.Hash(), b.Hash(), "identical positions share a hash")

	p, ok := a.Board.PieceAt(Square{File: 2, Rank: 3})
	require.True(t, ok)
	res := a.MovePiece(p, Square{File: 1, Rank: 4})
	require.True(t, res.Success)
	require.NotEqual(t, a.Hash(), b.Hash())
}

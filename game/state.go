package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"
)

// StateHash is a 64-bit digest of a position, used by callers to detect
// repeated positions.
type StateHash uint64

// FailureReason names the rule a rejected move violated. Rule violations
// are expected caller behavior and always surface as a failed MoveResult,
// never a panic.
type FailureReason string

const (
	ReasonNoSelection  FailureReason = "no_selection"
	ReasonWrongTurn    FailureReason = "wrong_turn"
	ReasonMustContinue FailureReason = "must_continue"
	ReasonOccupied     FailureReason = "occupied"
	ReasonMustCapture  FailureReason = "must_capture"
	ReasonIllegalMove  FailureReason = "illegal_move"
	ReasonNotPlayable  FailureReason = "not_playable"
)

var failureMessages = map[FailureReason]string{
	ReasonNoSelection:  "no piece selected",
	ReasonWrongTurn:    "it is not that side's turn",
	ReasonMustContinue: "the capture must continue with the same piece",
	ReasonOccupied:     "the destination square is occupied",
	ReasonMustCapture:  "a capture is available and must be played",
	ReasonIllegalMove:  "that piece cannot move there",
	ReasonNotPlayable:  "the destination is not a playable square",
}

// MoveResult is the outcome of one MovePiece call.
type MoveResult struct {
	Success      bool
	Captured     []Square // squares of the pieces removed by this ply
	BecameKing   bool
	MustContinue bool // the same piece has further captures and keeps the turn
	Reason       FailureReason
	Message      string
}

func failure(reason FailureReason) MoveResult {
	return MoveResult{Reason: reason, Message: failureMessages[reason]}
}

// GameState owns the board and the turn state for one game. It is not safe
// for concurrent use; the caller serializes turns.
type GameState struct {
	Board            *Board
	SideToMove       Side
	MustContinueWith uuid.UUID // uuid.Nil unless a capture chain is pending
	StartingSide     Side
}

// NewGameState sets up the opening position with starting to move first.
func NewGameState(starting Side) *GameState {
	return &GameState{
		Board:        SetupBoard(),
		SideToMove:   starting,
		StartingSide: starting,
	}
}

// Copy returns an independent copy of the game state.
func (gs *GameState) Copy() *GameState {
	return &GameState{
		Board:            gs.Board.Copy(),
		SideToMove:       gs.SideToMove,
		MustContinueWith: gs.MustContinueWith,
		StartingSide:     gs.StartingSide,
	}
}

// SideHasCapture reports whether any piece of side has a legal capture.
func (gs *GameState) SideHasCapture(side Side) bool {
	for _, p := range gs.Board.Pieces(side) {
		if len(gs.Board.CaptureSequences(p)) > 0 {
			return true
		}
	}
	return false
}

// LegalMoves returns the moves p may actually play this turn: the
// generator's output filtered by the forced-capture rule and by a pending
// capture chain. When any friendly piece can capture, pieces without a
// capture have no legal moves at all.
func (gs *GameState) LegalMoves(p *Piece) []Move {
	if p == nil || p.Owner != gs.SideToMove {
		return nil
	}
	if gs.MustContinueWith != uuid.Nil && p.ID != gs.MustContinueWith {
		return nil
	}
	caps := gs.Board.CaptureSequences(p)
	if len(caps) > 0 {
		return caps
	}
	if gs.SideHasCapture(gs.SideToMove) {
		return nil
	}
	return gs.Board.SimpleMoves(p)
}

// PieceMove pairs a piece with one of its legal moves.
type PieceMove struct {
	Piece *Piece
	Move  Move
}

// AllLegalMoves returns every legal move for the side to move.
func (gs *GameState) AllLegalMoves() []PieceMove {
	var out []PieceMove
	for _, p := range gs.Board.Pieces(gs.SideToMove) {
		for _, m := range gs.LegalMoves(p) {
			out = append(out, PieceMove{Piece: p, Move: m})
		}
	}
	return out
}

// MovePiece validates and applies one ply: moving p to dest. A capture
// chain is played hop by hop; dest is the landing square of a single jump.
// Validation happens entirely before any mutation, so a failed call leaves
// no partial change behind.
func (gs *GameState) MovePiece(p *Piece, dest Square) MoveResult {
	if p == nil {
		return failure(ReasonNoSelection)
	}
	if p.Owner != gs.SideToMove {
		return failure(ReasonWrongTurn)
	}
	if gs.MustContinueWith != uuid.Nil && p.ID != gs.MustContinueWith {
		return failure(ReasonMustContinue)
	}
	if !dest.OnBoard() || !dest.Playable() {
		return failure(ReasonNotPlayable)
	}
	if _, occupied := gs.Board.PieceAt(dest); occupied {
		return failure(ReasonOccupied)
	}

	if gs.SideHasCapture(gs.SideToMove) {
		caps := gs.Board.CaptureSequences(p)
		var chosen *Move
		for i := range caps {
			if caps[i].FirstHop() == dest {
				chosen = &caps[i]
				break
			}
		}
		if chosen == nil {
			return failure(ReasonMustCapture)
		}
		return gs.applyJump(p, dest, chosen.Captures[0])
	}

	for _, m := range gs.Board.SimpleMoves(p) {
		if m.To() == dest {
			return gs.applySimple(p, dest)
		}
	}
	return failure(ReasonIllegalMove)
}

func (gs *GameState) applySimple(p *Piece, dest Square) MoveResult {
	gs.Board.MovePieceTo(p, dest)
	result := MoveResult{Success: true}
	if p.Rank == Man && dest.Rank == p.Owner.crowningRank() {
		gs.Board.Promote(p)
		result.BecameKing = true
	}
	gs.endTurn()
	return result
}

func (gs *GameState) applyJump(p *Piece, dest, victimSq Square) MoveResult {
	victim, ok := gs.Board.PieceAt(victimSq)
	if !ok {
		panic(fmt.Sprintf("board corrupted: capture of empty square %v", victimSq))
	}
	gs.Board.MovePieceTo(p, dest)
	if err := gs.Board.RemovePiece(victim); err != nil {
		panic(fmt.Sprintf("board corrupted: %v", err))
	}
	result := MoveResult{Success: true, Captured: []Square{victimSq}}
	if p.Rank == Man && dest.Rank == p.Owner.crowningRank() {
		gs.Board.Promote(p)
		result.BecameKing = true
	}
	// the chain continues only if the same piece can capture again from
	// its new square, under its possibly promoted rank
	if len(gs.Board.CaptureSequences(p)) > 0 {
		gs.MustContinueWith = p.ID
		result.MustContinue = true
	} else {
		gs.endTurn()
	}
	return result
}

func (gs *GameState) endTurn() {
	gs.SideToMove = gs.SideToMove.Opponent()
	gs.MustContinueWith = uuid.Nil
}

// SkipTurn unconditionally passes the turn to the opponent and clears any
// pending capture chain. The engine does not detect the no-legal-moves
// condition itself; the caller invokes this as an escape valve when the
// side to move is blocked.
func (gs *GameState) SkipTurn() {
	gs.endTurn()
}

// Winner returns the winning side, if any. A side wins the instant the
// opponent has no pieces left.
func (gs *GameState) Winner() (Side, bool) {
	if gs.Board.Count(Black) == 0 {
		return White, true
	}
	if gs.Board.Count(White) == 0 {
		return Black, true
	}
	return White, false
}

// PieceCounts holds live piece totals per side.
type PieceCounts struct {
	Black int
	White int
}

// Counts returns the live piece totals.
func (gs *GameState) Counts() PieceCounts {
	return PieceCounts{
		Black: gs.Board.Count(Black),
		White: gs.Board.Count(White),
	}
}

// Hash digests the position: piece placement, side to move and any pending
// capture chain.
func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(gs.SideToMove))

	for _, side := range [2]Side{White, Black} {
		for _, p := range gs.Board.Pieces(side) {
			binary.Write(hasher, binary.LittleEndian, int64(p.Pos.File))
			binary.Write(hasher, binary.LittleEndian, int64(p.Pos.Rank))
			binary.Write(hasher, binary.LittleEndian, int64(p.Owner))
			binary.Write(hasher, binary.LittleEndian, int64(p.Rank))
		}
	}

	if gs.MustContinueWith != uuid.Nil {
		binary.Write(hasher, binary.LittleEndian, int64(1))
	}

	return StateHash(hasher.Sum64())
}

package game

// Move generation. The generator enumerates what a piece could do in
// isolation; side-wide forced-capture filtering happens in the rules
// engine.
//
// Capture sequences are found by pure recursion: each branch carries its
// own copy of the landing path and the captured-so-far set, so no search
// state is shared between branches. A square captured earlier in the chain
// is treated as vacated for the rest of that chain (the rules engine
// removes each victim as soon as its hop is played), and a piece is never
// captured twice because the scan treats its square as empty from then on.

// Moves returns every move the piece could play in isolation: all capture
// sequences if any exist, otherwise its simple moves. A piece with at
// least one capture has no simple moves, even in isolation.
func (b *Board) Moves(p *Piece) []Move {
	if caps := b.CaptureSequences(p); len(caps) > 0 {
		return caps
	}
	return b.SimpleMoves(p)
}

// SimpleMoves returns the piece's non-capturing moves. A man steps one
// square along either forward diagonal; a king slides any unobstructed
// distance along all four diagonals, stopping before the first occupied
// square.
func (b *Board) SimpleMoves(p *Piece) []Move {
	var moves []Move
	if p.Rank == Man {
		fwd := p.Owner.forward()
		for _, df := range [2]int{-1, 1} {
			sq := Square{File: p.Pos.File + df, Rank: p.Pos.Rank + fwd}
			if !sq.OnBoard() {
				continue
			}
			if _, occupied := b.bySquare[sq]; occupied {
				continue
			}
			moves = append(moves, Move{
				From:     p.Pos,
				Path:     []Square{sq},
				Promotes: sq.Rank == p.Owner.crowningRank(),
			})
		}
		return moves
	}
	for _, d := range diagonals {
		for n := 1; ; n++ {
			sq := p.Pos.step(d, n)
			if !sq.OnBoard() {
				break
			}
			if _, occupied := b.bySquare[sq]; occupied {
				break
			}
			moves = append(moves, Move{From: p.Pos, Path: []Square{sq}})
		}
	}
	return moves
}

// CaptureSequences returns every terminal capture sequence for the piece.
// Partial jumps that could be continued are not themselves returned; only
// the fully extended sequences are. Sequences of equal length are all
// returned, unranked.
//
// A man jumps an adjacent enemy piece to the empty square directly beyond
// it, in any of the four diagonal directions. A king scans along a
// diagonal to the first piece on the ray; if it is an enemy piece, every
// unobstructed empty square beyond it is a distinct landing option. A ray
// blocked first by a friendly piece yields nothing in that direction. A
// man that lands on its crowning row mid-sequence continues the chain
// under king rules.
func (b *Board) CaptureSequences(p *Piece) []Move {
	// the origin square is vacated the moment the piece jumps, so later
	// hops of the same chain scan straight through it
	vacated := map[Square]bool{p.Pos: true}
	return b.captureFrom(p.Pos, p.Pos, p.Rank, p.Owner, p.Rank == Man, nil, nil, vacated)
}

func (b *Board) captureFrom(origin, pos Square, rank Rank, owner Side, startedAsMan bool,
	path, captured []Square, taken map[Square]bool) []Move {

	var moves []Move
	for _, d := range diagonals {
		victim, ok := b.firstAlongRay(pos, d, rank, taken)
		if !ok || victim.Owner == owner {
			continue
		}
		for _, landing := range b.landingsBeyond(pos, d, victim.Pos, rank, taken) {
			nextRank := rank
			if rank == Man && landing.Rank == owner.crowningRank() {
				nextRank = King
			}
			nextTaken := make(map[Square]bool, len(taken)+1)
			for sq := range taken {
				nextTaken[sq] = true
			}
			nextTaken[victim.Pos] = true
			nextPath := append(append([]Square(nil), path...), landing)
			nextCaptured := append(append([]Square(nil), captured...), victim.Pos)
			moves = append(moves, b.captureFrom(origin, landing, nextRank, owner,
				startedAsMan, nextPath, nextCaptured, nextTaken)...)
		}
	}
	if len(moves) == 0 && len(captured) > 0 {
		// terminal branch: no further capture from here
		return []Move{{
			From:     origin,
			Path:     path,
			Captures: captured,
			Promotes: startedAsMan && rank == King,
		}}
	}
	return moves
}

// firstAlongRay finds the nearest piece along the diagonal d from pos. A
// man only looks at the adjacent square; a king scans to the board edge.
// Squares in taken were vacated earlier in the chain and are skipped.
func (b *Board) firstAlongRay(pos Square, d direction, rank Rank, taken map[Square]bool) (*Piece, bool) {
	limit := 1
	if rank == King {
		limit = BoardSize
	}
	for n := 1; n <= limit; n++ {
		sq := pos.step(d, n)
		if !sq.OnBoard() {
			return nil, false
		}
		if taken[sq] {
			continue
		}
		if p, occupied := b.bySquare[sq]; occupied {
			return p, true
		}
	}
	return nil, false
}

// landingsBeyond returns the legal landing squares past a jumped piece on
// victimSq. A man lands exactly one square beyond it; a king may land on
// any empty square beyond it up to the next obstruction.
func (b *Board) landingsBeyond(pos Square, d direction, victimSq Square, rank Rank, taken map[Square]bool) []Square {
	dist := victimSq.File - pos.File
	if dist < 0 {
		dist = -dist
	}
	var out []Square
	for n := dist + 1; ; n++ {
		sq := pos.step(d, n)
		if !sq.OnBoard() {
			break
		}
		if _, occupied := b.bySquare[sq]; occupied && !taken[sq] {
			break
		}
		out = append(out, sq)
		if rank == Man {
			break
		}
	}
	return out
}

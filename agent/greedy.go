package agent

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"draughts/engine"
	"draughts/game"
)

// scoring weights; the jitter stays below one point so it only breaks ties
const (
	captureWeight   = 10
	promotionWeight = 5
	kingWeight      = 1
	jitterSpan      = 0.5
)

// Greedy picks the highest-scoring legal move for its side, one ply at a
// time. A capture sequence is scored by its full capture count, so a
// longer chain always outranks a shorter one and any capture outranks a
// quiet move.
type Greedy struct {
	side  game.Side
	rng   *rand.Rand
	pacer pacer
}

// Option configures a Greedy agent.
type Option func(*Greedy)

// WithDelay inserts a cosmetic pause before each ply.
func WithDelay(d time.Duration) Option {
	return func(g *Greedy) { g.pacer.delay = d }
}

// WithSeed fixes the jitter source for reproducible games.
func WithSeed(seed uint64) Option {
	return func(g *Greedy) { g.rng = rand.New(rand.NewSource(seed)) }
}

// NewGreedy returns an agent playing side.
func NewGreedy(side game.Side, opts ...Option) *Greedy {
	g := &Greedy{
		side: side,
		rng:  rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Side returns the side this agent plays.
func (g *Greedy) Side() game.Side {
	return g.side
}

// TakeTurn plays plies until the turn passes to the opponent: one simple
// move, or a capture chain hop by hop (selection stays bound to the same
// piece by the engine). With no legal move at all it invokes SkipTurn.
func (g *Greedy) TakeTurn(eng engine.Engine) {
	for eng.CurrentSide() == g.side {
		if _, over := eng.CheckWinner(); over {
			return
		}
		pm, ok := g.chooseMove(eng.State())
		if !ok {
			log.Debug().Str("side", g.side.String()).Msg("no legal moves, skipping turn")
			eng.SkipTurn()
			return
		}
		g.pacer.pause()
		if err := eng.SelectPiece(pm.Piece.Pos); err != nil {
			log.Error().Err(err).Msg("agent selection rejected")
			return
		}
		result := eng.MovePiece(pm.Move.FirstHop())
		if !result.Success {
			log.Error().Str("reason", string(result.Reason)).Msg("agent move rejected")
			return
		}
		if !result.MustContinue {
			return
		}
	}
}

// chooseMove scores every legal move for the side to move and returns the
// best one. Ties are broken by the random jitter already folded into the
// score.
func (g *Greedy) chooseMove(state *game.GameState) (game.PieceMove, bool) {
	moves := state.AllLegalMoves()
	if len(moves) == 0 {
		return game.PieceMove{}, false
	}
	best := moves[0]
	bestScore := g.score(moves[0])
	for _, pm := range moves[1:] {
		if s := g.score(pm); s > bestScore {
			best, bestScore = pm, s
		}
	}
	return best, true
}

func (g *Greedy) score(pm game.PieceMove) float64 {
	score := float64(captureWeight * len(pm.Move.Captures))
	if pm.Move.Promotes {
		score += promotionWeight
	}
	if pm.Piece.Rank == game.King {
		score += kingWeight
	}
	return score + g.rng.Float64()*jitterSpan
}

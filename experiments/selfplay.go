package experiments

import (
	"time"

	"github.com/rs/zerolog/log"

	"draughts/agent"
	"draughts/engine"
	"draughts/game"
)

// repetitionLimit is how many times a position may recur before the game
// is scored as a draw. Greedy agents shuffle kings forever otherwise.
const repetitionLimit = 3

// Config controls one self-play experiment.
type Config struct {
	Games      int
	MaxPlies   int
	AgentDelay time.Duration
	Seed       uint64 // 0 picks a time-based seed
}

// Summary aggregates an experiment's outcome.
type Summary struct {
	Games []GameMetric
	Moves []MoveMetric
	Wins  map[string]int
	Draws int
}

// RunSelfPlay plays cfg.Games games of greedy agent vs greedy agent on one
// engine, reusing it across games so the starting side alternates.
func RunSelfPlay(cfg Config, opts ...engine.Option) Summary {
	eng := engine.NewLocalEngine(opts...)
	summary := Summary{Wins: make(map[string]int)}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	for i := 0; i < cfg.Games; i++ {
		if i > 0 {
			eng.InitializeBoard()
		}
		white := agent.NewGreedy(game.White,
			agent.WithSeed(seed+uint64(2*i)), agent.WithDelay(cfg.AgentDelay))
		black := agent.NewGreedy(game.Black,
			agent.WithSeed(seed+uint64(2*i+1)), agent.WithDelay(cfg.AgentDelay))

		metric, moves := runGame(eng, white, black, cfg.MaxPlies, i+1)
		summary.Games = append(summary.Games, metric)
		summary.Moves = append(summary.Moves, moves...)
		if metric.Winner != "" {
			summary.Wins[metric.Winner]++
			log.Info().Int("game", metric.ID).Str("winner", metric.Winner).
				Int("plies", metric.TotalPlies).Msg("game over")
		} else {
			summary.Draws++
			log.Info().Int("game", metric.ID).Int("plies", metric.TotalPlies).
				Msg("game drawn off")
		}
	}
	return summary
}

func runGame(eng *engine.LocalEngine, white, black *agent.Greedy, maxPlies, id int) (GameMetric, []MoveMetric) {
	getUpdate := eng.Updates()
	metric := GameMetric{
		ID:           id,
		StartingSide: eng.State().StartingSide,
		StartTime:    time.Now(),
	}
	seen := make(map[game.StateHash]int)
	var moves []MoveMetric

	ply := 0
	for ply < maxPlies {
		if winner, over := eng.CheckWinner(); over {
			metric.Winner = winner.String()
			break
		}
		hash := eng.State().Hash()
		seen[hash]++
		if seen[hash] >= repetitionLimit {
			metric.Drawn = true
			break
		}

		side := eng.CurrentSide()
		if side == game.White {
			white.TakeTurn(eng)
		} else {
			black.TakeTurn(eng)
		}

		for {
			u, ok := getUpdate()
			if !ok {
				break
			}
			ply++
			moves = append(moves, MoveMetric{
				Game:       id,
				Ply:        ply,
				Side:       u.Side,
				From:       u.From,
				To:         u.To,
				Captures:   len(u.Result.Captured),
				BecameKing: u.Result.BecameKing,
			})
		}
	}

	if winner, over := eng.CheckWinner(); over && metric.Winner == "" {
		metric.Winner = winner.String()
	}
	if metric.Winner == "" {
		metric.Drawn = true
	}
	metric.EndTime = time.Now()
	metric.Duration = metric.EndTime.Sub(metric.StartTime)
	metric.TotalPlies = ply
	return metric, moves
}

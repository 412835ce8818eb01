package agent

import (
	"time"

	"draughts/engine"
)

// Agent plays one full turn for its side through the public engine
// surface. An agent is just another caller of the same API the
// presentation layer uses: it reads state and proposes moves, it never
// mutates the board directly.
type Agent interface {
	TakeTurn(eng engine.Engine)
}

// pacer sleeps between an agent's plies so chained captures do not resolve
// instantaneously. Zero delay is the default.
type pacer struct {
	delay time.Duration
}

func (p pacer) pause() {
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
}

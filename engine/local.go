package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"draughts/game"
	"draughts/msgcat"
)

var (
	ErrEmptySquare  = errors.New("no piece on that square")
	ErrNotYourPiece = errors.New("that piece belongs to the opponent")
	ErrChainBound   = errors.New("a different piece is bound by the capture in progress")
)

const updateBuffer = 256

// Update describes one applied ply, for observers consuming the engine's
// update stream.
type Update struct {
	Side   game.Side
	From   game.Square
	To     game.Square
	Result game.MoveResult
}

// UpdateGetter returns the next pending update without blocking, or false
// when none is queued.
type UpdateGetter func() (Update, bool)

// LocalEngine owns one game and implements the Engine surface. Board
// mutation, validation and win checking are serialized by the caller; one
// logical turn completes before the next begins.
type LocalEngine struct {
	state     *game.GameState
	selected  *game.Piece
	nextStart game.Side
	catalog   *msgcat.Catalog
	updates   chan Update
}

// Option configures a LocalEngine.
type Option func(*LocalEngine)

// WithCatalog renders status and rule-violation text through cat instead
// of the built-in defaults.
func WithCatalog(cat *msgcat.Catalog) Option {
	return func(e *LocalEngine) { e.catalog = cat }
}

// NewLocalEngine returns an engine with the opening position set up.
// White starts the first game; the starting side alternates afterwards.
func NewLocalEngine(opts ...Option) *LocalEngine {
	e := &LocalEngine{nextStart: game.White}
	for _, opt := range opts {
		opt(e)
	}
	e.InitializeBoard()
	return e
}

// InitializeBoard resets the board and turn state and drops any selection
// and queued updates. Each call flips the starting side.
func (e *LocalEngine) InitializeBoard() {
	e.state = game.NewGameState(e.nextStart)
	e.nextStart = e.nextStart.Opponent()
	e.selected = nil
	if e.updates != nil {
		close(e.updates)
	}
	e.updates = make(chan Update, updateBuffer)
	log.Info().
		Str("starting_side", e.state.StartingSide.String()).
		Msg("board initialized")
}

// SelectPiece marks the piece on sq as the pending mover.
func (e *LocalEngine) SelectPiece(sq game.Square) error {
	p, ok := e.state.Board.PieceAt(sq)
	if !ok {
		return fmt.Errorf("select %v: %w", sq, ErrEmptySquare)
	}
	if p.Owner != e.state.SideToMove {
		return fmt.Errorf("select %v: %w", sq, ErrNotYourPiece)
	}
	if bound, ok := e.boundPiece(); ok && bound != p {
		return fmt.Errorf("select %v: %w", sq, ErrChainBound)
	}
	e.selected = p
	return nil
}

// DeselectPiece clears the selection.
func (e *LocalEngine) DeselectPiece() {
	e.selected = nil
}

// SelectedPiece returns the currently selected piece, if any.
func (e *LocalEngine) SelectedPiece() (*game.Piece, bool) {
	return e.selected, e.selected != nil
}

// IsSelectable reports whether the piece on sq may be selected now.
func (e *LocalEngine) IsSelectable(sq game.Square) bool {
	p, ok := e.state.Board.PieceAt(sq)
	if !ok || p.Owner != e.state.SideToMove {
		return false
	}
	if bound, ok := e.boundPiece(); ok {
		return bound == p
	}
	return true
}

// SelectablePieces lists the squares of every piece the side to move may
// select: the bound piece mid-chain, otherwise every piece with at least
// one legal move.
func (e *LocalEngine) SelectablePieces() []game.Square {
	if bound, ok := e.boundPiece(); ok {
		return []game.Square{bound.Pos}
	}
	var squares []game.Square
	for _, p := range e.state.Board.Pieces(e.state.SideToMove) {
		if len(e.state.LegalMoves(p)) > 0 {
			squares = append(squares, p.Pos)
		}
	}
	return squares
}

func (e *LocalEngine) boundPiece() (*game.Piece, bool) {
	if e.state.MustContinueWith == uuid.Nil {
		return nil, false
	}
	return e.state.Board.PieceByID(e.state.MustContinueWith)
}

// MovePiece plays one ply with the selected piece. On success the
// selection survives only while the same piece must continue capturing.
func (e *LocalEngine) MovePiece(dest game.Square) game.MoveResult {
	from := game.Square{}
	if e.selected != nil {
		from = e.selected.Pos
	}
	result := e.state.MovePiece(e.selected, dest)
	if !result.Success {
		result.Message = e.ruleMessage(result)
		log.Debug().
			Str("reason", string(result.Reason)).
			Str("dest", dest.String()).
			Msg("move rejected")
		return result
	}

	update := Update{Side: e.selected.Owner, From: from, To: dest, Result: result}
	select {
	case e.updates <- update:
	default:
	}

	log.Debug().
		Str("side", update.Side.String()).
		Str("from", from.String()).
		Str("to", dest.String()).
		Int("captured", len(result.Captured)).
		Bool("became_king", result.BecameKing).
		Bool("must_continue", result.MustContinue).
		Msg("move applied")

	if !result.MustContinue {
		e.selected = nil
	}
	return result
}

// SkipTurn passes the turn. Advisory: the caller decides that the side to
// move is blocked; the engine does not detect it.
func (e *LocalEngine) SkipTurn() {
	side := e.state.SideToMove
	e.state.SkipTurn()
	e.selected = nil
	log.Debug().Str("side", side.String()).Msg("turn skipped")
}

// CheckWinner returns the winning side, if any.
func (e *LocalEngine) CheckWinner() (game.Side, bool) {
	return e.state.Winner()
}

// PieceCounts returns live piece totals per side.
func (e *LocalEngine) PieceCounts() game.PieceCounts {
	return e.state.Counts()
}

// CurrentSide returns the side to move.
func (e *LocalEngine) CurrentSide() game.Side {
	return e.state.SideToMove
}

// State exposes the engine's game state for read-only callers.
func (e *LocalEngine) State() *game.GameState {
	return e.state
}

// Updates returns a non-blocking getter over the engine's update stream.
// Updates are dropped, not blocked on, when no observer keeps up.
func (e *LocalEngine) Updates() UpdateGetter {
	ch := e.updates
	return func() (Update, bool) {
		select {
		case u, ok := <-ch:
			if !ok {
				return Update{}, false
			}
			return u, true
		default:
			return Update{}, false
		}
	}
}

// StatusMessage describes the current turn state in one human-readable
// line: the winner once one side is out of pieces, the pending capture
// chain if one is in progress, otherwise whose turn it is.
func (e *LocalEngine) StatusMessage() string {
	if winner, over := e.state.Winner(); over {
		return e.render("status.winner", map[string]any{"Side": winner.String()},
			fmt.Sprintf("%s wins", winner))
	}
	if bound, ok := e.boundPiece(); ok {
		return e.render("status.must_continue",
			map[string]any{"Side": bound.Owner.String(), "Square": bound.Pos.String()},
			fmt.Sprintf("%s must continue the capture with the piece on %s", bound.Owner, bound.Pos))
	}
	side := e.state.SideToMove
	return e.render("status.turn", map[string]any{"Side": side.String()},
		fmt.Sprintf("%s to move", side))
}

func (e *LocalEngine) ruleMessage(result game.MoveResult) string {
	return e.render("rule."+string(result.Reason), nil, result.Message)
}

func (e *LocalEngine) render(key string, data map[string]any, fallback string) string {
	if e.catalog == nil {
		return fallback
	}
	msg, err := e.catalog.Render(key, data)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("message render failed")
		return fallback
	}
	return msg
}

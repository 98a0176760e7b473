// Package local runs a game in process, with an optional computer opponent.
package local

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"goban/engine"
	"goban/opponent"
	"goban/rules"
	"goban/types"
)

// Scheduler runs fn once after d. The returned function cancels it.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

type timerScheduler struct{}

func (timerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Option configures an Engine.
type Option func(*Engine)

// WithScheduler replaces the timer used for computer replies.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.scheduler = s }
}

// WithSelector replaces the selector built from the configured strategy.
func WithSelector(s opponent.Selector) Option {
	return func(e *Engine) { e.selector = s }
}

// Engine implements engine.GameEngine on top of rules.GameState. All access
// to the game goes through mu; callbacks run after it is released.
type Engine struct {
	config    engine.GameConfig
	id        xid.ID
	logger    zerolog.Logger
	scheduler Scheduler
	selector  opponent.Selector

	state   *rules.GameState
	history []engine.MoveEntry

	// pending is set while a computer reply is scheduled; generation is
	// bumped on reset so that a reply scheduled for an older game is dropped.
	pending    bool
	cancel     func()
	generation int

	moveCallback func(ev engine.MoveEvent)

	mu sync.Mutex
}

var _ engine.GameEngine = (*Engine)(nil)

// New creates an engine for cfg. The game starts with Start.
func New(cfg engine.GameConfig, opts ...Option) (*Engine, error) {
	sel, err := opponent.New(cfg.Opponent)
	if err != nil {
		return nil, err
	}
	if sel != nil && cfg.ComputerColor != rules.Black && cfg.ComputerColor != rules.White {
		return nil, fmt.Errorf("%w: computer color %v", rules.ErrNoColor, cfg.ComputerColor)
	}
	e := &Engine{
		config:    cfg,
		id:        xid.New(),
		scheduler: timerScheduler{},
		selector:  sel,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = log.With().Str("game", e.id.String()).Logger()
	return e, nil
}

// ID returns the identifier used in log lines for this game.
func (e *Engine) ID() string {
	return e.id.String()
}

// Start creates the board and lets the computer open if it plays Black.
func (e *Engine) Start() error {
	state, err := rules.NewGame(e.config.BoardSize)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.state = state
	e.history = nil
	e.logger.Info().
		Int("size", e.config.BoardSize).
		Str("opponent", e.opponentName()).
		Msg("game started")
	schedule := e.computerToMoveLocked()
	if schedule {
		e.pending = true
	}
	gen := e.generation
	e.mu.Unlock()

	if schedule {
		e.scheduleReply(gen)
	}
	return nil
}

// GetBoardState returns a snapshot of the current position.
func (e *Engine) GetBoardState() *types.BoardState {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return types.NewBoardState(e.config.BoardSize)
	}
	return e.snapshotLocked()
}

// PlayMove places a stone for the side to move.
func (e *Engine) PlayMove(x, y int) error {
	pos := rules.Position{X: x, Y: y}

	e.mu.Lock()
	if e.state == nil {
		e.mu.Unlock()
		return engine.ErrNotStarted
	}
	// A computer that found no empty cell has given up its turn; the
	// attempt goes through so the person is told the cell is taken.
	computerStuck := e.computerToMoveLocked() && !e.pending && e.state.Board().Count(rules.Empty) == 0
	if e.pending || (e.computerToMoveLocked() && !computerStuck) {
		e.mu.Unlock()
		return engine.ErrNotYourTurn
	}

	ev, err := e.applyLocked(pos)
	if err != nil {
		e.logger.Debug().Err(err).Int("x", x).Int("y", y).Msg("move rejected")
		e.mu.Unlock()
		return err
	}
	schedule := e.computerToMoveLocked()
	if schedule {
		e.pending = true
	}
	gen := e.generation
	callback := e.moveCallback
	e.mu.Unlock()

	if callback != nil {
		callback(ev)
	}
	if schedule {
		e.scheduleReply(gen)
	}
	return nil
}

// scheduleReply defers the computer's move. It must be called without the lock.
func (e *Engine) scheduleReply(gen int) {
	cancel := e.scheduler.Schedule(e.config.ReplyDelay, func() {
		e.playComputerMove(gen)
	})

	e.mu.Lock()
	if e.generation == gen && e.pending {
		e.cancel = cancel
	}
	e.mu.Unlock()
}

// playComputerMove applies exactly one computer move and hands the turn back.
func (e *Engine) playComputerMove(gen int) {
	e.mu.Lock()
	if gen != e.generation || !e.pending {
		e.mu.Unlock()
		return
	}
	e.pending = false
	e.cancel = nil

	pos, ok := e.selector.Select(e.state)
	if !ok {
		e.logger.Info().Msg("board is full, computer cannot move")
		e.mu.Unlock()
		return
	}
	ev, err := e.applyLocked(pos)
	if err != nil {
		// a selector only returns empty cells; anything else is a bug
		e.logger.Error().Err(err).Msg("computer move rejected")
		e.mu.Unlock()
		return
	}
	callback := e.moveCallback
	e.mu.Unlock()

	if callback != nil {
		callback(ev)
	}
}

// applyLocked plays pos for the side to move and records it.
func (e *Engine) applyLocked(pos rules.Position) (engine.MoveEvent, error) {
	color := e.state.Turn()
	res, err := e.state.PlaceStone(pos, color)
	if err != nil {
		return engine.MoveEvent{}, err
	}

	e.history = append(e.history, engine.MoveEntry{
		X:        pos.X,
		Y:        pos.Y,
		Color:    int(color),
		Captured: len(res.Removed),
	})
	entry := e.logger.Info().
		Int("move", e.state.MoveNumber()).
		Stringer("color", color).
		Str("vertex", engine.Vertex(pos.X, pos.Y, e.state.Size()))
	if len(res.Removed) > 0 {
		entry = entry.Int("captured", len(res.Removed))
	}
	entry.Msg("stone placed")

	return engine.MoveEvent{
		Pos:     pos,
		Color:   color,
		Removed: res.Removed,
		State:   e.snapshotLocked(),
	}, nil
}

// computerToMoveLocked reports whether the side to move is the computer's.
func (e *Engine) computerToMoveLocked() bool {
	return e.selector != nil && e.state != nil && e.state.Turn() == e.config.ComputerColor
}

// IsMyTurn returns true if a person may place the next stone.
func (e *Engine) IsMyTurn() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state != nil && !e.pending && !e.computerToMoveLocked()
}

// GetPlayerColor returns the color a person plays next, or rules.Empty while
// the computer is to move.
func (e *Engine) GetPlayerColor() rules.Color {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil || e.pending || e.computerToMoveLocked() {
		return rules.Empty
	}
	return e.state.Turn()
}

// OnMove registers a callback for when a move is played.
func (e *Engine) OnMove(callback func(ev engine.MoveEvent)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.moveCallback = callback
}

// History returns a copy of the move list.
func (e *Engine) History() []engine.MoveEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	history := make([]engine.MoveEntry, len(e.history))
	copy(history, e.history)
	return history
}

// Reset drops any pending reply and starts a fresh game of the same size.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.dropPendingLocked()
	if e.state != nil {
		e.state.Reset()
	}
	e.history = nil
	e.logger.Info().Msg("game reset")
	schedule := e.computerToMoveLocked()
	if schedule {
		e.pending = true
	}
	gen := e.generation
	e.mu.Unlock()

	if schedule {
		e.scheduleReply(gen)
	}
}

// Close cancels any pending computer move.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dropPendingLocked()
	e.logger.Debug().Msg("game closed")
}

func (e *Engine) dropPendingLocked() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.pending = false
	e.generation++
}

func (e *Engine) opponentName() string {
	if e.selector == nil {
		return opponent.None
	}
	return e.config.Opponent
}

// snapshotLocked copies the game into a BoardState.
func (e *Engine) snapshotLocked() *types.BoardState {
	bs := &types.BoardState{
		GameID:       e.id.String(),
		MoveNumber:   e.state.MoveNumber(),
		PlayerToMove: int(e.state.Turn()),
		Board:        e.state.Board().Rows(),
		LastMove:     types.BoardPos{X: -1, Y: -1},
	}
	bs.Captures.Black = e.state.Captured(rules.Black)
	bs.Captures.White = e.state.Captured(rules.White)
	if last, ok := e.state.LastMove(); ok {
		bs.LastMove = types.BoardPos{X: last.X, Y: last.Y}
	}
	return bs
}

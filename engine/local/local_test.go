package local

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"goban/engine"
	"goban/opponent"
	"goban/rules"
)

// inlineScheduler runs the reply immediately, inside the triggering call.
type inlineScheduler struct{}

func (inlineScheduler) Schedule(_ time.Duration, fn func()) func() {
	fn()
	return func() {}
}

// manualScheduler holds replies until the test fires them.
type manualScheduler struct {
	mu        sync.Mutex
	queued    []func()
	cancelled int
}

func (s *manualScheduler) Schedule(_ time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queued = append(s.queued, fn)
	return func() {
		s.mu.Lock()
		s.cancelled++
		s.mu.Unlock()
	}
}

func (s *manualScheduler) fireAll() {
	s.mu.Lock()
	queued := s.queued
	s.queued = nil
	s.mu.Unlock()
	for _, fn := range queued {
		fn()
	}
}

func (s *manualScheduler) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queued)
}

func newEngine(t *testing.T, cfg engine.GameConfig, opts ...Option) *Engine {
	t.Helper()
	e, err := New(cfg, opts...)
	require.NoError(t, err)
	require.NoError(t, e.Start())
	t.Cleanup(e.Close)
	return e
}

func hotSeat(size int) engine.GameConfig {
	return engine.GameConfig{BoardSize: size, Opponent: opponent.None}
}

func vsComputer(size int, computer rules.Color) engine.GameConfig {
	return engine.GameConfig{BoardSize: size, Opponent: opponent.First, ComputerColor: computer}
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(engine.GameConfig{BoardSize: 9, Opponent: "minimax"})
	require.Error(t, err)

	_, err = New(engine.GameConfig{BoardSize: 9, Opponent: opponent.First, ComputerColor: rules.Empty})
	require.ErrorIs(t, err, rules.ErrNoColor)

	e, err := New(engine.GameConfig{BoardSize: 0, Opponent: opponent.None})
	require.NoError(t, err)
	require.ErrorIs(t, e.Start(), rules.ErrBoardSize)
}

func TestHotSeatAlternates(t *testing.T) {
	e := newEngine(t, hotSeat(9))

	var events []engine.MoveEvent
	e.OnMove(func(ev engine.MoveEvent) { events = append(events, ev) })

	require.True(t, e.IsMyTurn())
	require.Equal(t, rules.Black, e.GetPlayerColor())
	require.NoError(t, e.PlayMove(2, 2))
	require.Equal(t, rules.White, e.GetPlayerColor())
	require.NoError(t, e.PlayMove(3, 3))
	require.Equal(t, rules.Black, e.GetPlayerColor())

	require.Len(t, events, 2)
	require.Equal(t, rules.Black, events[0].Color)
	require.Equal(t, rules.White, events[1].Color)
	require.Equal(t, 2, events[1].State.MoveNumber)
	require.Equal(t, 1, events[1].State.PlayerToMove)
	require.Equal(t, 2, events[1].State.Board[3][3])
}

func TestOccupiedMoveIsRejected(t *testing.T) {
	e := newEngine(t, hotSeat(9))
	require.NoError(t, e.PlayMove(4, 4))

	err := e.PlayMove(4, 4)
	require.ErrorIs(t, err, rules.ErrOccupied)
	require.Equal(t, rules.White, e.GetPlayerColor(), "turn must not advance")
	require.Len(t, e.History(), 1)
}

func TestCaptureIsReported(t *testing.T) {
	e := newEngine(t, hotSeat(9))
	var last engine.MoveEvent
	e.OnMove(func(ev engine.MoveEvent) { last = ev })

	for _, m := range [][2]int{{0, 1}, {1, 1}, {1, 0}, {8, 8}, {1, 2}, {8, 7}, {2, 1}} {
		require.NoError(t, e.PlayMove(m[0], m[1]))
	}

	require.Equal(t, []rules.Position{{X: 1, Y: 1}}, last.Removed)
	bs := e.GetBoardState()
	require.Equal(t, 0, bs.Board[1][1])
	require.Equal(t, 1, bs.Captures.White)
	require.Equal(t, 0, bs.Captures.Black)
	require.Equal(t, 2, bs.LastMove.X)
	require.Equal(t, 1, bs.LastMove.Y)
	require.Equal(t, e.ID(), bs.GameID)

	history := e.History()
	require.Len(t, history, 7)
	require.Equal(t, 1, history[6].Captured)
}

func TestComputerRepliesOnce(t *testing.T) {
	e := newEngine(t, vsComputer(9, rules.White), WithScheduler(inlineScheduler{}))

	var colors []rules.Color
	e.OnMove(func(ev engine.MoveEvent) { colors = append(colors, ev.Color) })

	require.NoError(t, e.PlayMove(4, 4))
	require.Equal(t, []rules.Color{rules.Black, rules.White}, colors)

	bs := e.GetBoardState()
	require.Equal(t, 2, bs.Board[0][0], "first empty cell goes to the computer")
	require.Equal(t, 1, bs.PlayerToMove)
	require.True(t, e.IsMyTurn())
}

func TestOnlyOneMoveInFlight(t *testing.T) {
	sched := &manualScheduler{}
	e := newEngine(t, vsComputer(9, rules.White), WithScheduler(sched))

	require.NoError(t, e.PlayMove(4, 4))
	require.False(t, e.IsMyTurn())
	require.Equal(t, rules.Empty, e.GetPlayerColor())
	require.ErrorIs(t, e.PlayMove(5, 5), engine.ErrNotYourTurn)
	require.Equal(t, 1, sched.len())

	sched.fireAll()
	require.True(t, e.IsMyTurn())
	require.Equal(t, 2, e.GetBoardState().MoveNumber)

	// a reply that fires twice is applied once
	require.NoError(t, e.PlayMove(5, 5))
	reply := sched.queued[0]
	sched.fireAll()
	reply()
	require.Equal(t, 4, e.GetBoardState().MoveNumber)
}

func TestComputerOpensAsBlack(t *testing.T) {
	e := newEngine(t, vsComputer(9, rules.Black), WithScheduler(inlineScheduler{}))

	bs := e.GetBoardState()
	require.Equal(t, 1, bs.Board[0][0])
	require.Equal(t, 1, bs.MoveNumber)
	require.Equal(t, rules.White, e.GetPlayerColor())
}

func TestResetCancelsPendingReply(t *testing.T) {
	sched := &manualScheduler{}
	e := newEngine(t, vsComputer(9, rules.White), WithScheduler(sched))

	require.NoError(t, e.PlayMove(4, 4))
	require.Equal(t, 1, sched.len())

	e.Reset()
	require.Equal(t, 1, sched.cancelled)
	require.True(t, e.IsMyTurn())

	sched.fireAll() // the cancelled reply belongs to the old game
	bs := e.GetBoardState()
	require.Equal(t, 0, bs.MoveNumber)
	require.Equal(t, 81, bs.EmptyCount())
	require.False(t, bs.HasLastMove())
	require.Empty(t, e.History())
}

func TestFullBoardComputerStops(t *testing.T) {
	e := newEngine(t, vsComputer(1, rules.White), WithScheduler(inlineScheduler{}))

	require.NoError(t, e.PlayMove(0, 0))
	bs := e.GetBoardState()
	require.Equal(t, 1, bs.MoveNumber)
	require.Equal(t, 2, bs.PlayerToMove)
	require.False(t, e.IsMyTurn())

	// Further attempts on the full board report the taken cell.
	require.ErrorIs(t, e.PlayMove(0, 0), rules.ErrOccupied)
	bs = e.GetBoardState()
	require.Equal(t, 1, bs.MoveNumber)
	require.Equal(t, 2, bs.PlayerToMove)
}

func TestPlayBeforeStart(t *testing.T) {
	e, err := New(hotSeat(9))
	require.NoError(t, err)
	require.ErrorIs(t, e.PlayMove(0, 0), engine.ErrNotStarted)
}

func TestRandomOpponentWithTimer(t *testing.T) {
	cfg := vsComputer(9, rules.White)
	cfg.Opponent = opponent.Random
	cfg.ReplyDelay = time.Millisecond
	e := newEngine(t, cfg, WithSelector(opponent.NewRandom(3)))

	done := make(chan engine.MoveEvent, 2)
	e.OnMove(func(ev engine.MoveEvent) { done <- ev })

	require.NoError(t, e.PlayMove(4, 4))
	require.Equal(t, rules.Black, (<-done).Color)

	select {
	case ev := <-done:
		require.Equal(t, rules.White, ev.Color)
		require.NotEqual(t, rules.Position{X: 4, Y: 4}, ev.Pos)
	case <-time.After(5 * time.Second):
		t.Fatal("computer did not reply")
	}
	require.Eventually(t, e.IsMyTurn, time.Second, time.Millisecond)
}

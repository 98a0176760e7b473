package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newTestGame(t *testing.T, size int) *GameState {
	t.Helper()
	g, err := NewGame(size)
	require.NoError(t, err)
	return g
}

// place puts stones without caring about the turn.
func place(t *testing.T, g *GameState, c Color, positions ...Position) {
	t.Helper()
	for _, p := range positions {
		_, err := g.PlaceStone(p, c)
		require.NoError(t, err, "placing %s at %v", c, p)
	}
}

func TestNewGame(t *testing.T) {
	tests := []struct {
		name string
		size int
		want error
	}{
		{"zero size", 0, ErrBoardSize},
		{"negative size", -3, ErrBoardSize},
		{"single cell", 1, nil},
		{"9x9", 9, nil},
		{"19x19", 19, nil},
		{"unusual 25x25", 25, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGame(tt.size)
			if tt.want != nil {
				require.ErrorIs(t, err, tt.want)
				require.Nil(t, g)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.size, g.Size())
			require.Equal(t, Black, g.Turn())
			require.Equal(t, 0, g.Captured(Black))
			require.Equal(t, 0, g.Captured(White))
			require.Equal(t, tt.size*tt.size, g.Board().Count(Empty))
			_, ok := g.LastMove()
			require.False(t, ok)
		})
	}
}

func TestPlaceStoneErrors(t *testing.T) {
	g := newTestGame(t, 9)
	_, err := g.Play(Position{4, 4})
	require.NoError(t, err)

	tests := []struct {
		name  string
		pos   Position
		color Color
		want  error
	}{
		{"occupied by black", Position{4, 4}, White, ErrOccupied},
		{"occupied, same color", Position{4, 4}, Black, ErrOccupied},
		{"x below zero", Position{-1, 0}, White, ErrOutOfBounds},
		{"y past edge", Position{0, 9}, White, ErrOutOfBounds},
		{"empty color", Position{0, 0}, Empty, ErrNoColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := g.Board().Rows()
			turn := g.Turn()
			moves := g.MoveNumber()

			_, err := g.PlaceStone(tt.pos, tt.color)
			require.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)

			require.Equal(t, before, g.Board().Rows(), "board must not change")
			require.Equal(t, turn, g.Turn(), "turn must not advance")
			require.Equal(t, moves, g.MoveNumber())
		})
	}
}

func TestTurnAlternation(t *testing.T) {
	g := newTestGame(t, 9)
	want := Black
	for i, p := range []Position{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}} {
		require.Equal(t, want, g.Turn(), "before move %d", i)
		_, err := g.Play(p)
		require.NoError(t, err)
		require.Equal(t, want, g.At(p))
		want = want.Opponent()

		// a rejected move in between never flips the turn
		_, err = g.Play(p)
		require.ErrorIs(t, err, ErrOccupied)
		require.Equal(t, want, g.Turn())
	}
	require.Equal(t, 5, g.MoveNumber())
}

func TestSingleStoneCapture(t *testing.T) {
	g := newTestGame(t, 9)
	moves := []Position{
		{0, 1}, // B
		{1, 1}, // W, about to be surrounded
		{1, 0}, // B
		{8, 8}, // W elsewhere
		{1, 2}, // B
		{8, 7}, // W elsewhere
	}
	for _, p := range moves {
		_, err := g.Play(p)
		require.NoError(t, err)
	}
	require.True(t, g.LibertyCheck(Position{1, 1}, White))

	res, err := g.Play(Position{2, 1})
	require.NoError(t, err)
	require.Equal(t, []Position{{1, 1}}, res.Removed)
	require.Equal(t, Empty, g.At(Position{1, 1}))
	require.Equal(t, 1, g.Captured(White))
	require.Equal(t, 0, g.Captured(Black))
	require.Equal(t, 1, res.Captures[White])
	require.Equal(t, White, g.Turn())

	last, ok := g.LastMove()
	require.True(t, ok)
	require.Equal(t, Position{2, 1}, last)
}

func TestThreeSidedStoneIsNotCaptured(t *testing.T) {
	g := newTestGame(t, 9)
	place(t, g, White, Position{1, 1})
	place(t, g, Black, Position{1, 0}, Position{0, 1}, Position{1, 2})

	require.Equal(t, White, g.At(Position{1, 1}))
	require.True(t, g.LibertyCheck(Position{1, 1}, White), "(2,1) is still empty")
	require.Equal(t, 0, g.Captured(White))
}

func TestGroupCaptureCountsEveryStone(t *testing.T) {
	g := newTestGame(t, 9)
	group := []Position{{3, 3}, {4, 3}, {5, 3}, {5, 4}}
	place(t, g, White, group...)
	surround := []Position{
		{3, 2}, {4, 2}, {5, 2},
		{2, 3}, {6, 3},
		{3, 4}, {4, 4}, {6, 4},
	}
	place(t, g, Black, surround...)
	require.True(t, g.LibertyCheck(Position{3, 3}, White))

	emptyBefore := g.Board().Count(Empty)
	res, err := g.PlaceStone(Position{5, 5}, Black)
	require.NoError(t, err)

	require.ElementsMatch(t, group, res.Removed)
	require.Equal(t, len(group), g.Captured(White))
	require.Equal(t, emptyBefore-1+len(group), g.Board().Count(Empty))
	for _, p := range group {
		require.Equal(t, Empty, g.At(p))
	}
}

func TestCaptureOnEdgeAndCorner(t *testing.T) {
	g := newTestGame(t, 9)
	place(t, g, Black, Position{0, 0})
	place(t, g, White, Position{1, 0})
	res, err := g.PlaceStone(Position{0, 1}, White)
	require.NoError(t, err)
	require.Equal(t, []Position{{0, 0}}, res.Removed)
	require.Equal(t, 1, g.Captured(Black))
}

func TestCaptureSeveralGroupsAtOnce(t *testing.T) {
	g := newTestGame(t, 5)
	// two separate white stones sharing their last liberty at (2,0)
	place(t, g, White, Position{1, 0}, Position{3, 0})
	place(t, g, Black, Position{0, 0}, Position{1, 1}, Position{3, 1}, Position{4, 0})

	res, err := g.PlaceStone(Position{2, 0}, Black)
	require.NoError(t, err)
	require.Len(t, res.Removed, 2)
	require.ElementsMatch(t, []Position{{1, 0}, {3, 0}}, res.Removed)
	require.Equal(t, 2, g.Captured(White))
}

func TestSelfCaptureIsAllowed(t *testing.T) {
	g := newTestGame(t, 9)
	place(t, g, White, Position{1, 0}, Position{0, 1})

	res, err := g.PlaceStone(Position{0, 0}, Black)
	require.NoError(t, err)
	require.Empty(t, res.Removed)
	require.Equal(t, Black, g.At(Position{0, 0}), "the stone stays on the board")
	require.False(t, g.LibertyCheck(Position{0, 0}, Black))
	require.Equal(t, 0, g.Captured(Black))
}

func TestCaptureBeforeSelfAtari(t *testing.T) {
	g := newTestGame(t, 9)
	// white (0,0) with one liberty at (0,1); black plays there and has no
	// liberty of its own until the capture frees (0,0)
	place(t, g, White, Position{0, 0}, Position{0, 2}, Position{1, 1})
	place(t, g, Black, Position{1, 0})

	res, err := g.PlaceStone(Position{0, 1}, Black)
	require.NoError(t, err)
	require.Equal(t, []Position{{0, 0}}, res.Removed)
	require.True(t, g.LibertyCheck(Position{0, 1}, Black))
}

func TestLibertyCheck(t *testing.T) {
	t.Run("isolated stone", func(t *testing.T) {
		g := newTestGame(t, 9)
		place(t, g, Black, Position{4, 4})
		require.True(t, g.LibertyCheck(Position{4, 4}, Black))
	})

	t.Run("stone surrounded on four sides", func(t *testing.T) {
		g := newTestGame(t, 9)
		place(t, g, White, Position{4, 3}, Position{4, 5}, Position{3, 4}, Position{5, 4})
		// black plays into the hole; nothing stops the self-capture
		place(t, g, Black, Position{4, 4})
		require.Equal(t, Black, g.At(Position{4, 4}))
		require.False(t, g.LibertyCheck(Position{4, 4}, Black))
	})

	t.Run("seed of another color", func(t *testing.T) {
		g := newTestGame(t, 9)
		place(t, g, Black, Position{4, 4})
		require.False(t, g.LibertyCheck(Position{4, 4}, White))
		require.False(t, g.LibertyCheck(Position{0, 0}, Black))
		require.False(t, g.LibertyCheck(Position{0, 0}, Empty))
	})

	t.Run("two connected stones share liberties", func(t *testing.T) {
		g := newTestGame(t, 9)
		place(t, g, White, Position{4, 4}, Position{5, 4})
		// every neighbour of (4,4) except its partner
		place(t, g, Black, Position{4, 3}, Position{4, 5}, Position{3, 4})
		require.True(t, g.LibertyCheck(Position{4, 4}, White), "partner still has liberties")
		require.ElementsMatch(t, []Position{{4, 4}, {5, 4}}, g.Group(Position{4, 4}))

		place(t, g, Black, Position{5, 3}, Position{5, 5})
		require.True(t, g.LibertyCheck(Position{4, 4}, White))
		require.True(t, g.LibertyCheck(Position{5, 4}, White))

		res, err := g.PlaceStone(Position{6, 4}, Black)
		require.NoError(t, err)
		require.Len(t, res.Removed, 2)
	})
}

func TestLibertyCheckWholeBoardGroup(t *testing.T) {
	g := newTestGame(t, 19)
	for y := 0; y < 19; y++ {
		for x := 0; x < 19; x++ {
			place(t, g, Black, Position{x, y})
		}
	}
	require.False(t, g.LibertyCheck(Position{9, 9}, Black))
	require.Len(t, g.Group(Position{0, 0}), 19*19)
}

func TestLibertyCheckRingGroup(t *testing.T) {
	g := newTestGame(t, 5)
	// a closed ring of black around the centre point
	ring := []Position{
		{1, 1}, {2, 1}, {3, 1},
		{1, 2}, {3, 2},
		{1, 3}, {2, 3}, {3, 3},
	}
	place(t, g, Black, ring...)
	require.True(t, g.LibertyCheck(Position{1, 1}, Black))
	require.Len(t, g.Group(Position{2, 3}), len(ring))
}

func TestCaptureGroupIdempotent(t *testing.T) {
	g := newTestGame(t, 9)
	place(t, g, White, Position{2, 2}, Position{2, 3})

	removed := g.CaptureGroup(Position{2, 2}, White)
	require.Len(t, removed, 2)
	require.Equal(t, 2, g.Captured(White))
	board := g.Board().Rows()

	require.Empty(t, g.CaptureGroup(Position{2, 2}, White))
	require.Empty(t, g.CaptureGroup(Position{2, 3}, White))
	require.Equal(t, 2, g.Captured(White))
	require.Equal(t, board, g.Board().Rows())
}

func TestReset(t *testing.T) {
	g := newTestGame(t, 9)
	for _, p := range []Position{{0, 1}, {1, 1}, {1, 0}, {8, 8}, {1, 2}, {8, 7}, {2, 1}} {
		_, err := g.Play(p)
		require.NoError(t, err)
	}
	require.Equal(t, 1, g.Captured(White))

	g.Reset()
	require.Equal(t, 9, g.Size())
	require.Equal(t, Black, g.Turn())
	require.Equal(t, map[Color]int{Black: 0, White: 0}, g.Captures())
	require.Equal(t, 81, g.Board().Count(Empty))
	require.Equal(t, 0, g.MoveNumber())
	_, ok := g.LastMove()
	require.False(t, ok)
}

func TestRandomPlayResolvesAdjacentCaptures(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 20; game++ {
		size := []int{5, 9, 13}[game%3]
		g := newTestGame(t, size)
		for move := 0; move < size*size*2; move++ {
			pos := Position{rng.Intn(size), rng.Intn(size)}
			mover := g.Turn()
			captured := g.Captured(mover.Opponent())
			emptyBefore := g.Board().Count(Empty)

			res, err := g.Play(pos)
			if err != nil {
				require.ErrorIs(t, err, ErrOccupied)
				require.Equal(t, mover, g.Turn())
				continue
			}
			for _, n := range pos.neighbors() {
				if g.At(n) == mover.Opponent() {
					require.True(t, g.LibertyCheck(n, mover.Opponent()),
						"game %d move %d: %v left without liberties", game, move, n)
				}
			}
			require.Equal(t, captured+len(res.Removed), g.Captured(mover.Opponent()))
			require.Equal(t, emptyBefore-1+len(res.Removed), g.Board().Count(Empty))
			require.Equal(t, mover.Opponent(), g.Turn())
		}
	}
}

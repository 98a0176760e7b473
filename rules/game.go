package rules

import (
	"errors"
	"fmt"
)

var (
	// ErrOccupied is returned when a stone is placed on a cell that already holds one.
	ErrOccupied = errors.New("the position is occupied")
	// ErrOutOfBounds is returned for positions off the board.
	ErrOutOfBounds = errors.New("position is out of range")
	// ErrNoColor is returned when Empty is used as a stone color.
	ErrNoColor = errors.New("only black and white stones can be placed")
	// ErrBoardSize is returned when a board smaller than 1x1 is requested.
	ErrBoardSize = errors.New("board size must be at least 1")
)

// PlaceResult describes the effect of a successful placement.
type PlaceResult struct {
	// Removed lists the captured stones, in the order they were taken off.
	Removed []Position
	// Captures holds the capture counters after the move.
	Captures map[Color]int
}

// GameState is a single game: the board, the turn, the capture counters and
// the last placed stone. It is not safe for concurrent use.
type GameState struct {
	board      *Board
	turns      *TurnController
	lastMove   Position
	hasLast    bool
	moveNumber int
}

// NewGame starts a game on an empty size x size board with Black to move.
func NewGame(size int) (*GameState, error) {
	board, err := NewBoard(size)
	if err != nil {
		return nil, err
	}
	return &GameState{board: board, turns: NewTurnController()}, nil
}

// Size returns the board size.
func (g *GameState) Size() int {
	return g.board.Size()
}

// At returns the color at pos.
func (g *GameState) At(pos Position) Color {
	return g.board.At(pos)
}

// Turn returns the color to move.
func (g *GameState) Turn() Color {
	return g.turns.Turn()
}

// Captured returns the number of stones of color c captured so far.
func (g *GameState) Captured(c Color) int {
	return g.turns.Captured(c)
}

// Captures returns a copy of both capture counters.
func (g *GameState) Captures() map[Color]int {
	return g.turns.Captures()
}

// LastMove returns the most recently placed stone. ok is false before the first move.
func (g *GameState) LastMove() (pos Position, ok bool) {
	return g.lastMove, g.hasLast
}

// MoveNumber returns the number of successful placements since the last reset.
func (g *GameState) MoveNumber() int {
	return g.moveNumber
}

// Board exposes the board for read access.
func (g *GameState) Board() *Board {
	return g.board
}

// Reset empties the board and restores the initial turn and counters.
func (g *GameState) Reset() {
	g.board.clear()
	g.turns.Reset()
	g.lastMove = Position{}
	g.hasLast = false
	g.moveNumber = 0
}

// Play places a stone of the color to move at pos.
func (g *GameState) Play(pos Position) (PlaceResult, error) {
	return g.PlaceStone(pos, g.Turn())
}

// PlaceStone puts a stone of color c at pos, removes every opponent group
// adjacent to it that is left without liberties and passes the turn.
//
// Only emptiness of the target cell is checked. A placement that leaves the
// placing side's own group without liberties is allowed and the stone stays
// on the board, and there is no ko rule.
func (g *GameState) PlaceStone(pos Position, c Color) (PlaceResult, error) {
	if c != Black && c != White {
		return PlaceResult{}, fmt.Errorf("%w: got %v", ErrNoColor, c)
	}
	if !g.board.InBounds(pos) {
		return PlaceResult{}, fmt.Errorf("%w: %v on a %[3]dx%[3]d board", ErrOutOfBounds, pos, g.board.Size())
	}
	if owner := g.board.At(pos); owner != Empty {
		return PlaceResult{}, fmt.Errorf("%w: %v holds a %s stone", ErrOccupied, pos, owner)
	}

	g.board.set(pos, c)
	removed := g.resolveCaptures(pos, c)

	g.lastMove = pos
	g.hasLast = true
	g.moveNumber++
	g.turns.Advance()

	return PlaceResult{Removed: removed, Captures: g.turns.Captures()}, nil
}

// resolveCaptures checks the opponent neighbours of a freshly placed stone
// and takes off those whose group has no liberty left.
func (g *GameState) resolveCaptures(pos Position, c Color) []Position {
	opponent := c.Opponent()
	var removed []Position
	for _, n := range pos.neighbors() {
		if g.board.At(n) != opponent {
			continue
		}
		if !g.LibertyCheck(n, opponent) {
			removed = append(removed, g.CaptureGroup(n, opponent)...)
		}
	}
	return removed
}

// LibertyCheck reports whether the group of color c containing seed touches
// at least one empty cell. It returns false if seed is not a stone of color c.
func (g *GameState) LibertyCheck(seed Position, c Color) bool {
	if c == Empty || g.board.At(seed) != c {
		return false
	}
	found := false
	g.walkGroup(seed, func(p Position) bool {
		for _, n := range p.neighbors() {
			if g.board.InBounds(n) && g.board.At(n) == Empty {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// CaptureGroup removes the whole group of color c containing seed and adds
// its size to the capture counter of c. Nothing happens if seed no longer
// holds a stone of color c.
func (g *GameState) CaptureGroup(seed Position, c Color) []Position {
	group := g.group(seed, c)
	for _, p := range group {
		g.board.set(p, Empty)
	}
	g.turns.addCaptured(c, len(group))
	return group
}

// Group returns the stones connected to seed, or nil for an empty cell.
func (g *GameState) Group(seed Position) []Position {
	return g.group(seed, g.board.At(seed))
}

func (g *GameState) group(seed Position, c Color) []Position {
	if c == Empty || g.board.At(seed) != c {
		return nil
	}
	var stones []Position
	g.walkGroup(seed, func(p Position) bool {
		stones = append(stones, p)
		return true
	})
	return stones
}

// walkGroup visits every stone of seed's group once, depth first, with an
// explicit stack. The walk stops early when visit returns false.
func (g *GameState) walkGroup(seed Position, visit func(Position) bool) {
	c := g.board.At(seed)
	visited := make([]bool, g.board.Size()*g.board.Size())
	visited[g.board.index(seed)] = true
	stack := []Position{seed}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(p) {
			return
		}
		for _, n := range p.neighbors() {
			if !g.board.InBounds(n) || g.board.At(n) != c {
				continue
			}
			if i := g.board.index(n); !visited[i] {
				visited[i] = true
				stack = append(stack, n)
			}
		}
	}
}

// Package engine defines the interface between the terminal UI and a game.
package engine

import (
	"errors"
	"time"

	"goban/rules"
	"goban/types"
)

// ErrNotYourTurn is returned when a person tries to move while the computer
// is to play or its reply is still pending.
var ErrNotYourTurn = errors.New("not your turn")

// ErrNotStarted is returned for moves made before Start.
var ErrNotStarted = errors.New("game not started")

// MoveEvent describes a placement that has been applied.
type MoveEvent struct {
	Pos     rules.Position
	Color   rules.Color
	Removed []rules.Position
	State   *types.BoardState
}

// MoveEntry is one line of the move list.
type MoveEntry struct {
	X, Y     int
	Color    int // 1=black, 2=white
	Captured int
}

// GameEngine runs a single game for the UI.
type GameEngine interface {
	// Start creates the board and, if the computer plays Black, schedules its
	// first move.
	Start() error

	// GetBoardState returns a snapshot of the current position.
	GetBoardState() *types.BoardState

	// PlayMove places a stone for the side to move.
	// Returns rules.ErrOccupied for a taken cell, including every cell of a
	// full board, and ErrNotYourTurn while the computer is to play.
	PlayMove(x, y int) error

	// IsMyTurn returns true if a person may place the next stone.
	IsMyTurn() bool

	// GetPlayerColor returns the color a person plays next, or rules.Empty
	// while the computer is to move.
	GetPlayerColor() rules.Color

	// OnMove registers a callback for every applied move, by either side.
	// It runs outside the engine lock.
	OnMove(func(ev MoveEvent))

	// History returns the moves played so far.
	History() []MoveEntry

	// Reset clears the board and starts over with the same configuration.
	Reset()

	// Close cancels any pending computer move.
	Close()
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	BoardSize     int
	Opponent      string        // opponent strategy, "none" for two people
	ComputerColor rules.Color   // side played by the computer when Opponent is set
	ReplyDelay    time.Duration // pause before the computer answers
}

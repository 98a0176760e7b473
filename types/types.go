// Package types contains shared data structures for goban.
package types

// BoardState is a read-only snapshot of a game, taken after every move.
// Board is indexed as Board[y][x] where 0=empty, 1=black, 2=white.
type BoardState struct {
	GameID       string  `json:"game_id"`
	MoveNumber   int     `json:"move_number"`
	PlayerToMove int     `json:"player_to_move"` // 1=black, 2=white
	Board        [][]int `json:"board"`
	Captures     struct {
		Black int `json:"black"` // black stones taken off the board
		White int `json:"white"`
	} `json:"captures"`
	LastMove BoardPos `json:"last_move"`
}

// Height returns the board height.
func (b *BoardState) Height() int {
	return len(b.Board)
}

// Width returns the board width.
func (b *BoardState) Width() int {
	if b.Height() == 0 {
		return 0
	}
	return len(b.Board[0])
}

// HasLastMove reports whether a stone has been placed since the game started.
func (b *BoardState) HasLastMove() bool {
	return b.LastMove.X >= 0 && b.LastMove.Y >= 0
}

// EmptyCount returns the number of free intersections.
func (b *BoardState) EmptyCount() int {
	n := 0
	for _, row := range b.Board {
		for _, cell := range row {
			if cell == 0 {
				n++
			}
		}
	}
	return n
}

// BoardPos represents a position on the board.
type BoardPos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewBoardState creates an empty snapshot of the given size with Black to move.
func NewBoardState(size int) *BoardState {
	board := make([][]int, size)
	for i := range board {
		board[i] = make([]int, size)
	}
	return &BoardState{
		PlayerToMove: 1,
		Board:        board,
		LastMove:     BoardPos{X: -1, Y: -1},
	}
}

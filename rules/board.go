// Package rules implements the board rules of Go: stone placement, groups,
// liberties and capture.
package rules

import "fmt"

// Color is the content of a board cell. The zero value is an empty cell.
type Color int

const (
	Empty Color = iota
	Black
	White
)

// Opponent returns the other stone color. Empty has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return "Empty"
}

// Position is a board intersection, x counting columns from the left and
// y counting rows from the top.
type Position struct {
	X int
	Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// neighbors returns the four orthogonal neighbours in the fixed order
// up, down, left, right. Some of them may lie off the board.
func (p Position) neighbors() [4]Position {
	return [4]Position{
		{p.X, p.Y - 1},
		{p.X, p.Y + 1},
		{p.X - 1, p.Y},
		{p.X + 1, p.Y},
	}
}

// Board is a square grid of cells stored row by row.
type Board struct {
	size  int
	cells []Color
}

// NewBoard creates an empty size x size board.
func NewBoard(size int) (*Board, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBoardSize, size)
	}
	return &Board{size: size, cells: make([]Color, size*size)}, nil
}

// Size returns the number of lines on each side of the board.
func (b *Board) Size() int {
	return b.size
}

// InBounds reports whether pos lies on the board.
func (b *Board) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X < b.size && pos.Y < b.size
}

// At returns the color at pos, or Empty when pos is off the board.
func (b *Board) At(pos Position) Color {
	if !b.InBounds(pos) {
		return Empty
	}
	return b.cells[b.index(pos)]
}

func (b *Board) set(pos Position, c Color) {
	b.cells[b.index(pos)] = c
}

func (b *Board) clear() {
	for i := range b.cells {
		b.cells[i] = Empty
	}
}

// Rows copies the board into a [y][x] grid of 0=empty, 1=black, 2=white.
func (b *Board) Rows() [][]int {
	rows := make([][]int, b.size)
	for y := range rows {
		rows[y] = make([]int, b.size)
		for x := range rows[y] {
			rows[y][x] = int(b.cells[y*b.size+x])
		}
	}
	return rows
}

// Count returns how many cells hold c.
func (b *Board) Count(c Color) int {
	n := 0
	for _, cell := range b.cells {
		if cell == c {
			n++
		}
	}
	return n
}

func (b *Board) index(pos Position) int {
	return pos.Y*b.size + pos.X
}

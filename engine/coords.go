package engine

import (
	"fmt"
	"strconv"
	"strings"

	"goban/rules"
)

// Board notation:
// - Columns: A-Z skipping I, left to right
// - Rows: 1-N counted from the bottom of the board
// - Example: D4, Q16, K10
//
// Boards wider than 25 columns run out of letters and use "column,row"
// with both numbers 1-based, e.g. "27,3".
//
// Internal coordinates:
// - X: 0..N-1 (left to right)
// - Y: 0..N-1 (top to bottom)
// - Example: (3, 15) for D4 on a 19x19 board

const maxLetterColumns = 25

// Vertex converts board coordinates to display notation.
// For a 19x19 board: (0, 18) -> A1, (3, 15) -> D4, (15, 3) -> Q16
func Vertex(x, y, size int) string {
	row := size - y
	if size > maxLetterColumns {
		return fmt.Sprintf("%d,%d", x+1, row)
	}
	col := 'A' + rune(x)
	if x >= 8 {
		col++ // skip 'I'
	}
	return fmt.Sprintf("%c%d", col, row)
}

// ParseVertex converts display notation back to board coordinates.
// Lowercase input is accepted.
func ParseVertex(vertex string, size int) (rules.Position, error) {
	v := strings.TrimSpace(strings.ToUpper(vertex))
	if len(v) < 2 {
		return rules.Position{}, fmt.Errorf("invalid vertex: %q", vertex)
	}

	var col, row int
	var err error
	if c, r, found := strings.Cut(v, ","); found {
		if col, err = strconv.Atoi(strings.TrimSpace(c)); err != nil {
			return rules.Position{}, fmt.Errorf("invalid column in vertex: %q", vertex)
		}
		col--
		if row, err = strconv.Atoi(strings.TrimSpace(r)); err != nil {
			return rules.Position{}, fmt.Errorf("invalid row in vertex: %q", vertex)
		}
	} else {
		letter := v[0]
		if letter < 'A' || letter > 'Z' || letter == 'I' {
			return rules.Position{}, fmt.Errorf("invalid column in vertex: %q", vertex)
		}
		col = int(letter - 'A')
		if letter > 'I' {
			col--
		}
		if row, err = strconv.Atoi(v[1:]); err != nil {
			return rules.Position{}, fmt.Errorf("invalid row in vertex: %q", vertex)
		}
	}

	pos := rules.Position{X: col, Y: size - row}
	if pos.X < 0 || pos.X >= size || pos.Y < 0 || pos.Y >= size {
		return rules.Position{}, fmt.Errorf("%w: %q on a %[3]dx%[3]d board", rules.ErrOutOfBounds, vertex, size)
	}
	return pos, nil
}

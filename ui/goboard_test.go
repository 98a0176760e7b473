package ui

import (
	"strings"
	"testing"

	"goban/engine"
	"goban/rules"
	"goban/types"
)

func TestCellAt(t *testing.T) {
	tests := []struct {
		name       string
		sx, sy     int
		wantX      int
		wantY      int
		wantInside bool
	}{
		{"top left", 5, 2, 0, 0, true},
		{"second half of a cell", 6, 2, 0, 0, true},
		{"middle", 5 + 4*2, 2 + 4, 4, 4, true},
		{"bottom right", 5 + 8*2 + 1, 2 + 8, 8, 8, true},
		{"row numbers", 3, 4, -1, -1, false},
		{"above the board", 7, 1, -1, -1, false},
		{"right of the board", 5 + 9*2, 4, -1, -1, false},
		{"coordinate row", 7, 2 + 9, -1, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := cellAt(tt.sx, tt.sy, 5, 2, 9)
			if ok != tt.wantInside || x != tt.wantX || y != tt.wantY {
				t.Errorf("cellAt(%d, %d) = (%d, %d, %v), want (%d, %d, %v)",
					tt.sx, tt.sy, x, y, ok, tt.wantX, tt.wantY, tt.wantInside)
			}
		})
	}
}

func TestCellAtEmptyBoard(t *testing.T) {
	if _, _, ok := cellAt(0, 0, 0, 0, 0); ok {
		t.Error("cellAt on a board without cells should miss")
	}
}

func TestHoshiPoints(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{5, 0},
		{7, 5},
		{9, 5},
		{13, 5},
		{19, 9},
	}
	for _, tt := range tests {
		n := 0
		for y := 0; y < tt.size; y++ {
			for x := 0; x < tt.size; x++ {
				if isHoshiPoint(x, y, tt.size) {
					n++
				}
			}
		}
		if n != tt.want {
			t.Errorf("size %d: %d star points, want %d", tt.size, n, tt.want)
		}
	}

	for _, p := range [][2]int{{3, 3}, {9, 9}, {15, 3}, {9, 15}} {
		if !isHoshiPoint(p[0], p[1], 19) {
			t.Errorf("(%d,%d) should be a star point on 19x19", p[0], p[1])
		}
	}
	if !isHoshiPoint(2, 6, 9) || isHoshiPoint(4, 2, 9) {
		t.Error("9x9 star points should be the corners and centre only")
	}
}

func TestGetGridRune(t *testing.T) {
	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, '┌'},
		{8, 0, '┐'},
		{0, 8, '└'},
		{8, 8, '┘'},
		{4, 0, '┬'},
		{4, 8, '┴'},
		{0, 4, '├'},
		{8, 4, '┤'},
		{3, 5, '┼'},
	}
	for _, tt := range tests {
		if got := getGridRune(tt.x, tt.y, 9, 9, false); got != tt.want {
			t.Errorf("getGridRune(%d, %d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
	if got := getGridRune(4, 4, 9, 9, true); got != '◦' {
		t.Errorf("star point rune = %q", got)
	}
}

func TestColumnLabelSkipsI(t *testing.T) {
	if got := columnLabel(7, 19, false); got != 'H' {
		t.Errorf("column 7 = %q, want H", got)
	}
	if got := columnLabel(8, 19, false); got != 'J' {
		t.Errorf("column 8 = %q, want J", got)
	}
	if got := columnLabel(0, 9, true); got != 'Ａ' {
		t.Errorf("full width column 0 = %q", got)
	}
	// Labels agree with the move notation.
	for x := 0; x < 19; x++ {
		if want := []rune(engine.Vertex(x, 0, 19))[0]; columnLabel(x, 19, false) != want {
			t.Errorf("column %d label %q, notation %q", x, columnLabel(x, 19, false), want)
		}
	}
}

func TestTurnLine(t *testing.T) {
	if got := turnLine(int(rules.Black)); got != "● Black's turn" {
		t.Errorf("black: %q", got)
	}
	if got := turnLine(int(rules.White)); got != "○ White's turn" {
		t.Errorf("white: %q", got)
	}
}

func TestCaptureMessage(t *testing.T) {
	if got := captureMessage(rules.Black, 0); got != "" {
		t.Errorf("no capture: %q", got)
	}
	if got := captureMessage(rules.White, 1); got != "White captured 1 stone" {
		t.Errorf("one stone: %q", got)
	}
	if got := captureMessage(rules.Black, 4); got != "Black captured 4 stones" {
		t.Errorf("four stones: %q", got)
	}
}

func TestPanelText(t *testing.T) {
	state := types.NewBoardState(9)
	state.MoveNumber = 3
	state.Captures.Black = 0
	state.Captures.White = 1
	history := []engine.MoveEntry{
		{X: 0, Y: 8, Color: 1},
		{X: 1, Y: 8, Color: 2},
		{X: 2, Y: 8, Color: 1, Captured: 1},
	}

	text := panelText(state, history)
	for _, want := range []string{"9x9", "Move:[-:-:-]  3", "● Black[-]  1", "○ White[-]  0", "A1", "B1", "C1", "x1"} {
		if !strings.Contains(text, want) {
			t.Errorf("panel text missing %q:\n%s", want, text)
		}
	}
}

func TestPanelTextTrimsLongHistory(t *testing.T) {
	state := types.NewBoardState(19)
	history := make([]engine.MoveEntry, visibleMoves+5)
	text := panelText(state, history)
	if !strings.Contains(text, "5 earlier") {
		t.Errorf("expected older moves to be folded:\n%s", text)
	}
}

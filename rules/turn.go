package rules

// TurnController tracks whose turn it is and how many stones of each color
// have been captured since the last reset.
type TurnController struct {
	turn     Color
	captured map[Color]int
}

// NewTurnController returns a controller with Black to move and no captures.
func NewTurnController() *TurnController {
	t := &TurnController{}
	t.Reset()
	return t
}

// Turn returns the color to move.
func (t *TurnController) Turn() Color {
	return t.turn
}

// Advance hands the move to the other color.
func (t *TurnController) Advance() {
	t.turn = t.turn.Opponent()
}

// Reset gives the move back to Black and zeroes both counters.
func (t *TurnController) Reset() {
	t.turn = Black
	t.captured = map[Color]int{Black: 0, White: 0}
}

// Captured returns the number of stones of color c removed from the board.
func (t *TurnController) Captured(c Color) int {
	return t.captured[c]
}

// Captures returns a copy of the counters.
func (t *TurnController) Captures() map[Color]int {
	return map[Color]int{
		Black: t.captured[Black],
		White: t.captured[White],
	}
}

func (t *TurnController) addCaptured(c Color, n int) {
	t.captured[c] += n
}

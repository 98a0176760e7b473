// Package ui specifies custom controls for tview to play Go in the terminal.
package ui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"goban/config"
	"goban/engine"
	"goban/rules"
	"goban/types"
)

// Indexes into GoBoardUI.styles.
const (
	styleBoard = iota
	styleBlack
	styleWhite
	styleBoardAlt
	styleBlackAlt
	styleWhiteAlt
	styleCursorFG
	styleLastPlayed
	styleCursorBG
	styleLine
)

// Columns left of the grid reserved for row numbers.
const gridOffset = 4

type GoBoardUI struct {
	Box        *tview.Box
	BoardState *types.BoardState
	hint       *tview.TextView
	cfg        *config.Config
	selX       int
	selY       int
	app        *tview.Application
	eng        engine.GameEngine
	history    []engine.MoveEntry
	styles     []tcell.Color
	infoPanel  *GameInfoPanel
	focusMode  bool
	status     string
	onError    func(error)

	// screen position of the top left intersection as last drawn
	left, top int
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *GoBoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *GoBoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *GoBoardUI) IsFocusMode() bool {
	return g.focusMode
}

// SetErrorHandler sets the function called when a move is rejected.
func (g *GoBoardUI) SetErrorHandler(fn func(error)) {
	g.onError = fn
}

func (g *GoBoardUI) SelectedTile() *types.BoardPos {
	if g.selX == -1 && g.selY == -1 {
		return nil
	}
	return &types.BoardPos{X: g.selX, Y: g.selY}
}

// MoveSelection moves the cursor by (h, v). The first call places the
// cursor on the last move, or the centre of an empty board.
func (g *GoBoardUI) MoveSelection(h, v int) {
	if g.SelectedTile() == nil {
		if g.BoardState.HasLastMove() {
			g.selX, g.selY = g.BoardState.LastMove.X, g.BoardState.LastMove.Y
		} else {
			g.selX, g.selY = g.BoardState.Width()/2, g.BoardState.Height()/2
		}
		return
	}
	if g.selX+h < 0 || g.selX+h >= g.BoardState.Width() {
		return
	}
	if g.selY+v < 0 || g.selY+v >= g.BoardState.Height() {
		return
	}
	g.selX += h
	g.selY += v
}

func (g *GoBoardUI) ResetSelection() {
	g.selX = -1
	g.selY = -1
}

func NewGoBoard(app *tview.Application, c *config.Config, hint *tview.TextView) *GoBoardUI {
	goBoard := &GoBoardUI{
		Box:        tview.NewBox(),
		BoardState: &types.BoardState{LastMove: types.BoardPos{X: -1, Y: -1}},
		hint:       hint,
		app:        app,
		selX:       -1,
		selY:       -1,
	}
	goBoard.SetConfig(c)
	goBoard.Box.SetDrawFunc(goBoard.draw)
	goBoard.Box.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action != tview.MouseLeftClick {
			return action, event
		}
		sx, sy := event.Position()
		if x, y, ok := cellAt(sx, sy, goBoard.left, goBoard.top, goBoard.BoardState.Width()); ok {
			goBoard.selX, goBoard.selY = x, y
			goBoard.PlayMove(x, y)
		}
		return action, event
	})
	return goBoard
}

// ConnectEngine starts e and shows its game on the board.
func (g *GoBoardUI) ConnectEngine(e engine.GameEngine) error {
	g.Close()
	g.eng = e
	g.status = ""
	g.ResetSelection()

	e.OnMove(func(ev engine.MoveEvent) {
		// Callbacks arrive from the reply timer or from inside an input
		// handler; queueing from the latter would deadlock.
		go g.app.QueueUpdateDraw(func() {
			g.moveApplied(e, ev)
		})
	})
	if err := e.Start(); err != nil {
		g.eng = nil
		return err
	}
	g.sync()
	return nil
}

func (g *GoBoardUI) moveApplied(e engine.GameEngine, ev engine.MoveEvent) {
	if e != g.eng {
		return
	}
	g.status = captureMessage(ev.Color, len(ev.Removed))
	g.sync()
}

// sync pulls the latest position and move list from the engine.
func (g *GoBoardUI) sync() {
	if g.eng == nil {
		return
	}
	g.BoardState = g.eng.GetBoardState()
	g.history = g.eng.History()
	g.refreshHint()
}

// PlayMove plays a move at the given coordinates.
func (g *GoBoardUI) PlayMove(x, y int) {
	if g.eng == nil {
		return
	}
	err := g.eng.PlayMove(x, y)
	switch {
	case err == nil:
	case errors.Is(err, engine.ErrNotYourTurn):
		// the computer's reply is on its way
	default:
		g.reportError(err)
	}
}

// PlayVertex plays a move given in board notation, such as "D4".
func (g *GoBoardUI) PlayVertex(text string) {
	if g.eng == nil {
		return
	}
	pos, err := engine.ParseVertex(text, g.BoardState.Width())
	if err != nil {
		g.reportError(err)
		return
	}
	g.selX, g.selY = pos.X, pos.Y
	g.PlayMove(pos.X, pos.Y)
}

func (g *GoBoardUI) reportError(err error) {
	log.Debug().Err(err).Msg("move rejected")
	if g.onError != nil {
		g.onError(err)
	}
}

// Reset clears the board and starts the game again.
func (g *GoBoardUI) Reset() {
	if g.eng == nil {
		return
	}
	g.eng.Reset()
	g.status = ""
	g.ResetSelection()
	g.sync()
}

// Close stops the current game. The board keeps its last position.
func (g *GoBoardUI) Close() {
	if g.eng == nil {
		return
	}
	g.eng.Close()
	g.eng = nil
}

func (g *GoBoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		styleBoard:      tcell.PaletteColor(c.Theme.Colors.BoardColor),
		styleBlack:      tcell.PaletteColor(c.Theme.Colors.BlackColor),
		styleWhite:      tcell.PaletteColor(c.Theme.Colors.WhiteColor),
		styleBoardAlt:   tcell.PaletteColor(c.Theme.Colors.BoardColorAlt),
		styleBlackAlt:   tcell.PaletteColor(c.Theme.Colors.BlackColorAlt),
		styleWhiteAlt:   tcell.PaletteColor(c.Theme.Colors.WhiteColorAlt),
		styleCursorFG:   tcell.PaletteColor(c.Theme.Colors.CursorColorFG),
		styleLastPlayed: tcell.PaletteColor(c.Theme.Colors.LastPlayedColorBG),
		styleCursorBG:   tcell.PaletteColor(c.Theme.Colors.CursorColorBG),
		styleLine:       tcell.PaletteColor(c.Theme.Colors.LineColor),
	}
	g.cfg = c
}

func (g *GoBoardUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.Update(g.BoardState, g.history)
	}

	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	line := "  " + turnLine(g.BoardState.PlayerToMove)
	switch {
	case g.BoardState.Width() > 0 && g.BoardState.EmptyCount() == 0:
		line += " · the board is full"
	case g.eng != nil && !g.eng.IsMyTurn():
		line += " · computer is thinking"
	}
	if g.status != "" {
		line += "   " + g.status
	}
	g.hint.SetText(line + "\n  hjkl/↑↓←→ move  ⏎ play  : type move  r reset  f focus  q menu")
}

// turnLine returns the status text for the side to move.
func turnLine(player int) string {
	c := rules.Color(player)
	if c == rules.White {
		return fmt.Sprintf("○ %s's turn", c)
	}
	return fmt.Sprintf("● %s's turn", rules.Black)
}

func captureMessage(c rules.Color, n int) string {
	switch n {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%s captured 1 stone", c)
	default:
		return fmt.Sprintf("%s captured %d stones", c, n)
	}
}

// cellAt maps a screen cell to board coordinates for a grid whose top left
// intersection is drawn at (left, top). Each intersection is two cells wide.
func cellAt(sx, sy, left, top, size int) (int, int, bool) {
	if size <= 0 || sx < left || sy < top {
		return -1, -1, false
	}
	x, y := (sx-left)/2, sy-top
	if x >= size || y >= size {
		return -1, -1, false
	}
	return x, y, true
}

func (g *GoBoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	bs := g.BoardState
	if bs == nil || bs.Width() == 0 {
		return x, y, 1, 1
	}
	g.left, g.top = x+gridOffset, y
	for boardY := 0; boardY < bs.Height(); boardY++ {
		for boardX := 0; boardX < bs.Width(); boardX++ {
			g.drawIntersection(screen, boardX, boardY)
		}
	}
	g.drawCoordinates(screen, x, y)
	return x, y, bs.Width()*2 + gridOffset, bs.Height() + 2
}

func (g *GoBoardUI) drawIntersection(screen tcell.Screen, boardX, boardY int) {
	bs := g.BoardState
	theme := g.cfg.Theme
	stone := bs.Board[boardY][boardX]

	// Background index and the inverted stone index used for the cursor.
	bg := stone
	if !theme.DrawStoneBackground {
		bg = 0
	}
	inv := 0
	switch bg {
	case styleBlack:
		inv = styleWhite
	case styleWhite:
		inv = styleBlack
	}
	if (boardX%2 + boardY%2) == 1 {
		bg += 3
		inv += 3
	}

	grid := theme.UseGridLines && stone == 0
	var r rune
	var fg tcell.Color
	switch {
	case stone == 1:
		r = theme.Symbols.BlackStone
	case stone == 2:
		r = theme.Symbols.WhiteStone
	case grid:
		r = getGridRune(boardX, boardY, bs.Width(), bs.Height(), isHoshiPoint(boardX, boardY, bs.Width()))
	default:
		r = theme.Symbols.BoardSquare
	}
	switch {
	case stone == 0:
		fg = g.styles[styleLine]
	case theme.DrawStoneBackground:
		fg = g.styles[inv]
	default:
		fg = g.styles[stone]
	}

	if boardX == g.selX && boardY == g.selY {
		if theme.DrawCursorBackground {
			bg = styleCursorBG
		} else if !theme.UseGridLines {
			r = theme.Symbols.Cursor
		}
	} else if boardX == bs.LastMove.X && boardY == bs.LastMove.Y {
		if theme.DrawLastPlayedBackground {
			bg = styleLastPlayed
		} else if !theme.UseGridLines {
			r = theme.Symbols.LastPlayed
		}
	}

	style := tcell.StyleDefault.Background(g.styles[bg]).Foreground(fg)
	col, row := g.left+boardX*2, g.top+boardY
	screen.SetContent(col, row, r, nil, style)

	// The second cell carries the line to the right neighbour.
	right := ' '
	if grid && boardX < bs.Width()-1 && bs.Board[boardY][boardX+1] == 0 {
		right = '─'
	}
	screen.SetContent(col+1, row, right, nil, style)
}

// getGridRune returns the box-drawing character for a grid position.
func getGridRune(x, y, width, height int, isHoshi bool) rune {
	if isHoshi {
		return '◦'
	}

	isTop := y == 0
	isBottom := y == height-1
	isLeft := x == 0
	isRight := x == width-1

	switch {
	case isTop && isLeft:
		return '┌'
	case isTop && isRight:
		return '┐'
	case isBottom && isLeft:
		return '└'
	case isBottom && isRight:
		return '┘'
	case isTop:
		return '┬'
	case isBottom:
		return '┴'
	case isLeft:
		return '├'
	case isRight:
		return '┤'
	default:
		return '┼'
	}
}

// isHoshiPoint reports whether (x, y) is a star point. Boards under 7 lines
// have none; 7 to 12 lines mark the third line, larger boards the fourth.
// Side star points appear on odd boards of 15 lines or more.
func isHoshiPoint(x, y, size int) bool {
	if size < 7 {
		return false
	}
	edge := 3
	if size < 13 {
		edge = 2
	}
	center := size / 2
	lines := []int{edge, size - 1 - edge}
	if size%2 == 1 && size >= 15 {
		lines = append(lines, center)
	}
	onLine := func(v int) bool {
		for _, l := range lines {
			if v == l {
				return true
			}
		}
		return false
	}
	if onLine(x) && onLine(y) {
		return true
	}
	return size%2 == 1 && x == center && y == center
}

// columnLabel returns the letter printed under column x, skipping I like
// engine.Vertex. Boards too wide for letters get the last digit.
func columnLabel(x, size int, fullWidth bool) rune {
	if size > 25 {
		return rune('0' + (x+1)%10)
	}
	c := 'A' + rune(x)
	if x >= 8 {
		c++
	}
	if fullWidth {
		c += 'Ａ' - 'A'
	}
	return c
}

func (g *GoBoardUI) drawCoordinates(s tcell.Screen, x, y int) {
	bs := g.BoardState
	w, h := bs.Width(), bs.Height()

	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(g.styles[styleCursorBG])
	lastHighlight := tcell.StyleDefault.Background(g.styles[styleLastPlayed])
	pick := func(selected, last bool) tcell.Style {
		switch {
		case selected:
			return highlight
		case last:
			return lastHighlight
		}
		return style
	}

	for ix := 0; ix < w; ix++ {
		st := pick(ix == g.selX, ix == bs.LastMove.X)
		s.SetContent(g.left+ix*2, y+h+1, columnLabel(ix, w, g.cfg.Theme.FullWidthLetters), nil, st)
		s.SetContent(g.left+ix*2+1, y+h+1, ' ', nil, st)
	}

	// Rows are numbered from the bottom of the board.
	for iy := 0; iy < h; iy++ {
		st := pick(iy == g.selY, iy == bs.LastMove.Y)
		num := h - iy
		tens := ' '
		if num >= 10 {
			tens = rune('0' + (num/10)%10)
		}
		s.SetContent(x+1, y+iy, tens, nil, st)
		s.SetContent(x+2, y+iy, rune('0'+num%10), nil, st)
	}
}

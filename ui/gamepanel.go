package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"goban/engine"
	"goban/types"
)

const (
	panelWidth    = 26
	visibleMoves  = 12
	panelRuleLine = "[dimgray]──────────────────────[-:-:-]\n"
)

// GameInfoPanel shows prisoners and the move list beside the board.
type GameInfoPanel struct {
	box *tview.TextView
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}
	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)
	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// Update redraws the panel for the given position and move list.
func (p *GameInfoPanel) Update(state *types.BoardState, history []engine.MoveEntry) {
	p.box.SetText(panelText(state, history))
}

// panelText renders the panel contents.
func panelText(state *types.BoardState, history []engine.MoveEntry) string {
	if state == nil || state.Width() == 0 {
		return ""
	}
	var sb strings.Builder

	sb.WriteString("[white::b]Game Info[-:-:-]\n")
	sb.WriteString(panelRuleLine)
	fmt.Fprintf(&sb, "[white]Board:[-:-:-] %dx%d\n", state.Width(), state.Height())
	fmt.Fprintf(&sb, "[white]Move:[-:-:-]  %d\n", state.MoveNumber)

	// A player's prisoners are the opponent's stones they removed.
	sb.WriteString("\n[white::b]Prisoners[-:-:-]\n")
	sb.WriteString(panelRuleLine)
	fmt.Fprintf(&sb, "[white]● Black[-]  %d\n", state.Captures.White)
	fmt.Fprintf(&sb, "[white]○ White[-]  %d\n", state.Captures.Black)

	if len(history) == 0 {
		return sb.String()
	}

	sb.WriteString("\n[white::b]Moves[-:-:-]\n")
	sb.WriteString(panelRuleLine)
	start := 0
	if len(history) > visibleMoves {
		start = len(history) - visibleMoves
	}
	for i := start; i < len(history); i++ {
		m := history[i]
		colorStr := "[white]B[-]"
		if m.Color == 2 {
			colorStr = "[dimgray]W[-]"
		}
		marker := " "
		if i == len(history)-1 {
			marker = "[white]>[-]"
		}
		fmt.Fprintf(&sb, "%s[dimgray]%3d.[-] %s %s", marker, i+1, colorStr, engine.Vertex(m.X, m.Y, state.Width()))
		if m.Captured > 0 {
			fmt.Fprintf(&sb, " [yellow]x%d[-]", m.Captured)
		}
		sb.WriteString("\n")
	}
	if start > 0 {
		fmt.Fprintf(&sb, "[dimgray]  ··· %d earlier[-]\n", start)
	}
	return sb.String()
}

// CreateGameLayout creates the game page: board and info panel on top, the
// status bar and move input below.
func CreateGameLayout(board *GoBoardUI, hint *tview.TextView, input *tview.InputField) *tview.Flex {
	frame := tview.NewFlex()
	RebuildNormalLayout(frame, board, hint, input)
	return frame
}

// RebuildNormalLayout restores the normal game layout inside gameFrame.
func RebuildNormalLayout(gameFrame *tview.Flex, board *GoBoardUI, hint *tview.TextView, input *tview.InputField) {
	gameFrame.Clear()

	infoPanel := NewGameInfoPanel()
	board.infoPanel = infoPanel
	infoPanel.Update(board.BoardState, board.history)

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), panelWidth, 0, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 2, 0, false)
	gameFrame.AddItem(input, 1, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *GoBoardUI) {
	gameFrame.Clear()

	boardWidth := 9*2 + gridOffset
	boardHeight := 9 + 2
	if board.BoardState != nil && board.BoardState.Width() > 0 {
		boardWidth = board.BoardState.Width()*2 + gridOffset
		boardHeight = board.BoardState.Height() + 2
	}

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false)

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false)
}

package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const tutorialText = `[white::b]How to play[-:-:-]

Go is played on a grid of lines. Black places the first stone, then the
players take turns putting one stone of their color on an empty
intersection. Stones never move once placed.

[white::b]Groups and liberties[-:-:-]

Stones of one color that touch along the lines (not diagonally) form a
group. The empty points next to a group are its [::b]liberties[::-].

[white::b]Capture[-:-:-]

When a stone is placed, every opposing group touching it that has no
liberties left is captured and removed from the board. Each removed
stone is counted as a prisoner for the player who took it.

Opposing groups are checked first. Here a move that leaves your own
group without liberties is allowed, and the group stays on the board
until a later move captures it.

[white::b]Controls[-:-:-]

  hjkl or arrows   move the cursor
  Enter            place a stone
  mouse click      place a stone
  :                type a move, like D4
  r                start the game over
  f                focus mode
  q                back to the menu

[dimgray]Esc or Enter to return to the menu[-]`

// NewTutorial creates the tutorial page. onBack runs when the reader leaves.
func NewTutorial(onBack func()) tview.Primitive {
	text := tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true).
		SetText(tutorialText)
	text.SetBorder(true).
		SetTitle(" Tutorial ").
		SetBorderPadding(1, 1, 2, 2)
	text.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape, tcell.KeyEnter:
			onBack()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				onBack()
				return nil
			}
		}
		return event
	})

	row := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(nil, 0, 1, false).
		AddItem(text, 76, 0, true).
		AddItem(nil, 0, 1, false)
	return row
}

package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"goban/config"
	"goban/rules"
)

// ColorConfigUI provides a color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()
	onError   func(error)
	sample    *rules.GameState

	// Current selection
	selectedBoardColor int
	selectedLineColor  int
	editingLine        bool // true = editing line color, false = editing board color
}

// Board colors offered in the list, mostly warm wood tones.
var boardColors = []struct {
	code int
	name string
}{
	{230, "Light Cream"},
	{229, "Pale Yellow"},
	{228, "Light Gold"},
	{222, "Gold"},
	{220, "Bright Yellow"},
	{214, "Orange Gold"},
	{208, "Dark Orange"},
	{180, "Tan"},
	{179, "Light Brown"},
	{172, "Brown"},
	{136, "Dark Brown"},
	{94, "Saddle Brown"},
	{252, "Light Gray"},
	{250, "Gray"},
	{248, "Medium Gray"},
	{244, "Dark Gray"},
	{188, "Light Beige"},
	{181, "Dusty Rose"},
	{223, "Peach"},
	{216, "Salmon"},
}

// Line colors, darker tones that contrast with the board.
var lineColors = []struct {
	code int
	name string
}{
	{94, "Saddle Brown"},
	{130, "Dark Orange"},
	{136, "Dark Brown"},
	{88, "Dark Red"},
	{52, "Dark Maroon"},
	{22, "Dark Green"},
	{23, "Teal"},
	{24, "Dark Cyan"},
	{17, "Navy Blue"},
	{54, "Purple"},
	{232, "Black"},
	{236, "Dark Gray"},
	{240, "Gray"},
	{244, "Medium Gray"},
	{16, "True Black"},
}

// NewColorConfig creates the color page. onDone runs after a board color is
// chosen; onError receives failures to save the config file.
func NewColorConfig(cfg *config.Config, onDone func(), onError func(error)) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:                cfg,
		onDone:             onDone,
		onError:            onError,
		sample:             samplePosition(),
		selectedBoardColor: cfg.Theme.Colors.BoardColor,
		selectedLineColor:  cfg.Theme.Colors.LineColor,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)
	cc.populateColorList()

	// Moving through the list previews, Enter applies.
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if code, ok := cc.colorAt(index); ok {
			if cc.editingLine {
				cc.selectedLineColor = code
			} else {
				cc.selectedBoardColor = code
			}
		}
	})
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if _, ok := cc.colorAt(index); !ok {
			return
		}
		if cc.editingLine {
			cc.cfg.Theme.Colors.LineColor = cc.selectedLineColor
			cc.save()
			cc.editingLine = false
			cc.populateColorList()
			return
		}
		cc.cfg.Theme.Colors.BoardColor = cc.selectedBoardColor
		cc.cfg.Theme.Colors.BoardColorAlt = cc.selectedBoardColor
		cc.save()
		cc.onDone()
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 30, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

// samplePosition plays a short sequence on a 7x7 board that ends with a
// capture, so the preview shows stones and an empty point where one was taken.
func samplePosition() *rules.GameState {
	g, _ := rules.NewGame(7)
	for _, p := range []rules.Position{
		{X: 2, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 2}, {X: 4, Y: 4},
		{X: 3, Y: 4}, {X: 2, Y: 2}, {X: 4, Y: 3}, {X: 1, Y: 4},
	} {
		if _, err := g.Play(p); err != nil {
			break
		}
	}
	return g
}

func (cc *ColorConfigUI) save() {
	if err := cc.cfg.Save(); err != nil && cc.onError != nil {
		cc.onError(err)
	}
}

func (cc *ColorConfigUI) colorAt(index int) (int, bool) {
	list := boardColors
	if cc.editingLine {
		list = lineColors
	}
	if index < 0 || index >= len(list) {
		return 0, false
	}
	return list[index].code, true
}

// populateColorList fills the list with the colors for the current mode.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	list, current := boardColors, cc.selectedBoardColor
	cc.colorList.SetTitle(" Select Board Color (Tab: switch to line) ")
	if cc.editingLine {
		list, current = lineColors, cc.selectedLineColor
		cc.colorList.SetTitle(" Select Line Color (Tab: switch to board) ")
	}
	for i, c := range list {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range list {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	size := cc.sample.Size()
	if width < size*2+4 || height < size+4 {
		return x, y, width, height
	}

	boardColor := tcell.PaletteColor(cc.selectedBoardColor)
	boardStyle := tcell.StyleDefault.Background(boardColor).Foreground(tcell.PaletteColor(cc.selectedLineColor))
	stoneStyles := map[rules.Color]tcell.Style{
		rules.Black: tcell.StyleDefault.Background(boardColor).Foreground(tcell.PaletteColor(cc.cfg.Theme.Colors.BlackColor)),
		rules.White: tcell.StyleDefault.Background(boardColor).Foreground(tcell.PaletteColor(cc.cfg.Theme.Colors.WhiteColor)),
	}

	startX, startY := x+2, y+1
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			pos := rules.Position{X: col, Y: row}
			stone := cc.sample.At(pos)

			char, style := getGridRune(col, row, size, size, false), boardStyle
			if stone != rules.Empty {
				char, style = '●', stoneStyles[stone]
			}
			screenX := startX + col*2
			screen.SetContent(screenX, startY+row, char, nil, style)

			if col < size-1 {
				connector := '─'
				if stone != rules.Empty || cc.sample.At(rules.Position{X: col + 1, Y: row}) != rules.Empty {
					connector = ' '
				}
				screen.SetContent(screenX+1, startY+row, connector, nil, boardStyle)
			}
		}
	}

	info := fmt.Sprintf("Board: %d  Line: %d", cc.selectedBoardColor, cc.selectedLineColor)
	if cc.editingLine {
		info = fmt.Sprintf("Line: %d  Board: %d", cc.selectedLineColor, cc.selectedBoardColor)
	}
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+size+1, ch, nil, tcell.StyleDefault)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between board color and line color editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingLine = !cc.editingLine
	cc.populateColorList()
}

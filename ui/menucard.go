package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// headerRows is the number of card rows taken by the title block,
// including the divider under it.
const headerRows = 5

// MenuCard is a card container with rounded borders, a title and an
// optional subtitle.
type MenuCard struct {
	*tview.Box
	title    string
	subtitle string
	focused  bool
}

// NewMenuCard creates a new menu card with the given title.
func NewMenuCard(title string) *MenuCard {
	return &MenuCard{
		Box:   tview.NewBox(),
		title: title,
	}
}

// SetSubtitle sets the dim line printed under the title.
func (c *MenuCard) SetSubtitle(subtitle string) *MenuCard {
	c.subtitle = subtitle
	return c
}

// Draw renders the card frame and header. Content is drawn by the owner
// below the first divider.
func (c *MenuCard) Draw(screen tcell.Screen) {
	c.Box.DrawForSubclass(screen, c)

	x, y, width, height := c.GetInnerRect()
	if width < 10 || height < headerRows+2 {
		return
	}

	borderStyle := c.borderStyle()
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)

	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.SetContent(col, row, ' ', nil, bgStyle)
		}
	}

	c.drawRule(screen, y, '╭', '─', '╮')
	for row := y + 1; row < y+height-1; row++ {
		screen.SetContent(x, row, '│', nil, borderStyle)
		screen.SetContent(x+width-1, row, '│', nil, borderStyle)
	}
	c.drawRule(screen, y+height-1, '╰', '─', '╯')

	if c.title == "" {
		return
	}

	titleStyle := tcell.StyleDefault.Foreground(MenuColors.Title).Background(MenuColors.CardBG).Bold(true)
	accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)
	hintStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)

	// ⬡  G O B A N
	titleLen := len([]rune(c.title)) + 3
	titleX := x + (width-titleLen)/2
	titleY := y + 1
	if c.subtitle == "" {
		titleY = y + 2
	}
	screen.SetContent(titleX, titleY, '⬡', nil, accentStyle)
	drawText(screen, titleX+3, titleY, c.title, titleStyle)

	if c.subtitle != "" {
		subLen := len([]rune(c.subtitle))
		drawText(screen, x+(width-subLen)/2, titleY+2, c.subtitle, hintStyle)
	}

	c.DrawDivider(screen, y+headerRows-1)
}

// DrawDivider draws a horizontal divider at the given y position.
func (c *MenuCard) DrawDivider(screen tcell.Screen, divY int) {
	c.drawRule(screen, divY, '├', '─', '┤')
}

// ContentRect returns the padded area inside the border below the header.
func (c *MenuCard) ContentRect() (int, int, int, int) {
	x, y, width, height := c.GetInnerRect()
	return x + 3, y + headerRows, width - 6, height - headerRows - 1
}

// SetFocused sets the focus state of the card.
func (c *MenuCard) SetFocused(focused bool) {
	c.focused = focused
}

func (c *MenuCard) borderStyle() tcell.Style {
	borderColor := MenuColors.Border
	if c.focused {
		borderColor = MenuColors.BorderFocus
	}
	return tcell.StyleDefault.Foreground(borderColor).Background(MenuColors.CardBG)
}

func (c *MenuCard) drawRule(screen tcell.Screen, row int, left, fill, right rune) {
	x, _, width, _ := c.GetInnerRect()
	style := c.borderStyle()
	screen.SetContent(x, row, left, nil, style)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, row, fill, nil, style)
	}
	screen.SetContent(x+width-1, row, right, nil, style)
}

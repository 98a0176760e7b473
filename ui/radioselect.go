package ui

import (
	"github.com/gdamore/tcell/v2"
)

// RadioOption represents a single radio button option.
type RadioOption struct {
	Label       string
	Description string
}

// RadioSelect is a radio button group component.
type RadioSelect struct {
	label    string
	options  []RadioOption
	selected int
	focused  bool
	onChange func(int)

	// screen row of each option as last drawn, and the left edge
	optionRows []int
	drawX      int
	drawW      int
}

// NewRadioSelect creates a new radio select component.
func NewRadioSelect(label string, options []RadioOption, initial int, onChange func(int)) *RadioSelect {
	if initial < 0 || initial >= len(options) {
		initial = 0
	}
	return &RadioSelect{
		label:    label,
		options:  options,
		selected: initial,
		onChange: onChange,
	}
}

// SetFocused sets the focus state.
func (r *RadioSelect) SetFocused(focused bool) {
	r.focused = focused
}

// HandleKey processes keyboard input. Returns true if handled.
func (r *RadioSelect) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyUp:
		r.SetSelected(r.selected - 1)
		return true
	case tcell.KeyDown:
		r.SetSelected(r.selected + 1)
		return true
	case tcell.KeyRune:
		switch event.Rune() {
		case 'k':
			r.SetSelected(r.selected - 1)
			return true
		case 'j':
			r.SetSelected(r.selected + 1)
			return true
		}
	}
	return false
}

// SelectAt selects the option drawn on screen row y, if x falls inside the
// component. Returns true if an option was hit.
func (r *RadioSelect) SelectAt(x, y int) bool {
	if x < r.drawX || x >= r.drawX+r.drawW {
		return false
	}
	for i, row := range r.optionRows {
		if row == y {
			r.SetSelected(i)
			return true
		}
	}
	return false
}

// Draw renders the component and returns the number of rows used.
func (r *RadioSelect) Draw(screen tcell.Screen, x, y, width int) int {
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)
	labelStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Background(MenuColors.CardBG)
	accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)
	selectedStyle := tcell.StyleDefault.Foreground(MenuColors.Selected).Background(MenuColors.CardBG)
	unselectedStyle := tcell.StyleDefault.Foreground(MenuColors.Unselected).Background(MenuColors.CardBG)
	hintStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)

	r.drawX, r.drawW = x, width
	r.optionRows = r.optionRows[:0]

	// ◈ Label
	screen.SetContent(x, y, '◈', nil, accentStyle)
	drawText(screen, x+2, y, r.label, labelStyle)
	row := y + 1

	for i, opt := range r.options {
		r.optionRows = append(r.optionRows, row)
		col := x + 2

		if r.focused && i == r.selected {
			screen.SetContent(col, row, '▸', nil, selectedStyle)
		} else {
			screen.SetContent(col, row, ' ', nil, bgStyle)
		}
		col += 2

		style, bullet := unselectedStyle, '○'
		if i == r.selected {
			style, bullet = selectedStyle, '●'
		}
		screen.SetContent(col, row, bullet, nil, style)
		col += 2

		drawText(screen, col, row, opt.Label, style)
		col += len([]rune(opt.Label))
		if opt.Description != "" {
			drawText(screen, col+1, row, opt.Description, hintStyle)
		}
		row++
	}

	return row - y
}

// Selected returns the currently selected index.
func (r *RadioSelect) Selected() int {
	return r.selected
}

// SetSelected sets the selected index. Out of range values are ignored.
func (r *RadioSelect) SetSelected(index int) {
	if index < 0 || index >= len(r.options) || index == r.selected {
		return
	}
	r.selected = index
	if r.onChange != nil {
		r.onChange(r.selected)
	}
}

package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// LevelSlider is a horizontal slider component for picking a value in a range.
type LevelSlider struct {
	label    string
	min      int
	max      int
	value    int
	focused  bool
	onChange func(int)
	format   func(int) string
}

// NewLevelSlider creates a new level slider. The initial value is clamped into range.
func NewLevelSlider(label string, min, max, initial int, onChange func(int)) *LevelSlider {
	if initial < min {
		initial = min
	}
	if initial > max {
		initial = max
	}
	return &LevelSlider{
		label:    label,
		min:      min,
		max:      max,
		value:    initial,
		onChange: onChange,
		format:   strconv.Itoa,
	}
}

// SetFormatter changes how the value is printed next to the bar.
func (s *LevelSlider) SetFormatter(format func(int) string) *LevelSlider {
	s.format = format
	return s
}

// SetFocused sets the focus state.
func (s *LevelSlider) SetFocused(focused bool) {
	s.focused = focused
}

// HandleKey processes keyboard input. Returns true if handled.
func (s *LevelSlider) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyLeft:
		s.SetValue(s.value - 1)
		return true
	case tcell.KeyRight:
		s.SetValue(s.value + 1)
		return true
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			s.SetValue(s.value - 1)
			return true
		case 'l':
			s.SetValue(s.value + 1)
			return true
		}
	}
	return false
}

// Draw renders the slider and returns the number of rows used.
func (s *LevelSlider) Draw(screen tcell.Screen, x, y, width int) int {
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)
	labelStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Background(MenuColors.CardBG)
	accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)
	selectedStyle := tcell.StyleDefault.Foreground(MenuColors.Selected).Background(MenuColors.CardBG)
	unselectedStyle := tcell.StyleDefault.Foreground(MenuColors.Unselected).Background(MenuColors.CardBG)

	col := x
	if s.focused {
		screen.SetContent(col, y, '▸', nil, selectedStyle)
	} else {
		screen.SetContent(col, y, ' ', nil, bgStyle)
	}
	col += 2

	screen.SetContent(col, y, '◈', nil, accentStyle)
	col += 2
	drawText(screen, col, y, s.label, labelStyle)
	col += len([]rune(s.label)) + 3

	arrowStyle := unselectedStyle
	if s.focused {
		arrowStyle = selectedStyle
	}
	screen.SetContent(col, y, '◀', nil, arrowStyle)
	col += 2

	filled := s.value - s.min
	for i := 0; i < s.max-s.min; i++ {
		char, style := '░', unselectedStyle
		if i < filled {
			char, style = '█', selectedStyle
		}
		screen.SetContent(col, y, char, nil, style)
		col++
	}
	col++

	valueStr := s.format(s.value)
	drawText(screen, col, y, valueStr, labelStyle)
	col += len([]rune(valueStr)) + 1

	screen.SetContent(col, y, '▶', nil, arrowStyle)
	return 1
}

// Value returns the current slider value.
func (s *LevelSlider) Value() int {
	return s.value
}

// SetValue sets the slider value. Out of range values are ignored.
func (s *LevelSlider) SetValue(v int) {
	if v < s.min || v > s.max || v == s.value {
		return
	}
	s.value = v
	if s.onChange != nil {
		s.onChange(s.value)
	}
}

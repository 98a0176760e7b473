package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"goban/engine"
	"goban/opponent"
	"goban/rules"
)

const (
	menuWidth  = 54
	menuHeight = 24

	// The reply delay slider moves in steps of delayStep.
	delayStep     = 100 * time.Millisecond
	maxDelaySteps = 20
)

var boardSizes = []int{9, 13, 19}

var opponentChoices = []struct {
	name string
	opt  RadioOption
}{
	{opponent.None, RadioOption{Label: "Two players", Description: "share the keyboard"}},
	{opponent.First, RadioOption{Label: "Computer", Description: "first free point"}},
	{opponent.Random, RadioOption{Label: "Computer", Description: "random point"}},
}

// menuItem is a focusable control inside the menu card.
type menuItem interface {
	SetFocused(bool)
	HandleKey(*tcell.EventKey) bool
}

// MenuHandlers are the actions behind the menu buttons.
type MenuHandlers struct {
	Play     func(engine.GameConfig)
	Tutorial func()
	Colors   func()
	Exit     func()
}

// GameSetupUI is the main menu: game options on a card with the page buttons
// underneath.
type GameSetupUI struct {
	*tview.Box
	card *MenuCard

	sizes     []int
	sizeRadio *RadioSelect
	oppRadio  *RadioSelect
	delay     *LevelSlider
	buttons   []*MenuButton

	items []menuItem
	focus int

	computerColor rules.Color
	handlers      MenuHandlers

	// The configured delay is used as is until the slider is moved, since
	// it need not fall on a slider step.
	configDelay  time.Duration
	delayTouched bool
}

// NewGameSetup creates the main menu with defaults preselected. A board size
// outside the usual three is offered as an extra choice.
func NewGameSetup(defaults engine.GameConfig, h MenuHandlers) *GameSetupUI {
	s := &GameSetupUI{
		Box:           tview.NewBox(),
		card:          NewMenuCard("G O B A N").SetSubtitle("Welcome to Go!"),
		computerColor: defaults.ComputerColor,
		handlers:      h,
		configDelay:   defaults.ReplyDelay,
	}

	s.sizes = append([]int(nil), boardSizes...)
	sizeIndex := indexOf(s.sizes, defaults.BoardSize)
	if sizeIndex < 0 {
		s.sizes = append(s.sizes, defaults.BoardSize)
		sizeIndex = len(s.sizes) - 1
	}
	sizeOptions := make([]RadioOption, len(s.sizes))
	for i, n := range s.sizes {
		sizeOptions[i] = RadioOption{Label: fmt.Sprintf("%dx%d", n, n)}
	}
	s.sizeRadio = NewRadioSelect("Board Size", sizeOptions, sizeIndex, nil)

	oppOptions := make([]RadioOption, len(opponentChoices))
	oppIndex := 0
	for i, c := range opponentChoices {
		oppOptions[i] = c.opt
		if c.name == defaults.Opponent {
			oppIndex = i
		}
	}
	s.oppRadio = NewRadioSelect("Opponent", oppOptions, oppIndex, nil)

	s.delay = NewLevelSlider("Reply delay", 0, maxDelaySteps, int(defaults.ReplyDelay/delayStep), func(int) {
		s.delayTouched = true
	}).SetFormatter(func(v int) string {
		if !s.delayTouched {
			return s.configDelay.String()
		}
		return (time.Duration(v) * delayStep).String()
	})

	s.buttons = []*MenuButton{
		NewMenuButton("Play Game", true, s.play),
		NewMenuButton("Tutorial", false, h.Tutorial),
		NewMenuButton("Board Color", false, h.Colors),
		NewMenuButton("Exit", false, h.Exit),
	}

	s.items = []menuItem{s.sizeRadio, s.oppRadio, s.delay}
	for _, b := range s.buttons {
		s.items = append(s.items, b)
	}
	s.focus = len(s.items) - len(s.buttons) // Play Game
	s.items[s.focus].SetFocused(true)
	return s
}

// Config returns the game configuration currently selected in the menu.
func (s *GameSetupUI) Config() engine.GameConfig {
	return engine.GameConfig{
		BoardSize:     s.sizes[s.sizeRadio.Selected()],
		Opponent:      opponentChoices[s.oppRadio.Selected()].name,
		ComputerColor: s.computerColor,
		ReplyDelay:    s.replyDelay(),
	}
}

func (s *GameSetupUI) replyDelay() time.Duration {
	if !s.delayTouched {
		return s.configDelay
	}
	return time.Duration(s.delay.Value()) * delayStep
}

func (s *GameSetupUI) play() {
	if s.handlers.Play != nil {
		s.handlers.Play(s.Config())
	}
}

func (s *GameSetupUI) setFocus(i int) {
	n := len(s.items)
	i = ((i % n) + n) % n
	s.items[s.focus].SetFocused(false)
	s.focus = i
	s.items[s.focus].SetFocused(true)
}

func (s *GameSetupUI) focusOnButton() bool {
	return s.focus >= len(s.items)-len(s.buttons)
}

// Draw renders the card centered in the available space.
func (s *GameSetupUI) Draw(screen tcell.Screen) {
	s.Box.DrawForSubclass(screen, s)
	x, y, width, height := s.GetInnerRect()

	w, h := min(menuWidth, width), min(menuHeight, height)
	s.card.SetRect(x+(width-w)/2, y+(height-h)/2, w, h)
	s.card.SetFocused(s.HasFocus())
	s.card.Draw(screen)

	cx, cy, cw, ch := s.card.ContentRect()
	if cw < 20 || ch < 16 {
		return
	}

	row := cy + 1
	row += s.sizeRadio.Draw(screen, cx, row, cw) + 1
	row += s.oppRadio.Draw(screen, cx, row, cw) + 1
	row += s.delay.Draw(screen, cx-2, row, cw) + 1

	col := cx
	for _, b := range s.buttons {
		col += b.Draw(screen, col, row) + 1
	}

	hintStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)
	drawText(screen, cx, cy+ch-1, "Tab next  ↑↓ choose  ←→ adjust  ⏎ select", hintStyle)
}

// InputHandler moves focus with Tab and hands other keys to the focused item.
func (s *GameSetupUI) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return s.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyTab:
			s.setFocus(s.focus + 1)
			return
		case tcell.KeyBacktab:
			s.setFocus(s.focus - 1)
			return
		case tcell.KeyEscape:
			if s.handlers.Exit != nil {
				s.handlers.Exit()
			}
			return
		}
		if s.focusOnButton() {
			switch event.Key() {
			case tcell.KeyLeft:
				if s.focus > len(s.items)-len(s.buttons) {
					s.setFocus(s.focus - 1)
				}
				return
			case tcell.KeyRight:
				if s.focus < len(s.items)-1 {
					s.setFocus(s.focus + 1)
				}
				return
			case tcell.KeyUp:
				s.setFocus(len(s.items) - len(s.buttons) - 1)
				return
			}
		}
		s.items[s.focus].HandleKey(event)
	})
}

// MouseHandler lets buttons and radio options be clicked.
func (s *GameSetupUI) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (bool, tview.Primitive) {
	return s.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (bool, tview.Primitive) {
		if !s.InRect(event.Position()) {
			return false, nil
		}
		if action != tview.MouseLeftClick {
			return false, nil
		}
		setFocus(s)
		x, y := event.Position()
		for i, b := range s.buttons {
			if b.Contains(x, y) {
				s.setFocus(len(s.items) - len(s.buttons) + i)
				b.Select()
				return true, nil
			}
		}
		for i, r := range []*RadioSelect{s.sizeRadio, s.oppRadio} {
			if r.SelectAt(x, y) {
				s.setFocus(i)
				return true, nil
			}
		}
		return true, nil
	})
}

func indexOf(values []int, v int) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return -1
}

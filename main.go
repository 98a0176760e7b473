// goban is a terminal application to play Go on one keyboard, alone against
// a simple computer opponent or with a friend.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"goban/config"
	"goban/engine"
	"goban/engine/local"
	"goban/opponent"
	"goban/rules"
	"goban/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags. Zero values leave the config file setting alone.
var (
	flagBoardSize  = flag.Int("boardsize", 0, "Board size, e.g. 9, 13 or 19")
	flagOpponent   = flag.String("opponent", "", "Opponent: none, first or random")
	flagComputer   = flag.String("computer", "", "Color played by the computer: black or white")
	flagDelay      = flag.Duration("delay", -1, "Pause before the computer replies, e.g. 300ms")
	flagQuickStart = flag.Bool("play", false, "Start a game immediately")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (fullscreen board)")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.GoBoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var moveInput *tview.InputField
var cfg *config.Config

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("goban %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "goban: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		return err
	}

	logFile, err := setupLogging(cfg.Game.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()

	defaults, err := gameConfig(cfg.Game)
	if err != nil {
		return err
	}
	log.Info().Str("version", Version).Int("size", defaults.BoardSize).Str("opponent", defaults.Opponent).Msg("starting")

	quickStart := *flagQuickStart || *flagFocus

	app = tview.NewApplication().EnableMouse(true)
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ⬡ goban ")

	gameHint = tview.NewTextView()
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameBoard = ui.NewGoBoard(app, cfg, gameHint)
	gameBoard.SetErrorHandler(showMoveError)

	moveInput = tview.NewInputField().
		SetLabel("  Move: ").
		SetFieldWidth(8).
		SetPlaceholder("D4")
	moveInput.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter && moveInput.GetText() != "" {
			gameBoard.PlayVertex(moveInput.GetText())
		}
		moveInput.SetText("")
		app.SetFocus(gameBoard.Box)
	})

	gameFrame = ui.CreateGameLayout(gameBoard, gameHint, moveInput)
	gameBoard.Box.SetInputCapture(boardKeys)

	setupUI := ui.NewGameSetup(defaults, ui.MenuHandlers{
		Play:     startGame,
		Tutorial: func() { rootPage.SwitchToPage("tutorial") },
		Colors:   func() { rootPage.SwitchToPage("colors") },
		Exit:     app.Stop,
	})

	colorConfig := ui.NewColorConfig(cfg, func() {
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("menu")
	}, func(err error) {
		log.Error().Err(err).Msg("saving config")
		showModal(fmt.Sprintf("Could not save settings:\n%s", err))
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("menu")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	tutorial := ui.NewTutorial(func() { rootPage.SwitchToPage("menu") })

	rootPage.AddPage("menu", setupUI, true, !quickStart)
	rootPage.AddPage("tutorial", tutorial, true, false)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)

	if quickStart {
		startGame(defaults)
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	defer gameBoard.Close()
	return app.SetRoot(rootPage, true).Run()
}

// boardKeys handles keys on the game page.
func boardKeys(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		gameBoard.MoveSelection(0, -1)
	case tcell.KeyDown:
		gameBoard.MoveSelection(0, 1)
	case tcell.KeyLeft:
		gameBoard.MoveSelection(-1, 0)
	case tcell.KeyRight:
		gameBoard.MoveSelection(1, 0)
	case tcell.KeyEnter:
		if sel := gameBoard.SelectedTile(); sel != nil {
			gameBoard.PlayMove(sel.X, sel.Y)
		}
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			gameBoard.MoveSelection(-1, 0)
		case 'j':
			gameBoard.MoveSelection(0, 1)
		case 'k':
			gameBoard.MoveSelection(0, -1)
		case 'l':
			gameBoard.MoveSelection(1, 0)
		case 'q':
			// The game is discarded; Play Game starts a fresh one.
			gameBoard.Close()
			rootPage.SwitchToPage("menu")
			return nil
		case 'r':
			gameBoard.Reset()
		case ':':
			if gameBoard.IsFocusMode() {
				gameBoard.SetFocusMode(false)
				ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint, moveInput)
			}
			app.SetFocus(moveInput)
			return nil
		case 'f':
			if gameBoard.ToggleFocusMode() {
				ui.BuildFocusLayout(gameFrame, gameBoard)
			} else {
				ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint, moveInput)
			}
		}
	}
	return event
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	eng, err := local.New(gameCfg)
	if err == nil {
		err = gameBoard.ConnectEngine(eng)
	}
	if err != nil {
		log.Error().Err(err).Msg("starting game")
		showModal(fmt.Sprintf("Failed to start game:\n%s", err))
		return
	}
	rootPage.SwitchToPage("gameview")
	app.SetFocus(gameBoard.Box)
}

// showMoveError explains a rejected move.
func showMoveError(err error) {
	switch {
	case errors.Is(err, rules.ErrOccupied):
		showModal("Invalid Move\n\nThis position is already occupied.")
	case errors.Is(err, rules.ErrOutOfBounds):
		showModal("Invalid Move\n\nThat point is not on the board.")
	default:
		showModal(fmt.Sprintf("Invalid Move\n\n%s", err))
	}
}

// showModal shows a message over the current page until dismissed.
func showModal(text string) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.RemovePage("error")
		})
	rootPage.AddPage("error", modal, true, true)
	app.SetFocus(modal)
}

// gameConfig turns the config file's game section and the command-line
// flags into an engine configuration.
func gameConfig(c config.GameConfig) (engine.GameConfig, error) {
	gameCfg := engine.GameConfig{
		BoardSize:  c.BoardSize,
		Opponent:   c.Opponent,
		ReplyDelay: time.Duration(c.ReplyDelayMs) * time.Millisecond,
	}
	computer := c.ComputerColor

	if *flagBoardSize > 0 {
		gameCfg.BoardSize = *flagBoardSize
	}
	if *flagOpponent != "" {
		gameCfg.Opponent = *flagOpponent
	}
	if *flagComputer != "" {
		computer = *flagComputer
	}
	if *flagDelay >= 0 {
		gameCfg.ReplyDelay = *flagDelay
	}

	switch computer {
	case "black", "b":
		gameCfg.ComputerColor = rules.Black
	case "white", "w":
		gameCfg.ComputerColor = rules.White
	default:
		return gameCfg, fmt.Errorf("computer color must be black or white, got %q", computer)
	}

	if _, err := opponent.New(gameCfg.Opponent); err != nil {
		return gameCfg, err
	}
	if gameCfg.BoardSize < 1 {
		return gameCfg, fmt.Errorf("%w: %d", rules.ErrBoardSize, gameCfg.BoardSize)
	}
	return gameCfg, nil
}

// setupLogging sends the global logger to the log file, since the terminal
// belongs to the UI.
func setupLogging(level string) (*os.File, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	path, err := config.LogPath()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

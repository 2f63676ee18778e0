package debugger

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TUI is the text user interface over an Inspector
type TUI struct {
	Inspector *Inspector
	App       *tview.Application
	History   *CommandHistory

	// Layout containers
	MainLayout *tview.Flex
	LeftPanel  *tview.Flex
	RightPanel *tview.Flex

	// View panels
	RegisterView *tview.TextView
	ElementView  *tview.TextView
	MaskView     *tview.TextView
	OutputView   *tview.TextView
	StatusView   *tview.TextView
	CommandInput *tview.InputField
}

// NewTUI creates a text user interface for the given inspector
func NewTUI(inspector *Inspector) *TUI {
	t := &TUI{
		Inspector: inspector,
		App:       tview.NewApplication(),
		History:   NewCommandHistory(),
	}

	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	t.refresh()

	return t
}

// initializeViews creates all the view panels
func (t *TUI) initializeViews() {
	t.RegisterView = tview.NewTextView().
		SetScrollable(true).
		SetWrap(false)
	t.RegisterView.SetBorder(true).SetTitle(" Registers ")

	t.ElementView = tview.NewTextView().
		SetScrollable(true).
		SetWrap(false)
	t.ElementView.SetBorder(true).SetTitle(" Elements ")

	t.MaskView = tview.NewTextView().
		SetScrollable(false).
		SetWrap(true)
	t.MaskView.SetBorder(true).SetTitle(" Mask (v0) ")

	t.OutputView = tview.NewTextView().
		SetScrollable(true).
		SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.StatusView = tview.NewTextView().
		SetScrollable(false).
		SetWrap(false)

	t.CommandInput = tview.NewInputField().
		SetLabel("> ").
		SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)

	// up/down arrows recall command history
	t.CommandInput.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp:
			if cmd := t.History.Previous(); cmd != "" {
				t.CommandInput.SetText(cmd)
			}
			return nil
		case tcell.KeyDown:
			t.CommandInput.SetText(t.History.Next())
			return nil
		}
		return event
	})
}

// buildLayout arranges the panels
func (t *TUI) buildLayout() {
	t.LeftPanel = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.RegisterView, 0, 1, false)

	t.RightPanel = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.ElementView, 0, 2, false).
		AddItem(t.MaskView, 4, 0, false).
		AddItem(t.OutputView, 0, 1, false)

	body := tview.NewFlex().
		AddItem(t.LeftPanel, 0, 1, false).
		AddItem(t.RightPanel, 0, 1, false)

	t.MainLayout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, false).
		AddItem(t.StatusView, 1, 0, false).
		AddItem(t.CommandInput, 3, 0, true)
}

// setupKeyBindings installs the global key handlers
func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC {
			t.App.Stop()
			return nil
		}
		return event
	})
}

// handleCommand runs one command line from the input field
func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	line := t.CommandInput.GetText()
	t.CommandInput.SetText("")
	t.History.Add(line)

	response, quit := t.Inspector.HandleCommand(line)
	if quit {
		t.App.Stop()
		return
	}
	if response != "" {
		fmt.Fprintf(t.OutputView, "%s\n", response)
		t.OutputView.ScrollToEnd()
	}
	t.refresh()
}

// refresh re-renders every panel from the inspector state
func (t *TUI) refresh() {
	t.RegisterView.SetText(t.Inspector.RegisterDump())
	t.ElementView.SetText(t.Inspector.ElementDump())
	t.MaskView.SetText(t.Inspector.MaskDump())
	t.StatusView.SetText(t.Inspector.StatusLine())
}

// Run starts the interface and blocks until quit
func (t *TUI) Run() error {
	return t.App.SetRoot(t.MainLayout, true).Run()
}

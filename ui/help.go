package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const helpText = `[yellow::b]Keyboard Shortcuts[-:-:-]

[lightgreen]Playback Controls:[-]
  [white]Space[-]       Play/Pause (starts the playlist when idle)
  [white]Enter[-]       Play selected song
  [white]n / →[-]       Next song
  [white]p / ←[-]       Previous song
  [white]+ / -[-]       Volume up/down

[lightgreen]Navigation:[-]
  [white]1 / 2 / 3[-]   Songs / Albums / Artists
  [white]j / k[-]       Move selection down/up
  [white]gg / G[-]      First / last row
  [white]/[-]           Search
  [white]?[-]           Show this help panel

[lightgreen]General:[-]
  [white]ESC[-]         Close modal / Clear filter / Exit program
  [white]Ctrl+C[-]      Exit program

[yellow]Press ESC or ? to close this help panel[-]
`

// HelpView represents the keyboard shortcuts help interface
type HelpView struct {
	app       *App
	container *tview.Flex
	textView  *tview.TextView
	isActive  bool
}

// NewHelpView creates a new help view
func NewHelpView(app *App) *HelpView {
	hv := &HelpView{
		app: app,
	}

	hv.textView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true).
		SetText(helpText)

	hv.container = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(hv.textView, 0, 1, true)

	hv.container.SetBorder(true).
		SetTitle(" Help (ESC to close) ").
		SetBorderColor(tcell.ColorYellow)

	return hv
}

// Show displays the help view as a centered modal
func (hv *HelpView) Show() {
	modal := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().
			SetDirection(tview.FlexColumn).
			AddItem(nil, 0, 1, false).
			AddItem(hv.container, 60, 0, true).
			AddItem(nil, 0, 1, false), 24, 0, true).
		AddItem(nil, 0, 1, false)

	hv.isActive = true
	hv.app.tviewApp.SetRoot(modal, true)
	hv.app.tviewApp.SetFocus(hv.textView)
}

// Close hides the help view
func (hv *HelpView) Close() {
	hv.isActive = false
	hv.app.tviewApp.SetRoot(hv.app.rootFlex, true)
	hv.app.focusCurrentView()
}

// IsActive returns whether the help view is active
func (hv *HelpView) IsActive() bool {
	return hv.isActive
}

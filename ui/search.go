package ui

import (
	"github.com/gdamore/tcell/v2"
)

// setupSearchInput wires the search field to the selection engine. Every
// keystroke goes through the debounced Search; ENTER searches at once.
func (a *App) setupSearchInput() {
	a.searchInput.SetChangedFunc(func(text string) {
		if a.quietSearch {
			return
		}
		a.engine.Search(text)
	})

	// Focusing the field starts a fresh query without recomputing Display
	a.searchInput.SetFocusFunc(func() {
		a.clearSearchText()
	})

	a.searchInput.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			a.engine.SearchNow(a.searchInput.GetText())
			a.focusSongs()
		case tcell.KeyEscape, tcell.KeyTab:
			a.focusSongs()
		}
	})

	a.searchInput.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyDown {
			a.focusSongs()
			return nil
		}
		return event
	})
}

// clearSearchText empties the field and the engine's query text
func (a *App) clearSearchText() {
	a.quietSearch = true
	a.searchInput.SetText("")
	a.quietSearch = false
	a.engine.ClearSearch()
}

func (a *App) focusSongs() {
	a.switchView(viewSongs)
}

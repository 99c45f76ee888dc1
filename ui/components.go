package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/yhkl-dev/soniferous/collection"
	"github.com/yhkl-dev/soniferous/domain"
	"github.com/yhkl-dev/soniferous/selection"
)

const (
	pageSongs   = "songs"
	pageAlbums  = "albums"
	pageArtists = "artists"
)

var songHeaders = []string{"#", "Title", "Artist", "Album", "Time"}

var (
	rowStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDefault)
	playingStyle = tcell.StyleDefault.Foreground(tcell.ColorLightGreen).Attributes(tcell.AttrBold)
)

// createHomepage sets up the UI layout
func (a *App) createHomepage() {
	a.progressBar = tview.NewTextView().
		SetDynamicColors(true)
	a.progressBar.SetBorder(false)

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false).
		SetWrap(true).
		SetText("\n[yellow]Loading library...")
	a.statusBar.SetBorder(false)

	a.searchInput = tview.NewInputField().
		SetLabel("[yellow]Search: ").
		SetFieldWidth(0).
		SetPlaceholder("Type to search, ENTER to search now, ESC to leave...").
		SetFieldBackgroundColor(tcell.ColorBlack)
	a.searchInput.SetBorder(false)

	a.songTable = tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)
	a.songTable.SetBorder(false)
	a.songTable.SetSelectedStyle(tcell.StyleDefault.
		Background(tcell.ColorDarkGreen).
		Foreground(tcell.ColorWhite))

	a.albumList = newBrowseList(" Albums ")
	a.artistList = newBrowseList(" Artists ")

	a.pages = tview.NewPages().
		AddPage(pageSongs, a.songTable, true, true).
		AddPage(pageAlbums, a.albumList, true, false).
		AddPage(pageArtists, a.artistList, true, false)

	a.helpView = NewHelpView(a)

	a.setupTableHeaders()
	a.setupSearchInput()
	a.setupInputHandlers()

	leftPanel := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.statusBar, 0, 1, false)

	rightPanel := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.searchInput, 1, 0, false).
		AddItem(a.pages, 0, 1, true)

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(leftPanel, 0, 1, false).
		AddItem(rightPanel, 0, 2, true)

	a.rootFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mainLayout, 0, 1, true).
		AddItem(a.progressBar, 2, 0, false)

	a.tviewApp.SetRoot(a.rootFlex, true)
}

func newBrowseList(title string) *tview.List {
	list := tview.NewList().
		ShowSecondaryText(true).
		SetHighlightFullLine(true).
		SetSelectedBackgroundColor(tcell.ColorDarkGreen)
	list.SetBorder(false).SetTitle(title)
	return list
}

// setupTableHeaders sets up the table header row
func (a *App) setupTableHeaders() {
	headerStyle := tcell.StyleDefault.Foreground(tcell.ColorGray).Attributes(tcell.AttrBold)

	for col, h := range songHeaders {
		a.songTable.SetCell(0, col, tview.NewTableCell(h).SetStyle(headerStyle).SetSelectable(false))
	}
}

// setupInputHandlers sets up keyboard input handlers
func (a *App) setupInputHandlers() {
	a.songTable.SetSelectedFunc(func(row, column int) {
		song, ok := a.store.At(collection.Display, row-1)
		if !ok {
			return
		}
		a.report(a.session.SelectSong(song.ID))
	})

	a.albumList.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		if index < 0 || index >= len(a.albums) {
			return
		}
		a.engine.SelectAlbum(a.albums[index].ID)
		a.switchView(viewSongs)
	})
	a.artistList.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		if index < 0 || index >= len(a.artists) {
			return
		}
		a.engine.SelectArtist(a.artists[index].ID)
		a.switchView(viewSongs)
	})

	a.registerKeyBindings()

	a.tviewApp.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Handle modal views first
		if a.helpView != nil && a.helpView.IsActive() {
			if event.Key() == tcell.KeyEscape || event.Rune() == '?' {
				a.helpView.Close()
				return nil
			}
			return event
		}
		if event.Key() == tcell.KeyCtrlC {
			a.handleExit()
			return nil
		}
		// The search field keeps its own keys
		if a.searchInput.HasFocus() {
			return event
		}
		if a.keys.HandleKey(event) {
			return nil
		}
		return event
	})
}

func (a *App) registerKeyBindings() {
	km := a.keys
	bind := func(name string, handler func(), keys []tcell.Key, runes ...rune) {
		km.RegisterKeyBinding(KeyAction{name: name, handler: handler}, keys, runes)
	}

	bind("toggle", func() { a.report(a.session.TogglePause()) }, nil, ' ')
	bind("next", func() { a.report(a.session.Next()) }, []tcell.Key{tcell.KeyRight}, 'n', 'N')
	bind("previous", func() { a.report(a.session.Previous()) }, []tcell.Key{tcell.KeyLeft}, 'p', 'P')
	bind("search", func() { a.tviewApp.SetFocus(a.searchInput) }, nil, '/')
	bind("help", a.helpView.Show, nil, '?')
	bind("songs", func() { a.switchView(viewSongs) }, nil, '1')
	bind("albums", func() { a.switchView(viewAlbums) }, nil, '2')
	bind("artists", func() { a.switchView(viewArtists) }, nil, '3')
	bind("volumeUp", func() { a.changeVolume(volumeStep) }, nil, '+', '=')
	bind("volumeDown", func() { a.changeVolume(-volumeStep) }, nil, '-', '_')
	bind("down", func() { a.moveSelection(1) }, nil, 'j')
	bind("up", func() { a.moveSelection(-1) }, nil, 'k')
	bind("goEnd", func() { a.jumpSelection(false) }, nil, 'G')
	bind("back", a.handleBack, []tcell.Key{tcell.KeyEscape})
	km.RegisterSequence(KeyAction{name: "goStart", handler: func() { a.jumpSelection(true) }}, "gg")
}

// handleBack leaves a browse view, then drops the filter, then exits
func (a *App) handleBack() {
	switch {
	case a.view != viewSongs:
		a.switchView(viewSongs)
	case a.engine.Filter().Kind != selection.FilterAll:
		a.engine.ShowAll()
	default:
		a.handleExit()
	}
}

func (a *App) switchView(v viewKind) {
	a.view = v
	switch v {
	case viewAlbums:
		a.pages.SwitchToPage(pageAlbums)
	case viewArtists:
		a.pages.SwitchToPage(pageArtists)
	default:
		a.pages.SwitchToPage(pageSongs)
	}
	a.focusCurrentView()
}

func (a *App) focusCurrentView() {
	switch a.view {
	case viewAlbums:
		a.tviewApp.SetFocus(a.albumList)
	case viewArtists:
		a.tviewApp.SetFocus(a.artistList)
	default:
		a.tviewApp.SetFocus(a.songTable)
	}
}

func (a *App) moveSelection(delta int) {
	switch a.view {
	case viewAlbums:
		a.albumList.SetCurrentItem(clampIndex(a.albumList.GetCurrentItem()+delta, a.albumList.GetItemCount()))
	case viewArtists:
		a.artistList.SetCurrentItem(clampIndex(a.artistList.GetCurrentItem()+delta, a.artistList.GetItemCount()))
	default:
		n := a.store.Len(collection.Display)
		if n == 0 {
			return
		}
		row, _ := a.songTable.GetSelection()
		a.songTable.Select(clampIndex(row-1+delta, n)+1, 0)
	}
}

func (a *App) jumpSelection(first bool) {
	switch a.view {
	case viewAlbums:
		a.albumList.SetCurrentItem(edgeIndex(first, a.albumList.GetItemCount()))
	case viewArtists:
		a.artistList.SetCurrentItem(edgeIndex(first, a.artistList.GetItemCount()))
	default:
		if n := a.store.Len(collection.Display); n > 0 {
			a.songTable.Select(edgeIndex(first, n)+1, 0)
		}
	}
}

func clampIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return max(0, min(n-1, i))
}

func edgeIndex(first bool, n int) int {
	if first || n == 0 {
		return 0
	}
	return n - 1
}

// renderSongTable renders the displayed songs
func (a *App) renderSongTable(songs []*domain.Song) {
	if a.songTable == nil {
		return
	}
	a.songTable.Clear()
	a.setupTableHeaders()

	for i, song := range songs {
		a.setSongRow(i, song)
	}
	if len(songs) > 0 {
		a.songTable.Select(1, 0)
	}
	a.songTable.ScrollToBeginning()
}

func (a *App) setSongRow(index int, song *domain.Song) {
	style := rowStyle
	if song.IsPlaying {
		style = playingStyle
	}
	for col, text := range SongColumns(song, index, a.cfg.UI.MaxColumnWidth) {
		cell := tview.NewTableCell(tview.Escape(text)).SetStyle(style)
		switch col {
		case 0, 4:
			cell.SetAlign(tview.AlignRight)
		case 1:
			cell.SetExpansion(1)
		}
		a.songTable.SetCell(index+1, col, cell)
	}
}

// restyleSong updates the row of a song whose playing flag changed
func (a *App) restyleSong(change domain.PlayingChange) {
	if a.songTable == nil {
		return
	}
	i := a.store.Index(collection.Display, change.ID)
	if i < 0 {
		return
	}
	if song, ok := a.store.At(collection.Display, i); ok {
		a.setSongRow(i, song)
	}
}

func (a *App) renderAlbums() {
	a.albumList.Clear()
	for _, album := range a.albums {
		a.albumList.AddItem(
			tview.Escape(Truncate(album.Title, a.cfg.UI.MaxColumnWidth)),
			"[gray]"+tview.Escape(Truncate(album.Artist, a.cfg.UI.MaxColumnWidth)),
			0, nil)
	}
}

func (a *App) renderArtists() {
	a.artistList.Clear()
	for _, artist := range a.artists {
		a.artistList.AddItem(tview.Escape(Truncate(artist.Name, a.cfg.UI.MaxColumnWidth)), "", 0, nil)
	}
}

func (a *App) renderNowPlaying() {
	if a.statusBar == nil || !a.hasTrack {
		return
	}
	a.statusBar.SetText(FormatNowPlaying(a.nowPlaying, a.playing))
}

package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/rivo/tview"

	"github.com/yhkl-dev/soniferous/collection"
	"github.com/yhkl-dev/soniferous/config"
	"github.com/yhkl-dev/soniferous/domain"
	"github.com/yhkl-dev/soniferous/library"
	"github.com/yhkl-dev/soniferous/logger"
	"github.com/yhkl-dev/soniferous/notify"
	"github.com/yhkl-dev/soniferous/playback"
	"github.com/yhkl-dev/soniferous/player"
	"github.com/yhkl-dev/soniferous/selection"
)

type viewKind int

const (
	viewSongs viewKind = iota
	viewAlbums
	viewArtists
)

const volumeStep = 5

// App represents the TUI application
type App struct {
	tviewApp *tview.Application
	cfg      *config.Config
	catalog  library.Catalog
	output   player.AudioOutput
	ctx      context.Context

	store   *collection.Store
	engine  *selection.Engine
	session *playback.Session
	keys    *KeyBindingManager
	subs    []notify.Subscription

	albums     []domain.Album
	artists    []domain.Artist
	view       viewKind
	nowPlaying domain.NowPlaying
	hasTrack   bool
	playing    bool

	rootFlex    *tview.Flex
	pages       *tview.Pages
	songTable   *tview.Table
	albumList   *tview.List
	artistList  *tview.List
	searchInput *tview.InputField
	statusBar   *tview.TextView
	progressBar *tview.TextView
	helpView    *HelpView

	// set while the search text is changed programmatically
	quietSearch bool
}

// NewApp creates a new TUI application with dependency injection
func NewApp(ctx context.Context, cfg *config.Config, catalog library.Catalog, output player.AudioOutput) *App {
	a := &App{
		tviewApp: tview.NewApplication(),
		cfg:      cfg,
		catalog:  catalog,
		output:   output,
		ctx:      ctx,
		store:    collection.NewStore(),
		keys:     NewKeyBindingManager(),
	}
	a.engine = selection.NewEngine(a.store, selection.Options{
		Debounce: cfg.Search.Debounce(),
		Mode:     selection.Mode(cfg.Search.Mode),
		Remote:   catalog,
		Timeout:  cfg.Player.GetHTTPTimeout(),
		Dispatch: a.dispatch,
		Context:  ctx,
	})
	a.session = playback.NewSession(a.store, output, catalog)
	return a
}

// Run starts the application
func (a *App) Run() error {
	a.createHomepage()
	a.subscribe()
	go a.loadMusic()
	go a.handlePlayerEvents()
	go a.updateProgressBar()

	logger.Info("starting soniferous", logger.String("server", a.cfg.Server.URL),
		logger.String("search_mode", string(a.engine.Mode())))
	defer func() {
		for _, s := range a.subs {
			s.Unsubscribe()
		}
		a.engine.Close()
	}()
	return a.tviewApp.Run()
}

// Stop stops the application. It is safe to call from any goroutine.
func (a *App) Stop() {
	if a.tviewApp != nil {
		a.tviewApp.Stop()
	}
}

// dispatch runs f on the tview event loop.
func (a *App) dispatch(f func()) {
	a.tviewApp.QueueUpdateDraw(f)
}

// subscribe connects the renderers to the core notifications.
func (a *App) subscribe() {
	a.subs = append(a.subs,
		a.store.OnReset(collection.Display, func(ev collection.ResetEvent) {
			a.renderSongTable(ev.Songs)
		}),
		a.store.Table().OnPlayingChange(a.restyleSong),
		a.session.OnNowPlaying(func(np domain.NowPlaying) {
			a.nowPlaying = np
			a.hasTrack = true
			a.renderNowPlaying()
		}),
		a.session.OnPlayState(func(playing bool) {
			a.playing = playing
			a.renderNowPlaying()
		}),
	)
}

// loadMusic fetches the catalog and installs it as the Library
func (a *App) loadMusic() {
	snap, err := library.Load(a.ctx, a.catalog)
	a.dispatch(func() {
		if err != nil {
			logger.Error("failed to load library", logger.ErrorField(err))
			a.statusBar.SetText(CreateLibraryUnavailable(err))
			return
		}
		if err := a.store.LoadLibrary(snap.Songs); err != nil {
			logger.Warn("library already loaded", logger.ErrorField(err))
			return
		}
		a.engine.ShowAll()
		a.store.Reset(collection.Playlist, collection.Clone(a.store.IDs(collection.Library)))

		collection.SortAlbums(snap.Albums)
		collection.SortArtists(snap.Artists)
		a.albums = snap.Albums
		a.artists = snap.Artists
		a.renderAlbums()
		a.renderArtists()

		logger.Info("library loaded", logger.Int("songs", a.store.Len(collection.Library)),
			logger.Int("albums", len(a.albums)), logger.Int("artists", len(a.artists)))
		a.statusBar.SetText(CreateWelcomeMessage(a.store.Len(collection.Library), a.cfg.Server.URL))
	})
}

// handlePlayerEvents forwards end-of-track signals to the session
func (a *App) handlePlayerEvents() {
	ended := a.output.Ended()
	for {
		select {
		case _, ok := <-ended:
			if !ok {
				return
			}
			a.dispatch(func() {
				a.report(a.session.OnTrackEnded())
			})
		case <-a.ctx.Done():
			return
		}
	}
}

// updateProgressBar refreshes the progress line once a second
func (a *App) updateProgressBar() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.dispatch(a.renderProgress)
		case <-a.ctx.Done():
			return
		}
	}
}

func (a *App) renderProgress() {
	if a.progressBar == nil {
		return
	}
	if !a.hasTrack {
		a.progressBar.SetText("")
		return
	}

	var currentPos, totalDuration float64
	if p, ok := a.output.(player.Progresser); ok {
		if pos, total, err := p.Progress(); err == nil {
			currentPos, totalDuration = pos, total
		}
	}
	progress := 0.0
	if totalDuration > 0 {
		progress = currentPos / totalDuration
	}

	volumeText := "--"
	if vc, ok := a.output.(player.VolumeController); ok {
		if vol, err := vc.Volume(); err == nil {
			volumeText = fmt.Sprintf("%.0f%%", vol)
		}
	}

	a.progressBar.SetText(
		CreateProgressText(FormatDuration(int(currentPos)), FormatDuration(int(totalDuration)), volumeText) +
			"\n" + CreateProgressBar(progress, 30))
}

func (a *App) changeVolume(delta float64) {
	vc, ok := a.output.(player.VolumeController)
	if !ok {
		return
	}
	vol, err := vc.Volume()
	if err != nil {
		a.report(err)
		return
	}
	a.report(vc.SetVolume(max(0, vol+delta)))
	a.renderProgress()
}

// report logs a failed transition and shows it in the status bar
func (a *App) report(err error) {
	if err == nil {
		return
	}
	logger.Warn("playback error", logger.ErrorField(err))
	if a.statusBar != nil {
		a.statusBar.SetText(fmt.Sprintf("[red]%s", tview.Escape(err.Error())))
	}
}

// handleExit stops the application; the caller releases the output
func (a *App) handleExit() {
	logger.Debug("exit requested")
	a.Stop()
}

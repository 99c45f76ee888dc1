// Package selection computes the Display collection from the Library in
// response to show-all, artist, album and search triggers.
package selection

import (
	"context"
	"fmt"
	"time"

	"github.com/yhkl-dev/soniferous/collection"
	"github.com/yhkl-dev/soniferous/debounce"
	"github.com/yhkl-dev/soniferous/domain"
	"github.com/yhkl-dev/soniferous/logger"
)

// DefaultDebounce is the quiescence window applied to search input.
const DefaultDebounce = 300 * time.Millisecond

// FilterKind names the trigger that produced the current Display
type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterArtist
	FilterAlbum
	FilterSearch
)

func (k FilterKind) String() string {
	switch k {
	case FilterAll:
		return "all"
	case FilterArtist:
		return "artist"
	case FilterAlbum:
		return "album"
	case FilterSearch:
		return "search"
	default:
		return fmt.Sprintf("filter(%d)", int(k))
	}
}

// Filter describes the active Display filter
type Filter struct {
	Kind  FilterKind
	Value string // artist id, album id or raw query
}

// Mode selects where search queries are evaluated
type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

// Searcher runs a query against the backend.
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.Song, error)
}

// Options configures an Engine
type Options struct {
	Debounce time.Duration
	Mode     Mode

	// Remote is required for ModeRemote.
	Remote  Searcher
	Timeout time.Duration

	// Dispatch runs f on the event loop goroutine. Debounced searches and
	// remote responses are delivered through it. Defaults to calling f
	// directly. ModeRemote requires it and falls back to ModeLocal without.
	Dispatch debounce.Dispatcher

	// Scheduler overrides time.AfterFunc for the debounce timer.
	Scheduler debounce.AfterFunc

	// Context bounds remote requests.
	Context context.Context
}

// Engine recomputes Display. All methods must be called from the event loop.
type Engine struct {
	store    *collection.Store
	debounce *debounce.Debouncer
	mode     Mode
	remote   Searcher
	timeout  time.Duration
	dispatch debounce.Dispatcher
	ctx      context.Context

	query     string
	filter    Filter
	remoteGen uint64
}

// NewEngine creates an engine over store.
func NewEngine(store *collection.Store, opts Options) *Engine {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Mode == "" || (opts.Mode == ModeRemote && (opts.Remote == nil || opts.Dispatch == nil)) {
		if opts.Mode == ModeRemote {
			logger.Warn("remote search needs a searcher and a dispatcher, using local search")
		}
		opts.Mode = ModeLocal
	}
	if opts.Dispatch == nil {
		opts.Dispatch = func(f func()) { f() }
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	debounceOpts := []debounce.Option{debounce.WithDispatcher(opts.Dispatch)}
	if opts.Scheduler != nil {
		debounceOpts = append(debounceOpts, debounce.WithScheduler(opts.Scheduler))
	}

	return &Engine{
		store:    store,
		debounce: debounce.New(opts.Debounce, debounceOpts...),
		mode:     opts.Mode,
		remote:   opts.Remote,
		timeout:  opts.Timeout,
		dispatch: opts.Dispatch,
		ctx:      opts.Context,
	}
}

// Mode returns the search mode in effect.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Query returns the text currently in the search control.
func (e *Engine) Query() string {
	return e.query
}

// Filter returns the filter that produced the current Display.
func (e *Engine) Filter() Filter {
	return e.filter
}

// ShowAll sets Display to the whole Library.
func (e *Engine) ShowAll() {
	e.remoteGen++
	e.apply(Filter{Kind: FilterAll}, e.store.IDs(collection.Library))
}

// SelectArtist sets Display to the Library songs of artist id.
func (e *Engine) SelectArtist(id domain.ArtistID) {
	e.remoteGen++
	ids := collection.IDs(collection.FilterByArtist(e.store.All(collection.Library), id))
	e.apply(Filter{Kind: FilterArtist, Value: string(id)}, ids)
}

// SelectAlbum sets Display to the Library songs of album id.
func (e *Engine) SelectAlbum(id domain.AlbumID) {
	e.remoteGen++
	ids := collection.IDs(collection.FilterByAlbum(e.store.All(collection.Library), id))
	e.apply(Filter{Kind: FilterAlbum, Value: string(id)}, ids)
}

// Search records text as the current query and schedules a recompute once
// input has been quiet for the debounce window. Earlier pending queries are
// discarded.
func (e *Engine) Search(text string) {
	e.query = text
	e.debounce.Call(func() {
		e.runSearch(text)
	})
}

// SearchNow recomputes Display for text immediately, dropping any pending
// debounced query.
func (e *Engine) SearchNow(text string) {
	e.query = text
	e.debounce.Cancel()
	e.runSearch(text)
}

// ClearSearch empties the search control. Display is left as it is.
func (e *Engine) ClearSearch() {
	e.query = ""
}

// Close cancels pending work.
func (e *Engine) Close() {
	e.debounce.Cancel()
	e.remoteGen++
}

func (e *Engine) runSearch(text string) {
	if e.mode == ModeRemote {
		e.searchRemote(text)
		return
	}
	e.remoteGen++
	ids := collection.IDs(collection.FilterByText(e.store.All(collection.Library), text))
	e.apply(Filter{Kind: FilterSearch, Value: text}, ids)
}

func (e *Engine) searchRemote(text string) {
	if collection.NormalizeQuery(text) == "" {
		// the backend has no empty search; an empty query shows everything
		e.remoteGen++
		e.apply(Filter{Kind: FilterSearch, Value: text}, e.store.IDs(collection.Library))
		return
	}

	e.remoteGen++
	gen := e.remoteGen
	go func() {
		ctx, cancel := context.WithTimeout(e.ctx, e.timeout)
		defer cancel()

		songs, err := e.remote.Search(ctx, text)
		e.dispatch(func() {
			if gen != e.remoteGen {
				logger.Debug("dropping stale search response", logger.String("query", text))
				return
			}
			if err != nil {
				logger.Warn("remote search failed", logger.String("query", text), logger.ErrorField(err))
				return
			}
			ids := make([]domain.SongID, 0, len(songs))
			for _, s := range songs {
				if e.store.Table().Has(s.ID) {
					ids = append(ids, s.ID)
				}
			}
			e.apply(Filter{Kind: FilterSearch, Value: text}, ids)
		})
	}()
}

func (e *Engine) apply(f Filter, ids []domain.SongID) {
	e.filter = f
	e.store.Reset(collection.Display, ids)
	logger.Debug("display recomputed",
		logger.String("filter", f.Kind.String()),
		logger.String("value", f.Value),
		logger.Int("songs", len(ids)))
}

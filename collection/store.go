package collection

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/yhkl-dev/soniferous/domain"
	"github.com/yhkl-dev/soniferous/logger"
	"github.com/yhkl-dev/soniferous/notify"
)

// Name selects one of the three song collections
type Name int

const (
	Library Name = iota
	Display
	Playlist
)

func (n Name) String() string {
	switch n {
	case Library:
		return "library"
	case Display:
		return "display"
	case Playlist:
		return "playlist"
	default:
		return fmt.Sprintf("collection(%d)", int(n))
	}
}

// ErrLibraryLoaded is returned when the library is loaded a second time.
var ErrLibraryLoaded = errors.New("library already loaded")

// ResetEvent carries the new contents of a collection after a reset
type ResetEvent struct {
	Collection Name
	Songs      []*domain.Song
}

// Store holds the Library, Display and Playlist sequences over one Table
type Store struct {
	table         *Table
	seqs          [3][]domain.SongID
	libraryLoaded bool

	resets [3]notify.Topic[ResetEvent]
}

// NewStore creates a store with empty collections.
func NewStore() *Store {
	return &Store{table: NewTable()}
}

// Table returns the song table backing the store.
func (s *Store) Table() *Table {
	return s.table
}

// LibraryLoaded reports whether LoadLibrary has succeeded.
func (s *Store) LibraryLoaded() bool {
	return s.libraryLoaded
}

// LoadLibrary registers songs, sorts them by (artist, album, track, title)
// and installs them as the Library. The Library is immutable afterwards.
func (s *Store) LoadLibrary(songs []domain.Song) error {
	if s.libraryLoaded {
		return ErrLibraryLoaded
	}
	sorted := slices.Clone(songs)
	SortSongs(sorted)

	s.table.Put(sorted...)
	ids := make([]domain.SongID, 0, len(sorted))
	seen := make(map[domain.SongID]struct{}, len(sorted))
	missing := 0
	for _, song := range sorted {
		if song.ID == "" {
			missing++
			continue
		}
		if _, dup := seen[song.ID]; dup {
			continue
		}
		seen[song.ID] = struct{}{}
		ids = append(ids, song.ID)
	}
	if missing > 0 {
		logger.Warn("skipping songs without id", logger.Int("count", missing))
	}
	s.libraryLoaded = true
	s.Reset(Library, ids)
	return nil
}

// Reset replaces the membership of target wholesale. Ids unknown to the
// table are dropped. Subscribers are notified once, before Reset returns.
func (s *Store) Reset(target Name, ids []domain.SongID) {
	if !valid(target) {
		return
	}
	next := make([]domain.SongID, 0, len(ids))
	for _, id := range ids {
		if s.table.Has(id) {
			next = append(next, id)
		}
	}
	s.seqs[target] = next
	s.resets[target].Publish(ResetEvent{Collection: target, Songs: s.table.Resolve(next)})
}

// ResetSeq is Reset over a lazy sequence of songs.
func (s *Store) ResetSeq(target Name, songs iter.Seq[*domain.Song]) {
	s.Reset(target, IDs(songs))
}

// OnReset subscribes fn to resets of target.
func (s *Store) OnReset(target Name, fn func(ResetEvent)) notify.Subscription {
	if !valid(target) {
		return notify.Subscription{}
	}
	return s.resets[target].Subscribe(fn)
}

// IDs returns a copy of target's id sequence.
func (s *Store) IDs(target Name) []domain.SongID {
	if !valid(target) {
		return nil
	}
	return Clone(s.seqs[target])
}

// Songs returns target's songs in order. The pointers are shared with the
// table and every other collection.
func (s *Store) Songs(target Name) []*domain.Song {
	if !valid(target) {
		return nil
	}
	return s.table.Resolve(s.seqs[target])
}

// All yields target's songs lazily.
func (s *Store) All(target Name) iter.Seq[*domain.Song] {
	return func(yield func(*domain.Song) bool) {
		if !valid(target) {
			return
		}
		for _, id := range s.seqs[target] {
			song, ok := s.table.Get(id)
			if !ok {
				continue
			}
			if !yield(song) {
				return
			}
		}
	}
}

// Len returns the number of songs in target.
func (s *Store) Len(target Name) int {
	if !valid(target) {
		return 0
	}
	return len(s.seqs[target])
}

// At returns the song at position i of target.
func (s *Store) At(target Name, i int) (*domain.Song, bool) {
	if !valid(target) || i < 0 || i >= len(s.seqs[target]) {
		return nil, false
	}
	return s.table.Get(s.seqs[target][i])
}

// Index returns the position of id in target, or -1.
func (s *Store) Index(target Name, id domain.SongID) int {
	if !valid(target) {
		return -1
	}
	return slices.Index(s.seqs[target], id)
}

// Song looks a song up by id.
func (s *Store) Song(id domain.SongID) (*domain.Song, bool) {
	return s.table.Get(id)
}

// Clone returns an independent id sequence sharing song identity.
func Clone(ids []domain.SongID) []domain.SongID {
	out := make([]domain.SongID, len(ids))
	copy(out, ids)
	return out
}

// IDs collects the ids of a song sequence.
func IDs(songs iter.Seq[*domain.Song]) []domain.SongID {
	var ids []domain.SongID
	for s := range songs {
		ids = append(ids, s.ID)
	}
	return ids
}

func valid(n Name) bool {
	return n >= Library && n <= Playlist
}

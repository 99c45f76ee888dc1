package collection

import (
	"github.com/yhkl-dev/soniferous/domain"
	"github.com/yhkl-dev/soniferous/notify"
)

// Table owns every song record, keyed by id. Collections reference songs by
// id and resolve them here, so a flag change is seen through all of them.
type Table struct {
	songs   map[domain.SongID]*domain.Song
	playing domain.SongID // empty when nothing is flagged

	playingChanged notify.Topic[domain.PlayingChange]
}

// NewTable creates an empty song table.
func NewTable() *Table {
	return &Table{songs: make(map[domain.SongID]*domain.Song)}
}

// Put registers songs and returns how many were added. An id already
// present keeps its existing record. Songs without an id are skipped, since
// the empty id means that nothing is playing.
func (t *Table) Put(songs ...domain.Song) int {
	added := 0
	for _, s := range songs {
		if s.ID == "" {
			continue
		}
		if _, ok := t.songs[s.ID]; ok {
			continue
		}
		rec := s
		rec.IsPlaying = false
		t.songs[s.ID] = &rec
		added++
	}
	return added
}

// Get returns the record for id.
func (t *Table) Get(id domain.SongID) (*domain.Song, bool) {
	s, ok := t.songs[id]
	return s, ok
}

// Has reports whether id is registered.
func (t *Table) Has(id domain.SongID) bool {
	_, ok := t.songs[id]
	return ok
}

// Len returns the number of registered songs.
func (t *Table) Len() int {
	return len(t.songs)
}

// Resolve maps ids to their records, skipping unknown ids.
func (t *Table) Resolve(ids []domain.SongID) []*domain.Song {
	out := make([]*domain.Song, 0, len(ids))
	for _, id := range ids {
		if s, ok := t.songs[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Playing returns the flagged song, if any.
func (t *Table) Playing() (*domain.Song, bool) {
	if t.playing == "" {
		return nil, false
	}
	return t.Get(t.playing)
}

// MarkPlaying flags id as the playing song, clearing any other flag first.
// Unknown ids are ignored.
func (t *Table) MarkPlaying(id domain.SongID) {
	s, ok := t.songs[id]
	if !ok {
		return
	}
	if t.playing == id && s.IsPlaying {
		return
	}
	t.ClearPlaying()
	s.IsPlaying = true
	t.playing = id
	t.playingChanged.Publish(domain.PlayingChange{ID: id, IsPlaying: true})
}

// ClearPlaying removes the playing flag, if set.
func (t *Table) ClearPlaying() {
	if t.playing == "" {
		return
	}
	id := t.playing
	t.playing = ""
	if s, ok := t.songs[id]; ok && s.IsPlaying {
		s.IsPlaying = false
		t.playingChanged.Publish(domain.PlayingChange{ID: id, IsPlaying: false})
	}
}

// OnPlayingChange subscribes to per-song flag flips.
func (t *Table) OnPlayingChange(fn func(domain.PlayingChange)) notify.Subscription {
	return t.playingChanged.Subscribe(fn)
}

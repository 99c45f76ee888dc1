package playback

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yhkl-dev/soniferous/collection"
	"github.com/yhkl-dev/soniferous/domain"
)

// fakeOutput records every call in order.
type fakeOutput struct {
	calls  []string
	paused bool
	source string
	ended  chan struct{}

	failPlay error
}

func newFakeOutput() *fakeOutput {
	return &fakeOutput{paused: true, ended: make(chan struct{}, 1)}
}

func (f *fakeOutput) SetSource(url string) error {
	f.calls = append(f.calls, "source "+url)
	f.source = url
	return nil
}

func (f *fakeOutput) Play() error {
	f.calls = append(f.calls, "play")
	if f.failPlay != nil {
		return f.failPlay
	}
	f.paused = false
	return nil
}

func (f *fakeOutput) Pause() error {
	f.calls = append(f.calls, "pause")
	f.paused = true
	return nil
}

func (f *fakeOutput) Paused() bool            { return f.paused }
func (f *fakeOutput) Ended() <-chan struct{} { return f.ended }
func (f *fakeOutput) Close()                  {}

type urls struct{}

func (urls) AudioURL(id domain.SongID) string {
	return fmt.Sprintf("http://music.local/song/%s/audio", id)
}

func newSession(t *testing.T, songs ...domain.Song) (*Session, *collection.Store, *fakeOutput) {
	t.Helper()
	store := collection.NewStore()
	require.NoError(t, store.LoadLibrary(songs))
	store.Reset(collection.Display, store.IDs(collection.Library))
	store.Reset(collection.Playlist, collection.Clone(store.IDs(collection.Library)))
	out := newFakeOutput()
	return NewSession(store, out, urls{}), store, out
}

func playingIDs(store *collection.Store) []domain.SongID {
	var ids []domain.SongID
	for s := range store.All(collection.Library) {
		if s.IsPlaying {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

var (
	songA = domain.Song{ID: "a", Title: "SongA", Album: "First", Artist: "X", ArtistID: "x", AlbumID: "f"}
	songB = domain.Song{ID: "b", Title: "SongB", Album: "Second", Artist: "Y", ArtistID: "y", AlbumID: "s"}
	songC = domain.Song{ID: "c", Title: "SongC", Album: "Third", Artist: "Z", ArtistID: "z", AlbumID: "t"}
)

func TestSelectThenNext(t *testing.T) {
	s, store, out := newSession(t, songA, songB)

	require.NoError(t, s.SelectSong("a"))
	require.NoError(t, s.Next())

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, domain.SongID("b"), cur.ID)
	a, _ := store.Song("a")
	b, _ := store.Song("b")
	assert.False(t, a.IsPlaying)
	assert.True(t, b.IsPlaying)
	assert.Equal(t, "http://music.local/song/b/audio", out.source)
}

func TestTogglePauseEmptyLibrary(t *testing.T) {
	s, _, out := newSession(t)

	var states []bool
	s.OnPlayState(func(p bool) { states = append(states, p) })

	require.NoError(t, s.TogglePause())
	assert.Empty(t, out.calls)
	assert.Empty(t, states)
	assert.Equal(t, NoTrack, s.CurrentIndex())
}

func TestTogglePauseStartsFirstTrack(t *testing.T) {
	s, store, out := newSession(t, songA, songB)

	require.NoError(t, s.TogglePause())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, []domain.SongID{"a"}, playingIDs(store))
	assert.Equal(t, "http://music.local/song/a/audio", out.source)
	assert.True(t, s.Playing())
}

func TestTogglePausePausesAndResumes(t *testing.T) {
	s, _, out := newSession(t, songA)
	require.NoError(t, s.SelectSong("a"))

	var states []bool
	s.OnPlayState(func(p bool) { states = append(states, p) })

	out.calls = nil
	require.NoError(t, s.TogglePause())
	require.NoError(t, s.TogglePause())

	assert.Equal(t, []string{"pause", "play"}, out.calls)
	assert.Equal(t, []bool{false, true}, states)
}

func TestAdvanceWrapsAround(t *testing.T) {
	s, _, _ := newSession(t, songA, songB, songC)
	require.NoError(t, s.SelectSong("c"))
	assert.Equal(t, 2, s.CurrentIndex())

	require.NoError(t, s.Next())
	assert.Equal(t, 0, s.CurrentIndex())

	require.NoError(t, s.Previous())
	assert.Equal(t, 2, s.CurrentIndex())

	require.NoError(t, s.Previous())
	assert.Equal(t, 1, s.CurrentIndex())
}

func TestAdvanceSingleTrackReplays(t *testing.T) {
	s, store, out := newSession(t, songA)
	require.NoError(t, s.SelectSong("a"))

	out.calls = nil
	require.NoError(t, s.Next())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, []string{"pause", "source http://music.local/song/a/audio", "play"}, out.calls)

	require.NoError(t, s.Previous())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, []domain.SongID{"a"}, playingIDs(store))
}

func TestAdvanceBeforeSelectionIsNoop(t *testing.T) {
	s, store, out := newSession(t, songA, songB)

	require.NoError(t, s.Next())
	require.NoError(t, s.Previous())
	require.NoError(t, s.OnTrackEnded())

	assert.Empty(t, out.calls)
	assert.Equal(t, NoTrack, s.CurrentIndex())
	assert.Empty(t, playingIDs(store))
}

func TestSelectPausesBeforeSwitchingSource(t *testing.T) {
	s, _, out := newSession(t, songA, songB)
	require.NoError(t, s.SelectSong("a"))

	out.calls = nil
	require.NoError(t, s.SelectSong("b"))
	assert.Equal(t, []string{"pause", "source http://music.local/song/b/audio", "play"}, out.calls)
}

func TestSelectCopiesDisplayIntoPlaylist(t *testing.T) {
	s, store, _ := newSession(t, songA, songB, songC)
	store.Reset(collection.Display, []domain.SongID{"c", "a"})

	require.NoError(t, s.SelectSong("a"))
	assert.Equal(t, []domain.SongID{"c", "a"}, store.IDs(collection.Playlist))
	assert.Equal(t, 1, s.CurrentIndex())

	// later filtering leaves the playlist alone
	store.Reset(collection.Display, []domain.SongID{"b"})
	require.NoError(t, s.Next())
	cur, _ := s.Current()
	assert.Equal(t, domain.SongID("c"), cur.ID)
}

func TestSelectRejectsSongOutsideDisplay(t *testing.T) {
	s, store, out := newSession(t, songA, songB)
	store.Reset(collection.Display, []domain.SongID{"a"})

	err := s.SelectSong("b")
	assert.ErrorIs(t, err, ErrNotDisplayed)
	assert.Empty(t, out.calls)
	assert.Equal(t, NoTrack, s.CurrentIndex())
}

func TestTrackEndedAdvances(t *testing.T) {
	s, _, _ := newSession(t, songA, songB)
	require.NoError(t, s.SelectSong("a"))

	require.NoError(t, s.OnTrackEnded())
	cur, _ := s.Current()
	assert.Equal(t, domain.SongID("b"), cur.ID)
}

func TestAtMostOneSongFlagged(t *testing.T) {
	s, store, _ := newSession(t, songA, songB, songC)

	steps := []func() error{
		func() error { return s.SelectSong("b") },
		s.Next,
		s.Next,
		s.Previous,
		func() error { return s.SelectSong("a") },
		s.OnTrackEnded,
		s.TogglePause,
	}
	for i, step := range steps {
		require.NoError(t, step(), "step %d", i)
		cur, ok := s.Current()
		require.True(t, ok)
		assert.Equal(t, []domain.SongID{cur.ID}, playingIDs(store), "step %d", i)
	}
}

func TestNowPlayingPublished(t *testing.T) {
	s, _, _ := newSession(t, songA, songB)

	var got []domain.NowPlaying
	s.OnNowPlaying(func(np domain.NowPlaying) { got = append(got, np) })

	require.NoError(t, s.SelectSong("a"))
	require.NoError(t, s.Next())

	assert.Equal(t, []domain.NowPlaying{
		{Title: "SongA", Album: "First", Artist: "X"},
		{Title: "SongB", Album: "Second", Artist: "Y"},
	}, got)
}

func TestOutputFailureKeepsBookkeeping(t *testing.T) {
	s, store, out := newSession(t, songA, songB)
	out.failPlay = errors.New("device busy")

	err := s.SelectSong("b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device busy")
	assert.Equal(t, 1, s.CurrentIndex())
	assert.Equal(t, []domain.SongID{"b"}, playingIDs(store))
	assert.False(t, s.Playing())
}

func TestAdvanceIgnoresInvalidDirection(t *testing.T) {
	s, _, out := newSession(t, songA, songB, songC)
	require.NoError(t, s.SelectSong("b"))

	out.calls = nil
	for _, dir := range []domain.Direction{0, 2, -3, 5} {
		require.NoError(t, s.Advance(dir))
	}
	assert.Equal(t, 1, s.CurrentIndex())
	assert.Empty(t, out.calls)
}

func TestNextThenPreviousReturnsToIndex(t *testing.T) {
	all := []domain.Song{songA, songB, songC,
		{ID: "d", Title: "SongD", Album: "Fourth", Artist: "W", ArtistID: "w", AlbumID: "u"}}

	for n := 1; n <= len(all); n++ {
		for i := 0; i < n; i++ {
			t.Run(fmt.Sprintf("len=%d/index=%d", n, i), func(t *testing.T) {
				s, store, _ := newSession(t, all[:n]...)
				song, ok := store.At(collection.Display, i)
				require.True(t, ok)
				require.NoError(t, s.SelectSong(song.ID))
				require.Equal(t, i, s.CurrentIndex())

				require.NoError(t, s.Next())
				require.NoError(t, s.Previous())
				assert.Equal(t, i, s.CurrentIndex())

				require.NoError(t, s.Previous())
				require.NoError(t, s.Next())
				assert.Equal(t, i, s.CurrentIndex())
				assert.Equal(t, []domain.SongID{song.ID}, playingIDs(store))
			})
		}
	}
}

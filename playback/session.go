// Package playback implements the playback session: the state machine that
// owns the current playlist position, drives the audio output and keeps
// exactly one song flagged as playing.
package playback

import (
	"errors"
	"fmt"

	"github.com/yhkl-dev/soniferous/collection"
	"github.com/yhkl-dev/soniferous/domain"
	"github.com/yhkl-dev/soniferous/logger"
	"github.com/yhkl-dev/soniferous/notify"
	"github.com/yhkl-dev/soniferous/player"
)

// NoTrack is the current index before anything has been played.
const NoTrack = -1

// ErrNotDisplayed is returned by SelectSong for a song outside Display.
var ErrNotDisplayed = errors.New("song is not in the displayed list")

// Sources resolves the playable resource of a song.
type Sources interface {
	AudioURL(id domain.SongID) string
}

// Session is the playback state machine. It is not safe for concurrent use;
// every method must run on the event loop goroutine.
type Session struct {
	store   *collection.Store
	output  player.AudioOutput
	sources Sources

	current int

	nowPlaying notify.Topic[domain.NowPlaying]
	playState  notify.Topic[bool]
}

// NewSession creates a session with nothing selected.
func NewSession(store *collection.Store, output player.AudioOutput, sources Sources) *Session {
	return &Session{
		store:   store,
		output:  output,
		sources: sources,
		current: NoTrack,
	}
}

// CurrentIndex returns the playlist position of the current track, or
// NoTrack.
func (s *Session) CurrentIndex() int {
	return s.current
}

// Current returns the current track.
func (s *Session) Current() (*domain.Song, bool) {
	if s.current == NoTrack {
		return nil, false
	}
	return s.store.At(collection.Playlist, s.current)
}

// Playing reports whether audio is playing, for the play/pause control.
func (s *Session) Playing() bool {
	return s.current != NoTrack && !s.output.Paused()
}

// OnNowPlaying subscribes to now-playing changes.
func (s *Session) OnNowPlaying(fn func(domain.NowPlaying)) notify.Subscription {
	return s.nowPlaying.Subscribe(fn)
}

// OnPlayState subscribes to play/pause state refreshes.
func (s *Session) OnPlayState(fn func(playing bool)) notify.Subscription {
	return s.playState.Subscribe(fn)
}

// SelectSong starts playback of id from the displayed list. The playlist
// becomes a copy of Display, so next and previous walk what the user was
// looking at when they picked the song.
func (s *Session) SelectSong(id domain.SongID) error {
	if s.store.Index(collection.Display, id) < 0 {
		return fmt.Errorf("select %s: %w", id, ErrNotDisplayed)
	}

	s.clearCurrentFlag()
	s.store.Reset(collection.Playlist, collection.Clone(s.store.IDs(collection.Display)))
	s.current = s.store.Index(collection.Playlist, id)

	logger.Debug("song selected", logger.String("song", string(id)), logger.Int("index", s.current),
		logger.Int("playlist", s.store.Len(collection.Playlist)))
	return s.playAt(s.current)
}

// TogglePause pauses or resumes playback. Before anything has been played
// it starts the first playlist track; with an empty playlist it does nothing.
func (s *Session) TogglePause() error {
	if s.current == NoTrack {
		if s.store.Len(collection.Playlist) == 0 {
			return nil
		}
		s.current = 0
		return s.playAt(0)
	}

	var err error
	if s.output.Paused() {
		if playErr := s.output.Play(); playErr != nil {
			err = fmt.Errorf("resume: %w", playErr)
		}
	} else {
		if pauseErr := s.output.Pause(); pauseErr != nil {
			err = fmt.Errorf("pause: %w", pauseErr)
		}
	}
	s.refreshPlayState()
	if err != nil {
		logger.Warn("toggle pause failed", logger.ErrorField(err))
	}
	return err
}

// Advance moves to the neighbouring playlist track, wrapping around at both
// ends. It does nothing before the first track has been played or when dir
// is neither Next nor Previous.
func (s *Session) Advance(dir domain.Direction) error {
	if s.current == NoTrack || (dir != domain.Next && dir != domain.Previous) {
		return nil
	}
	n := s.store.Len(collection.Playlist)
	if n == 0 {
		return nil
	}

	s.clearCurrentFlag()
	next := ((s.current+int(dir))%n + n) % n
	s.current = next

	logger.Debug("advance", logger.String("direction", dir.String()), logger.Int("index", next))
	return s.playAt(next)
}

// Next plays the following track.
func (s *Session) Next() error {
	return s.Advance(domain.Next)
}

// Previous plays the preceding track.
func (s *Session) Previous() error {
	return s.Advance(domain.Previous)
}

// OnTrackEnded handles the output's end-of-track signal.
func (s *Session) OnTrackEnded() error {
	return s.Advance(domain.Next)
}

// playAt switches the output to the playlist track at index. The output is
// paused before the source changes so two tracks never overlap.
func (s *Session) playAt(index int) error {
	song, ok := s.store.At(collection.Playlist, index)
	if !ok {
		return nil
	}

	var errs []error
	if err := s.output.Pause(); err != nil {
		errs = append(errs, fmt.Errorf("pause: %w", err))
	}
	if err := s.output.SetSource(s.sources.AudioURL(song.ID)); err != nil {
		errs = append(errs, fmt.Errorf("set source: %w", err))
	}
	s.store.Table().MarkPlaying(song.ID)
	if err := s.output.Play(); err != nil {
		errs = append(errs, fmt.Errorf("play: %w", err))
	}

	s.nowPlaying.Publish(domain.NowPlayingOf(song))
	s.refreshPlayState()

	if err := errors.Join(errs...); err != nil {
		logger.Warn("audio output failed", logger.String("song", string(song.ID)), logger.ErrorField(err))
		return fmt.Errorf("play %s: %w", song.ID, err)
	}
	return nil
}

func (s *Session) clearCurrentFlag() {
	if s.current == NoTrack {
		return
	}
	if _, ok := s.store.At(collection.Playlist, s.current); ok {
		s.store.Table().ClearPlaying()
	}
}

func (s *Session) refreshPlayState() {
	s.playState.Publish(s.Playing())
}

package mpvplayer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/wildeyedskies/go-mpv/mpv"

	"github.com/yhkl-dev/soniferous/logger"
)

// Mpvplayer wraps a libmpv handle with the few commands the player needs
type Mpvplayer struct {
	*mpv.Mpv

	// replacing is set while a loadfile replaces the current file, so the
	// end-file event of the replaced file is not mistaken for a track end.
	replacing atomic.Bool
}

// CreateMPVInstance creates and initializes an audio-only libmpv handle.
func CreateMPVInstance() (*mpv.Mpv, error) {
	mpvInstance := mpv.Create()

	mpvInstance.SetOptionString("audio-display", "no")
	mpvInstance.SetOptionString("video", "no")
	mpvInstance.SetOptionString("idle", "yes")
	mpvInstance.ObserveProperty(0, "cache-buffering-state", mpv.FORMAT_INT64)

	err := mpvInstance.Initialize()
	if err != nil {
		mpvInstance.TerminateDestroy()
		return nil, err
	}
	return mpvInstance, nil
}

// New creates an initialized player.
func New() (*Mpvplayer, error) {
	m, err := CreateMPVInstance()
	if err != nil {
		return nil, fmt.Errorf("failed to create MPV instance: %w", err)
	}
	return &Mpvplayer{Mpv: m}, nil
}

// Load replaces the current file with playURL.
func (m *Mpvplayer) Load(playURL string) error {
	m.replacing.Store(true)
	if err := m.Command([]string{"loadfile", playURL, "replace"}); err != nil {
		m.replacing.Store(false)
		return err
	}
	return nil
}

// SetPaused sets the pause flag. The flag persists across loaded files.
func (m *Mpvplayer) SetPaused(paused bool) error {
	return m.SetProperty("pause", mpv.FORMAT_FLAG, paused)
}

func (m *Mpvplayer) IsPaused() (bool, error) {
	pause, err := m.GetProperty("pause", mpv.FORMAT_FLAG)
	if err != nil {
		return false, err
	}
	return pause.(bool), nil
}

func (m *Mpvplayer) IsSongLoaded() (bool, error) {
	idle, err := m.GetProperty("idle-active", mpv.FORMAT_FLAG)
	if err != nil {
		return false, err
	}
	return !idle.(bool), nil
}

func (m *Mpvplayer) GetProgress() (float64, error) {
	pos, err := m.GetProperty("time-pos", mpv.FORMAT_DOUBLE)
	if err != nil {
		return 0, err
	}
	return pos.(float64), nil
}

func (m *Mpvplayer) GetDuration() (float64, error) {
	duration, err := m.GetProperty("duration", mpv.FORMAT_DOUBLE)
	if err != nil {
		return 0, err
	}
	return duration.(float64), nil
}

func (m *Mpvplayer) GetVolume() (float64, error) {
	vol, err := m.GetProperty("volume", mpv.FORMAT_DOUBLE)
	if err != nil {
		return 0, err
	}
	return vol.(float64), nil
}

func (m *Mpvplayer) SetVolume(volume float64) error {
	return m.SetProperty("volume", mpv.FORMAT_DOUBLE, volume)
}

func (m *Mpvplayer) Stop() error {
	return m.Command([]string{"stop"})
}

// WatchTrackEnds polls libmpv events until ctx is done and sends on the
// returned channel each time a file plays to its end. Other end-file
// events, including those caused by Load, are swallowed.
func (m *Mpvplayer) WatchTrackEnds(ctx context.Context) <-chan struct{} {
	ended := make(chan struct{}, 1)
	go func() {
		defer close(ended)
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			e := m.WaitEvent(1)
			if e == nil {
				time.Sleep(10 * time.Millisecond)
				continue
			}

			switch e.Event_Id {
			case mpv.EVENT_START_FILE:
				m.replacing.Store(false)
			case mpv.EVENT_END_FILE:
				if m.replacing.Load() || !naturalEnd(e) {
					continue
				}
				select {
				case ended <- struct{}{}:
				default:
					// an unconsumed end is already queued
				}
			case mpv.EVENT_SHUTDOWN:
				return
			}
		}
	}()
	return ended
}

// naturalEnd reports whether an end-file event means the file played out.
func naturalEnd(e *mpv.Event) bool {
	eef, ok := e.Data.(mpv.EventEndFile)
	if !ok {
		return false
	}
	if eef.Reason == mpv.END_FILE_REASON_ERROR {
		logger.Warn("mpv playback error", logger.ErrorField(eef.ErrCode))
	}
	return eef.Reason == mpv.END_FILE_REASON_EOF
}

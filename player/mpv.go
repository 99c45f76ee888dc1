package player

import (
	"context"
	"fmt"

	"github.com/yhkl-dev/soniferous/logger"
	"github.com/yhkl-dev/soniferous/mpvplayer"
)

// MPVOutput implements AudioOutput using libmpv
type MPVOutput struct {
	instance *mpvplayer.Mpvplayer
	ended    <-chan struct{}
	cancel   context.CancelFunc
}

// NewMPVOutput creates an MPV-backed output. Its event loop stops when ctx
// is done or Close is called.
func NewMPVOutput(ctx context.Context) (*MPVOutput, error) {
	instance, err := mpvplayer.New()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	return &MPVOutput{
		instance: instance,
		ended:    instance.WatchTrackEnds(ctx),
		cancel:   cancel,
	}, nil
}

// SetSource loads url paused; Play starts it.
func (p *MPVOutput) SetSource(url string) error {
	if p.instance == nil || p.instance.Mpv == nil {
		return fmt.Errorf("MPV instance not initialized")
	}
	if err := p.instance.SetPaused(true); err != nil {
		return fmt.Errorf("pause before load: %w", err)
	}
	if err := p.instance.Load(url); err != nil {
		return fmt.Errorf("load %s: %w", url, err)
	}
	return nil
}

func (p *MPVOutput) Play() error {
	if p.instance == nil || p.instance.Mpv == nil {
		return fmt.Errorf("MPV instance not initialized")
	}
	return p.instance.SetPaused(false)
}

func (p *MPVOutput) Pause() error {
	if p.instance == nil || p.instance.Mpv == nil {
		return fmt.Errorf("MPV instance not initialized")
	}
	return p.instance.SetPaused(true)
}

// Paused reports true when paused or when no file is loaded.
func (p *MPVOutput) Paused() bool {
	if p.instance == nil || p.instance.Mpv == nil {
		return true
	}
	loaded, err := p.instance.IsSongLoaded()
	if err != nil || !loaded {
		return true
	}
	paused, err := p.instance.IsPaused()
	if err != nil {
		logger.Warn("mpv pause query failed", logger.ErrorField(err))
		return true
	}
	return paused
}

func (p *MPVOutput) Ended() <-chan struct{} {
	return p.ended
}

func (p *MPVOutput) Progress() (currentPos, totalDuration float64, err error) {
	if p.instance == nil || p.instance.Mpv == nil {
		return 0, 0, fmt.Errorf("MPV instance not initialized")
	}
	pos, err := p.instance.GetProgress()
	if err != nil {
		return 0, 0, err
	}
	duration, err := p.instance.GetDuration()
	if err != nil {
		return 0, 0, err
	}
	return pos, duration, nil
}

func (p *MPVOutput) Volume() (float64, error) {
	if p.instance == nil || p.instance.Mpv == nil {
		return 0, fmt.Errorf("MPV instance not initialized")
	}
	return p.instance.GetVolume()
}

func (p *MPVOutput) SetVolume(volume float64) error {
	if p.instance == nil || p.instance.Mpv == nil {
		return fmt.Errorf("MPV instance not initialized")
	}
	return p.instance.SetVolume(volume)
}

// Close stops the event loop and destroys the libmpv handle. The handle is
// destroyed only after the event goroutine has returned.
func (p *MPVOutput) Close() {
	if p.cancel != nil {
		p.cancel()
	}
	if p.instance == nil || p.instance.Mpv == nil {
		return
	}
	p.instance.Command([]string{"quit"})
	if p.ended != nil {
		for range p.ended {
		}
	}
	p.instance.TerminateDestroy()
	p.instance.Mpv = nil
}

package player

import (
	"context"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"

	"github.com/yhkl-dev/soniferous/logger"
)

const (
	beepSampleRate     = beep.SampleRate(44100)
	defaultDialTimeout = 30 * time.Second
)

// NewStreamClient returns a client for long audio downloads. timeout bounds
// connecting and waiting for response headers only; the body may take as
// long as the track plays.
func NewStreamClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
			TLSHandshakeTimeout:   timeout,
			ResponseHeaderTimeout: timeout,
		},
	}
}

// BeepOutput implements AudioOutput by decoding the mp3 stream in process
// and feeding it to the system speaker.
//
// The stream is opened in the background on the first Play after a
// SetSource, so the caller's event loop never waits on the network.
type BeepOutput struct {
	client *http.Client

	mu       sync.Mutex
	source   string
	wantPlay bool
	opening  bool
	cancel   context.CancelFunc // aborts the current download
	stream   beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	percent  float64

	gen      atomic.Uint64 // bumped by every SetSource
	finished atomic.Uint64 // generation whose stream played out
	ended    chan struct{}
}

// NewBeepOutput initializes the speaker and returns an output that fetches
// sources with client. A client with an overall Timeout would cut tracks
// short, so it is replaced by a stream client bounded by the same duration.
func NewBeepOutput(client *http.Client) (*BeepOutput, error) {
	if client == nil {
		client = NewStreamClient(defaultDialTimeout)
	} else if client.Timeout > 0 {
		client = NewStreamClient(client.Timeout)
	}
	if err := speaker.Init(beepSampleRate, beepSampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}
	return &BeepOutput{
		client:  client,
		percent: 100,
		ended:   make(chan struct{}, 1),
	}, nil
}

func (o *BeepOutput) SetSource(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.stopLocked()
	o.source = url
	o.wantPlay = false
	o.gen.Add(1)
	return nil
}

func (o *BeepOutput) Play() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.source == "" {
		return nil
	}
	o.wantPlay = true
	if o.ctrl != nil {
		speaker.Lock()
		o.ctrl.Paused = false
		speaker.Unlock()
		return nil
	}
	if !o.opening {
		ctx, cancel := context.WithCancel(context.Background())
		o.opening = true
		o.cancel = cancel
		go o.open(ctx, o.gen.Load(), o.source)
	}
	return nil
}

func (o *BeepOutput) Pause() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.wantPlay = false
	if o.ctrl != nil {
		speaker.Lock()
		o.ctrl.Paused = true
		speaker.Unlock()
	}
	return nil
}

func (o *BeepOutput) Paused() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ctrl == nil {
		return !o.wantPlay
	}
	if o.finished.Load() == o.gen.Load() {
		return true
	}
	speaker.Lock()
	defer speaker.Unlock()
	return o.ctrl.Paused
}

func (o *BeepOutput) Ended() <-chan struct{} {
	return o.ended
}

func (o *BeepOutput) Progress() (currentPos, totalDuration float64, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.stream == nil {
		return 0, 0, nil
	}
	speaker.Lock()
	pos, n := o.stream.Position(), o.stream.Len()
	speaker.Unlock()

	currentPos = o.format.SampleRate.D(pos).Seconds()
	if n > 0 {
		totalDuration = o.format.SampleRate.D(n).Seconds()
	}
	return currentPos, totalDuration, nil
}

// Volume returns the volume as a percentage.
func (o *BeepOutput) Volume() (float64, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.percent, nil
}

// SetVolume sets the volume as a percentage, clamped to [0, 150].
func (o *BeepOutput) SetVolume(volume float64) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.percent = math.Max(0, math.Min(150, volume))
	if o.volume != nil {
		speaker.Lock()
		applyVolume(o.volume, o.percent)
		speaker.Unlock()
	}
	return nil
}

func (o *BeepOutput) Close() {
	o.mu.Lock()
	o.stopLocked()
	o.gen.Add(1)
	o.mu.Unlock()
	speaker.Close()
}

func (o *BeepOutput) open(ctx context.Context, gen uint64, url string) {
	stream, format, err := o.fetch(ctx, url)

	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.gen.Load() {
		// superseded by another SetSource while fetching
		if stream != nil {
			stream.Close()
		}
		return
	}
	o.opening = false
	if err != nil {
		logger.Error("failed to open audio stream", logger.String("url", url), logger.ErrorField(err))
		o.wantPlay = false
		return
	}

	var s beep.Streamer = stream
	if format.SampleRate != beepSampleRate {
		s = beep.Resample(4, format.SampleRate, beepSampleRate, stream)
	}
	vol := &effects.Volume{
		Streamer: beep.Seq(s, beep.Callback(func() { o.trackFinished(gen) })),
		Base:     2,
	}
	applyVolume(vol, o.percent)

	o.stream = stream
	o.format = format
	o.volume = vol
	o.ctrl = &beep.Ctrl{Streamer: vol, Paused: !o.wantPlay}
	speaker.Play(o.ctrl)
}

func (o *BeepOutput) fetch(ctx context.Context, url string) (beep.StreamSeekCloser, beep.Format, error) {
	body, err := o.openStream(ctx, url)
	if err != nil {
		return nil, beep.Format{}, err
	}
	stream, format, err := mp3.Decode(body)
	if err != nil {
		body.Close()
		return nil, beep.Format{}, fmt.Errorf("decode mp3: %w", err)
	}
	return stream, format, nil
}

// openStream starts the download of url. The body stays readable until ctx
// is cancelled.
func (o *BeepOutput) openStream(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// trackFinished runs on the speaker goroutine with the speaker locked, so
// it must not take o.mu.
func (o *BeepOutput) trackFinished(gen uint64) {
	if gen != o.gen.Load() {
		return
	}
	o.finished.Store(gen)
	select {
	case o.ended <- struct{}{}:
	default:
	}
}

func (o *BeepOutput) stopLocked() {
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	if o.ctrl != nil {
		speaker.Clear()
	}
	if o.stream != nil {
		o.stream.Close()
	}
	o.stream = nil
	o.ctrl = nil
	o.volume = nil
	o.opening = false
}

func applyVolume(v *effects.Volume, percent float64) {
	if percent <= 0 {
		v.Silent = true
		return
	}
	v.Silent = false
	v.Volume = math.Log2(percent / 100)
}

package player

// AudioOutput is the device the playback session drives.
// Implementations play one source at a time.
type AudioOutput interface {
	// SetSource loads url as the current source. It does not start playback.
	SetSource(url string) error

	// Play starts or resumes the current source
	Play() error

	// Pause pauses playback. Pausing with no source is a no-op.
	Pause() error

	// Paused reports whether playback is paused or nothing is playing
	Paused() bool

	// Ended signals each time the current source plays to its end
	Ended() <-chan struct{}

	// Close releases the device
	Close()
}

// Progresser is implemented by outputs that can report the play position.
type Progresser interface {
	Progress() (currentPos, totalDuration float64, err error)
}

// VolumeController is implemented by outputs with a volume control.
type VolumeController interface {
	Volume() (float64, error)
	SetVolume(volume float64) error
}

// Backend names
const (
	BackendMPV  = "mpv"
	BackendBeep = "beep"
)

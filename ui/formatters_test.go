package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"github.com/yhkl-dev/soniferous/domain"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00", FormatDuration(0))
	assert.Equal(t, "03:41", FormatDuration(221))
	assert.Equal(t, "61:01", FormatDuration(3661))
	assert.Equal(t, "00:00", FormatDuration(-4))
}

func TestTruncateByDisplayWidth(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "unbounded title", Truncate("unbounded title", 0))

	got := Truncate("A very long song title", 10)
	assert.LessOrEqual(t, runewidth.StringWidth(got), 10)
	assert.True(t, strings.HasSuffix(got, "…"))

	// wide runes take two cells each
	got = Truncate("東京事変の曲名", 8)
	assert.LessOrEqual(t, runewidth.StringWidth(got), 8)
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestSongColumns(t *testing.T) {
	song := &domain.Song{Title: "Intro", Artist: "X", Album: "First", Duration: "1:02"}
	assert.Equal(t, []string{"3:", "Intro", "X", "First", "1:02"}, SongColumns(song, 2, 40))
}

func TestCreateProgressBarClamps(t *testing.T) {
	assert.Equal(t, 10, strings.Count(CreateProgressBar(2, 10), "▓"))
	assert.Equal(t, 10, strings.Count(CreateProgressBar(-1, 10), "░"))
	assert.Contains(t, CreateProgressBar(0.5, 10), "50.0%")
}

func TestFormatNowPlaying(t *testing.T) {
	np := domain.NowPlaying{Title: "SongA", Album: "First", Artist: "X"}
	playing := FormatNowPlaying(np, true)
	assert.Contains(t, playing, "SongA")
	assert.Contains(t, playing, "playing")
	assert.Contains(t, FormatNowPlaying(np, false), "paused")
}

func TestFormatNowPlayingEscapesTags(t *testing.T) {
	text := FormatNowPlaying(domain.NowPlaying{Title: "[red]Live"}, true)
	assert.NotContains(t, text, "\n[white][red]Live")
}

func TestCreateLibraryUnavailable(t *testing.T) {
	text := CreateLibraryUnavailable(errors.New("connection refused"))
	assert.Contains(t, text, "Library unavailable")
	assert.Contains(t, text, "connection refused")
}

func TestClampAndEdgeIndex(t *testing.T) {
	assert.Equal(t, 0, clampIndex(-1, 5))
	assert.Equal(t, 4, clampIndex(9, 5))
	assert.Equal(t, 0, clampIndex(3, 0))
	assert.Equal(t, 0, edgeIndex(true, 5))
	assert.Equal(t, 4, edgeIndex(false, 5))
	assert.Equal(t, 0, edgeIndex(false, 0))
}

package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"

	"github.com/yhkl-dev/soniferous/domain"
)

// FormatDuration converts seconds to MM:SS format
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Truncate shortens s to at most width terminal cells, marking the cut
// with an ellipsis. A non-positive width disables truncation.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// SongColumns returns the table cells of a song row: position, title,
// artist, album and duration.
func SongColumns(song *domain.Song, index, maxWidth int) []string {
	return []string{
		fmt.Sprintf("%d:", index+1),
		Truncate(song.Title, maxWidth),
		Truncate(song.Artist, maxWidth),
		Truncate(song.Album, maxWidth),
		song.Duration,
	}
}

// FormatNowPlaying creates the now playing panel text
func FormatNowPlaying(np domain.NowPlaying, playing bool) string {
	status := "[lightgreen]playing"
	if !playing {
		status = "[yellow]paused"
	}
	return fmt.Sprintf(`
[white]Now playing %s[-]

[white]%s
[gray]Artist: [white]%s
[gray]Album:  [white]%s`,
		status, tview.Escape(np.Title), tview.Escape(np.Artist), tview.Escape(np.Album))
}

// CreateProgressBar creates a visual progress bar
func CreateProgressBar(progress float64, width int) string {
	progress = max(0, min(1, progress))
	filledWidth := int(progress * float64(width))

	var bar strings.Builder
	for i := 0; i < width; i++ {
		if i < filledWidth {
			bar.WriteString("[lightgreen]▓")
		} else {
			bar.WriteString("[darkgray]░")
		}
	}
	return bar.String() + fmt.Sprintf("[white] %.1f%%", progress*100)
}

// CreateProgressText creates the progress time display
func CreateProgressText(currentTime, totalTime, volumeText string) string {
	return fmt.Sprintf(`[darkgray]%s/%s [darkgray][v-] [white]%s [darkgray][v+]`, currentTime, totalTime, volumeText)
}

// CreateWelcomeMessage creates the welcome screen message
func CreateWelcomeMessage(totalSongs int, server string) string {
	return fmt.Sprintf(`
[lightgreen] Welcome to soniferous
[darkgray][source] %s

[gray]  SPACE (play/pause)
[gray]  n/p or →/← (next/prev)
[gray]  1/2/3 (songs/albums/artists)
[gray]  / (search) | ? (help)
[gray]  ESC to go back or exit

[darkgray]// %d songs loaded`, tview.Escape(server), totalSongs)
}

// CreateLibraryUnavailable creates the status text shown when the catalog
// could not be fetched.
func CreateLibraryUnavailable(err error) string {
	return fmt.Sprintf(`
[red]Library unavailable[-]

[darkgray]%s

[gray]ESC to exit`, tview.Escape(err.Error()))
}

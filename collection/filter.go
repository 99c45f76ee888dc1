package collection

import (
	"iter"
	"strings"

	"golang.org/x/text/cases"

	"github.com/yhkl-dev/soniferous/domain"
)

// NormalizeQuery trims and case-folds a search query.
func NormalizeQuery(q string) string {
	return cases.Fold().String(strings.TrimSpace(q))
}

// FilterByText yields the songs whose title, album or artist contains query,
// ignoring case. An empty query after normalization matches every song.
// Source order is preserved.
func FilterByText(songs iter.Seq[*domain.Song], query string) iter.Seq[*domain.Song] {
	q := NormalizeQuery(query)
	return func(yield func(*domain.Song) bool) {
		fold := cases.Fold()
		for s := range songs {
			if q != "" && !containsFolded(fold, s.Title, q) &&
				!containsFolded(fold, s.Album, q) &&
				!containsFolded(fold, s.Artist, q) {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}

func containsFolded(fold cases.Caser, field, q string) bool {
	return strings.Contains(fold.String(field), q)
}

// FilterByArtist yields the songs credited to artistID, in source order.
func FilterByArtist(songs iter.Seq[*domain.Song], artistID domain.ArtistID) iter.Seq[*domain.Song] {
	return filter(songs, func(s *domain.Song) bool { return s.ArtistID == artistID })
}

// FilterByAlbum yields the songs of albumID, in source order.
func FilterByAlbum(songs iter.Seq[*domain.Song], albumID domain.AlbumID) iter.Seq[*domain.Song] {
	return filter(songs, func(s *domain.Song) bool { return s.AlbumID == albumID })
}

func filter(songs iter.Seq[*domain.Song], keep func(*domain.Song) bool) iter.Seq[*domain.Song] {
	return func(yield func(*domain.Song) bool) {
		for s := range songs {
			if keep(s) && !yield(s) {
				return
			}
		}
	}
}

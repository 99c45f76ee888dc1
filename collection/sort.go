package collection

import (
	"cmp"
	"slices"

	"github.com/yhkl-dev/soniferous/domain"
)

// CompareSongs orders songs by artist, album, track number and title.
func CompareSongs(a, b domain.Song) int {
	return cmp.Or(
		cmp.Compare(a.Artist, b.Artist),
		cmp.Compare(a.Album, b.Album),
		cmp.Compare(a.TrackNumber, b.TrackNumber),
		cmp.Compare(a.Title, b.Title),
	)
}

// SortSongs sorts songs in place, keeping the relative order of equal keys.
func SortSongs(songs []domain.Song) {
	slices.SortStableFunc(songs, CompareSongs)
}

// SortAlbums sorts albums by artist then title.
func SortAlbums(albums []domain.Album) {
	slices.SortStableFunc(albums, func(a, b domain.Album) int {
		return cmp.Or(cmp.Compare(a.Artist, b.Artist), cmp.Compare(a.Title, b.Title))
	})
}

// SortArtists sorts artists by name.
func SortArtists(artists []domain.Artist) {
	slices.SortStableFunc(artists, func(a, b domain.Artist) int {
		return cmp.Compare(a.Name, b.Name)
	})
}

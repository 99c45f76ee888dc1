package collection

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yhkl-dev/soniferous/domain"
)

func TestFilterByText(t *testing.T) {
	s := loadedStore(t)

	tests := []struct {
		name  string
		query string
		want  []domain.SongID
	}{
		{"empty matches all", "", []domain.SongID{"2", "1", "3", "4"}},
		{"blank matches all", "   ", []domain.SongID{"2", "1", "3", "4"}},
		{"title", "intro", []domain.SongID{"3"}},
		{"album ignores case", "ALBUM2", []domain.SongID{"3", "4"}},
		{"artist", "artist2", []domain.SongID{"4"}},
		{"trimmed", "  title2 ", []domain.SongID{"1"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IDs(FilterByText(s.All(Library), tt.query))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterByTextFoldsUnicode(t *testing.T) {
	s := NewStore()
	_ = s.LoadLibrary([]domain.Song{
		{ID: "1", Title: "Straße", Artist: "Ätna"},
		{ID: "2", Title: "Other", Artist: "Someone"},
	})

	assert.Equal(t, []domain.SongID{"1"}, IDs(FilterByText(s.All(Library), "STRASSE")))
	assert.Equal(t, []domain.SongID{"1"}, IDs(FilterByText(s.All(Library), "ätna")))
}

func TestFilterByArtistAndAlbum(t *testing.T) {
	s := loadedStore(t)

	assert.Equal(t, []domain.SongID{"2", "1", "3"}, IDs(FilterByArtist(s.All(Library), "r1")))
	assert.Equal(t, []domain.SongID{"2", "1"}, IDs(FilterByAlbum(s.All(Library), "a1")))
	assert.Empty(t, IDs(FilterByArtist(s.All(Library), "7")))
	assert.Empty(t, IDs(FilterByAlbum(s.All(Library), "7")))
}

func TestFiltersAreLazy(t *testing.T) {
	s := loadedStore(t)
	seq := FilterByArtist(s.All(Library), "r1")

	var first []domain.SongID
	for song := range seq {
		first = append(first, song.ID)
		break
	}
	assert.Equal(t, []domain.SongID{"2"}, first)
	assert.Len(t, slices.Collect(seq), 3)
}

func TestSortAlbumsAndArtists(t *testing.T) {
	albums := []domain.Album{
		{ID: "1", Title: "B", Artist: "Y"},
		{ID: "2", Title: "A", Artist: "Y"},
		{ID: "3", Title: "Z", Artist: "X"},
	}
	SortAlbums(albums)
	assert.Equal(t, []domain.AlbumID{"3", "2", "1"}, []domain.AlbumID{albums[0].ID, albums[1].ID, albums[2].ID})

	artists := []domain.Artist{{ID: "1", Name: "b"}, {ID: "2", Name: "a"}, {ID: "3", Name: "a"}}
	SortArtists(artists)
	assert.Equal(t, []domain.ArtistID{"2", "3", "1"}, []domain.ArtistID{artists[0].ID, artists[1].ID, artists[2].ID})
}

func TestSortSongsTrackNumberIsNumeric(t *testing.T) {
	songs := []domain.Song{
		{ID: "10", Artist: "A", Album: "B", TrackNumber: 10},
		{ID: "2", Artist: "A", Album: "B", TrackNumber: 2},
	}
	SortSongs(songs)
	assert.Equal(t, domain.SongID("2"), songs[0].ID)
}

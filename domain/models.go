package domain

// SongID identifies a song across every collection. The value is opaque.
type SongID string

// AlbumID identifies an album.
type AlbumID string

// ArtistID identifies an artist.
type ArtistID string

// Song represents a playable track with its catalog metadata
type Song struct {
	ID          SongID
	Title       string
	Album       string
	Artist      string
	AlbumID     AlbumID
	ArtistID    ArtistID
	TrackNumber int
	Duration    string // display string, e.g. "3:41"

	// IsPlaying is owned by collection.Table; nothing else writes it.
	IsPlaying bool
}

// Album represents an album that belongs to an artist
type Album struct {
	ID       AlbumID
	Title    string
	ArtistID ArtistID
	Artist   string
}

// Artist represents a musical artist
type Artist struct {
	ID   ArtistID
	Name string
}

// Placeholders used when the backend omits a field.
const (
	UnknownTitle    = "Unknown Title"
	UnknownAlbum    = "Unknown Album"
	UnknownArtist   = "Unknown Artist"
	UnknownDuration = "0:00"
)

// NowPlaying is the display info of the active track
type NowPlaying struct {
	Title  string
	Album  string
	Artist string
}

// NowPlayingOf extracts the display info of a song.
func NowPlayingOf(s *Song) NowPlaying {
	return NowPlaying{Title: s.Title, Album: s.Album, Artist: s.Artist}
}

// PlayingChange reports a flip of a song's IsPlaying flag
type PlayingChange struct {
	ID        SongID
	IsPlaying bool
}

// Direction selects the neighbour used when advancing through a playlist
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Next:
		return "next"
	case Previous:
		return "previous"
	default:
		return "unknown"
	}
}

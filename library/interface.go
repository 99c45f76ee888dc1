package library

import (
	"context"

	"github.com/yhkl-dev/soniferous/domain"
)

// Catalog is the read side of the music server.
type Catalog interface {
	Songs(ctx context.Context) ([]domain.Song, error)
	Song(ctx context.Context, id domain.SongID) (domain.Song, error)
	Albums(ctx context.Context) ([]domain.Album, error)
	Artists(ctx context.Context) ([]domain.Artist, error)
	SongsByArtist(ctx context.Context, id domain.ArtistID) ([]domain.Song, error)
	SongsByAlbum(ctx context.Context, id domain.AlbumID) ([]domain.Song, error)
	AlbumsByArtist(ctx context.Context, id domain.ArtistID) ([]domain.Album, error)
	Search(ctx context.Context, query string) ([]domain.Song, error)
	AudioURL(id domain.SongID) string
	Ping(ctx context.Context) error
}

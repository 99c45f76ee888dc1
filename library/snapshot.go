package library

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yhkl-dev/soniferous/domain"
)

// Snapshot is one consistent read of the whole catalog.
type Snapshot struct {
	Songs   []domain.Song
	Albums  []domain.Album
	Artists []domain.Artist
}

// Load fetches songs, albums and artists concurrently and links the
// songs to their album and artist ids.
func Load(ctx context.Context, c Catalog) (Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if snap.Songs, err = c.Songs(ctx); err != nil {
			err = fmt.Errorf("fetch songs: %w", err)
		}
		return err
	})
	g.Go(func() (err error) {
		if snap.Albums, err = c.Albums(ctx); err != nil {
			err = fmt.Errorf("fetch albums: %w", err)
		}
		return err
	})
	g.Go(func() (err error) {
		if snap.Artists, err = c.Artists(ctx); err != nil {
			err = fmt.Errorf("fetch artists: %w", err)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	LinkIDs(snap.Songs, snap.Albums, snap.Artists)
	return snap, nil
}

type albumKey struct{ artist, title string }

// LinkIDs fills missing artist and album ids by name. The server's song
// listing carries names only.
func LinkIDs(songs []domain.Song, albums []domain.Album, artists []domain.Artist) {
	artistIDs := make(map[string]domain.ArtistID, len(artists))
	for _, a := range artists {
		artistIDs[a.Name] = a.ID
	}
	for i := range albums {
		if albums[i].ArtistID == "" {
			albums[i].ArtistID = artistIDs[albums[i].Artist]
		}
	}
	albumIDs := make(map[albumKey]domain.AlbumID, len(albums))
	for _, a := range albums {
		albumIDs[albumKey{a.Artist, a.Title}] = a.ID
	}
	for i := range songs {
		s := &songs[i]
		if s.ArtistID == "" {
			s.ArtistID = artistIDs[s.Artist]
		}
		if s.AlbumID == "" {
			s.AlbumID = albumIDs[albumKey{s.Artist, s.Album}]
		}
	}
}

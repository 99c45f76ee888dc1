package library

import (
	"context"
	"strings"

	"github.com/yhkl-dev/soniferous/domain"
	"github.com/yhkl-dev/soniferous/soniferous"
)

type SoniferousLibrary struct {
	client *soniferous.Client
}

func NewSoniferousLibrary(client *soniferous.Client) *SoniferousLibrary {
	return &SoniferousLibrary{
		client: client,
	}
}

func (s *SoniferousLibrary) Songs(ctx context.Context) ([]domain.Song, error) {
	songs, err := s.client.GetSongs(ctx)
	if err != nil {
		return nil, err
	}
	return convertToDomainSongs(songs), nil
}

func (s *SoniferousLibrary) Song(ctx context.Context, id domain.SongID) (domain.Song, error) {
	song, err := s.client.GetSong(ctx, soniferous.ID(id))
	if err != nil {
		return domain.Song{}, err
	}
	return convertToDomainSong(song), nil
}

func (s *SoniferousLibrary) Albums(ctx context.Context) ([]domain.Album, error) {
	albums, err := s.client.GetAlbums(ctx)
	if err != nil {
		return nil, err
	}
	return convertToDomainAlbums(albums), nil
}

func (s *SoniferousLibrary) Artists(ctx context.Context) ([]domain.Artist, error) {
	artists, err := s.client.GetArtists(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Artist, len(artists))
	for i, a := range artists {
		out[i] = domain.Artist{ID: domain.ArtistID(a.ID), Name: orDefault(a.Artist, domain.UnknownArtist)}
	}
	return out, nil
}

func (s *SoniferousLibrary) SongsByArtist(ctx context.Context, id domain.ArtistID) ([]domain.Song, error) {
	songs, err := s.client.GetArtistSongs(ctx, soniferous.ID(id))
	if err != nil {
		return nil, err
	}
	return withArtistID(convertToDomainSongs(songs), id), nil
}

func (s *SoniferousLibrary) SongsByAlbum(ctx context.Context, id domain.AlbumID) ([]domain.Song, error) {
	songs, err := s.client.GetAlbumSongs(ctx, soniferous.ID(id))
	if err != nil {
		return nil, err
	}
	out := convertToDomainSongs(songs)
	for i := range out {
		if out[i].AlbumID == "" {
			out[i].AlbumID = id
		}
	}
	return out, nil
}

func (s *SoniferousLibrary) AlbumsByArtist(ctx context.Context, id domain.ArtistID) ([]domain.Album, error) {
	albums, err := s.client.GetArtistAlbums(ctx, soniferous.ID(id))
	if err != nil {
		return nil, err
	}
	out := convertToDomainAlbums(albums)
	for i := range out {
		if out[i].ArtistID == "" {
			out[i].ArtistID = id
		}
	}
	return out, nil
}

func (s *SoniferousLibrary) Search(ctx context.Context, query string) ([]domain.Song, error) {
	songs, err := s.client.SearchSongs(ctx, query)
	if err != nil {
		return nil, err
	}
	return convertToDomainSongs(songs), nil
}

func (s *SoniferousLibrary) AudioURL(id domain.SongID) string {
	return s.client.GetPlayURL(soniferous.ID(id))
}

func (s *SoniferousLibrary) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func withArtistID(songs []domain.Song, id domain.ArtistID) []domain.Song {
	for i := range songs {
		if songs[i].ArtistID == "" {
			songs[i].ArtistID = id
		}
	}
	return songs
}

func convertToDomainSongs(songs []soniferous.Song) []domain.Song {
	domainSongs := make([]domain.Song, len(songs))
	for i, song := range songs {
		domainSongs[i] = convertToDomainSong(song)
	}
	return domainSongs
}

func convertToDomainSong(song soniferous.Song) domain.Song {
	return domain.Song{
		ID:          domain.SongID(song.ID),
		Title:       orDefault(song.Title, domain.UnknownTitle),
		Album:       orDefault(song.Album, domain.UnknownAlbum),
		Artist:      orDefault(song.Artist, domain.UnknownArtist),
		AlbumID:     domain.AlbumID(song.AlbumID),
		ArtistID:    domain.ArtistID(song.ArtistID),
		TrackNumber: song.TrackNumber,
		Duration:    orDefault(song.Time, domain.UnknownDuration),
	}
}

func convertToDomainAlbums(albums []soniferous.Album) []domain.Album {
	out := make([]domain.Album, len(albums))
	for i, a := range albums {
		out[i] = domain.Album{
			ID:       domain.AlbumID(a.ID),
			Title:    orDefault(a.Album, domain.UnknownAlbum),
			ArtistID: domain.ArtistID(a.ArtistID),
			Artist:   orDefault(a.Artist, domain.UnknownArtist),
		}
	}
	return out
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
